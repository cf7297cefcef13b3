package mesos

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"
	"sync"

	"github.com/tidwall/gjson"
)

// Agent is a cluster worker node. Its own state snapshot is fetched at most
// once per Master; concurrent callers share the single fetch.
type Agent struct {
	ID       string
	PID      string
	Hostname string

	master *Master

	once     sync.Once
	state    *agentState
	stateErr error

	raw gjson.Result
}

func newAgent(rec *agentRecord, master *Master) *Agent {
	return &Agent{
		ID:       rec.ID,
		PID:      rec.PID,
		Hostname: rec.Hostname,
		master:   master,
		raw:      rec.raw,
	}
}

// BaseURL returns the agent's own HTTP endpoint, derived from its pid, e.g.
// "slave(1)@10.0.0.7:5051" becomes "http://10.0.0.7:5051".
func (a *Agent) BaseURL() string {
	addr := a.PID
	if i := strings.IndexByte(addr, '@'); i >= 0 {
		addr = addr[i+1:]
	}
	return "http://" + addr
}

// State returns the agent's state snapshot, fetching it on first use. Every
// later call, from any goroutine, reuses the first result.
func (a *Agent) State(ctx context.Context) (err error) {
	a.once.Do(func() {
		body, ferr := a.fetch(ctx, "state.json", nil)
		if ferr != nil {
			a.stateErr = ferr
			return
		}
		var st agentState
		if uerr := json.Unmarshal(body, &st); uerr != nil {
			a.stateErr = uerr
			return
		}
		a.state = &st
	})
	return a.stateErr
}

// Executors returns the executors hosted on this agent, merging active and
// completed frameworks and, within each, active and completed executors.
func (a *Agent) Executors(ctx context.Context) ([]ExecutorRecord, error) {
	if err := a.State(ctx); err != nil {
		return nil, err
	}

	var executors []ExecutorRecord
	for _, frameworks := range [][]agentFrameworkRecord{a.state.Frameworks, a.state.CompletedFrameworks} {
		for _, f := range frameworks {
			executors = append(executors, f.Executors...)
			executors = append(executors, f.CompletedExecutors...)
		}
	}
	return executors, nil
}

// Get looks up an arbitrary field of the agent's raw record, for display.
func (a *Agent) Get(path string) gjson.Result {
	return a.raw.Get(path)
}

func (a *Agent) fetch(ctx context.Context, path string, query url.Values) ([]byte, error) {
	return a.master.client.fetch(ctx, a.BaseURL(), path, query)
}
