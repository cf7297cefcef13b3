package mesos

import (
	"context"
	"encoding/json"
	"net/url"
	"path"
	"strings"
	"sync"
	"time"
)

// Master is the entry point into the cluster topology. It lazily fetches the
// master's state snapshot and hands out Agent, Framework and Task values
// backed by it. Every entity is constructed at most once per id for the life
// of the Master, so repeated resolutions observe one consistent snapshot.
type Master struct {
	baseURL string
	client  *client

	mu         sync.Mutex
	state      *masterState
	agents     map[string]*Agent
	frameworks map[string]*Framework
}

// NewMaster creates a Master client for the given base URL, e.g.
// "http://10.0.0.1:5050".
func NewMaster(baseURL string, timeout time.Duration) *Master {
	return &Master{
		baseURL:    baseURL,
		client:     newClient(timeout),
		agents:     map[string]*Agent{},
		frameworks: map[string]*Framework{},
	}
}

// URL returns the master's base URL.
func (m *Master) URL() string {
	return m.baseURL
}

// loadState returns the master's state snapshot, fetching it on first use.
func (m *Master) loadState(ctx context.Context) (*masterState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stateLocked(ctx)
}

func (m *Master) stateLocked(ctx context.Context) (*masterState, error) {
	if m.state != nil {
		return m.state, nil
	}
	body, err := m.fetch(ctx, "master/state.json", nil)
	if err != nil {
		return nil, err
	}
	var st masterState
	if err := json.Unmarshal(body, &st); err != nil {
		return nil, err
	}
	m.state = &st
	return m.state, nil
}

// ActiveAgentCount reports the number of activated agents in the snapshot.
func (m *Master) ActiveAgentCount(ctx context.Context) (int, error) {
	st, err := m.loadState(ctx)
	if err != nil {
		return 0, err
	}
	return st.ActivatedAgents, nil
}

// Agents returns the agents whose id contains filter. An empty filter
// matches every agent.
func (m *Master) Agents(ctx context.Context, filter string) ([]*Agent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	st, err := m.stateLocked(ctx)
	if err != nil {
		return nil, err
	}

	var agents []*Agent
	for i := range st.Agents {
		if strings.Contains(st.Agents[i].ID, filter) {
			agents = append(agents, m.agentLocked(&st.Agents[i]))
		}
	}
	return agents, nil
}

// Agent returns the single agent whose id contains filter. It fails with
// *NotFoundError when nothing matches and *AmbiguousError when more than one
// agent does.
func (m *Master) Agent(ctx context.Context, filter string) (*Agent, error) {
	agents, err := m.Agents(ctx, filter)
	if err != nil {
		return nil, err
	}
	switch len(agents) {
	case 0:
		return nil, &NotFoundError{Kind: "agent", Filter: filter}
	case 1:
		return agents[0], nil
	default:
		ids := make([]string, len(agents))
		for i, a := range agents {
			ids[i] = a.ID
		}
		return nil, &AmbiguousError{Kind: "agent", Filter: filter, Matches: ids}
	}
}

// Frameworks returns the cluster's frameworks. Inactive and completed
// frameworks are included only when inactive is true.
func (m *Master) Frameworks(ctx context.Context, inactive bool) ([]*Framework, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	st, err := m.stateLocked(ctx)
	if err != nil {
		return nil, err
	}

	var frameworks []*Framework
	for _, recs := range [][]frameworkRecord{st.Frameworks, st.CompletedFrameworks} {
		for i := range recs {
			if !inactive && !recs[i].Active {
				continue
			}
			frameworks = append(frameworks, m.frameworkLocked(&recs[i]))
		}
	}
	return frameworks, nil
}

// Framework returns the framework with the given id, or nil when the
// snapshot has no such framework.
func (m *Master) Framework(ctx context.Context, id string) (*Framework, error) {
	frameworks, err := m.Frameworks(ctx, true)
	if err != nil {
		return nil, err
	}
	for _, f := range frameworks {
		if f.ID == id {
			return f, nil
		}
	}
	return nil, nil
}

// Tasks returns every task whose id contains filter or matches it as a shell
// pattern, traversing each framework's active and completed task lists in
// that order. Tasks of inactive frameworks are included only when inactive
// is true. An empty result is not an error at this layer.
func (m *Master) Tasks(ctx context.Context, filter string, inactive bool) ([]*Task, error) {
	frameworks, err := m.Frameworks(ctx, inactive)
	if err != nil {
		return nil, err
	}

	var tasks []*Task
	for _, f := range frameworks {
		for _, rec := range f.taskRecords() {
			if !matchID(filter, rec.ID) {
				continue
			}
			tasks = append(tasks, f.Task(rec.ID))
		}
	}
	return tasks, nil
}

// Task returns the single task whose id matches filter, with the same
// zero/one/many contract as Agent.
func (m *Master) Task(ctx context.Context, filter string, inactive bool) (*Task, error) {
	tasks, err := m.Tasks(ctx, filter, inactive)
	if err != nil {
		return nil, err
	}
	switch len(tasks) {
	case 0:
		return nil, &NotFoundError{Kind: "task", Filter: filter}
	case 1:
		return tasks[0], nil
	default:
		ids := make([]string, len(tasks))
		for i, t := range tasks {
			ids[i] = t.ID
		}
		return nil, &AmbiguousError{Kind: "task", Filter: filter, Matches: ids}
	}
}

// agentByID returns the memoized Agent for an id present in the snapshot.
func (m *Master) agentByID(ctx context.Context, id string) (*Agent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	st, err := m.stateLocked(ctx)
	if err != nil {
		return nil, err
	}
	for i := range st.Agents {
		if st.Agents[i].ID == id {
			return m.agentLocked(&st.Agents[i]), nil
		}
	}
	return nil, &NotFoundError{Kind: "agent", Filter: id}
}

func (m *Master) agentLocked(rec *agentRecord) *Agent {
	if a, ok := m.agents[rec.ID]; ok {
		return a
	}
	a := newAgent(rec, m)
	m.agents[rec.ID] = a
	return a
}

func (m *Master) frameworkLocked(rec *frameworkRecord) *Framework {
	if f, ok := m.frameworks[rec.ID]; ok {
		return f
	}
	f := newFramework(rec, m)
	m.frameworks[rec.ID] = f
	return f
}

func (m *Master) fetch(ctx context.Context, p string, query url.Values) ([]byte, error) {
	return m.client.fetch(ctx, m.baseURL, p, query)
}

// matchID reports whether a task or agent id matches the operator-supplied
// filter, either as a substring or as a shell pattern.
func matchID(filter, id string) bool {
	if strings.Contains(id, filter) {
		return true
	}
	ok, err := path.Match(filter, id)
	return err == nil && ok
}
