package mesos

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
)

// fakeAgent is an httptest-backed agent node serving state.json and
// files/read.json over an in-memory file map.
type fakeAgent struct {
	srv        *httptest.Server
	state      string
	files      map[string]string
	chunkLimit int

	stateCalls int32
	readCalls  int32
}

func newFakeAgent(t *testing.T) *fakeAgent {
	t.Helper()
	a := &fakeAgent{files: map[string]string{}}
	mux := http.NewServeMux()
	mux.HandleFunc("/state.json", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&a.stateCalls, 1)
		state := a.state
		if state == "" {
			state = `{"frameworks": [], "completed_frameworks": []}`
		}
		fmt.Fprint(w, state)
	})
	mux.HandleFunc("/files/read.json", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&a.readCalls, 1)
		a.serveRead(w, r)
	})
	a.srv = httptest.NewServer(mux)
	t.Cleanup(a.srv.Close)
	return a
}

// pid returns the agent's pid as it would appear in the master's snapshot.
func (a *fakeAgent) pid() string {
	return "slave(1)@" + strings.TrimPrefix(a.srv.URL, "http://")
}

func (a *fakeAgent) serveRead(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	content, ok := a.files[q.Get("path")]
	if !ok {
		http.Error(w, "no such file", http.StatusNotFound)
		return
	}
	offset, _ := strconv.ParseInt(q.Get("offset"), 10, 64)
	length, _ := strconv.ParseInt(q.Get("length"), 10, 64)

	resp := map[string]any{}
	switch {
	case offset < 0:
		resp["data"] = ""
		resp["offset"] = len(content)
	default:
		if offset > int64(len(content)) {
			offset = int64(len(content))
		}
		end := int64(len(content))
		if length >= 0 && offset+length < end {
			end = offset + length
		}
		if a.chunkLimit > 0 && end-offset > int64(a.chunkLimit) {
			end = offset + int64(a.chunkLimit)
		}
		resp["data"] = content[offset:end]
		resp["offset"] = offset
	}
	_ = json.NewEncoder(w).Encode(resp)
}

// fakeMaster serves a master state snapshot built from fakeCluster fixtures.
type fakeMaster struct {
	srv   *httptest.Server
	state string

	stateCalls int32
}

func newFakeMaster(t *testing.T, state string) *fakeMaster {
	t.Helper()
	m := &fakeMaster{state: state}
	mux := http.NewServeMux()
	mux.HandleFunc("/master/state.json", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&m.stateCalls, 1)
		fmt.Fprint(w, m.state)
	})
	m.srv = httptest.NewServer(mux)
	t.Cleanup(m.srv.Close)
	return m
}

// masterStateJSON builds a master snapshot with one framework owning the
// given active task records on the given agents.
func masterStateJSON(agents map[string]*fakeAgent, frameworks string) string {
	var slaves []string
	for id, a := range agents {
		slaves = append(slaves, fmt.Sprintf(
			`{"id": %q, "pid": %q, "hostname": "node-%s"}`, id, a.pid(), id))
	}
	return fmt.Sprintf(`{
		"activated_slaves": %d,
		"slaves": [%s],
		"frameworks": %s,
		"completed_frameworks": []
	}`, len(agents), strings.Join(slaves, ","), frameworks)
}

// agentStateJSON builds an agent snapshot with a single executor owning the
// given task ids, sandboxed at dir.
func agentStateJSON(dir string, taskIDs ...string) string {
	quoted := make([]string, len(taskIDs))
	for i, id := range taskIDs {
		quoted[i] = fmt.Sprintf(`{"id": %q}`, id)
	}
	return fmt.Sprintf(`{
		"frameworks": [{
			"id": "fw-1",
			"executors": [{
				"id": "exec-1",
				"directory": %q,
				"tasks": [%s],
				"completed_tasks": [],
				"queued_tasks": []
			}],
			"completed_executors": []
		}],
		"completed_frameworks": []
	}`, dir, strings.Join(quoted, ","))
}
