package mesos

import (
	"encoding/json"

	"github.com/tidwall/gjson"
)

// masterState is the master's state snapshot. Only the fields the topology
// needs are typed; each record keeps its raw JSON for display-only lookups.
type masterState struct {
	ActivatedAgents     int               `json:"activated_slaves"`
	Agents              []agentRecord     `json:"slaves"`
	Frameworks          []frameworkRecord `json:"frameworks"`
	CompletedFrameworks []frameworkRecord `json:"completed_frameworks"`
}

type agentRecord struct {
	ID       string
	PID      string
	Hostname string

	raw gjson.Result
}

func (r *agentRecord) UnmarshalJSON(b []byte) error {
	r.raw = gjson.ParseBytes(append([]byte(nil), b...))
	r.ID = r.raw.Get("id").String()
	r.PID = r.raw.Get("pid").String()
	r.Hostname = r.raw.Get("hostname").String()
	return nil
}

type frameworkRecord struct {
	ID             string
	Name           string
	Active         bool
	Tasks          []taskRecord
	CompletedTasks []taskRecord
}

func (r *frameworkRecord) UnmarshalJSON(b []byte) error {
	var rec struct {
		ID             string       `json:"id"`
		Name           string       `json:"name"`
		Active         bool         `json:"active"`
		Tasks          []taskRecord `json:"tasks"`
		CompletedTasks []taskRecord `json:"completed_tasks"`
	}
	if err := json.Unmarshal(b, &rec); err != nil {
		return err
	}
	r.ID = rec.ID
	r.Name = rec.Name
	r.Active = rec.Active
	r.Tasks = rec.Tasks
	r.CompletedTasks = rec.CompletedTasks
	return nil
}

type taskRecord struct {
	ID          string
	FrameworkID string
	AgentID     string
	State       string

	raw gjson.Result
}

func (r *taskRecord) UnmarshalJSON(b []byte) error {
	r.raw = gjson.ParseBytes(append([]byte(nil), b...))
	r.ID = r.raw.Get("id").String()
	r.FrameworkID = r.raw.Get("framework_id").String()
	r.AgentID = r.raw.Get("slave_id").String()
	r.State = r.raw.Get("state").String()
	return nil
}

// agentState is an agent's own state snapshot, used for executor lookups.
type agentState struct {
	Frameworks          []agentFrameworkRecord `json:"frameworks"`
	CompletedFrameworks []agentFrameworkRecord `json:"completed_frameworks"`
}

type agentFrameworkRecord struct {
	ID                 string           `json:"id"`
	Executors          []ExecutorRecord `json:"executors"`
	CompletedExecutors []ExecutorRecord `json:"completed_executors"`
}

// ExecutorRecord is the raw executor entry found in an agent's state
// snapshot. It is transient: selected by matching a task id, then only the
// sandbox directory is used.
type ExecutorRecord struct {
	ID             string       `json:"id"`
	Directory      string       `json:"directory"`
	Tasks          []taskRecord `json:"tasks"`
	CompletedTasks []taskRecord `json:"completed_tasks"`
	QueuedTasks    []taskRecord `json:"queued_tasks"`
}

// taskIDs returns the ids of every task the executor references, active
// first, then completed, then queued.
func (e *ExecutorRecord) taskIDs() []string {
	ids := make([]string, 0, len(e.Tasks)+len(e.CompletedTasks)+len(e.QueuedTasks))
	for _, lst := range [][]taskRecord{e.Tasks, e.CompletedTasks, e.QueuedTasks} {
		for _, t := range lst {
			ids = append(ids, t.ID)
		}
	}
	return ids
}
