package mesos

import (
	"context"

	"github.com/tidwall/gjson"
)

// Task is a unit of work scheduled onto an agent by a framework. Its
// framework, agent and executor are derived on demand through the Master's
// memoized lookups, never stored redundantly.
type Task struct {
	ID          string
	FrameworkID string
	AgentID     string
	State       string

	master *Master
	raw    gjson.Result
}

func newTask(rec *taskRecord, master *Master) *Task {
	return &Task{
		ID:          rec.ID,
		FrameworkID: rec.FrameworkID,
		AgentID:     rec.AgentID,
		State:       rec.State,
		master:      master,
		raw:         rec.raw,
	}
}

// Framework returns the task's framework.
func (t *Task) Framework(ctx context.Context) (*Framework, error) {
	return t.master.Framework(ctx, t.FrameworkID)
}

// Agent returns the agent hosting the task.
func (t *Task) Agent(ctx context.Context) (*Agent, error) {
	return t.master.agentByID(ctx, t.AgentID)
}

// Executor returns the executor managing the task: the first executor on the
// task's agent whose merged active, completed and queued task lists contain
// the task's id.
func (t *Task) Executor(ctx context.Context) (*ExecutorRecord, error) {
	agent, err := t.Agent(ctx)
	if err != nil {
		return nil, err
	}
	executors, err := agent.Executors(ctx)
	if err != nil {
		return nil, err
	}
	for i := range executors {
		for _, id := range executors[i].taskIDs() {
			if id == t.ID {
				return &executors[i], nil
			}
		}
	}
	return nil, &ExecutorNotFoundError{TaskID: t.ID}
}

// Directory returns the task's sandbox directory on its agent.
func (t *Task) Directory(ctx context.Context) (string, error) {
	executor, err := t.Executor(ctx)
	if err != nil {
		return "", err
	}
	return executor.Directory, nil
}

// Get looks up an arbitrary field of the task's raw record, for display,
// e.g. Get("resources.cpus").
func (t *Task) Get(path string) gjson.Result {
	return t.raw.Get(path)
}
