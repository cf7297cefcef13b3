package mesos

// Framework is a scheduler-registered workload owner grouping tasks. It owns
// a memoized id-to-Task map scoped to itself.
type Framework struct {
	ID     string
	Name   string
	Active bool

	master *Master
	rec    *frameworkRecord
	tasks  map[string]*Task
}

func newFramework(rec *frameworkRecord, master *Master) *Framework {
	return &Framework{
		ID:     rec.ID,
		Name:   rec.Name,
		Active: rec.Active,
		master: master,
		rec:    rec,
		tasks:  map[string]*Task{},
	}
}

// Task returns the framework's task with the given id, constructing it on
// first use, or nil when the framework has no such task.
func (f *Framework) Task(id string) *Task {
	if t, ok := f.tasks[id]; ok {
		return t
	}
	for _, rec := range f.taskRecords() {
		if rec.ID == id {
			t := newTask(rec, f.master)
			f.tasks[id] = t
			return t
		}
	}
	return nil
}

// taskRecords merges the framework's active and completed task lists, active
// first.
func (f *Framework) taskRecords() []*taskRecord {
	recs := make([]*taskRecord, 0, len(f.rec.Tasks)+len(f.rec.CompletedTasks))
	for i := range f.rec.Tasks {
		recs = append(recs, &f.rec.Tasks[i])
	}
	for i := range f.rec.CompletedTasks {
		recs = append(recs, &f.rec.CompletedTasks[i])
	}
	return recs
}
