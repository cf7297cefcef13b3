package cli

import (
	"context"
	"fmt"

	"github.com/vburojevic/sandtail/internal/mesos"
	"github.com/vburojevic/sandtail/internal/output"
)

// TasksCmd lists cluster tasks matching an optional filter.
type TasksCmd struct {
	Inactive bool   `help:"Include tasks of inactive frameworks"`
	JSON     bool   `help:"Print raw task records as JSON"`
	Filter   string `arg:"" optional:"" help:"Task id substring or shell pattern"`
}

// Run executes the tasks command
func (c *TasksCmd) Run(globals *Globals) error {
	ctx := context.Background()
	cfg := globals.Config
	master := mesos.NewMaster(cfg.Master, cfg.Timeout)

	tasks, err := master.Tasks(ctx, c.Filter, c.Inactive)
	if err != nil {
		return err
	}

	if c.JSON {
		records := make([]map[string]any, 0, len(tasks))
		for _, t := range tasks {
			records = append(records, map[string]any{
				"id":           t.ID,
				"framework_id": t.FrameworkID,
				"agent_id":     t.AgentID,
				"state":        t.State,
			})
		}
		return output.JSON(globals.Stdout, records)
	}

	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		host := ""
		if agent, err := t.Agent(ctx); err == nil {
			host = agent.Hostname
		}
		rows = append(rows, []string{
			t.ID,
			t.State,
			host,
			t.Get("resources.cpus").String(),
			t.Get("resources.mem").String(),
		})
	}
	if len(rows) == 0 {
		fmt.Fprintln(globals.Stderr, "No tasks found")
		return nil
	}
	return output.Table(globals.Stdout, []string{"ID", "STATE", "HOST", "CPUS", "MEM"}, rows)
}

// AgentsCmd lists cluster agents matching an optional filter.
type AgentsCmd struct {
	JSON   bool   `help:"Print agent records as JSON"`
	Filter string `arg:"" optional:"" help:"Agent id substring"`
}

// Run executes the agents command
func (c *AgentsCmd) Run(globals *Globals) error {
	ctx := context.Background()
	cfg := globals.Config
	master := mesos.NewMaster(cfg.Master, cfg.Timeout)

	agents, err := master.Agents(ctx, c.Filter)
	if err != nil {
		return err
	}

	if c.JSON {
		records := make([]map[string]any, 0, len(agents))
		for _, a := range agents {
			records = append(records, map[string]any{
				"id":       a.ID,
				"hostname": a.Hostname,
				"pid":      a.PID,
			})
		}
		return output.JSON(globals.Stdout, records)
	}

	rows := make([][]string, 0, len(agents))
	for _, a := range agents {
		rows = append(rows, []string{a.ID, a.Hostname, a.PID})
	}
	if len(rows) == 0 {
		fmt.Fprintln(globals.Stderr, "No agents found")
		return nil
	}
	return output.Table(globals.Stdout, []string{"ID", "HOSTNAME", "PID"}, rows)
}
