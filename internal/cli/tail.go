package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/vburojevic/sandtail/internal/mesos"
	"github.com/vburojevic/sandtail/internal/tailer"
)

// TailCmd outputs the last part of files in matching tasks' sandboxes and
// optionally follows their growth.
type TailCmd struct {
	Follow   bool   `short:"f" help:"Output data as the file grows"`
	Inactive bool   `help:"Match tasks of inactive frameworks as well"`
	Lines    int    `short:"n" default:"10" help:"Output the last N lines"`
	Task     string `arg:"" help:"Task id substring or shell pattern"`
	File     string `arg:"" help:"File path, relative to the task sandbox"`
}

// Run executes the tail command
func (c *TailCmd) Run(globals *Globals) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	files, err := c.resolveFiles(ctx, globals)
	if err != nil {
		return err
	}

	engine := tailer.NewEngine(files, globals.Stdout, globals.Log, tailer.Options{
		Lines:    c.Lines,
		Follow:   c.Follow,
		Interval: globals.Config.Defaults.Interval,
		Width:    globals.Config.PoolWidth,
	})
	return engine.Run(ctx)
}

// resolveFiles turns the task filter into one remote file per matching task
// whose hosting agent is reachable.
func (c *TailCmd) resolveFiles(ctx context.Context, globals *Globals) ([]tailer.Source, error) {
	cfg := globals.Config
	master := mesos.NewMaster(cfg.Master, cfg.Timeout)

	tasks, err := master.Tasks(ctx, c.Task, c.Inactive)
	if err != nil {
		return nil, err
	}
	if len(tasks) == 0 {
		return nil, &mesos.NotFoundError{Kind: "task", Filter: c.Task}
	}
	globals.Log.Debugw("resolved tasks", "filter", c.Task, "count", len(tasks))

	// Collect the distinct agents backing the tasks and drop the
	// unreachable ones before building any file.
	var agents []*mesos.Agent
	seen := map[string]bool{}
	agentTasks := map[string][]*mesos.Task{}
	for _, task := range tasks {
		agent, err := task.Agent(ctx)
		if err != nil {
			return nil, err
		}
		if !seen[agent.ID] {
			seen[agent.ID] = true
			agents = append(agents, agent)
		}
		agentTasks[agent.ID] = append(agentTasks[agent.ID], task)
	}

	reachable := mesos.FilterReachable(ctx, agents, cfg.PoolWidth, globals.Log)

	var files []tailer.Source
	for _, agent := range reachable {
		for _, task := range agentTasks[agent.ID] {
			file, err := mesos.NewFile(ctx, task, c.File)
			if err != nil {
				return nil, err
			}
			files = append(files, file)
		}
	}
	return files, nil
}
