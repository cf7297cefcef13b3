package cli

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/vburojevic/sandtail/internal/mesos"
	"github.com/vburojevic/sandtail/internal/output"
)

// StatusCmd checks the health of the cluster's components: the master's
// state endpoint, the scheduler framework's registration, the active agent
// count and how many agents answer their own state endpoint.
type StatusCmd struct {
	JSON bool `help:"Print component status as JSON"`
}

// Component is one row of the status report.
type Component struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	OK     bool   `json:"ok"`
}

// Run executes the status command
func (c *StatusCmd) Run(globals *Globals) error {
	ctx := context.Background()
	cfg := globals.Config
	master := mesos.NewMaster(cfg.Master, cfg.Timeout)

	components := make([]Component, 3)
	group, gctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		components[0] = checkMaster(gctx, master)
		return nil
	})
	group.Go(func() error {
		components[1] = checkScheduler(gctx, master, cfg.Scheduler)
		return nil
	})
	group.Go(func() error {
		components[2] = checkActiveAgents(gctx, master)
		return nil
	})
	if err := group.Wait(); err != nil {
		return err
	}

	// Sequential on purpose: it reuses the master state the checks above
	// already cached.
	components = append(components, checkAgentReachability(ctx, master, cfg.PoolWidth, globals))

	if c.JSON {
		if err := output.JSON(globals.Stdout, components); err != nil {
			return err
		}
	} else {
		rows := make([][]string, 0, len(components))
		for _, comp := range components {
			rows = append(rows, []string{comp.Name, comp.Status})
		}
		if err := output.Table(globals.Stdout, []string{"COMPONENT", "STATUS"}, rows); err != nil {
			return err
		}
	}

	for _, comp := range components {
		if !comp.OK {
			return fmt.Errorf("one or more cluster components are unhealthy")
		}
	}
	return nil
}

func checkMaster(ctx context.Context, master *mesos.Master) Component {
	if _, err := master.ActiveAgentCount(ctx); err != nil {
		return Component{Name: "Master", Status: fmt.Sprintf("Error: %v", err)}
	}
	return Component{Name: "Master", Status: "OK", OK: true}
}

func checkScheduler(ctx context.Context, master *mesos.Master, name string) Component {
	comp := Component{Name: fmt.Sprintf("Scheduler framework (%s)", name)}
	frameworks, err := master.Frameworks(ctx, false)
	if err != nil {
		comp.Status = fmt.Sprintf("Error: %v", err)
		return comp
	}
	for _, f := range frameworks {
		if f.Name == name {
			comp.Status = "OK"
			comp.OK = true
			return comp
		}
	}
	comp.Status = fmt.Sprintf("%s framework is not registered", name)
	return comp
}

func checkActiveAgents(ctx context.Context, master *mesos.Master) Component {
	count, err := master.ActiveAgentCount(ctx)
	if err != nil {
		return Component{Name: "Active agents", Status: fmt.Sprintf("Error: %v", err)}
	}
	return Component{
		Name:   "Active agents",
		Status: fmt.Sprintf("%d", count),
		OK:     count > 0,
	}
}

func checkAgentReachability(ctx context.Context, master *mesos.Master, width int, globals *Globals) Component {
	comp := Component{Name: "Agent reachability"}
	agents, err := master.Agents(ctx, "")
	if err != nil {
		comp.Status = fmt.Sprintf("Error: %v", err)
		return comp
	}
	reachable := mesos.FilterReachable(ctx, agents, width, globals.Log)
	comp.Status = fmt.Sprintf("%d/%d", len(reachable), len(agents))
	comp.OK = len(reachable) == len(agents)
	return comp
}
