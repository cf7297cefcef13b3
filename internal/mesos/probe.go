package mesos

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/vburojevic/sandtail/internal/pool"
)

// FilterReachable fetches every agent's state snapshot concurrently, width
// workers at a time, and returns the agents that answered. Agents that fail
// are dropped with a logged diagnostic and are not retried. Each agent is
// probed exactly once, and the fetched snapshot stays cached on the agent.
func FilterReachable(ctx context.Context, agents []*Agent, width int, log *zap.SugaredLogger) []*Agent {
	reachable := make([]*Agent, 0, len(agents))

	results := pool.Map(ctx, width, agents, func(a *Agent) (struct{}, error) {
		return struct{}{}, a.State(ctx)
	})
	for r := range results {
		if r.Err != nil {
			var unreachable *UnreachableError
			if errors.As(r.Err, &unreachable) {
				log.Warnw("dropping unreachable agent",
					"agent", r.Key.ID,
					"url", unreachable.URL,
					"error", unreachable.Err)
			} else {
				log.Warnw("dropping agent with unreadable state",
					"agent", r.Key.ID,
					"error", r.Err)
			}
			continue
		}
		reachable = append(reachable, r.Key)
	}
	return reachable
}
