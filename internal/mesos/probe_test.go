package mesos

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestFilterReachable(t *testing.T) {
	up1 := newFakeAgent(t)
	up2 := newFakeAgent(t)
	down := newFakeAgent(t)
	down.srv.Close() // connection refused from here on

	agents := map[string]*fakeAgent{"agent-up-1": up1, "agent-up-2": up2, "agent-down": down}
	master := newTopology(t, masterStateJSON(agents, `[]`))

	all, err := master.Agents(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, all, 3)

	log := zaptest.NewLogger(t).Sugar()
	reachable := FilterReachable(context.Background(), all, 20, log)

	ids := make([]string, len(reachable))
	for i, a := range reachable {
		ids[i] = a.ID
	}
	assert.ElementsMatch(t, []string{"agent-up-1", "agent-up-2"}, ids)

	// Probed exactly once each; the failing agent is never retried.
	assert.EqualValues(t, 1, up1.stateCalls)
	assert.EqualValues(t, 1, up2.stateCalls)

	// A later probe of the same set reuses the cached snapshots.
	again := FilterReachable(context.Background(), all, 20, log)
	assert.Len(t, again, 2)
	assert.EqualValues(t, 1, up1.stateCalls)
	assert.EqualValues(t, 1, up2.stateCalls)
}

func TestFilterReachableEmpty(t *testing.T) {
	log := zaptest.NewLogger(t).Sugar()
	reachable := FilterReachable(context.Background(), nil, 20, log)
	assert.Empty(t, reachable)
}

func TestUnreachableErrorWrapping(t *testing.T) {
	agent := newFakeAgent(t)
	agent.srv.Close()

	agents := map[string]*fakeAgent{"agent-1": agent}
	master := NewMaster(newFakeMaster(t, masterStateJSON(agents, `[]`)).srv.URL, time.Second)

	a, err := master.Agent(context.Background(), "agent-1")
	require.NoError(t, err)

	err = a.State(context.Background())
	var unreachable *UnreachableError
	require.ErrorAs(t, err, &unreachable)
	assert.Contains(t, unreachable.Error(), "unreachable")
}
