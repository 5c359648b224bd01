package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smilemakc/checkflow/pkg/models"
	"github.com/smilemakc/checkflow/pkg/sandbox"
)

func TestRouterRouteEnqueuesOnSuccessRun(t *testing.T) {
	r := NewRouter(sandbox.New(16, time.Second), 0)
	c := &models.Check{
		ID:        "a",
		OnSuccess: &models.ActionBlock{Run: []string{"b", "c"}},
		OnFinish:  &models.ActionBlock{Run: []string{"c", "d"}},
	}
	decision, err := r.Route(c, true, sandbox.Context{}, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c", "d"}, decision.Enqueue)
}

func TestRouterRouteUsesOnFailWhenUnsuccessful(t *testing.T) {
	r := NewRouter(sandbox.New(16, time.Second), 0)
	c := &models.Check{
		ID:     "a",
		OnFail: &models.ActionBlock{Run: []string{"alert"}},
	}
	decision, err := r.Route(c, false, sandbox.Context{}, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"alert"}, decision.Enqueue)
}

func TestRouterRoutePrimaryGotoTakesPrecedenceOverFinish(t *testing.T) {
	r := NewRouter(sandbox.New(16, time.Second), 0)
	c := &models.Check{
		ID:        "a",
		OnSuccess: &models.ActionBlock{Goto: "retry_step"},
		OnFinish:  &models.ActionBlock{Goto: "finish_step"},
	}
	decision, err := r.Route(c, true, sandbox.Context{}, 0)
	require.NoError(t, err)
	assert.Equal(t, "retry_step", decision.GotoTarget)
	assert.Contains(t, decision.Enqueue, "retry_step")
}

func TestRouterRouteFallsBackToFinishGoto(t *testing.T) {
	r := NewRouter(sandbox.New(16, time.Second), 0)
	c := &models.Check{
		ID:       "a",
		OnFinish: &models.ActionBlock{Goto: "finish_step"},
	}
	decision, err := r.Route(c, true, sandbox.Context{}, 0)
	require.NoError(t, err)
	assert.Equal(t, "finish_step", decision.GotoTarget)
}

func TestRouterRouteEvaluatesGotoJS(t *testing.T) {
	r := NewRouter(sandbox.New(16, time.Second), 0)
	c := &models.Check{
		ID:        "a",
		OnSuccess: &models.ActionBlock{GotoJS: `Counts.Error > 0 ? "fix_it" : "done"`},
	}
	sctx := sandbox.Context{Counts: models.IssueCounts{Error: 2}}
	decision, err := r.Route(c, true, sctx, 0)
	require.NoError(t, err)
	assert.Equal(t, "fix_it", decision.GotoTarget)
}

func TestRouterRouteRespectsLoopBudget(t *testing.T) {
	r := NewRouter(sandbox.New(16, time.Second), 2)
	c := &models.Check{
		ID:        "a",
		OnSuccess: &models.ActionBlock{Goto: "loop_step"},
	}
	_, err := r.Route(c, true, sandbox.Context{}, 2)
	require.ErrorIs(t, err, models.ErrLoopBudgetExceeded)
}

func TestRouterRouteUnlimitedLoopsWhenBudgetIsZero(t *testing.T) {
	r := NewRouter(sandbox.New(16, time.Second), 0)
	c := &models.Check{
		ID:        "a",
		OnSuccess: &models.ActionBlock{Goto: "loop_step"},
	}
	decision, err := r.Route(c, true, sandbox.Context{}, 1000)
	require.NoError(t, err)
	assert.Equal(t, "loop_step", decision.GotoTarget)
}

func TestRouterRouteCapturesRetryMaxFromPrimary(t *testing.T) {
	r := NewRouter(sandbox.New(16, time.Second), 0)
	c := &models.Check{
		ID:     "a",
		OnFail: &models.ActionBlock{Retry: &models.RetryConfig{Max: 3}},
	}
	decision, err := r.Route(c, false, sandbox.Context{}, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, decision.RetryMax)
}
