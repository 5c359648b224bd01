package engine

import (
	"fmt"

	"github.com/smilemakc/checkflow/pkg/models"
	"github.com/smilemakc/checkflow/pkg/sandbox"
)

// RoutingDecision is what a completed check's action blocks resolved to.
type RoutingDecision struct {
	Enqueue    []string // check ids to forward-run, deduplicated
	GotoTarget string   // check id to jump execution to; "" means no jump
	RetryMax   int       // on_fail.retry.max, 0 means no retry budget configured
	Event      string    // event to attach to the forward run/goto target
}

// Router resolves a finished check's on_success/on_fail/on_finish blocks
// into a RoutingDecision, evaluating goto_js through the sandbox and
// enforcing the run's loop budget.
//
// Grounded on processLoopEdges
// (backend/pkg/engine/dag_executor.go): same "fire, bump a counter, jump"
// shape, generalized from a statically declared loop edge with a fixed
// MaxIterations to per-check action blocks whose goto target is computed at
// routing time (goto_js) and whose budget is the run-wide
// routing.max_loops, not a per-edge count.
type Router struct {
	sb       *sandbox.Sandbox
	maxLoops int
}

// NewRouter creates a Router. maxLoops <= 0 disables the budget (unlimited).
func NewRouter(sb *sandbox.Sandbox, maxLoops int) *Router {
	return &Router{sb: sb, maxLoops: maxLoops}
}

// Route resolves the action block matching the check's outcome.
// success is the check's own success/failure (post fail_if); sctx is the
// sandbox context as seen at the check's own scope, used to evaluate
// goto_js. loopsFired is the number of goto jumps already fired this run,
// checked against the budget before a new jump is returned.
func (r *Router) Route(check *models.Check, success bool, sctx sandbox.Context, loopsFired int) (RoutingDecision, error) {
	var primary, finish *models.ActionBlock
	if success {
		primary = check.OnSuccess
	} else {
		primary = check.OnFail
	}
	finish = check.OnFinish

	decision := RoutingDecision{}
	seen := make(map[string]bool)
	addRun := func(ids []string) {
		for _, id := range ids {
			if id == "" || seen[id] {
				continue
			}
			seen[id] = true
			decision.Enqueue = append(decision.Enqueue, id)
		}
	}

	if primary != nil {
		addRun(primary.Run)
		decision.Event = primary.OnEvent
		if primary.Retry != nil {
			decision.RetryMax = primary.Retry.Max
		}
	}
	if finish != nil {
		addRun(finish.Run)
		if decision.Event == "" {
			decision.Event = finish.OnEvent
		}
	}

	// on_success/on_fail's goto takes precedence over on_finish's, per this
	// engine's routing precedence decision.
	gotoTarget, gotoJS := "", ""
	if primary != nil && (primary.Goto != "" || primary.GotoJS != "") {
		gotoTarget, gotoJS = primary.Goto, primary.GotoJS
	} else if finish != nil && (finish.Goto != "" || finish.GotoJS != "") {
		gotoTarget, gotoJS = finish.Goto, finish.GotoJS
	}

	if gotoJS != "" {
		if r.maxLoops > 0 && loopsFired >= r.maxLoops {
			return RoutingDecision{}, models.ErrLoopBudgetExceeded
		}
		v, err := r.sb.Evaluate(gotoJS, sctx)
		if err != nil {
			return RoutingDecision{}, fmt.Errorf("goto_js: %w", err)
		}
		if s, ok := v.(string); ok && s != "" {
			decision.GotoTarget = s
		}
	} else if gotoTarget != "" {
		if r.maxLoops > 0 && loopsFired >= r.maxLoops {
			return RoutingDecision{}, models.ErrLoopBudgetExceeded
		}
		decision.GotoTarget = gotoTarget
	}

	if decision.GotoTarget != "" {
		addRun([]string{decision.GotoTarget})
	}

	return decision, nil
}
