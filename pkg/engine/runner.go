package engine

import (
	"context"
	"time"

	"github.com/smilemakc/checkflow/pkg/journal"
	"github.com/smilemakc/checkflow/pkg/models"
)

// maxForwardDispatches bounds the total number of extra (goto/forward-run)
// checks a single run will execute beyond its planned waves, independent of
// the routing.max_loops budget: that budget only governs goto chains, and a
// pathological on_finish.run list could otherwise cycle forever.
const maxForwardDispatches = 1000

// Runner is the top-level state machine tying the wave planner, the level
// dispatcher and the routing engine together into one run.
//
// Grounded on RunDAG/ExecuteWorkflow
// (backend/pkg/engine/dag_executor.go): same plan-then-execute-wave-by-wave
// shape, generalized with a routing pass after every check to drive
// goto/forward-run dispatch outside the planned wave order.
type Runner struct {
	Journal    *journal.Journal
	Dispatcher *Dispatcher
	Router     *Router
	Stats      *StatsCollector
	Sink       EventSink
}

// NewRunner wires a Runner from its already-constructed collaborators.
func NewRunner(j *journal.Journal, d *Dispatcher, r *Router, stats *StatsCollector, sink EventSink) *Runner {
	if sink == nil {
		sink = NopSink{}
	}
	return &Runner{Journal: j, Dispatcher: d, Router: r, Stats: stats, Sink: sink}
}

// Run executes every check in checks to completion: plans dependency waves,
// dispatches each wave, routes every finished check's action blocks into
// forward dispatch or a goto jump (bounded by the routing loop budget), and
// returns the run's aggregate result.
func (r *Runner) Run(ctx context.Context, sessionID string, checks []*models.Check, inputs models.RunInputs, env map[string]string) (*models.AnalysisResult, error) {
	start := time.Now()
	r.Sink.Emit(Event{Type: EventRunStarted, SessionID: sessionID, Timestamp: start})

	plan, err := BuildPlan(checks)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*models.Check, len(checks))
	for _, c := range checks {
		byID[c.ID] = c
	}

	state := NewRunState()
	outcomes := make(Outcomes, len(checks))
	executedSeen := make(map[string]bool, len(checks))
	var executed []string
	var allResults []CheckResult

	record := func(res CheckResult) {
		outcomes[res.Check.ID] = res.Outcome
		allResults = append(allResults, res)
		if !executedSeen[res.Check.ID] {
			executedSeen[res.Check.ID] = true
			executed = append(executed, res.Check.ID)
		}
	}

	route := func(res CheckResult, waveIdx int) []string {
		if !res.Outcome.Ran {
			return nil
		}
		sctx := r.Dispatcher.RouteContext(sessionID, models.RootScope(), inputs, env, inputs.Event, res.Check, res.Result)
		decision, err := r.Router.Route(res.Check, res.Outcome.Success, sctx, state.LoopsFired())
		if err != nil {
			// Loop budget exceeded: the check's own outcome stands, its
			// goto/forward-run is dropped, and the source entry is re-committed
			// carrying the budget issue so the journal records why routing
			// stopped.
			issue := models.Issue{
				RuleID:   res.Check.ID + "/routing/loop_budget_exceeded",
				Severity: models.SeverityError,
				Message:  err.Error(),
			}
			updated := res.Result
			updated.Issues = append(append([]models.Issue{}, updated.Issues...), issue)
			r.Journal.CommitEntry(models.JournalEntry{
				SessionID: sessionID,
				Scope:     models.RootScope(),
				CheckID:   res.Check.ID,
				Event:     inputs.Event,
				Result:    updated,
				Success:   res.Outcome.Success,
			})
			r.Sink.Emit(Event{Type: EventRoutingFired, SessionID: sessionID, CheckID: res.Check.ID, WaveIndex: waveIdx, Message: err.Error(), Timestamp: time.Now()})
			return nil
		}
		if decision.GotoTarget != "" {
			state.RecordLoopFired()
			r.Sink.Emit(Event{Type: EventRoutingFired, SessionID: sessionID, CheckID: res.Check.ID, WaveIndex: waveIdx, Message: "goto:" + decision.GotoTarget, Timestamp: time.Now()})
		}

		var queued []string
		for _, id := range decision.Enqueue {
			if _, ok := byID[id]; !ok {
				continue
			}
			if state.MarkQueued(id) {
				continue
			}
			queued = append(queued, id)
		}
		return queued
	}

	for waveIdx, wave := range plan.Waves {
		if ctx.Err() != nil {
			break
		}
		snapshot := r.Journal.BeginSnapshot()
		results, werr := r.Dispatcher.RunWave(ctx, sessionID, wave, waveIdx, snapshot, inputs, env, outcomes, state, inputs.Event)
		for _, res := range results {
			record(res)
		}
		if werr != nil && ctx.Err() != nil {
			break
		}

		var pending []string
		for _, res := range results {
			pending = append(pending, route(res, waveIdx)...)
		}
		dispatched := 0
		for len(pending) > 0 && dispatched < maxForwardDispatches && ctx.Err() == nil {
			id := pending[0]
			pending = pending[1:]
			c, ok := byID[id]
			if !ok {
				continue
			}
			state.ClearQueued(id)
			dispatched++

			fwdSnapshot := r.Journal.BeginSnapshot()
			fwdResults, _ := r.Dispatcher.RunWave(ctx, sessionID, []*models.Check{c}, waveIdx, fwdSnapshot, inputs, env, outcomes, state, inputs.Event)
			for _, res := range fwdResults {
				record(res)
				pending = append(pending, route(res, waveIdx)...)
			}
		}
	}

	r.Sink.Emit(Event{Type: EventRunFinished, SessionID: sessionID, Timestamp: time.Now()})

	aggregate := models.ReviewSummary{Output: map[string]any{}}
	outputByCheck := aggregate.Output.(map[string]any)
	for _, res := range allResults {
		if !res.Outcome.Ran {
			continue
		}
		aggregate.Issues = append(aggregate.Issues, res.Result.Issues...)
		outputByCheck[res.Check.ID] = res.Result.Output
	}

	return &models.AnalysisResult{
		ReviewSummary:       aggregate,
		ExecutionTime:       time.Since(start),
		Timestamp:           start,
		ChecksExecuted:      executed,
		ExecutionStatistics: r.Stats.Snapshot(),
	}, ctx.Err()
}
