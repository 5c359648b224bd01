package engine

import (
	"context"
	"sync"
	"time"

	"github.com/smilemakc/checkflow/pkg/journal"
	"github.com/smilemakc/checkflow/pkg/memory"
	"github.com/smilemakc/checkflow/pkg/models"
	"github.com/smilemakc/checkflow/pkg/provider"
	"github.com/smilemakc/checkflow/pkg/sandbox"
	"github.com/smilemakc/checkflow/pkg/template"
)

// CheckResult is what the Runner needs after a check finishes, to both
// gate subsequent waves and resolve routing.
type CheckResult struct {
	Check   *models.Check
	Outcome CheckOutcome
	Result  models.ReviewSummary
}

// Dispatcher executes one wave's checks against the journal, provider
// registry, template renderer and sandbox.
//
// Grounded on executeWave/executeNode
// (backend/pkg/engine/dag_executor.go): same semaphore-bounded
// sync.WaitGroup fan-out, generalized with session-group sequencing and
// forEach map/reduce expansion, neither of which a flat node
// model needed.
type Dispatcher struct {
	Journal        *journal.Journal
	Registry       *provider.Registry
	Renderer       *template.Renderer
	Sandbox        *sandbox.Sandbox
	Memory         memory.Store
	Stats          *StatsCollector
	Sink           EventSink
	MaxParallelism int
}

// RunWave executes every check in wave concurrently (bounded by
// MaxParallelism, with session-group checks serialized relative to each
// other), committing each outcome to the journal, and returns one
// CheckResult per check actually considered (run or skipped).
func (d *Dispatcher) RunWave(
	ctx context.Context,
	sessionID string,
	wave []*models.Check,
	waveIdx int,
	waveStartSnapshot int64,
	inputs models.RunInputs,
	env map[string]string,
	outcomes Outcomes,
	state *RunState,
	event string,
) ([]CheckResult, error) {
	d.Sink.Emit(Event{Type: EventWaveStarted, SessionID: sessionID, WaveIndex: waveIdx, Timestamp: now()})

	maxParallel := d.MaxParallelism
	if maxParallel <= 0 {
		maxParallel = len(wave)
	}
	if maxParallel <= 0 {
		maxParallel = 1
	}
	sem := make(chan struct{}, maxParallel)

	groups := groupBySession(wave)

	var (
		mu      sync.Mutex
		results []CheckResult
		wg      sync.WaitGroup
	)

	runOne := func(c *models.Check) {
		sem <- struct{}{}
		res := d.runCheck(ctx, sessionID, c, waveIdx, waveStartSnapshot, inputs, env, outcomes, state, event)
		<-sem
		mu.Lock()
		results = append(results, res...)
		mu.Unlock()
	}

	for _, chain := range groups {
		wg.Add(1)
		go func(chain []*models.Check) {
			defer wg.Done()
			for _, c := range chain {
				if ctx.Err() != nil {
					return
				}
				runOne(c)
			}
		}(chain)
	}
	wg.Wait()

	d.Sink.Emit(Event{Type: EventWaveFinished, SessionID: sessionID, WaveIndex: waveIdx, Timestamp: now()})
	return results, ctx.Err()
}

// groupBySession partitions a wave into independently-schedulable chains:
// checks sharing a non-empty SessionGroup become one ordered chain, every
// other check is its own one-element chain.
func groupBySession(wave []*models.Check) [][]*models.Check {
	var chains [][]*models.Check
	bySession := make(map[string][]*models.Check)
	var order []string

	for _, c := range wave {
		if c.SessionGroup == "" {
			chains = append(chains, []*models.Check{c})
			continue
		}
		if _, ok := bySession[c.SessionGroup]; !ok {
			order = append(order, c.SessionGroup)
		}
		bySession[c.SessionGroup] = append(bySession[c.SessionGroup], c)
	}
	for _, g := range order {
		chains = append(chains, bySession[g])
	}
	return chains
}

func (d *Dispatcher) runCheck(
	ctx context.Context,
	sessionID string,
	c *models.Check,
	waveIdx int,
	waveStartSnapshot int64,
	inputs models.RunInputs,
	env map[string]string,
	outcomes Outcomes,
	state *RunState,
	event string,
) []CheckResult {
	if c.Disabled() {
		return []CheckResult{d.commitSkip(sessionID, c, models.RootScope(), models.SkipPolicyDenied, event)}
	}

	groups := c.DependsGroups()
	if shouldRun, reason := (Gate{}).Evaluate(groups, outcomes); !shouldRun {
		return []CheckResult{d.commitSkip(sessionID, c, models.RootScope(), reason, event)}
	}

	view := journal.NewContextView(d.Journal, sessionID, waveStartSnapshot, models.RootScope(), event)
	baseBindings := d.buildBindings(view, models.RootScope(), inputs, env, nil)

	if ifExpr := c.If; ifExpr != "" {
		ok, err := d.Sandbox.EvaluateBool(ifExpr, d.bindingsToSandboxContext(baseBindings, inputs, event, c))
		if err != nil || !ok {
			return []CheckResult{d.commitSkip(sessionID, c, models.RootScope(), models.SkipIfCondition, event)}
		}
	}

	if parentID, mapFanout := findMapFanoutParent(c, state); mapFanout {
		return d.runMapFanout(ctx, sessionID, c, parentID, waveIdx, view, inputs, env, state, event)
	}

	if c.ForEach {
		return d.runForEach(ctx, sessionID, c, waveIdx, models.RootScope(), view, inputs, env, state, event)
	}

	res := d.runOnce(ctx, sessionID, c, waveIdx, models.RootScope(), view, inputs, env, event)
	return []CheckResult{res}
}

// findMapFanoutParent reports whether c depends on a forEach check whose
// resolved fanout mode is "map", in which case c itself must be expanded
// once per parent item rather than run once at the root scope.
func findMapFanoutParent(c *models.Check, state *RunState) (string, bool) {
	if c.EffectiveFanout() != models.FanoutMap {
		return "", false
	}
	for _, group := range c.DependsGroups() {
		for _, token := range group {
			if _, ok := state.ForEachCount(token); ok {
				return token, true
			}
		}
	}
	return "", false
}

// runMapFanout expands a map-fanout dependent into one invocation per item
// of its forEach parent. It re-reads the parent's latest aggregate entry
// just before iterating (absorbing any parent retry/re-commit) and threads
// each item's value into the dependent's bindings so templates and
// expressions scoped to {parentID, i} see that item, not the parent's own
// output.
func (d *Dispatcher) runMapFanout(
	ctx context.Context,
	sessionID string,
	c *models.Check,
	parentID string,
	waveIdx int,
	view *journal.ContextView,
	inputs models.RunInputs,
	env map[string]string,
	state *RunState,
	event string,
) []CheckResult {
	n, _ := state.ForEachCount(parentID)
	if n == 0 {
		return []CheckResult{d.commitSkip(sessionID, c, models.RootScope(), models.SkipForEachEmpty, event)}
	}

	parentAggregate, _ := view.GetRaw(parentID)
	items := parentAggregate.ForEachItems

	var out []CheckResult
	for i := 0; i < n; i++ {
		var item any
		if i < len(items) {
			item = items[i]
		}
		scope := models.RootScope().Child(parentID, i)
		itemView := journal.NewContextView(d.Journal, sessionID, view.SnapshotID(), scope, event)
		res := d.runOnce(ctx, sessionID, c, waveIdx, scope, itemView, inputs, env, event, withItem(item))
		out = append(out, res)
		if !res.Outcome.Success && !c.ContinueOnFailure {
			break
		}
	}
	return out
}

// runForEach executes a forEach check's provider exactly once at the
// aggregate scope. A []any output becomes forEachItems; anything else marks
// the check failed with an execution error and leaves forEachItems empty, so
// map-fanout dependents gate as dependency_failed. Per-item stub entries
// (output = item, no provider invocation) are committed afterward so scoped
// reads at {checkId, i} resolve to the item itself.
func (d *Dispatcher) runForEach(
	ctx context.Context,
	sessionID string,
	c *models.Check,
	waveIdx int,
	scope models.Scope,
	view *journal.ContextView,
	inputs models.RunInputs,
	env map[string]string,
	state *RunState,
	event string,
) []CheckResult {
	start := time.Now()
	d.Sink.Emit(Event{Type: EventCheckStarted, SessionID: sessionID, CheckID: c.ID, CheckType: c.Type, WaveIndex: waveIdx, Timestamp: start})

	bindings := d.buildBindings(view, scope, inputs, env, nil)
	result, success, err := d.execute(ctx, c, scope, bindings, inputs, event)
	if err != nil {
		return []CheckResult{d.commitFailure(sessionID, c, scope, err, event, start)}
	}

	items, isArray := result.Output.([]any)
	if !isArray {
		success = false
		result.Issues = append(result.Issues, models.Issue{
			RuleID:   c.ID + "/execution_error",
			Severity: models.SeverityCritical,
			Message:  "forEach check output is not an array",
		})
		state.SetForEachCount(c.ID, 0)
	} else {
		result.ForEachItems = items
		state.SetForEachCount(c.ID, len(items))
	}

	entry := d.commit(sessionID, c, scope, result, success, "", event)
	dur := time.Since(start)
	d.Stats.RecordRun(c.ID, success, dur, result)
	d.Sink.Emit(Event{
		Type: EventCheckFinished, SessionID: sessionID, CheckID: c.ID, CheckType: c.Type,
		WaveIndex: waveIdx, Status: statusOf(success), DurationMs: dur.Milliseconds(), Timestamp: time.Now(),
	})

	if isArray {
		for i, item := range items {
			itemScope := scope.Child(c.ID, i)
			d.commit(sessionID, c, itemScope, models.ReviewSummary{Output: item}, true, "", event)
		}
	}

	return []CheckResult{{Check: c, Outcome: CheckOutcome{Ran: true, Success: success}, Result: entry.Result}}
}

type runOpt func(*runOptions)
type runOptions struct{ item any }

func withItem(item any) runOpt { return func(o *runOptions) { o.item = item } }

func (d *Dispatcher) runOnce(
	ctx context.Context,
	sessionID string,
	c *models.Check,
	waveIdx int,
	scope models.Scope,
	view *journal.ContextView,
	inputs models.RunInputs,
	env map[string]string,
	event string,
	opts ...runOpt,
) CheckResult {
	var ro runOptions
	for _, o := range opts {
		o(&ro)
	}

	start := time.Now()
	d.Sink.Emit(Event{Type: EventCheckStarted, SessionID: sessionID, CheckID: c.ID, CheckType: c.Type, WaveIndex: waveIdx, Timestamp: start})

	bindings := d.buildBindings(view, scope, inputs, env, ro.item)

	result, success, err := d.execute(ctx, c, scope, bindings, inputs, event)
	if err != nil {
		return d.commitFailure(sessionID, c, scope, err, event, start)
	}

	entry := d.commit(sessionID, c, scope, result, success, "", event)
	dur := time.Since(start)
	d.Stats.RecordRun(c.ID, success, dur, result)
	d.Sink.Emit(Event{
		Type: EventCheckFinished, SessionID: sessionID, CheckID: c.ID, CheckType: c.Type,
		WaveIndex: waveIdx, Status: statusOf(success), DurationMs: dur.Milliseconds(), Timestamp: time.Now(),
	})

	return CheckResult{Check: c, Outcome: CheckOutcome{Ran: true, Success: success}, Result: entry.Result}
}

// execute resolves the provider, renders its config, invokes it and applies
// fail_if/failure_conditions, without touching the journal, stats or event
// sink. Shared by runOnce (per-invocation commit) and runForEach (which
// commits once then derives forEachItems from the same result).
func (d *Dispatcher) execute(
	ctx context.Context,
	c *models.Check,
	scope models.Scope,
	bindings map[string]any,
	inputs models.RunInputs,
	event string,
) (models.ReviewSummary, bool, error) {
	p, err := d.Registry.Get(c.Type)
	if err != nil {
		return models.ReviewSummary{}, false, err
	}

	renderedConfig := d.renderConfig(c, bindings)
	if err := p.ValidateConfig(renderedConfig); err != nil {
		return models.ReviewSummary{}, false, err
	}

	result, err := p.Execute(ctx, provider.Input{CheckID: c.ID, Scope: scope, Config: renderedConfig, Bindings: bindings})
	if err != nil {
		return models.ReviewSummary{}, false, err
	}

	result = qualifyIssueRuleIDs(c.ID, result)
	success := !result.HasFatalIssues()

	if c.FailIf != "" {
		failCtx := d.bindingsToSandboxContext(bindings, inputs, event, c)
		failCtx.Output = result.Output
		failCtx.Issues = result.Issues
		fired, err := d.Sandbox.EvaluateBool(c.FailIf, failCtx)
		if err == nil && fired {
			success = false
			result.Issues = append(result.Issues, models.Issue{
				RuleID:   c.ID + "_fail_if",
				Severity: models.SeverityError,
				Message:  "fail_if condition matched",
			})
		}
	}
	for _, fc := range c.FailureConditions {
		fcCtx := d.bindingsToSandboxContext(bindings, inputs, event, c)
		fcCtx.Output = result.Output
		fcCtx.Issues = result.Issues
		fired, err := d.Sandbox.EvaluateBool(fc.Expression, fcCtx)
		if err == nil && fired {
			success = false
			sev := models.SeverityError
			if fc.Severity != "" {
				sev = models.IssueSeverity(fc.Severity)
			}
			result.Issues = append(result.Issues, models.Issue{RuleID: c.ID + "/" + fc.Name, Severity: sev, Message: fc.Name})
		}
	}

	return result, success, nil
}

func statusOf(success bool) string {
	if success {
		return "success"
	}
	return "failure"
}

func qualifyIssueRuleIDs(checkID string, result models.ReviewSummary) models.ReviewSummary {
	for i := range result.Issues {
		if result.Issues[i].RuleID == "" {
			result.Issues[i].RuleID = checkID
			continue
		}
		result.Issues[i].RuleID = checkID + "/" + result.Issues[i].RuleID
	}
	return result
}

func (d *Dispatcher) renderConfig(c *models.Check, bindings map[string]any) map[string]any {
	out := make(map[string]any, len(c.Config))
	for k, v := range c.Config {
		s, ok := v.(string)
		if !ok {
			out[k] = v
			continue
		}
		out[k] = d.Renderer.Render(s, c.Schema, bindings)
	}
	if c.Template != "" {
		if template.IsFileReference(c.Template) {
			body, err := d.Renderer.RenderFile(c.Template, c.Schema, bindings)
			if err == nil {
				out["_rendered_template"] = body
			}
		} else {
			out["_rendered_template"] = d.Renderer.Render(c.Template, c.Schema, bindings)
		}
	}
	return out
}

func (d *Dispatcher) commit(sessionID string, c *models.Check, scope models.Scope, result models.ReviewSummary, success bool, skipReason string, event string) models.JournalEntry {
	return d.Journal.CommitEntry(models.JournalEntry{
		SessionID: sessionID, Scope: scope, CheckID: c.ID, Event: event,
		Result: result, Success: success, Skipped: skipReason != "", SkipReason: skipReason,
	})
}

func (d *Dispatcher) commitSkip(sessionID string, c *models.Check, scope models.Scope, reason string, event string) CheckResult {
	entry := d.commit(sessionID, c, scope, models.ReviewSummary{}, false, reason, event)
	d.Stats.RecordSkip(c.ID, reason, "")
	d.Sink.Emit(Event{Type: EventCheckSkipped, SessionID: sessionID, CheckID: c.ID, CheckType: c.Type, SkipReason: reason, Timestamp: time.Now()})
	return CheckResult{Check: c, Outcome: CheckOutcome{Ran: false, Skipped: true, SkipReason: reason}, Result: entry.Result}
}

func (d *Dispatcher) commitFailure(sessionID string, c *models.Check, scope models.Scope, err error, event string, start time.Time) CheckResult {
	result := models.ReviewSummary{Issues: []models.Issue{{RuleID: c.ID + "/execution_error", Severity: models.SeverityCritical, Message: err.Error()}}}
	entry := d.commit(sessionID, c, scope, result, false, "", event)
	dur := time.Since(start)
	d.Stats.RecordRun(c.ID, false, dur, result)
	d.Stats.RecordError(c.ID, err.Error())
	d.Sink.Emit(Event{Type: EventCheckFinished, SessionID: sessionID, CheckID: c.ID, CheckType: c.Type, Status: "failure", Message: err.Error(), DurationMs: dur.Milliseconds(), Timestamp: time.Now()})
	return CheckResult{Check: c, Outcome: CheckOutcome{Ran: true, Success: false}, Result: entry.Result}
}

func (d *Dispatcher) buildBindings(view *journal.ContextView, scope models.Scope, inputs models.RunInputs, env map[string]string, item any) map[string]any {
	outputs := make(map[string]any)
	outputsRaw := make(map[string]any)
	for _, id := range view.AllCheckIDs() {
		if r, ok := view.Get(id); ok {
			outputs[id] = r.Output
		}
		if r, ok := view.GetRaw(id); ok {
			outputsRaw[id] = r.Output
		}
	}

	mem, _ := d.Memory.List(context.Background(), "default")

	b := map[string]any{
		"outputs":      outputs,
		"outputs_raw":  outputsRaw,
		"memory":       mem,
		"inputs":       inputs,
		"env":          env,
		"branch":       inputs.Branch,
		"baseBranch":   inputs.BaseBranch,
		"filesChanged": inputs.FilesChanged,
		"filesCount":   len(inputs.FilesChanged),
		"event":        inputs.Event,
		"scope":        scope.String(),
	}
	if item != nil {
		b["item"] = item
		b["output"] = item
	}
	return b
}

func (d *Dispatcher) bindingsToSandboxContext(bindings map[string]any, inputs models.RunInputs, event string, c *models.Check) sandbox.Context {
	outputs, _ := bindings["outputs"].(map[string]any)
	outputsRaw, _ := bindings["outputs_raw"].(map[string]any)
	mem, _ := bindings["memory"].(map[string]any)
	return sandbox.Context{
		Outputs:      outputs,
		OutputsRaw:   outputsRaw,
		Memory:       mem,
		Inputs:       inputs,
		Env:          mapEnv(bindings),
		Branch:       inputs.Branch,
		BaseBranch:   inputs.BaseBranch,
		FilesChanged: inputs.FilesChanged,
		FilesCount:   len(inputs.FilesChanged),
		Event:        event,
		CheckName:    c.ID,
		Schema:       c.Schema,
		Group:        c.Group,
	}
}

func mapEnv(bindings map[string]any) map[string]string {
	m, _ := bindings["env"].(map[string]string)
	return m
}

// RouteContext builds the sandbox context a finished check's action blocks
// (if/on_success/on_fail/on_finish goto_js) are evaluated against: the run's
// committed outputs as of now, with the check's own just-produced result
// overlaid at Output/Issues so goto_js can inspect what the check itself
// just produced.
func (d *Dispatcher) RouteContext(sessionID string, scope models.Scope, inputs models.RunInputs, env map[string]string, event string, c *models.Check, result models.ReviewSummary) sandbox.Context {
	snapshot := d.Journal.BeginSnapshot()
	view := journal.NewContextView(d.Journal, sessionID, snapshot, scope, event)
	bindings := d.buildBindings(view, scope, inputs, env, nil)
	sctx := d.bindingsToSandboxContext(bindings, inputs, event, c)
	sctx.Output = result.Output
	sctx.Issues = result.Issues
	return sctx
}

func now() time.Time { return time.Now() }
