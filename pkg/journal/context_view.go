package journal

import "github.com/smilemakc/checkflow/pkg/models"

// ContextView is a snapshot-bounded, scope-aware projection over a Journal.
// It is the only way providers and expressions read committed results —
// there is no global mutable "previous outputs" map.
type ContextView struct {
	j          *Journal
	sessionID  string
	snapshotID int64
	scope      models.Scope
	event      string
}

// NewContextView binds a view to a journal, session, snapshot and scope.
func NewContextView(j *Journal, sessionID string, snapshotID int64, scope models.Scope, event string) *ContextView {
	return &ContextView{j: j, sessionID: sessionID, snapshotID: snapshotID, scope: scope, event: event}
}

// Get resolves the nearest result for checkID: an exact-scope entry first,
// else the nearest ancestor scope, else the most recently committed entry at
// any scope.
func (v *ContextView) Get(checkID string) (models.ReviewSummary, bool) {
	history := v.j.historyFor(v.sessionID, checkID, v.snapshotID)
	if len(history) == 0 {
		return models.ReviewSummary{}, false
	}

	if e, ok := latestAtScope(history, v.scope, true); ok {
		return e.Result, true
	}

	bestDepth := -1
	var best *models.JournalEntry
	for i := range history {
		e := &history[i]
		if e.Scope.IsAncestorOf(v.scope) && e.Scope.Depth() > bestDepth {
			bestDepth = e.Scope.Depth()
			best = e
		}
	}
	if best != nil {
		return best.Result, true
	}

	// Fall back to the most recently committed entry at any scope.
	last := history[len(history)-1]
	return last.Result, true
}

// GetRaw returns the shallowest-scope (aggregate) entry for checkID, i.e. the
// root-level forEach-parent output rather than a per-item one.
func (v *ContextView) GetRaw(checkID string) (models.ReviewSummary, bool) {
	history := v.j.historyFor(v.sessionID, checkID, v.snapshotID)
	if len(history) == 0 {
		return models.ReviewSummary{}, false
	}

	var best *models.JournalEntry
	for i := range history {
		e := &history[i]
		if e.Scope.Depth() == 0 {
			best = e // keep scanning: later commits (re-runs) override
		}
	}
	if best != nil {
		return best.Result, true
	}
	// No aggregate entry committed yet (e.g. queried mid-forEach); fall back
	// to the shallowest entry available.
	shallow := history[0]
	for _, e := range history[1:] {
		if e.Scope.Depth() < shallow.Scope.Depth() {
			shallow = e
		}
	}
	return shallow.Result, true
}

// GetHistory returns every entry for checkID up to the snapshot, in commit
// order.
func (v *ContextView) GetHistory(checkID string) []models.JournalEntry {
	return v.j.historyFor(v.sessionID, checkID, v.snapshotID)
}

// AllCheckIDs exposes every check id with a visible entry, for building the
// sandbox's `outputs`/`outputs_raw` maps.
func (v *ContextView) AllCheckIDs() []string {
	return v.j.AllCheckIDs(v.sessionID, v.snapshotID)
}

// Scope returns the scope this view is bound to.
func (v *ContextView) Scope() models.Scope { return v.scope }

// SnapshotID returns the commit id this view is bound to.
func (v *ContextView) SnapshotID() int64 { return v.snapshotID }

// latestAtScope returns the most recently committed entry whose scope
// exactly matches target (when exact is true).
func latestAtScope(history []models.JournalEntry, target models.Scope, exact bool) (models.JournalEntry, bool) {
	var best *models.JournalEntry
	for i := range history {
		e := &history[i]
		if exact && !e.Scope.Equal(target) {
			continue
		}
		best = e
	}
	if best == nil {
		return models.JournalEntry{}, false
	}
	return *best, true
}
