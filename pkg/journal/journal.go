// Package journal implements the execution engine's append-only commit log
// and the scope-aware, snapshot-bounded views providers and expressions read
// through.
package journal

import (
	"sync"
	"time"

	"github.com/smilemakc/checkflow/pkg/models"
)

// Journal is an append-only, per-session ordered log of committed check
// results. Commit ids are strictly monotonic across the whole journal
// instance (a journal is shared by every session a runner multiplexes).
//
// Grounded on ExecutionState (backend/pkg/engine/execution_state.go):
// same RWMutex-guarded-maps discipline, generalized from "latest value per
// node id" to an append-only log so retries and forEach iterations never
// lose history and reads can be bound to a snapshot.
type Journal struct {
	mu      sync.RWMutex
	nextID  int64
	entries []models.JournalEntry

	// bySession[sessionID][checkID] -> indices into entries, in commit order.
	bySession map[string]map[string][]int

	// mirror, if set, is invoked in its own goroutine after every commit. It
	// exists purely for external post-mortem storage (see pgmirror): the
	// in-memory journal above is always the read path within a run, so a
	// slow or failing mirror never blocks or fails a commit.
	mirror func(models.JournalEntry)
}

// New creates an empty journal.
func New() *Journal {
	return &Journal{
		bySession: make(map[string]map[string][]int),
	}
}

// SetMirror installs fn to receive a copy of every committed entry,
// fire-and-forget. Pass nil to disable.
func (j *Journal) SetMirror(fn func(models.JournalEntry)) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.mirror = fn
}

// BeginSnapshot returns the commit id of the most recently committed entry
// visible right now. Reads bound to this snapshot never see a later commit.
func (j *Journal) BeginSnapshot() int64 {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.nextID
}

// CommitEntry assigns the next commit id and appends the entry. Returns the
// stored entry (with CommitID and CommittedAt populated).
func (j *Journal) CommitEntry(e models.JournalEntry) models.JournalEntry {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.nextID++
	e.CommitID = j.nextID
	if e.CommittedAt.IsZero() {
		e.CommittedAt = time.Now()
	}

	idx := len(j.entries)
	j.entries = append(j.entries, e)

	perCheck, ok := j.bySession[e.SessionID]
	if !ok {
		perCheck = make(map[string][]int)
		j.bySession[e.SessionID] = perCheck
	}
	perCheck[e.CheckID] = append(perCheck[e.CheckID], idx)

	if j.mirror != nil {
		go j.mirror(e)
	}

	return e
}

// ReadVisible returns every entry for the session committed at or before
// commitMax, in commit order. If event is non-empty, only entries whose
// Event matches are returned (the zero value disables the filter).
func (j *Journal) ReadVisible(sessionID string, commitMax int64, event string) []models.JournalEntry {
	j.mu.RLock()
	defer j.mu.RUnlock()

	var out []models.JournalEntry
	for _, e := range j.entries {
		if e.SessionID != sessionID || e.CommitID > commitMax {
			continue
		}
		if event != "" && e.Event != "" && e.Event != event {
			continue
		}
		out = append(out, e)
	}
	return out
}

// historyFor returns every entry for (sessionID, checkID) committed at or
// before commitMax, in commit order. Internal helper shared by ContextView.
func (j *Journal) historyFor(sessionID, checkID string, commitMax int64) []models.JournalEntry {
	j.mu.RLock()
	defer j.mu.RUnlock()

	perCheck, ok := j.bySession[sessionID]
	if !ok {
		return nil
	}
	idxs, ok := perCheck[checkID]
	if !ok {
		return nil
	}

	out := make([]models.JournalEntry, 0, len(idxs))
	for _, idx := range idxs {
		e := j.entries[idx]
		if e.CommitID > commitMax {
			continue
		}
		out = append(out, e)
	}
	return out
}

// AllCheckIDs returns every check id with at least one committed entry for
// the session, visible at commitMax. Used to build the `outputs` map for the
// sandbox without the caller needing to know check ids in advance.
func (j *Journal) AllCheckIDs(sessionID string, commitMax int64) []string {
	j.mu.RLock()
	defer j.mu.RUnlock()

	perCheck, ok := j.bySession[sessionID]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(perCheck))
	for checkID, idxs := range perCheck {
		for _, idx := range idxs {
			if j.entries[idx].CommitID <= commitMax {
				out = append(out, checkID)
				break
			}
		}
	}
	return out
}
