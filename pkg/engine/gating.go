package engine

import "github.com/smilemakc/checkflow/pkg/models"

// CheckOutcome is the minimal state gating needs about a completed
// dependency: did it run, did it succeed, and — if skipped — why.
type CheckOutcome struct {
	Ran        bool
	Success    bool
	Skipped    bool
	SkipReason string
}

// Outcomes is a lookup of prior check ids to their outcome, scoped to
// whatever the caller considers "visible" (a single wave, or the whole run).
type Outcomes map[string]CheckOutcome

// Gate decides whether a check should run given its dependency groups and
// the outcomes observed so far.
//
// Grounded on shouldExecuteNode
// (backend/pkg/engine/dag_executor.go): same "all parents must have
// succeeded" rule, generalized from a flat AND-only parent list to
// depends_on's OR-groups (each group only needs one satisfied option) and to
// carry a skip reason instead of a bare bool.
type Gate struct{}

// Evaluate returns (shouldRun, skipReason). skipReason is "" when shouldRun
// is true. Groups is the check's DependsGroups(); an empty group list always
// runs (no dependencies).
func (Gate) Evaluate(groups [][]string, outcomes Outcomes) (bool, string) {
	for _, group := range groups {
		if !groupSatisfied(group, outcomes) {
			return false, models.SkipDependencyFailed
		}
	}
	return true, ""
}

// groupSatisfied reports whether at least one token in an OR-group
// succeeded. A token that never ran, or ran and failed/was skipped, does not
// satisfy the group by itself — but any other token in the same group can.
func groupSatisfied(group []string, outcomes Outcomes) bool {
	for _, token := range group {
		if o, ok := outcomes[token]; ok && o.Ran && o.Success {
			return true
		}
	}
	return false
}

// ForEachEmptySkip reports the skip reason for a forEach check whose
// resolved item list is empty.
func ForEachEmptySkip() string {
	return models.SkipForEachEmpty
}
