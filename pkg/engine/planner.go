// Package engine ties the sandbox, template, journal, memory and provider
// packages together into the check execution state machine: wave planning,
// dependency gating, level dispatch, routing and the top-level runner.
//
// Grounded on dag_executor.go/dag_utils.go
// (backend/pkg/engine/{dag_executor,dag_utils}.go).
package engine

import (
	"github.com/smilemakc/checkflow/pkg/models"
)

// Plan is the wave-ordered execution plan for a set of checks.
type Plan struct {
	Waves [][]*models.Check
}

// BuildPlan runs Kahn's algorithm over checks' DependsOn tokens and returns
// the dependency-ordered waves.
//
// Adapted from BuildDAG/TopologicalSort
// (backend/pkg/engine/dag_utils.go): same in-degree-map Kahn's-algorithm
// shape, generalized from a single required-parent edge to OR-groups (a
// check's in-degree only counts once per depends_on token, not once per
// option inside an OR-group — gating, not planning, decides which option in
// the group actually satisfied it).
func BuildPlan(checks []*models.Check) (*Plan, error) {
	byID := make(map[string]*models.Check, len(checks))
	for _, c := range checks {
		byID[c.ID] = c
	}

	inDegree := make(map[string]int, len(checks))
	dependents := make(map[string][]string) // checkID -> ids that depend on it (any option in any group)

	for _, c := range checks {
		groups := c.DependsGroups()
		inDegree[c.ID] = len(groups)
		seen := make(map[string]bool)
		for _, group := range groups {
			for _, token := range group {
				if seen[token] {
					continue
				}
				seen[token] = true
				dependents[token] = append(dependents[token], c.ID)
			}
		}
	}

	remaining := make(map[string]int, len(inDegree))
	for k, v := range inDegree {
		remaining[k] = v
	}

	var waves [][]*models.Check
	processed := 0
	for processed < len(checks) {
		var wave []*models.Check
		for id, deg := range remaining {
			if deg == 0 {
				wave = append(wave, byID[id])
			}
		}
		if len(wave) == 0 {
			return nil, models.ErrCyclicDependency
		}

		wave = sortByPriorityThenID(wave)

		for _, c := range wave {
			delete(remaining, c.ID)
			processed++
			resolved := make(map[string]bool)
			for _, depID := range dependents[c.ID] {
				if resolved[depID] {
					continue
				}
				resolved[depID] = true
				if _, ok := remaining[depID]; ok {
					remaining[depID]--
				}
			}
		}
		waves = append(waves, wave)
	}

	return &Plan{Waves: waves}, nil
}

// sortByPriorityThenID orders a wave by descending metadata.priority, then by
// id for determinism when priorities tie.
//
// Grounded on SortNodesByPriority/GetNodePriority
// (backend/pkg/engine/dag_utils.go): same insertion-sort-by-priority idiom.
func sortByPriorityThenID(wave []*models.Check) []*models.Check {
	sorted := make([]*models.Check, len(wave))
	copy(sorted, wave)

	for i := 1; i < len(sorted); i++ {
		key := sorted[i]
		keyPriority := checkPriority(key)
		j := i - 1
		for j >= 0 && less(checkPriority(sorted[j]), sorted[j].ID, keyPriority, key.ID) {
			sorted[j+1] = sorted[j]
			j--
		}
		sorted[j+1] = key
	}
	return sorted
}

// less reports whether (priorityA, idA) sorts before (priorityB, idB) in the
// wave's desired order: higher priority first, then lexically smaller id.
func less(priorityA int, idA string, priorityB int, idB string) bool {
	if priorityA != priorityB {
		return priorityA < priorityB
	}
	return idA > idB
}

func checkPriority(c *models.Check) int {
	if c.Metadata == nil {
		return 0
	}
	switch v := c.Metadata["priority"].(type) {
	case int:
		return v
	case float64:
		return int(v)
	default:
		return 0
	}
}
