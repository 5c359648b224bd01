package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/smilemakc/checkflow/pkg/models"
)

func TestGateEvaluateNoDependenciesAlwaysRuns(t *testing.T) {
	run, reason := Gate{}.Evaluate(nil, Outcomes{})
	assert.True(t, run)
	assert.Empty(t, reason)
}

func TestGateEvaluateANDAllMustSucceed(t *testing.T) {
	groups := [][]string{{"a"}, {"b"}}
	outcomes := Outcomes{
		"a": {Ran: true, Success: true},
		"b": {Ran: true, Success: false},
	}
	run, reason := Gate{}.Evaluate(groups, outcomes)
	assert.False(t, run)
	assert.Equal(t, models.SkipDependencyFailed, reason)
}

func TestGateEvaluateANDAllSucceeded(t *testing.T) {
	groups := [][]string{{"a"}, {"b"}}
	outcomes := Outcomes{
		"a": {Ran: true, Success: true},
		"b": {Ran: true, Success: true},
	}
	run, reason := Gate{}.Evaluate(groups, outcomes)
	assert.True(t, run)
	assert.Empty(t, reason)
}

func TestGateEvaluateORGroupSatisfiedByAnyOption(t *testing.T) {
	groups := [][]string{{"a", "b"}}
	outcomes := Outcomes{
		"a": {Ran: true, Success: false},
		"b": {Ran: true, Success: true},
	}
	run, reason := Gate{}.Evaluate(groups, outcomes)
	assert.True(t, run)
	assert.Empty(t, reason)
}

func TestGateEvaluateORGroupAllOptionsFailed(t *testing.T) {
	groups := [][]string{{"a", "b"}}
	outcomes := Outcomes{
		"a": {Ran: true, Success: false},
		"b": {Skipped: true},
	}
	run, reason := Gate{}.Evaluate(groups, outcomes)
	assert.False(t, run)
	assert.Equal(t, models.SkipDependencyFailed, reason)
}

func TestGateEvaluateMissingOutcomeCountsAsUnsatisfied(t *testing.T) {
	groups := [][]string{{"never_ran"}}
	run, reason := Gate{}.Evaluate(groups, Outcomes{})
	assert.False(t, run)
	assert.Equal(t, models.SkipDependencyFailed, reason)
}

func TestForEachEmptySkip(t *testing.T) {
	assert.Equal(t, models.SkipForEachEmpty, ForEachEmptySkip())
}
