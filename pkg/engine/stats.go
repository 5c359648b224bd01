package engine

import (
	"sync"
	"time"

	"github.com/smilemakc/checkflow/pkg/models"
)

// StatsCollector accumulates per-check statistics across a run, including
// every forEach iteration and every retry attempt.
//
// Grounded on metrics aggregation
// (internal/infrastructure/monitoring/metrics.go) generalized from
// HTTP-request counters to per-check run/success/failure/duration tallies.
type StatsCollector struct {
	mu   sync.Mutex
	byID map[string]*models.CheckStatistics
}

// NewStatsCollector creates an empty collector.
func NewStatsCollector() *StatsCollector {
	return &StatsCollector{byID: make(map[string]*models.CheckStatistics)}
}

// RecordRun logs one execution attempt of checkID.
func (s *StatsCollector) RecordRun(checkID string, success bool, dur time.Duration, result models.ReviewSummary) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.byID[checkID]
	if !ok {
		st = &models.CheckStatistics{}
		s.byID[checkID] = st
	}
	st.TotalRuns++
	if success {
		st.SuccessfulRuns++
	} else {
		st.FailedRuns++
	}
	st.TotalDuration += dur
	st.PerIterationDur = append(st.PerIterationDur, dur)
	st.OutputsProduced++

	counts := result.CountBySeverity()
	st.IssuesBySeverity.Critical += counts.Critical
	st.IssuesBySeverity.Error += counts.Error
	st.IssuesBySeverity.Warning += counts.Warning
	st.IssuesBySeverity.Info += counts.Info
}

// RecordSkip logs that checkID was skipped and why.
func (s *StatsCollector) RecordSkip(checkID, reason, condition string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.byID[checkID]
	if !ok {
		st = &models.CheckStatistics{}
		s.byID[checkID] = st
	}
	st.Skipped = true
	st.SkipReason = reason
	st.SkipCondition = condition
}

// RecordError attaches the last error message observed for checkID.
func (s *StatsCollector) RecordError(checkID string, msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.byID[checkID]
	if !ok {
		st = &models.CheckStatistics{}
		s.byID[checkID] = st
	}
	st.ErrorMessage = msg
}

// Snapshot returns a copy of every check's statistics accumulated so far.
func (s *StatsCollector) Snapshot() map[string]models.CheckStatistics {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]models.CheckStatistics, len(s.byID))
	for k, v := range s.byID {
		out[k] = *v
	}
	return out
}
