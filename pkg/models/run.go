package models

import "time"

// FileChange describes one file touched by the run's change set.
type FileChange struct {
	Path      string `json:"path"`
	Status    string `json:"status"` // added, modified, removed, renamed
	Additions int    `json:"additions"`
	Deletions int    `json:"deletions"`
	Patch     string `json:"patch,omitempty"`
}

// RepositoryInfo is the optional repository context for a run, populated by
// the caller (VCS integrations live outside the core engine).
type RepositoryInfo struct {
	Owner string `json:"owner,omitempty"`
	Name  string `json:"name,omitempty"`
}

// RunInputs is the "PR info" bundle consumed from the caller: everything the
// sandbox's fixed context and templates can read about the triggering change.
type RunInputs struct {
	Title        string          `json:"title,omitempty"`
	Author       string          `json:"author,omitempty"`
	BaseBranch   string          `json:"baseBranch,omitempty"`
	Branch       string          `json:"branch,omitempty"`
	Event        string          `json:"event"`
	FilesChanged []FileChange    `json:"filesChanged,omitempty"`
	Repository   *RepositoryInfo `json:"repository,omitempty"`
}

// RunRequest is the caller-supplied description of one run.
type RunRequest struct {
	SessionID      string
	WorkingDir     string
	Inputs         RunInputs
	MaxParallelism int
	FailFast       bool
	TagFilter      []string
	Checks         []string // requested check ids; empty means "all checks in config"
	Env            map[string]string
}

// AnalysisResult is the run's output summary returned to the caller.
type AnalysisResult struct {
	RepositoryInfo        *RepositoryInfo              `json:"repositoryInfo,omitempty"`
	ReviewSummary          ReviewSummary                `json:"reviewSummary"`
	ExecutionTime          time.Duration                `json:"executionTime"`
	Timestamp              time.Time                    `json:"timestamp"`
	ChecksExecuted         []string                     `json:"checksExecuted"`
	ExecutionStatistics    map[string]CheckStatistics   `json:"executionStatistics,omitempty"`
	Debug                  map[string]any               `json:"debug,omitempty"`
}

// OutputHistory is the per-session snapshot {checkID -> outputs in commit
// order} returned alongside AnalysisResult.
type OutputHistory map[string][]any
