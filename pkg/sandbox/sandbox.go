// Package sandbox evaluates the restricted expressions a check's if,
// fail_if, goto_js, value_js and transform_js fields carry, against a fixed,
// read-only context. It never runs caller-supplied Go code and never
// mutates anything it's given.
//
// Grounded on ExprConditionEvaluator/ConditionCache
// (backend/pkg/engine/condition_cache.go): same expr-lang compile-and-cache
// shape, generalized from a single "output" binding to the engine's full
// fixed context and from bool-only results to arbitrary-value results
// (needed by value_js/goto_js).
package sandbox

import (
	"container/list"
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/smilemakc/checkflow/pkg/models"
)

// DefaultTimeout bounds the wall-clock an evaluation may take. expr-lang
// programs can neither loop nor recurse, so this exists purely as a backstop
// against pathological host scheduling, not against runaway user code.
const DefaultTimeout = 250 * time.Millisecond

// Context is the fixed, read-only set of bindings every expression sees.
// There is no way for a check to extend this set — unlike a general
// scripting runtime, the sandbox's vocabulary is closed.
type Context struct {
	Output           any
	Outputs          map[string]any
	OutputsRaw       map[string]any
	Memory           map[string]any
	Inputs           models.RunInputs
	Env              map[string]string
	Issues           []models.Issue
	Counts           models.IssueCounts
	Metadata         map[string]any
	Branch           string
	BaseBranch       string
	FilesChanged     []models.FileChange
	FilesCount       int
	Event            string
	CheckName        string
	Schema           string
	Group            string
	Debug            map[string]any
	AuthorAssociation string // OWNER, MEMBER, COLLABORATOR, CONTRIBUTOR, FIRST_TIME_CONTRIBUTOR, NONE
}

func (c Context) toEnv() map[string]any {
	return map[string]any{
		"output":      c.Output,
		"outputs":     c.Outputs,
		"outputs_raw": c.OutputsRaw,
		"memory":      c.Memory,
		"inputs":      c.Inputs,
		"env":         c.Env,
		"issues":      c.Issues,
		"counts":      c.Counts,
		"metadata":    c.Metadata,
		"branch":      c.Branch,
		"baseBranch":  c.BaseBranch,
		"filesChanged": c.FilesChanged,
		"filesCount":  c.FilesCount,
		"event":       c.Event,
		"checkName":   c.CheckName,
		"schema":      c.Schema,
		"group":       c.Group,
		"debug":       c.Debug,

		"contains":         strings.Contains,
		"startsWith":       strings.HasPrefix,
		"endsWith":         strings.HasSuffix,
		"length":           exprLength,
		"always":           func() bool { return true },
		"success":          func() bool { return !hasFatal(c.Issues) },
		"failure":          func() bool { return hasFatal(c.Issues) },
		"log":              func(args ...any) bool { return true }, // evaluated for side-effect-free tracing only; the runner logs separately
		"hasIssue":         func(ruleID string) bool { return hasIssue(c.Issues, ruleID) },
		"countIssues":      func(severity string) int { return countIssues(c.Issues, severity) },
		"hasFileMatching":  func(pattern string) bool { return hasFileMatching(c.FilesChanged, pattern) },
		"hasMinPermission": func(level string) bool { return hasMinPermission(c.AuthorAssociation, level) },
		"isOwner":          func() bool { return c.AuthorAssociation == "OWNER" },
		"isMember":         func() bool { return c.AuthorAssociation == "MEMBER" },
		"isCollaborator":   func() bool { return c.AuthorAssociation == "COLLABORATOR" },
		"isContributor":    func() bool { return c.AuthorAssociation == "CONTRIBUTOR" },
		"isFirstTimer":     func() bool { return c.AuthorAssociation == "FIRST_TIME_CONTRIBUTOR" || c.AuthorAssociation == "NONE" },
	}
}

func exprLength(v any) int {
	switch x := v.(type) {
	case string:
		return len(x)
	case []any:
		return len(x)
	case map[string]any:
		return len(x)
	default:
		return 0
	}
}

func hasFatal(issues []models.Issue) bool {
	return models.ReviewSummary{Issues: issues}.HasFatalIssues()
}

func hasIssue(issues []models.Issue, ruleID string) bool {
	for _, iss := range issues {
		if iss.RuleID == ruleID {
			return true
		}
	}
	return false
}

func countIssues(issues []models.Issue, severity string) int {
	n := 0
	for _, iss := range issues {
		if string(iss.Severity) == severity {
			n++
		}
	}
	return n
}

func hasFileMatching(files []models.FileChange, pattern string) bool {
	for _, f := range files {
		if ok, _ := path.Match(pattern, f.Path); ok {
			return true
		}
		if strings.Contains(f.Path, pattern) {
			return true
		}
	}
	return false
}

var permissionRank = map[string]int{
	"NONE":                   0,
	"FIRST_TIME_CONTRIBUTOR": 0,
	"CONTRIBUTOR":            1,
	"COLLABORATOR":           2,
	"MEMBER":                 3,
	"OWNER":                  4,
}

func hasMinPermission(actual, min string) bool {
	return permissionRank[actual] >= permissionRank[min]
}

// Errors returned by Evaluate, matched with errors.Is by callers applying
// fail-secure semantics (if-errors skip the check, fail_if-errors count as
// "did not fire").
var (
	ErrTimeout   = errors.New("sandbox: evaluation timed out")
	ErrSyntax    = errors.New("sandbox: syntax error")
	ErrReference = errors.New("sandbox: unknown reference")
	ErrType      = errors.New("sandbox: type error")
)

// Sandbox compiles and evaluates expressions against Context, with an LRU
// cache of compiled programs shared across evaluations.
type Sandbox struct {
	mu      sync.RWMutex
	cache   map[string]*list.Element
	lru     *list.List
	cap     int
	timeout time.Duration
}

type cacheEntry struct {
	key     string
	program *vm.Program
}

// New creates a Sandbox with the given compiled-program cache capacity (0
// selects a default of 200) and evaluation timeout (0 selects DefaultTimeout).
func New(cacheCapacity int, timeout time.Duration) *Sandbox {
	if cacheCapacity <= 0 {
		cacheCapacity = 200
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Sandbox{
		cache:   make(map[string]*list.Element),
		lru:     list.New(),
		cap:     cacheCapacity,
		timeout: timeout,
	}
}

func (s *Sandbox) getCached(expression string) (*vm.Program, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if el, ok := s.cache[expression]; ok {
		s.lru.MoveToFront(el)
		return el.Value.(*cacheEntry).program, true
	}
	return nil, false
}

func (s *Sandbox) putCached(expression string, program *vm.Program) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if el, ok := s.cache[expression]; ok {
		s.lru.MoveToFront(el)
		el.Value.(*cacheEntry).program = program
		return
	}
	el := s.lru.PushFront(&cacheEntry{key: expression, program: program})
	s.cache[expression] = el
	if s.lru.Len() > s.cap {
		oldest := s.lru.Back()
		if oldest != nil {
			s.lru.Remove(oldest)
			delete(s.cache, oldest.Value.(*cacheEntry).key)
		}
	}
}

func (s *Sandbox) compile(expression string, env map[string]any, opts ...expr.Option) (*vm.Program, error) {
	if program, ok := s.getCached(expression); ok {
		return program, nil
	}
	allOpts := append([]expr.Option{expr.Env(env)}, opts...)
	program, err := expr.Compile(expression, allOpts...)
	if err != nil {
		return nil, classifyCompileErr(err)
	}
	s.putCached(expression, program)
	return program, nil
}

// EvaluateBool compiles and runs expression expecting a bool result — used
// for if/fail_if. Per fail-secure semantics, callers treat a non-nil error
// differently for if (skip the check) vs fail_if (treat as "did not fire").
func (s *Sandbox) EvaluateBool(expression string, ctx Context) (bool, error) {
	if strings.TrimSpace(expression) == "" {
		return true, nil
	}
	result, err := s.Evaluate(expression, ctx)
	if err != nil {
		return false, err
	}
	b, ok := result.(bool)
	if !ok {
		return false, fmt.Errorf("%w: expression must return a bool, got %T", ErrType, result)
	}
	return b, nil
}

// Evaluate compiles and runs expression, returning its raw result — used for
// goto_js, value_js and transform_js, which may produce a string, number,
// map or slice.
func (s *Sandbox) Evaluate(expression string, ctx Context) (any, error) {
	env := ctx.toEnv()
	program, err := s.compile(expression, env)
	if err != nil {
		return nil, err
	}

	type outcome struct {
		value any
		err   error
	}
	done := make(chan outcome, 1)
	go func() {
		v, err := expr.Run(program, env)
		done <- outcome{v, err}
	}()

	timer := time.NewTimer(s.timeout)
	defer timer.Stop()
	select {
	case o := <-done:
		if o.err != nil {
			return nil, classifyRunErr(o.err)
		}
		return o.value, nil
	case <-timer.C:
		return nil, fmt.Errorf("%w: %q exceeded %s", ErrTimeout, expression, s.timeout)
	}
}

// EvaluateWithContext is Evaluate but cancellable by ctx, for callers that
// want the run's own deadline/cancellation to cut evaluation short too.
func (s *Sandbox) EvaluateWithContext(ctx context.Context, expression string, sctx Context) (any, error) {
	type outcome struct {
		value any
		err   error
	}
	done := make(chan outcome, 1)
	go func() {
		v, err := s.Evaluate(expression, sctx)
		done <- outcome{v, err}
	}()
	select {
	case o := <-done:
		return o.value, o.err
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %v", ErrTimeout, ctx.Err())
	}
}

func classifyCompileErr(err error) error {
	msg := err.Error()
	if strings.Contains(msg, "unknown name") || strings.Contains(msg, "unknown field") || strings.Contains(msg, "undefined") {
		return fmt.Errorf("%w: %v", ErrReference, err)
	}
	return fmt.Errorf("%w: %v", ErrSyntax, err)
}

func classifyRunErr(err error) error {
	msg := err.Error()
	if strings.Contains(msg, "unknown") || strings.Contains(msg, "undefined") {
		return fmt.Errorf("%w: %v", ErrReference, err)
	}
	if strings.Contains(msg, "cannot") || strings.Contains(msg, "invalid operation") {
		return fmt.Errorf("%w: %v", ErrType, err)
	}
	return err
}
