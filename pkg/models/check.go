package models

// FanoutMode controls how a forEach parent's items are consumed by a
// dependent check.
type FanoutMode string

const (
	// FanoutMap runs the dependent once per item, scoped under the parent.
	FanoutMap FanoutMode = "map"
	// FanoutReduce runs the dependent once at the aggregate (parent) scope.
	FanoutReduce FanoutMode = "reduce"
)

// Criticality affects how routing treats retries on logical failure.
type Criticality string

const (
	CriticalityExternal Criticality = "external"
	CriticalityInternal Criticality = "internal"
	CriticalityPolicy   Criticality = "policy"
)

// RetryConfig declares a bounded retry budget for a check's on_fail block.
type RetryConfig struct {
	Max int `json:"max" yaml:"max"`
}

// ActionBlock is the shared shape of on_success/on_fail/on_finish: a list of
// checks to (re)enqueue, plus an optional goto target (literal or computed).
type ActionBlock struct {
	Run     []string     `json:"run,omitempty" yaml:"run,omitempty"`
	Goto    string       `json:"goto,omitempty" yaml:"goto,omitempty"`
	GotoJS  string       `json:"goto_js,omitempty" yaml:"goto_js,omitempty"`
	Retry   *RetryConfig `json:"retry,omitempty" yaml:"retry,omitempty"`
	OnEvent string       `json:"on,omitempty" yaml:"on,omitempty"` // event to attach to a forward run; defaults to the triggering event
}

// FailureCondition is a single structured entry in a check's
// failure_conditions list — evaluated in addition to fail_if.
type FailureCondition struct {
	Name       string `json:"name" yaml:"name"`
	Expression string `json:"expr" yaml:"expr"`
	Severity   string `json:"severity,omitempty" yaml:"severity,omitempty"`
}

// Check is the immutable, per-run configuration for one node in the
// dependency graph. It is never mutated once a run starts; all mutable state
// lives in RunState and the Journal.
type Check struct {
	ID    string `json:"id" yaml:"id"`
	Type  string `json:"type" yaml:"type"` // provider kind: ai, command, http, webhook, script, memory, log, workflow, noop, ...
	Group string `json:"group,omitempty" yaml:"group,omitempty"`

	Schema   string `json:"schema,omitempty" yaml:"schema,omitempty"` // "plain", a named schema, or inline
	Template string `json:"template,omitempty" yaml:"template,omitempty"`

	DependsOn          []string `json:"depends_on,omitempty" yaml:"depends_on,omitempty"` // tokens; "a|b|c" is an OR-group
	On                 []string `json:"on,omitempty" yaml:"on,omitempty"`
	Tags               []string `json:"tags,omitempty" yaml:"tags,omitempty"`
	If                 string   `json:"if,omitempty" yaml:"if,omitempty"`
	FailIf             string   `json:"fail_if,omitempty" yaml:"fail_if,omitempty"`
	FailureConditions  []FailureCondition `json:"failure_conditions,omitempty" yaml:"failure_conditions,omitempty"`
	ForEach            bool     `json:"forEach,omitempty" yaml:"forEach,omitempty"`
	Fanout             FanoutMode `json:"fanout,omitempty" yaml:"fanout,omitempty"`
	ContinueOnFailure  bool     `json:"continue_on_failure,omitempty" yaml:"continue_on_failure,omitempty"`
	Criticality        Criticality `json:"criticality,omitempty" yaml:"criticality,omitempty"`

	OnSuccess *ActionBlock `json:"on_success,omitempty" yaml:"on_success,omitempty"`
	OnFail    *ActionBlock `json:"on_fail,omitempty" yaml:"on_fail,omitempty"`
	OnFinish  *ActionBlock `json:"on_finish,omitempty" yaml:"on_finish,omitempty"`

	// SessionGroup, when set, forces checks sharing the same value to run
	// sequentially relative to each other within a level (see Level Dispatcher).
	SessionGroup string `json:"session,omitempty" yaml:"session,omitempty"`

	// Config carries provider-kind-specific parameters (prompt, exec, url,
	// operation, key, value, value_js, transform, transform_js, env, timeout,
	// message, ...) untyped, validated by the resolved provider.
	Config map[string]any `json:"config,omitempty" yaml:"config,omitempty"`

	// Metadata carries ambient, non-semantic attributes (e.g. priority) used
	// for wave-local tie-breaking; it never affects gating or routing.
	Metadata map[string]any `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// DependsGroups splits DependsOn into OR-groups: a token without "|" is a
// single-option group.
func (c *Check) DependsGroups() [][]string {
	if len(c.DependsOn) == 0 {
		return nil
	}
	groups := make([][]string, 0, len(c.DependsOn))
	for _, token := range c.DependsOn {
		groups = append(groups, splitOrGroup(token))
	}
	return groups
}

func splitOrGroup(token string) []string {
	var out []string
	start := 0
	for i := 0; i < len(token); i++ {
		if token[i] == '|' {
			out = append(out, token[start:i])
			start = i + 1
		}
	}
	out = append(out, token[start:])
	return out
}

// EffectiveFanout resolves the fanout mode: explicit value wins, otherwise a
// heuristic keyed by provider type.
func (c *Check) EffectiveFanout() FanoutMode {
	if c.Fanout == FanoutMap || c.Fanout == FanoutReduce {
		return c.Fanout
	}
	switch c.Type {
	case "log", "memory", "script", "workflow", "noop":
		return FanoutReduce
	default:
		return FanoutMap
	}
}

// Disabled reports whether an explicit empty `on: []` disables this check.
func (c *Check) Disabled() bool {
	return c.On != nil && len(c.On) == 0
}
