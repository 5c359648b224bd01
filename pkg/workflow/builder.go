package workflow

import "github.com/smilemakc/checkflow/pkg/models"

// ConfigBuilder builds a Config fluently, for tests and embedders that would
// rather construct a run in code than write a YAML file.
type ConfigBuilder struct {
	c Config
}

func NewConfigBuilder() *ConfigBuilder { return &ConfigBuilder{} }

func (b *ConfigBuilder) Name(name string) *ConfigBuilder       { b.c.Name = name; return b }
func (b *ConfigBuilder) Version(v string) *ConfigBuilder       { b.c.Version = v; return b }
func (b *ConfigBuilder) Description(d string) *ConfigBuilder   { b.c.Description = d; return b }
func (b *ConfigBuilder) DefaultEvent(ev string) *ConfigBuilder { b.c.DefaultEvent = ev; return b }
func (b *ConfigBuilder) RoutingLoopBudget(n int) *ConfigBuilder {
	b.c.RoutingLoopBudget = n
	return b
}

func (b *ConfigBuilder) AddCheck(c models.Check) *ConfigBuilder {
	b.c.Checks = append(b.c.Checks, c)
	return b
}

func (b *ConfigBuilder) Build() Config { return b.c }

// CheckBuilder builds a single models.Check fluently.
type CheckBuilder struct {
	c models.Check
}

func NewCheckBuilder(id, typ string) *CheckBuilder {
	return &CheckBuilder{c: models.Check{ID: id, Type: typ}}
}

func (b *CheckBuilder) DependsOn(tokens ...string) *CheckBuilder {
	b.c.DependsOn = append(b.c.DependsOn, tokens...)
	return b
}
func (b *CheckBuilder) On(events ...string) *CheckBuilder { b.c.On = append(b.c.On, events...); return b }
func (b *CheckBuilder) If(expr string) *CheckBuilder      { b.c.If = expr; return b }
func (b *CheckBuilder) FailIf(expr string) *CheckBuilder  { b.c.FailIf = expr; return b }
func (b *CheckBuilder) ForEach(enabled bool) *CheckBuilder {
	b.c.ForEach = enabled
	return b
}
func (b *CheckBuilder) Fanout(mode models.FanoutMode) *CheckBuilder { b.c.Fanout = mode; return b }
func (b *CheckBuilder) ContinueOnFailure(v bool) *CheckBuilder {
	b.c.ContinueOnFailure = v
	return b
}
func (b *CheckBuilder) Criticality(c models.Criticality) *CheckBuilder {
	b.c.Criticality = c
	return b
}
func (b *CheckBuilder) OnSuccess(a models.ActionBlock) *CheckBuilder { b.c.OnSuccess = &a; return b }
func (b *CheckBuilder) OnFail(a models.ActionBlock) *CheckBuilder   { b.c.OnFail = &a; return b }
func (b *CheckBuilder) OnFinish(a models.ActionBlock) *CheckBuilder { b.c.OnFinish = &a; return b }
func (b *CheckBuilder) Session(group string) *CheckBuilder          { b.c.SessionGroup = group; return b }
func (b *CheckBuilder) ConfigKV(k string, v any) *CheckBuilder {
	if b.c.Config == nil {
		b.c.Config = map[string]any{}
	}
	b.c.Config[k] = v
	return b
}
func (b *CheckBuilder) Build() models.Check { return b.c }
