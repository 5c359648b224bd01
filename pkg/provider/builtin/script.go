package builtin

import (
	"context"
	"fmt"

	"github.com/smilemakc/checkflow/pkg/models"
	"github.com/smilemakc/checkflow/pkg/provider"
	"github.com/smilemakc/checkflow/pkg/sandbox"
)

// ScriptProvider evaluates an expression through the same sandbox as
// if/fail_if/goto_js and returns its result as the check's output.
//
// Grounded on the expression-script provider contract, reusing pkg/sandbox
// directly rather than a separate evaluator.
type ScriptProvider struct {
	base
	sandbox *sandbox.Sandbox
}

// NewScriptProvider wires the script provider to the shared sandbox.
func NewScriptProvider(sb *sandbox.Sandbox) *ScriptProvider {
	return &ScriptProvider{base: newBase("script"), sandbox: sb}
}

func (p *ScriptProvider) Name() string          { return "script" }
func (p *ScriptProvider) Description() string   { return "evaluates an expression and returns its result" }
func (p *ScriptProvider) IsAvailable() bool     { return true }
func (p *ScriptProvider) Requirements() []string { return nil }
func (p *ScriptProvider) SupportedKeys() []string { return []string{"expression"} }

func (p *ScriptProvider) ValidateConfig(config map[string]any) error {
	if _, err := p.requireString(config, "expression"); err != nil {
		return fmt.Errorf("%w: %v", models.ErrConfigInvalid, err)
	}
	return nil
}

func (p *ScriptProvider) Execute(ctx context.Context, in provider.Input) (models.ReviewSummary, error) {
	expr, _ := in.Config["expression"].(string)
	sctx := bindingsToSandboxContext(in.Bindings)

	v, err := p.sandbox.EvaluateWithContext(ctx, expr, sctx)
	if err != nil {
		return models.ReviewSummary{Issues: []models.Issue{{
			Severity: models.SeverityError,
			Message:  fmt.Sprintf("script: %v", err),
		}}}, nil
	}
	return models.ReviewSummary{Output: v}, nil
}
