package builtin

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"time"

	"github.com/itchyny/gojq"

	"github.com/smilemakc/checkflow/pkg/models"
	"github.com/smilemakc/checkflow/pkg/provider"
	"github.com/smilemakc/checkflow/pkg/sandbox"
	"github.com/smilemakc/checkflow/pkg/template"
)

// CommandProvider runs a shell command and tries to parse its stdout as
// JSON, falling back to the raw text, then applies an optional
// template-then-sandbox transform pipeline.
//
// Grounded on TransformExecutor
// (backend/pkg/executor/builtin/transform.go) for the try-parse-JSON /
// template-then-expression pipeline shape; the shell invocation itself is
// ambient stdlib use (os/exec), since no third-party process runner appears
// anywhere in the corpus.
type CommandProvider struct {
	base
	renderer *template.Renderer
	sandbox  *sandbox.Sandbox
}

// NewCommandProvider wires the command provider to the shared renderer and
// sandbox every provider evaluating transform/transform_js uses.
func NewCommandProvider(r *template.Renderer, sb *sandbox.Sandbox) *CommandProvider {
	return &CommandProvider{base: newBase("command"), renderer: r, sandbox: sb}
}

func (p *CommandProvider) Name() string { return "command" }
func (p *CommandProvider) Description() string {
	return "runs a shell command, parses stdout, optionally transforms it"
}
func (p *CommandProvider) IsAvailable() bool      { return true }
func (p *CommandProvider) Requirements() []string { return nil }

func (p *CommandProvider) SupportedKeys() []string {
	return []string{"exec", "timeout_seconds", "env", "transform", "transform_js", "transform_jq"}
}

func (p *CommandProvider) ValidateConfig(config map[string]any) error {
	if _, err := p.requireString(config, "exec"); err != nil {
		return fmt.Errorf("%w: %v", models.ErrConfigInvalid, err)
	}
	return nil
}

func (p *CommandProvider) Execute(ctx context.Context, in provider.Input) (models.ReviewSummary, error) {
	execStr, _ := in.Config["exec"].(string)

	timeout := time.Duration(p.intDefault(in.Config, "timeout_seconds", 30)) * time.Second
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, "sh", "-c", execStr)
	for k, v := range p.stringMap(in.Config, "env") {
		cmd.Env = append(cmd.Env, k+"="+v)
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()
	rawOutput := stdout.String()

	var parsed any
	if err := json.Unmarshal([]byte(rawOutput), &parsed); err != nil {
		parsed = rawOutput
	}

	if transform, ok := in.Config["transform"].(string); ok && transform != "" {
		bindings := cloneBindings(in.Bindings)
		bindings["output"] = parsed
		parsed = p.renderer.Render(transform, "plain", bindings)
	}
	if transformJS, ok := in.Config["transform_js"].(string); ok && transformJS != "" {
		sctx := bindingsToSandboxContext(in.Bindings)
		sctx.Output = rawOutput
		v, err := p.sandbox.Evaluate(transformJS, sctx)
		if err == nil {
			parsed = v
		}
	}
	if jqExpr, ok := in.Config["transform_jq"].(string); ok && jqExpr != "" {
		if v, err := applyJQ(jqExpr, parsed); err == nil {
			parsed = v
		}
	}

	result := models.ReviewSummary{Output: parsed, Content: rawOutput}
	if runErr != nil {
		result.Issues = append(result.Issues, models.Issue{
			Severity: models.SeverityError,
			Message:  fmt.Sprintf("command failed: %v: %s", runErr, truncate(stderr.String(), 500)),
		})
	}
	return result, nil
}

// applyJQ runs a jq filter over parsed command output, for config authors
// who already think in jq rather than the expression sandbox. Returns the
// first emitted value; a filter producing no output is a no-op.
func applyJQ(expr string, input any) (any, error) {
	query, err := gojq.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("parse transform_jq: %w", err)
	}
	iter := query.Run(input)
	v, ok := iter.Next()
	if !ok {
		return input, nil
	}
	if err, ok := v.(error); ok {
		return nil, fmt.Errorf("run transform_jq: %w", err)
	}
	return v, nil
}

func cloneBindings(b map[string]any) map[string]any {
	out := make(map[string]any, len(b)+1)
	for k, v := range b {
		out[k] = v
	}
	return out
}

func bindingsToSandboxContext(b map[string]any) sandbox.Context {
	outputs, _ := b["outputs"].(map[string]any)
	outputsRaw, _ := b["outputs_raw"].(map[string]any)
	mem, _ := b["memory"].(map[string]any)
	env, _ := b["env"].(map[string]string)
	branch, _ := b["branch"].(string)
	baseBranch, _ := b["baseBranch"].(string)
	event, _ := b["event"].(string)
	return sandbox.Context{
		Outputs:    outputs,
		OutputsRaw: outputsRaw,
		Memory:     mem,
		Env:        env,
		Branch:     branch,
		BaseBranch: baseBranch,
		Event:      event,
	}
}
