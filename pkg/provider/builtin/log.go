package builtin

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/smilemakc/checkflow/pkg/models"
	"github.com/smilemakc/checkflow/pkg/provider"
	"github.com/smilemakc/checkflow/pkg/template"
)

// LogProvider renders message through the template renderer and emits it as
// a structured log line, useful as the terminal check of a forEach chain
// or a plain diagnostic step.
//
// Grounded on ConsoleLogger
// (internal/infrastructure/monitoring/console_logger.go), generalized from
// a fixed event-type switch to a single rendered message line, and from
// log.Logger to zerolog (the same logging library used elsewhere in this
// backend generation).
type LogProvider struct {
	base
	renderer *template.Renderer
	log      zerolog.Logger
}

// NewLogProvider wires the log provider to the shared renderer and logger.
func NewLogProvider(r *template.Renderer, log zerolog.Logger) *LogProvider {
	return &LogProvider{base: newBase("log"), renderer: r, log: log}
}

func (p *LogProvider) Name() string          { return "log" }
func (p *LogProvider) Description() string   { return "renders and emits a structured log line" }
func (p *LogProvider) IsAvailable() bool     { return true }
func (p *LogProvider) Requirements() []string { return nil }
func (p *LogProvider) SupportedKeys() []string { return []string{"message", "level"} }

func (p *LogProvider) ValidateConfig(config map[string]any) error {
	if _, err := p.requireString(config, "message"); err != nil {
		return fmt.Errorf("%w: %v", models.ErrConfigInvalid, err)
	}
	return nil
}

func (p *LogProvider) Execute(ctx context.Context, in provider.Input) (models.ReviewSummary, error) {
	message, _ := in.Config["message"].(string)
	rendered := p.renderer.Render(message, "plain", in.Bindings)

	level := p.stringDefault(in.Config, "level", "info")
	event := p.log.Info()
	switch level {
	case "debug":
		event = p.log.Debug()
	case "warn":
		event = p.log.Warn()
	case "error":
		event = p.log.Error()
	}
	event.Str("checkId", in.CheckID).Str("scope", in.Scope.String()).Msg(rendered)

	return models.ReviewSummary{Output: rendered, Content: rendered}, nil
}
