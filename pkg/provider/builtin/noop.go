package builtin

import (
	"context"

	"github.com/smilemakc/checkflow/pkg/models"
	"github.com/smilemakc/checkflow/pkg/provider"
)

// NoopProvider does nothing and always succeeds. Used for workflow/noop
// checks that exist purely to anchor routing or forEach fanout.
//
// Grounded on NoOpNotifier (go/pkg/engine/notifier_noop.go).
type NoopProvider struct {
	name string
}

// NewNoopProvider creates a no-op provider registered under typeName
// ("noop" or "workflow").
func NewNoopProvider(typeName string) *NoopProvider {
	return &NoopProvider{name: typeName}
}

func (p *NoopProvider) Name() string          { return p.name }
func (p *NoopProvider) Description() string   { return "does nothing; anchors routing or forEach fanout" }
func (p *NoopProvider) ValidateConfig(map[string]any) error { return nil }
func (p *NoopProvider) IsAvailable() bool      { return true }
func (p *NoopProvider) Requirements() []string { return nil }
func (p *NoopProvider) SupportedKeys() []string { return nil }

func (p *NoopProvider) Execute(ctx context.Context, in provider.Input) (models.ReviewSummary, error) {
	return models.ReviewSummary{}, nil
}
