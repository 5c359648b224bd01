package builtin

import (
	"context"
	"fmt"

	"github.com/smilemakc/checkflow/pkg/memory"
	"github.com/smilemakc/checkflow/pkg/models"
	"github.com/smilemakc/checkflow/pkg/provider"
)

// MemoryProvider is a thin wrapper over pkg/memory.Store, letting a check
// read or mutate the run's namespaced key/value store.
//
// Grounded on the namespaced key-value memory provider contract; the store itself is
// pkg/memory.Store (internal/infrastructure/storage/memory.go).
type MemoryProvider struct {
	base
	store memory.Store
}

// NewMemoryProvider wires the memory provider to the shared store.
func NewMemoryProvider(store memory.Store) *MemoryProvider {
	return &MemoryProvider{base: newBase("memory"), store: store}
}

func (p *MemoryProvider) Name() string        { return "memory" }
func (p *MemoryProvider) Description() string { return "reads or mutates the run's namespaced key/value store" }
func (p *MemoryProvider) IsAvailable() bool      { return true }
func (p *MemoryProvider) Requirements() []string { return nil }

func (p *MemoryProvider) SupportedKeys() []string {
	return []string{"operation", "namespace", "key", "value", "amount"}
}

func (p *MemoryProvider) ValidateConfig(config map[string]any) error {
	op, err := p.requireString(config, "operation")
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrConfigInvalid, err)
	}
	switch op {
	case "get", "has", "set", "append", "increment", "delete", "clear", "list":
	default:
		return fmt.Errorf("%w: memory: unknown operation %q", models.ErrConfigInvalid, op)
	}
	if op != "clear" && op != "list" {
		if _, err := p.requireString(config, "key"); err != nil {
			return fmt.Errorf("%w: %v", models.ErrConfigInvalid, err)
		}
	}
	return nil
}

func (p *MemoryProvider) Execute(ctx context.Context, in provider.Input) (models.ReviewSummary, error) {
	op, _ := in.Config["operation"].(string)
	namespace := p.stringDefault(in.Config, "namespace", "default")
	key, _ := in.Config["key"].(string)

	switch op {
	case "get":
		v, ok, err := p.store.Get(ctx, namespace, key)
		if err != nil {
			return models.ReviewSummary{}, fmt.Errorf("memory: get: %w", err)
		}
		return models.ReviewSummary{Output: map[string]any{"value": v, "found": ok}}, nil

	case "has":
		ok, err := p.store.Has(ctx, namespace, key)
		if err != nil {
			return models.ReviewSummary{}, fmt.Errorf("memory: has: %w", err)
		}
		return models.ReviewSummary{Output: ok}, nil

	case "set":
		if err := p.store.Set(ctx, namespace, key, in.Config["value"]); err != nil {
			return models.ReviewSummary{}, fmt.Errorf("memory: set: %w", err)
		}
		return models.ReviewSummary{Output: in.Config["value"]}, nil

	case "append":
		if err := p.store.Append(ctx, namespace, key, in.Config["value"]); err != nil {
			return models.ReviewSummary{}, fmt.Errorf("memory: append: %w", err)
		}
		return models.ReviewSummary{Output: true}, nil

	case "increment":
		amount := p.floatDefault(in.Config, "amount", 1)
		v, err := p.store.Increment(ctx, namespace, key, amount)
		if err != nil {
			return models.ReviewSummary{}, fmt.Errorf("memory: increment: %w", err)
		}
		return models.ReviewSummary{Output: v}, nil

	case "delete":
		if err := p.store.Delete(ctx, namespace, key); err != nil {
			return models.ReviewSummary{}, fmt.Errorf("memory: delete: %w", err)
		}
		return models.ReviewSummary{Output: true}, nil

	case "clear":
		if err := p.store.Clear(ctx, namespace); err != nil {
			return models.ReviewSummary{}, fmt.Errorf("memory: clear: %w", err)
		}
		return models.ReviewSummary{Output: true}, nil

	case "list":
		m, err := p.store.List(ctx, namespace)
		if err != nil {
			return models.ReviewSummary{}, fmt.Errorf("memory: list: %w", err)
		}
		return models.ReviewSummary{Output: m}, nil

	default:
		return models.ReviewSummary{}, fmt.Errorf("%w: memory: unknown operation %q", models.ErrConfigInvalid, op)
	}
}
