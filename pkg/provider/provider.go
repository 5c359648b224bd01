// Package provider defines the contract every check type (ai, command, http,
// webhook, script, memory, log, workflow, noop, ...) implements, and the
// registry checks are dispatched through by type name.
//
// Grounded on Executor/Manager contract
// (backend/pkg/executor/executor.go), generalized from a bare
// Execute/Validate pair to the richer provider-description surface a
// config-driven engine needs: a provider must be able to describe itself
// (supported config keys, external requirements) so the engine can validate
// a check's config before a run ever starts.
package provider

import (
	"context"

	"github.com/smilemakc/checkflow/pkg/models"
)

// Input is everything a provider's Execute needs: the check's resolved
// config (templates already rendered), the scope it's running at, and the
// fixed read-only view it can use to build a sandbox.Context of its own
// (e.g. the "ai" provider renders its prompt through the template renderer
// using the same bindings the engine exposes to fail_if).
type Input struct {
	CheckID  string
	Scope    models.Scope
	Config   map[string]any
	Bindings map[string]any // the same bindings pkg/template/pkg/sandbox would see
}

// Provider is the contract every check type implements.
type Provider interface {
	// Name is the provider's type string, matched against Check.Type.
	Name() string

	// Description is a short, human-facing summary shown by tooling.
	Description() string

	// ValidateConfig checks a check's config map before a run starts.
	ValidateConfig(config map[string]any) error

	// Execute runs the check and returns its result.
	Execute(ctx context.Context, in Input) (models.ReviewSummary, error)

	// SupportedKeys lists the config keys this provider understands, for
	// tooling that flags unknown keys as likely typos.
	SupportedKeys() []string

	// IsAvailable reports whether the provider's external requirements are
	// satisfied in the current environment (e.g. an API key is set).
	IsAvailable() bool

	// Requirements describes what IsAvailable checks, for diagnostics.
	Requirements() []string
}
