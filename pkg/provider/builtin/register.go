package builtin

import (
	"github.com/rs/zerolog"

	"github.com/smilemakc/checkflow/pkg/memory"
	"github.com/smilemakc/checkflow/pkg/provider"
	"github.com/smilemakc/checkflow/pkg/sandbox"
	"github.com/smilemakc/checkflow/pkg/template"
)

// Dependencies bundles the shared collaborators every built-in provider
// needs at construction time.
type Dependencies struct {
	Renderer     *template.Renderer
	Sandbox      *sandbox.Sandbox
	Memory       memory.Store
	Log          zerolog.Logger
	OpenAIAPIKey string
}

// RegisterBuiltins registers every built-in provider with reg.
//
// Grounded on RegisterBuiltins
// (backend/pkg/executor/builtin/register.go): same map-of-name-to-impl
// registration loop.
func RegisterBuiltins(reg *provider.Registry, deps Dependencies) error {
	providers := []provider.Provider{
		NewAIProvider(deps.OpenAIAPIKey),
		NewCommandProvider(deps.Renderer, deps.Sandbox),
		NewHTTPProvider(),
		NewWebhookProvider(),
		NewScriptProvider(deps.Sandbox),
		NewMemoryProvider(deps.Memory),
		NewLogProvider(deps.Renderer, deps.Log),
		NewNoopProvider("noop"),
		NewNoopProvider("workflow"),
	}
	for _, p := range providers {
		if err := reg.Register(p); err != nil {
			return err
		}
	}
	return nil
}
