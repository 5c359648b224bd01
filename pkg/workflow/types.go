// Package workflow defines the on-disk configuration document a run is
// loaded from: a named, versioned list of checks plus the run-level knobs
// (routing loop budget, default event) that don't belong to any one check.
//
// Adapted from the NodeDef/EdgeDef/Definition document shape: a workflow
// document here is checks-and-routing rather than nodes-and-edges, since
// dependency, gating and routing all live on models.Check itself.
package workflow

import "github.com/smilemakc/checkflow/pkg/models"

// Config is the root of a YAML/JSON workflow document.
type Config struct {
	Name        string `json:"name" yaml:"name"`
	Version     string `json:"version" yaml:"version"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// DefaultEvent is used as RunInputs.Event when the caller doesn't
	// override it (e.g. a CLI invocation with no --event flag).
	DefaultEvent string `json:"event,omitempty" yaml:"event,omitempty"`

	// RoutingLoopBudget bounds goto chains fired by this document's checks;
	// zero means unlimited (see engine.NewRouter).
	RoutingLoopBudget int `json:"routing_loop_budget,omitempty" yaml:"routing_loop_budget,omitempty"`

	Checks []models.Check `json:"checks" yaml:"checks" validate:"required,dive"`
}
