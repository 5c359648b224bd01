// Package models defines the public data types shared across the checkflow
// execution engine: checks, scopes, journal entries and the issues/results
// providers produce.
package models

import "errors"

// Error taxonomy for the execution core. These are sentinel kinds, not
// concrete error types — callers match with errors.Is.
var (
	// ErrConfigInvalid covers invalid check schema, unresolved extends, or an
	// unknown provider type.
	ErrConfigInvalid = errors.New("config invalid")

	// ErrProviderNotFound is returned by the registry when no provider is
	// registered for a check's type.
	ErrProviderNotFound = errors.New("provider not found")

	// ErrSandboxTimeout is returned when an expression exceeds its wall-clock
	// or instruction budget.
	ErrSandboxTimeout = errors.New("sandbox evaluation timeout")

	// ErrSandboxSyntax covers expression parse failures.
	ErrSandboxSyntax = errors.New("sandbox syntax error")

	// ErrSandboxReference covers unknown identifiers referenced by an
	// expression.
	ErrSandboxReference = errors.New("sandbox reference error")

	// ErrSandboxType covers type mismatches surfaced during evaluation.
	ErrSandboxType = errors.New("sandbox type error")

	// ErrTemplatePath is returned when a template file reference escapes the
	// project root or uses a disallowed path shape.
	ErrTemplatePath = errors.New("template path rejected")

	// ErrCyclicDependency is returned by the wave planner when no runnable
	// level can be formed from the remaining checks.
	ErrCyclicDependency = errors.New("cyclic dependency detected")

	// ErrLoopBudgetExceeded is returned by the routing engine when a goto
	// chain exceeds config.routing.max_loops.
	ErrLoopBudgetExceeded = errors.New("routing loop budget exceeded")

	// ErrRunCancelled marks a run that was cancelled via its context.
	ErrRunCancelled = errors.New("run cancelled")
)
