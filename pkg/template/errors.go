// Package template resolves the {{ }} placeholders, {{#if}}/{{#each}} blocks
// and pipe filters checks use in their message/prompt/transform fields.
//
// Grounded on template engine
// (backend/internal/application/template/{engine,resolver}.go): same
// regex-driven placeholder replacement and dotted/bracketed path traversal,
// generalized from a fixed env/input two-namespace model to the sandbox's
// full fixed context, and extended with block tags and filters since no
// templating library exists anywhere in the reference corpus for this.
package template

import "errors"

var (
	ErrVariableNotFound = errors.New("template: variable not found")
	ErrInvalidPath      = errors.New("template: invalid path")
	ErrInvalidSyntax    = errors.New("template: invalid syntax")
	ErrArrayOutOfBounds = errors.New("template: array index out of bounds")
	ErrPathRejected     = errors.New("template: file path rejected")
)
