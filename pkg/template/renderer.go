package template

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/smilemakc/checkflow/pkg/sandbox"
)

var (
	ifPattern        = regexp.MustCompile(`(?s)\{\{#if\s+([^}]+)\}\}(.*?)(?:\{\{else\}\}(.*?))?\{\{/if\}\}`)
	eachPattern      = regexp.MustCompile(`(?s)\{\{#each\s+([^}]+)\}\}(.*?)\{\{/each\}\}`)
	placeholderPattern = regexp.MustCompile(`\{\{\s*([^{}]+?)\s*\}\}`)
)

// maxBlockPasses bounds nested {{#if}}/{{#each}} resolution so a malformed
// template (unbalanced tags) can't loop forever.
const maxBlockPasses = 50

// Renderer resolves check templates (message/prompt/transform bodies)
// against a fixed binding set. It never returns an error to its caller —
// any resolution failure is logged and the offending placeholder collapses
// to an empty string, matching common non-strict template defaults.
type Renderer struct {
	root    string
	sandbox *sandbox.Sandbox
	log     zerolog.Logger
}

// New creates a Renderer rooted at root (used to bound file-reference and
// readfile lookups) using sb to evaluate {{#if}} conditions.
func New(root string, sb *sandbox.Sandbox, log zerolog.Logger) *Renderer {
	return &Renderer{root: root, sandbox: sb, log: log}
}

// Render resolves content against bindings. If schema is "plain", content is
// returned unchanged — the plain schema shortcut skips templating entirely.
func (r *Renderer) Render(content, schema string, bindings map[string]any) string {
	if schema == "plain" {
		return content
	}
	out := content
	for i := 0; i < maxBlockPasses; i++ {
		next := r.resolveEachOnce(out, bindings)
		next = r.resolveIfOnce(next, bindings)
		if next == out {
			break
		}
		out = next
	}
	return r.resolvePlaceholders(out, bindings)
}

// RenderFile loads a file-referenced template (see IsFileReference) and
// renders it the same way as an inline body.
func (r *Renderer) RenderFile(relPath, schema string, bindings map[string]any) (string, error) {
	body, err := r.loadTemplateFile(relPath)
	if err != nil {
		r.log.Warn().Err(err).Str("path", relPath).Msg("template file rejected")
		return "", err
	}
	return r.Render(body, schema, bindings), nil
}

func (r *Renderer) resolveIfOnce(content string, bindings map[string]any) string {
	return ifPattern.ReplaceAllStringFunc(content, func(match string) string {
		groups := ifPattern.FindStringSubmatch(match)
		cond := strings.TrimSpace(groups[1])
		thenBody := groups[2]
		elseBody := groups[3]

		ok := r.evalCondition(cond, bindings)
		if ok {
			return thenBody
		}
		return elseBody
	})
}

func (r *Renderer) evalCondition(cond string, bindings map[string]any) bool {
	if r.sandbox != nil {
		if v, ok := bindings["output"]; ok {
			if b, err := r.sandbox.EvaluateBool(cond, sandbox.Context{Output: v, Outputs: asMap(bindings["outputs"])}); err == nil {
				return b
			}
		}
	}
	// Fall back to a plain truthiness check of a resolved path, so {{#if
	// someFlag}} works without a full boolean expression.
	v, ok := resolvePath(bindings, cond)
	if !ok {
		return false
	}
	return truthy(v)
}

func (r *Renderer) resolveEachOnce(content string, bindings map[string]any) string {
	return eachPattern.ReplaceAllStringFunc(content, func(match string) string {
		groups := eachPattern.FindStringSubmatch(match)
		path := strings.TrimSpace(groups[1])
		body := groups[2]

		items, ok := resolvePath(bindings, path)
		if !ok {
			return ""
		}
		slice, ok := items.([]any)
		if !ok {
			return ""
		}

		var sb strings.Builder
		for i, item := range slice {
			child := make(map[string]any, len(bindings)+2)
			for k, v := range bindings {
				child[k] = v
			}
			child["this"] = item
			child["@index"] = i
			sb.WriteString(r.resolvePlaceholders(body, child))
		}
		return sb.String()
	})
}

func (r *Renderer) resolvePlaceholders(content string, bindings map[string]any) string {
	return placeholderPattern.ReplaceAllStringFunc(content, func(match string) string {
		inner := match[2 : len(match)-2]
		segments := splitPipe(inner)
		if len(segments) == 0 {
			return ""
		}

		pathExpr := strings.TrimSpace(segments[0])
		value, ok := r.resolveExpr(pathExpr, bindings)
		if !ok {
			r.log.Debug().Str("expr", pathExpr).Msg("template: unresolved placeholder")
			return ""
		}

		for _, seg := range segments[1:] {
			name, args := parseFilterCall(seg)
			fn, ok := filters[name]
			if !ok {
				r.log.Warn().Str("filter", name).Msg("template: unknown filter")
				continue
			}
			out, err := fn(value, args, r)
			if err != nil {
				r.log.Warn().Err(err).Str("filter", name).Msg("template: filter failed")
				return ""
			}
			value = out
		}

		return toDisplayString(value)
	})
}

// resolveExpr resolves "this", "this.field", "@index" and bindings paths.
func (r *Renderer) resolveExpr(expr string, bindings map[string]any) (any, bool) {
	if expr == "this" || strings.HasPrefix(expr, "this.") || strings.HasPrefix(expr, "this[") {
		return resolvePath(bindings, expr)
	}
	if expr == "@index" {
		v, ok := bindings["@index"]
		return v, ok
	}
	return resolvePath(bindings, expr)
}

func splitPipe(s string) []string {
	var out []string
	var cur strings.Builder
	inQuote := false
	for _, r := range s {
		switch {
		case r == '"':
			inQuote = !inQuote
			cur.WriteRune(r)
		case r == '|' && !inQuote:
			out = append(out, cur.String())
			cur.Reset()
		default:
			cur.WriteRune(r)
		}
	}
	out = append(out, cur.String())
	return out
}

func parseFilterCall(seg string) (string, []string) {
	seg = strings.TrimSpace(seg)
	colon := strings.Index(seg, ":")
	if colon < 0 {
		return seg, nil
	}
	name := strings.TrimSpace(seg[:colon])
	rawArgs := seg[colon+1:]
	var args []string
	for _, a := range strings.Split(rawArgs, ",") {
		a = strings.TrimSpace(a)
		if unquoted, err := strconv.Unquote(a); err == nil {
			args = append(args, unquoted)
		} else {
			args = append(args, a)
		}
	}
	return name, args
}

func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case []any:
		return len(x) > 0
	case map[string]any:
		return len(x) > 0
	case int:
		return x != 0
	case float64:
		return x != 0
	default:
		return true
	}
}

func asMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

func toDisplayString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprintf("%v", x)
	}
}
