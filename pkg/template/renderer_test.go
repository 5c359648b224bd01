package template_test

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/smilemakc/checkflow/pkg/sandbox"
	"github.com/smilemakc/checkflow/pkg/template"
	"github.com/stretchr/testify/assert"
)

func newRenderer(root string) *template.Renderer {
	return template.New(root, sandbox.New(0, 0), zerolog.Nop())
}

func TestRenderSimplePlaceholder(t *testing.T) {
	r := newRenderer(".")
	got := r.Render("hello {{ inputs.author }}", "", map[string]any{
		"inputs": map[string]any{"author": "nora"},
	})
	assert.Equal(t, "hello nora", got)
}

func TestRenderMissingPlaceholderIsEmpty(t *testing.T) {
	r := newRenderer(".")
	got := r.Render("value: {{ missing.path }}", "", map[string]any{})
	assert.Equal(t, "value: ", got)
}

func TestPlainSchemaSkipsRendering(t *testing.T) {
	r := newRenderer(".")
	got := r.Render("literal {{ not.rendered }}", "plain", map[string]any{})
	assert.Equal(t, "literal {{ not.rendered }}", got)
}

func TestRenderFilterChain(t *testing.T) {
	r := newRenderer(".")
	got := r.Render(`{{ inputs.title | safe_label }}`, "", map[string]any{
		"inputs": map[string]any{"title": "Fix Bug #42!"},
	})
	assert.Equal(t, "fix-bug-42", got)
}

func TestRenderSafeLabelList(t *testing.T) {
	r := newRenderer(".")
	got := r.Render(`{{ metadata.tags | safe_label_list }}`, "", map[string]any{
		"metadata": map[string]any{"tags": []any{"Needs Review", "P1"}},
	})
	assert.Equal(t, "needs-review, p1", got)
}

func TestRenderEachBlock(t *testing.T) {
	r := newRenderer(".")
	tmpl := "{{#each outputs.items}}- {{this.name}}\n{{/each}}"
	got := r.Render(tmpl, "", map[string]any{
		"outputs": map[string]any{
			"items": []any{
				map[string]any{"name": "a"},
				map[string]any{"name": "b"},
			},
		},
	})
	assert.Equal(t, "- a\n- b\n", got)
}

func TestRenderIfElseBlock(t *testing.T) {
	r := newRenderer(".")
	tmpl := "{{#if flag}}yes{{else}}no{{/if}}"

	got := r.Render(tmpl, "", map[string]any{"flag": true})
	assert.Equal(t, "yes", got)

	got = r.Render(tmpl, "", map[string]any{"flag": false})
	assert.Equal(t, "no", got)
}

func TestRenderParseJSONFilter(t *testing.T) {
	r := newRenderer(".")
	got := r.Render(`{{ output | parse_json | json }}`, "", map[string]any{
		"output": `{"a":1}`,
	})
	assert.JSONEq(t, `{"a":1}`, got)
}

func TestIsFileReference(t *testing.T) {
	assert.True(t, template.IsFileReference("prompts/review.liquid"))
	assert.False(t, template.IsFileReference("inline text"))
}
