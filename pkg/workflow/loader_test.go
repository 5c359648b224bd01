package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
name: demo
version: "1"
event: pull_request
checks:
  - id: lint
    type: command
    config:
      exec: "echo ok"
  - id: notify
    type: webhook
    depends_on: ["lint"]
    config:
      url: "https://example.com/hook"
      payload: {}
`

func TestParseValidConfig(t *testing.T) {
	cfg, err := Parse([]byte(sampleYAML))
	require.NoError(t, err)
	assert.Equal(t, "demo", cfg.Name)
	require.Len(t, cfg.Checks, 2)
	assert.Equal(t, "lint", cfg.Checks[0].ID)
	assert.Equal(t, []string{"lint"}, cfg.Checks[1].DependsOn)
}

func TestParseRejectsDuplicateIDs(t *testing.T) {
	_, err := Parse([]byte(`
name: demo
version: "1"
checks:
  - id: a
    type: noop
  - id: a
    type: noop
`))
	require.Error(t, err)
}

func TestParseRejectsMissingType(t *testing.T) {
	_, err := Parse([]byte(`
name: demo
version: "1"
checks:
  - id: a
`))
	require.Error(t, err)
}

func TestParseRejectsNoChecks(t *testing.T) {
	_, err := Parse([]byte(`
name: demo
version: "1"
`))
	require.Error(t, err)
}
