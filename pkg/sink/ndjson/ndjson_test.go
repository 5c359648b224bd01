package ndjson

import (
	"bufio"
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smilemakc/checkflow/pkg/engine"
)

func TestSinkWritesOneLinePerEvent(t *testing.T) {
	var buf bytes.Buffer
	s := New(&buf)

	s.Emit(engine.Event{Type: engine.EventCheckStarted, CheckID: "a"})
	s.Emit(engine.Event{Type: engine.EventCheckFinished, CheckID: "a", Status: "success"})

	scanner := bufio.NewScanner(&buf)
	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	require.Len(t, lines, 2)

	var first engine.Event
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, "a", first.CheckID)
	assert.Equal(t, engine.EventCheckStarted, first.Type)
}
