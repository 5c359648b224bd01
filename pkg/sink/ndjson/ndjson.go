// Package ndjson implements an engine.EventSink that writes one JSON object
// per line to an io.Writer, for piping a run's lifecycle events to a file
// or another process's stdin.
package ndjson

import (
	"encoding/json"
	"io"
	"sync"

	"github.com/smilemakc/checkflow/pkg/engine"
)

// Sink writes every event as a single-line JSON object, synchronized so
// concurrent checks in a wave don't interleave partial writes.
type Sink struct {
	mu sync.Mutex
	w  io.Writer
	enc *json.Encoder
}

// New wraps w as an NDJSON event sink.
func New(w io.Writer) *Sink {
	return &Sink{w: w, enc: json.NewEncoder(w)}
}

// Emit writes e as one JSON line. A marshal or write failure is swallowed:
// per engine.EventSink's contract, a sink must never block or panic the run.
func (s *Sink) Emit(e engine.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_ = s.enc.Encode(e)
}
