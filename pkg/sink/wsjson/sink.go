package wsjson

import (
	"encoding/json"

	"github.com/smilemakc/checkflow/pkg/engine"
)

// Sink is an engine.EventSink that marshals each event and broadcasts it to
// the hub's connected clients, scoped to the event's session.
type Sink struct {
	hub *Hub
}

// New wraps a hub as an event sink.
func New(hub *Hub) *Sink {
	return &Sink{hub: hub}
}

// Emit marshals e and broadcasts it to clients subscribed to e.SessionID (or
// with no session filter). A marshal failure is swallowed: a sink must
// never block or panic the run.
func (s *Sink) Emit(e engine.Event) {
	data, err := json.Marshal(e)
	if err != nil {
		return
	}
	s.hub.BroadcastToSession(e.SessionID, data)
}
