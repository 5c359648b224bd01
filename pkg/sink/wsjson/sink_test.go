package wsjson

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"github.com/smilemakc/checkflow/pkg/engine"
)

func TestSinkBroadcastsToConnectedClient(t *testing.T) {
	hub := NewHub()
	var upgrader websocket.Upgrader

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		client := NewClient(conn, hub, "")
		hub.Register(client)
		go client.WritePump()
		client.ReadPump()
	}))
	defer srv.Close()

	wsURL := "ws" + srv.URL[len("http"):]
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	for i := 0; i < 50 && hub.ClientCount() == 0; i++ {
		time.Sleep(10 * time.Millisecond)
	}
	require.Equal(t, 1, hub.ClientCount())

	sink := New(hub)
	sink.Emit(engine.Event{Type: engine.EventRunStarted, SessionID: "s1"})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)

	var got engine.Event
	require.NoError(t, json.Unmarshal(msg, &got))
	require.Equal(t, engine.EventRunStarted, got.Type)
	require.Equal(t, "s1", got.SessionID)
}
