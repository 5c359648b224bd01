// Package wsjson implements an engine.EventSink that broadcasts a run's
// lifecycle events to connected WebSocket clients, for dashboards watching a
// run live.
//
// Grounded on WebSocketObserver/WebSocketHub
// (internal/application/observer/websocket_observer.go): same
// register/unregister/broadcast channel hub shape and per-client buffered
// send channel, generalized from execution-id filtering to session-id
// filtering (this engine's equivalent run identifier) and from an Observer
// interface to the engine.EventSink contract.
package wsjson

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// ServeClient upgrades an HTTP request to a WebSocket connection, registers
// it with hub filtered to sessionID (empty means "every session"), and blocks
// until the connection closes. Intended to be called directly from an
// http.HandlerFunc.
func ServeClient(hub *Hub, w http.ResponseWriter, r *http.Request, sessionID string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	client := NewClient(conn, hub, sessionID)
	hub.Register(client)
	go client.WritePump()
	client.ReadPump()
}

// Hub owns the set of connected clients and fans out broadcast messages.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
}

// NewHub creates a hub and starts its run loop in the background.
func NewHub() *Hub {
	h := &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = true
			h.mu.Unlock()

		case c := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.RLock()
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					close(c.send)
					delete(h.clients, c)
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Register adds a client to the hub.
func (h *Hub) Register(c *Client) { h.register <- c }

// Unregister removes a client from the hub.
func (h *Hub) Unregister(c *Client) { h.unregister <- c }

// BroadcastToSession sends msg to every client with no sessionID filter, or
// whose filter matches sessionID.
func (h *Hub) BroadcastToSession(sessionID string, msg []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		if c.sessionID == "" || c.sessionID == sessionID {
			select {
			case c.send <- msg:
			default:
			}
		}
	}
}

// ClientCount reports how many clients are currently connected.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Client is one connected WebSocket client, optionally filtered to a single
// session's events.
type Client struct {
	conn      *websocket.Conn
	send      chan []byte
	hub       *Hub
	sessionID string
}

// NewClient wraps an upgraded connection as a hub client.
func NewClient(conn *websocket.Conn, hub *Hub, sessionID string) *Client {
	return &Client{conn: conn, send: make(chan []byte, 256), hub: hub, sessionID: sessionID}
}

// WritePump drains the client's send channel to its connection until the hub
// closes it. Callers run this in its own goroutine per client.
func (c *Client) WritePump() {
	defer c.conn.Close()
	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
	c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}

// ReadPump discards inbound client messages (dashboards are read-only
// consumers) until the connection closes, then unregisters the client.
func (c *Client) ReadPump() {
	defer c.hub.Unregister(c)
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
