// Package wshub manages the websocket connections of one session: hit
// and control messages in, render/HUD/audio messages out.
package wshub

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/coder/websocket"
	"github.com/rs/zerolog"
)

// ClientMessage is the JSON structure received from clients. Trusted
// mirrors the browser's event.isTrusted on the originating interaction;
// synthetic events arrive with it unset and are ignored by the game.
type ClientMessage struct {
	Type    string `json:"t"`            // "hit", "start", "stop", "mute"
	Slot    int    `json:"s,omitempty"`  // hit
	Trusted bool   `json:"tr,omitempty"` // hit
	On      bool   `json:"on,omitempty"` // mute
}

// ServerMessage is the JSON structure sent to clients. A "phase" message
// with phase "ended" also means every slot is down.
type ServerMessage struct {
	Type      string `json:"t"`             // "slot", "tick", "score", "phase", "cue"
	Slot      int    `json:"s,omitempty"`   // slot
	State     string `json:"st,omitempty"`  // slot
	Remaining int    `json:"r"`             // tick; zero is meaningful
	Score     int    `json:"sc"`            // score; zero is meaningful
	Best      int    `json:"b,omitempty"`   // score
	Phase     string `json:"ph,omitempty"`  // phase
	Cue       string `json:"cue,omitempty"` // cue
}

// Client represents a single websocket connection in the hub.
type Client struct {
	ID   string
	Conn *websocket.Conn
	Send chan []byte
}

// WritePump reads from the Send channel and writes to the websocket
// connection.
func (c *Client) WritePump(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-c.Send:
			if !ok {
				return
			}
			if err := c.Conn.Write(ctx, websocket.MessageText, msg); err != nil {
				return
			}
		}
	}
}

// Hub fans server messages out to every connection of one session (a
// player may have several tabs open).
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
	log     zerolog.Logger
}

func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		clients: make(map[string]*Client),
		log:     log.With().Str("component", "wshub").Logger(),
	}
}

// Register adds a client to the hub.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c.ID] = c
}

// Unregister removes a client and closes its Send channel.
func (h *Hub) Unregister(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if c, ok := h.clients[id]; ok {
		close(c.Send)
		delete(h.clients, id)
	}
}

// Broadcast sends a message to every client. Non-blocking: drops for
// clients whose channel is full.
func (h *Hub) Broadcast(msg ServerMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.log.Error().Err(err).Msg("marshal server message")
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, c := range h.clients {
		select {
		case c.Send <- data:
		default:
			// Drop message if channel full
		}
	}
}

// ClientCount reports how many connections are registered.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close unregisters every client.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, c := range h.clients {
		close(c.Send)
		delete(h.clients, id)
	}
}
