package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/coder/websocket"

	"dndmap.dev/internal/models"
	"dndmap.dev/internal/ws"
)

// StreamHandler upgrades watchers to a websocket fed by the hub
type StreamHandler struct {
	hub *ws.Hub
}

// NewStreamHandler creates a new StreamHandler
func NewStreamHandler(hub *ws.Hub) *StreamHandler {
	return &StreamHandler{hub: hub}
}

// Stream handles GET /api/stream. The connection stays open until the
// watcher goes away; anything it sends is ignored.
func (h *StreamHandler) Stream(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{InsecureSkipVerify: true})
	if err != nil {
		log.Printf("[Stream] Accept failed: %v", err)
		return
	}
	defer conn.Close(websocket.StatusNormalClosure, "")

	// registered before the hello so a watcher that saw it misses nothing after
	h.hub.Add(conn)
	defer h.hub.Remove(conn)

	hello, _ := json.Marshal(models.StreamEvent{Type: "Connected"})
	if err := conn.Write(r.Context(), websocket.MessageText, hello); err != nil {
		return
	}

	for {
		if _, _, err := conn.Read(r.Context()); err != nil {
			return
		}
	}
}
