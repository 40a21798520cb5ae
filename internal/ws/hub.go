package ws

import (
	"context"
	"sync"
	"time"

	"github.com/coder/websocket"
)

// Hub fans generated dungeon summaries out to every connected watcher
type Hub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*websocket.Conn]struct{})}
}

func (h *Hub) Add(conn *websocket.Conn) {
	h.mu.Lock()
	h.clients[conn] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) Remove(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
}

// Count returns the number of connected watchers
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Broadcast writes message to every watcher, dropping the ones that fail.
// Writes happen outside the lock so a slow watcher only delays itself.
func (h *Hub) Broadcast(message []byte) {
	h.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(h.clients))
	for conn := range h.clients {
		conns = append(conns, conn)
	}
	h.mu.Unlock()

	var failed []*websocket.Conn
	for _, conn := range conns {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		err := conn.Write(ctx, websocket.MessageText, message)
		cancel()
		if err != nil {
			_ = conn.Close(websocket.StatusNormalClosure, "")
			failed = append(failed, conn)
		}
	}

	if len(failed) == 0 {
		return
	}
	h.mu.Lock()
	for _, conn := range failed {
		delete(h.clients, conn)
	}
	h.mu.Unlock()
}
