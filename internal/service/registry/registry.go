// Package registry tracks active websocket connections. The gorilla upgrader
// runs every connection on its own goroutine, so all mutations are mutex
// guarded.
package registry

import (
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Registry holds the set of currently open connections.
type Registry struct {
	mu    sync.RWMutex
	conns map[*websocket.Conn]string
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{conns: make(map[*websocket.Conn]string)}
}

// Register adds a connection to the active set and returns the identifier
// assigned to it, used for log correlation.
func (r *Registry) Register(conn *websocket.Conn) string {
	id := uuid.NewString()

	r.mu.Lock()
	r.conns[conn] = id
	r.mu.Unlock()

	return id
}

// Unregister removes a connection if present; unknown connections are a no-op.
func (r *Registry) Unregister(conn *websocket.Conn) {
	r.mu.Lock()
	delete(r.conns, conn)
	r.mu.Unlock()
}

// Contains reports whether the connection is in the active set.
func (r *Registry) Contains(conn *websocket.Conn) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.conns[conn]
	return ok
}

// Count returns the number of active connections.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conns)
}
