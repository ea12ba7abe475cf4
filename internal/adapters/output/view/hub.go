package view

import (
	"context"
	"encoding/json"
	"log/slog"
	"rgb-controller/internal/ports"
	"sync"

	"github.com/gorilla/websocket"
)

// maxPending bounds the invocations kept while no view is connected.
const maxPending = 64

// Hub is a ViewPort that broadcasts to every connected websocket view.
//
// Variables are remembered and replayed to views that connect later.
// Invocations made while nothing is connected are held for the first view
// that connects.
type Hub struct {
	mu        sync.RWMutex
	clients   map[*client]struct{}
	variables map[string][]byte
	order     []string
	pending   [][]byte
	closed    bool

	logger *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		clients:   make(map[*client]struct{}),
		variables: make(map[string][]byte),
		logger:    logger,
	}
}

var _ ports.ViewPort = (*Hub)(nil)

func (h *Hub) Invoke(function string, data interface{}) {
	frame, err := json.Marshal(invokeFrame(function, data))
	if err != nil {
		h.logger.Error("could not encode invocation", "function", function, "error", err)
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.clients) == 0 {
		if len(h.pending) >= maxPending {
			h.pending = h.pending[1:]
		}
		h.pending = append(h.pending, frame)
		return
	}
	h.broadcast(frame)
}

func (h *Hub) SetVariable(name string, value interface{}) {
	frame, err := json.Marshal(variableFrame(name, value))
	if err != nil {
		h.logger.Error("could not encode variable", "name", name, "error", err)
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.variables[name]; !ok {
		h.order = append(h.order, name)
	}
	h.variables[name] = frame
	h.broadcast(frame)
}

// broadcast must be called with h.mu held.
func (h *Hub) broadcast(frame []byte) {
	for c := range h.clients {
		c.queue(frame)
	}
}

// Serve attaches conn as a view and forwards its requests to dispatcher.
// It blocks until the connection closes.
func (h *Hub) Serve(ctx context.Context, conn *websocket.Conn, dispatcher ports.Dispatcher) {
	c := newClient(h, conn)

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		conn.Close()
		return
	}
	for _, name := range h.order {
		c.queue(h.variables[name])
	}
	for _, frame := range h.pending {
		c.queue(frame)
	}
	h.pending = nil
	h.clients[c] = struct{}{}
	total := len(h.clients)
	h.mu.Unlock()

	c.logger.Info("view connected", "total", total)
	go c.writePump()
	c.readPump(ctx, dispatcher)
}

func (h *Hub) detach(c *client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	total := len(h.clients)
	h.mu.Unlock()
	c.logger.Info("view disconnected", "total", total)
}

// Clients returns the number of connected views.
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close disconnects every view.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
}
