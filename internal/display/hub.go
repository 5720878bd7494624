package display

import (
	"context"
	"log/slog"
	"maps"
	"net/http"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/vk/xenoarch/internal/ctxlog"
	"github.com/vk/xenoarch/internal/scanner"
	"github.com/zishang520/socket.io/v2/socket"
)

// Event names used on the wire.
const (
	EventScannerUpdate = "scanner:update"
	EventScannerState  = "scanner:state"
)

// Emitter broadcasts an event to every connected client.
type Emitter interface {
	Emit(event string, payload any)
}

type serverEmitter struct {
	io *socket.Server
}

func (e serverEmitter) Emit(event string, payload any) {
	e.io.Emit(event, payload)
}

// Hub keeps the last snapshot of every artifact and broadcasts changes. It is
// safe for concurrent use.
type Hub struct {
	mu      sync.RWMutex
	last    map[uuid.UUID]scanner.Update
	emitter Emitter
	handler http.Handler
}

// NewHub creates a hub backed by a socket.io server. New clients receive the
// full state on connect.
func NewHub(ctx context.Context) *Hub {
	logger := ctxlog.FromContext(ctx).With("component", "display")
	io := socket.NewServer(nil, nil)
	h := NewHubWithEmitter(serverEmitter{io: io})
	h.handler = io.ServeHandler(nil)

	io.On("connection", h.onConnection(logger))
	return h
}

// onConnection sends the full state to a newly connected client.
func (h *Hub) onConnection(logger *slog.Logger) func(...any) {
	return func(clients ...any) {
		if len(clients) == 0 {
			logger.Warn("Connection event without a client.")
			return
		}
		client, ok := clients[0].(*socket.Socket)
		if !ok {
			return
		}
		logger.Info("Display client connected.", "sid", client.Id())
		client.Emit(EventScannerState, h.State())
	}
}

// NewHubWithEmitter creates a hub that broadcasts through e.
func NewHubWithEmitter(e Emitter) *Hub {
	return &Hub{
		last:    make(map[uuid.UUID]scanner.Update),
		emitter: e,
	}
}

// Handler serves the socket.io endpoint. It is nil for hubs built with
// NewHubWithEmitter.
func (h *Hub) Handler() http.Handler {
	return h.handler
}

// Publish implements scanner.Publisher.
func (h *Hub) Publish(ctx context.Context, u scanner.Update) error {
	h.mu.Lock()
	h.last[u.Artifact] = u
	h.mu.Unlock()

	ctxlog.FromContext(ctx).Debug("Broadcasting scanner update.", "artifact", u.Artifact, "nodes", u.Nodes)
	h.emitter.Emit(EventScannerUpdate, u)
	return nil
}

// State returns the last update of every artifact, ordered by artifact id.
func (h *Hub) State() []scanner.Update {
	h.mu.RLock()
	defer h.mu.RUnlock()
	ids := slices.SortedFunc(maps.Keys(h.last), func(a, b uuid.UUID) int {
		return slices.Compare(a[:], b[:])
	})
	out := make([]scanner.Update, 0, len(ids))
	for _, id := range ids {
		out = append(out, h.last[id])
	}
	return out
}
