// Package events defines the notifications raised by the artifact engine and
// a synchronous fan-out for listeners that live outside the owning object
// (UI prompts, popups, point calculators, scanner displays).
package events

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/vk/xenoarch/internal/ctxlog"
	"github.com/vk/xenoarch/internal/graph"
)

// Type classifies events for filtering and routing.
type Type string

const (
	NodeEntered Type = "node_entered"
	Activated   Type = "activated"
	NodeRemoved Type = "node_removed"
)

// Event is a single notification. Fields that do not apply to a Type are
// left at their zero value.
type Event struct {
	Type  Type
	Owner uuid.UUID
	Node  graph.NodeID
	// Seed is the owner's flavour seed, set on NodeEntered.
	Seed int
	// Activator is the object that caused an activation, or uuid.Nil.
	Activator uuid.UUID
	// Neighbours holds the former neighbours of a removed node.
	Neighbours []graph.NodeID
}

// Listener receives events. Delivery is synchronous and in subscription order.
type Listener interface {
	OnEvent(ctx context.Context, e Event)
}

// ListenerFunc adapts a plain function to the Listener interface.
type ListenerFunc func(ctx context.Context, e Event)

func (f ListenerFunc) OnEvent(ctx context.Context, e Event) { f(ctx, e) }

// Bus fans events out to its subscribers. The zero value is ready to use and
// it is safe for concurrent use.
type Bus struct {
	mu        sync.RWMutex
	listeners []Listener
}

// NewBus returns a bus with the given initial subscribers.
func NewBus(listeners ...Listener) *Bus {
	return &Bus{listeners: listeners}
}

// Subscribe adds a listener.
func (b *Bus) Subscribe(l Listener) {
	if l == nil {
		return
	}
	b.mu.Lock()
	b.listeners = append(b.listeners, l)
	b.mu.Unlock()
}

// OnEvent lets a Bus be nested inside another Bus.
func (b *Bus) OnEvent(ctx context.Context, e Event) {
	b.mu.RLock()
	listeners := b.listeners
	b.mu.RUnlock()
	for _, l := range listeners {
		l.OnEvent(ctx, e)
	}
}

// Emit delivers e to a possibly-nil bus.
func Emit(ctx context.Context, b *Bus, e Event) {
	if b != nil {
		b.OnEvent(ctx, e)
	}
}

// LogListener writes events as structured log lines at debug level.
type LogListener struct{}

func (LogListener) OnEvent(ctx context.Context, e Event) {
	attrs := []slog.Attr{
		slog.String("event", string(e.Type)),
		slog.String("owner", e.Owner.String()),
	}
	if e.Node != "" {
		attrs = append(attrs, slog.String("node", string(e.Node)))
	}
	if e.Activator != uuid.Nil {
		attrs = append(attrs, slog.String("activator", e.Activator.String()))
	}
	if e.Type == NodeEntered {
		attrs = append(attrs, slog.Int("seed", e.Seed))
	}
	ctxlog.FromContext(ctx).LogAttrs(ctx, slog.LevelDebug, "Artifact event.", attrs...)
}

// Recorder accumulates events in memory. Safe for concurrent use.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) OnEvent(_ context.Context, e Event) {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
}

// Events returns a copy of all recorded events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// OfType returns only events matching the given type.
func (r *Recorder) OfType(t Type) []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Event
	for _, e := range r.events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

// Reset clears recorded events.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.events = nil
	r.mu.Unlock()
}

// MultiListener fans out to a fixed list of listeners.
type MultiListener []Listener

func (m MultiListener) OnEvent(ctx context.Context, e Event) {
	for _, l := range m {
		if l != nil {
			l.OnEvent(ctx, e)
		}
	}
}
