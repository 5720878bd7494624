package events

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/xenoarch/internal/ctxlog"
)

func TestBus_FanOutInOrder(t *testing.T) {
	var order []string
	bus := NewBus(ListenerFunc(func(context.Context, Event) { order = append(order, "first") }))
	bus.Subscribe(ListenerFunc(func(context.Context, Event) { order = append(order, "second") }))
	bus.Subscribe(nil)

	Emit(context.Background(), bus, Event{Type: Activated})

	assert.Equal(t, []string{"first", "second"}, order)
}

func TestEmit_NilBus(t *testing.T) {
	assert.NotPanics(t, func() {
		Emit(context.Background(), nil, Event{Type: NodeRemoved})
	})
}

func TestRecorder(t *testing.T) {
	rec := &Recorder{}
	bus := NewBus(rec)
	ctx := context.Background()

	Emit(ctx, bus, Event{Type: NodeEntered, Node: "100"})
	Emit(ctx, bus, Event{Type: Activated, Node: "100"})
	Emit(ctx, bus, Event{Type: NodeEntered, Node: "200"})

	require.Len(t, rec.Events(), 3)
	entered := rec.OfType(NodeEntered)
	require.Len(t, entered, 2)
	assert.Equal(t, "200", string(entered[1].Node))

	rec.Reset()
	assert.Empty(t, rec.Events())
}

func TestLogListener(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ctx := ctxlog.WithLogger(context.Background(), logger)
	activator := uuid.New()

	LogListener{}.OnEvent(ctx, Event{Type: Activated, Node: "321", Activator: activator})

	out := buf.String()
	assert.Contains(t, out, "event=activated")
	assert.Contains(t, out, "node=321")
	assert.Contains(t, out, "activator="+activator.String())
}

func TestMultiListener(t *testing.T) {
	a, b := &Recorder{}, &Recorder{}
	bus := NewBus(MultiListener{a, nil, b})

	Emit(context.Background(), bus, Event{Type: NodeRemoved, Node: "404"})

	assert.Len(t, a.Events(), 1)
	assert.Len(t, b.Events(), 1)
}
