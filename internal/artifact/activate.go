package artifact

import (
	"context"

	"github.com/google/uuid"
	"github.com/vk/xenoarch/internal/capability"
	"github.com/vk/xenoarch/internal/ctxlog"
	"github.com/vk/xenoarch/internal/events"
	"github.com/vk/xenoarch/internal/random"
)

// TryActivate activates the artifact unless it is suppressed, still cooling
// down, or between nodes. It reports whether activation happened.
func (a *Artifact) TryActivate(ctx context.Context, activator uuid.UUID) bool {
	logger := ctxlog.FromContext(ctx)
	if a.Suppressed {
		logger.Debug("Activation blocked: artifact is suppressed.", "owner", a.Owner.ID)
		return false
	}
	if !a.LastActivation.IsZero() && a.clock.Now().Sub(a.LastActivation) < a.Cooldown {
		logger.Debug("Activation blocked: cooldown.", "owner", a.Owner.ID)
		return false
	}
	if _, ok := a.Current(); !ok {
		logger.Debug("Activation ignored: no current node.", "owner", a.Owner.ID)
		return false
	}
	a.ForceActivate(ctx, activator)
	return true
}

// ForceActivate activates the current node regardless of suppression and
// cooldown. Attached capabilities are notified first, then the node is marked
// triggered and the artifact moves to a uniformly chosen neighbour. A node
// without neighbours keeps the artifact where it is.
func (a *Artifact) ForceActivate(ctx context.Context, activator uuid.UUID) {
	node, ok := a.Current()
	if !ok {
		ctxlog.FromContext(ctx).Debug("Activation ignored: no current node.", "owner", a.Owner.ID)
		return
	}
	a.LastActivation = a.clock.Now()

	act := capability.Activation{Owner: a.Owner.ID, Activator: activator, Node: node.ID}
	for _, c := range a.Owner.Caps.All() {
		if l, ok := c.(capability.ActivationListener); ok {
			l.OnActivated(ctx, act)
		}
	}
	events.Emit(ctx, a.bus, events.Event{
		Type:      events.Activated,
		Owner:     a.Owner.ID,
		Node:      node.ID,
		Activator: activator,
	})

	node.Triggered = true

	next, ok := random.Pick(a.rng, node.Edges())
	if !ok {
		ctxlog.FromContext(ctx).Debug("Activated terminal node.", "owner", a.Owner.ID, "node", node.ID)
		return
	}
	if err := a.EnterNode(ctx, next); err != nil {
		ctxlog.FromContext(ctx).Warn("Failed to move to neighbour.", "owner", a.Owner.ID, "error", err)
	}
}

// Interact offers a stimulus to every attached trigger. If any trigger accepts
// it, the artifact attempts to activate. It reports whether activation happened.
func (a *Artifact) Interact(ctx context.Context, s capability.Stimulus) bool {
	accepted := false
	for _, c := range a.Owner.Caps.All() {
		if h, ok := c.(capability.StimulusHandler); ok && h.HandleStimulus(ctx, s) {
			accepted = true
		}
	}
	if !accepted {
		return false
	}
	return a.TryActivate(ctx, s.Activator)
}
