package artifact

import (
	"context"
	"fmt"
	"slices"

	"github.com/vk/xenoarch/internal/config"
	"github.com/vk/xenoarch/internal/ctxlog"
	"github.com/vk/xenoarch/internal/events"
	"github.com/vk/xenoarch/internal/graph"
)

// EnterNode makes id the current node. The previous node is exited first,
// then the node's trigger bundle and effect bundle are attached to the owner.
// Individual capability failures are logged and skipped.
func (a *Artifact) EnterNode(ctx context.Context, id graph.NodeID) error {
	node, ok := a.Tree.Node(id)
	if !ok {
		return fmt.Errorf("enter node: %w: %s", graph.ErrNodeNotFound, id)
	}
	a.ExitNode(ctx)

	ctx = ctxlog.With(ctx, "owner", a.Owner.ID, "node", id)
	logger := ctxlog.FromContext(ctx)
	catalog := a.Catalog()

	if node.Trigger != "" {
		if d, err := catalog.Trigger(node.Trigger); err != nil {
			logger.Warn("Skipping trigger bundle.", "error", err)
		} else {
			a.attach(ctx, d.Components, false)
		}
	}
	if node.Effect != "" {
		if d, err := catalog.Effect(node.Effect); err != nil {
			logger.Warn("Skipping effect bundle.", "error", err)
		} else {
			a.attach(ctx, d.Components, false)
			a.attach(ctx, d.Permanent, true)
		}
	}

	a.CurrentNode = id
	node.Discovered = true
	logger.Debug("Entered node.", "attached", a.attached)

	events.Emit(ctx, a.bus, events.Event{
		Type:  events.NodeEntered,
		Owner: a.Owner.ID,
		Node:  id,
		Seed:  a.RandomSeed,
	})
	return nil
}

// attach instantiates and attaches specs. Regular capabilities newly added to
// the owner are recorded for removal on exit; a capability that is already
// present is left alone. A permanent spec that names a capability recorded by
// this node promotes it so exit keeps it.
func (a *Artifact) attach(ctx context.Context, specs []*config.CapabilitySpec, permanent bool) {
	logger := ctxlog.FromContext(ctx)
	for _, spec := range specs {
		if permanent {
			if i := slices.Index(a.attached, spec.Name); i >= 0 {
				a.attached = slices.Delete(a.attached, i, i+1)
				logger.Debug("Promoted capability to permanent.", "capability", spec.Name)
				continue
			}
		}
		if a.Owner.Caps.Has(spec.Name) {
			logger.Debug("Capability already present on owner.", "capability", spec.Name)
			continue
		}
		c, err := a.registry.Instantiate(ctx, spec)
		if err != nil {
			logger.Warn("Failed to instantiate capability.", "capability", spec.Name, "error", err)
			continue
		}
		a.Owner.Caps.Attach(c)
		if !permanent {
			a.attached = append(a.attached, spec.Name)
		}
	}
}

// ExitNode removes every capability recorded when the current node was
// entered and clears the current node. It is a no-op between nodes.
// Permanent capabilities are never removed.
func (a *Artifact) ExitNode(ctx context.Context) {
	if a.CurrentNode == "" {
		return
	}
	logger := ctxlog.FromContext(ctx).With("owner", a.Owner.ID, "node", a.CurrentNode)
	for _, name := range a.attached {
		if !a.Owner.Caps.Detach(name) {
			logger.Warn("Recorded capability was already gone on exit.", "capability", name)
		}
	}
	logger.Debug("Exited node.", "detached", a.attached)
	a.attached = nil
	a.CurrentNode = ""
}
