package artifact

import (
	"context"
	"slices"

	"github.com/vk/xenoarch/internal/ctxlog"
	"github.com/vk/xenoarch/internal/events"
	"github.com/vk/xenoarch/internal/graph"
	"github.com/vk/xenoarch/internal/surgery"
)

// Excise removes ids from the artifact's tree. If the current node is removed
// the artifact exits it and enters its first surviving former neighbour, or
// the start node when none survives. A removed start node is replaced by the
// shallowest surviving node.
func (a *Artifact) Excise(ctx context.Context, ids []graph.NodeID, opts ...surgery.Option) []graph.NodeID {
	logger := ctxlog.FromContext(ctx).With("owner", a.Owner.ID)

	var fallback []graph.NodeID
	exited := false
	if cur, ok := a.Current(); ok && slices.Contains(ids, cur.ID) {
		fallback = cur.Edges()
		a.ExitNode(ctx)
		exited = true
	}

	opts = append([]surgery.Option{
		surgery.WithBus(a.bus),
		surgery.WithEventTemplate(events.Event{Owner: a.Owner.ID}),
	}, opts...)
	removed := surgery.RemoveActiveNodes(ctx, a.Tree, ids, opts...)

	if a.Tree.Start == "" {
		a.Tree.Start = shallowest(a.Tree)
		logger.Debug("Reassigned start node.", "start", a.Tree.Start)
	}

	if exited {
		next := a.Tree.Start
		for _, id := range fallback {
			if a.Tree.Has(id) {
				next = id
				break
			}
		}
		if next != "" {
			if err := a.EnterNode(ctx, next); err != nil {
				logger.Warn("Failed to re-enter after excision.", "node", next, "error", err)
			}
		}
	}
	return removed
}

// shallowest returns the live node with the lowest depth, preferring the
// earliest arena slot on ties.
func shallowest(t *graph.Tree) graph.NodeID {
	var best *graph.Node
	for _, n := range t.Nodes() {
		if best == nil || n.Depth < best.Depth {
			best = n
		}
	}
	if best == nil {
		return ""
	}
	return best.ID
}
