// Package surgery removes nodes from a live tree and re-links their former
// neighbours so the remaining nodes stay as connected as the stitch mode
// allows.
package surgery

import (
	"context"
	"errors"

	"github.com/vk/xenoarch/internal/ctxlog"
	"github.com/vk/xenoarch/internal/events"
	"github.com/vk/xenoarch/internal/graph"
)

// Stitch selects how the former neighbours of a removed node are re-linked.
type Stitch int

const (
	// StitchPairs links (p0,p1), (p2,p3), ... An odd neighbour count leaves the
	// last neighbour unlinked.
	StitchPairs Stitch = iota
	// StitchChain links every consecutive pair, keeping all former neighbours
	// connected.
	StitchChain
)

type options struct {
	stitch   Stitch
	bus      *events.Bus
	template events.Event
}

// Option configures RemoveActiveNodes.
type Option func(*options)

// WithChainStitch links every consecutive pair of former neighbours.
func WithChainStitch() Option {
	return func(o *options) { o.stitch = StitchChain }
}

// WithStitch selects the stitch mode explicitly.
func WithStitch(s Stitch) Option {
	return func(o *options) { o.stitch = s }
}

// WithBus publishes a NodeRemoved event per removed node.
func WithBus(bus *events.Bus) Option {
	return func(o *options) { o.bus = bus }
}

// WithEventTemplate sets fields copied into every published event, such as
// the owner of the tree.
func WithEventTemplate(e events.Event) Option {
	return func(o *options) { o.template = e }
}

// RemoveActiveNodes excises every listed node from tree, stitching its former
// neighbours together. Ids that are not in the tree are skipped. It returns
// the ids that were removed, in input order.
func RemoveActiveNodes(ctx context.Context, tree *graph.Tree, ids []graph.NodeID, opts ...Option) []graph.NodeID {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	logger := ctxlog.FromContext(ctx)

	var removed []graph.NodeID
	for _, id := range ids {
		neighbours, err := tree.RemoveNode(id)
		if err != nil {
			if errors.Is(err, graph.ErrNodeNotFound) {
				logger.Debug("Skipping node not in tree.", "node", id)
				continue
			}
			logger.Warn("Failed to remove node.", "node", id, "error", err)
			continue
		}
		stitched := stitch(tree, neighbours, o.stitch)
		logger.Debug("Removed node.", "node", id, "neighbours", neighbours, "stitched", stitched)
		removed = append(removed, id)

		e := o.template
		e.Type = events.NodeRemoved
		e.Node = id
		e.Neighbours = neighbours
		events.Emit(ctx, o.bus, e)
	}
	return removed
}

// stitch links the former neighbours of a removed node and returns the
// number of edges added.
func stitch(tree *graph.Tree, p []graph.NodeID, mode Stitch) int {
	step := 2
	if mode == StitchChain {
		step = 1
	}
	added := 0
	for i := 0; i+1 < len(p); i += step {
		if tree.HasEdge(p[i], p[i+1]) {
			continue
		}
		if err := tree.AddEdge(p[i], p[i+1]); err == nil {
			added++
		}
	}
	return added
}

// TriggeredNodes returns the ids of every triggered node, in arena order.
func TriggeredNodes(tree *graph.Tree) []graph.NodeID {
	var out []graph.NodeID
	for _, n := range tree.Nodes() {
		if n.Triggered {
			out = append(out, n.ID)
		}
	}
	return out
}
