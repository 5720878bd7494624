package admin

import (
	"context"
	"fmt"

	"github.com/vk/xenoarch/internal/artifact"
	"github.com/vk/xenoarch/internal/ctxlog"
	"github.com/vk/xenoarch/internal/generator"
	"github.com/vk/xenoarch/internal/graph"
	"github.com/vk/xenoarch/internal/random"
	"github.com/vk/xenoarch/internal/surgery"
)

// ForceNode moves the artifact to id, attaching that node's capabilities.
func ForceNode(ctx context.Context, a *artifact.Artifact, id graph.NodeID) error {
	ctxlog.FromContext(ctx).Info("Forcing artifact node.", "owner", a.Owner.ID, "node", id)
	return a.EnterNode(ctx, id)
}

// TotalResearch sums the current research value of every node, before the
// completion bonus and consumed points.
func TotalResearch(a *artifact.Artifact) int {
	sum := 0
	for _, n := range a.Tree.Nodes() {
		sum += a.NodeValue(n)
	}
	return sum
}

// UnlockAll marks every node discovered and triggered.
func UnlockAll(a *artifact.Artifact) {
	for _, n := range a.Tree.Nodes() {
		n.Discovered = true
		n.Triggered = true
	}
}

// CreateNode adds a node with the given descriptors to the artifact's tree.
// With an empty attachTo the node is created at depth 0 and left unlinked;
// otherwise it is linked to attachTo one level deeper.
func CreateNode(ctx context.Context, a *artifact.Artifact, src random.Source, trigger, effect string, attachTo graph.NodeID) (graph.NodeID, error) {
	if _, err := a.Catalog().Trigger(trigger); err != nil {
		return "", err
	}
	if _, err := a.Catalog().Effect(effect); err != nil {
		return "", err
	}

	depth := 0
	if attachTo != "" {
		parent, ok := a.Tree.Node(attachTo)
		if !ok {
			return "", fmt.Errorf("%w: %s", graph.ErrNodeNotFound, attachTo)
		}
		depth = parent.Depth + 1
	}

	n := graph.NewNode(generator.NewID(src, a.Tree), depth)
	n.Trigger, n.Effect = trigger, effect
	if _, err := a.Tree.AddNode(n); err != nil {
		return "", err
	}
	if attachTo != "" {
		if err := a.Tree.AddEdge(attachTo, n.ID); err != nil {
			return "", err
		}
	}
	if a.Tree.Start == "" {
		a.Tree.Start = n.ID
	}
	ctxlog.FromContext(ctx).Info("Created artifact node.", "owner", a.Owner.ID, "node", n.ID, "depth", depth)
	return n.ID, nil
}

// AddEdge links two nodes of the artifact's tree.
func AddEdge(a *artifact.Artifact, from, to graph.NodeID) error {
	return a.Tree.AddEdge(from, to)
}

// RemoveNode excises a node, stitching its neighbours.
func RemoveNode(ctx context.Context, a *artifact.Artifact, id graph.NodeID, opts ...surgery.Option) error {
	if !a.Tree.Has(id) {
		return fmt.Errorf("%w: %s", graph.ErrNodeNotFound, id)
	}
	a.Excise(ctx, []graph.NodeID{id}, opts...)
	return nil
}
