package surgery

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/xenoarch/internal/events"
	"github.com/vk/xenoarch/internal/graph"
)

// star builds a tree with a hub linked to every leaf.
func star(t *testing.T, hub graph.NodeID, leaves ...graph.NodeID) *graph.Tree {
	t.Helper()
	tree := graph.New()
	_, err := tree.AddNode(graph.NewNode(hub, 0))
	require.NoError(t, err)
	tree.Start = hub
	for _, l := range leaves {
		_, err := tree.AddNode(graph.NewNode(l, 1))
		require.NoError(t, err)
		require.NoError(t, tree.AddEdge(hub, l))
	}
	return tree
}

func assertNoDangling(t *testing.T, tree *graph.Tree, removed ...graph.NodeID) {
	t.Helper()
	for _, n := range tree.Nodes() {
		for _, id := range removed {
			assert.False(t, n.HasEdge(id), "node %s still references removed node %s", n.ID, id)
		}
	}
}

func TestRemoveActiveNodes_PairStitchEven(t *testing.T) {
	tree := star(t, "100", "201", "202", "203", "204")

	removed := RemoveActiveNodes(context.Background(), tree, []graph.NodeID{"100"})

	assert.Equal(t, []graph.NodeID{"100"}, removed)
	assert.False(t, tree.Has("100"))
	assertNoDangling(t, tree, "100")
	assert.True(t, tree.HasEdge("201", "202"))
	assert.True(t, tree.HasEdge("203", "204"))
	assert.False(t, tree.HasEdge("202", "203"))
}

func TestRemoveActiveNodes_PairStitchOddLeavesLastUnlinked(t *testing.T) {
	tree := star(t, "100", "201", "202", "203")

	RemoveActiveNodes(context.Background(), tree, []graph.NodeID{"100"})

	assert.True(t, tree.HasEdge("201", "202"))
	n, ok := tree.Node("203")
	require.True(t, ok)
	assert.Zero(t, n.Degree())
}

func TestRemoveActiveNodes_ChainStitch(t *testing.T) {
	tree := star(t, "100", "201", "202", "203")

	RemoveActiveNodes(context.Background(), tree, []graph.NodeID{"100"}, WithChainStitch())

	assert.True(t, tree.HasEdge("201", "202"))
	assert.True(t, tree.HasEdge("202", "203"))
	tree.Start = "201"
	assert.True(t, tree.Connected())
}

func TestRemoveActiveNodes_SkipsUnknownAndPublishes(t *testing.T) {
	tree := star(t, "100", "201", "202")
	rec := &events.Recorder{}
	bus := events.NewBus(rec)

	removed := RemoveActiveNodes(context.Background(), tree,
		[]graph.NodeID{"999", "201", "201"},
		WithBus(bus),
	)

	assert.Equal(t, []graph.NodeID{"201"}, removed)
	got := rec.OfType(events.NodeRemoved)
	require.Len(t, got, 1)
	assert.Equal(t, graph.NodeID("201"), got[0].Node)
	assert.Equal(t, []graph.NodeID{"100"}, got[0].Neighbours)
	assertNoDangling(t, tree, "201")
}

func TestRemoveActiveNodes_SequentialRemovalKeepsTreeClean(t *testing.T) {
	// 100 - 200 - 300 - 400 as a chain.
	tree := graph.New()
	for i, id := range []graph.NodeID{"100", "200", "300", "400"} {
		_, err := tree.AddNode(graph.NewNode(id, i))
		require.NoError(t, err)
	}
	require.NoError(t, tree.AddEdge("100", "200"))
	require.NoError(t, tree.AddEdge("200", "300"))
	require.NoError(t, tree.AddEdge("300", "400"))
	tree.Start = "100"

	RemoveActiveNodes(context.Background(), tree, []graph.NodeID{"200", "300"})

	assertNoDangling(t, tree, "200", "300")
	assert.True(t, tree.HasEdge("100", "400"))
	assert.True(t, tree.Connected())
	assert.Equal(t, 2, tree.Len())
}

func TestTriggeredNodes(t *testing.T) {
	tree := star(t, "100", "201", "202")
	n, _ := tree.Node("202")
	n.Triggered = true
	n, _ = tree.Node("100")
	n.Triggered = true

	assert.Equal(t, []graph.NodeID{"100", "202"}, TriggeredNodes(tree))
}
