package graph

import (
	"maps"
	"slices"
)

// NodeID identifies a node within its tree. Ids are only unique per tree.
type NodeID string

// Node is a vertex of an artifact's behaviour graph.
type Node struct {
	ID NodeID
	// Depth is the distance from the start node at generation time. It is a
	// weighting hint and is not maintained after surgery.
	Depth int
	// Trigger names the trigger descriptor attached while this node is current.
	Trigger string
	// Effect names the effect descriptor fired when this node activates.
	Effect string
	// Discovered is set the first time the node becomes current.
	Discovered bool
	// Triggered is set once the node has been activated.
	Triggered bool

	edges map[NodeID]struct{}
}

// NewNode returns a node with an empty neighbour set.
func NewNode(id NodeID, depth int) *Node {
	return &Node{
		ID:    id,
		Depth: depth,
		edges: make(map[NodeID]struct{}),
	}
}

// Edges returns the ids of the node's neighbours in sorted order.
func (n *Node) Edges() []NodeID {
	return slices.Sorted(maps.Keys(n.edges))
}

// Degree is the number of neighbours.
func (n *Node) Degree() int {
	return len(n.edges)
}

// HasEdge reports whether id is a neighbour of n.
func (n *Node) HasEdge(id NodeID) bool {
	_, ok := n.edges[id]
	return ok
}

func (n *Node) link(id NodeID) {
	if n.edges == nil {
		n.edges = make(map[NodeID]struct{})
	}
	n.edges[id] = struct{}{}
}

func (n *Node) unlink(id NodeID) {
	delete(n.edges, id)
}
