package graph

import (
	"errors"
	"fmt"
)

var (
	ErrNodeNotFound  = errors.New("node not found")
	ErrDuplicateNode = errors.New("node already exists")
	ErrSelfLoop      = errors.New("self-referential edge not allowed")
)

// Tree owns every node generated for one artifact instance.
type Tree struct {
	// Start is the node the artifact enters when it is initialized.
	Start NodeID

	nodes []*Node
	index map[NodeID]int
	live  int
}

// New creates and returns an initialized, empty Tree.
func New() *Tree {
	return &Tree{
		index: make(map[NodeID]int),
	}
}

// AddNode appends n to the arena and returns its index.
func (t *Tree) AddNode(n *Node) (int, error) {
	if n == nil || n.ID == "" {
		return -1, fmt.Errorf("node must have an id")
	}
	if _, ok := t.index[n.ID]; ok {
		return -1, fmt.Errorf("%w: %s", ErrDuplicateNode, n.ID)
	}
	if n.edges == nil {
		n.edges = make(map[NodeID]struct{})
	}
	t.nodes = append(t.nodes, n)
	idx := len(t.nodes) - 1
	t.index[n.ID] = idx
	t.live++
	return idx, nil
}

// AddEdge links a and b in both directions. Adding an existing edge is a no-op.
func (t *Tree) AddEdge(a, b NodeID) error {
	if a == b {
		return fmt.Errorf("%w: %s -> %s", ErrSelfLoop, a, b)
	}
	na, ok := t.Node(a)
	if !ok {
		return fmt.Errorf("%w: source %s", ErrNodeNotFound, a)
	}
	nb, ok := t.Node(b)
	if !ok {
		return fmt.Errorf("%w: destination %s", ErrNodeNotFound, b)
	}
	na.link(b)
	nb.link(a)
	return nil
}

// RemoveEdge unlinks a and b. Missing nodes or edges are ignored.
func (t *Tree) RemoveEdge(a, b NodeID) {
	if na, ok := t.Node(a); ok {
		na.unlink(b)
	}
	if nb, ok := t.Node(b); ok {
		nb.unlink(a)
	}
}

// RemoveNode deletes the node and every edge pointing at it. It returns the
// node's former neighbours in sorted order. The node's arena slot is left
// empty so other indices do not move.
func (t *Tree) RemoveNode(id NodeID) ([]NodeID, error) {
	idx, ok := t.index[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNodeNotFound, id)
	}
	n := t.nodes[idx]
	neighbours := n.Edges()
	for _, other := range neighbours {
		if o, ok := t.Node(other); ok {
			o.unlink(id)
		}
	}
	n.edges = make(map[NodeID]struct{})
	t.nodes[idx] = nil
	delete(t.index, id)
	t.live--
	if t.Start == id {
		t.Start = ""
	}
	return neighbours, nil
}

// Node looks a node up by id.
func (t *Tree) Node(id NodeID) (*Node, bool) {
	idx, ok := t.index[id]
	if !ok {
		return nil, false
	}
	return t.nodes[idx], true
}

// NodeAt returns the node stored in arena slot i, if that slot is occupied.
func (t *Tree) NodeAt(i int) (*Node, bool) {
	if i < 0 || i >= len(t.nodes) || t.nodes[i] == nil {
		return nil, false
	}
	return t.nodes[i], true
}

// IndexOf returns the arena index of id.
func (t *Tree) IndexOf(id NodeID) (int, bool) {
	idx, ok := t.index[id]
	return idx, ok
}

// Has reports whether id is a live node of the tree.
func (t *Tree) Has(id NodeID) bool {
	_, ok := t.index[id]
	return ok
}

// Nodes returns the live nodes in arena order.
func (t *Tree) Nodes() []*Node {
	out := make([]*Node, 0, t.live)
	for _, n := range t.nodes {
		if n != nil {
			out = append(out, n)
		}
	}
	return out
}

// Len is the number of live nodes.
func (t *Tree) Len() int {
	return t.live
}

// Slots is the size of the arena, including empty slots.
func (t *Tree) Slots() int {
	return len(t.nodes)
}

// Neighbors returns the nodes adjacent to id, sorted by id.
func (t *Tree) Neighbors(id NodeID) []*Node {
	n, ok := t.Node(id)
	if !ok {
		return nil
	}
	ids := n.Edges()
	out := make([]*Node, 0, len(ids))
	for _, nid := range ids {
		if other, ok := t.Node(nid); ok {
			out = append(out, other)
		}
	}
	return out
}

// HasEdge reports whether a and b are linked.
func (t *Tree) HasEdge(a, b NodeID) bool {
	n, ok := t.Node(a)
	return ok && n.HasEdge(b)
}

// Reachable returns the set of node ids reachable from the given node,
// including the node itself.
func (t *Tree) Reachable(from NodeID) map[NodeID]struct{} {
	seen := make(map[NodeID]struct{})
	if !t.Has(from) {
		return seen
	}
	queue := []NodeID{from}
	seen[from] = struct{}{}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		n, _ := t.Node(cur)
		for _, next := range n.Edges() {
			if _, ok := seen[next]; ok {
				continue
			}
			seen[next] = struct{}{}
			queue = append(queue, next)
		}
	}
	return seen
}

// Connected reports whether every live node is reachable from the start node.
// An empty tree is connected.
func (t *Tree) Connected() bool {
	if t.live == 0 {
		return true
	}
	return len(t.Reachable(t.Start)) == t.live
}

// Matrix returns the live node ids in arena order and their adjacency matrix.
func (t *Tree) Matrix() ([]NodeID, [][]bool) {
	nodes := t.Nodes()
	ids := make([]NodeID, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID
	}
	m := make([][]bool, len(nodes))
	for i, n := range nodes {
		m[i] = make([]bool, len(nodes))
		for j, other := range ids {
			m[i][j] = n.HasEdge(other)
		}
	}
	return ids, m
}
