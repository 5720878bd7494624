// Package graph holds the value types of an artifact's behaviour graph: the
// Node and the Tree that owns every node generated for one artifact.
//
// A Tree is an arena. Nodes live in a slice and are addressed by a stable
// integer index or by their NodeID; removing a node leaves an empty slot so
// the index of every other node stays valid for callers that keep
// index-based bookkeeping (scanners, analyzers). Edges are undirected: adding
// an edge between A and B records B on A and A on B.
//
// The package has no behaviour beyond keeping those invariants. Generation,
// traversal and surgery live in their own packages.
package graph
