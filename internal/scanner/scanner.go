// Package scanner snapshots which nodes of an artifact are triggered and
// reports a change to its observers only when the snapshot differs by value.
package scanner

import (
	"context"
	"maps"
	"slices"

	"github.com/google/uuid"
	"github.com/vk/xenoarch/internal/ctxlog"
	"github.com/vk/xenoarch/internal/graph"
)

// Snapshot resolves arena indices to node display ids. Indices that do not
// address a live node are skipped.
func Snapshot(ctx context.Context, tree *graph.Tree, indices []int) map[string]struct{} {
	out := make(map[string]struct{}, len(indices))
	for _, i := range indices {
		n, ok := tree.NodeAt(i)
		if !ok {
			ctxlog.FromContext(ctx).Debug("Scanner skipped empty node slot.", "index", i)
			continue
		}
		out[string(n.ID)] = struct{}{}
	}
	return out
}

// TriggeredIndices returns the arena indices of every triggered node.
func TriggeredIndices(tree *graph.Tree) []int {
	var out []int
	for i := range tree.Slots() {
		if n, ok := tree.NodeAt(i); ok && n.Triggered {
			out = append(out, i)
		}
	}
	return out
}

// Update is what a scanner hands to its publisher on flush.
type Update struct {
	Artifact uuid.UUID `json:"artifact" yaml:"artifact"`
	Nodes    []string  `json:"nodes" yaml:"nodes"`
}

// Publisher receives flushed snapshots, e.g. a display surface.
type Publisher interface {
	Publish(ctx context.Context, u Update) error
}

// Scanner remembers the last snapshot of one artifact.
type Scanner struct {
	artifact  uuid.UUID
	current   map[string]struct{}
	dirty     bool
	publisher Publisher
}

// New returns a scanner for the given artifact. publisher may be nil.
func New(artifact uuid.UUID, publisher Publisher) *Scanner {
	return &Scanner{
		artifact:  artifact,
		current:   make(map[string]struct{}),
		publisher: publisher,
	}
}

// Update takes a new snapshot and replaces the stored one if the sets differ.
// It reports whether the scanner became dirty.
func (s *Scanner) Update(ctx context.Context, tree *graph.Tree, indices []int) bool {
	next := Snapshot(ctx, tree, indices)
	if maps.Equal(next, s.current) {
		return false
	}
	s.current = next
	s.dirty = true
	ctxlog.FromContext(ctx).Debug("Scanner snapshot changed.", "artifact", s.artifact, "nodes", len(next))
	return true
}

// Dirty reports whether the stored snapshot changed since the last flush.
func (s *Scanner) Dirty() bool {
	return s.dirty
}

// Current returns the stored snapshot in sorted order.
func (s *Scanner) Current() []string {
	return slices.Sorted(maps.Keys(s.current))
}

// Flush publishes the stored snapshot if it is dirty and clears the flag. It
// returns the published update and whether anything was published. The flag
// stays set when the publisher fails.
func (s *Scanner) Flush(ctx context.Context) (Update, bool, error) {
	if !s.dirty {
		return Update{}, false, nil
	}
	u := Update{Artifact: s.artifact, Nodes: s.Current()}
	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, u); err != nil {
			return u, false, err
		}
	}
	s.dirty = false
	return u, true, nil
}
