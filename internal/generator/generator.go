// Package generator procedurally builds the random connected tree of nodes
// owned by one artifact.
package generator

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/vk/xenoarch/internal/config"
	"github.com/vk/xenoarch/internal/ctxlog"
	"github.com/vk/xenoarch/internal/graph"
	"github.com/vk/xenoarch/internal/random"
)

var ErrInvalidNodeCount = errors.New("target node count must be at least 1")

const (
	DefaultNodesMin = 3
	DefaultNodesMax = 9

	idMin = 100
	idMax = 999
)

// Options configures a Generator.
type Options struct {
	Catalog *config.Catalog
	Random  random.Source
	// NodesMin and NodesMax bound the size drawn by GenerateRandomSize.
	NodesMin int
	NodesMax int
}

// Generator builds trees from a catalog and a structural random source.
type Generator struct {
	catalog  *config.Catalog
	rng      random.Source
	nodesMin int
	nodesMax int
}

// New creates a Generator. A nil catalog yields nodes without descriptors.
func New(opts Options) (*Generator, error) {
	g := &Generator{
		catalog:  opts.Catalog,
		rng:      opts.Random,
		nodesMin: opts.NodesMin,
		nodesMax: opts.NodesMax,
	}
	if g.catalog == nil {
		g.catalog = config.NewCatalog()
	}
	if g.rng == nil {
		rng, err := random.New()
		if err != nil {
			return nil, err
		}
		g.rng = rng
	}
	if g.nodesMin == 0 && g.nodesMax == 0 {
		g.nodesMin, g.nodesMax = DefaultNodesMin, DefaultNodesMax
	}
	if g.nodesMin < 1 || g.nodesMax < g.nodesMin {
		return nil, fmt.Errorf("%w: node range [%d, %d]", ErrInvalidNodeCount, g.nodesMin, g.nodesMax)
	}
	return g, nil
}

// stub is a queued node that has a depth and a parent but no id yet.
type stub struct {
	depth  int
	parent graph.NodeID
}

// Generate builds a tree of at most target nodes. Stubs are finalized from a
// work queue; each one may spawn children while the remaining budget allows,
// so the tree never overshoots target.
func (g *Generator) Generate(ctx context.Context, target int) (*graph.Tree, error) {
	if target < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidNodeCount, target)
	}
	logger := ctxlog.FromContext(ctx)

	triggers := g.catalog.IDs(config.KindTrigger)
	effects := g.catalog.IDs(config.KindEffect)
	if len(triggers) == 0 || len(effects) == 0 {
		logger.Warn("Generating with an incomplete catalog.", "triggers", len(triggers), "effects", len(effects))
	}

	tree := graph.New()
	queue := []stub{{depth: 0}}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		node := graph.NewNode(NewID(g.rng, tree), cur.depth)
		maxEdges := target - tree.Len() - len(queue) - 1
		minEdges := min(maxEdges, 1)
		edgeCount := g.rng.IntRange(minEdges, maxEdges)

		node.Trigger, _ = random.Pick(g.rng, triggers)
		node.Effect, _ = random.Pick(g.rng, effects)

		if _, err := tree.AddNode(node); err != nil {
			return nil, fmt.Errorf("failed to add generated node: %w", err)
		}
		if cur.parent != "" {
			if err := tree.AddEdge(cur.parent, node.ID); err != nil {
				return nil, fmt.Errorf("failed to link generated node: %w", err)
			}
		} else {
			tree.Start = node.ID
		}

		for range edgeCount {
			queue = append(queue, stub{depth: cur.depth + 1, parent: node.ID})
		}
	}

	logger.Debug("Generated artifact tree.", "target", target, "nodes", tree.Len(), "start", tree.Start)
	return tree, nil
}

// GenerateRandomSize draws a size from the configured node range and generates
// a tree of that size.
func (g *Generator) GenerateRandomSize(ctx context.Context) (*graph.Tree, error) {
	return g.Generate(ctx, g.rng.IntRange(g.nodesMin, g.nodesMax))
}

// NewID returns a three-digit id not used in t. Once the three-digit space is
// exhausted the range widens by one digit.
func NewID(src random.Source, t *graph.Tree) graph.NodeID {
	lo, hi := idMin, idMax
	for t.Len() >= hi-lo+1 {
		lo, hi = lo*10, hi*10+9
	}
	for {
		id := graph.NodeID(strconv.Itoa(src.IntRange(lo, hi)))
		if !t.Has(id) {
			return id
		}
	}
}
