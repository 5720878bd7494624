package artifact

import (
	"context"
	"fmt"
	"time"

	"github.com/vk/xenoarch/internal/capability"
	"github.com/vk/xenoarch/internal/config"
	"github.com/vk/xenoarch/internal/ctxlog"
	"github.com/vk/xenoarch/internal/events"
	"github.com/vk/xenoarch/internal/generator"
	"github.com/vk/xenoarch/internal/graph"
	"github.com/vk/xenoarch/internal/random"
	"github.com/vk/xenoarch/internal/registry"
)

const DefaultCooldown = 5 * time.Second

// Options configures a new Artifact. Registry is required.
type Options struct {
	Registry  *registry.Registry
	Generator *generator.Generator
	Random    random.Source
	Clock     Clock
	Bus       *events.Bus
	Cooldown  time.Duration
	Points    Points
}

// Artifact is the artifact state of one owning object.
type Artifact struct {
	Owner *capability.Owner
	Tree  *graph.Tree
	// CurrentNode is empty while between nodes.
	CurrentNode    graph.NodeID
	LastActivation time.Time
	Cooldown       time.Duration
	// RandomSeed is derived from the owner's identity and is used only for
	// cosmetic choices.
	RandomSeed int
	// Suppressed blocks activation regardless of cooldown.
	Suppressed     bool
	ConsumedPoints int
	Points         Points

	// attached lists the capability names the current node newly added.
	attached []string

	registry  *registry.Registry
	generator *generator.Generator
	rng       random.Source
	clock     Clock
	bus       *events.Bus
}

// New creates an artifact for owner with an empty tree. Call Generate or
// SetTree before use.
func New(owner *capability.Owner, opts Options) (*Artifact, error) {
	if opts.Registry == nil {
		return nil, fmt.Errorf("artifact requires a capability registry")
	}
	if owner == nil {
		owner = capability.NewOwner()
	}
	a := &Artifact{
		Owner:      owner,
		Tree:       graph.New(),
		Cooldown:   opts.Cooldown,
		RandomSeed: random.SeedFor(owner.ID),
		Points:     opts.Points,
		registry:   opts.Registry,
		generator:  opts.Generator,
		rng:        opts.Random,
		clock:      opts.Clock,
		bus:        opts.Bus,
	}
	if a.Cooldown == 0 {
		a.Cooldown = DefaultCooldown
	}
	if a.Points == (Points{}) {
		a.Points = DefaultPoints()
	}
	if a.clock == nil {
		a.clock = wallClock{}
	}
	if a.rng == nil {
		rng, err := random.New()
		if err != nil {
			return nil, err
		}
		a.rng = rng
	}
	if a.generator == nil {
		gen, err := generator.New(generator.Options{Catalog: a.registry.Catalog, Random: a.rng})
		if err != nil {
			return nil, err
		}
		a.generator = gen
	}
	return a, nil
}

// Catalog is the descriptor catalog the artifact resolves node bundles from.
func (a *Artifact) Catalog() *config.Catalog {
	return a.registry.Catalog
}

// Generate replaces the tree with a freshly generated one of at most n nodes
// and enters its start node. On error the current tree is kept.
func (a *Artifact) Generate(ctx context.Context, n int) error {
	tree, err := a.generator.Generate(ctx, n)
	if err != nil {
		return err
	}
	return a.SetTree(ctx, tree)
}

// Reroll replaces the tree with one of a random size from the generator's
// configured range.
func (a *Artifact) Reroll(ctx context.Context) error {
	tree, err := a.generator.GenerateRandomSize(ctx)
	if err != nil {
		return err
	}
	return a.SetTree(ctx, tree)
}

// SetTree exits the current node, installs tree and enters its start node.
// Permanent capabilities ratcheted by the old tree stay on the owner.
func (a *Artifact) SetTree(ctx context.Context, tree *graph.Tree) error {
	a.ExitNode(ctx)
	a.Tree = tree
	if tree.Start == "" {
		ctxlog.FromContext(ctx).Debug("Installed tree has no start node.", "owner", a.Owner.ID)
		return nil
	}
	return a.EnterNode(ctx, tree.Start)
}

// Current returns the current node, if any.
func (a *Artifact) Current() (*graph.Node, bool) {
	if a.CurrentNode == "" {
		return nil, false
	}
	return a.Tree.Node(a.CurrentNode)
}

// Attached returns the capability names recorded for the current node.
func (a *Artifact) Attached() []string {
	out := make([]string, len(a.attached))
	copy(out, a.attached)
	return out
}
