package artifact

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/xenoarch/internal/capability"
	"github.com/vk/xenoarch/internal/events"
	"github.com/vk/xenoarch/internal/graph"
	"github.com/vk/xenoarch/internal/random"
	"github.com/vk/xenoarch/internal/registry"
	"github.com/vk/xenoarch/internal/testutil"
)

const testCatalog = `
trigger "TriggerTouch" {
  target_depth = 0
  component "TouchProbe" {}
}

trigger "TriggerGas" {
  target_depth = 2
  component "GasProbe" {}
}

effect "EffectFlicker" {
  target_depth = 1
  component "FlickerProbe" {}
  permanent_component "GlowProbe" {}
}

effect "EffectPulse" {
  target_depth = 3
  component "PulseProbe" {}
  component "FlickerProbe" {}
}

effect "EffectRatchet" {
  component "AnchorProbe" {}
  permanent_component "AnchorProbe" {}
}
`

type fixture struct {
	ctx    context.Context
	logs   *testutil.SafeBuffer
	art    *Artifact
	probes *testutil.ProbeModule
	clock  *testutil.FakeClock
	events *events.Recorder
}

func newFixture(t *testing.T, tree *graph.Tree) *fixture {
	t.Helper()
	ctx, logs := testutil.LogContext(t)
	probes := testutil.NewProbeModule("TouchProbe", "GasProbe", "FlickerProbe", "GlowProbe", "PulseProbe", "AnchorProbe")
	probes.Accepts["TouchProbe"] = capability.StimulusTouch
	probes.Accepts["GasProbe"] = capability.StimulusGas
	reg := testutil.Registry(t, testCatalog, probes)

	clock := testutil.NewFakeClock()
	rec := &events.Recorder{}
	art, err := New(capability.NewOwner(), Options{
		Registry: reg,
		Random:   random.NewSeeded(1),
		Clock:    clock,
		Bus:      events.NewBus(rec),
	})
	require.NoError(t, err)
	if tree != nil {
		require.NoError(t, art.SetTree(ctx, tree))
	}
	return &fixture{ctx: ctx, logs: logs, art: art, probes: probes, clock: clock, events: rec}
}

type spec struct {
	id      graph.NodeID
	depth   int
	trigger string
	effect  string
}

func buildTree(t *testing.T, nodes []spec, edges ...[2]graph.NodeID) *graph.Tree {
	t.Helper()
	tree := graph.New()
	for _, s := range nodes {
		n := graph.NewNode(s.id, s.depth)
		n.Trigger, n.Effect = s.trigger, s.effect
		_, err := tree.AddNode(n)
		require.NoError(t, err)
	}
	for _, e := range edges {
		require.NoError(t, tree.AddEdge(e[0], e[1]))
	}
	tree.Start = nodes[0].id
	return tree
}

// fork is 100 linked to 200 and 300; 300 is linked to the terminal 400.
func fork(t *testing.T) *graph.Tree {
	return buildTree(t, []spec{
		{"100", 0, "TriggerTouch", "EffectFlicker"},
		{"200", 1, "TriggerGas", "EffectPulse"},
		{"300", 1, "TriggerTouch", "EffectPulse"},
		{"400", 2, "TriggerGas", "EffectRatchet"},
	}, [2]graph.NodeID{"100", "200"}, [2]graph.NodeID{"100", "300"}, [2]graph.NodeID{"300", "400"})
}

func TestNew_RequiresRegistry(t *testing.T) {
	_, err := New(nil, Options{})
	require.Error(t, err)
}

func TestNew_Defaults(t *testing.T) {
	a, err := New(nil, Options{Registry: registry.New()})
	require.NoError(t, err)
	assert.Equal(t, DefaultCooldown, a.Cooldown)
	assert.Equal(t, DefaultPoints(), a.Points)
	assert.Equal(t, random.SeedFor(a.Owner.ID), a.RandomSeed)
	assert.Empty(t, a.CurrentNode)
}

func TestSetTree_EntersStart(t *testing.T) {
	f := newFixture(t, fork(t))

	assert.Equal(t, graph.NodeID("100"), f.art.CurrentNode)
	assert.Equal(t, []string{"FlickerProbe", "GlowProbe", "TouchProbe"}, f.art.Owner.Caps.Names())
	assert.Equal(t, []string{"TouchProbe", "FlickerProbe"}, f.art.Attached())

	start, _ := f.art.Tree.Node("100")
	assert.True(t, start.Discovered)

	entered := f.events.OfType(events.NodeEntered)
	require.Len(t, entered, 1)
	assert.Equal(t, f.art.Owner.ID, entered[0].Owner)
	assert.Equal(t, f.art.RandomSeed, entered[0].Seed)
}

func TestEnterExit_RoundTrip(t *testing.T) {
	f := newFixture(t, fork(t))
	f.art.ExitNode(f.ctx)
	// GlowProbe was ratcheted by the start node; PulseProbe is pre-existing.
	f.art.Owner.Caps.Attach(&testutil.Probe{CapName: "PulseProbe", Log: f.probes.Log})
	before := f.art.Owner.Caps.Names()

	require.NoError(t, f.art.EnterNode(f.ctx, "200"))
	assert.Equal(t, []string{"GasProbe", "FlickerProbe"}, f.art.Attached(), "PulseProbe was not newly added")
	f.art.ExitNode(f.ctx)

	assert.Equal(t, before, f.art.Owner.Caps.Names())
	assert.Empty(t, f.art.CurrentNode)
	assert.Empty(t, f.art.Attached())
}

func TestExitNode_NoCurrentIsNoop(t *testing.T) {
	f := newFixture(t, nil)
	assert.NotPanics(t, func() { f.art.ExitNode(f.ctx) })
	assert.Zero(t, f.art.Owner.Caps.Len())
}

func TestPermanentCapabilitiesOnlyGrow(t *testing.T) {
	f := newFixture(t, fork(t))

	seen := map[string]bool{}
	for _, id := range []graph.NodeID{"200", "100", "300", "400", "300"} {
		require.NoError(t, f.art.EnterNode(f.ctx, id))
		f.art.ExitNode(f.ctx)
		for _, name := range f.art.Owner.Caps.Names() {
			seen[name] = true
		}
		for name := range seen {
			assert.True(t, f.art.Owner.Caps.Has(name), "permanent capability %s was removed", name)
		}
	}
	assert.Equal(t, []string{"AnchorProbe", "GlowProbe"}, f.art.Owner.Caps.Names())
}

func TestEnterNode_UnknownNode(t *testing.T) {
	f := newFixture(t, fork(t))
	err := f.art.EnterNode(f.ctx, "999")
	require.ErrorIs(t, err, graph.ErrNodeNotFound)
	assert.Equal(t, graph.NodeID("100"), f.art.CurrentNode)
}

func TestEnterNode_UnknownDescriptorIsSkipped(t *testing.T) {
	tree := buildTree(t, []spec{{"100", 0, "TriggerMissing", "EffectFlicker"}})
	f := newFixture(t, tree)

	assert.Equal(t, graph.NodeID("100"), f.art.CurrentNode)
	assert.Equal(t, []string{"FlickerProbe", "GlowProbe"}, f.art.Owner.Caps.Names())
	assert.Contains(t, f.logs.String(), "Skipping trigger bundle.")
}

func TestForceActivate_NotifiesAndMoves(t *testing.T) {
	f := newFixture(t, fork(t))
	activator := uuid.New()

	f.art.ForceActivate(f.ctx, activator)

	assert.Equal(t, []string{"FlickerProbe", "GlowProbe", "TouchProbe"}, f.probes.Log.ActivatedBy())
	for _, a := range f.probes.Log.Activations {
		assert.Equal(t, activator, a.Activator)
		assert.Equal(t, graph.NodeID("100"), a.Node)
	}
	activated := f.events.OfType(events.Activated)
	require.Len(t, activated, 1)
	assert.Equal(t, activator, activated[0].Activator)

	start, _ := f.art.Tree.Node("100")
	assert.True(t, start.Triggered)
	assert.Contains(t, []graph.NodeID{"200", "300"}, f.art.CurrentNode)
	assert.Equal(t, f.clock.Now(), f.art.LastActivation)
}

func TestExampleScenario(t *testing.T) {
	f := newFixture(t, nil)
	require.NoError(t, f.art.Generate(f.ctx, 5))
	assert.GreaterOrEqual(t, f.art.Tree.Len(), 1)
	assert.LessOrEqual(t, f.art.Tree.Len(), 5)
	start, ok := f.art.Tree.Node(f.art.Tree.Start)
	require.True(t, ok)
	assert.Zero(t, start.Depth)
	assert.Equal(t, f.art.Tree.Start, f.art.CurrentNode)

	for seed := int64(0); seed < 10; seed++ {
		f := newFixture(t, nil)
		f.art.rng = random.NewSeeded(seed)
		tree := buildTree(t, []spec{
			{"100", 0, "TriggerTouch", "EffectFlicker"},
			{"200", 1, "TriggerGas", "EffectPulse"},
			{"300", 1, "TriggerGas", "EffectPulse"},
		}, [2]graph.NodeID{"100", "200"}, [2]graph.NodeID{"100", "300"})
		require.NoError(t, f.art.SetTree(f.ctx, tree))

		f.art.ForceActivate(f.ctx, uuid.Nil)

		assert.Contains(t, []graph.NodeID{"200", "300"}, f.art.CurrentNode)
		start, _ := f.art.Tree.Node("100")
		assert.True(t, start.Triggered)
	}
}

func TestTryActivate_Cooldown(t *testing.T) {
	f := newFixture(t, fork(t))

	assert.True(t, f.art.TryActivate(f.ctx, uuid.Nil))
	f.clock.Advance(DefaultCooldown - time.Millisecond)
	assert.False(t, f.art.TryActivate(f.ctx, uuid.Nil))
	f.clock.Advance(time.Millisecond)
	assert.True(t, f.art.TryActivate(f.ctx, uuid.Nil))
}

func TestTryActivate_SuppressedHasNoSideEffects(t *testing.T) {
	f := newFixture(t, fork(t))
	f.art.Suppressed = true

	assert.False(t, f.art.TryActivate(f.ctx, uuid.Nil))
	assert.True(t, f.art.LastActivation.IsZero())
	assert.Equal(t, graph.NodeID("100"), f.art.CurrentNode)
	start, _ := f.art.Tree.Node("100")
	assert.False(t, start.Triggered)
	assert.Empty(t, f.probes.Log.ActivatedBy())
}

func TestActivate_NoCurrentNode(t *testing.T) {
	f := newFixture(t, nil)

	assert.False(t, f.art.TryActivate(f.ctx, uuid.Nil))
	f.art.ForceActivate(f.ctx, uuid.Nil)
	assert.True(t, f.art.LastActivation.IsZero())
	assert.Empty(t, f.events.OfType(events.Activated))
}

func TestForceActivate_TerminalStability(t *testing.T) {
	tree := buildTree(t, []spec{{"100", 0, "TriggerTouch", "EffectFlicker"}})
	f := newFixture(t, tree)

	for range 5 {
		f.art.ForceActivate(f.ctx, uuid.Nil)
		assert.Equal(t, graph.NodeID("100"), f.art.CurrentNode)
	}
	n, _ := f.art.Tree.Node("100")
	assert.True(t, n.Triggered)
	assert.Len(t, f.probes.Log.Activations, 15)
}

func TestInteract(t *testing.T) {
	f := newFixture(t, fork(t))
	who := uuid.New()

	assert.False(t, f.art.Interact(f.ctx, capability.Stimulus{Kind: capability.StimulusGas}))
	assert.Equal(t, graph.NodeID("100"), f.art.CurrentNode)

	assert.True(t, f.art.Interact(f.ctx, capability.Stimulus{Kind: capability.StimulusTouch, Activator: who}))
	assert.NotEqual(t, graph.NodeID("100"), f.art.CurrentNode)
	require.NotEmpty(t, f.probes.Log.Activations)
	assert.Equal(t, who, f.probes.Log.Activations[0].Activator)
}

func TestReroll_KeepsPermanent(t *testing.T) {
	f := newFixture(t, fork(t))
	require.True(t, f.art.Owner.Caps.Has("GlowProbe"))

	require.NoError(t, f.art.Reroll(f.ctx))

	assert.True(t, f.art.Owner.Caps.Has("GlowProbe"))
	assert.Equal(t, f.art.Tree.Start, f.art.CurrentNode)
	assert.LessOrEqual(t, f.art.Tree.Len(), 9)
}
