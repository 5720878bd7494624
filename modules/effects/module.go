// Package effects provides the capabilities that act when an artifact node
// activates. Rendering and physics are outside this repository, so effects
// record what they did and report it through the logger.
package effects

import (
	"context"
	"embed"

	"github.com/vk/xenoarch/internal/capability"
	"github.com/vk/xenoarch/internal/ctxlog"
	"github.com/vk/xenoarch/internal/registry"
)

// Catalog holds the stock effect descriptors.
//
//go:embed catalog.hcl
var Catalog embed.FS

// Module implements the registry.Module interface for this package.
type Module struct{}

// Counter is embedded by effects to count their activations.
type Counter struct {
	count int
}

// Activations is the number of times the effect fired.
func (c *Counter) Activations() int { return c.count }

// LightFlicker makes nearby lights flicker.
type LightFlicker struct {
	Counter
	Radius      int     `cty:"radius"`
	Probability float64 `cty:"probability"`
}

func (*LightFlicker) Name() string { return "LightFlicker" }

func (e *LightFlicker) OnActivated(ctx context.Context, a capability.Activation) {
	e.count++
	ctxlog.FromContext(ctx).Info("Lights flicker.", "owner", a.Owner, "radius", e.Radius, "probability", e.Probability)
}

// RadiationPulse emits a burst of radiation.
type RadiationPulse struct {
	Counter
	Intensity float64 `cty:"intensity"`
	Range     float64 `cty:"range"`
}

func (*RadiationPulse) Name() string { return "RadiationPulse" }

func (e *RadiationPulse) OnActivated(ctx context.Context, a capability.Activation) {
	e.count++
	ctxlog.FromContext(ctx).Info("Radiation pulse.", "owner", a.Owner, "intensity", e.Intensity, "range", e.Range)
}

// Teleport moves the activator a random distance away.
type Teleport struct {
	Counter
	Range float64 `cty:"range"`
}

func (*Teleport) Name() string { return "Teleport" }

func (e *Teleport) OnActivated(ctx context.Context, a capability.Activation) {
	e.count++
	ctxlog.FromContext(ctx).Info("Teleport.", "owner", a.Owner, "activator", a.Activator, "range", e.Range)
}

// Throw flings loose objects around the owner.
type Throw struct {
	Counter
	Range    float64 `cty:"range"`
	Strength float64 `cty:"strength"`
}

func (*Throw) Name() string { return "Throw" }

func (e *Throw) OnActivated(ctx context.Context, a capability.Activation) {
	e.count++
	ctxlog.FromContext(ctx).Info("Objects thrown.", "owner", a.Owner, "range", e.Range, "strength", e.Strength)
}

// GasRelease vents gas into the atmosphere.
type GasRelease struct {
	Counter
	Gas   string  `cty:"gas"`
	Moles float64 `cty:"moles"`
}

func (*GasRelease) Name() string { return "GasRelease" }

func (e *GasRelease) OnActivated(ctx context.Context, a capability.Activation) {
	e.count++
	ctxlog.FromContext(ctx).Info("Gas released.", "owner", a.Owner, "gas", e.Gas, "moles", e.Moles)
}

// PermanentGlow is a ratchet effect: once attached, the owner glows for the
// rest of its life and glows brighter on every activation.
type PermanentGlow struct {
	Counter
	Color  string  `cty:"color"`
	Energy float64 `cty:"energy"`
}

func (*PermanentGlow) Name() string { return "PermanentGlow" }

func (e *PermanentGlow) OnActivated(ctx context.Context, a capability.Activation) {
	e.count++
	ctxlog.FromContext(ctx).Debug("Glow intensifies.", "owner", a.Owner, "color", e.Color, "energy", e.Energy*float64(e.count))
}

// Anchor pins the owner in place. It has no activation behaviour.
type Anchor struct{}

func (*Anchor) Name() string { return "Anchor" }

// Register registers every effect capability with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterCapability("LightFlicker", &registry.RegisteredCapability{
		New: func() capability.Capability { return &LightFlicker{Radius: 4, Probability: 0.5} },
	})
	r.RegisterCapability("RadiationPulse", &registry.RegisteredCapability{
		New: func() capability.Capability { return &RadiationPulse{Intensity: 2, Range: 5} },
	})
	r.RegisterCapability("Teleport", &registry.RegisteredCapability{
		New: func() capability.Capability { return &Teleport{Range: 7} },
	})
	r.RegisterCapability("Throw", &registry.RegisteredCapability{
		New: func() capability.Capability { return &Throw{Range: 3, Strength: 10} },
	})
	r.RegisterCapability("GasRelease", &registry.RegisteredCapability{
		New: func() capability.Capability { return &GasRelease{Gas: "nitrogen", Moles: 10} },
	})
	r.RegisterCapability("PermanentGlow", &registry.RegisteredCapability{
		New: func() capability.Capability { return &PermanentGlow{Color: "white", Energy: 1} },
	})
	r.RegisterCapability("Anchor", &registry.RegisteredCapability{
		New: func() capability.Capability { return &Anchor{} },
	})
}
