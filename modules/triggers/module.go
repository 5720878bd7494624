// Package triggers provides the capabilities that make an artifact node
// activatable. Each trigger inspects stimuli offered to the owner and accepts
// the ones it reacts to.
package triggers

import (
	"context"
	"embed"

	"github.com/vk/xenoarch/internal/capability"
	"github.com/vk/xenoarch/internal/ctxlog"
	"github.com/vk/xenoarch/internal/registry"
)

// Catalog holds the stock trigger descriptors.
//
//go:embed catalog.hcl
var Catalog embed.FS

// Module implements the registry.Module interface for this package.
type Module struct{}

// TouchTrigger reacts to any touch.
type TouchTrigger struct{}

func (*TouchTrigger) Name() string { return "TouchTrigger" }

func (*TouchTrigger) HandleStimulus(_ context.Context, s capability.Stimulus) bool {
	return s.Kind == capability.StimulusTouch
}

// GasTrigger reacts to exposure to enough of one gas.
type GasTrigger struct {
	Gas   string  `cty:"gas"`
	Moles float64 `cty:"moles"`
}

func (*GasTrigger) Name() string { return "GasTrigger" }

func (t *GasTrigger) HandleStimulus(_ context.Context, s capability.Stimulus) bool {
	if s.Kind != capability.StimulusGas {
		return false
	}
	return (t.Gas == "" || s.Detail == t.Gas) && s.Magnitude >= t.Moles
}

// HeatTrigger reacts to temperatures at or above a threshold, in kelvin.
type HeatTrigger struct {
	MinTemperature float64 `cty:"min_temperature"`
}

func (*HeatTrigger) Name() string { return "HeatTrigger" }

func (t *HeatTrigger) HandleStimulus(_ context.Context, s capability.Stimulus) bool {
	return s.Kind == capability.StimulusHeat && s.Magnitude >= t.MinTemperature
}

// PressureTrigger reacts when ambient pressure leaves [Min, Max] kPa.
type PressureTrigger struct {
	Min float64 `cty:"min"`
	Max float64 `cty:"max"`
}

func (*PressureTrigger) Name() string { return "PressureTrigger" }

func (t *PressureTrigger) HandleStimulus(_ context.Context, s capability.Stimulus) bool {
	return s.Kind == capability.StimulusPressure && (s.Magnitude < t.Min || s.Magnitude > t.Max)
}

// DamageTrigger accumulates damage and fires once the threshold is reached,
// then starts counting again.
type DamageTrigger struct {
	Threshold  float64 `cty:"threshold"`
	DamageType string  `cty:"damage_type"`

	accumulated float64
}

func (*DamageTrigger) Name() string { return "DamageTrigger" }

func (t *DamageTrigger) HandleStimulus(ctx context.Context, s capability.Stimulus) bool {
	if s.Kind != capability.StimulusDamage {
		return false
	}
	if t.DamageType != "" && s.Detail != t.DamageType {
		return false
	}
	t.accumulated += s.Magnitude
	if t.accumulated < t.Threshold {
		ctxlog.FromContext(ctx).Debug("Damage trigger charging.", "accumulated", t.accumulated, "threshold", t.Threshold)
		return false
	}
	t.accumulated = 0
	return true
}

// MagnetTrigger reacts to nearby magnetic fields.
type MagnetTrigger struct{}

func (*MagnetTrigger) Name() string { return "MagnetTrigger" }

func (*MagnetTrigger) HandleStimulus(_ context.Context, s capability.Stimulus) bool {
	return s.Kind == capability.StimulusMagnet
}

// DeathTrigger reacts to a death nearby.
type DeathTrigger struct{}

func (*DeathTrigger) Name() string { return "DeathTrigger" }

func (*DeathTrigger) HandleStimulus(_ context.Context, s capability.Stimulus) bool {
	return s.Kind == capability.StimulusDeath
}

// Register registers every trigger capability with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterCapability("TouchTrigger", &registry.RegisteredCapability{
		New: func() capability.Capability { return &TouchTrigger{} },
	})
	r.RegisterCapability("GasTrigger", &registry.RegisteredCapability{
		New: func() capability.Capability { return &GasTrigger{Moles: 1} },
	})
	r.RegisterCapability("HeatTrigger", &registry.RegisteredCapability{
		New: func() capability.Capability { return &HeatTrigger{MinTemperature: 373.15} },
	})
	r.RegisterCapability("PressureTrigger", &registry.RegisteredCapability{
		New: func() capability.Capability { return &PressureTrigger{Min: 50, Max: 385} },
	})
	r.RegisterCapability("DamageTrigger", &registry.RegisteredCapability{
		New: func() capability.Capability { return &DamageTrigger{Threshold: 50} },
	})
	r.RegisterCapability("MagnetTrigger", &registry.RegisteredCapability{
		New: func() capability.Capability { return &MagnetTrigger{} },
	})
	r.RegisterCapability("DeathTrigger", &registry.RegisteredCapability{
		New: func() capability.Capability { return &DeathTrigger{} },
	})
}
