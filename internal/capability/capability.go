// Package capability defines the runtime behaviour modules that an artifact
// attaches to its owner while a node is current, and the owner-side set that
// holds them.
package capability

import (
	"context"

	"github.com/google/uuid"
	"github.com/vk/xenoarch/internal/graph"
)

// Capability is a named behaviour attachable to an owner. At most one
// capability per name is attached at a time.
type Capability interface {
	Name() string
}

// Activation describes one activation of an artifact.
type Activation struct {
	Owner uuid.UUID
	// Activator is the object that caused the activation, or uuid.Nil.
	Activator uuid.UUID
	Node      graph.NodeID
}

// ActivationListener is implemented by capabilities that perform their action
// when the artifact activates.
type ActivationListener interface {
	OnActivated(ctx context.Context, a Activation)
}

// StimulusKind names a kind of outside interaction.
type StimulusKind string

const (
	StimulusTouch    StimulusKind = "touch"
	StimulusGas      StimulusKind = "gas"
	StimulusHeat     StimulusKind = "heat"
	StimulusDamage   StimulusKind = "damage"
	StimulusMagnet   StimulusKind = "magnet"
	StimulusDeath    StimulusKind = "death"
	StimulusPressure StimulusKind = "pressure"
)

// Stimulus is an interaction with the owner, such as a touch or gas exposure.
type Stimulus struct {
	Kind      StimulusKind
	Activator uuid.UUID
	// Magnitude is kind-specific: moles for gas, kelvin for heat, damage
	// points for damage.
	Magnitude float64
	// Detail refines the kind, e.g. the gas name.
	Detail string
}

// StimulusHandler is implemented by trigger capabilities. It reports whether
// the stimulus should activate the artifact.
type StimulusHandler interface {
	HandleStimulus(ctx context.Context, s Stimulus) bool
}
