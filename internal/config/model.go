package config

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/zclconf/go-cty/cty"
)

var ErrUnknownDescriptor = errors.New("unknown descriptor")

// Kind distinguishes the two descriptor catalogs.
type Kind string

const (
	KindTrigger Kind = "trigger"
	KindEffect  Kind = "effect"
)

// CapabilitySpec names one capability of a descriptor bundle together with its
// stored configuration. Config is a cty object, or cty.NilVal when the
// capability takes no configuration.
type CapabilitySpec struct {
	Name   string
	Config cty.Value
}

// TriggerDescriptor is a named bundle that makes a node activatable.
type TriggerDescriptor struct {
	ID          string
	Description string
	Tip         string
	TargetDepth int
	Components  []*CapabilitySpec
}

// EffectDescriptor is a named bundle fired when a node activates. Permanent
// capabilities stay on the owner after the node is exited.
type EffectDescriptor struct {
	ID          string
	Description string
	TargetDepth int
	Components  []*CapabilitySpec
	Permanent   []*CapabilitySpec
}

// Catalog is the unified representation of every loaded descriptor.
type Catalog struct {
	Triggers map[string]*TriggerDescriptor
	Effects  map[string]*EffectDescriptor
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		Triggers: make(map[string]*TriggerDescriptor),
		Effects:  make(map[string]*EffectDescriptor),
	}
}

// Trigger looks up a trigger descriptor by id.
func (c *Catalog) Trigger(id string) (*TriggerDescriptor, error) {
	d, ok := c.Triggers[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s %q", ErrUnknownDescriptor, KindTrigger, id)
	}
	return d, nil
}

// Effect looks up an effect descriptor by id.
func (c *Catalog) Effect(id string) (*EffectDescriptor, error) {
	d, ok := c.Effects[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s %q", ErrUnknownDescriptor, KindEffect, id)
	}
	return d, nil
}

// IDs returns the sorted descriptor ids of one catalog kind. Sorting keeps
// random picks reproducible for a seeded source.
func (c *Catalog) IDs(kind Kind) []string {
	switch kind {
	case KindTrigger:
		return slices.Sorted(maps.Keys(c.Triggers))
	case KindEffect:
		return slices.Sorted(maps.Keys(c.Effects))
	default:
		return nil
	}
}

// Merge copies every descriptor of other into c. Later definitions win.
func (c *Catalog) Merge(other *Catalog) {
	if other == nil {
		return
	}
	maps.Copy(c.Triggers, other.Triggers)
	maps.Copy(c.Effects, other.Effects)
}

// Specs returns every capability spec referenced by the catalog, keyed by the
// descriptor that references it. It is used for registry parity checks.
func (c *Catalog) Specs() map[string][]*CapabilitySpec {
	out := make(map[string][]*CapabilitySpec)
	for id, d := range c.Triggers {
		out[string(KindTrigger)+"."+id] = d.Components
	}
	for id, d := range c.Effects {
		out[string(KindEffect)+"."+id] = slices.Concat(d.Components, d.Permanent)
	}
	return out
}
