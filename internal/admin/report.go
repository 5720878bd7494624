package admin

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/vk/xenoarch/internal/artifact"
	"gopkg.in/yaml.v3"
)

// NodeReport is the analyzer view of one node.
type NodeReport struct {
	ID         string   `yaml:"id"`
	Depth      int      `yaml:"depth"`
	Discovered bool     `yaml:"discovered"`
	Triggered  bool     `yaml:"triggered"`
	Edges      []string `yaml:"edges,flow"`
	Trigger    string   `yaml:"trigger,omitempty"`
	TriggerTip string   `yaml:"trigger_tip,omitempty"`
	Effect     string   `yaml:"effect,omitempty"`
	EffectInfo string   `yaml:"effect_description,omitempty"`
	Value      int      `yaml:"value"`
}

// Report is the analyzer view of a whole artifact.
type Report struct {
	Owner         uuid.UUID    `yaml:"owner"`
	Seed          int          `yaml:"seed"`
	Start         string       `yaml:"start"`
	Current       string       `yaml:"current,omitempty"`
	Suppressed    bool         `yaml:"suppressed,omitempty"`
	Capabilities  []string     `yaml:"capabilities,flow"`
	PointValue    int          `yaml:"point_value"`
	MaxPointValue int          `yaml:"max_point_value"`
	Nodes         []NodeReport `yaml:"nodes"`
}

// Describe builds the analyzer report of a.
func Describe(a *artifact.Artifact) Report {
	r := Report{
		Owner:         a.Owner.ID,
		Seed:          a.RandomSeed,
		Start:         string(a.Tree.Start),
		Current:       string(a.CurrentNode),
		Suppressed:    a.Suppressed,
		Capabilities:  a.Owner.Caps.Names(),
		PointValue:    a.PointValue(),
		MaxPointValue: a.MaxPointValue(),
	}
	for _, n := range a.Tree.Nodes() {
		nr := NodeReport{
			ID:         string(n.ID),
			Depth:      n.Depth,
			Discovered: n.Discovered,
			Triggered:  n.Triggered,
			Edges:      make([]string, 0, n.Degree()),
			Trigger:    n.Trigger,
			Effect:     n.Effect,
			Value:      a.NodeValue(n),
		}
		for _, e := range n.Edges() {
			nr.Edges = append(nr.Edges, string(e))
		}
		if d, err := a.Catalog().Trigger(n.Trigger); err == nil {
			nr.TriggerTip = d.Tip
		}
		if d, err := a.Catalog().Effect(n.Effect); err == nil {
			nr.EffectInfo = d.Description
		}
		r.Nodes = append(r.Nodes, nr)
	}
	return r
}

// Dump renders the analyzer report as YAML.
func Dump(a *artifact.Artifact) ([]byte, error) {
	out, err := yaml.Marshal(Describe(a))
	if err != nil {
		return nil, fmt.Errorf("marshal artifact report: %w", err)
	}
	return out, nil
}
