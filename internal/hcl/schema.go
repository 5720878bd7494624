package hcl

import "github.com/hashicorp/hcl/v2"

// fileRoot is used to decode the top-level blocks of a catalog file.
type fileRoot struct {
	Triggers []*Trigger `hcl:"trigger,block"`
	Effects  []*Effect  `hcl:"effect,block"`
}

// Component is one capability reference inside a descriptor. Its body holds
// plain attributes only and becomes the capability's configuration.
type Component struct {
	Name string   `hcl:"name,label"`
	Body hcl.Body `hcl:",remain"`
}

// Trigger represents a `trigger` block.
type Trigger struct {
	ID          string       `hcl:"id,label"`
	Description string       `hcl:"description,optional"`
	Tip         string       `hcl:"tip,optional"`
	TargetDepth int          `hcl:"target_depth,optional"`
	Components  []*Component `hcl:"component,block"`
}

// Effect represents an `effect` block.
type Effect struct {
	ID          string       `hcl:"id,label"`
	Description string       `hcl:"description,optional"`
	TargetDepth int          `hcl:"target_depth,optional"`
	Components  []*Component `hcl:"component,block"`
	Permanent   []*Component `hcl:"permanent_component,block"`
}
