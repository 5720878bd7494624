package artifact

import (
	"math"

	"github.com/vk/xenoarch/internal/graph"
)

// Points tunes the research value of an artifact's nodes.
type Points struct {
	PerNode          int
	DangerMultiplier float64
	// UntriggeredFactor scales nodes that were discovered but not triggered.
	UntriggeredFactor float64
	// CompletionBonus scales the total once every node is triggered.
	CompletionBonus float64
}

// DefaultPoints returns the stock tuning.
func DefaultPoints() Points {
	return Points{
		PerNode:           6500,
		DangerMultiplier:  1.35,
		UntriggeredFactor: 0.25,
		CompletionBonus:   1.25,
	}
}

// NodeValue is the research value of one node. Undiscovered nodes are worth
// nothing.
func (a *Artifact) NodeValue(n *graph.Node) int {
	if !n.Discovered {
		return 0
	}
	return a.nodeValue(n, n.Triggered)
}

func (a *Artifact) nodeValue(n *graph.Node, triggered bool) int {
	danger := n.Depth
	if d, err := a.Catalog().Trigger(n.Trigger); err == nil {
		danger += d.TargetDepth
	}
	if d, err := a.Catalog().Effect(n.Effect); err == nil {
		danger += d.TargetDepth
	}
	danger /= 3

	v := float64(a.Points.PerNode) * math.Pow(a.Points.DangerMultiplier, float64(danger))
	if !triggered {
		v *= a.Points.UntriggeredFactor
	}
	return int(v)
}

// PointValue is the research value currently obtainable from the artifact,
// net of points already consumed.
func (a *Artifact) PointValue() int {
	sum := 0
	all := true
	for _, n := range a.Tree.Nodes() {
		sum += a.NodeValue(n)
		all = all && n.Triggered
	}
	if all && a.Tree.Len() > 0 {
		sum = int(float64(sum) * a.Points.CompletionBonus)
	}
	return max(sum-a.ConsumedPoints, 0)
}

// MaxPointValue is the value of the artifact with every node discovered and
// triggered, ignoring consumed points. It does not modify the tree.
func (a *Artifact) MaxPointValue() int {
	sum := 0
	for _, n := range a.Tree.Nodes() {
		sum += a.nodeValue(n, true)
	}
	if a.Tree.Len() > 0 {
		sum = int(float64(sum) * a.Points.CompletionBonus)
	}
	return sum
}

// ConsumePoints records that the current value has been extracted and
// returns it.
func (a *Artifact) ConsumePoints() int {
	v := a.PointValue()
	a.ConsumedPoints += v
	return v
}
