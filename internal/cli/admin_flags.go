package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vk/xenoarch/internal/app"
	"github.com/vk/xenoarch/internal/graph"
)

// adminFlags are the admin edits shared by generate and matrix.
type adminFlags struct {
	activations     int
	createNodes     []string
	addEdges        []string
	forceNode       string
	unlockAll       bool
	removeNodes     []string
	exciseTriggered bool
	chainStitch     bool
}

func (af *adminFlags) bind(cmd *cobra.Command) {
	f := cmd.Flags()
	f.IntVar(&af.activations, "activations", 0, "Force this many activations before printing.")
	f.StringArrayVar(&af.createNodes, "create-node", nil, "Add a node as TRIGGER:EFFECT[:ATTACH_TO]. Repeatable.")
	f.StringArrayVar(&af.addEdges, "add-edge", nil, "Link two nodes as FROM:TO. Repeatable.")
	f.StringVar(&af.forceNode, "force-node", "", "Move the artifact onto the node with this id.")
	f.BoolVar(&af.unlockAll, "unlock-all", false, "Mark every node discovered and triggered.")
	f.StringArrayVar(&af.removeNodes, "remove-node", nil, "Excise the node with this id, stitching its neighbours. Repeatable.")
	f.BoolVar(&af.exciseTriggered, "excise-triggered", false, "Excise every triggered node.")
	f.BoolVar(&af.chainStitch, "chain-stitch", false, "Link every consecutive neighbour of an excised node instead of pairing them.")
}

// options turns the flags into generate options. Malformed values are usage
// errors.
func (af *adminFlags) options(matrix bool) (app.GenerateOptions, error) {
	opts := app.GenerateOptions{
		Activations:     af.activations,
		Matrix:          matrix,
		ForceNode:       graph.NodeID(af.forceNode),
		UnlockAll:       af.unlockAll,
		ExciseTriggered: af.exciseTriggered,
		ChainStitch:     af.chainStitch,
	}
	if af.activations < 0 {
		return opts, &ExitError{Code: 2, Message: fmt.Sprintf("invalid activations: must not be negative, got %d", af.activations)}
	}
	for _, raw := range af.createNodes {
		parts := strings.Split(raw, ":")
		if len(parts) < 2 || len(parts) > 3 || parts[0] == "" || parts[1] == "" {
			return opts, &ExitError{Code: 2, Message: fmt.Sprintf("invalid create-node %q: want TRIGGER:EFFECT[:ATTACH_TO]", raw)}
		}
		n := app.NodeSpec{Trigger: parts[0], Effect: parts[1]}
		if len(parts) == 3 {
			n.AttachTo = graph.NodeID(parts[2])
		}
		opts.CreateNodes = append(opts.CreateNodes, n)
	}
	for _, raw := range af.addEdges {
		from, to, ok := strings.Cut(raw, ":")
		if !ok || from == "" || to == "" {
			return opts, &ExitError{Code: 2, Message: fmt.Sprintf("invalid add-edge %q: want FROM:TO", raw)}
		}
		opts.AddEdges = append(opts.AddEdges, app.EdgeSpec{From: graph.NodeID(from), To: graph.NodeID(to)})
	}
	for _, id := range af.removeNodes {
		opts.RemoveNodes = append(opts.RemoveNodes, graph.NodeID(id))
	}
	return opts, nil
}
