package app

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/vk/xenoarch/internal/admin"
	"github.com/vk/xenoarch/internal/artifact"
	"github.com/vk/xenoarch/internal/ctxlog"
	"github.com/vk/xenoarch/internal/graph"
	"github.com/vk/xenoarch/internal/surgery"
)

// NodeSpec describes a node added by hand.
type NodeSpec struct {
	Trigger  string
	Effect   string
	AttachTo graph.NodeID
}

// EdgeSpec describes an edge added by hand.
type EdgeSpec struct {
	From, To graph.NodeID
}

// GenerateOptions configures Generate. Admin edits are applied after the
// activations in field order, before anything is printed.
type GenerateOptions struct {
	// Activations forces that many activations after generation, walking the
	// artifact through its tree.
	Activations int
	// Matrix prints the adjacency matrix instead of the YAML report.
	Matrix bool

	CreateNodes []NodeSpec
	AddEdges    []EdgeSpec
	// ForceNode moves the artifact onto the node with this id.
	ForceNode   graph.NodeID
	UnlockAll   bool
	RemoveNodes []graph.NodeID
	// ExciseTriggered removes every triggered node at once.
	ExciseTriggered bool
	// ChainStitch links every consecutive neighbour of a removed node
	// instead of pairing them.
	ChainStitch bool
}

// Generate builds one artifact and writes a description of it to w.
func (a *App) Generate(ctx context.Context, w io.Writer, opts GenerateOptions) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Generate method started.")

	art, err := a.NewArtifact(ctx)
	if err != nil {
		return err
	}
	activator := uuid.New()
	for range opts.Activations {
		art.ForceActivate(ctx, activator)
	}
	if err := a.applyAdmin(ctx, art, opts); err != nil {
		return err
	}
	a.logger.Info("Artifact generated.", "owner", art.Owner.ID, "nodes", art.Tree.Len(), "research", art.PointValue())

	if opts.Matrix {
		_, err = fmt.Fprint(w, admin.PrintMatrix(art))
		return err
	}
	out, err := admin.Dump(art)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

func (a *App) applyAdmin(ctx context.Context, art *artifact.Artifact, opts GenerateOptions) error {
	if len(opts.CreateNodes) > 0 {
		src, err := a.newSource()
		if err != nil {
			return err
		}
		for _, n := range opts.CreateNodes {
			if _, err := admin.CreateNode(ctx, art, src, n.Trigger, n.Effect, n.AttachTo); err != nil {
				return fmt.Errorf("create node: %w", err)
			}
		}
	}
	for _, e := range opts.AddEdges {
		if err := admin.AddEdge(art, e.From, e.To); err != nil {
			return fmt.Errorf("add edge %s-%s: %w", e.From, e.To, err)
		}
	}
	if opts.ForceNode != "" {
		if err := admin.ForceNode(ctx, art, opts.ForceNode); err != nil {
			return fmt.Errorf("force node: %w", err)
		}
	}
	if opts.UnlockAll {
		admin.UnlockAll(art)
	}

	var stitch []surgery.Option
	if opts.ChainStitch {
		stitch = append(stitch, surgery.WithChainStitch())
	}
	for _, id := range opts.RemoveNodes {
		if err := admin.RemoveNode(ctx, art, id, stitch...); err != nil {
			return fmt.Errorf("remove node: %w", err)
		}
	}
	if opts.ExciseTriggered {
		removed := art.Excise(ctx, surgery.TriggeredNodes(art.Tree), stitch...)
		a.logger.Info("Triggered nodes excised.", "owner", art.Owner.ID, "removed", len(removed))
	}

	a.logger.Debug("Admin edits applied.", "owner", art.Owner.ID, "total_research", admin.TotalResearch(art))
	return nil
}

// Research estimates the average maximum research value of freshly generated
// artifacts using the configured worker count.
func (a *App) Research(ctx context.Context, samples int) (float64, error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	return admin.AverageResearch(ctx, samples, a.config.WorkerCount, func(ctx context.Context) (*artifact.Artifact, error) {
		return a.NewArtifact(ctx)
	})
}
