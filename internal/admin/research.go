package admin

import (
	"context"
	"fmt"

	"github.com/vk/xenoarch/internal/artifact"
	"github.com/vk/xenoarch/internal/ctxlog"
	"golang.org/x/sync/errgroup"
)

// Factory builds one fresh, generated artifact. Implementations must not share
// a random source between calls that may run concurrently.
type Factory func(ctx context.Context) (*artifact.Artifact, error)

// AverageResearch builds n artifacts with at most workers running at once and
// returns the mean of their maximum point values.
func AverageResearch(ctx context.Context, n, workers int, build Factory) (float64, error) {
	if n < 1 {
		return 0, fmt.Errorf("sample count must be at least 1, got %d", n)
	}
	logger := ctxlog.FromContext(ctx)
	logger.Info("Estimating average research value.", "samples", n, "workers", workers)

	values := make([]int, n)
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))
	for i := range n {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			a, err := build(gCtx)
			if err != nil {
				return fmt.Errorf("sample %d: %w", i, err)
			}
			values[i] = a.MaxPointValue()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	sum := 0
	for _, v := range values {
		sum += v
	}
	avg := float64(sum) / float64(n)
	logger.Info("Average research value estimated.", "average", avg)
	return avg, nil
}
