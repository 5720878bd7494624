package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/vk/xenoarch/internal/artifact"
	"github.com/vk/xenoarch/internal/capability"
	"github.com/vk/xenoarch/internal/ctxlog"
	"github.com/vk/xenoarch/internal/display"
	"github.com/vk/xenoarch/internal/random"
	"github.com/vk/xenoarch/internal/scanner"
	"golang.org/x/sync/errgroup"
)

// ServeOptions configures Serve.
type ServeOptions struct {
	// Artifacts is the number of artifacts placed in the simulated room.
	Artifacts int
	// Tick is the delay between two simulated interactions.
	Tick time.Duration
}

// Serve places artifacts in a simulated room, pokes them with random stimuli
// every tick and streams their scanner snapshots to display clients until
// ctx is cancelled.
func (a *App) Serve(ctx context.Context, opts ServeOptions) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	if opts.Tick <= 0 {
		opts.Tick = time.Second
	}

	for range max(opts.Artifacts, 1) {
		art, err := a.NewArtifact(ctx)
		if err != nil {
			return err
		}
		a.inventory.Add(art)
	}
	a.logger.Info("Artifacts placed.", "count", len(a.inventory.List()))

	hub := display.NewHub(ctx)
	g, gCtx := errgroup.WithContext(ctx)

	if a.config.HealthcheckPort > 0 {
		srv := a.newServer(a.config.HealthcheckPort, hub.Handler())
		g.Go(func() error {
			a.logger.Info("🩺 HTTP server starting", "address", fmt.Sprintf("http://localhost%s/health", srv.Addr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("http server: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-gCtx.Done()
			return a.closeServer()
		})
	} else {
		a.logger.Warn("HTTP server not started: disabled")
	}

	g.Go(func() error {
		return a.simulate(gCtx, opts.Tick, newScanTracker(hub))
	})

	return g.Wait()
}

func (a *App) simulate(ctx context.Context, tick time.Duration, tracker *scanTracker) error {
	rng, err := a.newSource()
	if err != nil {
		return err
	}
	activator := uuid.New()
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			a.logger.Debug("Simulation stopped.")
			return nil
		case <-ticker.C:
			if err := a.step(ctx, rng, activator, tracker); err != nil {
				return err
			}
		}
	}
}

// step applies one random stimulus to every tracked artifact and flushes
// their scanners.
func (a *App) step(ctx context.Context, rng random.Source, activator uuid.UUID, tracker *scanTracker) error {
	for _, id := range a.inventory.List() {
		art, err := a.inventory.Get(id)
		if err != nil {
			continue
		}
		s := randomStimulus(rng, activator)
		if art.Interact(ctx, s) {
			a.logger.Info("Artifact reacted.", "owner", id, "stimulus", s.Kind, "node", art.CurrentNode)
		}
		if err := tracker.observe(ctx, art); err != nil {
			return err
		}
	}
	return nil
}

var (
	stimulusKinds = []capability.StimulusKind{
		capability.StimulusTouch,
		capability.StimulusGas,
		capability.StimulusHeat,
		capability.StimulusDamage,
		capability.StimulusMagnet,
		capability.StimulusDeath,
		capability.StimulusPressure,
	}
	gases       = []string{"plasma", "oxygen", "nitrogen", "carbon_dioxide"}
	damageTypes = []string{"brute", "burn", "toxin"}
)

func randomStimulus(rng random.Source, activator uuid.UUID) capability.Stimulus {
	kind, _ := random.Pick(rng, stimulusKinds)
	s := capability.Stimulus{Kind: kind, Activator: activator}
	switch kind {
	case capability.StimulusGas:
		s.Detail, _ = random.Pick(rng, gases)
		s.Magnitude = float64(rng.IntRange(0, 10))
	case capability.StimulusHeat:
		s.Magnitude = float64(rng.IntRange(200, 600))
	case capability.StimulusPressure:
		s.Magnitude = float64(rng.IntRange(0, 500))
	case capability.StimulusDamage:
		s.Detail, _ = random.Pick(rng, damageTypes)
		s.Magnitude = float64(rng.IntRange(5, 40))
	}
	return s
}

// scanTracker keeps one scanner per artifact and publishes their changes.
type scanTracker struct {
	publisher scanner.Publisher
	scanners  map[uuid.UUID]*scanner.Scanner
}

func newScanTracker(publisher scanner.Publisher) *scanTracker {
	return &scanTracker{
		publisher: publisher,
		scanners:  make(map[uuid.UUID]*scanner.Scanner),
	}
}

func (t *scanTracker) observe(ctx context.Context, art *artifact.Artifact) error {
	s, ok := t.scanners[art.Owner.ID]
	if !ok {
		s = scanner.New(art.Owner.ID, t.publisher)
		t.scanners[art.Owner.ID] = s
	}
	s.Update(ctx, art.Tree, scanner.TriggeredIndices(art.Tree))
	if _, _, err := s.Flush(ctx); err != nil {
		return fmt.Errorf("publish scanner update for %s: %w", art.Owner.ID, err)
	}
	return nil
}
