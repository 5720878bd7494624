package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"

	"github.com/vk/xenoarch/internal/admin"
	"github.com/vk/xenoarch/internal/artifact"
	"github.com/vk/xenoarch/internal/config"
	"github.com/vk/xenoarch/internal/ctxlog"
	"github.com/vk/xenoarch/internal/events"
	"github.com/vk/xenoarch/internal/generator"
	"github.com/vk/xenoarch/internal/random"
	"github.com/vk/xenoarch/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW      io.Writer
	logger    *slog.Logger
	ctx       context.Context
	config    *Config
	registry  *registry.Registry
	bus       *events.Bus
	inventory *admin.Inventory

	// seq offsets the configured seed so each artifact gets its own stream.
	seq        atomic.Int64
	httpServer *http.Server
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance, including its own isolated logger and registry.
// A catalog that fails to load or does not match the registered capabilities
// is a programmer error and panics.
func NewApp(outW io.Writer, cfg *Config, loader config.Loader, modules ...registry.Module) *App {
	logger := NewLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	catalog, err := loadCatalog(ctx, cfg, loader)
	if err != nil {
		panic(fmt.Errorf("failed to load catalog: %w", err))
	}
	logger.Debug("Catalog loaded.", "triggers", len(catalog.Triggers), "effects", len(catalog.Effects))

	reg := registry.New()
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("All Go modules registered.", "count", len(modules))

	reg.PopulateCatalog(catalog)
	if err := reg.ValidateRegistry(ctx); err != nil {
		panic(err)
	}
	logger.Debug("Registry validation passed.")

	return &App{
		outW:      outW,
		logger:    logger,
		ctx:       ctx,
		config:    cfg,
		registry:  reg,
		bus:       events.NewBus(events.LogListener{}),
		inventory: admin.NewInventory(),
	}
}

func loadCatalog(ctx context.Context, cfg *Config, loader config.Loader) (*config.Catalog, error) {
	catalog := config.NewCatalog()
	if !cfg.SkipStockCatalog {
		for _, fsys := range stockCatalogs {
			c, err := loader.LoadFS(ctx, fsys)
			if err != nil {
				return nil, err
			}
			catalog.Merge(c)
		}
	}
	if cfg.CatalogPath != "" {
		c, err := loader.Load(ctx, cfg.CatalogPath)
		if err != nil {
			return nil, err
		}
		catalog.Merge(c)
	}
	return catalog, nil
}

// Registry returns the application's registry.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Bus returns the event bus every artifact built by the app emits on.
func (a *App) Bus() *events.Bus {
	return a.bus
}

// Inventory returns the artifacts tracked by the display server.
func (a *App) Inventory() *admin.Inventory {
	return a.inventory
}

// Context returns a background context carrying the app's logger.
func (a *App) Context() context.Context {
	return a.ctx
}

// NewArtifact builds a fresh artifact with a generated tree of a random size
// from the configured range. It is safe for concurrent use.
func (a *App) NewArtifact(ctx context.Context) (*artifact.Artifact, error) {
	rng, err := a.newSource()
	if err != nil {
		return nil, err
	}
	gen, err := generator.New(generator.Options{
		Catalog:  a.registry.Catalog,
		Random:   rng,
		NodesMin: a.config.NodesMin,
		NodesMax: a.config.NodesMax,
	})
	if err != nil {
		return nil, err
	}

	points := artifact.DefaultPoints()
	points.PerNode = a.config.PointsPerNode
	points.DangerMultiplier = a.config.DangerMultiplier

	art, err := artifact.New(nil, artifact.Options{
		Registry:  a.registry,
		Generator: gen,
		Random:    rng,
		Bus:       a.bus,
		Cooldown:  a.config.Cooldown,
		Points:    points,
	})
	if err != nil {
		return nil, err
	}
	if err := art.Reroll(ctx); err != nil {
		return nil, fmt.Errorf("failed to generate artifact: %w", err)
	}
	return art, nil
}

func (a *App) newSource() (random.Source, error) {
	if a.config.Seed == 0 {
		return random.New()
	}
	return random.NewSeeded(a.config.Seed + a.seq.Add(1) - 1), nil
}
