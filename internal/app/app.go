package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/vk/liftsim/internal/building"
	"github.com/vk/liftsim/internal/config"
	"github.com/vk/liftsim/internal/ctxlog"
	"github.com/vk/liftsim/internal/engine"
	"github.com/vk/liftsim/internal/registry"
)

// defaultRenderer is used when the fleet file declares none.
var defaultRenderer = &config.Renderer{Type: "console"}

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	ctx        context.Context
	logger     *slog.Logger
	config     *Config
	registry   *registry.Registry
	engine     *engine.Engine
	httpServer *http.Server
}

// NewApp is the constructor for the main application. It loads the fleet
// file, builds the engine, seeds the initial passengers and attaches the
// renderers. Every startup failure is returned; nothing is running yet when
// it does.
func NewApp(outW io.Writer, cfg *Config, loader config.Loader, modules ...registry.Module) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	model, err := loader.Load(ctx, cfg.FleetPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	logger.Debug("Fleet file loaded.", "elevators", len(model.Elevators), "passengers", len(model.Passengers))

	reg := registry.New()
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("All renderer modules registered.", "count", len(modules), "types", reg.Types())

	eng, err := buildEngine(model, cfg)
	if err != nil {
		return nil, err
	}

	for _, p := range model.Passengers {
		if _, err := eng.Submit(p.From, p.To); err != nil {
			return nil, fmt.Errorf("passenger %d -> %d: %w", p.From, p.To, err)
		}
	}

	specs := model.Renderers
	if len(specs) == 0 {
		logger.Debug("No renderer declared, using the console.")
		specs = []*config.Renderer{defaultRenderer}
	}
	renderers, err := reg.Build(ctx, &registry.Deps{Out: outW, Submitter: eng}, specs)
	if err != nil {
		return nil, err
	}
	for _, r := range renderers {
		eng.Attach(r)
	}

	return &App{
		ctx:      ctx,
		logger:   logger,
		config:   cfg,
		registry: reg,
		engine:   eng,
	}, nil
}

func buildEngine(model *config.Model, cfg *Config) (*engine.Engine, error) {
	geometry, err := building.New(model.Building.MinFloor, model.Building.MaxFloor)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", engine.ErrInvalidConfiguration, err)
	}

	tick := model.Building.TickPeriod
	if cfg.TickPeriod > 0 {
		tick = cfg.TickPeriod
	}

	b := engine.NewBuilder().
		Geometry(geometry).
		Capacity(model.Building.Capacity).
		TickPeriod(tick).
		MaxTicks(cfg.MaxTicks)
	for _, e := range model.Elevators {
		b.AddElevator(e.Name, e.Floor)
	}
	return b.Build()
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Engine returns the simulation engine.
func (a *App) Engine() *engine.Engine {
	return a.engine
}
