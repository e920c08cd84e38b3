package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/traitdexgo/internal/ctxlog"
	"github.com/vk/traitdexgo/internal/publish"
	"github.com/vk/traitdexgo/internal/registry"
	"github.com/vk/traitdexgo/internal/viewer"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW      io.Writer
	logger    *slog.Logger
	config    *Config
	bridge    *registry.Bridge
	index     *viewer.Index
	publisher *publish.Publisher
}

// New is the constructor for the main application. It wires the bridge to
// the viewer index (and the preview hub when configured), registers the
// producer modules, and loads every generated catalog found under the
// input path. Each file's catalog is registered with its own Register
// call, so delivery stays atomic per artifact.
func New(ctx context.Context, outW io.Writer, config *Config, modules ...registry.Module) (*App, error) {
	logger := newLogger(config.LogLevel, config.LogFormat, outW)
	ctx = ctxlog.WithLogger(ctx, logger)
	logger.Debug("Logger configured successfully.")

	a := &App{
		outW:   outW,
		logger: logger,
		config: config,
		bridge: registry.NewBridge(),
		index:  viewer.NewIndex(),
	}

	// The consumer chain: the index always, the hub publisher when configured.
	var consumer registry.Consumer = a.index
	if config.HubURL != "" {
		pub, err := publish.Connect(ctx, publish.Options{URL: config.HubURL})
		if err != nil {
			return nil, fmt.Errorf("failed to set up preview hub publisher: %w", err)
		}
		a.publisher = pub
		consumer = registry.Fanout(a.index, pub)
	}

	// Binding before any producer runs means every registration takes the
	// delivered path; the pending slot only matters for library users that
	// bring their own ordering.
	if err := a.bridge.Bind(ctx, consumer); err != nil {
		return nil, fmt.Errorf("failed to bind viewer to bridge: %w", err)
	}
	logger.Debug("Viewer bound to registration bridge.")

	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		if err := mod.Register(ctx, a.bridge); err != nil {
			return nil, fmt.Errorf("module registration failed: %w", err)
		}
	}
	logger.Debug("All producer modules registered.", "count", len(modules))

	if config.InputPath != "" {
		if err := a.loadInputs(ctx); err != nil {
			return nil, err
		}
	}

	logger.Info("Implementor index populated.", "crates", len(a.index.Crates()))
	return a, nil
}

// Index returns the application's viewer index. This is primarily for testing.
func (a *App) Index() *viewer.Index {
	return a.index
}

// Bridge returns the application's registration bridge. This is primarily for testing.
func (a *App) Bridge() *registry.Bridge {
	return a.bridge
}
