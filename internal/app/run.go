package app

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/vk/traitdexgo/internal/ctxlog"
	"github.com/vk/traitdexgo/internal/payload"
	"github.com/vk/traitdexgo/internal/viewer"
)

// Run executes the main application logic based on the loaded configuration.
// When a server port is configured it blocks until the context is canceled;
// otherwise it returns after emitting the merged index.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if a.config.OutputPath != "" {
		if err := a.writeOutput(ctx); err != nil {
			return err
		}
	}

	var healthSrv *healthcheckServer
	if a.config.HealthcheckPort > 0 {
		healthSrv = newHealthcheckServer(a.config.HealthcheckPort)
		healthSrv.Start(ctx)
	}

	var viewerSrv *viewer.Server
	if a.config.ListenPort > 0 {
		viewerSrv = viewer.NewServer(a.index, a.config.ListenPort)
		viewerSrv.Start(ctx)
	}

	if viewerSrv != nil || healthSrv != nil {
		<-ctx.Done()
		a.logger.Info("Shutdown requested.")

		// Shutdown contexts must not inherit the already-canceled ctx.
		shutdownCtx := ctxlog.WithLogger(context.Background(), a.logger)
		if viewerSrv != nil {
			if err := viewerSrv.Shutdown(shutdownCtx); err != nil {
				return err
			}
		}
		if healthSrv != nil {
			if err := healthSrv.Shutdown(shutdownCtx); err != nil {
				return err
			}
		}
	}

	if a.publisher != nil {
		a.publisher.Close(ctx)
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

// writeOutput emits the merged index to the configured output path, as an
// implementors artifact or a plain JSON document depending on extension.
func (a *App) writeOutput(ctx context.Context) error {
	snapshot := a.index.Snapshot()

	var data []byte
	var err error
	if strings.HasSuffix(a.config.OutputPath, ".js") {
		data, err = payload.Marshal(snapshot)
	} else {
		data, err = json.Marshal(snapshot)
	}
	if err != nil {
		return fmt.Errorf("failed to render merged index: %w", err)
	}

	if err := os.WriteFile(a.config.OutputPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write merged index: %w", err)
	}
	a.logger.Info("Merged index written.", "path", a.config.OutputPath, "crates", snapshot.Len())
	return nil
}
