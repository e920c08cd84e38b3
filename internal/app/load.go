package app

import (
	"context"
	"fmt"
	"os"

	"github.com/vk/traitdexgo/internal/ctxlog"
	"github.com/vk/traitdexgo/internal/fsutil"
	"github.com/vk/traitdexgo/internal/manifest"
	"github.com/vk/traitdexgo/internal/payload"
)

// loadInputs discovers generated catalogs under the input path and
// registers each file through the bridge.
func (a *App) loadInputs(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading generated catalogs...", "input_path", a.config.InputPath)

	manifestPaths, err := fsutil.FindFilesByExtension(a.config.InputPath, ".hcl")
	if err != nil {
		return fmt.Errorf("failed to scan input path for manifests: %w", err)
	}
	for _, path := range manifestPaths {
		cat, err := manifest.LoadFile(ctx, path)
		if err != nil {
			return err
		}
		if err := a.bridge.Register(ctx, cat); err != nil {
			return fmt.Errorf("failed to register manifest %s: %w", path, err)
		}
		logger.Debug("Manifest registered.", "file", path, "crates", cat.Len())
	}

	jsPaths, err := fsutil.FindFilesByExtension(a.config.InputPath, ".js")
	if err != nil {
		return fmt.Errorf("failed to scan input path for artifacts: %w", err)
	}
	artifacts := 0
	for _, path := range jsPaths {
		if !payload.IsPayloadFile(path) {
			logger.Debug("Skipping non-implementors script.", "file", path)
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read artifact %s: %w", path, err)
		}
		cat, err := payload.Parse(data)
		if err != nil {
			return fmt.Errorf("failed to parse artifact %s: %w", path, err)
		}
		if err := a.bridge.Register(ctx, cat); err != nil {
			return fmt.Errorf("failed to register artifact %s: %w", path, err)
		}
		logger.Debug("Artifact registered.", "file", path, "crates", cat.Len())
		artifacts++
	}

	if len(manifestPaths) == 0 && artifacts == 0 {
		logger.Warn("No generated catalogs found in input path.", "path", a.config.InputPath)
	} else {
		logger.Info("Generated catalogs loaded.", "manifests", len(manifestPaths), "artifacts", artifacts)
	}
	return nil
}
