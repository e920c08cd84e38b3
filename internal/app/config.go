package app

import "fmt"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// InputPath points at a generated catalog file or a directory of them
	// (.hcl manifests and implementors .js artifacts). Empty means only the
	// compiled-in modules are registered.
	InputPath string

	// OutputPath, when set, receives the merged index: an implementors .js
	// artifact when the name ends in .js, a plain JSON document otherwise.
	OutputPath string

	// ListenPort serves the viewer JSON endpoint. 0 is disabled.
	ListenPort int

	// HealthcheckPort serves /health. 0 is disabled.
	HealthcheckPort int

	// HubURL connects a live-preview publisher when non-empty.
	HubURL string

	LogFormat string
	LogLevel  string
}

// NewConfig validates a Config and returns it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ListenPort < 0 || cfg.ListenPort > 65535 {
		return nil, fmt.Errorf("listen port %d is out of range", cfg.ListenPort)
	}
	if cfg.HealthcheckPort < 0 || cfg.HealthcheckPort > 65535 {
		return nil, fmt.Errorf("healthcheck port %d is out of range", cfg.HealthcheckPort)
	}
	if cfg.InputPath == "" && cfg.OutputPath == "" && cfg.ListenPort == 0 {
		return nil, fmt.Errorf("nothing to do: provide an input path, an output path, or a listen port")
	}
	return &cfg, nil
}
