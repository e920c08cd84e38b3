package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_PositionalInputPath(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	cfg, shouldExit, err := Parse([]string{"docs/implementors"}, out)
	require.NoError(t, err)
	require.False(t, shouldExit)
	assert.Equal(t, "docs/implementors", cfg.InputPath)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestParse_FlagsOverridePositional(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	cfg, shouldExit, err := Parse([]string{"-input", "from-flag", "positional"}, out)
	require.NoError(t, err)
	require.False(t, shouldExit)
	assert.Equal(t, "from-flag", cfg.InputPath)
}

func TestParse_Shorthand(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	cfg, _, err := Parse([]string{"-i", "short"}, out)
	require.NoError(t, err)
	assert.Equal(t, "short", cfg.InputPath)
}

func TestParse_AllOptions(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	cfg, _, err := Parse([]string{
		"-input", "docs/",
		"-out", "merged.implementors.js",
		"-listen-port", "8080",
		"-healthcheck-port", "8081",
		"-hub-url", "http://localhost:4500/socket.io",
		"-log-format", "text",
		"-log-level", "debug",
	}, out)
	require.NoError(t, err)
	assert.Equal(t, "merged.implementors.js", cfg.OutputPath)
	assert.Equal(t, 8080, cfg.ListenPort)
	assert.Equal(t, 8081, cfg.HealthcheckPort)
	assert.Equal(t, "http://localhost:4500/socket.io", cfg.HubURL)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestParse_NoWorkPrintsUsage(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	cfg, shouldExit, err := Parse(nil, out)
	require.NoError(t, err)
	assert.True(t, shouldExit)
	assert.Nil(t, cfg)
	assert.Contains(t, out.String(), "Usage:")
}

func TestParse_Help(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	_, shouldExit, err := Parse([]string{"-h"}, out)
	require.NoError(t, err)
	assert.True(t, shouldExit)
	assert.Contains(t, out.String(), "Usage:")
}

func TestParse_InvalidValues(t *testing.T) {
	t.Parallel()

	t.Run("bad log format", func(t *testing.T) {
		out := &bytes.Buffer{}
		_, _, err := Parse([]string{"-log-format", "xml", "docs/"}, out)
		var exitErr *ExitError
		require.ErrorAs(t, err, &exitErr)
		assert.Equal(t, 2, exitErr.Code)
		assert.Contains(t, exitErr.Message, "invalid log-format")
	})

	t.Run("bad log level", func(t *testing.T) {
		out := &bytes.Buffer{}
		_, _, err := Parse([]string{"-log-level", "loud", "docs/"}, out)
		var exitErr *ExitError
		require.ErrorAs(t, err, &exitErr)
		assert.Contains(t, exitErr.Message, "invalid log-level")
	})

	t.Run("unknown flag", func(t *testing.T) {
		out := &bytes.Buffer{}
		_, _, err := Parse([]string{"--definitely-not-a-flag"}, out)
		var exitErr *ExitError
		require.ErrorAs(t, err, &exitErr)
		assert.Equal(t, 2, exitErr.Code)
	})

	t.Run("port out of range", func(t *testing.T) {
		out := &bytes.Buffer{}
		_, _, err := Parse([]string{"-listen-port", "99999", "docs/"}, out)
		var exitErr *ExitError
		require.ErrorAs(t, err, &exitErr)
		assert.Contains(t, exitErr.Message, "out of range")
	})
}
