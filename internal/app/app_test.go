package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/traitdexgo/internal/payload"
)

const arrowManifest = `
implementors "arrow2" {
  trait = "Iterator"

  impl {
    text  = "impl<'a> Iterator for BinaryValueIter<'a>"
    types = ["arrow2", "array", "binary", "BinaryValueIter"]
  }
}
`

const mylibArtifact = `(function() {var implementors = {"mylib":[{"text":"impl Iterator for Foo","synthetic":false,"types":["mylib","Foo"]}]};
if (window.register_implementors) {window.register_implementors(implementors);} else {window.pending_implementors = implementors;}})()`

func writeInputs(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0600))
	}
	return dir
}

func TestNew_LoadsModulesManifestsAndArtifacts(t *testing.T) {
	t.Parallel()

	dir := writeInputs(t, map[string]string{
		"arrow2.hcl":      arrowManifest,
		"implementors.js": mylibArtifact,
	})

	a, _ := SetupAppTest(t, &Config{InputPath: dir})

	crates := a.Index().Crates()
	assert.Equal(t, []string{"corelib", "arrow2", "mylib"}, crates,
		"compiled-in modules register first, then manifests, then artifacts")

	impls, ok := a.Index().Crate("arrow2")
	require.True(t, ok)
	require.Len(t, impls, 1)
	assert.Equal(t, "impl<'a> Iterator for BinaryValueIter<'a>", impls[0].Text)
}

func TestNew_LaterRegistrationOverwritesCrate(t *testing.T) {
	t.Parallel()

	// The artifact re-registers "arrow2" after the manifest did; the index
	// must hold only the artifact's version.
	artifact := `(function() {var implementors = {"arrow2":[{"text":"impl Iterator for Rewritten","synthetic":false,"types":["arrow2","Rewritten"]}]};
if (window.register_implementors) {window.register_implementors(implementors);} else {window.pending_implementors = implementors;}})()`

	dir := writeInputs(t, map[string]string{
		"arrow2.hcl":      arrowManifest,
		"implementors.js": artifact,
	})

	a, _ := SetupAppTest(t, &Config{InputPath: dir})

	impls, ok := a.Index().Crate("arrow2")
	require.True(t, ok)
	require.Len(t, impls, 1)
	assert.Equal(t, "impl Iterator for Rewritten", impls[0].Text)
}

func TestNew_SkipsUnrelatedScripts(t *testing.T) {
	t.Parallel()

	dir := writeInputs(t, map[string]string{
		"search-index.js": `var searchIndex = [];`,
	})

	a, logs := SetupAppTest(t, &Config{InputPath: dir})
	assert.Equal(t, []string{"corelib"}, a.Index().Crates())
	assert.Contains(t, logs.String(), "Skipping non-implementors script")
}

func TestNew_FailsOnMalformedManifest(t *testing.T) {
	t.Parallel()

	dir := writeInputs(t, map[string]string{
		"broken.hcl": `implementors "broken" {`,
	})

	_, err := New(context.Background(), &SafeBuffer{}, &Config{InputPath: dir})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse")
}

func TestNew_FailsOnMalformedArtifact(t *testing.T) {
	t.Parallel()

	dir := writeInputs(t, map[string]string{
		"implementors.js": `not an artifact at all`,
	})

	_, err := New(context.Background(), &SafeBuffer{}, &Config{InputPath: dir})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse artifact")
}

func TestRun_WritesMergedArtifact(t *testing.T) {
	t.Parallel()

	inputDir := writeInputs(t, map[string]string{
		"implementors.js": mylibArtifact,
	})
	outPath := filepath.Join(t.TempDir(), "implementors.js")

	a, _ := SetupAppTest(t, &Config{InputPath: inputDir, OutputPath: outPath})
	require.NoError(t, a.Run(context.Background()))

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)

	merged, err := payload.Parse(data)
	require.NoError(t, err)
	assert.Equal(t, []string{"corelib", "mylib"}, merged.Keys())
}

func TestRun_WritesPlainJSON(t *testing.T) {
	t.Parallel()

	outPath := filepath.Join(t.TempDir(), "implementors.json")
	a, _ := SetupAppTest(t, &Config{OutputPath: outPath})
	require.NoError(t, a.Run(context.Background()))

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"corelib"`)
	assert.NotContains(t, string(data), "window.register_implementors")
}

func TestNewConfig(t *testing.T) {
	t.Parallel()

	t.Run("valid", func(t *testing.T) {
		cfg, err := NewConfig(Config{InputPath: "docs/"})
		require.NoError(t, err)
		assert.Equal(t, "docs/", cfg.InputPath)
	})

	t.Run("nothing to do", func(t *testing.T) {
		_, err := NewConfig(Config{})
		require.Error(t, err)
	})

	t.Run("port out of range", func(t *testing.T) {
		_, err := NewConfig(Config{InputPath: "docs/", ListenPort: 70000})
		require.Error(t, err)
	})
}
