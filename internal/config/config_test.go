package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsAllZero(t *testing.T) {
	cfg := Default()
	assert.False(t, cfg.Verbose)
	assert.False(t, cfg.Tracing)
	assert.False(t, cfg.SimpleNames)
	assert.False(t, cfg.ParentFirstExecution)
	assert.Empty(t, cfg.OutDir)
	assert.Empty(t, cfg.ModelNameOverride)
}

func writeTOML(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "plantgen.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadFileMergesOverDefaults(t *testing.T) {
	path := writeTOML(t, `
tracing = true
simple_names = true
out_dir = "gen"
model_name = "Plugin"
`)
	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.True(t, cfg.Tracing)
	assert.True(t, cfg.SimpleNames)
	assert.False(t, cfg.Verbose)
	assert.False(t, cfg.ParentFirstExecution)
	assert.Equal(t, "gen", cfg.OutDir)
	assert.Equal(t, "Plugin", cfg.ModelNameOverride)
}

func TestLoadFileRejectsMalformedTOML(t *testing.T) {
	path := writeTOML(t, "this is not = = toml")
	_, err := LoadFile(path)
	assert.Error(t, err)
}

func TestOverlayOnlySetsExplicitlyPassedFlags(t *testing.T) {
	base := Config{Tracing: true, OutDir: "gen"}
	tracing := false
	cfg := Overlay(base, Flags{Tracing: &tracing})
	assert.False(t, cfg.Tracing, "explicit flag must win over file value")
	assert.Equal(t, "gen", cfg.OutDir, "unset flag must not clobber file value")
}

func TestResolveLayersDefaultsFileThenFlags(t *testing.T) {
	path := writeTOML(t, `
tracing = true
out_dir = "gen"
`)
	simpleNames := true
	outDir := "build"
	cfg, err := Resolve(path, Flags{SimpleNames: &simpleNames, OutDir: &outDir})
	require.NoError(t, err)
	assert.True(t, cfg.Tracing, "file value survives when no flag overrides it")
	assert.True(t, cfg.SimpleNames, "flag wins")
	assert.Equal(t, "build", cfg.OutDir, "flag wins over file")
}

func TestResolveWithNoFilePathUsesDefaultsPlusFlags(t *testing.T) {
	verbose := true
	cfg, err := Resolve("", Flags{Verbose: &verbose})
	require.NoError(t, err)
	assert.True(t, cfg.Verbose)
	assert.False(t, cfg.Tracing)
}

func TestEmitterProjectsOnlyCoreFields(t *testing.T) {
	cfg := Config{Verbose: true, Tracing: true, SimpleNames: true, ParentFirstExecution: true, OutDir: "gen"}
	ec := cfg.Emitter()
	assert.True(t, ec.Verbose)
	assert.True(t, ec.Tracing)
	assert.True(t, ec.SimpleNames)
	assert.True(t, ec.ParentFirstExecution)
}
