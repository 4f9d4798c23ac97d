package fna

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestNewLaunchParametersCopiesInput(t *testing.T) {
	src := map[string]string{"window.title": "Original"}
	params := NewLaunchParameters(src)

	src["window.title"] = "Mutated"
	assert.Equal(t, "Original", params.String("window.title", ""))
}

func TestLoadLaunchParametersYAML(t *testing.T) {
	path := writeTempFile(t, "launch.yaml", `
window:
  title: Adventure
  width: 1280
debugServer: true
tickTimeout: 250ms
`)

	params, err := LoadLaunchParameters(path)
	require.NoError(t, err)

	assert.Equal(t, "Adventure", params.String("window.title", ""))
	assert.Equal(t, 1280, params.Int("window.width", 0))
	assert.True(t, params.Bool("debugServer", false))
	assert.Equal(t, 250*time.Millisecond, params.Duration("tickTimeout", 0))
}

func TestLoadLaunchParametersTOML(t *testing.T) {
	path := writeTempFile(t, "launch.toml", `
debugServer = false

[window]
title = "Dungeon"
height = 720
`)

	params, err := LoadLaunchParameters(path)
	require.NoError(t, err)

	assert.Equal(t, "Dungeon", params.String("window.title", ""))
	assert.Equal(t, 720, params.Int("window.height", 0))
	assert.False(t, params.Bool("debugServer", true))
}

func TestLoadLaunchParametersUnsupportedFormat(t *testing.T) {
	path := writeTempFile(t, "launch.ini", "a=b")
	_, err := LoadLaunchParameters(path)
	assert.ErrorIs(t, err, ErrLaunchParametersFormat)
}

func TestLoadLaunchParametersEnvOverlay(t *testing.T) {
	path := writeTempFile(t, "launch.yaml", `
window:
  title: FromFile
`)
	t.Setenv("FNA_WINDOW_TITLE", "FromEnv")

	params, err := LoadLaunchParameters(path)
	require.NoError(t, err)
	assert.Equal(t, "FromEnv", params.String("window.title", ""))
}

func TestLaunchParametersDefaults(t *testing.T) {
	params := NewLaunchParameters(nil)

	assert.Equal(t, "fallback", params.String("missing", "fallback"))
	assert.Equal(t, 42, params.Int("missing", 42))
	assert.True(t, params.Bool("missing", true))
	assert.Equal(t, time.Second, params.Duration("missing", time.Second))
	assert.Zero(t, params.Len())
	assert.Empty(t, params.Keys())
}

func TestLaunchParametersKeysSorted(t *testing.T) {
	params := NewLaunchParameters(map[string]string{"b": "2", "a": "1", "c": "3"})
	assert.Equal(t, []string{"a", "b", "c"}, params.Keys())
}
