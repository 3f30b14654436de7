package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverlaysProvidedFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "asm2pil.yaml")
	require.NoError(t, os.WriteFile(path, []byte("degree: 2048\nlog_level: debug\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, int64(2048), cfg.Degree)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, Default().OutputDir, cfg.OutputDir)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "asm2pil.yaml")
	require.NoError(t, os.WriteFile(path, []byte("degree: [this is not a number"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
