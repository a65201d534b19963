package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pointconfig/internal/errors"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("POINTCONFIG_CONFIG", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 11, cfg.Geometry.Prime)
	assert.Equal(t, 3, cfg.Geometry.Dimension)
	assert.Equal(t, 1000, cfg.Search.BatchSize)
	assert.Equal(t, 90.0, cfg.Search.Percentile)
	assert.Equal(t, "8080", cfg.Server.Port)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("POINTCONFIG_CONFIG", "")
	t.Setenv("PRIME", "7")
	t.Setenv("BATCH_SIZE", "64")
	t.Setenv("SEED", "9001")
	t.Setenv("DATABASE_URL", "postgres://points@localhost/pointconfig?sslmode=disable")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Geometry.Prime)
	assert.Equal(t, 64, cfg.Search.BatchSize)
	assert.Equal(t, int64(9001), cfg.Search.Seed)
	assert.NotEmpty(t, cfg.Database.URL)
}

func TestLoadRejectsCompositePrime(t *testing.T) {
	t.Setenv("POINTCONFIG_CONFIG", "")
	t.Setenv("PRIME", "9")

	_, err := Load()
	require.Error(t, err)
	assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
}

func TestLoadRejectsOtherDimensions(t *testing.T) {
	t.Setenv("POINTCONFIG_CONFIG", "")
	t.Setenv("DIMENSION", "4")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadYAMLOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pointconfig.yaml")
	content := []byte("geometry:\n  prime: 13\nsearch:\n  rounds: 3\n  top_k: 5\n")
	require.NoError(t, os.WriteFile(path, content, 0o644))
	t.Setenv("POINTCONFIG_CONFIG", path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 13, cfg.Geometry.Prime)
	assert.Equal(t, 3, cfg.Geometry.Dimension, "fields absent from the file keep their environment values")
	assert.Equal(t, 3, cfg.Search.Rounds)
	assert.Equal(t, 5, cfg.Search.TopK)
	assert.Equal(t, 1000, cfg.Search.BatchSize)
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("POINTCONFIG_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))
	_, err := Load()
	assert.Error(t, err)
}
