package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadConfig(t *testing.T, yaml string) *Config {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))
	t.Setenv("CONFIG_PATH", path)

	require.NoError(t, Init())
	return GlobalConfig
}

func TestInit_PartialConfigKeepsTuningOn(t *testing.T) {
	// A config that never mentions clustering still gets the canonical
	// auto-tuned radius, not the fixed-eps fallback.
	cfg := loadConfig(t, `
server:
  port: 9000
`)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, DefaultClusteringConfig(), cfg.Clustering)
	assert.Equal(t, DefaultSchedulingConfig(), cfg.Scheduling)
}

func TestInit_ExplicitZeroDisablesTuning(t *testing.T) {
	cfg := loadConfig(t, `
clustering:
  target_clusters: 0
`)

	assert.Equal(t, 0, cfg.Clustering.TargetClusters)
	// Only the overridden key changes; siblings keep their defaults.
	assert.Equal(t, DefaultClusteringConfig().FixedEps, cfg.Clustering.FixedEps)
	assert.Equal(t, DefaultClusteringConfig().EpsMin, cfg.Clustering.EpsMin)
}

func TestInit_OverridesApply(t *testing.T) {
	cfg := loadConfig(t, `
clustering:
  target_clusters: 4
scheduling:
  payload_seconds: 40
`)

	assert.Equal(t, 4, cfg.Clustering.TargetClusters)
	assert.Equal(t, 40, cfg.Scheduling.PayloadSeconds)
	assert.Equal(t, DefaultSchedulingConfig().SetupSeconds, cfg.Scheduling.SetupSeconds)
}

func TestInit_MissingFile(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, Init())
}
