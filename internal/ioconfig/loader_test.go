package ioconfig_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/esdveg/internal/ioconfig"
	"github.com/gnames/esdveg/internal/iofs"
	"github.com/gnames/esdveg/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := ioconfig.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.New(), cfg)
}

func TestLoadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg, err := ioconfig.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultPlantsSource, cfg.Plants.Source)
}

func TestLoadEmbeddedDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(iofs.ConfigYAML), 0644))

	cfg, err := ioconfig.Load(path)
	require.NoError(t, err)
	def := config.New()
	assert.Equal(t, def.Plants, cfg.Plants)
	assert.Equal(t, def.Assembly, cfg.Assembly)
	assert.Equal(t, def.Database, cfg.Database)
	assert.Equal(t, def.Log, cfg.Log)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
plants:
  source: /data/plants.txt
  timeout_sec: 30
assembly:
  collapse_empty: true
database:
  port: 5433
  ssl_mode: bogus
log:
  level: debug
jobs_number: 3
metrics_file: /tmp/esdveg.prom
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := ioconfig.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/data/plants.txt", cfg.Plants.Source)
	assert.Equal(t, 30, cfg.Plants.TimeoutSec)
	assert.True(t, cfg.Assembly.CollapseEmpty)
	assert.Equal(t, 5433, cfg.Database.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode, "invalid value ignored")
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 3, cfg.JobsNumber)
	assert.Equal(t, "/tmp/esdveg.prom", cfg.MetricsFile)
}

func TestLoadEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "plants:\n  source: /data/plants.txt\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	t.Setenv("ESDVEG_PLANTS_SOURCE", "/env/plants.txt")
	t.Setenv("ESDVEG_DATABASE_USER", "esd")
	t.Setenv("ESDVEG_ASSEMBLY_COLLAPSE_EMPTY", "true")
	t.Setenv("ESDVEG_JOBS_NUMBER", "2")

	cfg, err := ioconfig.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/env/plants.txt", cfg.Plants.Source)
	assert.Equal(t, "esd", cfg.Database.User)
	assert.True(t, cfg.Assembly.CollapseEmpty)
	assert.Equal(t, 2, cfg.JobsNumber)
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("plants: [\n"), 0644))

	_, err := ioconfig.Load(path)
	assert.Error(t, err)
}
