package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/cubespawner/spawn"
)

func TestLoadDefaultsWithoutFile(t *testing.T) {
	app, err := Load(viper.New(), "", t.TempDir(), nil)
	require.NoError(t, err)

	assert.Equal(t, spawn.DefaultConfig(), app.Spawner)
	assert.Equal(t, "info", app.LogLevel)
	assert.Equal(t, 1280, app.Width)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	body := `
debug: true
spawner:
  templates: [cube]
  target_count: 3
  delay: 0.25
  range_x: 2
  range_z: 1.5
  scale: {x: 1, y: 2, z: 3}
  infinite: true
  use_physics: false
  default_scale: true
  reset_key: Backspace
  seed: 99
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "spawner.yaml"), []byte(body), 0o644))

	app, err := Load(viper.New(), "", dir, nil)
	require.NoError(t, err)

	cfg := app.Spawner
	assert.True(t, app.Debug)
	assert.Equal(t, []string{"cube"}, cfg.Templates)
	assert.Equal(t, 3, cfg.TargetCount)
	assert.Equal(t, 0.25, cfg.Delay)
	assert.Equal(t, 2.0, cfg.RangeX)
	assert.Equal(t, 1.5, cfg.RangeZ)
	assert.Equal(t, spawn.Vec3{X: 1, Y: 2, Z: 3}, cfg.Scale)
	assert.True(t, cfg.Infinite)
	assert.False(t, cfg.UsePhysics)
	assert.True(t, cfg.DefaultScale)
	assert.Equal(t, "Backspace", cfg.ResetKey)
	assert.Equal(t, uint64(99), cfg.Seed)
}

func TestLoadClampsDelay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("spawner:\n  delay: 30\n"), 0o644))

	logger, hook := test.NewNullLogger()
	app, err := Load(viper.New(), path, "", logger)
	require.NoError(t, err)

	assert.Equal(t, spawn.MaxDelay, app.Spawner.Delay)
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(viper.New(), filepath.Join(t.TempDir(), "nope.yaml"), "", nil)
	require.Error(t, err)
}

func TestEnvOverridesFile(t *testing.T) {
	t.Setenv("CUBESPAWNER_SPAWNER_TARGET_COUNT", "7")
	app, err := Load(viper.New(), "", t.TempDir(), nil)
	require.NoError(t, err)
	assert.Equal(t, 7, app.Spawner.TargetCount)
}
