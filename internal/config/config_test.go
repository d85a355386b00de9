package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestLoad_Defaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.InDelta(t, 0.360, cfg.ISV.Threshold, 1e-9)
	assert.Equal(t, 4, cfg.ISV.MinRunLength)
	assert.Equal(t, []string{"U20", "U40", "U60"}, cfg.ISV.Depths)
	assert.Equal(t, "Data", cfg.Input.DateColumn)
	assert.Equal(t, 4, cfg.Batch.Concurrency)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := chdirTemp(t)

	doc := map[string]any{
		"isv": map[string]any{
			"threshold":      0.25,
			"min_run_length": 6,
			"depths":         []string{"U10"},
		},
		"log": map[string]any{"level": "debug", "format": "console"},
	}
	raw, err := yaml.Marshal(doc)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), raw, 0o644))

	cfg, err := Load()
	require.NoError(t, err)
	assert.InDelta(t, 0.25, cfg.ISV.Threshold, 1e-9)
	assert.Equal(t, 6, cfg.ISV.MinRunLength)
	assert.Equal(t, []string{"U10"}, cfg.ISV.Depths)
	assert.Equal(t, "debug", cfg.Log.Level)
	// Untouched sections keep their defaults.
	assert.Equal(t, "Data", cfg.Input.DateColumn)
}

func TestLoad_EnvOverride(t *testing.T) {
	chdirTemp(t)
	t.Setenv("ISV_ISV_MIN_RUN_LENGTH", "7")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.ISV.MinRunLength)
}

func TestValidate(t *testing.T) {
	valid := ISVConfig{Threshold: 0.36, MinRunLength: 4, Depths: []string{"U20"}}
	assert.NoError(t, valid.Validate())

	tooShort := valid
	tooShort.MinRunLength = 0
	assert.Error(t, tooShort.Validate())

	tooLong := valid
	tooLong.MinRunLength = 11
	assert.Error(t, tooLong.Validate())

	noDepths := valid
	noDepths.Depths = nil
	assert.Error(t, noDepths.Validate())

	// Out-of-range threshold warns but does not fail.
	oddThreshold := valid
	oddThreshold.Threshold = 3.6
	assert.NoError(t, oddThreshold.Validate())
}

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}
