package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func writeConfigFile(t *testing.T, dir, name string, values map[string]any) {
	t.Helper()
	data, err := yaml.Marshal(values)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0o644))
}

func TestLoadConfigReadsFileAndDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	writeConfigFile(t, dir, "config.yml", map[string]any{
		"PORT":    "9999",
		"DB_NAME": "photogram_dev",
	})
	t.Chdir(dir)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9999", cfg.Port)
	assert.Equal(t, "photogram_dev", cfg.DBName)
	// Unset keys fall back to defaults.
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "media", cfg.MediaRoot)
	assert.False(t, cfg.TracingEnabled)
}

func TestLoadConfigMergesEnvironmentFile(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	writeConfigFile(t, dir, "config.yml", map[string]any{
		"APP_ENV": "staging",
		"PORT":    "8480",
	})
	writeConfigFile(t, dir, "config.staging.yml", map[string]any{
		"PORT": "8600",
	})
	t.Chdir(dir)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "staging", cfg.Env)
	assert.Equal(t, "8600", cfg.Port, "environment file overrides the base value")
}

func TestValidateProduction(t *testing.T) {
	base := Config{
		Port:          "8480",
		SessionSecret: "a-long-enough-production-secret-value",
		DBPassword:    "s3cure-enough",
		Env:           "production",
	}

	t.Run("valid", func(t *testing.T) {
		cfg := base
		assert.NoError(t, cfg.Validate())
	})

	t.Run("default secret rejected", func(t *testing.T) {
		cfg := base
		cfg.SessionSecret = "your-secret-key-change-in-production"
		assert.Error(t, cfg.Validate())
	})

	t.Run("short secret rejected", func(t *testing.T) {
		cfg := base
		cfg.SessionSecret = "short"
		assert.Error(t, cfg.Validate())
	})

	t.Run("weak db password rejected", func(t *testing.T) {
		cfg := base
		cfg.DBPassword = "password"
		assert.Error(t, cfg.Validate())
	})

	t.Run("development tolerates defaults", func(t *testing.T) {
		cfg := base
		cfg.Env = "development"
		cfg.DBPassword = "password"
		assert.NoError(t, cfg.Validate())
	})
}
