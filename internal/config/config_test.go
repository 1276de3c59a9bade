package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8080", cfg.ListenAddress)
	assert.Equal(t, "https://api.siliconflow.cn/v1", cfg.Backend.APIRoot)
	assert.Equal(t, "flux-schnell", cfg.DefaultModel)
	assert.Equal(t, 4, cfg.DefaultSteps)
	assert.Equal(t, "black-forest-labs/FLUX.1-schnell", cfg.Models["flux-schnell"])
	assert.Equal(t, "gallery-data", cfg.Gallery.LocalDir)
	assert.Equal(t, "env", cfg.ParamStore)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
listen_address: 0.0.0.0:9000
public_url: https://booth.example.com
backend:
  api_root: https://images.internal/v1
  api_key: test-key
models:
  flux-schnell: black-forest-labs/FLUX.1-schnell
  house-model: internal/house-model-v2
default_model: house-model
default_steps: 6
gallery:
  bucket: booth-gallery
  distribution: E123DISTRO
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9000", cfg.ListenAddress)
	assert.Equal(t, "https://images.internal/v1", cfg.Backend.APIRoot)
	assert.Equal(t, "test-key", cfg.Backend.APIKey)
	assert.Equal(t, "house-model", cfg.DefaultModel)
	assert.Equal(t, 6, cfg.DefaultSteps)
	assert.Equal(t, "internal/house-model-v2", cfg.Models["house-model"])
	// File entries extend the built-in catalog rather than replacing it.
	assert.Equal(t, "black-forest-labs/FLUX.1-dev", cfg.Models["flux-dev"])
	assert.Equal(t, "booth-gallery", cfg.Gallery.Bucket)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("PROMPTBOOTH_LISTEN_ADDRESS", "127.0.0.1:7777")
	t.Setenv("PROMPTBOOTH_BACKEND_API_KEY", "env-key")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:7777", cfg.ListenAddress)
	assert.Equal(t, "env-key", cfg.Backend.APIKey)
}

func TestLoadValidation(t *testing.T) {
	t.Run("missing config file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("unknown default model", func(t *testing.T) {
		path := writeConfig(t, "default_model: missing-model\n")
		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "default_model")
	})

	t.Run("steps out of range", func(t *testing.T) {
		path := writeConfig(t, "default_steps: 12\n")
		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "default_steps")
	})

	t.Run("unknown param store", func(t *testing.T) {
		path := writeConfig(t, "param_store: vault\n")
		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "param_store")
	})
}
