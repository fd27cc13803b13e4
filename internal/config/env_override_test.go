package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvOverrides(t *testing.T) {
	t.Run("WTF_* replace file values", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("WTF_API_KEY", "env-key")
		t.Setenv("WTF_API_ENDPOINT", "https://env.test")
		t.Setenv("WTF_MODEL", "env-model")

		cfg := validConfig()
		cfg.applyEnvOverrides()

		assert.Equal(t, "env-key", cfg.APIKey)
		assert.Equal(t, "https://env.test", cfg.APIEndpoint)
		assert.Equal(t, "env-model", cfg.Model)
	})

	t.Run("empty env leaves values", func(t *testing.T) {
		clearEnv(t)
		cfg := validConfig()
		cfg.applyEnvOverrides()
		assert.Equal(t, validConfig(), cfg)
	})

	t.Run("WTF_PROVIDER is case-insensitive", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("WTF_PROVIDER", "Gemini")
		cfg := &Config{}
		cfg.applyEnvOverrides()
		assert.Equal(t, ProviderGemini, cfg.ActiveProvider())
	})

	t.Run("GEMINI_API_KEY fills missing key for gemini", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("GEMINI_API_KEY", "gem")
		cfg := &Config{Provider: ProviderGemini}
		cfg.applyEnvOverrides()
		assert.Equal(t, "gem", cfg.APIKey)
	})

	t.Run("GEMINI_API_KEY does not override existing key", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("GEMINI_API_KEY", "gem")
		cfg := &Config{Provider: ProviderGemini, APIKey: "file-key"}
		cfg.applyEnvOverrides()
		assert.Equal(t, "file-key", cfg.APIKey)
	})

	t.Run("GEMINI_API_KEY ignored for openai", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("GEMINI_API_KEY", "gem")
		cfg := &Config{}
		cfg.applyEnvOverrides()
		assert.Empty(t, cfg.APIKey)
	})

	t.Run("LoadFrom applies overrides", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("WTF_MODEL", "env-model")
		path := filepath.Join(t.TempDir(), FileName)
		require.NoError(t, validConfig().Save(path))

		cfg, err := LoadFrom(path)
		require.NoError(t, err)
		assert.Equal(t, "env-model", cfg.Model)
	})
}
