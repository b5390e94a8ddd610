package config_test

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sift/internal/config"
)

func TestLoadConfig_Defaults(t *testing.T) {
	viper.Reset()
	t.Setenv("CORS_ORIGINS", "")

	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "sift", cfg.Server.Name)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "openai", cfg.Embedding.Provider)
	assert.Equal(t, "text-embedding-3-small", cfg.Embedding.Model)
	assert.Equal(t, "https://openrouter.ai/api/v1", cfg.Embedding.BaseURL)
	assert.Empty(t, cfg.CORS.Origins)
}

func TestLoadConfig_CORSOriginsFromEnv(t *testing.T) {
	viper.Reset()
	t.Setenv("CORS_ORIGINS", "http://localhost:3000, https://class.example.com")

	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, []string{"http://localhost:3000", "https://class.example.com"}, cfg.CORS.Origins)
}

func TestLoadConfig_APIKeyFromEnv(t *testing.T) {
	viper.Reset()
	t.Setenv("OPENROUTER_API_KEY", "router-key")

	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "router-key", cfg.Embedding.ApiKey)
}
