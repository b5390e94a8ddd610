package app_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sift/internal/app"
	"sift/internal/config"
	"sift/internal/models"
)

func TestNewApp_OpenAIProvider(t *testing.T) {
	cfg := &config.Config{}
	cfg.Embedding.Provider = "openai"
	cfg.Embedding.ApiKey = "test-key"

	appInstance, err := app.NewApp(cfg)
	require.NoError(t, err)
	assert.Equal(t, "openai", appInstance.Embedder.Name())
}

func TestNewApp_MissingKey(t *testing.T) {
	t.Setenv("OPENROUTER_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")

	cfg := &config.Config{}
	cfg.Embedding.Provider = "openai"

	_, err := app.NewApp(cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrMissingAPIKey)
}

func TestNewApp_UnknownProvider(t *testing.T) {
	cfg := &config.Config{}
	cfg.Embedding.Provider = "watson"

	_, err := app.NewApp(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown embedding provider")
}
