package app

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"sift/internal/config"
	"sift/internal/services"
)

// App wires the process-wide dependencies: configuration and the shared
// embedding provider. Classifier and filter instances are created per
// request, so nothing here is mutated after initialization.
type App struct {
	Config   *config.Config
	Embedder services.EmbeddingProvider
}

func NewApp(cfg *config.Config) (*App, error) {
	app := &App{Config: cfg}

	if err := app.initEmbeddingProvider(); err != nil {
		return nil, err
	}

	log.Debug("application initialization complete")
	return app, nil
}

func (a *App) initEmbeddingProvider() error {
	switch a.Config.Embedding.Provider {
	case "openai", "":
		provider, err := services.NewOpenAIProvider(
			a.Config.Embedding.ApiKey,
			a.Config.Embedding.BaseURL,
			a.Config.Embedding.Model,
		)
		if err != nil {
			return fmt.Errorf("init openai provider: %w", err)
		}
		a.Embedder = provider
	case "gemini":
		provider, err := services.NewGeminiProvider(
			a.Config.Embedding.GeminiApiKey,
			a.Config.Embedding.GeminiModel,
		)
		if err != nil {
			return fmt.Errorf("init gemini provider: %w", err)
		}
		a.Embedder = provider
	default:
		return fmt.Errorf("unknown embedding provider %q (want \"openai\" or \"gemini\")", a.Config.Embedding.Provider)
	}
	return nil
}
