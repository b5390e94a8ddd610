package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		Name string `mapstructure:"name"`
		Addr string `mapstructure:"addr"`
		Port string `mapstructure:"port"`
		Mode string `mapstructure:"mode"` // gin mode: debug or release
	} `mapstructure:"server"`

	Embedding struct {
		Provider     string `mapstructure:"provider"` // "openai" or "gemini"
		Model        string `mapstructure:"model"`
		ApiKey       string `mapstructure:"api_key"`
		BaseURL      string `mapstructure:"base_url"`
		GeminiApiKey string `mapstructure:"gemini_api_key"`
		GeminiModel  string `mapstructure:"gemini_model"`
	} `mapstructure:"embedding"`

	CORS struct {
		Origins []string `mapstructure:"origins"`
	} `mapstructure:"cors"`

	Log struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	viper.SetDefault("server.name", "sift")
	viper.SetDefault("server.addr", "localhost")
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.mode", "release")
	viper.SetDefault("embedding.provider", "openai")
	viper.SetDefault("embedding.model", "text-embedding-3-small")
	viper.SetDefault("embedding.base_url", "https://openrouter.ai/api/v1")
	viper.SetDefault("embedding.gemini_model", "models/embedding-001")
	viper.SetDefault("log.level", "info")

	viper.AutomaticEnv()

	// Secrets are usually supplied via env rather than config.yaml.
	// OPENROUTER_API_KEY takes precedence since OpenRouter is the
	// default base URL; OPENAI_API_KEY works for a stock deployment.
	viper.BindEnv("embedding.api_key", "OPENROUTER_API_KEY", "OPENAI_API_KEY")
	viper.BindEnv("embedding.gemini_api_key", "GEMINI_API_KEY")
	viper.BindEnv("cors.origins", "CORS_ORIGINS")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; rely on defaults and env vars.
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	// CORS_ORIGINS arrives as a comma-separated string; viper splits it
	// on commas but leaves any surrounding whitespace in place.
	origins := make([]string, 0, len(config.CORS.Origins))
	for _, o := range config.CORS.Origins {
		if trimmed := strings.TrimSpace(o); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	config.CORS.Origins = origins

	return &config, nil
}
