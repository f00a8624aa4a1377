package config

import (
	"fmt"
	"os"
)

type GeminiConfig struct {
	APIKey      string
	Model       string
	Temperature float32
}

type SessionConfig struct {
	CookieName string
	Secret     string
}

type Config struct {
	Gemini      GeminiConfig
	Session     SessionConfig
	ServerPort  string
	MetricsAddr string
	PprofAddr   string
}

func Load() (*Config, error) {
	cfg := &Config{
		Gemini: GeminiConfig{
			APIKey:      os.Getenv("GEMINI_API_KEY"),
			Model:       getEnvOrDefault("GEMINI_MODEL", "gemini-2.0-flash"),
			Temperature: 0.2,
		},
		Session: SessionConfig{
			CookieName: getEnvOrDefault("SESSION_COOKIE_NAME", "jeonnam_stay_session"),
			Secret:     getEnvOrDefault("SESSION_SECRET", "jeonnam-stay-dev-secret"),
		},
		ServerPort:  getEnvOrDefault("SERVER_PORT", "8090"),
		MetricsAddr: getEnvOrDefault("METRICS_ADDR", ":9092"),
		PprofAddr:   getEnvOrDefault("PPROF_ADDR", ":6060"),
	}

	if cfg.Gemini.APIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
