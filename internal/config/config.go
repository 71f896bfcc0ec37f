// Package config loads runtime configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all runtime settings.
type Config struct {
	// HTTP server
	Port string

	// Storage backend: "memory" or "sqlite"
	Backend string
	DBPath  string

	// Extraction service
	AnthropicAPIKey string
	AnthropicModel  string
	// ExtractConcurrency bounds parallel extraction calls per upload batch.
	ExtractConcurrency int

	// Roster overrides the default household when set.
	Roster []string
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first if present; missing files are not an error.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:               getEnv("PORT", "8080"),
		Backend:            getEnv("STORAGE_BACKEND", "sqlite"),
		DBPath:             getEnv("DB_PATH", "./data/bills.db"),
		AnthropicAPIKey:    getEnv("ANTHROPIC_API_KEY", ""),
		AnthropicModel:     getEnv("ANTHROPIC_MODEL", "claude-haiku-4-5-20251001"),
		ExtractConcurrency: getEnvInt("EXTRACT_CONCURRENCY", 3),
		Roster:             getEnvList("ROSTER"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

// getEnvList parses a comma-separated list, dropping blank entries.
func getEnvList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
