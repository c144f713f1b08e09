package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Environment
	Env string // "development", "production", etc.

	// Server
	ServerAddr string
	BaseURL    string

	// Database
	DatabaseURL string

	// CORS
	CORSOrigins string // Comma-separated allowed origins

	// Scraping
	ScrapeInterval time.Duration // Delay between scheduled catalog refreshes
	SourceTimeout  time.Duration // Per-source fetch timeout within a run
	SourcesFile    string        // Optional sources.yaml path

	// Reasoning service (OpenAI-compatible chat completions)
	LLMAPIKey     string
	LLMBaseURL    string
	LLMModel      string
	LLMTimeout    time.Duration
	LLMMaxRetries int
}

// Load reads the optional .env file and returns configuration from
// environment variables with sensible defaults.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, falling back to system env vars")
	}

	return &Config{
		Env:         getEnv("ENV", "development"),
		ServerAddr:  getEnv("SERVER_ADDR", ":8000"),
		BaseURL:     getEnv("BASE_URL", "http://localhost:8000"),
		DatabaseURL: getEnv("DATABASE_URL", "postgres://localhost:5432/terminsure?sslmode=disable"),
		CORSOrigins: getEnv("CORS_ORIGINS", ""),

		ScrapeInterval: getEnvDuration("SCRAPE_INTERVAL", 6*time.Hour),
		SourceTimeout:  getEnvDuration("SOURCE_TIMEOUT", 90*time.Second),
		SourcesFile:    getEnv("SOURCES_FILE", "sources.yaml"),

		LLMAPIKey:     getEnv("LLM_API_KEY", ""),
		LLMBaseURL:    getEnv("LLM_BASE_URL", "https://api.openai.com/v1"),
		LLMModel:      getEnv("LLM_MODEL", "gpt-4o-mini"),
		LLMTimeout:    getEnvDuration("LLM_TIMEOUT", 45*time.Second),
		LLMMaxRetries: getEnvInt("LLM_MAX_RETRIES", 2),
	}
}

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}
