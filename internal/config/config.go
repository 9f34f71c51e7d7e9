// Package config loads process configuration from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	// Gemini generation. An empty key routes every request to the fallback.
	GeminiAPIKey string
	GeminiModel  string
	ModelTimeout time.Duration

	// Documents
	MaxDocumentBytes int64
	DocumentRoot     string

	// PDF
	PDFFallbackPdftotext bool

	// Fallback
	FallbackPadSlides bool

	// Auth
	APIKey string

	// Stats
	LLMStatsWindow time.Duration
}

// Load reads a .env file from the working directory when present, then the
// environment. Variables already set take precedence over .env entries.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		Port: envOr("PORT", "8001"),

		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  envOr("GEMINI_MODEL", "gemini-2.5-flash"),
		ModelTimeout: envDuration("MODEL_TIMEOUT", 60*time.Second),

		MaxDocumentBytes: envInt64("MAX_DOCUMENT_BYTES", 52428800), // 50MB
		DocumentRoot:     os.Getenv("DOCUMENT_ROOT"),

		PDFFallbackPdftotext: envBool("PDF_FALLBACK_PDFTOTEXT", true),

		FallbackPadSlides: envBool("FALLBACK_PAD_SLIDES", true),

		APIKey: os.Getenv("DECKGEN_API_KEY"),

		LLMStatsWindow: envDuration("LLM_STATS_WINDOW", 1*time.Hour),
	}

	if cfg.ModelTimeout <= 0 {
		cfg.ModelTimeout = 60 * time.Second
	}
	if cfg.MaxDocumentBytes <= 0 {
		cfg.MaxDocumentBytes = 52428800
	}
	if cfg.LLMStatsWindow <= 0 {
		cfg.LLMStatsWindow = 1 * time.Hour
	}

	return cfg
}

// HasModel reports whether a model credential is configured.
func (c Config) HasModel() bool {
	return c.GeminiAPIKey != ""
}

// Validate checks structural sanity. The model credential is optional.
func (c Config) Validate() error {
	if n, err := strconv.Atoi(c.Port); err != nil || n <= 0 || n > 65535 {
		return fmt.Errorf("PORT must be a TCP port, got %q", c.Port)
	}
	if c.HasModel() && c.GeminiModel == "" {
		return fmt.Errorf("GEMINI_MODEL is required when GEMINI_API_KEY is set")
	}
	if c.DocumentRoot != "" {
		if !filepath.IsAbs(c.DocumentRoot) {
			return fmt.Errorf("DOCUMENT_ROOT %q must be absolute", c.DocumentRoot)
		}
		fi, err := os.Stat(c.DocumentRoot)
		if err != nil {
			return fmt.Errorf("DOCUMENT_ROOT: %w", err)
		}
		if !fi.IsDir() {
			return fmt.Errorf("DOCUMENT_ROOT %q is not a directory", c.DocumentRoot)
		}
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
