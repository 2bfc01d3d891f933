package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"billscan/internal/ocr"
)

type Config struct {
	// HTTP Server
	Port string

	// Ledger backing file
	LedgerPath string

	// OCR engine
	OCREndpoint   string
	OCRKey        string
	OCRPreprocess string

	// Optional text-insight capability; empty URL means absent.
	InsightURL     string
	InsightModel   string
	InsightTimeout time.Duration
}

func Load() *Config {
	return &Config{
		Port:       getEnv("PORT", "8081"),
		LedgerPath: getEnv("LEDGER_PATH", "./data/expenses.csv"),

		OCREndpoint:   getEnv("AZURE_OCR_ENDPOINT", ""),
		OCRKey:        getEnv("AZURE_OCR_KEY", ""),
		OCRPreprocess: getEnv("OCR_PREPROCESS", string(ocr.PreprocessPlain)),

		InsightURL:     getEnv("INSIGHT_URL", ""),
		InsightModel:   getEnv("INSIGHT_MODEL", "llama3"),
		InsightTimeout: getEnvDuration("INSIGHT_TIMEOUT", 30*time.Second),
	}
}

// InsightEnabled reports whether an insight backend is configured.
// When false the extractor runs on the deterministic fallback alone.
func (c *Config) InsightEnabled() bool {
	return c.InsightURL != ""
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.LedgerPath == "" {
		errors = append(errors, "ledger path cannot be empty")
	} else {
		dir := filepath.Dir(c.LedgerPath)
		if dir != "." && dir != "" {
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				if err := os.MkdirAll(dir, 0755); err != nil {
					errors = append(errors, fmt.Sprintf("cannot create ledger directory '%s': %v", dir, err))
				}
			}
		}
	}

	if c.OCREndpoint == "" {
		errors = append(errors, "AZURE_OCR_ENDPOINT is required")
	}
	if c.OCRKey == "" {
		errors = append(errors, "AZURE_OCR_KEY is required")
	}
	if _, err := ocr.ParsePreprocess(c.OCRPreprocess); err != nil {
		errors = append(errors, fmt.Sprintf("invalid OCR_PREPROCESS '%s': must be 'plain' or 'grayscale'", c.OCRPreprocess))
	}

	if c.InsightURL != "" {
		if parsed, err := url.Parse(c.InsightURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid insight URL '%s': %v", c.InsightURL, err))
		} else if parsed.Scheme != "http" && parsed.Scheme != "https" {
			errors = append(errors, fmt.Sprintf("invalid insight URL scheme '%s': must be 'http' or 'https'", parsed.Scheme))
		}
		if c.InsightModel == "" {
			errors = append(errors, "insight model cannot be empty when an insight URL is provided")
		}
	}

	if c.InsightTimeout < time.Second {
		errors = append(errors, fmt.Sprintf("invalid insight timeout %v: must be at least 1 second", c.InsightTimeout))
	} else if c.InsightTimeout > 5*time.Minute {
		errors = append(errors, fmt.Sprintf("invalid insight timeout %v: must be at most 5 minutes", c.InsightTimeout))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
