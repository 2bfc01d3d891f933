package config

import (
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func validConfig(t *testing.T) *Config {
	t.Helper()
	return &Config{
		Port:           "8081",
		LedgerPath:     filepath.Join(t.TempDir(), "expenses.csv"),
		OCREndpoint:    "https://example.cognitiveservices.azure.com/",
		OCRKey:         "secret",
		OCRPreprocess:  "plain",
		InsightTimeout: 30 * time.Second,
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.Port != "8081" {
		t.Errorf("Port = %s, want 8081", cfg.Port)
	}
	if cfg.OCRPreprocess != "plain" {
		t.Errorf("OCRPreprocess = %s, want plain", cfg.OCRPreprocess)
	}
	if cfg.InsightEnabled() {
		t.Error("insight should be disabled by default")
	}
	if cfg.InsightTimeout != 30*time.Second {
		t.Errorf("InsightTimeout = %v, want 30s", cfg.InsightTimeout)
	}
}

func TestValidate(t *testing.T) {
	if err := validConfig(t).Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	cases := []struct {
		name    string
		mutate  func(*Config)
		wantMsg string
	}{
		{"bad port", func(c *Config) { c.Port = "abc" }, "invalid port"},
		{"port out of range", func(c *Config) { c.Port = "70000" }, "invalid port"},
		{"missing endpoint", func(c *Config) { c.OCREndpoint = "" }, "AZURE_OCR_ENDPOINT"},
		{"missing key", func(c *Config) { c.OCRKey = "" }, "AZURE_OCR_KEY"},
		{"bad preprocess", func(c *Config) { c.OCRPreprocess = "sepia" }, "OCR_PREPROCESS"},
		{"empty ledger path", func(c *Config) { c.LedgerPath = "" }, "ledger path"},
		{"bad insight scheme", func(c *Config) { c.InsightURL = "ftp://insight:11434" }, "insight URL scheme"},
		{"insight without model", func(c *Config) { c.InsightURL = "http://insight:11434"; c.InsightModel = "" }, "insight model"},
		{"timeout too small", func(c *Config) { c.InsightTimeout = 100 * time.Millisecond }, "insight timeout"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig(t)
			tc.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.wantMsg) {
				t.Fatalf("error %q does not mention %q", err, tc.wantMsg)
			}
		})
	}
}

func TestInsightEnabled(t *testing.T) {
	cfg := validConfig(t)
	if cfg.InsightEnabled() {
		t.Error("expected insight disabled without URL")
	}
	cfg.InsightURL = "http://insight:11434"
	cfg.InsightModel = "llama3"
	if !cfg.InsightEnabled() {
		t.Error("expected insight enabled with URL")
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("valid insight config rejected: %v", err)
	}
}
