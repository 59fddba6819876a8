package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.APIPort != "8080" {
		t.Fatalf("APIPort = %q", cfg.APIPort)
	}
	if cfg.ClassifyMinTextLength != 50 {
		t.Fatalf("ClassifyMinTextLength = %d", cfg.ClassifyMinTextLength)
	}
	if cfg.ClassifyOverrideThreshold != 2 {
		t.Fatalf("ClassifyOverrideThreshold = %d", cfg.ClassifyOverrideThreshold)
	}
	if cfg.ClassifyPromptTextLimit != 2000 {
		t.Fatalf("ClassifyPromptTextLimit = %d", cfg.ClassifyPromptTextLimit)
	}
	if cfg.StorageBackend != "local" {
		t.Fatalf("StorageBackend = %q", cfg.StorageBackend)
	}
	if cfg.OpenAIAPIKey != "" {
		t.Fatalf("OpenAIAPIKey should default empty")
	}
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("API_PORT", "9999")
	t.Setenv("STORAGE_BACKEND", "s3")
	t.Setenv("S3_USE_SSL", "true")
	t.Setenv("API_RATE_LIMIT_RPS", "2.5")
	t.Setenv("CLASSIFY_MIN_TEXT_LENGTH", "80")

	cfg := Load()
	if cfg.APIPort != "9999" {
		t.Fatalf("APIPort = %q", cfg.APIPort)
	}
	if cfg.StorageBackend != "s3" {
		t.Fatalf("StorageBackend = %q", cfg.StorageBackend)
	}
	if !cfg.S3UseSSL {
		t.Fatalf("S3UseSSL should be true")
	}
	if cfg.APIRateLimitRPS != 2.5 {
		t.Fatalf("APIRateLimitRPS = %v", cfg.APIRateLimitRPS)
	}
	if cfg.ClassifyMinTextLength != 80 {
		t.Fatalf("ClassifyMinTextLength = %d", cfg.ClassifyMinTextLength)
	}
}

func TestInvalidNumbersFallBack(t *testing.T) {
	t.Setenv("CLASSIFY_OVERRIDE_THRESHOLD", "not-a-number")
	t.Setenv("API_RATE_LIMIT_RPS", "banana")
	t.Setenv("S3_USE_SSL", "definitely")

	cfg := Load()
	if cfg.ClassifyOverrideThreshold != 2 {
		t.Fatalf("ClassifyOverrideThreshold = %d", cfg.ClassifyOverrideThreshold)
	}
	if cfg.APIRateLimitRPS != 50 {
		t.Fatalf("APIRateLimitRPS = %v", cfg.APIRateLimitRPS)
	}
	if cfg.S3UseSSL {
		t.Fatalf("S3UseSSL should fall back to false")
	}
}
