package main

import (
	"io"
	"testing"
	"time"

	configpkg "github.com/minhyannv/prompt-cli/pkg/config"
)

func envMap(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func TestStringSliceFlagSetRejectsComma(t *testing.T) {
	var f stringSliceFlag
	if err := f.Set("./preambles,../shared"); err == nil {
		t.Fatal("expected comma-separated value to be rejected")
	}
}

func TestStringSliceFlagSetAcceptsSingleValue(t *testing.T) {
	var f stringSliceFlag
	if err := f.Set("./preambles"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(f) != 1 || f[0] != "./preambles" {
		t.Fatalf("unexpected flag values: %#v", f)
	}
}

func TestParseCLIConfigDefaults(t *testing.T) {
	cfg, err := parseCLIConfig(nil, envMap(map[string]string{"OAI_TOKEN": " sk-test "}), io.Discard)
	if err != nil {
		t.Fatalf("parseCLIConfig: %v", err)
	}
	if cfg.APIKey != "sk-test" {
		t.Fatalf("unexpected token: %q", cfg.APIKey)
	}
	if cfg.MaxTokens != 1000 || cfg.Endpoint != configpkg.DefaultEndpoint || cfg.BaseURL != configpkg.DefaultBaseURL {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if !cfg.ClearScreen || cfg.Timeout != 0 {
		t.Fatalf("unexpected terminal/timeout defaults: %+v", cfg)
	}
}

func TestParseCLIConfigFlagsAndFallbackToken(t *testing.T) {
	args := []string{
		"-preamble_name", "rust-qa",
		"-preamble_dirs", "./a",
		"-preamble_dirs", "./b",
		"-timeout", "30s",
		"-no_clear",
		"-verbose",
	}
	env := envMap(map[string]string{
		"OPENAI_API_KEY":  "sk-fallback",
		"OPENAI_BASE_URL": "http://localhost:8080/v1/",
	})
	cfg, err := parseCLIConfig(args, env, io.Discard)
	if err != nil {
		t.Fatalf("parseCLIConfig: %v", err)
	}
	if cfg.APIKey != "sk-fallback" {
		t.Fatalf("expected fallback token, got %q", cfg.APIKey)
	}
	if cfg.BaseURL != "http://localhost:8080/v1/" {
		t.Fatalf("unexpected base url: %q", cfg.BaseURL)
	}
	if cfg.PreambleName != "rust-qa" || len(cfg.PreambleDirs) != 2 {
		t.Fatalf("unexpected preamble config: %+v", cfg)
	}
	if cfg.Timeout != 30*time.Second || cfg.ClearScreen || !cfg.Verbose {
		t.Fatalf("unexpected flags: %+v", cfg)
	}
}

func TestParseCLIConfigRejectsUnknownFlag(t *testing.T) {
	if _, err := parseCLIConfig([]string{"-nope"}, envMap(nil), io.Discard); err == nil {
		t.Fatal("expected error for unknown flag")
	}
}
