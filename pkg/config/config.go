package config

import (
	"errors"
	"strings"
	"time"
)

const (
	DefaultBaseURL   = "https://api.openai.com/v1/"
	DefaultEndpoint  = "engines/text-davinci-001/completions"
	DefaultPreamble  = "Write a SQL query according to the sentence"
	DefaultMaxTokens = 1000
)

// ErrMissingAPIKey is returned when no bearer token was configured.
var ErrMissingAPIKey = errors.New("API token is not set (OAI_TOKEN)")

// Config holds all runtime configuration for a completion session.
type Config struct {
	APIKey   string
	BaseURL  string
	Endpoint string

	// Preamble is explicit preamble text; it wins over PreambleName.
	Preamble     string
	PreambleName string
	PreambleDirs []string

	MaxTokens int
	Timeout   time.Duration

	Verbose      bool
	LogFile      string
	TelemetryDir string
	ClearScreen  bool
}

// DefaultConfig returns a baseline configuration without side effects.
func DefaultConfig() Config {
	return Config{
		BaseURL:     DefaultBaseURL,
		Endpoint:    DefaultEndpoint,
		MaxTokens:   DefaultMaxTokens,
		ClearScreen: true,
	}
}

// Normalize sanitizes configuration values and applies defaults.
func Normalize(cfg Config) Config {
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	cfg.BaseURL = strings.TrimSpace(cfg.BaseURL)
	cfg.Endpoint = strings.TrimLeft(strings.TrimSpace(cfg.Endpoint), "/")
	cfg.PreambleName = strings.TrimSpace(cfg.PreambleName)
	cfg.LogFile = strings.TrimSpace(cfg.LogFile)
	cfg.TelemetryDir = strings.TrimSpace(cfg.TelemetryDir)

	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = DefaultMaxTokens
	}
	if cfg.Timeout < 0 {
		cfg.Timeout = 0
	}

	normalizedDirs := make([]string, 0, len(cfg.PreambleDirs))
	for _, dir := range cfg.PreambleDirs {
		dir = strings.TrimSpace(dir)
		if dir == "" {
			continue
		}
		normalizedDirs = append(normalizedDirs, dir)
	}
	cfg.PreambleDirs = normalizedDirs
	return cfg
}

// Validate reports configuration errors that must stop startup.
func Validate(cfg Config) error {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return ErrMissingAPIKey
	}
	return nil
}
