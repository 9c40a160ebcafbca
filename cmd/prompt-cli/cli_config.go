package main

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/joho/godotenv"

	configpkg "github.com/minhyannv/prompt-cli/pkg/config"
)

// parseCLIConfig loads .env, the environment and flags into runtime config.
func parseCLIConfig(args []string, getenv func(string) string, stderr io.Writer) (configpkg.Config, error) {
	_ = godotenv.Load()

	defaults := configpkg.DefaultConfig()
	fs := flag.NewFlagSet("prompt-cli", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var preambleDirs stringSliceFlag
	fs.Var(&preambleDirs, "preamble_dirs", "Directory containing PREAMBLE.md profiles. Repeat this flag for multiple directories; comma-separated values are not supported")
	preambleText := fs.String("preamble", "", "Preamble text prepended to every line (overrides -preamble_name)")
	preambleName := fs.String("preamble_name", "", "Named preamble profile (builtin: sql, rust-qa)")
	maxTokens := fs.Int("max_tokens", defaults.MaxTokens, "max_tokens sent with every request")
	endpoint := fs.String("endpoint", defaults.Endpoint, "Completion endpoint path relative to the base URL")
	timeout := fs.Duration("timeout", defaults.Timeout, "Per-request timeout (0 waits forever)")
	verbose := fs.Bool("verbose", defaults.Verbose, "Verbose request logging")
	logFile := fs.String("log_file", "", "Write logs to a rotated file instead of stderr")
	telemetryDir := fs.String("telemetry_dir", "", "Directory for trace and metric files (empty disables telemetry)")
	noClear := fs.Bool("no_clear", false, "Do not clear the terminal at startup")
	if err := fs.Parse(args); err != nil {
		return configpkg.Config{}, err
	}

	cfg := defaults
	cfg.APIKey = strings.TrimSpace(getenv("OAI_TOKEN"))
	if cfg.APIKey == "" {
		cfg.APIKey = strings.TrimSpace(getenv("OPENAI_API_KEY"))
	}
	if baseURL := strings.TrimSpace(getenv("OPENAI_BASE_URL")); baseURL != "" {
		cfg.BaseURL = baseURL
	}
	cfg.Preamble = strings.TrimSpace(*preambleText)
	cfg.PreambleName = strings.TrimSpace(*preambleName)
	cfg.PreambleDirs = preambleDirs.values()
	cfg.MaxTokens = *maxTokens
	cfg.Endpoint = strings.TrimSpace(*endpoint)
	cfg.Timeout = *timeout
	cfg.Verbose = *verbose
	cfg.LogFile = strings.TrimSpace(*logFile)
	cfg.TelemetryDir = strings.TrimSpace(*telemetryDir)
	cfg.ClearScreen = !*noClear
	return configpkg.Normalize(cfg), nil
}

// stringSliceFlag supports repeatable -preamble_dirs flags.
type stringSliceFlag []string

func (f *stringSliceFlag) String() string {
	if f == nil {
		return ""
	}
	return strings.Join(*f, ",")
}

func (f *stringSliceFlag) Set(value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return fmt.Errorf("empty preamble directory")
	}
	if strings.Contains(value, ",") {
		return fmt.Errorf("comma-separated values are not supported for -preamble_dirs; repeat the flag instead")
	}
	*f = append(*f, value)
	return nil
}

func (f stringSliceFlag) values() []string {
	out := make([]string, len(f))
	copy(out, f)
	return out
}
