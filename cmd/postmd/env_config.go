package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-postmd/internal/config"
)

// envPrefix marks the environment variables read by postmd.
const envPrefix = "POSTMD_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath   string        // POSTMD_CONFIG: config file name or path
	Theme        string        // POSTMD_THEME: light or dark
	Style        string        // POSTMD_STYLE: CSS style name or path
	Timeout      time.Duration // POSTMD_TIMEOUT: per-file timeout
	InputDir     string        // POSTMD_INPUT_DIR: default input directory
	OutputDir    string        // POSTMD_OUTPUT_DIR: default output directory
	ImageBaseURL string        // POSTMD_IMAGE_BASE_URL: image base URL
	Workers      int           // POSTMD_WORKERS: parallel workers
}

// knownEnvVars lists valid POSTMD_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"POSTMD_CONFIG":         true,
	"POSTMD_THEME":          true,
	"POSTMD_STYLE":          true,
	"POSTMD_TIMEOUT":        true,
	"POSTMD_INPUT_DIR":      true,
	"POSTMD_OUTPUT_DIR":     true,
	"POSTMD_IMAGE_BASE_URL": true,
	"POSTMD_WORKERS":        true,
}

// loadEnvConfig reads configuration from environment variables.
// Invalid timeout and worker values are ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath:   os.Getenv("POSTMD_CONFIG"),
		Theme:        os.Getenv("POSTMD_THEME"),
		Style:        os.Getenv("POSTMD_STYLE"),
		InputDir:     os.Getenv("POSTMD_INPUT_DIR"),
		OutputDir:    os.Getenv("POSTMD_OUTPUT_DIR"),
		ImageBaseURL: os.Getenv("POSTMD_IMAGE_BASE_URL"),
	}

	if timeout := os.Getenv("POSTMD_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	if workers := os.Getenv("POSTMD_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars writes a warning per unrecognized POSTMD_* variable,
// in name order.
func warnUnknownEnvVars(w io.Writer) {
	var unknown []string
	for _, env := range os.Environ() {
		if !strings.HasPrefix(env, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(env, "=")
		if !knownEnvVars[name] {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	for _, name := range unknown {
		fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
	}
}

// applyEnvConfig applies set environment values over the config file values.
// Precedence: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Theme != "" {
		cfg.Theme = env.Theme
	}
	if env.Style != "" {
		cfg.CSS.Style = env.Style
	}
	if env.InputDir != "" {
		cfg.Input.DefaultDir = env.InputDir
	}
	if env.OutputDir != "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.ImageBaseURL != "" {
		cfg.Images.BaseURL = env.ImageBaseURL
	}
}
