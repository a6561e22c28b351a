// Package config loads and validates the postmd YAML configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-postmd/internal/fileutil"
	"github.com/alnah/go-postmd/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxPathLength     = 4096
	MaxURLLength      = 2048
	MaxStyleLength    = 64 * 1024 // inline CSS is allowed
	MaxTitleLength    = 200
	MaxLangLength     = 35 // BCP 47 upper bound in practice
	MaxTOCTitleLength = 100
)

// configDirName is the directory searched under the user config dir.
const configDirName = "go-postmd"

// Config holds all configuration for post rendering.
type Config struct {
	Theme       string         `yaml:"theme"` // "light" or "dark" (empty = dark)
	Input       InputConfig    `yaml:"input"`
	Output      OutputConfig   `yaml:"output"`
	Document    DocumentConfig `yaml:"document"`
	TOC         TOCConfig      `yaml:"toc"`
	CSS         CSSConfig      `yaml:"css"`
	Assets      AssetsConfig   `yaml:"assets"`
	Images      ImagesConfig   `yaml:"images"`
	HTML        HTMLConfig     `yaml:"html"`
	FrontMatter bool           `yaml:"frontMatter"`
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // empty = must specify
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // empty = next to the source
}

// DocumentConfig controls standalone page output.
type DocumentConfig struct {
	Enabled bool   `yaml:"enabled"`
	Title   string `yaml:"title"` // empty = front matter title, then "Document"
	Lang    string `yaml:"lang"`  // empty = "en"
}

// TOCConfig defines table of contents options.
type TOCConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Title    string `yaml:"title"`
	MinDepth int    `yaml:"minDepth"` // 2-4, default 2
	MaxDepth int    `yaml:"maxDepth"` // 2-4, default 4
}

// CSSConfig defines the extra stylesheet.
type CSSConfig struct {
	Style string `yaml:"style"` // style name, file path, or CSS content
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // empty = embedded styles only
}

// ImagesConfig defines image source rewriting.
type ImagesConfig struct {
	BaseURL string `yaml:"baseURL"`
}

// HTMLConfig defines HTML rendering switches.
type HTMLConfig struct {
	Unsafe      bool `yaml:"unsafe"`
	Sanitize    bool `yaml:"sanitize"`
	XHTML       bool `yaml:"xhtml"`
	CodeClasses bool `yaml:"codeClasses"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{}
}

// Validate checks field values and lengths. LoadConfig calls it; library
// users building a Config by hand can call it directly.
func (c *Config) Validate() error {
	switch c.Theme {
	case "", "light", "dark":
	default:
		return fmt.Errorf("%w: theme %q (must be light or dark)", ErrInvalidValue, c.Theme)
	}

	lengths := []struct {
		field string
		value string
		max   int
	}{
		{"input.defaultDir", c.Input.DefaultDir, MaxPathLength},
		{"output.defaultDir", c.Output.DefaultDir, MaxPathLength},
		{"document.title", c.Document.Title, MaxTitleLength},
		{"document.lang", c.Document.Lang, MaxLangLength},
		{"toc.title", c.TOC.Title, MaxTOCTitleLength},
		{"css.style", c.CSS.Style, MaxStyleLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
		{"images.baseURL", c.Images.BaseURL, MaxURLLength},
	}
	for _, l := range lengths {
		if err := validateFieldLength(l.field, l.value, l.max); err != nil {
			return err
		}
	}

	if c.TOC.Enabled {
		if err := validateDepth("toc.minDepth", c.TOC.MinDepth); err != nil {
			return err
		}
		if err := validateDepth("toc.maxDepth", c.TOC.MaxDepth); err != nil {
			return err
		}
		if c.TOC.MinDepth != 0 && c.TOC.MaxDepth != 0 && c.TOC.MinDepth > c.TOC.MaxDepth {
			return fmt.Errorf("%w: toc.minDepth (%d) greater than toc.maxDepth (%d)",
				ErrInvalidValue, c.TOC.MinDepth, c.TOC.MaxDepth)
		}
	}

	return nil
}

// validateDepth accepts 0 (default) or an anchored heading level.
func validateDepth(field string, depth int) error {
	if depth != 0 && (depth < 2 || depth > 4) {
		return fmt.Errorf("%w: %s must be between 2 and 4, got %d", ErrInvalidValue, field, depth)
	}
	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// LoadConfig loads configuration from a file path or a config name.
// Names are searched as {name}.yaml and {name}.yml in the current directory,
// then in the user config directory under go-postmd.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		if configPath, err = resolveConfigPath(nameOrPath); err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SearchPaths returns the candidate files for a config name, in search order.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)
	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if dir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(dir, configDirName, name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing file among SearchPaths.
func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}
