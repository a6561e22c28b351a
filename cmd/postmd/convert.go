package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-postmd"
	"github.com/alnah/go-postmd/internal/config"
	"github.com/alnah/go-postmd/internal/fileutil"
	"github.com/alnah/go-postmd/internal/hints"
	"github.com/alnah/go-postmd/internal/pipeline"
)

// Sentinel errors for CLI operations.
var (
	ErrUsage              = errors.New("invalid usage")
	ErrNoInput            = errors.New("no input specified")
	ErrReadMarkdown       = errors.New("failed to read markdown")
	ErrWriteHTML          = errors.New("failed to write HTML")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrInvalidTimeout     = errors.New("invalid timeout")
	ErrConversionFailed   = errors.New("conversion failed")
)

// maxWorkers bounds --workers.
const maxWorkers = 64

// Converter is the interface for the conversion service.
type Converter interface {
	Convert(ctx context.Context, input postmd.Input) (*postmd.Result, error)
}

// Compile-time interface implementation check.
var _ Converter = (*postmd.Converter)(nil)

// runConvert orchestrates the convert command.
func runConvert(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseConvertFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}

	configureMaxProcs(flags.common.verbose, env.Stderr)
	if !flags.common.quiet {
		warnUnknownEnvVars(env.Stderr)
	}

	envCfg := loadEnvConfig()
	cfg, err := loadConfig(flags.common.config, envCfg.ConfigPath)
	if err != nil {
		return err
	}
	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.Images.BaseURL != "" {
		if _, err := pipeline.ParseBaseURL(cfg.Images.BaseURL); err != nil {
			return fmt.Errorf("%w%s", err, hints.ForImageBaseURL())
		}
	}

	workers, err := resolveWorkers(flags.workers, envCfg.Workers)
	if err != nil {
		return err
	}
	timeout, err := resolveTimeout(flags.timeout, envCfg.Timeout)
	if err != nil {
		return err
	}

	conv, err := newConverter(cfg, timeout)
	if err != nil {
		return err
	}

	params := &conversionParams{input: buildInputTemplate(cfg)}

	inputPath := resolveInputPath(positional, cfg)
	if inputPath == "" {
		if env.StdinIsTTY() {
			return fmt.Errorf("%w%s", ErrNoInput, hints.ForStdin())
		}
		return convertStdin(ctx, conv, params, flags.output, env)
	}

	files, err := discoverFiles(inputPath, resolveOutputDir(flags.output, cfg))
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: no markdown files found in %s", ErrNoInput, inputPath)
	}

	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Converting %d file(s) with %d worker(s)\n", len(files), workers)
	}

	results := convertBatch(ctx, conv, files, params, workers, env.Now)
	failed := printResults(results, flags.common.quiet, flags.common.verbose, env)
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d file(s)", ErrConversionFailed, failed, len(results))
	}
	return nil
}

// loadConfig loads the config named by the flag, then by POSTMD_CONFIG.
// Without either, the defaults are returned.
func loadConfig(flagName, envName string) (*config.Config, error) {
	name := flagName
	if name == "" {
		name = envName
	}
	if name == "" {
		return config.DefaultConfig(), nil
	}

	cfg, err := config.LoadConfig(name)
	if errors.Is(err, config.ErrConfigNotFound) && !fileutil.IsFilePath(name) {
		return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
	}
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *convertFlags, cfg *config.Config) {
	if flags.theme != "" {
		cfg.Theme = flags.theme
	}
	if flags.imageBaseURL != "" {
		cfg.Images.BaseURL = flags.imageBaseURL
	}
	if flags.frontMatter {
		cfg.FrontMatter = true
	}

	// Document flags
	if flags.document.enabled {
		cfg.Document.Enabled = true
	}
	if flags.document.title != "" {
		cfg.Document.Title = flags.document.title
	}
	if flags.document.lang != "" {
		cfg.Document.Lang = flags.document.lang
	}

	// TOC flags
	if flags.toc.enabled {
		cfg.TOC.Enabled = true
	}
	if flags.toc.title != "" {
		cfg.TOC.Title = flags.toc.title
	}
	if flags.toc.minDepth != 0 {
		cfg.TOC.MinDepth = flags.toc.minDepth
	}
	if flags.toc.maxDepth != 0 {
		cfg.TOC.MaxDepth = flags.toc.maxDepth
	}

	// Asset flags
	if flags.assets.style != "" {
		cfg.CSS.Style = flags.assets.style
	}
	if flags.assets.assetPath != "" {
		cfg.Assets.BasePath = flags.assets.assetPath
	}

	// HTML flags
	if flags.html.unsafe {
		cfg.HTML.Unsafe = true
	}
	if flags.html.sanitize {
		cfg.HTML.Sanitize = true
	}
	if flags.html.xhtml {
		cfg.HTML.XHTML = true
	}
	if flags.html.codeClasses {
		cfg.HTML.CodeClasses = true
	}
}

// resolveWorkers returns the worker count.
// Priority: flag > POSTMD_WORKERS > GOMAXPROCS (adjusted by automaxprocs).
func resolveWorkers(flagWorkers, envWorkers int) (int, error) {
	if flagWorkers < 0 {
		return 0, fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, flagWorkers)
	}
	if flagWorkers > maxWorkers {
		return 0, fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, flagWorkers, maxWorkers)
	}
	if flagWorkers > 0 {
		return flagWorkers, nil
	}
	if envWorkers > 0 {
		return min(envWorkers, maxWorkers), nil
	}
	return max(1, min(runtime.GOMAXPROCS(0), maxWorkers)), nil
}

// resolveTimeout returns the per-file timeout. Zero keeps the library default.
// Priority: flag > POSTMD_TIMEOUT.
func resolveTimeout(flagTimeout string, envTimeout time.Duration) (time.Duration, error) {
	if flagTimeout == "" {
		return envTimeout, nil
	}
	d, err := time.ParseDuration(flagTimeout)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidTimeout, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: %s (must be positive)", ErrInvalidTimeout, flagTimeout)
	}
	return d, nil
}

// newConverter builds a library Converter from the merged config.
func newConverter(cfg *config.Config, timeout time.Duration) (*postmd.Converter, error) {
	opts := []postmd.Option{
		postmd.WithUnsafeHTML(cfg.HTML.Unsafe),
		postmd.WithSanitizer(cfg.HTML.Sanitize),
		postmd.WithXHTML(cfg.HTML.XHTML),
		postmd.WithCodeClasses(cfg.HTML.CodeClasses),
	}
	if timeout > 0 {
		opts = append(opts, postmd.WithTimeout(timeout))
	}
	if cfg.Assets.BasePath != "" {
		opts = append(opts, postmd.WithAssetPath(cfg.Assets.BasePath))
	}
	if cfg.CSS.Style != "" {
		opts = append(opts, postmd.WithStyle(cfg.CSS.Style))
	}

	conv, err := postmd.NewConverter(opts...)
	if errors.Is(err, postmd.ErrStyleNotFound) {
		return nil, fmt.Errorf("%w%s", err, hints.ForStyleNotFound(postmd.Styles()))
	}
	return conv, err
}

// buildInputTemplate creates the per-file Input shared by every file.
// Markdown is filled in per file.
func buildInputTemplate(cfg *config.Config) postmd.Input {
	input := postmd.Input{
		Theme:        cfg.Theme,
		FrontMatter:  cfg.FrontMatter,
		ImageBaseURL: cfg.Images.BaseURL,
	}
	if cfg.TOC.Enabled {
		input.TOC = &postmd.TOC{
			Title:    cfg.TOC.Title,
			MinDepth: cfg.TOC.MinDepth,
			MaxDepth: cfg.TOC.MaxDepth,
		}
	}
	if cfg.Document.Enabled {
		input.Document = &postmd.Document{
			Title: cfg.Document.Title,
			Lang:  cfg.Document.Lang,
		}
	}
	return input
}

// resolveInputPath determines the input path from args or config.
// An empty result means stdin.
func resolveInputPath(args []string, cfg *config.Config) string {
	if len(args) > 0 {
		return args[0]
	}
	return cfg.Input.DefaultDir
}

// resolveOutputDir determines the output location from flag or config.
func resolveOutputDir(flagOutput string, cfg *config.Config) string {
	if flagOutput != "" {
		return flagOutput
	}
	return cfg.Output.DefaultDir
}

// convertStdin renders markdown read from stdin. The HTML goes to output
// when set, to stdout otherwise.
func convertStdin(ctx context.Context, conv Converter, params *conversionParams, output string, env *Environment) error {
	content, err := io.ReadAll(env.Stdin)
	if err != nil {
		return fmt.Errorf("%w: stdin: %v", ErrReadMarkdown, err)
	}

	input := params.input
	input.Markdown = string(content)
	result, err := conv.Convert(ctx, input)
	if err != nil {
		return withHint(err)
	}

	if output == "" {
		if _, err := env.Stdout.Write(result.HTML); err != nil {
			return fmt.Errorf("%w: stdout: %v", ErrWriteHTML, err)
		}
		return nil
	}
	if err := fileutil.WriteFileAtomic(output, result.HTML); err != nil {
		return fmt.Errorf("%w: %v%s", ErrWriteHTML, err, hints.ForOutputDirectory())
	}
	return nil
}

// withHint appends the matching hint to a conversion error.
func withHint(err error) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w%s", err, hints.ForTimeout())
	case errors.Is(err, postmd.ErrFrontMatter):
		return fmt.Errorf("%w%s", err, hints.ForFrontMatter())
	default:
		return err
	}
}
