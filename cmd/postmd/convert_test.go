package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/alnah/go-postmd"
	"github.com/alnah/go-postmd/internal/config"
)

func TestMergeFlags(t *testing.T) {
	t.Parallel()

	t.Run("flags override config", func(t *testing.T) {
		t.Parallel()

		cfg := &config.Config{Theme: "dark"}
		cfg.TOC.MinDepth = 2
		cfg.CSS.Style = "serif"

		mergeFlags(&convertFlags{
			theme:        "light",
			imageBaseURL: "https://cdn.example.com/",
			frontMatter:  true,
			document:     documentFlags{enabled: true, title: "T", lang: "fr"},
			toc:          tocFlags{enabled: true, title: "Index", minDepth: 3, maxDepth: 4},
			assets:       assetFlags{style: "custom.css", assetPath: "assets"},
			html:         htmlFlags{unsafe: true, sanitize: true, xhtml: true, codeClasses: true},
		}, cfg)

		if cfg.Theme != "light" || cfg.Images.BaseURL != "https://cdn.example.com/" || !cfg.FrontMatter {
			t.Errorf("rendering = %q, %q, %v", cfg.Theme, cfg.Images.BaseURL, cfg.FrontMatter)
		}
		if cfg.Document != (config.DocumentConfig{Enabled: true, Title: "T", Lang: "fr"}) {
			t.Errorf("Document = %+v", cfg.Document)
		}
		if cfg.TOC != (config.TOCConfig{Enabled: true, Title: "Index", MinDepth: 3, MaxDepth: 4}) {
			t.Errorf("TOC = %+v", cfg.TOC)
		}
		if cfg.CSS.Style != "custom.css" || cfg.Assets.BasePath != "assets" {
			t.Errorf("assets = %q, %q", cfg.CSS.Style, cfg.Assets.BasePath)
		}
		if cfg.HTML != (config.HTMLConfig{Unsafe: true, Sanitize: true, XHTML: true, CodeClasses: true}) {
			t.Errorf("HTML = %+v", cfg.HTML)
		}
	})

	t.Run("unset flags keep config", func(t *testing.T) {
		t.Parallel()

		cfg := &config.Config{Theme: "light", FrontMatter: true}
		cfg.TOC = config.TOCConfig{Enabled: true, Title: "Index", MaxDepth: 3}
		cfg.HTML.Sanitize = true

		mergeFlags(&convertFlags{}, cfg)

		if cfg.Theme != "light" || !cfg.FrontMatter || !cfg.HTML.Sanitize {
			t.Errorf("config changed: %+v", cfg)
		}
		if cfg.TOC != (config.TOCConfig{Enabled: true, Title: "Index", MaxDepth: 3}) {
			t.Errorf("TOC = %+v", cfg.TOC)
		}
	})
}

func TestResolveWorkers(t *testing.T) {
	t.Parallel()

	auto := max(1, min(runtime.GOMAXPROCS(0), maxWorkers))

	tests := []struct {
		name    string
		flag    int
		env     int
		want    int
		wantErr bool
	}{
		{"flag wins", 3, 5, 3, false},
		{"env used", 0, 5, 5, false},
		{"env capped", 0, 500, maxWorkers, false},
		{"auto", 0, 0, auto, false},
		{"negative", -1, 0, 0, true},
		{"too many", maxWorkers + 1, 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := resolveWorkers(tt.flag, tt.env)
			if (err != nil) != tt.wantErr {
				t.Fatalf("resolveWorkers() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidWorkerCount) {
				t.Errorf("error = %v, want ErrInvalidWorkerCount", err)
			}
			if got != tt.want {
				t.Errorf("resolveWorkers() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestResolveTimeout(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		flag    string
		env     time.Duration
		want    time.Duration
		wantErr bool
	}{
		{"flag wins", "5s", time.Minute, 5 * time.Second, false},
		{"env used", "", time.Minute, time.Minute, false},
		{"default", "", 0, 0, false},
		{"unparsable", "soon", 0, 0, true},
		{"zero", "0s", 0, 0, true},
		{"negative", "-1s", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := resolveTimeout(tt.flag, tt.env)
			if (err != nil) != tt.wantErr {
				t.Fatalf("resolveTimeout() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidTimeout) {
				t.Errorf("error = %v, want ErrInvalidTimeout", err)
			}
			if got != tt.want {
				t.Errorf("resolveTimeout() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBuildInputTemplate(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{Theme: "light", FrontMatter: true}
	cfg.Images.BaseURL = "https://cdn.example.com/"

	input := buildInputTemplate(cfg)
	if input.Theme != "light" || !input.FrontMatter || input.ImageBaseURL != "https://cdn.example.com/" {
		t.Errorf("input = %+v", input)
	}
	if input.TOC != nil || input.Document != nil {
		t.Error("TOC and Document should be nil when disabled")
	}

	cfg.TOC = config.TOCConfig{Enabled: true, Title: "Index", MinDepth: 2, MaxDepth: 3}
	cfg.Document = config.DocumentConfig{Enabled: true, Title: "Blog", Lang: "ko"}

	input = buildInputTemplate(cfg)
	if input.TOC == nil || *input.TOC != (postmd.TOC{Title: "Index", MinDepth: 2, MaxDepth: 3}) {
		t.Errorf("TOC = %+v", input.TOC)
	}
	if input.Document == nil || *input.Document != (postmd.Document{Title: "Blog", Lang: "ko"}) {
		t.Errorf("Document = %+v", input.Document)
	}
}

func TestNewConverter_StyleHint(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.CSS.Style = "nosuchstyle"

	_, err := newConverter(cfg, 0)
	if !errors.Is(err, postmd.ErrStyleNotFound) {
		t.Fatalf("error = %v, want ErrStyleNotFound", err)
	}
	if !strings.Contains(err.Error(), "available: dark, light, serif") {
		t.Errorf("error should list styles: %v", err)
	}
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("defaults without name", func(t *testing.T) {
		t.Parallel()

		cfg, err := loadConfig("", "")
		if err != nil || cfg == nil {
			t.Fatalf("loadConfig() = %v, %v", cfg, err)
		}
	})

	t.Run("flag wins over env", func(t *testing.T) {
		t.Parallel()

		dir := setupTestDir(t, map[string]string{
			"flag.yaml": "theme: light\n",
			"env.yaml":  "theme: dark\n",
		})

		cfg, err := loadConfig(filepath.Join(dir, "flag.yaml"), filepath.Join(dir, "env.yaml"))
		if err != nil {
			t.Fatalf("loadConfig() error = %v", err)
		}
		if cfg.Theme != "light" {
			t.Errorf("Theme = %q, want light", cfg.Theme)
		}
	})

	t.Run("missing name gets hint", func(t *testing.T) {
		t.Parallel()

		_, err := loadConfig("no-such-postmd-config", "")
		if !errors.Is(err, config.ErrConfigNotFound) {
			t.Fatalf("error = %v, want ErrConfigNotFound", err)
		}
		if !strings.Contains(err.Error(), "hint: use --config") {
			t.Errorf("error should carry a hint: %v", err)
		}
	})
}

func TestConvertStdin(t *testing.T) {
	t.Parallel()

	t.Run("stdout", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv("hello", false)
		mock := &mockConverter{}
		params := &conversionParams{input: postmd.Input{Theme: "light"}}

		if err := convertStdin(context.Background(), mock, params, "", env.Environment); err != nil {
			t.Fatalf("convertStdin() error = %v", err)
		}
		if env.stdout.String() != "<p>hello</p>" {
			t.Errorf("stdout = %q", env.stdout.String())
		}
		if mock.inputs[0].Theme != "light" {
			t.Errorf("template not applied: %+v", mock.inputs[0])
		}
	})

	t.Run("output file", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv("hello", false)
		out := filepath.Join(t.TempDir(), "nested", "post.html")

		if err := convertStdin(context.Background(), &mockConverter{}, &conversionParams{}, out, env.Environment); err != nil {
			t.Fatalf("convertStdin() error = %v", err)
		}
		if got := readFile(t, out); got != "<p>hello</p>" {
			t.Errorf("file = %q", got)
		}
		if env.stdout.Len() != 0 {
			t.Errorf("stdout should be empty, got %q", env.stdout.String())
		}
	})

	t.Run("front matter error hint", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv("---\n", false)
		mock := &mockConverter{err: postmd.ErrFrontMatter}

		err := convertStdin(context.Background(), mock, &conversionParams{}, "", env.Environment)
		if !errors.Is(err, postmd.ErrFrontMatter) || !strings.Contains(err.Error(), "hint:") {
			t.Errorf("error = %v, want ErrFrontMatter with hint", err)
		}
	})
}

func TestRunConvert_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		args    []string
		tty     bool
		wantErr error
	}{
		{"unknown flag", []string{"--nope"}, true, ErrUsage},
		{"no input on terminal", nil, true, ErrNoInput},
		{"bad theme", []string{"--theme", "sepia", "x.md"}, true, config.ErrInvalidValue},
		{"bad toc depth", []string{"--toc", "--toc-min-depth", "1", "x.md"}, true, config.ErrInvalidValue},
		{"bad image base", []string{"--image-base-url", "/static", "x.md"}, true, postmd.ErrInvalidImageBaseURL},
		{"bad workers", []string{"-w", "-2", "x.md"}, true, ErrInvalidWorkerCount},
		{"bad timeout", []string{"-t", "later", "x.md"}, true, ErrInvalidTimeout},
		{"missing input", []string{filepath.Join(os.TempDir(), "postmd-none", "x.md")}, true, os.ErrNotExist},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := newTestEnv("", tt.tty)
			err := runConvert(context.Background(), append(tt.args, "-q"), env.Environment)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("runConvert() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
