package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestSanitizeCSS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "empty string", input: "", expected: ""},
		{name: "no escape needed", input: "body { color: red; }", expected: "body { color: red; }"},
		{name: "escapes style close", input: "</style>", expected: `<\/style>`},
		{name: "case variation", input: "</STYLE>", expected: `<\/STYLE>`},
		{name: "multiple occurrences", input: "</a></b>", expected: `<\/a><\/b>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := sanitizeCSS(tt.input); got != tt.expected {
				t.Errorf("sanitizeCSS(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestCSSInjection_InjectCSS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		html     string
		css      string
		expected string
	}{
		{
			name:     "empty CSS returns HTML unchanged",
			html:     "<html><head></head><body>x</body></html>",
			css:      "",
			expected: "<html><head></head><body>x</body></html>",
		},
		{
			name:     "before closing head",
			html:     "<html><head><title>t</title></head><body>x</body></html>",
			css:      "p{margin:0}",
			expected: "<html><head><title>t</title><style>p{margin:0}</style></head><body>x</body></html>",
		},
		{
			name:     "after body when no head",
			html:     `<body class="post">x</body>`,
			css:      "p{margin:0}",
			expected: `<body class="post"><style>p{margin:0}</style>x</body>`,
		},
		{
			name:     "prepended to a fragment",
			html:     "<p>x</p>",
			css:      "p{margin:0}",
			expected: "<style>p{margin:0}</style><p>x</p>",
		},
		{
			name:     "style close escaped",
			html:     "<p>x</p>",
			css:      "</style><script>",
			expected: `<style><\/style><script></style><p>x</p>`,
		},
	}

	injector := &CSSInjection{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := injector.InjectCSS(context.Background(), tt.html, tt.css)
			if got != tt.expected {
				t.Errorf("InjectCSS() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestCSSInjection_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	html := "<p>x</p>"
	if got := (&CSSInjection{}).InjectCSS(ctx, html, "p{}"); got != html {
		t.Errorf("InjectCSS() = %q, want unchanged", got)
	}
}

func TestWrapDocument(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		data         DocumentData
		wantContains []string
	}{
		{
			name: "defaults",
			data: DocumentData{},
			wantContains: []string{
				"<!DOCTYPE html>",
				`<html lang="en" data-theme="">`,
				"<title>Document</title>",
				"<article class=\"post\">\n<p>body</p>\n</article>",
			},
		},
		{
			name: "title and lang escaped",
			data: DocumentData{Title: "A & <B>", Lang: "ko", Theme: "light"},
			wantContains: []string{
				`<html lang="ko" data-theme="light">`,
				"<title>A &amp; &lt;B&gt;</title>",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := WrapDocument("<p>body</p>\n", tt.data)
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("output missing %q\ngot: %s", want, got)
				}
			}
		})
	}
}

func TestTOCInjection_InjectTOC(t *testing.T) {
	t.Parallel()

	fragment := `<h1>Post</h1>
<h2 id="intro">Intro</h2>
<h3 id="setup">Setup &amp; run</h3>
<h2 id="usage">Usage</h2>
<h4 id="deep">Deep</h4>
`

	tests := []struct {
		name         string
		html         string
		data         *TOCData
		wantContains []string
		wantExcludes []string
		wantSame     bool
	}{
		{
			name:     "nil data returns unchanged",
			html:     fragment,
			data:     nil,
			wantSame: true,
		},
		{
			name: "numbered entries",
			html: fragment,
			data: &TOCData{Title: "Contents", MinDepth: 2, MaxDepth: 4},
			wantContains: []string{
				`<p class="toc-title">Contents</p>`,
				`<a href="#intro">1. Intro</a>`,
				`<a href="#setup">1.1. Setup &amp; run</a>`,
				`<a href="#usage">2. Usage</a>`,
				`<a href="#deep">2.1. Deep</a>`,
			},
		},
		{
			name:         "depth filter",
			html:         fragment,
			data:         &TOCData{MinDepth: 2, MaxDepth: 2},
			wantContains: []string{`1. Intro`, `2. Usage`},
			wantExcludes: []string{"#setup", "#deep", "toc-title"},
		},
		{
			name:     "no qualifying headings",
			html:     "<h1>Only</h1><p>x</p>",
			data:     &TOCData{MinDepth: 2, MaxDepth: 4},
			wantSame: true,
		},
		{
			name:         "inserted after body",
			html:         "<html><body><h2 id=\"a\">A</h2></body></html>",
			data:         &TOCData{MinDepth: 2, MaxDepth: 4},
			wantContains: []string{`<body><nav class="toc">`},
		},
	}

	injector := NewTOCInjection()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := injector.InjectTOC(context.Background(), tt.html, tt.data)
			if err != nil {
				t.Fatalf("InjectTOC() error = %v", err)
			}
			if tt.wantSame {
				if got != tt.html {
					t.Errorf("InjectTOC() changed content:\n%s", got)
				}
				return
			}
			if !strings.Contains(tt.html, "<body") && !strings.HasSuffix(got, tt.html) {
				t.Errorf("original content not preserved:\n%s", got)
			}
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("output missing %q\ngot: %s", want, got)
				}
			}
			toc, _, _ := strings.Cut(got, "</nav>")
			for _, exclude := range tt.wantExcludes {
				if strings.Contains(toc, exclude) {
					t.Errorf("TOC should not contain %q\ngot: %s", exclude, toc)
				}
			}
		})
	}
}

func TestTOCInjection_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewTOCInjection().InjectTOC(ctx, "<h2 id=\"a\">A</h2>", &TOCData{MinDepth: 2, MaxDepth: 4})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("InjectTOC() error = %v, want context.Canceled", err)
	}
}

func TestNumberingState_Next(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		levels     []int
		wantNums   []string
		wantDepths []int
	}{
		{
			name:       "flat",
			levels:     []int{2, 2, 2},
			wantNums:   []string{"1.", "2.", "3."},
			wantDepths: []int{1, 1, 1},
		},
		{
			name:       "nested with reset",
			levels:     []int{2, 3, 3, 2, 3},
			wantNums:   []string{"1.", "1.1.", "1.2.", "2.", "2.1."},
			wantDepths: []int{1, 2, 2, 1, 2},
		},
		{
			name:       "skipped level nests as child",
			levels:     []int{2, 4},
			wantNums:   []string{"1.", "1.1."},
			wantDepths: []int{1, 2},
		},
		{
			name:       "shallower than first clamps to depth 1",
			levels:     []int{3, 2},
			wantNums:   []string{"1.", "2."},
			wantDepths: []int{1, 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var n numberingState
			for i, level := range tt.levels {
				num, depth := n.next(level)
				if num != tt.wantNums[i] || depth != tt.wantDepths[i] {
					t.Errorf("next(%d) #%d = (%q, %d), want (%q, %d)",
						level, i, num, depth, tt.wantNums[i], tt.wantDepths[i])
				}
			}
		})
	}
}
