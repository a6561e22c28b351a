// Package postmd renders blog-post Markdown into theme-aware HTML.
//
// # Quick Start
//
//	conv, err := postmd.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := conv.Convert(ctx, postmd.Input{
//	    Markdown: "## Hello\n\nWorld",
//	    Theme:    "light",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(string(result.HTML))
//
// # Rendering
//
// The theme is passed per call. "light" selects the light theme and every
// other value, the empty string included, selects the dark theme. Themed
// output differs only in inline styles:
//
//   - h2 to h4 carry an id slug derived from their text (see Slug)
//   - links whose destination contains "http" open in a new tab
//   - images open their source in a new window when clicked
//   - blockquotes, rules, lists and strong text get the theme's inline styles
//   - fenced code is highlighted with chroma using the theme's code style
//
// Before parsing, every newline followed by a whitespace character becomes a
// standalone "&nbsp;" paragraph, so blank and indented lines survive as
// visible breaks. Code blocks undo that substitution.
//
// # Conversion Pipeline
//
//  1. Front matter splitting (Input.FrontMatter)
//  2. Markdown preprocessing (line endings, forced paragraph breaks)
//  3. Markdown to HTML via Goldmark (GFM, footnotes, themed renderer)
//  4. Image source rewriting (Input.ImageBaseURL)
//  5. Sanitizing (WithSanitizer)
//  6. Heading extraction and table of contents (Input.TOC)
//  7. Standalone page and CSS injection (Input.Document)
//
// # Configuration
//
// Converter-wide behavior uses functional options:
//
//	conv, err := postmd.NewConverter(
//	    postmd.WithTimeout(10 * time.Second),
//	    postmd.WithCodeClasses(true),
//	    postmd.WithStyle("serif"),
//	)
//
// A Converter is safe for concurrent use.
package postmd
