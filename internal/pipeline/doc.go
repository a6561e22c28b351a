// Package pipeline implements the blog Markdown-to-HTML conversion stages.
//
// The stages run in this order:
//   - front matter splitting (optional)
//   - Markdown preprocessing (line endings, forced paragraph breaks)
//   - Markdown to HTML conversion via Goldmark and the themed renderer
//   - image source rewriting against a base URL (optional)
//   - HTML sanitizing (optional)
//   - heading extraction and table of contents injection
//   - document wrapping and CSS injection (optional)
//
// Every stage works on strings and is safe for concurrent use.
package pipeline
