// Package render provides the themed goldmark node renderer.
//
// The renderer overrides goldmark's HTML output for a fixed set of node
// types and applies the inline styles of a theme.Theme:
//
//   - headings h2 to h4 carry an id derived from their text
//   - links whose destination contains "http" open in a new tab
//   - images open their source in a new window on click or key press
//   - ordered and unordered lists, blockquotes, rules and strong text get
//     inline styles
//   - code blocks undo the soft-break marker before highlighting
//
// Every other node type keeps goldmark's default rendering.
package render
