// Package softbreak forces paragraph breaks where Markdown would otherwise
// join adjacent lines into one paragraph.
//
// CommonMark folds a single newline inside a paragraph into a space. Blog
// posts in this project rely on a line that starts with whitespace opening a
// new paragraph, so Force rewrites every newline followed by one whitespace
// character into a standalone "&nbsp;" paragraph. The marker renders as an
// empty-looking paragraph. Restore undoes the rewrite for code content, where
// the marker must never be displayed.
package softbreak

import (
	"regexp"
	"strings"
)

// Marker is the paragraph-wrapped sentinel inserted by Force.
const Marker = "\n\n&nbsp;\n\n"

// softBreakPattern matches a newline followed by one whitespace character.
// The class covers ASCII whitespace, vertical tab, Unicode space separators
// (no-break and ideographic spaces included), the byte order mark and the
// line and paragraph separators.
var softBreakPattern = regexp.MustCompile(`\n[\s\v\p{Zs}\x{FEFF}\x{2028}\x{2029}]`)

// Force replaces each newline followed by a whitespace character with Marker.
// The whitespace character is consumed. Code regions are copied verbatim:
// fenced blocks, and indented blocks that start after a blank line (which
// also covers fences nested in list items). The newline right before a fence
// is kept, so the fence still starts a line. The blank lines before an
// indented block are kept too, so a block nested in a list item stays in it.
// Force is not idempotent: Marker itself contains matches.
func Force(content string) string {
	if content == "" {
		return content
	}

	var b strings.Builder
	b.Grow(len(content))
	for _, seg := range splitCode(content) {
		if seg.code {
			b.WriteString(seg.text)
			continue
		}
		b.WriteString(softBreakPattern.ReplaceAllLiteralString(seg.text, Marker))
	}
	return b.String()
}

// Restore turns every Marker back into a single newline.
func Restore(s string) string {
	return strings.ReplaceAll(s, Marker, "\n")
}

type segment struct {
	text string
	code bool
}

type fence struct {
	char byte
	size int
}

// splitCode cuts content into alternating prose and code segments.
// A fenced segment spans the opening fence line through the end of the
// closing fence line; an unclosed fence runs to the end of content. An
// indented segment starts at the blank lines leading into it, spans
// consecutive indented or blank lines and ends with its last indented line.
// Code segments never include their trailing newline.
func splitCode(content string) []segment {
	var (
		segs       []segment
		open       *fence
		indented   bool
		codeStart  int
		codeEnd    int
		proseStart int
		blankStart int
		prevBlank  = true
	)
	addProse := func(end int) {
		if end > proseStart {
			segs = append(segs, segment{text: content[proseStart:end]})
		}
	}
	closeIndented := func() {
		segs = append(segs, segment{text: content[codeStart:codeEnd], code: true})
		indented = false
		proseStart = codeEnd
	}

	for lineStart := 0; lineStart < len(content); {
		lineEnd := strings.IndexByte(content[lineStart:], '\n')
		if lineEnd < 0 {
			lineEnd = len(content)
		} else {
			lineEnd += lineStart
		}
		line := content[lineStart:lineEnd]
		blank := isBlank(line)

		switch {
		case open != nil:
			if closesFence(line, *open) {
				segs = append(segs, segment{text: content[codeStart:lineEnd], code: true})
				open = nil
				proseStart = lineEnd
			}
		case indented && blank:
			// Blank lines may sit inside an indented block.
		case indented && isIndentedCode(line):
			codeEnd = lineEnd
		default:
			if indented {
				closeIndented()
			}
			if f, ok := openingFence(line); ok {
				addProse(lineStart)
				open = &f
				codeStart = lineStart
			} else if prevBlank && isIndentedCode(line) {
				codeStart = max(blankStart, proseStart)
				addProse(codeStart)
				indented = true
				codeEnd = lineEnd
			}
		}

		if blank && !prevBlank {
			blankStart = lineStart
		}
		prevBlank = blank
		lineStart = lineEnd + 1
	}

	if open != nil {
		return append(segs, segment{text: content[codeStart:], code: true})
	}
	if indented {
		closeIndented()
	}
	addProse(len(content))
	return segs
}

// isBlank reports whether line holds only spaces and tabs.
func isBlank(line string) bool {
	return strings.TrimRight(line, " \t\r") == ""
}

// isIndentedCode reports whether line has content indented by at least four
// columns, with tabs advancing to the next multiple of four.
func isIndentedCode(line string) bool {
	if isBlank(line) {
		return false
	}
	col := 0
	for i := 0; i < len(line) && col < 4; i++ {
		switch line[i] {
		case ' ':
			col++
		case '\t':
			col += 4 - col%4
		default:
			return false
		}
	}
	return col >= 4
}

// openingFence reports whether line opens a fenced code block.
func openingFence(line string) (fence, bool) {
	rest, ok := trimFenceIndent(line)
	if !ok || len(rest) < 3 {
		return fence{}, false
	}
	ch := rest[0]
	if ch != '`' && ch != '~' {
		return fence{}, false
	}
	n := runLength(rest, ch)
	if n < 3 {
		return fence{}, false
	}
	// Backtick fences cannot carry backticks in their info string.
	if ch == '`' && strings.IndexByte(rest[n:], '`') >= 0 {
		return fence{}, false
	}
	return fence{char: ch, size: n}, true
}

// closesFence reports whether line closes the fence f.
func closesFence(line string, f fence) bool {
	rest, ok := trimFenceIndent(line)
	if !ok {
		return false
	}
	n := runLength(rest, f.char)
	if n < f.size {
		return false
	}
	return strings.TrimRight(rest[n:], " \t\r") == ""
}

// trimFenceIndent strips up to three leading spaces.
// Four or more spaces make the line indented code, not a fence.
func trimFenceIndent(line string) (string, bool) {
	i := 0
	for i < len(line) && line[i] == ' ' {
		i++
	}
	if i > 3 {
		return "", false
	}
	return line[i:], true
}

func runLength(s string, ch byte) int {
	n := 0
	for n < len(s) && s[n] == ch {
		n++
	}
	return n
}
