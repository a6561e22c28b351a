package pipeline

import (
	"context"
	"regexp"

	"github.com/alnah/go-postmd/internal/softbreak"
)

// crlfOrCR matches Windows and classic Mac line endings.
var crlfOrCR = regexp.MustCompile(`\r\n?`)

// MarkdownPreprocessor defines the contract for markdown preprocessing.
type MarkdownPreprocessor interface {
	PreprocessMarkdown(ctx context.Context, content string) string
}

// BlogPreprocessor prepares blog Markdown for conversion.
type BlogPreprocessor struct{}

// PreprocessMarkdown normalizes line endings, then forces a paragraph break
// wherever a newline is followed by a whitespace character.
// Fenced code is left as written. See softbreak.Force.
func (p *BlogPreprocessor) PreprocessMarkdown(ctx context.Context, content string) string {
	if ctx.Err() != nil {
		return content
	}

	content = normalizeLineEndings(content)
	return softbreak.Force(content)
}

// normalizeLineEndings converts \r\n and \r to \n.
func normalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}
