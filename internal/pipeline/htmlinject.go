package pipeline

import (
	"context"
	"fmt"
	"html"
	"strconv"
	"strings"
)

// CSSInjector defines the contract for CSS injection into HTML.
type CSSInjector interface {
	InjectCSS(ctx context.Context, htmlContent, cssContent string) string
}

// CSSInjection injects CSS as a <style> block into HTML content.
type CSSInjection struct{}

// InjectCSS inserts a <style> block before </head>, after <body>, or at the
// start of htmlContent, whichever is found first.
func (s *CSSInjection) InjectCSS(ctx context.Context, htmlContent, cssContent string) string {
	if cssContent == "" || ctx.Err() != nil {
		return htmlContent
	}

	styleBlock := "<style>" + sanitizeCSS(cssContent) + "</style>"
	if idx := strings.Index(strings.ToLower(htmlContent), "</head>"); idx != -1 {
		return htmlContent[:idx] + styleBlock + htmlContent[idx:]
	}
	return insertAfterBody(htmlContent, styleBlock)
}

// sanitizeCSS escapes "</" so the stylesheet cannot close its <style> block.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}

// insertAfterBody inserts snippet right after the opening <body> tag, or
// prepends it when there is none.
func insertAfterBody(htmlContent, snippet string) string {
	if idx := strings.Index(strings.ToLower(htmlContent), "<body"); idx != -1 {
		if closeIdx := strings.Index(htmlContent[idx:], ">"); closeIdx != -1 {
			pos := idx + closeIdx + 1
			return htmlContent[:pos] + snippet + htmlContent[pos:]
		}
	}
	return snippet + htmlContent
}

// DocumentData describes the standalone page wrapped around a fragment.
type DocumentData struct {
	Title string
	Lang  string
	Theme string // value of the data-theme attribute on <html>
}

// documentTemplate wraps a fragment in an HTML5 page.
const documentTemplate = `<!DOCTYPE html>
<html lang="%s" data-theme="%s">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>%s</title>
</head>
<body>
<article class="post">
%s</article>
</body>
</html>
`

// WrapDocument wraps an HTML fragment in a standalone page.
// Empty Title and Lang default to "Document" and "en".
func WrapDocument(fragment string, data DocumentData) string {
	title, lang := data.Title, data.Lang
	if title == "" {
		title = "Document"
	}
	if lang == "" {
		lang = "en"
	}
	return fmt.Sprintf(documentTemplate,
		html.EscapeString(lang),
		html.EscapeString(data.Theme),
		html.EscapeString(title),
		fragment,
	)
}

// TOCData holds TOC configuration for injection.
type TOCData struct {
	Title    string
	MinDepth int // Minimum heading level
	MaxDepth int // Maximum heading level
}

// TOCInjector defines the contract for TOC injection into HTML.
type TOCInjector interface {
	InjectTOC(ctx context.Context, htmlContent string, data *TOCData) (string, error)
}

// TOCInjection implements TOCInjector.
type TOCInjection struct{}

var _ TOCInjector = (*TOCInjection)(nil)

// NewTOCInjection creates a new TOC injector.
func NewTOCInjection() *TOCInjection {
	return &TOCInjection{}
}

// InjectTOC builds a numbered TOC from the anchored headings and inserts it
// at the start of the content. If data is nil or no heading qualifies,
// htmlContent is returned unchanged.
func (t *TOCInjection) InjectTOC(ctx context.Context, htmlContent string, data *TOCData) (string, error) {
	if data == nil {
		return htmlContent, nil
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	headings, err := ExtractHeadings(htmlContent, data.MinDepth, data.MaxDepth)
	if err != nil {
		return "", err
	}
	toc := generateNumberedTOC(headings, data.Title)
	if toc == "" {
		return htmlContent, nil
	}
	return insertAfterBody(htmlContent, toc), nil
}

// numberingState tracks hierarchical numbering for TOC entries.
// The shallowest first heading becomes depth 1, and skipped levels nest as
// direct children.
type numberingState struct {
	counters     [6]int
	minLevelSeen int
	lastDepth    int
}

// next returns the number string ("1.2.") and effective depth for level.
func (n *numberingState) next(level int) (string, int) {
	if n.minLevelSeen == 0 {
		n.minLevelSeen = level
	}

	depth := level - n.minLevelSeen + 1
	if depth < 1 {
		depth = 1
	}
	if n.lastDepth > 0 && depth > n.lastDepth+1 {
		depth = n.lastDepth + 1
	}

	for i := depth; i < len(n.counters); i++ {
		n.counters[i] = 0
	}
	n.counters[depth-1]++
	n.lastDepth = depth

	parts := make([]string, depth)
	for i := range parts {
		parts[i] = strconv.Itoa(n.counters[i])
	}
	return strings.Join(parts, ".") + ".", depth
}

// generateNumberedTOC renders headings as a numbered <nav>.
func generateNumberedTOC(headings []Heading, title string) string {
	if len(headings) == 0 {
		return ""
	}

	var buf strings.Builder
	buf.WriteString(`<nav class="toc">`)
	if title != "" {
		buf.WriteString(`<p class="toc-title">`)
		buf.WriteString(html.EscapeString(title))
		buf.WriteString(`</p>`)
	}
	buf.WriteString(`<div class="toc-list">`)

	var numbering numberingState
	for _, h := range headings {
		num, depth := numbering.next(h.Level)

		buf.WriteString(`<div class="toc-item"`)
		if depth > 1 {
			fmt.Fprintf(&buf, ` style="padding-left:%.1fem"`, float64(depth-1)*1.5)
		}
		buf.WriteString(`><a href="#`)
		buf.WriteString(html.EscapeString(h.ID))
		buf.WriteString(`">`)
		buf.WriteString(num)
		buf.WriteByte(' ')
		buf.WriteString(html.EscapeString(h.Text))
		buf.WriteString(`</a></div>`)
	}

	buf.WriteString("</div></nav>\n")
	return buf.String()
}
