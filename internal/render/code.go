package render

import (
	"bytes"
	"fmt"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/alnah/go-postmd/internal/softbreak"
	"github.com/alnah/go-postmd/internal/theme"
)

// funcRegistry captures the funcs a NodeRenderer registers so they can be
// called directly instead of through goldmark's dispatch table.
type funcRegistry map[ast.NodeKind]renderer.NodeRendererFunc

func (f funcRegistry) Register(kind ast.NodeKind, fn renderer.NodeRendererFunc) {
	f[kind] = fn
}

var _ renderer.NodeRendererFuncRegisterer = funcRegistry(nil)

// newHighlighter returns the chroma-backed fenced code renderer for th.
func newHighlighter(th theme.Theme, classes bool) renderer.NodeRendererFunc {
	reg := funcRegistry{}
	highlighting.NewHTMLRenderer(
		highlighting.WithStyle(th.CodeStyle),
		highlighting.WithFormatOptions(chromahtml.WithClasses(classes)),
	).RegisterFuncs(reg)
	return reg[ast.KindFencedCodeBlock]
}

// CodeCSS returns the chroma stylesheet for the theme's code style, for use
// with WithCodeClasses.
func CodeCSS(th theme.Theme) (string, error) {
	style := styles.Get(th.CodeStyle)
	var buf bytes.Buffer
	if err := chromahtml.New(chromahtml.WithClasses(true)).WriteCSS(&buf, style); err != nil {
		return "", fmt.Errorf("writing %s code stylesheet: %w", th.CodeStyle, err)
	}
	return buf.String(), nil
}

func (r *Renderer) renderFencedCodeBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.FencedCodeBlock)
	code := softbreak.Restore(blockContent(n, source))

	lang := n.Language(source)
	if r.highlight != nil && len(lang) > 0 && lexers.Get(string(lang)) != nil {
		detached, src := detachedBlock(n, source, code)
		return r.highlight(w, src, detached, true)
	}

	r.writePlainCode(w, lang, code)
	return ast.WalkSkipChildren, nil
}

func (r *Renderer) renderCodeBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	r.writePlainCode(w, nil, softbreak.Restore(blockContent(node, source)))
	return ast.WalkSkipChildren, nil
}

func (r *Renderer) writePlainCode(w util.BufWriter, lang []byte, code string) {
	_, _ = w.WriteString("<pre><code")
	if len(lang) > 0 {
		_, _ = w.WriteString(` class="language-`)
		_, _ = w.Write(util.EscapeHTML(lang))
		_ = w.WriteByte('"')
	}
	_ = w.WriteByte('>')
	_, _ = w.Write(util.EscapeHTML([]byte(code)))
	_, _ = w.WriteString("</code></pre>\n")
}

// blockContent concatenates the raw lines of a code block.
func blockContent(n ast.Node, source []byte) string {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(source))
	}
	return buf.String()
}

// detachedBlock builds a fenced code block over its own source buffer
// holding the info string followed by code, so the highlighter sees the
// restored text instead of the original segments.
func detachedBlock(n *ast.FencedCodeBlock, source []byte, code string) (*ast.FencedCodeBlock, []byte) {
	var info []byte
	if n.Info != nil {
		info = n.Info.Segment.Value(source)
	}

	src := make([]byte, 0, len(info)+1+len(code))
	src = append(src, info...)
	src = append(src, '\n')
	src = append(src, code...)

	block := ast.NewFencedCodeBlock(ast.NewTextSegment(text.NewSegment(0, len(info))))
	lines := text.NewSegments()
	start := len(info) + 1
	for start < len(src) {
		end := bytes.IndexByte(src[start:], '\n')
		if end < 0 {
			end = len(src)
		} else {
			end += start + 1
		}
		lines.Append(text.NewSegment(start, end))
		start = end
	}
	block.SetLines(lines)
	for _, attr := range n.Attributes() {
		block.SetAttribute(attr.Name, attr.Value)
	}
	return block, src
}
