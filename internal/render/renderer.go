package render

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"

	"github.com/alnah/go-postmd/internal/slug"
	"github.com/alnah/go-postmd/internal/theme"
)

var (
	_ renderer.NodeRenderer = (*Renderer)(nil)
	_ renderer.SetOptioner  = (*Renderer)(nil)
)

// openSource is the click and key handler attached to images.
const openSource = "window.open(this.src)"

// Anchored heading levels.
const (
	minAnchorLevel = 2
	maxAnchorLevel = 4
)

// Option configures a Renderer.
type Option func(*Renderer)

// WithSlugFunc replaces the heading anchor generator.
func WithSlugFunc(fn slug.Func) Option {
	return func(r *Renderer) {
		if fn != nil {
			r.slug = fn
		}
	}
}

// WithCodeClasses makes highlighted code emit chroma CSS classes instead of
// inline styles. Pair it with CodeCSS.
func WithCodeClasses(enabled bool) Option {
	return func(r *Renderer) {
		r.codeClasses = enabled
	}
}

// Renderer renders the themed node types as HTML.
// It implements renderer.NodeRenderer and receives goldmark's HTML options
// (XHTML, unsafe) through SetOption.
type Renderer struct {
	html.Config
	theme       theme.Theme
	slug        slug.Func
	codeClasses bool
	highlight   renderer.NodeRendererFunc
}

// NewRenderer creates a Renderer for th.
func NewRenderer(th theme.Theme, opts ...Option) *Renderer {
	r := &Renderer{
		Config: html.NewConfig(),
		theme:  th,
		slug:   slug.Make,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.highlight = newHighlighter(th, r.codeClasses)
	return r
}

// SetOption implements renderer.SetOptioner.
func (r *Renderer) SetOption(name renderer.OptionName, value interface{}) {
	r.Config.SetOption(name, value)
}

// RegisterFuncs implements renderer.NodeRenderer.
func (r *Renderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindHeading, r.renderHeading)
	reg.Register(ast.KindBlockquote, r.renderBlockquote)
	reg.Register(ast.KindThematicBreak, r.renderThematicBreak)
	reg.Register(ast.KindList, r.renderList)
	reg.Register(ast.KindLink, r.renderLink)
	reg.Register(ast.KindAutoLink, r.renderAutoLink)
	reg.Register(ast.KindImage, r.renderImage)
	reg.Register(ast.KindEmphasis, r.renderEmphasis)
	reg.Register(ast.KindFencedCodeBlock, r.renderFencedCodeBlock)
	reg.Register(ast.KindCodeBlock, r.renderCodeBlock)
}

// IsExternal reports whether href is treated as an external link.
// Any destination containing "http" qualifies, wherever it appears.
func IsExternal(href string) bool {
	return strings.Contains(href, "http")
}

func (r *Renderer) renderHeading(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*ast.Heading)
	tag := "h" + strconv.Itoa(n.Level)
	if !entering {
		_, _ = w.WriteString("</" + tag + ">\n")
		return ast.WalkContinue, nil
	}

	_, _ = w.WriteString("<" + tag)
	if n.Level >= minAnchorLevel && n.Level <= maxAnchorLevel {
		if id := r.slug(plainText(n, source)); id != "" {
			_, _ = w.WriteString(` id="`)
			_, _ = w.Write(util.EscapeHTML([]byte(id)))
			_ = w.WriteByte('"')
		}
	}
	_ = w.WriteByte('>')
	return ast.WalkContinue, nil
}

func (r *Renderer) renderBlockquote(w util.BufWriter, _ []byte, _ ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		_, _ = w.WriteString("<blockquote")
		r.writeStyle(w, theme.ElementBlockquote)
		_, _ = w.WriteString(">\n")
	} else {
		_, _ = w.WriteString("</blockquote>\n")
	}
	return ast.WalkContinue, nil
}

func (r *Renderer) renderThematicBreak(w util.BufWriter, _ []byte, _ ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	_, _ = w.WriteString("<hr")
	r.writeStyle(w, theme.ElementRule)
	r.closeVoid(w)
	_ = w.WriteByte('\n')
	return ast.WalkContinue, nil
}

func (r *Renderer) renderList(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*ast.List)
	tag, element := "ul", theme.ElementUnorderedList
	if n.IsOrdered() {
		tag, element = "ol", theme.ElementOrderedList
	}
	if !entering {
		_, _ = w.WriteString("</" + tag + ">\n")
		return ast.WalkContinue, nil
	}

	_, _ = w.WriteString("<" + tag)
	if n.IsOrdered() && n.Start != 1 {
		_, _ = w.WriteString(` start="` + strconv.Itoa(n.Start) + `"`)
	}
	r.writeStyle(w, element)
	_, _ = w.WriteString(">\n")
	return ast.WalkContinue, nil
}

func (r *Renderer) renderLink(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*ast.Link)
	if !entering {
		_, _ = w.WriteString("</a>")
		return ast.WalkContinue, nil
	}

	var href []byte
	if r.Unsafe || !html.IsDangerousURL(n.Destination) {
		href = util.EscapeHTML(util.URLEscape(n.Destination, true))
	}
	r.openAnchor(w, href, string(n.Destination))
	return ast.WalkContinue, nil
}

func (r *Renderer) renderAutoLink(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*ast.AutoLink)
	if !entering {
		return ast.WalkContinue, nil
	}

	dest := n.URL(source)
	if n.AutoLinkType == ast.AutoLinkEmail && !bytes.HasPrefix(bytes.ToLower(dest), []byte("mailto:")) {
		dest = append([]byte("mailto:"), dest...)
	}
	r.openAnchor(w, util.EscapeHTML(util.URLEscape(dest, false)), string(dest))
	_, _ = w.Write(util.EscapeHTML(n.Label(source)))
	_, _ = w.WriteString("</a>")
	return ast.WalkContinue, nil
}

// openAnchor writes the opening <a> tag. href must already be escaped;
// dest is the raw destination used for the external-link check.
func (r *Renderer) openAnchor(w util.BufWriter, href []byte, dest string) {
	_, _ = w.WriteString(`<a href="`)
	_, _ = w.Write(href)
	_ = w.WriteByte('"')
	if IsExternal(dest) {
		_, _ = w.WriteString(` target="_blank" rel="noopener noreferrer"`)
		r.writeStyle(w, theme.ElementLink)
	}
	_ = w.WriteByte('>')
}

func (r *Renderer) renderImage(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.Image)

	_, _ = w.WriteString(`<img src="`)
	if r.Unsafe || !html.IsDangerousURL(n.Destination) {
		_, _ = w.Write(util.EscapeHTML(util.URLEscape(n.Destination, true)))
	}
	_, _ = w.WriteString(`" alt="`)
	_, _ = w.Write(util.EscapeHTML([]byte(plainText(n, source))))
	_ = w.WriteByte('"')
	r.writeStyle(w, theme.ElementImage)
	_, _ = w.WriteString(` onclick="` + openSource + `" onkeydown="` + openSource + `"`)
	r.closeVoid(w)
	return ast.WalkSkipChildren, nil
}

func (r *Renderer) renderEmphasis(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*ast.Emphasis)
	tag := "em"
	if n.Level == 2 {
		tag = "strong"
	}
	if !entering {
		_, _ = w.WriteString("</" + tag + ">")
		return ast.WalkContinue, nil
	}

	_, _ = w.WriteString("<" + tag)
	if n.Level == 2 {
		r.writeStyle(w, theme.ElementStrong)
	}
	_ = w.WriteByte('>')
	return ast.WalkContinue, nil
}

func (r *Renderer) closeVoid(w util.BufWriter) {
	if r.XHTML {
		_, _ = w.WriteString(" />")
	} else {
		_ = w.WriteByte('>')
	}
}

// writeStyle writes the theme's style attribute for e, if it has one.
func (r *Renderer) writeStyle(w util.BufWriter, e theme.Element) {
	s := r.theme.Styles.For(e)
	if len(s) == 0 {
		return
	}
	_, _ = w.WriteString(` style="`)
	_, _ = w.Write(util.EscapeHTML([]byte(s.String())))
	_ = w.WriteByte('"')
}
