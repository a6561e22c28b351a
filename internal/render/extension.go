package render

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"

	"github.com/alnah/go-postmd/internal/theme"
)

// rendererPriority beats goldmark's default HTML renderer (1000) and
// goldmark-highlighting (200).
const rendererPriority = 100

type extension struct {
	theme theme.Theme
	opts  []Option
}

// NewExtension returns a goldmark extension that installs a Renderer for th.
func NewExtension(th theme.Theme, opts ...Option) goldmark.Extender {
	return &extension{theme: th, opts: opts}
}

// Extend implements goldmark.Extender.
func (e *extension) Extend(m goldmark.Markdown) {
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(NewRenderer(e.theme, e.opts...), rendererPriority),
	))
}
