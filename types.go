package postmd

import (
	"fmt"
	"time"

	"github.com/alnah/go-postmd/internal/slug"
)

// Anchored heading levels, also the TOC depth bounds.
const (
	DefaultTOCMinDepth = 2
	DefaultTOCMaxDepth = 4
)

// Input contains conversion parameters.
type Input struct {
	Markdown     string    // Markdown content (required)
	Theme        string    // "light" selects the light theme, anything else dark
	CSS          string    // Extra CSS appended last in document mode
	FrontMatter  bool      // Split a leading YAML/TOML front matter block
	ImageBaseURL string    // Resolve relative image sources against this URL
	TOC          *TOC      // Table of contents (optional)
	Document     *Document // Wrap in a standalone HTML page (optional)
}

// Result holds the conversion output.
type Result struct {
	HTML     []byte
	Headings []Heading   // anchored h2-h4 headings, in document order
	Meta     *FrontMatter // nil unless front matter was found
}

// Heading is an anchored heading of the rendered post.
type Heading struct {
	Level int
	ID    string
	Text  string
}

// FrontMatter holds post metadata from a front matter block.
type FrontMatter struct {
	Title       string
	Description string
	Date        string
	Tags        []string
	Theme       string // used when Input.Theme is empty
	Draft       bool
}

// TOC configures the table of contents inserted before the post body.
type TOC struct {
	Title    string // empty = no title
	MinDepth int    // 0 = DefaultTOCMinDepth
	MaxDepth int    // 0 = DefaultTOCMaxDepth
}

// Validate checks the depth bounds. A nil TOC is valid.
func (t *TOC) Validate() error {
	if t == nil {
		return nil
	}
	minDepth, maxDepth := t.depths()
	if minDepth < DefaultTOCMinDepth || maxDepth > DefaultTOCMaxDepth {
		return fmt.Errorf("%w: depths must be between %d and %d, got %d-%d",
			ErrInvalidTOCDepth, DefaultTOCMinDepth, DefaultTOCMaxDepth, minDepth, maxDepth)
	}
	if minDepth > maxDepth {
		return fmt.Errorf("%w: minDepth %d greater than maxDepth %d", ErrInvalidTOCDepth, minDepth, maxDepth)
	}
	return nil
}

func (t *TOC) depths() (int, int) {
	minDepth, maxDepth := t.MinDepth, t.MaxDepth
	if minDepth == 0 {
		minDepth = DefaultTOCMinDepth
	}
	if maxDepth == 0 {
		maxDepth = DefaultTOCMaxDepth
	}
	return minDepth, maxDepth
}

// Document configures standalone page output.
type Document struct {
	Title string // empty = front matter title, then "Document"
	Lang  string // empty = "en"
}

// SlugFunc computes a heading anchor from heading text.
type SlugFunc func(text string) string

// Slug returns the anchor the default renderer gives a heading with text.
func Slug(text string) string {
	return slug.Make(text)
}

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	timeout       time.Duration
	slug          SlugFunc
	unsafe        bool
	sanitize      bool
	xhtml         bool
	codeClasses   bool
	assetPath     string
	styleInput    string
	resolvedStyle string
}

// defaultTimeout is used when no timeout is specified.
const defaultTimeout = 30 * time.Second

// WithTimeout bounds each Convert call.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("postmd: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithSlugFunc replaces the heading anchor generator.
func WithSlugFunc(fn SlugFunc) Option {
	return func(c *Converter) {
		c.cfg.slug = fn
	}
}

// WithUnsafeHTML passes raw HTML and dangerous link destinations through.
func WithUnsafeHTML(enabled bool) Option {
	return func(c *Converter) {
		c.cfg.unsafe = enabled
	}
}

// WithSanitizer runs the rendered HTML through an HTML sanitizer that keeps
// the themed attributes.
func WithSanitizer(enabled bool) Option {
	return func(c *Converter) {
		c.cfg.sanitize = enabled
	}
}

// WithXHTML renders void elements as self-closing tags.
func WithXHTML(enabled bool) Option {
	return func(c *Converter) {
		c.cfg.xhtml = enabled
	}
}

// WithCodeClasses makes highlighted code use CSS classes instead of inline
// styles. Document output then includes the matching chroma stylesheet.
func WithCodeClasses(enabled bool) Option {
	return func(c *Converter) {
		c.cfg.codeClasses = enabled
	}
}

// WithAssetPath loads styles from {path}/styles before the built-in ones.
func WithAssetPath(path string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = path
	}
}

// WithAssetLoader sets a custom style loader. It takes precedence over
// WithAssetPath.
func WithAssetLoader(loader AssetLoader) Option {
	return func(c *Converter) {
		c.publicLoader = loader
	}
}

// WithStyle adds a stylesheet to document output: a style name, a path to a
// CSS file, or CSS content.
func WithStyle(style string) Option {
	return func(c *Converter) {
		c.cfg.styleInput = style
	}
}
