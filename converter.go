package postmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/alnah/go-postmd/internal/assets"
	"github.com/alnah/go-postmd/internal/fileutil"
	"github.com/alnah/go-postmd/internal/pipeline"
	"github.com/alnah/go-postmd/internal/render"
	"github.com/alnah/go-postmd/internal/slug"
	"github.com/alnah/go-postmd/internal/theme"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.MarkdownPreprocessor = (*pipeline.BlogPreprocessor)(nil)
	_ pipeline.HTMLConverter        = (*pipeline.GoldmarkConverter)(nil)
	_ pipeline.CSSInjector          = (*pipeline.CSSInjection)(nil)
	_ pipeline.TOCInjector          = (*pipeline.TOCInjection)(nil)
	_ AssetLoader                   = (*assetLoaderAdapter)(nil)
)

// themeModes lists the modes a Converter prepares a renderer for.
var themeModes = [...]theme.Mode{theme.ModeDark, theme.ModeLight}

// Converter orchestrates the markdown-to-HTML pipeline.
// Create with NewConverter() and use Convert() for conversion.
type Converter struct {
	cfg           converterConfig
	assetLoader   assets.StyleLoader
	publicLoader  AssetLoader // from WithAssetLoader
	preprocessor  pipeline.MarkdownPreprocessor
	htmlConverter [len(themeModes)]pipeline.HTMLConverter
	pageCSS       [len(themeModes)]string
	cssInjector   pipeline.CSSInjector
	tocInjector   pipeline.TOCInjector
	sanitizer     *pipeline.Sanitizer
}

// NewConverter creates a Converter with default configuration.
// Use options to customize behavior (e.g., WithTimeout, WithStyle, WithSanitizer).
// Returns error if asset loading fails.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg:          converterConfig{timeout: defaultTimeout},
		assetLoader:  assets.NewEmbeddedLoader(),
		preprocessor: &pipeline.BlogPreprocessor{},
		cssInjector:  &pipeline.CSSInjection{},
		tocInjector:  pipeline.NewTOCInjection(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.cfg.assetPath != "" {
		resolver, err := assets.NewAssetResolver(c.cfg.assetPath)
		if err != nil {
			return nil, convertAssetError(err)
		}
		c.assetLoader = resolver
	}
	if c.publicLoader != nil {
		c.assetLoader = c.publicLoader
	}

	if err := c.resolveStyle(); err != nil {
		return nil, err
	}

	if c.cfg.sanitize {
		c.sanitizer = pipeline.NewSanitizer()
	}

	renderOpts := []render.Option{render.WithCodeClasses(c.cfg.codeClasses)}
	if c.cfg.slug != nil {
		renderOpts = append(renderOpts, render.WithSlugFunc(slug.Func(c.cfg.slug)))
	}
	for _, mode := range themeModes {
		th := theme.Select(mode)
		c.htmlConverter[mode] = pipeline.NewGoldmarkConverter(th, pipeline.GoldmarkOptions{
			Unsafe: c.cfg.unsafe,
			XHTML:  c.cfg.xhtml,
			Render: renderOpts,
		})

		css, err := c.themeCSS(th)
		if err != nil {
			return nil, err
		}
		c.pageCSS[mode] = css
	}

	return c, nil
}

// Convert renders input and returns the HTML with its anchored headings.
// The context is used for cancellation and timeout.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := c.validateInput(input); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.timeout)
	defer cancel()

	// Split front matter before preprocessing rewrites its newlines
	mdContent := input.Markdown
	var meta *FrontMatter
	if input.FrontMatter {
		fm, body, err := pipeline.SplitFrontMatter(mdContent)
		if err != nil {
			return nil, err
		}
		meta = toFrontMatter(fm)
		mdContent = body
	}

	themeValue := input.Theme
	if themeValue == "" && meta != nil {
		themeValue = meta.Theme
	}
	mode := theme.ParseMode(themeValue)

	mdContent = c.preprocessor.PreprocessMarkdown(ctx, mdContent)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	htmlContent, err := c.htmlConverter[mode].ToHTML(ctx, mdContent)
	if err != nil {
		return nil, fmt.Errorf("converting to HTML: %w", err)
	}

	htmlContent, err = pipeline.RewriteImageSources(htmlContent, input.ImageBaseURL)
	if err != nil {
		return nil, fmt.Errorf("rewriting image sources: %w", err)
	}

	if c.sanitizer != nil {
		htmlContent = c.sanitizer.Sanitize(htmlContent)
	}

	headings, err := pipeline.ExtractHeadings(htmlContent, DefaultTOCMinDepth, DefaultTOCMaxDepth)
	if err != nil {
		return nil, fmt.Errorf("extracting headings: %w", err)
	}

	htmlContent, err = c.tocInjector.InjectTOC(ctx, htmlContent, toTOCData(input.TOC))
	if err != nil {
		return nil, fmt.Errorf("injecting TOC: %w", err)
	}

	if input.Document != nil {
		htmlContent = pipeline.WrapDocument(htmlContent, toDocumentData(input.Document, meta, mode))

		// Order matters: theme page CSS first, user CSS last (can override)
		htmlContent = c.cssInjector.InjectCSS(ctx, htmlContent, joinCSS(
			c.pageCSS[mode],
			c.cfg.resolvedStyle,
			input.CSS,
		))
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
	}

	return &Result{
		HTML:     []byte(htmlContent),
		Headings: toHeadings(headings),
		Meta:     meta,
	}, nil
}

// resolveStyle resolves the style input (name, path, or CSS content) to CSS content.
// Called during NewConverter() after options are applied and asset loader is configured.
func (c *Converter) resolveStyle() error {
	input := c.cfg.styleInput
	if input == "" {
		return nil
	}

	// File path? (contains / or \)
	if fileutil.IsFilePath(input) {
		content, err := os.ReadFile(input) // #nosec G304 -- user-provided path
		if err != nil {
			return fmt.Errorf("loading style file %q: %w", input, err)
		}
		c.cfg.resolvedStyle = string(content)
		return nil
	}

	// CSS content? (contains {)
	if fileutil.IsCSS(input) {
		c.cfg.resolvedStyle = input
		return nil
	}

	css, err := c.assetLoader.LoadStyle(input)
	if err != nil {
		return fmt.Errorf("loading style %q: %w", input, convertAssetError(err))
	}
	c.cfg.resolvedStyle = css
	return nil
}

// themeCSS loads the page stylesheet named after the theme mode, followed by
// the chroma stylesheet when code uses classes. A loader without the theme
// style yields no page CSS.
func (c *Converter) themeCSS(th theme.Theme) (string, error) {
	page, err := c.assetLoader.LoadStyle(assets.ThemeStyleName(th.Mode))
	if err != nil && !isStyleNotFound(err) {
		return "", fmt.Errorf("loading %s theme style: %w", th.Mode, convertAssetError(err))
	}
	if !c.cfg.codeClasses {
		return page, nil
	}

	code, err := render.CodeCSS(th)
	if err != nil {
		return "", fmt.Errorf("generating %s code style: %w", th.Mode, err)
	}
	return joinCSS(page, code), nil
}

func isStyleNotFound(err error) bool {
	return errors.Is(err, ErrStyleNotFound) || errors.Is(err, assets.ErrStyleNotFound)
}

// validateInput checks that required fields are present and valid.
//
// This is a TRUST BOUNDARY for direct library users who build Input manually.
// CLI users have their input validated earlier by Config.Validate() at config load time.
func (c *Converter) validateInput(input Input) error {
	if input.Markdown == "" {
		return ErrEmptyMarkdown
	}
	if err := input.TOC.Validate(); err != nil {
		return err
	}
	if input.ImageBaseURL != "" {
		if _, err := pipeline.ParseBaseURL(input.ImageBaseURL); err != nil {
			return err
		}
	}
	return nil
}

// joinCSS concatenates the non-empty stylesheets, one per line.
func joinCSS(parts ...string) string {
	var b strings.Builder
	for _, p := range parts {
		if p == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(p)
	}
	return b.String()
}

// toTOCData converts the public TOC type to internal pipeline.TOCData.
func toTOCData(t *TOC) *pipeline.TOCData {
	if t == nil {
		return nil
	}
	minDepth, maxDepth := t.depths()
	return &pipeline.TOCData{
		Title:    t.Title,
		MinDepth: minDepth,
		MaxDepth: maxDepth,
	}
}

// toDocumentData converts the public Document type to internal
// pipeline.DocumentData, taking the title from front matter when unset.
func toDocumentData(d *Document, meta *FrontMatter, mode theme.Mode) pipeline.DocumentData {
	title := d.Title
	if title == "" && meta != nil {
		title = meta.Title
	}
	return pipeline.DocumentData{
		Title: title,
		Lang:  d.Lang,
		Theme: mode.String(),
	}
}

// toFrontMatter converts internal pipeline.FrontMatter to the public type.
func toFrontMatter(fm *pipeline.FrontMatter) *FrontMatter {
	if fm == nil {
		return nil
	}
	return &FrontMatter{
		Title:       fm.Title,
		Description: fm.Description,
		Date:        fm.Date,
		Tags:        fm.Tags,
		Theme:       fm.Theme,
		Draft:       fm.Draft,
	}
}

// toHeadings converts internal pipeline.Heading values to the public type.
func toHeadings(hs []pipeline.Heading) []Heading {
	if len(hs) == 0 {
		return nil
	}
	out := make([]Heading, len(hs))
	for i, h := range hs {
		out[i] = Heading(h)
	}
	return out
}
