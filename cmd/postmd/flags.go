package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// documentFlags holds standalone page flags.
type documentFlags struct {
	enabled bool
	title   string
	lang    string
}

// tocFlags holds table of contents flags.
type tocFlags struct {
	enabled  bool
	title    string
	minDepth int
	maxDepth int
}

// assetFlags holds style-related flags.
type assetFlags struct {
	style     string // Name, path, or CSS content
	assetPath string // Override style directory
}

// htmlFlags holds rendering switches.
type htmlFlags struct {
	unsafe      bool
	sanitize    bool
	xhtml       bool
	codeClasses bool
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common       commonFlags
	output       string
	workers      int
	timeout      string
	theme        string
	imageBaseURL string
	frontMatter  bool
	document     documentFlags
	toc          tocFlags
	assets       assetFlags
	html         htmlFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show sizes and timing")
}

// addDocumentFlags adds standalone page flags to a FlagSet.
func addDocumentFlags(fs *flag.FlagSet, f *documentFlags) {
	fs.BoolVar(&f.enabled, "document", false, "wrap output in a standalone HTML page")
	fs.StringVar(&f.title, "title", "", "page title (\"\" = front matter title)")
	fs.StringVar(&f.lang, "lang", "", "page language (default: en)")
}

// addTOCFlags adds TOC flags to a FlagSet.
func addTOCFlags(fs *flag.FlagSet, f *tocFlags) {
	fs.BoolVar(&f.enabled, "toc", false, "insert a table of contents")
	fs.StringVar(&f.title, "toc-title", "", "table of contents heading")
	fs.IntVar(&f.minDepth, "toc-min-depth", 0, "min heading depth for TOC (2-4, default: 2)")
	fs.IntVar(&f.maxDepth, "toc-max-depth", 0, "max heading depth for TOC (2-4, default: 4)")
}

// addAssetFlags adds style flags to a FlagSet.
func addAssetFlags(fs *flag.FlagSet, f *assetFlags) {
	fs.StringVar(&f.style, "style", "", "CSS style name, file path, or content")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom style directory")
}

// addHTMLFlags adds rendering flags to a FlagSet.
func addHTMLFlags(fs *flag.FlagSet, f *htmlFlags) {
	fs.BoolVar(&f.unsafe, "unsafe", false, "keep raw HTML and dangerous links")
	fs.BoolVar(&f.sanitize, "sanitize", false, "sanitize the rendered HTML")
	fs.BoolVar(&f.xhtml, "xhtml", false, "self-closing void elements")
	fs.BoolVar(&f.codeClasses, "code-classes", false, "highlight code with CSS classes")
}

// parseConvertFlags parses convert command flags and returns positional args.
// Usage goes to w on --help or a parse error.
func parseConvertFlags(args []string, w io.Writer) (*convertFlags, []string, error) {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.SetOutput(w)
	f := &convertFlags{}

	// I/O flags
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "per-file timeout (e.g., 10s, 1m)")

	// Rendering
	fs.StringVar(&f.theme, "theme", "", "color theme: light, dark")
	fs.StringVar(&f.imageBaseURL, "image-base-url", "", "resolve relative images against this URL")
	fs.BoolVar(&f.frontMatter, "front-matter", false, "read YAML/TOML front matter")

	// Flag groups
	addCommonFlags(fs, &f.common)
	addDocumentFlags(fs, &f.document)
	addTOCFlags(fs, &f.toc)
	addAssetFlags(fs, &f.assets)
	addHTMLFlags(fs, &f.html)

	fs.Usage = func() { printConvertUsage(w) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
