package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: postmd <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert    Render markdown posts to HTML")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'postmd help <command>' for details on a specific command.")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: postmd convert [input] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render markdown posts to themed HTML.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Markdown file or directory (optional if config has input.defaultDir)")
	fmt.Fprintln(w, "           Without input, markdown is read from stdin and HTML written to stdout")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>         Output file or directory")
	fmt.Fprintln(w, "  -c, --config <name>         Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>           Parallel workers (0 = auto)")
	fmt.Fprintln(w, "  -t, --timeout <d>           Per-file timeout (e.g., 10s, 1m)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Rendering:")
	fmt.Fprintln(w, "      --theme <s>             Color theme: light, dark (default: dark)")
	fmt.Fprintln(w, "      --front-matter          Read YAML (---) or TOML (+++) front matter")
	fmt.Fprintln(w, "      --image-base-url <url>  Resolve relative images against this URL")
	fmt.Fprintln(w, "      --code-classes          Highlight code with CSS classes")
	fmt.Fprintln(w, "      --unsafe                Keep raw HTML and dangerous links")
	fmt.Fprintln(w, "      --sanitize              Sanitize the rendered HTML")
	fmt.Fprintln(w, "      --xhtml                 Self-closing void elements")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Document:")
	fmt.Fprintln(w, "      --document              Wrap output in a standalone HTML page")
	fmt.Fprintln(w, "      --title <s>             Page title (\"\" = front matter title)")
	fmt.Fprintln(w, "      --lang <s>              Page language (default: en)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Table of Contents:")
	fmt.Fprintln(w, "      --toc                   Insert a table of contents")
	fmt.Fprintln(w, "      --toc-title <s>         TOC heading text")
	fmt.Fprintln(w, "      --toc-min-depth <n>     Min heading depth (2-4)")
	fmt.Fprintln(w, "      --toc-max-depth <n>     Max heading depth (2-4)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Styling (document output):")
	fmt.Fprintln(w, "      --style <s>             Style name, CSS file path, or CSS content")
	fmt.Fprintln(w, "      --asset-path <dir>      Custom style directory ({dir}/styles/*.css)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet                 Only show errors")
	fmt.Fprintln(w, "  -v, --verbose               Show sizes and timing")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  POSTMD_CONFIG, POSTMD_THEME, POSTMD_STYLE, POSTMD_TIMEOUT,")
	fmt.Fprintln(w, "  POSTMD_INPUT_DIR, POSTMD_OUTPUT_DIR, POSTMD_IMAGE_BASE_URL, POSTMD_WORKERS")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: postmd version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: postmd help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
