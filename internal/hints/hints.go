// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"strings"
)

// ForTimeout returns a hint about increasing the timeout for large posts.
func ForTimeout() string {
	return format("for large posts or batches, use --timeout")
}

// ForConfigNotFound suggests --config, or creating the first user config
// path (under .config/go-postmd) among the searched locations.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"
	for _, p := range searchedPaths {
		if strings.Contains(p, ".config/go-postmd") {
			hint += " or create " + p
			break
		}
	}
	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForStyleNotFound lists the available style names.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForImageBaseURL explains the expected image base URL shape.
func ForImageBaseURL() string {
	return format("use an absolute URL such as https://cdn.example.com/posts/")
}

// ForFrontMatter points at the accepted front matter delimiters.
func ForFrontMatter() string {
	return format("front matter must sit between --- lines (YAML) or +++ lines (TOML)")
}

// ForStdin explains how to provide input when stdin is a terminal.
func ForStdin() string {
	return format("pass a file or directory, or pipe Markdown into postmd convert")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}
