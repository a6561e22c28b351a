// Package slug derives in-page anchor identifiers from heading text.
package slug

import (
	"strings"

	"github.com/shurcooL/sanitized_anchor_name"
)

// Func computes an anchor identifier from heading text.
// Implementations must be deterministic and must not fail on empty input.
type Func func(text string) string

// Make returns a lowercase, hyphenated anchor for text.
// Letters and digits are kept (any script), every other run of characters
// collapses into a single hyphen, and leading or trailing separators are dropped.
// Empty or separator-only text yields "".
func Make(text string) string {
	return sanitized_anchor_name.Create(strings.TrimSpace(text))
}
