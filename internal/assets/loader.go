package assets

import "github.com/alnah/go-postmd/internal/theme"

// StyleLoader loads CSS stylesheets by name (without the .css extension).
// Implementations return ErrStyleNotFound for unknown names and
// ErrInvalidAssetName for unsafe ones.
type StyleLoader interface {
	LoadStyle(name string) (string, error)
}

// ThemeStyleName returns the stylesheet name holding the page CSS for m.
func ThemeStyleName(m theme.Mode) string {
	return m.String()
}
