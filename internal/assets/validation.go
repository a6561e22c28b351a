package assets

import (
	"fmt"
	"strings"
)

// ValidateAssetName rejects empty names and names that could leave the
// styles directory or change the file extension.
func ValidateAssetName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	case strings.ContainsAny(name, `/\.`):
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
