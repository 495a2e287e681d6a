package assets

import (
	"fmt"
	"strings"
)

// maxAssetNameLength bounds template names.
const maxAssetNameLength = 100

// ValidateAssetName checks that a template name is safe for use as a filename.
// Returns ErrInvalidAssetName if the name is empty, too long, or contains path
// separators or dots (which could allow extension manipulation or traversal).
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if len(name) > maxAssetNameLength {
		return fmt.Errorf("%w: name too long (%d chars, max %d)", ErrInvalidAssetName, len(name), maxAssetNameLength)
	}
	if strings.ContainsAny(name, "/\\.") {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
