package assets

import (
	"fmt"
	"strings"
)

// ValidateAssetName checks that an asset name is safe for use as a filename.
// Returns ErrInvalidAssetName if the name is empty or contains path separators,
// dots (which could allow extension manipulation), or traversal characters.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.ContainsAny(name, "/\\.\x00") {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}

// namesWithExt strips ext from matching file names, skipping the rest.
func namesWithExt(files []string, ext string) []string {
	var names []string
	for _, f := range files {
		if name, ok := strings.CutSuffix(f, ext); ok && name != "" && ValidateAssetName(name) == nil {
			names = append(names, name)
		}
	}
	return names
}
