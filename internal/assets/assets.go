package assets

// defaultLoader is the package-level embedded loader.
var defaultLoader = NewEmbeddedLoader()

// LoadStyle loads a built-in CSS style by name.
// The name should not include the .css extension or path components.
// Returns ErrStyleNotFound if the style does not exist.
// Returns ErrInvalidAssetName if the name contains path separators or traversal.
func LoadStyle(name string) (string, error) {
	return defaultLoader.LoadStyle(name)
}

// LoadLayout loads a built-in layout preset by name.
// Returns ErrLayoutNotFound if the layout does not exist.
// Returns ErrInvalidAssetName if the name contains path separators or traversal.
func LoadLayout(name string) ([]byte, error) {
	return defaultLoader.LoadLayout(name)
}

// ListLayouts returns the built-in layout names, sorted.
func ListLayouts() ([]string, error) {
	return defaultLoader.ListLayouts()
}
