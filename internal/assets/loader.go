package assets

// Built-in asset names.
const (
	DefaultStyleName  = "default"
	DefaultLayoutName = "lotes"
)

// Asset kinds, which are also the directory names under a base path.
const (
	kindStyles  = "styles"
	kindLayouts = "layouts"

	styleExt  = ".css"
	layoutExt = ".yaml"
)

// AssetLoader defines the contract for loading label styles and layouts.
type AssetLoader interface {
	// LoadStyle loads a CSS style by name (without .css extension).
	// Returns ErrStyleNotFound if the style doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadStyle(name string) (string, error)

	// LoadLayout loads a layout preset by name (without .yaml extension).
	// Returns ErrLayoutNotFound if the layout doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadLayout(name string) ([]byte, error)

	// ListStyles returns the available style names, sorted.
	ListStyles() ([]string, error)

	// ListLayouts returns the available layout names, sorted.
	ListLayouts() ([]string, error)
}
