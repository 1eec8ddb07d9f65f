package csv2labels

import (
	"errors"
	"fmt"

	"github.com/alnah/go-csv2labels/internal/assets"
)

// Asset name constants for built-in styles and layouts.
const (
	// DefaultStyle is the name of the built-in label CSS.
	DefaultStyle = assets.DefaultStyleName

	// DefaultLayout is the name of the built-in single-barcode layout.
	DefaultLayout = assets.DefaultLayoutName
)

// AssetLoader defines the contract for loading label styles and layouts.
// Implementations may load from filesystem, embedded assets, a database, etc.
//
// The library provides NewAssetLoader() for filesystem-based loading with
// fallback to embedded defaults. Implement this interface for custom backends.
type AssetLoader interface {
	// LoadStyle loads a CSS style by name (without .css extension).
	// Returns ErrStyleNotFound if the style doesn't exist.
	LoadStyle(name string) (string, error)

	// LoadLayout loads a layout's YAML by name (without .yaml extension).
	// Returns ErrLayoutNotFound if the layout doesn't exist.
	LoadLayout(name string) ([]byte, error)

	// ListStyles returns the available style names, sorted.
	ListStyles() ([]string, error)

	// ListLayouts returns the available layout names, sorted.
	ListLayouts() ([]string, error)
}

// NewAssetLoader creates an AssetLoader for the given base path.
// If basePath is empty, returns a loader using only embedded assets.
// If basePath is set, custom assets take precedence with fallback to embedded.
//
// The basePath directory should contain:
//   - styles/{name}.css for CSS styles
//   - layouts/{name}.yaml for layouts
//
// Returns ErrInvalidAssetPath if basePath is set but not a valid, readable directory.
func NewAssetLoader(basePath string) (AssetLoader, error) {
	resolver, err := assets.NewAssetResolver(basePath)
	if err != nil {
		return nil, convertAssetError(err)
	}
	return &assetLoaderAdapter{resolver: resolver}, nil
}

// assetLoaderAdapter wraps the internal resolver to return public errors.
type assetLoaderAdapter struct {
	resolver *assets.AssetResolver
}

func (a *assetLoaderAdapter) LoadStyle(name string) (string, error) {
	content, err := a.resolver.LoadStyle(name)
	if err != nil {
		return "", convertAssetError(err)
	}
	return content, nil
}

func (a *assetLoaderAdapter) LoadLayout(name string) ([]byte, error) {
	data, err := a.resolver.LoadLayout(name)
	if err != nil {
		return nil, convertAssetError(err)
	}
	return data, nil
}

func (a *assetLoaderAdapter) ListStyles() ([]string, error) {
	names, err := a.resolver.ListStyles()
	return names, convertAssetError(err)
}

func (a *assetLoaderAdapter) ListLayouts() ([]string, error) {
	names, err := a.resolver.ListLayouts()
	return names, convertAssetError(err)
}

// convertAssetError maps internal asset errors to public errors.
func convertAssetError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, assets.ErrStyleNotFound):
		return wrapError(ErrStyleNotFound, err)
	case errors.Is(err, assets.ErrLayoutNotFound):
		return wrapError(ErrLayoutNotFound, err)
	case errors.Is(err, assets.ErrInvalidBasePath):
		return wrapError(ErrInvalidAssetPath, err)
	case errors.Is(err, assets.ErrPathTraversal):
		return wrapError(ErrInvalidAssetPath, err)
	case errors.Is(err, assets.ErrInvalidAssetName):
		return wrapError(ErrInvalidAssetPath, err)
	default:
		return err
	}
}

// wrapError wraps an internal error with a public sentinel error.
func wrapError(sentinel, cause error) error {
	return fmt.Errorf("%w: %v", sentinel, cause)
}
