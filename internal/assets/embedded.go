package assets

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
)

//go:embed styles/*.css
var styles embed.FS

//go:embed layouts/*.yaml
var layouts embed.FS

// EmbeddedLoader loads assets from embedded filesystem.
// Implements AssetLoader interface.
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

// LoadStyle loads a CSS style from embedded assets by name.
func (e *EmbeddedLoader) LoadStyle(name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}

	content, err := styles.ReadFile(kindStyles + "/" + name + styleExt)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrStyleNotFound, name)
	}

	return string(content), nil
}

// LoadLayout loads a layout preset from embedded assets by name.
func (e *EmbeddedLoader) LoadLayout(name string) ([]byte, error) {
	if err := ValidateAssetName(name); err != nil {
		return nil, err
	}

	content, err := layouts.ReadFile(kindLayouts + "/" + name + layoutExt)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrLayoutNotFound, name)
	}

	return content, nil
}

// ListStyles returns the embedded style names.
func (e *EmbeddedLoader) ListStyles() ([]string, error) {
	return listEmbedded(styles, kindStyles, styleExt)
}

// ListLayouts returns the embedded layout names.
func (e *EmbeddedLoader) ListLayouts() ([]string, error) {
	return listEmbedded(layouts, kindLayouts, layoutExt)
}

func listEmbedded(fsys embed.FS, dir, ext string) ([]string, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	files := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			files = append(files, e.Name())
		}
	}
	names := namesWithExt(files, ext)
	sort.Strings(names)
	return names, nil
}

// Compile-time interface check.
var _ AssetLoader = (*EmbeddedLoader)(nil)
