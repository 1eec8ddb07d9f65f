package csv2labels

import (
	"time"

	"go.uber.org/zap"
)

// Option configures a Generator.
type Option func(*Generator)

// generatorConfig holds internal configuration for Generator.
type generatorConfig struct {
	timeout       time.Duration
	assetPath     string
	styleInput    string // name, file path, or CSS content
	resolvedStyle string // CSS content after resolution
}

// defaultTimeout bounds page loading in the browser.
const defaultTimeout = 30 * time.Second

// WithTimeout sets the page load timeout of the PDF sink.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("csv2labels: WithTimeout duration must be positive")
	}
	return func(g *Generator) {
		g.cfg.timeout = d
	}
}

// WithLogger sets the diagnostics logger. Every run logs with a run_id field.
// A nil logger is ignored.
func WithLogger(l *zap.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.logger = l
		}
	}
}

// WithAssetPath loads styles and layouts from basePath before the built-in
// ones. The directory holds styles/{name}.css and layouts/{name}.yaml.
func WithAssetPath(basePath string) Option {
	return func(g *Generator) {
		g.cfg.assetPath = basePath
	}
}

// WithAssetLoader sets a custom asset loader. It takes precedence over
// WithAssetPath.
func WithAssetLoader(loader AssetLoader) Option {
	return func(g *Generator) {
		g.publicAssetLoader = loader
	}
}

// WithStyle selects the label CSS: a style name ("default", "outlined"), a
// path to a .css file, or CSS content.
func WithStyle(style string) Option {
	return func(g *Generator) {
		g.cfg.styleInput = style
	}
}

// WithBarcodeRenderer replaces the built-in Code 128 renderer.
func WithBarcodeRenderer(r BarcodeRenderer) Option {
	return func(g *Generator) {
		if r != nil {
			g.renderer = r
		}
	}
}
