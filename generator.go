package csv2labels

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/alnah/go-csv2labels/internal/assets"
	"github.com/alnah/go-csv2labels/internal/barcode"
	"github.com/alnah/go-csv2labels/internal/fileutil"
	"github.com/alnah/go-csv2labels/internal/layout"
	"github.com/alnah/go-csv2labels/internal/records"
)

// Compile-time interface implementation checks.
var (
	_ BarcodeRenderer    = (*barcode.Code128)(nil)
	_ assets.AssetLoader = (AssetLoader)(nil)
	_ pdfConverter       = (*rodConverter)(nil)
)

// Generator turns CSV files into label documents.
// Create with NewGenerator(), use Generate() for each file, and Close() when done.
// A Generator runs one generation at a time per RunState; it owns one browser.
type Generator struct {
	cfg               generatorConfig
	assetLoader       assets.AssetLoader
	publicAssetLoader AssetLoader
	renderer          barcode.Renderer
	pdfConverter      pdfConverter
	logger            *zap.Logger
}

// NewGenerator creates a Generator with default configuration.
// Use options to customize behavior (e.g., WithTimeout, WithStyle, WithAssetPath).
// Returns error if the asset path or the style cannot be loaded.
func NewGenerator(opts ...Option) (*Generator, error) {
	g := &Generator{
		cfg:         generatorConfig{timeout: defaultTimeout},
		assetLoader: assets.NewEmbeddedLoader(),
		renderer:    barcode.NewCode128(),
		logger:      zap.NewNop(),
	}

	for _, opt := range opts {
		opt(g)
	}

	if g.cfg.assetPath != "" {
		resolver, err := assets.NewAssetResolver(g.cfg.assetPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
		}
		g.assetLoader = resolver
	}

	// The public interface has the same method set as the internal one.
	if g.publicAssetLoader != nil {
		g.assetLoader = g.publicAssetLoader
	}

	if err := g.resolveStyle(); err != nil {
		return nil, err
	}

	// Create PDF converter if not injected (e.g., by tests)
	if g.pdfConverter == nil {
		g.pdfConverter = newRodConverter(g.cfg.timeout)
	}

	return g, nil
}

// Generate parses in.CSV, drops rows missing a required field, lays out one
// page per remaining row and prints the pages to PDF.
//
// run tracks progress and rejects concurrent runs with ErrBusy; nil uses a
// private state. Input errors wrap ErrParse or ErrEmptyInput and nothing is
// produced. Per-field problems are reported in the result and never stop the
// run. Recovers from internal panics to prevent crashes from propagating to
// callers.
func (g *Generator) Generate(ctx context.Context, run *RunState, in Input) (result *GenerateResult, err error) {
	if run == nil {
		run = &RunState{}
	}
	if err := run.begin(); err != nil {
		return nil, err
	}
	defer func() { run.finish(err) }()
	defer func() {
		if r := recover(); r != nil {
			result, err = nil, fmt.Errorf("internal error: %v", r)
		}
	}()

	start := time.Now()
	runID := uuid.NewString()
	log := g.logger.With(zap.String("run_id", runID))

	lay := in.Layout
	if lay == nil {
		if lay, err = g.LoadLayout(DefaultLayout); err != nil {
			return nil, err
		}
	} else if err := lay.Validate(); err != nil {
		return nil, err
	}
	required := in.Required
	if len(required) == 0 {
		required = lay.Required
	}
	log.Debug("run started",
		zap.String("layout", lay.Name),
		zap.Strings("required", required),
		zap.Int("bytes", len(in.CSV)))

	recs, warnings, err := records.Parse(bytes.NewReader(in.CSV), records.ParseOptions{Delimiter: in.Delimiter})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	for _, w := range warnings {
		log.Warn("input warning", zap.String("kind", w.Kind), zap.Int("line", w.Line), zap.String("detail", w.Message))
	}
	if len(recs) == 0 {
		return nil, fmt.Errorf("%w: the file has a header but no data rows", ErrEmptyInput)
	}

	filtered := records.Filter(recs, required)
	for _, w := range filtered.Rejected {
		log.Warn("row dropped",
			zap.Int("row", w.Position),
			zap.Int("line", w.Line),
			zap.String("field", w.Field),
			zap.String("reason", w.Reason))
	}
	if len(filtered.Accepted) == 0 {
		return nil, fmt.Errorf("%w: none of %d rows has a value in every required field (%s)",
			ErrEmptyInput, len(recs), strings.Join(required, ", "))
	}

	engine := layout.New(g.renderer,
		layout.WithLogger(log),
		layout.WithProgress(func(i, total int, _ records.Record) {
			run.advance(i+1, total)
		}),
	)
	laid, err := engine.Run(ctx, filtered.Accepted, lay.engineConfig(in.Title))
	if err != nil {
		if errors.Is(err, layout.ErrInvalidConfig) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidLayout, err)
		}
		return nil, fmt.Errorf("laying out labels: %w", err)
	}

	css := g.cfg.resolvedStyle
	if in.CSS != "" {
		css += "\n" + in.CSS
	}
	htmlContent, err := laid.Document.RenderHTML(css)
	if err != nil {
		return nil, fmt.Errorf("rendering HTML: %w", err)
	}

	res := &GenerateResult{
		RunID:         runID,
		HTML:          htmlContent,
		Records:       len(recs),
		Pages:         laid.Document.PageCount(),
		ParseWarnings: warnings,
		Rejected:      filtered.Rejected,
		Skipped:       laid.Skipped,
		RenderErrors:  laid.RenderErrors,
	}

	if !in.HTMLOnly {
		w, h := laid.Document.Size()
		unit := laid.Document.Unit()
		opts := &pdfOptions{WidthPt: unit.ToPt(w), HeightPt: unit.ToPt(h)}
		pdf, err := g.pdfConverter.ToPDF(ctx, string(htmlContent), opts)
		if err != nil {
			return nil, fmt.Errorf("converting to PDF: %w", err)
		}
		res.PDF = pdf
	}

	log.Info("labels generated",
		zap.Int("records", res.Records),
		zap.Int("pages", res.Pages),
		zap.Int("rejected", len(res.Rejected)),
		zap.Int("skipped", len(res.Skipped)),
		zap.Int("failed", len(res.RenderErrors)),
		zap.Duration("elapsed", time.Since(start)))
	return res, nil
}

// LoadLayout loads a layout by name from the asset loader, or from a file
// when nameOrPath is a path or ends in .yaml/.yml.
func (g *Generator) LoadLayout(nameOrPath string) (*Layout, error) {
	var (
		data []byte
		err  error
	)
	fromFile := fileutil.IsFilePath(nameOrPath) || fileutil.HasExtension(nameOrPath, ".yaml", ".yml")
	if fromFile {
		data, err = os.ReadFile(nameOrPath) // #nosec G304 -- user-provided path
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("%w: %s", ErrLayoutNotFound, nameOrPath)
			}
			return nil, fmt.Errorf("reading layout %q: %w", nameOrPath, err)
		}
	} else {
		data, err = g.assetLoader.LoadLayout(nameOrPath)
		if err != nil {
			return nil, convertAssetError(err)
		}
	}

	lay, err := ParseLayout(data)
	if err != nil {
		return nil, fmt.Errorf("layout %q: %w", nameOrPath, err)
	}
	if lay.Name == "" {
		lay.Name = strings.TrimSuffix(filepath.Base(nameOrPath), filepath.Ext(nameOrPath))
	}
	return lay, nil
}

// LayoutSource returns the raw YAML of a named layout.
func (g *Generator) LayoutSource(name string) ([]byte, error) {
	data, err := g.assetLoader.LoadLayout(name)
	if err != nil {
		return nil, convertAssetError(err)
	}
	return data, nil
}

// Layouts returns the available layout names, sorted.
func (g *Generator) Layouts() ([]string, error) {
	names, err := g.assetLoader.ListLayouts()
	return names, convertAssetError(err)
}

// Styles returns the available style names, sorted.
func (g *Generator) Styles() ([]string, error) {
	names, err := g.assetLoader.ListStyles()
	return names, convertAssetError(err)
}

// Close releases resources (headless Chrome browser).
func (g *Generator) Close() error {
	if g.pdfConverter != nil {
		return g.pdfConverter.Close()
	}
	return nil
}

// resolveStyle resolves the style input (name, path, or CSS content) to CSS
// content. An empty input selects the default style.
func (g *Generator) resolveStyle() error {
	input := g.cfg.styleInput
	if input == "" {
		input = DefaultStyle
	}

	// File path? (contains / or \)
	if fileutil.IsFilePath(input) {
		content, err := os.ReadFile(input) // #nosec G304 -- user-provided path
		if err != nil {
			return fmt.Errorf("loading style file %q: %w", input, err)
		}
		g.cfg.resolvedStyle = string(content)
		return nil
	}

	// CSS content? (contains {)
	if strings.Contains(input, "{") {
		g.cfg.resolvedStyle = input
		return nil
	}

	css, err := g.assetLoader.LoadStyle(input)
	if err != nil {
		return fmt.Errorf("loading style %q: %w", input, convertAssetError(err))
	}
	g.cfg.resolvedStyle = css
	return nil
}
