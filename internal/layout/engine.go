// Package layout turns accepted records into label pages.
//
// The engine walks records strictly in order. The first record uses the
// document's initial page and every later record adds one, so page k always
// holds record k. Per-field problems never stop a run: an empty field skips its
// element and a rendering failure is recorded while the rest of the page is
// still placed.
package layout

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/alnah/go-csv2labels/internal/barcode"
	"github.com/alnah/go-csv2labels/internal/document"
	"github.com/alnah/go-csv2labels/internal/records"
)

// ErrNoRecords is returned when Run receives no records.
var ErrNoRecords = errors.New("no records to lay out")

// Skip reasons.
const (
	SkipMissing = "missing"
	SkipEmpty   = "empty"
)

// Skip records an element left off a page because its field had no value.
type Skip struct {
	Position int
	Line     int
	Field    string
	Type     ElementType
	Reason   string
}

func (s Skip) String() string {
	return fmt.Sprintf("row %d: %s %s skipped (%s)", s.Position, s.Type, s.Field, s.Reason)
}

// RenderError records an element that failed to render. The page keeps its
// other elements.
type RenderError struct {
	Position int
	Line     int
	Field    string
	Err      error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("row %d: field %s: %v", e.Position, e.Field, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// Result is the outcome of a run.
type Result struct {
	Document     *document.Document
	Skipped      []Skip
	RenderErrors []*RenderError
}

// ProgressFunc is called before each record is laid out; index is 0-based.
type ProgressFunc func(index, total int, rec records.Record)

// Engine lays out records with a barcode renderer.
type Engine struct {
	renderer barcode.Renderer
	logger   *zap.Logger
	progress ProgressFunc
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the diagnostics logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithProgress sets a callback invoked before each record.
func WithProgress(fn ProgressFunc) Option {
	return func(e *Engine) {
		e.progress = fn
	}
}

// New creates an engine. A nil renderer selects the Code 128 renderer.
func New(r barcode.Renderer, opts ...Option) *Engine {
	if r == nil {
		r = barcode.NewCode128()
	}
	e := &Engine{renderer: r, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run lays out recs, one page per record, in order. The context is checked
// between records.
func (e *Engine) Run(ctx context.Context, recs []records.Record, cfg Config) (*Result, error) {
	if len(recs) == 0 {
		return nil, ErrNoRecords
	}
	if err := cfg.Check(); err != nil {
		return nil, err
	}

	doc, err := document.New(cfg.Page)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	res := &Result{Document: doc}
	for i, rec := range recs {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("layout stopped at row %d: %w", rec.Position, err)
		}
		if i > 0 {
			doc.AddPage()
		}
		if e.progress != nil {
			e.progress(i, len(recs), rec)
		}

		for _, el := range cfg.Elements {
			switch el.Type {
			case TypeBarcode:
				e.placeBarcode(ctx, res, rec, el, cfg.Barcode)
			case TypeText:
				e.placeText(res, rec, el)
			}
		}
	}

	e.logger.Debug("layout complete",
		zap.Int("pages", doc.PageCount()),
		zap.Int("skipped", len(res.Skipped)),
		zap.Int("render_errors", len(res.RenderErrors)))

	return res, nil
}

func (e *Engine) placeBarcode(ctx context.Context, res *Result, rec records.Record, el Element, opts barcode.Options) {
	raw, ok := rec.Get(el.Field)
	payload := strings.TrimSpace(raw)
	if !ok || payload == "" {
		e.skip(res, rec, el, ok)
		return
	}

	img, err := e.renderer.Render(ctx, payload, opts)
	if err == nil && img == nil {
		err = fmt.Errorf("%w: renderer returned no image", barcode.ErrRender)
	}
	if err == nil {
		err = res.Document.PlaceImage(img.PNG, el.X, el.Y, el.Width, el.Height)
	}
	if err != nil {
		e.fail(res, rec, el, err)
	}
}

func (e *Engine) placeText(res *Result, rec records.Record, el Element) {
	value, ok := rec.Get(el.Field)
	if !ok || strings.TrimSpace(value) == "" {
		e.skip(res, rec, el, ok)
		return
	}

	style := document.TextStyle{Family: el.FontFamily, Style: el.FontStyle, Size: el.FontSize}
	width := el.Width
	if width <= 0 {
		pageWidth, _ := res.Document.Size()
		width = pageWidth - el.X
	}

	lines, err := res.Document.SplitTextToWidth(Expand(el.Label, rec, value), width, style)
	if err == nil {
		err = res.Document.PlaceText(lines, el.X, el.Y, style)
	}
	if err != nil {
		e.fail(res, rec, el, err)
	}
}

func (e *Engine) skip(res *Result, rec records.Record, el Element, present bool) {
	reason := SkipEmpty
	if !present {
		reason = SkipMissing
	}
	res.Skipped = append(res.Skipped, Skip{
		Position: rec.Position,
		Line:     rec.Line,
		Field:    el.Field,
		Type:     el.Type,
		Reason:   reason,
	})
	e.logger.Warn("element skipped",
		zap.Int("row", rec.Position),
		zap.String("field", el.Field),
		zap.String("type", string(el.Type)),
		zap.String("reason", reason))
}

func (e *Engine) fail(res *Result, rec records.Record, el Element, err error) {
	res.RenderErrors = append(res.RenderErrors, &RenderError{
		Position: rec.Position,
		Line:     rec.Line,
		Field:    el.Field,
		Err:      err,
	})
	e.logger.Error("element render failed",
		zap.Int("row", rec.Position),
		zap.Int("line", rec.Line),
		zap.String("field", el.Field),
		zap.String("type", string(el.Type)),
		zap.Error(err))
}

var placeholder = regexp.MustCompile(`\{([^{}]+)\}`)

// Expand fills a label template. "{value}" becomes value, "{NAME}" the raw
// value of column NAME, and unknown placeholders are kept verbatim.
func Expand(label string, rec records.Record, value string) string {
	if label == "" {
		label = DefaultLabel
	}
	return placeholder.ReplaceAllStringFunc(label, func(m string) string {
		name := m[1 : len(m)-1]
		if name == "value" {
			return value
		}
		if v, ok := rec.Get(name); ok {
			return v
		}
		return m
	})
}
