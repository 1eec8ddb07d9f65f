package csv2labels

import (
	"fmt"
	"strings"

	"github.com/alnah/go-csv2labels/internal/barcode"
	"github.com/alnah/go-csv2labels/internal/document"
	"github.com/alnah/go-csv2labels/internal/fonts"
	"github.com/alnah/go-csv2labels/internal/layout"
	"github.com/alnah/go-csv2labels/internal/records"
	"github.com/alnah/go-csv2labels/internal/validation"
	"github.com/alnah/go-csv2labels/internal/yamlutil"
)

// Unit constants for page and element coordinates.
const (
	UnitMM = "mm"
	UnitCM = "cm"
	UnitIn = "in"
	UnitPt = "pt"
)

// Orientation constants.
const (
	OrientationPortrait  = "portrait"
	OrientationLandscape = "landscape"
)

// Element type constants.
const (
	ElementBarcode = "barcode"
	ElementText    = "text"
)

// DefaultFontSize is used for text elements that do not set fontSize.
const DefaultFontSize = 10.0

// Diagnostics and renderer types shared with the internal packages.
type (
	// ParseWarning reports a tolerated problem in the CSV input.
	ParseWarning = records.ParseWarning
	// MissingFieldWarning reports a row dropped for a missing required field.
	MissingFieldWarning = records.MissingFieldWarning
	// Skip reports an element left off a page because its field was empty.
	Skip = layout.Skip
	// RenderError reports an element that failed to render.
	RenderError = layout.RenderError
	// BarcodeRenderer produces barcode images; see WithBarcodeRenderer.
	BarcodeRenderer = barcode.Renderer
	// BarcodeOptions controls barcode rendering.
	BarcodeOptions = barcode.Options
	// BarcodeImage is a rendered barcode.
	BarcodeImage = barcode.Image
)

// PageSettings sets the label size. Width and Height are given in Unit; the
// orientation decides which side is horizontal.
type PageSettings struct {
	Width       float64 `yaml:"width" validate:"gt=0"`
	Height      float64 `yaml:"height" validate:"gt=0"`
	Unit        string  `yaml:"unit" validate:"omitempty,oneof=mm cm in pt"`
	Orientation string  `yaml:"orientation" validate:"omitempty,oneof=portrait landscape"`
}

// size returns the horizontal and vertical page extents.
func (p PageSettings) size() (w, h float64) {
	w, h = p.Width, p.Height
	if p.Orientation == OrientationLandscape {
		if w < h {
			w, h = h, w
		}
	} else if w > h {
		w, h = h, w
	}
	return w, h
}

// BarcodeSettings applies to every barcode element of a layout. Zero values
// take the defaults: Code 128, scale 3, 10 mm bars, centered caption.
type BarcodeSettings struct {
	Symbology   string  `yaml:"symbology" validate:"omitempty,oneof=code128"`
	Scale       int     `yaml:"scale" validate:"omitempty,min=1,max=20"`
	Height      float64 `yaml:"height" validate:"omitempty,gt=0"` // bar height in millimeters
	IncludeText *bool   `yaml:"includeText"`
	TextAlign   string  `yaml:"textAlign" validate:"omitempty,oneof=left center right"`
}

// Element places one record field on the label.
type Element struct {
	Type  string `yaml:"type" validate:"required,oneof=barcode text"`
	Field string `yaml:"field" validate:"required"`
	// Label is the text template for text elements: "{value}" is the field,
	// "{NAME}" any other column.
	Label  string  `yaml:"label,omitempty"`
	X      float64 `yaml:"x" validate:"gte=0"`
	Y      float64 `yaml:"y" validate:"gte=0"`
	Width  float64 `yaml:"width,omitempty" validate:"gte=0"`
	Height float64 `yaml:"height,omitempty" validate:"gte=0"`

	FontSize   float64 `yaml:"fontSize,omitempty" validate:"omitempty,gt=0"`
	FontFamily string  `yaml:"fontFamily,omitempty"`
	FontStyle  string  `yaml:"fontStyle,omitempty" validate:"omitempty,oneof=normal bold italic bolditalic"`
}

// Layout describes a label: its page, the fields a row must carry to be
// printed, and the elements placed on each page in order.
type Layout struct {
	Name        string          `yaml:"name"`
	Description string          `yaml:"description,omitempty"`
	Page        PageSettings    `yaml:"page"`
	Required    []string        `yaml:"required" validate:"min=1,dive,required"`
	Barcode     BarcodeSettings `yaml:"barcode,omitempty"`
	Elements    []Element       `yaml:"elements" validate:"min=1,dive"`
}

// ParseLayout decodes and validates a YAML layout. Unknown keys are errors.
func ParseLayout(data []byte) (*Layout, error) {
	var l Layout
	if err := yamlutil.UnmarshalStrict(data, &l); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLayout, err)
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return &l, nil
}

// Validate checks the layout can be applied to any record.
func (l *Layout) Validate() error {
	if l == nil {
		return fmt.Errorf("%w: nil layout", ErrInvalidLayout)
	}
	if err := validation.Struct(l); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidLayout, err)
	}

	w, h := l.Page.size()
	hasBarcode := false
	for i, el := range l.Elements {
		name := fmt.Sprintf("elements[%d] (%s)", i, el.Field)
		if el.X >= w || el.Y > h {
			return fmt.Errorf("%w: %s starts outside the %gx%g page", ErrInvalidLayout, name, w, h)
		}
		if el.X+el.Width > w || el.Y+el.Height > h {
			return fmt.Errorf("%w: %s extends past the %gx%g page", ErrInvalidLayout, name, w, h)
		}
		switch el.Type {
		case ElementBarcode:
			hasBarcode = true
			if el.Width <= 0 || el.Height <= 0 {
				return fmt.Errorf("%w: %s: barcode needs width and height", ErrInvalidLayout, name)
			}
		case ElementText:
			if _, err := fonts.Lookup(el.FontFamily, el.FontStyle); err != nil {
				return fmt.Errorf("%w: %s: %v", ErrInvalidLayout, name, err)
			}
		}
	}
	if !hasBarcode {
		return fmt.Errorf("%w: at least one barcode element is required", ErrInvalidLayout)
	}
	return nil
}

// barcodeOptions fills unset settings with barcode.DefaultOptions.
func (b BarcodeSettings) barcodeOptions() barcode.Options {
	opts := barcode.DefaultOptions()
	if b.Symbology != "" {
		opts.Symbology = strings.ToLower(b.Symbology)
	}
	if b.Scale > 0 {
		opts.Scale = b.Scale
	}
	if b.Height > 0 {
		opts.ModuleHeight = b.Height
	}
	if b.IncludeText != nil {
		opts.IncludeText = *b.IncludeText
	}
	if b.TextAlign != "" {
		opts.TextAlign = b.TextAlign
	}
	return opts
}

// engineConfig converts the layout to the engine's configuration.
func (l *Layout) engineConfig(title string) layout.Config {
	cfg := layout.Config{
		Page: document.Options{
			Orientation: document.Orientation(l.Page.Orientation),
			Unit:        document.Unit(l.Page.Unit),
			Width:       l.Page.Width,
			Height:      l.Page.Height,
			Title:       title,
		},
		Barcode:  l.Barcode.barcodeOptions(),
		Elements: make([]layout.Element, len(l.Elements)),
	}
	for i, el := range l.Elements {
		size := el.FontSize
		if size == 0 {
			size = DefaultFontSize
		}
		cfg.Elements[i] = layout.Element{
			Type:       layout.ElementType(el.Type),
			Field:      el.Field,
			Label:      el.Label,
			X:          el.X,
			Y:          el.Y,
			Width:      el.Width,
			Height:     el.Height,
			FontFamily: el.FontFamily,
			FontStyle:  el.FontStyle,
			FontSize:   size,
		}
	}
	return cfg
}

// Input contains generation parameters.
type Input struct {
	CSV       []byte   // CSV file content (required)
	Layout    *Layout  // Label layout (optional, nil = built-in "lotes")
	Required  []string // Overrides Layout.Required when not empty
	Delimiter rune     // Field delimiter (optional, 0 = detect)
	CSS       string   // Extra CSS appended after the style (optional)
	Title     string   // HTML document title (optional)
	HTMLOnly  bool     // Skip PDF output
}

// GenerateResult is the output of a run and every diagnostic it produced.
type GenerateResult struct {
	RunID string
	PDF   []byte // nil when Input.HTMLOnly is set
	HTML  []byte

	Records int // data rows parsed
	Pages   int // one per accepted row

	ParseWarnings []ParseWarning
	Rejected      []MissingFieldWarning
	Skipped       []Skip
	RenderErrors  []*RenderError
}
