package csv2labels

// Notes:
// - ParseLayout covers strict decoding and validator-backed field rules
// - Layout.Validate covers the cross-field rules: page bounds, barcode presence,
//   fonts
// - engineConfig is checked for defaults filled from barcode.DefaultOptions

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/alnah/go-csv2labels/internal/barcode"
	"github.com/alnah/go-csv2labels/internal/document"
	"github.com/alnah/go-csv2labels/internal/layout"
)

func validLayout() *Layout {
	return &Layout{
		Name:     "teste",
		Page:     PageSettings{Width: 10, Height: 7, Unit: UnitCM, Orientation: OrientationLandscape},
		Required: []string{"LOTES"},
		Elements: []Element{
			{Type: ElementBarcode, Field: "LOTES", X: 2, Y: 1, Width: 6, Height: 4},
			{Type: ElementText, Field: "DESCRICAO", X: 1, Y: 6, Width: 8, FontSize: 9, FontFamily: "helvetica", FontStyle: "bold"},
		},
	}
}

// ---------------------------------------------------------------------------
// Layout.Validate
// ---------------------------------------------------------------------------

func TestLayout_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		modify  func(l *Layout)
		wantMsg string
	}{
		{name: "valid", modify: func(*Layout) {}},
		{name: "portrait swaps sides", modify: func(l *Layout) {
			l.Page.Orientation = OrientationPortrait
			l.Elements = l.Elements[:1]
			l.Elements[0].Width, l.Elements[0].Height = 4, 6
		}},
		{name: "no required fields", modify: func(l *Layout) { l.Required = nil }, wantMsg: "required"},
		{name: "blank required field", modify: func(l *Layout) { l.Required = []string{""} }, wantMsg: "required[0]"},
		{name: "no elements", modify: func(l *Layout) { l.Elements = nil }, wantMsg: "elements"},
		{name: "zero page width", modify: func(l *Layout) { l.Page.Width = 0 }, wantMsg: "page.width"},
		{name: "unknown unit", modify: func(l *Layout) { l.Page.Unit = "px" }, wantMsg: "page.unit"},
		{name: "unknown orientation", modify: func(l *Layout) { l.Page.Orientation = "diagonal" }, wantMsg: "page.orientation"},
		{name: "unknown element type", modify: func(l *Layout) { l.Elements[1].Type = "qr" }, wantMsg: "elements[1].type"},
		{name: "element without field", modify: func(l *Layout) { l.Elements[0].Field = "" }, wantMsg: "elements[0].field"},
		{name: "negative x", modify: func(l *Layout) { l.Elements[0].X = -1 }, wantMsg: "elements[0].x"},
		{name: "unknown font style", modify: func(l *Layout) { l.Elements[1].FontStyle = "heavy" }, wantMsg: "fontStyle"},
		{name: "unknown font family", modify: func(l *Layout) { l.Elements[1].FontFamily = "comic" }, wantMsg: "elements[1]"},
		{name: "barcode scale too large", modify: func(l *Layout) { l.Barcode.Scale = 50 }, wantMsg: "barcode.scale"},
		{name: "unsupported symbology", modify: func(l *Layout) { l.Barcode.Symbology = "qr" }, wantMsg: "barcode.symbology"},
		{name: "no barcode element", modify: func(l *Layout) { l.Elements = l.Elements[1:] }, wantMsg: "barcode element"},
		{name: "barcode without size", modify: func(l *Layout) { l.Elements[0].Height = 0 }, wantMsg: "width and height"},
		{name: "barcode past right edge", modify: func(l *Layout) { l.Elements[0].Width = 9 }, wantMsg: "extends past"},
		{name: "text starts outside", modify: func(l *Layout) { l.Elements[1].Y = 8 }, wantMsg: "starts outside"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			l := validLayout()
			tt.modify(l)
			err := l.Validate()
			if tt.wantMsg == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				return
			}
			if !errors.Is(err, ErrInvalidLayout) {
				t.Fatalf("error = %v, want ErrInvalidLayout", err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q does not mention %q", err, tt.wantMsg)
			}
		})
	}
}

func TestLayout_ValidateNil(t *testing.T) {
	t.Parallel()

	var l *Layout
	if err := l.Validate(); !errors.Is(err, ErrInvalidLayout) {
		t.Errorf("error = %v, want ErrInvalidLayout", err)
	}
}

// ---------------------------------------------------------------------------
// ParseLayout
// ---------------------------------------------------------------------------

func TestParseLayout(t *testing.T) {
	t.Parallel()

	t.Run("flow style", func(t *testing.T) {
		t.Parallel()

		l, err := ParseLayout([]byte(`name: lotes
page: {width: 10, height: 7, unit: cm, orientation: landscape}
required: [LOTES]
barcode: {symbology: code128, scale: 3, height: 10, includeText: false, textAlign: left}
elements:
  - {type: barcode, field: LOTES, x: 2, y: 1, width: 6, height: 4}
`))
		if err != nil {
			t.Fatalf("ParseLayout() error = %v", err)
		}
		if l.Barcode.IncludeText == nil || *l.Barcode.IncludeText {
			t.Error("includeText: false was not decoded")
		}
		if l.Barcode.TextAlign != "left" {
			t.Errorf("TextAlign = %q", l.Barcode.TextAlign)
		}
	})

	errorCases := []struct {
		name string
		data string
	}{
		{"empty", ""},
		{"unknown key", "page: {width: 1, height: 1}\nrequired: [A]\nelements: []\ncolour: red\n"},
		{"wrong type", "page: {width: wide, height: 1}\n"},
		{"fails validation", "page: {width: 1, height: 1}\nrequired: [A]\nelements: []\n"},
	}
	for _, tc := range errorCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if _, err := ParseLayout([]byte(tc.data)); !errors.Is(err, ErrInvalidLayout) {
				t.Errorf("error = %v, want ErrInvalidLayout", err)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// engineConfig
// ---------------------------------------------------------------------------

func TestLayout_EngineConfig(t *testing.T) {
	t.Parallel()

	l := validLayout()
	l.Elements = append(l.Elements, Element{Type: ElementText, Field: "QTD", Label: "Qtd: {value}", X: 1, Y: 6.6})

	got := l.engineConfig("Etiquetas")
	want := layout.Config{
		Page: document.Options{
			Orientation: document.Landscape,
			Unit:        document.UnitCM,
			Width:       10,
			Height:      7,
			Title:       "Etiquetas",
		},
		Barcode: barcode.DefaultOptions(),
		Elements: []layout.Element{
			{Type: layout.TypeBarcode, Field: "LOTES", X: 2, Y: 1, Width: 6, Height: 4, FontSize: DefaultFontSize},
			{Type: layout.TypeText, Field: "DESCRICAO", X: 1, Y: 6, Width: 8, FontFamily: "helvetica", FontStyle: "bold", FontSize: 9},
			{Type: layout.TypeText, Field: "QTD", Label: "Qtd: {value}", X: 1, Y: 6.6, FontSize: DefaultFontSize},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("engineConfig() mismatch (-want +got):\n%s", diff)
	}
}

func TestBarcodeSettings_Options(t *testing.T) {
	t.Parallel()

	off := false
	got := BarcodeSettings{Symbology: "CODE128", Scale: 2, Height: 15, IncludeText: &off, TextAlign: "right"}.barcodeOptions()
	want := barcode.Options{Symbology: "code128", Scale: 2, ModuleHeight: 15, IncludeText: false, TextAlign: "right"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("barcodeOptions() mismatch (-want +got):\n%s", diff)
	}
}
