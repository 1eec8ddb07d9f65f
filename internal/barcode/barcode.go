// Package barcode renders label barcodes to PNG images.
//
// Only Code 128 is supported. Images are produced at 72 pixels per inch
// multiplied by the scale factor, so one module is Scale pixels wide and the
// bar height follows the requested height in millimeters.
package barcode

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// SymbologyCode128 is the only supported symbology.
const SymbologyCode128 = "code128"

// Caption alignments.
const (
	AlignLeft   = "left"
	AlignCenter = "center"
	AlignRight  = "right"
)

const (
	mmToPt = 72.0 / 25.4

	// captionSizePt and captionGapPt are multiplied by the scale.
	captionSizePt = 10
	captionGapPt  = 2

	maxPayloadRunes = 80
	maxScale        = 20
)

// Sentinel errors. Every rendering failure wraps ErrRender.
var (
	ErrRender               = errors.New("barcode render failed")
	ErrEmptyPayload         = errors.New("empty payload")
	ErrUnsupportedSymbology = errors.New("unsupported symbology")
	ErrInvalidOptions       = errors.New("invalid barcode options")
)

// Options controls barcode rendering.
type Options struct {
	Symbology    string
	Scale        int
	ModuleHeight float64 // bar height in millimeters
	IncludeText  bool
	TextAlign    string
}

// DefaultOptions returns the standard label settings: Code 128, scale 3,
// 10 mm bars and a centered caption.
func DefaultOptions() Options {
	return Options{
		Symbology:    SymbologyCode128,
		Scale:        3,
		ModuleHeight: 10,
		IncludeText:  true,
		TextAlign:    AlignCenter,
	}
}

// Validate checks option bounds.
func (o Options) Validate() error {
	if !strings.EqualFold(o.Symbology, SymbologyCode128) {
		return fmt.Errorf("%w: %q", ErrUnsupportedSymbology, o.Symbology)
	}
	if o.Scale < 1 || o.Scale > maxScale {
		return fmt.Errorf("%w: scale %d outside 1..%d", ErrInvalidOptions, o.Scale, maxScale)
	}
	if o.ModuleHeight <= 0 {
		return fmt.Errorf("%w: height must be positive, got %g", ErrInvalidOptions, o.ModuleHeight)
	}
	switch o.TextAlign {
	case "", AlignLeft, AlignCenter, AlignRight:
	default:
		return fmt.Errorf("%w: text align %q", ErrInvalidOptions, o.TextAlign)
	}
	return nil
}

// Image is a rendered barcode.
type Image struct {
	PNG    []byte
	Width  int // pixels
	Height int // pixels
}

// Renderer turns a payload into a barcode image.
type Renderer interface {
	Render(ctx context.Context, payload string, opts Options) (*Image, error)
}

// Code128 renders Code 128 barcodes. The zero value is ready to use and safe
// for concurrent use.
type Code128 struct{}

// NewCode128 returns a Code 128 renderer.
func NewCode128() *Code128 {
	return &Code128{}
}

// Render encodes payload and returns the PNG image.
func (c *Code128) Render(ctx context.Context, payload string, opts Options) (*Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRender, err)
	}
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRender, err)
	}
	if payload == "" {
		return nil, fmt.Errorf("%w: %w", ErrRender, ErrEmptyPayload)
	}
	if n := utf8.RuneCountInString(payload); n > maxPayloadRunes {
		return nil, fmt.Errorf("%w: payload has %d characters, max %d", ErrRender, n, maxPayloadRunes)
	}

	for i, r := range payload {
		if r > unicode.MaxASCII {
			return nil, fmt.Errorf("%w: %q: character %q at byte %d is not encodable", ErrRender, payload, r, i)
		}
	}

	symbol, err := code128.Encode(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrRender, payload, err)
	}

	barWidth := symbol.Bounds().Dx() * opts.Scale
	barHeight := int(math.Round(opts.ModuleHeight * mmToPt * float64(opts.Scale)))
	if barHeight < 1 {
		barHeight = 1
	}

	scaled, err := barcode.Scale(symbol, barWidth, barHeight)
	if err != nil {
		return nil, fmt.Errorf("%w: scaling: %v", ErrRender, err)
	}

	canvas, err := compose(scaled, payload, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRender, err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas); err != nil {
		return nil, fmt.Errorf("%w: encoding png: %v", ErrRender, err)
	}

	b := canvas.Bounds()
	return &Image{PNG: buf.Bytes(), Width: b.Dx(), Height: b.Dy()}, nil
}

// compose draws the bars on a white canvas with the optional caption below.
func compose(bars image.Image, caption string, opts Options) (*image.RGBA, error) {
	barBounds := bars.Bounds()
	width, height := barBounds.Dx(), barBounds.Dy()

	var face font.Face
	var textWidth int
	if opts.IncludeText {
		var err error
		face, err = captionFace(float64(captionSizePt * opts.Scale))
		if err != nil {
			return nil, err
		}
		defer face.Close()

		textWidth = font.MeasureString(face, caption).Ceil()
		m := face.Metrics()
		height += captionGapPt*opts.Scale + (m.Ascent + m.Descent).Ceil()
		width = max(width, textWidth)
	}

	canvas := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	barX := (width - barBounds.Dx()) / 2
	draw.Draw(canvas, barBounds.Add(image.Pt(barX, 0)), bars, barBounds.Min, draw.Src)

	if face != nil {
		x := 0
		switch opts.TextAlign {
		case AlignRight:
			x = width - textWidth
		case AlignLeft:
		default:
			x = (width - textWidth) / 2
		}
		baseline := barBounds.Dy() + captionGapPt*opts.Scale + face.Metrics().Ascent.Ceil()
		d := &font.Drawer{
			Dst:  canvas,
			Src:  image.NewUniform(color.Black),
			Face: face,
			Dot:  fixed.P(x, baseline),
		}
		d.DrawString(caption)
	}

	return canvas, nil
}

var captionFont = sync.OnceValues(func() (*opentype.Font, error) {
	return opentype.Parse(goregular.TTF)
})

func captionFace(sizePx float64) (font.Face, error) {
	f, err := captionFont()
	if err != nil {
		return nil, fmt.Errorf("loading caption font: %w", err)
	}
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    sizePx,
		DPI:     72,
		Hinting: font.HintingNone,
	})
}
