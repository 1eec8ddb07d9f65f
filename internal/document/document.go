// Package document holds the paginated label document: fixed-size pages with
// absolutely placed images and text, serialized to print-ready HTML.
//
// Coordinates are in the document unit with the origin at the top-left corner.
// Text is placed by the baseline of its first line, and following lines advance
// by LineHeightFactor times the font size.
package document

import (
	"errors"
	"fmt"
	"slices"

	"github.com/alnah/go-csv2labels/internal/fonts"
)

// LineHeightFactor is the distance between text baselines relative to font size.
const LineHeightFactor = 1.15

// Sentinel errors.
var (
	ErrInvalidOptions = errors.New("invalid document options")
	ErrInvalidElement = errors.New("invalid element")
)

// Options sets the page geometry. Width and Height are given in Unit; with
// Landscape the longer side is horizontal, with Portrait it is vertical.
type Options struct {
	Orientation Orientation
	Unit        Unit
	Width       float64
	Height      float64
	Title       string
}

// Kind distinguishes placed elements.
type Kind string

// Element kinds.
const (
	KindImage Kind = "image"
	KindText  Kind = "text"
)

// TextStyle selects the face used for text.
type TextStyle struct {
	Family string  // layout family name, e.g. "helvetica"
	Style  string  // normal, bold, italic, bolditalic
	Size   float64 // points
}

// Element is one item placed on a page.
type Element struct {
	Kind Kind
	X, Y float64
	// Width and Height are set for images.
	Width, Height float64
	// PNG holds image data.
	PNG []byte
	// Lines, Font, Style and Size describe text.
	Lines []string
	Font  string
	Style fonts.Style
	Size  float64
}

// Page is one label.
type Page struct {
	Elements []Element
}

// Document is an ordered list of equally sized pages. It is not safe for
// concurrent use.
type Document struct {
	unit   Unit
	width  float64
	height float64
	title  string
	pages  []*Page
	used   map[*fonts.Font]bool
}

// New creates a document holding one empty page.
func New(opts Options) (*Document, error) {
	unit := opts.Unit
	if unit == "" {
		unit = UnitMM
	}
	if _, ok := ptPerUnit[unit]; !ok {
		return nil, fmt.Errorf("%w: unit %q", ErrInvalidOptions, unit)
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("%w: page size %gx%g", ErrInvalidOptions, opts.Width, opts.Height)
	}

	w, h := opts.Width, opts.Height
	switch opts.Orientation {
	case Landscape:
		if w < h {
			w, h = h, w
		}
	case Portrait, "":
		if w > h {
			w, h = h, w
		}
	default:
		return nil, fmt.Errorf("%w: orientation %q", ErrInvalidOptions, opts.Orientation)
	}

	return &Document{
		unit:   unit,
		width:  w,
		height: h,
		title:  opts.Title,
		pages:  []*Page{{}},
		used:   make(map[*fonts.Font]bool),
	}, nil
}

// AddPage appends a blank page that becomes the current page.
func (d *Document) AddPage() {
	d.pages = append(d.pages, &Page{})
}

// PageCount returns the number of pages.
func (d *Document) PageCount() int {
	return len(d.pages)
}

// Unit returns the document unit.
func (d *Document) Unit() Unit {
	return d.unit
}

// Size returns the page width and height in the document unit.
func (d *Document) Size() (width, height float64) {
	return d.width, d.height
}

// Pages returns a copy of all pages.
func (d *Document) Pages() []Page {
	out := make([]Page, len(d.pages))
	for i, p := range d.pages {
		out[i] = Page{Elements: slices.Clone(p.Elements)}
	}
	return out
}

func (d *Document) current() *Page {
	return d.pages[len(d.pages)-1]
}

// PlaceImage puts PNG data on the current page in the rectangle (x, y, w, h).
func (d *Document) PlaceImage(png []byte, x, y, w, h float64) error {
	if len(png) == 0 {
		return fmt.Errorf("%w: empty image", ErrInvalidElement)
	}
	if w <= 0 || h <= 0 {
		return fmt.Errorf("%w: image size %gx%g", ErrInvalidElement, w, h)
	}
	p := d.current()
	p.Elements = append(p.Elements, Element{
		Kind:   KindImage,
		X:      x,
		Y:      y,
		Width:  w,
		Height: h,
		PNG:    slices.Clone(png),
	})
	return nil
}

// PlaceText puts lines on the current page with the first baseline at (x, y).
// No element is added when lines is empty.
func (d *Document) PlaceText(lines []string, x, y float64, style TextStyle) error {
	f, err := d.font(style)
	if err != nil {
		return err
	}
	if len(lines) == 0 {
		return nil
	}
	d.used[f] = true
	p := d.current()
	p.Elements = append(p.Elements, Element{
		Kind:  KindText,
		X:     x,
		Y:     y,
		Lines: slices.Clone(lines),
		Font:  f.Family,
		Style: f.Style,
		Size:  style.Size,
	})
	return nil
}

// SplitTextToWidth wraps text to lines no wider than width document units.
func (d *Document) SplitTextToWidth(text string, width float64, style TextStyle) ([]string, error) {
	f, err := d.font(style)
	if err != nil {
		return nil, err
	}
	return fonts.Split(f, text, style.Size, d.unit.ToPt(width))
}

func (d *Document) font(style TextStyle) (*fonts.Font, error) {
	if style.Size <= 0 {
		return nil, fmt.Errorf("%w: font size %g", ErrInvalidElement, style.Size)
	}
	f, err := fonts.Lookup(style.Family, style.Style)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidElement, err)
	}
	return f, nil
}
