package layout

import (
	"errors"
	"fmt"

	"github.com/alnah/go-csv2labels/internal/barcode"
	"github.com/alnah/go-csv2labels/internal/document"
	"github.com/alnah/go-csv2labels/internal/fonts"
)

// ErrInvalidConfig is returned when a configuration cannot drive a run.
var ErrInvalidConfig = errors.New("invalid layout configuration")

// ElementType selects how an element renders its field.
type ElementType string

// Element types.
const (
	TypeBarcode ElementType = "barcode"
	TypeText    ElementType = "text"
)

// DefaultLabel renders the element's own field value.
const DefaultLabel = "{value}"

// Element maps one record field to a placement on the page.
type Element struct {
	Type  ElementType
	Field string
	// Label is the text template; "{value}" is the field value and "{NAME}"
	// any other column. Empty means DefaultLabel.
	Label string

	X, Y float64
	// Width and Height bound barcodes. Text wraps at Width, or at the right
	// page edge when Width is zero.
	Width, Height float64

	FontFamily string
	FontStyle  string
	FontSize   float64 // points
}

// Config is everything the engine needs besides the records.
type Config struct {
	Page     document.Options
	Barcode  barcode.Options
	Elements []Element
}

// Check verifies the configuration can be applied without consulting data.
func (c Config) Check() error {
	if len(c.Elements) == 0 {
		return fmt.Errorf("%w: no elements", ErrInvalidConfig)
	}
	hasBarcode := false
	for i, el := range c.Elements {
		if el.Field == "" {
			return fmt.Errorf("%w: element %d has no field", ErrInvalidConfig, i+1)
		}
		switch el.Type {
		case TypeBarcode:
			hasBarcode = true
			if el.Width <= 0 || el.Height <= 0 {
				return fmt.Errorf("%w: barcode %s needs width and height", ErrInvalidConfig, el.Field)
			}
		case TypeText:
			if el.FontSize <= 0 {
				return fmt.Errorf("%w: text %s needs a font size", ErrInvalidConfig, el.Field)
			}
			if _, err := fonts.Lookup(el.FontFamily, el.FontStyle); err != nil {
				return fmt.Errorf("%w: text %s: %w", ErrInvalidConfig, el.Field, err)
			}
		default:
			return fmt.Errorf("%w: element %d has unknown type %q", ErrInvalidConfig, i+1, el.Type)
		}
	}
	if hasBarcode {
		if err := c.Barcode.Validate(); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}
	return nil
}
