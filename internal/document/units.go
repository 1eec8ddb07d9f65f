package document

import (
	"fmt"
	"strings"
)

// Unit is a length unit for page coordinates.
type Unit string

// Supported units.
const (
	UnitMM Unit = "mm"
	UnitCM Unit = "cm"
	UnitIn Unit = "in"
	UnitPt Unit = "pt"
)

var ptPerUnit = map[Unit]float64{
	UnitMM: 72 / 25.4,
	UnitCM: 72 / 2.54,
	UnitIn: 72,
	UnitPt: 1,
}

// ParseUnit validates a unit name; empty means millimeters.
func ParseUnit(s string) (Unit, error) {
	u := Unit(strings.ToLower(strings.TrimSpace(s)))
	if u == "" {
		return UnitMM, nil
	}
	if _, ok := ptPerUnit[u]; !ok {
		return "", fmt.Errorf("%w: unit %q", ErrInvalidOptions, s)
	}
	return u, nil
}

// ToPt converts v in unit u to points.
func (u Unit) ToPt(v float64) float64 {
	return v * ptPerUnit[u]
}

// FromPt converts v points to unit u.
func (u Unit) FromPt(v float64) float64 {
	return v / ptPerUnit[u]
}

// Orientation of the page.
type Orientation string

// Supported orientations.
const (
	Portrait  Orientation = "portrait"
	Landscape Orientation = "landscape"
)

// ParseOrientation validates an orientation name; empty means portrait.
func ParseOrientation(s string) (Orientation, error) {
	o := Orientation(strings.ToLower(strings.TrimSpace(s)))
	switch o {
	case "":
		return Portrait, nil
	case Portrait, Landscape:
		return o, nil
	}
	return "", fmt.Errorf("%w: orientation %q", ErrInvalidOptions, s)
}
