// Package fonts provides the embedded label typefaces and the text metrics used
// to wrap label text before it is placed on a page.
//
// Labels use the Go font family (golang.org/x/image/font/gofont). The same TTF
// bytes are measured here and embedded in the generated HTML, so the line breaks
// computed by Split match what headless Chrome prints.
//
// The family names accepted in layouts follow the PDF base fonts users already
// know: "helvetica" selects Go Sans and "courier" selects Go Mono.
package fonts

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Canonical family names.
const (
	FamilySans = "helvetica"
	FamilyMono = "courier"
)

// Style selects weight and slant.
type Style string

// Supported styles.
const (
	StyleNormal     Style = "normal"
	StyleBold       Style = "bold"
	StyleItalic     Style = "italic"
	StyleBoldItalic Style = "bolditalic"
)

// Sentinel errors for font lookup.
var (
	ErrUnknownFamily = errors.New("unknown font family")
	ErrUnknownStyle  = errors.New("unknown font style")
	ErrInvalidSize   = errors.New("font size must be positive")
)

// dpi makes one pixel of a face equal one PDF point.
const dpi = 72

// familyAliases maps accepted layout names to canonical families.
var familyAliases = map[string]string{
	"":           FamilySans,
	"helvetica":  FamilySans,
	"arial":      FamilySans,
	"sans":       FamilySans,
	"sans-serif": FamilySans,
	"go":         FamilySans,
	"courier":    FamilyMono,
	"mono":       FamilyMono,
	"monospace":  FamilyMono,
	"gomono":     FamilyMono,
}

// Font is one embedded face of the label families.
type Font struct {
	Family    string // canonical family (FamilySans or FamilyMono)
	Style     Style
	CSSFamily string // font-family name used in generated CSS
	ttf       []byte
	parsed    *opentype.Font
}

type key struct {
	family string
	style  Style
}

type source struct {
	css string
	ttf []byte
}

var sources = map[key]source{
	{FamilySans, StyleNormal}:     {"Label Sans", goregular.TTF},
	{FamilySans, StyleBold}:       {"Label Sans", gobold.TTF},
	{FamilySans, StyleItalic}:     {"Label Sans", goitalic.TTF},
	{FamilySans, StyleBoldItalic}: {"Label Sans", gobolditalic.TTF},
	{FamilyMono, StyleNormal}:     {"Label Mono", gomono.TTF},
	{FamilyMono, StyleBold}:       {"Label Mono", gomonobold.TTF},
	{FamilyMono, StyleItalic}:     {"Label Mono", gomonoitalic.TTF},
	{FamilyMono, StyleBoldItalic}: {"Label Mono", gomonobolditalic.TTF},
}

var registry = sync.OnceValues(func() (map[key]*Font, error) {
	out := make(map[key]*Font, len(sources))
	for k, src := range sources {
		parsed, err := opentype.Parse(src.ttf)
		if err != nil {
			return nil, fmt.Errorf("parsing %s %s: %w", k.family, k.style, err)
		}
		out[k] = &Font{
			Family:    k.family,
			Style:     k.style,
			CSSFamily: src.css,
			ttf:       src.ttf,
			parsed:    parsed,
		}
	}
	return out, nil
})

// NormalizeFamily maps a layout family name to its canonical name.
func NormalizeFamily(family string) (string, error) {
	canonical, ok := familyAliases[strings.ToLower(strings.TrimSpace(family))]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownFamily, family)
	}
	return canonical, nil
}

// ParseStyle maps a layout style name ("" means normal) to a Style.
func ParseStyle(style string) (Style, error) {
	s := Style(strings.ToLower(strings.TrimSpace(style)))
	switch s {
	case "":
		return StyleNormal, nil
	case StyleNormal, StyleBold, StyleItalic, StyleBoldItalic:
		return s, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStyle, style)
}

// Lookup returns the face for a family alias and style name.
func Lookup(family, style string) (*Font, error) {
	canonical, err := NormalizeFamily(family)
	if err != nil {
		return nil, err
	}
	st, err := ParseStyle(style)
	if err != nil {
		return nil, err
	}
	all, err := registry()
	if err != nil {
		return nil, err
	}
	return all[key{canonical, st}], nil
}

// Families lists the accepted family names, sorted.
func Families() []string {
	names := make([]string, 0, len(familyAliases))
	for name := range familyAliases {
		if name != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// TTF returns the raw TrueType bytes for embedding.
func (f *Font) TTF() []byte {
	return f.ttf
}

// CSSWeight returns the CSS font-weight for the face.
func (f *Font) CSSWeight() string {
	if f.Style == StyleBold || f.Style == StyleBoldItalic {
		return "bold"
	}
	return "normal"
}

// CSSStyle returns the CSS font-style for the face.
func (f *Font) CSSStyle() string {
	if f.Style == StyleItalic || f.Style == StyleBoldItalic {
		return "italic"
	}
	return "normal"
}

// NewFace returns a face at sizePt points. Faces are not safe for concurrent use.
func (f *Font) NewFace(sizePt float64) (font.Face, error) {
	if sizePt <= 0 {
		return nil, fmt.Errorf("%w: %g", ErrInvalidSize, sizePt)
	}
	return opentype.NewFace(f.parsed, &opentype.FaceOptions{
		Size:    sizePt,
		DPI:     dpi,
		Hinting: font.HintingNone,
	})
}

// Width returns the advance width of text in points.
func (f *Font) Width(text string, sizePt float64) (float64, error) {
	face, err := f.NewFace(sizePt)
	if err != nil {
		return 0, err
	}
	defer face.Close()
	return toPt(font.MeasureString(face, text)), nil
}

// Metrics returns ascent and descent in points for sizePt.
func (f *Font) Metrics(sizePt float64) (ascent, descent float64, err error) {
	face, err := f.NewFace(sizePt)
	if err != nil {
		return 0, 0, err
	}
	defer face.Close()
	m := face.Metrics()
	return toPt(m.Ascent), toPt(m.Descent), nil
}

func toPt(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
