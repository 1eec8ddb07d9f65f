package document

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html/template"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/alnah/go-csv2labels/internal/fonts"
)

var pageTemplate = template.Must(template.New("labels").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
{{.CSS}}
</style>
</head>
<body>
{{- range .Pages}}
<section class="label" style="{{$.PageStyle}}">
{{- range .}}
{{- if .Src}}
<img class="barcode" src="{{.Src}}" style="{{.Style}}" alt="">
{{- else}}
<div class="text" style="{{.Style}}">
{{- range .Lines}}<div class="line">{{.}}</div>{{end -}}
</div>
{{- end}}
{{- end}}
</section>
{{- end}}
</body>
</html>
`))

type htmlPage struct {
	Title     string
	CSS       template.CSS
	PageStyle template.CSS
	Pages     [][]htmlElement
}

type htmlElement struct {
	Src   template.URL
	Style template.CSS
	Lines []string
}

// RenderHTML serializes the document to a standalone HTML page. css is
// appended after the generated page and font rules. The output depends only
// on the document content, so equal documents render to equal bytes.
func (d *Document) RenderHTML(css string) ([]byte, error) {
	wPt, hPt := d.unit.ToPt(d.width), d.unit.ToPt(d.height)

	var sheet strings.Builder
	fmt.Fprintf(&sheet, "@page { size: %spt %spt; margin: 0; }\n", num(wPt), num(hPt))
	sheet.WriteString(d.fontFaceCSS())
	sheet.WriteString(css)

	data := htmlPage{
		Title:     d.title,
		CSS:       template.CSS(sheet.String()),
		PageStyle: template.CSS(fmt.Sprintf("width: %spt; height: %spt;", num(wPt), num(hPt))),
		Pages:     make([][]htmlElement, len(d.pages)),
	}

	for i, p := range d.pages {
		elems := make([]htmlElement, 0, len(p.Elements))
		for _, e := range p.Elements {
			he, err := d.htmlElement(e)
			if err != nil {
				return nil, fmt.Errorf("page %d: %w", i+1, err)
			}
			elems = append(elems, he)
		}
		data.Pages[i] = elems
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("rendering html: %w", err)
	}
	return buf.Bytes(), nil
}

func (d *Document) htmlElement(e Element) (htmlElement, error) {
	x, y := d.unit.ToPt(e.X), d.unit.ToPt(e.Y)

	switch e.Kind {
	case KindImage:
		return htmlElement{
			Src: template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(e.PNG)),
			Style: template.CSS(fmt.Sprintf("left: %spt; top: %spt; width: %spt; height: %spt;",
				num(x), num(y), num(d.unit.ToPt(e.Width)), num(d.unit.ToPt(e.Height)))),
		}, nil

	case KindText:
		f, err := fonts.Lookup(e.Font, string(e.Style))
		if err != nil {
			return htmlElement{}, err
		}
		ascent, descent, err := f.Metrics(e.Size)
		if err != nil {
			return htmlElement{}, err
		}
		lineHeight := e.Size * LineHeightFactor
		// The first baseline sits half the leading plus the ascent below the box top.
		top := y - ascent - (lineHeight-ascent-descent)/2
		return htmlElement{
			Style: template.CSS(fmt.Sprintf(
				"left: %spt; top: %spt; font-family: %q; font-size: %spt; font-weight: %s; font-style: %s; line-height: %spt;",
				num(x), num(top), f.CSSFamily, num(e.Size), f.CSSWeight(), f.CSSStyle(), num(lineHeight))),
			Lines: e.Lines,
		}, nil
	}

	return htmlElement{}, fmt.Errorf("%w: kind %q", ErrInvalidElement, e.Kind)
}

// fontFaceCSS embeds every face used by placed text, in a stable order.
func (d *Document) fontFaceCSS() string {
	used := make([]*fonts.Font, 0, len(d.used))
	for f := range d.used {
		used = append(used, f)
	}
	sort.Slice(used, func(i, j int) bool {
		if used[i].Family != used[j].Family {
			return used[i].Family < used[j].Family
		}
		return used[i].Style < used[j].Style
	})

	var buf strings.Builder
	for _, f := range used {
		fmt.Fprintf(&buf, "@font-face { font-family: %q; font-weight: %s; font-style: %s; src: url(data:font/ttf;base64,%s) format(\"truetype\"); }\n",
			f.CSSFamily, f.CSSWeight(), f.CSSStyle(), base64.StdEncoding.EncodeToString(f.TTF()))
	}
	return buf.String()
}

// num formats a length with at most three decimals.
func num(v float64) string {
	r := math.Round(v*1000) / 1000
	if r == 0 {
		r = 0 // drops negative zero
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}
