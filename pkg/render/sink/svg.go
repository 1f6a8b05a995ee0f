package sink

import (
	"bytes"
	"fmt"
	"math"
	"strconv"

	"github.com/matzehuels/isostack/pkg/markup"
	"github.com/matzehuels/isostack/pkg/render"
)

// DefaultPadding is the clip margin used by [WithClip] when given a negative
// padding.
const DefaultPadding = 10

// SVGOption configures [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	clip       bool
	padding    float64
	background string
}

// WithClip fits the viewBox around the placed components plus padding.
func WithClip(padding float64) SVGOption {
	return func(r *svgRenderer) {
		r.clip = true
		r.padding = padding
		if padding < 0 {
			r.padding = DefaultPadding
		}
	}
}

// WithBackground fills the document with a solid color.
func WithBackground(color string) SVGOption {
	return func(r *svgRenderer) { r.background = color }
}

// RenderSVG wraps the compiled fragment of res in an <svg> document.
// Returns an ErrCodeInvalidMarkup error if the fragment is not well formed.
func RenderSVG(res render.Result, opts ...SVGOption) ([]byte, error) {
	r := svgRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	buf.WriteString(`<svg xmlns="http://www.w3.org/2000/svg">`)
	buf.WriteString(res.SVG)
	buf.WriteString(`</svg>`)

	doc, err := markup.Parse(buf.String())
	if err != nil {
		return nil, err
	}

	x, y, w, h := 0.0, 0.0, res.Canvas.Width, res.Canvas.Height
	if box, ok := contentBox(res.Bounds); r.clip && ok {
		x, y = box.X-r.padding, box.Y-r.padding
		w, h = box.Width+2*r.padding, box.Height+2*r.padding
		doc.SetAttr("width", "100%")
		doc.SetAttr("height", "100%")
	} else {
		doc.SetAttr("width", num(w))
		doc.SetAttr("height", num(h))
	}
	doc.SetAttr("viewBox", fmt.Sprintf("%s %s %s %s", num(x), num(y), num(w), num(h)))

	if r.background != "" {
		bg := markup.NewElement("rect")
		bg.SetAttr("x", num(x))
		bg.SetAttr("y", num(y))
		bg.SetAttr("width", num(w))
		bg.SetAttr("height", num(h))
		bg.SetAttr("fill", r.background)
		doc.Prepend(bg)
	}

	return []byte(doc.String()), nil
}

func contentBox(bounds []render.Bounds) (render.Bounds, bool) {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, b := range bounds {
		minX = math.Min(minX, b.X)
		minY = math.Min(minY, b.Y)
		maxX = math.Max(maxX, b.X+b.Width)
		maxY = math.Max(maxY, b.Y+b.Height)
	}
	if len(bounds) == 0 {
		return render.Bounds{}, false
	}
	return render.Bounds{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}, true
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
