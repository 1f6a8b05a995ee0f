package render

import (
	"strconv"
	"strings"

	"github.com/matzehuels/isostack/pkg/diagram"
	"github.com/matzehuels/isostack/pkg/markup"
	"github.com/matzehuels/isostack/pkg/shapes"
)

// Options configures [Compile].
type Options struct {
	Canvas Canvas
	// ShowAnchors leaves anchor markers visible.
	ShowAnchors bool
}

// Bounds is the canvas rectangle covered by a placed component, taken from
// the width and height of its shape's <svg> root.
type Bounds struct {
	ID     string  `json:"id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Result is the output of [Compile].
type Result struct {
	// SVG is the concatenated <g> element of every placed component.
	SVG string `json:"svg"`
	// Components is a copy of the input with fresh AttachmentPoints and
	// AbsolutePosition.
	Components  []diagram.Component  `json:"components"`
	Bounds      []Bounds             `json:"bounds,omitempty"`
	Canvas      Canvas               `json:"canvas"`
	Diagnostics []diagram.Diagnostic `json:"diagnostics,omitempty"`
}

// Placed reports how many components produced markup.
func (r Result) Placed() int { return len(r.Bounds) }

// Compile places every component of list and welds its decorations.
// The input list is not modified. Compile is deterministic: the same list,
// library and options always produce the same result.
func Compile(list []diagram.Component, lib *shapes.Library, opts Options) Result {
	if opts.Canvas == (Canvas{}) {
		opts.Canvas = DefaultCanvas
	}
	res := Result{
		Components: make([]diagram.Component, 0, len(list)),
		Canvas:     opts.Canvas,
	}

	var out strings.Builder
	for _, c := range diagram.Clone(list) {
		g, bounds, diags := compileOne(&c, res.Components, lib, opts)
		res.Diagnostics = append(res.Diagnostics, diags...)
		res.Components = append(res.Components, c)
		if g == nil {
			continue
		}
		out.WriteString(g.String())
		res.Bounds = append(res.Bounds, bounds)
	}
	res.SVG = out.String()
	return res
}

// compileOne refreshes c in place and returns its positioned group, or nil
// if the component cannot be drawn.
func compileOne(c *diagram.Component, processed []diagram.Component, lib *shapes.Library, opts Options) (*markup.Fragment, Bounds, []diagram.Diagnostic) {
	def, ok := lib.Lookup(c.Shape)
	if !ok {
		return nil, Bounds{}, []diagram.Diagnostic{diagram.Warnf(c.ID, "shape %q not found in library", c.Shape)}
	}
	if !def.IsSolid() {
		return nil, Bounds{}, []diagram.Diagnostic{diagram.Warnf(c.ID, "shape %q is a 2D shape and cannot be placed", c.Shape)}
	}
	src, err := markup.Parse(def.Markup)
	if err != nil {
		return nil, Bounds{}, []diagram.Diagnostic{diagram.Errorf(c.ID, "shape %q: %v", c.Shape, err)}
	}

	c.AttachmentPoints = Anchors(src)
	pos, diags := Solve(*c, processed, opts.Canvas)
	c.AbsolutePosition = pos

	width, _ := src.FloatAttr("width")
	height, _ := src.FloatAttr("height")
	bounds := Bounds{ID: c.ID, X: pos.X, Y: pos.Y, Width: width, Height: height}

	g := src.Group()
	g.SetAttr("id", c.ID)
	g.SetAttr("transform", translate(pos))
	for _, deco := range c.Attached2DShapes {
		diags = append(diags, Weld(g, *c, deco, lib)...)
	}
	ToggleAnchors(g, opts.ShowAnchors)
	return g, bounds, diags
}

func translate(p diagram.Point) string {
	return "translate(" + formatFloat(p.X) + ", " + formatFloat(p.Y) + ")"
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
