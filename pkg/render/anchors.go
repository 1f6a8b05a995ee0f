package render

import (
	"math"
	"strings"

	"github.com/matzehuels/isostack/pkg/diagram"
	"github.com/matzehuels/isostack/pkg/markup"
)

// AnchorPrefix starts the id of every anchor circle.
const AnchorPrefix = "attach-"

// FlatAnchor is the anchor name of a flat decoration.
const FlatAnchor = "point"

// ExtractAttachmentPoints parses src and returns its anchors.
// A parse failure is returned as an ErrCodeInvalidMarkup error; callers
// should skip the shape.
func ExtractAttachmentPoints(src string) ([]diagram.AttachmentPoint, error) {
	f, err := markup.Parse(src)
	if err != nil {
		return nil, err
	}
	return Anchors(f), nil
}

// Anchors returns every <circle> under f whose id starts with "attach-",
// in document order. Circles without numeric cx and cy are skipped.
func Anchors(f *markup.Fragment) []diagram.AttachmentPoint {
	points := []diagram.AttachmentPoint{}
	for _, c := range f.FindAll("circle", AnchorPrefix) {
		x, okX := c.FloatAttr("cx")
		y, okY := c.FloatAttr("cy")
		name := strings.TrimPrefix(c.ID(), AnchorPrefix)
		if !okX || !okY || name == "" {
			continue
		}
		points = append(points, diagram.AttachmentPoint{Name: name, X: x, Y: y})
	}
	return points
}

// ToggleAnchors hides every anchor circle under f, or shows them when show
// is true.
func ToggleAnchors(f *markup.Fragment, show bool) {
	for _, c := range f.FindAll("circle", AnchorPrefix) {
		if show {
			c.RemoveAttr("display")
		} else {
			c.SetAttr("display", "none")
		}
	}
}

func normalize(p diagram.Point) diagram.Point {
	return diagram.Point{X: math.Abs(p.X), Y: math.Abs(p.Y)}
}
