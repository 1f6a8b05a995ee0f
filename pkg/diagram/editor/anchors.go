package editor

import (
	"math"
	"strings"

	"github.com/matzehuels/isostack/pkg/diagram"
)

// Choice is a position and attachment point pair offered to the user.
type Choice struct {
	Position        string `json:"position"`
	AttachmentPoint string `json:"attachmentPoint"`
}

// AvailableAnchors lists the position tokens a new component can be
// attached at on c, starting with "none". Anchors that do not name a face
// (such as a decoration slot) are left out; duplicates are dropped and
// markup order is kept.
func AvailableAnchors(c diagram.Component) []string {
	out := []string{AnchorNone}
	seen := map[string]bool{AnchorNone: true}
	for _, a := range c.AttachmentPoints {
		p, err := diagram.ParsePosition(a.Name)
		if err != nil || p.IsCenter() || seen[a.Name] {
			continue
		}
		seen[a.Name] = true
		out = append(out, a.Name)
	}
	return out
}

// ClosestAnchor returns the anchor of c nearest to click, given in c's
// local coordinates. Bottom and back anchors are never offered since they
// face away from the viewer. Without a candidate the result is
// {top, none}.
func ClosestAnchor(click diagram.Point, c diagram.Component) Choice {
	best := Choice{Position: string(diagram.FaceTop), AttachmentPoint: AnchorNone}
	bestDist := math.Inf(1)
	for _, a := range c.AttachmentPoints {
		if strings.HasPrefix(a.Name, "bottom") || strings.HasPrefix(a.Name, "back") {
			continue
		}
		p, err := diagram.ParsePosition(a.Name)
		if err != nil || p.IsCenter() {
			continue
		}
		d := math.Hypot(click.X-a.X, click.Y-a.Y)
		if d >= bestDist {
			continue
		}
		bestDist = d
		best = Choice{Position: string(p.Face), AttachmentPoint: AnchorNone}
		if p.Anchor != "" {
			best.AttachmentPoint = a.Name
		}
	}
	return best
}
