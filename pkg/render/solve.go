package render

import (
	"github.com/matzehuels/isostack/pkg/diagram"
)

// Canvas is the drawing area size.
type Canvas struct {
	Width  float64 `json:"width" toml:"width"`
	Height float64 `json:"height" toml:"height"`
}

// DefaultCanvas is used when no size is configured.
var DefaultCanvas = Canvas{Width: 800, Height: 600}

// Center returns the middle of the canvas.
func (c Canvas) Center() diagram.Point {
	return diagram.Point{X: c.Width / 2, Y: c.Height / 2}
}

// Solve computes the absolute position of c.
//
// The root, and any component positioned "center", is placed at the canvas
// center. Every other component is placed so that its contact anchor
// coincides with the reference anchor on the component it is attached to:
//
//	ref.AbsolutePosition + refAnchor - contactAnchor
//
// The reference is looked up in processed, which holds the components
// compiled so far. A missing reference falls back to the canvas center and
// a missing anchor counts as {0,0}; both are reported as diagnostics.
func Solve(c diagram.Component, processed []diagram.Component, canvas Canvas) (diagram.Point, []diagram.Diagnostic) {
	var diags []diagram.Diagnostic

	if c.RelativeToID == nil || c.Position == string(diagram.FaceCenter) {
		if c.RelativeToID != nil {
			diags = append(diags, diagram.Warnf(c.ID, "centered component is attached to %s", *c.RelativeToID))
		} else if c.Position != string(diagram.FaceCenter) {
			diags = append(diags, diagram.Warnf(c.ID, "root has position %q, placing at center", c.Position))
		}
		return canvas.Center(), diags
	}

	ref, ok := diagram.Find(processed, *c.RelativeToID)
	if !ok {
		diags = append(diags, diagram.Errorf(c.ID, "reference %s is not placed before this component", *c.RelativeToID))
		return canvas.Center(), diags
	}

	var refName, contactName string
	pos, err := diagram.ParsePosition(c.Position)
	if err != nil {
		diags = append(diags, diagram.Warnf(c.ID, "%v", err))
	} else {
		refName = pos.ReferenceAnchor()
		contactName, _ = pos.ContactAnchor()
	}

	refPoint, d := anchorPoint(ref, refName, c.ID)
	diags = append(diags, d...)
	contactPoint, d := anchorPoint(c, contactName, c.ID)
	diags = append(diags, d...)

	return ref.AbsolutePosition.Add(refPoint).Sub(contactPoint), diags
}

// anchorPoint returns the normalized anchor of owner, or {0,0} with a
// diagnostic attributed to forID.
func anchorPoint(owner diagram.Component, name, forID string) (diagram.Point, []diagram.Diagnostic) {
	if name == "" {
		return diagram.Point{}, nil
	}
	a, ok := owner.Anchor(name)
	if !ok {
		return diagram.Point{}, []diagram.Diagnostic{
			diagram.Warnf(forID, "anchor %q not found on %s (%s)", name, owner.ID, owner.Shape),
		}
	}
	return normalize(a.Point()), nil
}
