package diagram

import "slices"

// Point is a coordinate pair. Canvas y grows downward.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns p+q.
func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

// Sub returns p-q.
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

// AttachmentPoint is a named anchor in a shape's local coordinate space.
// Name carries no "attach-" prefix.
type AttachmentPoint struct {
	Name string  `json:"name"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// Point returns the anchor's coordinates.
func (a AttachmentPoint) Point() Point { return Point{X: a.X, Y: a.Y} }

// Attached2DShape is a flat decoration welded onto a face of its owner.
type Attached2DShape struct {
	Name       string `json:"name"`
	AttachedTo string `json:"attachedTo"`
}

// Component is one placed solid shape.
//
// AttachmentPoints and AbsolutePosition are derived data refreshed by every
// compile pass.
type Component struct {
	ID               string            `json:"id"`
	Shape            string            `json:"shape"`
	Position         string            `json:"position"`
	RelativeToID     *string           `json:"relativeToId"`
	Attached2DShapes []Attached2DShape `json:"attached2DShapes"`
	AttachmentPoints []AttachmentPoint `json:"attachmentPoints"`
	AbsolutePosition Point             `json:"absolutePosition"`
	Cut              bool              `json:"cut"`
}

// IsRoot reports whether c has no reference component.
func (c Component) IsRoot() bool { return c.RelativeToID == nil }

// Parent returns the id c is attached to, or "" for the root.
func (c Component) Parent() string {
	if c.RelativeToID == nil {
		return ""
	}
	return *c.RelativeToID
}

// Anchor returns the attachment point named name.
func (c Component) Anchor(name string) (AttachmentPoint, bool) {
	for _, p := range c.AttachmentPoints {
		if p.Name == name {
			return p, true
		}
	}
	return AttachmentPoint{}, false
}

// Clone returns a deep copy of c.
func (c Component) Clone() Component {
	out := c
	if c.RelativeToID != nil {
		ref := *c.RelativeToID
		out.RelativeToID = &ref
	}
	out.Attached2DShapes = cloneOrEmpty(c.Attached2DShapes)
	out.AttachmentPoints = cloneOrEmpty(c.AttachmentPoints)
	return out
}

// Ref returns a pointer to a copy of id, for use as a RelativeToID.
func Ref(id string) *string { return &id }

// Clone returns a deep copy of list. Nil slices inside components become
// empty slices so that the copy serializes as a valid diagram.
func Clone(list []Component) []Component {
	out := make([]Component, len(list))
	for i, c := range list {
		out[i] = c.Clone()
	}
	return out
}

func cloneOrEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return slices.Clone(s)
}
