package render

import (
	"github.com/matzehuels/isostack/pkg/diagram"
	"github.com/matzehuels/isostack/pkg/markup"
	"github.com/matzehuels/isostack/pkg/shapes"
)

// Weld fuses the decoration deco onto owner's group.
//
// The decoration's markup is wrapped in a <g> with id
// "<attachedTo>-<name>", translated so that its "point" anchor lands on
// owner's anchor named deco.AttachedTo, and appended to group. Anchors are
// normalized like in [Solve]. A missing shape, unparseable markup or a
// missing anchor skips the decoration and returns a diagnostic.
//
// The id is not unique: the same decoration welded twice onto one face
// yields two groups with the same id. Address decorations by their index
// in owner.Attached2DShapes instead.
func Weld(group *markup.Fragment, owner diagram.Component, deco diagram.Attached2DShape, lib *shapes.Library) []diagram.Diagnostic {
	def, ok := lib.Lookup(deco.Name)
	if !ok {
		return []diagram.Diagnostic{diagram.Warnf(owner.ID, "decoration %q not found in library", deco.Name)}
	}
	if def.IsSolid() {
		return []diagram.Diagnostic{diagram.Warnf(owner.ID, "decoration %q is a 3D shape", deco.Name)}
	}
	src, err := markup.Parse(def.Markup)
	if err != nil {
		return []diagram.Diagnostic{diagram.Errorf(owner.ID, "decoration %q: %v", deco.Name, err)}
	}

	flat, ok := findAnchor(Anchors(src), FlatAnchor)
	if !ok {
		return []diagram.Diagnostic{diagram.Warnf(owner.ID, "decoration %q has no %q anchor", deco.Name, FlatAnchor)}
	}
	face, ok := owner.Anchor(deco.AttachedTo)
	if !ok {
		return []diagram.Diagnostic{diagram.Warnf(owner.ID, "anchor %q not found on %s for decoration %q", deco.AttachedTo, owner.Shape, deco.Name)}
	}

	delta := normalize(face.Point()).Sub(normalize(flat.Point()))
	g := src.Group()
	g.SetAttr("id", deco.AttachedTo+"-"+deco.Name)
	g.SetAttr("transform", translate(delta))
	group.AppendChild(g)
	return nil
}

func findAnchor(points []diagram.AttachmentPoint, name string) (diagram.AttachmentPoint, bool) {
	for _, p := range points {
		if p.Name == name {
			return p, true
		}
	}
	return diagram.AttachmentPoint{}, false
}
