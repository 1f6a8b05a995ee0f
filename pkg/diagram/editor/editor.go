package editor

import (
	"slices"

	"github.com/matzehuels/isostack/pkg/diagram"
	"github.com/matzehuels/isostack/pkg/errors"
	"github.com/matzehuels/isostack/pkg/render"
	"github.com/matzehuels/isostack/pkg/shapes"
)

// AnchorNone is the attachment point value meaning "no specific anchor".
const AnchorNone = "none"

// DefaultPosition is used when neither a position nor an attachment point
// is requested.
const DefaultPosition = string(diagram.FaceTop)

// Outcome reports the result of an editor operation.
type Outcome struct {
	// ID is the component created, pasted or targeted by the operation.
	ID string
	// Affected lists every component whose stored fields changed, or that
	// was removed.
	Affected []string
	// Err is set when the operation was rejected. The returned list is
	// then the input list.
	Err         error
	Diagnostics []diagram.Diagnostic
}

// OK reports whether the operation was applied.
func (o Outcome) OK() bool { return o.Err == nil }

func reject(list []diagram.Component, code errors.Code, format string, args ...any) ([]diagram.Component, Outcome) {
	return list, Outcome{Err: errors.New(code, format, args...)}
}

// Add3D appends a new component placing the solid shape shapeName.
//
// On an empty list the component becomes the root at "center" whatever
// position was requested. Otherwise it is attached to selected at
// attachmentPoint, or at position when attachmentPoint is "" or "none".
// The new component's attachment points are extracted immediately.
func Add3D(list []diagram.Component, lib *shapes.Library, shapeName, position, attachmentPoint, selected string) ([]diagram.Component, Outcome) {
	def, ok := lib.Lookup(shapeName)
	if !ok {
		return reject(list, errors.ErrCodeShapeNotFound, "shape %q not found in library", shapeName)
	}
	if !def.IsSolid() {
		return reject(list, errors.ErrCodeInvalidInput, "%s is a 2D shape; attach it to a 3D shape instead", shapeName)
	}
	points, err := render.ExtractAttachmentPoints(def.Markup)
	if err != nil {
		return list, Outcome{Err: err}
	}

	c := diagram.Component{
		ID:               diagram.NewID(),
		Shape:            shapeName,
		Position:         string(diagram.FaceCenter),
		Attached2DShapes: []diagram.Attached2DShape{},
		AttachmentPoints: points,
	}

	if len(list) > 0 {
		if selected == "" {
			return reject(list, errors.ErrCodeNoSelection, "select a 3D shape before adding %s", shapeName)
		}
		parent, ok := diagram.Find(list, selected)
		if !ok {
			return reject(list, errors.ErrCodeComponentNotFound, "selected component %s not found", selected)
		}
		if parent.Cut {
			return reject(list, errors.ErrCodeInvalidTarget, "cannot attach to %s while it is cut", selected)
		}
		token, err := positionToken(position, attachmentPoint)
		if err != nil {
			return list, Outcome{Err: err}
		}
		c.Position = token
		c.RelativeToID = diagram.Ref(selected)
	}

	out := append(diagram.Clone(list), c)
	return out, Outcome{ID: c.ID, Affected: []string{c.ID}}
}

// Add2D attaches the flat shape shapeName to the selected component.
// An empty attachTo uses the shape's default face.
func Add2D(list []diagram.Component, lib *shapes.Library, shapeName, attachTo, selected string) ([]diagram.Component, Outcome) {
	if selected == "" {
		return reject(list, errors.ErrCodeNoSelection, "select a 3D shape to attach %s to", shapeName)
	}
	i := diagram.Index(list, selected)
	if i < 0 {
		return reject(list, errors.ErrCodeComponentNotFound, "selected component %s not found", selected)
	}
	def, ok := lib.Lookup(shapeName)
	if !ok {
		return reject(list, errors.ErrCodeShapeNotFound, "shape %q not found in library", shapeName)
	}
	if def.IsSolid() {
		return reject(list, errors.ErrCodeInvalidInput, "%s is a 3D shape; add it as a component instead", shapeName)
	}
	if attachTo == "" {
		attachTo = def.AttachTo
	}
	if attachTo == "" {
		return reject(list, errors.ErrCodeInvalidInput, "%s has no default face; choose one", shapeName)
	}

	var o Outcome
	target := list[i]
	if len(target.AttachmentPoints) > 0 {
		if _, ok := target.Anchor(attachTo); !ok {
			o.Diagnostics = append(o.Diagnostics,
				diagram.Warnf(target.ID, "%s has no %q anchor; %s will not be drawn", target.Shape, attachTo, shapeName))
		}
	}

	out := diagram.Clone(list)
	out[i].Attached2DShapes = append(out[i].Attached2DShapes, diagram.Attached2DShape{Name: shapeName, AttachedTo: attachTo})
	o.ID = target.ID
	o.Affected = []string{target.ID}
	return out, o
}

// Remove3D removes id and its whole dependent subtree.
func Remove3D(list []diagram.Component, id string) ([]diagram.Component, Outcome) {
	subtree := diagram.Subtree(list, id)
	if len(subtree) == 0 {
		return reject(list, errors.ErrCodeComponentNotFound, "component %s not found", id)
	}

	out := make([]diagram.Component, 0, len(list)-len(subtree))
	var removed []string
	for _, c := range list {
		if subtree[c.ID] {
			removed = append(removed, c.ID)
			continue
		}
		out = append(out, c.Clone())
	}
	return out, Outcome{ID: id, Affected: removed}
}

// Remove2D removes the decoration at index from parentID.
func Remove2D(list []diagram.Component, parentID string, index int) ([]diagram.Component, Outcome) {
	i := diagram.Index(list, parentID)
	if i < 0 {
		return reject(list, errors.ErrCodeComponentNotFound, "component %s not found", parentID)
	}
	if n := len(list[i].Attached2DShapes); index < 0 || index >= n {
		return reject(list, errors.ErrCodeInvalidIndex, "decoration index %d out of range [0, %d)", index, n)
	}

	out := diagram.Clone(list)
	out[i].Attached2DShapes = slices.Delete(out[i].Attached2DShapes, index, index+1)
	return out, Outcome{ID: parentID, Affected: []string{parentID}}
}

// Cut marks id and its dependent subtree as cut. A subtree that is already
// cut is cancelled first. The root can never be cut.
func Cut(list []diagram.Component, id string) ([]diagram.Component, Outcome) {
	c, ok := diagram.Find(list, id)
	if !ok {
		return reject(list, errors.ErrCodeComponentNotFound, "component %s not found", id)
	}
	if c.IsRoot() {
		return reject(list, errors.ErrCodeRootCut, "the root component cannot be cut")
	}

	var o Outcome
	out := list
	if prev, ok := diagram.FirstCut(list); ok {
		out, _ = CancelCut(list, prev.ID)
		if prev.ID != id {
			o.Diagnostics = append(o.Diagnostics, diagram.Infof(prev.ID, "cancelled previous cut"))
		}
	}
	out, o.Affected = setCut(out, id, true)
	o.ID = id
	return out, o
}

// CancelCut clears the cut flag on id and its dependent subtree.
func CancelCut(list []diagram.Component, id string) ([]diagram.Component, Outcome) {
	if diagram.Index(list, id) < 0 {
		return reject(list, errors.ErrCodeComponentNotFound, "component %s not found", id)
	}
	out, affected := setCut(list, id, false)
	return out, Outcome{ID: id, Affected: affected}
}

func setCut(list []diagram.Component, id string, cut bool) ([]diagram.Component, []string) {
	subtree := diagram.Subtree(list, id)
	out := diagram.Clone(list)
	var affected []string
	for i := range out {
		if subtree[out[i].ID] {
			out[i].Cut = cut
			affected = append(affected, out[i].ID)
		}
	}
	return out, affected
}

// Paste re-parents the cut subtree rooted at cutRoot under target.
//
// An empty cutRoot pastes the current cut subtree. cutRoot must be the top
// of its cut subtree and target must not be cut. The cut root is attached
// at attachmentPoint, or at position when attachmentPoint is "" or "none";
// the rest of the subtree keeps its internal structure. The subtree is
// reinserted right after the last member of target's own subtree, or right
// after target when it has no dependents, and its cut flags are cleared.
func Paste(list []diagram.Component, cutRoot, target, position, attachmentPoint string) ([]diagram.Component, Outcome) {
	if cutRoot == "" {
		first, ok := diagram.FirstCut(list)
		if !ok {
			return reject(list, errors.ErrCodeNothingCut, "nothing is cut")
		}
		cutRoot = first.ID
	}
	root, ok := diagram.Find(list, cutRoot)
	if !ok {
		return reject(list, errors.ErrCodeComponentNotFound, "component %s not found", cutRoot)
	}
	if !root.Cut {
		return reject(list, errors.ErrCodeNothingCut, "component %s is not cut", cutRoot)
	}
	if parent, ok := diagram.Find(list, root.Parent()); ok && parent.Cut {
		return reject(list, errors.ErrCodeInvalidTarget, "%s is inside the cut subtree of %s", cutRoot, parent.ID)
	}
	if target == "" {
		return reject(list, errors.ErrCodeNoSelection, "select a 3D shape to paste onto")
	}
	dest, ok := diagram.Find(list, target)
	if !ok {
		return reject(list, errors.ErrCodeComponentNotFound, "target %s not found", target)
	}
	moved := diagram.Subtree(list, cutRoot)
	if moved[target] {
		return reject(list, errors.ErrCodeInvalidTarget, "cannot paste %s onto its own subtree", cutRoot)
	}
	if dest.Cut {
		return reject(list, errors.ErrCodeInvalidTarget, "cannot paste onto cut component %s", target)
	}
	token, err := positionToken(position, attachmentPoint)
	if err != nil {
		return list, Outcome{Err: err}
	}

	var cut, rest []diagram.Component
	var affected []string
	for _, c := range list {
		c = c.Clone()
		if !moved[c.ID] {
			rest = append(rest, c)
			continue
		}
		c.Cut = false
		if c.ID == cutRoot {
			c.RelativeToID = diagram.Ref(target)
			c.Position = token
		}
		cut = append(cut, c)
		affected = append(affected, c.ID)
	}

	at := insertIndex(rest, target)
	out := make([]diagram.Component, 0, len(list))
	out = append(out, rest[:at]...)
	out = append(out, cut...)
	out = append(out, rest[at:]...)
	return out, Outcome{ID: cutRoot, Affected: affected}
}

// insertIndex returns the position right after the last member of
// target's subtree in list.
func insertIndex(list []diagram.Component, target string) int {
	subtree := diagram.Subtree(list, target)
	for i := len(list) - 1; i >= 0; i-- {
		if subtree[list[i].ID] {
			return i + 1
		}
	}
	return len(list)
}

// positionToken picks the stored position for a non-root component.
func positionToken(position, attachmentPoint string) (string, error) {
	token := position
	if attachmentPoint != "" && attachmentPoint != AnchorNone {
		token = attachmentPoint
	}
	if token == "" {
		token = DefaultPosition
	}
	p, err := diagram.ParsePosition(token)
	if err != nil {
		return "", err
	}
	if p.IsCenter() {
		return "", errors.New(errors.ErrCodeInvalidInput, "only the root can be placed at center")
	}
	return token, nil
}
