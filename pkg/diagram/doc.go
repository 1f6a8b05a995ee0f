// Package diagram defines the positioned-shape data model of an isometric
// diagram.
//
// # Overview
//
// A diagram is an ordered list of [Component] values. Every component places
// one solid shape from the shape library; flat decorations live inside the
// component's [Component.Attached2DShapes]. Components form a single tree
// through [Component.RelativeToID]: the root has a nil reference and the
// position "center", every other component hangs off a component that
// appears earlier in the list.
//
// # Positions
//
// A component's position token names the face of its reference where it is
// attached, optionally followed by a specific anchor on that face:
//
//	top              attach on the top face
//	front-left       attach on the front-left face
//	top-left         attach on the top face at the "top-left" anchor
//
// [ParsePosition] turns a token into a structured [Position]. Faces are a
// closed set matched by prefix, so anchor names containing dashes survive.
//
// # Invariants
//
// [CheckTree] verifies the structural invariants of a list: a single root,
// no dangling references, no cycles, dependency-respecting list order, and
// subtree-closed cut flags that never include the root.
//
// # Serialization
//
// [Serialize] writes a list as indented JSON. [Deserialize] parses and
// validates before returning, so a malformed file never yields a partial
// list:
//
//	list, err := diagram.Deserialize(data)
//	if errors.Is(err, errors.ErrCodeInvalidStructure) {
//	    // file is not a valid diagram
//	}
package diagram
