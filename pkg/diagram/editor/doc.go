// Package editor implements the composition operations on a diagram.
//
// # Overview
//
// Every operation is a pure function from a component list and explicit
// parameters to a new list. The caller owns the mutable state: the current
// selection, the cut subtree and the list itself. Inputs are never
// modified, so a caller can keep the previous list around.
//
//	list, out := editor.Add3D(list, lib, "microservice", "top", "", selected)
//	if out.Err != nil {
//	    // list is unchanged; show errors.UserMessage(out.Err)
//	}
//
// # Failure Semantics
//
// Operations never panic on bad input. A rejected request (no selection,
// cutting the root, pasting with nothing cut, an unknown shape or an index
// out of range) returns the input list unchanged and sets [Outcome.Err] to a
// coded error from pkg/errors. Recoverable oddities, such as decorating a
// face the shape does not have, succeed with a diagnostic.
//
// # Tree Discipline
//
// Operations keep the list a single tree rooted at the first component:
//
//   - The first added component becomes the root at "center"
//   - Removing a component removes its whole dependent subtree
//   - At most one subtree is cut at a time and the root is never cut
//   - Pasting reinserts the cut subtree right after the last member of the
//     target's own subtree, so references always precede dependents
package editor
