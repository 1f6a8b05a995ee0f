package diagram

import (
	"github.com/matzehuels/isostack/pkg/errors"
)

// Index returns the list index of the component with the given id, or -1.
func Index(list []Component, id string) int {
	for i := range list {
		if list[i].ID == id {
			return i
		}
	}
	return -1
}

// Find returns the component with the given id.
func Find(list []Component, id string) (Component, bool) {
	if i := Index(list, id); i >= 0 {
		return list[i], true
	}
	return Component{}, false
}

// Root returns the first component without a reference.
func Root(list []Component) (Component, bool) {
	for _, c := range list {
		if c.IsRoot() {
			return c, true
		}
	}
	return Component{}, false
}

// IsRoot reports whether id names the tree root of list.
func IsRoot(list []Component, id string) bool {
	c, ok := Find(list, id)
	return ok && c.IsRoot()
}

// Children returns the ids attached directly to id, in list order.
func Children(list []Component, id string) []string {
	var out []string
	for _, c := range list {
		if c.RelativeToID != nil && *c.RelativeToID == id {
			out = append(out, c.ID)
		}
	}
	return out
}

// Subtree returns id and every component whose reference chain reaches id.
// The result is empty if id is not in list.
func Subtree(list []Component, id string) map[string]bool {
	set := make(map[string]bool)
	if Index(list, id) < 0 {
		return set
	}
	children := make(map[string][]string)
	for _, c := range list {
		if c.RelativeToID != nil {
			children[*c.RelativeToID] = append(children[*c.RelativeToID], c.ID)
		}
	}
	stack := []string{id}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if set[n] {
			continue
		}
		set[n] = true
		stack = append(stack, children[n]...)
	}
	return set
}

// FirstCut returns the first component marked cut, in list order.
func FirstCut(list []Component) (Component, bool) {
	for _, c := range list {
		if c.Cut {
			return c, true
		}
	}
	return Component{}, false
}

// CheckTree verifies the structural invariants of list and returns an
// ErrCodeInvalidStructure error describing the first violation found.
// An empty list is valid.
func CheckTree(list []Component) error {
	if len(list) == 0 {
		return nil
	}

	seen := make(map[string]int, len(list))
	roots := 0
	for i, c := range list {
		if c.ID == "" {
			return invalid("component %d has no id", i)
		}
		if _, dup := seen[c.ID]; dup {
			return invalid("duplicate id %q", c.ID)
		}

		if c.IsRoot() {
			seen[c.ID] = i
			roots++
			if c.Position != string(FaceCenter) {
				return invalid("root %s has position %q, want center", c.ID, c.Position)
			}
			if c.Cut {
				return invalid("root %s is cut", c.ID)
			}
			continue
		}
		if c.Position == string(FaceCenter) {
			return invalid("%s is centered but has a reference", c.ID)
		}
		j, ok := seen[*c.RelativeToID]
		if !ok {
			if Index(list, *c.RelativeToID) < 0 {
				return invalid("%s references missing component %q", c.ID, *c.RelativeToID)
			}
			return invalid("%s appears before its reference %q", c.ID, *c.RelativeToID)
		}
		if list[j].Cut && !c.Cut {
			return invalid("%s is not cut but its reference %s is", c.ID, list[j].ID)
		}
		seen[c.ID] = i
	}
	if roots != 1 {
		return invalid("found %d roots, want 1", roots)
	}

	// Parents always precede children, so the graph is acyclic and every
	// chain ends at the single root.
	cutRoots := 0
	for _, c := range list {
		if c.Cut && !list[seen[c.Parent()]].Cut {
			cutRoots++
		}
	}
	if cutRoots > 1 {
		return invalid("found %d cut subtrees, want at most 1", cutRoots)
	}
	return nil
}

func invalid(format string, args ...any) error {
	return errors.New(errors.ErrCodeInvalidStructure, format, args...)
}
