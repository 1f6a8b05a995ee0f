package diagram

import (
	"slices"
	"testing"

	"github.com/matzehuels/isostack/pkg/errors"
)

func comp(id, parent, position string) Component {
	c := Component{ID: id, Shape: "cube", Position: position}
	if parent != "" {
		c.RelativeToID = Ref(parent)
	}
	return c
}

// a
// ├── b
// │   └── d
// └── c
func sampleTree() []Component {
	return []Component{
		comp("a", "", "center"),
		comp("b", "a", "top"),
		comp("c", "a", "front-left"),
		comp("d", "b", "front-right"),
	}
}

func TestSubtree(t *testing.T) {
	list := sampleTree()

	tests := []struct {
		id   string
		want []string
	}{
		{"a", []string{"a", "b", "c", "d"}},
		{"b", []string{"b", "d"}},
		{"c", []string{"c"}},
		{"missing", nil},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			set := Subtree(list, tt.id)
			var got []string
			for id := range set {
				got = append(got, id)
			}
			slices.Sort(got)
			if !slices.Equal(got, tt.want) {
				t.Errorf("Subtree(%s) = %v, want %v", tt.id, got, tt.want)
			}
		})
	}
}

func TestQueries(t *testing.T) {
	list := sampleTree()

	if r, ok := Root(list); !ok || r.ID != "a" {
		t.Errorf("Root() = %v, %v", r.ID, ok)
	}
	if !IsRoot(list, "a") || IsRoot(list, "b") || IsRoot(list, "zz") {
		t.Error("IsRoot mismatch")
	}
	if got := Children(list, "a"); !slices.Equal(got, []string{"b", "c"}) {
		t.Errorf("Children(a) = %v", got)
	}
	if _, ok := FirstCut(list); ok {
		t.Error("FirstCut on uncut list should be empty")
	}
	list[3].Cut = true
	if c, ok := FirstCut(list); !ok || c.ID != "d" {
		t.Errorf("FirstCut() = %v, %v", c.ID, ok)
	}
}

func TestCheckTree(t *testing.T) {
	tests := []struct {
		name   string
		mutate func([]Component) []Component
		ok     bool
	}{
		{"valid", func(l []Component) []Component { return l }, true},
		{"empty", func([]Component) []Component { return nil }, true},
		{"root not centered", func(l []Component) []Component { l[0].Position = "top"; return l }, false},
		{"two roots", func(l []Component) []Component { l[2].RelativeToID = nil; l[2].Position = "center"; return l }, false},
		{"dangling", func(l []Component) []Component { l[3].RelativeToID = Ref("ghost"); return l }, false},
		{"self reference", func(l []Component) []Component { l[1].RelativeToID = Ref("b"); return l }, false},
		{"child before parent", func(l []Component) []Component { l[1], l[3] = l[3], l[1]; return l }, false},
		{"duplicate id", func(l []Component) []Component { l[3].ID = "c"; return l }, false},
		{"root cut", func(l []Component) []Component {
			for i := range l {
				l[i].Cut = true
			}
			return l
		}, false},
		{"cut subtree", func(l []Component) []Component { l[1].Cut, l[3].Cut = true, true; return l }, true},
		{"cut not closed", func(l []Component) []Component { l[1].Cut = true; return l }, false},
		{"two cut subtrees", func(l []Component) []Component { l[2].Cut, l[3].Cut = true, true; return l }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckTree(tt.mutate(sampleTree()))
			if (err == nil) != tt.ok {
				t.Fatalf("CheckTree() = %v, want ok=%v", err, tt.ok)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidStructure) {
				t.Errorf("code = %v, want INVALID_STRUCTURE", errors.GetCode(err))
			}
		})
	}
}

func TestCloneIsDeep(t *testing.T) {
	list := sampleTree()
	list[1].Attached2DShapes = []Attached2DShape{{Name: "process", AttachedTo: "top"}}

	cp := Clone(list)
	*cp[1].RelativeToID = "x"
	cp[1].Attached2DShapes[0].Name = "changed"

	if list[1].Parent() != "a" || list[1].Attached2DShapes[0].Name != "process" {
		t.Error("Clone shares memory with its input")
	}
	if cp[0].AttachmentPoints == nil {
		t.Error("Clone should replace nil slices with empty ones")
	}
}

func TestNewID(t *testing.T) {
	seen := make(map[string]bool)
	for range 100 {
		id := NewID()
		if seen[id] {
			t.Fatalf("NewID() repeated %s", id)
		}
		seen[id] = true
	}
}
