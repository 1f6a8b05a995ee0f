package shapes

import (
	"fmt"
	"slices"
	"strings"

	"github.com/matzehuels/isostack/pkg/errors"
)

// Kind distinguishes solids from flat decorations.
type Kind int

const (
	// Solid shapes are placed as diagram components.
	Solid Kind = iota
	// Flat shapes are decorations attached to a face of a solid.
	Flat
)

// String returns "3D" or "2D".
func (k Kind) String() string {
	if k == Flat {
		return "2D"
	}
	return "3D"
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
// It accepts "2D"/"3D" and "flat"/"solid", case-insensitively.
func (k *Kind) UnmarshalText(b []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(b))) {
	case "3d", "solid":
		*k = Solid
	case "2d", "flat":
		*k = Flat
	default:
		return fmt.Errorf("unknown shape type %q (want 2D or 3D)", string(b))
	}
	return nil
}

// Definition is a named shape in the library.
type Definition struct {
	Name     string `json:"name"`
	Kind     Kind   `json:"type"`
	AttachTo string `json:"attachTo,omitempty"` // default face for Flat shapes
	SVGFile  string `json:"svgFile,omitempty"`
	Markup   string `json:"svgContent"`
}

// IsSolid reports whether d is a 3D shape.
func (d Definition) IsSolid() bool { return d.Kind == Solid }

// Library is a read-only lookup table of shape definitions.
// The zero value is an empty library. A Library is safe for concurrent reads.
type Library struct {
	defs   []Definition
	byName map[string]int
}

// NewLibrary builds a library from defs, keeping their order.
// Returns an ErrCodeInvalidManifest error for empty or duplicate names.
func NewLibrary(defs []Definition) (*Library, error) {
	l := &Library{
		defs:   slices.Clone(defs),
		byName: make(map[string]int, len(defs)),
	}
	for i, d := range l.defs {
		if err := errors.ValidateShapeName(d.Name); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "shape %d", i)
		}
		if _, dup := l.byName[d.Name]; dup {
			return nil, errors.New(errors.ErrCodeInvalidManifest, "duplicate shape name %q", d.Name)
		}
		l.byName[d.Name] = i
	}
	return l, nil
}

// Lookup returns the definition named name.
func (l *Library) Lookup(name string) (Definition, bool) {
	if l == nil {
		return Definition{}, false
	}
	i, ok := l.byName[name]
	if !ok {
		return Definition{}, false
	}
	return l.defs[i], true
}

// Markup returns the raw markup of the named shape.
func (l *Library) Markup(name string) (string, bool) {
	d, ok := l.Lookup(name)
	return d.Markup, ok
}

// Shapes returns all definitions in library order.
func (l *Library) Shapes() []Definition {
	if l == nil {
		return nil
	}
	return slices.Clone(l.defs)
}

// Solids returns the 3D definitions in library order.
func (l *Library) Solids() []Definition { return l.filter(Solid) }

// Flats returns the 2D definitions in library order.
func (l *Library) Flats() []Definition { return l.filter(Flat) }

// Len returns the number of definitions.
func (l *Library) Len() int {
	if l == nil {
		return 0
	}
	return len(l.defs)
}

func (l *Library) filter(k Kind) []Definition {
	if l == nil {
		return nil
	}
	var out []Definition
	for _, d := range l.defs {
		if d.Kind == k {
			out = append(out, d)
		}
	}
	return out
}
