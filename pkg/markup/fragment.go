package markup

import (
	"slices"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"golang.org/x/net/html/charset"

	"github.com/matzehuels/isostack/pkg/errors"
)

// Fragment is a single element of a parsed markup tree.
// A Fragment is not safe for concurrent use.
type Fragment struct {
	el *etree.Element
}

// Parse parses src as an SVG document and returns its root element.
// Returns an ErrCodeInvalidMarkup error if src is not well-formed XML or
// its root is not an <svg> element.
func Parse(src string) (*Fragment, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = charset.NewReaderLabel
	if err := doc.ReadFromString(src); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidMarkup, err, "parse markup")
	}
	root := doc.Root()
	if root == nil {
		return nil, errors.New(errors.ErrCodeInvalidMarkup, "markup has no root element")
	}
	if root.Tag != "svg" {
		return nil, errors.New(errors.ErrCodeInvalidMarkup, "root element is <%s>, want <svg>", root.FullTag())
	}
	return &Fragment{el: root}, nil
}

// NewElement returns a detached element with the given tag.
func NewElement(tag string) *Fragment {
	return &Fragment{el: etree.NewElement(tag)}
}

// Tag returns the element's local tag name.
func (f *Fragment) Tag() string { return f.el.Tag }

// ID returns the element's id attribute, or "" if it has none.
func (f *Fragment) ID() string { return f.el.SelectAttrValue("id", "") }

// Attr returns the value of the attribute key and whether it was present.
func (f *Fragment) Attr(key string) (string, bool) {
	a := f.el.SelectAttr(key)
	if a == nil {
		return "", false
	}
	return a.Value, true
}

// FloatAttr returns the attribute key parsed as a float.
// The second result is false if the attribute is missing or not numeric.
func (f *Fragment) FloatAttr(key string) (float64, bool) {
	v, ok := f.Attr(key)
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// SetAttr creates or replaces the attribute key.
func (f *Fragment) SetAttr(key, value string) {
	f.el.CreateAttr(key, value)
}

// RemoveAttr deletes the attribute key if present.
func (f *Fragment) RemoveAttr(key string) {
	f.el.RemoveAttr(key)
}

// AppendChild appends child as the last child of f.
// If child already has a parent it is moved.
func (f *Fragment) AppendChild(child *Fragment) {
	f.el.AddChild(child.el)
}

// Prepend inserts child before every existing child of f.
func (f *Fragment) Prepend(child *Fragment) {
	f.el.InsertChildAt(0, child.el)
}

// Children returns the direct child elements of f in document order.
func (f *Fragment) Children() []*Fragment {
	kids := f.el.ChildElements()
	out := make([]*Fragment, len(kids))
	for i, k := range kids {
		out[i] = &Fragment{el: k}
	}
	return out
}

// FindByID returns the first descendant (or f itself) whose id equals id,
// in document order. Returns nil if there is none.
func (f *Fragment) FindByID(id string) *Fragment {
	var found *Fragment
	f.Walk(func(n *Fragment) bool {
		if n.ID() == id {
			found = n
			return false
		}
		return true
	})
	return found
}

// FindAll returns every element (including f) with the given tag whose id
// starts with idPrefix, in document order.
func (f *Fragment) FindAll(tag, idPrefix string) []*Fragment {
	var out []*Fragment
	f.Walk(func(n *Fragment) bool {
		if n.Tag() == tag && strings.HasPrefix(n.ID(), idPrefix) {
			out = append(out, n)
		}
		return true
	})
	return out
}

// Walk visits f and its descendants depth-first in document order.
// Returning false from visit stops the walk.
func (f *Fragment) Walk(visit func(*Fragment) bool) {
	walk(f.el, visit)
}

func walk(el *etree.Element, visit func(*Fragment) bool) bool {
	if !visit(&Fragment{el: el}) {
		return false
	}
	for _, c := range el.ChildElements() {
		if !walk(c, visit) {
			return false
		}
	}
	return true
}

// Group moves every child of f into a new <g> element and returns it.
// f is left empty. Attributes of f are not carried over.
func (f *Fragment) Group() *Fragment {
	g := etree.NewElement("g")
	for _, tok := range slices.Clone(f.el.Child) {
		g.AddChild(tok)
	}
	return &Fragment{el: g}
}

// String serializes f and its subtree.
func (f *Fragment) String() string {
	doc := etree.NewDocument()
	doc.SetRoot(f.el.Copy())
	s, err := doc.WriteToString()
	if err != nil {
		return ""
	}
	return s
}
