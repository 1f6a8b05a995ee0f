// Package markup is the small SVG document-fragment layer the compositing
// engine is written against.
//
// A [Fragment] wraps one element of a parsed SVG tree and exposes only the
// operations the engine needs: parse, find by id, read and write attributes,
// append children and serialize. Everything else about the markup (styles,
// paths, gradients) is carried through untouched.
//
// # Parsing
//
// [Parse] reads a complete SVG document. Non-UTF-8 documents are decoded
// through golang.org/x/net/html/charset, so library files exported by
// desktop editors with a Latin-1 or Windows-1252 prolog load unchanged.
//
//	frag, err := markup.Parse(src)
//	if err != nil {
//	    // unrecoverable for this shape: skip it
//	}
//	top := frag.FindByID("attach-top")
//
// # Groups
//
// [Fragment.Group] moves the children of the root <svg> element into a fresh
// <g> element. The compiler positions shapes by setting a transform on these
// groups; the source <svg> attributes (width, height, viewBox) are dropped.
package markup
