// Package render compiles a diagram into SVG markup.
//
// # Overview
//
// Compilation is a single forward pass over the component list. For each
// component the compiler:
//
//  1. Looks up the solid shape in the shape library
//  2. Extracts the shape's attachment points ([Anchors])
//  3. Solves its absolute position from its reference ([Solve])
//  4. Stamps a translate transform on the shape's group
//  5. Welds every attached decoration onto its face ([Weld])
//  6. Hides or shows anchor markers
//
// The pass never aborts. Missing shapes, missing references and missing
// anchors degrade to safe defaults and are reported as diagnostics in the
// [Result].
//
//	res := render.Compile(list, shapes.Default(), render.Options{
//	    Canvas: render.Canvas{Width: 800, Height: 600},
//	})
//	for _, d := range res.Diagnostics {
//	    log.Warn(d.Message, "component", d.ComponentID)
//	}
//
// # Anchor Normalization
//
// Shape authors may place anchors in either sign convention. Both the
// solver and the welder take the absolute value of every anchor coordinate
// before differencing, so the two stay consistent.
//
// # Subpackages
//
//   - [sink]: wraps a compiled fragment in a standalone SVG document
//   - [nodelink]: renders the component tree with Graphviz
//
// [sink]: github.com/matzehuels/isostack/pkg/render/sink
// [nodelink]: github.com/matzehuels/isostack/pkg/render/nodelink
package render
