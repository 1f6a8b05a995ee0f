// Package sink turns a compiled diagram into output documents.
//
// # Overview
//
// A compiled [render.Result] holds a bare markup fragment: one <g> per
// placed component. This package provides renderers for:
//
//   - SVG: a standalone document sized to the canvas or clipped to contents
//   - JSON: positions, bounds and diagnostics for external tools
//
// # SVG Output
//
//	svg, err := sink.RenderSVG(res, sink.WithClip(10))
//
// Without options the document has the compile canvas as its size and
// viewBox. [WithClip] fits the viewBox around the placed components instead
// and makes the document scale to its container.
//
// [render.Result]: github.com/matzehuels/isostack/pkg/render.Result
package sink
