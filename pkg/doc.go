// Package pkg provides the core libraries for isostack isometric diagrams.
//
// # Overview
//
// isostack composes architecture diagrams out of isometric SVG shapes. 3D
// shapes stack on the faces of other 3D shapes; 2D decorations are welded
// onto those faces. The pkg directory is organized into:
//
//  1. [shapes] - The shape library (embedded default, TOML manifests)
//  2. [markup] - A small SVG DOM over etree
//  3. [diagram] - Components, positions, serialization and tree checks
//  4. [diagram/editor] - Composition operations (add, remove, cut, paste)
//  5. [render] - Anchor extraction, placement, welding and compilation
//  6. [pipeline] - Orchestration (compile → export) with caching
//  7. [store], [cache], [settings] - Persistence
//
// # Architecture
//
// The typical data flow:
//
//	Diagram JSON
//	     ↓
//	[diagram] package (validate + decode)
//	     ↓
//	[diagram/editor] package (composition operations)
//	     ↓
//	[render] package (solve positions, weld decorations)
//	     ↓
//	[render/sink] package → SVG/PNG/PDF/JSON
//
// # Quick Start
//
//	lib := shapes.Default()
//	list, o := editor.Add3D(nil, lib, "layer4x3", "", "", "")
//	list, _ = editor.Add3D(list, lib, "microservice", "top", "", o.ID)
//
//	res := render.Compile(list, lib, render.Options{Canvas: render.DefaultCanvas})
//	svg, err := sink.RenderSVG(res)
//
// Engine diagnostics are returned alongside results and never abort a
// compile pass. Errors carry a [errors.Code] for programmatic handling.
package pkg
