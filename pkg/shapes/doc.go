// Package shapes holds the shape library: the named, immutable shape
// definitions a diagram is assembled from.
//
// # Kinds
//
// A [Definition] is either [Solid] (a 3D-looking primitive such as a box or
// cylinder, placed as its own diagram component) or [Flat] (a 2D decoration
// such as an icon, welded onto a face of a solid). Kinds serialize as "3D"
// and "2D".
//
// # Anchors
//
// Shape markup carries named anchor circles with ids of the form
// attach-<name>. Solids usually define top, bottom, front-left, front-right,
// back-left and back-right; flats define a single attach-point. The library
// does not interpret markup; anchor extraction lives in package render.
//
// # Sources
//
// [Default] returns the embedded library. [LoadManifest] reads a TOML
// manifest listing one [[shape]] table per definition:
//
//	[[shape]]
//	name = "database"
//	type = "3D"
//	svgFile = "cylinder.svg"
//
//	[[shape]]
//	name = "process"
//	type = "2D"
//	attachTo = "top"
//	svgFile = "process2D.svg"
//
// svgFile names are resolved relative to the manifest's directory.
package shapes
