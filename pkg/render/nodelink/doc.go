// Package nodelink renders the component tree of a diagram as a node-link
// diagram.
//
// # Overview
//
// Placement errors usually come from a wrong reference or position token
// somewhere up the chain. This package draws the tree induced by
// relativeToId with Graphviz so the chain is easy to inspect: every node is
// a component, every edge points from a reference to the component attached
// to it and is labeled with the position token.
//
// # Usage
//
//	dot := nodelink.ToDOT(list, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(dot)
//
// Cut components are drawn dashed and grey.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
