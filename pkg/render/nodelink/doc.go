// Package nodelink renders the relationship graph of an OPC package as a
// node-link diagram.
//
// # Overview
//
// Parts appear as boxes and relationships as arrows from their source, with
// the package root drawn as an ellipse on top. Cycles such as a slide layout
// pointing back at its master are drawn as they are; Graphviz handles them.
//
// # Usage
//
// Build a listing of the package, convert it to DOT, then render to SVG:
//
//	l, err := io.Describe(pkg)
//	dot := nodelink.ToDOT(l, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(dot)
//
// # Options
//
// The [Options] struct controls diagram generation:
//
//   - Detailed: part labels carry content type and size, edges their id and type
//   - External: hyperlinks and other external targets become dashed nodes
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering, so no Graphviz installation is needed.
package nodelink
