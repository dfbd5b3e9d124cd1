// Package render groups the visual outputs of opcpack.
//
// The [nodelink] subpackage draws a package's part and relationship graph
// with Graphviz:
//
//	dot := nodelink.ToDOT(listing, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(dot)
package render
