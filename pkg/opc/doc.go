// Package opc is the packaging engine for OPC presentation packages: the
// graph of parts and relationships behind a .pptx file.
//
// # Overview
//
// A [Package] owns a set of root relationships. Each [Relationship] points at
// a [Part] or at an external reference, and each Part owns relationships of
// its own. The resulting graph may contain cycles (a slide layout and its
// master reference each other), so every traversal keeps a visited set and
// handles each part exactly once.
//
//	pkg, err := opc.Open("deck.pptx")
//	if err != nil {
//	    return err
//	}
//	for _, part := range pkg.Parts() {
//	    name, _ := part.Partname()
//	    fmt.Println(name, part.ContentType())
//	}
//	err = pkg.Save("copy.pptx")
//
// # Loading
//
// Opening reads the content type manifest, creates one part per content item
// and then wires relationships starting from the package root. XML parts
// must be well-formed. A relationship naming a missing part makes the whole
// package CORRUPTED_PACKAGE. Items nothing points to are reported by
// [Package.Orphans] and dropped on save.
//
// # Saving
//
// Saving walks the graph from the root, composes a fresh manifest over the
// reachable parts, and writes manifest, root relationships, then each part
// followed by its relationships item. Output goes to a temporary location
// first, so a failed save never leaves a partial container behind.
//
// # Naming New Parts
//
// Parts created with [Package.NewPart] get their partname on first request
// from the part type table: singleton types have a fixed name, numbered
// types take the smallest free number, e.g. slide3.xml when slide1, slide2
// and slide4 exist.
//
// # Instance Registry
//
// [Containing] finds the live package holding a part. The registry keeps only
// weak pointers, so an unreferenced package is still garbage collected.
package opc
