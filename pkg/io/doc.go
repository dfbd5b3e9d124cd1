// Package io provides a JSON listing of an OPC package's part graph.
//
// # Overview
//
// A [Listing] is a flat, tool-friendly description of what a package holds:
// every reachable part with its content type and size, every relationship
// as an edge, and the orphaned items that would be dropped on save. It does
// not carry part bytes, so it stays small even for media-heavy decks.
//
// # JSON Format
//
//	{
//	  "source": "deck.pptx",
//	  "parts": [
//	    {"partname": "/ppt/presentation.xml", "content_type": "...", "size": 1834}
//	  ],
//	  "relationships": [
//	    {"source": "/", "id": "rId1", "type": "...", "target": "/ppt/presentation.xml"},
//	    {"source": "/ppt/slides/slide1.xml", "id": "rId2", "type": "...",
//	     "target": "https://example.com/", "external": true}
//	  ],
//	  "orphans": ["/ppt/slides/slide9.xml"]
//	}
//
// The package root appears as source "/". Parts are listed in walk order and
// relationships grouped by source in the same order, each group in id order.
//
// # Export
//
// Use [Describe] to build a listing, [WriteJSON] to encode one to any
// io.Writer, or [ExportJSON] to write a file:
//
//	l, err := io.Describe(pkg)
//	err = io.ExportJSON(l, "deck.json")
//
// # Import
//
// [ReadJSON] and [ImportJSON] decode a listing back, for instance to render a
// graph that was exported earlier. Relationships must reference listed parts
// or the package root unless they are external.
package io
