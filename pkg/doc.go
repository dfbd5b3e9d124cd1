// Package pkg provides the libraries behind opcpack, a reader and writer for
// Open Packaging Convention (OPC) presentation packages.
//
// # Overview
//
// A presentation package is a container (a zip file or an expanded
// directory) holding parts, a content-type manifest and relationship items
// that link parts into a graph rooted at the package itself. The pkg
// directory is organized in layers:
//
//  1. [phys] - Physical containers (zip file, zip bytes, directory)
//  2. [packuri], [schema], [parttype], [contenttype] - Names, constants and tables
//  3. [opc] - The part graph: relationships, parts, packages
//  4. [io], [render/nodelink] - Listings and graph rendering
//
// # Architecture
//
// The typical data flow through opcpack:
//
//	.pptx file / directory
//	         ↓
//	    [phys] Reader (enumerate and read items)
//	         ↓
//	    [opc] Open (build parts, wire relationships)
//	         ↓
//	    [opc] Package (edit the graph)
//	         ↓
//	    [opc] Save (walk, compose manifest) → [phys] Writer
//
// # Quick Start
//
//	import "github.com/matzehuels/opcpack/pkg/opc"
//
//	pkg, err := opc.Open("deck.pptx")
//	if err != nil {
//	    return err
//	}
//	for _, part := range pkg.Parts() {
//	    name, _ := part.Partname()
//	    fmt.Println(name, part.ContentType())
//	}
//	return pkg.Save("deck-out/")
//
// # Supporting Packages
//
//   - [errors] - Coded errors (PACKAGE_NOT_FOUND, CORRUPTED_PACKAGE, LOOKUP, ...)
//   - [observability] - Open, save and render hooks
//   - [buildinfo] - Version information injected at build time
//
// [phys]: https://pkg.go.dev/github.com/matzehuels/opcpack/pkg/phys
// [packuri]: https://pkg.go.dev/github.com/matzehuels/opcpack/pkg/packuri
// [schema]: https://pkg.go.dev/github.com/matzehuels/opcpack/pkg/schema
// [parttype]: https://pkg.go.dev/github.com/matzehuels/opcpack/pkg/parttype
// [contenttype]: https://pkg.go.dev/github.com/matzehuels/opcpack/pkg/contenttype
// [opc]: https://pkg.go.dev/github.com/matzehuels/opcpack/pkg/opc
// [io]: https://pkg.go.dev/github.com/matzehuels/opcpack/pkg/io
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/opcpack/pkg/render/nodelink
// [errors]: https://pkg.go.dev/github.com/matzehuels/opcpack/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/opcpack/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/opcpack/pkg/buildinfo
package pkg
