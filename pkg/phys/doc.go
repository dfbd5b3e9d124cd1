// Package phys gives the packaging engine uniform byte-level access to an OPC
// container, whether it is a zip archive or an expanded directory tree.
//
// # Overview
//
// A [Reader] lists the items of a container by pack URI and returns their
// bytes. A [Writer] receives items one at a time and produces a container on
// [Writer.Close]. Both sides use the same URI namespace, so the rest of the
// engine never needs to know which physical form it is dealing with.
//
// # Opening
//
// [OpenReader] classifies its argument before reading anything:
//
//   - a missing path is PACKAGE_NOT_FOUND
//   - a directory without [Content_Types].xml is PACKAGE_NOT_FOUND
//   - a file that does not start with the zip local file header is PACKAGE_NOT_FOUND
//   - a zip whose central directory cannot be read is CORRUPTED_PACKAGE
//
// # Writing
//
// Writers never leave a half-written container where a valid one is expected.
// [CreateZip] writes into a uniquely named temporary file next to the target
// and renames it into place on Close; [CreateDir] does the same with a
// temporary sibling directory; [NewStreamWriter] buffers the entire archive
// and copies it to the stream only on Close. [Writer.Abort] discards whatever
// was written so far.
//
// Handles are scoped to a single open or save and are released on every exit
// path.
package phys
