// Package packuri implements pack URIs, the absolute forward-slash names that
// identify parts inside an OPC package.
//
// # Overview
//
// A pack URI such as /ppt/slides/slide10.xml is case-sensitive, always begins
// with a slash and never ends with one. It doubles as the zip member name of the
// part (minus the leading slash) and as the relative path of the part inside an
// expanded directory.
//
// The [URI] type exposes the pieces the packaging engine needs:
//
//	u := packuri.Must("/ppt/slides/slide10.xml")
//	u.BaseURI()  // "/ppt/slides"
//	u.Filename() // "slide10.xml"
//	u.Ext()      // "xml"
//	u.Idx()      // 10, true
//	u.RelsURI()  // "/ppt/slides/_rels/slide10.xml.rels"
//
// # Relative References
//
// Relationship items store targets relative to the directory of their source
// part. [URI.RelativeRef] produces such a reference and [FromRelRef] resolves
// one back into an absolute URI, collapsing "../" segments.
//
// # Ordering
//
// [Compare] orders URIs naturally: runs of digits compare by numeric value, so
// /ppt/slides/slide9.xml sorts before /ppt/slides/slide10.xml.
package packuri

import (
	"path"
	"slices"
	"strconv"
	"strings"

	"github.com/matzehuels/opcpack/pkg/errors"
)

// URI is an absolute pack URI.
type URI string

// Well-known pack URIs.
const (
	// PackageURI is the pseudo-partname of the package itself, the source of
	// the package-level relationships.
	PackageURI URI = "/"

	// ContentTypesURI names the content-type manifest item.
	ContentTypesURI URI = "/[Content_Types].xml"

	// RootRelsURI names the package-level relationships item.
	RootRelsURI URI = "/_rels/.rels"
)

const relsDir = "_rels"

// New validates s and returns it as a URI. Invalid names fail with an
// INVALID_PARTNAME error.
func New(s string) (URI, error) {
	if err := errors.ValidatePartname(s); err != nil {
		return "", err
	}
	return URI(s), nil
}

// Must is like New but panics on an invalid name. It is meant for constants
// and tests.
func Must(s string) URI {
	u, err := New(s)
	if err != nil {
		panic(err)
	}
	return u
}

// FromMemberName converts a zip member name (or a slash-separated relative
// file path) into a URI.
func FromMemberName(name string) (URI, error) {
	return New("/" + strings.TrimPrefix(name, "/"))
}

// String returns the URI as a plain string.
func (u URI) String() string { return string(u) }

// BaseURI returns the directory portion of the URI. The base URI of an item in
// the package root, and of the package itself, is "/".
func (u URI) BaseURI() URI {
	if u == PackageURI {
		return PackageURI
	}
	return URI(path.Dir(string(u)))
}

// Filename returns the last segment of the URI, or "" for the package URI.
func (u URI) Filename() string {
	if u == PackageURI {
		return ""
	}
	return path.Base(string(u))
}

// Ext returns the extension of the filename without the leading dot, or "" if
// there is none. The extension of /_rels/.rels is "rels".
func (u URI) Ext() string {
	return strings.TrimPrefix(path.Ext(u.Filename()), ".")
}

// Stem returns the filename without its extension.
func (u URI) Stem() string {
	name := u.Filename()
	return strings.TrimSuffix(name, path.Ext(name))
}

// Idx returns the trailing partname number of a tuple part, e.g. 21 for
// /ppt/slides/slide21.xml. ok is false when the stem has no numeric suffix,
// when the suffix has a leading zero, when the stem is all digits, or when
// the number does not fit in an int.
func (u URI) Idx() (n int, ok bool) {
	stem := u.Stem()
	i := len(stem)
	for i > 0 && stem[i-1] >= '0' && stem[i-1] <= '9' {
		i--
	}
	if i == 0 || i == len(stem) || stem[i] == '0' {
		return 0, false
	}
	n, err := strconv.Atoi(stem[i:])
	if err != nil {
		return 0, false
	}
	return n, true
}

// MemberName returns the URI without its leading slash, the form used for zip
// member names and relative file paths.
func (u URI) MemberName() string {
	return strings.TrimPrefix(string(u), "/")
}

// RelsURI returns the URI of the relationships item belonging to the part
// named by u. For the package URI this is [RootRelsURI].
func (u URI) RelsURI() URI {
	if u == PackageURI {
		return RootRelsURI
	}
	return URI(path.Join(string(u.BaseURI()), relsDir, u.Filename()+".rels"))
}

// IsRels reports whether u names a relationships item, i.e. a ".rels" file
// inside a "_rels" directory.
func (u URI) IsRels() bool {
	return u.Ext() == "rels" && path.Base(string(u.BaseURI())) == relsDir
}

// SourceURI returns the URI of the part whose relationships are stored in the
// relationships item u. ok is false if u is not a relationships item.
func (u URI) SourceURI() (URI, bool) {
	if !u.IsRels() {
		return "", false
	}
	dir := path.Dir(string(u.BaseURI()))
	name := strings.TrimSuffix(u.Filename(), ".rels")
	if name == "" {
		return PackageURI, true
	}
	return URI(path.Join(dir, name)), true
}

// RelativeRef returns the reference from the directory base to u, as stored in
// the Target attribute of a relationship. When base is the package root the
// member name is returned.
func (u URI) RelativeRef(base URI) string {
	if base == PackageURI {
		return u.MemberName()
	}
	from := splitSegments(string(base))
	to := splitSegments(string(u.BaseURI()))

	common := 0
	for common < len(from) && common < len(to) && from[common] == to[common] {
		common++
	}

	var b strings.Builder
	for range from[common:] {
		b.WriteString("../")
	}
	for _, seg := range to[common:] {
		b.WriteString(seg)
		b.WriteByte('/')
	}
	b.WriteString(u.Filename())
	return b.String()
}

// FromRelRef resolves ref, a relationship target reference, against the
// directory base. Absolute references are taken as-is.
func FromRelRef(base URI, ref string) (URI, error) {
	if strings.HasPrefix(ref, "/") {
		return New(path.Clean(ref))
	}
	joined := path.Join(string(base), ref)
	if !strings.HasPrefix(joined, "/") {
		joined = "/" + joined
	}
	return New(joined)
}

func splitSegments(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}

// Compare orders two URIs naturally: byte-wise, except that runs of ASCII
// digits are compared by their numeric value. It returns -1, 0 or +1.
func Compare(a, b URI) int {
	return compareNatural(string(a), string(b))
}

// Less reports whether a sorts before b under [Compare].
func Less(a, b URI) bool { return Compare(a, b) < 0 }

// Sort sorts uris in place under [Compare].
func Sort(uris []URI) {
	slices.SortFunc(uris, Compare)
}

func compareNatural(a, b string) int {
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if isDigit(a[i]) && isDigit(b[j]) {
			ei, ej := i, j
			for ei < len(a) && isDigit(a[ei]) {
				ei++
			}
			for ej < len(b) && isDigit(b[ej]) {
				ej++
			}
			if c := compareDigits(a[i:ei], b[j:ej]); c != 0 {
				return c
			}
			i, j = ei, ej
			continue
		}
		if a[i] != b[j] {
			if a[i] < b[j] {
				return -1
			}
			return 1
		}
		i++
		j++
	}
	switch {
	case len(a)-i < len(b)-j:
		return -1
	case len(a)-i > len(b)-j:
		return 1
	}
	return strings.Compare(a, b)
}

// compareDigits compares two digit runs by numeric value without parsing, so
// arbitrarily long runs never overflow. Equal values with different zero
// padding are ordered by the shorter run first.
func compareDigits(a, b string) int {
	ta := strings.TrimLeft(a, "0")
	tb := strings.TrimLeft(b, "0")
	if len(ta) != len(tb) {
		if len(ta) < len(tb) {
			return -1
		}
		return 1
	}
	if c := strings.Compare(ta, tb); c != 0 {
		return c
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	return 0
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
