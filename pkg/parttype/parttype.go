// Package parttype is the static table of structural rules for the part types
// a presentation package may contain.
//
// # Overview
//
// Each known content type maps to a [Descriptor] telling the packaging engine
// how to name a new part of that type, whether several may coexist, whether a
// well-formed package needs at least one, and which relationship type other
// parts use to reference it.
//
// The table is closed: adding a part type is a code change. Lookups of content
// types outside the table fail with a LOOKUP error.
//
// # Usage
//
//	d, err := parttype.Lookup(schema.CTSlide)
//	if err != nil {
//	    return err
//	}
//	d.Partname(3) // "/ppt/slides/slide3.xml"
package parttype

import (
	"slices"
	"strconv"
	"strings"

	"github.com/matzehuels/opcpack/pkg/errors"
	"github.com/matzehuels/opcpack/pkg/packuri"
	"github.com/matzehuels/opcpack/pkg/schema"
)

// Cardinality tells whether a part type has one instance or a numbered series.
type Cardinality int

const (
	// Singleton parts have exactly one fixed partname.
	Singleton Cardinality = iota
	// Tuple parts are numbered: slide1.xml, slide2.xml, ...
	Tuple
)

func (c Cardinality) String() string {
	if c == Tuple {
		return "tuple"
	}
	return "singleton"
}

// RelsPolicy tells whether parts of a type carry their own relationships item.
type RelsPolicy int

const (
	RelsNever RelsPolicy = iota
	RelsOptional
	RelsAlways
)

func (p RelsPolicy) String() string {
	switch p {
	case RelsOptional:
		return "optional"
	case RelsAlways:
		return "always"
	default:
		return "never"
	}
}

// Descriptor is the immutable record for one part type.
type Descriptor struct {
	ContentType string
	Name        string // human-readable, e.g. "slide layout"
	Basename    string // stem used when synthesizing partnames
	Ext         string // with leading dot
	Cardinality Cardinality
	Required    bool
	BaseURI     packuri.URI
	Rels        RelsPolicy
	RelType     string
}

// Partname synthesizes the partname of the n-th instance. Singleton
// descriptors ignore n.
func (d Descriptor) Partname(n int) packuri.URI {
	var b strings.Builder
	b.WriteString(string(d.BaseURI))
	if d.BaseURI != packuri.PackageURI {
		b.WriteByte('/')
	}
	b.WriteString(d.Basename)
	if d.Cardinality == Tuple {
		b.WriteString(strconv.Itoa(n))
	}
	b.WriteString(d.Ext)
	return packuri.URI(b.String())
}

// Matches reports whether uri follows this descriptor's naming scheme, i.e.
// lives under BaseURI with the expected basename and extension.
func (d Descriptor) Matches(uri packuri.URI) bool {
	if uri.BaseURI() != d.BaseURI || "."+uri.Ext() != d.Ext {
		return false
	}
	if d.Cardinality == Singleton {
		return uri.Stem() == d.Basename
	}
	n, ok := uri.Idx()
	return ok && uri.Stem() == d.Basename+strconv.Itoa(n)
}

// Lookup returns the descriptor for contentType.
func Lookup(contentType string) (Descriptor, error) {
	d, ok := table[contentType]
	if !ok {
		return Descriptor{}, errors.New(errors.ErrCodeLookup, "no part type for content type %q", contentType)
	}
	return d, nil
}

// All returns every descriptor sorted by content type.
func All() []Descriptor {
	out := make([]Descriptor, 0, len(table))
	for _, d := range table {
		out = append(out, d)
	}
	slices.SortFunc(out, func(a, b Descriptor) int { return strings.Compare(a.ContentType, b.ContentType) })
	return out
}

// Required returns the descriptors of part types every package must contain,
// sorted by content type.
func Required() []Descriptor {
	var out []Descriptor
	for _, d := range All() {
		if d.Required {
			out = append(out, d)
		}
	}
	return out
}

func media(ct, ext string) Descriptor {
	return Descriptor{
		ContentType: ct,
		Name:        "image",
		Basename:    "image",
		Ext:         ext,
		Cardinality: Tuple,
		BaseURI:     "/ppt/media",
		Rels:        RelsNever,
		RelType:     schema.RTImage,
	}
}

var table = func() map[string]Descriptor {
	entries := []Descriptor{
		{schema.CTCoreProperties, "core properties", "core", ".xml", Singleton, true, "/docProps", RelsNever, schema.RTCoreProperties},
		{schema.CTExtendedProperties, "extended properties", "app", ".xml", Singleton, true, "/docProps", RelsNever, schema.RTExtendedProperties},
		{schema.CTCustomProperties, "custom properties", "custom", ".xml", Singleton, false, "/docProps", RelsNever, schema.RTCustomProperties},
		{schema.CTPresentationMain, "presentation", "presentation", ".xml", Singleton, true, "/ppt", RelsAlways, schema.RTOfficeDocument},
		{schema.CTPresProps, "presentation properties", "presProps", ".xml", Singleton, true, "/ppt", RelsNever, schema.RTPresProps},
		{schema.CTViewProps, "view properties", "viewProps", ".xml", Singleton, true, "/ppt", RelsNever, schema.RTViewProps},
		{schema.CTTableStyles, "table styles", "tableStyles", ".xml", Singleton, true, "/ppt", RelsNever, schema.RTTableStyles},
		{schema.CTCommentAuthors, "comment authors", "commentAuthors", ".xml", Singleton, false, "/ppt", RelsNever, schema.RTCommentAuthors},
		{schema.CTSlideMaster, "slide master", "slideMaster", ".xml", Tuple, true, "/ppt/slideMasters", RelsAlways, schema.RTSlideMaster},
		{schema.CTSlideLayout, "slide layout", "slideLayout", ".xml", Tuple, true, "/ppt/slideLayouts", RelsAlways, schema.RTSlideLayout},
		{schema.CTSlide, "slide", "slide", ".xml", Tuple, false, "/ppt/slides", RelsAlways, schema.RTSlide},
		{schema.CTTheme, "theme", "theme", ".xml", Tuple, true, "/ppt/theme", RelsNever, schema.RTTheme},
		{schema.CTNotesMaster, "notes master", "notesMaster", ".xml", Tuple, false, "/ppt/notesMasters", RelsAlways, schema.RTNotesMaster},
		{schema.CTNotesSlide, "notes slide", "notesSlide", ".xml", Tuple, false, "/ppt/notesSlides", RelsAlways, schema.RTNotesSlide},
		{schema.CTHandoutMaster, "handout master", "handoutMaster", ".xml", Tuple, false, "/ppt/handoutMasters", RelsAlways, schema.RTHandoutMaster},
		{schema.CTComments, "comments", "comment", ".xml", Tuple, false, "/ppt/comments", RelsNever, schema.RTComments},
		{schema.CTTags, "tags", "tag", ".xml", Tuple, false, "/ppt/tags", RelsNever, schema.RTTags},
		{schema.CTChart, "chart", "chart", ".xml", Tuple, false, "/ppt/charts", RelsOptional, schema.RTChart},
		{schema.CTPrinterSettings, "printer settings", "printerSettings", ".bin", Tuple, false, "/ppt/printerSettings", RelsNever, schema.RTPrinterSettings},
		{schema.CTVMLDrawing, "VML drawing", "vmlDrawing", ".vml", Tuple, false, "/ppt/drawings", RelsOptional, schema.RTVMLDrawing},
		{schema.CTOLEObject, "OLE object", "oleObject", ".bin", Tuple, false, "/ppt/embeddings", RelsNever, schema.RTOLEObject},
		{schema.CTSpreadsheet, "embedded workbook", "Microsoft_Excel_Sheet", ".xlsx", Tuple, false, "/ppt/embeddings", RelsNever, schema.RTPackage},
		media(schema.CTBMP, ".bmp"),
		media(schema.CTGIF, ".gif"),
		media(schema.CTJPEG, ".jpeg"),
		media(schema.CTPNG, ".png"),
		media(schema.CTTIFF, ".tiff"),
		media(schema.CTEMF, ".emf"),
		media(schema.CTWMF, ".wmf"),
		media(schema.CTMSPhoto, ".wdp"),
	}
	m := make(map[string]Descriptor, len(entries))
	for _, d := range entries {
		m[d.ContentType] = d
	}
	return m
}()
