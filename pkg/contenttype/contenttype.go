// Package contenttype resolves the content type of a part from the package's
// [Content_Types].xml manifest, and composes a new manifest for saving.
//
// # Overview
//
// The manifest holds two kinds of entries. A Default maps a file extension to
// a content type; an Override maps one exact partname to a content type and
// always wins over a Default. Both are matched case-insensitively.
//
//	reg, err := contenttype.Load(reader)
//	ct, err := reg.Lookup("/ppt/slides/slide1.xml")
//
// # Composing
//
// On save the manifest is rebuilt from the parts actually being written, see
// [Compose]. Extensions with no known default content type cannot be
// expressed and fail with a LOOKUP error.
package contenttype

import (
	"encoding/xml"
	"slices"
	"strings"

	"github.com/matzehuels/opcpack/pkg/errors"
	"github.com/matzehuels/opcpack/pkg/packuri"
	"github.com/matzehuels/opcpack/pkg/phys"
	"github.com/matzehuels/opcpack/pkg/schema"
)

// Default is an extension-keyed manifest entry. Extension has no leading dot.
type Default struct {
	Extension   string
	ContentType string
}

// Override is a partname-keyed manifest entry.
type Override struct {
	PartName    packuri.URI
	ContentType string
}

// Entry is a partname together with its content type, the input to Compose.
type Entry struct {
	PartName    packuri.URI
	ContentType string
}

// Registry maps partnames to content types.
type Registry struct {
	defaults  map[string]Default
	overrides map[string]Override
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{
		defaults:  make(map[string]Default),
		overrides: make(map[string]Override),
	}
}

// AddDefault maps ext (with or without a leading dot) to ct, replacing any
// earlier mapping for the same extension.
func (r *Registry) AddDefault(ext, ct string) {
	ext = strings.TrimPrefix(ext, ".")
	r.defaults[strings.ToLower(ext)] = Default{Extension: ext, ContentType: ct}
}

// AddOverride maps the partname uri to ct.
func (r *Registry) AddOverride(uri packuri.URI, ct string) {
	r.overrides[strings.ToLower(string(uri))] = Override{PartName: uri, ContentType: ct}
}

// Lookup returns the content type for uri: its override if one exists,
// otherwise the default for its extension.
func (r *Registry) Lookup(uri packuri.URI) (string, error) {
	if o, ok := r.overrides[strings.ToLower(string(uri))]; ok {
		return o.ContentType, nil
	}
	if d, ok := r.defaults[strings.ToLower(uri.Ext())]; ok {
		return d.ContentType, nil
	}
	return "", errors.New(errors.ErrCodeLookup, "no content type for partname %q", uri)
}

// DefaultFor returns the content type registered for ext, if any.
func (r *Registry) DefaultFor(ext string) (string, bool) {
	d, ok := r.defaults[strings.ToLower(strings.TrimPrefix(ext, "."))]
	return d.ContentType, ok
}

// Defaults returns the Default entries sorted by extension.
func (r *Registry) Defaults() []Default {
	out := make([]Default, 0, len(r.defaults))
	for _, d := range r.defaults {
		out = append(out, d)
	}
	slices.SortFunc(out, func(a, b Default) int {
		return strings.Compare(strings.ToLower(a.Extension), strings.ToLower(b.Extension))
	})
	return out
}

// Overrides returns the Override entries in natural partname order.
func (r *Registry) Overrides() []Override {
	out := make([]Override, 0, len(r.overrides))
	for _, o := range r.overrides {
		out = append(out, o)
	}
	slices.SortFunc(out, func(a, b Override) int { return packuri.Compare(a.PartName, b.PartName) })
	return out
}

// Len returns the number of manifest entries, defaults and overrides combined.
func (r *Registry) Len() int { return len(r.defaults) + len(r.overrides) }

type typesXML struct {
	XMLName   xml.Name      `xml:"http://schemas.openxmlformats.org/package/2006/content-types Types"`
	Defaults  []defaultXML  `xml:"Default"`
	Overrides []overrideXML `xml:"Override"`
}

type defaultXML struct {
	Extension   string `xml:"Extension,attr"`
	ContentType string `xml:"ContentType,attr"`
}

type overrideXML struct {
	PartName    string `xml:"PartName,attr"`
	ContentType string `xml:"ContentType,attr"`
}

// Load reads the manifest item of a container.
func Load(r phys.Reader) (*Registry, error) {
	if !r.Has(packuri.ContentTypesURI) {
		return nil, errors.New(errors.ErrCodeCorruptedPackage, "container has no %s", packuri.ContentTypesURI)
	}
	b, err := r.Blob(packuri.ContentTypesURI)
	if err != nil {
		return nil, err
	}
	return Parse(b)
}

// Parse decodes a [Content_Types].xml document.
func Parse(b []byte) (*Registry, error) {
	var doc typesXML
	if err := xml.Unmarshal(b, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeCorruptedPackage, err, "parse %s", packuri.ContentTypesURI)
	}

	r := New()
	for _, d := range doc.Defaults {
		if d.Extension == "" {
			return nil, errors.New(errors.ErrCodeCorruptedPackage, "Default element without Extension")
		}
		r.AddDefault(d.Extension, d.ContentType)
	}
	for _, o := range doc.Overrides {
		uri, err := packuri.New(o.PartName)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeCorruptedPackage, err, "Override element")
		}
		r.AddOverride(uri, o.ContentType)
	}
	return r, nil
}

// Marshal renders the registry as a [Content_Types].xml document: Defaults
// sorted by extension, then Overrides in natural partname order.
func (r *Registry) Marshal() ([]byte, error) {
	doc := typesXML{}
	for _, d := range r.Defaults() {
		doc.Defaults = append(doc.Defaults, defaultXML(d))
	}
	for _, o := range r.Overrides() {
		doc.Overrides = append(doc.Overrides, overrideXML{PartName: string(o.PartName), ContentType: o.ContentType})
	}
	body, err := xml.Marshal(doc)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode content types")
	}
	return append([]byte(schema.XMLHeader), body...), nil
}
