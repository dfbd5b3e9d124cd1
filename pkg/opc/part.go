package opc

import (
	"bytes"
	"encoding/xml"
	"io"
	"strings"

	"github.com/matzehuels/opcpack/pkg/errors"
	"github.com/matzehuels/opcpack/pkg/packuri"
	"github.com/matzehuels/opcpack/pkg/parttype"
	"github.com/matzehuels/opcpack/pkg/schema"
)

// Part is a node of the package graph: a named, typed blob with its own
// outgoing relationships.
//
// Parts read from a container carry their partname from the start. Parts
// created through [Package.NewPart] are named on first request, following
// the part type table for their content type.
type Part struct {
	partname    packuri.URI // empty until assigned
	contentType string
	blob        []byte
	rels        *Relationships
}

func newPart(name packuri.URI, contentType string, blob []byte) *Part {
	return &Part{
		partname:    name,
		contentType: contentType,
		blob:        blob,
		rels:        NewRelationships(),
	}
}

// ContentType returns the part's content type.
func (p *Part) ContentType() string { return p.contentType }

// Blob returns the part's bytes. The slice is shared, not copied.
func (p *Part) Blob() []byte { return p.blob }

// SetBlob replaces the part's bytes.
func (p *Part) SetBlob(b []byte) { p.blob = b }

// Relationships returns the part's outgoing relationships.
func (p *Part) Relationships() *Relationships { return p.rels }

// AddRelationship relates p to target, reusing an identical existing edge.
func (p *Part) AddRelationship(relType string, target *Part) (*Relationship, error) {
	return p.rels.GetOrAdd(relType, target)
}

// AddExternalRelationship relates p to an external reference, reusing an
// identical existing edge.
func (p *Part) AddExternalRelationship(relType, ref string) (*Relationship, error) {
	return p.rels.GetOrAddExternal(relType, ref)
}

// RelatedPart returns the target of p's first relationship of relType.
func (p *Part) RelatedPart(relType string) (*Part, error) {
	return p.rels.RelatedPart(relType)
}

// Descriptor returns the part type table entry for p's content type.
func (p *Part) Descriptor() (parttype.Descriptor, error) {
	return parttype.Lookup(p.contentType)
}

// AssignedPartname returns the partname if one has been assigned.
func (p *Part) AssignedPartname() (packuri.URI, bool) {
	return p.partname, p.partname != ""
}

// Partname returns the part's name, assigning one first if the part has none.
//
// A singleton part gets the fixed name of its type. A tuple part gets the
// smallest positive number not taken by another part of the same type in the
// package that contains it. Once assigned the name never changes.
func (p *Part) Partname() (packuri.URI, error) {
	if p.partname != "" {
		return p.partname, nil
	}
	d, err := p.Descriptor()
	if err != nil {
		return "", err
	}
	if d.Cardinality == parttype.Singleton {
		p.partname = d.Partname(0)
		return p.partname, nil
	}

	pkg := Containing(p)
	if pkg == nil {
		return "", errors.New(errors.ErrCodeInvalidState, "cannot number a %s outside a package", d.Name)
	}
	p.partname = d.Partname(nextPartnameIdx(d, pkg.members()))
	return p.partname, nil
}

// nextPartnameIdx returns the smallest positive number not used by a named
// member matching d.
func nextPartnameIdx(d parttype.Descriptor, members []*Part) int {
	used := make(map[int]bool)
	for _, m := range members {
		if m.partname == "" || !d.Matches(m.partname) {
			continue
		}
		if n, ok := m.partname.Idx(); ok {
			used[n] = true
		}
	}
	n := 1
	for used[n] {
		n++
	}
	return n
}

// SetPartname names a part that has no name yet. Renaming is a
// PARTNAME_ASSIGNED error and a name held by another part of the same
// package is a DUPLICATE_KEY error.
func (p *Part) SetPartname(name packuri.URI) error {
	if _, err := packuri.New(string(name)); err != nil {
		return err
	}
	if p.partname != "" {
		return errors.New(errors.ErrCodePartnameAssigned, "part already named %s", p.partname)
	}
	if pkg := Containing(p); pkg != nil {
		for _, m := range pkg.members() {
			if m != p && m.partname == name {
				return errors.New(errors.ErrCodeDuplicateKey, "partname %s already in use", name)
			}
		}
	}
	p.partname = name
	return nil
}

// IsXML reports whether the part's content is XML and must be well-formed.
func (p *Part) IsXML() bool {
	ct := p.contentType
	if ct == schema.CTXML || strings.HasSuffix(ct, "+xml") {
		return true
	}
	switch strings.ToLower(p.partname.Ext()) {
	case "xml", "rels":
		return true
	}
	return false
}

// checkWellFormed decodes b token by token and returns the first syntax error.
func checkWellFormed(b []byte) error {
	dec := xml.NewDecoder(bytes.NewReader(b))
	dec.Strict = true
	dec.CharsetReader = func(_ string, input io.Reader) (io.Reader, error) { return input, nil }
	sawElement := false
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		if _, ok := tok.(xml.StartElement); ok {
			sawElement = true
		}
	}
	if !sawElement {
		return errors.New(errors.ErrCodeNotXML, "no root element")
	}
	return nil
}

func (p *Part) String() string {
	if p.partname != "" {
		return string(p.partname)
	}
	return "<unnamed " + p.contentType + ">"
}
