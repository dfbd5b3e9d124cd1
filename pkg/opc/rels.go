package opc

import (
	"cmp"
	"encoding/xml"
	"slices"
	"strconv"
	"strings"

	"github.com/matzehuels/opcpack/pkg/errors"
	"github.com/matzehuels/opcpack/pkg/packuri"
	"github.com/matzehuels/opcpack/pkg/schema"
)

const rIDPrefix = "rId"

// Relationship is a directed, typed edge from its owning collection's source
// to either a part of the same package or an external reference.
type Relationship struct {
	ID   string
	Type string

	target   *Part
	external string
	isExt    bool
}

// NewRelationship returns an internal relationship to target. A nil target
// is rejected when the relationship is added to a collection.
func NewRelationship(id, relType string, target *Part) *Relationship {
	return &Relationship{ID: id, Type: relType, target: target}
}

// NewExternalRelationship returns a relationship to ref, an opaque reference
// outside the package such as a hyperlink. ref is never resolved.
func NewExternalRelationship(id, relType, ref string) *Relationship {
	return &Relationship{ID: id, Type: relType, external: ref, isExt: true}
}

// IsExternal reports whether the relationship points outside the package.
func (r *Relationship) IsExternal() bool { return r.isExt }

// Target returns the target part, or nil for external relationships.
func (r *Relationship) Target() *Part { return r.target }

// ExternalRef returns the external reference, or "" for internal relationships.
func (r *Relationship) ExternalRef() string { return r.external }

// TargetRef returns the value of the serialized Target attribute: the
// external reference, or the target partname relative to base. The target's
// partname is resolved at call time, so a part named after the relationship
// was created is still referenced correctly.
func (r *Relationship) TargetRef(base packuri.URI) (string, error) {
	if r.IsExternal() {
		return r.external, nil
	}
	if r.target == nil {
		return "", errors.New(errors.ErrCodeInvalidInput, "relationship %s has no target", r.ID)
	}
	name, err := r.target.Partname()
	if err != nil {
		return "", err
	}
	return name.RelativeRef(base), nil
}

// rIDNumber returns n for an id of the form rId<n> with n positive and
// written without leading zeros.
func rIDNumber(id string) (int, bool) {
	digits, ok := strings.CutPrefix(id, rIDPrefix)
	if !ok || digits == "" || digits[0] == '0' {
		return 0, false
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// Relationships is the set of relationships owned by one part or by the
// package root. Ids are unique within the collection and iteration is always
// in ascending numeric id order, whatever the insertion order.
type Relationships struct {
	byID map[string]*Relationship
}

// NewRelationships returns an empty collection.
func NewRelationships() *Relationships {
	return &Relationships{byID: make(map[string]*Relationship)}
}

// Len returns the number of relationships.
func (rs *Relationships) Len() int { return len(rs.byID) }

// Add inserts rel. An id already present is a DUPLICATE_KEY error; a nil
// relationship or an internal one without a target is INVALID_INPUT.
func (rs *Relationships) Add(rel *Relationship) error {
	if rel == nil {
		return errors.New(errors.ErrCodeInvalidInput, "nil relationship")
	}
	if !rel.isExt && rel.target == nil {
		return errors.New(errors.ErrCodeInvalidInput, "relationship %s has no target", rel.ID)
	}
	if _, dup := rs.byID[rel.ID]; dup {
		return errors.New(errors.ErrCodeDuplicateKey, "relationship id %s already in use", rel.ID)
	}
	rs.byID[rel.ID] = rel
	return nil
}

// Get returns the relationship with the given id.
func (rs *Relationships) Get(id string) (*Relationship, bool) {
	r, ok := rs.byID[id]
	return r, ok
}

// Remove deletes the relationship with the given id and reports whether it
// existed. The freed id becomes available to NextID again.
func (rs *Relationships) Remove(id string) bool {
	_, ok := rs.byID[id]
	delete(rs.byID, id)
	return ok
}

// NextID returns the lowest rId<n> not in use. Ids not of that form never
// occupy a number, so they never keep a low gap from being reused.
func (rs *Relationships) NextID() string {
	used := make(map[int]bool, len(rs.byID))
	for id := range rs.byID {
		if n, ok := rIDNumber(id); ok {
			used[n] = true
		}
	}
	n := 1
	for used[n] {
		n++
	}
	return rIDPrefix + strconv.Itoa(n)
}

// All returns every relationship in ascending numeric id order. Ids that are
// not of the form rId<n> sort last, by string.
func (rs *Relationships) All() []*Relationship {
	out := make([]*Relationship, 0, len(rs.byID))
	for _, r := range rs.byID {
		out = append(out, r)
	}
	slices.SortFunc(out, func(a, b *Relationship) int { return compareIDs(a.ID, b.ID) })
	return out
}

func compareIDs(a, b string) int {
	na, oka := rIDNumber(a)
	nb, okb := rIDNumber(b)
	switch {
	case oka && okb:
		return cmp.Compare(na, nb)
	case oka:
		return -1
	case okb:
		return 1
	}
	return strings.Compare(a, b)
}

// OfType returns the relationships of relType in ascending id order.
func (rs *Relationships) OfType(relType string) []*Relationship {
	var out []*Relationship
	for _, r := range rs.All() {
		if r.Type == relType {
			out = append(out, r)
		}
	}
	return out
}

// RelatedPart returns the target of the first internal relationship of
// relType, failing with NOT_FOUND if there is none.
func (rs *Relationships) RelatedPart(relType string) (*Part, error) {
	for _, r := range rs.OfType(relType) {
		if !r.IsExternal() {
			return r.target, nil
		}
	}
	return nil, errors.New(errors.ErrCodeNotFound, "no relationship of type %s", relType)
}

// GetOrAdd returns the existing relationship of relType to target, or adds
// one under the next free id. A nil target is INVALID_INPUT.
func (rs *Relationships) GetOrAdd(relType string, target *Part) (*Relationship, error) {
	if target == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "relationship of type %s has no target", relType)
	}
	for _, r := range rs.All() {
		if r.Type == relType && r.target == target {
			return r, nil
		}
	}
	rel := NewRelationship(rs.NextID(), relType, target)
	rs.byID[rel.ID] = rel
	return rel, nil
}

// GetOrAddExternal is GetOrAdd for an external reference.
func (rs *Relationships) GetOrAddExternal(relType, ref string) (*Relationship, error) {
	if err := errors.ValidateExternalTarget(ref); err != nil {
		return nil, err
	}
	for _, r := range rs.All() {
		if r.Type == relType && r.IsExternal() && r.external == ref {
			return r, nil
		}
	}
	rel := NewExternalRelationship(rs.NextID(), relType, ref)
	rs.byID[rel.ID] = rel
	return rel, nil
}

// Targets returns the distinct internal targets in id order.
func (rs *Relationships) Targets() []*Part {
	var out []*Part
	seen := make(map[*Part]bool)
	for _, r := range rs.All() {
		if r.target != nil && !seen[r.target] {
			seen[r.target] = true
			out = append(out, r.target)
		}
	}
	return out
}

type relationshipsXML struct {
	XMLName xml.Name          `xml:"http://schemas.openxmlformats.org/package/2006/relationships Relationships"`
	Rels    []relationshipXML `xml:"Relationship"`
}

type relationshipXML struct {
	ID         string `xml:"Id,attr"`
	Type       string `xml:"Type,attr"`
	Target     string `xml:"Target,attr"`
	TargetMode string `xml:"TargetMode,attr,omitempty"`
}

// marshalRels renders rs as a relationships item with targets relative to base.
func marshalRels(rs *Relationships, base packuri.URI) ([]byte, error) {
	doc := relationshipsXML{}
	for _, r := range rs.All() {
		target, err := r.TargetRef(base)
		if err != nil {
			return nil, err
		}
		rx := relationshipXML{ID: r.ID, Type: r.Type, Target: target}
		if r.IsExternal() {
			rx.TargetMode = schema.TargetModeExternal
		}
		doc.Rels = append(doc.Rels, rx)
	}
	body, err := xml.Marshal(doc)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode relationships")
	}
	return append([]byte(schema.XMLHeader), body...), nil
}

func parseRels(b []byte) ([]relationshipXML, error) {
	var doc relationshipsXML
	if err := xml.Unmarshal(b, &doc); err != nil {
		return nil, err
	}
	return doc.Rels, nil
}
