package opc

import (
	"io"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/opcpack/pkg/contenttype"
	"github.com/matzehuels/opcpack/pkg/errors"
	"github.com/matzehuels/opcpack/pkg/packuri"
	"github.com/matzehuels/opcpack/pkg/parttype"
	"github.com/matzehuels/opcpack/pkg/schema"
)

// State is the lifecycle stage of a Package.
type State int

const (
	// StateEmpty is a package with no graph: freshly built by NewEmpty, or
	// left behind by a failed Open. It cannot be saved.
	StateEmpty State = iota
	// StatePopulated is a package whose graph was built through the API.
	StatePopulated
	// StateLoaded is a package read from a container.
	StateLoaded
	// StateSaved is a package written at least once since it was built or
	// loaded.
	StateSaved
)

func (s State) String() string {
	switch s {
	case StatePopulated:
		return "populated"
	case StateLoaded:
		return "loaded"
	case StateSaved:
		return "saved"
	default:
		return "empty"
	}
}

// Package is the root of a part graph. It owns the package-level
// relationships and, through them, every reachable part.
//
// A Package is not safe for concurrent use.
type Package struct {
	rels    *Relationships
	state   State
	created []*Part
	orphans []*Part
	known   *contenttype.Registry
	source  string
	logger  *log.Logger
}

// Option configures a Package.
type Option func(*Package)

// WithLogger sets the logger used for open and save events. By default
// nothing is logged.
func WithLogger(l *log.Logger) Option {
	return func(p *Package) {
		if l != nil {
			p.logger = l
		}
	}
}

// NewEmpty returns a package with no parts and no relationships.
func NewEmpty(opts ...Option) *Package {
	p := &Package{
		rels:   NewRelationships(),
		logger: log.NewWithOptions(io.Discard, log.Options{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	register(p)
	return p
}

// State returns the package's lifecycle stage.
func (p *Package) State() State { return p.state }

// Source returns the path the package was last opened from, "<memory>" for
// in-memory sources, or "" for packages built through the API.
func (p *Package) Source() string { return p.source }

// Relationships returns the package-level relationships.
func (p *Package) Relationships() *Relationships { return p.rels }

// AddRelationship relates the package root to target, reusing an identical
// existing edge.
func (p *Package) AddRelationship(relType string, target *Part) (*Relationship, error) {
	rel, err := p.rels.GetOrAdd(relType, target)
	if err != nil {
		return nil, err
	}
	p.touch()
	return rel, nil
}

// RelatedPart returns the target of the first root relationship of relType.
func (p *Package) RelatedPart(relType string) (*Part, error) {
	return p.rels.RelatedPart(relType)
}

// MainDocument returns the presentation part.
func (p *Package) MainDocument() (*Part, error) {
	return p.rels.RelatedPart(schema.RTOfficeDocument)
}

// NewPart creates a part of a known content type. Its partname is assigned
// when first requested. The part belongs to p but is only saved once it is
// reachable from the root relationships.
func (p *Package) NewPart(contentType string, blob []byte) (*Part, error) {
	if _, err := parttype.Lookup(contentType); err != nil {
		return nil, err
	}
	part := newPart("", contentType, blob)
	p.adopt(part)
	return part, nil
}

// NewPartNamed creates a part with an explicit partname. The content type
// need not be in the part type table. A name already used in p is a
// DUPLICATE_KEY error.
func (p *Package) NewPartNamed(name packuri.URI, contentType string, blob []byte) (*Part, error) {
	if _, err := packuri.New(string(name)); err != nil {
		return nil, err
	}
	if _, err := p.PartByName(name); err == nil {
		return nil, errors.New(errors.ErrCodeDuplicateKey, "partname %s already in use", name)
	}
	part := newPart(name, contentType, blob)
	p.adopt(part)
	return part, nil
}

func (p *Package) adopt(part *Part) {
	p.touch()
	p.created = append(p.created, part)
}

func (p *Package) touch() {
	if p.state == StateEmpty {
		p.state = StatePopulated
	}
}

// Walk calls fn once for every part reachable from the root relationships,
// depth first, following relationships in id order. Cycles are visited once.
// A non-nil error from fn stops the walk and is returned.
func (p *Package) Walk(fn func(*Part) error) error {
	visited := make(map[*Part]bool)
	var visit func(rs *Relationships) error
	visit = func(rs *Relationships) error {
		for _, target := range rs.Targets() {
			if visited[target] {
				continue
			}
			visited[target] = true
			if err := fn(target); err != nil {
				return err
			}
			if err := visit(target.rels); err != nil {
				return err
			}
		}
		return nil
	}
	return visit(p.rels)
}

// Parts returns the reachable parts in walk order.
func (p *Package) Parts() []*Part {
	var out []*Part
	_ = p.Walk(func(part *Part) error {
		out = append(out, part)
		return nil
	})
	return out
}

// PartByName returns the part named name, or a NOT_FOUND error. Reachable,
// created and orphaned parts are searched; parts without an assigned name
// are not considered.
func (p *Package) PartByName(name packuri.URI) (*Part, error) {
	for _, m := range p.members() {
		if m.partname == name {
			return m, nil
		}
	}
	return nil, errors.New(errors.ErrCodeNotFound, "no part named %s", name)
}

// Orphans returns the parts of the last opened container that no
// relationship reaches. They are kept for inspection and never saved.
func (p *Package) Orphans() []*Part {
	return append([]*Part(nil), p.orphans...)
}

// ContentTypes returns the manifest read by the last Open, or nil.
func (p *Package) ContentTypes() *contenttype.Registry { return p.known }

// members returns every part p holds: reachable ones in walk order, then
// created and orphaned parts not reachable.
func (p *Package) members() []*Part {
	out := p.Parts()
	seen := make(map[*Part]bool, len(out))
	for _, part := range out {
		seen[part] = true
	}
	for _, extra := range [][]*Part{p.created, p.orphans} {
		for _, part := range extra {
			if !seen[part] {
				seen[part] = true
				out = append(out, part)
			}
		}
	}
	return out
}

func (p *Package) owns(part *Part) bool {
	for _, m := range p.members() {
		if m == part {
			return true
		}
	}
	return false
}

// CoreProperties returns the core document properties part, creating it
// with default content and relating it from the root if the package has
// none.
func (p *Package) CoreProperties() (*Part, error) {
	if part, err := p.rels.RelatedPart(schema.RTCoreProperties); err == nil {
		return part, nil
	}
	part, err := p.NewPart(schema.CTCoreProperties, defaultBlob("core.xml"))
	if err != nil {
		return nil, err
	}
	if _, err := p.AddRelationship(schema.RTCoreProperties, part); err != nil {
		return nil, err
	}
	p.logger.Debug("created core properties part")
	return part, nil
}

// Renumber renames the tuple parts of contentType so their numbers run
// 1..n in the parts' current natural order. Relationship targets follow
// automatically since they are resolved when saved.
func (p *Package) Renumber(contentType string) error {
	d, err := parttype.Lookup(contentType)
	if err != nil {
		return err
	}
	if d.Cardinality != parttype.Tuple {
		return errors.New(errors.ErrCodeInvalidInput, "%s parts are not numbered", d.Name)
	}

	var parts []*Part
	for _, m := range p.Parts() {
		if m.contentType != contentType {
			continue
		}
		if _, err := m.Partname(); err != nil {
			return err
		}
		parts = append(parts, m)
	}
	sortByPartname(parts)
	for i, part := range parts {
		part.partname = d.Partname(i + 1)
	}
	p.touch()
	return nil
}

func sortByPartname(parts []*Part) {
	slices.SortFunc(parts, func(a, b *Part) int { return packuri.Compare(a.partname, b.partname) })
}
