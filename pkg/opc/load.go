package opc

import (
	"bytes"
	"io"
	"time"

	"github.com/matzehuels/opcpack/pkg/contenttype"
	"github.com/matzehuels/opcpack/pkg/errors"
	"github.com/matzehuels/opcpack/pkg/observability"
	"github.com/matzehuels/opcpack/pkg/packuri"
	"github.com/matzehuels/opcpack/pkg/phys"
	"github.com/matzehuels/opcpack/pkg/schema"
)

const memorySource = "<memory>"

// Open reads the zip file or expanded directory at path.
func Open(path string, opts ...Option) (*Package, error) {
	p := NewEmpty(opts...)
	if err := p.Open(path); err != nil {
		return nil, err
	}
	return p, nil
}

// OpenReader reads a zip container from r.
func OpenReader(r io.ReaderAt, size int64, opts ...Option) (*Package, error) {
	p := NewEmpty(opts...)
	if err := p.OpenReader(r, size); err != nil {
		return nil, err
	}
	return p, nil
}

// OpenBytes reads a zip container held in memory.
func OpenBytes(b []byte, opts ...Option) (*Package, error) {
	return OpenReader(bytes.NewReader(b), int64(len(b)), opts...)
}

// Open discards the current graph, including unsaved changes, and rebuilds
// it from the container at path. On failure the package is left empty.
func (p *Package) Open(path string) error {
	return p.open(path, func() (phys.Reader, error) { return phys.OpenReader(path) })
}

// OpenReader is Open for a zip container read from r.
func (p *Package) OpenReader(r io.ReaderAt, size int64) error {
	return p.open(memorySource, func() (phys.Reader, error) { return phys.NewZipReader(r, size) })
}

func (p *Package) open(source string, acquire func() (phys.Reader, error)) (err error) {
	start := time.Now()
	observability.Package().OnOpenStart(source)
	p.reset()

	var parts int
	defer func() {
		if err != nil {
			p.reset()
		}
		observability.Package().OnOpenComplete(source, parts, time.Since(start), err)
	}()

	r, err := acquire()
	if err != nil {
		return err
	}
	defer r.Close()

	if err := p.load(r); err != nil {
		return err
	}

	parts = len(p.Parts())
	p.source = source
	p.state = StateLoaded
	p.logger.Info("opened package",
		"source", source,
		"parts", parts,
		"root_rels", p.rels.Len(),
		"orphans", len(p.orphans),
		"duration", time.Since(start))
	return nil
}

func (p *Package) reset() {
	p.rels = NewRelationships()
	p.created = nil
	p.orphans = nil
	p.known = nil
	p.source = ""
	p.state = StateEmpty
}

// load builds the graph in two passes: one part per content item, then the
// relationships, followed from the root with each part wired once.
func (p *Package) load(r phys.Reader) error {
	reg, err := contenttype.Load(r)
	if err != nil {
		return err
	}

	byName := make(map[packuri.URI]*Part)
	var order []packuri.URI
	for _, uri := range r.URIs() {
		if uri == packuri.ContentTypesURI || uri.IsRels() {
			continue
		}
		ct, err := reg.Lookup(uri)
		if err != nil {
			return errors.Wrap(errors.ErrCodeLookup, err, "part %s", uri)
		}
		blob, err := r.Blob(uri)
		if err != nil {
			return err
		}
		part := newPart(uri, ct, blob)
		if part.IsXML() {
			if err := checkWellFormed(blob); err != nil {
				return errors.Wrap(errors.ErrCodeNotXML, err, "part %s is not well-formed XML", uri)
			}
		}
		byName[uri] = part
		order = append(order, uri)
		p.logger.Debug("loaded part", "partname", uri, "content_type", ct, "size", len(blob))
	}

	visited := make(map[*Part]bool)
	var wire func(source packuri.URI, rs *Relationships) error
	wire = func(source packuri.URI, rs *Relationships) error {
		records, err := readRels(r, source)
		if err != nil {
			return err
		}
		base := source.BaseURI()
		for _, rec := range records {
			var rel *Relationship
			if rec.TargetMode == schema.TargetModeExternal {
				rel = NewExternalRelationship(rec.ID, rec.Type, rec.Target)
			} else {
				uri, err := packuri.FromRelRef(base, rec.Target)
				if err != nil {
					return errors.Wrap(errors.ErrCodeCorruptedPackage, err, "relationship %s of %s", rec.ID, source)
				}
				target, ok := byName[uri]
				if !ok {
					return errors.New(errors.ErrCodeCorruptedPackage,
						"relationship %s of %s targets missing part %s", rec.ID, source, uri)
				}
				rel = NewRelationship(rec.ID, rec.Type, target)
			}
			if err := rs.Add(rel); err != nil {
				return errors.Wrap(errors.ErrCodeCorruptedPackage, err, "relationships of %s", source)
			}
		}
		for _, target := range rs.Targets() {
			if visited[target] {
				continue
			}
			visited[target] = true
			if err := wire(target.partname, target.rels); err != nil {
				return err
			}
		}
		return nil
	}
	if err := wire(packuri.PackageURI, p.rels); err != nil {
		return err
	}

	for _, uri := range order {
		if part := byName[uri]; !visited[part] {
			p.orphans = append(p.orphans, part)
		}
	}
	sortByPartname(p.orphans)
	p.known = reg
	return nil
}

// readRels returns the relationship records of source, or none if the
// container has no relationships item for it.
func readRels(r phys.Reader, source packuri.URI) ([]relationshipXML, error) {
	relsURI := source.RelsURI()
	if !r.Has(relsURI) {
		return nil, nil
	}
	b, err := r.Blob(relsURI)
	if err != nil {
		return nil, err
	}
	records, err := parseRels(b)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeCorruptedPackage, err, "parse %s", relsURI)
	}
	return records, nil
}
