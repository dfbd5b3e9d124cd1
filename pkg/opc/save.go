package opc

import (
	"io"
	"time"

	"github.com/matzehuels/opcpack/pkg/contenttype"
	"github.com/matzehuels/opcpack/pkg/errors"
	"github.com/matzehuels/opcpack/pkg/observability"
	"github.com/matzehuels/opcpack/pkg/packuri"
	"github.com/matzehuels/opcpack/pkg/phys"
)

const streamDest = "<stream>"

// Save writes the package to path: an expanded directory if path ends with
// a separator or names an existing directory, a zip file otherwise. Nothing
// is left at path if the save fails.
func (p *Package) Save(path string) error {
	return p.save(path, func() (phys.Writer, error) { return phys.Create(path) })
}

// SaveTo writes the package as a zip archive to w. w receives no bytes if
// the save fails.
func (p *Package) SaveTo(w io.Writer) error {
	return p.save(streamDest, func() (phys.Writer, error) { return phys.NewStreamWriter(w), nil })
}

func (p *Package) save(dest string, acquire func() (phys.Writer, error)) (err error) {
	start := time.Now()
	observability.Package().OnSaveStart(dest)

	var parts []*Part
	defer func() {
		observability.Package().OnSaveComplete(dest, len(parts), time.Since(start), err)
	}()

	if p.state == StateEmpty && p.rels.Len() == 0 {
		return errors.New(errors.ErrCodeInvalidState, "cannot save an empty package")
	}

	parts, manifest, err := p.prepare()
	if err != nil {
		return err
	}

	w, err := acquire()
	if err != nil {
		return err
	}
	if err := p.emit(w, parts, manifest); err != nil {
		w.Abort()
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	p.state = StateSaved
	p.logger.Info("saved package",
		"dest", dest,
		"parts", len(parts),
		"manifest_entries", manifest.Len(),
		"duration", time.Since(start))
	return nil
}

// Manifest composes the content-type manifest the next save would write,
// naming any unnamed reachable parts on the way.
func (p *Package) Manifest() (*contenttype.Registry, error) {
	_, manifest, err := p.prepare()
	return manifest, err
}

// prepare collects the reachable parts, names any unnamed ones and composes
// the manifest over exactly that set.
func (p *Package) prepare() ([]*Part, *contenttype.Registry, error) {
	parts := p.Parts()
	entries := make([]contenttype.Entry, 0, len(parts))
	owner := make(map[packuri.URI]*Part, len(parts))
	for _, part := range parts {
		name, err := part.Partname()
		if err != nil {
			return nil, nil, err
		}
		if other, dup := owner[name]; dup && other != part {
			return nil, nil, errors.New(errors.ErrCodeDuplicateKey, "two parts named %s", name)
		}
		owner[name] = part
		entries = append(entries, contenttype.Entry{PartName: name, ContentType: part.contentType})
	}

	manifest, err := contenttype.Compose(entries, p.known)
	if err != nil {
		return nil, nil, err
	}
	return parts, manifest, nil
}

// emit writes the manifest, the root relationships and every part followed
// by its relationships item. Empty relationship sets produce no item.
func (p *Package) emit(w phys.Writer, parts []*Part, manifest *contenttype.Registry) error {
	b, err := manifest.Marshal()
	if err != nil {
		return err
	}
	if err := w.Write(packuri.ContentTypesURI, b); err != nil {
		return err
	}

	if err := writeRels(w, packuri.PackageURI, p.rels); err != nil {
		return err
	}
	for _, part := range parts {
		if err := w.Write(part.partname, part.blob); err != nil {
			return err
		}
		if err := writeRels(w, part.partname, part.rels); err != nil {
			return err
		}
		p.logger.Debug("wrote part", "partname", part.partname, "size", len(part.blob), "rels", part.rels.Len())
	}
	return nil
}

func writeRels(w phys.Writer, source packuri.URI, rs *Relationships) error {
	if rs.Len() == 0 {
		return nil
	}
	b, err := marshalRels(rs, source.BaseURI())
	if err != nil {
		return err
	}
	return w.Write(source.RelsURI(), b)
}
