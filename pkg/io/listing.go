package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/opcpack/pkg/errors"
	"github.com/matzehuels/opcpack/pkg/opc"
	"github.com/matzehuels/opcpack/pkg/packuri"
)

// RootSource is the source recorded for package-level relationships.
const RootSource = string(packuri.PackageURI)

// Listing describes a package's part graph.
type Listing struct {
	Source        string         `json:"source,omitempty"`
	Parts         []Part         `json:"parts"`
	Relationships []Relationship `json:"relationships"`
	Orphans       []string       `json:"orphans,omitempty"`
}

// Part is one reachable part.
type Part struct {
	Partname    string `json:"partname"`
	ContentType string `json:"content_type"`
	Size        int    `json:"size"`
}

// Relationship is one edge. Target is a partname, or the external reference
// when External is set.
type Relationship struct {
	Source   string `json:"source"`
	ID       string `json:"id"`
	Type     string `json:"type"`
	Target   string `json:"target"`
	External bool   `json:"external,omitempty"`
}

// Describe builds the listing of pkg. Unnamed parts are named as they would
// be on save.
func Describe(pkg *opc.Package) (*Listing, error) {
	l := &Listing{Source: pkg.Source(), Parts: []Part{}, Relationships: []Relationship{}}

	add := func(source string, rs *opc.Relationships) error {
		for _, r := range rs.All() {
			rel := Relationship{Source: source, ID: r.ID, Type: r.Type, External: r.IsExternal()}
			if r.IsExternal() {
				rel.Target = r.ExternalRef()
			} else {
				name, err := r.Target().Partname()
				if err != nil {
					return err
				}
				rel.Target = string(name)
			}
			l.Relationships = append(l.Relationships, rel)
		}
		return nil
	}

	if err := add(RootSource, pkg.Relationships()); err != nil {
		return nil, err
	}
	err := pkg.Walk(func(p *opc.Part) error {
		name, err := p.Partname()
		if err != nil {
			return err
		}
		l.Parts = append(l.Parts, Part{Partname: string(name), ContentType: p.ContentType(), Size: len(p.Blob())})
		return add(string(name), p.Relationships())
	})
	if err != nil {
		return nil, err
	}

	for _, o := range pkg.Orphans() {
		if name, ok := o.AssignedPartname(); ok {
			l.Orphans = append(l.Orphans, string(name))
		}
	}
	return l, nil
}

// Outgoing returns the relationships whose source is source, in listing order.
func (l *Listing) Outgoing(source string) []Relationship {
	var out []Relationship
	for _, r := range l.Relationships {
		if r.Source == source {
			out = append(out, r)
		}
	}
	return out
}

// Validate checks that every internal relationship connects listed parts.
func (l *Listing) Validate() error {
	known := map[string]bool{RootSource: true}
	for _, p := range l.Parts {
		if known[p.Partname] {
			return errors.New(errors.ErrCodeDuplicateKey, "part %s listed twice", p.Partname)
		}
		known[p.Partname] = true
	}
	for _, r := range l.Relationships {
		if !known[r.Source] {
			return errors.New(errors.ErrCodeNotFound, "relationship %s from unknown part %s", r.ID, r.Source)
		}
		if !r.External && !known[r.Target] {
			return errors.New(errors.ErrCodeNotFound, "relationship %s of %s targets unknown part %s", r.ID, r.Source, r.Target)
		}
	}
	return nil
}

// WriteJSON encodes l as indented JSON to w.
func WriteJSON(l *Listing, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(l); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes l to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(l *Listing, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(l, f)
}

// ReadJSON decodes and validates a listing from r. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*Listing, error) {
	var l Listing
	if err := json.NewDecoder(r).Decode(&l); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return &l, nil
}

// ImportJSON reads a listing from the JSON file at path.
func ImportJSON(path string) (*Listing, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	l, err := ReadJSON(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return l, nil
}
