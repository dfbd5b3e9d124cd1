package phys

import (
	"archive/zip"
	"bytes"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/matzehuels/opcpack/pkg/errors"
	"github.com/matzehuels/opcpack/pkg/packuri"
)

// zipMagic is the local file header signature every zip archive starts with.
var zipMagic = []byte("PK\x03\x04")

// Reader gives read access to the items of a container.
type Reader interface {
	// URIs lists every item. Zip containers report archive order, expanded
	// directories lexical order.
	URIs() []packuri.URI
	// Has reports whether the container holds an item named uri.
	Has(uri packuri.URI) bool
	// Blob returns the bytes of the item named uri.
	Blob(uri packuri.URI) ([]byte, error)
	// Close releases the underlying handle.
	Close() error
}

// OpenReader opens the zip file or expanded directory at path.
func OpenReader(path string) (Reader, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodePackageNotFound, err, "package not found at %s", path)
	}
	if info.IsDir() {
		return openDir(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodePackageNotFound, err, "open %s", path)
	}
	r, err := NewZipReader(f, info.Size())
	if err != nil {
		f.Close()
		return nil, err
	}
	r.(*zipReader).closer = f
	return r, nil
}

// NewBytesReader reads a zip container held in memory.
func NewBytesReader(b []byte) (Reader, error) {
	return NewZipReader(bytes.NewReader(b), int64(len(b)))
}

// NewZipReader reads a zip container from r. The caller keeps ownership of r;
// closing the returned Reader does not close it.
func NewZipReader(r io.ReaderAt, size int64) (Reader, error) {
	head := make([]byte, len(zipMagic))
	if n, _ := r.ReadAt(head, 0); n < len(head) || !bytes.Equal(head, zipMagic) {
		return nil, errors.New(errors.ErrCodePackageNotFound, "not a zip container")
	}
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeCorruptedPackage, err, "read zip directory")
	}

	zp := &zipReader{files: make(map[packuri.URI]*zip.File, len(zr.File))}
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		uri, err := packuri.FromMemberName(f.Name)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeCorruptedPackage, err, "bad member name %q", f.Name)
		}
		if _, dup := zp.files[uri]; dup {
			return nil, errors.New(errors.ErrCodeCorruptedPackage, "duplicate member %q", f.Name)
		}
		zp.files[uri] = f
		zp.order = append(zp.order, uri)
	}
	return zp, nil
}

type zipReader struct {
	files  map[packuri.URI]*zip.File
	order  []packuri.URI
	closer io.Closer
}

func (r *zipReader) URIs() []packuri.URI {
	return append([]packuri.URI(nil), r.order...)
}

func (r *zipReader) Has(uri packuri.URI) bool {
	_, ok := r.files[uri]
	return ok
}

func (r *zipReader) Blob(uri packuri.URI) ([]byte, error) {
	f, ok := r.files[uri]
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "no item %s in container", uri)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeCorruptedPackage, err, "open member %s", uri)
	}
	defer rc.Close()

	b, err := io.ReadAll(rc)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeCorruptedPackage, err, "read member %s", uri)
	}
	return b, nil
}

func (r *zipReader) Close() error {
	if r.closer == nil {
		return nil
	}
	err := r.closer.Close()
	r.closer = nil
	return err
}

type dirReader struct {
	root string
	uris []packuri.URI
	set  map[packuri.URI]bool
}

func openDir(root string) (Reader, error) {
	manifest := filepath.Join(root, filepath.FromSlash(packuri.ContentTypesURI.MemberName()))
	if _, err := os.Stat(manifest); err != nil {
		return nil, errors.Wrap(errors.ErrCodePackageNotFound, err, "%s has no content types manifest", root)
	}

	r := &dirReader{root: root, set: make(map[packuri.URI]bool)}
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		uri, err := packuri.FromMemberName(filepath.ToSlash(rel))
		if err != nil {
			return err
		}
		r.uris = append(r.uris, uri)
		r.set[uri] = true
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeCorruptedPackage, err, "scan %s", root)
	}
	return r, nil
}

func (r *dirReader) URIs() []packuri.URI {
	return append([]packuri.URI(nil), r.uris...)
}

func (r *dirReader) Has(uri packuri.URI) bool { return r.set[uri] }

func (r *dirReader) Blob(uri packuri.URI) ([]byte, error) {
	if !r.set[uri] {
		return nil, errors.New(errors.ErrCodeNotFound, "no item %s in container", uri)
	}
	b, err := os.ReadFile(filepath.Join(r.root, filepath.FromSlash(uri.MemberName())))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeCorruptedPackage, err, "read %s", uri)
	}
	return b, nil
}

func (r *dirReader) Close() error { return nil }
