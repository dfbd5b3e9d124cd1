package phys

import (
	"archive/zip"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/matzehuels/opcpack/pkg/errors"
	"github.com/matzehuels/opcpack/pkg/packuri"
)

// Writer receives the items of a container being saved.
type Writer interface {
	// Write adds one item. Writing the same uri twice is a DUPLICATE_KEY error.
	Write(uri packuri.URI, blob []byte) error
	// Close finalizes the container and moves it into place.
	Close() error
	// Abort discards everything written. It is a no-op after Close.
	Abort() error
}

// Create picks an output form from path: a trailing separator or an existing
// directory selects an expanded directory, anything else a zip file.
func Create(path string) (Writer, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, string(os.PathSeparator)) {
		return CreateDir(path)
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return CreateDir(path)
	}
	return CreateZip(path)
}

// tempName returns a unique hidden sibling of path.
func tempName(path string) string {
	dir, base := filepath.Split(filepath.Clean(path))
	return filepath.Join(dir, "."+base+"."+uuid.NewString()+".tmp")
}

// zipSink adds items to a zip archive, refusing duplicate names.
type zipSink struct {
	zw   *zip.Writer
	seen map[packuri.URI]bool
}

func newZipSink(w io.Writer) *zipSink {
	return &zipSink{zw: zip.NewWriter(w), seen: make(map[packuri.URI]bool)}
}

func (s *zipSink) write(uri packuri.URI, blob []byte) error {
	if s.seen[uri] {
		return errors.New(errors.ErrCodeDuplicateKey, "item %s written twice", uri)
	}
	s.seen[uri] = true

	w, err := s.zw.CreateHeader(&zip.FileHeader{Name: uri.MemberName(), Method: zip.Deflate})
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "add %s", uri)
	}
	if _, err := w.Write(blob); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", uri)
	}
	return nil
}

type fileZipWriter struct {
	*zipSink
	f      *os.File
	temp   string
	target string
	done   bool
}

// CreateZip returns a Writer producing a zip file at path. Nothing appears at
// path until Close succeeds; an existing file there is replaced.
func CreateZip(path string) (Writer, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	temp := tempName(path)
	f, err := os.OpenFile(temp, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", path)
	}
	return &fileZipWriter{zipSink: newZipSink(f), f: f, temp: temp, target: path}, nil
}

func (w *fileZipWriter) Write(uri packuri.URI, blob []byte) error {
	if w.done {
		return errors.New(errors.ErrCodeInvalidState, "write after close")
	}
	if err := w.write(uri, blob); err != nil {
		w.Abort()
		return err
	}
	return nil
}

func (w *fileZipWriter) Close() error {
	if w.done {
		return nil
	}
	if err := w.zw.Close(); err != nil {
		w.Abort()
		return errors.Wrap(errors.ErrCodeInternal, err, "finish zip")
	}
	if err := w.f.Sync(); err != nil {
		w.Abort()
		return errors.Wrap(errors.ErrCodeInternal, err, "sync %s", w.temp)
	}
	if err := w.f.Close(); err != nil {
		w.done = true
		os.Remove(w.temp)
		return errors.Wrap(errors.ErrCodeInternal, err, "close %s", w.temp)
	}
	w.done = true
	if err := os.Rename(w.temp, w.target); err != nil {
		os.Remove(w.temp)
		return errors.Wrap(errors.ErrCodeInternal, err, "move into %s", w.target)
	}
	return nil
}

func (w *fileZipWriter) Abort() error {
	if w.done {
		return nil
	}
	w.done = true
	w.f.Close()
	return os.Remove(w.temp)
}

type streamWriter struct {
	*zipSink
	buf  bytes.Buffer
	dst  io.Writer
	done bool
}

// NewStreamWriter returns a Writer that buffers the whole archive in memory
// and copies it to dst on Close. dst sees no bytes if the save fails.
func NewStreamWriter(dst io.Writer) Writer {
	w := &streamWriter{dst: dst}
	w.zipSink = newZipSink(&w.buf)
	return w
}

func (w *streamWriter) Write(uri packuri.URI, blob []byte) error {
	if w.done {
		return errors.New(errors.ErrCodeInvalidState, "write after close")
	}
	return w.write(uri, blob)
}

func (w *streamWriter) Close() error {
	if w.done {
		return nil
	}
	w.done = true
	if err := w.zw.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "finish zip")
	}
	if _, err := w.buf.WriteTo(w.dst); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "copy zip to stream")
	}
	return nil
}

func (w *streamWriter) Abort() error {
	w.done = true
	w.buf.Reset()
	return nil
}

type dirWriter struct {
	temp   string
	target string
	seen   map[packuri.URI]bool
	done   bool
}

// CreateDir returns a Writer producing an expanded directory at path. Items
// land in a temporary sibling directory that replaces path on Close. An
// existing path is replaced only if it is an empty directory or an expanded
// package; anything else is an INVALID_PATH error.
func CreateDir(path string) (Writer, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	target := filepath.Clean(path)
	if err := checkReplaceable(target); err != nil {
		return nil, err
	}
	temp := tempName(target)
	if err := os.MkdirAll(temp, 0o755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", path)
	}
	return &dirWriter{temp: temp, target: target, seen: make(map[packuri.URI]bool)}, nil
}

// checkReplaceable reports whether the directory at target may be swapped
// out by a save. A missing target is fine.
func checkReplaceable(target string) error {
	info, err := os.Stat(target)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "stat %s", target)
	}
	if !info.IsDir() {
		return errors.New(errors.ErrCodeInvalidPath, "%s exists and is not a directory", target)
	}

	entries, err := os.ReadDir(target)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "read %s", target)
	}
	if len(entries) == 0 {
		return nil
	}
	manifest := filepath.Join(target, filepath.FromSlash(packuri.ContentTypesURI.MemberName()))
	if info, err := os.Stat(manifest); err == nil && info.Mode().IsRegular() {
		return nil
	}
	return errors.New(errors.ErrCodeInvalidPath, "%s is a non-empty directory that is not an expanded package", target)
}

func (w *dirWriter) Write(uri packuri.URI, blob []byte) error {
	if w.done {
		return errors.New(errors.ErrCodeInvalidState, "write after close")
	}
	if w.seen[uri] {
		return errors.New(errors.ErrCodeDuplicateKey, "item %s written twice", uri)
	}
	w.seen[uri] = true

	p := filepath.Join(w.temp, filepath.FromSlash(uri.MemberName()))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		w.Abort()
		return errors.Wrap(errors.ErrCodeInternal, err, "create directory for %s", uri)
	}
	if err := os.WriteFile(p, blob, 0o644); err != nil {
		w.Abort()
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", uri)
	}
	return nil
}

func (w *dirWriter) Close() error {
	if w.done {
		return nil
	}
	w.done = true

	var backup string
	if _, err := os.Stat(w.target); err == nil {
		backup = tempName(w.target)
		if err := os.Rename(w.target, backup); err != nil {
			os.RemoveAll(w.temp)
			return errors.Wrap(errors.ErrCodeInternal, err, "replace %s", w.target)
		}
	}
	if err := os.Rename(w.temp, w.target); err != nil {
		if backup != "" {
			os.Rename(backup, w.target)
		}
		os.RemoveAll(w.temp)
		return errors.Wrap(errors.ErrCodeInternal, err, "move into %s", w.target)
	}
	if backup != "" {
		return os.RemoveAll(backup)
	}
	return nil
}

func (w *dirWriter) Abort() error {
	if w.done {
		return nil
	}
	w.done = true
	return os.RemoveAll(w.temp)
}
