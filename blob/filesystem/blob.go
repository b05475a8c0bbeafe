package filesystem

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/opencontainers/go-digest"

	"github.com/featurekit/far/blob"
)

// Blob is a blob.ReadOnlyBlob that is stored in a fs.FS.
// It delegates all meta-operations to the underlying filesystem.
type Blob struct {
	// fileSystem is the underlying filesystem.
	fileSystem fs.FS
	// path is the path to the blob within fileSystem.
	path string
	// mediaType is the media type of the blob, if set.
	mediaType atomic.Pointer[string]
}

var (
	_ blob.ReadOnlyBlob   = (*Blob)(nil)
	_ blob.SizeAware      = (*Blob)(nil)
	_ blob.DigestAware    = (*Blob)(nil)
	_ blob.MediaTypeAware = (*Blob)(nil)
)

// NewBlob creates a new Blob for a path inside an fs.FS.
func NewBlob(fileSystem fs.FS, path string) *Blob {
	return &Blob{
		fileSystem: fileSystem,
		path:       path,
	}
}

// NewFromPath creates a Blob for a file on the operating system filesystem.
// The blob is confined to the directory containing the file. The file must
// exist when the blob is created, later removal surfaces on ReadCloser.
func NewFromPath(path string) (*Blob, error) {
	path = filepath.Clean(path)
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("unable to stat %q while creating file blob: %w", path, err)
	}
	return NewBlob(os.DirFS(filepath.Dir(path)), filepath.Base(path)), nil
}

// ReadCloser opens the underlying file. Each invocation returns a fresh
// handle positioned at the start of the file.
func (f *Blob) ReadCloser() (io.ReadCloser, error) {
	file, err := f.fileSystem.Open(f.path)
	if err != nil {
		return nil, fmt.Errorf("unable to open file %q: %w", f.path, err)
	}
	return file, nil
}

// Size returns the file size as reported by the filesystem, or
// blob.SizeUnknown if the file cannot be statted.
func (f *Blob) Size() int64 {
	fi, err := fs.Stat(f.fileSystem, f.path)
	if err != nil {
		return blob.SizeUnknown
	}
	return fi.Size()
}

// Digest computes the digest of the file content on demand.
func (f *Blob) Digest() (string, bool) {
	data, err := f.ReadCloser()
	if err != nil {
		return "", false
	}
	defer func() {
		_ = data.Close()
	}()
	d, err := digest.FromReader(data)
	if err != nil {
		return "", false
	}
	return d.String(), true
}

// MediaType returns the media type of the blob if known.
func (f *Blob) MediaType() (string, bool) {
	mt := f.mediaType.Load()
	if mt == nil {
		return "", false
	}
	return *mt, true
}

// SetMediaType overrides the media type of the blob.
func (f *Blob) SetMediaType(mediaType string) {
	f.mediaType.Store(&mediaType)
}
