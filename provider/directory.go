package provider

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"

	"github.com/featurekit/far/blob"
	"github.com/featurekit/far/blob/filesystem"
	"github.com/featurekit/far/feature"
)

// Directory resolves artifacts from a directory tree laid out in the
// standard repository layout, i.e. the artifact for an ID is expected at
// id.Path() relative to the directory root.
type Directory struct {
	fileSystem fs.FS
}

var _ Provider = (*Directory)(nil)

// NewDirectory creates a Directory provider rooted at a path on the
// operating system filesystem. The path must exist and be a directory.
// Resolution is confined to the tree below it.
func NewDirectory(path string) (*Directory, error) {
	path = filepath.Clean(path)
	fi, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("unable to stat repository root: %w", err)
	}
	if !fi.IsDir() {
		return nil, fmt.Errorf("repository root %q is not a directory", path)
	}
	return NewDirectoryFS(os.DirFS(path)), nil
}

// NewDirectoryFS creates a Directory provider over an arbitrary fs.FS.
func NewDirectoryFS(fileSystem fs.FS) *Directory {
	return &Directory{fileSystem: fileSystem}
}

// Provide returns a file blob for the artifact at id.Path(). A missing file
// reports ErrNotFound with the artifact coordinates. The media type of the
// returned blob is detected from the file content.
func (d *Directory) Provide(ctx context.Context, id feature.ID) (blob.ReadOnlyBlob, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := id.Path()
	if _, err := fs.Stat(d.fileSystem, path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("unable to stat artifact %s: %w", id, err)
	}

	b := filesystem.NewBlob(d.fileSystem, path)
	if data, err := b.ReadCloser(); err == nil {
		// see https://github.com/gabriel-vasile/mimetype/blob/master/supported_mimes.md for supported types
		mime, _ := mimetype.DetectReader(data)
		_ = data.Close()
		b.SetMediaType(mime.String())
	}
	return b, nil
}
