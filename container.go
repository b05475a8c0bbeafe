package far

import (
	"archive/zip"
	"fmt"
	"io"

	"github.com/klauspost/compress/flate"
)

const (
	// ModelPath is the fixed path of the serialized feature model entry.
	ModelPath = "models/feature.json"
	// ArtifactPrefix prefixes the repository path of every artifact entry.
	ArtifactPrefix = "artifacts/"
	// DefaultExtension is the canonical file extension of feature archives.
	DefaultExtension = ".far"
)

// Container is a feature archive that is open for writing. Write returns the
// container it populated still open, so the caller can append further
// entries with CreateEntry before finalizing it with Close.
//
// A container has no internal synchronization. Its write position is shared
// mutable state, so all calls on one container must come from a single
// goroutine.
type Container struct {
	archive *zip.Writer
}

// newContainer opens a container over out and writes the manifest entry from
// the given header block. All entries are compressed with Deflate at the
// requested level.
func newContainer(out io.Writer, headers Headers, level int) (*Container, error) {
	archive := zip.NewWriter(out)
	archive.RegisterCompressor(zip.Deflate, func(w io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(w, level)
	})

	c := &Container{archive: archive}
	entry, err := c.CreateEntry(ManifestName)
	if err != nil {
		return nil, fmt.Errorf("unable to create manifest entry: %w", err)
	}
	if err := EncodeManifest(entry, headers); err != nil {
		return nil, err
	}
	return c, nil
}

// CreateEntry starts a new entry at the given path and returns the writer
// for its content. The previous entry is finished automatically, and the
// returned writer is only valid until the next CreateEntry or Close call.
// Entry timestamps are left at the zero value so archive bytes depend on
// content alone.
func (c *Container) CreateEntry(path string) (io.Writer, error) {
	return c.archive.Create(path)
}

// Close finishes the archive by writing the central directory. It does not
// close the sink the container was opened over; that sink stays owned by the
// caller.
func (c *Container) Close() error {
	if err := c.archive.Close(); err != nil {
		return fmt.Errorf("unable to finalize archive: %w", err)
	}
	return nil
}
