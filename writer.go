package far

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/featurekit/far/feature"
	"github.com/featurekit/far/provider"
)

// DefaultCopyBufferSize is the buffer size used to stream artifact content
// into the container. It is slightly larger than the default buffer size
// used by io.Copy as most artifacts encountered in practice are larger than
// the default buffer size.
const DefaultCopyBufferSize = 128 * 1024 // 128 KiB

// Write assembles a feature archive from the given model into out.
//
// The archive starts with the manifest entry built from a copy of
// baseHeaders; HeaderManifestVersion and HeaderArchiveVersion are forced to
// their fixed values and overwrite caller-supplied values for those names.
// The model follows at ModelPath, then every artifact the model references
// through its bundles and KindArtifacts extensions, in model order, each
// distinct ID exactly once under ArtifactPrefix. Content for the artifacts
// comes from the artifacts provider; an artifact it cannot provide fails the
// whole write with an error naming the artifact, and nothing after it is
// written.
//
// On success the container is returned still open: the caller may append
// further entries and must Close it. Out itself is never closed. On failure
// the bytes already written to out are left for the caller to discard, there
// is no cleanup and no retry.
func Write(ctx context.Context, out io.Writer, f *feature.Feature, baseHeaders Headers, artifacts provider.Provider, opts *Options) (*Container, error) {
	if f == nil {
		return nil, errors.New("feature model must not be nil")
	}
	if artifacts == nil {
		return nil, errors.New("artifact provider must not be nil")
	}

	headers := baseHeaders.Clone()
	headers[HeaderManifestVersion] = ManifestVersion
	headers[HeaderArchiveVersion] = strconv.Itoa(ArchiveVersion)

	c, err := newContainer(out, headers, opts.Level())
	if err != nil {
		return nil, err
	}

	model, err := c.CreateEntry(ModelPath)
	if err != nil {
		return nil, fmt.Errorf("unable to create model entry: %w", err)
	}
	if err := feature.WriteJSON(model, f); err != nil {
		return nil, fmt.Errorf("unable to write model entry: %w", err)
	}

	written := make(map[feature.ID]struct{})
	buf := make([]byte, DefaultCopyBufferSize) // shared buffer for all artifact copies to avoid allocs.

	for _, artifact := range f.Artifacts() {
		if err := writeArtifact(ctx, c, artifacts, artifact.ID, written, buf); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// writeArtifact streams one artifact into the container unless its ID was
// written before; the first occurrence in model order wins and later ones
// are silently skipped.
func writeArtifact(ctx context.Context, c *Container, artifacts provider.Provider, id feature.ID, written map[feature.ID]struct{}, buf []byte) (err error) {
	id = id.Normalize()
	if _, ok := written[id]; ok {
		return nil
	}
	written[id] = struct{}{}

	entry, err := c.CreateEntry(ArtifactPrefix + id.Path())
	if err != nil {
		return fmt.Errorf("unable to create entry for artifact %s: %w", id, err)
	}

	b, err := artifacts.Provide(ctx, id)
	if err != nil {
		return fmt.Errorf("unable to resolve artifact %s: %w", id, err)
	}
	if b == nil {
		return fmt.Errorf("unable to resolve artifact %s: %w", id, provider.ErrNotFound)
	}

	data, err := b.ReadCloser()
	if err != nil {
		return fmt.Errorf("unable to read artifact %s: %w", id, err)
	}
	defer func() {
		err = errors.Join(err, data.Close())
	}()

	content, err := newCtxReader(ctx, data)
	if err != nil {
		return fmt.Errorf("unable to read artifact %s: %w", id, err)
	}
	if _, err := io.CopyBuffer(entry, content, buf); err != nil {
		return fmt.Errorf("unable to write artifact %s: %w", id, err)
	}

	return nil
}

// WriteFile assembles a feature archive into the file at path, creating or
// truncating it, and finalizes the container. Unlike Write it leaves nothing
// open; the finished archive is on disk when it returns without error.
func WriteFile(ctx context.Context, path string, f *feature.Feature, baseHeaders Headers, artifacts provider.Provider, opts *Options) (err error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("unable to open file for writing feature archive: %w", err)
	}
	defer func() {
		err = errors.Join(err, file.Close())
	}()

	c, err := Write(ctx, file, f, baseHeaders, artifacts, opts)
	if err != nil {
		return err
	}
	return c.Close()
}
