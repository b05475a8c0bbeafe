package far

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/featurekit/far/feature"
)

var (
	// ErrNotFeatureArchive is returned when the input is not a feature
	// archive, because it is not a zip file at all or because the manifest
	// or the model entry the format requires is missing or malformed.
	ErrNotFeatureArchive = errors.New("not a feature archive")
	// ErrUnsupportedVersion is returned when the manifest declares an
	// archive version newer than this implementation understands.
	ErrUnsupportedVersion = errors.New("unsupported feature archive version")
)

// ArtifactConsumer receives every artifact entry during Read, in archive
// order. The content reader is only valid for the duration of the call.
type ArtifactConsumer func(ctx context.Context, id feature.ID, content io.Reader) error

// Read parses the feature archive in the given reader and returns its model.
//
// The manifest is checked for the declared archive version before anything
// else is touched. Every entry under ArtifactPrefix is passed to consume;
// entries outside the reserved names that a caller appended after assembly
// are ignored. A nil consume still validates the artifact entry names but
// does not open their content.
func Read(ctx context.Context, in io.ReaderAt, size int64, consume ArtifactConsumer) (*feature.Feature, error) {
	archive, err := zip.NewReader(in, size)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotFeatureArchive, err)
	}

	if err := checkManifest(archive); err != nil {
		return nil, err
	}

	f, err := readModel(archive)
	if err != nil {
		return nil, err
	}

	for _, entry := range archive.File {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := readArtifact(ctx, entry, consume); err != nil {
			return nil, err
		}
	}

	return f, nil
}

// checkManifest verifies that the archive carries a manifest declaring an
// archive version this implementation can read.
func checkManifest(archive *zip.Reader) (err error) {
	entry, err := archive.Open(ManifestName)
	if err != nil {
		return fmt.Errorf("%w: missing manifest: %w", ErrNotFeatureArchive, err)
	}
	defer func() {
		err = errors.Join(err, entry.Close())
	}()

	headers, err := ParseManifest(entry)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNotFeatureArchive, err)
	}

	raw, ok := headers[HeaderArchiveVersion]
	if !ok {
		return fmt.Errorf("%w: manifest does not declare %s", ErrNotFeatureArchive, HeaderArchiveVersion)
	}
	version, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || version < 1 {
		return fmt.Errorf("%w: invalid %s %q", ErrNotFeatureArchive, HeaderArchiveVersion, raw)
	}
	if version > ArchiveVersion {
		return fmt.Errorf("%w: %d", ErrUnsupportedVersion, version)
	}

	return nil
}

// readModel decodes the feature model entry of the archive.
func readModel(archive *zip.Reader) (_ *feature.Feature, err error) {
	entry, err := archive.Open(ModelPath)
	if err != nil {
		return nil, fmt.Errorf("%w: missing model entry: %w", ErrNotFeatureArchive, err)
	}
	defer func() {
		err = errors.Join(err, entry.Close())
	}()

	f, err := feature.ReadJSON(entry)
	if err != nil {
		return nil, fmt.Errorf("unable to read model entry: %w", err)
	}
	return f, nil
}

// readArtifact hands a single artifact entry to consume. Entries outside the
// artifact prefix are not artifacts and are skipped, but names under the
// prefix are reserved and must map back to an artifact ID.
func readArtifact(ctx context.Context, entry *zip.File, consume ArtifactConsumer) (err error) {
	name := entry.Name
	if name == ManifestName || name == ModelPath {
		return nil
	}
	if !strings.HasPrefix(name, ArtifactPrefix) || strings.HasSuffix(name, "/") {
		return nil
	}

	id, err := feature.IDFromPath(strings.TrimPrefix(name, ArtifactPrefix))
	if err != nil {
		return fmt.Errorf("invalid artifact entry %q: %w", name, err)
	}
	if consume == nil {
		return nil
	}

	data, err := entry.Open()
	if err != nil {
		return fmt.Errorf("unable to open artifact %s: %w", id, err)
	}
	defer func() {
		err = errors.Join(err, data.Close())
	}()

	content, err := newCtxReader(ctx, data)
	if err != nil {
		return fmt.Errorf("unable to read artifact %s: %w", id, err)
	}
	if err := consume(ctx, id, content); err != nil {
		return fmt.Errorf("unable to consume artifact %s: %w", id, err)
	}

	return nil
}

// ReadFile parses the feature archive at path. See Read for the consume
// semantics.
func ReadFile(ctx context.Context, path string, consume ArtifactConsumer) (_ *feature.Feature, err error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open feature archive: %w", err)
	}
	defer func() {
		err = errors.Join(err, file.Close())
	}()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("unable to stat feature archive: %w", err)
	}

	return Read(ctx, file, info.Size(), consume)
}
