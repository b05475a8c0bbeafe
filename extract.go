package far

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/featurekit/far/feature"
)

// Extract unpacks the feature archive at archivePath into dir and returns
// the model it carried.
//
// The directory is created if it does not exist and all writes are confined
// to it. Only the entries the format defines are materialized, the manifest,
// the model and the artifact entries; anything else in the archive is left
// alone. Artifact entries are extracted concurrently.
func Extract(ctx context.Context, archivePath, dir string) (_ *feature.Feature, err error) {
	slog.DebugContext(ctx, "extracting feature archive", "path", archivePath, "dir", dir)

	file, err := os.Open(archivePath)
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

	archive, err := zip.NewReader(file, info.Size())
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

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("unable to create target directory: %w", err)
	}
	root, err := os.OpenRoot(dir)
	if err != nil {
		return nil, fmt.Errorf("unable to open root on target directory: %w", err)
	}
	defer func() {
		err = errors.Join(err, root.Close())
	}()

	for _, entry := range archive.File {
		if strings.Contains(entry.Name, "..") {
			return nil, fmt.Errorf("invalid archive entry, contains %q: %s", "..", entry.Name)
		}
	}

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(runtime.NumCPU())
	for _, entry := range archive.File {
		if !extractable(entry.Name) {
			continue
		}
		group.Go(func() error {
			return extractEntry(ctx, root, entry)
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	return f, nil
}

// extractable reports whether an entry name belongs to the archive format
// itself. Entries appended by callers after assembly are not reproduced on
// disk.
func extractable(name string) bool {
	if name == ManifestName || name == ModelPath {
		return true
	}
	if !strings.HasPrefix(name, ArtifactPrefix) || strings.HasSuffix(name, "/") {
		return false
	}
	_, err := feature.IDFromPath(strings.TrimPrefix(name, ArtifactPrefix))
	return err == nil
}

func extractEntry(ctx context.Context, root *os.Root, entry *zip.File) (err error) {
	name := entry.Name
	if parent := path.Dir(name); parent != "." {
		if err := root.MkdirAll(parent, 0o755); err != nil {
			return fmt.Errorf("unable to create directory for %s: %w", name, err)
		}
	}

	data, err := entry.Open()
	if err != nil {
		return fmt.Errorf("unable to open archive entry %s: %w", name, err)
	}
	defer func() {
		err = errors.Join(err, data.Close())
	}()

	target, err := root.Create(name)
	if err != nil {
		return fmt.Errorf("unable to create file for %s: %w", name, err)
	}
	defer func() {
		err = errors.Join(err, target.Close())
	}()

	content, err := newCtxReader(ctx, data)
	if err != nil {
		return fmt.Errorf("unable to read archive entry %s: %w", name, err)
	}
	if _, err := io.Copy(target, content); err != nil {
		return fmt.Errorf("unable to extract archive entry %s: %w", name, err)
	}

	slog.DebugContext(ctx, "extracted archive entry", "name", name)

	return nil
}
