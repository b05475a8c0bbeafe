package far_test

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/featurekit/far"
	"github.com/featurekit/far/feature"
)

const (
	validManifest = "Manifest-Version: 1.0\r\nFeature-Archive-Version: 1\r\n\r\n"
	minimalModel  = `{"id":"org.example:app:1.0.0"}`
)

type rawEntry struct {
	name string
	body string
}

// rawArchive builds a zip with exactly the given entries, bypassing Write,
// so malformed archives can be constructed.
func rawArchive(t *testing.T, entries ...rawEntry) *bytes.Buffer {
	t.Helper()
	r := require.New(t)
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, entry := range entries {
		w, err := zw.Create(entry.name)
		r.NoError(err)
		_, err = w.Write([]byte(entry.body))
		r.NoError(err)
	}
	r.NoError(zw.Close())
	return &buf
}

func readArchive(ctx context.Context, buf *bytes.Buffer, consume far.ArtifactConsumer) (*feature.Feature, error) {
	return far.Read(ctx, bytes.NewReader(buf.Bytes()), int64(buf.Len()), consume)
}

func Test_Read_RoundTrip(t *testing.T) {
	r := require.New(t)

	model := testFeature()
	buf := assemble(t, model, nil, testProvider(), nil)

	type consumed struct {
		id      feature.ID
		content string
	}
	var artifacts []consumed
	read, err := readArchive(t.Context(), buf, func(ctx context.Context, id feature.ID, content io.Reader) error {
		data, err := io.ReadAll(content)
		if err != nil {
			return err
		}
		artifacts = append(artifacts, consumed{id: id, content: string(data)})
		return nil
	})
	r.NoError(err)
	r.Equal(model, read)
	r.Equal([]consumed{
		{id: artifactX.Normalize(), content: "AA"},
		{id: artifactY.Normalize(), content: "BB"},
	}, artifacts, "artifacts arrive in archive order")
}

func Test_Read_NilConsumer(t *testing.T) {
	r := require.New(t)

	buf := assemble(t, testFeature(), nil, testProvider(), nil)
	read, err := readArchive(t.Context(), buf, nil)
	r.NoError(err)
	r.Equal("org.example:app:1.0.0", read.ID.String())
}

func Test_Read_IgnoresForeignEntries(t *testing.T) {
	r := require.New(t)

	var buf bytes.Buffer
	c, err := far.Write(t.Context(), &buf, testFeature(), nil, testProvider(), nil)
	r.NoError(err)
	extra, err := c.CreateEntry("extra/notes.txt")
	r.NoError(err)
	_, err = extra.Write([]byte("not an artifact"))
	r.NoError(err)
	r.NoError(c.Close())

	var ids []feature.ID
	_, err = readArchive(t.Context(), &buf, func(ctx context.Context, id feature.ID, content io.Reader) error {
		ids = append(ids, id)
		return nil
	})
	r.NoError(err)
	r.Equal([]feature.ID{artifactX.Normalize(), artifactY.Normalize()}, ids)
}

func Test_Read_RejectsNonArchive(t *testing.T) {
	r := require.New(t)

	junk := []byte("this is not a zip file")
	_, err := far.Read(t.Context(), bytes.NewReader(junk), int64(len(junk)), nil)
	r.ErrorIs(err, far.ErrNotFeatureArchive)
}

func Test_Read_RejectsMalformedArchives(t *testing.T) {
	for _, tc := range []struct {
		name    string
		entries []rawEntry
	}{
		{
			name:    "missing manifest",
			entries: []rawEntry{{name: far.ModelPath, body: minimalModel}},
		},
		{
			name: "manifest without archive version",
			entries: []rawEntry{
				{name: far.ManifestName, body: "Manifest-Version: 1.0\r\n\r\n"},
				{name: far.ModelPath, body: minimalModel},
			},
		},
		{
			name: "archive version not a number",
			entries: []rawEntry{
				{name: far.ManifestName, body: "Feature-Archive-Version: zero\r\n\r\n"},
				{name: far.ModelPath, body: minimalModel},
			},
		},
		{
			name: "archive version below one",
			entries: []rawEntry{
				{name: far.ManifestName, body: "Feature-Archive-Version: 0\r\n\r\n"},
				{name: far.ModelPath, body: minimalModel},
			},
		},
		{
			name:    "missing model entry",
			entries: []rawEntry{{name: far.ManifestName, body: validManifest}},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			r := require.New(t)
			_, err := readArchive(t.Context(), rawArchive(t, tc.entries...), nil)
			r.ErrorIs(err, far.ErrNotFeatureArchive)
		})
	}
}

func Test_Read_RejectsNewerVersion(t *testing.T) {
	r := require.New(t)

	buf := rawArchive(t,
		rawEntry{name: far.ManifestName, body: "Feature-Archive-Version: 2\r\n\r\n"},
		rawEntry{name: far.ModelPath, body: minimalModel},
	)
	_, err := readArchive(t.Context(), buf, nil)
	r.ErrorIs(err, far.ErrUnsupportedVersion)
	r.ErrorContains(err, "2")
}

func Test_Read_RejectsInvalidArtifactEntry(t *testing.T) {
	r := require.New(t)

	buf := rawArchive(t,
		rawEntry{name: far.ManifestName, body: validManifest},
		rawEntry{name: far.ModelPath, body: minimalModel},
		rawEntry{name: "artifacts/garbage.jar", body: "junk"},
	)
	_, err := readArchive(t.Context(), buf, nil)
	r.ErrorContains(err, "invalid artifact entry")
	r.ErrorContains(err, "artifacts/garbage.jar")
}

func Test_Read_ConsumerErrorsPropagate(t *testing.T) {
	r := require.New(t)

	buf := assemble(t, testFeature(), nil, testProvider(), nil)

	broken := errors.New("downstream rejected the artifact")
	_, err := readArchive(t.Context(), buf, func(ctx context.Context, id feature.ID, content io.Reader) error {
		return broken
	})
	r.ErrorIs(err, broken)
	r.ErrorContains(err, artifactX.Normalize().String())
}

func Test_Read_ContextCanceled(t *testing.T) {
	r := require.New(t)

	buf := assemble(t, testFeature(), nil, testProvider(), nil)

	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	_, err := readArchive(ctx, buf, nil)
	r.ErrorIs(err, context.Canceled)
}

func Test_ReadFile_MissingFile(t *testing.T) {
	r := require.New(t)

	_, err := far.ReadFile(t.Context(), filepath.Join(t.TempDir(), "absent.far"), nil)
	r.ErrorContains(err, "unable to open feature archive")
}
