package inmemory_test

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/opencontainers/go-digest"
	"github.com/stretchr/testify/require"

	"github.com/featurekit/far/blob"
	. "github.com/featurekit/far/blob/inmemory"
)

func TestReadCloserReadsDataCorrectly(t *testing.T) {
	r := require.New(t)
	b := New(strings.NewReader("test data"))
	rc, err := b.ReadCloser()
	r.NoError(err)
	t.Cleanup(func() {
		r.NoError(rc.Close())
	})
	data, err := io.ReadAll(rc)
	r.NoError(err)
	r.Equal("test data", string(data))
}

func TestReadCloserHandlesEmptyReader(t *testing.T) {
	r := require.New(t)
	b := New(strings.NewReader(""))
	rc, err := b.ReadCloser()
	r.NoError(err)
	data, err := io.ReadAll(rc)
	r.NoError(err)
	r.Empty(data)
	r.Equal(int64(0), b.Size())
}

func TestRepeatedReads(t *testing.T) {
	r := require.New(t)
	data := []byte("test data")
	b := New(bytes.NewReader(data))

	var first, second bytes.Buffer
	r.NoError(blob.Copy(&first, b))
	r.NoError(blob.Copy(&second, b))
	r.Equal(data, first.Bytes())
	r.Equal(data, second.Bytes())
}

func TestLoadRunsOnce(t *testing.T) {
	r := require.New(t)
	source := &countingReader{Reader: strings.NewReader("test data")}
	b := New(source)

	r.NoError(b.Load())
	r.NoError(b.Load())
	rc, err := b.ReadCloser()
	r.NoError(err)
	r.NoError(rc.Close())
	r.Equal(1, source.drains)
}

func TestLoadErrorSticks(t *testing.T) {
	r := require.New(t)
	b := New(&brokenReader{})

	r.Error(b.Load())
	_, err := b.ReadCloser()
	r.Error(err)
	r.Equal(blob.SizeUnknown, b.Size())
	_, known := b.Digest()
	r.False(known)
}

func TestSize(t *testing.T) {
	t.Run("declared size answers without loading", func(t *testing.T) {
		r := require.New(t)
		source := &countingReader{Reader: strings.NewReader("test data")}
		b := New(source, WithSize(9))
		r.Equal(int64(9), b.Size())
		r.Equal(0, source.drains)
	})

	t.Run("unknown size loads the source", func(t *testing.T) {
		r := require.New(t)
		b := New(strings.NewReader("test data"))
		r.Equal(int64(9), b.Size())
	})
}

func TestDigest(t *testing.T) {
	data := "test data"
	computed := digest.FromString(data)

	t.Run("computed while loading", func(t *testing.T) {
		r := require.New(t)
		b := New(strings.NewReader(data))
		dig, known := b.Digest()
		r.True(known)
		r.Equal(computed.String(), dig)
	})

	t.Run("declared digest wins over the computed one", func(t *testing.T) {
		r := require.New(t)
		declared := digest.FromString("something else entirely")
		b := New(strings.NewReader(data), WithDigest(declared.String()))
		dig, known := b.Digest()
		r.True(known)
		r.Equal(declared.String(), dig)

		// declaring never restricts reading
		var buf bytes.Buffer
		r.NoError(blob.Copy(&buf, b))
		r.Equal(data, buf.String())
	})

	t.Run("digest covers the full content after a partial read", func(t *testing.T) {
		r := require.New(t)
		b := New(strings.NewReader(data))
		rc, err := b.ReadCloser()
		r.NoError(err)
		partial := make([]byte, 4)
		_, err = rc.Read(partial)
		r.NoError(err)
		r.NoError(rc.Close())

		dig, known := b.Digest()
		r.True(known)
		r.Equal(computed.String(), dig)
		r.NotEqual(digest.FromBytes(partial).String(), dig)
	})
}

func TestMediaType(t *testing.T) {
	r := require.New(t)

	b := New(strings.NewReader("x"))
	mediaType, known := b.MediaType()
	r.True(known)
	r.Equal("application/octet-stream", mediaType)

	b = New(strings.NewReader("x"), WithMediaType("application/json"))
	mediaType, known = b.MediaType()
	r.True(known)
	r.Equal("application/json", mediaType)
}

func TestNewFromBytes(t *testing.T) {
	r := require.New(t)
	data := []byte("test data")
	b := NewFromBytes(data)

	r.Equal(int64(len(data)), b.Size())

	var buf bytes.Buffer
	r.NoError(blob.Copy(&buf, b))
	r.Equal(data, buf.Bytes())

	dig, known := b.Digest()
	r.True(known)
	r.Equal(digest.FromBytes(data).String(), dig)
}

func TestConcurrentReads(t *testing.T) {
	r := require.New(t)
	data := "test data for concurrent reads"
	b := New(strings.NewReader(data))

	const numGoroutines = 10
	done := make(chan struct{})

	for range numGoroutines {
		go func() {
			defer func() { done <- struct{}{} }()

			rc, err := b.ReadCloser()
			r.NoError(err)
			defer rc.Close()

			got, err := io.ReadAll(rc)
			r.NoError(err)
			r.Equal(data, string(got))
		}()
	}

	for range numGoroutines {
		<-done
	}
}

// countingReader counts how often it was drained to EOF.
type countingReader struct {
	io.Reader
	drains int
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.Reader.Read(p)
	if errors.Is(err, io.EOF) {
		c.drains++
	}
	return n, err
}

type brokenReader struct{}

func (*brokenReader) Read([]byte) (int, error) {
	return 0, errors.New("source unavailable")
}
