package inmemory

import (
	"bytes"
	"io"
	"sync"

	"github.com/opencontainers/go-digest"

	"github.com/featurekit/far/blob"
)

// New forwards a given [io.Reader] to be able to be used as a
// blob.ReadOnlyBlob. It does this by buffering the reader's content in memory
// on first access, which allows independent repeated reads as well as caching
// of metadata such as the size and digest of the data.
//
// Metadata that is already known in advance can be declared through WithSize,
// WithDigest and WithMediaType. Declared values are reported as-is and the
// data is never checked against them.
func New(r io.Reader, opts ...Option) *Blob {
	b := &Blob{
		source:    r,
		size:      blob.SizeUnknown,
		mediaType: "application/octet-stream",
	}
	for _, opt := range opts {
		opt.ApplyToBlob(b)
	}
	return b
}

// NewFromBytes wraps an in-memory byte slice as a blob. The size is known
// immediately, the digest is computed on first access like for any other
// source.
func NewFromBytes(data []byte, opts ...Option) *Blob {
	b := New(bytes.NewReader(data), opts...)
	if b.size == blob.SizeUnknown {
		b.size = int64(len(data))
	}
	return b
}

// Blob is a read-only blob that reads from an [io.Reader] once via Load and
// keeps the data in memory.
type Blob struct {
	mu   sync.RWMutex
	data []byte // the data read from source during Load

	size      int64         // size of the blob, if loaded or declared in advance
	digest    digest.Digest // digest of the blob, if computed or declared in advance
	mediaType string        // media type of the blob

	source io.Reader // drained by Load on the first access
	loaded bool      // indicates if the data has been loaded from source
	err    error     // error encountered during Load, if any
}

var (
	_ blob.ReadOnlyBlob   = (*Blob)(nil)
	_ blob.SizeAware      = (*Blob)(nil)
	_ blob.DigestAware    = (*Blob)(nil)
	_ blob.MediaTypeAware = (*Blob)(nil)
)

// ReadCloser returns a new reader over the buffered data, loading the source
// first if necessary. Each invocation returns an independent reader starting
// from the beginning of the blob.
func (b *Blob) ReadCloser() (io.ReadCloser, error) {
	if err := b.Load(); err != nil {
		return nil, err
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	return io.NopCloser(bytes.NewReader(b.data)), nil
}

// Load drains the source [io.Reader] into memory. If the data is already
// loaded, it returns the stored result without reading again. A digest is
// only computed when none was declared in advance.
func (b *Blob) Load() (err error) {
	b.mu.RLock()
	if b.loaded {
		b.mu.RUnlock()
		return b.err
	}
	b.mu.RUnlock()

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.loaded {
		return b.err
	}
	defer func() {
		b.loaded = true
		b.err = err // Load must not run again, even after a failure
	}()

	var data bytes.Buffer

	source := b.source
	digester := digest.Canonical.Digester()
	if b.digest == "" {
		source = io.TeeReader(source, digester.Hash())
	}

	if _, err = io.Copy(&data, source); err != nil {
		return err
	}

	if b.digest == "" {
		b.digest = digester.Digest()
	}
	b.data = data.Bytes()
	b.size = int64(len(b.data))

	return nil
}

// Size returns the declared size when the data has not been loaded yet, and
// the actual buffered size afterwards. It returns blob.SizeUnknown when
// neither is available.
func (b *Blob) Size() int64 {
	b.mu.RLock()
	if b.loaded || b.size > blob.SizeUnknown {
		defer b.mu.RUnlock()
		return b.size
	}
	b.mu.RUnlock()

	if b.Load() != nil {
		return blob.SizeUnknown
	}
	return b.Size()
}

// Digest returns the declared digest if one was given, otherwise the digest
// computed while loading. Loading failures surface as an unknown digest.
func (b *Blob) Digest() (string, bool) {
	b.mu.RLock()
	if b.digest != "" {
		defer b.mu.RUnlock()
		return b.digest.String(), true
	}
	b.mu.RUnlock()

	if b.Load() != nil {
		return "", false
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.digest.String(), true
}

// MediaType returns the media type of the blob. It defaults to
// application/octet-stream for blobs constructed without WithMediaType.
func (b *Blob) MediaType() (string, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.mediaType, b.mediaType != ""
}
