package inmemory

import "github.com/opencontainers/go-digest"

// Option configures a Blob during construction with New.
type Option interface {
	ApplyToBlob(*Blob)
}

// WithMediaType is an Option that declares the media type of the Blob.
type WithMediaType string

func (w WithMediaType) ApplyToBlob(b *Blob) {
	b.mediaType = string(w)
}

// WithSize is an Option that declares the size of the Blob in advance,
// allowing Size to answer without loading the source.
type WithSize int64

func (w WithSize) ApplyToBlob(b *Blob) {
	b.size = int64(w)
}

// WithDigest is an Option that declares the digest of the Blob in advance.
// The declared digest is reported as-is, the loaded data is not checked
// against it.
type WithDigest string

func (w WithDigest) ApplyToBlob(b *Blob) {
	b.digest = digest.Digest(w)
}
