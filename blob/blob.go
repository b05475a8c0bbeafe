package blob

import (
	"io"
)

// ReadOnlyBlob is an interface that represents a Binary Large Object that can
// be read from. It is the smallest contract between a producer of byte
// streams and the code that consumes them, for example the archive writer.
type ReadOnlyBlob interface {
	// ReadCloser returns a reader to incrementally access byte stream content.
	// It is the caller's responsibility to close the reader.
	//
	// ReadCloser MUST be safe for concurrent use, serializing access as necessary.
	// ReadCloser MUST be able to be called multiple times, with each invocation
	// returning a new reader that starts from the beginning of the blob.
	ReadCloser() (io.ReadCloser, error)
}

// SizeUnknown is a constant that represents an unknown size of a blob.
const SizeUnknown int64 = -1

// SizeAware is an interface that represents any arbitrary object that can be sized.
//
// Size is used to always determine the size of the object in bytes.
type SizeAware interface {
	// Size returns the blob size in bytes if known.
	// If the size is unknown, it MUST return SizeUnknown.
	Size() (size int64)
}

// DigestAware is an interface that represents any arbitrary object that can be digested.
//
// Digest is used to always determine the digest of the object. Implementations
// report the digest they know about, they never enforce it against the data.
type DigestAware interface {
	// Digest returns the blob digest if known.
	Digest() (digest string, known bool)
}

// MediaTypeAware is an interface that represents any arbitrary object that is
// associated with a media type.
//
// Media types are not part of the container format itself, but they are used
// in many places for content-type awareness.
type MediaTypeAware interface {
	// MediaType returns the media type of the blob if known.
	MediaType() (mediaType string, known bool)
}
