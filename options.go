package far

import (
	"errors"
	"fmt"
)

// DefaultCompression selects the compression library's default level.
const DefaultCompression = -1

// ErrInvalidCompressionLevel is returned by Options.SetLevel for levels
// outside DefaultCompression and 0 through 9.
var ErrInvalidCompressionLevel = errors.New("invalid compression level")

// Options configure how an archive is written. Construct them with
// NewOptions; the level is validated when it is set, never later, so a Write
// call can no longer fail on configuration.
type Options struct {
	level int
}

// NewOptions returns options selecting DefaultCompression.
func NewOptions() *Options {
	return &Options{level: DefaultCompression}
}

// SetLevel sets the Deflate compression level applied to all archive
// entries. Valid levels are DefaultCompression and 0 (no compression)
// through 9 (best compression); any other value is rejected immediately
// with ErrInvalidCompressionLevel and leaves the options unchanged.
func (o *Options) SetLevel(level int) error {
	if level != DefaultCompression && (level < 0 || level > 9) {
		return fmt.Errorf("%w: %d (valid: %d or 0..9)", ErrInvalidCompressionLevel, level, DefaultCompression)
	}
	o.level = level
	return nil
}

// Level returns the configured compression level. A nil receiver selects
// DefaultCompression, which lets callers pass nil options to Write.
func (o *Options) Level() int {
	if o == nil {
		return DefaultCompression
	}
	return o.level
}
