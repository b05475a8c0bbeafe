package blob

import (
	"errors"
	"io"
)

// Copy copies the contents of a ReadOnlyBlob to a provided io.Writer.
//
// The function first checks if the source blob is SizeAware and retrieves its
// size if applicable. Depending on whether the size is known, it either uses
// io.CopyN to copy a specific number of bytes or io.Copy to copy all available
// data. Thus, if the data is SizeAware, no over-reading is necessary.
//
// The blob's reader is closed in all cases, and close errors are joined with
// any copy error. Copy never interprets the data it moves, in particular it
// does not check the stream against a digest the source may declare.
func Copy(dst io.Writer, src ReadOnlyBlob) (err error) {
	size := SizeUnknown
	if srcSizeAware, ok := src.(SizeAware); ok {
		size = srcSizeAware.Size()
	}

	data, err := src.ReadCloser()
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, data.Close())
	}()

	if size > SizeUnknown {
		_, err = io.CopyN(dst, data, size)
	} else {
		_, err = io.Copy(dst, data)
	}

	return err
}
