package provider

import (
	"net/url"
	"path/filepath"
)

// Location is an artifact resolution that already points at a file on the
// local machine.
type Location interface {
	// File returns the local path of the resolved file.
	File() string
	// LocalURL returns the resolved file as a file URL.
	LocalURL() *url.URL
}

// FileLocation is the elementary Location for a plain file path.
type FileLocation struct {
	path string
}

var _ Location = FileLocation{}

// NewFileLocation returns a Location for the given path. The file is not
// touched, existence checks are up to the caller.
func NewFileLocation(path string) FileLocation {
	return FileLocation{path: filepath.Clean(path)}
}

// File returns the path the location was created with.
func (l FileLocation) File() string {
	return l.path
}

// LocalURL returns a file URL for the path. Relative paths are resolved
// against the current working directory first.
func (l FileLocation) LocalURL() *url.URL {
	path := l.path
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return &url.URL{Scheme: "file", Path: filepath.ToSlash(path)}
}

// Handle presents an already resolved Location under an alternate
// identifying source string. Both read accessors forward to the wrapped
// location; the source string is carried verbatim and never interpreted.
type Handle struct {
	source   string
	location Location
}

var _ Location = (*Handle)(nil)

// NewHandle wraps location under the given source string.
func NewHandle(source string, location Location) *Handle {
	return &Handle{source: source, location: location}
}

// Source returns the identifying source string the handle was created with.
func (h *Handle) Source() string {
	return h.source
}

// File forwards to the wrapped location.
func (h *Handle) File() string {
	return h.location.File()
}

// LocalURL forwards to the wrapped location.
func (h *Handle) LocalURL() *url.URL {
	return h.location.LocalURL()
}
