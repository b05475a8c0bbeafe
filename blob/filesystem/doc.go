// Package filesystem provides a blob.ReadOnlyBlob backed by a file in an
// fs.FS.
//
// When working with BLOBs through this package, the main interaction point is
// the Blob. Size is answered from file metadata without touching the content,
// the digest is computed on demand, and the media type can be attached by
// whoever knows it, typically the code that resolved the file.
package filesystem
