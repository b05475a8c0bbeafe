// Package blob provides interfaces and helpers for working with Binary Large
// Objects (BLOBs).
//
// When working with BLOBs through this package, it is important to understand
// the following concepts:
//   - ReadOnlyBlob: An interface that represents a read-only BLOB.
//   - SizeAware: An interface that represents any arbitrary object that can be sized.
//   - DigestAware: An interface that represents any arbitrary object that can be digested.
//   - MediaTypeAware: An interface that represents any arbitrary object that can have a media type.
//
// These core concepts make it possible to describe any arbitrary data without
// actually introspecting it. Consumers discover capabilities through plain
// type assertions and fall back to streaming when a capability is absent.
// Digests and media types are purely descriptive here. Nothing in this
// package validates data against them.
//
// Additionally, the package provides Copy, a function that copies data from a
// blob to any given io.Writer while taking advantage of SizeAware sources.
//
// Concrete blob implementations live in the sub-packages inmemory and
// filesystem.
package blob
