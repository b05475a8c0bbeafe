// Package provider defines how the binary content of artifacts is located.
//
// The central contract is Provider: given artifact coordinates, hand back a
// readable blob or report ErrNotFound. The archive writer drives a Provider
// for every artifact a feature model references but never owns it, so the
// same provider can back any number of archives.
//
// Two implementations cover the local cases: Directory resolves from a
// repository-layout directory tree, Static from an explicit in-memory
// assignment. Anything else, such as remote repositories, can be plugged in
// through Func.
//
// For consumers that work with already resolved files rather than blobs, the
// package additionally provides Location and the Handle adapter, which
// re-labels a resolved location under an alternate source string.
package provider
