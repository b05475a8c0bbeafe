package provider

import (
	"context"
	"errors"

	"github.com/featurekit/far/blob"
	"github.com/featurekit/far/feature"
)

// ErrNotFound is returned when a provider cannot locate the artifact it was
// asked for. Providers wrap it with the artifact coordinates, so callers
// check for it with errors.Is.
var ErrNotFound = errors.New("artifact not found")

// Provider supplies the binary content of artifacts referenced by a feature
// model. It is exclusively owned by the caller of the archive writer; the
// writer only calls Provide, it never caches or persists results beyond the
// current write.
type Provider interface {
	// Provide returns the content of the artifact identified by id.
	// If the provider has no content for id, it returns an error wrapping
	// ErrNotFound. The returned blob must stay readable until the caller is
	// done with it.
	Provide(ctx context.Context, id feature.ID) (blob.ReadOnlyBlob, error)
}

// Func adapts an ordinary function to the Provider interface.
type Func func(ctx context.Context, id feature.ID) (blob.ReadOnlyBlob, error)

// Provide implements Provider by calling f.
func (f Func) Provide(ctx context.Context, id feature.ID) (blob.ReadOnlyBlob, error) {
	return f(ctx, id)
}
