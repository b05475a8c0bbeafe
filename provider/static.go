package provider

import (
	"context"
	"fmt"
	"sync"

	"github.com/featurekit/far/blob"
	"github.com/featurekit/far/blob/inmemory"
	"github.com/featurekit/far/feature"
)

// Static provides artifacts from a fixed in-memory assignment of IDs to
// blobs. It is primarily useful for tests and for composing providers, for
// example to shadow single artifacts in front of a Directory.
type Static struct {
	mu    sync.RWMutex
	blobs map[feature.ID]blob.ReadOnlyBlob
}

var _ Provider = (*Static)(nil)

// NewStatic creates an empty Static provider.
func NewStatic() *Static {
	return &Static{blobs: map[feature.ID]blob.ReadOnlyBlob{}}
}

// Set assigns the content for id, replacing any previous assignment. IDs are
// normalized on insert so that equivalent coordinates hit the same entry.
func (s *Static) Set(id feature.ID, b blob.ReadOnlyBlob) *Static {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[id.Normalize()] = b
	return s
}

// SetBytes assigns literal bytes as the content for id.
func (s *Static) SetBytes(id feature.ID, data []byte) *Static {
	return s.Set(id, inmemory.NewFromBytes(data))
}

// Provide returns the assigned blob for id, or an error wrapping ErrNotFound
// when no content was assigned.
func (s *Static) Provide(ctx context.Context, id feature.ID) (blob.ReadOnlyBlob, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.blobs[id.Normalize()]
	if !ok {
		return nil, fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	return b, nil
}
