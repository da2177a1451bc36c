// Package docstore defines the document store capability the persistence
// gateway is written against: hierarchical collection/document addressing
// (posts/{id}, posts/{id}/likes/{userId}), server-assigned timestamps,
// ordered queries and equality filters.
package docstore

import (
	"context"
)

type sentinel struct{}

// ServerTimestamp is replaced with the store's clock when a document is
// written.
var ServerTimestamp = sentinel{}

type Document struct {
	ID   string
	Path string
	Data map[string]any
}

type Query struct {
	OrderBy     string
	Descending  bool
	FilterField string
	FilterValue any
}

type Store interface {
	// Add creates a document in the given collection under a generated id.
	Add(ctx context.Context, collection string, data map[string]any) (string, error)
	// Set creates or fully replaces the document at path.
	Set(ctx context.Context, path string, data map[string]any) error
	// Update merges data into the existing document at path.
	Update(ctx context.Context, path string, data map[string]any) error
	// Delete removes the document at path. Deleting a missing document is
	// not an error.
	Delete(ctx context.Context, path string) error
	Get(ctx context.Context, path string) (*Document, error)
	Query(ctx context.Context, collection string, q Query) ([]*Document, error)
}
