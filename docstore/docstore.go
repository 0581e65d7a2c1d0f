// Package docstore models the persistent collaborator as collections of
// schemaless documents keyed by string. It is the durable owner of
// identity; everything layered above it is a rebuildable projection.
package docstore

import (
	"context"
	"errors"
)

// Document is a schemaless record as the store holds it.
type Document = map[string]any

// Keyed pairs a document with its collection key.
type Keyed struct {
	Key string
	Doc Document
}

// ErrNotFound is returned by Get and Update when no document exists
// under the requested key.
var ErrNotFound = errors.New("docstore: document not found")

// Store is the document-database contract.
type Store interface {
	// Get returns the document under key, or ErrNotFound.
	Get(ctx context.Context, collection, key string) (Document, error)

	// GetAll returns every document in the collection, ordered by key.
	GetAll(ctx context.Context, collection string) ([]Keyed, error)

	// QueryContains returns documents whose field holds value as a
	// member. List fields match by element equality; the legacy
	// "{a,b,c}" string encoding is tolerated.
	QueryContains(ctx context.Context, collection, field, value string) ([]Keyed, error)

	// QueryPage returns up to limit documents ordered by the named
	// field (descending when desc), starting after the document whose
	// key is startAfter. An empty startAfter starts at the beginning;
	// an unknown startAfter restarts there too. The cursor for the next
	// page is the key of the last returned document, handed back
	// verbatim.
	QueryPage(ctx context.Context, collection, orderField string, desc bool, limit int, startAfter string) ([]Keyed, error)

	// Add inserts doc under a generated key and returns the key.
	Add(ctx context.Context, collection string, doc Document) (string, error)

	// Set creates or wholly replaces the document under key.
	Set(ctx context.Context, collection, key string, doc Document) error

	// Update merges fields into the existing document under key, or
	// returns ErrNotFound.
	Update(ctx context.Context, collection, key string, fields Document) error

	// Delete removes the document under key. Deleting an absent
	// document is not an error.
	Delete(ctx context.Context, collection, key string) error
}
