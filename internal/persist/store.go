// Package persist owns durable storage for the grocery state document: a
// debounced write-back scheduler, the remote/local/seed load chain, and the
// individual document stores.
package persist

import (
	"context"

	"GroceryHub/internal/grocery"
)

// DocumentStore reads and writes the full state document. Load reports
// found=false when the backend is reachable but holds no document yet.
type DocumentStore interface {
	Name() string
	Ping(ctx context.Context) error
	Load(ctx context.Context) (grocery.Document, bool, error)
	Save(ctx context.Context, doc grocery.Document) error
}
