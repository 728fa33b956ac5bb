// Package store provides the persistence contract the inventory depends on
// and its implementations (PostgreSQL, SQLite file, in-memory, HTTP catalog).
package store

import "context"

// Record keys as they appear in every store.
const (
	FieldID    = "id"
	FieldName  = "name"
	FieldPrice = "price"
	FieldStock = "stock"
)

// Record is a raw product record as returned by a Store, prior to validation.
// Values keep whatever type the underlying driver or decoder produced.
type Record map[string]any

// Store is the persistence contract the inventory relies on.
// It abstracts the underlying data store, allowing for different implementations (e.g., in-memory, database).
type Store interface {
	// FetchAll returns all product records ordered by id.
	// Returns an empty slice if no products exist, or an error if the store cannot be reached.
	FetchAll(ctx context.Context) ([]Record, error)

	// UpdateStock persists a new stock level for a product.
	// Returns false with a nil error if no product exists with the given ID.
	UpdateStock(ctx context.Context, id string, stock int) (bool, error)
}
