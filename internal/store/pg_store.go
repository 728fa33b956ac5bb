package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgSelectAll   = `SELECT id, name, price, stock FROM products ORDER BY id`
	pgUpdateStock = `UPDATE products SET stock = $1 WHERE id = $2`
)

// PgStore implements Store using PostgreSQL as the data store.
type PgStore struct {
	db *pgxpool.Pool
}

// NewPgStore creates a new instance of Store using a PostgreSQL connection pool.
func NewPgStore(dbp *pgxpool.Pool) *PgStore {
	return &PgStore{
		db: dbp,
	}
}

// FetchAll retrieves all products as raw records ordered by id.
// It returns a slice of records, which may be empty if no products exist.
func (p *PgStore) FetchAll(ctx context.Context) ([]Record, error) {
	rows, err := p.db.Query(ctx, pgSelectAll)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	maps, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		return nil, fmt.Errorf("failed to read products: %w", err)
	}
	records := make([]Record, len(maps))
	for i, m := range maps {
		records[i] = m
	}
	return records, nil
}

// UpdateStock sets the stock of a product.
// Returns false if no product exists with the given ID.
func (p *PgStore) UpdateStock(ctx context.Context, id string, stock int) (bool, error) {
	tag, err := p.db.Exec(ctx, pgUpdateStock, stock, id)
	if err != nil {
		return false, fmt.Errorf("failed to update product stock: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
