package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"
)

const (
	// SQLiteScheme prefixes file-backed store URLs, e.g. sqlite://inventory_dev.db.
	SQLiteScheme = "sqlite://"

	sqliteSelectAll   = `SELECT id, name, price, stock FROM products ORDER BY id`
	sqliteUpdateStock = `UPDATE products SET stock = ? WHERE id = ?`
)

// SQLiteStore implements Store on a SQLite database file.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens the database file named by a sqlite:// URL.
// The file is created on first use.
func OpenSQLite(ctx context.Context, url string) (*SQLiteStore, error) {
	path := strings.TrimPrefix(url, SQLiteScheme)
	if path == "" {
		return nil, fmt.Errorf("sqlite URL has no file path: %q", url)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// FetchAll retrieves all products as raw records ordered by id.
// Column values are passed through as the driver returns them.
func (s *SQLiteStore) FetchAll(ctx context.Context) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, sqliteSelectAll)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read product columns: %w", err)
	}

	records := make([]Record, 0)
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		r := make(Record, len(cols))
		for i, c := range cols {
			r[c] = values[i]
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read products: %w", err)
	}
	return records, nil
}

// UpdateStock sets the stock of a product.
// Returns false if no product exists with the given ID.
func (s *SQLiteStore) UpdateStock(ctx context.Context, id string, stock int) (bool, error) {
	res, err := s.db.ExecContext(ctx, sqliteUpdateStock, stock, id)
	if err != nil {
		return false, fmt.Errorf("failed to update product stock: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return n > 0, nil
}
