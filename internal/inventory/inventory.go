// Package inventory keeps the in-memory product catalog and mediates every
// stock change, writing it through to the backing store.
package inventory

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	ierrors "github.com/abgdnv/inventory/internal/errors"
	"github.com/abgdnv/inventory/internal/store"
)

// SkippedRecord is a raw record that could not be turned into a Product.
type SkippedRecord struct {
	Record store.Record
	Reason error
}

// LoadReport summarizes one LoadFromStore call.
type LoadReport struct {
	Loaded  int
	Skipped []SkippedRecord
}

// Inventory owns the products keyed by id, in store order.
// The mutex is held for the whole of LoadFromStore and AddStock, so a stock
// change and its rollback are never interleaved with another call.
type Inventory struct {
	mu       sync.Mutex
	store    store.Store
	logger   *slog.Logger
	products map[string]*Product
	order    []string
}

// New creates an empty Inventory backed by s. Call LoadFromStore to populate it.
func New(s store.Store, logger *slog.Logger) *Inventory {
	return &Inventory{
		store:    s,
		logger:   logger.With("component", "inventory"),
		products: make(map[string]*Product),
	}
}

// LoadFromStore replaces the inventory contents with the store's current records.
// Malformed records are skipped and listed in the report. If the store cannot
// be read the inventory is left empty and the error is returned; the inventory
// stays usable and can be reloaded later.
func (inv *Inventory) LoadFromStore(ctx context.Context) (LoadReport, error) {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	inv.products = make(map[string]*Product)
	inv.order = nil

	var report LoadReport
	inv.logger.DebugContext(ctx, "Loading product list from the store")
	records, err := inv.store.FetchAll(ctx)
	if err != nil {
		inv.logger.WarnContext(ctx, "Could not fetch product data", "error", err)
		return report, fmt.Errorf("failed to fetch products: %w", err)
	}
	if len(records) == 0 {
		inv.logger.InfoContext(ctx, "No products available in the store")
		return report, nil
	}

	for _, rec := range records {
		p, err := ProductFromRecord(rec)
		if err == nil {
			if _, dup := inv.products[normalizeID(p.ID())]; dup {
				err = ierrors.NewValidation(store.FieldID, fmt.Sprintf("duplicate id %q", p.ID()))
			}
		}
		if err != nil {
			inv.logger.WarnContext(ctx, "Skipping invalid product data", "record", rec, "error", err)
			report.Skipped = append(report.Skipped, SkippedRecord{Record: rec, Reason: err})
			continue
		}
		key := normalizeID(p.ID())
		inv.products[key] = p
		inv.order = append(inv.order, key)
	}
	report.Loaded = len(inv.order)

	inv.logger.InfoContext(ctx, "Products loaded from the store",
		"loaded", report.Loaded,
		"skipped", len(report.Skipped),
	)
	return report, nil
}

// AddStock adds quantity (negative to deplete) to a product's stock and writes
// the new level through to the store.
// Returns a NotFoundError for an unknown id, a ValidationError if the stock
// would go below zero, and a PersistenceError if the store write fails, in
// which case the in-memory stock is restored.
func (inv *Inventory) AddStock(ctx context.Context, id string, quantity int) error {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	key := normalizeID(id)
	product, ok := inv.products[key]
	if !ok {
		return &ierrors.NotFoundError{ID: key}
	}

	originalStock := product.stock
	if err := product.UpdateStock(quantity); err != nil {
		return err
	}

	ok, err := inv.store.UpdateStock(ctx, product.id, product.stock)
	if err != nil || !ok {
		product.stock = originalStock
		inv.logger.WarnContext(ctx, "Store update failed, stock rolled back",
			"ID", product.id,
			"stock", originalStock,
			"error", err,
		)
		return &ierrors.PersistenceError{ID: product.id, Err: err}
	}

	inv.logger.InfoContext(ctx, "Stock updated",
		"ID", product.id,
		"quantity", quantity,
		"stock", product.stock,
	)
	return nil
}

// GetProduct returns a copy of the product with the given id.
// The boolean is false if no such product is loaded.
func (inv *Inventory) GetProduct(id string) (Product, bool) {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	p, ok := inv.products[normalizeID(id)]
	if !ok {
		return Product{}, false
	}
	return *p, true
}

// GetAllProducts returns a snapshot of all products in store order.
// Later changes to the inventory are not reflected in the returned slice.
func (inv *Inventory) GetAllProducts() []Product {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	list := make([]Product, 0, len(inv.order))
	for _, key := range inv.order {
		list = append(list, *inv.products[key])
	}
	return list
}

// Len returns the number of loaded products.
func (inv *Inventory) Len() int {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	return len(inv.order)
}

// normalizeID returns the canonical lookup form of a product id.
func normalizeID(id string) string {
	return strings.TrimSpace(id)
}
