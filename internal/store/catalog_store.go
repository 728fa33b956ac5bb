package store

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// CatalogStore implements Store on top of a remote product catalog API.
//
// The endpoint is the products collection URL: GET <endpoint> returns a JSON
// array of records, PUT <endpoint>/{id}/stock with {"stock": n} sets a stock level.
type CatalogStore struct {
	client   *resty.Client
	endpoint string
}

type stockUpdateRequest struct {
	Stock int `json:"stock"`
}

// NewCatalogStore creates a catalog client with the given per-request timeout.
func NewCatalogStore(endpoint string, timeout time.Duration) *CatalogStore {
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
	return &CatalogStore{
		client:   client,
		endpoint: strings.TrimRight(endpoint, "/"),
	}
}

// FetchAll retrieves all products from the catalog.
func (c *CatalogStore) FetchAll(ctx context.Context) ([]Record, error) {
	var records []Record
	resp, err := c.client.R().
		SetContext(ctx).
		SetResult(&records).
		Get(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product catalog: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("failed to fetch product catalog: unexpected status %d", resp.StatusCode())
	}
	if records == nil {
		records = []Record{}
	}
	return records, nil
}

// UpdateStock sets the stock of a product in the catalog.
// Returns false if the catalog does not know the product.
func (c *CatalogStore) UpdateStock(ctx context.Context, id string, stock int) (bool, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetPathParam("id", id).
		SetBody(stockUpdateRequest{Stock: stock}).
		Put(c.endpoint + "/{id}/stock")
	if err != nil {
		return false, fmt.Errorf("failed to update product stock: %w", err)
	}
	switch {
	case resp.StatusCode() == http.StatusNotFound:
		return false, nil
	case resp.IsError():
		return false, fmt.Errorf("failed to update product stock: unexpected status %d", resp.StatusCode())
	}
	return true, nil
}
