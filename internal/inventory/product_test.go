package inventory

import (
	"encoding/json"
	"math"
	"testing"

	ierrors "github.com/abgdnv/inventory/internal/errors"
	"github.com/abgdnv/inventory/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_NewProduct(t *testing.T) {
	testCases := []struct {
		name        string
		id          string
		productName string
		price       float64
		stock       int
		expectField string
	}{
		{name: "Success - valid product", id: "101", productName: "Laptop", price: 1200.50, stock: 15},
		{name: "Success - zero price and stock", id: "102", productName: "Sticker", price: 0, stock: 0},
		{name: "Error - empty id", id: "", productName: "Laptop", price: 1, stock: 1, expectField: "id"},
		{name: "Error - empty name", id: "101", productName: "", price: 1, stock: 1, expectField: "name"},
		{name: "Error - negative price", id: "101", productName: "Laptop", price: -0.01, stock: 1, expectField: "price"},
		{name: "Error - NaN price", id: "101", productName: "Laptop", price: math.NaN(), stock: 1, expectField: "price"},
		{name: "Error - negative stock", id: "101", productName: "Laptop", price: 1, stock: -1, expectField: "stock"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// when
			p, err := NewProduct(tc.id, tc.productName, tc.price, tc.stock)
			// then
			if tc.expectField != "" {
				assert.ErrorIs(t, err, ierrors.ErrValidation)
				var vErr *ierrors.ValidationError
				require.ErrorAs(t, err, &vErr)
				assert.Equal(t, tc.expectField, vErr.Field)
				assert.Nil(t, p)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.id, p.ID())
			assert.Equal(t, tc.productName, p.Name())
			assert.Equal(t, tc.price, p.Price())
			assert.Equal(t, tc.stock, p.Stock())
		})
	}
}

func Test_ProductFromRecord(t *testing.T) {
	testCases := []struct {
		name        string
		record      store.Record
		expected    *Product
		expectField string
	}{
		{
			name:     "Success - driver types",
			record:   store.Record{"id": "101", "name": "Laptop", "price": 1200.50, "stock": int64(15)},
			expected: &Product{id: "101", name: "Laptop", price: 1200.50, stock: 15},
		},
		{
			name:     "Success - JSON numbers",
			record:   store.Record{"id": float64(101), "name": "Laptop", "price": float64(1200), "stock": float64(15)},
			expected: &Product{id: "101", name: "Laptop", price: 1200, stock: 15},
		},
		{
			name:     "Success - json.Number values",
			record:   store.Record{"id": json.Number("205"), "name": "Webcam", "price": json.Number("50.25"), "stock": json.Number("50")},
			expected: &Product{id: "205", name: "Webcam", price: 50.25, stock: 50},
		},
		{
			name:     "Success - integer id and price, int32 stock",
			record:   store.Record{"id": 102, "name": "Mouse", "price": 25, "stock": int32(120)},
			expected: &Product{id: "102", name: "Mouse", price: 25, stock: 120},
		},
		{
			name:     "Success - byte slice id",
			record:   store.Record{"id": []byte("103"), "name": "Keyboard", "price": 75.99, "stock": 75},
			expected: &Product{id: "103", name: "Keyboard", price: 75.99, stock: 75},
		},
		{
			name:        "Error - missing id",
			record:      store.Record{"name": "Laptop", "price": 1.0, "stock": 1},
			expectField: "id",
		},
		{
			name:        "Error - fractional id",
			record:      store.Record{"id": 101.5, "name": "Laptop", "price": 1.0, "stock": 1},
			expectField: "id",
		},
		{
			name:        "Error - empty id",
			record:      store.Record{"id": "", "name": "Laptop", "price": 1.0, "stock": 1},
			expectField: "id",
		},
		{
			name:        "Error - name is not a string",
			record:      store.Record{"id": "101", "name": 42, "price": 1.0, "stock": 1},
			expectField: "name",
		},
		{
			name:        "Error - missing name",
			record:      store.Record{"id": "101", "price": 1.0, "stock": 1},
			expectField: "name",
		},
		{
			name:        "Error - price is a string",
			record:      store.Record{"id": "101", "name": "Laptop", "price": "12.50", "stock": 1},
			expectField: "price",
		},
		{
			name:        "Error - negative price",
			record:      store.Record{"id": "101", "name": "Laptop", "price": -5.0, "stock": 1},
			expectField: "price",
		},
		{
			name:        "Error - fractional stock",
			record:      store.Record{"id": "101", "name": "Laptop", "price": 1.0, "stock": 1.5},
			expectField: "stock",
		},
		{
			name:        "Error - missing stock",
			record:      store.Record{"id": "101", "name": "Laptop", "price": 1.0},
			expectField: "stock",
		},
		{
			name:        "Error - negative stock",
			record:      store.Record{"id": "101", "name": "Laptop", "price": 1.0, "stock": -3},
			expectField: "stock",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// when
			p, err := ProductFromRecord(tc.record)
			// then
			if tc.expectField != "" {
				var vErr *ierrors.ValidationError
				require.ErrorAs(t, err, &vErr)
				assert.Equal(t, tc.expectField, vErr.Field)
				assert.Nil(t, p)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, p)
		})
	}
}

func Test_Product_UpdateStock(t *testing.T) {
	testCases := []struct {
		name        string
		stock       int
		delta       int
		expected    int
		expectError bool
	}{
		{name: "Success - replenish", stock: 15, delta: 5, expected: 20},
		{name: "Success - deplete", stock: 15, delta: -5, expected: 10},
		{name: "Success - deplete to zero", stock: 15, delta: -15, expected: 0},
		{name: "Success - zero delta", stock: 15, delta: 0, expected: 15},
		{name: "Error - below zero", stock: 15, delta: -16, expected: 15, expectError: true},
		{name: "Error - overflow", stock: math.MaxInt - 1, delta: 2, expected: math.MaxInt - 1, expectError: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			p, err := NewProduct("101", "Laptop", 1200.50, tc.stock)
			require.NoError(t, err)
			// when
			err = p.UpdateStock(tc.delta)
			// then
			if tc.expectError {
				var vErr *ierrors.ValidationError
				require.ErrorAs(t, err, &vErr)
				assert.Equal(t, "stock", vErr.Field)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tc.expected, p.Stock())
		})
	}
}

func Test_Product_UpdateStock_FailureIsIdempotent(t *testing.T) {
	p, err := NewProduct("101", "Laptop", 1200.50, 15)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		err = p.UpdateStock(-20)
		assert.EqualError(t, err, "stock cannot go below zero")
		var vErr *ierrors.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "stock", vErr.Field)
		assert.Equal(t, 15, p.Stock())
	}
}

func Test_Product_String(t *testing.T) {
	p, err := NewProduct("101", "Laptop", 1200.5, 15)
	require.NoError(t, err)

	assert.Equal(t, `Product(id="101", name="Laptop", price=1200.5, stock=15)`, p.String())
}
