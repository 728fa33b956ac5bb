package inventory

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"

	ierrors "github.com/abgdnv/inventory/internal/errors"
	"github.com/abgdnv/inventory/internal/store"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return fld.Tag.Get("field")
	})
	return v
}

// productFields carries the field rules checked on construction.
type productFields struct {
	ID    string  `field:"id"    validate:"required"`
	Name  string  `field:"name"  validate:"required"`
	Price float64 `field:"price" validate:"gte=0"`
	Stock int     `field:"stock" validate:"gte=0"`
}

// Product is one inventory item. Its id never changes; stock changes only
// through UpdateStock.
type Product struct {
	id    string
	name  string
	price float64
	stock int
}

// NewProduct validates the fields and returns a Product.
// Returns a ValidationError if id or name is empty, or price or stock is negative.
func NewProduct(id, name string, price float64, stock int) (*Product, error) {
	fields := productFields{ID: id, Name: name, Price: price, Stock: stock}
	if err := validate.Struct(fields); err != nil {
		return nil, toValidationError(err)
	}
	return &Product{id: id, name: name, price: price, stock: stock}, nil
}

// ProductFromRecord builds a Product from a raw store record. Numeric ids are
// rendered in base 10; price accepts any numeric kind; stock must be integral.
func ProductFromRecord(rec store.Record) (*Product, error) {
	id, err := coerceID(rec[store.FieldID])
	if err != nil {
		return nil, err
	}
	name, ok := rec[store.FieldName].(string)
	if !ok {
		return nil, invalidType(store.FieldName, rec[store.FieldName], "a string")
	}
	price, err := coercePrice(rec[store.FieldPrice])
	if err != nil {
		return nil, err
	}
	stock, err := coerceStock(rec[store.FieldStock])
	if err != nil {
		return nil, err
	}
	return NewProduct(id, name, price, stock)
}

// ID returns the product id.
func (p *Product) ID() string { return p.id }

// Name returns the product name.
func (p *Product) Name() string { return p.name }

// Price returns the unit price.
func (p *Product) Price() float64 { return p.price }

// Stock returns the units in stock.
func (p *Product) Stock() int { return p.stock }

// UpdateStock adds delta (which may be negative) to the stock level.
// Returns a ValidationError and leaves the stock unchanged if the result would be negative.
func (p *Product) UpdateStock(delta int) error {
	newStock := p.stock + delta
	if delta > 0 && newStock < p.stock {
		return ierrors.NewValidation(store.FieldStock, "stock level overflows")
	}
	if newStock < 0 {
		return ierrors.NewValidation(store.FieldStock, "stock cannot go below zero")
	}
	p.stock = newStock
	return nil
}

func (p *Product) String() string {
	return fmt.Sprintf("Product(id=%q, name=%q, price=%v, stock=%d)", p.id, p.name, p.price, p.stock)
}

func toValidationError(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return ierrors.NewValidation("", err.Error())
	}
	fieldErr := validationErrors[0]
	switch fieldErr.Tag() {
	case "required":
		return ierrors.NewValidation(fieldErr.Field(), "must not be empty")
	case "gte":
		return ierrors.NewValidation(fieldErr.Field(), "must not be negative")
	default:
		return ierrors.NewValidation(fieldErr.Field(), "failed on rule: "+fieldErr.Tag())
	}
}

func invalidType(field string, v any, want string) error {
	if v == nil {
		return ierrors.NewValidation(field, "is missing")
	}
	return ierrors.NewValidation(field, fmt.Sprintf("must be %s, got %T", want, v))
}

func coerceID(v any) (string, error) {
	switch id := v.(type) {
	case string:
		return id, nil
	case []byte:
		return string(id), nil
	case json.Number:
		if _, err := id.Int64(); err != nil {
			return "", invalidType(store.FieldID, v, "a string or an integer")
		}
		return id.String(), nil
	}
	if n, ok := toInt64(v); ok {
		return strconv.FormatInt(n, 10), nil
	}
	return "", invalidType(store.FieldID, v, "a string or an integer")
}

func coercePrice(v any) (float64, error) {
	switch price := v.(type) {
	case float64:
		return price, nil
	case float32:
		return float64(price), nil
	case json.Number:
		f, err := price.Float64()
		if err != nil {
			return 0, invalidType(store.FieldPrice, v, "a number")
		}
		return f, nil
	}
	if n, ok := toInt64(v); ok {
		return float64(n), nil
	}
	return 0, invalidType(store.FieldPrice, v, "a number")
}

func coerceStock(v any) (int, error) {
	if n, ok := toInt64(v); ok && n >= math.MinInt && n <= math.MaxInt {
		return int(n), nil
	}
	return 0, invalidType(store.FieldStock, v, "an integer")
}

// toInt64 converts integer kinds, and floats holding an integral value.
func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint:
		if uint64(n) > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case uint64:
		if n > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case float32:
		return floatToInt64(float64(n))
	case float64:
		return floatToInt64(n)
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	}
	return 0, false
}

func floatToInt64(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}
