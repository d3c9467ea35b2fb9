package domain

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PriceScale is the number of fractional digits kept for prices.
const PriceScale = 2

var (
	ErrInvalidID       = errors.New("product id is required")
	ErrEmptyName       = errors.New("product name is required")
	ErrNegativePrice   = errors.New("product price must not be negative")
	ErrNegativeStock   = errors.New("available quantity must not be negative")
	ErrInvalidQuantity = errors.New("quantity update must not be negative")
)

// Product is a purchasable catalog item with its current price and stock level.
type Product struct {
	ID                uuid.UUID
	Name              string
	UnitPrice         decimal.Decimal
	AvailableQuantity int
}

// NewProduct builds a product, rounding the price to cents.
func NewProduct(id uuid.UUID, name string, price decimal.Decimal, available int) (*Product, error) {
	product := &Product{
		ID:                id,
		Name:              strings.TrimSpace(name),
		UnitPrice:         price.Round(PriceScale),
		AvailableQuantity: available,
	}
	if err := product.Validate(); err != nil {
		return nil, err
	}
	return product, nil
}

// Validate re-applies core invariants for persistence.
func (p *Product) Validate() error {
	if p.ID == uuid.Nil {
		return ErrInvalidID
	}
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyName
	}
	if p.UnitPrice.IsNegative() {
		return ErrNegativePrice
	}
	if p.AvailableQuantity < 0 {
		return ErrNegativeStock
	}
	return nil
}

// QuantityUpdate sets an absolute available quantity for a product. Expected is
// the quantity observed when the update was computed; the write only applies
// while the stored quantity still equals it.
type QuantityUpdate struct {
	ProductID uuid.UUID
	Expected  int
	Quantity  int
}

// Validate checks the update is applicable.
func (u QuantityUpdate) Validate() error {
	if u.ProductID == uuid.Nil {
		return ErrInvalidID
	}
	if u.Quantity < 0 || u.Expected < 0 {
		return ErrInvalidQuantity
	}
	return nil
}
