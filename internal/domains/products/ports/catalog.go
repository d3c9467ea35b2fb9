package ports

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/Apurer/go-gin-orders-api/internal/domains/products/domain"
)

var (
	ErrNotFound = errors.New("product not found")
	// ErrStockConflict reports that a product's quantity changed since it was read.
	ErrStockConflict = errors.New("product stock changed concurrently")
)

// Catalog resolves products and records stock movements.
type Catalog interface {
	// FindAllByID returns the subset of ids that exist, in no particular order.
	FindAllByID(ctx context.Context, ids []uuid.UUID) ([]*domain.Product, error)
	// UpdateQuantities applies every update or none of them. It returns
	// ErrStockConflict when a product's stored quantity differs from Expected.
	UpdateQuantities(ctx context.Context, updates []domain.QuantityUpdate) error
}
