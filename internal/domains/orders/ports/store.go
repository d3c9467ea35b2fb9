package ports

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/Apurer/go-gin-orders-api/internal/domains/orders/domain"
)

var ErrNotFound = errors.New("order not found")

// Store persists orders together with their lines.
type Store interface {
	// Create persists the order and all lines atomically and returns the stored aggregate.
	Create(ctx context.Context, draft domain.Draft) (*domain.Order, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
}
