package ports

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/Apurer/go-gin-orders-api/internal/domains/customers/domain"
)

var ErrNotFound = errors.New("customer not found")

// Directory resolves customer identities. FindByID returns ErrNotFound when the
// customer does not exist.
type Directory interface {
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error)
}
