package ports

import (
	"context"

	"github.com/Apurer/go-gin-orders-api/internal/domains/orders/domain"
)

// WorkflowOrchestrator runs order placement, possibly on a durable engine.
type WorkflowOrchestrator interface {
	PlaceOrder(ctx context.Context, req domain.PlacementRequest) (*domain.Order, error)
}
