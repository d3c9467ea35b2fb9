package orders

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"

	"github.com/Apurer/go-gin-orders-api/internal/domains/orders/domain"
	ordersports "github.com/Apurer/go-gin-orders-api/internal/domains/orders/ports"
)

const (
	// PlaceOrderActivityName runs the whole placement unit of work.
	PlaceOrderActivityName = "orders.activities.PlaceOrder"
)

// Activities groups activities that operate on the orders bounded context.
type Activities struct {
	service ordersports.Service
}

// NewActivities wires the orders service into the Temporal activities bundle.
func NewActivities(service ordersports.Service) *Activities {
	return &Activities{service: service}
}

// PlaceOrder places the order. Business rejections are returned as
// non-retryable application errors.
func (a *Activities) PlaceOrder(ctx context.Context, req domain.PlacementRequest) (*domain.Order, error) {
	logger := activity.GetLogger(ctx)
	customerID := req.CustomerID.String()
	if a == nil || a.service == nil {
		logger.Error("place order activity not initialized", "customerId", customerID)
		return nil, errors.New("place order activity not initialized")
	}
	logger.Info("PlaceOrder activity started", "customerId", customerID, "lines", len(req.Lines))
	order, err := a.service.PlaceOrder(ctx, req)
	if err != nil {
		logger.Error("PlaceOrder activity failed", "customerId", customerID, "error", err)
		return nil, EncodeError(err)
	}
	logger.Info("PlaceOrder activity completed", "orderId", order.ID.String())
	return order, nil
}
