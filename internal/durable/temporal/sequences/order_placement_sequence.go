package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/go-gin-orders-api/internal/domains/orders/domain"
	orderactivities "github.com/Apurer/go-gin-orders-api/internal/durable/temporal/activities/orders"
)

// RunOrderPlacementSequence executes the placement activity once. The activity
// is a single transaction, so a failed attempt leaves nothing to resume.
func RunOrderPlacementSequence(ctx workflow.Context, req domain.PlacementRequest) (*domain.Order, error) {
	logger := workflow.GetLogger(ctx)
	customerID := req.CustomerID.String()
	logger.Info("order placement sequence started", "customerId", customerID)
	options := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts: 1,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, options)

	var order domain.Order
	err := workflow.ExecuteActivity(ctx, orderactivities.PlaceOrderActivityName, req).Get(ctx, &order)
	if err != nil {
		logger.Error("order placement sequence failed", "customerId", customerID, "error", err)
		return nil, err
	}
	logger.Info("order placement sequence completed", "orderId", order.ID.String())
	return &order, nil
}
