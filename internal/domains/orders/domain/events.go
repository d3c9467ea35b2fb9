package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderPlacedEventName identifies the event on the wire.
const OrderPlacedEventName = "orders.OrderPlaced"

// OrderPlaced is emitted once an order and its inventory changes are committed.
type OrderPlaced struct {
	OrderID    uuid.UUID       `json:"order_id"`
	CustomerID uuid.UUID       `json:"customer_id"`
	Lines      []PlacedLine    `json:"lines"`
	Total      decimal.Decimal `json:"total"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// PlacedLine summarises one ordered line inside an OrderPlaced event.
type PlacedLine struct {
	ProductID uuid.UUID       `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// NewOrderPlaced builds the event for a persisted order.
func NewOrderPlaced(order *Order, at time.Time) OrderPlaced {
	lines := make([]PlacedLine, 0, len(order.Lines))
	for _, line := range order.Lines {
		lines = append(lines, PlacedLine{ProductID: line.ProductID, Quantity: line.Quantity, UnitPrice: line.UnitPrice})
	}
	return OrderPlaced{
		OrderID:    order.ID,
		CustomerID: order.Customer.ID,
		Lines:      lines,
		Total:      order.Total(),
		OccurredAt: at.UTC(),
	}
}
