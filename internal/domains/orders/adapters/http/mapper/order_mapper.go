package mapper

import (
	"strings"
	"time"

	"github.com/google/uuid"

	ordersdomain "github.com/Apurer/go-gin-orders-api/internal/domains/orders/domain"
	productsdomain "github.com/Apurer/go-gin-orders-api/internal/domains/products/domain"
)

// LineRequest is the transport shape of one requested product line.
type LineRequest struct {
	ProductID uuid.UUID
	Quantity  int
}

// PlacementRequest is the transport shape of an order placement.
type PlacementRequest struct {
	CustomerID     uuid.UUID
	Lines          []LineRequest
	IdempotencyKey string
}

// Customer is the transport shape of the ordering customer.
type Customer struct {
	ID    uuid.UUID
	Name  string
	Email string
}

// Line is the transport shape of a persisted order line. Price is a fixed
// two-decimal string.
type Line struct {
	ID        uuid.UUID
	ProductID uuid.UUID
	Quantity  int
	Price     string
}

// Order represents the transport-layer shape used by the handlers.
type Order struct {
	ID        uuid.UUID
	Customer  Customer
	CreatedAt time.Time
	UpdatedAt time.Time
	Lines     []Line
	Total     string
}

// ToPlacementRequest converts a transport request into the domain request.
func ToPlacementRequest(req PlacementRequest) ordersdomain.PlacementRequest {
	lines := make([]ordersdomain.LineRequest, 0, len(req.Lines))
	for _, line := range req.Lines {
		lines = append(lines, ordersdomain.LineRequest{ProductID: line.ProductID, Quantity: line.Quantity})
	}
	return ordersdomain.PlacementRequest{
		CustomerID:     req.CustomerID,
		Lines:          lines,
		IdempotencyKey: strings.TrimSpace(req.IdempotencyKey),
	}
}

// FromDomainOrder converts a domain order to the transport representation.
func FromDomainOrder(order *ordersdomain.Order) Order {
	if order == nil {
		return Order{}
	}
	lines := make([]Line, 0, len(order.Lines))
	for _, line := range order.Lines {
		lines = append(lines, Line{
			ID:        line.ID,
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			Price:     line.UnitPrice.StringFixed(productsdomain.PriceScale),
		})
	}
	return Order{
		ID: order.ID,
		Customer: Customer{
			ID:    order.Customer.ID,
			Name:  order.Customer.Name,
			Email: order.Customer.Email,
		},
		CreatedAt: order.CreatedAt,
		UpdatedAt: order.UpdatedAt,
		Lines:     lines,
		Total:     order.Total().StringFixed(productsdomain.PriceScale),
	}
}
