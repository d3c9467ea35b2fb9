package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	customers "github.com/Apurer/go-gin-orders-api/internal/domains/customers/domain"
)

// MaxLineQuantity is the largest quantity a single line can carry (smallint column).
const MaxLineQuantity = 32767

var (
	ErrInvalidCustomerID = errors.New("customer id is required")
	ErrInvalidProductID  = errors.New("product id is required")
	ErrInvalidQuantity   = errors.New("quantity must be between 1 and 32767")
)

// LineRequest asks for a quantity of one product.
type LineRequest struct {
	ProductID uuid.UUID
	Quantity  int
}

// Validate enforces the line request shape.
func (l LineRequest) Validate() error {
	if l.ProductID == uuid.Nil {
		return ErrInvalidProductID
	}
	if l.Quantity < 1 || l.Quantity > MaxLineQuantity {
		return ErrInvalidQuantity
	}
	return nil
}

// PlacementRequest is the input to order placement. IdempotencyKey is only
// consulted by durable orchestrators.
type PlacementRequest struct {
	CustomerID     uuid.UUID
	Lines          []LineRequest
	IdempotencyKey string
}

// Validate checks shape only. An empty line list is accepted here.
func (r PlacementRequest) Validate() error {
	if r.CustomerID == uuid.Nil {
		return ErrInvalidCustomerID
	}
	for _, line := range r.Lines {
		if err := line.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// ProductIDs returns the distinct product ids in request order.
func (r PlacementRequest) ProductIDs() []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(r.Lines))
	ids := make([]uuid.UUID, 0, len(r.Lines))
	for _, line := range r.Lines {
		if _, ok := seen[line.ProductID]; ok {
			continue
		}
		seen[line.ProductID] = struct{}{}
		ids = append(ids, line.ProductID)
	}
	return ids
}

// RequestedQuantities sums quantities per product across all lines.
func (r PlacementRequest) RequestedQuantities() map[uuid.UUID]int {
	totals := make(map[uuid.UUID]int, len(r.Lines))
	for _, line := range r.Lines {
		totals[line.ProductID] += line.Quantity
	}
	return totals
}

// Line is a persisted order line. UnitPrice is the catalog price at placement.
type Line struct {
	ID        uuid.UUID
	ProductID uuid.UUID
	Quantity  int
	UnitPrice decimal.Decimal
	CreatedAt time.Time
}

// Subtotal is quantity times the snapshot price.
func (l Line) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Order is the placed order aggregate.
type Order struct {
	ID        uuid.UUID
	Customer  customers.Customer
	CreatedAt time.Time
	UpdatedAt time.Time
	Lines     []Line
}

// Total sums every line subtotal.
func (o *Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range o.Lines {
		total = total.Add(line.Subtotal())
	}
	return total
}

// OrderedQuantities sums quantities per product across the order lines.
func (o *Order) OrderedQuantities() map[uuid.UUID]int {
	totals := make(map[uuid.UUID]int, len(o.Lines))
	for _, line := range o.Lines {
		totals[line.ProductID] += line.Quantity
	}
	return totals
}

// DraftLine is a priced line awaiting persistence.
type DraftLine struct {
	ProductID uuid.UUID
	Quantity  int
	UnitPrice decimal.Decimal
}

// Draft is a validated order handed to the store.
type Draft struct {
	Customer customers.Customer
	Lines    []DraftLine
}
