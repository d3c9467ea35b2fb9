package application

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/Apurer/go-gin-orders-api/internal/domains/orders/domain"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = errors.New("invalid order input")
	// ErrCustomerNotFound signals the requesting customer does not exist.
	ErrCustomerNotFound = errors.New("could not find customer")
	// ErrNoProductsFound signals none of the requested products exist.
	ErrNoProductsFound = errors.New("could not find any product")
	// ErrProductsPartiallyMissing signals some requested products do not exist.
	ErrProductsPartiallyMissing = errors.New("could not find some of the products")
	// ErrInsufficientStock signals at least one product cannot cover the request.
	ErrInsufficientStock = errors.New("out of stock")
	// ErrStockConflict signals stock moved between validation and reconciliation.
	ErrStockConflict = errors.New("stock changed while placing order")
	// ErrOrderNotFound signals the requested order does not exist.
	ErrOrderNotFound = errors.New("order not found")
)

// MissingProductsError lists the requested product ids that do not exist.
type MissingProductsError struct {
	ProductIDs []uuid.UUID
}

func (e *MissingProductsError) Error() string {
	return fmt.Sprintf("%s: %s", ErrProductsPartiallyMissing, joinIDs(e.ProductIDs))
}

func (e *MissingProductsError) Is(target error) bool {
	return target == ErrProductsPartiallyMissing
}

// Shortage describes one product whose stock cannot cover the requested quantity.
type Shortage struct {
	ProductID uuid.UUID `json:"product_id"`
	Requested int       `json:"requested"`
	Available int       `json:"available"`
}

// InsufficientStockError lists every product that is short.
type InsufficientStockError struct {
	Shortages []Shortage
}

func (e *InsufficientStockError) Error() string {
	parts := make([]string, 0, len(e.Shortages))
	for _, s := range e.Shortages {
		parts = append(parts, fmt.Sprintf("%s (requested %d, available %d)", s.ProductID, s.Requested, s.Available))
	}
	return fmt.Sprintf("%s: %s", ErrInsufficientStock, strings.Join(parts, ", "))
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrInvalidCustomerID) ||
		errors.Is(err, domain.ErrInvalidProductID) ||
		errors.Is(err, domain.ErrInvalidQuantity) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}

func joinIDs(ids []uuid.UUID) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, id.String())
	}
	return strings.Join(parts, ", ")
}
