package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/Apurer/go-gin-orders-api/internal/domains/products/domain"
	"github.com/Apurer/go-gin-orders-api/internal/domains/products/ports"
)

var _ ports.Catalog = (*Catalog)(nil)

// Catalog is an in-memory product catalog.
type Catalog struct {
	mu       sync.RWMutex
	products map[uuid.UUID]domain.Product
}

func NewCatalog() *Catalog {
	return &Catalog{products: map[uuid.UUID]domain.Product{}}
}

// Save inserts or replaces a product.
func (c *Catalog) Save(_ context.Context, product *domain.Product) (*domain.Product, error) {
	if product == nil {
		return nil, errors.New("product is nil")
	}
	if err := product.Validate(); err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.products[product.ID] = *product
	clone := *product
	return &clone, nil
}

// GetByID returns a single product or ports.ErrNotFound.
func (c *Catalog) GetByID(_ context.Context, id uuid.UUID) (*domain.Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	product, ok := c.products[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return &product, nil
}

func (c *Catalog) FindAllByID(_ context.Context, ids []uuid.UUID) ([]*domain.Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	seen := make(map[uuid.UUID]struct{}, len(ids))
	found := make([]*domain.Product, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if product, ok := c.products[id]; ok {
			clone := product
			found = append(found, &clone)
		}
	}
	return found, nil
}

func (c *Catalog) UpdateQuantities(_ context.Context, updates []domain.QuantityUpdate) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, update := range updates {
		if err := update.Validate(); err != nil {
			return err
		}
		product, ok := c.products[update.ProductID]
		if !ok {
			return fmt.Errorf("product %s: %w", update.ProductID, ports.ErrNotFound)
		}
		if product.AvailableQuantity != update.Expected {
			return fmt.Errorf("product %s: %w", update.ProductID, ports.ErrStockConflict)
		}
	}
	for _, update := range updates {
		product := c.products[update.ProductID]
		product.AvailableQuantity = update.Quantity
		c.products[update.ProductID] = product
	}
	return nil
}
