package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/Apurer/go-gin-orders-api/internal/domains/customers/domain"
	"github.com/Apurer/go-gin-orders-api/internal/domains/customers/ports"
)

var _ ports.Directory = (*Directory)(nil)

// Directory is an in-memory customer directory for development and tests.
type Directory struct {
	mu        sync.RWMutex
	customers map[uuid.UUID]domain.Customer
}

func NewDirectory() *Directory {
	return &Directory{customers: map[uuid.UUID]domain.Customer{}}
}

// Save inserts or replaces a customer.
func (d *Directory) Save(_ context.Context, customer *domain.Customer) (*domain.Customer, error) {
	if customer == nil {
		return nil, errors.New("customer is nil")
	}
	if err := customer.Validate(); err != nil {
		return nil, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.customers[customer.ID] = *customer
	clone := *customer
	return &clone, nil
}

func (d *Directory) FindByID(_ context.Context, id uuid.UUID) (*domain.Customer, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	customer, ok := d.customers[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return &customer, nil
}

// Delete removes a customer; orders keep their history.
func (d *Directory) Delete(_ context.Context, id uuid.UUID) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.customers[id]; !ok {
		return ports.ErrNotFound
	}
	delete(d.customers, id)
	return nil
}
