package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	customerpostgres "github.com/Apurer/go-gin-orders-api/internal/domains/customers/adapters/persistence/postgres"
	"github.com/Apurer/go-gin-orders-api/internal/domains/orders/ports"
	productpostgres "github.com/Apurer/go-gin-orders-api/internal/domains/products/adapters/persistence/postgres"
)

var _ ports.UnitOfWork = (*UnitOfWork)(nil)

// UnitOfWork runs placements in a single PostgreSQL transaction. The customer
// row is share-locked and product rows are locked for update in id order.
type UnitOfWork struct {
	db        *gorm.DB
	storeOpts []StoreOption
}

func NewUnitOfWork(db *gorm.DB, storeOpts ...StoreOption) *UnitOfWork {
	return &UnitOfWork{db: db, storeOpts: storeOpts}
}

func (u *UnitOfWork) Orders() ports.Store {
	return NewStore(u.db, u.storeOpts...)
}

func (u *UnitOfWork) Execute(ctx context.Context, fn func(ctx context.Context, c ports.Collaborators) error) error {
	if u == nil || u.db == nil {
		return errors.New("postgres unit of work not configured")
	}
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, ports.Collaborators{
			Customers: customerpostgres.NewDirectory(tx, customerpostgres.WithShareLock()),
			Products:  productpostgres.NewCatalog(tx, productpostgres.WithUpdateLock()),
			Orders:    NewStore(tx, u.storeOpts...),
		})
	})
}
