package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	customermemory "github.com/Apurer/go-gin-orders-api/internal/domains/customers/adapters/memory"
	customerdomain "github.com/Apurer/go-gin-orders-api/internal/domains/customers/domain"
	"github.com/Apurer/go-gin-orders-api/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-orders-api/internal/domains/orders/ports"
	productmemory "github.com/Apurer/go-gin-orders-api/internal/domains/products/adapters/memory"
	productdomain "github.com/Apurer/go-gin-orders-api/internal/domains/products/domain"
	productports "github.com/Apurer/go-gin-orders-api/internal/domains/products/ports"
)

type uowFixture struct {
	catalog  *productmemory.Catalog
	store    *Store
	uow      *UnitOfWork
	customer customerdomain.Customer
	product  productdomain.Product
}

func newUoWFixture(t *testing.T) uowFixture {
	t.Helper()
	ctx := context.Background()
	customers := customermemory.NewDirectory()
	catalog := productmemory.NewCatalog()
	customer, err := customerdomain.NewCustomer(uuid.New(), "Ada", "")
	require.NoError(t, err)
	_, err = customers.Save(ctx, customer)
	require.NoError(t, err)
	product, err := productdomain.NewProduct(uuid.New(), "Keyboard", decimal.RequireFromString("20.00"), 4)
	require.NoError(t, err)
	_, err = catalog.Save(ctx, product)
	require.NoError(t, err)

	fixed := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	store := NewStore(WithClock(func() time.Time { return fixed }))
	return uowFixture{
		catalog:  catalog,
		store:    store,
		uow:      NewUnitOfWork(customers, catalog, store),
		customer: *customer,
		product:  *product,
	}
}

func (f uowFixture) draft(quantity int) domain.Draft {
	return domain.Draft{
		Customer: f.customer,
		Lines:    []domain.DraftLine{{ProductID: f.product.ID, Quantity: quantity, UnitPrice: f.product.UnitPrice}},
	}
}

func TestUnitOfWork_CommitsStagedWrites(t *testing.T) {
	ctx := context.Background()
	f := newUoWFixture(t)

	var created *domain.Order
	err := f.uow.Execute(ctx, func(ctx context.Context, c ports.Collaborators) error {
		var err error
		created, err = c.Orders.Create(ctx, f.draft(3))
		if err != nil {
			return err
		}
		if err := c.Products.UpdateQuantities(ctx, []productdomain.QuantityUpdate{{ProductID: f.product.ID, Expected: 4, Quantity: 1}}); err != nil {
			return err
		}
		// Reads inside the unit of work observe staged state.
		products, err := c.Products.FindAllByID(ctx, []uuid.UUID{f.product.ID})
		require.NoError(t, err)
		require.Equal(t, 1, products[0].AvailableQuantity)
		_, err = c.Orders.GetByID(ctx, created.ID)
		return err
	})
	require.NoError(t, err)

	stored, err := f.store.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), stored.CreatedAt)
	require.Len(t, stored.Lines, 1)
	require.NotEqual(t, uuid.Nil, stored.Lines[0].ID)

	product, err := f.catalog.GetByID(ctx, f.product.ID)
	require.NoError(t, err)
	require.Equal(t, 1, product.AvailableQuantity)
}

func TestUnitOfWork_DiscardsWritesOnError(t *testing.T) {
	ctx := context.Background()
	f := newUoWFixture(t)
	boom := errors.New("boom")

	var created *domain.Order
	err := f.uow.Execute(ctx, func(ctx context.Context, c ports.Collaborators) error {
		var err error
		created, err = c.Orders.Create(ctx, f.draft(1))
		require.NoError(t, err)
		require.NoError(t, c.Products.UpdateQuantities(ctx, []productdomain.QuantityUpdate{{ProductID: f.product.ID, Expected: 4, Quantity: 3}}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = f.store.GetByID(ctx, created.ID)
	require.ErrorIs(t, err, ports.ErrNotFound)
	product, err := f.catalog.GetByID(ctx, f.product.ID)
	require.NoError(t, err)
	require.Equal(t, 4, product.AvailableQuantity)
}

func TestUnitOfWork_CommitFailsWhenBaseStockMoved(t *testing.T) {
	ctx := context.Background()
	f := newUoWFixture(t)

	var created *domain.Order
	err := f.uow.Execute(ctx, func(ctx context.Context, c ports.Collaborators) error {
		var err error
		created, err = c.Orders.Create(ctx, f.draft(1))
		require.NoError(t, err)
		require.NoError(t, c.Products.UpdateQuantities(ctx, []productdomain.QuantityUpdate{{ProductID: f.product.ID, Expected: 4, Quantity: 3}}))
		// A writer bypassing the unit of work changes stock before commit.
		return f.catalog.UpdateQuantities(ctx, []productdomain.QuantityUpdate{{ProductID: f.product.ID, Expected: 4, Quantity: 2}})
	})
	require.ErrorIs(t, err, productports.ErrStockConflict)

	_, err = f.store.GetByID(ctx, created.ID)
	require.ErrorIs(t, err, ports.ErrNotFound)
	product, err := f.catalog.GetByID(ctx, f.product.ID)
	require.NoError(t, err)
	require.Equal(t, 2, product.AvailableQuantity)
}

func TestStore_CreateRejectsIncompleteDrafts(t *testing.T) {
	store := NewStore()
	_, err := store.Create(context.Background(), domain.Draft{Customer: customerdomain.Customer{ID: uuid.New()}})
	require.Error(t, err)

	_, err = store.Create(context.Background(), domain.Draft{Lines: []domain.DraftLine{{ProductID: uuid.New(), Quantity: 1}}})
	require.Error(t, err)

	_, err = store.GetByID(context.Background(), uuid.New())
	require.ErrorIs(t, err, ports.ErrNotFound)
}
