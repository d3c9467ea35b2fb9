package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	customerports "github.com/Apurer/go-gin-orders-api/internal/domains/customers/ports"
	"github.com/Apurer/go-gin-orders-api/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-orders-api/internal/domains/orders/ports"
	productdomain "github.com/Apurer/go-gin-orders-api/internal/domains/products/domain"
	productports "github.com/Apurer/go-gin-orders-api/internal/domains/products/ports"
)

var _ ports.UnitOfWork = (*UnitOfWork)(nil)

// UnitOfWork serialises placements and stages writes until fn succeeds.
type UnitOfWork struct {
	mu        sync.Mutex
	customers customerports.Directory
	catalog   productports.Catalog
	store     *Store
}

func NewUnitOfWork(customers customerports.Directory, catalog productports.Catalog, store *Store) *UnitOfWork {
	return &UnitOfWork{customers: customers, catalog: catalog, store: store}
}

func (u *UnitOfWork) Orders() ports.Store { return u.store }

func (u *UnitOfWork) Execute(ctx context.Context, fn func(ctx context.Context, c ports.Collaborators) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	u.mu.Lock()
	defer u.mu.Unlock()

	catalog := &stagedCatalog{base: u.catalog, pending: map[uuid.UUID]stagedQuantity{}}
	store := &stagedStore{base: u.store}
	if err := fn(ctx, ports.Collaborators{Customers: u.customers, Products: catalog, Orders: store}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := catalog.commit(ctx); err != nil {
		return err
	}
	store.commit()
	return nil
}

type stagedQuantity struct {
	expected int
	quantity int
}

// stagedCatalog overlays pending quantity updates on the base catalog.
type stagedCatalog struct {
	base    productports.Catalog
	pending map[uuid.UUID]stagedQuantity
	order   []uuid.UUID
}

func (c *stagedCatalog) FindAllByID(ctx context.Context, ids []uuid.UUID) ([]*productdomain.Product, error) {
	products, err := c.base.FindAllByID(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, product := range products {
		if staged, ok := c.pending[product.ID]; ok {
			product.AvailableQuantity = staged.quantity
		}
	}
	return products, nil
}

func (c *stagedCatalog) UpdateQuantities(ctx context.Context, updates []productdomain.QuantityUpdate) error {
	ids := make([]uuid.UUID, 0, len(updates))
	for _, update := range updates {
		if err := update.Validate(); err != nil {
			return err
		}
		ids = append(ids, update.ProductID)
	}
	current, err := c.FindAllByID(ctx, ids)
	if err != nil {
		return err
	}
	byID := make(map[uuid.UUID]int, len(current))
	for _, product := range current {
		byID[product.ID] = product.AvailableQuantity
	}
	for _, update := range updates {
		available, ok := byID[update.ProductID]
		if !ok {
			return fmt.Errorf("product %s: %w", update.ProductID, productports.ErrNotFound)
		}
		if available != update.Expected {
			return fmt.Errorf("product %s: %w", update.ProductID, productports.ErrStockConflict)
		}
	}
	for _, update := range updates {
		staged, ok := c.pending[update.ProductID]
		if !ok {
			staged.expected = update.Expected
			c.order = append(c.order, update.ProductID)
		}
		staged.quantity = update.Quantity
		c.pending[update.ProductID] = staged
	}
	return nil
}

func (c *stagedCatalog) commit(ctx context.Context) error {
	if len(c.order) == 0 {
		return nil
	}
	updates := make([]productdomain.QuantityUpdate, 0, len(c.order))
	for _, id := range c.order {
		staged := c.pending[id]
		updates = append(updates, productdomain.QuantityUpdate{ProductID: id, Expected: staged.expected, Quantity: staged.quantity})
	}
	return c.base.UpdateQuantities(ctx, updates)
}

// stagedStore keeps created orders private until commit.
type stagedStore struct {
	base    *Store
	created []domain.Order
}

func (s *stagedStore) Create(_ context.Context, draft domain.Draft) (*domain.Order, error) {
	order, err := s.base.build(draft)
	if err != nil {
		return nil, err
	}
	s.created = append(s.created, order)
	return cloneOrder(order), nil
}

func (s *stagedStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	for _, order := range s.created {
		if order.ID == id {
			return cloneOrder(order), nil
		}
	}
	return s.base.GetByID(ctx, id)
}

func (s *stagedStore) commit() {
	for _, order := range s.created {
		s.base.insert(order)
	}
}
