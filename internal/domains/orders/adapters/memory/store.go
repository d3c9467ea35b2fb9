package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Apurer/go-gin-orders-api/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-orders-api/internal/domains/orders/ports"
)

var _ ports.Store = (*Store)(nil)

// Store is an in-memory order persistence adapter.
type Store struct {
	mu     sync.RWMutex
	orders map[uuid.UUID]domain.Order
	now    func() time.Time
}

// StoreOption customises the store.
type StoreOption func(*Store)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

func NewStore(opts ...StoreOption) *Store {
	s := &Store{orders: map[uuid.UUID]domain.Order{}, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Create(_ context.Context, draft domain.Draft) (*domain.Order, error) {
	order, err := s.build(draft)
	if err != nil {
		return nil, err
	}
	s.insert(order)
	return cloneOrder(order), nil
}

func (s *Store) GetByID(_ context.Context, id uuid.UUID) (*domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	order, ok := s.orders[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return cloneOrder(order), nil
}

// build assigns identifiers and timestamps without storing the order.
func (s *Store) build(draft domain.Draft) (domain.Order, error) {
	if draft.Customer.ID == uuid.Nil {
		return domain.Order{}, domain.ErrInvalidCustomerID
	}
	if len(draft.Lines) == 0 {
		return domain.Order{}, errors.New("order has no lines")
	}
	now := s.now().UTC()
	order := domain.Order{
		ID:        uuid.New(),
		Customer:  draft.Customer,
		CreatedAt: now,
		UpdatedAt: now,
		Lines:     make([]domain.Line, 0, len(draft.Lines)),
	}
	for _, line := range draft.Lines {
		order.Lines = append(order.Lines, domain.Line{
			ID:        uuid.New(),
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			CreatedAt: now,
		})
	}
	return order, nil
}

func (s *Store) insert(order domain.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[order.ID] = *cloneOrder(order)
}

func cloneOrder(order domain.Order) *domain.Order {
	clone := order
	clone.Lines = append([]domain.Line(nil), order.Lines...)
	return &clone
}
