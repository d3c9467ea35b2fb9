package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	customerports "github.com/Apurer/go-gin-orders-api/internal/domains/customers/ports"
	"github.com/Apurer/go-gin-orders-api/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-orders-api/internal/domains/orders/ports"
	productdomain "github.com/Apurer/go-gin-orders-api/internal/domains/products/domain"
	productports "github.com/Apurer/go-gin-orders-api/internal/domains/products/ports"
)

// Service places orders against the customer directory and product catalog.
type Service struct {
	uow    ports.UnitOfWork
	events ports.EventPublisher
	logger *slog.Logger
	now    func() time.Time
}

// Option customises the service.
type Option func(*Service)

// WithEventPublisher announces placed orders after commit.
func WithEventPublisher(publisher ports.EventPublisher) Option {
	return func(s *Service) {
		if publisher != nil {
			s.events = publisher
		}
	}
}

// WithLogger sets the logger used for post-commit failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the event timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func NewService(uow ports.UnitOfWork, opts ...Option) *Service {
	s := &Service{
		uow:    uow,
		events: ports.NopEventPublisher{},
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ ports.Service = (*Service)(nil)

// PlaceOrder validates the request, persists the order and decrements stock in
// one unit of work. Gates run in order: customer, products, stock.
func (s *Service) PlaceOrder(ctx context.Context, req domain.PlacementRequest) (*domain.Order, error) {
	if s == nil || s.uow == nil {
		return nil, errors.New("order service not configured")
	}
	if err := req.Validate(); err != nil {
		return nil, mapError(err)
	}
	var placed *domain.Order
	err := s.uow.Execute(ctx, func(ctx context.Context, c ports.Collaborators) error {
		order, err := place(ctx, c, req)
		if err != nil {
			return err
		}
		placed = order
		return nil
	})
	if err != nil {
		// Commit-time conflicts come back from the unit of work unmapped.
		if errors.Is(err, productports.ErrStockConflict) && !errors.Is(err, ErrStockConflict) {
			return nil, fmt.Errorf("%w: %w", ErrStockConflict, err)
		}
		return nil, err
	}
	s.publishPlaced(ctx, placed)
	return placed, nil
}

func (s *Service) GetOrderByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	if s == nil || s.uow == nil {
		return nil, errors.New("order service not configured")
	}
	order, err := s.uow.Orders().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

func place(ctx context.Context, c ports.Collaborators, req domain.PlacementRequest) (*domain.Order, error) {
	customer, err := c.Customers.FindByID(ctx, req.CustomerID)
	if err != nil {
		if errors.Is(err, customerports.ErrNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("find customer: %w", err)
	}

	ids := req.ProductIDs()
	found, err := c.Products.FindAllByID(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("find products: %w", err)
	}
	if len(found) == 0 {
		return nil, ErrNoProductsFound
	}
	products := make(map[uuid.UUID]*productdomain.Product, len(found))
	for _, product := range found {
		products[product.ID] = product
	}
	var missing []uuid.UUID
	for _, id := range ids {
		if _, ok := products[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingProductsError{ProductIDs: missing}
	}

	requested := req.RequestedQuantities()
	var shortages []Shortage
	for _, id := range ids {
		if available := products[id].AvailableQuantity; requested[id] > available {
			shortages = append(shortages, Shortage{ProductID: id, Requested: requested[id], Available: available})
		}
	}
	if len(shortages) > 0 {
		return nil, &InsufficientStockError{Shortages: shortages}
	}

	draft := domain.Draft{Customer: *customer, Lines: make([]domain.DraftLine, 0, len(req.Lines))}
	for _, line := range req.Lines {
		draft.Lines = append(draft.Lines, domain.DraftLine{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: products[line.ProductID].UnitPrice,
		})
	}
	order, err := c.Orders.Create(ctx, draft)
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	ordered := order.OrderedQuantities()
	updates := make([]productdomain.QuantityUpdate, 0, len(ordered))
	for _, id := range ids {
		quantity, ok := ordered[id]
		if !ok {
			continue
		}
		available := products[id].AvailableQuantity
		updates = append(updates, productdomain.QuantityUpdate{
			ProductID: id,
			Expected:  available,
			Quantity:  available - quantity,
		})
	}
	if err := c.Products.UpdateQuantities(ctx, updates); err != nil {
		if errors.Is(err, productports.ErrStockConflict) {
			return nil, fmt.Errorf("%w: %w", ErrStockConflict, err)
		}
		return nil, fmt.Errorf("update inventory: %w", err)
	}
	return order, nil
}

func (s *Service) publishPlaced(ctx context.Context, order *domain.Order) {
	if order == nil {
		return
	}
	event := domain.NewOrderPlaced(order, s.now())
	if err := s.events.PublishOrderPlaced(ctx, event); err != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "order placed event not published",
			slog.String("order_id", order.ID.String()),
			slog.String("error", err.Error()),
		)
	}
}
