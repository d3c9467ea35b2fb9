package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	customers "github.com/Apurer/go-gin-orders-api/internal/domains/customers/domain"
	"github.com/Apurer/go-gin-orders-api/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-orders-api/internal/domains/orders/ports"
)

var _ ports.Store = (*Store)(nil)

const foreignKeyViolation = "23503"

// ErrDanglingReference reports an order or line pointing at a row that no longer exists.
var ErrDanglingReference = errors.New("order references a missing customer or product")

// Store persists orders and their lines in PostgreSQL using GORM.
type Store struct {
	db  *gorm.DB
	now func() time.Time
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

// NewStore wires a PostgreSQL-backed order store. Caller manages DB lifecycle
// and schema (see platform/migrations).
func NewStore(db *gorm.DB, opts ...StoreOption) *Store {
	s := &Store{db: db, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type orderRecord struct {
	ID         uuid.UUID  `gorm:"primaryKey;column:id;type:uuid"`
	CustomerID *uuid.UUID `gorm:"column:customer_id;type:uuid"`
	CreatedAt  time.Time  `gorm:"column:created_at"`
	UpdatedAt  time.Time  `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }

type lineRecord struct {
	ID        uuid.UUID       `gorm:"primaryKey;column:id;type:uuid"`
	ProductID *uuid.UUID      `gorm:"column:product_id;type:uuid"`
	OrderID   *uuid.UUID      `gorm:"column:order_id;type:uuid"`
	Price     decimal.Decimal `gorm:"column:price;type:decimal(10,2)"`
	Quantity  int             `gorm:"column:quantity;type:smallint"`
	CreatedAt time.Time       `gorm:"column:created_at"`
	UpdatedAt time.Time       `gorm:"column:updated_at"`
}

func (lineRecord) TableName() string { return "orders_products" }

type customerRecord struct {
	ID    uuid.UUID `gorm:"column:id"`
	Name  string    `gorm:"column:name"`
	Email *string   `gorm:"column:email"`
}

func (customerRecord) TableName() string { return "customers" }

// Create inserts the order row and all line rows in one transaction.
func (s *Store) Create(ctx context.Context, draft domain.Draft) (*domain.Order, error) {
	if err := s.ensureDB(); err != nil {
		return nil, err
	}
	if draft.Customer.ID == uuid.Nil {
		return nil, domain.ErrInvalidCustomerID
	}
	if len(draft.Lines) == 0 {
		return nil, errors.New("order has no lines")
	}
	now := s.now().UTC().Truncate(time.Microsecond)
	customerID := draft.Customer.ID
	order := orderRecord{ID: uuid.New(), CustomerID: &customerID, CreatedAt: now, UpdatedAt: now}
	orderID := order.ID
	lines := make([]lineRecord, 0, len(draft.Lines))
	for _, line := range draft.Lines {
		productID := line.ProductID
		lines = append(lines, lineRecord{
			ID:        uuid.New(),
			ProductID: &productID,
			OrderID:   &orderID,
			Price:     line.UnitPrice,
			Quantity:  line.Quantity,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		return tx.Create(&lines).Error
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			return nil, fmt.Errorf("%w: %s", ErrDanglingReference, pgErr.ConstraintName)
		}
		return nil, err
	}
	return toDomain(order, &draft.Customer, lines), nil
}

// GetByID loads an order with its customer and lines.
func (s *Store) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	if err := s.ensureDB(); err != nil {
		return nil, err
	}
	db := s.db.WithContext(ctx)
	var order orderRecord
	if err := db.Where("id = ?", id).Take(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	var customer *customers.Customer
	if order.CustomerID != nil {
		var record customerRecord
		err := db.Where("id = ?", *order.CustomerID).Take(&record).Error
		switch {
		case err == nil:
			customer = &customers.Customer{ID: record.ID, Name: record.Name}
			if record.Email != nil {
				customer.Email = *record.Email
			}
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return nil, err
		}
	}
	var lines []lineRecord
	if err := db.Where("order_id = ?", id).Order("created_at, id").Find(&lines).Error; err != nil {
		return nil, err
	}
	return toDomain(order, customer, lines), nil
}

func (s *Store) ensureDB() error {
	if s == nil || s.db == nil {
		return errors.New("postgres order store not configured")
	}
	return nil
}

func toDomain(order orderRecord, customer *customers.Customer, lines []lineRecord) *domain.Order {
	result := &domain.Order{
		ID:        order.ID,
		CreatedAt: order.CreatedAt,
		UpdatedAt: order.UpdatedAt,
		Lines:     make([]domain.Line, 0, len(lines)),
	}
	if customer != nil {
		result.Customer = *customer
	}
	for _, line := range lines {
		converted := domain.Line{
			ID:        line.ID,
			Quantity:  line.Quantity,
			UnitPrice: line.Price,
			CreatedAt: line.CreatedAt,
		}
		if line.ProductID != nil {
			converted.ProductID = *line.ProductID
		}
		result.Lines = append(result.Lines, converted)
	}
	return result
}
