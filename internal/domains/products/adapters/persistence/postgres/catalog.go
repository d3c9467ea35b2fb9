package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/go-gin-orders-api/internal/domains/products/domain"
	"github.com/Apurer/go-gin-orders-api/internal/domains/products/ports"
)

var _ ports.Catalog = (*Catalog)(nil)

const checkViolation = "23514"

// Catalog persists products in PostgreSQL using GORM.
type Catalog struct {
	db       *gorm.DB
	lockRows bool
}

// Option customises the catalog.
type Option func(*Catalog)

// WithUpdateLock makes FindAllByID take FOR UPDATE row locks in id order. Only
// meaningful when the catalog is bound to a transaction.
func WithUpdateLock() Option {
	return func(c *Catalog) {
		c.lockRows = true
	}
}

// NewCatalog wires a PostgreSQL-backed catalog. Caller manages DB lifecycle
// and schema (see platform/migrations).
func NewCatalog(db *gorm.DB, opts ...Option) *Catalog {
	c := &Catalog{db: db}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type productRecord struct {
	ID        uuid.UUID       `gorm:"primaryKey;column:id;type:uuid;default:uuid_generate_v4()"`
	Name      string          `gorm:"column:name;type:varchar(255);not null;uniqueIndex"`
	Price     decimal.Decimal `gorm:"column:price;type:decimal(10,2);not null"`
	Quantity  int             `gorm:"column:quantity;type:integer;not null;check:chk_products_quantity,quantity >= 0"`
	CreatedAt time.Time       `gorm:"column:created_at"`
	UpdatedAt time.Time       `gorm:"column:updated_at"`
}

func (productRecord) TableName() string { return "products" }

// Save inserts or updates a product keyed by id.
func (c *Catalog) Save(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := c.ensureDB(); err != nil {
		return nil, err
	}
	if product == nil {
		return nil, errors.New("product is nil")
	}
	if err := product.Validate(); err != nil {
		return nil, err
	}
	record := toRecord(product)
	if err := c.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "price", "quantity", "updated_at"}),
		}).
		Create(&record).Error; err != nil {
		return nil, err
	}
	var saved productRecord
	if err := c.db.WithContext(ctx).Where("id = ?", record.ID).Take(&saved).Error; err != nil {
		return nil, err
	}
	return saved.toDomain(), nil
}

// FindAllByID returns the existing subset of ids ordered by id.
func (c *Catalog) FindAllByID(ctx context.Context, ids []uuid.UUID) ([]*domain.Product, error) {
	if err := c.ensureDB(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*domain.Product{}, nil
	}
	query := c.db.WithContext(ctx)
	if c.lockRows {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var records []productRecord
	if err := query.
		Where("id = ANY(?::uuid[])", pq.StringArray(idStrings(ids))).
		Order("id").
		Find(&records).Error; err != nil {
		return nil, err
	}
	products := make([]*domain.Product, 0, len(records))
	for i := range records {
		products = append(products, records[i].toDomain())
	}
	return products, nil
}

// UpdateQuantities writes absolute quantities guarded by the expected value.
func (c *Catalog) UpdateQuantities(ctx context.Context, updates []domain.QuantityUpdate) error {
	if err := c.ensureDB(); err != nil {
		return err
	}
	for _, update := range updates {
		if err := update.Validate(); err != nil {
			return err
		}
	}
	return c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, update := range updates {
			result := tx.Model(&productRecord{}).
				Where("id = ? AND quantity = ?", update.ProductID, update.Expected).
				Updates(map[string]any{
					"quantity":   update.Quantity,
					"updated_at": gorm.Expr("NOW()"),
				})
			if result.Error != nil {
				var pgErr *pgconn.PgError
				if errors.As(result.Error, &pgErr) && pgErr.Code == checkViolation {
					return fmt.Errorf("product %s: %w", update.ProductID, domain.ErrNegativeStock)
				}
				return result.Error
			}
			if result.RowsAffected == 0 {
				return fmt.Errorf("product %s: %w", update.ProductID, ports.ErrStockConflict)
			}
		}
		return nil
	})
}

func (c *Catalog) ensureDB() error {
	if c == nil || c.db == nil {
		return errors.New("postgres product catalog not configured")
	}
	return nil
}

func idStrings(ids []uuid.UUID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}

func toRecord(product *domain.Product) productRecord {
	return productRecord{
		ID:       product.ID,
		Name:     product.Name,
		Price:    product.UnitPrice.Round(domain.PriceScale),
		Quantity: product.AvailableQuantity,
	}
}

func (r productRecord) toDomain() *domain.Product {
	return &domain.Product{
		ID:                r.ID,
		Name:              r.Name,
		UnitPrice:         r.Price,
		AvailableQuantity: r.Quantity,
	}
}
