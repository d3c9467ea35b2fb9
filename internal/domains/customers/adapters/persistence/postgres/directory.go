package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/go-gin-orders-api/internal/domains/customers/domain"
	"github.com/Apurer/go-gin-orders-api/internal/domains/customers/ports"
)

var _ ports.Directory = (*Directory)(nil)

// Directory reads customers from PostgreSQL using GORM.
type Directory struct {
	db       *gorm.DB
	lockRows bool
}

// Option customises the directory.
type Option func(*Directory)

// WithShareLock makes lookups take a FOR SHARE row lock. Only meaningful when
// the directory is bound to a transaction.
func WithShareLock() Option {
	return func(d *Directory) {
		d.lockRows = true
	}
}

// NewDirectory wires a PostgreSQL-backed directory. Caller manages DB lifecycle
// and schema (see platform/migrations).
func NewDirectory(db *gorm.DB, opts ...Option) *Directory {
	d := &Directory{db: db}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

type customerRecord struct {
	ID        uuid.UUID `gorm:"primaryKey;column:id;type:uuid;default:uuid_generate_v4()"`
	Name      string    `gorm:"column:name;type:varchar(255);not null"`
	Email     *string   `gorm:"column:email;type:varchar(255);uniqueIndex"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (customerRecord) TableName() string { return "customers" }

// Save inserts or updates a customer keyed by id.
func (d *Directory) Save(ctx context.Context, customer *domain.Customer) (*domain.Customer, error) {
	if err := d.ensureDB(); err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, errors.New("customer is nil")
	}
	if err := customer.Validate(); err != nil {
		return nil, err
	}
	record := toRecord(customer)
	if err := d.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "email", "updated_at"}),
		}).
		Create(&record).Error; err != nil {
		return nil, err
	}
	return d.FindByID(ctx, record.ID)
}

// FindByID fetches a customer by identifier.
func (d *Directory) FindByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	if err := d.ensureDB(); err != nil {
		return nil, err
	}
	query := d.db.WithContext(ctx)
	if d.lockRows {
		query = query.Clauses(clause.Locking{Strength: "SHARE"})
	}
	var record customerRecord
	if err := query.Where("id = ?", id).Take(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// Delete removes a customer. Orders referencing it keep their rows with a NULL customer.
func (d *Directory) Delete(ctx context.Context, id uuid.UUID) error {
	if err := d.ensureDB(); err != nil {
		return err
	}
	result := d.db.WithContext(ctx).Where("id = ?", id).Delete(&customerRecord{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func (d *Directory) ensureDB() error {
	if d == nil || d.db == nil {
		return errors.New("postgres customer directory not configured")
	}
	return nil
}

func toRecord(customer *domain.Customer) customerRecord {
	record := customerRecord{ID: customer.ID, Name: customer.Name}
	if email := strings.TrimSpace(customer.Email); email != "" {
		record.Email = &email
	}
	return record
}

func (r customerRecord) toDomain() *domain.Customer {
	customer := &domain.Customer{ID: r.ID, Name: r.Name}
	if r.Email != nil {
		customer.Email = *r.Email
	}
	return customer
}
