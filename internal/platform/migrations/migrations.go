package migrations

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Run applies the schema for the bounded contexts. Statements are idempotent.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
			return fmt.Errorf("enable uuid-ossp: %w", err)
		}
		if err := tx.AutoMigrate(&customerRecord{}, &productRecord{}); err != nil {
			return fmt.Errorf("migrate catalog tables: %w", err)
		}
		for _, stmt := range orderStatements {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("migrate order tables: %w", err)
			}
		}
		return nil
	})
}

// Customer schema mirrors the customers Postgres adapter.
type customerRecord struct {
	ID        uuid.UUID `gorm:"primaryKey;column:id;type:uuid;default:uuid_generate_v4()"`
	Name      string    `gorm:"column:name;type:varchar(255);not null"`
	Email     *string   `gorm:"column:email;type:varchar(255);uniqueIndex"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (customerRecord) TableName() string { return "customers" }

// Product schema mirrors the products Postgres adapter.
type productRecord struct {
	ID        uuid.UUID       `gorm:"primaryKey;column:id;type:uuid;default:uuid_generate_v4()"`
	Name      string          `gorm:"column:name;type:varchar(255);not null;uniqueIndex"`
	Price     decimal.Decimal `gorm:"column:price;type:decimal(10,2);not null"`
	Quantity  int             `gorm:"column:quantity;type:integer;not null;check:chk_products_quantity,quantity >= 0"`
	CreatedAt time.Time       `gorm:"column:created_at"`
	UpdatedAt time.Time       `gorm:"column:updated_at"`
}

func (productRecord) TableName() string { return "products" }

// Order tables use explicit DDL so constraint names and column types stay fixed.
var orderStatements = []string{
	`CREATE TABLE IF NOT EXISTS orders (
		id uuid PRIMARY KEY DEFAULT uuid_generate_v4(),
		customer_id uuid NULL,
		created_at timestamp NOT NULL DEFAULT now(),
		updated_at timestamp NOT NULL DEFAULT now(),
		CONSTRAINT "CustomerId" FOREIGN KEY (customer_id) REFERENCES customers(id)
			ON UPDATE CASCADE ON DELETE SET NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_customer_id ON orders (customer_id)`,
	`CREATE TABLE IF NOT EXISTS orders_products (
		id uuid PRIMARY KEY DEFAULT uuid_generate_v4(),
		product_id uuid NULL,
		order_id uuid NULL,
		price decimal(10,2) NOT NULL,
		quantity smallint NOT NULL DEFAULT 0,
		created_at timestamp NOT NULL DEFAULT now(),
		updated_at timestamp NOT NULL DEFAULT now(),
		CONSTRAINT "OrderId" FOREIGN KEY (order_id) REFERENCES orders(id)
			ON UPDATE CASCADE ON DELETE SET NULL,
		CONSTRAINT "ProductId" FOREIGN KEY (product_id) REFERENCES products(id)
			ON UPDATE CASCADE ON DELETE SET NULL
	)`,
}
