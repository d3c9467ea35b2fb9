//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Apurer/go-gin-orders-api/internal/domains/products/domain"
	"github.com/Apurer/go-gin-orders-api/internal/domains/products/ports"
	"github.com/Apurer/go-gin-orders-api/internal/platform/migrations"
)

func setupCatalogPostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcpostgres.WithDatabase("catalog_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	err = migrations.Run(db)
	require.NoError(t, err)

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		pgContainer.Terminate(ctx)
	}

	return db, cleanup
}

func TestCatalog_SaveAndFindAllByID(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupCatalogPostgresContainer(t)
	defer cleanup()

	ctx := context.Background()
	catalog := NewCatalog(db)
	keyboard, err := domain.NewProduct(uuid.New(), "Keyboard", decimal.RequireFromString("89.90"), 25)
	require.NoError(t, err)
	cable, err := domain.NewProduct(uuid.New(), "Cable", decimal.RequireFromString("9.5"), 200)
	require.NoError(t, err)

	_, err = catalog.Save(ctx, keyboard)
	require.NoError(t, err)
	saved, err := catalog.Save(ctx, cable)
	require.NoError(t, err)
	assert.Equal(t, "9.50", saved.UnitPrice.StringFixed(2))

	found, err := catalog.FindAllByID(ctx, []uuid.UUID{keyboard.ID, uuid.New(), cable.ID, keyboard.ID})
	require.NoError(t, err)
	require.Len(t, found, 2)

	empty, err := catalog.FindAllByID(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestCatalog_UpdateQuantitiesGuardsExpectedValue(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupCatalogPostgresContainer(t)
	defer cleanup()

	ctx := context.Background()
	catalog := NewCatalog(db)
	a, err := domain.NewProduct(uuid.New(), "A", decimal.RequireFromString("1.00"), 5)
	require.NoError(t, err)
	b, err := domain.NewProduct(uuid.New(), "B", decimal.RequireFromString("1.00"), 5)
	require.NoError(t, err)
	for _, p := range []*domain.Product{a, b} {
		_, err := catalog.Save(ctx, p)
		require.NoError(t, err)
	}

	err = catalog.UpdateQuantities(ctx, []domain.QuantityUpdate{
		{ProductID: a.ID, Expected: 5, Quantity: 1},
		{ProductID: b.ID, Expected: 3, Quantity: 0},
	})
	require.ErrorIs(t, err, ports.ErrStockConflict)

	found, err := catalog.FindAllByID(ctx, []uuid.UUID{a.ID})
	require.NoError(t, err)
	assert.Equal(t, 5, found[0].AvailableQuantity)

	require.NoError(t, catalog.UpdateQuantities(ctx, []domain.QuantityUpdate{{ProductID: a.ID, Expected: 5, Quantity: 1}}))
	found, err = catalog.FindAllByID(ctx, []uuid.UUID{a.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, found[0].AvailableQuantity)

	err = db.Exec("UPDATE products SET quantity = -1 WHERE id = ?", a.ID).Error
	require.Error(t, err)
}
