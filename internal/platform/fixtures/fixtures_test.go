package fixtures

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	customermemory "github.com/Apurer/go-gin-orders-api/internal/domains/customers/adapters/memory"
	productmemory "github.com/Apurer/go-gin-orders-api/internal/domains/products/adapters/memory"
)

func TestLoadFileAndApply(t *testing.T) {
	ctx := context.Background()
	catalog, err := LoadFile("testdata/catalog.yaml")
	require.NoError(t, err)
	require.Len(t, catalog.Customers, 2)
	require.Len(t, catalog.Products, 2)

	customers := customermemory.NewDirectory()
	products := productmemory.NewCatalog()
	summary, err := Apply(ctx, catalog, customers, products)
	require.NoError(t, err)
	require.Equal(t, Summary{Customers: 2, Products: 2}, summary)

	ada, err := customers.FindByID(ctx, uuid.MustParse("7f1c5a52-4a0c-4b0e-9d4b-2f3c1d9a0001"))
	require.NoError(t, err)
	require.Equal(t, "Ada Lovelace", ada.Name)

	keyboard, err := products.GetByID(ctx, uuid.MustParse("3b0e2c1a-8e5f-4c7d-a1b2-5d6e7f8a0001"))
	require.NoError(t, err)
	require.Equal(t, "89.90", keyboard.UnitPrice.StringFixed(2))
	require.Equal(t, 25, keyboard.AvailableQuantity)

	cable, err := products.GetByID(ctx, uuid.NewSHA1(uuid.NameSpaceOID, []byte("product:USB-C Cable")))
	require.NoError(t, err)
	require.Equal(t, "9.50", cable.UnitPrice.StringFixed(2))
}

func TestApply_IsRepeatable(t *testing.T) {
	ctx := context.Background()
	catalog, err := LoadFile("testdata/catalog.yaml")
	require.NoError(t, err)
	products := productmemory.NewCatalog()

	first, err := Apply(ctx, catalog, customermemory.NewDirectory(), products)
	require.NoError(t, err)
	second, err := Apply(ctx, catalog, customermemory.NewDirectory(), products)
	require.NoError(t, err)
	require.Equal(t, first, second)

	found, err := products.FindAllByID(ctx, []uuid.UUID{
		uuid.MustParse("3b0e2c1a-8e5f-4c7d-a1b2-5d6e7f8a0001"),
		uuid.NewSHA1(uuid.NameSpaceOID, []byte("product:USB-C Cable")),
	})
	require.NoError(t, err)
	require.Len(t, found, 2)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(strings.NewReader("customers:\n  - nickname: ada\n"))
	require.Error(t, err)

	empty, err := Load(strings.NewReader(""))
	require.NoError(t, err)
	require.Empty(t, empty.Customers)

	catalog, err := Load(strings.NewReader("products:\n  - name: Broken\n    price: abc\n    quantity: 1\n"))
	require.NoError(t, err)
	_, err = Apply(context.Background(), catalog, customermemory.NewDirectory(), productmemory.NewCatalog())
	require.ErrorContains(t, err, "products[0]")

	catalog, err = Load(strings.NewReader("customers:\n  - id: nope\n    name: Ada\n"))
	require.NoError(t, err)
	_, err = Apply(context.Background(), catalog, customermemory.NewDirectory(), productmemory.NewCatalog())
	require.ErrorContains(t, err, "customers[0]")
}
