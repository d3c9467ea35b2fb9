package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	customers "github.com/Apurer/go-gin-orders-api/internal/domains/customers/domain"
)

func TestPlacementRequest_Validate(t *testing.T) {
	productID := uuid.New()

	require.ErrorIs(t, PlacementRequest{}.Validate(), ErrInvalidCustomerID)
	require.NoError(t, PlacementRequest{CustomerID: uuid.New()}.Validate())

	cases := map[string]LineRequest{
		"missing product": {Quantity: 1},
		"zero quantity":   {ProductID: productID},
		"over smallint":   {ProductID: productID, Quantity: MaxLineQuantity + 1},
	}
	for name, line := range cases {
		t.Run(name, func(t *testing.T) {
			err := PlacementRequest{CustomerID: uuid.New(), Lines: []LineRequest{line}}.Validate()
			require.Error(t, err)
		})
	}

	upper := PlacementRequest{CustomerID: uuid.New(), Lines: []LineRequest{{ProductID: productID, Quantity: MaxLineQuantity}}}
	require.NoError(t, upper.Validate())
}

func TestPlacementRequest_ProductIDsAndQuantities(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	req := PlacementRequest{CustomerID: uuid.New(), Lines: []LineRequest{
		{ProductID: b, Quantity: 2},
		{ProductID: a, Quantity: 1},
		{ProductID: b, Quantity: 3},
	}}

	require.Equal(t, []uuid.UUID{b, a}, req.ProductIDs())
	require.Equal(t, map[uuid.UUID]int{a: 1, b: 5}, req.RequestedQuantities())
}

func TestOrder_TotalsAndEvent(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	order := &Order{
		ID:       uuid.New(),
		Customer: customers.Customer{ID: uuid.New(), Name: "Ada"},
		Lines: []Line{
			{ProductID: a, Quantity: 2, UnitPrice: decimal.RequireFromString("10.50")},
			{ProductID: b, Quantity: 1, UnitPrice: decimal.RequireFromString("0.99")},
			{ProductID: a, Quantity: 1, UnitPrice: decimal.RequireFromString("10.50")},
		},
	}

	require.Equal(t, "32.49", order.Total().StringFixed(2))
	require.Equal(t, map[uuid.UUID]int{a: 3, b: 1}, order.OrderedQuantities())

	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.FixedZone("CEST", 2*60*60))
	event := NewOrderPlaced(order, at)
	require.Equal(t, order.ID, event.OrderID)
	require.Equal(t, order.Customer.ID, event.CustomerID)
	require.Len(t, event.Lines, 3)
	require.Equal(t, "32.49", event.Total.StringFixed(2))
	require.Equal(t, time.UTC, event.OccurredAt.Location())
	require.True(t, at.Equal(event.OccurredAt))
}
