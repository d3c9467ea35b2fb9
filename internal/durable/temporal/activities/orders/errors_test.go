package orders

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/temporal"

	"github.com/Apurer/go-gin-orders-api/internal/domains/orders/application"
)

func TestEncodeDecodeError_RoundTripsRejections(t *testing.T) {
	missingID := uuid.New()
	shortage := application.Shortage{ProductID: uuid.New(), Requested: 4, Available: 1}

	cases := []struct {
		err  error
		want error
		kind string
	}{
		{err: fmt.Errorf("%w: quantity", application.ErrInvalidInput), want: application.ErrInvalidInput, kind: ErrorTypeInvalidInput},
		{err: application.ErrCustomerNotFound, want: application.ErrCustomerNotFound, kind: ErrorTypeCustomerNotFound},
		{err: application.ErrNoProductsFound, want: application.ErrNoProductsFound, kind: ErrorTypeNoProductsFound},
		{err: &application.MissingProductsError{ProductIDs: []uuid.UUID{missingID}}, want: application.ErrProductsPartiallyMissing, kind: ErrorTypeProductsPartiallyMissing},
		{err: &application.InsufficientStockError{Shortages: []application.Shortage{shortage}}, want: application.ErrInsufficientStock, kind: ErrorTypeInsufficientStock},
		{err: fmt.Errorf("%w: moved", application.ErrStockConflict), want: application.ErrStockConflict, kind: ErrorTypeStockConflict},
	}
	for _, tc := range cases {
		t.Run(tc.kind, func(t *testing.T) {
			encoded := EncodeError(tc.err)
			var appErr *temporal.ApplicationError
			require.True(t, errors.As(encoded, &appErr))
			require.True(t, appErr.NonRetryable())
			require.Equal(t, tc.kind, appErr.Type())

			require.ErrorIs(t, DecodeError(encoded), tc.want)
		})
	}

	var missing *application.MissingProductsError
	require.True(t, errors.As(DecodeError(EncodeError(&application.MissingProductsError{ProductIDs: []uuid.UUID{missingID}})), &missing))
	require.Equal(t, []uuid.UUID{missingID}, missing.ProductIDs)

	var short *application.InsufficientStockError
	require.True(t, errors.As(DecodeError(EncodeError(&application.InsufficientStockError{Shortages: []application.Shortage{shortage}})), &short))
	require.Equal(t, []application.Shortage{shortage}, short.Shortages)
}

func TestEncodeError_LeavesInfrastructureErrorsRetryable(t *testing.T) {
	boom := errors.New("connection refused")
	require.Same(t, boom, EncodeError(boom))
	require.Same(t, boom, DecodeError(boom))
	require.NoError(t, EncodeError(nil))
}

func TestDecodeError_KeepsMessageWhenDetailsAreUnreadable(t *testing.T) {
	cases := []struct {
		kind string
		want error
		err  error
	}{
		{kind: ErrorTypeProductsPartiallyMissing, want: application.ErrProductsPartiallyMissing,
			err: temporal.NewNonRetryableApplicationError("placement rejected: abc", ErrorTypeProductsPartiallyMissing, nil, "abc")},
		{kind: ErrorTypeProductsPartiallyMissing + "/no-details", want: application.ErrProductsPartiallyMissing,
			err: temporal.NewNonRetryableApplicationError("placement rejected: abc", ErrorTypeProductsPartiallyMissing, nil)},
		{kind: ErrorTypeInsufficientStock, want: application.ErrInsufficientStock,
			err: temporal.NewNonRetryableApplicationError("placement rejected: abc", ErrorTypeInsufficientStock, nil, 42)},
		{kind: ErrorTypeInsufficientStock + "/no-details", want: application.ErrInsufficientStock,
			err: temporal.NewNonRetryableApplicationError("placement rejected: abc", ErrorTypeInsufficientStock, nil)},
	}
	for _, tc := range cases {
		t.Run(tc.kind, func(t *testing.T) {
			decoded := DecodeError(tc.err)
			require.ErrorIs(t, decoded, tc.want)
			require.ErrorContains(t, decoded, "placement rejected: abc")

			var missing *application.MissingProductsError
			var short *application.InsufficientStockError
			require.False(t, errors.As(decoded, &missing))
			require.False(t, errors.As(decoded, &short))
		})
	}
}
