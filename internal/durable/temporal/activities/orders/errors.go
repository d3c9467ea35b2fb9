package orders

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.temporal.io/sdk/temporal"

	"github.com/Apurer/go-gin-orders-api/internal/domains/orders/application"
)

// Application error types carried across the Temporal boundary.
const (
	ErrorTypeInvalidInput             = "InvalidInput"
	ErrorTypeCustomerNotFound         = "CustomerNotFound"
	ErrorTypeNoProductsFound          = "NoProductsFound"
	ErrorTypeProductsPartiallyMissing = "ProductsPartiallyMissing"
	ErrorTypeInsufficientStock        = "InsufficientStock"
	ErrorTypeStockConflict            = "StockConflict"
)

// EncodeError turns placement rejections into non-retryable application errors.
// Other errors are returned unchanged.
func EncodeError(err error) error {
	var missing *application.MissingProductsError
	var shortage *application.InsufficientStockError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &missing):
		return temporal.NewNonRetryableApplicationError(err.Error(), ErrorTypeProductsPartiallyMissing, err, missing.ProductIDs)
	case errors.As(err, &shortage):
		return temporal.NewNonRetryableApplicationError(err.Error(), ErrorTypeInsufficientStock, err, shortage.Shortages)
	case errors.Is(err, application.ErrInvalidInput):
		return temporal.NewNonRetryableApplicationError(err.Error(), ErrorTypeInvalidInput, err)
	case errors.Is(err, application.ErrCustomerNotFound):
		return temporal.NewNonRetryableApplicationError(err.Error(), ErrorTypeCustomerNotFound, err)
	case errors.Is(err, application.ErrNoProductsFound):
		return temporal.NewNonRetryableApplicationError(err.Error(), ErrorTypeNoProductsFound, err)
	case errors.Is(err, application.ErrStockConflict):
		return temporal.NewNonRetryableApplicationError(err.Error(), ErrorTypeStockConflict, err)
	default:
		return err
	}
}

// DecodeError maps an application error raised by EncodeError back to the
// matching sentinel or typed error. When the details cannot be decoded the
// sentinel wraps the original message instead.
func DecodeError(err error) error {
	var appErr *temporal.ApplicationError
	if !errors.As(err, &appErr) {
		return err
	}
	switch appErr.Type() {
	case ErrorTypeInvalidInput:
		return fmt.Errorf("%w: %s", application.ErrInvalidInput, appErr.Error())
	case ErrorTypeCustomerNotFound:
		return application.ErrCustomerNotFound
	case ErrorTypeNoProductsFound:
		return application.ErrNoProductsFound
	case ErrorTypeProductsPartiallyMissing:
		var ids []uuid.UUID
		if !appErr.HasDetails() || appErr.Details(&ids) != nil {
			return fmt.Errorf("%w: %s", application.ErrProductsPartiallyMissing, appErr.Error())
		}
		return &application.MissingProductsError{ProductIDs: ids}
	case ErrorTypeInsufficientStock:
		var shortages []application.Shortage
		if !appErr.HasDetails() || appErr.Details(&shortages) != nil {
			return fmt.Errorf("%w: %s", application.ErrInsufficientStock, appErr.Error())
		}
		return &application.InsufficientStockError{Shortages: shortages}
	case ErrorTypeStockConflict:
		return fmt.Errorf("%w: %s", application.ErrStockConflict, appErr.Error())
	default:
		return err
	}
}
