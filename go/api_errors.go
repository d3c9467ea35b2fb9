package ordersserver

import (
	"errors"

	"github.com/gin-gonic/gin"

	ordersapp "github.com/Apurer/go-gin-orders-api/internal/domains/orders/application"
	apierrors "github.com/Apurer/go-gin-orders-api/internal/shared/errors"
)

var orderResponder = apierrors.NewChainedResponder("", mapOrderError)

// respondProblem maps a ProblemDetail through the shared responder.
func respondProblem(c *gin.Context, problem apierrors.ProblemDetail) {
	apierrors.Respond(c, problem)
}

// respondOrderError renders order service errors as RFC 7807 responses.
func respondOrderError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	orderResponder.RespondError(c, err)
}

func mapOrderError(err error) (apierrors.ProblemDetail, bool) {
	var missing *ordersapp.MissingProductsError
	var shortage *ordersapp.InsufficientStockError
	switch {
	case errors.Is(err, ordersapp.ErrInvalidInput):
		return apierrors.ErrValidation.WithDetail(err.Error()), true
	case errors.Is(err, ordersapp.ErrCustomerNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()).WithExtension("code", "customer_not_found"), true
	case errors.Is(err, ordersapp.ErrNoProductsFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()).WithExtension("code", "no_products_found"), true
	case errors.As(err, &missing):
		return apierrors.ErrNotFound.WithDetail(err.Error()).
			WithExtension("code", "products_partially_missing").
			WithExtension("product_ids", missing.ProductIDs), true
	case errors.Is(err, ordersapp.ErrProductsPartiallyMissing):
		return apierrors.ErrNotFound.WithDetail(err.Error()).WithExtension("code", "products_partially_missing"), true
	case errors.As(err, &shortage):
		return apierrors.ErrConflict.WithDetail(err.Error()).
			WithExtension("code", "insufficient_stock").
			WithExtension("shortages", shortage.Shortages), true
	case errors.Is(err, ordersapp.ErrInsufficientStock):
		return apierrors.ErrConflict.WithDetail(err.Error()).WithExtension("code", "insufficient_stock"), true
	case errors.Is(err, ordersapp.ErrStockConflict):
		return apierrors.ErrConflict.WithDetail(err.Error()).WithExtension("code", "stock_conflict"), true
	case errors.Is(err, ordersapp.ErrOrderNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()), true
	default:
		return apierrors.ProblemDetail{}, false
	}
}
