package ordersserver

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"

	orderhttpmapper "github.com/Apurer/go-gin-orders-api/internal/domains/orders/adapters/http/mapper"
	ordersdomain "github.com/Apurer/go-gin-orders-api/internal/domains/orders/domain"
	ordersports "github.com/Apurer/go-gin-orders-api/internal/domains/orders/ports"
	apierrors "github.com/Apurer/go-gin-orders-api/internal/shared/errors"
)

// IdempotencyKeyHeader lets clients retry a placement without placing it twice.
const IdempotencyKeyHeader = "Idempotency-Key"

// OrdersAPI wires HTTP transport with the orders service and workflows.
type OrdersAPI struct {
	service   ordersports.Service
	workflows ordersports.WorkflowOrchestrator
}

// NewOrdersAPI creates an OrdersAPI backed by the provided service.
func NewOrdersAPI(service ordersports.Service, workflows ordersports.WorkflowOrchestrator) OrdersAPI {
	return OrdersAPI{service: service, workflows: workflows}
}

// Post /orders
// Place an order for a customer
func (api *OrdersAPI) PlaceOrder(c *gin.Context) {
	var payload OrderCreate
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondProblem(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	req := toTransportPlacement(payload)
	req.IdempotencyKey = c.GetHeader(IdempotencyKeyHeader)
	order, err := api.placeOrder(c.Request.Context(), orderhttpmapper.ToPlacementRequest(req))
	if err != nil {
		respondOrderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, fromTransportOrder(orderhttpmapper.FromDomainOrder(order)))
}

func (api *OrdersAPI) placeOrder(ctx context.Context, req ordersdomain.PlacementRequest) (*ordersdomain.Order, error) {
	if api.workflows != nil {
		return api.workflows.PlaceOrder(ctx, req)
	}
	return api.service.PlaceOrder(ctx, req)
}

// Get /orders/:orderId
// Find an order by id
func (api *OrdersAPI) GetOrderById(c *gin.Context) {
	var orderID openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", "orderId", c.Param("orderId"), &orderID,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		respondProblem(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	order, err := api.service.GetOrderByID(c.Request.Context(), orderID)
	if err != nil {
		respondOrderError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromTransportOrder(orderhttpmapper.FromDomainOrder(order)))
}

func toTransportPlacement(model OrderCreate) orderhttpmapper.PlacementRequest {
	lines := make([]orderhttpmapper.LineRequest, 0, len(model.Products))
	for _, product := range model.Products {
		lines = append(lines, orderhttpmapper.LineRequest{ProductID: product.Id, Quantity: product.Quantity})
	}
	return orderhttpmapper.PlacementRequest{CustomerID: model.CustomerId, Lines: lines}
}

func fromTransportOrder(order orderhttpmapper.Order) Order {
	products := make([]OrderProduct, 0, len(order.Lines))
	for _, line := range order.Lines {
		products = append(products, OrderProduct{
			Id:        line.ID,
			ProductId: line.ProductID,
			Quantity:  line.Quantity,
			Price:     line.Price,
		})
	}
	return Order{
		Id: order.ID,
		Customer: OrderCustomer{
			Id:    order.Customer.ID,
			Name:  order.Customer.Name,
			Email: order.Customer.Email,
		},
		CreatedAt:     order.CreatedAt,
		UpdatedAt:     order.UpdatedAt,
		OrderProducts: products,
		Total:         order.Total,
	}
}
