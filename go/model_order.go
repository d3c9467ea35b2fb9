package ordersserver

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// OrderCreate is the body of POST /orders.
type OrderCreate struct {
	CustomerId openapi_types.UUID   `json:"customer_id"`
	Products   []OrderProductCreate `json:"products"`
}

// OrderProductCreate requests a quantity of one product.
type OrderProductCreate struct {
	Id       openapi_types.UUID `json:"id"`
	Quantity int                `json:"quantity"`
}

// Order is the representation returned for placed orders.
type Order struct {
	Id            openapi_types.UUID `json:"id"`
	Customer      OrderCustomer      `json:"customer"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
	OrderProducts []OrderProduct     `json:"order_products"`
	Total         string             `json:"total"`
}

// OrderCustomer is the customer embedded in an order.
type OrderCustomer struct {
	Id    openapi_types.UUID `json:"id"`
	Name  string             `json:"name"`
	Email string             `json:"email,omitempty"`
}

// OrderProduct is one order line with its price snapshot.
type OrderProduct struct {
	Id        openapi_types.UUID `json:"id"`
	ProductId openapi_types.UUID `json:"product_id"`
	Quantity  int                `json:"quantity"`
	Price     string             `json:"price"`
}
