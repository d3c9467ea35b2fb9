package ports

import (
	"context"

	customerports "github.com/Apurer/go-gin-orders-api/internal/domains/customers/ports"
	productports "github.com/Apurer/go-gin-orders-api/internal/domains/products/ports"
)

// Collaborators bundles the capabilities order placement needs.
type Collaborators struct {
	Customers customerports.Directory
	Products  productports.Catalog
	Orders    Store
}

// UnitOfWork runs fn with collaborators bound to a single atomic scope. Any
// error returned by fn discards every write made through the collaborators.
type UnitOfWork interface {
	Execute(ctx context.Context, fn func(ctx context.Context, c Collaborators) error) error
	// Orders returns a store for reads outside any unit of work.
	Orders() Store
}
