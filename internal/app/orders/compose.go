// Package orders assembles the order placement stack for the API and worker processes.
package orders

import (
	"context"
	"fmt"
	"log/slog"

	customermemory "github.com/Apurer/go-gin-orders-api/internal/domains/customers/adapters/memory"
	customerpostgres "github.com/Apurer/go-gin-orders-api/internal/domains/customers/adapters/persistence/postgres"
	ordersamqp "github.com/Apurer/go-gin-orders-api/internal/domains/orders/adapters/events/amqp"
	ordersmemory "github.com/Apurer/go-gin-orders-api/internal/domains/orders/adapters/memory"
	ordersobs "github.com/Apurer/go-gin-orders-api/internal/domains/orders/adapters/observability"
	orderspostgres "github.com/Apurer/go-gin-orders-api/internal/domains/orders/adapters/persistence/postgres"
	ordersapp "github.com/Apurer/go-gin-orders-api/internal/domains/orders/application"
	ordersports "github.com/Apurer/go-gin-orders-api/internal/domains/orders/ports"
	productmemory "github.com/Apurer/go-gin-orders-api/internal/domains/products/adapters/memory"
	productpostgres "github.com/Apurer/go-gin-orders-api/internal/domains/products/adapters/persistence/postgres"
	platformamqp "github.com/Apurer/go-gin-orders-api/internal/platform/amqp"
	"github.com/Apurer/go-gin-orders-api/internal/platform/fixtures"
	"github.com/Apurer/go-gin-orders-api/internal/platform/migrations"
	platformobservability "github.com/Apurer/go-gin-orders-api/internal/platform/observability"
	platformpostgres "github.com/Apurer/go-gin-orders-api/internal/platform/postgres"
)

const instrumentationName = "internal.orders.application"

// Settings selects the infrastructure behind the order stack.
type Settings struct {
	PostgresDSN         string
	AMQPURL             string
	OrderEventsExchange string
	SeedFile            string
}

// Stack is the assembled order placement service and its storage.
type Stack struct {
	Service    ordersports.Service
	UnitOfWork ordersports.UnitOfWork
	Customers  fixtures.CustomerSaver
	Products   fixtures.ProductSaver
	// Shared reports whether storage outlives the process and is visible to
	// other processes. In-memory stacks are private to the process that built them.
	Shared bool
}

// Compose wires storage, events, and observability. PostgreSQL and AMQP are
// optional; without them the stack runs on in-memory adapters and drops events.
func Compose(ctx context.Context, settings Settings, instruments *platformobservability.Instruments) (*Stack, func(), error) {
	logger := instruments.Logger
	stack := &Stack{}
	var cleanups []func()
	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}

	db, closeDB := platformpostgres.ConnectOrFallback(ctx, settings.PostgresDSN, logger)
	cleanups = append(cleanups, closeDB)
	if db != nil {
		if err := migrations.Run(db.WithContext(ctx)); err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		stack.UnitOfWork = orderspostgres.NewUnitOfWork(db)
		stack.Customers = customerpostgres.NewDirectory(db)
		stack.Products = productpostgres.NewCatalog(db)
		stack.Shared = true
		logger.Info("order stack configured with postgres")
	} else {
		customers := customermemory.NewDirectory()
		catalog := productmemory.NewCatalog()
		stack.UnitOfWork = ordersmemory.NewUnitOfWork(customers, catalog, ordersmemory.NewStore())
		stack.Customers = customers
		stack.Products = catalog
	}

	if settings.SeedFile != "" {
		if err := seed(ctx, settings.SeedFile, stack, logger); err != nil {
			cleanup()
			return nil, nil, err
		}
	}

	var publisher ordersports.EventPublisher = ordersports.NopEventPublisher{}
	broker, closeBroker := platformamqp.ConnectExchange(settings.AMQPURL, settings.OrderEventsExchange, logger)
	cleanups = append(cleanups, closeBroker)
	if broker != nil {
		publisher = ordersamqp.NewPublisher(broker.Channel(), settings.OrderEventsExchange)
	}

	core := ordersapp.NewService(stack.UnitOfWork,
		ordersapp.WithEventPublisher(publisher),
		ordersapp.WithLogger(logger),
	)
	stack.Service = ordersobs.New(core,
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer(instrumentationName)),
		ordersobs.WithMeter(instruments.Meter(instrumentationName)),
	)
	return stack, cleanup, nil
}

func seed(ctx context.Context, path string, stack *Stack, logger *slog.Logger) error {
	catalog, err := fixtures.LoadFile(path)
	if err != nil {
		return fmt.Errorf("failed to load seed file: %w", err)
	}
	summary, err := fixtures.Apply(ctx, catalog, stack.Customers, stack.Products)
	if err != nil {
		return fmt.Errorf("failed to apply seed file: %w", err)
	}
	logger.Info("catalog seeded",
		slog.String("file", path),
		slog.Int("customers", summary.Customers),
		slog.Int("products", summary.Products),
	)
	return nil
}
