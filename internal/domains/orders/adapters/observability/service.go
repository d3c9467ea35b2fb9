package observability

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/Apurer/go-gin-orders-api/internal/domains/orders/application"
	ordersdomain "github.com/Apurer/go-gin-orders-api/internal/domains/orders/domain"
	ordersports "github.com/Apurer/go-gin-orders-api/internal/domains/orders/ports"
)

const tracerName = "github.com/Apurer/go-gin-orders-api/internal/domains/orders/adapters/observability/service"

// Service decorates the orders service with tracing, logging, and metrics.
type Service struct {
	inner   ordersports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wraps the core orders service.
func New(inner ordersports.Service, opts ...Option) ordersports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  slog.New(slog.DiscardHandler),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Service) PlaceOrder(ctx context.Context, req ordersdomain.PlacementRequest) (*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrdersService.PlaceOrder",
		trace.WithAttributes(
			attribute.String("customer.id", req.CustomerID.String()),
			attribute.Int("order.lines", len(req.Lines)),
		))
	defer span.End()

	s.logInfo(ctx, "placing order", slog.String("customer.id", req.CustomerID.String()), slog.Int("order.lines", len(req.Lines)))
	result, err := s.inner.PlaceOrder(ctx, req)
	if err != nil {
		s.metrics.recordFailed(ctx, failureReason(err))
		return nil, s.handleError(ctx, span, err, "failed to place order", slog.String("customer.id", req.CustomerID.String()))
	}
	span.SetAttributes(attribute.String("order.id", result.ID.String()))
	s.metrics.recordPlaced(ctx, result)
	s.logInfo(ctx, "order placed",
		slog.String("order.id", result.ID.String()),
		slog.String("order.total", result.Total().StringFixed(2)),
	)
	return result, nil
}

func (s *Service) GetOrderByID(ctx context.Context, id uuid.UUID) (*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrdersService.GetOrderByID", trace.WithAttributes(attribute.String("order.id", id.String())))
	defer span.End()

	s.logInfo(ctx, "loading order", slog.String("order.id", id.String()))
	result, err := s.inner.GetOrderByID(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load order", slog.String("order.id", id.String()))
	}
	span.SetAttributes(attribute.Int("order.lines", len(result.Lines)))
	return result, nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

// failureReason buckets placement errors into a bounded label set.
func failureReason(err error) string {
	switch {
	case errors.Is(err, application.ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, application.ErrCustomerNotFound):
		return "customer_not_found"
	case errors.Is(err, application.ErrNoProductsFound):
		return "no_products_found"
	case errors.Is(err, application.ErrProductsPartiallyMissing):
		return "products_partially_missing"
	case errors.Is(err, application.ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, application.ErrStockConflict):
		return "stock_conflict"
	default:
		return "internal"
	}
}

type serviceMetrics struct {
	ordersPlaced  metric.Int64Counter
	orderFailures metric.Int64Counter
	unitsOrdered  metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	ordersPlaced, _ := m.Int64Counter("orders.service.orders_placed", metric.WithDescription("Number of orders placed"))
	orderFailures, _ := m.Int64Counter("orders.service.placement_failures", metric.WithDescription("Number of rejected or failed placements"))
	unitsOrdered, _ := m.Int64Counter("orders.service.units_ordered", metric.WithDescription("Product units taken from stock"))
	return serviceMetrics{ordersPlaced: ordersPlaced, orderFailures: orderFailures, unitsOrdered: unitsOrdered}
}

func (m serviceMetrics) recordPlaced(ctx context.Context, order *ordersdomain.Order) {
	if m.ordersPlaced != nil {
		m.ordersPlaced.Add(ctx, 1)
	}
	if m.unitsOrdered != nil {
		var units int64
		for _, line := range order.Lines {
			units += int64(line.Quantity)
		}
		m.unitsOrdered.Add(ctx, units)
	}
}

func (m serviceMetrics) recordFailed(ctx context.Context, reason string) {
	if m.orderFailures != nil {
		m.orderFailures.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
	}
}

var _ ordersports.Service = (*Service)(nil)
