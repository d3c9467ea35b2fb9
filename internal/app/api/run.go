package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	ordersserver "github.com/Apurer/go-gin-orders-api/go"
	apporders "github.com/Apurer/go-gin-orders-api/internal/app/orders"
	platformobservability "github.com/Apurer/go-gin-orders-api/internal/platform/observability"
	platformtemporal "github.com/Apurer/go-gin-orders-api/internal/platform/temporal"
)

const serviceName = "orders-api"

// Run boots the orders HTTP API with observability, storage, and workflows wired.
// It returns when ctx is cancelled or the server fails.
func Run(ctx context.Context) error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	stack, cleanup, err := apporders.Compose(ctx, apporders.Settings{
		PostgresDSN:         cfg.PostgresDSN,
		AMQPURL:             cfg.AMQPURL,
		OrderEventsExchange: cfg.OrderEventsExchange,
		SeedFile:            cfg.SeedFile,
	}, instruments)
	if err != nil {
		return err
	}
	defer cleanup()

	orderWorkflows, closeWorkflows, err := selectOrderWorkflows(stack, cfg, instruments, platformtemporal.Dial)
	if err != nil {
		logger.Warn("Temporal workflows unavailable, placing orders inline", slog.String("error", err.Error()))
	} else {
		logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
	}
	defer closeWorkflows()

	engine := gin.Default()
	engine.Use(otelgin.Middleware(serviceName))
	router := ordersserver.NewRouterWithGinEngine(engine, ordersserver.ApiHandleFunctions{
		OrdersAPI: ordersserver.NewOrdersAPI(stack.Service, orderWorkflows),
	})

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	serveErr := make(chan error, 1)
	go func() {
		logger.Info("orders API listening", slog.String("addr", server.Addr))
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		logger.Error("orders API server exited", slog.String("addr", server.Addr), slog.String("error", err.Error()))
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		logger.Info("orders API shutting down")
		return server.Shutdown(shutdownCtx)
	}
}
