package observability

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.opentelemetry.io/otel/sdk/resource"
)

func TestLevelFromEnv(t *testing.T) {
	require.Equal(t, slog.LevelDebug, LevelFromEnv("debug"))
	require.Equal(t, slog.LevelWarn, LevelFromEnv(" WARN "))
	require.Equal(t, slog.LevelError, LevelFromEnv("error"))
	require.Equal(t, slog.LevelInfo, LevelFromEnv(""))
	require.Equal(t, slog.LevelInfo, LevelFromEnv("verbose"))
}

func TestInstrumentsFallbackToNoopProviders(t *testing.T) {
	var instruments *Instruments
	require.NotNil(t, instruments.Tracer("test"))
	require.NotNil(t, instruments.Meter("test"))
}

func TestMeterProvider_OrderInstrumentsKeepOnlyReason(t *testing.T) {
	ctx := context.Background()
	reader := sdkmetric.NewManualReader()
	provider := newMeterProvider(resource.Empty(), reader)
	t.Cleanup(func() { _ = provider.Shutdown(ctx) })

	meter := provider.Meter("test")
	failures, err := meter.Int64Counter(OrdersMeterPrefix + "placement_failures")
	require.NoError(t, err)
	other, err := meter.Int64Counter("http.requests")
	require.NoError(t, err)

	failures.Add(ctx, 1, metric.WithAttributes(
		attribute.String("reason", "insufficient_stock"),
		attribute.String("customer.id", "7f1c5a52-4a0c-4b0e-9d4b-2f3c1d9a0001"),
	))
	other.Add(ctx, 1, metric.WithAttributes(attribute.String("route", "/orders")))

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))
	require.Len(t, rm.ScopeMetrics, 1)

	attrsByName := map[string]attribute.Set{}
	for _, m := range rm.ScopeMetrics[0].Metrics {
		sum, ok := m.Data.(metricdata.Sum[int64])
		require.True(t, ok)
		require.Len(t, sum.DataPoints, 1)
		attrsByName[m.Name] = sum.DataPoints[0].Attributes
	}

	failureAttrs := attrsByName[OrdersMeterPrefix+"placement_failures"]
	require.Equal(t, 1, failureAttrs.Len())
	reason, ok := failureAttrs.Value("reason")
	require.True(t, ok)
	require.Equal(t, "insufficient_stock", reason.AsString())

	requestAttrs := attrsByName["http.requests"]
	_, ok = requestAttrs.Value("route")
	require.True(t, ok)
}

func TestNewResource_DescribesOrdersService(t *testing.T) {
	t.Setenv("ENVIRONMENT", "staging")
	t.Setenv("SERVICE_VERSION", "1.4.0")

	res, err := newResource(context.Background(), "orders-api")
	require.NoError(t, err)

	set := res.Set()
	for key, want := range map[attribute.Key]string{
		"service.name":           "orders-api",
		"service.namespace":      "orders",
		"deployment.environment": "staging",
		"service.version":        "1.4.0",
	} {
		got, ok := set.Value(key)
		require.True(t, ok, key)
		require.Equal(t, want, got.AsString(), key)
	}
}
