package api

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/mocks"

	apporders "github.com/Apurer/go-gin-orders-api/internal/app/orders"
	ordersworkflows "github.com/Apurer/go-gin-orders-api/internal/domains/orders/adapters/workflows"
	platformobservability "github.com/Apurer/go-gin-orders-api/internal/platform/observability"
	platformtemporal "github.com/Apurer/go-gin-orders-api/internal/platform/temporal"
)

func composeMemoryStack(t *testing.T) (*apporders.Stack, *platformobservability.Instruments) {
	t.Helper()
	instruments := &platformobservability.Instruments{Logger: slog.New(slog.DiscardHandler)}
	stack, cleanup, err := apporders.Compose(context.Background(), apporders.Settings{}, instruments)
	require.NoError(t, err)
	t.Cleanup(cleanup)
	return stack, instruments
}

func TestSelectOrderWorkflows_InMemoryStackStaysInline(t *testing.T) {
	stack, instruments := composeMemoryStack(t)
	require.False(t, stack.Shared)

	dialed := false
	dial := func(platformtemporal.Settings, *platformobservability.Instruments, string) (client.Client, error) {
		dialed = true
		return &mocks.Client{}, nil
	}

	orchestrator, closeFn, err := selectOrderWorkflows(stack, Config{}, instruments, dial)
	require.ErrorIs(t, err, errProcessLocalStorage)
	require.False(t, dialed)
	require.IsType(t, &ordersworkflows.InlineOrderWorkflows{}, orchestrator)
	closeFn()
}

func TestSelectOrderWorkflows_SharedStackUsesTemporal(t *testing.T) {
	memory, instruments := composeMemoryStack(t)
	stack := &apporders.Stack{Service: memory.Service, UnitOfWork: memory.UnitOfWork, Shared: true}

	temporalClient := &mocks.Client{}
	temporalClient.On("Close").Return().Once()
	var got platformtemporal.Settings
	dial := func(settings platformtemporal.Settings, _ *platformobservability.Instruments, component string) (client.Client, error) {
		got = settings
		require.Equal(t, "temporal-client", component)
		return temporalClient, nil
	}
	cfg := Config{TemporalAddress: "temporal:7233", TemporalNamespace: "orders"}

	orchestrator, closeFn, err := selectOrderWorkflows(stack, cfg, instruments, dial)
	require.NoError(t, err)
	require.IsType(t, &ordersworkflows.TemporalOrderWorkflows{}, orchestrator)
	require.Equal(t, platformtemporal.Settings{Address: "temporal:7233", Namespace: "orders"}, got)

	closeFn()
	temporalClient.AssertExpectations(t)
}

func TestSelectOrderWorkflows_DisabledTemporalFallsBackInline(t *testing.T) {
	memory, instruments := composeMemoryStack(t)
	stack := &apporders.Stack{Service: memory.Service, Shared: true}

	orchestrator, closeFn, err := selectOrderWorkflows(stack, Config{TemporalDisabled: true}, instruments, platformtemporal.Dial)
	require.ErrorIs(t, err, platformtemporal.ErrDisabled)
	require.IsType(t, &ordersworkflows.InlineOrderWorkflows{}, orchestrator)
	closeFn()
}
