package api

import (
	"errors"

	"go.temporal.io/sdk/client"

	apporders "github.com/Apurer/go-gin-orders-api/internal/app/orders"
	ordersworkflows "github.com/Apurer/go-gin-orders-api/internal/domains/orders/adapters/workflows"
	ordersports "github.com/Apurer/go-gin-orders-api/internal/domains/orders/ports"
	platformobservability "github.com/Apurer/go-gin-orders-api/internal/platform/observability"
	platformtemporal "github.com/Apurer/go-gin-orders-api/internal/platform/temporal"
)

// errProcessLocalStorage is reported when the order stack keeps its state in
// memory, so a separate worker process would place orders against other data.
var errProcessLocalStorage = errors.New("order storage is in-memory and not shared with the Temporal worker")

type temporalDialer func(platformtemporal.Settings, *platformobservability.Instruments, string) (client.Client, error)

// selectOrderWorkflows routes placements through Temporal when the worker can
// see the same storage, and inline otherwise. A non-nil error explains why the
// inline orchestrator was chosen; the returned close func is always safe to call.
func selectOrderWorkflows(stack *apporders.Stack, cfg Config, instruments *platformobservability.Instruments, dial temporalDialer) (ordersports.WorkflowOrchestrator, func(), error) {
	inline := ordersworkflows.NewInlineOrderWorkflows(stack.Service)
	noop := func() {}
	if !stack.Shared {
		return inline, noop, errProcessLocalStorage
	}
	temporalClient, err := dial(platformtemporal.Settings{
		Address:   cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Disabled:  cfg.TemporalDisabled,
	}, instruments, "temporal-client")
	if err != nil {
		return inline, noop, err
	}
	return ordersworkflows.NewTemporalOrderWorkflows(temporalClient), temporalClient.Close, nil
}
