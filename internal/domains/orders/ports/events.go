package ports

import (
	"context"

	"github.com/Apurer/go-gin-orders-api/internal/domains/orders/domain"
)

// EventPublisher announces committed order events to other systems.
type EventPublisher interface {
	PublishOrderPlaced(ctx context.Context, event domain.OrderPlaced) error
}

// NopEventPublisher discards events.
type NopEventPublisher struct{}

func (NopEventPublisher) PublishOrderPlaced(context.Context, domain.OrderPlaced) error { return nil }
