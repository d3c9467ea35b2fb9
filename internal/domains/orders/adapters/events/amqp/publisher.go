package amqp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/Apurer/go-gin-orders-api/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-orders-api/internal/domains/orders/ports"
)

const (
	// OrderPlacedRoutingKey is the topic key used for placed orders.
	OrderPlacedRoutingKey = "orders.placed"
	defaultPublishTimeout = 5 * time.Second
	sourceHeader          = "orders-api"
)

var _ ports.EventPublisher = (*Publisher)(nil)

// Channel is the subset of *amqp.Channel the publisher needs.
type Channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// Publisher sends order events to a topic exchange as persistent JSON messages.
type Publisher struct {
	ch       Channel
	exchange string
	timeout  time.Duration
}

type Option func(*Publisher)

// WithTimeout bounds each publish call.
func WithTimeout(d time.Duration) Option {
	return func(p *Publisher) {
		if d > 0 {
			p.timeout = d
		}
	}
}

func NewPublisher(ch Channel, exchange string, opts ...Option) *Publisher {
	p := &Publisher{ch: ch, exchange: exchange, timeout: defaultPublishTimeout}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Publisher) PublishOrderPlaced(ctx context.Context, event domain.OrderPlaced) error {
	if p == nil || p.ch == nil {
		return errors.New("amqp order publisher not configured")
	}
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal order placed event: %w", err)
	}
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	msg := amqp.Publishing{
		DeliveryMode:  amqp.Persistent,
		ContentType:   "application/json",
		Type:          domain.OrderPlacedEventName,
		MessageId:     event.OrderID.String(),
		CorrelationId: event.OrderID.String(),
		Timestamp:     event.OccurredAt,
		Headers: amqp.Table{
			"x-source": sourceHeader,
		},
		Body: body,
	}
	if err := p.ch.PublishWithContext(ctx, p.exchange, OrderPlacedRoutingKey, false, false, msg); err != nil {
		return fmt.Errorf("publish order placed event: %w", err)
	}
	return nil
}
