package amqp

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Client owns one broker connection and one channel.
type Client struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

// Dial connects to the broker and opens a channel.
func Dial(url string) (*Client, error) {
	if strings.TrimSpace(url) == "" {
		return nil, errors.New("amqp url is empty")
	}
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	return &Client{conn: conn, ch: ch}, nil
}

// Channel exposes the underlying channel for publishers.
func (c *Client) Channel() *amqp.Channel { return c.ch }

// DeclareTopicExchange declares a durable topic exchange.
func (c *Client) DeclareTopicExchange(name string) error {
	if c == nil || c.ch == nil {
		return errors.New("amqp channel not open")
	}
	if err := c.ch.ExchangeDeclare(name, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare exchange %q: %w", name, err)
	}
	return nil
}

func (c *Client) Close() {
	if c == nil {
		return
	}
	if c.ch != nil {
		_ = c.ch.Close()
	}
	if c.conn != nil {
		_ = c.conn.Close()
	}
}

// ConnectExchange dials url and declares exchange. When url is empty or the
// broker is unreachable it logs and returns nil with a no-op cleanup.
func ConnectExchange(url, exchange string, logger *slog.Logger) (*Client, func()) {
	if strings.TrimSpace(url) == "" {
		if logger != nil {
			logger.Warn("AMQP_URL not set, order events will not be published")
		}
		return nil, func() {}
	}
	client, err := Dial(url)
	if err != nil {
		if logger != nil {
			logger.Warn("failed to connect to amqp broker, order events will not be published", slog.String("error", err.Error()))
		}
		return nil, func() {}
	}
	if err := client.DeclareTopicExchange(exchange); err != nil {
		client.Close()
		if logger != nil {
			logger.Warn("failed to declare order events exchange", slog.String("error", err.Error()))
		}
		return nil, func() {}
	}
	if logger != nil {
		logger.Info("amqp publisher connected", slog.String("exchange", exchange))
	}
	return client, client.Close
}
