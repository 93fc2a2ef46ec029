package amqp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rabbitmq/amqp091-go"
	applog "github.com/rgehrsitz/autosave/internal/log"
)

// ErrDeliveriesClosed is returned by Consume when the broker closes the
// delivery channel
var ErrDeliveriesClosed = errors.New("delivery channel closed")

const publishTimeout = 5 * time.Second

// Client owns one connection and channel bound to a direct exchange
type Client struct {
	conn         *amqp091.Connection
	channel      *amqp091.Channel
	exchangeName string
	queueName    string
	logger       *applog.Logger
}

// NewClient dials url and declares the exchange and the consume queue
func NewClient(url, exchangeName, queueName string, logger *applog.Logger) (*Client, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	client := &Client{
		conn:         conn,
		channel:      channel,
		exchangeName: exchangeName,
		queueName:    queueName,
		logger:       logger.WithComponent(applog.ComponentAMQP),
	}

	if err := client.setup(); err != nil {
		client.Close()
		return nil, fmt.Errorf("setup exchange and queue: %w", err)
	}

	return client, nil
}

func (c *Client) setup() error {
	err := c.channel.ExchangeDeclare(
		c.exchangeName, // name
		"direct",       // type
		true,           // durable
		false,          // auto-deleted
		false,          // internal
		false,          // no-wait
		nil,            // arguments
	)
	if err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}
	return c.DeclareQueue(c.queueName)
}

// DeclareQueue declares a durable queue bound to the exchange under its own
// name as routing key
func (c *Client) DeclareQueue(name string) error {
	_, err := c.channel.QueueDeclare(
		name,  // name
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return fmt.Errorf("declare queue %s: %w", name, err)
	}

	if err := c.channel.QueueBind(name, name, c.exchangeName, false, nil); err != nil {
		return fmt.Errorf("bind queue %s: %w", name, err)
	}
	return nil
}

// Publish sends a persistent JSON message to routingKey
func (c *Client) Publish(ctx context.Context, routingKey, correlationID string, body []byte) error {
	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err := c.channel.PublishWithContext(
		ctx,
		c.exchangeName, // exchange
		routingKey,     // routing key
		false,          // mandatory
		false,          // immediate
		amqp091.Publishing{
			ContentType:   "application/json",
			DeliveryMode:  amqp091.Persistent,
			CorrelationId: correlationID,
			Timestamp:     time.Now(),
			Body:          body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish message: %w", err)
	}

	c.logger.DebugContext(ctx, "published message",
		applog.FieldMessageID, correlationID,
		"exchange", c.exchangeName,
		"routing_key", routingKey)
	return nil
}

// PublishCompareRequest enqueues msg on the consume queue, correlated by its ID
func (c *Client) PublishCompareRequest(ctx context.Context, msg *CompareRequestMessage) error {
	body, err := msg.ToJSON()
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}
	return c.Publish(ctx, c.queueName, msg.ID, body)
}

// Handler processes one decoded compare request. A returned error requeues
// the delivery.
type Handler func(ctx context.Context, msg *CompareRequestMessage) error

// Consume delivers compare requests to handler with manual acknowledgement
// until ctx is done or the channel closes
func (c *Client) Consume(ctx context.Context, handler Handler) error {
	msgs, err := c.channel.Consume(
		c.queueName, // queue
		"",          // consumer
		false,       // auto-ack
		false,       // exclusive
		false,       // no-local
		false,       // no-wait
		nil,         // args
	)
	if err != nil {
		return fmt.Errorf("start consuming: %w", err)
	}

	c.logger.InfoContext(ctx, "started consuming compare requests", "queue", c.queueName)

	for {
		select {
		case <-ctx.Done():
			c.logger.InfoContext(ctx, "stopping message consumption", "reason", ctx.Err())
			return ctx.Err()
		case delivery, ok := <-msgs:
			if !ok {
				return ErrDeliveriesClosed
			}
			dispatch(ctx, c.logger, delivery, handler)
		}
	}
}

// dispatch decodes one delivery and settles it. Undecodable bodies are
// dropped, handler failures requeued.
func dispatch(ctx context.Context, logger *applog.Logger, delivery amqp091.Delivery, handler Handler) {
	msg, err := CompareRequestMessageFromJSON(delivery.Body)
	if err != nil {
		logger.ErrorContext(ctx, "failed to unmarshal message", applog.FieldError, err.Error())
		_ = delivery.Nack(false, false)
		return
	}

	if err := handler(ctx, msg); err != nil {
		logger.ErrorContext(ctx, "failed to handle message",
			applog.FieldMessageID, msg.ID,
			applog.FieldError, err.Error())
		_ = delivery.Nack(false, true)
		return
	}

	_ = delivery.Ack(false)
	logger.DebugContext(ctx, "processed compare request", applog.FieldMessageID, msg.ID)
}

// Close closes the channel and the connection
func (c *Client) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// exponentialBackoff doubles from one second up to a 30 second cap
func exponentialBackoff(attempt int) time.Duration {
	const maxBackoff = 30 * time.Second
	if attempt > 5 {
		return maxBackoff
	}
	d := time.Second << attempt
	if d > maxBackoff {
		return maxBackoff
	}
	return d
}

// isConnectionError reports whether err looks like a lost or refused broker
// connection worth retrying
func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, amqp091.ErrClosed) || errors.Is(err, ErrDeliveriesClosed) {
		return true
	}
	s := strings.ToLower(err.Error())
	for _, marker := range []string{"connection", "eof", "broken pipe"} {
		if strings.Contains(s, marker) {
			return true
		}
	}
	return false
}
