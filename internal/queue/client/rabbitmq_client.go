package client

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/avast/retry-go/v4"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"

	"github.com/babylonchain/restaking-ledger-service/internal/config"
)

const (
	reconnectAttempts = 3
	reconnectDelay    = 500 * time.Millisecond
)

// RabbitMqClient publishes persistent messages to one durable queue.
type RabbitMqClient struct {
	mu         sync.Mutex
	uri        string
	queueName  string
	connection *amqp.Connection
	channel    *amqp.Channel
}

func NewRabbitMqClient(cfg *config.QueueConfig) (*RabbitMqClient, error) {
	c := &RabbitMqClient{
		uri:       fmt.Sprintf("amqp://%s:%s@%s", cfg.QueueUser, cfg.QueuePassword, cfg.Url),
		queueName: cfg.EventQueueName,
	}
	if err := c.connect(); err != nil {
		return nil, err
	}
	return c, nil
}

// connect must be called with mu held or before the client is shared
func (c *RabbitMqClient) connect() error {
	conn, err := amqp.Dial(c.uri)
	if err != nil {
		return fmt.Errorf("failed to connect to rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to open rabbitmq channel: %w", err)
	}
	_, err = ch.QueueDeclare(
		c.queueName,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return fmt.Errorf("failed to declare queue %s: %w", c.queueName, err)
	}
	c.connection = conn
	c.channel = ch
	return nil
}

func (c *RabbitMqClient) ensureConnected(ctx context.Context) error {
	if c.connection != nil && !c.connection.IsClosed() && c.channel != nil && !c.channel.IsClosed() {
		return nil
	}
	return retry.Do(
		c.connect,
		retry.Context(ctx),
		retry.Attempts(reconnectAttempts),
		retry.Delay(reconnectDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			log.Ctx(ctx).Warn().Err(err).Uint("attempt", n+1).
				Str("queueName", c.queueName).Msg("reconnecting to rabbitmq")
		}),
	)
}

func (c *RabbitMqClient) SendMessage(ctx context.Context, messageBody string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ensureConnected(ctx); err != nil {
		return err
	}
	return c.channel.PublishWithContext(ctx,
		"",          // default exchange
		c.queueName, // routing key
		false,       // mandatory
		false,       // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
			Body:         []byte(messageBody),
		},
	)
}

func (c *RabbitMqClient) GetQueueName() string {
	return c.queueName
}

func (c *RabbitMqClient) IsConnectionHealthy() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.connection == nil || c.connection.IsClosed() {
		return fmt.Errorf("rabbitmq connection for queue %s is closed", c.queueName)
	}
	if c.channel == nil || c.channel.IsClosed() {
		return fmt.Errorf("rabbitmq channel for queue %s is closed", c.queueName)
	}
	return nil
}

func (c *RabbitMqClient) Stop() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.channel != nil && !c.channel.IsClosed() {
		if err := c.channel.Close(); err != nil {
			return err
		}
	}
	if c.connection != nil && !c.connection.IsClosed() {
		return c.connection.Close()
	}
	return nil
}
