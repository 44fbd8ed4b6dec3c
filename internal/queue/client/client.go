package client

import (
	"context"

	"github.com/babylonchain/restaking-ledger-service/internal/config"
)

// A common interface for queue clients regardless if it's a SQS, RabbitMQ, etc.
type QueueClient interface {
	SendMessage(ctx context.Context, messageBody string) error
	GetQueueName() string
	IsConnectionHealthy() error
	Stop() error
}

func NewQueueClient(cfg *config.QueueConfig) (QueueClient, error) {
	return NewRabbitMqClient(cfg)
}
