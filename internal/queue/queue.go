package queue

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/babylonchain/restaking-ledger-service/internal/config"
	"github.com/babylonchain/restaking-ledger-service/internal/queue/client"
)

// Queues is the ledger's event sink. With the queue disabled, events are
// only written to the log.
type Queues struct {
	EventQueueClient client.QueueClient
	publishTimeout   time.Duration
}

func New(cfg config.QueueConfig) *Queues {
	if !cfg.Enabled {
		log.Info().Msg("event queue disabled, ledger events will only be logged")
		return &Queues{}
	}
	eventQueueClient, err := client.NewQueueClient(&cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("error while creating EventQueueClient")
	}
	return &Queues{
		EventQueueClient: eventQueueClient,
		publishTimeout:   cfg.PublishTimeout,
	}
}

// NewWithClient is used by tests to inject a queue client
func NewWithClient(queueClient client.QueueClient, publishTimeout time.Duration) *Queues {
	return &Queues{
		EventQueueClient: queueClient,
		publishTimeout:   publishTimeout,
	}
}

// PublishEvent serialises the event and sends it, returning the body so a
// failed publish can be stored for replay.
func (q *Queues) PublishEvent(ctx context.Context, event *client.LedgerEvent) (string, error) {
	body, err := json.Marshal(event)
	if err != nil {
		return "", err
	}
	return string(body), q.PublishRaw(ctx, string(body))
}

func (q *Queues) PublishRaw(ctx context.Context, body string) error {
	if q.EventQueueClient == nil {
		log.Ctx(ctx).Info().RawJSON("event", []byte(body)).Msg("ledger event")
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, q.publishTimeout)
	defer cancel()
	return q.EventQueueClient.SendMessage(ctx, body)
}

func (q *Queues) IsConnectionHealthy() error {
	if q.EventQueueClient == nil {
		return nil
	}
	return q.EventQueueClient.IsConnectionHealthy()
}

// Stop closes the queue connection
func (q *Queues) Stop() error {
	if q.EventQueueClient == nil {
		return nil
	}
	return q.EventQueueClient.Stop()
}
