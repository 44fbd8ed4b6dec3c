package services

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/babylonchain/restaking-ledger-service/internal/observability/metrics"
	"github.com/babylonchain/restaking-ledger-service/internal/queue/client"
)

const replayBatchSize = 100

// publish sends the event of a committed operation. Publishing never undoes
// the commit; undelivered events are stored for replay.
func (s *Services) publish(ctx context.Context, kind client.EventKind, sequence uint64, data interface{}) {
	event := client.NewLedgerEvent(kind, sequence, data)
	body, err := s.Events.PublishEvent(ctx, event)
	if err == nil {
		return
	}
	metrics.RecordEventPublishFailure(kind.String())
	log.Ctx(ctx).Error().Err(err).Str("event", kind.String()).Uint64("sequence", sequence).
		Msg("failed to publish ledger event")
	if body == "" {
		return
	}
	if err := s.DbClient.SaveUnpublishedEvent(ctx, sequence, body); err != nil {
		log.Ctx(ctx).Error().Err(err).Uint64("sequence", sequence).Msg("failed to save unpublished event")
	}
}

// recordCallbackFailure orders and publishes the failure of a rolled back workflow.
func (s *Services) recordCallbackFailure(ctx context.Context, data *client.CallbackFailedEventData) {
	var sequence uint64
	err := s.DbClient.RunInTransaction(ctx, func(txCtx context.Context) error {
		var err error
		sequence, err = s.nextSequence(txCtx)
		return err
	})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to order callback failure event")
		return
	}
	s.publish(ctx, client.CallbackFailedEventKind, sequence, data)
}

// RawPublisher re-sends already serialised events
type RawPublisher interface {
	PublishRaw(ctx context.Context, body string) error
}

// ReplayUnpublishedEvents re-sends stored events in sequence order. An event
// that fails again is stored back and the replay stops.
func (s *Services) ReplayUnpublishedEvents(ctx context.Context, publisher RawPublisher) (int, error) {
	replayed := 0
	for {
		events, err := s.DbClient.TakeUnpublishedEvents(ctx, replayBatchSize)
		if err != nil {
			return replayed, err
		}
		if len(events) == 0 {
			return replayed, nil
		}
		for i, event := range events {
			if err := publisher.PublishRaw(ctx, event.EventBody); err != nil {
				for _, pending := range events[i:] {
					if saveErr := s.DbClient.SaveUnpublishedEvent(ctx, pending.Sequence, pending.EventBody); saveErr != nil {
						log.Ctx(ctx).Error().Err(saveErr).Uint64("sequence", pending.Sequence).
							Msg("failed to store back unpublished event")
					}
				}
				return replayed, err
			}
			replayed++
		}
	}
}
