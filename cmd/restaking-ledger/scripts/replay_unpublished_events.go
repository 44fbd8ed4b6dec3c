package scripts

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/babylonchain/restaking-ledger-service/internal/queue"
	"github.com/babylonchain/restaking-ledger-service/internal/services"
)

// ReplayUnpublishedEvents re-publishes the events the ledger failed to
// deliver, oldest sequence first.
func ReplayUnpublishedEvents(ctx context.Context, svc *services.Services, queues *queue.Queues) error {
	if err := queues.IsConnectionHealthy(); err != nil {
		return fmt.Errorf("event queue is not reachable: %w", err)
	}

	replayed, err := svc.ReplayUnpublishedEvents(ctx, queues)
	if err != nil {
		return fmt.Errorf("replay stopped after %d events: %w", replayed, err)
	}

	log.Info().Int("replayed", replayed).Msg("Replay of unpublished events completed.")
	return nil
}
