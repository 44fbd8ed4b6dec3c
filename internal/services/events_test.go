package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/babylonchain/restaking-ledger-service/internal/queue/client"
)

type failingPublisher struct{}

func (failingPublisher) PublishEvent(_ context.Context, event *client.LedgerEvent) (string, error) {
	body, err := json.Marshal(event)
	if err != nil {
		return "", err
	}
	return string(body), errors.New("broker unavailable")
}

type rawRecorder struct {
	bodies []string
	failAt int
}

func (r *rawRecorder) PublishRaw(_ context.Context, body string) error {
	if r.failAt > 0 && len(r.bodies)+1 == r.failAt {
		r.failAt = 0
		return errors.New("broker unavailable")
	}
	r.bodies = append(r.bodies, body)
	return nil
}

func TestReplayUnpublishedEvents(t *testing.T) {
	f := newFixture(t)
	f.s.Events = failingPublisher{}
	f.seedChain(time.Hour)

	for _, stakerId := range []string{"mallory", "trudy", "eve"} {
		_, apiErr := f.s.Blackout(f.ctx, Invocation{Caller: testPos}, testChain, stakerId)
		require.Nil(t, apiErr)
	}

	recorder := &rawRecorder{failAt: 2}
	replayed, err := f.s.ReplayUnpublishedEvents(f.ctx, recorder)
	require.Error(t, err)
	assert.Equal(t, 1, replayed)

	replayed, err = f.s.ReplayUnpublishedEvents(f.ctx, recorder)
	require.NoError(t, err)
	assert.Equal(t, 2, replayed)

	require.Len(t, recorder.bodies, 3)
	for i, body := range recorder.bodies {
		var event client.LedgerEvent
		require.NoError(t, json.Unmarshal([]byte(body), &event))
		assert.Equal(t, uint64(i+1), event.Sequence)
	}
}
