package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/babylonchain/restaking-ledger-service/internal/db"
	"github.com/babylonchain/restaking-ledger-service/internal/ledger"
	"github.com/babylonchain/restaking-ledger-service/internal/observability/metrics"
	"github.com/babylonchain/restaking-ledger-service/internal/types"
)

// poolLease is the hold a workflow has on a staking pool's lock flag.
// Release is deferred right after acquisition so every exit path unlocks.
type poolLease struct {
	s        *Services
	poolId   string
	released bool
	// the pool record was created by this lease
	created  bool
}

// acquirePoolLease sets the pool's lock flag. With create, a pool seen for
// the first time is created locked.
func (s *Services) acquirePoolLease(
	ctx context.Context, workflow, poolId string, create bool,
) (*poolLease, *types.Error) {
	created := false
	err := s.DbClient.RunInTransaction(ctx, func(txCtx context.Context) error {
		created = false
		pool, err := s.DbClient.FindStakingPool(txCtx, poolId)
		if err != nil {
			if !create || !db.IsNotFoundError(err) {
				return err
			}
			pool = ledger.NewStakingPool(poolId)
			created = true
		}
		if err := pool.Lock(); err != nil {
			return err
		}
		return s.DbClient.SaveStakingPool(txCtx, pool)
	})
	if err != nil {
		if errors.Is(err, ledger.ErrAlreadyLocked) {
			metrics.RecordPoolLockContention(workflow)
		}
		return nil, toApiError(err)
	}
	return &poolLease{s: s, poolId: poolId, created: created}, nil
}

// committed records that a settling commit cleared the lock flag itself.
func (l *poolLease) committed() {
	l.released = true
}

// Release clears the lock flag unless a commit already did. A pool the lease
// created is dropped again while nothing is recorded on it. It is idempotent.
func (l *poolLease) Release(ctx context.Context) {
	if l.released {
		return
	}
	l.released = true
	ctx = context.WithoutCancel(ctx)
	err := l.s.DbClient.RunInTransaction(ctx, func(txCtx context.Context) error {
		pool, err := l.s.DbClient.FindStakingPool(txCtx, l.poolId)
		if err != nil {
			return err
		}
		if l.created && pool.IsEmpty() {
			return l.s.DbClient.DeleteStakingPool(txCtx, l.poolId)
		}
		pool.Unlock()
		return l.s.DbClient.SaveStakingPool(txCtx, pool)
	})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("pool_id", l.poolId).Msg("failed to release staking pool lock")
	}
}
