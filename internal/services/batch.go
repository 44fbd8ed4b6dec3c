package services

import (
	"context"

	"github.com/babylonchain/restaking-ledger-service/internal/ledger"
	"github.com/babylonchain/restaking-ledger-service/internal/queue/client"
	"github.com/babylonchain/restaking-ledger-service/internal/types"
)

type UnstakeBatchResult struct {
	Sequence uint64       `json:"sequence"`
	BatchId  uint64       `json:"unstake_batch_id"`
	Amount   types.Amount `json:"amount"`
}

// SubmitUnstakeBatch sends the pool's open batch to the external pool. Anyone
// may call it once the previous batch has been withdrawn.
func (s *Services) SubmitUnstakeBatch(ctx context.Context, inv Invocation, poolId string) (*UnstakeBatchResult, *types.Error) {
	ctx, w := s.startWorkflow(ctx, string(client.SubmitUnstakeBatchEventKind), poolId, inv.Caller)

	w.enter(StageSelectAndLock)
	lease, apiErr := s.acquirePoolLease(ctx, w.name, poolId, false)
	if apiErr != nil {
		return nil, w.abort(ctx, apiErr)
	}
	defer lease.Release(ctx)

	pool, err := s.DbClient.FindStakingPool(ctx, poolId)
	if err != nil {
		return nil, w.abort(ctx, err)
	}
	if err := pool.CanSubmitUnstakeBatch(); err != nil {
		return nil, w.abort(ctx, err)
	}
	batched := pool.BatchedUnstakeAmount

	var reported types.Amount
	if !w.await(ctx, StagePing, func(ctx context.Context) *types.Error {
		return s.pingPool(ctx, poolId, &reported)
	}) {
		return nil, nil
	}
	if !w.await(ctx, StageUnstake, func(ctx context.Context) *types.Error {
		return s.Clients.StakingPool.Unstake(ctx, poolId, batched)
	}) {
		return nil, nil
	}
	w.commitPoint()
	afterUnstake := s.stakedBalanceOrExpected(ctx, w, poolId, reported.SaturatingSub(batched))

	var (
		result *UnstakeBatchResult
		batch  *ledger.SubmittedUnstakeBatch
	)
	epoch := s.currentEpoch()
	err = s.DbClient.RunInTransaction(ctx, func(txCtx context.Context) error {
		var err error
		pool, err = s.DbClient.FindStakingPool(txCtx, poolId)
		if err != nil {
			return err
		}
		if batch, err = pool.SubmitUnstakeBatch(epoch, s.unlockDelay(), afterUnstake); err != nil {
			return err
		}
		pool.Unlock()
		if err := s.DbClient.SaveStakingPool(txCtx, pool); err != nil {
			return err
		}
		sequence, err := s.nextSequence(txCtx)
		if err != nil {
			return err
		}
		result = &UnstakeBatchResult{Sequence: sequence, BatchId: batch.BatchId, Amount: batch.TotalAmount}
		return nil
	})
	if err != nil {
		return nil, w.abort(ctx, err)
	}
	lease.committed()
	w.settle()

	s.publish(ctx, client.SubmitUnstakeBatchEventKind, result.Sequence, &client.UnstakeBatchEventData{
		Pool:    pool,
		BatchId: result.BatchId,
		Amount:  result.Amount,
	})
	return result, nil
}

// WithdrawUnstakeBatch pulls an unlocked batch out of the external pool so
// the pending withdrawals linked to it can be paid.
func (s *Services) WithdrawUnstakeBatch(
	ctx context.Context, inv Invocation, poolId string, batchId uint64,
) (*UnstakeBatchResult, *types.Error) {
	ctx, w := s.startWorkflow(ctx, string(client.WithdrawUnstakeBatchEventKind), poolId, inv.Caller)

	w.enter(StageSelectAndLock)
	lease, apiErr := s.acquirePoolLease(ctx, w.name, poolId, false)
	if apiErr != nil {
		return nil, w.abort(ctx, apiErr)
	}
	defer lease.Release(ctx)

	pool, err := s.DbClient.FindStakingPool(ctx, poolId)
	if err != nil {
		return nil, w.abort(ctx, err)
	}
	if err := pool.IsUnstakeBatchWithdrawable(batchId, s.currentEpoch(), s.unlockDelay()); err != nil {
		return nil, w.abort(ctx, err)
	}
	batch, err := pool.GetUnstakeBatch(batchId)
	if err != nil {
		return nil, w.abort(ctx, err)
	}
	amount := batch.TotalAmount

	if !w.await(ctx, StageWithdraw, func(ctx context.Context) *types.Error {
		return s.Clients.StakingPool.Withdraw(ctx, poolId, amount)
	}) {
		return nil, nil
	}
	w.commitPoint()

	var result *UnstakeBatchResult
	err = s.DbClient.RunInTransaction(ctx, func(txCtx context.Context) error {
		var err error
		pool, err = s.DbClient.FindStakingPool(txCtx, poolId)
		if err != nil {
			return err
		}
		if err := pool.MarkUnstakeBatchWithdrawn(batchId); err != nil {
			return err
		}
		pool.Unlock()
		if err := s.DbClient.SaveStakingPool(txCtx, pool); err != nil {
			return err
		}
		sequence, err := s.nextSequence(txCtx)
		if err != nil {
			return err
		}
		result = &UnstakeBatchResult{Sequence: sequence, BatchId: batchId, Amount: amount}
		return nil
	})
	if err != nil {
		return nil, w.abort(ctx, err)
	}
	lease.committed()
	w.settle()

	s.publish(ctx, client.WithdrawUnstakeBatchEventKind, result.Sequence, &client.UnstakeBatchEventData{
		Pool:    pool,
		BatchId: batchId,
		Amount:  amount,
	})
	return result, nil
}
