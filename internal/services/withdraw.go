package services

import (
	"context"
	"net/http"

	"github.com/babylonchain/restaking-ledger-service/internal/ledger"
	"github.com/babylonchain/restaking-ledger-service/internal/queue/client"
	"github.com/babylonchain/restaking-ledger-service/internal/types"
)

type WithdrawResult struct {
	Sequence    uint64       `json:"sequence"`
	Beneficiary string       `json:"beneficiary"`
	Amount      types.Amount `json:"amount"`
}

func (s *Services) markPoolWithdrawn(ctx context.Context, certificate uint64) error {
	return s.DbClient.RunInTransaction(ctx, func(txCtx context.Context) error {
		withdrawal, err := s.DbClient.FindPendingWithdrawal(txCtx, certificate)
		if err != nil {
			return err
		}
		withdrawal.PoolWithdrawn = true
		return s.DbClient.SavePendingWithdrawal(txCtx, withdrawal)
	})
}

// Withdraw pays out an unlocked pending withdrawal held by owner. Claims not
// tied to a batch are first withdrawn from the pool.
func (s *Services) Withdraw(
	ctx context.Context, inv Invocation, owner string, certificate uint64,
) (*WithdrawResult, *types.Error) {
	withdrawal, err := s.DbClient.FindPendingWithdrawal(ctx, certificate)
	if err != nil {
		return nil, toApiError(err)
	}
	if withdrawal.Owner != owner {
		return nil, types.NewErrorWithMsg(http.StatusNotFound, types.NotFound, "pending withdrawal not found for owner")
	}
	if !withdrawal.CanBeWithdrawnBy(inv.Caller) {
		return nil, toApiError(ledger.ErrUnauthorized)
	}

	ctx, w := s.startWorkflow(ctx, string(client.WithdrawEventKind), withdrawal.PoolId, owner)
	w.enter(StageSelectAndLock)
	lease, apiErr := s.acquirePoolLease(ctx, w.name, withdrawal.PoolId, false)
	if apiErr != nil {
		return nil, w.abort(ctx, apiErr)
	}
	defer lease.Release(ctx)

	pool, err := s.DbClient.FindStakingPool(ctx, withdrawal.PoolId)
	if err != nil {
		return nil, w.abort(ctx, err)
	}
	// re-read under the lease, a slash may have shrunk or removed the claim
	withdrawal, err = s.DbClient.FindPendingWithdrawal(ctx, certificate)
	if err != nil {
		return nil, w.abort(ctx, err)
	}
	if !withdrawal.IsWithdrawable(pool, s.currentEpoch(), s.now()) {
		return nil, w.abort(ctx, ledger.ErrNotWithdrawable)
	}

	if withdrawal.NeedsPoolWithdraw() {
		if !w.await(ctx, StageWithdraw, func(ctx context.Context) *types.Error {
			return s.Clients.StakingPool.Withdraw(ctx, withdrawal.PoolId, withdrawal.Amount)
		}) {
			return nil, nil
		}
		// a retry after a failed transfer goes straight to the bank
		if err := s.markPoolWithdrawn(ctx, certificate); err != nil {
			w.logger.Error().Err(err).Uint64("certificate", certificate).
				Msg("claim was withdrawn from the pool but could not be marked")
			return nil, w.abort(ctx, err)
		}
		withdrawal.PoolWithdrawn = true
	}
	if !w.await(ctx, StageTransfer, func(ctx context.Context) *types.Error {
		return s.Clients.Bank.Transfer(ctx, withdrawal.Beneficiary, withdrawal.Amount)
	}) {
		return nil, nil
	}
	w.commitPoint()

	var result *WithdrawResult
	err = s.DbClient.RunInTransaction(ctx, func(txCtx context.Context) error {
		var err error
		pool, err = s.DbClient.FindStakingPool(txCtx, withdrawal.PoolId)
		if err != nil {
			return err
		}
		if withdrawal.UnstakeBatchId != nil {
			if err := pool.WithdrawFromUnstakeBatch(withdrawal.Amount, *withdrawal.UnstakeBatchId); err != nil {
				return err
			}
		}
		if err := s.DbClient.DeletePendingWithdrawal(txCtx, certificate); err != nil {
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
		result = &WithdrawResult{Sequence: sequence, Beneficiary: withdrawal.Beneficiary, Amount: withdrawal.Amount}
		return nil
	})
	if err != nil {
		w.logger.Error().Err(err).Uint64("certificate", certificate).
			Msg("withdrawal was paid but the ledger commit failed")
		return nil, w.abort(ctx, err)
	}
	lease.committed()
	w.settle()

	s.publish(ctx, client.WithdrawEventKind, result.Sequence, &client.WithdrawEventData{
		Caller:     inv.Caller,
		Withdrawal: withdrawal,
		Pool:       pool,
	})
	return result, nil
}
