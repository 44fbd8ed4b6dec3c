package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/babylonchain/restaking-ledger-service/internal/db/model"
	"github.com/babylonchain/restaking-ledger-service/internal/ledger"
	"github.com/babylonchain/restaking-ledger-service/internal/queue/client"
	"github.com/babylonchain/restaking-ledger-service/internal/types"
	"github.com/babylonchain/restaking-ledger-service/internal/utils"
)

type decreaseRequest struct {
	stakerId    string
	poolId      string
	beneficiary string
	allowOther  bool
	// nil burns every share of the staker
	amount *types.Amount
	kind   client.EventKind
	// leave every bonded chain once the pool lease is held
	unbondAll bool
	unbonded  []string
}

// DecreaseStake turns amount of the caller's stake into a pending withdrawal
// payable to beneficiary, the caller when empty.
func (s *Services) DecreaseStake(
	ctx context.Context, inv Invocation, amount types.Amount, beneficiary string,
) (*StakingChangeResult, *types.Error) {
	if err := s.requireActionDeposit(inv); err != nil {
		return nil, err
	}
	if amount.IsZero() {
		return nil, types.NewErrorWithMsg(http.StatusBadRequest, types.BadRequest, "decrease amount must be positive")
	}
	staker, apiErr := s.findStakerWithPool(ctx, inv, &beneficiary)
	if apiErr != nil {
		return nil, apiErr
	}
	return s.decreaseStake(ctx, &decreaseRequest{
		stakerId:    staker.StakerId,
		poolId:      staker.SelectStakingPool,
		beneficiary: beneficiary,
		amount:      &amount,
		kind:        client.DecreaseStakeEventKind,
	})
}

// Unstake leaves every bonded consumer chain, then moves the whole stake
// into a pending withdrawal.
func (s *Services) Unstake(
	ctx context.Context, inv Invocation, beneficiary string, withdrawByAnyone bool,
) (*StakingChangeResult, *types.Error) {
	if err := s.requireActionDeposit(inv); err != nil {
		return nil, err
	}
	staker, apiErr := s.findStakerWithPool(ctx, inv, &beneficiary)
	if apiErr != nil {
		return nil, apiErr
	}
	if staker.Shares.IsZero() {
		return nil, toApiError(ledger.ErrInsufficientShares)
	}

	return s.decreaseStake(ctx, &decreaseRequest{
		stakerId:    staker.StakerId,
		poolId:      staker.SelectStakingPool,
		beneficiary: beneficiary,
		allowOther:  withdrawByAnyone,
		kind:        client.UnstakeEventKind,
		unbondAll:   true,
	})
}

func (s *Services) findStakerWithPool(ctx context.Context, inv Invocation, beneficiary *string) (*ledger.Staker, *types.Error) {
	if *beneficiary == "" {
		*beneficiary = inv.Caller
	}
	if err := utils.ValidateAccountId(*beneficiary); err != nil {
		return nil, validationError(err)
	}
	if err := s.requireRegistered(ctx, inv.Caller); err != nil {
		return nil, err
	}
	staker, err := s.DbClient.FindStaker(ctx, inv.Caller)
	if err != nil {
		return nil, toApiError(err)
	}
	if !staker.HasSelectedPool() {
		return nil, toApiError(ledger.ErrNoPoolSelected)
	}
	return staker, nil
}

// unbondAll is the forced cascade of a full unstake, run under the pool
// lease. It commits on its own: the staker has left the chains even when the
// unstake call fails later.
func (s *Services) unbondAll(ctx context.Context, stakerId string) ([]string, error) {
	var (
		unbonded  []string
		staker    *ledger.Staker
		sequences []uint64
	)
	now := s.now()
	err := s.DbClient.RunInTransaction(ctx, func(txCtx context.Context) error {
		var err error
		staker, err = s.DbClient.FindStaker(txCtx, stakerId)
		if err != nil {
			return err
		}
		unbonded = staker.UnbondAll(now)
		sequences = sequences[:0]
		for _, chainId := range unbonded {
			chain, err := s.DbClient.FindConsumerChain(txCtx, chainId)
			if err != nil {
				return err
			}
			chain.Unbond(stakerId)
			if err := s.DbClient.SaveConsumerChain(txCtx, chain); err != nil {
				return err
			}
			sequence, err := s.nextSequence(txCtx)
			if err != nil {
				return err
			}
			sequences = append(sequences, sequence)
		}
		if len(unbonded) == 0 {
			return nil
		}
		return s.DbClient.SaveStaker(txCtx, staker)
	})
	if err != nil {
		return nil, err
	}
	for i, chainId := range unbonded {
		s.publish(ctx, client.UnbondEventKind, sequences[i], &client.BondingEventData{
			Staker:          staker,
			ConsumerChainId: chainId,
		})
	}
	return unbonded, nil
}

// decreaseStake debits the staker speculatively under the pool lease, then
// submits the open unstake batch when the pool allows it. A failed unstake
// call puts the shares, the pool totals and the batch back.
func (s *Services) decreaseStake(ctx context.Context, req *decreaseRequest) (*StakingChangeResult, *types.Error) {
	ctx, w := s.startWorkflow(ctx, string(req.kind), req.poolId, req.stakerId)

	w.enter(StageSelectAndLock)
	lease, apiErr := s.acquirePoolLease(ctx, w.name, req.poolId, false)
	if apiErr != nil {
		return nil, w.abort(ctx, apiErr)
	}
	defer lease.Release(ctx)

	if req.unbondAll {
		unbonded, err := s.unbondAll(ctx, req.stakerId)
		if err != nil {
			return nil, w.abort(ctx, err)
		}
		req.unbonded = unbonded
	}

	var reported types.Amount
	if !w.await(ctx, StagePing, func(ctx context.Context) *types.Error {
		return s.pingPool(ctx, req.poolId, &reported)
	}) {
		return nil, nil
	}

	var (
		shares  types.Amount
		amount  types.Amount
		batchId uint64
		pool    *ledger.StakingPool
	)
	err := s.DbClient.RunInTransaction(ctx, func(txCtx context.Context) error {
		var err error
		pool, err = s.DbClient.FindStakingPool(txCtx, req.poolId)
		if err != nil {
			return err
		}
		pool.RefreshStakedBalance(reported)
		staker, err := s.DbClient.FindStaker(txCtx, req.stakerId)
		if err != nil {
			return err
		}
		if req.amount == nil {
			shares = staker.Shares
			if amount, err = pool.BalanceFromShares(shares, true); err != nil {
				return err
			}
			if amount.IsZero() {
				return ledger.ErrZeroSharesComputed
			}
		} else {
			amount = *req.amount
			if shares, err = pool.ShareFromBalance(amount, false); err != nil {
				return err
			}
		}
		if err := staker.DecreaseShares(shares); err != nil {
			return err
		}
		if err := pool.DecreaseStake(shares, amount); err != nil {
			return err
		}
		if batchId, err = pool.BatchUnstake(amount); err != nil {
			return err
		}
		if err := s.DbClient.SaveStakingPool(txCtx, pool); err != nil {
			return err
		}
		return s.DbClient.SaveStaker(txCtx, staker)
	})
	if err != nil {
		return nil, w.abort(ctx, err)
	}
	w.onRollback("restore_shares", func(ctx context.Context) error {
		return s.DbClient.RunInTransaction(ctx, func(txCtx context.Context) error {
			pool, err := s.DbClient.FindStakingPool(txCtx, req.poolId)
			if err != nil {
				return err
			}
			staker, err := s.DbClient.FindStaker(txCtx, req.stakerId)
			if err != nil {
				return err
			}
			if staker.SelectStakingPool != req.poolId {
				return fmt.Errorf("%w: staker %s left pool %s before its shares were restored",
					ledger.ErrInvariantViolation, req.stakerId, req.poolId)
			}
			if err := pool.CancelBatchedUnstake(amount); err != nil {
				return err
			}
			if err := pool.RestoreStake(shares, amount); err != nil {
				return err
			}
			if err := staker.IncreaseShares(shares); err != nil {
				return err
			}
			if err := s.DbClient.SaveStakingPool(txCtx, pool); err != nil {
				return err
			}
			return s.DbClient.SaveStaker(txCtx, staker)
		})
	})

	submitted := false
	var afterUnstake types.Amount
	if pool.CanSubmitUnstakeBatch() == nil {
		batched := pool.BatchedUnstakeAmount
		if !w.await(ctx, StageUnstake, func(ctx context.Context) *types.Error {
			return s.Clients.StakingPool.Unstake(ctx, req.poolId, batched)
		}) {
			return nil, nil
		}
		w.commitPoint()
		submitted = true
		afterUnstake = s.stakedBalanceOrExpected(ctx, w, req.poolId, reported.SaturatingSub(batched))
	}

	var (
		result     *StakingChangeResult
		staker     *ledger.Staker
		withdrawal *ledger.PendingWithdrawal
	)
	now := s.now()
	epoch := s.currentEpoch()
	err = s.DbClient.RunInTransaction(ctx, func(txCtx context.Context) error {
		var err error
		pool, err = s.DbClient.FindStakingPool(txCtx, req.poolId)
		if err != nil {
			return err
		}
		staker, err = s.DbClient.FindStaker(txCtx, req.stakerId)
		if err != nil {
			return err
		}
		if submitted {
			if _, err := pool.SubmitUnstakeBatch(epoch, s.unlockDelay(), afterUnstake); err != nil {
				return err
			}
		}
		certificate, err := s.DbClient.NextCounterValue(txCtx, model.WithdrawalCertificateCounter)
		if err != nil {
			return err
		}
		linkedBatch := batchId
		withdrawal = &ledger.PendingWithdrawal{
			WithdrawalCertificate: certificate,
			Owner:                 req.stakerId,
			PoolId:                req.poolId,
			Amount:                amount,
			UnlockEpoch:           epoch + s.unlockDelay(),
			UnlockTime:            staker.GetUnlockTime(now),
			Beneficiary:           req.beneficiary,
			AllowOtherWithdraw:    req.allowOther,
			UnstakeBatchId:        &linkedBatch,
		}
		if err := s.DbClient.InsertPendingWithdrawal(txCtx, withdrawal); err != nil {
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
		balance, err := pool.BalanceFromShares(staker.Shares, true)
		if err != nil {
			return err
		}
		result = &StakingChangeResult{
			Sequence:              sequence,
			NewTotalStakedBalance: balance,
			WithdrawalCertificate: &certificate,
		}
		return nil
	})
	if err != nil {
		return nil, w.abort(ctx, err)
	}
	lease.committed()
	w.settle()

	s.publish(ctx, req.kind, result.Sequence, &client.StakerEventData{
		Staker:                 staker,
		Pool:                   pool,
		Amount:                 &amount,
		Shares:                 &shares,
		Withdrawal:             withdrawal,
		UnbondedConsumerChains: req.unbonded,
	})
	return result, nil
}
