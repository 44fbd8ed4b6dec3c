package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/babylonchain/restaking-ledger-service/internal/db"
	"github.com/babylonchain/restaking-ledger-service/internal/ledger"
	"github.com/babylonchain/restaking-ledger-service/internal/queue/client"
	"github.com/babylonchain/restaking-ledger-service/internal/types"
	"github.com/babylonchain/restaking-ledger-service/internal/utils"
)

// StakingChangeResult is returned by every settled stake or decrease.
type StakingChangeResult struct {
	Sequence              uint64       `json:"sequence"`
	NewTotalStakedBalance types.Amount `json:"new_total_staked_balance"`
	WithdrawalCertificate *uint64      `json:"withdrawal_certificate,omitempty"`
}

type PingResult struct {
	Sequence uint64              `json:"sequence"`
	Pool     *ledger.StakingPool `json:"pool"`
}

var errNotWhitelisted = errors.New("staking pool is not whitelisted")

// Stake delegates the attached deposit into poolId for a staker without shares.
// A nil result with no error means the workflow was rolled back and the
// deposit refunded.
func (s *Services) Stake(ctx context.Context, inv Invocation, poolId string) (*StakingChangeResult, *types.Error) {
	ctx, w := s.startWorkflow(ctx, "stake", poolId, inv.Caller)

	if err := utils.ValidateAccountId(poolId); err != nil {
		return nil, validationError(err)
	}
	if inv.Deposit.IsZero() {
		return nil, invalidDeposit("stake requires a positive deposit")
	}
	if err := s.requireRegistered(ctx, inv.Caller); err != nil {
		return nil, err
	}
	staker, err := s.findOrNewStaker(ctx, inv.Caller)
	if err != nil {
		return nil, toApiError(err)
	}
	if err := staker.CanSelectPool(poolId, s.now()); err != nil {
		return nil, w.abort(ctx, err)
	}
	if err := s.requirePreviousPoolIdle(ctx, staker, poolId); err != nil {
		return nil, w.abort(ctx, err)
	}

	w.onRollback("refund_deposit", func(ctx context.Context) error {
		return s.refund(ctx, inv.Caller, inv.Deposit)
	})

	whitelisted := false
	if !w.await(ctx, StageCheckWhitelist, func(ctx context.Context) *types.Error {
		ok, err := s.Clients.Whitelist.IsWhitelisted(ctx, poolId)
		if err != nil {
			return err
		}
		whitelisted = ok
		return nil
	}) {
		return nil, nil
	}
	if !whitelisted {
		w.rollback(ctx, errNotWhitelisted.Error())
		return nil, nil
	}

	w.enter(StageSelectAndLock)
	lease, apiErr := s.acquirePoolLease(ctx, w.name, poolId, true)
	if apiErr != nil {
		return nil, w.abort(ctx, apiErr)
	}
	defer lease.Release(ctx)

	var previousPool string
	err = s.DbClient.RunInTransaction(ctx, func(txCtx context.Context) error {
		staker, err := s.findOrNewStaker(txCtx, inv.Caller)
		if err != nil {
			return err
		}
		if err := staker.CanSelectPool(poolId, s.now()); err != nil {
			return err
		}
		if err := s.requirePreviousPoolIdle(txCtx, staker, poolId); err != nil {
			return err
		}
		previousPool = staker.SelectStakingPool
		staker.SelectStakingPool = poolId
		return s.DbClient.SaveStaker(txCtx, staker)
	})
	if err != nil {
		return nil, w.abort(ctx, err)
	}
	w.onRollback("restore_pool_selection", func(ctx context.Context) error {
		return s.DbClient.RunInTransaction(ctx, func(txCtx context.Context) error {
			staker, err := s.DbClient.FindStaker(txCtx, inv.Caller)
			if err != nil {
				return err
			}
			if staker.SelectStakingPool != poolId || !staker.Shares.IsZero() {
				return nil
			}
			staker.SelectStakingPool = previousPool
			return s.DbClient.SaveStaker(txCtx, staker)
		})
	})

	return s.depositAndSettle(ctx, w, lease, inv, poolId, client.StakeEventKind)
}

// requirePreviousPoolIdle refuses to move a staker off a pool that is locked.
// A workflow suspended there may still hand the staker's shares back.
func (s *Services) requirePreviousPoolIdle(ctx context.Context, staker *ledger.Staker, poolId string) error {
	previous := staker.SelectStakingPool
	if previous == "" || previous == poolId {
		return nil
	}
	pool, err := s.DbClient.FindStakingPool(ctx, previous)
	if err != nil {
		if db.IsNotFoundError(err) {
			return nil
		}
		return err
	}
	if pool.Locked {
		return fmt.Errorf("%w: previously selected pool %s", ledger.ErrAlreadyLocked, previous)
	}
	return nil
}

// IncreaseStake adds the attached deposit to the staker's selected pool.
func (s *Services) IncreaseStake(ctx context.Context, inv Invocation) (*StakingChangeResult, *types.Error) {
	if inv.Deposit.IsZero() {
		return nil, invalidDeposit("increase stake requires a positive deposit")
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
	poolId := staker.SelectStakingPool

	ctx, w := s.startWorkflow(ctx, "increase_stake", poolId, inv.Caller)
	w.enter(StageSelectAndLock)
	lease, apiErr := s.acquirePoolLease(ctx, w.name, poolId, false)
	if apiErr != nil {
		return nil, w.abort(ctx, apiErr)
	}
	defer lease.Release(ctx)

	w.onRollback("refund_deposit", func(ctx context.Context) error {
		return s.refund(ctx, inv.Caller, inv.Deposit)
	})
	return s.depositAndSettle(ctx, w, lease, inv, poolId, client.IncreaseStakeEventKind)
}

// depositAndSettle is the ping, deposit and settle tail shared by stake and
// increase_stake. The lease on poolId is held by the caller.
func (s *Services) depositAndSettle(
	ctx context.Context, w *workflow, lease *poolLease, inv Invocation, poolId string, kind client.EventKind,
) (*StakingChangeResult, *types.Error) {
	var reported types.Amount
	if !w.await(ctx, StagePing, func(ctx context.Context) *types.Error {
		return s.pingPool(ctx, poolId, &reported)
	}) {
		return nil, nil
	}
	pool, err := s.refreshPool(ctx, poolId, reported)
	if err != nil {
		return nil, w.abort(ctx, err)
	}
	// fail before moving funds when the deposit is below the share granularity
	if _, err := pool.ShareFromBalance(inv.Deposit, true); err != nil {
		return nil, w.abort(ctx, err)
	}

	if !w.await(ctx, StageDeposit, func(ctx context.Context) *types.Error {
		return s.Clients.StakingPool.DepositAndStake(ctx, poolId, inv.Deposit)
	}) {
		return nil, nil
	}
	w.commitPoint()

	expected, err := reported.Add(inv.Deposit)
	if err != nil {
		return nil, w.abort(ctx, err)
	}
	afterDeposit := s.stakedBalanceOrExpected(ctx, w, poolId, expected)

	var (
		result *StakingChangeResult
		shares types.Amount
		staker *ledger.Staker
	)
	err = s.DbClient.RunInTransaction(ctx, func(txCtx context.Context) error {
		pool, err = s.DbClient.FindStakingPool(txCtx, poolId)
		if err != nil {
			return err
		}
		staker, err = s.DbClient.FindStaker(txCtx, inv.Caller)
		if err != nil {
			return err
		}
		shares, err = pool.ShareFromBalance(inv.Deposit, true)
		if err != nil {
			return err
		}
		if err := staker.IncreaseShares(shares); err != nil {
			return err
		}
		if err := pool.IncreaseStake(shares, afterDeposit); err != nil {
			return err
		}
		pool.Unlock()
		if err := s.DbClient.SaveStakingPool(txCtx, pool); err != nil {
			return err
		}
		if err := s.DbClient.SaveStaker(txCtx, staker); err != nil {
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
		result = &StakingChangeResult{Sequence: sequence, NewTotalStakedBalance: balance}
		return nil
	})
	if err != nil {
		w.logger.Error().Err(err).Str("amount", inv.Deposit.String()).
			Msg("deposit reached the staking pool but the ledger commit failed")
		return nil, w.abort(ctx, err)
	}
	lease.committed()
	w.settle()

	amount := inv.Deposit
	s.publish(ctx, kind, result.Sequence, &client.StakerEventData{
		Staker: staker,
		Pool:   pool,
		Amount: &amount,
		Shares: &shares,
	})
	return result, nil
}

// Ping refreshes the ledger's view of a pool balance. Without poolId the
// caller's selected pool is pinged.
func (s *Services) Ping(ctx context.Context, inv Invocation, poolId string) (*PingResult, *types.Error) {
	if poolId == "" {
		staker, err := s.DbClient.FindStaker(ctx, inv.Caller)
		if err != nil {
			if db.IsNotFoundError(err) {
				return nil, types.NewErrorWithMsg(http.StatusBadRequest, types.BadRequest, "no pool to ping")
			}
			return nil, toApiError(err)
		}
		if !staker.HasSelectedPool() {
			return nil, toApiError(ledger.ErrNoPoolSelected)
		}
		poolId = staker.SelectStakingPool
	}

	ctx, w := s.startWorkflow(ctx, "ping", poolId, inv.Caller)
	w.enter(StageSelectAndLock)
	lease, apiErr := s.acquirePoolLease(ctx, w.name, poolId, false)
	if apiErr != nil {
		return nil, w.abort(ctx, apiErr)
	}
	defer lease.Release(ctx)

	var reported types.Amount
	if !w.await(ctx, StagePing, func(ctx context.Context) *types.Error {
		return s.pingPool(ctx, poolId, &reported)
	}) {
		return nil, nil
	}

	var result *PingResult
	err := s.DbClient.RunInTransaction(ctx, func(txCtx context.Context) error {
		pool, err := s.DbClient.FindStakingPool(txCtx, poolId)
		if err != nil {
			return err
		}
		pool.RefreshStakedBalance(reported)
		pool.Unlock()
		if err := s.DbClient.SaveStakingPool(txCtx, pool); err != nil {
			return err
		}
		sequence, err := s.nextSequence(txCtx)
		if err != nil {
			return err
		}
		result = &PingResult{Sequence: sequence, Pool: pool}
		return nil
	})
	if err != nil {
		return nil, w.abort(ctx, err)
	}
	lease.committed()
	w.settle()

	s.publish(ctx, client.PingEventKind, result.Sequence, &client.PoolEventData{Pool: result.Pool})
	return result, nil
}

func (s *Services) pingPool(ctx context.Context, poolId string, reported *types.Amount) *types.Error {
	if err := s.Clients.StakingPool.Ping(ctx, poolId); err != nil {
		return err
	}
	balance, err := s.Clients.StakingPool.GetAccountStakedBalance(ctx, poolId, s.cfg.Ledger.ContractAccountId)
	if err != nil {
		return err
	}
	*reported = balance
	return nil
}

// refreshPool stores a freshly reported balance on a pool held by the caller's lease.
func (s *Services) refreshPool(ctx context.Context, poolId string, reported types.Amount) (*ledger.StakingPool, error) {
	var pool *ledger.StakingPool
	err := s.DbClient.RunInTransaction(ctx, func(txCtx context.Context) error {
		var err error
		pool, err = s.DbClient.FindStakingPool(txCtx, poolId)
		if err != nil {
			return err
		}
		pool.RefreshStakedBalance(reported)
		return s.DbClient.SaveStakingPool(txCtx, pool)
	})
	return pool, err
}

// stakedBalanceOrExpected reads the pool balance after a call that already
// moved funds. The call cannot be undone, so a failed read falls back to the
// balance the ledger expects.
func (s *Services) stakedBalanceOrExpected(
	ctx context.Context, w *workflow, poolId string, expected types.Amount,
) types.Amount {
	balance, err := s.Clients.StakingPool.GetAccountStakedBalance(ctx, poolId, s.cfg.Ledger.ContractAccountId)
	if err != nil {
		w.logger.Warn().Err(err).Str("expected", expected.String()).
			Msg("failed to read staked balance, settling against the expected balance")
		return expected
	}
	return balance
}
