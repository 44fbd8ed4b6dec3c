package services

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/babylonchain/restaking-ledger-service/internal/db/model"
	"github.com/babylonchain/restaking-ledger-service/internal/ledger"
	"github.com/babylonchain/restaking-ledger-service/internal/queue/client"
	"github.com/babylonchain/restaking-ledger-service/internal/types"
)

type SlashResult struct {
	Sequence uint64        `json:"sequence"`
	Slash    *ledger.Slash `json:"slash"`
	// Treasury claims minted by an approved slash
	Withdrawals []*ledger.PendingWithdrawal `json:"withdrawals,omitempty"`
}

// SlashRequest records a penalty against stakers bonded to the chain. No
// funds move until the chain's governance resolves it.
func (s *Services) SlashRequest(
	ctx context.Context, inv Invocation, chainId string, items []ledger.SlashItem, evidenceHash string,
) (*SlashResult, *types.Error) {
	guarantee := s.cfg.Ledger.GetSlashGuarantee()
	if !inv.Deposit.Eq(guarantee) {
		return nil, invalidDeposit("attached deposit must equal the slash guarantee " + guarantee.String())
	}

	var slash *ledger.Slash
	var sequence uint64
	err := s.DbClient.RunInTransaction(ctx, func(txCtx context.Context) error {
		chain, err := s.DbClient.FindConsumerChain(txCtx, chainId)
		if err != nil {
			return err
		}
		if err := chain.AssertPosAccount(inv.Caller); err != nil {
			return err
		}
		for _, item := range items {
			staker, err := s.DbClient.FindStaker(txCtx, item.StakerId)
			if err != nil {
				return err
			}
			if !staker.IsBonding(chainId) {
				return fmt.Errorf("%w: cannot slash %s", ledger.ErrNotBonded, item.StakerId)
			}
		}
		slashId, err := s.DbClient.NextCounterValue(txCtx, model.SlashIdCounter)
		if err != nil {
			return err
		}
		slash, err = ledger.NewSlash(slashId, chain, items, evidenceHash, inv.Caller, guarantee)
		if err != nil {
			return types.NewError(http.StatusBadRequest, types.ValidationError, err)
		}
		if err := s.DbClient.InsertSlash(txCtx, slash); err != nil {
			return err
		}
		sequence, err = s.nextSequence(txCtx)
		return err
	})
	if err != nil {
		return nil, toApiError(err)
	}

	s.publish(ctx, client.RequestSlashEventKind, sequence, &client.SlashEventData{Slash: slash})
	return &SlashResult{Sequence: sequence, Slash: slash}, nil
}

// ResolveSlash approves or rejects a pending slash. Either way the record is
// removed and the guarantee goes back to the submitter.
func (s *Services) ResolveSlash(
	ctx context.Context, inv Invocation, chainId string, slashId uint64, approve bool,
) (*SlashResult, *types.Error) {
	if err := s.requireActionDeposit(inv); err != nil {
		return nil, err
	}

	var (
		slash    *ledger.Slash
		sequence uint64
		minted   []*ledger.PendingWithdrawal
	)
	now := s.now()
	err := s.DbClient.RunInTransaction(ctx, func(txCtx context.Context) error {
		minted = nil
		var err error
		slash, err = s.DbClient.FindSlash(txCtx, slashId)
		if err != nil {
			return err
		}
		if slash.ConsumerChainId != chainId {
			return types.NewErrorWithMsg(http.StatusNotFound, types.NotFound,
				fmt.Sprintf("slash %d does not belong to %s", slashId, chainId))
		}
		chain, err := s.DbClient.FindConsumerChain(txCtx, chainId)
		if err != nil {
			return err
		}
		if err := chain.AssertGovernance(inv.Caller); err != nil {
			return err
		}
		if approve {
			if minted, err = s.applySlash(txCtx, slash, chain.Treasury, now); err != nil {
				return err
			}
		}
		if err := s.DbClient.DeleteSlash(txCtx, slashId); err != nil {
			return err
		}
		sequence, err = s.nextSequence(txCtx)
		return err
	})
	if err != nil {
		return nil, toApiError(err)
	}

	if err := s.refund(ctx, slash.Submitter, slash.Guarantee); err != nil {
		log.Ctx(ctx).Error().Err(err).Uint64("slash_id", slashId).Str("submitter", slash.Submitter).
			Msg("failed to refund the slash guarantee")
	}
	s.publish(ctx, client.SlashEventKind, sequence, &client.SlashEventData{
		Slash:       slash,
		Approved:    &approve,
		Withdrawals: minted,
	})
	return &SlashResult{Sequence: sequence, Slash: slash, Withdrawals: minted}, nil
}

// applySlash charges every item, oldest pending withdrawal first, then the
// staker's shares. It runs inside the resolving transaction.
func (s *Services) applySlash(
	txCtx context.Context, slash *ledger.Slash, treasury string, now time.Time,
) ([]*ledger.PendingWithdrawal, error) {
	pools := map[string]*ledger.StakingPool{}
	loadPool := func(poolId string) (*ledger.StakingPool, error) {
		if pool, ok := pools[poolId]; ok {
			return pool, nil
		}
		pool, err := s.DbClient.FindStakingPool(txCtx, poolId)
		if err != nil {
			return nil, err
		}
		if pool.Locked {
			return nil, fmt.Errorf("%w: %s", ledger.ErrAlreadyLocked, poolId)
		}
		pools[poolId] = pool
		return pool, nil
	}

	var minted []*ledger.PendingWithdrawal
	epoch := s.currentEpoch()
	for _, item := range slash.SlashItems {
		staker, err := s.DbClient.FindStaker(txCtx, item.StakerId)
		if err != nil {
			return nil, err
		}
		if staker.HasSelectedPool() {
			if _, err := loadPool(staker.SelectStakingPool); err != nil {
				return nil, err
			}
		}

		remaining := item.Amount
		withdrawals, err := s.DbClient.FindPendingWithdrawalsByOwner(txCtx, item.StakerId)
		if err != nil {
			return nil, err
		}
		for _, withdrawal := range withdrawals {
			if remaining.IsZero() {
				break
			}
			if _, err := loadPool(withdrawal.PoolId); err != nil {
				return nil, err
			}
			take := withdrawal.Amount.Min(remaining)
			if take.IsZero() {
				continue
			}
			certificate, err := s.DbClient.NextCounterValue(txCtx, model.WithdrawalCertificateCounter)
			if err != nil {
				return nil, err
			}
			redirected, err := withdrawal.Slash(certificate, take, treasury, now)
			if err != nil {
				return nil, err
			}
			if err := s.DbClient.InsertPendingWithdrawal(txCtx, redirected); err != nil {
				return nil, err
			}
			if withdrawal.Amount.IsZero() {
				err = s.DbClient.DeletePendingWithdrawal(txCtx, withdrawal.WithdrawalCertificate)
			} else {
				err = s.DbClient.SavePendingWithdrawal(txCtx, withdrawal)
			}
			if err != nil {
				return nil, err
			}
			minted = append(minted, redirected)
			remaining = remaining.SaturatingSub(take)
		}

		if remaining.IsZero() || staker.Shares.IsZero() || !staker.HasSelectedPool() {
			continue
		}
		pool := pools[staker.SelectStakingPool]
		withdrawal, err := s.slashShares(txCtx, pool, staker, remaining, treasury, epoch, now)
		if err != nil {
			return nil, err
		}
		if withdrawal == nil {
			continue
		}
		if err := s.DbClient.SaveStaker(txCtx, staker); err != nil {
			return nil, err
		}
		minted = append(minted, withdrawal)
	}

	for _, pool := range pools {
		if err := s.DbClient.SaveStakingPool(txCtx, pool); err != nil {
			return nil, err
		}
	}
	return minted, nil
}

// slashShares burns shares worth remaining, capped at the staker's balance,
// through the same batch path as a voluntary decrease. Shares are rounded up
// so the pool stays whole.
func (s *Services) slashShares(
	txCtx context.Context, pool *ledger.StakingPool, staker *ledger.Staker,
	remaining types.Amount, treasury string, epoch uint64, now time.Time,
) (*ledger.PendingWithdrawal, error) {
	balance, err := pool.BalanceFromShares(staker.Shares, true)
	if err != nil {
		return nil, err
	}
	charge := remaining.Min(balance)
	if charge.IsZero() {
		return nil, nil
	}
	shares, err := pool.ShareFromBalance(charge, false)
	if err != nil {
		return nil, err
	}
	shares = shares.Min(staker.Shares)
	if err := staker.DecreaseShares(shares); err != nil {
		return nil, err
	}
	if err := pool.DecreaseStake(shares, charge); err != nil {
		return nil, err
	}
	batchId, err := pool.BatchUnstake(charge)
	if err != nil {
		return nil, err
	}
	certificate, err := s.DbClient.NextCounterValue(txCtx, model.WithdrawalCertificateCounter)
	if err != nil {
		return nil, err
	}
	withdrawal := &ledger.PendingWithdrawal{
		WithdrawalCertificate: certificate,
		Owner:                 treasury,
		PoolId:                pool.PoolId,
		Amount:                charge,
		UnlockEpoch:           epoch + s.unlockDelay(),
		UnlockTime:            staker.GetUnlockTime(now),
		Beneficiary:           treasury,
		UnstakeBatchId:        &batchId,
	}
	if err := s.DbClient.InsertPendingWithdrawal(txCtx, withdrawal); err != nil {
		return nil, err
	}
	return withdrawal, nil
}
