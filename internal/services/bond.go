package services

import (
	"context"
	"errors"

	"github.com/babylonchain/restaking-ledger-service/internal/ledger"
	"github.com/babylonchain/restaking-ledger-service/internal/queue/client"
	"github.com/babylonchain/restaking-ledger-service/internal/types"
)

type BondingResult struct {
	Sequence        uint64 `json:"sequence"`
	ConsumerChainId string `json:"consumer_chain_id"`
}

var errPosRefused = errors.New("consumer chain position module refused the request")

// Bond pledges the caller's stake to a consumer chain. The bonding is only
// recorded once the chain's position module accepted the key.
func (s *Services) Bond(ctx context.Context, inv Invocation, chainId, key string) (*BondingResult, *types.Error) {
	chain, staker, apiErr := s.loadBonding(ctx, inv, chainId)
	if apiErr != nil {
		return nil, apiErr
	}
	if err := chain.CanBond(staker.StakerId); err != nil {
		return nil, toApiError(err)
	}
	if staker.IsUnbonding(s.now()) {
		return nil, toApiError(ledger.ErrUnbondingInProgress)
	}
	if staker.IsBonding(chainId) {
		return nil, toApiError(ledger.ErrAlreadyBonded)
	}

	ctx, w := s.startWorkflow(ctx, string(client.BondEventKind), "", staker.StakerId)
	accepted := false
	if !w.await(ctx, StageBond, func(ctx context.Context) *types.Error {
		ok, err := s.Clients.ConsumerChainPos.Bond(ctx, chain.PosAccountId, staker.StakerId, key)
		accepted = ok
		return err
	}) {
		return nil, nil
	}
	if !accepted {
		w.rollback(ctx, errPosRefused.Error())
		return nil, nil
	}

	var result *BondingResult
	now := s.now()
	err := s.DbClient.RunInTransaction(ctx, func(txCtx context.Context) error {
		var err error
		staker, err = s.DbClient.FindStaker(txCtx, inv.Caller)
		if err != nil {
			return err
		}
		chain, err = s.DbClient.FindConsumerChain(txCtx, chainId)
		if err != nil {
			return err
		}
		if err := staker.Bond(chainId, chain.UnbondPeriod, now); err != nil {
			return err
		}
		if err := chain.Bond(staker.StakerId); err != nil {
			return err
		}
		if err := s.DbClient.SaveStaker(txCtx, staker); err != nil {
			return err
		}
		if err := s.DbClient.SaveConsumerChain(txCtx, chain); err != nil {
			return err
		}
		sequence, err := s.nextSequence(txCtx)
		if err != nil {
			return err
		}
		result = &BondingResult{Sequence: sequence, ConsumerChainId: chainId}
		return nil
	})
	if err != nil {
		w.logger.Error().Err(err).Str("consumer_chain_id", chainId).
			Msg("position module accepted the bonding but the ledger commit failed")
		return nil, w.abort(ctx, err)
	}
	w.settle()

	s.publish(ctx, client.BondEventKind, result.Sequence, &client.BondingEventData{
		Staker:          staker,
		ConsumerChainId: chainId,
		Key:             key,
	})
	return result, nil
}

// ChangeKey rotates the key a bonded staker uses on the consumer chain.
func (s *Services) ChangeKey(ctx context.Context, inv Invocation, chainId, key string) (*BondingResult, *types.Error) {
	chain, staker, apiErr := s.loadBonding(ctx, inv, chainId)
	if apiErr != nil {
		return nil, apiErr
	}
	if !staker.IsBonding(chainId) {
		return nil, toApiError(ledger.ErrNotBonded)
	}

	ctx, w := s.startWorkflow(ctx, string(client.ChangeKeyEventKind), "", staker.StakerId)
	accepted := false
	if !w.await(ctx, StageBond, func(ctx context.Context) *types.Error {
		ok, err := s.Clients.ConsumerChainPos.ChangeKey(ctx, chain.PosAccountId, staker.StakerId, key)
		accepted = ok
		return err
	}) {
		return nil, nil
	}
	if !accepted {
		w.rollback(ctx, errPosRefused.Error())
		return nil, nil
	}

	var result *BondingResult
	err := s.DbClient.RunInTransaction(ctx, func(txCtx context.Context) error {
		sequence, err := s.nextSequence(txCtx)
		if err != nil {
			return err
		}
		result = &BondingResult{Sequence: sequence, ConsumerChainId: chainId}
		return nil
	})
	if err != nil {
		return nil, w.abort(ctx, err)
	}
	w.settle()

	s.publish(ctx, client.ChangeKeyEventKind, result.Sequence, &client.BondingEventData{
		Staker:          staker,
		ConsumerChainId: chainId,
		Key:             key,
	})
	return result, nil
}

// Unbond leaves a consumer chain. Funds leaving the stake afterwards stay
// locked for the chain's unbond period.
func (s *Services) Unbond(ctx context.Context, inv Invocation, chainId string) (*BondingResult, *types.Error) {
	if _, _, apiErr := s.loadBonding(ctx, inv, chainId); apiErr != nil {
		return nil, apiErr
	}

	var (
		result *BondingResult
		staker *ledger.Staker
	)
	now := s.now()
	err := s.DbClient.RunInTransaction(ctx, func(txCtx context.Context) error {
		var err error
		staker, err = s.DbClient.FindStaker(txCtx, inv.Caller)
		if err != nil {
			return err
		}
		chain, err := s.DbClient.FindConsumerChain(txCtx, chainId)
		if err != nil {
			return err
		}
		if err := staker.Unbond(chainId, now); err != nil {
			return err
		}
		chain.Unbond(staker.StakerId)
		if err := s.DbClient.SaveStaker(txCtx, staker); err != nil {
			return err
		}
		if err := s.DbClient.SaveConsumerChain(txCtx, chain); err != nil {
			return err
		}
		sequence, err := s.nextSequence(txCtx)
		if err != nil {
			return err
		}
		result = &BondingResult{Sequence: sequence, ConsumerChainId: chainId}
		return nil
	})
	if err != nil {
		return nil, toApiError(err)
	}

	s.publish(ctx, client.UnbondEventKind, result.Sequence, &client.BondingEventData{
		Staker:          staker,
		ConsumerChainId: chainId,
	})
	return result, nil
}

func (s *Services) loadBonding(
	ctx context.Context, inv Invocation, chainId string,
) (*ledger.ConsumerChain, *ledger.Staker, *types.Error) {
	if err := s.requireActionDeposit(inv); err != nil {
		return nil, nil, err
	}
	if err := s.requireRegistered(ctx, inv.Caller); err != nil {
		return nil, nil, err
	}
	chain, err := s.DbClient.FindConsumerChain(ctx, chainId)
	if err != nil {
		return nil, nil, toApiError(err)
	}
	staker, err := s.DbClient.FindStaker(ctx, inv.Caller)
	if err != nil {
		return nil, nil, toApiError(err)
	}
	return chain, staker, nil
}
