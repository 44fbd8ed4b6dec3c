package services

import (
	"context"

	"github.com/babylonchain/restaking-ledger-service/internal/ledger"
	"github.com/babylonchain/restaking-ledger-service/internal/queue/client"
	"github.com/babylonchain/restaking-ledger-service/internal/types"
	"github.com/babylonchain/restaking-ledger-service/internal/utils"
)

type ConsumerChainResult struct {
	Sequence      uint64                `json:"sequence"`
	ConsumerChain *ledger.ConsumerChain `json:"consumer_chain"`
}

// RegisterConsumerChain creates an active chain governed by the caller. The
// attached deposit must be exactly the registration fee, which is kept.
func (s *Services) RegisterConsumerChain(
	ctx context.Context, inv Invocation, param ledger.ConsumerChainRegisterParam,
) (*ConsumerChainResult, *types.Error) {
	fee := s.cfg.Ledger.GetRegisterFee()
	if !inv.Deposit.Eq(fee) {
		return nil, invalidDeposit("attached deposit must equal the register fee " + fee.String())
	}
	if err := utils.ValidateAccountId(inv.Caller); err != nil {
		return nil, validationError(err)
	}
	chain, err := ledger.NewConsumerChain(param, inv.Caller, fee)
	if err != nil {
		return nil, toApiError(err)
	}

	var sequence uint64
	err = s.DbClient.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := s.DbClient.InsertConsumerChain(txCtx, chain); err != nil {
			return err
		}
		var err error
		sequence, err = s.nextSequence(txCtx)
		return err
	})
	if err != nil {
		return nil, toApiError(err)
	}
	s.publish(ctx, client.RegisterConsumerChainEventKind, sequence, &client.ConsumerChainEventData{ConsumerChain: chain})
	return &ConsumerChainResult{Sequence: sequence, ConsumerChain: chain}, nil
}

// UpdateConsumerChain applies a governance update. A new unbond period is
// applied to every staker already bonded to the chain.
func (s *Services) UpdateConsumerChain(
	ctx context.Context, inv Invocation, chainId string, param ledger.ConsumerChainUpdateParam,
) (*ConsumerChainResult, *types.Error) {
	if err := s.requireActionDeposit(inv); err != nil {
		return nil, err
	}
	return s.mutateConsumerChain(ctx, chainId, client.UpdateConsumerChainEventKind, "",
		func(txCtx context.Context, chain *ledger.ConsumerChain) error {
			if err := chain.AssertGovernance(inv.Caller); err != nil {
				return err
			}
			periodChanged, err := chain.UpdateInfo(param)
			if err != nil || !periodChanged {
				return err
			}
			stakers, err := s.DbClient.FindStakersByIds(txCtx, chain.BondingStakers)
			if err != nil {
				return err
			}
			for _, staker := range stakers {
				staker.UpdateUnbondingPeriod(chainId, chain.UnbondPeriod)
				if err := s.DbClient.SaveStaker(txCtx, staker); err != nil {
					return err
				}
			}
			return nil
		})
}

// DeregisterConsumerChain is terminal. Bonded stakers are not unbonded and
// may still unbond on their own.
func (s *Services) DeregisterConsumerChain(
	ctx context.Context, inv Invocation, chainId string,
) (*ConsumerChainResult, *types.Error) {
	if err := s.requireActionDeposit(inv); err != nil {
		return nil, err
	}
	return s.mutateConsumerChain(ctx, chainId, client.DeregisterConsumerChainEventKind, "",
		func(_ context.Context, chain *ledger.ConsumerChain) error {
			if err := chain.AssertGovernance(inv.Caller); err != nil {
				return err
			}
			return chain.Deregister()
		})
}

// Blackout bars stakerId from bonding to the chain again. Only the chain's
// position account may call it.
func (s *Services) Blackout(
	ctx context.Context, inv Invocation, chainId, stakerId string,
) (*ConsumerChainResult, *types.Error) {
	if err := utils.ValidateAccountId(stakerId); err != nil {
		return nil, validationError(err)
	}
	return s.mutateConsumerChain(ctx, chainId, client.BlackoutEventKind, stakerId,
		func(_ context.Context, chain *ledger.ConsumerChain) error {
			if err := chain.AssertPosAccount(inv.Caller); err != nil {
				return err
			}
			chain.Blackout(stakerId)
			return nil
		})
}

func (s *Services) mutateConsumerChain(
	ctx context.Context, chainId string, kind client.EventKind, stakerId string,
	mutate func(txCtx context.Context, chain *ledger.ConsumerChain) error,
) (*ConsumerChainResult, *types.Error) {
	var result *ConsumerChainResult
	err := s.DbClient.RunInTransaction(ctx, func(txCtx context.Context) error {
		chain, err := s.DbClient.FindConsumerChain(txCtx, chainId)
		if err != nil {
			return err
		}
		if err := mutate(txCtx, chain); err != nil {
			return err
		}
		if err := s.DbClient.SaveConsumerChain(txCtx, chain); err != nil {
			return err
		}
		sequence, err := s.nextSequence(txCtx)
		if err != nil {
			return err
		}
		result = &ConsumerChainResult{Sequence: sequence, ConsumerChain: chain}
		return nil
	})
	if err != nil {
		return nil, toApiError(err)
	}
	s.publish(ctx, kind, result.Sequence, &client.ConsumerChainEventData{
		ConsumerChain: result.ConsumerChain,
		StakerId:      stakerId,
	})
	return result, nil
}
