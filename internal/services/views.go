package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/babylonchain/restaking-ledger-service/internal/db/model"
	"github.com/babylonchain/restaking-ledger-service/internal/ledger"
	"github.com/babylonchain/restaking-ledger-service/internal/types"
)

const maxConcurrentPoolReads = 8

type StakedBalancePublic struct {
	StakerId      string       `json:"staker_id"`
	PoolId        string       `json:"pool_id,omitempty"`
	Shares        types.Amount `json:"shares"`
	StakedBalance types.Amount `json:"staked_balance"`
}

type BondingChainPublic struct {
	ConsumerChainId string        `json:"consumer_chain_id"`
	UnbondPeriod    time.Duration `json:"unbond_period"`
}

type PendingWithdrawalPublic struct {
	*ledger.PendingWithdrawal
	Withdrawable bool `json:"withdrawable"`
}

type ValidatorPublic struct {
	StakerId      string       `json:"staker_id"`
	StakedBalance types.Amount `json:"staked_balance"`
}

type ValidatorSetPublic struct {
	ValidatorSet []ValidatorPublic `json:"validator_set"`
	Sequence     uint64            `json:"sequence"`
}

func (s *Services) GetStaker(ctx context.Context, stakerId string) (*ledger.Staker, *types.Error) {
	staker, err := s.DbClient.FindStaker(ctx, stakerId)
	if err != nil {
		return nil, toApiError(err)
	}
	return staker, nil
}

// GetStakerStakedBalance values the staker's shares at the pool's current
// price, rounded down.
func (s *Services) GetStakerStakedBalance(ctx context.Context, stakerId string) (*StakedBalancePublic, *types.Error) {
	staker, err := s.DbClient.FindStaker(ctx, stakerId)
	if err != nil {
		return nil, toApiError(err)
	}
	result := &StakedBalancePublic{
		StakerId:      stakerId,
		PoolId:        staker.SelectStakingPool,
		Shares:        staker.Shares,
		StakedBalance: types.ZeroAmount(),
	}
	if !staker.HasSelectedPool() {
		return result, nil
	}
	pool, err := s.DbClient.FindStakingPool(ctx, staker.SelectStakingPool)
	if err != nil {
		return nil, toApiError(err)
	}
	if result.StakedBalance, err = pool.BalanceFromShares(staker.Shares, true); err != nil {
		return nil, toApiError(err)
	}
	return result, nil
}

func (s *Services) GetStakerBondingChains(ctx context.Context, stakerId string) ([]BondingChainPublic, *types.Error) {
	staker, err := s.DbClient.FindStaker(ctx, stakerId)
	if err != nil {
		return nil, toApiError(err)
	}
	chains := make([]BondingChainPublic, 0, len(staker.BondingConsumerChains))
	for _, chainId := range staker.BondingChainIds() {
		chains = append(chains, BondingChainPublic{
			ConsumerChainId: chainId,
			UnbondPeriod:    staker.BondingConsumerChains[chainId],
		})
	}
	return chains, nil
}

// ListPendingWithdrawals returns the account's claims, earliest unlock first.
func (s *Services) ListPendingWithdrawals(ctx context.Context, accountId string) ([]PendingWithdrawalPublic, *types.Error) {
	withdrawals, err := s.DbClient.FindPendingWithdrawalsByOwner(ctx, accountId)
	if err != nil {
		return nil, toApiError(err)
	}
	pools := map[string]*ledger.StakingPool{}
	epoch := s.currentEpoch()
	now := s.now()
	result := make([]PendingWithdrawalPublic, 0, len(withdrawals))
	for _, withdrawal := range withdrawals {
		pool, ok := pools[withdrawal.PoolId]
		if !ok {
			if pool, err = s.DbClient.FindStakingPool(ctx, withdrawal.PoolId); err != nil {
				return nil, toApiError(err)
			}
			pools[withdrawal.PoolId] = pool
		}
		result = append(result, PendingWithdrawalPublic{
			PendingWithdrawal: withdrawal,
			Withdrawable:      withdrawal.IsWithdrawable(pool, epoch, now),
		})
	}
	return result, nil
}

func (s *Services) GetStakingPool(ctx context.Context, poolId string) (*ledger.StakingPool, *types.Error) {
	pool, err := s.DbClient.FindStakingPool(ctx, poolId)
	if err != nil {
		return nil, toApiError(err)
	}
	return pool, nil
}

func (s *Services) ListStakingPools(ctx context.Context, pageToken string) ([]*ledger.StakingPool, string, *types.Error) {
	resultMap, err := s.DbClient.FindStakingPools(ctx, pageToken)
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Msg("failed to list staking pools")
		return nil, "", toApiError(err)
	}
	return resultMap.Data, resultMap.PaginationToken, nil
}

func (s *Services) GetConsumerChain(ctx context.Context, chainId string) (*ledger.ConsumerChain, *types.Error) {
	chain, err := s.DbClient.FindConsumerChain(ctx, chainId)
	if err != nil {
		return nil, toApiError(err)
	}
	return chain, nil
}

func (s *Services) ListConsumerChains(ctx context.Context, pageToken string) ([]*ledger.ConsumerChain, string, *types.Error) {
	resultMap, err := s.DbClient.FindConsumerChains(ctx, pageToken)
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Msg("failed to list consumer chains")
		return nil, "", toApiError(err)
	}
	return resultMap.Data, resultMap.PaginationToken, nil
}

// GetValidatorSet ranks the chain's bonded stakers by staked balance,
// largest first with ties broken by id, and keeps the first limit.
func (s *Services) GetValidatorSet(ctx context.Context, chainId string, limit int) (*ValidatorSetPublic, *types.Error) {
	chain, err := s.DbClient.FindConsumerChain(ctx, chainId)
	if err != nil {
		return nil, toApiError(err)
	}
	stakers, err := s.DbClient.FindStakersByIds(ctx, chain.BondingStakers)
	if err != nil {
		return nil, toApiError(err)
	}

	poolIds := map[string]struct{}{}
	for _, staker := range stakers {
		if staker.HasSelectedPool() {
			poolIds[staker.SelectStakingPool] = struct{}{}
		}
	}
	var mu sync.Mutex
	pools := make(map[string]*ledger.StakingPool, len(poolIds))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentPoolReads)
	for poolId := range poolIds {
		poolId := poolId
		g.Go(func() error {
			pool, err := s.DbClient.FindStakingPool(gctx, poolId)
			if err != nil {
				return err
			}
			mu.Lock()
			pools[poolId] = pool
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, toApiError(err)
	}

	validators := make([]ValidatorPublic, 0, len(stakers))
	for _, staker := range stakers {
		balance := types.ZeroAmount()
		if pool, ok := pools[staker.SelectStakingPool]; ok {
			if balance, err = pool.BalanceFromShares(staker.Shares, true); err != nil {
				return nil, toApiError(err)
			}
		}
		validators = append(validators, ValidatorPublic{StakerId: staker.StakerId, StakedBalance: balance})
	}
	sort.Slice(validators, func(i, j int) bool {
		if c := validators[i].StakedBalance.Cmp(validators[j].StakedBalance); c != 0 {
			return c > 0
		}
		return validators[i].StakerId < validators[j].StakerId
	})
	if limit >= 0 && limit < len(validators) {
		validators = validators[:limit]
	}

	sequence, err := s.DbClient.GetCounterValue(ctx, model.SequenceCounter)
	if err != nil {
		return nil, toApiError(err)
	}
	return &ValidatorSetPublic{ValidatorSet: validators, Sequence: sequence}, nil
}

func (s *Services) GetSlash(ctx context.Context, slashId uint64) (*ledger.Slash, *types.Error) {
	slash, err := s.DbClient.FindSlash(ctx, slashId)
	if err != nil {
		return nil, toApiError(err)
	}
	return slash, nil
}
