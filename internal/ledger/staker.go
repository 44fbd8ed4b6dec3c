package ledger

import (
	"fmt"
	"sort"
	"time"

	"github.com/babylonchain/restaking-ledger-service/internal/types"
	"github.com/babylonchain/restaking-ledger-service/internal/utils"
)

// Staker is a participant's position: the pool they delegate through, the
// shares they own in it and the consumer chains their stake secures.
type Staker struct {
	StakerId               string                   `json:"staker_id"`
	SelectStakingPool      string                   `json:"select_staking_pool,omitempty"`
	Shares                 types.Amount             `json:"shares"`
	BondingConsumerChains  map[string]time.Duration `json:"bonding_consumer_chains"`
	MaxBondingUnlockPeriod time.Duration            `json:"max_bonding_unlock_period"`
	UnbondingUnlockTime    time.Time                `json:"unbonding_unlock_time"`
}

func NewStaker(stakerId string) *Staker {
	return &Staker{
		StakerId:              stakerId,
		BondingConsumerChains: map[string]time.Duration{},
	}
}

func (s *Staker) HasSelectedPool() bool {
	return s.SelectStakingPool != ""
}

func (s *Staker) IsUnbonding(now time.Time) bool {
	return s.UnbondingUnlockTime.After(now)
}

// CanSelectPool checks the staker may start staking into poolId.
// A staker holding shares must use increase_stake; switching away from a
// previous pool also waits for any unbonding to finish.
func (s *Staker) CanSelectPool(poolId string, now time.Time) error {
	if !s.Shares.IsZero() {
		return fmt.Errorf("%w: staker still owns %s shares", ErrPoolSelectionRejected, s.Shares)
	}
	if s.SelectStakingPool == poolId {
		return fmt.Errorf("%w: pool %s is already selected", ErrPoolSelectionRejected, poolId)
	}
	if s.HasSelectedPool() && s.IsUnbonding(now) {
		return ErrUnbondingInProgress
	}
	return nil
}

func (s *Staker) IncreaseShares(shares types.Amount) error {
	total, err := s.Shares.Add(shares)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvariantViolation, err)
	}
	s.Shares = total
	return nil
}

func (s *Staker) DecreaseShares(shares types.Amount) error {
	remaining, err := s.Shares.Sub(shares)
	if err != nil {
		return fmt.Errorf("%w: burning %s of %s shares", ErrInsufficientShares, shares, s.Shares)
	}
	s.Shares = remaining
	return nil
}

func (s *Staker) IsBonding(chainId string) bool {
	_, ok := s.BondingConsumerChains[chainId]
	return ok
}

// Bond records the chain's unbonding period. Bonding is refused while a
// previous unbonding has not completed.
func (s *Staker) Bond(chainId string, unbondPeriod time.Duration, now time.Time) error {
	if s.IsUnbonding(now) {
		return ErrUnbondingInProgress
	}
	if s.IsBonding(chainId) {
		return ErrAlreadyBonded
	}
	if s.BondingConsumerChains == nil {
		s.BondingConsumerChains = map[string]time.Duration{}
	}
	s.BondingConsumerChains[chainId] = unbondPeriod
	if unbondPeriod > s.MaxBondingUnlockPeriod {
		s.MaxBondingUnlockPeriod = unbondPeriod
	}
	return nil
}

// Unbond removes the chain and pushes unbonding_unlock_time out by its period.
func (s *Staker) Unbond(chainId string, now time.Time) error {
	period, ok := s.BondingConsumerChains[chainId]
	if !ok {
		return ErrNotBonded
	}
	delete(s.BondingConsumerChains, chainId)
	s.UnbondingUnlockTime = utils.MaxTime(s.UnbondingUnlockTime, now.Add(period))
	s.recomputeMaxBondingUnlockPeriod()
	return nil
}

// UnbondAll unbonds every chain, in id order, and returns the chains it left.
func (s *Staker) UnbondAll(now time.Time) []string {
	chainIds := s.BondingChainIds()
	for _, chainId := range chainIds {
		// cannot fail, the id comes from the map
		_ = s.Unbond(chainId, now)
	}
	return chainIds
}

// UpdateUnbondingPeriod applies a chain's new unbond period to an existing bonding.
func (s *Staker) UpdateUnbondingPeriod(chainId string, unbondPeriod time.Duration) {
	if !s.IsBonding(chainId) {
		return
	}
	s.BondingConsumerChains[chainId] = unbondPeriod
	s.recomputeMaxBondingUnlockPeriod()
}

// GetUnlockTime is the earliest time funds leaving the staker's position may be withdrawn.
func (s *Staker) GetUnlockTime(now time.Time) time.Time {
	return utils.MaxTime(s.UnbondingUnlockTime, now.Add(s.MaxBondingUnlockPeriod))
}

func (s *Staker) BondingChainIds() []string {
	ids := make([]string, 0, len(s.BondingConsumerChains))
	for id := range s.BondingConsumerChains {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (s *Staker) recomputeMaxBondingUnlockPeriod() {
	var max time.Duration
	for _, period := range s.BondingConsumerChains {
		if period > max {
			max = period
		}
	}
	s.MaxBondingUnlockPeriod = max
}

func (s *Staker) Clone() *Staker {
	c := *s
	c.BondingConsumerChains = make(map[string]time.Duration, len(s.BondingConsumerChains))
	for k, v := range s.BondingConsumerChains {
		c.BondingConsumerChains[k] = v
	}
	return &c
}
