package model

import (
	"time"

	"github.com/babylonchain/restaking-ledger-service/internal/ledger"
	"github.com/babylonchain/restaking-ledger-service/internal/types"
)

type StakerDocument struct {
	StakerId               string                   `bson:"_id"`
	SelectStakingPool      string                   `bson:"select_staking_pool"`
	Shares                 types.Amount             `bson:"shares"`
	BondingConsumerChains  map[string]time.Duration `bson:"bonding_consumer_chains"`
	MaxBondingUnlockPeriod time.Duration            `bson:"max_bonding_unlock_period"`
	UnbondingUnlockTime    time.Time                `bson:"unbonding_unlock_time"`
	// Denormalised for the chain's validator set query
	BondingChainIds []string `bson:"bonding_chain_ids"`
}

func NewStakerDocument(staker *ledger.Staker) *StakerDocument {
	chains := make(map[string]time.Duration, len(staker.BondingConsumerChains))
	for k, v := range staker.BondingConsumerChains {
		chains[k] = v
	}
	return &StakerDocument{
		StakerId:               staker.StakerId,
		SelectStakingPool:      staker.SelectStakingPool,
		Shares:                 staker.Shares,
		BondingConsumerChains:  chains,
		MaxBondingUnlockPeriod: staker.MaxBondingUnlockPeriod,
		UnbondingUnlockTime:    staker.UnbondingUnlockTime,
		BondingChainIds:        staker.BondingChainIds(),
	}
}

func (d *StakerDocument) ToStaker() *ledger.Staker {
	staker := ledger.NewStaker(d.StakerId)
	staker.SelectStakingPool = d.SelectStakingPool
	staker.Shares = d.Shares
	for k, v := range d.BondingConsumerChains {
		staker.BondingConsumerChains[k] = v
	}
	staker.MaxBondingUnlockPeriod = d.MaxBondingUnlockPeriod
	staker.UnbondingUnlockTime = d.UnbondingUnlockTime
	return staker
}
