package clients

import (
	"github.com/babylonchain/restaking-ledger-service/internal/clients/bank"
	"github.com/babylonchain/restaking-ledger-service/internal/clients/consumerchainpos"
	"github.com/babylonchain/restaking-ledger-service/internal/clients/stakingpool"
	"github.com/babylonchain/restaking-ledger-service/internal/clients/whitelist"
	"github.com/babylonchain/restaking-ledger-service/internal/config"
)

type Clients struct {
	StakingPool      stakingpool.StakingPoolClient
	Whitelist        whitelist.WhitelistClient
	ConsumerChainPos consumerchainpos.ConsumerChainPosClient
	Bank             bank.BankClient
}

func New(cfg *config.Config) *Clients {
	return &Clients{
		StakingPool:      stakingpool.NewStakingPoolClient(&cfg.Clients),
		Whitelist:        whitelist.NewWhitelistClient(&cfg.Clients),
		ConsumerChainPos: consumerchainpos.NewConsumerChainPosClient(&cfg.Clients),
		Bank:             bank.NewBankClient(&cfg.Clients),
	}
}
