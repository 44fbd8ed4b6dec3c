package model

import (
	"time"

	"github.com/babylonchain/restaking-ledger-service/internal/ledger"
	"github.com/babylonchain/restaking-ledger-service/internal/types"
)

type ConsumerChainDocument struct {
	ConsumerChainId string                    `bson:"_id"`
	UnbondPeriod    time.Duration             `bson:"unbond_period"`
	Website         string                    `bson:"website"`
	Governance      string                    `bson:"governance"`
	Treasury        string                    `bson:"treasury"`
	PosAccountId    string                    `bson:"pos_account_id"`
	BondingStakers  []string                  `bson:"bonding_stakers"`
	Blacklist       []string                  `bson:"blacklist"`
	Status          types.ConsumerChainStatus `bson:"status"`
	RegisterFee     types.Amount              `bson:"register_fee"`
}

func NewConsumerChainDocument(chain *ledger.ConsumerChain) *ConsumerChainDocument {
	return &ConsumerChainDocument{
		ConsumerChainId: chain.ConsumerChainId,
		UnbondPeriod:    chain.UnbondPeriod,
		Website:         chain.Website,
		Governance:      chain.Governance,
		Treasury:        chain.Treasury,
		PosAccountId:    chain.PosAccountId,
		BondingStakers:  append([]string{}, chain.BondingStakers...),
		Blacklist:       append([]string{}, chain.Blacklist...),
		Status:          chain.Status,
		RegisterFee:     chain.RegisterFee,
	}
}

func (d *ConsumerChainDocument) ToConsumerChain() *ledger.ConsumerChain {
	return &ledger.ConsumerChain{
		ConsumerChainId: d.ConsumerChainId,
		UnbondPeriod:    d.UnbondPeriod,
		Website:         d.Website,
		Governance:      d.Governance,
		Treasury:        d.Treasury,
		PosAccountId:    d.PosAccountId,
		BondingStakers:  append([]string{}, d.BondingStakers...),
		Blacklist:       append([]string{}, d.Blacklist...),
		Status:          d.Status,
		RegisterFee:     d.RegisterFee,
	}
}
