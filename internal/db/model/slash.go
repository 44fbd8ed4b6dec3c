package model

import (
	"github.com/babylonchain/restaking-ledger-service/internal/ledger"
	"github.com/babylonchain/restaking-ledger-service/internal/types"
)

type SlashItemDocument struct {
	StakerId string       `bson:"staker_id"`
	Amount   types.Amount `bson:"amount"`
}

type SlashDocument struct {
	SlashId         uint64              `bson:"_id"`
	ConsumerChainId string              `bson:"consumer_chain_id"`
	SlashItems      []SlashItemDocument `bson:"slash_items"`
	EvidenceHash    string              `bson:"evidence_sha256_hash"`
	Submitter       string              `bson:"submitter"`
	Guarantee       types.Amount        `bson:"slash_guarantee"`
}

func NewSlashDocument(slash *ledger.Slash) *SlashDocument {
	items := make([]SlashItemDocument, 0, len(slash.SlashItems))
	for _, item := range slash.SlashItems {
		items = append(items, SlashItemDocument{StakerId: item.StakerId, Amount: item.Amount})
	}
	return &SlashDocument{
		SlashId:         slash.SlashId,
		ConsumerChainId: slash.ConsumerChainId,
		SlashItems:      items,
		EvidenceHash:    slash.EvidenceHash,
		Submitter:       slash.Submitter,
		Guarantee:       slash.Guarantee,
	}
}

func (d *SlashDocument) ToSlash() *ledger.Slash {
	items := make([]ledger.SlashItem, 0, len(d.SlashItems))
	for _, item := range d.SlashItems {
		items = append(items, ledger.SlashItem{StakerId: item.StakerId, Amount: item.Amount})
	}
	return &ledger.Slash{
		SlashId:         d.SlashId,
		ConsumerChainId: d.ConsumerChainId,
		SlashItems:      items,
		EvidenceHash:    d.EvidenceHash,
		Submitter:       d.Submitter,
		Guarantee:       d.Guarantee,
	}
}
