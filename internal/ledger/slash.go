package ledger

import (
	"fmt"

	"github.com/babylonchain/restaking-ledger-service/internal/types"
)

type SlashItem struct {
	StakerId string       `json:"staker_id"`
	Amount   types.Amount `json:"amount"`
}

// Slash is a penalty request from a consumer chain awaiting its governance.
type Slash struct {
	SlashId         uint64       `json:"slash_id"`
	ConsumerChainId string       `json:"consumer_chain_id"`
	SlashItems      []SlashItem  `json:"slash_items"`
	EvidenceHash    string       `json:"evidence_sha256_hash"`
	Submitter       string       `json:"submitter"`
	Guarantee       types.Amount `json:"slash_guarantee"`
}

func NewSlash(
	slashId uint64, chain *ConsumerChain, items []SlashItem, evidenceHash, submitter string, guarantee types.Amount,
) (*Slash, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("slash request has no items")
	}
	for _, item := range items {
		if item.Amount.IsZero() {
			return nil, fmt.Errorf("slash amount for %s is zero", item.StakerId)
		}
	}
	return &Slash{
		SlashId:         slashId,
		ConsumerChainId: chain.ConsumerChainId,
		SlashItems:      append([]SlashItem{}, items...),
		EvidenceHash:    evidenceHash,
		Submitter:       submitter,
		Guarantee:       guarantee,
	}, nil
}

func (s *Slash) Clone() *Slash {
	c := *s
	c.SlashItems = append([]SlashItem{}, s.SlashItems...)
	return &c
}
