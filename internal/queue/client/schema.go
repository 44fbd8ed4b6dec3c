package client

import (
	"github.com/google/uuid"

	"github.com/babylonchain/restaking-ledger-service/internal/ledger"
	"github.com/babylonchain/restaking-ledger-service/internal/types"
)

const (
	EventStandard = "restaking-ledger"
	EventVersion  = "1.0.0"
)

type EventKind string

const (
	PingEventKind                    EventKind = "ping"
	StakeEventKind                   EventKind = "staker_stake"
	IncreaseStakeEventKind           EventKind = "staker_increase_stake"
	DecreaseStakeEventKind           EventKind = "staker_decrease_stake"
	UnstakeEventKind                 EventKind = "staker_unstake"
	SubmitUnstakeBatchEventKind      EventKind = "submit_unstake_batch"
	WithdrawUnstakeBatchEventKind    EventKind = "withdraw_unstake_batch"
	WithdrawEventKind                EventKind = "withdraw"
	BondEventKind                    EventKind = "staker_bond"
	ChangeKeyEventKind               EventKind = "staker_change_key"
	UnbondEventKind                  EventKind = "staker_unbond"
	RegisterConsumerChainEventKind   EventKind = "register_consumer_chain"
	UpdateConsumerChainEventKind     EventKind = "update_consumer_chain"
	DeregisterConsumerChainEventKind EventKind = "deregister_consumer_chain"
	BlackoutEventKind                EventKind = "blackout"
	RequestSlashEventKind            EventKind = "request_slash"
	SlashEventKind                   EventKind = "slash"
	CallbackFailedEventKind          EventKind = "callback_failed"
)

func (k EventKind) String() string {
	return string(k)
}

// LedgerEvent is the envelope of every message on the event queue.
// Sequence orders events globally; Id deduplicates redeliveries.
type LedgerEvent struct {
	Standard string      `json:"standard"`
	Version  string      `json:"version"`
	Event    EventKind   `json:"event"`
	Sequence uint64      `json:"sequence"`
	Id       string      `json:"id"`
	Data     interface{} `json:"data"`
}

func NewLedgerEvent(kind EventKind, sequence uint64, data interface{}) *LedgerEvent {
	return &LedgerEvent{
		Standard: EventStandard,
		Version:  EventVersion,
		Event:    kind,
		Sequence: sequence,
		Id:       uuid.NewString(),
		Data:     data,
	}
}

type PoolEventData struct {
	Pool *ledger.StakingPool `json:"pool"`
}

type StakerEventData struct {
	Staker     *ledger.Staker            `json:"staker"`
	Pool       *ledger.StakingPool       `json:"pool,omitempty"`
	Amount     *types.Amount             `json:"amount,omitempty"`
	Shares     *types.Amount             `json:"shares,omitempty"`
	Withdrawal *ledger.PendingWithdrawal `json:"withdrawal,omitempty"`
	// Chains unbonded by an unstake before the stake left the pool
	UnbondedConsumerChains []string `json:"unbonded_consumer_chains,omitempty"`
}

type UnstakeBatchEventData struct {
	Pool    *ledger.StakingPool `json:"pool"`
	BatchId uint64              `json:"unstake_batch_id"`
	Amount  types.Amount        `json:"amount"`
}

type WithdrawEventData struct {
	Caller     string                    `json:"caller"`
	Withdrawal *ledger.PendingWithdrawal `json:"withdrawal"`
	Pool       *ledger.StakingPool       `json:"pool"`
}

type BondingEventData struct {
	Staker          *ledger.Staker `json:"staker"`
	ConsumerChainId string         `json:"consumer_chain_id"`
	Key             string         `json:"key,omitempty"`
}

type ConsumerChainEventData struct {
	ConsumerChain *ledger.ConsumerChain `json:"consumer_chain"`
	StakerId      string                `json:"staker_id,omitempty"`
}

type SlashEventData struct {
	Slash    *ledger.Slash `json:"slash"`
	Approved *bool         `json:"approved,omitempty"`
	// Treasury claims created by an approved slash
	Withdrawals []*ledger.PendingWithdrawal `json:"withdrawals,omitempty"`
}

type CallbackFailedEventData struct {
	Workflow string `json:"workflow"`
	Stage    string `json:"stage"`
	PoolId   string `json:"pool_id,omitempty"`
	StakerId string `json:"staker_id,omitempty"`
	Reason   string `json:"reason"`
}
