package db

import (
	"context"
	"time"

	"github.com/babylonchain/restaking-ledger-service/internal/ledger"
)

// DBClient is the ledger's persistent store. Every method accepts the
// context returned inside RunInTransaction so a workflow commit is applied
// all-or-nothing.
type DBClient interface {
	Ping(ctx context.Context) error
	// RunInTransaction runs fn atomically. Nested calls join the outer transaction.
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	RegisterAccount(ctx context.Context, accountId string, registeredAt time.Time) error
	IsAccountRegistered(ctx context.Context, accountId string) (bool, error)

	FindStakingPool(ctx context.Context, poolId string) (*ledger.StakingPool, error)
	FindStakingPools(ctx context.Context, paginationToken string) (*DbResultMap[*ledger.StakingPool], error)
	SaveStakingPool(ctx context.Context, pool *ledger.StakingPool) error
	DeleteStakingPool(ctx context.Context, poolId string) error

	FindStaker(ctx context.Context, stakerId string) (*ledger.Staker, error)
	FindStakersByIds(ctx context.Context, stakerIds []string) ([]*ledger.Staker, error)
	SaveStaker(ctx context.Context, staker *ledger.Staker) error

	InsertConsumerChain(ctx context.Context, chain *ledger.ConsumerChain) error
	FindConsumerChain(ctx context.Context, chainId string) (*ledger.ConsumerChain, error)
	FindConsumerChains(ctx context.Context, paginationToken string) (*DbResultMap[*ledger.ConsumerChain], error)
	SaveConsumerChain(ctx context.Context, chain *ledger.ConsumerChain) error

	InsertPendingWithdrawal(ctx context.Context, withdrawal *ledger.PendingWithdrawal) error
	SavePendingWithdrawal(ctx context.Context, withdrawal *ledger.PendingWithdrawal) error
	DeletePendingWithdrawal(ctx context.Context, certificate uint64) error
	FindPendingWithdrawal(ctx context.Context, certificate uint64) (*ledger.PendingWithdrawal, error)
	// FindPendingWithdrawalsByOwner returns claims ordered by unlock time, then certificate.
	FindPendingWithdrawalsByOwner(ctx context.Context, owner string) ([]*ledger.PendingWithdrawal, error)

	InsertSlash(ctx context.Context, slash *ledger.Slash) error
	FindSlash(ctx context.Context, slashId uint64) (*ledger.Slash, error)
	DeleteSlash(ctx context.Context, slashId uint64) error

	// NextCounterValue increments the named counter and returns the new value, starting at 1.
	NextCounterValue(ctx context.Context, name string) (uint64, error)
	GetCounterValue(ctx context.Context, name string) (uint64, error)

	SaveUnpublishedEvent(ctx context.Context, sequence uint64, eventBody string) error
	// TakeUnpublishedEvents removes and returns up to limit stored events, oldest sequence first.
	TakeUnpublishedEvents(ctx context.Context, limit int64) ([]UnpublishedEvent, error)
}

type UnpublishedEvent struct {
	Sequence  uint64
	EventBody string
}
