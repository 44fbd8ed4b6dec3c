package stakingpool

import (
	"context"

	"github.com/babylonchain/restaking-ledger-service/internal/types"
)

// StakingPoolClient drives the external yield-bearing pools the ledger
// delegates into. Every pool call acts on the ledger's own account.
type StakingPoolClient interface {
	Ping(ctx context.Context, poolId string) *types.Error
	DepositAndStake(ctx context.Context, poolId string, amount types.Amount) *types.Error
	Unstake(ctx context.Context, poolId string, amount types.Amount) *types.Error
	Withdraw(ctx context.Context, poolId string, amount types.Amount) *types.Error
	GetAccountStakedBalance(ctx context.Context, poolId, accountId string) (types.Amount, *types.Error)
}
