package whitelist

import (
	"context"

	"github.com/babylonchain/restaking-ledger-service/internal/types"
)

type WhitelistClient interface {
	// IsWhitelisted tells whether the ledger may delegate into poolId
	IsWhitelisted(ctx context.Context, poolId string) (bool, *types.Error)
}
