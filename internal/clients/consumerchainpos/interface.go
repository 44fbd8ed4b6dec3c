package consumerchainpos

import (
	"context"

	"github.com/babylonchain/restaking-ledger-service/internal/types"
)

// ConsumerChainPosClient talks to the position module of a consumer chain,
// addressed by the chain's pos account. A false answer is a refusal, an
// error means the call itself failed.
type ConsumerChainPosClient interface {
	Bond(ctx context.Context, posAccountId, stakerId, key string) (bool, *types.Error)
	ChangeKey(ctx context.Context, posAccountId, stakerId, key string) (bool, *types.Error)
}
