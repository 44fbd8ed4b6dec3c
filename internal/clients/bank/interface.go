package bank

import (
	"context"

	"github.com/babylonchain/restaking-ledger-service/internal/types"
)

// BankClient moves native value out of the ledger account: refunds of
// attached deposits and withdrawal payouts.
type BankClient interface {
	Transfer(ctx context.Context, receiverId string, amount types.Amount) *types.Error
}
