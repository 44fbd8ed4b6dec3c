package ledger

import (
	"fmt"
	"time"

	"github.com/babylonchain/restaking-ledger-service/internal/types"
)

// PendingWithdrawal is a claim on funds leaving a pool. It is held by Owner
// and pays out to Beneficiary.
type PendingWithdrawal struct {
	WithdrawalCertificate uint64       `json:"withdrawal_certificate"`
	Owner                 string       `json:"owner"`
	PoolId                string       `json:"pool_id"`
	Amount                types.Amount `json:"amount"`
	UnlockEpoch           uint64       `json:"unlock_epoch"`
	UnlockTime            time.Time    `json:"unlock_time"`
	Beneficiary           string       `json:"beneficiary"`
	AllowOtherWithdraw    bool         `json:"allow_other_withdraw"`
	UnstakeBatchId        *uint64      `json:"unstake_batch_id,omitempty"`
	// set once a claim without a batch has been withdrawn from the pool
	PoolWithdrawn         bool         `json:"pool_withdrawn,omitempty"`
}

// IsWithdrawable requires both the time lock and the pool-side unlock:
// batch-linked claims wait for their batch to be withdrawn, the others for
// the pool's unlock epoch.
func (w *PendingWithdrawal) IsWithdrawable(pool *StakingPool, epoch uint64, now time.Time) bool {
	if now.Before(w.UnlockTime) {
		return false
	}
	if w.UnstakeBatchId != nil {
		return pool.IsUnstakeBatchWithdrawn(*w.UnstakeBatchId)
	}
	return pool.IsWithdrawable(epoch)
}

// NeedsPoolWithdraw reports whether paying the claim first requires a
// withdraw call on the pool. Batch-linked claims are paid from their batch.
func (w *PendingWithdrawal) NeedsPoolWithdraw() bool {
	return w.UnstakeBatchId == nil && !w.PoolWithdrawn
}

func (w *PendingWithdrawal) CanBeWithdrawnBy(caller string) bool {
	return w.AllowOtherWithdraw || caller == w.Beneficiary
}

// Slash carves amount out of the claim into a new certificate payable to
// beneficiary immediately. The new claim stays tied to the same pool and batch.
func (w *PendingWithdrawal) Slash(
	newCertificate uint64, amount types.Amount, beneficiary string, now time.Time,
) (*PendingWithdrawal, error) {
	remaining, err := w.Amount.Sub(amount)
	if err != nil {
		return nil, fmt.Errorf("%w: slashing %s from withdrawal of %s", ErrInvariantViolation, amount, w.Amount)
	}
	w.Amount = remaining

	var batchId *uint64
	if w.UnstakeBatchId != nil {
		id := *w.UnstakeBatchId
		batchId = &id
	}
	return &PendingWithdrawal{
		WithdrawalCertificate: newCertificate,
		Owner:                 beneficiary,
		PoolId:                w.PoolId,
		Amount:                amount,
		UnlockEpoch:           w.UnlockEpoch,
		UnlockTime:            now,
		Beneficiary:           beneficiary,
		AllowOtherWithdraw:    true,
		UnstakeBatchId:        batchId,
		PoolWithdrawn:         w.PoolWithdrawn,
	}, nil
}

func (w *PendingWithdrawal) Clone() *PendingWithdrawal {
	c := *w
	if w.UnstakeBatchId != nil {
		id := *w.UnstakeBatchId
		c.UnstakeBatchId = &id
	}
	return &c
}
