package model

import (
	"time"

	"github.com/babylonchain/restaking-ledger-service/internal/ledger"
	"github.com/babylonchain/restaking-ledger-service/internal/types"
)

type PendingWithdrawalDocument struct {
	WithdrawalCertificate uint64       `bson:"_id"`
	Owner                 string       `bson:"owner"`
	PoolId                string       `bson:"pool_id"`
	Amount                types.Amount `bson:"amount"`
	UnlockEpoch           uint64       `bson:"unlock_epoch"`
	UnlockTime            time.Time    `bson:"unlock_time"`
	Beneficiary           string       `bson:"beneficiary"`
	AllowOtherWithdraw    bool         `bson:"allow_other_withdraw"`
	UnstakeBatchId        *uint64      `bson:"unstake_batch_id,omitempty"`
	PoolWithdrawn         bool         `bson:"pool_withdrawn"`
}

func NewPendingWithdrawalDocument(w *ledger.PendingWithdrawal) *PendingWithdrawalDocument {
	return &PendingWithdrawalDocument{
		WithdrawalCertificate: w.WithdrawalCertificate,
		Owner:                 w.Owner,
		PoolId:                w.PoolId,
		Amount:                w.Amount,
		UnlockEpoch:           w.UnlockEpoch,
		UnlockTime:            w.UnlockTime,
		Beneficiary:           w.Beneficiary,
		AllowOtherWithdraw:    w.AllowOtherWithdraw,
		UnstakeBatchId:        w.UnstakeBatchId,
		PoolWithdrawn:         w.PoolWithdrawn,
	}
}

func (d *PendingWithdrawalDocument) ToPendingWithdrawal() *ledger.PendingWithdrawal {
	return &ledger.PendingWithdrawal{
		WithdrawalCertificate: d.WithdrawalCertificate,
		Owner:                 d.Owner,
		PoolId:                d.PoolId,
		Amount:                d.Amount,
		UnlockEpoch:           d.UnlockEpoch,
		UnlockTime:            d.UnlockTime,
		Beneficiary:           d.Beneficiary,
		AllowOtherWithdraw:    d.AllowOtherWithdraw,
		UnstakeBatchId:        d.UnstakeBatchId,
		PoolWithdrawn:         d.PoolWithdrawn,
	}
}
