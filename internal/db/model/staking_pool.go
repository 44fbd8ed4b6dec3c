package model

import (
	"github.com/babylonchain/restaking-ledger-service/internal/ledger"
	"github.com/babylonchain/restaking-ledger-service/internal/types"
)

type UnstakeBatchDocument struct {
	BatchId       uint64       `bson:"unstake_batch_id"`
	SubmitEpoch   uint64       `bson:"submit_unstake_epoch"`
	TotalAmount   types.Amount `bson:"total_unstake_amount"`
	ClaimedAmount types.Amount `bson:"claimed_amount"`
	IsWithdrawn   bool         `bson:"is_withdrawn"`
}

type StakingPoolDocument struct {
	PoolId                  string                 `bson:"_id"`
	TotalShareBalance       types.Amount           `bson:"total_share_balance"`
	TotalStakedBalance      types.Amount           `bson:"total_staked_balance"`
	Locked                  bool                   `bson:"locked"`
	UnlockEpoch             uint64                 `bson:"unlock_epoch"`
	LastUnstakeEpoch        uint64                 `bson:"last_unstake_epoch"`
	CurrentUnstakeBatchId   uint64                 `bson:"current_unstake_batch_id"`
	BatchedUnstakeAmount    types.Amount           `bson:"batched_unstake_amount"`
	LastUnstakeBatchId      *uint64                `bson:"last_unstake_batch_id,omitempty"`
	SubmittedUnstakeBatches []UnstakeBatchDocument `bson:"submitted_unstake_batches"`
}

func NewStakingPoolDocument(pool *ledger.StakingPool) *StakingPoolDocument {
	batches := make([]UnstakeBatchDocument, 0, len(pool.SubmittedUnstakeBatches))
	for _, id := range pool.SubmittedUnstakeBatchIds() {
		b := pool.SubmittedUnstakeBatches[id]
		batches = append(batches, UnstakeBatchDocument{
			BatchId:       b.BatchId,
			SubmitEpoch:   b.SubmitEpoch,
			TotalAmount:   b.TotalAmount,
			ClaimedAmount: b.ClaimedAmount,
			IsWithdrawn:   b.IsWithdrawn,
		})
	}
	return &StakingPoolDocument{
		PoolId:                  pool.PoolId,
		TotalShareBalance:       pool.TotalShareBalance,
		TotalStakedBalance:      pool.TotalStakedBalance,
		Locked:                  pool.Locked,
		UnlockEpoch:             pool.UnlockEpoch,
		LastUnstakeEpoch:        pool.LastUnstakeEpoch,
		CurrentUnstakeBatchId:   pool.CurrentUnstakeBatchId,
		BatchedUnstakeAmount:    pool.BatchedUnstakeAmount,
		LastUnstakeBatchId:      pool.LastUnstakeBatchId,
		SubmittedUnstakeBatches: batches,
	}
}

func (d *StakingPoolDocument) ToStakingPool() *ledger.StakingPool {
	pool := ledger.NewStakingPool(d.PoolId)
	pool.TotalShareBalance = d.TotalShareBalance
	pool.TotalStakedBalance = d.TotalStakedBalance
	pool.Locked = d.Locked
	pool.UnlockEpoch = d.UnlockEpoch
	pool.LastUnstakeEpoch = d.LastUnstakeEpoch
	pool.CurrentUnstakeBatchId = d.CurrentUnstakeBatchId
	pool.BatchedUnstakeAmount = d.BatchedUnstakeAmount
	pool.LastUnstakeBatchId = d.LastUnstakeBatchId
	for _, b := range d.SubmittedUnstakeBatches {
		pool.SubmittedUnstakeBatches[b.BatchId] = &ledger.SubmittedUnstakeBatch{
			BatchId:       b.BatchId,
			SubmitEpoch:   b.SubmitEpoch,
			TotalAmount:   b.TotalAmount,
			ClaimedAmount: b.ClaimedAmount,
			IsWithdrawn:   b.IsWithdrawn,
		}
	}
	return pool
}
