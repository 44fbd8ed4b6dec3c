package ledger

import (
	"fmt"
	"sort"

	"github.com/babylonchain/restaking-ledger-service/internal/types"
)

// StakingPool tracks the ledger's position in one external staking pool.
// Shares are the ledger's internal claim unit; total_staked_balance is the
// ledger's view of what the pool holds for it, net of amounts already
// queued for unstaking.
type StakingPool struct {
	PoolId             string       `json:"pool_id"`
	TotalShareBalance  types.Amount `json:"total_share_balance"`
	TotalStakedBalance types.Amount `json:"total_staked_balance"`
	Locked             bool         `json:"locked"`
	UnlockEpoch        uint64       `json:"unlock_epoch"`
	LastUnstakeEpoch   uint64       `json:"last_unstake_epoch"`

	CurrentUnstakeBatchId   uint64                            `json:"current_unstake_batch_id"`
	BatchedUnstakeAmount    types.Amount                      `json:"batched_unstake_amount"`
	LastUnstakeBatchId      *uint64                           `json:"last_unstake_batch_id,omitempty"`
	SubmittedUnstakeBatches map[uint64]*SubmittedUnstakeBatch `json:"submitted_unstake_batches"`
}

type SubmittedUnstakeBatch struct {
	BatchId       uint64       `json:"unstake_batch_id"`
	SubmitEpoch   uint64       `json:"submit_unstake_epoch"`
	TotalAmount   types.Amount `json:"total_unstake_amount"`
	ClaimedAmount types.Amount `json:"claimed_amount"`
	IsWithdrawn   bool         `json:"is_withdrawn"`
}

func NewStakingPool(poolId string) *StakingPool {
	return &StakingPool{
		PoolId:                  poolId,
		SubmittedUnstakeBatches: map[uint64]*SubmittedUnstakeBatch{},
	}
}

// ShareFromBalance converts an amount into shares at the current price.
// Increases round down and decreases round up, so the rounding never favours
// the staker. An empty pool converts 1:1.
func (p *StakingPool) ShareFromBalance(amount types.Amount, roundDown bool) (types.Amount, error) {
	if amount.IsZero() {
		return types.ZeroAmount(), nil
	}
	if p.TotalStakedBalance.IsZero() {
		return amount, nil
	}
	shares, err := p.TotalShareBalance.MulDiv(amount, p.TotalStakedBalance, !roundDown)
	if err != nil {
		return types.ZeroAmount(), fmt.Errorf("%w: %v", ErrInvariantViolation, err)
	}
	if shares.IsZero() {
		return types.ZeroAmount(), ErrZeroSharesComputed
	}
	return shares, nil
}

// BalanceFromShares converts shares back into an amount at the current price.
func (p *StakingPool) BalanceFromShares(shares types.Amount, roundDown bool) (types.Amount, error) {
	if p.TotalShareBalance.IsZero() {
		return shares, nil
	}
	balance, err := p.TotalStakedBalance.MulDiv(shares, p.TotalShareBalance, !roundDown)
	if err != nil {
		return types.ZeroAmount(), fmt.Errorf("%w: %v", ErrInvariantViolation, err)
	}
	return balance, nil
}

func (p *StakingPool) Lock() error {
	if p.Locked {
		return ErrAlreadyLocked
	}
	p.Locked = true
	return nil
}

// Unlock is idempotent.
func (p *StakingPool) Unlock() {
	p.Locked = false
}

// IsEmpty reports whether no share and no unstake batch is recorded on the pool.
func (p *StakingPool) IsEmpty() bool {
	return p.TotalShareBalance.IsZero() && p.BatchedUnstakeAmount.IsZero() && len(p.SubmittedUnstakeBatches) == 0
}

// RefreshStakedBalance stores the balance reported by the external pool.
// Amounts batched but not yet submitted are still held by the pool and are
// excluded, otherwise they would inflate the share price.
func (p *StakingPool) RefreshStakedBalance(reported types.Amount) {
	p.TotalStakedBalance = reported.SaturatingSub(p.BatchedUnstakeAmount)
}

// IncreaseStake credits newly minted shares and records the post-deposit balance.
func (p *StakingPool) IncreaseStake(shares, reported types.Amount) error {
	total, err := p.TotalShareBalance.Add(shares)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvariantViolation, err)
	}
	p.TotalShareBalance = total
	p.RefreshStakedBalance(reported)
	return nil
}

// DecreaseStake burns shares and removes their amount from the staked balance.
func (p *StakingPool) DecreaseStake(shares, amount types.Amount) error {
	totalShares, err := p.TotalShareBalance.Sub(shares)
	if err != nil {
		return fmt.Errorf("%w: burning %s of %s shares", ErrInvariantViolation, shares, p.TotalShareBalance)
	}
	totalStaked, err := p.TotalStakedBalance.Sub(amount)
	if err != nil {
		return fmt.Errorf("%w: removing %s of %s staked", ErrInvariantViolation, amount, p.TotalStakedBalance)
	}
	p.TotalShareBalance = totalShares
	p.TotalStakedBalance = totalStaked
	return nil
}

// RestoreStake reverts a DecreaseStake.
func (p *StakingPool) RestoreStake(shares, amount types.Amount) error {
	totalShares, err := p.TotalShareBalance.Add(shares)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvariantViolation, err)
	}
	totalStaked, err := p.TotalStakedBalance.Add(amount)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvariantViolation, err)
	}
	p.TotalShareBalance = totalShares
	p.TotalStakedBalance = totalStaked
	return nil
}

// BatchUnstake queues an amount into the open batch and returns its id.
func (p *StakingPool) BatchUnstake(amount types.Amount) (uint64, error) {
	batched, err := p.BatchedUnstakeAmount.Add(amount)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvariantViolation, err)
	}
	p.BatchedUnstakeAmount = batched
	return p.CurrentUnstakeBatchId, nil
}

// CancelBatchedUnstake reverts a BatchUnstake on the still open batch.
func (p *StakingPool) CancelBatchedUnstake(amount types.Amount) error {
	batched, err := p.BatchedUnstakeAmount.Sub(amount)
	if err != nil {
		return fmt.Errorf("%w: cancelling %s of %s batched", ErrInvariantViolation, amount, p.BatchedUnstakeAmount)
	}
	p.BatchedUnstakeAmount = batched
	return nil
}

// HasPendingUnstakeBatch reports whether the last submitted batch has not been withdrawn from the pool yet.
func (p *StakingPool) HasPendingUnstakeBatch() bool {
	if p.LastUnstakeBatchId == nil {
		return false
	}
	batch, ok := p.SubmittedUnstakeBatches[*p.LastUnstakeBatchId]
	return ok && !batch.IsWithdrawn
}

func (p *StakingPool) CanSubmitUnstakeBatch() error {
	if p.BatchedUnstakeAmount.IsZero() {
		return ErrNothingToUnstake
	}
	if p.HasPendingUnstakeBatch() {
		return ErrUnstakeBatchPending
	}
	return nil
}

// SubmitUnstakeBatch closes the open batch after the external unstake
// succeeded. The pool's funds unlock delay epochs later.
func (p *StakingPool) SubmitUnstakeBatch(epoch, delay uint64, reported types.Amount) (*SubmittedUnstakeBatch, error) {
	if err := p.CanSubmitUnstakeBatch(); err != nil {
		return nil, err
	}
	if p.SubmittedUnstakeBatches == nil {
		p.SubmittedUnstakeBatches = map[uint64]*SubmittedUnstakeBatch{}
	}
	batchId := p.CurrentUnstakeBatchId
	batch := &SubmittedUnstakeBatch{
		BatchId:     batchId,
		SubmitEpoch: epoch,
		TotalAmount: p.BatchedUnstakeAmount,
	}
	p.SubmittedUnstakeBatches[batchId] = batch
	p.LastUnstakeBatchId = &batchId
	p.CurrentUnstakeBatchId++
	p.BatchedUnstakeAmount = types.ZeroAmount()
	p.LastUnstakeEpoch = epoch
	p.UnlockEpoch = epoch + delay
	p.RefreshStakedBalance(reported)
	return batch, nil
}

func (p *StakingPool) GetUnstakeBatch(batchId uint64) (*SubmittedUnstakeBatch, error) {
	batch, ok := p.SubmittedUnstakeBatches[batchId]
	if !ok {
		return nil, ErrUnstakeBatchNotFound
	}
	return batch, nil
}

// IsUnstakeBatchWithdrawable reports whether the batch can be pulled out of the external pool.
func (p *StakingPool) IsUnstakeBatchWithdrawable(batchId, epoch, delay uint64) error {
	batch, err := p.GetUnstakeBatch(batchId)
	if err != nil {
		return err
	}
	if batch.IsWithdrawn || epoch < batch.SubmitEpoch+delay {
		return ErrNotWithdrawable
	}
	return nil
}

func (p *StakingPool) MarkUnstakeBatchWithdrawn(batchId uint64) error {
	batch, err := p.GetUnstakeBatch(batchId)
	if err != nil {
		return err
	}
	batch.IsWithdrawn = true
	return nil
}

// IsUnstakeBatchWithdrawn is false for batches not yet submitted.
func (p *StakingPool) IsUnstakeBatchWithdrawn(batchId uint64) bool {
	batch, ok := p.SubmittedUnstakeBatches[batchId]
	return ok && batch.IsWithdrawn
}

// WithdrawFromUnstakeBatch records a claim against a withdrawn batch and drops
// the batch once it is fully claimed.
func (p *StakingPool) WithdrawFromUnstakeBatch(amount types.Amount, batchId uint64) error {
	batch, err := p.GetUnstakeBatch(batchId)
	if err != nil {
		return err
	}
	if !batch.IsWithdrawn {
		return ErrNotWithdrawable
	}
	claimed, err := batch.ClaimedAmount.Add(amount)
	if err != nil || claimed.Gt(batch.TotalAmount) {
		return fmt.Errorf("%w: claiming %s from batch %d with %s of %s claimed",
			ErrInvariantViolation, amount, batchId, batch.ClaimedAmount, batch.TotalAmount)
	}
	batch.ClaimedAmount = claimed
	if claimed.Eq(batch.TotalAmount) {
		delete(p.SubmittedUnstakeBatches, batchId)
	}
	return nil
}

// IsWithdrawable reports whether unstaked funds not tied to a batch have unlocked.
func (p *StakingPool) IsWithdrawable(epoch uint64) bool {
	return epoch >= p.UnlockEpoch
}

// SubmittedUnstakeBatchIds returns batch ids in ascending order.
func (p *StakingPool) SubmittedUnstakeBatchIds() []uint64 {
	ids := make([]uint64, 0, len(p.SubmittedUnstakeBatches))
	for id := range p.SubmittedUnstakeBatches {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (p *StakingPool) Clone() *StakingPool {
	c := *p
	if p.LastUnstakeBatchId != nil {
		id := *p.LastUnstakeBatchId
		c.LastUnstakeBatchId = &id
	}
	c.SubmittedUnstakeBatches = make(map[uint64]*SubmittedUnstakeBatch, len(p.SubmittedUnstakeBatches))
	for id, batch := range p.SubmittedUnstakeBatches {
		b := *batch
		c.SubmittedUnstakeBatches[id] = &b
	}
	return &c
}
