package ledger

import "errors"

var (
	ErrAlreadyLocked         = errors.New("staking pool is locked by another operation")
	ErrZeroSharesComputed    = errors.New("conversion produced zero shares for a positive amount")
	ErrInsufficientShares    = errors.New("staker does not own enough shares")
	ErrInvariantViolation    = errors.New("ledger invariant violated")
	ErrUnbondingInProgress   = errors.New("staker is still unbonding")
	ErrAlreadyBonded         = errors.New("staker is already bonded to the consumer chain")
	ErrNotBonded             = errors.New("staker is not bonded to the consumer chain")
	ErrBlacklisted           = errors.New("staker is blacklisted by the consumer chain")
	ErrChainNotActive        = errors.New("consumer chain is not active")
	ErrInvalidConsumerChain  = errors.New("invalid consumer chain id")
	ErrUnauthorized          = errors.New("caller is not authorized")
	ErrPoolSelectionRejected = errors.New("staker cannot select this staking pool")
	ErrNoPoolSelected        = errors.New("staker has not selected a staking pool")
	ErrNotWithdrawable       = errors.New("pending withdrawal is not withdrawable yet")
	ErrUnstakeBatchNotFound  = errors.New("unstake batch not found")
	ErrUnstakeBatchPending   = errors.New("a submitted unstake batch is awaiting settlement")
	ErrNothingToUnstake      = errors.New("no batched unstake amount to submit")
)
