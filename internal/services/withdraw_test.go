package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/babylonchain/restaking-ledger-service/internal/db"
	"github.com/babylonchain/restaking-ledger-service/internal/queue/client"
	"github.com/babylonchain/restaking-ledger-service/internal/types"
)

func TestWithdraw_AfterBatchWithdrawn(t *testing.T) {
	f := newFixture(t)
	f.seedPosition(testPool, 200, map[string]uint64{"alice": 100})
	f.wireRemotePool()

	decreased, apiErr := f.s.DecreaseStake(f.ctx, Invocation{Caller: "alice", Deposit: amount(1)}, amount(50), "")
	require.Nil(t, apiErr)
	certificate := *decreased.WithdrawalCertificate

	// the batch is not out of the pool yet
	result, apiErr := f.s.Withdraw(f.ctx, Invocation{Caller: "alice"}, "alice", certificate)
	assert.Nil(t, result)
	require.NotNil(t, apiErr)
	assert.Equal(t, types.NotWithdrawable, apiErr.ErrorCode)
	assert.False(t, f.stakingPool(testPool).Locked)

	_, apiErr = f.s.WithdrawUnstakeBatch(f.ctx, Invocation{Caller: "keeper"}, testPool, 0)
	require.NotNil(t, apiErr)
	assert.Equal(t, types.NotWithdrawable, apiErr.ErrorCode)

	f.clock.Advance(4 * time.Hour)
	batch, apiErr := f.s.WithdrawUnstakeBatch(f.ctx, Invocation{Caller: "keeper"}, testPool, 0)
	require.Nil(t, apiErr)
	assert.Equal(t, "50", batch.Amount.String())
	f.pool.AssertCalled(t, "Withdraw", mock.Anything, testPool, amount(50))

	f.bank.On("Transfer", mock.Anything, "alice", amount(50)).Return(nil).Once()
	result, apiErr = f.s.Withdraw(f.ctx, Invocation{Caller: "alice"}, "alice", certificate)
	require.Nil(t, apiErr)
	require.NotNil(t, result)
	assert.Equal(t, "50", result.Amount.String())
	// batch linked claims are paid from the withdrawn batch
	f.pool.AssertNumberOfCalls(t, "Withdraw", 1)

	_, err := f.db.FindPendingWithdrawal(f.ctx, certificate)
	assert.True(t, db.IsNotFoundError(err))
	pool := f.stakingPool(testPool)
	assert.Empty(t, pool.SubmittedUnstakeBatchIds())
	assert.False(t, pool.Locked)
	assert.Equal(t, []client.EventKind{
		client.DecreaseStakeEventKind, client.WithdrawUnstakeBatchEventKind, client.WithdrawEventKind,
	}, f.events.kinds())
}

func TestWithdraw_OnlyBeneficiaryUnlessAllowed(t *testing.T) {
	f := newFixture(t)
	f.seedPosition(testPool, 200, map[string]uint64{"alice": 100})
	f.wireRemotePool()

	decreased, apiErr := f.s.DecreaseStake(f.ctx, Invocation{Caller: "alice", Deposit: amount(1)}, amount(50), "carol")
	require.Nil(t, apiErr)

	result, apiErr := f.s.Withdraw(f.ctx, Invocation{Caller: "alice"}, "alice", *decreased.WithdrawalCertificate)
	assert.Nil(t, result)
	require.NotNil(t, apiErr)
	assert.Equal(t, types.Unauthorized, apiErr.ErrorCode)

	result, apiErr = f.s.Withdraw(f.ctx, Invocation{Caller: "carol"}, "bob", *decreased.WithdrawalCertificate)
	assert.Nil(t, result)
	require.NotNil(t, apiErr)
	assert.Equal(t, types.NotFound, apiErr.ErrorCode)
}

func TestWithdraw_TransferFailureKeepsCertificate(t *testing.T) {
	f := newFixture(t)
	f.seedPosition(testPool, 200, map[string]uint64{"alice": 100})
	f.wireRemotePool()
	decreased, apiErr := f.s.DecreaseStake(f.ctx, Invocation{Caller: "alice", Deposit: amount(1)}, amount(50), "")
	require.Nil(t, apiErr)
	f.clock.Advance(4 * time.Hour)
	_, apiErr = f.s.WithdrawUnstakeBatch(f.ctx, Invocation{Caller: "keeper"}, testPool, 0)
	require.Nil(t, apiErr)

	f.bank.On("Transfer", mock.Anything, "alice", amount(50)).
		Return(types.NewErrorWithMsg(502, types.InternalServiceError, "bank unavailable")).Once()
	result, apiErr := f.s.Withdraw(f.ctx, Invocation{Caller: "alice"}, "alice", *decreased.WithdrawalCertificate)
	assert.Nil(t, result)
	assert.Nil(t, apiErr)

	withdrawal, err := f.db.FindPendingWithdrawal(f.ctx, *decreased.WithdrawalCertificate)
	require.NoError(t, err)
	assert.Equal(t, "50", withdrawal.Amount.String())
	assert.False(t, f.stakingPool(testPool).Locked)
}

func TestSubmitUnstakeBatch(t *testing.T) {
	f := newFixture(t)
	f.seedPosition(testPool, 200, map[string]uint64{"alice": 100})
	f.wireRemotePool()

	_, apiErr := f.s.SubmitUnstakeBatch(f.ctx, Invocation{Caller: "keeper"}, testPool)
	require.NotNil(t, apiErr)
	assert.Equal(t, types.BadRequest, apiErr.ErrorCode)

	_, apiErr = f.s.DecreaseStake(f.ctx, Invocation{Caller: "alice", Deposit: amount(1)}, amount(50), "")
	require.Nil(t, apiErr)
	_, apiErr = f.s.DecreaseStake(f.ctx, Invocation{Caller: "alice", Deposit: amount(1)}, amount(30), "")
	require.Nil(t, apiErr)

	// batch 0 is still in the pool
	_, apiErr = f.s.SubmitUnstakeBatch(f.ctx, Invocation{Caller: "keeper"}, testPool)
	require.NotNil(t, apiErr)

	f.clock.Advance(4 * time.Hour)
	_, apiErr = f.s.WithdrawUnstakeBatch(f.ctx, Invocation{Caller: "keeper"}, testPool, 0)
	require.Nil(t, apiErr)
	result, apiErr := f.s.SubmitUnstakeBatch(f.ctx, Invocation{Caller: "keeper"}, testPool)
	require.Nil(t, apiErr)
	assert.Equal(t, uint64(1), result.BatchId)
	assert.Equal(t, "30", result.Amount.String())

	pool := f.stakingPool(testPool)
	assert.True(t, pool.BatchedUnstakeAmount.IsZero())
	assert.Equal(t, "120", pool.TotalStakedBalance.String())
	assert.Equal(t, "120", f.remote.get(testPool).String())
	f.assertShareInvariant(testPool, "alice")
}

func TestWithdraw_RetryAfterTransferFailureSkipsPool(t *testing.T) {
	f := newFixture(t)
	f.seedPosition(testPool, 100, map[string]uint64{"alice": 100})
	f.wireRemotePool()
	claim := f.seedWithdrawal("alice", testPool, 30)
	claim.UnlockTime = f.clock.Now()
	claim.UnlockEpoch = 0
	require.NoError(t, f.db.SavePendingWithdrawal(f.ctx, claim))

	f.bank.On("Transfer", mock.Anything, "alice", amount(30)).
		Return(types.NewErrorWithMsg(502, types.InternalServiceError, "bank unavailable")).Once()
	result, apiErr := f.s.Withdraw(f.ctx, Invocation{Caller: "alice"}, "alice", claim.WithdrawalCertificate)
	assert.Nil(t, result)
	assert.Nil(t, apiErr)

	stored, err := f.db.FindPendingWithdrawal(f.ctx, claim.WithdrawalCertificate)
	require.NoError(t, err)
	assert.True(t, stored.PoolWithdrawn)
	assert.False(t, f.stakingPool(testPool).Locked)

	f.bank.On("Transfer", mock.Anything, "alice", amount(30)).Return(nil).Once()
	result, apiErr = f.s.Withdraw(f.ctx, Invocation{Caller: "alice"}, "alice", claim.WithdrawalCertificate)
	require.Nil(t, apiErr)
	require.NotNil(t, result)
	assert.Equal(t, "30", result.Amount.String())
	// the funds left the pool on the first attempt
	f.pool.AssertNumberOfCalls(t, "Withdraw", 1)
	f.bank.AssertNumberOfCalls(t, "Transfer", 2)

	_, err = f.db.FindPendingWithdrawal(f.ctx, claim.WithdrawalCertificate)
	assert.True(t, db.IsNotFoundError(err))
}
