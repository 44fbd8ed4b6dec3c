package services

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/babylonchain/restaking-ledger-service/internal/db"
	"github.com/babylonchain/restaking-ledger-service/internal/db/model"
	"github.com/babylonchain/restaking-ledger-service/internal/ledger"
	"github.com/babylonchain/restaking-ledger-service/internal/queue/client"
	"github.com/babylonchain/restaking-ledger-service/internal/types"
)

// seedWithdrawal stores a claim owned by stakerId that is not tied to a batch.
func (f *fixture) seedWithdrawal(stakerId, poolId string, value uint64) *ledger.PendingWithdrawal {
	certificate, err := f.db.NextCounterValue(f.ctx, model.WithdrawalCertificateCounter)
	require.NoError(f.t, err)
	withdrawal := &ledger.PendingWithdrawal{
		WithdrawalCertificate: certificate,
		Owner:                 stakerId,
		PoolId:                poolId,
		Amount:                amount(value),
		UnlockEpoch:           14,
		UnlockTime:            f.clock.Now().Add(time.Hour),
		Beneficiary:           stakerId,
	}
	require.NoError(f.t, f.db.InsertPendingWithdrawal(f.ctx, withdrawal))
	return withdrawal
}

func (f *fixture) requestSlash(items ...ledger.SlashItem) *ledger.Slash {
	result, err := f.s.SlashRequest(f.ctx, Invocation{Caller: testPos, Deposit: amount(500)}, testChain, items, "abcd")
	require.Nil(f.t, err)
	require.NotNil(f.t, result)
	return result.Slash
}

func TestSlash_PendingWithdrawalsFirstThenShares(t *testing.T) {
	f := newFixture(t)
	f.seedPosition(testPool, 50, map[string]uint64{"alice": 50})
	f.seedChain(time.Hour, "alice")
	pending := f.seedWithdrawal("alice", testPool, 20)
	slash := f.requestSlash(ledger.SlashItem{StakerId: "alice", Amount: amount(30)})
	f.bank.On("Transfer", mock.Anything, testPos, amount(500)).Return(nil).Once()

	result, err := f.s.ResolveSlash(f.ctx, Invocation{Caller: testGov, Deposit: amount(1)}, testChain, slash.SlashId, true)
	require.Nil(t, err)
	require.NotNil(t, result)
	require.Len(t, result.Withdrawals, 2)

	redirected := result.Withdrawals[0]
	assert.Equal(t, "20", redirected.Amount.String())
	assert.Equal(t, testTreasury, redirected.Owner)
	assert.Equal(t, testTreasury, redirected.Beneficiary)
	assert.True(t, redirected.AllowOtherWithdraw)
	assert.Equal(t, f.clock.Now(), redirected.UnlockTime)
	_, dbErr := f.db.FindPendingWithdrawal(f.ctx, pending.WithdrawalCertificate)
	assert.True(t, db.IsNotFoundError(dbErr))

	fromShares := result.Withdrawals[1]
	assert.Equal(t, "10", fromShares.Amount.String())
	assert.Equal(t, testTreasury, fromShares.Beneficiary)
	require.NotNil(t, fromShares.UnstakeBatchId)
	assert.Equal(t, uint64(0), *fromShares.UnstakeBatchId)
	// alice stays bonded, her claim waits for the chain's unbond period
	assert.Equal(t, f.clock.Now().Add(time.Hour), fromShares.UnlockTime)

	assert.Equal(t, "40", f.staker("alice").Shares.String())
	pool := f.stakingPool(testPool)
	assert.Equal(t, "40", pool.TotalStakedBalance.String())
	assert.Equal(t, "10", pool.BatchedUnstakeAmount.String())
	f.assertShareInvariant(testPool, "alice")

	_, dbErr = f.db.FindSlash(f.ctx, slash.SlashId)
	assert.True(t, db.IsNotFoundError(dbErr))
	assert.Equal(t, []client.EventKind{client.RequestSlashEventKind, client.SlashEventKind}, f.events.kinds())
}

func TestSlash_PartialPendingWithdrawal(t *testing.T) {
	f := newFixture(t)
	f.seedPosition(testPool, 50, map[string]uint64{"alice": 50})
	f.seedChain(time.Hour, "alice")
	pending := f.seedWithdrawal("alice", testPool, 20)
	slash := f.requestSlash(ledger.SlashItem{StakerId: "alice", Amount: amount(15)})
	f.bank.On("Transfer", mock.Anything, testPos, amount(500)).Return(nil).Once()

	result, err := f.s.ResolveSlash(f.ctx, Invocation{Caller: testGov, Deposit: amount(1)}, testChain, slash.SlashId, true)
	require.Nil(t, err)
	require.Len(t, result.Withdrawals, 1)

	left, dbErr := f.db.FindPendingWithdrawal(f.ctx, pending.WithdrawalCertificate)
	require.NoError(t, dbErr)
	assert.Equal(t, "5", left.Amount.String())
	assert.Equal(t, "50", f.staker("alice").Shares.String())
	assert.True(t, f.stakingPool(testPool).BatchedUnstakeAmount.IsZero())
}

func TestSlash_RejectRefundsGuarantee(t *testing.T) {
	f := newFixture(t)
	f.seedPosition(testPool, 50, map[string]uint64{"alice": 50})
	f.seedChain(time.Hour, "alice")
	slash := f.requestSlash(ledger.SlashItem{StakerId: "alice", Amount: amount(30)})
	f.bank.On("Transfer", mock.Anything, testPos, amount(500)).Return(nil).Once()

	_, err := f.s.ResolveSlash(f.ctx, Invocation{Caller: testPos, Deposit: amount(1)}, testChain, slash.SlashId, false)
	require.NotNil(t, err)
	assert.Equal(t, types.Unauthorized, err.ErrorCode)

	result, err := f.s.ResolveSlash(f.ctx, Invocation{Caller: testGov, Deposit: amount(1)}, testChain, slash.SlashId, false)
	require.Nil(t, err)
	assert.Empty(t, result.Withdrawals)
	assert.Equal(t, "50", f.staker("alice").Shares.String())
	_, dbErr := f.db.FindSlash(f.ctx, slash.SlashId)
	assert.True(t, db.IsNotFoundError(dbErr))
}

func TestSlash_LockedPoolIsRefused(t *testing.T) {
	f := newFixture(t)
	f.seedPosition(testPool, 50, map[string]uint64{"alice": 50})
	f.seedChain(time.Hour, "alice")
	slash := f.requestSlash(ledger.SlashItem{StakerId: "alice", Amount: amount(30)})
	pool := f.stakingPool(testPool)
	require.NoError(t, pool.Lock())
	require.NoError(t, f.db.SaveStakingPool(f.ctx, pool))

	result, err := f.s.ResolveSlash(f.ctx, Invocation{Caller: testGov, Deposit: amount(1)}, testChain, slash.SlashId, true)
	assert.Nil(t, result)
	require.NotNil(t, err)
	assert.Equal(t, types.AlreadyLocked, err.ErrorCode)
	assert.Equal(t, http.StatusConflict, err.StatusCode)

	// nothing was applied and the slash is still pending
	_, dbErr := f.db.FindSlash(f.ctx, slash.SlashId)
	require.NoError(t, dbErr)
	assert.Equal(t, "50", f.staker("alice").Shares.String())
	f.bank.AssertNotCalled(t, "Transfer", mock.Anything, mock.Anything, mock.Anything)
}

func TestSlashRequest_Validation(t *testing.T) {
	f := newFixture(t)
	f.seedPosition(testPool, 100, map[string]uint64{"alice": 50, "bob": 50})
	f.seedChain(time.Hour, "alice")
	items := []ledger.SlashItem{{StakerId: "alice", Amount: amount(10)}}

	_, err := f.s.SlashRequest(f.ctx, Invocation{Caller: testPos, Deposit: amount(1)}, testChain, items, "abcd")
	require.NotNil(t, err)
	assert.Equal(t, types.InvalidDeposit, err.ErrorCode)

	_, err = f.s.SlashRequest(f.ctx, Invocation{Caller: testGov, Deposit: amount(500)}, testChain, items, "abcd")
	require.NotNil(t, err)
	assert.Equal(t, types.Unauthorized, err.ErrorCode)

	_, err = f.s.SlashRequest(f.ctx, Invocation{Caller: testPos, Deposit: amount(500)}, testChain,
		[]ledger.SlashItem{{StakerId: "bob", Amount: amount(10)}}, "abcd")
	require.NotNil(t, err)
	assert.Equal(t, http.StatusBadRequest, err.StatusCode)

	_, err = f.s.SlashRequest(f.ctx, Invocation{Caller: testPos, Deposit: amount(500)}, testChain, nil, "abcd")
	require.NotNil(t, err)
	assert.Equal(t, types.ValidationError, err.ErrorCode)

	// rejected requests do not consume slash ids
	slash := f.requestSlash(items...)
	assert.Equal(t, uint64(1), slash.SlashId)

	_, err = f.s.ResolveSlash(f.ctx, Invocation{Caller: testGov, Deposit: amount(1)}, "cosmos:chain-b", slash.SlashId, true)
	require.NotNil(t, err)
	assert.Equal(t, types.NotFound, err.ErrorCode)
}
