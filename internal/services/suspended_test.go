package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/babylonchain/restaking-ledger-service/internal/db"
	"github.com/babylonchain/restaking-ledger-service/internal/ledger"
	"github.com/babylonchain/restaking-ledger-service/internal/types"
)

const otherPool = "pool-b.test"

// suspendUnstake parks the next unstake call on poolId until release is
// closed, then answers with failure or moves the remote balance. Call it
// before wireRemotePool.
func (f *fixture) suspendUnstake(poolId string, failure *types.Error) (entered, release chan struct{}) {
	entered = make(chan struct{})
	release = make(chan struct{})
	f.pool.On("Unstake", mock.Anything, poolId, mock.Anything).Return(
		func(_ context.Context, poolId string, value types.Amount) *types.Error {
			close(entered)
			<-release
			if failure != nil {
				return failure
			}
			f.remote.set(poolId, f.remote.get(poolId).SaturatingSub(value))
			return nil
		},
	).Once()
	return entered, release
}

func (f *fixture) await(done <-chan *types.Error) *types.Error {
	select {
	case err := <-done:
		return err
	case <-time.After(5 * time.Second):
		f.t.Fatal("suspended workflow did not finish")
		return nil
	}
}

func poolUnavailable() *types.Error {
	return types.NewErrorWithMsg(http.StatusBadGateway, types.InternalServiceError, "pool unavailable")
}

func TestSuspendedUnstake_StakeElsewhereIsRefused(t *testing.T) {
	f := newFixture(t)
	f.seedPosition(testPool, 100, map[string]uint64{"alice": 100})
	entered, release := f.suspendUnstake(testPool, poolUnavailable())
	f.wireRemotePool()

	done := make(chan *types.Error, 1)
	go func() {
		_, err := f.s.Unstake(f.ctx, Invocation{Caller: "alice", Deposit: amount(1)}, "", false)
		done <- err
	}()
	<-entered

	// alice holds no shares while the unstake is out, but they may come back
	result, err := f.s.Stake(f.ctx, Invocation{Caller: "alice", Deposit: amount(50)}, otherPool)
	assert.Nil(t, result)
	require.NotNil(t, err)
	assert.Equal(t, types.AlreadyLocked, err.ErrorCode)
	assert.Equal(t, http.StatusConflict, err.StatusCode)
	f.whitelist.AssertNotCalled(t, "IsWhitelisted", mock.Anything, mock.Anything)
	f.bank.AssertNotCalled(t, "Transfer", mock.Anything, mock.Anything, mock.Anything)

	close(release)
	assert.Nil(t, f.await(done))

	staker := f.staker("alice")
	assert.Equal(t, testPool, staker.SelectStakingPool)
	assert.Equal(t, "100", staker.Shares.String())
	pool := f.stakingPool(testPool)
	assert.False(t, pool.Locked)
	assert.True(t, pool.BatchedUnstakeAmount.IsZero())
	f.assertShareInvariant(testPool, "alice")
	_, dbErr := f.db.FindStakingPool(f.ctx, otherPool)
	assert.True(t, db.IsNotFoundError(dbErr))
}

func TestSuspendedUnstake_StakeElsewhereAfterSettle(t *testing.T) {
	f := newFixture(t)
	f.seedPosition(testPool, 100, map[string]uint64{"alice": 100})
	entered, release := f.suspendUnstake(testPool, nil)
	f.wireRemotePool()

	done := make(chan *types.Error, 1)
	go func() {
		_, err := f.s.Unstake(f.ctx, Invocation{Caller: "alice", Deposit: amount(1)}, "", false)
		done <- err
	}()
	<-entered

	_, err := f.s.Stake(f.ctx, Invocation{Caller: "alice", Deposit: amount(40)}, otherPool)
	require.NotNil(t, err)
	assert.Equal(t, types.AlreadyLocked, err.ErrorCode)

	close(release)
	assert.Nil(t, f.await(done))
	f.assertShareInvariant(testPool, "alice")

	f.whitelist.On("IsWhitelisted", mock.Anything, otherPool).Return(true, nil).Once()
	result, err := f.s.Stake(f.ctx, Invocation{Caller: "alice", Deposit: amount(40)}, otherPool)
	require.Nil(t, err)
	require.NotNil(t, result)

	staker := f.staker("alice")
	assert.Equal(t, otherPool, staker.SelectStakingPool)
	assert.Equal(t, "40", staker.Shares.String())
	assert.True(t, f.stakingPool(testPool).TotalShareBalance.IsZero())
	f.assertShareInvariant(testPool, "alice")
	f.assertShareInvariant(otherPool, "alice")
}

func TestSuspendedDecrease_SharesNotRestoredOnAnotherPool(t *testing.T) {
	f := newFixture(t)
	f.seedPosition(testPool, 100, map[string]uint64{"alice": 100})
	f.seedPosition(otherPool, 0, nil)
	entered, release := f.suspendUnstake(testPool, poolUnavailable())
	f.wireRemotePool()

	done := make(chan *types.Error, 1)
	go func() {
		_, err := f.s.DecreaseStake(f.ctx, Invocation{Caller: "alice", Deposit: amount(1)}, amount(100), "")
		done <- err
	}()
	<-entered

	// moved by a write the ledger did not order behind the lock
	staker := f.staker("alice")
	staker.SelectStakingPool = otherPool
	require.NoError(t, f.db.SaveStaker(f.ctx, staker))

	close(release)
	assert.Nil(t, f.await(done))

	staker = f.staker("alice")
	assert.Equal(t, otherPool, staker.SelectStakingPool)
	assert.True(t, staker.Shares.IsZero())
	assert.False(t, f.stakingPool(testPool).Locked)
	f.assertShareInvariant(testPool, "alice")
	f.assertShareInvariant(otherPool, "alice")
}

func TestSuspendedDecrease_WithdrawOnLockedAndIdlePool(t *testing.T) {
	f := newFixture(t)
	f.seedPosition(testPool, 100, map[string]uint64{"alice": 100})
	f.seedPosition(otherPool, 0, nil)
	unlocked := func(claimOwner, poolId string, value uint64) uint64 {
		claim := f.seedWithdrawal(claimOwner, poolId, value)
		claim.UnlockTime = f.clock.Now()
		claim.UnlockEpoch = 0
		require.NoError(t, f.db.SavePendingWithdrawal(f.ctx, claim))
		return claim.WithdrawalCertificate
	}
	aliceClaim := unlocked("alice", testPool, 20)
	bobClaim := unlocked("bob", otherPool, 10)
	entered, release := f.suspendUnstake(testPool, nil)
	f.wireRemotePool()

	done := make(chan *types.Error, 1)
	go func() {
		_, err := f.s.DecreaseStake(f.ctx, Invocation{Caller: "alice", Deposit: amount(1)}, amount(50), "")
		done <- err
	}()
	<-entered

	result, err := f.s.Withdraw(f.ctx, Invocation{Caller: "alice"}, "alice", aliceClaim)
	assert.Nil(t, result)
	require.NotNil(t, err)
	assert.Equal(t, types.AlreadyLocked, err.ErrorCode)
	_, dbErr := f.db.FindPendingWithdrawal(f.ctx, aliceClaim)
	require.NoError(t, dbErr)
	f.bank.AssertNotCalled(t, "Transfer", mock.Anything, "alice", mock.Anything)

	f.bank.On("Transfer", mock.Anything, "bob", amount(10)).Return(nil).Once()
	result, err = f.s.Withdraw(f.ctx, Invocation{Caller: "bob"}, "bob", bobClaim)
	require.Nil(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "10", result.Amount.String())

	close(release)
	assert.Nil(t, f.await(done))
	assert.Equal(t, "50", f.staker("alice").Shares.String())
	f.assertShareInvariant(testPool, "alice")
	f.assertShareInvariant(otherPool, "alice")

	// the submitted batch pushed the pool's unlock epoch out
	f.clock.Advance(4 * time.Hour)
	f.bank.On("Transfer", mock.Anything, "alice", amount(20)).Return(nil).Once()
	result, err = f.s.Withdraw(f.ctx, Invocation{Caller: "alice"}, "alice", aliceClaim)
	require.Nil(t, err)
	require.NotNil(t, result)
	assert.False(t, f.stakingPool(testPool).Locked)
}

func TestSuspendedDecrease_SlashWaitsForPool(t *testing.T) {
	f := newFixture(t)
	f.seedPosition(testPool, 100, map[string]uint64{"alice": 100})
	f.seedChain(time.Hour, "alice")
	slash := f.requestSlash(ledger.SlashItem{StakerId: "alice", Amount: amount(30)})
	entered, release := f.suspendUnstake(testPool, nil)
	f.wireRemotePool()

	done := make(chan *types.Error, 1)
	go func() {
		_, err := f.s.DecreaseStake(f.ctx, Invocation{Caller: "alice", Deposit: amount(1)}, amount(50), "")
		done <- err
	}()
	<-entered

	result, err := f.s.ResolveSlash(f.ctx, Invocation{Caller: testGov, Deposit: amount(1)}, testChain, slash.SlashId, true)
	assert.Nil(t, result)
	require.NotNil(t, err)
	assert.Equal(t, types.AlreadyLocked, err.ErrorCode)
	_, dbErr := f.db.FindSlash(f.ctx, slash.SlashId)
	require.NoError(t, dbErr)
	f.bank.AssertNotCalled(t, "Transfer", mock.Anything, mock.Anything, mock.Anything)
	assert.Equal(t, "50", f.staker("alice").Shares.String())

	close(release)
	assert.Nil(t, f.await(done))
	f.assertShareInvariant(testPool, "alice")

	f.bank.On("Transfer", mock.Anything, testPos, amount(500)).Return(nil).Once()
	result, err = f.s.ResolveSlash(f.ctx, Invocation{Caller: testGov, Deposit: amount(1)}, testChain, slash.SlashId, true)
	require.Nil(t, err)
	require.NotNil(t, result)
	// the claim minted by the decrease absorbs the slash
	require.Len(t, result.Withdrawals, 1)
	assert.Equal(t, "30", result.Withdrawals[0].Amount.String())
	assert.Equal(t, "50", f.staker("alice").Shares.String())
	f.assertShareInvariant(testPool, "alice")
}

func TestSuspendedDecrease_BondProceeds(t *testing.T) {
	f := newFixture(t)
	f.seedPosition(testPool, 100, map[string]uint64{"alice": 50, "bob": 50})
	f.seedChain(time.Hour)
	entered, release := f.suspendUnstake(testPool, nil)
	f.wireRemotePool()

	done := make(chan *types.Error, 1)
	go func() {
		_, err := f.s.DecreaseStake(f.ctx, Invocation{Caller: "alice", Deposit: amount(1)}, amount(20), "")
		done <- err
	}()
	<-entered

	f.pos.On("Bond", mock.Anything, testPos, "bob", "key-1").Return(true, nil).Once()
	result, err := f.s.Bond(f.ctx, Invocation{Caller: "bob", Deposit: amount(1)}, testChain, "key-1")
	require.Nil(t, err)
	require.NotNil(t, result)

	close(release)
	assert.Nil(t, f.await(done))

	assert.True(t, f.staker("bob").IsBonding(testChain))
	assert.Equal(t, "30", f.staker("alice").Shares.String())
	assert.Equal(t, "50", f.staker("bob").Shares.String())
	f.assertShareInvariant(testPool, "alice", "bob")
}
