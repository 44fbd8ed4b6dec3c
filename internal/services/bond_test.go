package services

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/babylonchain/restaking-ledger-service/internal/ledger"
	"github.com/babylonchain/restaking-ledger-service/internal/queue/client"
	"github.com/babylonchain/restaking-ledger-service/internal/types"
)

func TestBond(t *testing.T) {
	f := newFixture(t)
	f.seedPosition(testPool, 100, map[string]uint64{"alice": 100})
	f.seedChain(3 * time.Hour)
	f.pos.On("Bond", mock.Anything, testPos, "alice", "key-1").Return(true, nil).Once()

	result, err := f.s.Bond(f.ctx, Invocation{Caller: "alice", Deposit: amount(1)}, testChain, "key-1")
	require.Nil(t, err)
	require.NotNil(t, result)

	staker := f.staker("alice")
	assert.True(t, staker.IsBonding(testChain))
	assert.Equal(t, 3*time.Hour, staker.MaxBondingUnlockPeriod)
	chain, dbErr := f.db.FindConsumerChain(f.ctx, testChain)
	require.NoError(t, dbErr)
	assert.Equal(t, []string{"alice"}, chain.BondingStakers)
	assert.Equal(t, []client.EventKind{client.BondEventKind}, f.events.kinds())

	// a second bonding to the same chain is refused before any call
	_, err = f.s.Bond(f.ctx, Invocation{Caller: "alice", Deposit: amount(1)}, testChain, "key-1")
	require.NotNil(t, err)
	assert.Equal(t, http.StatusConflict, err.StatusCode)
}

func TestBond_RefusedWhileUnbonding(t *testing.T) {
	f := newFixture(t)
	f.seedPosition(testPool, 100, map[string]uint64{"alice": 100})
	f.seedChain(time.Hour)
	staker := f.staker("alice")
	staker.UnbondingUnlockTime = f.clock.Now().Add(time.Minute)
	require.NoError(t, f.db.SaveStaker(f.ctx, staker))

	result, err := f.s.Bond(f.ctx, Invocation{Caller: "alice", Deposit: amount(1)}, testChain, "key-1")
	assert.Nil(t, result)
	require.NotNil(t, err)
	assert.Equal(t, types.UnbondingInProgress, err.ErrorCode)

	// once the unlock time has passed the gate opens
	f.clock.Advance(time.Minute)
	f.pos.On("Bond", mock.Anything, testPos, "alice", "key-1").Return(true, nil).Once()
	result, err = f.s.Bond(f.ctx, Invocation{Caller: "alice", Deposit: amount(1)}, testChain, "key-1")
	require.Nil(t, err)
	require.NotNil(t, result)
}

func TestBond_PositionModuleRefusal(t *testing.T) {
	f := newFixture(t)
	f.seedPosition(testPool, 100, map[string]uint64{"alice": 100})
	f.seedChain(time.Hour)
	f.pos.On("Bond", mock.Anything, testPos, "alice", "key-1").Return(false, nil).Once()

	result, err := f.s.Bond(f.ctx, Invocation{Caller: "alice", Deposit: amount(1)}, testChain, "key-1")
	assert.Nil(t, result)
	assert.Nil(t, err)
	assert.False(t, f.staker("alice").IsBonding(testChain))
	assert.Equal(t, []client.EventKind{client.CallbackFailedEventKind}, f.events.kinds())
}

func TestBond_Blacklisted(t *testing.T) {
	f := newFixture(t)
	f.seedPosition(testPool, 100, map[string]uint64{"alice": 100})
	f.seedChain(time.Hour)

	_, err := f.s.Blackout(f.ctx, Invocation{Caller: "alice"}, testChain, "alice")
	require.NotNil(t, err)
	assert.Equal(t, types.Unauthorized, err.ErrorCode)

	_, err = f.s.Blackout(f.ctx, Invocation{Caller: testPos}, testChain, "alice")
	require.Nil(t, err)

	result, err := f.s.Bond(f.ctx, Invocation{Caller: "alice", Deposit: amount(1)}, testChain, "key-1")
	assert.Nil(t, result)
	require.NotNil(t, err)
	assert.Equal(t, types.Blacklisted, err.ErrorCode)
}

func TestChangeKeyAndUnbond(t *testing.T) {
	f := newFixture(t)
	f.seedPosition(testPool, 100, map[string]uint64{"alice": 100})
	f.seedChain(2*time.Hour, "alice")
	f.pos.On("ChangeKey", mock.Anything, testPos, "alice", "key-2").Return(true, nil).Once()

	_, err := f.s.ChangeKey(f.ctx, Invocation{Caller: "alice", Deposit: amount(1)}, testChain, "key-2")
	require.Nil(t, err)

	_, err = f.s.Unbond(f.ctx, Invocation{Caller: "alice", Deposit: amount(1)}, testChain)
	require.Nil(t, err)
	staker := f.staker("alice")
	assert.False(t, staker.IsBonding(testChain))
	assert.Equal(t, f.clock.Now().Add(2*time.Hour), staker.UnbondingUnlockTime)

	_, err = f.s.Unbond(f.ctx, Invocation{Caller: "alice", Deposit: amount(1)}, testChain)
	require.NotNil(t, err)
	_, err = f.s.ChangeKey(f.ctx, Invocation{Caller: "alice", Deposit: amount(1)}, testChain, "key-3")
	require.NotNil(t, err)
	assert.Equal(t, []client.EventKind{client.ChangeKeyEventKind, client.UnbondEventKind}, f.events.kinds())
}

func TestRegisterConsumerChain(t *testing.T) {
	f := newFixture(t)
	param := ledger.ConsumerChainRegisterParam{
		ConsumerChainId: testChain,
		UnbondPeriod:    time.Hour,
		Treasury:        testTreasury,
		PosAccountId:    testPos,
	}

	_, err := f.s.RegisterConsumerChain(f.ctx, Invocation{Caller: testGov, Deposit: amount(999)}, param)
	require.NotNil(t, err)
	assert.Equal(t, types.InvalidDeposit, err.ErrorCode)

	result, err := f.s.RegisterConsumerChain(f.ctx, Invocation{Caller: testGov, Deposit: amount(1000)}, param)
	require.Nil(t, err)
	assert.Equal(t, testGov, result.ConsumerChain.Governance)
	assert.True(t, result.ConsumerChain.IsActive())

	_, err = f.s.RegisterConsumerChain(f.ctx, Invocation{Caller: testGov, Deposit: amount(1000)}, param)
	require.NotNil(t, err)
	assert.Equal(t, http.StatusConflict, err.StatusCode)

	param.ConsumerChainId = "not a chain id"
	_, err = f.s.RegisterConsumerChain(f.ctx, Invocation{Caller: testGov, Deposit: amount(1000)}, param)
	require.NotNil(t, err)
	assert.Equal(t, types.ValidationError, err.ErrorCode)
}

func TestUpdateConsumerChain_PropagatesUnbondPeriod(t *testing.T) {
	f := newFixture(t)
	f.seedPosition(testPool, 100, map[string]uint64{"alice": 60, "bob": 40})
	f.seedChain(time.Hour, "alice", "bob")
	longer := 3 * time.Hour
	website := "https://chain-a.example"

	_, err := f.s.UpdateConsumerChain(f.ctx, Invocation{Caller: "alice", Deposit: amount(1)}, testChain,
		ledger.ConsumerChainUpdateParam{UnbondPeriod: &longer})
	require.NotNil(t, err)
	assert.Equal(t, types.Unauthorized, err.ErrorCode)

	result, err := f.s.UpdateConsumerChain(f.ctx, Invocation{Caller: testGov, Deposit: amount(1)}, testChain,
		ledger.ConsumerChainUpdateParam{UnbondPeriod: &longer, Website: &website})
	require.Nil(t, err)
	assert.Equal(t, longer, result.ConsumerChain.UnbondPeriod)
	assert.Equal(t, website, result.ConsumerChain.Website)

	for _, id := range []string{"alice", "bob"} {
		staker := f.staker(id)
		assert.Equal(t, longer, staker.BondingConsumerChains[testChain])
		assert.Equal(t, longer, staker.MaxBondingUnlockPeriod)
	}
}

func TestDeregisterConsumerChain(t *testing.T) {
	f := newFixture(t)
	f.seedPosition(testPool, 100, map[string]uint64{"alice": 100})
	f.seedChain(time.Hour, "alice")

	result, err := f.s.DeregisterConsumerChain(f.ctx, Invocation{Caller: testGov, Deposit: amount(1)}, testChain)
	require.Nil(t, err)
	assert.Equal(t, types.Deregistered, result.ConsumerChain.Status)
	assert.Equal(t, []string{"alice"}, result.ConsumerChain.BondingStakers)

	_, err = f.s.DeregisterConsumerChain(f.ctx, Invocation{Caller: testGov, Deposit: amount(1)}, testChain)
	require.NotNil(t, err)
	assert.Equal(t, types.ChainNotActive, err.ErrorCode)

	// stakers can still leave a deregistered chain
	_, err = f.s.Unbond(f.ctx, Invocation{Caller: "alice", Deposit: amount(1)}, testChain)
	require.Nil(t, err)
}
