package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetValidatorSet(t *testing.T) {
	f := newFixture(t)
	f.seedPosition(testPool, 400, map[string]uint64{"alice": 100, "carol": 300})
	f.seedPosition("pool-b.test", 300, map[string]uint64{"bob": 100})
	f.seedChain(time.Hour, "alice", "bob", "carol")

	set, err := f.s.GetValidatorSet(f.ctx, testChain, -1)
	require.Nil(t, err)
	require.Len(t, set.ValidatorSet, 3)
	// bob and carol tie at 300, ordered by id
	assert.Equal(t, "bob", set.ValidatorSet[0].StakerId)
	assert.Equal(t, "300", set.ValidatorSet[0].StakedBalance.String())
	assert.Equal(t, "carol", set.ValidatorSet[1].StakerId)
	assert.Equal(t, "alice", set.ValidatorSet[2].StakerId)
	assert.Equal(t, "100", set.ValidatorSet[2].StakedBalance.String())
	assert.Zero(t, set.Sequence)

	_, apiErr := f.s.Unbond(f.ctx, Invocation{Caller: "carol", Deposit: amount(1)}, testChain)
	require.Nil(t, apiErr)

	set, err = f.s.GetValidatorSet(f.ctx, testChain, 1)
	require.Nil(t, err)
	require.Len(t, set.ValidatorSet, 1)
	assert.Equal(t, "bob", set.ValidatorSet[0].StakerId)
	assert.Equal(t, uint64(1), set.Sequence)
}

func TestListPendingWithdrawals(t *testing.T) {
	f := newFixture(t)
	f.seedPosition(testPool, 200, map[string]uint64{"alice": 100})
	f.wireRemotePool()

	_, apiErr := f.s.DecreaseStake(f.ctx, Invocation{Caller: "alice", Deposit: amount(1)}, amount(50), "")
	require.Nil(t, apiErr)

	withdrawals, apiErr := f.s.ListPendingWithdrawals(f.ctx, "alice")
	require.Nil(t, apiErr)
	require.Len(t, withdrawals, 1)
	assert.False(t, withdrawals[0].Withdrawable)

	f.clock.Advance(4 * time.Hour)
	_, apiErr = f.s.WithdrawUnstakeBatch(f.ctx, Invocation{Caller: "keeper"}, testPool, 0)
	require.Nil(t, apiErr)
	withdrawals, apiErr = f.s.ListPendingWithdrawals(f.ctx, "alice")
	require.Nil(t, apiErr)
	assert.True(t, withdrawals[0].Withdrawable)

	chains, apiErr := f.s.GetStakerBondingChains(f.ctx, "alice")
	require.Nil(t, apiErr)
	assert.Empty(t, chains)
}
