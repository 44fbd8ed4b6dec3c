package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/babylonchain/restaking-ledger-service/internal/types"
)

func newTestChain(t *testing.T) *ConsumerChain {
	chain, err := NewConsumerChain(ConsumerChainRegisterParam{
		ConsumerChainId: "cosmos:octopus-1",
		UnbondPeriod:    time.Hour,
		Website:         "https://octopus.network",
		Treasury:        "treasury.near",
		PosAccountId:    "pos.near",
	}, "gov.near", amount(10))
	require.NoError(t, err)
	return chain
}

func TestNewConsumerChainValidatesId(t *testing.T) {
	for _, id := range []string{"cosmos", "co:abc", "COSMOS:abc", "cosmos:", "toolongnamespace:abc"} {
		_, err := NewConsumerChain(ConsumerChainRegisterParam{
			ConsumerChainId: id, Treasury: "t.near", PosAccountId: "p.near",
		}, "gov.near", amount(1))
		assert.ErrorIs(t, err, ErrInvalidConsumerChain, id)
	}

	chain := newTestChain(t)
	assert.Equal(t, types.Registered, chain.Status)
	assert.Equal(t, "gov.near", chain.Governance)
}

func TestConsumerChainAuthorization(t *testing.T) {
	chain := newTestChain(t)
	assert.NoError(t, chain.AssertGovernance("gov.near"))
	assert.ErrorIs(t, chain.AssertGovernance("pos.near"), ErrUnauthorized)
	assert.NoError(t, chain.AssertPosAccount("pos.near"))
	assert.ErrorIs(t, chain.AssertPosAccount("gov.near"), ErrUnauthorized)
}

func TestConsumerChainBondingAndBlacklist(t *testing.T) {
	chain := newTestChain(t)
	require.NoError(t, chain.Bond("bob.near"))
	require.NoError(t, chain.Bond("alice.near"))
	require.NoError(t, chain.Bond("alice.near"))
	assert.Equal(t, []string{"alice.near", "bob.near"}, chain.BondingStakers)

	chain.Blackout("bob.near")
	assert.True(t, chain.IsBlacklisted("bob.near"))
	// blackout does not unbond
	assert.True(t, chain.IsBonding("bob.near"))
	assert.ErrorIs(t, chain.Bond("bob.near"), ErrBlacklisted)

	chain.Unbond("bob.near")
	assert.Equal(t, []string{"alice.near"}, chain.BondingStakers)
}

func TestDeregisterIsTerminal(t *testing.T) {
	chain := newTestChain(t)
	require.NoError(t, chain.Deregister())
	assert.Equal(t, types.Deregistered, chain.Status)
	assert.ErrorIs(t, chain.Deregister(), ErrChainNotActive)
	assert.ErrorIs(t, chain.Bond("alice.near"), ErrChainNotActive)

	website := "https://example.org"
	_, err := chain.UpdateInfo(ConsumerChainUpdateParam{Website: &website})
	assert.ErrorIs(t, err, ErrChainNotActive)
}

func TestUpdateInfoIsPartial(t *testing.T) {
	chain := newTestChain(t)
	website := "https://example.org"
	changed, err := chain.UpdateInfo(ConsumerChainUpdateParam{Website: &website})
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, website, chain.Website)
	assert.Equal(t, "treasury.near", chain.Treasury)

	same := time.Hour
	changed, err = chain.UpdateInfo(ConsumerChainUpdateParam{UnbondPeriod: &same})
	require.NoError(t, err)
	assert.False(t, changed)

	longer := 3 * time.Hour
	changed, err = chain.UpdateInfo(ConsumerChainUpdateParam{UnbondPeriod: &longer})
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, longer, chain.UnbondPeriod)
}
