package services

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/babylonchain/restaking-ledger-service/internal/clients"
	"github.com/babylonchain/restaking-ledger-service/internal/clients/mocks"
	"github.com/babylonchain/restaking-ledger-service/internal/config"
	"github.com/babylonchain/restaking-ledger-service/internal/db"
	"github.com/babylonchain/restaking-ledger-service/internal/ledger"
	"github.com/babylonchain/restaking-ledger-service/internal/queue/client"
	"github.com/babylonchain/restaking-ledger-service/internal/types"
)

const (
	testPool     = "pool-a.test"
	testChain    = "cosmos:chain-a"
	testGov      = "gov.test"
	testPos      = "pos.test"
	testTreasury = "treasury.test"
)

var testGenesis = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

type recordingPublisher struct {
	mu     sync.Mutex
	events []*client.LedgerEvent
}

func (p *recordingPublisher) PublishEvent(ctx context.Context, event *client.LedgerEvent) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	body, err := json.Marshal(event)
	return string(body), err
}

func (p *recordingPublisher) kinds() []client.EventKind {
	p.mu.Lock()
	defer p.mu.Unlock()
	kinds := make([]client.EventKind, 0, len(p.events))
	for _, e := range p.events {
		kinds = append(kinds, e.Event)
	}
	return kinds
}

// remotePools plays the external staking pools: deposits and unstakes move
// the balance reported for the ledger's account.
type remotePools struct {
	mu       sync.Mutex
	balances map[string]types.Amount
}

func (r *remotePools) set(poolId string, amount types.Amount) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.balances[poolId] = amount
}

func (r *remotePools) get(poolId string) types.Amount {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.balances[poolId]
}

type fixture struct {
	t         *testing.T
	ctx       context.Context
	s         *Services
	db        *db.MemoryDatabase
	pool      *mocks.StakingPoolClient
	whitelist *mocks.WhitelistClient
	pos       *mocks.ConsumerChainPosClient
	bank      *mocks.BankClient
	events    *recordingPublisher
	remote    *remotePools
	clock     *clockwork.FakeClock
}

func newTestConfig(t *testing.T) *config.Config {
	cfg := &config.Config{
		Db: config.DbConfig{Type: config.MemoryDbType, MaxPaginationLimit: 10},
		Ledger: config.LedgerConfig{
			ContractAccountId: "ledger.test",
			RegisterFee:       "1000",
			SlashGuarantee:    "500",
			ActionDeposit:     "1",
			UnlockDelayEpochs: 4,
			EpochDuration:     time.Hour,
			GenesisTime:       testGenesis.Format(time.RFC3339),
		},
	}
	require.NoError(t, cfg.Ledger.Validate())
	return cfg
}

func newFixture(t *testing.T) *fixture {
	cfg := newTestConfig(t)
	f := &fixture{
		t:         t,
		ctx:       context.Background(),
		db:        db.NewMemoryDatabase(cfg.Db),
		pool:      mocks.NewStakingPoolClient(t),
		whitelist: mocks.NewWhitelistClient(t),
		pos:       mocks.NewConsumerChainPosClient(t),
		bank:      mocks.NewBankClient(t),
		events:    &recordingPublisher{},
		remote:    &remotePools{balances: map[string]types.Amount{}},
		clock:     clockwork.NewFakeClockAt(testGenesis.Add(10 * time.Hour)),
	}
	f.s = NewWithDependencies(cfg, f.db, &clients.Clients{
		StakingPool:      f.pool,
		Whitelist:        f.whitelist,
		ConsumerChainPos: f.pos,
		Bank:             f.bank,
	}, f.events, f.clock)
	return f
}

// wireRemotePool backs the pool mock with remotePools. Call it after any
// test specific expectation, the first matching expectation wins.
func (f *fixture) wireRemotePool() {
	f.pool.On("Ping", mock.Anything, mock.Anything).Return(nil).Maybe()
	f.pool.On("GetAccountStakedBalance", mock.Anything, mock.Anything, "ledger.test").Return(
		func(_ context.Context, poolId, _ string) (types.Amount, *types.Error) {
			return f.remote.get(poolId), nil
		},
	).Maybe()
	f.pool.On("DepositAndStake", mock.Anything, mock.Anything, mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		poolId := args.String(1)
		balance, err := f.remote.get(poolId).Add(args.Get(2).(types.Amount))
		require.NoError(f.t, err)
		f.remote.set(poolId, balance)
	}).Maybe()
	f.pool.On("Unstake", mock.Anything, mock.Anything, mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		poolId := args.String(1)
		f.remote.set(poolId, f.remote.get(poolId).SaturatingSub(args.Get(2).(types.Amount)))
	}).Maybe()
	f.pool.On("Withdraw", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
}

func (f *fixture) register(accounts ...string) {
	for _, account := range accounts {
		require.NoError(f.t, f.db.RegisterAccount(f.ctx, account, f.clock.Now()))
	}
}

// seedPosition stores a pool and the stakers holding its shares, and reports
// the pool's staked balance as the remote balance.
func (f *fixture) seedPosition(poolId string, staked uint64, holders map[string]uint64) {
	pool := ledger.NewStakingPool(poolId)
	pool.TotalStakedBalance = types.NewAmount(staked)
	total := types.ZeroAmount()
	for stakerId, shares := range holders {
		staker := ledger.NewStaker(stakerId)
		staker.SelectStakingPool = poolId
		staker.Shares = types.NewAmount(shares)
		require.NoError(f.t, f.db.SaveStaker(f.ctx, staker))
		var err error
		total, err = total.Add(staker.Shares)
		require.NoError(f.t, err)
		f.register(stakerId)
	}
	pool.TotalShareBalance = total
	require.NoError(f.t, f.db.SaveStakingPool(f.ctx, pool))
	f.remote.set(poolId, types.NewAmount(staked))
}

func (f *fixture) seedChain(unbondPeriod time.Duration, bonded ...string) *ledger.ConsumerChain {
	chain, err := ledger.NewConsumerChain(ledger.ConsumerChainRegisterParam{
		ConsumerChainId: testChain,
		UnbondPeriod:    unbondPeriod,
		Treasury:        testTreasury,
		PosAccountId:    testPos,
	}, testGov, types.NewAmount(1000))
	require.NoError(f.t, err)
	for _, stakerId := range bonded {
		staker, err := f.db.FindStaker(f.ctx, stakerId)
		require.NoError(f.t, err)
		require.NoError(f.t, staker.Bond(testChain, unbondPeriod, f.clock.Now()))
		require.NoError(f.t, f.db.SaveStaker(f.ctx, staker))
		require.NoError(f.t, chain.Bond(stakerId))
	}
	require.NoError(f.t, f.db.InsertConsumerChain(f.ctx, chain))
	return chain
}

func (f *fixture) staker(id string) *ledger.Staker {
	staker, err := f.db.FindStaker(f.ctx, id)
	require.NoError(f.t, err)
	return staker
}

func (f *fixture) stakingPool(id string) *ledger.StakingPool {
	pool, err := f.db.FindStakingPool(f.ctx, id)
	require.NoError(f.t, err)
	return pool
}

// assertShareInvariant checks the pool's share total against its holders.
func (f *fixture) assertShareInvariant(poolId string, stakerIds ...string) {
	total := types.ZeroAmount()
	for _, id := range stakerIds {
		staker := f.staker(id)
		if staker.SelectStakingPool != poolId {
			continue
		}
		var err error
		total, err = total.Add(staker.Shares)
		require.NoError(f.t, err)
	}
	assert.Equal(f.t, total.String(), f.stakingPool(poolId).TotalShareBalance.String())
}

func amount(v uint64) types.Amount {
	return types.NewAmount(v)
}

func TestStake_EmptyPool(t *testing.T) {
	f := newFixture(t)
	f.register("alice")
	f.whitelist.On("IsWhitelisted", mock.Anything, testPool).Return(true, nil).Once()
	f.wireRemotePool()

	result, err := f.s.Stake(f.ctx, Invocation{Caller: "alice", Deposit: amount(100)}, testPool)
	require.Nil(t, err)
	require.NotNil(t, result)
	assert.Equal(t, uint64(1), result.Sequence)
	assert.Equal(t, "100", result.NewTotalStakedBalance.String())

	staker := f.staker("alice")
	assert.Equal(t, testPool, staker.SelectStakingPool)
	assert.Equal(t, "100", staker.Shares.String())
	pool := f.stakingPool(testPool)
	assert.Equal(t, "100", pool.TotalShareBalance.String())
	assert.Equal(t, "100", pool.TotalStakedBalance.String())
	assert.False(t, pool.Locked)
	assert.Equal(t, []client.EventKind{client.StakeEventKind}, f.events.kinds())
	f.pool.AssertCalled(t, "DepositAndStake", mock.Anything, testPool, amount(100))
}

func TestStake_SecondStakerAtHigherPrice(t *testing.T) {
	f := newFixture(t)
	f.seedPosition(testPool, 200, map[string]uint64{"alice": 100})
	f.register("bob")
	f.whitelist.On("IsWhitelisted", mock.Anything, testPool).Return(true, nil).Once()
	f.wireRemotePool()

	result, err := f.s.Stake(f.ctx, Invocation{Caller: "bob", Deposit: amount(101)}, testPool)
	require.Nil(t, err)
	require.NotNil(t, result)

	// 100 * 101 / 200 rounded down
	assert.Equal(t, "50", f.staker("bob").Shares.String())
	pool := f.stakingPool(testPool)
	assert.Equal(t, "301", pool.TotalStakedBalance.String())
	f.assertShareInvariant(testPool, "alice", "bob")
}

func TestStake_RequiresRegisteredAccount(t *testing.T) {
	f := newFixture(t)

	result, err := f.s.Stake(f.ctx, Invocation{Caller: "alice", Deposit: amount(100)}, testPool)
	assert.Nil(t, result)
	require.NotNil(t, err)
	assert.Equal(t, http.StatusForbidden, err.StatusCode)
	assert.Equal(t, types.NotRegistered, err.ErrorCode)
	assert.Empty(t, f.events.kinds())
}

func TestStake_RejectsStakerWithShares(t *testing.T) {
	f := newFixture(t)
	f.seedPosition(testPool, 100, map[string]uint64{"alice": 100})

	result, err := f.s.Stake(f.ctx, Invocation{Caller: "alice", Deposit: amount(10)}, testPool)
	assert.Nil(t, result)
	require.NotNil(t, err)
	assert.Equal(t, types.Forbidden, err.ErrorCode)
}

func TestStake_WhitelistRefusalRefunds(t *testing.T) {
	f := newFixture(t)
	f.register("alice")
	f.whitelist.On("IsWhitelisted", mock.Anything, testPool).Return(false, nil).Once()
	f.bank.On("Transfer", mock.Anything, "alice", amount(100)).Return(nil).Once()

	result, err := f.s.Stake(f.ctx, Invocation{Caller: "alice", Deposit: amount(100)}, testPool)
	assert.Nil(t, result)
	assert.Nil(t, err)

	_, findErr := f.db.FindStakingPool(f.ctx, testPool)
	assert.True(t, db.IsNotFoundError(findErr))
	_, findErr = f.db.FindStaker(f.ctx, "alice")
	assert.True(t, db.IsNotFoundError(findErr))
	assert.Equal(t, []client.EventKind{client.CallbackFailedEventKind}, f.events.kinds())
}

func TestStake_DepositFailureRollsBack(t *testing.T) {
	f := newFixture(t)
	f.register("alice")
	f.whitelist.On("IsWhitelisted", mock.Anything, testPool).Return(true, nil).Once()
	f.pool.On("DepositAndStake", mock.Anything, testPool, amount(100)).
		Return(types.NewErrorWithMsg(http.StatusBadGateway, types.InternalServiceError, "pool unavailable")).Once()
	f.bank.On("Transfer", mock.Anything, "alice", amount(100)).Return(nil).Once()
	f.wireRemotePool()

	result, err := f.s.Stake(f.ctx, Invocation{Caller: "alice", Deposit: amount(100)}, testPool)
	assert.Nil(t, result)
	assert.Nil(t, err)

	staker := f.staker("alice")
	assert.Empty(t, staker.SelectStakingPool)
	assert.True(t, staker.Shares.IsZero())
	// the pool only exists once a delegation went through
	_, findErr := f.db.FindStakingPool(f.ctx, testPool)
	assert.True(t, db.IsNotFoundError(findErr))
	assert.Equal(t, []client.EventKind{client.CallbackFailedEventKind}, f.events.kinds())

	f.whitelist.On("IsWhitelisted", mock.Anything, testPool).Return(true, nil).Once()
	result, err = f.s.Stake(f.ctx, Invocation{Caller: "alice", Deposit: amount(100)}, testPool)
	require.Nil(t, err)
	require.NotNil(t, result)
	pool := f.stakingPool(testPool)
	assert.False(t, pool.Locked)
	assert.Equal(t, "100", pool.TotalShareBalance.String())
	f.assertShareInvariant(testPool, "alice")
}

func TestStake_RollbackKeepsExistingPool(t *testing.T) {
	f := newFixture(t)
	f.seedPosition(testPool, 100, map[string]uint64{"alice": 100})
	f.register("bob")
	f.whitelist.On("IsWhitelisted", mock.Anything, testPool).Return(true, nil).Once()
	f.pool.On("DepositAndStake", mock.Anything, testPool, amount(40)).
		Return(types.NewErrorWithMsg(http.StatusBadGateway, types.InternalServiceError, "pool unavailable")).Once()
	f.bank.On("Transfer", mock.Anything, "bob", amount(40)).Return(nil).Once()
	f.wireRemotePool()

	result, err := f.s.Stake(f.ctx, Invocation{Caller: "bob", Deposit: amount(40)}, testPool)
	assert.Nil(t, result)
	assert.Nil(t, err)

	pool := f.stakingPool(testPool)
	assert.False(t, pool.Locked)
	assert.Equal(t, "100", pool.TotalShareBalance.String())
	f.assertShareInvariant(testPool, "alice", "bob")
}

func TestIncreaseStake(t *testing.T) {
	f := newFixture(t)
	f.seedPosition(testPool, 100, map[string]uint64{"alice": 100})
	f.wireRemotePool()

	result, err := f.s.IncreaseStake(f.ctx, Invocation{Caller: "alice", Deposit: amount(50)})
	require.Nil(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "150", result.NewTotalStakedBalance.String())
	assert.Equal(t, "150", f.staker("alice").Shares.String())
	f.assertShareInvariant(testPool, "alice")
	assert.Equal(t, []client.EventKind{client.IncreaseStakeEventKind}, f.events.kinds())
}

func TestPing_RefreshesBalance(t *testing.T) {
	f := newFixture(t)
	f.seedPosition(testPool, 100, map[string]uint64{"alice": 100})
	f.wireRemotePool()
	// rewards accrued in the pool
	f.remote.set(testPool, amount(130))

	result, err := f.s.Ping(f.ctx, Invocation{Caller: "anyone"}, testPool)
	require.Nil(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "130", result.Pool.TotalStakedBalance.String())
	assert.False(t, f.stakingPool(testPool).Locked)

	balance, apiErr := f.s.GetStakerStakedBalance(f.ctx, "alice")
	require.Nil(t, apiErr)
	assert.Equal(t, "130", balance.StakedBalance.String())
}

func TestPing_FailureReleasesLock(t *testing.T) {
	f := newFixture(t)
	f.seedPosition(testPool, 100, map[string]uint64{"alice": 100})
	f.pool.On("Ping", mock.Anything, testPool).
		Return(types.NewErrorWithMsg(http.StatusBadGateway, types.InternalServiceError, "pool unavailable")).Once()
	f.wireRemotePool()

	result, err := f.s.Ping(f.ctx, Invocation{Caller: "alice"}, "")
	assert.Nil(t, result)
	assert.Nil(t, err)
	assert.False(t, f.stakingPool(testPool).Locked)

	result, err = f.s.Ping(f.ctx, Invocation{Caller: "alice"}, "")
	require.Nil(t, err)
	require.NotNil(t, result)
}
