package db

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/babylonchain/restaking-ledger-service/internal/config"
	"github.com/babylonchain/restaking-ledger-service/internal/db/model"
	"github.com/babylonchain/restaking-ledger-service/internal/ledger"
)

type memoryTxKey struct{}

// MemoryDatabase keeps the ledger in process. A transaction holds the store
// mutex for its whole duration and restores a snapshot when fn fails.
type MemoryDatabase struct {
	mu    sync.Mutex
	cfg   config.DbConfig
	state *memoryState
}

type memoryState struct {
	accounts           map[string]time.Time
	pools              map[string]*ledger.StakingPool
	stakers            map[string]*ledger.Staker
	chains             map[string]*ledger.ConsumerChain
	pendingWithdrawals map[uint64]*ledger.PendingWithdrawal
	slashes            map[uint64]*ledger.Slash
	counters           map[string]uint64
	unpublishedEvents  []UnpublishedEvent
}

func newMemoryState() *memoryState {
	return &memoryState{
		accounts:           map[string]time.Time{},
		pools:              map[string]*ledger.StakingPool{},
		stakers:            map[string]*ledger.Staker{},
		chains:             map[string]*ledger.ConsumerChain{},
		pendingWithdrawals: map[uint64]*ledger.PendingWithdrawal{},
		slashes:            map[uint64]*ledger.Slash{},
		counters:           map[string]uint64{},
	}
}

func (s *memoryState) clone() *memoryState {
	c := newMemoryState()
	for k, v := range s.accounts {
		c.accounts[k] = v
	}
	for k, v := range s.pools {
		c.pools[k] = v.Clone()
	}
	for k, v := range s.stakers {
		c.stakers[k] = v.Clone()
	}
	for k, v := range s.chains {
		c.chains[k] = v.Clone()
	}
	for k, v := range s.pendingWithdrawals {
		c.pendingWithdrawals[k] = v.Clone()
	}
	for k, v := range s.slashes {
		c.slashes[k] = v.Clone()
	}
	for k, v := range s.counters {
		c.counters[k] = v
	}
	c.unpublishedEvents = append([]UnpublishedEvent{}, s.unpublishedEvents...)
	return c
}

func NewMemoryDatabase(cfg config.DbConfig) *MemoryDatabase {
	return &MemoryDatabase{
		cfg:   cfg,
		state: newMemoryState(),
	}
}

func (m *MemoryDatabase) Ping(ctx context.Context) error {
	return nil
}

func (m *MemoryDatabase) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(memoryTxKey{}) != nil {
		return fn(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	snapshot := m.state.clone()
	if err := fn(context.WithValue(ctx, memoryTxKey{}, true)); err != nil {
		m.state = snapshot
		return err
	}
	return nil
}

// with runs fn under the store mutex unless ctx is already inside a transaction
func (m *MemoryDatabase) with(ctx context.Context, fn func(s *memoryState) error) error {
	if ctx.Value(memoryTxKey{}) == nil {
		m.mu.Lock()
		defer m.mu.Unlock()
	}
	return fn(m.state)
}

func notFound(what string, key interface{}) error {
	return &NotFoundError{
		Key:     fmt.Sprintf("%v", key),
		Message: fmt.Sprintf("%s %v not found", what, key),
	}
}

func (m *MemoryDatabase) RegisterAccount(ctx context.Context, accountId string, registeredAt time.Time) error {
	return m.with(ctx, func(s *memoryState) error {
		if _, ok := s.accounts[accountId]; ok {
			return &DuplicateKeyError{Key: accountId, Message: "Account already registered"}
		}
		s.accounts[accountId] = registeredAt
		return nil
	})
}

func (m *MemoryDatabase) IsAccountRegistered(ctx context.Context, accountId string) (bool, error) {
	var registered bool
	err := m.with(ctx, func(s *memoryState) error {
		_, registered = s.accounts[accountId]
		return nil
	})
	return registered, err
}

func (m *MemoryDatabase) FindStakingPool(ctx context.Context, poolId string) (*ledger.StakingPool, error) {
	var pool *ledger.StakingPool
	err := m.with(ctx, func(s *memoryState) error {
		p, ok := s.pools[poolId]
		if !ok {
			return notFound("staking pool", poolId)
		}
		pool = p.Clone()
		return nil
	})
	return pool, err
}

func (m *MemoryDatabase) FindStakingPools(
	ctx context.Context, paginationToken string,
) (*DbResultMap[*ledger.StakingPool], error) {
	var page *DbResultMap[*ledger.StakingPool]
	err := m.with(ctx, func(s *memoryState) error {
		var err error
		page, err = memoryPage(m.cfg, s.pools, paginationToken, (*ledger.StakingPool).Clone)
		return err
	})
	return page, err
}

func (m *MemoryDatabase) SaveStakingPool(ctx context.Context, pool *ledger.StakingPool) error {
	return m.with(ctx, func(s *memoryState) error {
		s.pools[pool.PoolId] = pool.Clone()
		return nil
	})
}

func (m *MemoryDatabase) DeleteStakingPool(ctx context.Context, poolId string) error {
	return m.with(ctx, func(s *memoryState) error {
		if _, ok := s.pools[poolId]; !ok {
			return notFound("staking pool", poolId)
		}
		delete(s.pools, poolId)
		return nil
	})
}

func (m *MemoryDatabase) FindStaker(ctx context.Context, stakerId string) (*ledger.Staker, error) {
	var staker *ledger.Staker
	err := m.with(ctx, func(s *memoryState) error {
		st, ok := s.stakers[stakerId]
		if !ok {
			return notFound("staker", stakerId)
		}
		staker = st.Clone()
		return nil
	})
	return staker, err
}

func (m *MemoryDatabase) FindStakersByIds(ctx context.Context, stakerIds []string) ([]*ledger.Staker, error) {
	var stakers []*ledger.Staker
	err := m.with(ctx, func(s *memoryState) error {
		ids := append([]string{}, stakerIds...)
		sort.Strings(ids)
		for _, id := range ids {
			if st, ok := s.stakers[id]; ok {
				stakers = append(stakers, st.Clone())
			}
		}
		return nil
	})
	return stakers, err
}

func (m *MemoryDatabase) SaveStaker(ctx context.Context, staker *ledger.Staker) error {
	return m.with(ctx, func(s *memoryState) error {
		s.stakers[staker.StakerId] = staker.Clone()
		return nil
	})
}

func (m *MemoryDatabase) InsertConsumerChain(ctx context.Context, chain *ledger.ConsumerChain) error {
	return m.with(ctx, func(s *memoryState) error {
		if _, ok := s.chains[chain.ConsumerChainId]; ok {
			return &DuplicateKeyError{Key: chain.ConsumerChainId, Message: "Consumer chain already registered"}
		}
		s.chains[chain.ConsumerChainId] = chain.Clone()
		return nil
	})
}

func (m *MemoryDatabase) FindConsumerChain(ctx context.Context, chainId string) (*ledger.ConsumerChain, error) {
	var chain *ledger.ConsumerChain
	err := m.with(ctx, func(s *memoryState) error {
		c, ok := s.chains[chainId]
		if !ok {
			return notFound("consumer chain", chainId)
		}
		chain = c.Clone()
		return nil
	})
	return chain, err
}

func (m *MemoryDatabase) FindConsumerChains(
	ctx context.Context, paginationToken string,
) (*DbResultMap[*ledger.ConsumerChain], error) {
	var page *DbResultMap[*ledger.ConsumerChain]
	err := m.with(ctx, func(s *memoryState) error {
		var err error
		page, err = memoryPage(m.cfg, s.chains, paginationToken, (*ledger.ConsumerChain).Clone)
		return err
	})
	return page, err
}

func (m *MemoryDatabase) SaveConsumerChain(ctx context.Context, chain *ledger.ConsumerChain) error {
	return m.with(ctx, func(s *memoryState) error {
		s.chains[chain.ConsumerChainId] = chain.Clone()
		return nil
	})
}

func (m *MemoryDatabase) InsertPendingWithdrawal(ctx context.Context, withdrawal *ledger.PendingWithdrawal) error {
	return m.with(ctx, func(s *memoryState) error {
		if _, ok := s.pendingWithdrawals[withdrawal.WithdrawalCertificate]; ok {
			return &DuplicateKeyError{
				Key:     fmt.Sprintf("%d", withdrawal.WithdrawalCertificate),
				Message: "Withdrawal certificate already exists",
			}
		}
		s.pendingWithdrawals[withdrawal.WithdrawalCertificate] = withdrawal.Clone()
		return nil
	})
}

func (m *MemoryDatabase) SavePendingWithdrawal(ctx context.Context, withdrawal *ledger.PendingWithdrawal) error {
	return m.with(ctx, func(s *memoryState) error {
		s.pendingWithdrawals[withdrawal.WithdrawalCertificate] = withdrawal.Clone()
		return nil
	})
}

func (m *MemoryDatabase) DeletePendingWithdrawal(ctx context.Context, certificate uint64) error {
	return m.with(ctx, func(s *memoryState) error {
		if _, ok := s.pendingWithdrawals[certificate]; !ok {
			return notFound("pending withdrawal", certificate)
		}
		delete(s.pendingWithdrawals, certificate)
		return nil
	})
}

func (m *MemoryDatabase) FindPendingWithdrawal(ctx context.Context, certificate uint64) (*ledger.PendingWithdrawal, error) {
	var withdrawal *ledger.PendingWithdrawal
	err := m.with(ctx, func(s *memoryState) error {
		w, ok := s.pendingWithdrawals[certificate]
		if !ok {
			return notFound("pending withdrawal", certificate)
		}
		withdrawal = w.Clone()
		return nil
	})
	return withdrawal, err
}

func (m *MemoryDatabase) FindPendingWithdrawalsByOwner(ctx context.Context, owner string) ([]*ledger.PendingWithdrawal, error) {
	withdrawals := []*ledger.PendingWithdrawal{}
	err := m.with(ctx, func(s *memoryState) error {
		for _, w := range s.pendingWithdrawals {
			if w.Owner == owner {
				withdrawals = append(withdrawals, w.Clone())
			}
		}
		return nil
	})
	sort.Slice(withdrawals, func(i, j int) bool {
		a, b := withdrawals[i], withdrawals[j]
		if !a.UnlockTime.Equal(b.UnlockTime) {
			return a.UnlockTime.Before(b.UnlockTime)
		}
		return a.WithdrawalCertificate < b.WithdrawalCertificate
	})
	return withdrawals, err
}

func (m *MemoryDatabase) InsertSlash(ctx context.Context, slash *ledger.Slash) error {
	return m.with(ctx, func(s *memoryState) error {
		if _, ok := s.slashes[slash.SlashId]; ok {
			return &DuplicateKeyError{Key: fmt.Sprintf("%d", slash.SlashId), Message: "Slash already exists"}
		}
		s.slashes[slash.SlashId] = slash.Clone()
		return nil
	})
}

func (m *MemoryDatabase) FindSlash(ctx context.Context, slashId uint64) (*ledger.Slash, error) {
	var slash *ledger.Slash
	err := m.with(ctx, func(s *memoryState) error {
		sl, ok := s.slashes[slashId]
		if !ok {
			return notFound("slash", slashId)
		}
		slash = sl.Clone()
		return nil
	})
	return slash, err
}

func (m *MemoryDatabase) DeleteSlash(ctx context.Context, slashId uint64) error {
	return m.with(ctx, func(s *memoryState) error {
		if _, ok := s.slashes[slashId]; !ok {
			return notFound("slash", slashId)
		}
		delete(s.slashes, slashId)
		return nil
	})
}

func (m *MemoryDatabase) NextCounterValue(ctx context.Context, name string) (uint64, error) {
	var value uint64
	err := m.with(ctx, func(s *memoryState) error {
		s.counters[name]++
		value = s.counters[name]
		return nil
	})
	return value, err
}

func (m *MemoryDatabase) GetCounterValue(ctx context.Context, name string) (uint64, error) {
	var value uint64
	err := m.with(ctx, func(s *memoryState) error {
		value = s.counters[name]
		return nil
	})
	return value, err
}

func (m *MemoryDatabase) SaveUnpublishedEvent(ctx context.Context, sequence uint64, eventBody string) error {
	return m.with(ctx, func(s *memoryState) error {
		s.unpublishedEvents = append(s.unpublishedEvents, UnpublishedEvent{Sequence: sequence, EventBody: eventBody})
		return nil
	})
}

func (m *MemoryDatabase) TakeUnpublishedEvents(ctx context.Context, limit int64) ([]UnpublishedEvent, error) {
	var events []UnpublishedEvent
	err := m.with(ctx, func(s *memoryState) error {
		sort.SliceStable(s.unpublishedEvents, func(i, j int) bool {
			return s.unpublishedEvents[i].Sequence < s.unpublishedEvents[j].Sequence
		})
		n := int(limit)
		if n > len(s.unpublishedEvents) {
			n = len(s.unpublishedEvents)
		}
		events = append(events, s.unpublishedEvents[:n]...)
		s.unpublishedEvents = s.unpublishedEvents[n:]
		return nil
	})
	return events, err
}

// memoryPage lists records ordered by key after the pagination token
func memoryPage[T any](
	cfg config.DbConfig, records map[string]T, paginationToken string, clone func(T) T,
) (*DbResultMap[T], error) {
	after := ""
	if paginationToken != "" {
		decoded, err := model.DecodePaginationToken[model.IdPagination](paginationToken)
		if err != nil {
			return nil, &InvalidPaginationTokenError{
				Message: "Invalid pagination token",
			}
		}
		after = decoded.Id
	}

	keys := make([]string, 0, len(records))
	for k := range records {
		if after == "" || k > after {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	if int64(len(keys)) > cfg.MaxPaginationLimit {
		keys = keys[:cfg.MaxPaginationLimit]
	}

	result := make([]T, 0, len(keys))
	for _, k := range keys {
		result = append(result, clone(records[k]))
	}
	lastKey := ""
	if len(keys) > 0 {
		lastKey = keys[len(keys)-1]
	}
	return toResultMapWithPaginationToken(cfg, result, func(T) (string, error) {
		return model.BuildIdPaginationToken(lastKey)
	})
}
