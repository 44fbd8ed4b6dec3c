package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/babylonchain/restaking-ledger-service/internal/api/middlewares"
	"github.com/babylonchain/restaking-ledger-service/internal/clients"
	"github.com/babylonchain/restaking-ledger-service/internal/clients/mocks"
	"github.com/babylonchain/restaking-ledger-service/internal/config"
	"github.com/babylonchain/restaking-ledger-service/internal/db"
	"github.com/babylonchain/restaking-ledger-service/internal/queue"
	"github.com/babylonchain/restaking-ledger-service/internal/services"
	"github.com/babylonchain/restaking-ledger-service/internal/types"
)

type testServer struct {
	handler   http.Handler
	pool      *mocks.StakingPoolClient
	whitelist *mocks.WhitelistClient
}

func newTestServer(t *testing.T) *testServer {
	cfg := &config.Config{
		Server: config.ServerConfig{
			Host: "127.0.0.1", Port: 8090, AllowedOrigins: []string{"*"},
			LogLevel: "error", MaxContentLength: 4096, HealthCheckInterval: 60,
		},
		Db: config.DbConfig{Type: config.MemoryDbType, MaxPaginationLimit: 10},
		Ledger: config.LedgerConfig{
			ContractAccountId: "ledger.test",
			RegisterFee:       "1000",
			SlashGuarantee:    "500",
			ActionDeposit:     "1",
			UnlockDelayEpochs: 4,
			EpochDuration:     time.Hour,
			GenesisTime:       "2024-01-01T00:00:00Z",
		},
	}
	require.NoError(t, cfg.Ledger.Validate())

	ts := &testServer{
		pool:      mocks.NewStakingPoolClient(t),
		whitelist: mocks.NewWhitelistClient(t),
	}
	svc := services.NewWithDependencies(cfg, db.NewMemoryDatabase(cfg.Db), &clients.Clients{
		StakingPool:      ts.pool,
		Whitelist:        ts.whitelist,
		ConsumerChainPos: mocks.NewConsumerChainPosClient(t),
		Bank:             mocks.NewBankClient(t),
	}, queue.NewWithClient(nil, time.Second), clockwork.NewFakeClockAt(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)))

	server, err := New(context.Background(), cfg, svc)
	require.NoError(t, err)
	ts.handler = server.Handler()
	return ts
}

func (ts *testServer) do(t *testing.T, method, path, caller, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	request := httptest.NewRequest(method, path, strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	if caller != "" {
		request.Header.Set(middlewares.CallerHeader, caller)
	}
	recorder := httptest.NewRecorder()
	ts.handler.ServeHTTP(recorder, request)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &decoded), recorder.Body.String())
	return recorder, decoded
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	recorder, body := ts.do(t, http.MethodGet, "/healthcheck", "", "")
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.NotEmpty(t, recorder.Header().Get(middlewares.TraceIdHeader))
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "Server is up and running", data["status"])
}

func TestStakeThroughApi(t *testing.T) {
	ts := newTestServer(t)
	ts.whitelist.On("IsWhitelisted", mock.Anything, "pool-a.test").Return(true, nil).Once()
	ts.pool.On("Ping", mock.Anything, "pool-a.test").Return(nil).Once()
	ts.pool.On("DepositAndStake", mock.Anything, "pool-a.test", types.NewAmount(100)).Return(nil).Once()
	ts.pool.On("GetAccountStakedBalance", mock.Anything, "pool-a.test", "ledger.test").
		Return(types.ZeroAmount(), nil).Once()
	ts.pool.On("GetAccountStakedBalance", mock.Anything, "pool-a.test", "ledger.test").
		Return(types.NewAmount(100), nil).Once()

	recorder, body := ts.do(t, http.MethodPost, "/v1/staking/stake", "", `{"deposit":"100","pool_id":"pool-a.test"}`)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Equal(t, string(types.Unauthorized), body["errorCode"])

	recorder, body = ts.do(t, http.MethodPost, "/v1/staking/stake", "alice", `{"deposit":"100","pool_id":"pool-a.test"}`)
	assert.Equal(t, http.StatusForbidden, recorder.Code)
	assert.Equal(t, string(types.NotRegistered), body["errorCode"])

	recorder, _ = ts.do(t, http.MethodPost, "/v1/accounts", "alice", "")
	require.Equal(t, http.StatusOK, recorder.Code)

	recorder, body = ts.do(t, http.MethodPost, "/v1/staking/stake", "alice", `{"deposit":"100","pool_id":"pool-a.test"}`)
	require.Equal(t, http.StatusOK, recorder.Code, body)
	result := body["data"].(map[string]interface{})
	assert.Equal(t, "100", result["new_total_staked_balance"])

	recorder, body = ts.do(t, http.MethodGet, "/v1/stakers/alice/staked-balance", "", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	balance := body["data"].(map[string]interface{})
	assert.Equal(t, "pool-a.test", balance["pool_id"])
	assert.Equal(t, "100", balance["staked_balance"])

	recorder, body = ts.do(t, http.MethodGet, "/v1/pools", "", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Len(t, body["data"], 1)
}

func TestApiErrors(t *testing.T) {
	ts := newTestServer(t)

	recorder, body := ts.do(t, http.MethodGet, "/v1/stakers/nobody", "", "")
	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Equal(t, string(types.NotFound), body["errorCode"])

	recorder, body = ts.do(t, http.MethodGet, "/v1/slashes/abc", "", "")
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, string(types.BadRequest), body["errorCode"])

	recorder, _ = ts.do(t, http.MethodPost, "/v1/staking/decrease", "alice", `{"deposit":`)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	recorder, body = ts.do(t, http.MethodPost, "/v1/consumer-chains", "gov.test",
		`{"deposit":"1000","consumer_chain_id":"cosmos:chain-a","unbond_period":"soon","treasury":"t","pos_account_id":"p"}`)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, string(types.ValidationError), body["errorCode"])

	recorder, body = ts.do(t, http.MethodPost, "/v1/consumer-chains", "gov.test",
		`{"deposit":"1000","consumer_chain_id":"cosmos:chain-a","unbond_period":"72h","treasury":"t","pos_account_id":"p"}`)
	require.Equal(t, http.StatusOK, recorder.Code, body)

	recorder, body = ts.do(t, http.MethodGet, "/v1/consumer-chains/cosmos:chain-a/validator-set?limit=5", "", "")
	require.Equal(t, http.StatusOK, recorder.Code, body)
	set := body["data"].(map[string]interface{})
	assert.Empty(t, set["validator_set"])
	assert.Equal(t, float64(1), set["sequence"])
}
