package baseclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/babylonchain/restaking-ledger-service/internal/types"
)

type testClient struct {
	url string
}

func (c *testClient) GetName() string               { return "test" }
func (c *testClient) GetBaseURL() string            { return c.url }
func (c *testClient) GetDefaultRequestTimeout() int { return 1000 }
func (c *testClient) GetHttpClient() *http.Client   { return http.DefaultClient }

type balance struct {
	Balance types.Amount `json:"balance"`
}

func TestSendRequestWithRetry_RetriesServerErrors(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"balance":"1500"}`))
	}))
	defer server.Close()

	resp, err := SendRequestWithRetry[any, balance](
		context.Background(), &testClient{url: server.URL}, http.MethodGet,
		&BaseClientOptions{Path: "/balance"}, nil, 3,
	)
	require.Nil(t, err)
	assert.Equal(t, "1500", resp.Balance.String())
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestSendRequestWithRetry_DoesNotRetryClientErrors(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := SendRequestWithRetry[any, balance](
		context.Background(), &testClient{url: server.URL}, http.MethodGet,
		&BaseClientOptions{Path: "/balance"}, nil, 3,
	)
	require.NotNil(t, err)
	assert.Equal(t, http.StatusNotFound, err.StatusCode)
	assert.Equal(t, types.BadRequest, err.ErrorCode)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestExecute(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		if r.URL.Path == "/ok" {
			_, _ = w.Write([]byte(`{"success":true}`))
			return
		}
		_, _ = w.Write([]byte(`{"success":false,"message":"insufficient funds"}`))
	}))
	defer server.Close()
	client := &testClient{url: server.URL}
	input := &balance{Balance: types.NewAmount(1)}

	err := Execute(context.Background(), client, &BaseClientOptions{Path: "/ok"}, input)
	assert.Nil(t, err)

	err = Execute(context.Background(), client, &BaseClientOptions{Path: "/refused"}, input)
	require.NotNil(t, err)
	assert.Contains(t, err.Error(), "insufficient funds")
}
