package db

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/babylonchain/restaking-ledger-service/internal/utils"
)

type mockTransactionClient struct {
	mock.Mock
}

func (m *mockTransactionClient) StartSession(opts ...*options.SessionOptions) (DBSession, error) {
	args := m.Called()
	session, _ := args.Get(0).(DBSession)
	return session, args.Error(1)
}

type mockSession struct {
	mock.Mock
}

func (m *mockSession) EndSession(ctx context.Context) {
	m.Called(ctx)
}

func (m *mockSession) WithTransaction(
	ctx context.Context,
	fn func(sessCtx mongo.SessionContext) (interface{}, error),
	opts ...*options.TransactionOptions,
) (interface{}, error) {
	args := m.Called(ctx, fn)
	return args.Get(0), args.Error(1)
}

func writeConflictError() *mongo.CommandError {
	return &mongo.CommandError{
		Code:    112,
		Message: "write conflict",
		Name:    "WriteConflict",
	}
}

func recordSleeps(t *testing.T) *[]time.Duration {
	sleeps := []time.Duration{}
	utils.SetSleepFunc(func(d time.Duration) {
		sleeps = append(sleeps, d)
	})
	t.Cleanup(utils.ResetSleepFunc)
	return &sleeps
}

func noopTxn(sessCtx mongo.SessionContext) (interface{}, error) {
	return nil, nil
}

func TestTxWithRetries_ExponentialBackoff(t *testing.T) {
	session := &mockSession{}
	client := &mockTransactionClient{}
	client.On("StartSession").Return(session, nil)
	session.On("WithTransaction", mock.Anything, mock.Anything).Return(nil, writeConflictError()).Twice()
	session.On("WithTransaction", mock.Anything, mock.Anything).Return("success", nil).Once()
	session.On("EndSession", mock.Anything).Return()

	sleeps := recordSleeps(t)

	result, err := TxWithRetries(context.Background(), client, noopTxn)
	require.NoError(t, err)
	require.Equal(t, "success", result)
	require.Equal(t, []time.Duration{100 * time.Millisecond, 200 * time.Millisecond}, *sleeps)
	session.AssertNumberOfCalls(t, "EndSession", 3)
}

func TestTxWithRetries_MaxRetries(t *testing.T) {
	session := &mockSession{}
	client := &mockTransactionClient{}
	client.On("StartSession").Return(session, nil)
	session.On("WithTransaction", mock.Anything, mock.Anything).Return(nil, writeConflictError())
	session.On("EndSession", mock.Anything).Return()

	sleeps := recordSleeps(t)

	result, err := TxWithRetries(context.Background(), client, noopTxn)
	require.Error(t, err)
	require.Nil(t, result)
	require.Len(t, *sleeps, DefaultMaxAttempts-1)
	session.AssertNumberOfCalls(t, "WithTransaction", DefaultMaxAttempts)
}

func TestTxWithRetries_NonRetryableError(t *testing.T) {
	nonRetryable := &mongo.CommandError{
		Code:    11000,
		Message: "duplicate key",
		Name:    "DuplicateKey",
	}
	session := &mockSession{}
	client := &mockTransactionClient{}
	client.On("StartSession").Return(session, nil)
	session.On("WithTransaction", mock.Anything, mock.Anything).Return(nil, nonRetryable).Once()
	session.On("EndSession", mock.Anything).Return()

	sleeps := recordSleeps(t)

	result, err := TxWithRetries(context.Background(), client, noopTxn)
	require.ErrorIs(t, err, nonRetryable)
	require.Nil(t, result)
	require.Empty(t, *sleeps)
	session.AssertExpectations(t)
}
