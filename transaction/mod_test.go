package transaction

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.dedis.ch/zilliqa/internal/testing/fake"
	"golang.org/x/xerrors"
)

func TestTransaction_New(t *testing.T) {
	resp := CreateResponse{TranID: "abc", Info: "Contract Creation txn, sent to shard"}
	resp.ContractAddress[0] = 0xaa

	tx := NewTransaction(resp, fakeFetcher{})
	require.Equal(t, "abc", tx.ID)
	require.Equal(t, resp.Info, tx.Info)
	require.Equal(t, resp.ContractAddress, tx.ContractAddress)
	require.Equal(t, DefaultConfirmInterval, tx.interval)
	require.Equal(t, DefaultConfirmAttempts, tx.attempts)
	require.Nil(t, tx.Response())
}

func TestTransaction_TryConfirm(t *testing.T) {
	tx := NewTransaction(CreateResponse{TranID: "abc"}, fakeFetcher{})

	resp, err := tx.TryConfirm(context.Background())
	require.NoError(t, err)
	require.Equal(t, "abc", resp.ID)
	require.Equal(t, resp, tx.Response())

	tx = NewTransaction(CreateResponse{TranID: "abc"}, fakeFetcher{err: fake.GetError()})

	_, err = tx.TryConfirm(context.Background())
	require.EqualError(t, err, fake.Err("failed to get transaction"))
}

func TestTransaction_Confirm(t *testing.T) {
	logger, check := fake.NoLog()
	defer check(t)

	fetcher := &countingFetcher{failures: 2, calls: fake.NewCall()}

	tx := NewTransaction(CreateResponse{TranID: "abc"}, fetcher,
		WithConfirmPolicy(time.Millisecond, 5), WithLogger(logger))

	resp, err := tx.Confirm(context.Background())
	require.NoError(t, err)
	require.True(t, resp.Receipt.Success)
	require.Equal(t, 3, fetcher.calls.Len())
}

func TestTransaction_ConfirmExhausted(t *testing.T) {
	logger, check := fake.NoLog()
	defer check(t)

	fetcher := &countingFetcher{failures: 10, calls: fake.NewCall()}

	tx := NewTransaction(CreateResponse{TranID: "abc"}, fetcher,
		WithConfirmPolicy(time.Millisecond, 3), WithLogger(logger))

	_, err := tx.Confirm(context.Background())
	require.Error(t, err)
	require.Equal(t, 3, fetcher.calls.Len())

	var confirmErr *ConfirmError
	require.True(t, xerrors.As(err, &confirmErr))
	require.Equal(t, "abc", confirmErr.ID)
	require.Equal(t, 3, confirmErr.Attempts)
	require.Equal(t,
		"transaction abc not confirmed after 3 attempts: "+fake.Err("failed to get transaction"),
		err.Error())
}

func TestTransaction_ConfirmInterrupted(t *testing.T) {
	logger, check := fake.NoLog()
	defer check(t)

	fetcher := &countingFetcher{failures: 10, calls: fake.NewCall()}

	tx := NewTransaction(CreateResponse{TranID: "abc"}, fetcher,
		WithConfirmPolicy(time.Hour, 3), WithLogger(logger))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := tx.Confirm(ctx)
	require.EqualError(t, err, "confirmation interrupted: context canceled")
	require.Equal(t, 1, fetcher.calls.Len())
}

func TestVersion(t *testing.T) {
	require.Equal(t, uint32(65537), Version(MainnetChainID))
	require.Equal(t, uint32(333<<16|1), Version(TestnetChainID))
	require.Equal(t, TestnetChainID, ChainID(Version(TestnetChainID)))
}

// -----------------------------------------------------------------------------
// Utility functions

type fakeFetcher struct {
	err error
}

func (f fakeFetcher) GetTransaction(ctx context.Context, id string) (*Response, error) {
	if f.err != nil {
		return nil, f.err
	}

	return &Response{ID: id, Receipt: Receipt{Success: true}}, nil
}

type countingFetcher struct {
	failures int
	calls    *fake.Call
}

func (f *countingFetcher) GetTransaction(ctx context.Context, id string) (*Response, error) {
	f.calls.Add(id)

	if f.calls.Len() <= f.failures {
		return nil, fake.GetError()
	}

	return &Response{ID: id, Receipt: Receipt{Success: true}}, nil
}
