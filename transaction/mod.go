// Package transaction defines the transactions of the chain: the parameters a
// client fills, the canonical encoding that is signed, the request sent to the
// RPC endpoint and the receipts returned once the transaction is confirmed.
package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.dedis.ch/zilliqa"
	"go.dedis.ch/zilliqa/scilla"
	"golang.org/x/xerrors"
)

const (
	// DefaultConfirmInterval is the time between two polls of a transaction.
	DefaultConfirmInterval = 10 * time.Second

	// DefaultConfirmAttempts is the number of polls before giving up.
	DefaultConfirmAttempts = 33
)

// Fetcher is the interface to read a transaction from the chain.
type Fetcher interface {
	GetTransaction(ctx context.Context, id string) (*Response, error)
}

// ConfirmError is returned when a transaction is still not confirmed after the
// maximum number of attempts.
type ConfirmError struct {
	ID       string
	Attempts int
	Err      error
}

// Error implements error.
func (e *ConfirmError) Error() string {
	return fmt.Sprintf("transaction %s not confirmed after %d attempts: %v",
		e.ID, e.Attempts, e.Err)
}

// Unwrap returns the error of the last attempt.
func (e *ConfirmError) Unwrap() error {
	return e.Err
}

// Transaction is a transaction that has been submitted to the chain. It can be
// confirmed by polling the chain until it is included in a block.
type Transaction struct {
	// ID is the hash of the transaction.
	ID string
	// Info is the message of the node that accepted the transaction.
	Info string
	// ContractAddress is the address of the contract for deployments.
	ContractAddress scilla.Address

	fetcher  Fetcher
	interval time.Duration
	attempts int
	logger   zerolog.Logger
	response *Response
}

// Option is the type of option to configure a transaction.
type Option func(*Transaction)

// WithConfirmPolicy sets the interval and the number of attempts used by
// Confirm.
func WithConfirmPolicy(interval time.Duration, attempts int) Option {
	return func(tx *Transaction) {
		tx.interval = interval
		tx.attempts = attempts
	}
}

// WithLogger sets the logger of the transaction.
func WithLogger(logger zerolog.Logger) Option {
	return func(tx *Transaction) {
		tx.logger = logger
	}
}

// NewTransaction creates the transaction of the creation response.
func NewTransaction(resp CreateResponse, fetcher Fetcher, opts ...Option) *Transaction {
	tx := &Transaction{
		ID:              resp.TranID,
		Info:            resp.Info,
		ContractAddress: resp.ContractAddress,
		fetcher:         fetcher,
		interval:        DefaultConfirmInterval,
		attempts:        DefaultConfirmAttempts,
		logger:          zilliqa.Logger.With().Str("component", "transaction").Logger(),
	}

	for _, opt := range opts {
		opt(tx)
	}

	return tx
}

// Response returns the response of the confirmation, or nil if the transaction
// is not confirmed yet.
func (tx *Transaction) Response() *Response {
	return tx.response
}

// TryConfirm polls the transaction once. It returns the response if the
// transaction has been included in a block.
func (tx *Transaction) TryConfirm(ctx context.Context) (*Response, error) {
	resp, err := tx.fetcher.GetTransaction(ctx, tx.ID)
	if err != nil {
		return nil, xerrors.Errorf("failed to get transaction: %v", err)
	}

	tx.response = resp

	return resp, nil
}

// Confirm polls the transaction until it is found or the maximum number of
// attempts is reached. It returns early if the context is done.
func (tx *Transaction) Confirm(ctx context.Context) (*Response, error) {
	var lastErr error

	for attempt := 1; attempt <= tx.attempts; attempt++ {
		resp, err := tx.TryConfirm(ctx)
		if err == nil {
			tx.logger.Debug().
				Str("id", tx.ID).
				Int("attempt", attempt).
				Bool("success", resp.Receipt.Success).
				Msg("transaction confirmed")

			return resp, nil
		}

		lastErr = err

		tx.logger.Debug().Str("id", tx.ID).Int("attempt", attempt).Err(err).Msg("not confirmed yet")

		if attempt == tx.attempts {
			break
		}

		select {
		case <-ctx.Done():
			return nil, xerrors.Errorf("confirmation interrupted: %v", ctx.Err())
		case <-time.After(tx.interval):
		}
	}

	if lastErr == nil {
		lastErr = xerrors.New("no attempt")
	}

	return nil, &ConfirmError{ID: tx.ID, Attempts: tx.attempts, Err: lastErr}
}
