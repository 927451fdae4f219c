package contract

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"

	"go.dedis.ch/zilliqa/crypto"
	"go.dedis.ch/zilliqa/scilla"
	"go.dedis.ch/zilliqa/transaction"
	"golang.org/x/xerrors"
)

// payload is the data of a transaction that calls a transition.
type payload struct {
	Tag    string             `json:"_tag"`
	Params scilla.NamedValues `json:"params"`
}

// TransitionCall is a call of a transition that is not submitted yet. The
// transaction parameters can be overridden before it is submitted. A call is
// consumed by Call or Send and it must not be shared.
type TransitionCall struct {
	client     Client
	addr       scilla.Address
	transition string
	args       scilla.NamedValues
	override   transaction.Params
	signer     crypto.Signer
	opts       []transaction.Option
	used       bool
}

func newTransitionCall(client Client, addr scilla.Address, transition string,
	args []scilla.NamedValue) *TransitionCall {

	if args == nil {
		args = scilla.NamedValues{}
	}

	return &TransitionCall{
		client:     client,
		addr:       addr,
		transition: transition,
		args:       args,
	}
}

// Transition returns the name of the transition.
func (c *TransitionCall) Transition() string {
	return c.transition
}

// Args returns the arguments of the call.
func (c *TransitionCall) Args() scilla.NamedValues {
	return c.args
}

// Amount sets the amount in Qa sent to the contract.
func (c *TransitionCall) Amount(qa *big.Int) *TransitionCall {
	c.override.Amount = qa
	return c
}

// Nonce sets the nonce instead of the next one of the account.
func (c *TransitionCall) Nonce(nonce uint64) *TransitionCall {
	c.override.Nonce = nonce
	return c
}

// GasPrice sets the gas price in Qa.
func (c *TransitionCall) GasPrice(qa *big.Int) *TransitionCall {
	c.override.GasPrice = qa
	return c
}

// GasLimit sets the gas limit.
func (c *TransitionCall) GasLimit(limit uint64) *TransitionCall {
	c.override.GasLimit = limit
	return c
}

// Signer sets the signer of the transaction instead of the default one of the
// client.
func (c *TransitionCall) Signer(signer crypto.Signer) *TransitionCall {
	c.signer = signer
	return c
}

// ConfirmWith sets the options of the confirmation of the transaction.
func (c *TransitionCall) ConfirmWith(opts ...transaction.Option) *TransitionCall {
	c.opts = append(c.opts, opts...)
	return c
}

// Params returns the parameters of the transaction of the call.
func (c *TransitionCall) Params() (transaction.Params, error) {
	data, err := json.Marshal(payload{Tag: c.transition, Params: c.args})
	if err != nil {
		return transaction.Params{}, xerrors.Errorf("failed to encode payload: %v", err)
	}

	params := transaction.NewBuilder().
		ToAddr(c.addr).
		Amount(big.NewInt(0)).
		Data(string(data)).
		Override(c.override).
		GasPriceIfNone(transaction.DefaultGasPrice).
		GasLimitIfNone(transaction.DefaultGasLimit).
		Build()

	return params, nil
}

// Send submits the transaction without waiting for its confirmation.
func (c *TransitionCall) Send(ctx context.Context) (*transaction.Transaction, error) {
	if c.used {
		return nil, xerrors.Errorf("call of '%s' already submitted", c.transition)
	}

	c.used = true

	params, err := c.Params()
	if err != nil {
		return nil, err
	}

	tx, err := c.client.SendTransaction(ctx, params, c.signer)
	if err != nil {
		return nil, xerrors.Errorf("failed to send transaction: %v", err)
	}

	return tx, nil
}

// Call submits the transaction and waits for its confirmation. It returns the
// confirmed transaction, or a *ReceiptError if the execution failed.
func (c *TransitionCall) Call(ctx context.Context) (*transaction.Response, error) {
	tx, err := c.Send(ctx)
	if err != nil {
		return nil, err
	}

	return confirm(ctx, tx, fmt.Sprintf("call '%s'", c.transition), c.opts)
}

func confirm(ctx context.Context, tx *transaction.Transaction, op string,
	opts []transaction.Option) (*transaction.Response, error) {

	for _, opt := range opts {
		opt(tx)
	}

	resp, err := tx.Confirm(ctx)
	if err != nil {
		return nil, xerrors.Errorf("failed to confirm: %v", err)
	}

	if !resp.Receipt.Success {
		return nil, &ReceiptError{Op: op, ID: tx.ID, Receipt: resp.Receipt}
	}

	return resp, nil
}
