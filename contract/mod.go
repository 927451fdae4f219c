// Package contract implements the runtime surface of the contract bindings. A
// binding embeds a BaseContract which builds the transition calls and reads
// the state and the initialization parameters of the contract.
package contract

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"go.dedis.ch/zilliqa"
	"go.dedis.ch/zilliqa/crypto"
	"go.dedis.ch/zilliqa/scilla"
	"go.dedis.ch/zilliqa/transaction"
	"golang.org/x/xerrors"
)

// Reader is the interface to read the contracts deployed on the chain.
type Reader interface {
	GetSmartContractState(ctx context.Context, addr scilla.Address) (json.RawMessage, error)

	GetSmartContractSubState(ctx context.Context, addr scilla.Address, field string,
		indices ...string) (json.RawMessage, error)

	GetSmartContractInit(ctx context.Context, addr scilla.Address) (scilla.NamedValues, error)
}

// Client is the interface of the collaborator that signs and submits the
// transactions.
type Client interface {
	Reader

	// SendTransaction signs the transaction with the signer, or the default
	// one of the client when it is nil, and submits it.
	SendTransaction(ctx context.Context, params transaction.Params,
		signer crypto.Signer) (*transaction.Transaction, error)
}

// ReceiptError is returned when a transaction is confirmed but its execution
// failed.
type ReceiptError struct {
	// Op describes the operation, like "deployment" or "call 'transfer'".
	Op      string
	ID      string
	Receipt transaction.Receipt
}

// Error implements error.
func (e *ReceiptError) Error() string {
	msgs := make([]string, len(e.Receipt.Exceptions))
	for i, ex := range e.Receipt.Exceptions {
		msgs[i] = ex.Message
	}

	if len(msgs) == 0 {
		return fmt.Sprintf("%s failed in transaction %s", e.Op, e.ID)
	}

	return fmt.Sprintf("%s failed in transaction %s: %s", e.Op, e.ID, strings.Join(msgs, "; "))
}

// State is the state of a contract indexed by field name. The values are not
// decoded until a field is read.
type State map[string]scilla.Value

// BaseContract is the common part of the contract bindings.
type BaseContract struct {
	Address scilla.Address
	Client  Client

	logger zerolog.Logger
}

// NewBaseContract returns a contract bound to the address.
func NewBaseContract(addr scilla.Address, client Client) BaseContract {
	return BaseContract{
		Address: addr,
		Client:  client,
		logger:  zilliqa.Logger.With().Str("component", "contract").Logger(),
	}
}

// NewCall returns a call of the transition with the arguments. The call is not
// submitted until Call or Send is invoked.
func (c BaseContract) NewCall(transition string, args ...scilla.NamedValue) *TransitionCall {
	return newTransitionCall(c.Client, c.Address, transition, args)
}

// GetState fetches the current state of the contract.
func (c BaseContract) GetState(ctx context.Context) (State, error) {
	data, err := c.Client.GetSmartContractState(ctx, c.Address)
	if err != nil {
		return nil, xerrors.Errorf("failed to fetch state: %v", err)
	}

	state, err := c.parseState(data)
	if err != nil {
		return nil, xerrors.Errorf("failed to parse state: %v", err)
	}

	return state, nil
}

// GetSubState fetches the value of a single field, optionally narrowed to the
// map entries of the indices.
func (c BaseContract) GetSubState(ctx context.Context, field string,
	indices ...string) (scilla.Value, error) {

	data, err := c.Client.GetSmartContractSubState(ctx, c.Address, field, indices...)
	if err != nil {
		return nil, xerrors.Errorf("failed to fetch field: %v", err)
	}

	state, err := c.parseState(data)
	if err != nil {
		return nil, xerrors.Errorf("failed to parse field: %v", err)
	}

	value, found := state[field]
	if !found {
		return nil, &FieldError{Source: SourceState, Name: field}
	}

	return value, nil
}

// GetInit fetches the initialization parameters of the contract.
func (c BaseContract) GetInit(ctx context.Context) (scilla.NamedValues, error) {
	init, err := c.Client.GetSmartContractInit(ctx, c.Address)
	if err != nil {
		return nil, xerrors.Errorf("failed to fetch init: %v", err)
	}

	return init, nil
}

// parseState parses the fields of the JSON object. A field that is not a wire
// value is kept as invalid so that reading it reports the raw value.
func (c BaseContract) parseState(data json.RawMessage) (State, error) {
	var fields map[string]json.RawMessage

	err := json.Unmarshal(data, &fields)
	if err != nil {
		return nil, xerrors.Errorf("failed to decode object: %v", err)
	}

	state := make(State, len(fields))

	for name, raw := range fields {
		value, err := scilla.ParseValue(raw)
		if err != nil {
			c.logger.Warn().Str("field", name).Err(err).Msg("invalid field")
			value = scilla.Invalid{Raw: raw, Err: err}
		}

		state[name] = value
	}

	return state, nil
}
