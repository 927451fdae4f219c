// Package wallet implements a client of the contracts that holds the accounts
// signing the transactions. It fills the missing parameters of a transaction,
// like the version and the nonce, before signing and submitting it.
package wallet

import (
	"context"
	"encoding/json"
	"math/big"
	"sort"
	"sync"

	"github.com/rs/zerolog"
	"go.dedis.ch/zilliqa"
	"go.dedis.ch/zilliqa/contract"
	"go.dedis.ch/zilliqa/crypto"
	"go.dedis.ch/zilliqa/crypto/secp256k1"
	"go.dedis.ch/zilliqa/provider"
	"go.dedis.ch/zilliqa/scilla"
	"go.dedis.ch/zilliqa/transaction"
	"golang.org/x/xerrors"
)

// Provider is the interface of the endpoint used by the wallet.
type Provider interface {
	contract.Reader
	transaction.Fetcher

	GetBalance(ctx context.Context, addr scilla.Address) (provider.Balance, error)
	GetNetworkID(ctx context.Context) (uint16, error)
	CreateTransaction(ctx context.Context, req transaction.Request) (transaction.CreateResponse, error)
}

// Account is a signer and the address it controls.
type Account struct {
	Address scilla.Address
	Signer  crypto.Signer
}

// NewAccount returns the account of the signer.
func NewAccount(signer crypto.Signer) (Account, error) {
	addr, err := crypto.AddressOf(signer.GetPublicKey())
	if err != nil {
		return Account{}, xerrors.Errorf("failed to derive address: %v", err)
	}

	return Account{Address: addr, Signer: signer}, nil
}

// Wallet is a set of accounts with a default one that signs the transactions
// when no signer is given. It implements contract.Client.
type Wallet struct {
	sync.Mutex
	provider Provider
	chainID  uint16
	accounts map[scilla.Address]Account
	def      *scilla.Address
	logger   zerolog.Logger
	txOpts   []transaction.Option

	nonceLock sync.Mutex
	nonces    map[scilla.Address]uint64
}

// Option is the type of option to configure a wallet.
type Option func(*Wallet)

// WithChainID sets the chain identifier instead of fetching it from the
// network.
func WithChainID(chainID uint16) Option {
	return func(w *Wallet) {
		w.chainID = chainID
	}
}

// WithLogger sets the logger of the wallet.
func WithLogger(logger zerolog.Logger) Option {
	return func(w *Wallet) {
		w.logger = logger
	}
}

// WithConfirmOptions sets the options of the transactions returned by the
// wallet.
func WithConfirmOptions(opts ...transaction.Option) Option {
	return func(w *Wallet) {
		w.txOpts = opts
	}
}

// New creates an empty wallet using the provider.
func New(p Provider, opts ...Option) *Wallet {
	w := &Wallet{
		provider: p,
		accounts: make(map[scilla.Address]Account),
		nonces:   make(map[scilla.Address]uint64),
		logger:   zilliqa.Logger.With().Str("component", "wallet").Logger(),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Add adds the account of the signer. The first account becomes the default
// one.
func (w *Wallet) Add(signer crypto.Signer) (Account, error) {
	account, err := NewAccount(signer)
	if err != nil {
		return account, err
	}

	w.Lock()
	defer w.Unlock()

	w.accounts[account.Address] = account

	if w.def == nil {
		addr := account.Address
		w.def = &addr
	}

	return account, nil
}

// Create adds a new account with a random key.
func (w *Wallet) Create() (Account, error) {
	return w.Add(secp256k1.NewSigner())
}

// Remove removes the account. It returns false if it does not exist. The
// wallet has no default account after removing it.
func (w *Wallet) Remove(addr scilla.Address) bool {
	w.Lock()
	defer w.Unlock()

	_, found := w.accounts[addr]
	if !found {
		return false
	}

	delete(w.accounts, addr)

	if w.def != nil && *w.def == addr {
		w.def = nil
	}

	return true
}

// SetDefault sets the default account.
func (w *Wallet) SetDefault(addr scilla.Address) error {
	w.Lock()
	defer w.Unlock()

	_, found := w.accounts[addr]
	if !found {
		return xerrors.Errorf("account %s does not exist", addr)
	}

	w.def = &addr

	return nil
}

// Default returns the default account if any.
func (w *Wallet) Default() (Account, bool) {
	w.Lock()
	defer w.Unlock()

	if w.def == nil {
		return Account{}, false
	}

	return w.accounts[*w.def], true
}

// Accounts returns the accounts sorted by address.
func (w *Wallet) Accounts() []Account {
	w.Lock()
	defer w.Unlock()

	accounts := make([]Account, 0, len(w.accounts))
	for _, account := range w.accounts {
		accounts = append(accounts, account)
	}

	sort.Slice(accounts, func(i, j int) bool {
		return accounts[i].Address.Hex() < accounts[j].Address.Hex()
	})

	return accounts
}

// SendTransaction implements contract.Client. It fills the version and the
// nonce when they are not set, signs the transaction and submits it.
func (w *Wallet) SendTransaction(ctx context.Context, params transaction.Params,
	signer crypto.Signer) (*transaction.Transaction, error) {

	account, err := w.account(signer)
	if err != nil {
		return nil, err
	}

	if transaction.ChainID(params.Version) == 0 {
		chainID, err := w.getChainID(ctx)
		if err != nil {
			return nil, err
		}

		params.Version = transaction.Version(chainID)
	}

	if params.Nonce == 0 {
		params.Nonce, err = w.nextNonce(ctx, account.Address)
		if err != nil {
			return nil, err
		}
	}

	signed, err := transaction.Sign(params, account.Signer)
	if err != nil {
		w.resetNonce(account.Address)
		return nil, xerrors.Errorf("failed to sign transaction: %v", err)
	}

	resp, err := w.provider.CreateTransaction(ctx, signed.Request())
	if err != nil {
		w.resetNonce(account.Address)
		return nil, xerrors.Errorf("failed to submit transaction: %v", err)
	}

	w.logger.Debug().
		Str("id", resp.TranID).
		Str("from", account.Address.String()).
		Uint64("nonce", params.Nonce).
		Msg("transaction submitted")

	return transaction.NewTransaction(resp, w.provider, w.txOpts...), nil
}

// Transfer sends the amount in Qa from the default account to the recipient.
func (w *Wallet) Transfer(ctx context.Context, to scilla.Address,
	qa *big.Int) (*transaction.Transaction, error) {

	params := transaction.NewBuilder().
		Pay(qa, to).
		GasPriceIfNone(transaction.DefaultGasPrice).
		Build()

	return w.SendTransaction(ctx, params, nil)
}

// GetSmartContractState implements contract.Reader.
func (w *Wallet) GetSmartContractState(ctx context.Context,
	addr scilla.Address) (json.RawMessage, error) {

	return w.provider.GetSmartContractState(ctx, addr)
}

// GetSmartContractSubState implements contract.Reader.
func (w *Wallet) GetSmartContractSubState(ctx context.Context, addr scilla.Address,
	field string, indices ...string) (json.RawMessage, error) {

	return w.provider.GetSmartContractSubState(ctx, addr, field, indices...)
}

// GetSmartContractInit implements contract.Reader.
func (w *Wallet) GetSmartContractInit(ctx context.Context,
	addr scilla.Address) (scilla.NamedValues, error) {

	return w.provider.GetSmartContractInit(ctx, addr)
}

func (w *Wallet) account(signer crypto.Signer) (Account, error) {
	if signer != nil {
		return NewAccount(signer)
	}

	account, found := w.Default()
	if !found {
		return account, xerrors.New("no default account")
	}

	return account, nil
}

func (w *Wallet) getChainID(ctx context.Context) (uint16, error) {
	w.Lock()
	chainID := w.chainID
	w.Unlock()

	if chainID != 0 {
		return chainID, nil
	}

	chainID, err := w.provider.GetNetworkID(ctx)
	if err != nil {
		return 0, xerrors.Errorf("failed to get chain id: %v", err)
	}

	w.Lock()
	w.chainID = chainID
	w.Unlock()

	return chainID, nil
}

// nextNonce reserves the next nonce of the account. It is the one after the
// nonce of the chain, or after the last one reserved by the wallet if it is
// ahead of the chain.
func (w *Wallet) nextNonce(ctx context.Context, addr scilla.Address) (uint64, error) {
	w.nonceLock.Lock()
	defer w.nonceLock.Unlock()

	balance, err := w.provider.GetBalance(ctx, addr)
	if err != nil {
		return 0, xerrors.Errorf("failed to get nonce: %v", err)
	}

	next := balance.Nonce + 1

	last, found := w.nonces[addr]
	if found && last >= next {
		next = last + 1
	}

	w.nonces[addr] = next

	return next, nil
}

func (w *Wallet) resetNonce(addr scilla.Address) {
	w.nonceLock.Lock()
	delete(w.nonces, addr)
	w.nonceLock.Unlock()
}
