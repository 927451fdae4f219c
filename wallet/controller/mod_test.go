package controller

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.dedis.ch/zilliqa/cli/session"
	"go.dedis.ch/zilliqa/crypto/secp256k1"
	"go.dedis.ch/zilliqa/internal/testing/fake"
	"go.dedis.ch/zilliqa/provider"
	"go.dedis.ch/zilliqa/scilla"
	"go.dedis.ch/zilliqa/transaction"
	"go.dedis.ch/zilliqa/wallet"
)

const testKey = "e19d05c5452598e24caad4a0d85a49146f7be089515c905ae6a19e8a578a6930"

var _ Client = (*wallet.Wallet)(nil)

func TestController_OnStart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "key")
	require.NoError(t, os.WriteFile(path, []byte(testKey+"\n"), 0600))

	inj := session.NewInjector()
	inj.Inject(fakeProvider{})

	ctrl := NewController()

	flags := session.FlagSet{KeyFlag: path, ChainIDFlag: 333}

	err := ctrl.OnStart(context.Background(), flags, inj)
	require.NoError(t, err)

	var w *wallet.Wallet
	require.NoError(t, inj.Resolve(&w))

	signer, err := secp256k1.NewSignerFromHex(testKey)
	require.NoError(t, err)

	account, found := w.Default()
	require.True(t, found)
	require.Equal(t, signer.Address(), account.Address)

	require.NoError(t, ctrl.OnStop(inj))
}

func TestController_OnStartWithoutKey(t *testing.T) {
	inj := session.NewInjector()
	inj.Inject(fakeProvider{})

	err := NewController().OnStart(context.Background(), session.FlagSet{}, inj)
	require.NoError(t, err)

	var w *wallet.Wallet
	require.NoError(t, inj.Resolve(&w))

	_, found := w.Default()
	require.False(t, found)
}

func TestController_OnStartFailures(t *testing.T) {
	ctrl := controller{
		loadKey: func(string) ([]byte, error) {
			return nil, fake.GetError()
		},
	}

	err := ctrl.OnStart(context.Background(), session.FlagSet{}, session.NewInjector())
	require.Error(t, err)
	require.Regexp(t, "^failed to resolve provider: ", err.Error())

	inj := session.NewInjector()
	inj.Inject(fakeProvider{})

	err = ctrl.OnStart(context.Background(), session.FlagSet{ChainIDFlag: 70000}, inj)
	require.EqualError(t, err, "invalid chain id 70000")

	err = ctrl.OnStart(context.Background(), session.FlagSet{KeyFlag: "key"}, inj)
	require.EqualError(t, err, fake.Err("failed to load key"))

	ctrl.loadKey = func(string) ([]byte, error) {
		return []byte{1, 2, 3}, nil
	}

	err = ctrl.OnStart(context.Background(), session.FlagSet{KeyFlag: "key"}, inj)
	require.EqualError(t, err, "invalid key: invalid private key size 3")
}

// -----------------------------------------------------------------------------
// Utility functions

type fakeProvider struct{}

func (fakeProvider) GetSmartContractState(context.Context, scilla.Address) (json.RawMessage, error) {
	return nil, fake.GetError()
}

func (fakeProvider) GetSmartContractSubState(context.Context, scilla.Address,
	string, ...string) (json.RawMessage, error) {

	return nil, fake.GetError()
}

func (fakeProvider) GetSmartContractInit(context.Context, scilla.Address) (scilla.NamedValues, error) {
	return nil, fake.GetError()
}

func (fakeProvider) GetTransaction(context.Context, string) (*transaction.Response, error) {
	return nil, fake.GetError()
}

func (fakeProvider) GetBalance(context.Context, scilla.Address) (provider.Balance, error) {
	return provider.Balance{}, fake.GetError()
}

func (fakeProvider) GetNetworkID(context.Context) (uint16, error) {
	return 0, fake.GetError()
}

func (fakeProvider) CreateTransaction(context.Context, transaction.Request) (transaction.CreateResponse, error) {
	return transaction.CreateResponse{}, fake.GetError()
}
