package contract

import (
	"context"
	"encoding/json"
	"math/big"
	"os"
	"regexp"

	"go.dedis.ch/zilliqa/crypto"
	"go.dedis.ch/zilliqa/scilla"
	"go.dedis.ch/zilliqa/scilla/parser"
	"go.dedis.ch/zilliqa/transaction"
	"golang.org/x/xerrors"
)

// ScillaVersionParam is the initialization parameter holding the version of
// the language, added to every deployment.
const ScillaVersionParam = "_scilla_version"

var blankRe = regexp.MustCompile(`(?m)(^[ \t]*\r?\n)|([ \t]+$)`)

// Compress removes the comments, the empty lines and the trailing spaces of the
// source of a contract to reduce the size of the deployment. String literals
// are left untouched.
func Compress(code string) string {
	code = parser.StripComments(code)
	code = blankRe.ReplaceAllString(code, "")

	return code
}

// Factory deploys contracts.
type Factory struct {
	client   Client
	override transaction.Params
	signer   crypto.Signer
	opts     []transaction.Option
}

// FactoryOption is the type of option to configure a factory.
type FactoryOption func(*Factory)

// WithOverride sets transaction parameters of the deployments, like the gas
// limit.
func WithOverride(params transaction.Params) FactoryOption {
	return func(f *Factory) {
		f.override = params
	}
}

// WithSigner sets the signer of the deployments instead of the default one of
// the client.
func WithSigner(signer crypto.Signer) FactoryOption {
	return func(f *Factory) {
		f.signer = signer
	}
}

// WithConfirmOptions sets the options of the confirmation of the deployments.
func WithConfirmOptions(opts ...transaction.Option) FactoryOption {
	return func(f *Factory) {
		f.opts = opts
	}
}

// NewFactory returns a factory that deploys through the client.
func NewFactory(client Client, opts ...FactoryOption) Factory {
	f := Factory{client: client}

	for _, opt := range opts {
		opt(&f)
	}

	return f
}

// DeployFromFile reads the source of the contract at the path and deploys it.
func (f Factory) DeployFromFile(ctx context.Context, path string,
	init scilla.NamedValues) (BaseContract, error) {

	code, err := os.ReadFile(path)
	if err != nil {
		return BaseContract{}, xerrors.Errorf("failed to read contract: %v", err)
	}

	return f.DeployCode(ctx, string(code), init)
}

// DeployCode deploys the contract with the initialization parameters and waits
// for the confirmation. The version of the language is added to the parameters
// if it is missing.
func (f Factory) DeployCode(ctx context.Context, code string,
	init scilla.NamedValues) (BaseContract, error) {

	if init.Get(ScillaVersionParam) == nil {
		init = append(scilla.NamedValues{scilla.Named(ScillaVersionParam, scilla.Uint32, 0)}, init...)
	}

	data, err := json.Marshal(init)
	if err != nil {
		return BaseContract{}, xerrors.Errorf("failed to encode init: %v", err)
	}

	params := transaction.NewBuilder().
		ToAddr(scilla.ZeroAddress).
		Amount(big.NewInt(0)).
		Code(Compress(code)).
		Data(string(data)).
		Override(f.override).
		GasPriceIfNone(transaction.DefaultGasPrice).
		GasLimitIfNone(transaction.DefaultGasLimit).
		Build()

	tx, err := f.client.SendTransaction(ctx, params, f.signer)
	if err != nil {
		return BaseContract{}, xerrors.Errorf("failed to send transaction: %v", err)
	}

	_, err = confirm(ctx, tx, "deployment", f.opts)
	if err != nil {
		return BaseContract{}, err
	}

	if tx.ContractAddress.IsZero() {
		return BaseContract{}, xerrors.Errorf("missing address of contract in transaction %s", tx.ID)
	}

	return NewBaseContract(tx.ContractAddress, f.client), nil
}
