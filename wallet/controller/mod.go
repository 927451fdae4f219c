// Package controller implements the CLI module of the wallet. It loads the key
// of the default account and sets the commands that send transactions or read
// the contracts.
package controller

import (
	"context"
	"math"
	"math/big"

	"go.dedis.ch/zilliqa/cli"
	"go.dedis.ch/zilliqa/cli/session"
	"go.dedis.ch/zilliqa/contract"
	"go.dedis.ch/zilliqa/crypto/loader"
	"go.dedis.ch/zilliqa/crypto/secp256k1"
	"go.dedis.ch/zilliqa/scilla"
	"go.dedis.ch/zilliqa/transaction"
	"go.dedis.ch/zilliqa/wallet"
	"golang.org/x/xerrors"
)

// Names of the global flags of the module.
const (
	KeyFlag     = "key"
	ChainIDFlag = "chain-id"
)

// Client is the part of the wallet used by the commands.
type Client interface {
	contract.Client

	Default() (wallet.Account, bool)
	Transfer(ctx context.Context, to scilla.Address, qa *big.Int) (*transaction.Transaction, error)
}

// NewController returns the initializer of the wallet. It expects the provider
// to be injected beforehand.
func NewController() session.Initializer {
	return controller{
		loadKey: func(path string) ([]byte, error) {
			return loader.NewFileLoader(path).Load()
		},
	}
}

// controller is the initializer of the wallet module.
//
// - implements session.Initializer
type controller struct {
	loadKey func(path string) ([]byte, error)
}

// SetCommands implements session.Initializer.
func (c controller) SetCommands(builder session.Builder) {
	builder.SetGlobalFlags(cli.StringFlag{
		Name:   KeyFlag,
		Usage:  "path to the hex-encoded private key of the default account",
		EnvVar: "ZILLIQA_KEY",
	}, cli.IntFlag{
		Name:   ChainIDFlag,
		EnvVar: "ZILLIQA_CHAIN_ID",
		Usage: "chain identifier of the network, fetched from the endpoint if zero",
	})

	waitFlag := cli.BoolFlag{
		Name:  "wait",
		Usage: "wait for the confirmation of the transaction",
	}

	gasFlag := cli.Uint64Flag{
		Name:  "gas-limit",
		Usage: "gas limit of the transaction, or the default one if zero",
	}

	cmd := builder.SetCommand("wallet")

	sub := cmd.SetSubCommand("address")
	sub.SetDescription("print the address of the default account")
	sub.SetFlags(cli.BoolFlag{
		Name:  "bech32",
		Usage: "print the bech32 form of the address",
	})
	sub.SetAction(builder.MakeAction(addressAction{}))

	sub = cmd.SetSubCommand("transfer")
	sub.SetDescription("transfer an amount of ZIL to an account")
	sub.SetFlags(cli.StringFlag{
		Name:     "to",
		Usage:    "address of the recipient, in hexadecimal or bech32 form",
		Required: true,
	}, cli.StringFlag{
		Name:     "amount",
		Usage:    "amount in ZIL, for instance 0.5",
		Required: true,
	}, waitFlag)
	sub.SetAction(builder.MakeAction(transferAction{}))

	cmd = builder.SetCommand("contract")

	sub = cmd.SetSubCommand("state")
	sub.SetDescription("print the state of a contract")
	sub.SetFlags(cli.StringFlag{
		Name:     "address",
		Usage:    "address, hexadecimal or bech32, or name in the book of the contract",
		Required: true,
	}, cli.StringFlag{
		Name:  "field",
		Usage: "if provided, only print this field",
	}, cli.StringSliceFlag{
		Name:  "index",
		Usage: "keys of the map entry of the field",
	})
	sub.SetAction(builder.MakeAction(stateAction{}))

	sub = cmd.SetSubCommand("init")
	sub.SetDescription("print the initialization parameters of a contract")
	sub.SetFlags(cli.StringFlag{
		Name:     "address",
		Usage:    "address, hexadecimal or bech32, or name in the book of the contract",
		Required: true,
	})
	sub.SetAction(builder.MakeAction(initAction{}))

	sub = cmd.SetSubCommand("call")
	sub.SetDescription("call a transition of a contract")
	sub.SetFlags(cli.StringFlag{
		Name:     "address",
		Usage:    "address, hexadecimal or bech32, or name in the book of the contract",
		Required: true,
	}, cli.StringFlag{
		Name:     "transition",
		Usage:    "name of the transition",
		Required: true,
	}, cli.StringSliceFlag{
		Name:  "arg",
		Usage: "argument of the transition as name=type=value",
	}, cli.StringFlag{
		Name:  "amount",
		Usage: "amount in ZIL sent to the contract",
	}, gasFlag, waitFlag)
	sub.SetAction(builder.MakeAction(callAction{}))

	sub = cmd.SetSubCommand("deploy")
	sub.SetDescription("deploy a contract and wait for its confirmation")
	sub.SetFlags(cli.StringFlag{
		Name:     "file",
		Usage:    "path to the source of the contract",
		Required: true,
	}, cli.StringSliceFlag{
		Name:  "init",
		Usage: "initialization parameter as name=type=value",
	}, cli.StringFlag{
		Name:  "name",
		Usage: "if provided, store the address in the book under this name",
	}, gasFlag)
	sub.SetAction(builder.MakeAction(deployAction{}))
}

// OnStart implements session.Initializer. It creates the wallet on top of the
// provider and adds the account of the key if provided.
func (c controller) OnStart(ctx context.Context, flags cli.Flags, inj session.Injector) error {
	var p wallet.Provider

	err := inj.Resolve(&p)
	if err != nil {
		return xerrors.Errorf("failed to resolve provider: %v", err)
	}

	var opts []wallet.Option

	chainID := flags.Int(ChainIDFlag)
	if chainID < 0 || chainID > math.MaxUint16 {
		return xerrors.Errorf("invalid chain id %d", chainID)
	}

	if chainID > 0 {
		opts = append(opts, wallet.WithChainID(uint16(chainID)))
	}

	w := wallet.New(p, opts...)

	path := flags.Path(KeyFlag)
	if path != "" {
		data, err := c.loadKey(path)
		if err != nil {
			return xerrors.Errorf("failed to load key: %v", err)
		}

		signer, err := secp256k1.NewSignerFromBytes(data)
		if err != nil {
			return xerrors.Errorf("invalid key: %v", err)
		}

		_, err = w.Add(signer)
		if err != nil {
			return xerrors.Errorf("failed to add account: %v", err)
		}
	}

	inj.Inject(w)

	return nil
}

// OnStop implements session.Initializer.
func (c controller) OnStop(session.Injector) error {
	return nil
}
