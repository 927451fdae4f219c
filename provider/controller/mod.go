// Package controller implements the CLI module of the provider. It injects the
// provider of the endpoint and sets the commands to read the chain.
package controller

import (
	"context"
	"math/big"

	"go.dedis.ch/zilliqa/cli"
	"go.dedis.ch/zilliqa/cli/session"
	"go.dedis.ch/zilliqa/provider"
	"go.dedis.ch/zilliqa/scilla"
)

// EndpointFlag is the name of the global flag of the endpoint.
const EndpointFlag = "endpoint"

// Client is the part of the provider used by the commands.
type Client interface {
	GetNetworkID(context.Context) (uint16, error)
	GetBlockchainInfo(context.Context) (provider.BlockchainInfo, error)
	GetMinimumGasPrice(context.Context) (*big.Int, error)
	GetBalance(context.Context, scilla.Address) (provider.Balance, error)
	GetSmartContracts(context.Context, scilla.Address) ([]scilla.Address, error)
}

// NewController returns the initializer of the provider.
func NewController() session.Initializer {
	return controller{
		newProvider: func(url string) interface{} { return provider.New(url) },
	}
}

// controller is the initializer of the provider module.
//
// - implements session.Initializer
type controller struct {
	newProvider func(url string) interface{}
}

// SetCommands implements session.Initializer.
func (c controller) SetCommands(builder session.Builder) {
	builder.SetGlobalFlags(cli.StringFlag{
		Name:   EndpointFlag,
		Usage:  "URL of the JSON-RPC endpoint",
		EnvVar: "ZILLIQA_ENDPOINT",
		Value:  provider.TestnetURL,
	})

	cmd := builder.SetCommand("chain")

	sub := cmd.SetSubCommand("info")
	sub.SetDescription("print a summary of the state of the chain")
	sub.SetAction(builder.MakeAction(infoAction{}))

	cmd = builder.SetCommand("account")

	sub = cmd.SetSubCommand("balance")
	sub.SetDescription("print the balance and the nonce of an account")
	sub.SetFlags(cli.StringFlag{
		Name:     "address",
		Usage:    "address of the account, in hexadecimal or bech32 form",
		Required: true,
	})
	sub.SetAction(builder.MakeAction(balanceAction{}))

	sub = cmd.SetSubCommand("contracts")
	sub.SetDescription("list the contracts deployed by an account")
	sub.SetFlags(cli.StringFlag{
		Name:     "address",
		Usage:    "address of the account, in hexadecimal or bech32 form",
		Required: true,
	})
	sub.SetAction(builder.MakeAction(contractsAction{}))
}

// OnStart implements session.Initializer. It injects the provider of the
// endpoint.
func (c controller) OnStart(ctx context.Context, flags cli.Flags, inj session.Injector) error {
	inj.Inject(c.newProvider(flags.String(EndpointFlag)))

	return nil
}

// OnStop implements session.Initializer.
func (c controller) OnStop(session.Injector) error {
	return nil
}
