package controller

import (
	"fmt"

	"go.dedis.ch/zilliqa/cli/session"
	"go.dedis.ch/zilliqa/scilla"
	"go.dedis.ch/zilliqa/transaction"
	"go.dedis.ch/zilliqa/units"
	"golang.org/x/xerrors"
)

type infoAction struct{}

// Execute implements session.ActionTemplate. It prints the network and the
// counters of the chain.
func (a infoAction) Execute(ctx session.Context) error {
	var client Client

	err := ctx.Injector.Resolve(&client)
	if err != nil {
		return xerrors.Errorf("failed to resolve client: %v", err)
	}

	chainID, err := client.GetNetworkID(ctx.Context)
	if err != nil {
		return xerrors.Errorf("failed to get network id: %v", err)
	}

	info, err := client.GetBlockchainInfo(ctx.Context)
	if err != nil {
		return xerrors.Errorf("failed to get blockchain info: %v", err)
	}

	gasPrice, err := client.GetMinimumGasPrice(ctx.Context)
	if err != nil {
		return xerrors.Errorf("failed to get minimum gas price: %v", err)
	}

	fmt.Fprintf(ctx.Out, "Chain ID: %d\n", chainID)
	fmt.Fprintf(ctx.Out, "Version: %d\n", transaction.Version(chainID))
	fmt.Fprintf(ctx.Out, "Peers: %d\n", info.NumPeers)
	fmt.Fprintf(ctx.Out, "TX blocks: %s\n", info.NumTxBlocks)
	fmt.Fprintf(ctx.Out, "DS blocks: %s\n", info.NumDSBlocks)
	fmt.Fprintf(ctx.Out, "Transactions: %s\n", info.NumTransactions)
	fmt.Fprintf(ctx.Out, "Minimum gas price: %s Li\n", units.FormatLi(gasPrice))

	return nil
}

type balanceAction struct{}

// Execute implements session.ActionTemplate. It prints the balance in ZIL and
// the nonce of the account.
func (a balanceAction) Execute(ctx session.Context) error {
	var client Client

	err := ctx.Injector.Resolve(&client)
	if err != nil {
		return xerrors.Errorf("failed to resolve client: %v", err)
	}

	addr, err := scilla.ParseAddress(ctx.Flags.String("address"))
	if err != nil {
		return xerrors.Errorf("invalid address: %v", err)
	}

	balance, err := client.GetBalance(ctx.Context, addr)
	if err != nil {
		return xerrors.Errorf("failed to get balance: %v", err)
	}

	amount, err := balance.Amount()
	if err != nil {
		return xerrors.Errorf("invalid balance: %v", err)
	}

	fmt.Fprintf(ctx.Out, "Balance: %s ZIL\n", units.FormatZil(amount))
	fmt.Fprintf(ctx.Out, "Nonce: %d\n", balance.Nonce)

	return nil
}

type contractsAction struct{}

// Execute implements session.ActionTemplate. It prints one contract address
// per line.
func (a contractsAction) Execute(ctx session.Context) error {
	var client Client

	err := ctx.Injector.Resolve(&client)
	if err != nil {
		return xerrors.Errorf("failed to resolve client: %v", err)
	}

	addr, err := scilla.ParseAddress(ctx.Flags.String("address"))
	if err != nil {
		return xerrors.Errorf("invalid address: %v", err)
	}

	contracts, err := client.GetSmartContracts(ctx.Context, addr)
	if err != nil {
		return xerrors.Errorf("failed to get contracts: %v", err)
	}

	for _, contract := range contracts {
		fmt.Fprintln(ctx.Out, contract.Checksum())
	}

	return nil
}
