// Package main provides a CLI to manage the keys and the accounts of the
// Zilliqa chain, read the state of the contracts and call their transitions.
//
// Unless stated otherwise, the commands use the testnet endpoint:
//
//	zilcli key new --save private.key
//	zilcli --key private.key wallet address
//	zilcli --key private.key --book contracts.db contract deploy \
//		--file HelloWorld.scilla --init owner=ByStr20=0x... --name hello
//	zilcli --book contracts.db contract state --address hello
package main

import (
	"fmt"
	"io"
	"os"

	"go.dedis.ch/zilliqa/cli"
	"go.dedis.ch/zilliqa/cli/session"
	"go.dedis.ch/zilliqa/cli/ucli"
	book "go.dedis.ch/zilliqa/contract/book/controller"
	key "go.dedis.ch/zilliqa/crypto/secp256k1/command"
	monitor "go.dedis.ch/zilliqa/monitor/controller"
	provider "go.dedis.ch/zilliqa/provider/controller"
	wallet "go.dedis.ch/zilliqa/wallet/controller"
)

var builder cli.Builder = ucli.NewBuilder("zilcli", nil)
var printer io.Writer = os.Stderr

func main() {
	err := run(os.Args, os.Stdout,
		book.NewController(),
		provider.NewController(),
		wallet.NewController(),
		monitor.NewController(),
	)
	if err != nil {
		fmt.Fprintf(printer, "%+v\n", err)
		os.Exit(1)
	}
}

// run builds the application out of the modules and runs it. The modules are
// started in order so that the wallet finds the provider.
func run(args []string, out io.Writer, inits ...session.Initializer) error {
	app := session.NewBuilder(builder, out, inits...)

	key.Initializer{}.SetCommands(app)

	err := app.Build().Run(args)
	if err != nil {
		return err
	}

	return nil
}
