// Package command defines cli commands to manage the secp256k1 keys of the
// accounts.
package command

import (
	"os"

	"go.dedis.ch/zilliqa/cli"
	"go.dedis.ch/zilliqa/crypto/loader"
	"go.dedis.ch/zilliqa/crypto/secp256k1"
)

// Initializer implements the initializer of the key commands.
//
// - implements cli.Initializer
type Initializer struct {
}

// SetCommands implements cli.Initializer.
func (i Initializer) SetCommands(provider cli.Provider) {
	action := action{
		printer: os.Stdout,

		genSigner: newSigner,
		readFile:  readKey,
		saveFile:  saveToFile,
	}

	cmd := provider.SetCommand("key")

	new := cmd.SetSubCommand("new")
	new.SetDescription("create a new secp256k1 private key")
	new.SetFlags(cli.StringFlag{
		Name:     "save",
		Usage:    "if provided, save the key to that file",
		Required: false,
	}, cli.BoolFlag{
		Name:     "force",
		Usage:    "in the case it saves the key, will overwrite if needed",
		Required: false,
	})
	new.SetAction(action.newKeyAction)

	read := cmd.SetSubCommand("read")
	read.SetDescription("read a private key file")
	read.SetFlags(cli.StringFlag{
		Name:     "path",
		Usage:    "path to the key file",
		Required: true,
	}, cli.StringFlag{
		Name:     "format",
		Usage:    "output format: [ADDRESS | CHECKSUM | PUBKEY]",
		Value:    Address,
		Required: false,
	})
	read.SetAction(action.readKeyAction)
}

func newSigner() ([]byte, error) {
	return secp256k1.NewSigner().MarshalBinary()
}

func readKey(path string) ([]byte, error) {
	return loader.NewFileLoader(path).Load()
}
