package command

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"go.dedis.ch/zilliqa/cli"
	"go.dedis.ch/zilliqa/crypto/secp256k1"
	"golang.org/x/xerrors"
)

// Output formats of the read command.
const (
	Address  = "ADDRESS"
	Checksum = "CHECKSUM"
	Pubkey   = "PUBKEY"
)

// action defines the different cli actions of the key commands. Defining
// functions and printer helps in testing the commands.
type action struct {
	printer io.Writer

	genSigner func() ([]byte, error)

	readFile func(path string) ([]byte, error)
	saveFile func(path string, force bool, data []byte) error
}

func (a action) newKeyAction(flags cli.Flags) error {
	data, err := a.genSigner()
	if err != nil {
		return xerrors.Errorf("failed to marshal signer: %v", err)
	}

	switch flags.String("save") {
	case "":
		fmt.Fprintln(a.printer, hex.EncodeToString(data))
	default:
		err := a.saveFile(flags.String("save"), flags.Bool("force"),
			[]byte(hex.EncodeToString(data)+"\n"))
		if err != nil {
			return xerrors.Errorf("failed to save file: %v", err)
		}
	}

	return nil
}

func (a action) readKeyAction(flags cli.Flags) error {
	data, err := a.readFile(flags.Path("path"))
	if err != nil {
		return xerrors.Errorf("failed to read data: %v", err)
	}

	signer, err := secp256k1.NewSignerFromBytes(data)
	if err != nil {
		return xerrors.Errorf("failed to unmarshal signer: %v", err)
	}

	var out string

	switch flags.String("format") {
	case Address:
		out = signer.Address().String()
	case Checksum:
		out = signer.Address().Checksum()
	case Pubkey:
		buf, err := signer.GetPublicKey().MarshalText()
		if err != nil {
			return xerrors.Errorf("failed to marshal pubkey: %v", err)
		}

		out = string(buf)
	default:
		return xerrors.Errorf("unknown format '%s'", flags.String("format"))
	}

	fmt.Fprintln(a.printer, out)

	return nil
}

func saveToFile(path string, force bool, data []byte) error {
	if !force && fileExist(path) {
		return xerrors.Errorf("file '%s' already exist, use --force if you "+
			"want to overwrite", path)
	}

	err := os.WriteFile(path, data, 0600)
	if err != nil {
		return xerrors.Errorf("failed to write file: %v", err)
	}

	return nil
}

func fileExist(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
