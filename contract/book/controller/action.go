package controller

import (
	"fmt"

	"go.dedis.ch/zilliqa/cli/session"
	"go.dedis.ch/zilliqa/contract/book"
	"go.dedis.ch/zilliqa/scilla"
	"golang.org/x/xerrors"
)

type addAction struct{}

// Execute implements session.ActionTemplate. It stores the address under the
// name.
func (a addAction) Execute(ctx session.Context) error {
	b, err := resolveBook(ctx.Injector)
	if err != nil {
		return err
	}

	addr, err := scilla.ParseAddress(ctx.Flags.String("address"))
	if err != nil {
		return xerrors.Errorf("invalid address: %v", err)
	}

	name := ctx.Flags.String("name")

	err = b.Add(name, addr)
	if err != nil {
		return xerrors.Errorf("failed to add entry: %v", err)
	}

	fmt.Fprintf(ctx.Out, "%s: %s\n", name, addr.Checksum())

	return nil
}

type listAction struct{}

// Execute implements session.ActionTemplate. It prints one entry per line.
func (a listAction) Execute(ctx session.Context) error {
	b, err := resolveBook(ctx.Injector)
	if err != nil {
		return err
	}

	entries, err := b.List()
	if err != nil {
		return xerrors.Errorf("failed to list entries: %v", err)
	}

	for _, entry := range entries {
		fmt.Fprintf(ctx.Out, "%s: %s\n", entry.Name, entry.Address.Checksum())
	}

	return nil
}

type removeAction struct{}

// Execute implements session.ActionTemplate.
func (a removeAction) Execute(ctx session.Context) error {
	b, err := resolveBook(ctx.Injector)
	if err != nil {
		return err
	}

	err = b.Remove(ctx.Flags.String("name"))
	if err != nil {
		return xerrors.Errorf("failed to remove entry: %v", err)
	}

	return nil
}

func resolveBook(inj session.Injector) (book.Book, error) {
	var b book.Book

	err := inj.Resolve(&b)
	if err != nil {
		return b, xerrors.Errorf("address book not available, use --%s: %v", BookFlag, err)
	}

	return b, nil
}
