// Package controller implements the CLI module of the address book. When the
// path of the book is set, the database is opened for the duration of the
// action and the book is injected.
package controller

import (
	"context"

	"go.dedis.ch/zilliqa/cli"
	"go.dedis.ch/zilliqa/cli/session"
	"go.dedis.ch/zilliqa/contract/book"
	"go.dedis.ch/zilliqa/scilla"
	"go.dedis.ch/zilliqa/store/kv"
	"golang.org/x/xerrors"
)

// BookFlag is the name of the global flag of the path to the book.
const BookFlag = "book"

// NewController returns the initializer of the address book.
func NewController() session.Initializer {
	return controller{
		openDB: kv.New,
	}
}

// controller is the initializer of the address book module.
//
// - implements session.Initializer
type controller struct {
	openDB func(path string) (kv.DB, error)
}

// SetCommands implements session.Initializer.
func (c controller) SetCommands(builder session.Builder) {
	builder.SetGlobalFlags(cli.StringFlag{
		Name:   BookFlag,
		Usage:  "path to the address book of the contracts",
		EnvVar: "ZILLIQA_BOOK",
	})

	cmd := builder.SetCommand("book")

	sub := cmd.SetSubCommand("add")
	sub.SetDescription("store the address of a contract under a name")
	sub.SetFlags(cli.StringFlag{
		Name:     "name",
		Usage:    "name of the entry",
		Required: true,
	}, cli.StringFlag{
		Name:     "address",
		Usage:    "address of the contract, in hexadecimal or bech32 form",
		Required: true,
	})
	sub.SetAction(builder.MakeAction(addAction{}))

	sub = cmd.SetSubCommand("list")
	sub.SetDescription("print the entries of the book")
	sub.SetAction(builder.MakeAction(listAction{}))

	sub = cmd.SetSubCommand("remove")
	sub.SetDescription("remove an entry from the book")
	sub.SetFlags(cli.StringFlag{
		Name:     "name",
		Usage:    "name of the entry",
		Required: true,
	})
	sub.SetAction(builder.MakeAction(removeAction{}))
}

// OnStart implements session.Initializer. It opens the database and injects
// the book when the path is provided.
func (c controller) OnStart(ctx context.Context, flags cli.Flags, inj session.Injector) error {
	path := flags.Path(BookFlag)
	if path == "" {
		return nil
	}

	db, err := c.openDB(path)
	if err != nil {
		return xerrors.Errorf("failed to open book: %v", err)
	}

	b, err := book.NewBook(db)
	if err != nil {
		db.Close()
		return xerrors.Errorf("failed to create book: %v", err)
	}

	inj.Inject(db)
	inj.Inject(b)

	return nil
}

// OnStop implements session.Initializer. It closes the database if any.
func (c controller) OnStop(inj session.Injector) error {
	var db kv.DB

	err := inj.Resolve(&db)
	if err != nil {
		return nil
	}

	err = db.Close()
	if err != nil {
		return xerrors.Errorf("failed to close book: %v", err)
	}

	return nil
}

// ResolveAddress returns the address of the value, which is either an address
// or the name of an entry when a book is available.
func ResolveAddress(inj session.Injector, value string) (scilla.Address, error) {
	var b book.Book

	err := inj.Resolve(&b)
	if err != nil {
		return scilla.ParseAddress(value)
	}

	return b.Resolve(value)
}
