package controller

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"go.dedis.ch/zilliqa/cli/session"
	"go.dedis.ch/zilliqa/contract"
	"go.dedis.ch/zilliqa/contract/book"
	bookctl "go.dedis.ch/zilliqa/contract/book/controller"
	"go.dedis.ch/zilliqa/scilla"
	"go.dedis.ch/zilliqa/transaction"
	"go.dedis.ch/zilliqa/units"
	"golang.org/x/xerrors"
)

type addressAction struct{}

// Execute implements session.ActionTemplate. It prints the checksummed address
// of the default account, or its bech32 form.
func (a addressAction) Execute(ctx session.Context) error {
	client, err := resolveClient(ctx.Injector)
	if err != nil {
		return err
	}

	account, found := client.Default()
	if !found {
		return xerrors.Errorf("no default account, use --%s", KeyFlag)
	}

	if ctx.Flags.Bool("bech32") {
		fmt.Fprintln(ctx.Out, account.Address.Bech32())
		return nil
	}

	fmt.Fprintln(ctx.Out, account.Address.Checksum())

	return nil
}

type transferAction struct{}

// Execute implements session.ActionTemplate. It sends the amount from the
// default account.
func (a transferAction) Execute(ctx session.Context) error {
	client, err := resolveClient(ctx.Injector)
	if err != nil {
		return err
	}

	to, err := bookctl.ResolveAddress(ctx.Injector, ctx.Flags.String("to"))
	if err != nil {
		return xerrors.Errorf("invalid recipient: %v", err)
	}

	qa, err := units.ParseZil(ctx.Flags.String("amount"))
	if err != nil {
		return xerrors.Errorf("invalid amount: %v", err)
	}

	tx, err := client.Transfer(ctx.Context, to, qa)
	if err != nil {
		return xerrors.Errorf("failed to transfer: %v", err)
	}

	fmt.Fprintf(ctx.Out, "Transaction: %s\n", tx.ID)

	if !ctx.Flags.Bool("wait") {
		return nil
	}

	resp, err := tx.Confirm(ctx.Context)
	if err != nil {
		return xerrors.Errorf("failed to confirm: %v", err)
	}

	printReceipt(ctx.Out, resp.Receipt)

	return nil
}

type stateAction struct{}

// Execute implements session.ActionTemplate. It prints the state of the
// contract, or a single field, as indented JSON.
func (a stateAction) Execute(ctx session.Context) error {
	c, err := resolveContract(ctx)
	if err != nil {
		return err
	}

	var out interface{}

	field := ctx.Flags.String("field")
	if field == "" {
		out, err = c.GetState(ctx.Context)
	} else {
		out, err = c.GetSubState(ctx.Context, field, ctx.Flags.StringSlice("index")...)
	}

	if err != nil {
		return xerrors.Errorf("failed to get state: %v", err)
	}

	return printJSON(ctx.Out, out)
}

type initAction struct{}

// Execute implements session.ActionTemplate. It prints the initialization
// parameters of the contract as indented JSON.
func (a initAction) Execute(ctx session.Context) error {
	c, err := resolveContract(ctx)
	if err != nil {
		return err
	}

	init, err := c.GetInit(ctx.Context)
	if err != nil {
		return xerrors.Errorf("failed to get init: %v", err)
	}

	return printJSON(ctx.Out, init)
}

type callAction struct{}

// Execute implements session.ActionTemplate. It calls the transition with the
// default account and optionally waits for the receipt.
func (a callAction) Execute(ctx session.Context) error {
	c, err := resolveContract(ctx)
	if err != nil {
		return err
	}

	args, err := ParseArgs(ctx.Flags.StringSlice("arg"))
	if err != nil {
		return xerrors.Errorf("invalid arguments: %v", err)
	}

	call := c.NewCall(ctx.Flags.String("transition"), args...)

	amount := ctx.Flags.String("amount")
	if amount != "" {
		qa, err := units.ParseZil(amount)
		if err != nil {
			return xerrors.Errorf("invalid amount: %v", err)
		}

		call.Amount(qa)
	}

	limit := ctx.Flags.Uint64("gas-limit")
	if limit > 0 {
		call.GasLimit(limit)
	}

	tx, err := call.Send(ctx.Context)
	if err != nil {
		return xerrors.Errorf("failed to call: %v", err)
	}

	fmt.Fprintf(ctx.Out, "Transaction: %s\n", tx.ID)

	if !ctx.Flags.Bool("wait") {
		return nil
	}

	resp, err := tx.Confirm(ctx.Context)
	if err != nil {
		return xerrors.Errorf("failed to confirm: %v", err)
	}

	printReceipt(ctx.Out, resp.Receipt)

	if !resp.Receipt.Success {
		return &contract.ReceiptError{
			Op:      fmt.Sprintf("call '%s'", call.Transition()),
			ID:      tx.ID,
			Receipt: resp.Receipt,
		}
	}

	return nil
}

type deployAction struct{}

// Execute implements session.ActionTemplate. It deploys the contract with the
// default account and stores its address in the book if a name is given.
func (a deployAction) Execute(ctx session.Context) error {
	client, err := resolveClient(ctx.Injector)
	if err != nil {
		return err
	}

	init, err := ParseArgs(ctx.Flags.StringSlice("init"))
	if err != nil {
		return xerrors.Errorf("invalid init: %v", err)
	}

	var opts []contract.FactoryOption

	limit := ctx.Flags.Uint64("gas-limit")
	if limit > 0 {
		opts = append(opts, contract.WithOverride(transaction.Params{GasLimit: limit}))
	}

	c, err := contract.NewFactory(client, opts...).DeployFromFile(ctx.Context, ctx.Flags.Path("file"), init)
	if err != nil {
		return xerrors.Errorf("failed to deploy: %v", err)
	}

	fmt.Fprintf(ctx.Out, "Contract: %s\n", c.Address.Checksum())

	name := ctx.Flags.String("name")
	if name == "" {
		return nil
	}

	var b book.Book

	err = ctx.Injector.Resolve(&b)
	if err != nil {
		return xerrors.Errorf("address book not available, use --%s: %v", bookctl.BookFlag, err)
	}

	err = b.Add(name, c.Address)
	if err != nil {
		return xerrors.Errorf("failed to add entry: %v", err)
	}

	return nil
}

// ParseArgs parses arguments of the form name=type=value. A value that starts
// like a JSON object, array or string is parsed as JSON, otherwise it is a
// primitive.
func ParseArgs(args []string) (scilla.NamedValues, error) {
	values := make(scilla.NamedValues, len(args))

	for i, arg := range args {
		parts := strings.SplitN(arg, "=", 3)
		if len(parts) != 3 || parts[0] == "" || parts[1] == "" {
			return nil, xerrors.Errorf("malformed argument '%s'", arg)
		}

		var value scilla.Value = scilla.Primitive(parts[2])

		if strings.HasPrefix(parts[2], "{") || strings.HasPrefix(parts[2], "[") ||
			strings.HasPrefix(parts[2], `"`) {

			var err error
			value, err = scilla.ParseValue([]byte(parts[2]))
			if err != nil {
				return nil, xerrors.Errorf("invalid value of '%s': %v", parts[0], err)
			}
		}

		values[i] = scilla.NamedValue{
			VName: parts[0],
			Type:  parts[1],
			Value: value,
		}
	}

	return values, nil
}

func resolveClient(inj session.Injector) (Client, error) {
	var client Client

	err := inj.Resolve(&client)
	if err != nil {
		return nil, xerrors.Errorf("failed to resolve wallet: %v", err)
	}

	return client, nil
}

func resolveContract(ctx session.Context) (contract.BaseContract, error) {
	client, err := resolveClient(ctx.Injector)
	if err != nil {
		return contract.BaseContract{}, err
	}

	addr, err := bookctl.ResolveAddress(ctx.Injector, ctx.Flags.String("address"))
	if err != nil {
		return contract.BaseContract{}, xerrors.Errorf("invalid contract: %v", err)
	}

	return contract.NewBaseContract(addr, client), nil
}

func printReceipt(out io.Writer, receipt transaction.Receipt) {
	fmt.Fprintf(out, "Success: %t\n", receipt.Success)
	fmt.Fprintf(out, "Gas: %s\n", receipt.CumulativeGas)

	for _, event := range receipt.EventLogs {
		params, _ := json.Marshal(event.Params)
		fmt.Fprintf(out, "Event: %s %s\n", event.EventName, params)
	}

	for _, exc := range receipt.Exceptions {
		fmt.Fprintf(out, "Exception: line %d: %s\n", exc.Line, exc.Message)
	}
}

func printJSON(out io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return xerrors.Errorf("failed to encode: %v", err)
	}

	fmt.Fprintln(out, string(data))

	return nil
}
