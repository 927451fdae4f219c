package controller

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.dedis.ch/zilliqa/cli/session"
	"go.dedis.ch/zilliqa/contract/book"
	"go.dedis.ch/zilliqa/internal/testing/fake"
	"go.dedis.ch/zilliqa/scilla"
	"go.dedis.ch/zilliqa/store/kv"
)

func TestController_Lifecycle(t *testing.T) {
	ctrl := NewController()
	inj := session.NewInjector()

	flags := session.FlagSet{BookFlag: filepath.Join(t.TempDir(), "book.db")}

	err := ctrl.OnStart(context.Background(), flags, inj)
	require.NoError(t, err)

	var b book.Book
	require.NoError(t, inj.Resolve(&b))

	require.NoError(t, ctrl.OnStop(inj))

	var db kv.DB
	require.NoError(t, inj.Resolve(&db))

	_, err = book.NewBook(db)
	require.Error(t, err)
}

func TestController_NoBook(t *testing.T) {
	ctrl := NewController()
	inj := session.NewInjector()

	err := ctrl.OnStart(context.Background(), session.FlagSet{}, inj)
	require.NoError(t, err)

	var b book.Book
	require.Error(t, inj.Resolve(&b))

	require.NoError(t, ctrl.OnStop(inj))
}

func TestController_OpenFailure(t *testing.T) {
	ctrl := controller{
		openDB: func(string) (kv.DB, error) {
			return nil, fake.GetError()
		},
	}

	err := ctrl.OnStart(context.Background(), session.FlagSet{BookFlag: "book.db"}, session.NewInjector())
	require.EqualError(t, err, fake.Err("failed to open book"))
}

func TestActions_Execute(t *testing.T) {
	out := new(bytes.Buffer)
	ctx := makeContext(t, out)

	ctx.Flags = session.FlagSet{"name": "hello", "address": testAddr(1).String()}
	err := addAction{}.Execute(ctx)
	require.NoError(t, err)
	require.Equal(t, "hello: "+testAddr(1).Checksum()+"\n", out.String())

	ctx.Flags = session.FlagSet{"name": "bank", "address": testAddr(2).String()}
	require.NoError(t, addAction{}.Execute(ctx))

	ctx.Flags = session.FlagSet{"name": "bad", "address": "0x12"}
	err = addAction{}.Execute(ctx)
	require.EqualError(t, err, "invalid address: invalid address length 2")

	out.Reset()
	err = listAction{}.Execute(ctx)
	require.NoError(t, err)
	require.Equal(t, "bank: "+testAddr(2).Checksum()+"\n"+
		"hello: "+testAddr(1).Checksum()+"\n", out.String())

	addr, err := ResolveAddress(ctx.Injector, "hello")
	require.NoError(t, err)
	require.Equal(t, testAddr(1), addr)

	ctx.Flags = session.FlagSet{"name": "hello"}
	require.NoError(t, removeAction{}.Execute(ctx))

	out.Reset()
	require.NoError(t, listAction{}.Execute(ctx))
	require.Equal(t, "bank: "+testAddr(2).Checksum()+"\n", out.String())
}

func TestAddAction_Bech32(t *testing.T) {
	out := new(bytes.Buffer)
	ctx := makeContext(t, out)

	ctx.Flags = session.FlagSet{"name": "hello", "address": "zil18q05qzzst62q44mgrmp5dzn3jpsv4aukxredu2"}
	require.NoError(t, addAction{}.Execute(ctx))
	require.Equal(t, "hello: 0x381f4008505e940AD7681EC3468a719060caF796\n", out.String())

	addr, err := ResolveAddress(ctx.Injector, testAddr(4).Bech32())
	require.NoError(t, err)
	require.Equal(t, testAddr(4), addr)
}

func TestActions_NoBook(t *testing.T) {
	ctx := session.Context{
		Context:  context.Background(),
		Injector: session.NewInjector(),
		Flags:    session.FlagSet{},
		Out:      new(bytes.Buffer),
	}

	err := listAction{}.Execute(ctx)
	require.Error(t, err)
	require.Regexp(t, "^address book not available, use --book: ", err.Error())

	err = addAction{}.Execute(ctx)
	require.Error(t, err)

	err = removeAction{}.Execute(ctx)
	require.Error(t, err)
}

func TestResolveAddress_NoBook(t *testing.T) {
	inj := session.NewInjector()

	addr, err := ResolveAddress(inj, testAddr(3).Hex())
	require.NoError(t, err)
	require.Equal(t, testAddr(3), addr)

	_, err = ResolveAddress(inj, "hello")
	require.EqualError(t, err, "invalid address length 5")
}

// -----------------------------------------------------------------------------
// Utility functions

func testAddr(b byte) scilla.Address {
	var addr scilla.Address
	addr[0] = b

	return addr
}

func makeContext(t *testing.T, out *bytes.Buffer) session.Context {
	ctrl := NewController()
	inj := session.NewInjector()

	flags := session.FlagSet{BookFlag: filepath.Join(t.TempDir(), "book.db")}

	require.NoError(t, ctrl.OnStart(context.Background(), flags, inj))
	t.Cleanup(func() { ctrl.OnStop(inj) })

	return session.Context{
		Context:  context.Background(),
		Injector: inj,
		Out:      out,
	}
}
