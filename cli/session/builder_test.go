package session

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"go.dedis.ch/zilliqa/cli"
	"go.dedis.ch/zilliqa/cli/ucli"
	"go.dedis.ch/zilliqa/internal/testing/fake"
)

func TestAppBuilder_Run(t *testing.T) {
	out := new(bytes.Buffer)
	init := &fakeInitializer{}

	builder := NewBuilder(ucli.NewBuilder("test", nil), out, init)

	err := builder.Build().Run([]string{"test", "--name", "alice", "hello"})
	require.NoError(t, err)
	require.Equal(t, "hello alice\n", out.String())
	require.True(t, init.stopped)
}

func TestAppBuilder_SharedGlobalFlag(t *testing.T) {
	out := new(bytes.Buffer)
	first := &fakeInitializer{}
	second := &fakeInitializer{}

	builder := NewBuilder(ucli.NewBuilder("test", nil), out, first, second)

	err := builder.Build().Run([]string{"test", "--name", "bob", "hello"})
	require.NoError(t, err)
	require.Equal(t, "hello bob\n", out.String())
	require.Len(t, builder.globals, 1)
	require.True(t, first.stopped)
	require.True(t, second.stopped)
}

func TestAppBuilder_StartFailure(t *testing.T) {
	init := &fakeInitializer{err: fake.GetError()}
	other := &fakeInitializer{}

	builder := NewBuilder(ucli.NewBuilder("test", nil), new(bytes.Buffer), other, init)

	action := builder.MakeAction(helloAction{})

	err := action(fakeFlags{})
	require.EqualError(t, err, fake.Err("failed to start"))
	require.True(t, other.stopped)
	require.False(t, init.stopped)
}

func TestAppBuilder_StopFailure(t *testing.T) {
	init := &fakeInitializer{stopErr: fake.GetError()}

	builder := NewBuilder(ucli.NewBuilder("test", nil), new(bytes.Buffer), init)

	action := builder.MakeAction(helloAction{})

	err := action(fakeFlags{})
	require.EqualError(t, err, fake.Err("failed to stop"))
}

func TestAppBuilder_ActionFailure(t *testing.T) {
	init := &fakeInitializer{stopErr: fake.GetError()}

	builder := NewBuilder(ucli.NewBuilder("test", nil), new(bytes.Buffer), init)

	action := builder.MakeAction(badAction{})

	err := action(fakeFlags{})
	require.EqualError(t, err, fake.Err("oops"))
	require.True(t, init.stopped)
}

// -----------------------------------------------------------------------------
// Utility functions

type fakeInitializer struct {
	err     error
	stopErr error
	stopped bool
}

func (i *fakeInitializer) SetCommands(builder Builder) {
	builder.SetGlobalFlags(cli.StringFlag{Name: "name"})

	cmd := builder.SetCommand("hello")
	cmd.SetAction(builder.MakeAction(helloAction{}))
}

func (i *fakeInitializer) OnStart(ctx context.Context, flags cli.Flags, inj Injector) error {
	if i.err != nil {
		return i.err
	}

	inj.Inject(greeting(flags.String("name")))

	return nil
}

func (i *fakeInitializer) OnStop(Injector) error {
	i.stopped = true
	return i.stopErr
}

type greeting string

type helloAction struct{}

func (helloAction) Execute(ctx Context) error {
	var name greeting

	err := ctx.Injector.Resolve(&name)
	if err != nil {
		return err
	}

	fmt.Fprintf(ctx.Out, "hello %s\n", name)

	return nil
}

type badAction struct{}

func (badAction) Execute(Context) error {
	return fmt.Errorf("oops: %w", fake.GetError())
}

type fakeFlags struct {
	cli.Flags
}

func (fakeFlags) String(string) string {
	return ""
}
