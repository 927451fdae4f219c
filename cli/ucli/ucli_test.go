package ucli

import (
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	urfave "github.com/urfave/cli/v2"
	"go.dedis.ch/zilliqa/cli"
)

func TestBuilder_Build(t *testing.T) {
	builder := NewBuilder("zilcli", nil)
	builder.(*Builder).SetUsage("manage accounts and contracts")
	builder.SetFlags(cli.StringFlag{Name: "endpoint"})
	builder.SetFlags(cli.StringFlag{Name: "key"})

	builder.SetCommand("wallet")
	builder.SetCommand("contract")

	app := builder.Build().(*urfave.App)
	app.Writer = io.Discard

	require.Equal(t, "zilcli", app.Name)
	require.Equal(t, "manage accounts and contracts", app.Usage)
	require.Len(t, app.Flags, 2)

	// The help command is added by the setup.
	require.Len(t, app.Commands, 3)
	require.Equal(t, "wallet", app.Commands[0].Name)
	require.Equal(t, "contract", app.Commands[1].Name)
	require.Equal(t, "help", app.Commands[2].Name)

	require.NoError(t, app.Run([]string{"zilcli"}))
}

func TestCommandBuilder(t *testing.T) {
	builder := NewBuilder("zilcli", nil).(*Builder)

	cmd := builder.SetCommand("contract")
	cmd.SetDescription("interact with the contracts")
	cmd.SetFlags(cli.StringFlag{Name: "address", Required: true})
	cmd.SetAction(func(cli.Flags) error { return nil })

	sub := cmd.SetSubCommand("state")
	sub.SetFlags(cli.StringFlag{Name: "field"}, cli.StringSliceFlag{Name: "index"})

	require.Len(t, builder.commands, 1)
	require.Len(t, builder.commands[0].flags, 1)
	require.Len(t, builder.commands[0].subcommands, 1)
	require.Len(t, builder.commands[0].subcommands[0].flags, 2)

	commands := buildCommand(builder.commands)
	require.Len(t, commands, 1)
	require.Equal(t, "interact with the contracts", commands[0].Usage)
	require.NotNil(t, commands[0].Action)
	require.Nil(t, commands[0].Subcommands[0].Action)
	require.Len(t, commands[0].Subcommands[0].Flags, 2)
}

func TestBuildFlags(t *testing.T) {
	in := []cli.Flag{
		cli.StringFlag{Name: "endpoint", Usage: "url", Value: "local", EnvVar: "ZILLIQA_ENDPOINT"},
		cli.StringSliceFlag{Name: "arg", Value: []string{"a"}},
		cli.DurationFlag{Name: "interval", Value: time.Minute},
		cli.IntFlag{Name: "chain-id", Value: 333, EnvVar: "ZILLIQA_CHAIN_ID"},
		cli.Uint64Flag{Name: "gas-limit", Value: 50},
		cli.BoolFlag{Name: "wait", Required: true},
	}

	out := buildFlags(in)
	require.Len(t, out, len(in))

	for i, f := range in {
		require.Equal(t, f.Info().Name, out[i].Names()[0])
	}

	require.Equal(t, []string{"ZILLIQA_ENDPOINT"}, out[0].(*urfave.StringFlag).EnvVars)
	require.Equal(t, []string{"a"}, out[1].(*urfave.StringSliceFlag).Value.Value())
	require.Equal(t, time.Minute, out[2].(*urfave.DurationFlag).Value)
	require.Equal(t, []string{"ZILLIQA_CHAIN_ID"}, out[3].(*urfave.IntFlag).EnvVars)
	require.Equal(t, uint64(50), out[4].(*urfave.Uint64Flag).Value)
	require.True(t, out[5].(*urfave.BoolFlag).Required)
}

func TestBuildFlags_Panic(t *testing.T) {
	defer func() {
		r := recover()
		require.Equal(t, "flag type '<nil>' not supported", r)
	}()

	buildFlags([]cli.Flag{nil})
}

func TestMakeAction(t *testing.T) {
	require.Nil(t, makeAction(nil))

	called := false
	action := makeAction(func(flags cli.Flags) error {
		require.Nil(t, flags)
		called = true
		return nil
	})

	require.NoError(t, action(nil))
	require.True(t, called)
}

func TestRun_Flags(t *testing.T) {
	builder := NewBuilder("zilcli", nil, cli.StringFlag{Name: "endpoint", Value: "local"})

	var endpoint string
	var names []string
	var force bool
	var limit uint64

	cmd := builder.SetCommand("book")
	cmd.SetFlags(cli.StringSliceFlag{Name: "name"}, cli.BoolFlag{Name: "force"},
		cli.Uint64Flag{Name: "gas-limit"})
	cmd.SetAction(func(flags cli.Flags) error {
		endpoint = flags.String("endpoint")
		names = flags.StringSlice("name")
		force = flags.Bool("force")
		limit = flags.Uint64("gas-limit")
		return nil
	})

	err := builder.Build().Run([]string{"zilcli", "--endpoint", "remote", "book",
		"--name", "a", "--name", "b", "--force", "--gas-limit", "42"})
	require.NoError(t, err)
	require.Equal(t, "remote", endpoint)
	require.Equal(t, []string{"a", "b"}, names)
	require.True(t, force)
	require.Equal(t, uint64(42), limit)
}

func TestRun_EnvVar(t *testing.T) {
	t.Setenv("ZILLIQA_ENDPOINT", "http://env")

	var endpoint string

	builder := NewBuilder("zilcli", func(flags cli.Flags) error {
		endpoint = flags.String("endpoint")
		return nil
	}, cli.StringFlag{Name: "endpoint", Value: "local", EnvVar: "ZILLIQA_ENDPOINT"})

	require.NoError(t, builder.Build().Run([]string{"zilcli"}))
	require.Equal(t, "http://env", endpoint)

	require.NoError(t, builder.Build().Run([]string{"zilcli", "--endpoint", "http://flag"}))
	require.Equal(t, "http://flag", endpoint)
}
