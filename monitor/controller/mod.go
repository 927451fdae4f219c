// Package controller implements the CLI module of the monitor.
package controller

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.dedis.ch/zilliqa/cli"
	"go.dedis.ch/zilliqa/cli/session"
)

const (
	defaultAddr     = "127.0.0.1:9100"
	defaultPath     = "/metrics"
	defaultInterval = 10 * time.Second
)

// NewController returns the initializer of the monitor. It expects the
// provider to be injected beforehand.
func NewController() session.Initializer {
	return controller{}
}

// controller is the initializer of the monitor module. It only sets the
// command as the monitor is started by the action.
//
// - implements session.Initializer
type controller struct{}

// SetCommands implements session.Initializer.
func (c controller) SetCommands(builder session.Builder) {
	cmd := builder.SetCommand("monitor")
	cmd.SetDescription("expose the prometheus metrics and poll the state of " +
		"the chain until interrupted")
	cmd.SetFlags(cli.StringFlag{
		Name:  "metrics-addr",
		Usage: "listening address of the HTTP server",
		Value: defaultAddr,
	}, cli.StringFlag{
		Name:  "path",
		Usage: "path of the prometheus handler",
		Value: defaultPath,
	}, cli.DurationFlag{
		Name:  "interval",
		Usage: "time between two polls of the chain",
		Value: defaultInterval,
	})
	cmd.SetAction(builder.MakeAction(monitorAction{notify: notifyContext}))
}

// OnStart implements session.Initializer.
func (c controller) OnStart(context.Context, cli.Flags, session.Injector) error {
	return nil
}

// OnStop implements session.Initializer.
func (c controller) OnStop(session.Injector) error {
	return nil
}

func notifyContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
}
