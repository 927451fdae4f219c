package controller

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.dedis.ch/zilliqa"
	"go.dedis.ch/zilliqa/cli/session"
	"go.dedis.ch/zilliqa/monitor"
	"golang.org/x/xerrors"
)

type monitorAction struct {
	notify func(context.Context) (context.Context, context.CancelFunc)
}

// Execute implements session.ActionTemplate. It serves the collectors of the
// library and polls the chain until the process is interrupted.
func (a monitorAction) Execute(ctx session.Context) error {
	var reader monitor.ChainReader

	err := ctx.Injector.Resolve(&reader)
	if err != nil {
		return xerrors.Errorf("failed to resolve chain reader: %v", err)
	}

	interval := ctx.Flags.Duration("interval")
	if interval <= 0 {
		return xerrors.Errorf("invalid interval %v", interval)
	}

	registry := prometheus.NewRegistry()

	for _, c := range zilliqa.PromCollectors {
		err = registry.Register(c)
		if err != nil {
			fmt.Fprintf(ctx.Out, "ERROR: failed to register: %v\n", err)
		}
	}

	srv := monitor.NewServer(ctx.Flags.String("metrics-addr"))
	srv.RegisterHandler(ctx.Flags.String("path"), promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	err = srv.Start()
	if err != nil {
		return xerrors.Errorf("failed to start server: %v", err)
	}

	fmt.Fprintf(ctx.Out, "started monitor on %s\n", srv.GetAddr())

	runCtx, cancel := a.notify(ctx.Context)
	defer cancel()

	monitor.NewPoller(reader, interval).Run(runCtx)

	return srv.Stop()
}
