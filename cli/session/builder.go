package session

import (
	"context"
	"io"

	"go.dedis.ch/zilliqa/cli"
	"golang.org/x/xerrors"
)

// AppBuilder builds a CLI application from initializers.
//
// - implements session.Builder
type AppBuilder struct {
	builder cli.Builder
	inits   []Initializer
	out     io.Writer
	globals map[string]struct{}

	// newInjector can be replaced by the tests.
	newInjector func() Injector
}

// NewBuilder creates a builder on top of a CLI builder. The output is given to
// the actions.
func NewBuilder(builder cli.Builder, out io.Writer, inits ...Initializer) *AppBuilder {
	return &AppBuilder{
		builder:     builder,
		inits:       inits,
		out:         out,
		globals:     make(map[string]struct{}),
		newInjector: NewInjector,
	}
}

// SetCommand implements session.Builder.
func (b *AppBuilder) SetCommand(name string) cli.CommandBuilder {
	return b.builder.SetCommand(name)
}

// SetGlobalFlags implements session.Builder. A flag is defined once even when
// several initializers share it.
func (b *AppBuilder) SetGlobalFlags(flags ...cli.Flag) {
	for _, flag := range flags {
		name := flag.Info().Name

		_, found := b.globals[name]
		if found {
			continue
		}

		b.globals[name] = struct{}{}
		b.builder.SetFlags(flag)
	}
}

// MakeAction implements session.Builder. The action starts the initializers in
// order, executes the template and stops the initializers in reverse order.
func (b *AppBuilder) MakeAction(tmpl ActionTemplate) cli.Action {
	return func(flags cli.Flags) (err error) {
		ctx := context.Background()
		inj := b.newInjector()

		started := 0

		defer func() {
			for i := started - 1; i >= 0; i-- {
				stopErr := b.inits[i].OnStop(inj)
				if stopErr != nil && err == nil {
					err = xerrors.Errorf("failed to stop: %v", stopErr)
				}
			}
		}()

		for _, init := range b.inits {
			err = init.OnStart(ctx, flags, inj)
			if err != nil {
				return xerrors.Errorf("failed to start: %v", err)
			}

			started++
		}

		return tmpl.Execute(Context{
			Context:  ctx,
			Injector: inj,
			Flags:    flags,
			Out:      b.out,
		})
	}
}

// Build returns the application with the commands of the initializers.
func (b *AppBuilder) Build() cli.Application {
	for _, init := range b.inits {
		init.SetCommands(b)
	}

	return b.builder.Build()
}
