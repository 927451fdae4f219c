// Package session defines the builder of a CLI application whose actions share
// components, like the provider of the chain or the wallet. Each module sets
// its commands and, when an action is invoked, the modules start their
// components from the flags and inject them so that the action can resolve
// them.
//
// Documentation Last Review: 14.10.2026
//
package session

import (
	"context"
	"io"

	"go.dedis.ch/zilliqa/cli"
)

// Builder is the builder that will be provided to the initializers, which can
// create commands and actions.
type Builder interface {
	// SetCommand creates a new command and returns its builder.
	SetCommand(name string) cli.CommandBuilder

	// SetGlobalFlags appends flags available to every command, which are the
	// ones the initializers should read when they start.
	SetGlobalFlags(...cli.Flag)

	// MakeAction creates a CLI action from a template. The components of the
	// initializers are started before the template is executed.
	MakeAction(ActionTemplate) cli.Action
}

// ActionTemplate is the implementation of an action that uses the components
// of the session.
type ActionTemplate interface {
	Execute(Context) error
}

// Context is the context available to the action when being invoked. It
// provides the dependency injector alongside with the output.
type Context struct {
	Context  context.Context
	Injector Injector
	Flags    cli.Flags
	Out      io.Writer
}

// Injector is a dependency injection abstraction.
type Injector interface {
	// Resolve populates the input with the dependency if any compatible exists.
	Resolve(interface{}) error

	// Inject stores the dependency to be resolved later on.
	Inject(interface{})
}

// Initializer is the interface that a module can implement to set its own
// commands and inject the components that will be resolved in the actions.
type Initializer interface {
	// SetCommands populates the builder with the commands of the module.
	SetCommands(Builder)

	// OnStart starts the components of the module and populates the
	// injector.
	OnStart(context.Context, cli.Flags, Injector) error

	// OnStop stops the components and cleans the resources.
	OnStop(Injector) error
}
