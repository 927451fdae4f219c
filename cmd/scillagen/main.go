// Package main provides the generator of the Go bindings of Scilla contracts.
// Every *.scilla file of the contracts directory is bound in a single Go file:
//
//	scillagen --contracts ./contracts --out ./bindings/contracts.go --package bindings
//
// The options can also be read from a yaml file with --config, in which case
// the flags take precedence. The CONTRACTS_PATH environment variable overrides
// the directory of the configuration file.
package main

import (
	"fmt"
	"io"
	"os"

	"go.dedis.ch/zilliqa/bindgen"
	"go.dedis.ch/zilliqa/cli"
	"go.dedis.ch/zilliqa/cli/ucli"
	"golang.org/x/xerrors"
)

const (
	configFlag    = "config"
	contractsFlag = "contracts"
	outFlag       = "out"
	packageFlag   = "package"
)

var printer io.Writer = os.Stderr

func main() {
	err := newApp(os.Stdout, bindgen.NewGenerator()).Run(os.Args)
	if err != nil {
		fmt.Fprintf(printer, "%+v\n", err)
		os.Exit(1)
	}
}

func newApp(out io.Writer, gen bindgen.Generator) cli.Application {
	builder := ucli.NewBuilder("scillagen", generateAction{out: out, gen: gen}.Execute,
		cli.StringFlag{
			Name:  configFlag,
			Usage: "path to a yaml configuration file",
		},
		cli.StringFlag{
			Name:  contractsFlag,
			Usage: "directory of the contracts",
		},
		cli.StringFlag{
			Name:  outFlag,
			Usage: "path of the generated file, or stdout if empty",
		},
		cli.StringFlag{
			Name:  packageFlag,
			Usage: "package of the generated file",
		},
	)

	builder.(*ucli.Builder).SetUsage("generate the Go bindings of Scilla contracts")

	return builder.Build()
}

type generateAction struct {
	out io.Writer
	gen bindgen.Generator
}

func (a generateAction) Execute(flags cli.Flags) error {
	cfg, err := bindgen.LoadConfig(flags.Path(configFlag))
	if err != nil {
		return xerrors.Errorf("failed to load config: %v", err)
	}

	if flags.Path(contractsFlag) != "" {
		cfg.Contracts = flags.Path(contractsFlag)
	}

	if flags.Path(outFlag) != "" {
		cfg.Output = flags.Path(outFlag)
	}

	if flags.String(packageFlag) != "" {
		cfg.Package = flags.String(packageFlag)
	}

	res, err := a.gen.Run(cfg)
	if err != nil {
		return xerrors.Errorf("failed to generate: %v", err)
	}

	if cfg.Output == "" {
		_, err = a.out.Write(res.Code)
		if err != nil {
			return xerrors.Errorf("failed to write: %v", err)
		}

		return nil
	}

	for _, name := range res.Bound {
		fmt.Fprintf(a.out, "bound %s\n", name)
	}

	for path, err := range res.Skipped {
		fmt.Fprintf(a.out, "skipped %s: %v\n", path, err)
	}

	return nil
}
