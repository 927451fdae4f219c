package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"go.dedis.ch/zilliqa/bindgen"
)

const testContracts = "../../bindgen/testdata/contracts"

func TestScillagen_Stdout(t *testing.T) {
	t.Setenv(bindgen.EnvContractsPath, "")

	out := new(bytes.Buffer)
	app := newApp(out, bindgen.NewGenerator(bindgen.WithLogger(zerolog.Nop())))

	err := app.Run([]string{"scillagen", "--contracts", testContracts, "--package", "hello"})
	require.NoError(t, err)
	require.Contains(t, out.String(), "package hello")
	require.Contains(t, out.String(), "func DeployHelloWorld(")
	require.Contains(t, out.String(), "func DeployRegistry(")
}

func TestScillagen_Config(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "bindings.go")

	cfg := "contracts: " + testContracts + "\noutput: " + output + "\npackage: bindings\n"
	cfgPath := filepath.Join(dir, "scillagen.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0644))

	t.Setenv(bindgen.EnvContractsPath, "")

	out := new(bytes.Buffer)
	app := newApp(out, bindgen.NewGenerator(bindgen.WithLogger(zerolog.Nop())))

	err := app.Run([]string{"scillagen", "--config", cfgPath})
	require.NoError(t, err)
	require.Equal(t, "bound HelloWorld\nbound Registry\n", out.String())

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	require.Contains(t, string(data), "package bindings")

	// The flags take precedence over the file.
	out.Reset()
	err = app.Run([]string{"scillagen", "--config", cfgPath, "--package", "other"})
	require.NoError(t, err)

	data, err = os.ReadFile(output)
	require.NoError(t, err)
	require.Contains(t, string(data), "package other")
}

func TestScillagen_EnvContracts(t *testing.T) {
	t.Setenv(bindgen.EnvContractsPath, filepath.Join(t.TempDir(), "unknown"))

	out := new(bytes.Buffer)
	app := newApp(out, bindgen.NewGenerator(bindgen.WithLogger(zerolog.Nop())))

	err := app.Run([]string{"scillagen"})
	require.NoError(t, err)
	require.Equal(t, "// Code generated by scillagen. DO NOT EDIT.\n\npackage contracts\n", out.String())
}

func TestScillagen_Failures(t *testing.T) {
	t.Setenv(bindgen.EnvContractsPath, "")

	out := new(bytes.Buffer)
	app := newApp(out, bindgen.NewGenerator(bindgen.WithLogger(zerolog.Nop())))

	err := app.Run([]string{"scillagen", "--config", filepath.Join(t.TempDir(), "unknown.yml")})
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to load config: failed to read config file: ")

	err = app.Run([]string{"scillagen", "--contracts", testContracts, "--package", "1nvalid"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to generate: failed to render bindings: ")
}
