package bindgen

import (
	"os"

	"golang.org/x/xerrors"
	"gopkg.in/yaml.v2"
)

// EnvContractsPath is the name of the environment variable that overrides the
// directory of the contracts.
const EnvContractsPath = "CONTRACTS_PATH"

// DefaultPackage is the package of the generated file when none is configured.
const DefaultPackage = "contracts"

// Config is the configuration of a generation. It can be read from a yaml file
// of the form:
//
//	contracts: ./contracts
//	output: ./bindings/contracts.go
//	package: bindings
type Config struct {
	Contracts string `yaml:"contracts"`
	Output    string `yaml:"output"`
	Package   string `yaml:"package"`
}

// LoadConfig reads the yaml configuration at the path. The environment
// variable of the contracts takes precedence over the file.
func LoadConfig(path string) (Config, error) {
	cfg := Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, xerrors.Errorf("failed to read config file: %v", err)
		}

		err = yaml.Unmarshal(data, &cfg)
		if err != nil {
			return cfg, xerrors.Errorf("failed to unmarshal config: %v", err)
		}
	}

	env := os.Getenv(EnvContractsPath)
	if env != "" {
		cfg.Contracts = env
	}

	if cfg.Package == "" {
		cfg.Package = DefaultPackage
	}

	return cfg, nil
}
