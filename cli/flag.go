package cli

import "time"

// FlagInfo is the part of the definition shared by every flag. EnvVar is the
// name of an environment variable that provides the value when the flag is not
// set on the command line.
type FlagInfo struct {
	Name     string
	Usage    string
	Required bool
	EnvVar   string
}

// StringFlag is a flag parsed as a string.
//
// - implements cli.Flag
type StringFlag struct {
	Name     string
	Usage    string
	Required bool
	EnvVar   string
	Value    string
}

// Flag implements cli.Flag.
func (flag StringFlag) Flag() {}

// Info returns the common definition of the flag.
func (flag StringFlag) Info() FlagInfo {
	return FlagInfo{Name: flag.Name, Usage: flag.Usage, Required: flag.Required, EnvVar: flag.EnvVar}
}

// StringSliceFlag is a flag that can be repeated, parsed as a slice of
// strings.
//
// - implements cli.Flag
type StringSliceFlag struct {
	Name     string
	Usage    string
	Required bool
	Value    []string
}

// Flag implements cli.Flag.
func (flag StringSliceFlag) Flag() {}

// Info returns the common definition of the flag.
func (flag StringSliceFlag) Info() FlagInfo {
	return FlagInfo{Name: flag.Name, Usage: flag.Usage, Required: flag.Required}
}

// DurationFlag is a flag parsed as a duration, like "10s".
//
// - implements cli.Flag
type DurationFlag struct {
	Name     string
	Usage    string
	Required bool
	Value    time.Duration
}

// Flag implements cli.Flag.
func (flag DurationFlag) Flag() {}

// Info returns the common definition of the flag.
func (flag DurationFlag) Info() FlagInfo {
	return FlagInfo{Name: flag.Name, Usage: flag.Usage, Required: flag.Required}
}

// IntFlag is a flag parsed as an integer.
//
// - implements cli.Flag
type IntFlag struct {
	Name     string
	Usage    string
	Required bool
	EnvVar   string
	Value    int
}

// Flag implements cli.Flag.
func (flag IntFlag) Flag() {}

// Info returns the common definition of the flag.
func (flag IntFlag) Info() FlagInfo {
	return FlagInfo{Name: flag.Name, Usage: flag.Usage, Required: flag.Required, EnvVar: flag.EnvVar}
}

// Uint64Flag is a flag parsed as an unsigned integer, used for amounts of gas
// and nonces.
//
// - implements cli.Flag
type Uint64Flag struct {
	Name     string
	Usage    string
	Required bool
	Value    uint64
}

// Flag implements cli.Flag.
func (flag Uint64Flag) Flag() {}

// Info returns the common definition of the flag.
func (flag Uint64Flag) Info() FlagInfo {
	return FlagInfo{Name: flag.Name, Usage: flag.Usage, Required: flag.Required}
}

// BoolFlag is a flag parsed as a boolean.
//
// - implements cli.Flag
type BoolFlag struct {
	Name     string
	Usage    string
	Required bool
	Value    bool
}

// Flag implements cli.Flag.
func (flag BoolFlag) Flag() {}

// Info returns the common definition of the flag.
func (flag BoolFlag) Info() FlagInfo {
	return FlagInfo{Name: flag.Name, Usage: flag.Usage, Required: flag.Required}
}
