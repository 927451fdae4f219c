package bindgen

import "go.dedis.ch/zilliqa/scilla/types"

// tmplFile is the data required to fill the file template.
type tmplFile struct {
	Package   string
	Imports   []string
	Contracts []string // Rendered bindings of the contracts
}

// tmplContract is the data required to generate the binding of a contract.
type tmplContract struct {
	Name        string // Name of the contract in Scilla
	Source      string // File name of the contract, if any
	Code        string // Go literal of the compressed source
	Version     string // Version of the language, if declared
	Type        string // Type name of the binding
	New         string
	Deploy      string
	State       string
	Init        string
	CodeConst   string
	InitParams  []tmplParam
	Fields      []tmplField
	Transitions []tmplTransition
}

type tmplTransition struct {
	Name   string
	Method string
	Params []tmplParam
}

// tmplParam is a parameter of a transition or of the deployment. Field and
// Getter are only set for the latter.
type tmplParam struct {
	Name   string
	Arg    string
	Field  string
	Getter string
	Native types.Native
}

type tmplField struct {
	Name        string
	Field       string // Field of the state record
	Getter      string // Method of the binding
	StateGetter string // Method of the state record
	Native      types.Native
}

// idents returns the package-level identifiers declared by the binding.
func (c tmplContract) idents() []string {
	return []string{c.Type, c.New, c.Deploy, c.State, c.Init, c.CodeConst}
}
