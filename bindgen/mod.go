// Package bindgen generates typed Go bindings for Scilla contracts. Each
// contract of a directory produces a binding type embedding a
// contract.BaseContract, with a deploy function, one call builder per
// transition and one getter per field and initialization parameter.
//
// A contract that cannot be parsed or bound is logged and skipped so that it
// never prevents the generation of the others.
package bindgen

import (
	"bytes"
	_ "embed"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"text/template"

	"github.com/rs/zerolog"
	"go.dedis.ch/zilliqa"
	"go.dedis.ch/zilliqa/contract"
	"go.dedis.ch/zilliqa/scilla/parser"
	"go.dedis.ch/zilliqa/scilla/types"
	"golang.org/x/tools/imports"
	"golang.org/x/xerrors"
)

// Extension is the extension of the contract files.
const Extension = ".scilla"

const (
	contextImport  = "context"
	contractImport = "go.dedis.ch/zilliqa/contract"
)

//go:embed binding.go.tmpl
var tmplSource string

var tmpl = template.Must(template.New("binding").Parse(tmplSource))

// Methods and fields promoted by the embedded base contract, plus the ones
// every binding defines.
var reservedMethods = []string{
	"Address", "Client", "NewCall", "GetState", "GetSubState", "GetInit",
	"State", "Init",
}

// Identifiers used in the bodies of the generated functions.
var reservedArgs = []string{
	"c", "ctx", "client", "opts", "values", "base", "err", "addr",
	"scilla", "contract", "context", "big", "uint256",
}

// Source is a contract to bind.
type Source struct {
	// Path is the location of the contract, only used for documentation and
	// logging.
	Path string
	Code string
}

// Result is the outcome of a generation.
type Result struct {
	// Code is the formatted Go source of the bindings.
	Code []byte
	// Bound is the list of the contracts that have a binding.
	Bound []string
	// Skipped maps the path of the contracts that failed to the reason.
	Skipped map[string]error
}

// Generator generates the bindings of a set of contracts.
type Generator struct {
	mapper types.Mapper
	logger zerolog.Logger
}

// Option is the type of option to configure a generator.
type Option func(*Generator)

// WithLogger sets the logger of the generator and of its type mapper.
func WithLogger(logger zerolog.Logger) Option {
	return func(g *Generator) {
		g.logger = logger
		g.mapper = types.NewMapper(types.WithLogger(logger))
	}
}

// NewGenerator creates a new generator.
func NewGenerator(opts ...Option) Generator {
	logger := zilliqa.Logger.With().Str("component", "bindgen").Logger()

	g := Generator{
		mapper: types.NewMapper(types.WithLogger(logger)),
		logger: logger,
	}

	for _, opt := range opts {
		opt(&g)
	}

	return g
}

// Run generates the bindings of the configuration and writes them to the
// output file, or returns them if no output is configured.
func (g Generator) Run(cfg Config) (Result, error) {
	sources, err := ReadDir(cfg.Contracts)
	if err != nil {
		return Result{}, xerrors.Errorf("failed to read contracts: %v", err)
	}

	if len(sources) == 0 {
		g.logger.Info().Str("path", cfg.Contracts).Msg("no contract found")
	}

	pkg := cfg.Package
	if pkg == "" {
		pkg = DefaultPackage
	}

	res, err := g.Generate(pkg, sources)
	if err != nil {
		return res, err
	}

	if cfg.Output == "" {
		return res, nil
	}

	err = os.MkdirAll(filepath.Dir(cfg.Output), 0755)
	if err != nil {
		return res, xerrors.Errorf("failed to create output directory: %v", err)
	}

	err = os.WriteFile(cfg.Output, res.Code, 0644)
	if err != nil {
		return res, xerrors.Errorf("failed to write bindings: %v", err)
	}

	g.logger.Info().
		Str("output", cfg.Output).
		Int("bound", len(res.Bound)).
		Int("skipped", len(res.Skipped)).
		Msg("bindings generated")

	return res, nil
}

// ReadDir returns the contracts of the directory, sorted by file name. A
// directory that does not exist is an empty set of contracts.
func ReadDir(dir string) ([]Source, error) {
	if dir == "" {
		return nil, nil
	}

	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, xerrors.Errorf("failed to list '%s': %v", dir, err)
	}

	sources := []Source{}

	for _, entry := range entries {
		if !entry.Type().IsRegular() || filepath.Ext(entry.Name()) != Extension {
			continue
		}

		path := filepath.Join(dir, entry.Name())

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, xerrors.Errorf("failed to read '%s': %v", path, err)
		}

		sources = append(sources, Source{Path: path, Code: string(data)})
	}

	return sources, nil
}

// Generate returns the bindings of the contracts in a single Go file of the
// package. A contract that fails is reported in the result and does not
// prevent the others from being bound.
func (g Generator) Generate(pkg string, sources []Source) (Result, error) {
	res := Result{Skipped: make(map[string]error)}

	used := newNames()
	allImports := map[string]struct{}{}
	snippets := []string{}

	for _, src := range sources {
		snippet, imps, name, err := g.bind(pkg, src, used)
		if err != nil {
			g.logger.Error().Err(err).Str("path", src.Path).Msg("contract skipped")
			res.Skipped[src.Path] = err
			continue
		}

		for _, imp := range imps {
			allImports[imp] = struct{}{}
		}

		snippets = append(snippets, snippet)
		res.Bound = append(res.Bound, name)
	}

	code, err := render(pkg, allImports, snippets)
	if err != nil {
		return res, xerrors.Errorf("failed to render bindings: %v", err)
	}

	res.Code = code

	return res, nil
}

// bind renders the binding of a single contract and checks that it is valid
// Go code on its own.
func (g Generator) bind(pkg string, src Source, used names) (string, []string, string, error) {
	c, err := parser.Parse(src.Code)
	if err != nil {
		return "", nil, "", xerrors.Errorf("failed to parse: %v", err)
	}

	data, imps, err := g.prepare(c, src, used)
	if err != nil {
		return "", nil, "", err
	}

	buf := new(bytes.Buffer)

	err = tmpl.ExecuteTemplate(buf, "contract", data)
	if err != nil {
		return "", nil, "", xerrors.Errorf("failed to execute template: %v", err)
	}

	importSet := map[string]struct{}{}
	for _, imp := range imps {
		importSet[imp] = struct{}{}
	}

	_, err = render(pkg, importSet, []string{buf.String()})
	if err != nil {
		return "", nil, "", xerrors.Errorf("invalid binding: %v", err)
	}

	for _, ident := range data.idents() {
		used[ident] = struct{}{}
	}

	return buf.String(), imps, c.Name, nil
}

// prepare computes the identifiers and the types of the binding.
func (g Generator) prepare(c *parser.Contract, src Source, used names) (tmplContract, []string, error) {
	typeName := capitalise(c.Name)

	data := tmplContract{
		Name:      c.Name,
		Code:      literal(contract.Compress(src.Code)),
		Type:      typeName,
		New:       "New" + typeName,
		Deploy:    "Deploy" + typeName,
		State:     typeName + "State",
		Init:      typeName + "Init",
		CodeConst: decapitalise(typeName) + "Code",
	}

	if src.Path != "" {
		data.Source = filepath.Base(src.Path)
	}

	for _, ident := range data.idents() {
		if used.has(ident) {
			return data, nil, xerrors.Errorf("identifier '%s' of contract '%s' already used",
				ident, c.Name)
		}
	}

	if c.Version != "" {
		_, err := strconv.ParseUint(c.Version, 10, 32)
		if err != nil {
			return data, nil, xerrors.Errorf("invalid version '%s'", c.Version)
		}

		data.Version = c.Version
	}

	imps := map[string]struct{}{
		contextImport:      {},
		contractImport:     {},
		types.ScillaImport: {},
	}

	mapField := func(f parser.Field) types.Native {
		n := g.mapper.Map(f.Type)
		for _, imp := range n.Imports {
			imps[imp] = struct{}{}
		}

		return n
	}

	methods := newNames(reservedMethods...)
	deployArgs := newNames(reservedArgs...)
	initFields := newNames()

	for _, tr := range c.Transitions {
		args := newNames(reservedArgs...)

		t := tmplTransition{
			Name:   tr.Name,
			Method: methods.take(capitalise(tr.Name), "Transition"),
		}

		for _, p := range tr.Params {
			t.Params = append(t.Params, tmplParam{
				Name:   p.Name,
				Arg:    args.take(decapitalise(p.Name), "Arg"),
				Native: mapField(p),
			})
		}

		data.Transitions = append(data.Transitions, t)
	}

	stateIdents := newNames()

	for _, f := range c.Fields {
		field := stateIdents.take(capitalise(f.Name), "Field")

		data.Fields = append(data.Fields, tmplField{
			Name:        f.Name,
			Field:       field,
			Getter:      methods.take(capitalise(f.Name), "Field"),
			StateGetter: stateIdents.take("Get"+field, "Field"),
			Native:      mapField(f),
		})
	}

	for _, p := range c.InitParams {
		data.InitParams = append(data.InitParams, tmplParam{
			Name:   p.Name,
			Arg:    deployArgs.take(decapitalise(p.Name), "Arg"),
			Field:  initFields.take(capitalise(p.Name), "Param"),
			Getter: methods.take(capitalise(p.Name), "Param"),
			Native: mapField(p),
		})
	}

	sorted := make([]string, 0, len(imps))
	for imp := range imps {
		sorted = append(sorted, imp)
	}

	sort.Strings(sorted)

	return data, sorted, nil
}

// render assembles the file and formats it. Unused imports are removed.
func render(pkg string, importSet map[string]struct{}, snippets []string) ([]byte, error) {
	data := tmplFile{
		Package:   pkg,
		Contracts: snippets,
	}

	for imp := range importSet {
		data.Imports = append(data.Imports, imp)
	}

	sort.Strings(data.Imports)

	buf := new(bytes.Buffer)

	err := tmpl.ExecuteTemplate(buf, "file", data)
	if err != nil {
		return nil, xerrors.Errorf("failed to execute template: %v", err)
	}

	code, err := imports.Process(pkg+".go", buf.Bytes(), nil)
	if err != nil {
		return nil, xerrors.Errorf("failed to format: %v", err)
	}

	return code, nil
}

// literal returns a Go string literal of the text, raw when possible.
func literal(text string) string {
	if strings.Contains(text, "`") || strings.Contains(text, "\r") {
		return strconv.Quote(text)
	}

	return "`" + text + "`"
}
