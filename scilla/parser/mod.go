// Package parser reads the signatures of a Scilla contract: its name, the
// parameters of its deployment, its mutable fields and its transitions. The
// bodies of the transitions and the library are skipped.
package parser

import (
	"os"
	"strings"

	"golang.org/x/xerrors"
)

// Contract is the description of a contract.
type Contract struct {
	Name        string
	Version     string
	InitParams  []Field
	Fields      []Field
	Transitions []Transition
	Procedures  []Transition
}

// Field is a named and typed element of a contract, such as a deployment
// parameter, a mutable field or a transition parameter.
type Field struct {
	Name string
	Type string
}

// Transition is an entry point of a contract with its ordered parameters.
type Transition struct {
	Name   string
	Params []Field
}

// ParseFile parses the contract at the given path.
func ParseFile(path string) (*Contract, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, xerrors.Errorf("failed to read contract: %v", err)
	}

	c, err := Parse(string(data))
	if err != nil {
		return nil, xerrors.Errorf("failed to parse '%s': %v", path, err)
	}

	return c, nil
}

// Parse parses the contract source.
func Parse(src string) (*Contract, error) {
	tokens, err := Tokenize(src)
	if err != nil {
		return nil, xerrors.Errorf("failed to tokenize: %v", err)
	}

	p := &parser{tokens: tokens}

	return p.parseContract()
}

type parser struct {
	tokens []Token
	pos    int
}

func (p *parser) peek() *Token {
	if p.pos >= len(p.tokens) {
		return nil
	}

	return &p.tokens[p.pos]
}

func (p *parser) next() *Token {
	t := p.peek()
	if t != nil {
		p.pos++
	}

	return t
}

func (p *parser) isKeyword(t *Token, keywords ...string) bool {
	if t == nil || t.Type != Ident {
		return false
	}

	for _, kw := range keywords {
		if t.Value == kw {
			return true
		}
	}

	return false
}

func (p *parser) expect(typ TokenType, value string) (*Token, error) {
	t := p.next()
	if t == nil {
		return nil, xerrors.New("unexpected end of contract")
	}

	if t.Type != typ || value != "" && t.Value != value {
		expected := typ.String()
		if value != "" {
			expected = "'" + value + "'"
		}

		return nil, xerrors.Errorf("line %d: expected %s but got '%s'", t.Line, expected, t.Value)
	}

	return t, nil
}

func (p *parser) parseContract() (*Contract, error) {
	c := &Contract{}

	// Everything before the contract keyword belongs to the version, the
	// imports and the library, where the keyword can only appear inside an
	// address type.
	depth := 0
	for {
		t := p.next()
		if t == nil {
			return nil, xerrors.New("contract definition not found")
		}

		switch {
		case p.isKeyword(t, "scilla_version") && p.peek() != nil:
			c.Version = p.next().Value
		case p.isKeyword(t, "with"):
			depth++
		case p.isKeyword(t, "end"):
			depth--
		}

		if depth == 0 && p.isKeyword(t, "contract") {
			break
		}
	}

	name, err := p.expect(Ident, "")
	if err != nil {
		return nil, xerrors.Errorf("failed to read contract name: %v", err)
	}

	c.Name = name.Value

	c.InitParams, err = p.parseParams()
	if err != nil {
		return nil, xerrors.Errorf("failed to read contract parameters: %v", err)
	}

	if p.isKeyword(p.peek(), "with") {
		err = p.skipConstraint()
		if err != nil {
			return nil, err
		}
	}

	for p.peek() != nil {
		t := p.next()

		switch {
		case p.isKeyword(t, "field"):
			field, err := p.parseField()
			if err != nil {
				return nil, xerrors.Errorf("failed to read field: %v", err)
			}

			c.Fields = append(c.Fields, field)
		case p.isKeyword(t, "transition", "procedure"):
			tr, err := p.parseTransition()
			if err != nil {
				return nil, xerrors.Errorf("failed to read %s: %v", t.Value, err)
			}

			if t.Value == "transition" {
				c.Transitions = append(c.Transitions, tr)
			} else {
				c.Procedures = append(c.Procedures, tr)
			}
		default:
			return nil, xerrors.Errorf("line %d: unexpected '%s'", t.Line, t.Value)
		}
	}

	return c, nil
}

// parseParams reads a parenthesized and comma separated list of typed
// parameters.
func (p *parser) parseParams() ([]Field, error) {
	_, err := p.expect(Punct, "(")
	if err != nil {
		return nil, err
	}

	params := []Field{}

	if t := p.peek(); t != nil && t.Value == ")" {
		p.next()
		return params, nil
	}

	for {
		name, err := p.expect(Ident, "")
		if err != nil {
			return nil, err
		}

		_, err = p.expect(Punct, ":")
		if err != nil {
			return nil, err
		}

		typ, last, err := p.readType(",", ")")
		if err != nil {
			return nil, xerrors.Errorf("failed to read type of '%s': %v", name.Value, err)
		}

		params = append(params, Field{Name: name.Value, Type: typ})

		if last.Value == ")" {
			return params, nil
		}
	}
}

// readType reads the tokens of a type until one of the delimiters is found
// outside of parentheses and address clauses. It returns the type and the
// delimiter.
func (p *parser) readType(delims ...string) (string, *Token, error) {
	var parts []*Token

	parens := 0
	clauses := 0

	for {
		t := p.next()
		if t == nil {
			return "", nil, xerrors.New("unexpected end of contract")
		}

		if parens == 0 && clauses == 0 && t.Type == Punct {
			for _, delim := range delims {
				if t.Value == delim {
					if len(parts) == 0 {
						return "", nil, xerrors.Errorf("line %d: missing type", t.Line)
					}

					return joinType(parts), t, nil
				}
			}
		}

		switch {
		case t.Value == "(":
			parens++
		case t.Value == ")":
			parens--
			if parens < 0 {
				return "", nil, xerrors.Errorf("line %d: unbalanced parenthesis", t.Line)
			}
		case p.isKeyword(t, "with"):
			clauses++
		case p.isKeyword(t, "end"):
			clauses--
		}

		parts = append(parts, t)
	}
}

func (p *parser) parseField() (Field, error) {
	name, err := p.expect(Ident, "")
	if err != nil {
		return Field{}, err
	}

	_, err = p.expect(Punct, ":")
	if err != nil {
		return Field{}, err
	}

	typ, _, err := p.readType("=")
	if err != nil {
		return Field{}, xerrors.Errorf("failed to read type of '%s': %v", name.Value, err)
	}

	// Skip the initializer.
	depth := 0
	for t := p.peek(); t != nil; t = p.peek() {
		if depth == 0 && p.isKeyword(t, "field", "transition", "procedure") {
			break
		}

		switch {
		case p.isKeyword(t, "with"):
			depth++
		case p.isKeyword(t, "end"):
			depth--
		}

		p.next()
	}

	return Field{Name: name.Value, Type: typ}, nil
}

func (p *parser) parseTransition() (Transition, error) {
	name, err := p.expect(Ident, "")
	if err != nil {
		return Transition{}, err
	}

	params, err := p.parseParams()
	if err != nil {
		return Transition{}, xerrors.Errorf("failed to read parameters of '%s': %v", name.Value, err)
	}

	// Skip the body, which is closed by the first 'end' that does not belong
	// to a match or to an address type.
	depth := 0
	for {
		t := p.next()
		if t == nil {
			return Transition{}, xerrors.Errorf("missing 'end' of '%s'", name.Value)
		}

		if p.isKeyword(t, "with") {
			depth++
		}

		if p.isKeyword(t, "end") {
			if depth == 0 {
				break
			}

			depth--
		}
	}

	return Transition{Name: name.Value, Params: params}, nil
}

// skipConstraint skips the `with <expr> =>` constraint of the contract.
func (p *parser) skipConstraint() error {
	depth := 0

	for {
		t := p.next()
		if t == nil {
			return xerrors.New("missing '=>' of the contract constraint")
		}

		switch {
		case t.Value == "=>" && depth <= 1:
			return nil
		case p.isKeyword(t, "with"):
			depth++
		case p.isKeyword(t, "end"):
			depth--
		}
	}
}

func joinType(parts []*Token) string {
	var b strings.Builder

	for i, t := range parts {
		if i > 0 && parts[i-1].Value != "(" && t.Value != ")" && t.Value != "," {
			b.WriteByte(' ')
		}

		b.WriteString(t.Value)
	}

	return b.String()
}
