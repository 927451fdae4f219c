// Package types parses Scilla type descriptors and maps them to the native Go
// types and codecs of the scilla package.
//
// The supported grammar is the closed set of built-in types: fixed width
// integers, String, BNum, Bool, ByStr20 and ByStrN, Option, Pair, List and Map.
// Any other well-formed descriptor is kept as an opaque type.
package types

import (
	"strconv"
	"strings"

	"golang.org/x/xerrors"
)

// Kind is the category of a Scilla type.
type Kind int

const (
	// Other is a type outside of the supported grammar, for instance a user
	// defined ADT.
	Other Kind = iota
	Int32
	Int64
	Int128
	Int256
	Uint32
	Uint64
	Uint128
	Uint256
	String
	BNum
	Bool
	ByStr20
	ByStr
	Option
	Pair
	List
	Map
)

var primitives = map[string]Kind{
	"Int32":   Int32,
	"Int64":   Int64,
	"Int128":  Int128,
	"Int256":  Int256,
	"Uint32":  Uint32,
	"Uint64":  Uint64,
	"Uint128": Uint128,
	"Uint256": Uint256,
	"String":  String,
	"BNum":    BNum,
	"Bool":    Bool,
	"ByStr20": ByStr20,
	"ByStr":   ByStr,
}

var containers = map[string]struct {
	kind  Kind
	arity int
}{
	"Option": {Option, 1},
	"List":   {List, 1},
	"Pair":   {Pair, 2},
	"Map":    {Map, 2},
}

// Type is a parsed Scilla type descriptor.
type Type struct {
	Kind Kind
	// Name is the head of the type application.
	Name string
	// Size is the number of bytes of a ByStrN type, or zero.
	Size int
	Args []*Type
}

// IsPrimitive returns true if the type is neither a container nor an opaque
// type. Only primitive types can be used as map keys.
func (t *Type) IsPrimitive() bool {
	switch t.Kind {
	case Other, Option, Pair, List, Map:
		return false
	default:
		return true
	}
}

// String returns the canonical form of the type. It is identical to the type
// name of the corresponding codec.
func (t *Type) String() string {
	switch t.Kind {
	case Option, List:
		return t.Name + " (" + t.Args[0].String() + ")"
	}

	if len(t.Args) == 0 {
		return t.Name
	}

	var b strings.Builder
	b.WriteString(t.Name)

	for _, arg := range t.Args {
		name := arg.String()

		b.WriteByte(' ')

		if strings.ContainsRune(name, ' ') {
			b.WriteString("(" + name + ")")
		} else {
			b.WriteString(name)
		}
	}

	return b.String()
}

// Parse parses a type descriptor. Address types with a contract clause such as
// `ByStr20 with contract field f : Uint128 end` are read as ByStr20.
func Parse(desc string) (*Type, error) {
	tokens, err := tokenize(desc)
	if err != nil {
		return nil, xerrors.Errorf("failed to tokenize '%s': %v", desc, err)
	}

	p := &parser{tokens: tokens}

	t, err := p.parseApp()
	if err != nil {
		return nil, xerrors.Errorf("failed to parse '%s': %v", desc, err)
	}

	if !p.done() {
		return nil, xerrors.Errorf("failed to parse '%s': unexpected '%s'", desc, p.peek())
	}

	return t, nil
}

func tokenize(desc string) ([]string, error) {
	var tokens []string

	for i := 0; i < len(desc); {
		c := desc[i]

		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case c == '(' || c == ')' || c == ':' || c == ',':
			tokens = append(tokens, string(c))
			i++
		case isIdentChar(c):
			start := i
			for i < len(desc) && isIdentChar(desc[i]) {
				i++
			}

			tokens = append(tokens, desc[start:i])
		default:
			return nil, xerrors.Errorf("unexpected character '%c' at %d", c, i)
		}
	}

	return tokens, nil
}

func isIdentChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' ||
		c == '_' || c == '.' || c == '\''
}

type parser struct {
	tokens []string
	pos    int
}

func (p *parser) done() bool {
	return p.pos >= len(p.tokens)
}

func (p *parser) peek() string {
	if p.done() {
		return ""
	}

	return p.tokens[p.pos]
}

func (p *parser) next() string {
	tok := p.peek()
	p.pos++

	return tok
}

func (p *parser) startsAtom() bool {
	tok := p.peek()

	return tok == "(" || tok != "" && tok != ")" && tok != ":" && tok != "," &&
		tok != "with" && tok != "end"
}

// parseApp parses a type application: a head followed by its arguments.
func (p *parser) parseApp() (*Type, error) {
	if p.peek() == "(" {
		return p.parseAtom()
	}

	if !p.startsAtom() {
		if p.done() {
			return nil, xerrors.New("unexpected end of type")
		}

		return nil, xerrors.Errorf("unexpected '%s'", p.peek())
	}

	head := p.next()

	if !p.startsAtom() || head == "ByStr20" {
		return p.build(head, nil)
	}

	var args []*Type

	for p.startsAtom() {
		arg, err := p.parseAtom()
		if err != nil {
			return nil, err
		}

		args = append(args, arg)
	}

	return p.build(head, args)
}

// parseAtom parses either a single name or a parenthesized type.
func (p *parser) parseAtom() (*Type, error) {
	tok := p.next()

	switch tok {
	case "":
		return nil, xerrors.New("unexpected end of type")
	case "(":
		t, err := p.parseApp()
		if err != nil {
			return nil, err
		}

		if p.next() != ")" {
			return nil, xerrors.New("missing closing parenthesis")
		}

		return t, nil
	case ")", ":", ",", "with", "end":
		return nil, xerrors.Errorf("unexpected '%s'", tok)
	default:
		return p.build(tok, nil)
	}
}

func (p *parser) build(head string, args []*Type) (*Type, error) {
	if head == "ByStr20" && p.peek() == "with" {
		err := p.skipAddressClause()
		if err != nil {
			return nil, err
		}
	}

	kind, ok := primitives[head]
	if ok {
		if len(args) > 0 {
			return nil, xerrors.Errorf("type '%s' has no argument", head)
		}

		return &Type{Kind: kind, Name: head}, nil
	}

	if strings.HasPrefix(head, "ByStr") {
		size, err := strconv.Atoi(head[len("ByStr"):])
		if err == nil && size > 0 && len(args) == 0 {
			return &Type{Kind: ByStr, Name: head, Size: size}, nil
		}
	}

	container, ok := containers[head]
	if ok {
		if len(args) != container.arity {
			return nil, xerrors.Errorf("type '%s' expects %d argument(s) but got %d",
				head, container.arity, len(args))
		}

		return &Type{Kind: container.kind, Name: head, Args: args}, nil
	}

	return &Type{Kind: Other, Name: head, Args: args}, nil
}

// skipAddressClause consumes a `with ... end` clause, including the nested
// ones of the field types.
func (p *parser) skipAddressClause() error {
	depth := 0

	for {
		switch p.next() {
		case "with":
			depth++
		case "end":
			depth--
			if depth == 0 {
				return nil
			}
		case "":
			return xerrors.New("missing 'end' of address type")
		}
	}
}
