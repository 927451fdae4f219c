package parser

import (
	"strings"

	"golang.org/x/xerrors"
)

// TokenType is the category of a token.
type TokenType int

const (
	// Ident is a keyword or an identifier.
	Ident TokenType = iota
	// Number is an integer or hexadecimal literal.
	Number
	// String is a string literal, including its quotes.
	String
	// Punct is an operator or a delimiter.
	Punct
)

func (t TokenType) String() string {
	switch t {
	case Ident:
		return "identifier"
	case Number:
		return "number"
	case String:
		return "string"
	case Punct:
		return "punctuation"
	}

	return "unknown"
}

// Token is a lexical element of a contract source.
type Token struct {
	Type  TokenType
	Value string
	Line  int
}

var operators = []string{"=>", "->", ":=", "<-"}

// Tokenize splits the contract source into tokens. Comments, which can be
// nested, are dropped.
func Tokenize(src string) ([]Token, error) {
	var tokens []Token

	line := 1

	for i := 0; i < len(src); {
		c := src[i]

		switch {
		case c == '\n':
			line++
			i++
		case c == ' ' || c == '\t' || c == '\r':
			i++
		case strings.HasPrefix(src[i:], "(*"):
			end, lines, err := skipComment(src, i)
			if err != nil {
				return nil, xerrors.Errorf("line %d: %v", line, err)
			}

			line += lines
			i = end
		case c == '"':
			end, err := skipString(src, i)
			if err != nil {
				return nil, xerrors.Errorf("line %d: %v", line, err)
			}

			tokens = append(tokens, Token{Type: String, Value: src[i:end], Line: line})
			i = end
		case isDigit(c):
			start := i
			for i < len(src) && isIdentPart(src[i]) {
				i++
			}

			tokens = append(tokens, Token{Type: Number, Value: src[start:i], Line: line})
		case isIdentStart(c):
			start := i
			for i < len(src) && isIdentPart(src[i]) {
				i++
			}

			tokens = append(tokens, Token{Type: Ident, Value: src[start:i], Line: line})
		default:
			value := string(c)
			for _, op := range operators {
				if strings.HasPrefix(src[i:], op) {
					value = op
					break
				}
			}

			tokens = append(tokens, Token{Type: Punct, Value: value, Line: line})
			i += len(value)
		}
	}

	return tokens, nil
}

// StripComments returns the source without its comments, which can be nested.
// String literals are copied as they are, even when they contain comment
// delimiters. An unterminated comment is kept.
func StripComments(src string) string {
	var b strings.Builder

	for i := 0; i < len(src); {
		switch {
		case src[i] == '"':
			end, err := skipString(src, i)
			if err != nil {
				b.WriteByte(src[i])
				i++
				continue
			}

			b.WriteString(src[i:end])
			i = end
		case strings.HasPrefix(src[i:], "(*"):
			end, _, err := skipComment(src, i)
			if err != nil {
				b.WriteString(src[i:])
				return b.String()
			}

			i = end
		default:
			b.WriteByte(src[i])
			i++
		}
	}

	return b.String()
}

// skipComment returns the index after the comment starting at the given
// position and the number of lines it spans.
func skipComment(src string, start int) (int, int, error) {
	depth := 0
	lines := 0

	for i := start; i < len(src); i++ {
		switch {
		case strings.HasPrefix(src[i:], "(*"):
			depth++
			i++
		case strings.HasPrefix(src[i:], "*)"):
			depth--
			i++

			if depth == 0 {
				return i + 1, lines, nil
			}
		case src[i] == '\n':
			lines++
		}
	}

	return 0, 0, xerrors.New("unterminated comment")
}

func skipString(src string, start int) (int, error) {
	for i := start + 1; i < len(src); i++ {
		switch src[i] {
		case '\\':
			i++
		case '"':
			return i + 1, nil
		case '\n':
			return 0, xerrors.New("unterminated string")
		}
	}

	return 0, xerrors.New("unterminated string")
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isIdentStart(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_'
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || isDigit(c) || c == '\''
}
