package bindgen

import (
	"go/token"
	"strconv"
	"strings"
	"unicode"
)

// names is a set of identifiers already used in a scope.
type names map[string]struct{}

func newNames(reserved ...string) names {
	n := make(names, len(reserved))
	for _, r := range reserved {
		n[r] = struct{}{}
	}

	return n
}

// take returns the identifier if it is free, or the identifier with the suffix
// and, if necessary, a counter. The returned identifier is marked as used.
func (n names) take(ident, suffix string) string {
	candidate := ident
	if n.has(candidate) {
		candidate = ident + suffix
	}

	for i := 2; n.has(candidate); i++ {
		candidate = ident + suffix + strconv.Itoa(i)
	}

	n[candidate] = struct{}{}

	return candidate
}

func (n names) has(ident string) bool {
	_, found := n[ident]
	return found
}

// capitalise makes a camel-case identifier starting with an upper case letter
// out of a Scilla identifier such as "welcome_msg" or "setHello".
func capitalise(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || !(unicode.IsLetter(r) || unicode.IsDigit(r))
	})

	var b strings.Builder
	for _, part := range parts {
		runes := []rune(part)
		runes[0] = unicode.ToUpper(runes[0])
		b.WriteString(string(runes))
	}

	ident := b.String()
	if ident == "" || unicode.IsDigit([]rune(ident)[0]) {
		ident = "X" + ident
	}

	return ident
}

// decapitalise makes a camel-case identifier starting with a lower case
// letter. Go keywords are suffixed.
func decapitalise(name string) string {
	runes := []rune(capitalise(name))
	runes[0] = unicode.ToLower(runes[0])

	ident := string(runes)
	if token.IsKeyword(ident) {
		ident += "Arg"
	}

	return ident
}
