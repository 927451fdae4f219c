// Package units converts amounts between the denominations of the chain. The
// base unit is the Qa: 1 ZIL = 10^6 Li = 10^12 Qa.
package units

import (
	"math/big"
	"strings"

	"golang.org/x/xerrors"
)

var (
	// Qa is the base unit.
	Qa = big.NewInt(1)

	// Li is worth 10^6 Qa. Gas prices are usually expressed in Li.
	Li = big.NewInt(1_000_000)

	// Zil is worth 10^12 Qa.
	Zil = big.NewInt(1_000_000_000_000)
)

// ParseZil returns the amount of Qa of a decimal amount of ZIL, for instance
// "0.002".
func ParseZil(amount string) (*big.Int, error) {
	return parse(amount, Zil)
}

// ParseLi returns the amount of Qa of a decimal amount of Li.
func ParseLi(amount string) (*big.Int, error) {
	return parse(amount, Li)
}

// MustParseZil is like ParseZil but panics on invalid input. It is meant for
// constants.
func MustParseZil(amount string) *big.Int {
	qa, err := ParseZil(amount)
	if err != nil {
		panic(err)
	}

	return qa
}

func parse(amount string, unit *big.Int) (*big.Int, error) {
	r, ok := new(big.Rat).SetString(strings.TrimSpace(amount))
	if !ok {
		return nil, xerrors.Errorf("invalid amount '%s'", amount)
	}

	if r.Sign() < 0 {
		return nil, xerrors.Errorf("negative amount '%s'", amount)
	}

	r.Mul(r, new(big.Rat).SetInt(unit))
	if !r.IsInt() {
		return nil, xerrors.Errorf("amount '%s' is smaller than a Qa", amount)
	}

	return new(big.Int).Set(r.Num()), nil
}

// FormatZil returns the decimal amount of ZIL of an amount of Qa, without
// trailing zeros.
func FormatZil(qa *big.Int) string {
	return format(qa, Zil, 12)
}

// FormatLi returns the decimal amount of Li of an amount of Qa.
func FormatLi(qa *big.Int) string {
	return format(qa, Li, 6)
}

func format(qa, unit *big.Int, decimals int) string {
	if qa == nil {
		return "0"
	}

	sign := ""
	abs := new(big.Int).Abs(qa)
	if qa.Sign() < 0 {
		sign = "-"
	}

	quo, rem := new(big.Int).QuoRem(abs, unit, new(big.Int))
	if rem.Sign() == 0 {
		return sign + quo.String()
	}

	frac := rem.String()
	frac = strings.Repeat("0", decimals-len(frac)) + frac

	return sign + quo.String() + "." + strings.TrimRight(frac, "0")
}
