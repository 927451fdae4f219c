package scilla

import (
	"crypto/sha256"
	"encoding/hex"
	"math/big"
	"strings"

	"github.com/btcsuite/btcd/btcutil/bech32"
	"golang.org/x/xerrors"
)

// AddressLength is the size in bytes of an account or contract address.
const AddressLength = 20

// Address is a 20-byte account or contract address. It is the native value of
// the ByStr20 type.
type Address [AddressLength]byte

// ZeroAddress is the address used as recipient of contract deployments.
var ZeroAddress Address

// Bech32Prefix is the human-readable part of the bech32 form of the addresses.
const Bech32Prefix = "zil"

// ParseAddress parses an hexadecimal address with or without the 0x prefix, or
// the bech32 form of an address like zil18q05qzzst62q44mgrmp5dzn3jpsv4aukxredu2.
// The case of the hexadecimal form is ignored.
func ParseAddress(str string) (Address, error) {
	var addr Address

	hexStr := strings.TrimPrefix(strings.TrimPrefix(str, "0x"), "0X")

	// The bech32 form is always longer than the hexadecimal one.
	if hexStr == str && len(str) > AddressLength*2 {
		return parseBech32(str)
	}

	if len(hexStr) != AddressLength*2 {
		return addr, xerrors.Errorf("invalid address length %d", len(hexStr))
	}

	_, err := hex.Decode(addr[:], []byte(hexStr))
	if err != nil {
		return addr, xerrors.Errorf("failed to decode hex: %v", err)
	}

	return addr, nil
}

func parseBech32(str string) (Address, error) {
	prefix, data, err := bech32.Decode(str)
	if err != nil {
		return Address{}, xerrors.Errorf("failed to decode bech32: %v", err)
	}

	if prefix != Bech32Prefix {
		return Address{}, xerrors.Errorf("invalid bech32 prefix '%s'", prefix)
	}

	raw, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return Address{}, xerrors.Errorf("failed to convert bech32 data: %v", err)
	}

	return AddressFromBytes(raw)
}

// AddressFromBytes returns the address of the buffer which must be exactly 20
// bytes long.
func AddressFromBytes(data []byte) (Address, error) {
	var addr Address

	if len(data) != AddressLength {
		return addr, xerrors.Errorf("invalid address length %d", len(data))
	}

	copy(addr[:], data)

	return addr, nil
}

// IsZero returns true if every byte of the address is zero.
func (a Address) IsZero() bool {
	return a == ZeroAddress
}

// Hex returns the lowercase hexadecimal form without prefix, as expected by the
// RPC endpoints.
func (a Address) Hex() string {
	return hex.EncodeToString(a[:])
}

// String returns the 0x-prefixed lowercase hexadecimal form.
func (a Address) String() string {
	return "0x" + a.Hex()
}

// Checksum returns the 0x-prefixed checksummed form of the address, where the
// case of each letter is given by the bits of the SHA256 hash of the address.
func (a Address) Checksum() string {
	digest := sha256.Sum256(a[:])
	v := new(big.Int).SetBytes(digest[:])

	lower := a.Hex()

	var b strings.Builder
	b.WriteString("0x")

	for i, c := range lower {
		if c >= '0' && c <= '9' {
			b.WriteRune(c)
			continue
		}

		if v.Bit(255-6*i) == 1 {
			b.WriteString(strings.ToUpper(string(c)))
		} else {
			b.WriteRune(c)
		}
	}

	return b.String()
}

// Bech32 returns the bech32 form of the address, as displayed by the wallets.
func (a Address) Bech32() string {
	// Regrouping 20 bytes with padding cannot fail and produces only valid
	// 5-bit groups.
	data, _ := bech32.ConvertBits(a[:], 8, 5, true)
	str, _ := bech32.Encode(Bech32Prefix, data)

	return str
}

// MarshalText implements encoding.TextMarshaler.
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. An empty text is the zero
// address.
func (a *Address) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*a = ZeroAddress
		return nil
	}

	addr, err := ParseAddress(string(text))
	if err != nil {
		return err
	}

	*a = addr

	return nil
}
