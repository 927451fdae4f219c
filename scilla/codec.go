package scilla

import (
	"encoding/hex"
	"math/big"
	"strconv"
	"strings"

	"github.com/holiman/uint256"
	"golang.org/x/xerrors"
)

// Codec translates a native value of type T to its wire representation and
// back. The type name is constant for a given codec.
type Codec[T any] interface {
	// TypeName returns the Scilla type name, as it must appear in a named
	// value or in the type arguments of an ADT.
	TypeName() string

	// Encode returns the wire value of the native value.
	Encode(T) Value

	// Decode returns the native value of the wire value, or a *CodecError if
	// the wire value does not match the type.
	Decode(Value) (T, error)
}

var (
	// Int32 is the codec of the Int32 type.
	Int32 Codec[int32] = intCodec[int32]{name: "Int32", bits: 32, signed: true}

	// Int64 is the codec of the Int64 type.
	Int64 Codec[int64] = intCodec[int64]{name: "Int64", bits: 64, signed: true}

	// Uint32 is the codec of the Uint32 type.
	Uint32 Codec[uint32] = intCodec[uint32]{name: "Uint32", bits: 32}

	// Uint64 is the codec of the Uint64 type.
	Uint64 Codec[uint64] = intCodec[uint64]{name: "Uint64", bits: 64}

	// Int128 is the codec of the Int128 type.
	Int128 Codec[*big.Int] = bigIntCodec{name: "Int128", bits: 128}

	// Int256 is the codec of the Int256 type.
	Int256 Codec[*big.Int] = bigIntCodec{name: "Int256", bits: 256}

	// Uint128 is the codec of the Uint128 type.
	Uint128 Codec[uint256.Int] = uintCodec{name: "Uint128", bits: 128}

	// Uint256 is the codec of the Uint256 type.
	Uint256 Codec[uint256.Int] = uintCodec{name: "Uint256", bits: 256}

	// BNum is the codec of the block number type.
	BNum Codec[BlockNumber] = intCodec[BlockNumber]{name: "BNum", bits: 64}

	// String is the codec of the String type.
	String Codec[string] = stringCodec{}

	// ByStr20 is the codec of 20-byte addresses.
	ByStr20 Codec[Address] = addressCodec{}

	// Bool is the codec of the Bool ADT.
	Bool Codec[bool] = boolCodec{}
)

// BlockNumber is the native value of the BNum type.
type BlockNumber uint64

type integer interface {
	~int32 | ~int64 | ~uint32 | ~uint64
}

type intCodec[T integer] struct {
	name   string
	bits   int
	signed bool
}

func (c intCodec[T]) TypeName() string {
	return c.name
}

func (c intCodec[T]) Encode(v T) Value {
	if c.signed {
		return Primitive(strconv.FormatInt(int64(v), 10))
	}

	return Primitive(strconv.FormatUint(uint64(v), 10))
}

func (c intCodec[T]) Decode(v Value) (T, error) {
	p, ok := v.(Primitive)
	if !ok {
		return 0, newCodecError(c.name, v, nil)
	}

	if c.signed {
		n, err := strconv.ParseInt(string(p), 10, c.bits)
		if err != nil {
			return 0, newCodecError(c.name, v, err)
		}

		return T(n), nil
	}

	n, err := strconv.ParseUint(string(p), 10, c.bits)
	if err != nil {
		return 0, newCodecError(c.name, v, err)
	}

	return T(n), nil
}

type bigIntCodec struct {
	name string
	bits uint
}

func (c bigIntCodec) TypeName() string {
	return c.name
}

func (c bigIntCodec) Encode(v *big.Int) Value {
	if v == nil {
		return Primitive("0")
	}

	return Primitive(v.String())
}

func (c bigIntCodec) Decode(v Value) (*big.Int, error) {
	p, ok := v.(Primitive)
	if !ok {
		return nil, newCodecError(c.name, v, nil)
	}

	n, ok := new(big.Int).SetString(string(p), 10)
	if !ok {
		return nil, newCodecError(c.name, v, xerrors.New("invalid integer"))
	}

	limit := new(big.Int).Lsh(big.NewInt(1), c.bits-1)
	if n.Cmp(limit) >= 0 || n.Cmp(new(big.Int).Neg(limit)) < 0 {
		return nil, newCodecError(c.name, v, xerrors.New("out of range"))
	}

	return n, nil
}

type uintCodec struct {
	name string
	bits int
}

func (c uintCodec) TypeName() string {
	return c.name
}

func (c uintCodec) Encode(v uint256.Int) Value {
	return Primitive(v.ToBig().String())
}

func (c uintCodec) Decode(v Value) (uint256.Int, error) {
	p, ok := v.(Primitive)
	if !ok {
		return uint256.Int{}, newCodecError(c.name, v, nil)
	}

	n, ok := new(big.Int).SetString(string(p), 10)
	if !ok {
		return uint256.Int{}, newCodecError(c.name, v, xerrors.New("invalid integer"))
	}

	if n.Sign() < 0 || n.BitLen() > c.bits {
		return uint256.Int{}, newCodecError(c.name, v, xerrors.New("out of range"))
	}

	res, _ := uint256.FromBig(n)

	return *res, nil
}

type stringCodec struct{}

func (stringCodec) TypeName() string {
	return "String"
}

func (stringCodec) Encode(v string) Value {
	return Primitive(v)
}

func (stringCodec) Decode(v Value) (string, error) {
	p, ok := v.(Primitive)
	if !ok {
		return "", newCodecError("String", v, nil)
	}

	return string(p), nil
}

type addressCodec struct{}

func (addressCodec) TypeName() string {
	return "ByStr20"
}

func (addressCodec) Encode(v Address) Value {
	return Primitive(v.String())
}

func (addressCodec) Decode(v Value) (Address, error) {
	p, ok := v.(Primitive)
	if !ok {
		return Address{}, newCodecError("ByStr20", v, nil)
	}

	addr, err := ParseAddress(string(p))
	if err != nil {
		return Address{}, newCodecError("ByStr20", v, err)
	}

	return addr, nil
}

// ByStr returns the codec of the ByStrN type where N is the size in bytes. A
// size of zero returns the codec of the arbitrary length ByStr type. The
// native value is the 0x-prefixed lowercase hexadecimal string.
func ByStr(size int) Codec[string] {
	return byStrCodec{size: size}
}

type byStrCodec struct {
	size int
}

func (c byStrCodec) TypeName() string {
	if c.size == 0 {
		return "ByStr"
	}

	return "ByStr" + strconv.Itoa(c.size)
}

func (c byStrCodec) Encode(v string) Value {
	return Primitive("0x" + strings.ToLower(strings.TrimPrefix(v, "0x")))
}

func (c byStrCodec) Decode(v Value) (string, error) {
	p, ok := v.(Primitive)
	if !ok {
		return "", newCodecError(c.TypeName(), v, nil)
	}

	str := string(p)
	if !strings.HasPrefix(str, "0x") {
		return "", newCodecError(c.TypeName(), v, xerrors.New("missing 0x prefix"))
	}

	raw, err := hex.DecodeString(str[2:])
	if err != nil {
		return "", newCodecError(c.TypeName(), v, err)
	}

	if c.size > 0 && len(raw) != c.size {
		return "", newCodecError(c.TypeName(), v,
			xerrors.Errorf("expected %d bytes but got %d", c.size, len(raw)))
	}

	return "0x" + hex.EncodeToString(raw), nil
}

type boolCodec struct{}

func (boolCodec) TypeName() string {
	return "Bool"
}

func (boolCodec) Encode(v bool) Value {
	constructor := "False"
	if v {
		constructor = "True"
	}

	return ADT{Constructor: constructor, ArgTypes: []string{}, Arguments: []Value{}}
}

func (boolCodec) Decode(v Value) (bool, error) {
	adt, ok := v.(ADT)
	if !ok {
		return false, newCodecError("Bool", v, nil)
	}

	switch adt.Constructor {
	case "True":
		return true, nil
	case "False":
		return false, nil
	default:
		return false, newCodecError("Bool", v,
			xerrors.Errorf("unknown constructor '%s'", adt.Constructor))
	}
}

// Raw is the native value of a Scilla type that has no typed codec. It keeps
// the wire value as is.
type Raw struct {
	Value Value
}

// String returns the JSON representation of the wire value.
func (r Raw) String() string {
	if r.Value == nil {
		return "null"
	}

	return r.Value.String()
}

// RawOf returns a codec that keeps the wire value untouched and uses the given
// type name.
func RawOf(typeName string) Codec[Raw] {
	return rawCodec{name: typeName}
}

type rawCodec struct {
	name string
}

func (c rawCodec) TypeName() string {
	return c.name
}

func (c rawCodec) Encode(v Raw) Value {
	if v.Value == nil {
		return Primitive("")
	}

	return v.Value
}

func (c rawCodec) Decode(v Value) (Raw, error) {
	switch v.(type) {
	case nil, Invalid:
		return Raw{}, newCodecError(c.name, v, nil)
	}

	return Raw{Value: v}, nil
}
