package scilla

import (
	"encoding/json"
	"errors"
	"math/big"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
)

func TestIntegers_RoundTrip(t *testing.T) {
	checkRoundTrip(t, Int32, int32(-2147483648))
	checkRoundTrip(t, Int64, int64(9223372036854775807))
	checkRoundTrip(t, Uint32, uint32(4294967295))
	checkRoundTrip(t, Uint64, uint64(18446744073709551615))
	checkRoundTrip(t, BNum, BlockNumber(101))

	require.Equal(t, Primitive("-12"), Int32.Encode(-12))
	require.Equal(t, "BNum", BNum.TypeName())
}

func TestIntegers_Decode(t *testing.T) {
	_, err := Uint32.Decode(Primitive("-1"))
	checkCodecError(t, err, "Uint32", `"-1"`)

	_, err = Int32.Decode(Primitive("2147483648"))
	checkCodecError(t, err, "Int32", `"2147483648"`)

	_, err = Int64.Decode(Bool.Encode(true))
	checkCodecError(t, err, "Int64", `{"constructor":"True","argtypes":[],"arguments":[]}`)
}

func TestBigIntegers(t *testing.T) {
	max128, _ := new(big.Int).SetString("170141183460469231731687303715884105727", 10)
	min128 := new(big.Int).Neg(new(big.Int).Add(max128, big.NewInt(1)))

	checkRoundTrip(t, Int128, max128)
	checkRoundTrip(t, Int128, min128)
	checkRoundTrip(t, Int256, new(big.Int).Lsh(max128, 100))

	require.Equal(t, Primitive("0"), Int128.Encode(nil))

	_, err := Int128.Decode(Primitive(new(big.Int).Add(max128, big.NewInt(1)).String()))
	require.Error(t, err)
	require.Contains(t, err.Error(), "out of range")

	_, err = Int256.Decode(Primitive("abc"))
	require.EqualError(t, err, `failed to parse "abc" as Int256: invalid integer`)

	_, err = Int128.Decode(Map{})
	checkCodecError(t, err, "Int128", `{}`)
}

func TestUnsignedBigIntegers(t *testing.T) {
	checkRoundTrip(t, Uint128, *uint256.NewInt(123))

	max := new(uint256.Int).SetAllOne()
	checkRoundTrip(t, Uint256, *max)

	v, err := Uint128.Decode(Primitive("340282366920938463463374607431768211455"))
	require.NoError(t, err)
	require.Equal(t, 128, v.BitLen())

	_, err = Uint128.Decode(Primitive("340282366920938463463374607431768211456"))
	require.EqualError(t, err,
		`failed to parse "340282366920938463463374607431768211456" as Uint128: out of range`)

	_, err = Uint256.Decode(Primitive("-1"))
	require.EqualError(t, err, `failed to parse "-1" as Uint256: out of range`)

	_, err = Uint256.Decode(Primitive("1.5"))
	require.EqualError(t, err, `failed to parse "1.5" as Uint256: invalid integer`)

	_, err = Uint128.Decode(List{})
	checkCodecError(t, err, "Uint128", `[]`)
}

func TestString(t *testing.T) {
	checkRoundTrip(t, String, "hello world")

	_, err := String.Decode(List{})
	checkCodecError(t, err, "String", `[]`)
}

func TestByStr20(t *testing.T) {
	addr, err := ParseAddress("0x381f4008505e940AD7681EC3468a719060caF796")
	require.NoError(t, err)

	checkRoundTrip(t, ByStr20, addr)
	require.Equal(t, Primitive("0x381f4008505e940ad7681ec3468a719060caf796"), ByStr20.Encode(addr))

	_, err = ByStr20.Decode(Primitive("0x1234"))
	require.EqualError(t, err, `failed to parse "0x1234" as ByStr20: invalid address length 4`)

	_, err = ByStr20.Decode(ADT{})
	checkCodecError(t, err, "ByStr20", `{"constructor":"","argtypes":[],"arguments":[]}`)
}

func TestByStr(t *testing.T) {
	codec := ByStr(4)
	require.Equal(t, "ByStr4", codec.TypeName())
	require.Equal(t, "ByStr", ByStr(0).TypeName())

	require.Equal(t, Primitive("0xdeadbeef"), codec.Encode("DEADBEEF"))
	checkRoundTrip(t, codec, "0xdeadbeef")

	v, err := ByStr(0).Decode(Primitive("0xABCDEF"))
	require.NoError(t, err)
	require.Equal(t, "0xabcdef", v)

	_, err = codec.Decode(Primitive("deadbeef"))
	require.EqualError(t, err, `failed to parse "deadbeef" as ByStr4: missing 0x prefix`)

	_, err = codec.Decode(Primitive("0xdead"))
	require.EqualError(t, err, `failed to parse "0xdead" as ByStr4: expected 4 bytes but got 2`)

	_, err = codec.Decode(Primitive("0xzz"))
	require.Error(t, err)

	_, err = codec.Decode(Map{})
	checkCodecError(t, err, "ByStr4", `{}`)
}

func TestBool(t *testing.T) {
	checkJSON(t, Bool.Encode(true), `{"constructor":"True","argtypes":[],"arguments":[]}`)
	checkJSON(t, Bool.Encode(false), `{"constructor":"False","argtypes":[],"arguments":[]}`)

	checkRoundTrip(t, Bool, true)
	checkRoundTrip(t, Bool, false)

	_, err := Bool.Decode(ADT{Constructor: "Maybe"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown constructor 'Maybe'")

	_, err = Bool.Decode(Primitive("true"))
	checkCodecError(t, err, "Bool", `"true"`)
}

func TestOption(t *testing.T) {
	codec := OptionOf(Bool)
	require.Equal(t, "Option (Bool)", codec.TypeName())

	checkJSON(t, OptionOf(Uint32).Encode(Some[uint32](7)),
		`{"constructor":"Some","argtypes":["Uint32"],"arguments":["7"]}`)
	checkJSON(t, OptionOf(Uint32).Encode(None[uint32]()),
		`{"constructor":"None","argtypes":["Uint32"],"arguments":[]}`)

	checkRoundTrip(t, codec, Some(true))
	checkRoundTrip(t, codec, None[bool]())
	checkRoundTrip(t, OptionOf(OptionOf(String)), Some(Some("a")))

	v, ok := Some(3).Get()
	require.True(t, ok)
	require.Equal(t, 3, v)
	require.False(t, None[int]().IsSome())

	_, err := codec.Decode(ADT{Constructor: "Some"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "expected 1 argument but got 0")

	_, err = codec.Decode(ADT{Constructor: "Some", Arguments: []Value{Primitive("x")}})
	require.Error(t, err)

	var codecErr *CodecError
	require.True(t, errors.As(err, &codecErr))
	require.Equal(t, "Option (Bool)", codecErr.Expected)

	var inner *CodecError
	require.True(t, errors.As(codecErr.Unwrap(), &inner))
	require.Equal(t, "Bool", inner.Expected)

	_, err = codec.Decode(ADT{Constructor: "Other"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown constructor 'Other'")

	_, err = codec.Decode(Primitive("x"))
	checkCodecError(t, err, "Option (Bool)", `"x"`)
}

func TestPair(t *testing.T) {
	codec := PairOf(String, Uint32)
	require.Equal(t, "Pair String Uint32", codec.TypeName())
	require.Equal(t, "Pair (Option (Bool)) Int32", PairOf(OptionOf(Bool), Int32).TypeName())

	checkJSON(t, codec.Encode(MakePair("hello", uint32(123))),
		`{"constructor":"Pair","argtypes":["String","Uint32"],"arguments":["hello","123"]}`)

	checkRoundTrip(t, codec, MakePair("hello", uint32(123)))

	_, err := codec.Decode(ADT{Constructor: "Pair", Arguments: []Value{Primitive("a")}})
	require.Error(t, err)
	require.Contains(t, err.Error(), "expected 2 arguments but got 1")

	_, err = codec.Decode(ADT{
		Constructor: "Pair",
		Arguments:   []Value{Primitive("a"), Primitive("b"), Primitive("c")},
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "expected 2 arguments but got 3")

	_, err = codec.Decode(ADT{Constructor: "Pair", Arguments: []Value{List{}, Primitive("1")}})
	require.Error(t, err)

	_, err = codec.Decode(ADT{Constructor: "Pair", Arguments: []Value{Primitive("a"), Primitive("b")}})
	require.Error(t, err)

	_, err = codec.Decode(ADT{Constructor: "Cons"})
	require.Error(t, err)
}

func TestList(t *testing.T) {
	codec := ListOf(String)
	require.Equal(t, "List (String)", codec.TypeName())
	require.Equal(t, "List (Pair ByStr20 Uint32)", ListOf(PairOf(ByStr20, Uint32)).TypeName())

	checkJSON(t, codec.Encode([]string{"a", "b"}),
		`{"constructor":"Cons","argtypes":["String"],"arguments":["a",`+
			`{"constructor":"Cons","argtypes":["String"],"arguments":["b",`+
			`{"constructor":"Nil","argtypes":["String"],"arguments":[]}]}]}`)

	checkRoundTrip(t, codec, []string{"a", "b", "c"})
	checkRoundTrip(t, codec, []string{})
	checkRoundTrip(t, ListOf(ListOf(Int32)), [][]int32{{1, 2}, {}, {3}})

	v, err := codec.Decode(List{Primitive("x"), Primitive("y")})
	require.NoError(t, err)
	require.Equal(t, []string{"x", "y"}, v)

	_, err = codec.Decode(List{Primitive("x"), Map{}})
	checkCodecError(t, err, "List (String)", `["x",{}]`)

	_, err = codec.Decode(ADT{Constructor: "Cons", Arguments: []Value{Primitive("a")}})
	require.Error(t, err)
	require.Contains(t, err.Error(), "expected 2 arguments but got 1")

	_, err = codec.Decode(ADT{Constructor: "Cons", Arguments: []Value{Primitive("a"), List{}}})
	checkCodecError(t, err, "List (String)", `[]`)

	_, err = codec.Decode(ADT{Constructor: "Cons", Arguments: []Value{Map{}, Bool.Encode(true)}})
	require.Error(t, err)

	_, err = codec.Decode(ADT{Constructor: "Some"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown constructor 'Some'")

	_, err = codec.Decode(Primitive("a"))
	checkCodecError(t, err, "List (String)", `"a"`)
}

func TestMap(t *testing.T) {
	codec := MapOf(String, Int32)
	require.Equal(t, "Map String Int32", codec.TypeName())
	require.Equal(t, "Map ByStr20 (Map ByStr20 Uint128)",
		MapOf(ByStr20, MapOf(ByStr20, Uint128)).TypeName())

	checkJSON(t, codec.Encode(map[string]int32{"Denmark": 24}), `{"Denmark":"24"}`)
	require.Equal(t, Map{"Denmark": Primitive("24")}, codec.Encode(map[string]int32{"Denmark": 24}))

	checkRoundTrip(t, codec, map[string]int32{"a": 1, "b": -2})
	checkRoundTrip(t, MapOf(Uint32, ListOf(Bool)), map[uint32][]bool{1: {true}, 2: {}})

	v, err := MapOf(Uint32, String).Decode(List{
		Map{"key": Primitive("1"), "val": Primitive("one")},
	})
	require.NoError(t, err)
	require.Equal(t, map[uint32]string{1: "one"}, v)

	_, err = MapOf(Uint32, String).Decode(List{Map{"key": Primitive("1")}})
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid entry")

	_, err = MapOf(Uint32, String).Decode(List{
		Map{"key": Primitive("1"), "val": List{}},
	})
	require.Error(t, err)

	_, err = MapOf(Uint32, Int32).Decode(Map{"x": Primitive("1")})
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid key: ")

	_, err = codec.Decode(Map{"a": Primitive("x")})
	require.Error(t, err)
	require.Contains(t, err.Error(), `invalid value for key "a": `)

	_, err = codec.Decode(Primitive("x"))
	checkCodecError(t, err, "Map String Int32", `"x"`)

	// A map with a single "constructor" key is read as an ADT first.
	value, err := ParseValue([]byte(`{"constructor":"2"}`))
	require.NoError(t, err)
	require.IsType(t, ADT{}, value)

	v2, err := MapOf(String, Uint32).Decode(value)
	require.NoError(t, err)
	require.Equal(t, map[string]uint32{"constructor": 2}, v2)

	value, err = ParseValue([]byte(`{"alice":"1","constructor":"2"}`))
	require.NoError(t, err)

	v2, err = MapOf(String, Uint32).Decode(value)
	require.NoError(t, err)
	require.Equal(t, map[string]uint32{"alice": 1, "constructor": 2}, v2)

	_, err = MapOf(String, Uint32).Decode(ADT{Constructor: "x"})
	require.Error(t, err)
	require.Contains(t, err.Error(), `invalid value for key "constructor": `)

	encoded := MapOf(Bool, Int32).Encode(map[bool]int32{true: 1})
	require.Len(t, encoded, 1)
}

func TestTextKey(t *testing.T) {
	codec := MapOf(TextKey(Int128), String)
	require.Equal(t, "Map Int128 String", codec.TypeName())

	checkRoundTrip(t, codec, map[string]string{"-5": "a"})

	_, err := codec.Decode(Map{"abc": Primitive("a")})
	require.Error(t, err)

	_, err = TextKey(RawOf("X")).Decode(List{})
	checkCodecError(t, err, "X", `[]`)
}

func TestRaw(t *testing.T) {
	codec := RawOf("MyType")
	require.Equal(t, "MyType", codec.TypeName())

	value := ADT{Constructor: "Custom", ArgTypes: []string{}, Arguments: []Value{}}
	checkRoundTrip(t, codec, Raw{Value: value})

	require.Equal(t, Primitive(""), codec.Encode(Raw{}))
	require.Equal(t, "null", Raw{}.String())
	require.Equal(t, `"a"`, Raw{Value: Primitive("a")}.String())

	_, err := codec.Decode(nil)
	checkCodecError(t, err, "MyType", "null")
}

func TestInvalid(t *testing.T) {
	value := Invalid{Raw: json.RawMessage(`true`), Err: errors.New("oops")}
	require.Equal(t, "true", value.String())
	require.Equal(t, "null", Invalid{}.String())

	_, err := String.Decode(value)
	require.EqualError(t, err, "failed to parse true as String: oops")

	_, err = RawOf("X").Decode(value)
	require.EqualError(t, err, "failed to parse true as X: oops")

	_, err = MapOf(String, String).Decode(Map{"a": value})
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to parse true as String: oops")
}

func TestTypeName_Stability(t *testing.T) {
	codec := ListOf(OptionOf(Int64))

	first := codec.Encode([]Option[int64]{Some[int64](1)}).(ADT)
	second := codec.Encode([]Option[int64]{None[int64](), Some[int64](2)}).(ADT)

	require.Equal(t, first.ArgTypes, second.ArgTypes)
	require.Equal(t, []string{"Option (Int64)"}, first.ArgTypes)
}

// -----------------------------------------------------------------------------
// Utility functions

func checkRoundTrip[T any](t *testing.T, codec Codec[T], value T) {
	t.Helper()

	res, err := codec.Decode(codec.Encode(value))
	require.NoError(t, err)
	require.Equal(t, value, res)

	// The same must hold after a trip through JSON.
	data, err := json.Marshal(codec.Encode(value))
	require.NoError(t, err)

	parsed, err := ParseValue(data)
	require.NoError(t, err)

	res, err = codec.Decode(parsed)
	require.NoError(t, err)
	require.Equal(t, value, res)
}

func checkJSON(t *testing.T, value Value, expected string) {
	t.Helper()

	data, err := json.Marshal(value)
	require.NoError(t, err)
	require.Equal(t, expected, string(data))
}

func checkCodecError(t *testing.T, err error, expected, value string) {
	t.Helper()

	var codecErr *CodecError
	require.True(t, errors.As(err, &codecErr), "unexpected error: %v", err)
	require.Equal(t, expected, codecErr.Expected)
	require.Equal(t, value, codecErr.Value)
}
