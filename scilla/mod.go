// Package scilla defines the wire representation of Scilla values and the
// codecs that translate them to and from native Go values.
//
// A wire value is one of the JSON shapes the chain uses to transport contract
// values: a primitive string, an ADT made of a constructor and its arguments,
// a map of string keys, or a flat list when the chain returns a list in a
// state read.
//
// Each supported Scilla type has a Codec that knows its type name and how to
// encode and decode a native value. Containers are built by composing codecs:
//
//	codec := scilla.MapOf(scilla.ByStr20, scilla.ListOf(scilla.Uint128))
//	codec.TypeName() // Map ByStr20 (List (Uint128))
//
// Codecs are stateless and can be used concurrently.
package scilla

import (
	"bytes"
	"encoding/json"

	"golang.org/x/xerrors"
)

// Value is the wire representation of a Scilla value. It is implemented by
// Primitive, ADT, Map and List, and by Invalid for what could not be parsed.
type Value interface {
	json.Marshaler

	// String returns the JSON representation of the value.
	String() string

	value()
}

// Primitive is the wire value of integers, strings, addresses and block
// numbers. It is serialized as a JSON string.
//
// - implements scilla.Value
type Primitive string

func (Primitive) value() {}

// MarshalJSON implements json.Marshaler.
func (p Primitive) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(p))
}

// String implements scilla.Value.
func (p Primitive) String() string {
	return marshalString(p)
}

// ADT is the wire value of an algebraic data type instance, for example
// booleans, options, pairs and lists.
//
// - implements scilla.Value
type ADT struct {
	Constructor string
	ArgTypes    []string
	Arguments   []Value
}

func (ADT) value() {}

type adtJSON struct {
	Constructor string            `json:"constructor"`
	ArgTypes    []string          `json:"argtypes"`
	Arguments   []json.RawMessage `json:"arguments"`
}

// MarshalJSON implements json.Marshaler. Empty type arguments and arguments
// are always serialized as empty arrays.
func (a ADT) MarshalJSON() ([]byte, error) {
	out := adtJSON{
		Constructor: a.Constructor,
		ArgTypes:    a.ArgTypes,
		Arguments:   make([]json.RawMessage, len(a.Arguments)),
	}

	if out.ArgTypes == nil {
		out.ArgTypes = []string{}
	}

	for i, arg := range a.Arguments {
		if arg == nil {
			return nil, xerrors.Errorf("argument %d of '%s' is missing", i, a.Constructor)
		}

		data, err := arg.MarshalJSON()
		if err != nil {
			return nil, xerrors.Errorf("failed to marshal argument %d: %v", i, err)
		}

		out.Arguments[i] = data
	}

	return json.Marshal(out)
}

// String implements scilla.Value.
func (a ADT) String() string {
	return marshalString(a)
}

// asMap returns the map that has the same JSON form as the ADT. Empty type
// arguments and arguments are left out.
func (a ADT) asMap() Map {
	m := Map{"constructor": Primitive(a.Constructor)}

	if len(a.ArgTypes) > 0 {
		types := make(List, len(a.ArgTypes))
		for i, name := range a.ArgTypes {
			types[i] = Primitive(name)
		}

		m["argtypes"] = types
	}

	if len(a.Arguments) > 0 {
		m["arguments"] = List(a.Arguments)
	}

	return m
}

// Map is the wire value of a Scilla map. Keys are the string form of the
// Scilla key values.
//
// - implements scilla.Value
type Map map[string]Value

func (Map) value() {}

// MarshalJSON implements json.Marshaler. Keys are sorted.
func (m Map) MarshalJSON() ([]byte, error) {
	if m == nil {
		return []byte("{}"), nil
	}

	return json.Marshal(map[string]Value(m))
}

// String implements scilla.Value.
func (m Map) String() string {
	return marshalString(m)
}

// List is the flat representation of a Scilla list as it is returned by state
// reads. Outgoing lists are always encoded as nested Cons and Nil ADTs.
//
// - implements scilla.Value
type List []Value

func (List) value() {}

// MarshalJSON implements json.Marshaler.
func (l List) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}

	return json.Marshal([]Value(l))
}

// String implements scilla.Value.
func (l List) String() string {
	return marshalString(l)
}

// Invalid holds a JSON value that is not a wire value, like null or a boolean
// literal, with the reason of the failure. No codec accepts it.
//
// - implements scilla.Value
type Invalid struct {
	Raw json.RawMessage
	Err error
}

func (Invalid) value() {}

// MarshalJSON implements json.Marshaler. It returns the raw value.
func (v Invalid) MarshalJSON() ([]byte, error) {
	if len(v.Raw) == 0 {
		return []byte("null"), nil
	}

	return v.Raw, nil
}

// String implements scilla.Value.
func (v Invalid) String() string {
	data, _ := v.MarshalJSON()
	return string(data)
}

// ParseValue parses the JSON representation of a wire value. Strings and
// numbers become primitives, objects made of a constructor with its argument
// types and arguments become ADTs, other objects become maps and arrays become
// lists.
func ParseValue(data []byte) (Value, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, xerrors.New("empty value")
	}

	switch data[0] {
	case '"':
		var str string
		err := json.Unmarshal(data, &str)
		if err != nil {
			return nil, xerrors.Errorf("failed to decode string: %v", err)
		}

		return Primitive(str), nil
	case '[':
		return parseList(data)
	case '{':
		return parseObject(data)
	case 'n':
		return nil, xerrors.New("unexpected null value")
	case 't', 'f':
		return nil, xerrors.Errorf("unexpected boolean literal '%s'", data)
	default:
		var num json.Number
		err := json.Unmarshal(data, &num)
		if err != nil {
			return nil, xerrors.Errorf("failed to decode number: %v", err)
		}

		return Primitive(num.String()), nil
	}
}

func parseList(data []byte) (Value, error) {
	var items []json.RawMessage
	err := json.Unmarshal(data, &items)
	if err != nil {
		return nil, xerrors.Errorf("failed to decode list: %v", err)
	}

	list := make(List, len(items))
	for i, item := range items {
		list[i], err = ParseValue(item)
		if err != nil {
			return nil, xerrors.Errorf("failed to parse item %d: %v", i, err)
		}
	}

	return list, nil
}

func parseObject(data []byte) (Value, error) {
	var fields map[string]json.RawMessage
	err := json.Unmarshal(data, &fields)
	if err != nil {
		return nil, xerrors.Errorf("failed to decode object: %v", err)
	}

	if isADT(fields) {
		return parseADT(data)
	}

	m := make(Map, len(fields))
	for key, raw := range fields {
		m[key], err = ParseValue(raw)
		if err != nil {
			return nil, xerrors.Errorf("failed to parse entry '%s': %v", key, err)
		}
	}

	return m, nil
}

// isADT returns true when the object has a string constructor and no other key
// than the argument types and the arguments, which must be arrays.
func isADT(fields map[string]json.RawMessage) bool {
	constructor, found := fields["constructor"]
	if !found {
		return false
	}

	var name string
	if json.Unmarshal(constructor, &name) != nil {
		return false
	}

	for key, raw := range fields {
		switch key {
		case "constructor":
		case "argtypes", "arguments":
			raw = bytes.TrimSpace(raw)
			if len(raw) == 0 || raw[0] != '[' {
				return false
			}
		default:
			return false
		}
	}

	return true
}

func parseADT(data []byte) (Value, error) {
	var raw adtJSON
	err := json.Unmarshal(data, &raw)
	if err != nil {
		return nil, xerrors.Errorf("failed to decode adt: %v", err)
	}

	adt := ADT{
		Constructor: raw.Constructor,
		ArgTypes:    raw.ArgTypes,
		Arguments:   make([]Value, len(raw.Arguments)),
	}

	if adt.ArgTypes == nil {
		adt.ArgTypes = []string{}
	}

	for i, arg := range raw.Arguments {
		adt.Arguments[i], err = ParseValue(arg)
		if err != nil {
			return nil, xerrors.Errorf("failed to parse argument %d of '%s': %v",
				i, raw.Constructor, err)
		}
	}

	return adt, nil
}

// NamedValue is a value associated with a name and the Scilla type name. It is
// used for init parameters, transition arguments and event parameters.
type NamedValue struct {
	VName string `json:"vname"`
	Type  string `json:"type"`
	Value Value  `json:"value"`
}

// Named creates a named value by encoding the native value with the codec.
func Named[T any](name string, codec Codec[T], value T) NamedValue {
	return NamedValue{
		VName: name,
		Type:  codec.TypeName(),
		Value: codec.Encode(value),
	}
}

// UnmarshalJSON implements json.Unmarshaler.
func (nv *NamedValue) UnmarshalJSON(data []byte) error {
	var raw struct {
		VName string          `json:"vname"`
		Type  string          `json:"type"`
		Value json.RawMessage `json:"value"`
	}

	err := json.Unmarshal(data, &raw)
	if err != nil {
		return xerrors.Errorf("failed to decode named value: %v", err)
	}

	value, err := ParseValue(raw.Value)
	if err != nil {
		return xerrors.Errorf("failed to parse value of '%s': %v", raw.VName, err)
	}

	nv.VName = raw.VName
	nv.Type = raw.Type
	nv.Value = value

	return nil
}

// NamedValues is an ordered list of named values.
type NamedValues []NamedValue

// Get returns the value of the given name, or nil if it does not exist.
func (nvs NamedValues) Get(name string) Value {
	for _, nv := range nvs {
		if nv.VName == name {
			return nv.Value
		}
	}

	return nil
}

func marshalString(v json.Marshaler) string {
	data, err := v.MarshalJSON()
	if err != nil {
		return "<" + err.Error() + ">"
	}

	return string(data)
}
