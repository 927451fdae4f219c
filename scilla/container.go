package scilla

import (
	"strings"

	"golang.org/x/xerrors"
)

// Option is the native value of the Option ADT.
type Option[T any] struct {
	value T
	some  bool
}

// Some returns an option holding the value.
func Some[T any](value T) Option[T] {
	return Option[T]{value: value, some: true}
}

// None returns an empty option.
func None[T any]() Option[T] {
	return Option[T]{}
}

// Get returns the value and true if the option is not empty.
func (o Option[T]) Get() (T, bool) {
	return o.value, o.some
}

// IsSome returns true if the option holds a value.
func (o Option[T]) IsSome() bool {
	return o.some
}

// OptionOf returns the codec of an Option of the element type.
func OptionOf[T any](elem Codec[T]) Codec[Option[T]] {
	return optionCodec[T]{elem: elem}
}

type optionCodec[T any] struct {
	elem Codec[T]
}

func (c optionCodec[T]) TypeName() string {
	return "Option (" + c.elem.TypeName() + ")"
}

func (c optionCodec[T]) Encode(v Option[T]) Value {
	adt := ADT{
		Constructor: "None",
		ArgTypes:    []string{c.elem.TypeName()},
		Arguments:   []Value{},
	}

	if v.some {
		adt.Constructor = "Some"
		adt.Arguments = []Value{c.elem.Encode(v.value)}
	}

	return adt
}

func (c optionCodec[T]) Decode(v Value) (Option[T], error) {
	adt, ok := v.(ADT)
	if !ok {
		return Option[T]{}, newCodecError(c.TypeName(), v, nil)
	}

	switch adt.Constructor {
	case "None":
		return None[T](), nil
	case "Some":
		if len(adt.Arguments) != 1 {
			return Option[T]{}, newCodecError(c.TypeName(), v,
				xerrors.Errorf("expected 1 argument but got %d", len(adt.Arguments)))
		}

		elem, err := c.elem.Decode(adt.Arguments[0])
		if err != nil {
			return Option[T]{}, newCodecError(c.TypeName(), v, err)
		}

		return Some(elem), nil
	default:
		return Option[T]{}, newCodecError(c.TypeName(), v,
			xerrors.Errorf("unknown constructor '%s'", adt.Constructor))
	}
}

// Pair is the native value of the Pair ADT.
type Pair[A, B any] struct {
	First  A
	Second B
}

// MakePair returns a pair of the two values.
func MakePair[A, B any](first A, second B) Pair[A, B] {
	return Pair[A, B]{First: first, Second: second}
}

// PairOf returns the codec of a Pair of the two element types.
func PairOf[A, B any](first Codec[A], second Codec[B]) Codec[Pair[A, B]] {
	return pairCodec[A, B]{first: first, second: second}
}

type pairCodec[A, B any] struct {
	first  Codec[A]
	second Codec[B]
}

func (c pairCodec[A, B]) TypeName() string {
	return "Pair " + argument(c.first.TypeName()) + " " + argument(c.second.TypeName())
}

func (c pairCodec[A, B]) Encode(v Pair[A, B]) Value {
	return ADT{
		Constructor: "Pair",
		ArgTypes:    []string{c.first.TypeName(), c.second.TypeName()},
		Arguments:   []Value{c.first.Encode(v.First), c.second.Encode(v.Second)},
	}
}

func (c pairCodec[A, B]) Decode(v Value) (Pair[A, B], error) {
	var pair Pair[A, B]

	adt, ok := v.(ADT)
	if !ok || adt.Constructor != "Pair" {
		return pair, newCodecError(c.TypeName(), v, nil)
	}

	if len(adt.Arguments) != 2 {
		return pair, newCodecError(c.TypeName(), v,
			xerrors.Errorf("expected 2 arguments but got %d", len(adt.Arguments)))
	}

	var err error

	pair.First, err = c.first.Decode(adt.Arguments[0])
	if err != nil {
		return pair, newCodecError(c.TypeName(), v, err)
	}

	pair.Second, err = c.second.Decode(adt.Arguments[1])
	if err != nil {
		return pair, newCodecError(c.TypeName(), v, err)
	}

	return pair, nil
}

// ListOf returns the codec of a List of the element type. Lists are encoded
// as nested Cons and Nil ADTs. Decoding accepts both that form and the flat
// array returned by state reads.
func ListOf[T any](elem Codec[T]) Codec[[]T] {
	return listCodec[T]{elem: elem}
}

type listCodec[T any] struct {
	elem Codec[T]
}

func (c listCodec[T]) TypeName() string {
	return "List (" + c.elem.TypeName() + ")"
}

func (c listCodec[T]) Encode(v []T) Value {
	argtypes := []string{c.elem.TypeName()}

	var res Value = ADT{Constructor: "Nil", ArgTypes: argtypes, Arguments: []Value{}}

	for i := len(v) - 1; i >= 0; i-- {
		res = ADT{
			Constructor: "Cons",
			ArgTypes:    argtypes,
			Arguments:   []Value{c.elem.Encode(v[i]), res},
		}
	}

	return res
}

func (c listCodec[T]) Decode(v Value) ([]T, error) {
	switch e := v.(type) {
	case List:
		res := make([]T, len(e))

		for i, item := range e {
			elem, err := c.elem.Decode(item)
			if err != nil {
				return nil, newCodecError(c.TypeName(), v, err)
			}

			res[i] = elem
		}

		return res, nil
	case ADT:
		return c.decodeCons(e)
	default:
		return nil, newCodecError(c.TypeName(), v, nil)
	}
}

func (c listCodec[T]) decodeCons(adt ADT) ([]T, error) {
	res := make([]T, 0)

	for {
		switch adt.Constructor {
		case "Nil":
			return res, nil
		case "Cons":
			if len(adt.Arguments) != 2 {
				return nil, newCodecError(c.TypeName(), adt,
					xerrors.Errorf("expected 2 arguments but got %d", len(adt.Arguments)))
			}

			elem, err := c.elem.Decode(adt.Arguments[0])
			if err != nil {
				return nil, newCodecError(c.TypeName(), adt, err)
			}

			res = append(res, elem)

			tail, ok := adt.Arguments[1].(ADT)
			if !ok {
				return nil, newCodecError(c.TypeName(), adt.Arguments[1], nil)
			}

			adt = tail
		default:
			return nil, newCodecError(c.TypeName(), adt,
				xerrors.Errorf("unknown constructor '%s'", adt.Constructor))
		}
	}
}

// MapOf returns the codec of a Map from the key type to the value type. The
// key codec must encode to primitives.
func MapOf[K comparable, V any](key Codec[K], value Codec[V]) Codec[map[K]V] {
	return mapCodec[K, V]{key: key, value: value}
}

type mapCodec[K comparable, V any] struct {
	key   Codec[K]
	value Codec[V]
}

func (c mapCodec[K, V]) TypeName() string {
	return "Map " + argument(c.key.TypeName()) + " " + argument(c.value.TypeName())
}

func (c mapCodec[K, V]) Encode(v map[K]V) Value {
	res := make(Map, len(v))

	for key, value := range v {
		var str string

		switch e := c.key.Encode(key).(type) {
		case Primitive:
			str = string(e)
		default:
			str = e.String()
		}

		res[str] = c.value.Encode(value)
	}

	return res
}

func (c mapCodec[K, V]) Decode(v Value) (map[K]V, error) {
	switch e := v.(type) {
	case Map:
		res := make(map[K]V, len(e))

		for str, raw := range e {
			err := c.decodeEntry(res, Primitive(str), raw)
			if err != nil {
				return nil, newCodecError(c.TypeName(), v, err)
			}
		}

		return res, nil
	case ADT:
		// A map whose keys look like the ones of an ADT.
		return c.Decode(e.asMap())
	case List:
		// Maps inside messages use a list of {key, val} objects.
		res := make(map[K]V, len(e))

		for _, item := range e {
			entry, ok := item.(Map)
			if !ok || entry["key"] == nil || entry["val"] == nil {
				return nil, newCodecError(c.TypeName(), v, xerrors.New("invalid entry"))
			}

			err := c.decodeEntry(res, entry["key"], entry["val"])
			if err != nil {
				return nil, newCodecError(c.TypeName(), v, err)
			}
		}

		return res, nil
	default:
		return nil, newCodecError(c.TypeName(), v, nil)
	}
}

func (c mapCodec[K, V]) decodeEntry(res map[K]V, rawKey, rawValue Value) error {
	key, err := c.key.Decode(rawKey)
	if err != nil {
		return xerrors.Errorf("invalid key: %v", err)
	}

	value, err := c.value.Decode(rawValue)
	if err != nil {
		return xerrors.Errorf("invalid value for key %s: %v", rawKey, err)
	}

	res[key] = value

	return nil
}

// TextKey returns a codec that behaves like the given one but uses the string
// form as native value. It makes types such as Int128 usable as map keys.
func TextKey[T any](codec Codec[T]) Codec[string] {
	return textKeyCodec[T]{codec: codec}
}

type textKeyCodec[T any] struct {
	codec Codec[T]
}

func (c textKeyCodec[T]) TypeName() string {
	return c.codec.TypeName()
}

func (c textKeyCodec[T]) Encode(v string) Value {
	return Primitive(v)
}

func (c textKeyCodec[T]) Decode(v Value) (string, error) {
	_, err := c.codec.Decode(v)
	if err != nil {
		return "", err
	}

	p, ok := v.(Primitive)
	if !ok {
		return "", newCodecError(c.TypeName(), v, nil)
	}

	return string(p), nil
}

// argument returns the type name as it must appear as the argument of a type
// application.
func argument(name string) string {
	if strings.ContainsRune(name, ' ') {
		return "(" + name + ")"
	}

	return name
}
