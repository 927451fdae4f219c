package contract

import (
	"context"
	"fmt"

	"go.dedis.ch/zilliqa/scilla"
)

// Source is the origin of a field.
type Source string

const (
	// SourceState is the mutable state of a contract.
	SourceState Source = "state"
	// SourceInit is the initialization parameters of a contract.
	SourceInit Source = "init"
)

// FieldError is returned when a field is missing or cannot be decoded.
type FieldError struct {
	Source Source
	Name   string
	// Err is nil when the field is missing.
	Err error
}

// Error implements error.
func (e *FieldError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s field '%s' not found", e.Source, e.Name)
	}

	return fmt.Sprintf("invalid %s field '%s': %v", e.Source, e.Name, e.Err)
}

// Unwrap returns the decoding error.
func (e *FieldError) Unwrap() error {
	return e.Err
}

// IsMissing returns true when the field is absent.
func (e *FieldError) IsMissing() bool {
	return e.Err == nil
}

// DecodeValue decodes the value of a field of the state. A nil value is a
// missing field.
func DecodeValue[T any](name string, value scilla.Value, codec scilla.Codec[T]) (T, error) {
	return decode(SourceState, name, value, codec)
}

// DecodeField decodes a field of the state.
func DecodeField[T any](state State, name string, codec scilla.Codec[T]) (T, error) {
	return decode(SourceState, name, state[name], codec)
}

// DecodeInit decodes an initialization parameter.
func DecodeInit[T any](init scilla.NamedValues, name string, codec scilla.Codec[T]) (T, error) {
	return decode(SourceInit, name, init.Get(name), codec)
}

// GetField fetches and decodes a field of the contract.
func GetField[T any](ctx context.Context, c BaseContract, name string,
	codec scilla.Codec[T]) (T, error) {

	var zero T

	value, err := c.GetSubState(ctx, name)
	if err != nil {
		return zero, err
	}

	return DecodeValue(name, value, codec)
}

// GetInitParam fetches and decodes an initialization parameter of the
// contract.
func GetInitParam[T any](ctx context.Context, c BaseContract, name string,
	codec scilla.Codec[T]) (T, error) {

	var zero T

	init, err := c.GetInit(ctx)
	if err != nil {
		return zero, err
	}

	return DecodeInit(init, name, codec)
}

func decode[T any](src Source, name string, value scilla.Value, codec scilla.Codec[T]) (T, error) {
	var zero T

	if value == nil {
		return zero, &FieldError{Source: src, Name: name}
	}

	v, err := codec.Decode(value)
	if err != nil {
		return zero, &FieldError{Source: src, Name: name, Err: err}
	}

	return v, nil
}
