package scilla

import "fmt"

// CodecError is returned when a wire value does not have the shape expected
// by a codec. It carries the serialized value and the expected type name.
type CodecError struct {
	Expected string
	Value    string
	Err      error
}

func newCodecError(expected string, value Value, err error) *CodecError {
	serialized := "null"
	if value != nil {
		serialized = value.String()
	}

	invalid, ok := value.(Invalid)
	if ok && err == nil {
		err = invalid.Err
	}

	return &CodecError{
		Expected: expected,
		Value:    serialized,
		Err:      err,
	}
}

// Error implements error.
func (e *CodecError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to parse %s as %s: %v", e.Value, e.Expected, e.Err)
	}

	return fmt.Sprintf("failed to parse %s as %s", e.Value, e.Expected)
}

// Unwrap returns the cause of the error, if any.
func (e *CodecError) Unwrap() error {
	return e.Err
}
