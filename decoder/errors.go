package decoder

import (
	"errors"
	"fmt"
)

// Error constants
var (
	ErrMalformed = errors.New("malformed JSON")
	ErrMissing   = errors.New("required value is missing")
	ErrWrongType = errors.New("value has the wrong type")
)

// DecodeError reports why a payload could not be turned into a record.
// Path is the dotted location of the offending value, empty for the document
// itself.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	if e.Path == "" {
		return "decode: " + e.Err.Error()
	}
	return fmt.Sprintf("decode %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func missing(path string) error {
	return &DecodeError{Path: path, Err: ErrMissing}
}

func wrongType(path, expected string) error {
	return &DecodeError{Path: path, Err: fmt.Errorf("%w: expected %s", ErrWrongType, expected)}
}

func join(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}
