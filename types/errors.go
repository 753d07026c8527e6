package types

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrMalformed    = errors.New("malformed special form")
	ErrNotCallable  = errors.New("attempt to call non-function")
	ErrArity        = errors.New("wrong number of arguments")
	ErrType         = errors.New("wrong argument type")
	ErrDivideByZero = errors.New("division by zero")

	// ErrEmptyInput is returned by the reader for input holding no form at
	// all. Drivers skip it rather than report it.
	ErrEmptyInput = errors.New("empty input")
)

// MalError carries a value thrown by the program itself.
type MalError struct {
	Value *Data
}

func (e *MalError) Error() string {
	if e.Value != nil && e.Value.String != nil {
		return *e.Value.String
	}
	return "uncaught exception"
}

func Throw(val *Data) error {
	return &MalError{Value: val}
}

// Malformed builds an ErrMalformed for the named special form.
func Malformed(form, format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s: %s", ErrMalformed, form, fmt.Sprintf(format, args...))
}
