package form

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownSchemaType is returned when a schema node has a type the
	// engine cannot build a context for.
	ErrUnknownSchemaType = errors.New("unknown schema type")
	// ErrInvalidInput is returned when user text cannot be coerced to the
	// declared type.
	ErrInvalidInput = errors.New("invalid input")
	// ErrFormatMismatch is returned when a typed value violates the declared
	// format.
	ErrFormatMismatch = errors.New("format mismatch")
	// ErrIncompleteData is returned by Generate while required fields are
	// still empty.
	ErrIncompleteData = errors.New("required fields are not filled")
	// ErrInvalidOperation marks a call the node kind does not support.
	ErrInvalidOperation = errors.New("invalid operation")
	// ErrBrokenPath means the active path no longer resolves from the root.
	ErrBrokenPath = errors.New("active path does not resolve")
	// ErrNoSuchStep is returned by Forward for a step the active node lacks.
	ErrNoSuchStep = errors.New("no such step")
	// ErrAtRoot is returned by Backward when the root is already active.
	ErrAtRoot = errors.New("already at root")
)

// Input error codes double as translation keys.
const (
	CodeInvalidInteger = "invalid-integer-input"
	CodeInvalidNumber  = "invalid-number-input"
	CodeInvalidBoolean = "invalid-boolean-input"
	CodeInvalidFormat  = "format-type-incorrect"
)

// InputError describes rejected user text. Err is ErrInvalidInput or
// ErrFormatMismatch.
type InputError struct {
	Code  string
	Input string
	Err   error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%s: %s (%q)", e.Err, e.Code, e.Input)
}

func (e *InputError) Unwrap() error { return e.Err }

// AsInputError extracts an InputError from err.
func AsInputError(err error) (*InputError, bool) {
	var ie *InputError
	if errors.As(err, &ie) {
		return ie, true
	}
	return nil, false
}

func invalidInput(code, raw string) error {
	return &InputError{Code: code, Input: raw, Err: ErrInvalidInput}
}

func formatMismatch(raw string) error {
	return &InputError{Code: CodeInvalidFormat, Input: raw, Err: ErrFormatMismatch}
}
