// File: pkg/ezconfig/errors.go
package ezconfig

import (
	"errors"
	"fmt"
)

// Errors returned by configuration operations. Every failure of the
// package wraps exactly one of these, so callers can branch with errors.Is.
var (
	// ErrDuplicateField indicates an insert collided with an existing name.
	ErrDuplicateField = errors.New("duplicate field")

	// ErrMissingField indicates a query or update named an unknown field.
	ErrMissingField = errors.New("field not present")

	// ErrTypeMismatch indicates a declared and a requested dtype disagree.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrUnknownType indicates an unrecognized dtype token.
	ErrUnknownType = errors.New("unknown data type")

	// ErrMalformedLine indicates a line without name;dtype;value parts or
	// with an unusable field name.
	ErrMalformedLine = errors.New("malformed field line")

	// ErrParse indicates value text that cannot be read as its dtype.
	ErrParse = errors.New("cannot parse value")

	// ErrUnsupportedType indicates a value function used with a dtype it
	// cannot produce.
	ErrUnsupportedType = errors.New("unsupported data type for function")
)

// FieldError reports a name-level failure (duplicate or missing field).
type FieldError struct {
	// Op is the operation that failed, e.g. "add" or "get".
	Op string
	// Field is the offending field name.
	Field string
	// Err is ErrDuplicateField or ErrMissingField.
	Err error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Op, e.Field, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

// TypeError is returned when a value or a request does not match a
// field's dtype.
type TypeError struct {
	// Field is the field name, empty when no field is involved yet.
	Field string
	// Expected is the declared or requested type name.
	Expected string
	// Actual is the type name actually found.
	Actual string
}

func (e *TypeError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("type mismatch: expected %s, got %s", e.Expected, e.Actual)
	}
	return fmt.Sprintf("type mismatch for field %q: expected %s, got %s", e.Field, e.Expected, e.Actual)
}

// Is lets errors.Is(err, ErrTypeMismatch) match a *TypeError.
func (e *TypeError) Is(target error) bool {
	return target == ErrTypeMismatch
}

// TokenError reports text that could not be interpreted.
type TokenError struct {
	// Token is the offending text.
	Token string
	// Err is the classification, usually ErrParse, ErrUnknownType or
	// ErrMalformedLine.
	Err error
	// Cause is the lower-level error, e.g. from strconv.
	Cause error
}

func (e *TokenError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%v: %q: %v", e.Err, e.Token, e.Cause)
	}
	return fmt.Sprintf("%v: %q", e.Err, e.Token)
}

func (e *TokenError) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Err, e.Cause}
	}
	return []error{e.Err}
}

// FunctionError reports a value function applied to a dtype it does not
// support. It matches both ErrUnsupportedType and ErrParse.
type FunctionError struct {
	Function Function
	DType    DType
}

func (e *FunctionError) Error() string {
	return fmt.Sprintf("%s does not support type %s", e.Function, e.DType)
}

func (e *FunctionError) Is(target error) bool {
	return target == ErrUnsupportedType || target == ErrParse
}

// LineError locates a failure inside a loaded source.
type LineError struct {
	// Source is the identifier passed to Load (usually a file path).
	Source string
	// Line is the 1-based line number.
	Line int
	// Err is the underlying failure.
	Err error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("%s:%d: %v", e.Source, e.Line, e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }
