// File: pkg/ezconfig/types.go
package ezconfig

import (
	"strings"
)

// DType is the scalar kind a field holds. The set is closed.
type DType uint8

const (
	// Bool fields hold true/false.
	Bool DType = iota + 1
	// Int fields hold signed integers.
	Int
	// Float fields hold 64-bit floating point numbers.
	Float
	// String fields hold free text, stored verbatim.
	String
)

// DTypes lists every supported DType in declaration order.
var DTypes = []DType{Bool, Int, Float, String}

// String returns the token used for the dtype in the text format.
func (d DType) String() string {
	switch d {
	case Bool:
		return "bool"
	case Int:
		return "int"
	case Float:
		return "float"
	case String:
		return "string"
	default:
		return "unknown"
	}
}

// Valid reports whether d is one of the four supported kinds.
func (d DType) Valid() bool {
	switch d {
	case Bool, Int, Float, String:
		return true
	default:
		return false
	}
}

// ParseDType maps a dtype token (surrounding whitespace ignored) to its DType.
func ParseDType(token string) (DType, error) {
	switch strings.TrimSpace(token) {
	case "bool":
		return Bool, nil
	case "int":
		return Int, nil
	case "float":
		return Float, nil
	case "string":
		return String, nil
	default:
		return 0, &TokenError{Token: token, Err: ErrUnknownType}
	}
}

// Matches reports whether v may be stored in a field of this dtype.
// The absent value matches every dtype.
func (d DType) Matches(v Value) bool {
	return v.IsNone() || v.kind == d
}

// Check is Matches in error form: it fails with a *TypeError naming the
// field, the declared dtype and the kind actually held by v.
func (d DType) Check(field string, v Value) error {
	if d.Matches(v) {
		return nil
	}
	return &TypeError{Field: field, Expected: d.String(), Actual: v.kind.String()}
}
