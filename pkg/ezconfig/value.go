// File: pkg/ezconfig/value.go
package ezconfig

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// noneToken is how an absent value is written in the text format.
const noneToken = "None"

// Value is an optional scalar. The zero Value is absent (None) and is
// accepted by every DType; any other Value carries exactly one kind.
type Value struct {
	kind DType
	b    bool
	i    int
	f    float64
	s    string
}

// None returns the absent value.
func None() Value { return Value{} }

// BoolValue wraps a bool.
func BoolValue(b bool) Value { return Value{kind: Bool, b: b} }

// IntValue wraps an int.
func IntValue(i int) Value { return Value{kind: Int, i: i} }

// FloatValue wraps a float64.
func FloatValue(f float64) Value { return Value{kind: Float, f: f} }

// StringValue wraps a string.
func StringValue(s string) Value { return Value{kind: String, s: s} }

// ValueOf converts a native Go value into a Value. nil becomes None; the
// sized integer and float types are widened. Any other Go type is rejected
// with a *TypeError.
func ValueOf(x any) (Value, error) {
	switch t := x.(type) {
	case nil:
		return None(), nil
	case Value:
		return t, nil
	case bool:
		return BoolValue(t), nil
	case int:
		return IntValue(t), nil
	case int8:
		return IntValue(int(t)), nil
	case int16:
		return IntValue(int(t)), nil
	case int32:
		return IntValue(int(t)), nil
	case int64:
		return IntValue(int(t)), nil
	case float32:
		return FloatValue(float64(t)), nil
	case float64:
		return FloatValue(t), nil
	case string:
		return StringValue(t), nil
	default:
		return None(), &TypeError{Expected: "bool, int, float or string", Actual: fmt.Sprintf("%T", x)}
	}
}

// IsNone reports whether the value is absent.
func (v Value) IsNone() bool { return v.kind == 0 }

// DType returns the kind held by v, or 0 when v is absent.
func (v Value) DType() DType { return v.kind }

// Bool returns the held bool; ok is false if v is not a present bool.
func (v Value) Bool() (b bool, ok bool) { return v.b, v.kind == Bool }

// Int returns the held int; ok is false if v is not a present int.
func (v Value) Int() (i int, ok bool) { return v.i, v.kind == Int }

// Float returns the held float; ok is false if v is not a present float.
func (v Value) Float() (f float64, ok bool) { return v.f, v.kind == Float }

// Str returns the held string; ok is false if v is not a present string.
func (v Value) Str() (s string, ok bool) { return v.s, v.kind == String }

// Any unwraps v into nil, bool, int, float64 or string.
func (v Value) Any() any {
	switch v.kind {
	case Bool:
		return v.b
	case Int:
		return v.i
	case Float:
		return v.f
	case String:
		return v.s
	default:
		return nil
	}
}

// String renders v the way it is written in the text format.
func (v Value) String() string {
	switch v.kind {
	case Bool:
		if v.b {
			return "True"
		}
		return "False"
	case Int:
		return strconv.Itoa(v.i)
	case Float:
		return formatFloat(v.f)
	case String:
		return v.s
	default:
		return noneToken
	}
}

// formatFloat produces the shortest representation that parses back to f,
// always marked as a float ("3.0", not "3").
func formatFloat(f float64) string {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}
