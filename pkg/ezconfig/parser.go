// File: pkg/ezconfig/parser.go
package ezconfig

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

var (
	errUnclosedCall     = errors.New("missing closing parenthesis")
	errNonPositiveBound = errors.New("bounds must be positive")
	errEmptyRange       = errors.New("upper bound is below lower bound")
)

func errArity(fn Function, got int) error {
	return fmt.Errorf("%s takes %d argument(s), got %d", fn, fn.arity(), got)
}

// Parser turns value text into a Value for a declared dtype, evaluating
// value functions with its Rand.
type Parser struct {
	rng Rand
}

// NewParser creates a Parser drawing from rng. A nil rng uses the
// process-wide math/rand/v2 source.
func NewParser(rng Rand) *Parser {
	if rng == nil {
		rng = globalRand{}
	}
	return &Parser{rng: rng}
}

var defaultParser = NewParser(nil)

// stripSpace removes every whitespace rune from s.
func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// ParseValue converts raw into a value of dtype d.
//
// String values are returned verbatim. For the other dtypes all
// whitespace is removed, then a value function is tried, then the token
// None, then a literal of the dtype.
func (p *Parser) ParseValue(d DType, raw string) (Value, error) {
	if d == String {
		return StringValue(raw), nil
	}

	text := stripSpace(raw)
	if fn, ok := MatchFunction(text); ok {
		c, err := parseCall(fn, text)
		if err != nil {
			return None(), err
		}
		return c.draw(d, p.rng)
	}

	if text == noneToken {
		return None(), nil
	}

	switch d {
	case Bool:
		return parseBool(text)
	case Int:
		n, err := strconv.Atoi(text)
		if err != nil {
			return None(), &TokenError{Token: raw, Err: ErrParse, Cause: err}
		}
		return IntValue(n), nil
	case Float:
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return None(), &TokenError{Token: raw, Err: ErrParse, Cause: err}
		}
		return FloatValue(f), nil
	default:
		return None(), &TokenError{Token: d.String(), Err: ErrUnknownType}
	}
}

// parseBool accepts true/1 and false/0 in any case. Anything else is an
// error rather than a truthiness guess.
func parseBool(text string) (Value, error) {
	switch strings.ToLower(text) {
	case "true", "1":
		return BoolValue(true), nil
	case "false", "0":
		return BoolValue(false), nil
	default:
		return None(), &TokenError{Token: text, Err: ErrParse}
	}
}
