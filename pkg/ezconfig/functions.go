// File: pkg/ezconfig/functions.go
package ezconfig

import (
	"math"
	"math/rand/v2"
	"strconv"
	"strings"
)

// Rand is the randomness a Parser draws from. *rand.Rand from math/rand/v2
// satisfies it.
type Rand interface {
	Float64() float64
	Uint64() uint64
	Uint64N(n uint64) uint64
}

// globalRand forwards to the process-wide math/rand/v2 source.
type globalRand struct{}

func (globalRand) Float64() float64        { return rand.Float64() }
func (globalRand) Uint64() uint64          { return rand.Uint64() }
func (globalRand) Uint64N(n uint64) uint64 { return rand.Uint64N(n) }

// NewSeededRand returns a deterministic Rand for the given seed pair.
func NewSeededRand(seed1, seed2 uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed1, seed2))
}

// Function identifies a stochastic value generator usable in place of a
// literal.
type Function uint8

const (
	// LogUniform(a, b) draws exp(U(log a, log b)); float only.
	LogUniform Function = iota + 1
	// Uniform(a, b) draws U(a, b) for floats and a uniform integer from the
	// closed range [a, b] for ints.
	Uniform
	// RandomBool(p) is true with probability p; bool only.
	RandomBool
)

// Functions lists every Function in match order.
var Functions = []Function{LogUniform, Uniform, RandomBool}

func (f Function) String() string {
	switch f {
	case LogUniform:
		return "LogUniform"
	case Uniform:
		return "Uniform"
	case RandomBool:
		return "RandomBool"
	default:
		return "UnknownFunction"
	}
}

// arity is the number of arguments the function takes.
func (f Function) arity() int {
	if f == RandomBool {
		return 1
	}
	return 2
}

// Supports reports whether f can produce values of dtype d.
func (f Function) Supports(d DType) bool {
	switch f {
	case LogUniform:
		return d == Float
	case Uniform:
		return d == Float || d == Int
	case RandomBool:
		return d == Bool
	default:
		return false
	}
}

// MatchFunction returns the function whose "Name(" prefix starts text.
// At most one function can claim a given text: no name is a prefix of
// another name followed by '('.
func MatchFunction(text string) (Function, bool) {
	for _, f := range Functions {
		if strings.HasPrefix(text, f.String()+"(") {
			return f, true
		}
	}
	return 0, false
}

// call is one parsed invocation, e.g. Uniform(1,3).
type call struct {
	fn   Function
	text string
	args []string
}

// parseCall splits whitespace-free text of the form Name(a,b) into its
// arguments.
func parseCall(fn Function, text string) (call, error) {
	c := call{fn: fn, text: text}
	if !strings.HasSuffix(text, ")") {
		return c, &TokenError{Token: text, Err: ErrParse, Cause: errUnclosedCall}
	}
	inner := text[len(fn.String())+1 : len(text)-1]
	c.args = strings.Split(inner, ",")
	if len(c.args) != fn.arity() {
		return c, &TokenError{Token: text, Err: ErrParse, Cause: errArity(fn, len(c.args))}
	}
	return c, nil
}

func (c call) floatArg(i int) (float64, error) {
	f, err := strconv.ParseFloat(c.args[i], 64)
	if err != nil {
		return 0, &TokenError{Token: c.text, Err: ErrParse, Cause: err}
	}
	return f, nil
}

func (c call) intArg(i int) (int, error) {
	n, err := strconv.Atoi(c.args[i])
	if err != nil {
		return 0, &TokenError{Token: c.text, Err: ErrParse, Cause: err}
	}
	return n, nil
}

// draw evaluates the call once for dtype d.
func (c call) draw(d DType, rng Rand) (Value, error) {
	if !c.fn.Supports(d) {
		return None(), &FunctionError{Function: c.fn, DType: d}
	}

	switch c.fn {
	case LogUniform:
		a, err := c.floatArg(0)
		if err != nil {
			return None(), err
		}
		b, err := c.floatArg(1)
		if err != nil {
			return None(), err
		}
		if a <= 0 || b <= 0 {
			return None(), &TokenError{Token: c.text, Err: ErrParse, Cause: errNonPositiveBound}
		}
		la, lb := math.Log(a), math.Log(b)
		return FloatValue(math.Exp(la + (lb-la)*rng.Float64())), nil

	case Uniform:
		if d == Int {
			a, err := c.intArg(0)
			if err != nil {
				return None(), err
			}
			b, err := c.intArg(1)
			if err != nil {
				return None(), err
			}
			if b < a {
				return None(), &TokenError{Token: c.text, Err: ErrParse, Cause: errEmptyRange}
			}
			return IntValue(uniformInt(a, b, rng)), nil
		}
		a, err := c.floatArg(0)
		if err != nil {
			return None(), err
		}
		b, err := c.floatArg(1)
		if err != nil {
			return None(), err
		}
		return FloatValue(a + (b-a)*rng.Float64()), nil

	case RandomBool:
		p, err := c.floatArg(0)
		if err != nil {
			return None(), err
		}
		return BoolValue(rng.Float64() < p), nil
	}
	return None(), &FunctionError{Function: c.fn, DType: d}
}

// uniformInt draws from the closed range [a, b], a <= b. The span is taken
// in uint64 so ranges wider than MaxInt64 do not overflow.
func uniformInt(a, b int, rng Rand) int {
	span := uint64(b) - uint64(a)
	var offset uint64
	if span == math.MaxUint64 {
		offset = rng.Uint64()
	} else {
		offset = rng.Uint64N(span + 1)
	}
	return int(uint64(a) + offset)
}
