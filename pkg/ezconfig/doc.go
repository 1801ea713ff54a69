// Package ezconfig implements a flat, typed, line-oriented configuration
// format with support for stochastic values.
//
// Each non-blank line that does not start with '#' holds one field:
//
//	name;dtype;value#comment
//
// where dtype is one of bool, int, float or string. A value is either a
// literal, the token None, or one of the value functions below, which are
// drawn once when the line is parsed:
//
//	lr;float;LogUniform(1e-5, 1e-2)#learning rate
//	layers;int;Uniform(2, 6)
//	dropout;float;Uniform(0.0, 0.5)
//	augment;bool;RandomBool(0.3)
//
// Draws come from the Rand handed to the Config (WithRand), so a fixed seed
// reproduces a sample. Saving a Config writes the drawn values back as
// plain literals, which makes a loaded template plus Save the way to freeze
// one trial of a hyperparameter search.
//
// A Config is not safe for concurrent use.
package ezconfig
