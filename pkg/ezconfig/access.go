// File: pkg/ezconfig/access.go
package ezconfig

import (
	"go.uber.org/zap"
)

// Get returns the value of the named field, which must have dtype d, and
// marks the field used.
func (c *Config) Get(name string, d DType) (Value, error) {
	f, ok := c.fields[name]
	if !ok {
		return None(), &FieldError{Op: "get", Field: name, Err: ErrMissingField}
	}
	if f.dtype != d {
		return None(), &TypeError{Field: name, Expected: d.String(), Actual: f.dtype.String()}
	}
	f.used = true
	return f.value, nil
}

// GetBool returns a bool field. A None value reads as false; use Get to
// tell the two apart.
func (c *Config) GetBool(name string) (bool, error) {
	v, err := c.Get(name, Bool)
	b, _ := v.Bool()
	return b, err
}

// GetInt returns an int field. A None value reads as 0.
func (c *Config) GetInt(name string) (int, error) {
	v, err := c.Get(name, Int)
	i, _ := v.Int()
	return i, err
}

// GetFloat returns a float field. A None value reads as 0.
func (c *Config) GetFloat(name string) (float64, error) {
	v, err := c.Get(name, Float)
	f, _ := v.Float()
	return f, err
}

// GetString returns a string field. A None value reads as "".
func (c *Config) GetString(name string) (string, error) {
	v, err := c.Get(name, String)
	s, _ := v.Str()
	return s, err
}

// try is Get with a missing field turned into None.
func (c *Config) try(name string, d DType) (Value, error) {
	if !c.ContainsField(name) {
		return None(), nil
	}
	return c.Get(name, d)
}

// TryBool returns false for a missing field, so an unset flag reads as off.
// A present field of another dtype is still an error.
func (c *Config) TryBool(name string) (bool, error) {
	v, err := c.try(name, Bool)
	b, _ := v.Bool()
	return b, err
}

// TryInt returns None for a missing field.
func (c *Config) TryInt(name string) (Value, error) { return c.try(name, Int) }

// TryFloat returns None for a missing field.
func (c *Config) TryFloat(name string) (Value, error) { return c.try(name, Float) }

// TryString returns None for a missing field.
func (c *Config) TryString(name string) (Value, error) { return c.try(name, String) }

// AuditUnused logs a warning for every field that was never read through
// a getter and returns their names. It never fails.
func (c *Config) AuditUnused() []string {
	var unused []string
	for _, name := range c.order {
		if c.fields[name].used {
			continue
		}
		unused = append(unused, name)
		c.logger.Warn("Config field was never read", zap.String("field", name))
	}
	return unused
}
