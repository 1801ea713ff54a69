// File: pkg/ezconfig/field.go
package ezconfig

import (
	"strings"
)

// Field is one named, typed configuration entry. Its dtype is fixed at
// creation; the value always matches it or is None.
type Field struct {
	name    string
	dtype   DType
	value   Value
	comment string
	virtual bool
	used    bool
}

// FieldOption customizes a Field built with NewField or Config.AddField.
type FieldOption func(*Field)

// Virtual marks the field as in-memory only; it is never saved.
func Virtual() FieldOption {
	return func(f *Field) { f.virtual = true }
}

// VirtualIf is Virtual when v is true.
func VirtualIf(v bool) FieldOption {
	return func(f *Field) { f.virtual = v }
}

// Comment attaches a trailing comment.
func Comment(c string) FieldOption {
	return func(f *Field) { f.comment = c }
}

// NewField builds a field and checks value against dtype.
func NewField(name string, dtype DType, value Value, opts ...FieldOption) (Field, error) {
	if err := validateName(name); err != nil {
		return Field{}, err
	}
	if !dtype.Valid() {
		return Field{}, &TokenError{Token: dtype.String(), Err: ErrUnknownType}
	}
	if err := dtype.Check(name, value); err != nil {
		return Field{}, err
	}
	f := Field{name: name, dtype: dtype, value: value}
	for _, opt := range opts {
		opt(&f)
	}
	if err := f.checkWritable(); err != nil {
		return Field{}, err
	}
	return f, nil
}

// validateName rejects names that could not be written back as a line.
func validateName(name string) error {
	if name == "" || strings.ContainsAny(name, ";#\r\n") {
		return &TokenError{Token: name, Err: ErrMalformedLine}
	}
	return nil
}

// checkValue rejects string values that would not survive a save: a '#'
// would start the comment and a line break would end the line.
func checkValue(v Value) error {
	if s, ok := v.Str(); ok && strings.ContainsAny(s, "#\r\n") {
		return &TokenError{Token: s, Err: ErrMalformedLine}
	}
	return nil
}

// checkWritable reports whether f serializes to a single line that parses
// back to the same field.
func (f Field) checkWritable() error {
	if err := checkValue(f.value); err != nil {
		return err
	}
	if strings.ContainsAny(f.comment, "\r\n") {
		return &TokenError{Token: f.comment, Err: ErrMalformedLine}
	}
	return nil
}

// ParseField parses one line using the process-wide random source.
func ParseField(line string, opts ...FieldOption) (Field, error) {
	return defaultParser.ParseField(line, opts...)
}

// ParseField parses "name;dtype;value#comment". Whitespace around the name
// and dtype tokens is ignored. The value text ends at the first '#';
// everything after it is the comment.
func (p *Parser) ParseField(line string, opts ...FieldOption) (Field, error) {
	line = strings.TrimRight(line, "\r\n")
	parts := strings.SplitN(line, ";", 3)
	if len(parts) < 3 {
		return Field{}, &TokenError{Token: line, Err: ErrMalformedLine}
	}

	name := strings.TrimSpace(parts[0])
	if err := validateName(name); err != nil {
		return Field{}, err
	}
	dtype, err := ParseDType(parts[1])
	if err != nil {
		return Field{}, err
	}

	raw, comment, _ := strings.Cut(parts[2], "#")
	value, err := p.ParseValue(dtype, raw)
	if err != nil {
		return Field{}, err
	}

	f := Field{name: name, dtype: dtype, value: value, comment: comment}
	for _, opt := range opts {
		opt(&f)
	}
	if err := f.checkWritable(); err != nil {
		return Field{}, err
	}
	return f, nil
}

// Name returns the field name.
func (f Field) Name() string { return f.name }

// DType returns the declared dtype.
func (f Field) DType() DType { return f.dtype }

// Value returns the current value.
func (f Field) Value() Value { return f.value }

// Comment returns the trailing comment, without the '#'.
func (f Field) Comment() string { return f.comment }

// IsVirtual reports whether the field is excluded from saved output.
func (f Field) IsVirtual() bool { return f.virtual }

// Used reports whether the field has been read through a typed getter.
func (f Field) Used() bool { return f.used }

// String serializes the field as name;dtype;value#comment.
func (f Field) String() string {
	var b strings.Builder
	b.WriteString(f.name)
	b.WriteByte(';')
	b.WriteString(f.dtype.String())
	b.WriteByte(';')
	b.WriteString(f.value.String())
	b.WriteByte('#')
	b.WriteString(f.comment)
	return b.String()
}
