// File: pkg/ezconfig/config.go
package ezconfig

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// maxLineSize bounds a single field line.
const maxLineSize = 1 << 20

// Config is an ordered set of uniquely named fields together with the list
// of sources loaded into it. Fields are owned by exactly one Config; every
// accessor and MergeWith hand out copies.
type Config struct {
	fields map[string]*Field
	order  []string
	paths  []string

	parser *Parser
	fs     afero.Fs
	logger *zap.Logger
}

// Option configures a Config.
type Option func(*Config)

// WithRand sets the randomness used by value functions during loads.
func WithRand(rng Rand) Option {
	return func(c *Config) { c.parser = NewParser(rng) }
}

// WithLogger sets the logger used for load/save tracing and the unused
// field audit.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithFs sets the filesystem used by LoadFile and SaveFile.
func WithFs(fs afero.Fs) Option {
	return func(c *Config) {
		if fs != nil {
			c.fs = fs
		}
	}
}

// New returns an empty Config.
func New(opts ...Option) *Config {
	c := &Config{
		fields: make(map[string]*Field),
		parser: defaultParser,
		fs:     afero.NewOsFs(),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewFromFile returns a Config loaded from path with default LoadOptions.
func NewFromFile(path string, opts ...Option) (*Config, error) {
	c := New(opts...)
	if err := c.LoadFile(path, LoadOptions{}); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadOptions controls how a source is merged into a Config.
type LoadOptions struct {
	// Overwrite lets a loaded field replace an existing one of the same
	// name, without a dtype check. Without it a collision fails.
	Overwrite bool
	// Reload drops every existing field before reading.
	Reload bool
	// Virtual marks every loaded field as virtual.
	Virtual bool
}

// LoadFile opens path on the Config's filesystem and loads it.
func (c *Config) LoadFile(path string, opts LoadOptions) error {
	f, err := c.fs.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open config %s: %w", path, err)
	}
	defer f.Close()
	return c.Load(f, path, opts)
}

// Load reads fields line by line from r. source identifies r in Paths and
// in errors. Lines that are blank or start with '#' once whitespace is
// removed are skipped. A failure stops the load at the offending line;
// fields read before it stay in the Config.
func (c *Config) Load(r io.Reader, source string, opts LoadOptions) error {
	c.paths = append(c.paths, source)
	if opts.Reload {
		c.reset()
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), maxLineSize)
	lineNo, loaded := 0, 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		bare := stripSpace(line)
		if bare == "" || strings.HasPrefix(bare, "#") {
			continue
		}

		field, err := c.parser.ParseField(line, VirtualIf(opts.Virtual))
		if err != nil {
			return &LineError{Source: source, Line: lineNo, Err: err}
		}
		if c.ContainsField(field.name) && !opts.Overwrite {
			return &LineError{Source: source, Line: lineNo, Err: &FieldError{Op: "load", Field: field.name, Err: ErrDuplicateField}}
		}
		c.put(field)
		loaded++
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read config %s: %w", source, err)
	}

	c.logger.Debug("Loaded config source",
		zap.String("source", source),
		zap.Int("fields", loaded),
		zap.Bool("overwrite", opts.Overwrite),
		zap.Bool("virtual", opts.Virtual))
	return nil
}

// SaveFile writes the non-virtual fields to path, replacing its contents.
func (c *Config) SaveFile(path string) (err error) {
	f, err := c.fs.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close config %s: %w", path, cerr)
		}
	}()
	return c.Save(f)
}

// Save writes one line per non-virtual field in iteration order.
func (c *Config) Save(w io.Writer) error {
	bw := bufio.NewWriter(w)
	written := 0
	for _, name := range c.order {
		f := c.fields[name]
		if f.virtual {
			continue
		}
		if _, err := bw.WriteString(f.String() + "\n"); err != nil {
			return fmt.Errorf("failed to write field %q: %w", name, err)
		}
		written++
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to flush config: %w", err)
	}
	c.logger.Debug("Saved config", zap.Int("fields", written))
	return nil
}

// MergeWith copies every field of other into c. When overwrite is false
// and any name already exists, nothing is copied and the first conflict is
// reported. Note that the conventional default here is overwrite=true,
// the opposite of Load.
func (c *Config) MergeWith(other *Config, overwrite bool) error {
	if !overwrite {
		for _, name := range other.order {
			if c.ContainsField(name) {
				return &FieldError{Op: "merge", Field: name, Err: ErrDuplicateField}
			}
		}
	}
	for _, name := range other.order {
		c.put(*other.fields[name])
	}
	c.logger.Debug("Merged config", zap.Int("fields", len(other.order)), zap.Bool("overwrite", overwrite))
	return nil
}

// ContainsField reports whether a field called name exists.
func (c *Config) ContainsField(name string) bool {
	_, ok := c.fields[name]
	return ok
}

// Contains is an alias of ContainsField.
func (c *Config) Contains(name string) bool { return c.ContainsField(name) }

// Len returns the number of fields.
func (c *Config) Len() int { return len(c.fields) }

// Paths returns the sources loaded so far, oldest first.
func (c *Config) Paths() []string {
	return append([]string(nil), c.paths...)
}

// Fields returns copies of all fields in iteration order.
func (c *Config) Fields() []Field {
	out := make([]Field, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, *c.fields[name])
	}
	return out
}

// Field returns a copy of the named field without marking it used.
func (c *Config) Field(name string) (Field, bool) {
	f, ok := c.fields[name]
	if !ok {
		return Field{}, false
	}
	return *f, true
}

// SetFieldFromText replaces an existing field with one parsed from line.
// The dtype of the replacement must equal the existing one.
func (c *Config) SetFieldFromText(line string) error {
	field, err := c.parser.ParseField(line)
	if err != nil {
		return err
	}
	current, ok := c.fields[field.name]
	if !ok {
		return &FieldError{Op: "set", Field: field.name, Err: ErrMissingField}
	}
	if current.dtype != field.dtype {
		return &TypeError{Field: field.name, Expected: current.dtype.String(), Actual: field.dtype.String()}
	}
	c.put(field)
	return nil
}

// AddFieldFromText inserts a field parsed from line. An existing field of
// the same name is an error; use SetFieldFromText to replace it.
func (c *Config) AddFieldFromText(line string, virtual bool) error {
	field, err := c.parser.ParseField(line, VirtualIf(virtual))
	if err != nil {
		return err
	}
	if c.ContainsField(field.name) {
		return &FieldError{Op: "add", Field: field.name, Err: ErrDuplicateField}
	}
	c.put(field)
	return nil
}

// SetValue replaces only the value of an existing field. The dtype,
// comment and virtual flag are kept.
func (c *Config) SetValue(name string, value Value) error {
	f, ok := c.fields[name]
	if !ok {
		return &FieldError{Op: "set", Field: name, Err: ErrMissingField}
	}
	if err := f.dtype.Check(name, value); err != nil {
		return err
	}
	if err := checkValue(value); err != nil {
		return err
	}
	f.value = value
	return nil
}

// AddField constructs and inserts a new field.
func (c *Config) AddField(name string, dtype DType, value Value, opts ...FieldOption) error {
	if c.ContainsField(name) {
		return &FieldError{Op: "add", Field: name, Err: ErrDuplicateField}
	}
	f, err := NewField(name, dtype, value, opts...)
	if err != nil {
		return err
	}
	c.put(f)
	return nil
}

// AddBool adds a bool field.
func (c *Config) AddBool(name string, v bool, opts ...FieldOption) error {
	return c.AddField(name, Bool, BoolValue(v), opts...)
}

// AddInt adds an int field.
func (c *Config) AddInt(name string, v int, opts ...FieldOption) error {
	return c.AddField(name, Int, IntValue(v), opts...)
}

// AddFloat adds a float field.
func (c *Config) AddFloat(name string, v float64, opts ...FieldOption) error {
	return c.AddField(name, Float, FloatValue(v), opts...)
}

// AddString adds a string field.
func (c *Config) AddString(name string, v string, opts ...FieldOption) error {
	return c.AddField(name, String, StringValue(v), opts...)
}

// put inserts or replaces a field, keeping the slot of a replaced name.
func (c *Config) put(f Field) {
	if _, ok := c.fields[f.name]; !ok {
		c.order = append(c.order, f.name)
	}
	c.fields[f.name] = &f
}

func (c *Config) reset() {
	c.fields = make(map[string]*Field)
	c.order = nil
}
