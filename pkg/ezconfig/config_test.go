package ezconfig

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

const sampleConfig = `# experiment defaults
epochs;int;10#number of passes

lr;float;0.001
  # indented comment line
name;string;baseline run#label
augment;bool;False
`

func newMemConfig(t *testing.T, files map[string]string, opts ...Option) (*Config, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	for path, content := range files {
		require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0o644))
	}
	opts = append([]Option{WithFs(fs), WithRand(NewSeededRand(1, 2))}, opts...)
	return New(opts...), fs
}

func TestLoadFile(t *testing.T) {
	cfg, _ := newMemConfig(t, map[string]string{"base.cfg": sampleConfig})
	require.NoError(t, cfg.LoadFile("base.cfg", LoadOptions{}))

	assert.Equal(t, 4, cfg.Len())
	assert.Equal(t, []string{"base.cfg"}, cfg.Paths())

	names := []string{}
	for _, f := range cfg.Fields() {
		names = append(names, f.Name())
	}
	assert.Equal(t, []string{"epochs", "lr", "name", "augment"}, names)

	epochs, err := cfg.GetInt("epochs")
	require.NoError(t, err)
	assert.Equal(t, 10, epochs)

	name, err := cfg.GetString("name")
	require.NoError(t, err)
	assert.Equal(t, "baseline run", name)

	f, ok := cfg.Field("epochs")
	require.True(t, ok)
	assert.Equal(t, "number of passes", f.Comment())
}

func TestNewFromFileMissing(t *testing.T) {
	_, err := NewFromFile("does-not-exist.cfg", WithFs(afero.NewMemMapFs()))
	require.Error(t, err)
}

func TestLoadDuplicateField(t *testing.T) {
	src := "x;int;1\nx;int;2\n"

	cfg := New()
	err := cfg.Load(strings.NewReader(src), "dup.cfg", LoadOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateField)

	var lineErr *LineError
	require.True(t, errors.As(err, &lineErr))
	assert.Equal(t, "dup.cfg", lineErr.Source)
	assert.Equal(t, 2, lineErr.Line)

	// The first line stays loaded.
	v, err := cfg.GetInt("x")
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	cfg = New()
	require.NoError(t, cfg.Load(strings.NewReader(src), "dup.cfg", LoadOptions{Overwrite: true}))
	v, err = cfg.GetInt("x")
	require.NoError(t, err)
	assert.Equal(t, 2, v)
}

func TestLoadOverwriteSkipsTypeCheck(t *testing.T) {
	cfg := New()
	require.NoError(t, cfg.Load(strings.NewReader("x;int;1\n"), "a", LoadOptions{}))
	require.NoError(t, cfg.Load(strings.NewReader("x;string;one\n"), "b", LoadOptions{Overwrite: true}))

	s, err := cfg.GetString("x")
	require.NoError(t, err)
	assert.Equal(t, "one", s)
	assert.Equal(t, []string{"a", "b"}, cfg.Paths())
}

func TestLoadReload(t *testing.T) {
	cfg := New()
	require.NoError(t, cfg.Load(strings.NewReader("a;int;1\nb;int;2\n"), "first", LoadOptions{}))
	require.NoError(t, cfg.Load(strings.NewReader("c;int;3\n"), "second", LoadOptions{Reload: true}))

	assert.False(t, cfg.Contains("a"))
	assert.False(t, cfg.Contains("b"))
	assert.True(t, cfg.Contains("c"))
	assert.Equal(t, []string{"first", "second"}, cfg.Paths())
}

func TestLoadReportsLineErrors(t *testing.T) {
	tests := []struct {
		src  string
		line int
		want error
	}{
		{"a;int;1\n\nb;notatype;2\n", 3, ErrUnknownType},
		{"a;int\n", 1, ErrMalformedLine},
		{"# header\nflag;bool;yes\n", 2, ErrParse},
	}
	for _, tt := range tests {
		err := New().Load(strings.NewReader(tt.src), "src", LoadOptions{})
		require.Error(t, err)
		assert.ErrorIs(t, err, tt.want)

		var lineErr *LineError
		require.True(t, errors.As(err, &lineErr))
		assert.Equal(t, tt.line, lineErr.Line)
	}
}

func TestSaveExcludesVirtualFields(t *testing.T) {
	cfg, fs := newMemConfig(t, map[string]string{"extra.cfg": "scratch;string;tmp\n"})
	require.NoError(t, cfg.AddInt("batch", 32, Comment("per device")))
	require.NoError(t, cfg.LoadFile("extra.cfg", LoadOptions{Virtual: true}))
	require.NoError(t, cfg.AddBool("debug", true, Virtual()))

	require.NoError(t, cfg.SaveFile("out.cfg"))
	data, err := afero.ReadFile(fs, "out.cfg")
	require.NoError(t, err)
	assert.Equal(t, "batch;int;32#per device\n", string(data))
}

func TestSaveLoadRoundTrip(t *testing.T) {
	cfg, fs := newMemConfig(t, map[string]string{"base.cfg": sampleConfig})
	require.NoError(t, cfg.LoadFile("base.cfg", LoadOptions{}))
	require.NoError(t, cfg.SaveFile("copy.cfg"))

	again, _ := newMemConfig(t, nil, WithFs(fs))
	require.NoError(t, again.LoadFile("copy.cfg", LoadOptions{}))

	var first, second bytes.Buffer
	require.NoError(t, cfg.Save(&first))
	require.NoError(t, again.Save(&second))
	assert.Equal(t, first.String(), second.String())
	assert.Equal(t, "epochs;int;10#number of passes\nlr;float;0.001#\nname;string;baseline run#label\naugment;bool;False#\n", first.String())
}

func TestSaveFreezesStochasticDraws(t *testing.T) {
	cfg, fs := newMemConfig(t, map[string]string{
		"template.cfg": "lr;float;LogUniform(1e-4, 1e-1)\nlayers;int;Uniform(2,4)\n",
	})
	require.NoError(t, cfg.LoadFile("template.cfg", LoadOptions{}))
	require.NoError(t, cfg.SaveFile("trial.cfg"))

	data, err := afero.ReadFile(fs, "trial.cfg")
	require.NoError(t, err)
	assert.NotContains(t, string(data), "Uniform")

	frozen := New(WithFs(fs))
	require.NoError(t, frozen.LoadFile("trial.cfg", LoadOptions{}))
	for _, name := range []string{"lr", "layers"} {
		want, _ := cfg.Field(name)
		got, _ := frozen.Field(name)
		assert.Equal(t, want.Value(), got.Value(), name)
	}
}

func TestMergeWith(t *testing.T) {
	base := New()
	require.NoError(t, base.AddInt("a", 1))
	require.NoError(t, base.AddInt("b", 2))

	other := New()
	require.NoError(t, other.AddString("b", "two", Comment("replaced"), Virtual()))
	require.NoError(t, other.AddFloat("c", 3.5))

	t.Run("without overwrite fails atomically", func(t *testing.T) {
		target := New()
		require.NoError(t, target.MergeWith(base, true))

		err := target.MergeWith(other, false)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrDuplicateField)
		assert.Contains(t, err.Error(), `"b"`)
		assert.False(t, target.Contains("c"))
	})

	t.Run("with overwrite replaces wholesale", func(t *testing.T) {
		target := New()
		require.NoError(t, target.MergeWith(base, true))
		require.NoError(t, target.MergeWith(other, true))

		f, ok := target.Field("b")
		require.True(t, ok)
		assert.Equal(t, String, f.DType())
		assert.Equal(t, "replaced", f.Comment())
		assert.True(t, f.IsVirtual())
		assert.Equal(t, 3, target.Len())
	})

	t.Run("copies are independent", func(t *testing.T) {
		target := New()
		require.NoError(t, target.MergeWith(base, true))
		require.NoError(t, target.SetValue("a", IntValue(100)))

		v, err := base.GetInt("a")
		require.NoError(t, err)
		assert.Equal(t, 1, v)
	})
}

func TestSetFieldFromText(t *testing.T) {
	cfg := New()
	require.NoError(t, cfg.AddInt("x", 1, Comment("old"), Virtual()))

	require.NoError(t, cfg.SetFieldFromText("x;int;7#new"))
	f, _ := cfg.Field("x")
	assert.Equal(t, IntValue(7), f.Value())
	assert.Equal(t, "new", f.Comment())
	assert.False(t, f.IsVirtual())

	err := cfg.SetFieldFromText("x;float;7.0")
	assert.ErrorIs(t, err, ErrTypeMismatch)

	err = cfg.SetFieldFromText("y;int;1")
	assert.ErrorIs(t, err, ErrMissingField)

	err = cfg.SetFieldFromText("x;int")
	assert.ErrorIs(t, err, ErrMalformedLine)
}

func TestAddFieldFromText(t *testing.T) {
	cfg := New()
	require.NoError(t, cfg.AddFieldFromText("x;int;1", true))
	f, _ := cfg.Field("x")
	assert.True(t, f.IsVirtual())

	err := cfg.AddFieldFromText("x;int;2", false)
	assert.ErrorIs(t, err, ErrDuplicateField)
}

func TestSetValue(t *testing.T) {
	cfg := New()
	require.NoError(t, cfg.AddInt("x", 5, Comment("keep me"), Virtual()))

	err := cfg.SetValue("x", StringValue("not-an-int"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTypeMismatch)
	v, err := cfg.GetInt("x")
	require.NoError(t, err)
	assert.Equal(t, 5, v)

	require.NoError(t, cfg.SetValue("x", IntValue(6)))
	f, _ := cfg.Field("x")
	assert.Equal(t, IntValue(6), f.Value())
	assert.Equal(t, "keep me", f.Comment())
	assert.True(t, f.IsVirtual())

	require.NoError(t, cfg.SetValue("x", None()))

	assert.ErrorIs(t, cfg.SetValue("missing", IntValue(1)), ErrMissingField)
}

func TestUnwritableStringsAreRejected(t *testing.T) {
	cfg := New()
	assert.ErrorIs(t, cfg.AddString("s", "a#b"), ErrMalformedLine)
	assert.False(t, cfg.Contains("s"))

	require.NoError(t, cfg.AddString("s", "ab"))
	assert.ErrorIs(t, cfg.SetValue("s", StringValue("line\nbreak")), ErrMalformedLine)
	assert.ErrorIs(t, cfg.SetFieldFromText("s;string;a\nb#"), ErrMalformedLine)

	var buf bytes.Buffer
	require.NoError(t, cfg.Save(&buf))
	assert.Equal(t, "s;string;ab#\n", buf.String())
}

func TestTypedGetters(t *testing.T) {
	cfg := New()
	require.NoError(t, cfg.AddField("x", Int, IntValue(5)))

	_, err := cfg.GetFloat("x")
	assert.ErrorIs(t, err, ErrTypeMismatch)
	f, _ := cfg.Field("x")
	assert.False(t, f.Used(), "a failed read must not mark the field used")

	v, err := cfg.GetInt("x")
	require.NoError(t, err)
	assert.Equal(t, 5, v)
	f, _ = cfg.Field("x")
	assert.True(t, f.Used())

	_, err = cfg.GetBool("nope")
	assert.ErrorIs(t, err, ErrMissingField)

	require.NoError(t, cfg.AddFloat("y", 0.5))
	got, err := cfg.GetFloat("y")
	require.NoError(t, err)
	assert.Equal(t, 0.5, got)

	require.NoError(t, cfg.AddField("z", Int, None()))
	val, err := cfg.Get("z", Int)
	require.NoError(t, err)
	assert.True(t, val.IsNone())
}

func TestTryGetters(t *testing.T) {
	cfg := New()
	require.NoError(t, cfg.AddBool("on", true))
	require.NoError(t, cfg.AddInt("n", 3))

	b, err := cfg.TryBool("missing")
	require.NoError(t, err)
	assert.False(t, b)

	b, err = cfg.TryBool("on")
	require.NoError(t, err)
	assert.True(t, b)

	v, err := cfg.TryInt("missing")
	require.NoError(t, err)
	assert.True(t, v.IsNone())

	v, err = cfg.TryInt("n")
	require.NoError(t, err)
	n, ok := v.Int()
	require.True(t, ok)
	assert.Equal(t, 3, n)

	_, err = cfg.TryFloat("n")
	assert.ErrorIs(t, err, ErrTypeMismatch)
	_, err = cfg.TryString("on")
	assert.ErrorIs(t, err, ErrTypeMismatch)
}

func TestAddFieldDuplicate(t *testing.T) {
	cfg := New()
	require.NoError(t, cfg.AddString("s", "a"))
	assert.ErrorIs(t, cfg.AddString("s", "b"), ErrDuplicateField)
	assert.ErrorIs(t, cfg.AddField("t", Int, FloatValue(1)), ErrTypeMismatch)
	assert.False(t, cfg.Contains("t"))
}

func TestAuditUnused(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	cfg := New(WithLogger(zap.New(core)))
	require.NoError(t, cfg.AddInt("read", 1))
	require.NoError(t, cfg.AddInt("ignored", 2))
	require.NoError(t, cfg.AddBool("also_ignored", false, Virtual()))

	_, err := cfg.GetInt("read")
	require.NoError(t, err)

	unused := cfg.AuditUnused()
	assert.Equal(t, []string{"ignored", "also_ignored"}, unused)

	entries := logs.FilterMessage("Config field was never read").All()
	require.Len(t, entries, 2)
	assert.Equal(t, "ignored", entries[0].ContextMap()["field"])
}

func TestPrint(t *testing.T) {
	cfg := New()
	require.NoError(t, cfg.Load(strings.NewReader("alpha;float;0.5\n"), "a.cfg", LoadOptions{}))
	require.NoError(t, cfg.AddBool("verbose", true, Virtual()))

	var buf bytes.Buffer
	require.NoError(t, cfg.Print(&buf))
	out := buf.String()
	assert.Contains(t, out, "a.cfg")
	assert.Contains(t, out, "Field Name")
	assert.Contains(t, out, "alpha")
	assert.Contains(t, out, "0.5")
	assert.Contains(t, out, "verbose")
	assert.Contains(t, out, "true")
}

func TestExport(t *testing.T) {
	cfg := New()
	require.NoError(t, cfg.AddInt("epochs", 10, Comment("passes")))
	require.NoError(t, cfg.AddFloat("lr", 0.01))
	require.NoError(t, cfg.AddField("seed", Int, None()))
	require.NoError(t, cfg.AddString("tmp", "x", Virtual()))

	var js bytes.Buffer
	require.NoError(t, cfg.Export(&js, FormatJSON))
	assert.JSONEq(t, `{"epochs": 10, "lr": 0.01, "seed": null}`, js.String())

	var y bytes.Buffer
	require.NoError(t, cfg.Export(&y, FormatYAML))
	assert.Contains(t, y.String(), "# passes")
	assert.Contains(t, y.String(), "epochs: 10\n")
	assert.Contains(t, y.String(), "lr: 0.01\n")
	assert.Contains(t, y.String(), "seed: null\n")
	assert.NotContains(t, y.String(), "tmp")

	assert.Error(t, cfg.Export(&y, ExportFormat("toml")))
}

func TestExportNonFiniteFloats(t *testing.T) {
	cfg := New()
	require.NoError(t, cfg.Load(strings.NewReader("a;float;nan\nb;float;inf\nc;float;-inf\nd;float;1.5\n"), "mem", LoadOptions{}))

	var js bytes.Buffer
	require.NoError(t, cfg.Export(&js, FormatJSON))
	assert.JSONEq(t, `{"a": "NaN", "b": "+Inf", "c": "-Inf", "d": 1.5}`, js.String())

	var y bytes.Buffer
	require.NoError(t, cfg.Export(&y, FormatYAML))
	assert.Contains(t, y.String(), "a: .nan\n")
	assert.Contains(t, y.String(), "b: .inf\n")
	assert.Contains(t, y.String(), "c: -.inf\n")
}
