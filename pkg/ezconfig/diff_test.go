package ezconfig

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadString(t *testing.T, text string) *Config {
	t.Helper()
	cfg := New()
	require.NoError(t, cfg.Load(strings.NewReader(text), "mem", LoadOptions{}))
	return cfg
}

func TestDiff(t *testing.T) {
	a := loadString(t, "lr;float;0.001#rate\nepochs;int;10#\nname;string;a#\ntrial_id;string;x#\n")
	b := loadString(t, "lr;float;0.001#learning rate\nepochs;int;20#\nseed;int;1#\ntrial_id;string;y#\n")

	changes := Diff(a, b, DiffOptions{})
	kinds := make(map[string]ChangeKind, len(changes))
	for _, c := range changes {
		kinds[c.Name] = c.Kind
	}
	assert.Equal(t, map[string]ChangeKind{
		"lr":       Modified,
		"epochs":   Modified,
		"name":     Removed,
		"trial_id": Modified,
		"seed":     Added,
	}, kinds)
	assert.Equal(t, "seed", changes[len(changes)-1].Name, "added fields come last")

	epochs := changes[1]
	assert.Equal(t, "epochs", epochs.Name)
	assert.Equal(t, 10, epochs.Old.Value().Any())
	assert.Equal(t, 20, epochs.New.Value().Any())
}

func TestDiff_Options(t *testing.T) {
	a := loadString(t, "lr;float;1.0#rate\ntrial_id;string;x#\n")
	b := loadString(t, "lr;float;1.0000001#other\ntrial_id;string;y#\n")

	changes := Diff(a, b, DiffOptions{
		Ignore:         []*regexp.Regexp{regexp.MustCompile(`_id$`)},
		IgnoreComments: true,
		Tolerance:      1e-6,
	})
	assert.Empty(t, changes)

	changes = Diff(a, b, DiffOptions{IgnoreComments: true})
	require.Len(t, changes, 2)
	assert.Equal(t, "lr", changes[0].Name)
}

func TestDiff_DTypeChange(t *testing.T) {
	a := loadString(t, "x;int;None#\n")
	b := loadString(t, "x;float;None#\n")

	changes := Diff(a, b, DiffOptions{})
	require.Len(t, changes, 1)
	assert.Equal(t, Modified, changes[0].Kind)
	assert.Equal(t, "modified", changes[0].Kind.String())
}

func TestDiff_Identical(t *testing.T) {
	a := loadString(t, sampleConfig)
	assert.Empty(t, Diff(a, a, DiffOptions{}))
}
