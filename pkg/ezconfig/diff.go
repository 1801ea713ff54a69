package ezconfig

import (
	"regexp"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// ChangeKind classifies one entry of a Diff.
type ChangeKind uint8

const (
	Added ChangeKind = iota + 1
	Removed
	Modified
)

func (k ChangeKind) String() string {
	switch k {
	case Added:
		return "added"
	case Removed:
		return "removed"
	case Modified:
		return "modified"
	default:
		return "unknown"
	}
}

// Change describes how one field differs between two stores. Old is the
// zero Field for Added, New is the zero Field for Removed.
type Change struct {
	Kind ChangeKind
	Name string
	Old  Field
	New  Field
}

// DiffOptions tunes Diff.
type DiffOptions struct {
	// Ignore skips fields whose name matches any pattern, e.g. generated
	// trial ids.
	Ignore []*regexp.Regexp
	// IgnoreComments compares dtype and value only.
	IgnoreComments bool
	// Tolerance is the relative difference under which two floats are equal.
	Tolerance float64
}

// Diff lists the fields that differ from a to b: first the removed and
// modified ones in a's order, then the added ones in b's order.
func Diff(a, b *Config, opts DiffOptions) []Change {
	valueOpts := cmp.Options{cmpopts.EquateApprox(opts.Tolerance, 0), cmpopts.EquateNaNs()}

	var changes []Change
	for _, name := range a.order {
		if ignored(name, opts.Ignore) {
			continue
		}
		old := *a.fields[name]
		cur, ok := b.fields[name]
		if !ok {
			changes = append(changes, Change{Kind: Removed, Name: name, Old: old})
			continue
		}
		same := old.dtype == cur.dtype &&
			cmp.Equal(old.value.Any(), cur.value.Any(), valueOpts) &&
			(opts.IgnoreComments || old.comment == cur.comment)
		if !same {
			changes = append(changes, Change{Kind: Modified, Name: name, Old: old, New: *cur})
		}
	}
	for _, name := range b.order {
		if _, ok := a.fields[name]; ok || ignored(name, opts.Ignore) {
			continue
		}
		changes = append(changes, Change{Kind: Added, Name: name, New: *b.fields[name]})
	}
	return changes
}

func ignored(name string, patterns []*regexp.Regexp) bool {
	for _, re := range patterns {
		if re.MatchString(name) {
			return true
		}
	}
	return false
}
