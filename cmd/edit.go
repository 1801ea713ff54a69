// File: cmd/edit.go
package cmd

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xkilldash9x/ezconfig/internal/observability"
	"github.com/xkilldash9x/ezconfig/pkg/ezconfig"
)

// editFile checks line against the fields of path and writes it back. Only
// the replaced or added line changes, so value functions elsewhere in the
// file keep their expressions. With freeze the whole file is rewritten
// with the values drawn while loading it.
func editFile(path, line string, replace, freeze bool) error {
	paths, err := expandPaths([]string{path})
	if err != nil {
		return err
	}
	path = paths[0]
	line = strings.TrimRight(line, "\r\n")

	fs := afero.NewOsFs()
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return fmt.Errorf("failed to read config %s: %w", path, err)
	}
	store := ezconfig.New(ezconfig.WithFs(fs), ezconfig.WithLogger(observability.GetLogger()))
	if err := store.Load(bytes.NewReader(data), path, ezconfig.LoadOptions{}); err != nil {
		return err
	}
	if replace {
		err = store.SetFieldFromText(line)
	} else {
		err = store.AddFieldFromText(line, false)
	}
	if err != nil {
		return err
	}

	if freeze {
		err = store.SaveFile(path)
	} else {
		err = afero.WriteFile(fs, path, []byte(spliceLine(string(data), line, replace)), 0o644)
	}
	if err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}
	observability.GetLogger().Info("Updated config", zap.String("path", path), zap.Bool("freeze", freeze))
	return nil
}

// spliceLine replaces the line defining the same field as line, or appends
// line when replace is false. Line endings of untouched lines are kept.
func spliceLine(text, line string, replace bool) string {
	if !replace {
		if text != "" && !strings.HasSuffix(text, "\n") {
			text += "\n"
		}
		return text + line + "\n"
	}

	name, _ := fieldName(line)
	lines := strings.SplitAfter(text, "\n")
	for i, l := range lines {
		body := strings.TrimRight(l, "\r\n")
		if n, ok := fieldName(body); ok && n == name {
			lines[i] = line + l[len(body):]
			break
		}
	}
	return strings.Join(lines, "")
}

// fieldName returns the name a field line declares. Blank and comment lines
// declare none.
func fieldName(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return "", false
	}
	name, _, ok := strings.Cut(line, ";")
	return strings.TrimSpace(name), ok
}

func newSetCmd() *cobra.Command {
	var freeze bool

	setCmd := &cobra.Command{
		Use:   `set FILE "name;dtype;value#comment"`,
		Short: "Replace an existing field; the dtype must not change",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editFile(args[0], args[1], true, freeze)
		},
	}
	setCmd.Flags().BoolVar(&freeze, "freeze", false, "also replace every value function in FILE with its drawn value")
	return setCmd
}

func newAddCmd() *cobra.Command {
	var freeze bool

	addCmd := &cobra.Command{
		Use:   `add FILE "name;dtype;value#comment"`,
		Short: "Add a new field",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editFile(args[0], args[1], false, freeze)
		},
	}
	addCmd.Flags().BoolVar(&freeze, "freeze", false, "also replace every value function in FILE with its drawn value")
	return addCmd
}
