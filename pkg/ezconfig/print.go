// File: pkg/ezconfig/print.go
package ezconfig

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// Print writes the loaded sources followed by a table of every field
// (virtual ones included) to w.
func (c *Config) Print(w io.Writer) error {
	var b strings.Builder
	b.WriteString("Config loaded from paths:\n")
	for _, p := range c.paths {
		b.WriteString("   " + p + "\n")
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers("Field Name", "Value", "Data Type", "Is Virtual")
	for _, name := range c.order {
		f := c.fields[name]
		t.Row(f.name, f.value.String(), f.dtype.String(), strconv.FormatBool(f.virtual))
	}
	b.WriteString(t.String())
	b.WriteString("\n")

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("failed to print config: %w", err)
	}
	return nil
}
