// File: cmd/diff.go
package cmd

import (
	"fmt"
	"regexp"

	"github.com/spf13/cobra"

	"github.com/xkilldash9x/ezconfig/pkg/ezconfig"
)

func newDiffCmd() *cobra.Command {
	var (
		ignore         []string
		ignoreComments bool
		tolerance      float64
	)

	diffCmd := &cobra.Command{
		Use:   "diff A B",
		Short: "Show the fields that differ between two files",
		Long: `Show the fields that differ between two files: "-" for fields only in A,
"+" for fields only in B and "~" for fields whose dtype, value or comment changed.
Value functions are drawn on load, so compare saved trials rather than templates.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if tolerance < 0 {
				return fmt.Errorf("tolerance must not be negative, got %g", tolerance)
			}
			opts := ezconfig.DiffOptions{IgnoreComments: ignoreComments, Tolerance: tolerance}
			for _, pattern := range ignore {
				re, err := regexp.Compile(pattern)
				if err != nil {
					return fmt.Errorf("invalid --ignore pattern %q: %w", pattern, err)
				}
				opts.Ignore = append(opts.Ignore, re)
			}

			a, err := loadFiles(args[:1], ezconfig.LoadOptions{})
			if err != nil {
				return err
			}
			b, err := loadFiles(args[1:], ezconfig.LoadOptions{})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, c := range ezconfig.Diff(a, b, opts) {
				switch c.Kind {
				case ezconfig.Removed:
					fmt.Fprintf(out, "- %s\n", c.Old)
				case ezconfig.Added:
					fmt.Fprintf(out, "+ %s\n", c.New)
				case ezconfig.Modified:
					fmt.Fprintf(out, "~ %s\n  %s\n", c.Old, c.New)
				}
			}
			return nil
		},
	}
	diffCmd.Flags().StringSliceVar(&ignore, "ignore", nil, "skip fields whose name matches this regular expression (repeatable)")
	diffCmd.Flags().BoolVar(&ignoreComments, "ignore-comments", false, "compare dtype and value only")
	diffCmd.Flags().Float64Var(&tolerance, "tolerance", 0, "relative difference under which floats are equal")
	return diffCmd
}
