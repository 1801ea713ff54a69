// File: cmd/export.go
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xkilldash9x/ezconfig/pkg/ezconfig"
)

func newExportCmd() *cobra.Command {
	var format string

	exportCmd := &cobra.Command{
		Use:   "export FILE",
		Short: "Write the non-virtual fields of FILE as JSON or YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := loadFiles(args, ezconfig.LoadOptions{})
			if err != nil {
				return err
			}
			return store.Export(cmd.OutOrStdout(), ezconfig.ExportFormat(format))
		},
	}
	exportCmd.Flags().StringVarP(&format, "format", "f", string(ezconfig.FormatJSON), "output format: json or yaml")
	return exportCmd
}
