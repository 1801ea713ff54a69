// File: cmd/show.go
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xkilldash9x/ezconfig/pkg/ezconfig"
)

func newShowCmd() *cobra.Command {
	var overwrite bool

	showCmd := &cobra.Command{
		Use:   "show FILE...",
		Short: "Load one or more files and print their fields as a table",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := getConfigFromContext(cmd.Context())
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("overwrite") {
				overwrite = cfg.Load().Overwrite
			}

			store, err := loadFiles(args, ezconfig.LoadOptions{Overwrite: overwrite})
			if err != nil {
				return err
			}
			return store.Print(cmd.OutOrStdout())
		},
	}
	showCmd.Flags().BoolVar(&overwrite, "overwrite", false, "let later files replace fields of earlier ones")
	return showCmd
}
