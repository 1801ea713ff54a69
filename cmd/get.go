// File: cmd/get.go
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xkilldash9x/ezconfig/pkg/ezconfig"
)

func newGetCmd() *cobra.Command {
	var audit bool

	getCmd := &cobra.Command{
		Use:   "get FILE NAME...",
		Short: "Print the values of the named fields",
		Long: `Print the values of the named fields, one per line. With --audit, every
field of FILE that was not requested is reported as unused on the log.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := getConfigFromContext(cmd.Context())
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("audit") {
				audit = cfg.Audit().WarnUnused
			}

			store, err := loadFiles(args[:1], ezconfig.LoadOptions{})
			if err != nil {
				return err
			}
			for _, name := range args[1:] {
				field, ok := store.Field(name)
				if !ok {
					return &ezconfig.FieldError{Op: "get", Field: name, Err: ezconfig.ErrMissingField}
				}
				v, err := store.Get(name, field.DType())
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), v.String())
			}
			if audit {
				store.AuditUnused()
			}
			return nil
		},
	}
	getCmd.Flags().BoolVar(&audit, "audit", false, "warn about fields that were not requested")
	return getCmd
}
