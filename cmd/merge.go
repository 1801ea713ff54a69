// File: cmd/merge.go
package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xkilldash9x/ezconfig/internal/observability"
	"github.com/xkilldash9x/ezconfig/pkg/ezconfig"
)

func newMergeCmd() *cobra.Command {
	var (
		output    string
		overwrite bool
	)

	mergeCmd := &cobra.Command{
		Use:   "merge BASE OTHER...",
		Short: "Merge files into BASE and write the result",
		Long: `Merge every OTHER file into BASE, in order. By default a field of a later
file replaces the field of the same name (merge.overwrite); with
--overwrite=false any collision aborts the merge.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := getConfigFromContext(cmd.Context())
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("overwrite") {
				overwrite = cfg.Merge().Overwrite
			}

			base, err := loadFiles(args[:1], ezconfig.LoadOptions{})
			if err != nil {
				return err
			}
			for _, p := range args[1:] {
				other, err := loadFiles([]string{p}, ezconfig.LoadOptions{})
				if err != nil {
					return err
				}
				if err := base.MergeWith(other, overwrite); err != nil {
					return err
				}
			}

			if output == "" {
				return base.Save(cmd.OutOrStdout())
			}
			out, err := expandPaths([]string{output})
			if err != nil {
				return err
			}
			if err := base.SaveFile(out[0]); err != nil {
				return err
			}
			observability.GetLogger().Info("Wrote merged config", zap.String("path", out[0]), zap.Int("fields", base.Len()))
			return nil
		},
	}
	mergeCmd.Flags().StringVarP(&output, "output", "o", "", "write the result to this file instead of stdout")
	mergeCmd.Flags().BoolVar(&overwrite, "overwrite", true, "let later files replace existing fields")
	return mergeCmd
}
