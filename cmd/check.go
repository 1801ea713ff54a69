// File: cmd/check.go
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xkilldash9x/ezconfig/internal/observability"
	"github.com/xkilldash9x/ezconfig/pkg/ezconfig"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check FILE...",
		Short: "Validate files, reporting duplicate, malformed or unparsable lines",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := observability.GetLogger()
			paths, err := expandPaths(args)
			if err != nil {
				return err
			}

			failed := 0
			for _, p := range paths {
				store := newStore()
				if err := store.LoadFile(p, ezconfig.LoadOptions{}); err != nil {
					failed++
					logger.Debug("Config check failed", zap.String("path", p), zap.Error(err))
					fmt.Fprintf(cmd.OutOrStdout(), "FAIL %v\n", err)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "ok   %s (%d fields)\n", p, store.Len())
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d files failed validation", failed, len(paths))
			}
			return nil
		},
	}
}
