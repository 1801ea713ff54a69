// File: cmd/helpers.go
package cmd

import (
	"fmt"

	"github.com/mitchellh/go-homedir"

	"github.com/xkilldash9x/ezconfig/internal/observability"
	"github.com/xkilldash9x/ezconfig/pkg/ezconfig"
)

// expandPaths resolves a leading ~ in every path.
func expandPaths(paths []string) ([]string, error) {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		expanded, err := homedir.Expand(p)
		if err != nil {
			return nil, fmt.Errorf("failed to expand path %q: %w", p, err)
		}
		out = append(out, expanded)
	}
	return out, nil
}

// newStore returns an empty store logging through the global logger.
func newStore() *ezconfig.Config {
	return ezconfig.New(ezconfig.WithLogger(observability.GetLogger()))
}

// loadFiles loads every path into one store, in order.
func loadFiles(paths []string, opts ezconfig.LoadOptions) (*ezconfig.Config, error) {
	paths, err := expandPaths(paths)
	if err != nil {
		return nil, err
	}
	cfg := newStore()
	for _, p := range paths {
		if err := cfg.LoadFile(p, opts); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}
