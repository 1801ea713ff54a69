// Package trial draws independent samples of a stochastic config template
// and freezes each into its own file.
package trial

import (
	"bytes"
	"context"
	"fmt"
	"math/rand/v2"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/afero"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/xkilldash9x/ezconfig/pkg/ezconfig"
)

// idNamespace scopes the deterministic trial ids derived from a seed.
var idNamespace = uuid.MustParse("8f6d3c1e-2b4a-4f5e-9c7d-1a2b3c4d5e6f")

// Options configures Generate.
type Options struct {
	// Template is the path of the config holding value functions.
	Template string
	// Count is the number of trials to draw.
	Count int
	// Seed makes the draws reproducible; 0 draws a random seed per trial.
	Seed uint64
	// Concurrency bounds the number of trials processed at once.
	Concurrency int
	// IDField names a string field that receives a per-trial UUID. Empty
	// disables it; a template that already defines the field keeps its own.
	IDField string
	// OutDir receives the trial files.
	OutDir string

	Fs     afero.Fs
	Logger *zap.Logger
}

// Trial is one generated file.
type Trial struct {
	Index int
	ID    string
	Path  string
}

// Generate draws opts.Count trials of the template and writes each to
// OutDir/<stem>-<index><ext>. Trials are returned in index order. The
// first failure cancels the trials that have not started yet.
func Generate(ctx context.Context, opts Options) ([]Trial, error) {
	if opts.Count <= 0 {
		return nil, fmt.Errorf("trial count must be positive, got %d", opts.Count)
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = 1
	}
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	template, err := afero.ReadFile(opts.Fs, opts.Template)
	if err != nil {
		return nil, fmt.Errorf("failed to read template %s: %w", opts.Template, err)
	}
	if err := opts.Fs.MkdirAll(opts.OutDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", opts.OutDir, err)
	}

	base := filepath.Base(opts.Template)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	trials := make([]Trial, opts.Count)
	g, groupCtx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)

	for i := 0; i < opts.Count; i++ {
		g.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			t := Trial{
				Index: i,
				Path:  filepath.Join(opts.OutDir, fmt.Sprintf("%s-%03d%s", stem, i, ext)),
			}
			id, err := generateOne(template, t.Path, i, opts)
			if err != nil {
				return fmt.Errorf("trial %d: %w", i, err)
			}
			t.ID = id
			trials[i] = t
			opts.Logger.Debug("Generated trial", zap.Int("index", i), zap.String("path", t.Path), zap.String("id", id))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	opts.Logger.Info("Generated trials",
		zap.String("template", opts.Template),
		zap.Int("count", opts.Count),
		zap.String("out_dir", opts.OutDir))
	return trials, nil
}

// generateOne loads the template with its own random source and saves the
// drawn values. It returns the trial id ("" when ids are disabled).
func generateOne(template []byte, path string, index int, opts Options) (string, error) {
	seed1, seed2 := opts.Seed, uint64(index)
	if opts.Seed == 0 {
		seed1, seed2 = rand.Uint64(), rand.Uint64()
	}

	cfg := ezconfig.New(
		ezconfig.WithFs(opts.Fs),
		ezconfig.WithRand(ezconfig.NewSeededRand(seed1, seed2)),
		ezconfig.WithLogger(opts.Logger),
	)
	if err := cfg.Load(bytes.NewReader(template), opts.Template, ezconfig.LoadOptions{}); err != nil {
		return "", err
	}

	var id string
	if opts.IDField != "" && !cfg.Contains(opts.IDField) {
		id = trialID(opts, index)
		if err := cfg.AddString(opts.IDField, id, ezconfig.Comment("generated trial id")); err != nil {
			return "", err
		}
	}
	if err := cfg.SaveFile(path); err != nil {
		return "", err
	}
	return id, nil
}

// trialID is random without a seed and derived from template, seed and
// index with one, so a seeded run reproduces its ids.
func trialID(opts Options, index int) string {
	if opts.Seed == 0 {
		return uuid.NewString()
	}
	name := fmt.Sprintf("%s/%d/%d", opts.Template, opts.Seed, index)
	return uuid.NewSHA1(idNamespace, []byte(name)).String()
}
