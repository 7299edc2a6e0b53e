package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/certlookup/internal/model"
	"github.com/sells-group/certlookup/internal/present"
	"github.com/sells-group/certlookup/internal/render"
	"github.com/sells-group/certlookup/internal/search"
)

var (
	renderOut         string
	renderLocale      string
	renderConcurrency int
)

var renderCmd = &cobra.Command{
	Use:   "render <query>",
	Short: "Write a certificate PNG for every matching record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		q, err := requireQuery(args[0])
		if err != nil {
			return err
		}
		if err := cfg.Validate("lookup"); err != nil {
			return err
		}

		env, err := initLookup(cfg, renderLocale)
		if err != nil {
			return err
		}
		set, err := env.Catalog.Get(cmd.Context())
		if err != nil {
			return noData(err)
		}

		hits := search.Search(set, q)
		if hits.Len() == 0 {
			fmt.Fprintln(cmd.ErrOrStderr(), "No matching records.")
			return nil
		}

		concurrency := renderConcurrency
		if concurrency <= 0 {
			concurrency = cfg.Render.Concurrency
		}
		paths, err := renderAll(cmd.Context(), env.Engine, env.Adapter, hits, renderOut, concurrency)
		if err != nil {
			return err
		}
		for _, p := range paths {
			fmt.Fprintln(cmd.OutOrStdout(), p)
		}
		return nil
	},
}

// renderAll renders one certificate per record into dir and returns the
// written paths in record order.
func renderAll(ctx context.Context, engine *render.Engine, adapter *present.Adapter, hits *model.RecordSet, dir string, concurrency int) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, eris.Wrap(err, "render: create output dir")
	}

	records := hits.Records()
	names := uniqueNames(records)
	paths := make([]string, len(records))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(concurrency, 1))

	var written atomic.Int64
	for i, rec := range records {
		i, rec := i, rec
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			data, err := engine.Render(adapter.RenderInput(rec))
			if err != nil {
				return eris.Wrapf(err, "render %s", rec.Identifier)
			}
			path := filepath.Join(dir, names[i])
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return eris.Wrapf(err, "write %s", path)
			}
			paths[i] = path
			written.Add(1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	zap.L().Info("certificates rendered",
		zap.Int64("written", written.Load()),
		zap.String("dir", dir),
	)
	return paths, nil
}

// uniqueNames returns a file name per record, suffixing repeats so two
// records with the same identifier do not overwrite each other.
func uniqueNames(records []model.Record) []string {
	used := make(map[string]bool, len(records))
	out := make([]string, len(records))
	for i, r := range records {
		base := present.FileName(r)
		name := base
		for n := 2; used[name]; n++ {
			name = fmt.Sprintf("%s-%d.png", strings.TrimSuffix(base, ".png"), n)
		}
		used[name] = true
		out[i] = name
	}
	return out
}

func init() {
	renderCmd.Flags().StringVar(&renderOut, "out", "certificates", "output directory")
	renderCmd.Flags().StringVar(&renderLocale, "locale", "", "label locale: zh or en (default from config)")
	renderCmd.Flags().IntVar(&renderConcurrency, "concurrency", 0, "parallel renders (default from config)")
	rootCmd.AddCommand(renderCmd)
}
