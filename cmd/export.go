package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/certlookup/internal/export"
	"github.com/sells-group/certlookup/internal/model"
	"github.com/sells-group/certlookup/internal/search"
)

var (
	exportOut      string
	exportEncoding string
)

var exportCmd = &cobra.Command{
	Use:   "export <query>",
	Short: "Export matching records to an xlsx or csv file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		q, err := requireQuery(args[0])
		if err != nil {
			return err
		}
		if err := cfg.Validate("lookup"); err != nil {
			return err
		}

		env, err := initLookup(cfg, "")
		if err != nil {
			return err
		}
		set, err := env.Catalog.Get(cmd.Context())
		if err != nil {
			return noData(err)
		}

		hits := search.Search(set, q)
		if err := writeExport(exportOut, hits, exportEncoding); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d records to %s\n", hits.Len(), exportOut)
		return nil
	},
}

// writeExport picks the format from the file extension.
func writeExport(path string, set *model.RecordSet, encoding string) error {
	var buf bytes.Buffer
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		if err := export.WriteXLSX(&buf, set); err != nil {
			return err
		}
	case ".csv":
		if err := export.WriteCSV(&buf, set, encoding); err != nil {
			return err
		}
	default:
		return eris.Errorf("export: unsupported output %q (want .xlsx or .csv)", path)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return eris.Wrap(err, "export: write file")
	}
	zap.L().Info("records exported", zap.String("path", path), zap.Int("records", set.Len()))
	return nil
}

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", "export.xlsx", "output file (.xlsx or .csv)")
	exportCmd.Flags().StringVar(&exportEncoding, "encoding", "utf-8", "csv encoding: utf-8 or gbk")
	rootCmd.AddCommand(exportCmd)
}
