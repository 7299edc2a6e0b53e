package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/certlookup/internal/model"
	"github.com/sells-group/certlookup/internal/present"
	"github.com/sells-group/certlookup/internal/search"
)

var (
	searchFormat  string
	searchLocale  string
	searchDetails bool
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Find records whose serial number contains query",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		q, err := requireQuery(args[0])
		if err != nil {
			return err
		}
		if err := cfg.Validate("lookup"); err != nil {
			return err
		}

		env, err := initLookup(cfg, searchLocale)
		if err != nil {
			return err
		}
		set, err := env.Catalog.Get(cmd.Context())
		if err != nil {
			return noData(err)
		}

		hits := search.Search(set, q)
		if hits.Len() == 0 && searchFormat == "table" {
			fmt.Fprintln(cmd.ErrOrStderr(), "No matching records.")
			return nil
		}
		return writeHits(cmd.OutOrStdout(), env.Adapter, hits, searchFormat, searchDetails)
	},
}

// hitView is the serialized form of one match.
type hitView struct {
	Identifier string        `json:"identifier" yaml:"identifier"`
	Rows       []present.Row `json:"rows" yaml:"rows"`
	Details    []present.Row `json:"details,omitempty" yaml:"details,omitempty"`
}

func writeHits(out io.Writer, a *present.Adapter, hits *model.RecordSet, format string, details bool) error {
	views := make([]hitView, 0, hits.Len())
	for _, r := range hits.Records() {
		v := hitView{Identifier: r.Identifier, Rows: a.ViewRows(r)}
		if details {
			v.Details = a.DetailRows(r)
		}
		views = append(views, v)
	}

	switch format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(views)
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(views); err != nil {
			return eris.Wrap(err, "encode yaml")
		}
		return enc.Close()
	case "table":
		formatHitsTable(out, views)
		return nil
	default:
		return eris.Errorf("unknown format %q (want table, json or yaml)", format)
	}
}

// formatHitsTable writes one label/value block per match.
func formatHitsTable(out io.Writer, views []hitView) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for i, v := range views {
		if i > 0 {
			_, _ = fmt.Fprintln(w)
		}
		_, _ = fmt.Fprintf(w, "[%d] %s\n", i+1, v.Identifier)
		for _, row := range v.Rows {
			_, _ = fmt.Fprintf(w, "  %s\t%s\n", row.Label, row.Value)
		}
		for _, row := range v.Details {
			_, _ = fmt.Fprintf(w, "  %s\t%s\n", row.Label, row.Value)
		}
	}
	_ = w.Flush()
}

func init() {
	searchCmd.Flags().StringVar(&searchFormat, "format", "table", "output format: table, json or yaml")
	searchCmd.Flags().StringVar(&searchLocale, "locale", "", "label locale: zh or en (default from config)")
	searchCmd.Flags().BoolVar(&searchDetails, "details", false, "include certificate number, inspector and pickup fields")
	rootCmd.AddCommand(searchCmd)
}
