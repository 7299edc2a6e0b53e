package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sells-group/certlookup/internal/source"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show which source, font and logo would be used",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := cfg.Validate("lookup"); err != nil {
			return err
		}
		env, err := initLookup(cfg, "")
		if err != nil {
			return err
		}

		set, loadErr := env.Catalog.Get(cmd.Context())
		formatStatus(cmd.OutOrStdout(), env, set.Len(), describeSet(set), loadErr)
		if loadErr != nil && !source.IsUnavailable(loadErr) {
			return loadErr
		}
		return nil
	},
}

func formatStatus(out io.Writer, env *lookupEnv, records int, src string, loadErr error) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for i, c := range env.Loader.Candidates() {
		_, _ = fmt.Fprintf(w, "Candidate %d:\t%s\n", i+1, c)
	}
	if loadErr != nil {
		_, _ = fmt.Fprintf(w, "Source:\tno data (%v)\n", loadErr)
	} else {
		_, _ = fmt.Fprintf(w, "Source:\t%s\n", src)
		_, _ = fmt.Fprintf(w, "Records:\t%d\n", records)
	}
	font := env.Engine.FontPath()
	if font == "" {
		font = "builtin"
	}
	heading := env.Engine.HeadingFontPath()
	if heading == "" {
		heading = "builtin"
	}
	_, _ = fmt.Fprintf(w, "Font:\t%s\n", font)
	_, _ = fmt.Fprintf(w, "Heading font:\t%s\n", heading)
	_, _ = fmt.Fprintf(w, "Logo:\t%t\n", env.Engine.HasLogo())
	_, _ = fmt.Fprintf(w, "Locale:\t%s\n", env.Adapter.Locale())
	_ = w.Flush()
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
