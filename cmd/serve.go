package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/certlookup/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the lookup HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := cfg.Validate("serve"); err != nil {
			return err
		}
		env, err := initLookup(cfg, "")
		if err != nil {
			return err
		}

		// Warm the catalog; a missing source is reported per request.
		if _, err := env.Catalog.Get(ctx); err != nil {
			zap.L().Warn("no source loaded at startup", zap.Error(err))
		}

		srv := server.New(server.Deps{
			Catalog:   env.Catalog,
			Loader:    env.Loader,
			Adapter:   env.Adapter,
			Engine:    env.Engine,
			UploadDir: cfg.Source.UploadDir,
		}, server.Options{
			AccessKey:           cfg.Server.AccessKey,
			AllowedOrigins:      cfg.Server.AllowedOrigins,
			FailedAuthPerMinute: cfg.Server.FailedAuthPerMinute,
			MaxUploadBytes:      int64(cfg.Server.MaxUploadMB) << 20,
			CSVEncoding:         "utf-8",
		})

		return server.Start(ctx, srv.Handler(), resolvePort(servePort, cfg.Server.Port))
	},
}

// resolvePort prefers the flag value over the config value.
func resolvePort(flag, configured int) int {
	if flag != 0 {
		return flag
	}
	return configured
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
