package main

import (
	"context"

	"github.com/aretw0/ecoguia/internal/cli"
	httpAdapter "github.com/aretw0/ecoguia/pkg/adapters/http"
	"github.com/spf13/cobra"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Long: `Starts the EcoGuía engine as a stateless JSON API. The client keeps
the current node and sends it back with every step.

With --static the web frontend (eco_guia_frontend.html) is served at "/".`,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if flags.Changed("addr") {
				a.cfg.Addr, _ = flags.GetString("addr")
			}
			if flags.Changed("static") {
				a.cfg.StaticDir, _ = flags.GetString("static")
			}

			sigCtx := cli.NewSignalContext(context.Background())
			defer sigCtx.Cancel()

			rt, err := cli.BuildEngine(sigCtx, a.cfg, a.logger)
			if err != nil {
				return err
			}
			defer rt.Close()

			handler := httpAdapter.NewHandler(rt.Engine,
				httpAdapter.WithLogger(a.logger),
				httpAdapter.WithMetrics(rt.Metrics.Handler()),
				httpAdapter.WithStaticDir(a.cfg.StaticDir),
			)

			if err := cli.ListenAndServe(sigCtx, a.cfg.Addr, handler, a.logger); err != nil {
				return err
			}
			if sig := sigCtx.Signal(); sig != nil {
				a.logger.Info("Stopped by signal", "signal", sig.String())
			}
			return nil
		},
	}

	cmd.Flags().StringP("addr", "a", "", "Address to listen on (default :8000)")
	cmd.Flags().String("static", "", "Directory holding the web frontend")
	return cmd
}
