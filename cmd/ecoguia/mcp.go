package main

import (
	"fmt"

	"github.com/aretw0/ecoguia/internal/cli"
	"github.com/aretw0/ecoguia/pkg/adapters/mcp"
	"github.com/spf13/cobra"
)

func newMCPCmd(a *app) *cobra.Command {
	var transport string
	var port int

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Run the Model Context Protocol (MCP) server",
		Long: `Starts the EcoGuía engine as an MCP Server so AI agents can hold the
conversation and search reservations as tools.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			sigCtx := cli.NewSignalContext(cmd.Context())
			defer sigCtx.Cancel()

			// Logs go to stderr so they never corrupt JSON-RPC on stdout.
			rt, err := cli.BuildEngine(sigCtx, a.cfg, a.logger)
			if err != nil {
				return err
			}
			defer rt.Close()

			srv := mcp.NewServer(rt.Engine, mcp.WithLogger(a.logger))

			switch transport {
			case "stdio":
				a.logger.Info("Starting EcoGuía MCP Server (Stdio)")
				return srv.ServeStdio()
			case "sse":
				a.logger.Info("Starting EcoGuía MCP Server (SSE)", "port", port)
				if err := srv.ServeSSE(sigCtx, port); err != nil {
					return err
				}
				a.logger.Info("MCP Server stopped gracefully")
				return nil
			default:
				return fmt.Errorf("unknown transport: %s. Supported: stdio, sse", transport)
			}
		},
	}

	cmd.Flags().StringVarP(&transport, "transport", "t", "stdio", "Transport: stdio or sse")
	cmd.Flags().IntVarP(&port, "port", "p", 8080, "Port for the SSE transport")
	return cmd
}
