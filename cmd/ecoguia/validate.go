package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/ecoguia/internal/cli"
	"github.com/spf13/cobra"
)

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the dialogue for consistency",
		Long: `Crawls the dialogue from the start node and reports broken links
(options or next_node_id pointing to missing nodes) as errors, and
unreachable nodes or menus without options as warnings.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Broken links are reported below rather than refused at load.
			cfg := a.cfg
			cfg.LazyReferences = true
			cfg.ReservasFile = ""
			cfg.Redis.Addr = ""

			rt, err := cli.BuildEngine(cmd.Context(), cfg, a.logger)
			if err != nil {
				return err
			}
			defer rt.Close()

			report, err := rt.Engine.Validate()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Start node: %s (%d reachable)\n", report.StartNodeID, len(report.Reachable))
			if len(report.Unreachable) > 0 {
				fmt.Fprintf(out, "Warning: unreachable nodes: %s\n", strings.Join(report.Unreachable, ", "))
			}
			if len(report.DeadEnds) > 0 {
				fmt.Fprintf(out, "Warning: nodes without options: %s\n", strings.Join(report.DeadEnds, ", "))
			}
			if err := report.Err(); err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}
			fmt.Fprintln(out, "Dialogue is valid! ✅")
			return nil
		},
	}
}
