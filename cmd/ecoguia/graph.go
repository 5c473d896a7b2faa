package main

import (
	"fmt"

	"github.com/aretw0/ecoguia/internal/cli"
	"github.com/aretw0/ecoguia/internal/presentation/graph"
	"github.com/spf13/cobra"
)

func newGraphCmd(a *app) *cobra.Command {
	var path []string

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Export the dialogue as a Mermaid flowchart",
		Long: `Outputs a Mermaid diagram (graph TD) of the dialogue. Broken links
are drawn as red nodes. --path highlights a conversation, the last node
being the current one.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg
			cfg.LazyReferences = true
			cfg.ReservasFile = ""
			cfg.Redis.Addr = ""

			rt, err := cli.BuildEngine(cmd.Context(), cfg, a.logger)
			if err != nil {
				return err
			}
			defer rt.Close()

			var overlay *graph.GraphOverlay
			if len(path) > 0 {
				overlay = &graph.GraphOverlay{
					VisitedNodes: path,
					CurrentNode:  path[len(path)-1],
				}
			}

			fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(rt.Engine.Inspect(), rt.Engine.StartNodeID(), overlay))
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&path, "path", nil, "Comma-separated node ids to highlight")
	return cmd
}
