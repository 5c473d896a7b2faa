package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aretw0/ecoguia/internal/cli"
	"github.com/aretw0/ecoguia/internal/ingest"
	"github.com/aretw0/ecoguia/pkg/adapters/file"
	"github.com/aretw0/ecoguia/pkg/runner"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func newSearchCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "search <name>",
		Short: "Look up reservations by name",
		Long: `Searches the reservation table the same way the dialogue does:
exact name first, then substring, then closest names. At most five
reservations are shown.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query, err := runner.SanitizeInput(strings.Join(args, " "))
			if err != nil {
				return err
			}

			rt, err := cli.BuildEngine(cmd.Context(), a.cfg, a.logger)
			if err != nil {
				return err
			}
			defer rt.Close()

			res := rt.Engine.Lookup(cmd.Context(), query)
			out := cmd.OutOrStdout()

			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetEscapeHTML(false)
				enc.SetIndent("", "  ")
				return enc.Encode(res.Records)
			}

			if len(res.Records) == 0 {
				fmt.Fprintf(out, "No reservations found for %q.\n", query)
				return nil
			}

			fmt.Fprintf(out, "%d result(s) for %q (%s match)\n", len(res.Records), query, res.Tier)
			tw := tablewriter.NewWriter(out)
			tw.SetHeader([]string{"Nombre", "Municipio", "Categoría", "Superficie (ha)"})
			for _, rec := range res.Records {
				tw.Append([]string{
					file.FormatValue(rec[ingest.ColNombre]),
					file.FormatValue(rec[ingest.ColMunicipio]),
					file.FormatValue(rec[ingest.ColCategoria]),
					file.FormatValue(rec[ingest.ColSuperficie]),
				})
			}
			tw.Render()
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the matches as JSON")
	return cmd
}
