package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/aretw0/ecoguia/internal/ingest"
	"github.com/aretw0/ecoguia/pkg/adapters/file"
	"github.com/aretw0/ecoguia/pkg/unify"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func newUnifyCmd(a *app) *cobra.Command {
	var tablePath, output, csvPath string

	cmd := &cobra.Command{
		Use:   "unify",
		Short: "Enrich the reservation table with curated fields",
		Long: `Matches every reservation name against the enrichment table
(exact, then accent and case insensitive, then closest name) and copies
the table's fields into the record. The result is written back as JSON
and CSV.

Without --table the built-in list of provincial reserves is used.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			input := a.cfg.ReservasFile
			if output == "" {
				output = input
			}
			if csvPath == "" {
				csvPath = strings.TrimSuffix(output, filepath.Ext(output)) + ".csv"
			}

			table := unify.DefaultTable()
			if tablePath != "" {
				t, err := unify.LoadTable(tablePath)
				if err != nil {
					return err
				}
				table = t
			}

			records, err := file.NewRecordLoader(input).LoadRecords(cmd.Context())
			if err != nil {
				return err
			}

			report := table.Apply(records)
			a.logger.Info("Unified reservations", "input", input, "total", report.Total, "updated", report.Updated)

			if err := file.WriteRecordsJSON(output, records); err != nil {
				return err
			}
			if err := file.WriteRecordsCSV(csvPath, records, ingest.BaseColumns...); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%d of %d reservations updated (table of %d names)\n", report.Updated, report.Total, table.Len())

			tw := tablewriter.NewWriter(out)
			tw.SetHeader([]string{"Match", "Records"})
			for _, tier := range []unify.Tier{unify.TierExact, unify.TierNormalized, unify.TierFuzzy} {
				tw.Append([]string{string(tier), fmt.Sprint(report.ByTier[tier])})
			}
			tw.Append([]string{string(unify.TierNone), fmt.Sprint(len(report.Unmatched))})
			tw.Render()

			if len(report.Fuzzy) > 0 {
				fmt.Fprintln(out, "Fuzzy matches (check these):")
				for _, m := range report.Fuzzy {
					fmt.Fprintf(out, "  %s -> %s\n", m.Name, m.Key)
				}
			}
			if len(report.Unmatched) > 0 {
				fmt.Fprintf(out, "Unmatched: %s\n", strings.Join(report.Unmatched, ", "))
			}
			fmt.Fprintf(out, "Wrote %s and %s\n", output, csvPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&tablePath, "table", "", "Enrichment table (YAML or JSON)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output JSON (default: overwrite the input)")
	cmd.Flags().StringVar(&csvPath, "csv", "", "Output CSV (default: next to the JSON)")
	return cmd
}
