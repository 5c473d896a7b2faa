package main

import (
	"fmt"
	"os"

	"github.com/aretw0/ecoguia/internal/ingest"
	"github.com/aretw0/ecoguia/pkg/adapters/file"
	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func newIngestCmd(a *app) *cobra.Command {
	var dir, csvPath string

	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Build the reservation table from the provincial spreadsheets",
		Long: `Reads the provincial open-data CSV exports (semicolon separated,
Latin-1) and every .xlsx workbook in --dir, normalizes their columns,
drops rows without a name and duplicates, and writes the unified table
as JSON (--reservas) and CSV.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			loader := ingest.NewLoader(ingest.WithLogger(a.logger))
			res, err := loader.Load(dir)
			if err != nil {
				return err
			}

			output := a.cfg.ReservasFile
			if err := file.WriteRecordsJSON(output, res.Records); err != nil {
				return err
			}
			if err := file.WriteRecordsCSV(csvPath, res.Records, res.Columns...); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			tw := tablewriter.NewWriter(out)
			tw.SetHeader([]string{"Source", "Category", "Rows", "Size"})
			for _, f := range res.Files {
				size := "?"
				if info, err := os.Stat(f.Path); err == nil {
					size = humanize.Bytes(uint64(info.Size()))
				}
				tw.Append([]string{f.Path, f.Category, humanize.Comma(int64(f.Rows)), size})
			}
			tw.Render()

			tw = tablewriter.NewWriter(out)
			tw.SetHeader([]string{"Category", "Reservations"})
			for _, c := range res.ByCategory() {
				tw.Append([]string{c.Category, humanize.Comma(int64(c.Count))})
			}
			tw.Render()

			fmt.Fprintf(out, "%s reservations (%s duplicates dropped), %d columns\n",
				humanize.Comma(int64(len(res.Records))), humanize.Comma(int64(res.Duplicates)), len(res.Columns))
			fmt.Fprintf(out, "Wrote %s and %s\n", output, csvPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "Directory holding the source spreadsheets")
	cmd.Flags().StringVar(&csvPath, "csv", "reservas_unificadas.csv", "Output CSV")
	return cmd
}
