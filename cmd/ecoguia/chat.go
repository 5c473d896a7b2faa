package main

import (
	"github.com/aretw0/ecoguia/internal/cli"
	"github.com/spf13/cobra"
)

func newChatCmd(a *app) *cobra.Command {
	var opts cli.ChatOptions

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Talk to EcoGuía in the terminal",
		Long: `Plays the dialogue in the terminal. Answer menus with the option
number or its label; after an input node the matching reservations are
listed. Type "exit" or press Ctrl+C to leave.

With --json every output is one JSON document per line, which suits
scripts and other programs.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := cli.BuildEngine(cmd.Context(), a.cfg, a.logger)
			if err != nil {
				return err
			}
			defer rt.Close()

			opts.In = cmd.InOrStdin()
			opts.Out = cmd.OutOrStdout()
			opts.Logger = a.logger
			return cli.RunChat(cmd.Context(), rt.Engine, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Run in JSON mode (NDJSON input/output)")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Hide the banner and the closing message")
	cmd.Flags().BoolVar(&opts.NoSearch, "no-search", false, "Do not look up reservations after input nodes")
	return cmd
}

