package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/ecoguia/internal/cli"
	"github.com/aretw0/ecoguia/internal/config"
	"github.com/spf13/cobra"
)

// app carries the resolved configuration to every subcommand.
type app struct {
	configPath string
	cfg        config.Config
	logger     *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "ecoguia",
		Short: "EcoGuía is a conversational guide to the natural reserves of Buenos Aires",
		Long: `EcoGuía walks visitors through a menu-driven dialogue and looks up
natural reserves of the Province of Buenos Aires by name, tolerating
accents, case and typos.

Settings come from --config (YAML or JSON), then ECOGUIA_* environment
variables, then flags.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd)
		},
	}

	// Persistent flags (available to all commands)
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&a.configPath, "config", "c", "", "Configuration file (YAML or JSON)")
	pf.String("bot", "", "Dialogue definition: bot.txt, a YAML file or a directory of markdown nodes")
	pf.String("reservas", "", "Unified reservations table (JSON)")
	pf.String("start", "", "Override the start node")
	pf.String("log-level", "", "Log level: debug, info, warn, error")
	pf.String("log-format", "", "Log format: text or json")
	pf.String("redis", "", "Redis address for the search cache")

	rootCmd.AddCommand(
		newServeCmd(a),
		newChatCmd(a),
		newSearchCmd(a),
		newValidateCmd(a),
		newGraphCmd(a),
		newUnifyCmd(a),
		newIngestCmd(a),
		newMCPCmd(a),
		newVersionCmd(),
	)
	return rootCmd
}

// load resolves file and environment settings, then applies changed flags.
func (a *app) load(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	override := func(name string, dst *string) {
		if flags.Changed(name) {
			*dst, _ = flags.GetString(name)
		}
	}
	override("bot", &cfg.BotFile)
	override("reservas", &cfg.ReservasFile)
	override("start", &cfg.StartNode)
	override("log-level", &cfg.LogLevel)
	override("log-format", &cfg.LogFormat)
	override("redis", &cfg.Redis.Addr)

	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = cli.NewLogger(cfg)
	return nil
}

// Execute adds all child commands to the root command and runs it.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
