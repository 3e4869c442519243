package main

import (
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type config struct {
	ChainID string `env:"GOLDTIX_CHAIN_ID" envDefault:"goldtix-1"`
	EventDB string `env:"GOLDTIX_EVENT_DB" envDefault:"goldtix-events.db"`
	Verbose bool   `env:"GOLDTIX_VERBOSE"`
}

func loadConfig() (config, error) {
	var conf config
	err := env.Parse(&conf)
	return conf, err
}

func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	out := zerolog.ConsoleWriter{Out: os.Stderr}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "goldtix",
		Short:         "A non-fungible ticket ledger",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	cmd.AddCommand(demoCmd())
	cmd.AddCommand(eventsCmd())
	cmd.AddCommand(genesisCmd())
	return cmd
}
