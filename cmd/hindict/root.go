package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/hindict/internal/app"
	"github.com/heartmarshall/hindict/internal/config"
)

// rootOptions carries the global flags and the state bootstrapped from them.
type rootOptions struct {
	configPath string
	logLevel   string
	logFormat  string

	cfg *config.Config
	log *slog.Logger
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "hindict",
		Short:         "Build an offline English/Hindi dictionary from Wiktionary extracts",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := app.Bootstrap(opts.configPath, config.LogConfig{
				Level:  opts.logLevel,
				Format: opts.logFormat,
			})
			if err != nil {
				return err
			}
			opts.cfg = cfg
			opts.log = logger.With(slog.String("command", cmd.Name()))
			return nil
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "path to YAML config (default: $CONFIG_PATH or ./config.yaml)")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.StringVar(&opts.logFormat, "log-format", "", "log format: json or text")

	cmd.AddCommand(
		newProcessCmd(opts),
		newBuildCmd(opts),
		newLookupCmd(opts),
		newVersionCmd(),
	)
	return cmd
}
