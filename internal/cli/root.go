// Package cli implements the chartmaker command line.
package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/dukerupert/chartmaker/internal/config"
	"github.com/dukerupert/chartmaker/internal/logging"
)

// Version is set via ldflags.
var Version = "dev"

type rootFlags struct {
	configPath string
	logLevel   string
}

// NewRootCmd builds the command tree using the wall clock.
func NewRootCmd() *cobra.Command {
	return newRootCmd(time.Now)
}

func newRootCmd(now func() time.Time) *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:           "chartmaker",
		Short:         "Weekly routine and chore charts for kids",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "Path to a YAML config file (default $CHARTMAKER_CONFIG)")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Override the configured log level")

	root.AddCommand(
		newServeCmd(flags, now),
		newWeekCmd(now),
		newResetCmd(flags, now),
		newPrintCmd(flags, now),
	)
	return root
}

// setup loads configuration, installs the logger, and opens the app.
func setup(cmd *cobra.Command, flags *rootFlags, now func() time.Time) (*app, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, err
	}
	if flags.logLevel != "" {
		cfg.Log.Level = flags.logLevel
	}
	logger := logging.Setup(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format)
	return openApp(cfg, now, logger)
}
