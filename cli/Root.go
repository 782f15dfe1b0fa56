// Package cli provides the command-line interface for training and
// comparing market making agents.
package cli

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/samuelfneumann/mmlearn/config"
	"github.com/samuelfneumann/mmlearn/logging"
)

// Version information
const Version = "0.1.0"

// App holds the state shared by all commands
type App struct {
	ConfigPath string
	LogLevel   string

	Config config.Config
	Logger zerolog.Logger
}

// load loads the configuration and creates the logger. Log output is
// written to the command's error stream so that results written to its
// output stream stay machine readable.
func (a *App) load(cmd *cobra.Command) error {
	cfg, err := config.Load(a.ConfigPath)
	if err != nil {
		return err
	}
	if a.LogLevel != "" {
		cfg.Log.Level = a.LogLevel
	}

	a.Config = cfg
	a.Logger = logging.New(cfg.Log, cmd.ErrOrStderr())
	return nil
}

// NewRootCmd creates the root command for the CLI
func NewRootCmd() *cobra.Command {
	app := &App{}

	rootCmd := &cobra.Command{
		Use:     "mmlearn",
		Short:   "Tabular Q-learning market maker",
		Version: Version,
		Long: `mmlearn trains a tabular Q-learning market maker on simulated
Brownian price paths and compares it to fixed baseline strategies.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.load(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&app.ConfigPath, "config", "c", "",
		"path of the YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&app.LogLevel, "log-level", "",
		"log level (debug, info, warn, error)")

	rootCmd.AddCommand(newTrainCmd(app))
	rootCmd.AddCommand(newSimulateCmd(app))
	rootCmd.AddCommand(newRunsCmd(app))

	return rootCmd
}

// Execute runs the root command with the process arguments
func Execute() error {
	return NewRootCmd().ExecuteContext(context.Background())
}
