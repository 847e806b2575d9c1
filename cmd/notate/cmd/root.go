// Package cmd contains notate commands.
package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ava12/notation/config"
	"github.com/ava12/notation/converter"
)

var (
	cfgFile    string
	tableFiles []string
	verbose    bool

	cfg    *config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "notate",
	Short: "Converts mathematical expressions between notations",
	Long: `notate converts mathematical expressions between surface notations:
canonical putdown, infix, prefix, LaTeX, and any language defined in table files.

Config file is taken from --config flag, NOTATE_CONFIG environment variable,
./notate.toml, or ~/.config/notate/config.toml.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file")
	rootCmd.PersistentFlags().StringSliceVar(&tableFiles, "tables", nil, "additional YAML or TOML table files")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug messages")
}

func loadConfig(cmd *cobra.Command, args []string) error {
	var err error
	if cfgFile != "" {
		cfg, err = config.Load(cfgFile)
	} else {
		cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return err
	}

	cfg.Tables.Files = append(cfg.Tables.Files, tableFiles...)
	if verbose {
		cfg.General.LogLevel = "debug"
	}
	logger = config.NewLogger(cfg.General.LogLevel, cfg.General.LogFormat, cmd.ErrOrStderr())
	return nil
}

func newConverter() (*converter.Converter, error) {
	c, err := config.NewConverter(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("cannot build converter: %w", err)
	}
	return c, nil
}
