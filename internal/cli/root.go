// SPDX-License-Identifier: MIT

// Package cli implements the lveq command line.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/lvleq/internal/config"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	LogLevel  string
	LogDev    bool
	LogFile   string
	Format    string // "text" | "json"
	Precision int
	Metrics   bool

	cfg *config.Config
}

// NewRootCommand creates the root command. cfg supplies flag defaults and
// backend tuning; nil means config.Default().
func NewRootCommand(cfg *config.Config) *cobra.Command {
	if cfg == nil {
		cfg = config.Default()
	}
	opts := &RootOptions{cfg: cfg}

	cmd := &cobra.Command{
		Use:   "lveq",
		Short: "lveq - equations over scalars and matrices",
		Long: `Evaluate assignment formulas such as "x = inv(A) * b" against a
workspace of named integers, reals and matrices.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return WrapExitError(ExitCommandError,
					fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats), nil)
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", cfg.LogLevel, "log level (debug|info|warn|error)")
	cmd.PersistentFlags().BoolVar(&opts.LogDev, "log-dev", cfg.LogDev, "console log encoding")
	cmd.PersistentFlags().StringVar(&opts.LogFile, "log-file", cfg.LogFile, "write logs to this file instead of stderr")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", FormatText, "output format (text|json)")
	cmd.PersistentFlags().IntVar(&opts.Precision, "precision", cfg.Precision, "significant digits for reals (-1 = shortest exact)")
	cmd.PersistentFlags().BoolVar(&opts.Metrics, "metrics", false, "dump Prometheus metrics to stderr after evaluation")

	cmd.AddCommand(NewEvalCommand(opts))
	cmd.AddCommand(NewFuncsCommand(opts))

	return cmd
}
