// Package cli implements the abel command-line interface.
//
// The commands are:
//   - transform: forward or inverse Abel transform of a half-image file
//   - synth: write a sampled Gaussian source or projection
//   - plot: draw a profile, its transform or a half-image heat map
//   - serve: run the HTTP transform service
//   - version: print build information
//
// Every command accepts --verbose (-v) for debug logging and --config for a
// TOML configuration file. Flags given on the command line override the
// file. The logger and configuration travel in the command context.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/hammal/abel/config"
)

var (
	version = "dev"
	commit  string
	date    string
)

// SetVersion sets the version information printed by --version and the
// version command, usually injected with -ldflags.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

func versionString() string {
	return fmt.Sprintf("abel %s\ncommit: %s\nbuilt: %s\n", version, commit, date)
}

// Execute runs the abel command line with os.Args.
func Execute(ctx context.Context) error {
	return newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx)
}

// newRootCmd builds the command tree. Results go to stdout and logs to
// stderr.
func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var (
		verbose    bool
		configFile string
	)

	root := &cobra.Command{
		Use:           "abel",
		Short:         "abel computes Abel transforms with the Hansen-Law method",
		Long:          `abel computes the forward and inverse Abel transform of right-side half-images with the recursive Hansen-Law method, from the command line or as an HTTP service.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			logger := newLogger(stderr, level)
			cfg, err := config.Load(configFile)
			if err != nil {
				return err
			}
			if configFile != "" {
				logger.Debug("loaded configuration", "file", configFile)
			}
			ctx := withConfig(withLogger(cmd.Context(), logger), cfg)
			cmd.SetContext(ctx)
			return nil
		},
	}

	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetVersionTemplate(versionString())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&configFile, "config", "", "TOML configuration file")

	root.AddCommand(newTransformCmd())
	root.AddCommand(newSynthCmd())
	root.AddCommand(newPlotCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newVersionCmd())

	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprint(cmd.OutOrStdout(), versionString())
			return err
		},
	}
}
