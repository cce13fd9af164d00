// Package main provides the CLI entrypoint for presenter-gen.
//
// presenter-gen works on YAML presenter declarations:
//   - check validates a declaration file, optionally against Go subject types
//   - gen writes typed Go wrappers for the declared presenters
//   - render presents JSON input through a declared presenter
//   - inspect prints the effective slots and fields of every presenter
//   - suggest proposes declarations for Go struct types
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"presenter-generator/internal/config"
)

// app carries what every command shares.
type app struct {
	cfg     config.Config
	logger  *zap.Logger
	verbose bool
}

func newRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:           "presenter-gen",
		Short:         "Declarative presenters from YAML",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			logger, err := cfg.NewLogger(a.verbose)
			if err != nil {
				return err
			}

			a.cfg = cfg
			a.logger = logger.Named(cmd.Name())

			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = a.logger.Sync()
		},
	}

	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose logging")

	root.AddCommand(
		newCheckCmd(a),
		newGenCmd(a),
		newRenderCmd(a),
		newInspectCmd(a),
		newSuggestCmd(a),
	)

	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
