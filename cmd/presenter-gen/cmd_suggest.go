package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"presenter-generator/internal/mapping"
	"presenter-generator/internal/plan"
)

func newSuggestCmd(a *app) *cobra.Command {
	var (
		pkgs     []string
		dir      string
		out      string
		noFollow bool
		cfg      = plan.DefaultConfig()
	)

	cmd := &cobra.Command{
		Use:   "suggest --pkg <package> <Type>...",
		Short: "Propose presenter declarations for Go types",
		Long: `Proposes a declaration file exposing every visible field of the given
struct types. Struct fields are routed through presenters planned for their
types. Review the result before committing it.`,
		Example: `  presenter-gen suggest --pkg ./examples/blog blog.Post`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(pkgs) == 0 {
				return fmt.Errorf("--pkg is required")
			}

			graph, err := loadGraph(dir, pkgs)
			if err != nil {
				return err
			}

			cfg.Follow = !noFollow
			cfg.Package = firstNonEmpty(cfg.Package, a.cfg.Package, mapping.DefaultPackage)

			res, err := plan.NewPlanner(graph, cfg).Suggest(args...)
			if res != nil {
				printDiagnostics(cmd, res.Diagnostics, a.verbose)
			}

			if err != nil {
				return err
			}

			data, err := res.ExportYAML()
			if err != nil {
				return err
			}

			if out == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}

			if err := os.WriteFile(out, data, 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", out, err)
			}

			a.logger.Info("wrote declarations", zap.String("path", out), zap.Int("presenters", len(res.File.Presenters)))

			return nil
		},
	}

	cmd.Flags().StringSliceVar(&pkgs, "pkg", nil, "Go packages declaring the types")
	cmd.Flags().StringVar(&dir, "dir", "", "Directory packages are resolved from")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write the proposal to a file instead of stdout")
	cmd.Flags().StringVar(&cfg.Package, "package", "", "Package name of the proposal")
	cmd.Flags().StringVar(&cfg.Suffix, "suffix", cfg.Suffix, "Suffix of presenter names")
	cmd.Flags().BoolVar(&cfg.Methods, "methods", false, "Also expose zero-argument methods")
	cmd.Flags().BoolVar(&noFollow, "no-follow", false, "Only plan the given types")

	return cmd
}
