package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"presenter-generator/internal/analyze"
	"presenter-generator/internal/diagnostic"
	"presenter-generator/internal/mapping"
)

// errCheckFailed is returned when a declaration file has error diagnostics.
var errCheckFailed = errors.New("check failed")

func newCheckCmd(a *app) *cobra.Command {
	var (
		pkgs  []string
		dir   string
		infos bool
	)

	cmd := &cobra.Command{
		Use:   "check <presenters.yaml>",
		Short: "Validate a declaration file",
		Long: `Validates names, references and options of every presenter.

With --pkg the subject_types are loaded from the given Go packages and every
exposed attribute is checked against them.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := mapping.LoadFile(args[0])
			if err != nil {
				return err
			}

			res := mapping.Validate(f)

			if len(pkgs) > 0 && res.IsValid() {
				graph, err := loadGraph(dir, pkgs)
				if err != nil {
					return err
				}

				res.Merge(*mapping.CheckSubjects(f, graph))
			}

			printDiagnostics(cmd, res, infos)

			a.logger.Debug("checked declarations",
				zap.String("file", args[0]),
				zap.Int("presenters", len(f.Presenters)),
				zap.Int("errors", len(res.Errors)),
				zap.Int("warnings", len(res.Warnings)),
			)

			if res.HasErrors() {
				return fmt.Errorf("%w: %d error(s)", errCheckFailed, len(res.Errors))
			}

			fmt.Fprintf(cmd.OutOrStdout(), "OK: %s (%d presenters)\n", args[0], len(f.Presenters))

			return nil
		},
	}

	cmd.Flags().StringSliceVar(&pkgs, "pkg", nil, "Go packages declaring the subject types")
	cmd.Flags().StringVar(&dir, "dir", "", "Directory packages are resolved from")
	cmd.Flags().BoolVar(&infos, "infos", false, "Also print informational diagnostics")

	return cmd
}

func loadGraph(dir string, pkgs []string) (*analyze.TypeGraph, error) {
	analyzer := analyze.NewAnalyzer()
	if dir != "" {
		analyzer = analyzer.WithDir(dir)
	}

	graph, err := analyzer.LoadPackages(pkgs...)
	if err != nil {
		return nil, fmt.Errorf("loading subject packages: %w", err)
	}

	return graph, nil
}

func printDiagnostics(cmd *cobra.Command, res *diagnostic.Diagnostics, infos bool) {
	out := cmd.OutOrStdout()

	for _, d := range res.All() {
		if d.Severity == diagnostic.DiagnosticInfo && !infos {
			continue
		}

		fmt.Fprintf(out, "%s: %s\n", d.Severity, d)
	}
}
