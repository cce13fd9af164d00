package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"presenter-generator/internal/analyze"
	"presenter-generator/internal/gen"
	"presenter-generator/internal/mapping"
)

func newGenCmd(a *app) *cobra.Command {
	var (
		out     string
		pkgName string
		pkgPath string
		pkgs    []string
		dir     string
		dryRun  bool
	)

	cmd := &cobra.Command{
		Use:   "gen <presenters.yaml>",
		Short: "Generate typed Go wrappers for declared presenters",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := mapping.LoadFile(args[0])
			if err != nil {
				return err
			}

			var graph *analyze.TypeGraph
			if len(pkgs) > 0 {
				if graph, err = loadGraph(dir, pkgs); err != nil {
					return err
				}
			}

			cfg := gen.DefaultGeneratorConfig()
			cfg.OutputDir = firstNonEmpty(out, a.cfg.OutputDir, cfg.OutputDir)
			cfg.PackageName = firstNonEmpty(pkgName, a.cfg.Package)
			cfg.PackagePath = pkgPath

			files, err := gen.NewGenerator(cfg).Generate(f, graph)
			if err != nil {
				return err
			}

			if dryRun {
				for _, file := range files {
					fmt.Fprintf(cmd.OutOrStdout(), "// %s\n%s\n", file.Filename, file.Content)
				}

				return nil
			}

			paths, err := gen.WriteFiles(files, cfg.OutputDir)
			if err != nil {
				return err
			}

			for _, p := range paths {
				a.logger.Info("wrote file", zap.String("path", p))
			}

			fmt.Fprintf(cmd.OutOrStdout(), "generated %d files in %s\n", len(paths), cfg.OutputDir)

			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Output directory (default $PRESENTER_OUTPUT_DIR or ./presenters)")
	cmd.Flags().StringVar(&pkgName, "package", "", "Generated package name (default: the file's package)")
	cmd.Flags().StringVar(&pkgPath, "package-path", "", "Import path of the generated package")
	cmd.Flags().StringSliceVar(&pkgs, "pkg", nil, "Go packages declaring the subject types")
	cmd.Flags().StringVar(&dir, "dir", "", "Directory packages are resolved from")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the files instead of writing them")

	return cmd
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}

	return ""
}
