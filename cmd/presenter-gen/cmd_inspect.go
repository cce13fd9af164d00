package main

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"presenter-generator/internal/config"
	"presenter-generator/internal/mapping"
)

// presenterSummary is the inspect view of one declaration.
type presenterSummary struct {
	Name             string          `yaml:"name" json:"name"`
	Extends          string          `yaml:"extends,omitempty" json:"extends,omitempty"`
	Slots            []string        `yaml:"slots" json:"slots"`
	SuppressPrefixes bool            `yaml:"suppress_prefixes,omitempty" json:"suppress_prefixes,omitempty"`
	ExposeAll        bool            `yaml:"expose_all,omitempty" json:"expose_all,omitempty"`
	Methods          []string        `yaml:"methods,omitempty" json:"methods,omitempty"`
	Fields           []mapping.Field `yaml:"fields" json:"fields"`
}

func newInspectCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "inspect <presenters.yaml> [Presenter...]",
		Short: "Print the effective slots and fields of presenters",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := mapping.LoadFile(args[0])
			if err != nil {
				return err
			}

			if err := mapping.Validate(f).Error(); err != nil {
				return fmt.Errorf("invalid declarations: %w", err)
			}

			summaries, err := summarize(f, args[1:])
			if err != nil {
				return err
			}

			a.logger.Debug("inspecting", zap.Int("presenters", len(summaries)))

			return write(cmd.OutOrStdout(), summaries, firstNonEmpty(format, config.FormatYAML), "  ")
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: json or yaml (default yaml)")

	return cmd
}

func summarize(f *mapping.File, names []string) ([]presenterSummary, error) {
	for _, n := range names {
		if _, ok := f.Lookup(n); !ok {
			return nil, fmt.Errorf("presenter %q is not declared", n)
		}
	}

	var out []presenterSummary

	for i := range f.Presenters {
		p := &f.Presenters[i]
		if len(names) > 0 && !slices.Contains(names, p.Name) {
			continue
		}

		out = append(out, presenterSummary{
			Name:             p.Name,
			Extends:          p.Extends,
			Slots:            f.Slots(p),
			SuppressPrefixes: f.SuppressesPrefixes(p),
			ExposeAll:        p.ExposeAll,
			Methods:          p.Methods,
			Fields:           f.FieldSpecs(p),
		})
	}

	return out, nil
}
