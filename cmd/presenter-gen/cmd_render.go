package main

import (
	"fmt"
	"io"
	"os"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"presenter-generator/helpers"
	"presenter-generator/internal/config"
	"presenter-generator/internal/mapping"
	"presenter-generator/presenter"
)

// helpersProvider is the provider name delegations use for the localizer.
const helpersProvider = "helpers"

type renderOptions struct {
	input    string
	format   string
	indent   string
	locale   string
	catalogs []string
	many     bool
	spread   bool
}

func newRenderCmd(a *app) *cobra.Command {
	var opts renderOptions

	cmd := &cobra.Command{
		Use:   "render <presenters.yaml> <Presenter>",
		Short: "Present JSON input through a declared presenter",
		Long: `Reads a JSON document (from --input or stdin) and prints it as seen
through the named presenter.

The document is the single subject, unless --subjects binds the elements of
a JSON array to the slots in order, or --many presents every element of a
JSON array. Hand-written methods cannot be bound from the command line:
fields that need them are left out.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.render(cmd, args[0], args[1], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.input, "input", "i", "", "JSON input file (default stdin)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "Output format: json or yaml (default $PRESENTER_FORMAT)")
	cmd.Flags().StringVar(&opts.indent, "indent", "", "JSON indentation (default $PRESENTER_INDENT)")
	cmd.Flags().StringVar(&opts.locale, "locale", "", "Locale of the helpers (default $PRESENTER_LOCALE)")
	cmd.Flags().StringSliceVar(&opts.catalogs, "catalog", nil, "Message catalog files for the helpers")
	cmd.Flags().BoolVar(&opts.many, "many", false, "Present every element of the input array")
	cmd.Flags().BoolVar(&opts.spread, "subjects", false, "Bind the input array to the slots in order")

	return cmd
}

func (a *app) render(cmd *cobra.Command, path, name string, opts renderOptions) error {
	if opts.many && opts.spread {
		return fmt.Errorf("--many and --subjects are exclusive")
	}

	format := firstNonEmpty(opts.format, a.cfg.Format, config.FormatJSON)
	if format != config.FormatJSON && format != config.FormatYAML {
		return fmt.Errorf("unsupported format %q", format)
	}

	f, err := mapping.LoadFile(path)
	if err != nil {
		return err
	}

	loc, err := a.localizer(opts)
	if err != nil {
		return err
	}

	env := mapping.Env{
		Methods: mapping.NewMethodRegistry().RegisterProvider(helpersProvider, helpers.Provider(loc)),
		Logger:  a.logger,
		Lenient: true,
	}

	cat, err := mapping.Build(f, env)
	if err != nil {
		return err
	}

	t, ok := cat.Lookup(name)
	if !ok {
		return fmt.Errorf("presenter %q is not declared in %s", name, path)
	}

	input, err := readInput(cmd, opts.input)
	if err != nil {
		return err
	}

	value, err := present(t, input, opts)
	if err != nil {
		return err
	}

	a.logger.Debug("rendering",
		zap.String("presenter", name),
		zap.String("format", format),
		zap.String("locale", loc.Locale().String()),
	)

	return write(cmd.OutOrStdout(), value, format, firstNonEmpty(opts.indent, a.cfg.Indent))
}

func (a *app) localizer(opts renderOptions) (*helpers.Localizer, error) {
	paths := opts.catalogs
	if len(paths) == 0 {
		paths = a.cfg.Catalogs
	}

	files := make([]*helpers.CatalogFile, 0, len(paths))

	for _, p := range paths {
		file, err := helpers.LoadCatalog(p)
		if err != nil {
			return nil, err
		}

		files = append(files, file)
	}

	return helpers.NewLocalizer(firstNonEmpty(opts.locale, a.cfg.Locale), files...)
}

func readInput(cmd *cobra.Command, path string) (any, error) {
	var (
		data []byte
		err  error
	)

	if path == "" || path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}

	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}

	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("decoding input: %w", err)
	}

	return v, nil
}

// present returns what gets serialized: one instance or a list of them.
func present(t *presenter.Type, input any, opts renderOptions) (any, error) {
	switch {
	case opts.many:
		items, ok := input.([]any)
		if !ok {
			return nil, fmt.Errorf("--many needs a JSON array, got %T", input)
		}

		return t.Map(items), nil
	case opts.spread:
		subjects, ok := input.([]any)
		if !ok {
			return nil, fmt.Errorf("--subjects needs a JSON array, got %T", input)
		}

		return t.New(subjects...), nil
	default:
		return t.New(input), nil
	}
}

func write(w io.Writer, value any, format, indent string) error {
	if format == config.FormatYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)

		if err := enc.Encode(value); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}

		return enc.Close()
	}

	var (
		out []byte
		err error
	)

	if indent == "" {
		out, err = json.Marshal(value)
	} else {
		out, err = json.MarshalIndent(value, "", indent)
	}

	if err != nil {
		return fmt.Errorf("encoding json: %w", err)
	}

	_, err = fmt.Fprintf(w, "%s\n", out)

	return err
}
