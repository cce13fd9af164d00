package gen

import (
	"bytes"
	"fmt"
	"go/format"
	"text/template"

	"presenter-generator/internal/analyze"
	"presenter-generator/internal/mapping"
	"presenter-generator/internal/match"
)

// RuntimeImport is the import path of the presenter runtime.
const RuntimeImport = "presenter-generator/presenter"

// NamesFilename is the file holding the presenter name constants.
const NamesFilename = "presenters.go"

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// PackageName is the name of the generated package. Empty means the
	// package declared in the file.
	PackageName string
	// PackagePath is the import path of the generated package. Subject types
	// from that package are not qualified.
	PackagePath string
	// OutputDir is where unformatted sources are dumped when formatting fails.
	OutputDir string
	// GenerateComments copies presenter descriptions into the output.
	GenerateComments bool
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		OutputDir:        "./presenters",
		GenerateComments: true,
	}
}

// Generator generates Go code from a declaration file.
type Generator struct {
	config GeneratorConfig
	graph  *analyze.TypeGraph
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config GeneratorConfig) *Generator {
	return &Generator{config: config}
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Filename is the name of the file (e.g., "post_presenter.go").
	Filename string
	// Content is the formatted Go source code.
	Content []byte
}

// Generate generates one file per presenter plus the names file. graph is
// optional: without it every slot is typed as any.
func (g *Generator) Generate(f *mapping.File, graph *analyze.TypeGraph) ([]GeneratedFile, error) {
	if err := mapping.Validate(f).Error(); err != nil {
		return nil, fmt.Errorf("invalid declarations: %w", err)
	}

	g.graph = graph

	pkg := g.packageName(f)
	names := &namesData{PackageName: pkg}
	seen := map[string]string{NamesFilename: "names"}

	var files []GeneratedFile

	for i := range f.Presenters {
		p := &f.Presenters[i]

		data, err := g.buildTemplateData(f, p, pkg)
		if err != nil {
			return nil, fmt.Errorf("generating %s: %w", p.Name, err)
		}

		if other, dup := seen[data.Filename]; dup {
			return nil, fmt.Errorf("generating %s: file %s is already used by %s", p.Name, data.Filename, other)
		}

		seen[data.Filename] = p.Name

		file, err := g.render(presenterTemplate, data.Filename, data)
		if err != nil {
			return nil, fmt.Errorf("generating %s: %w", p.Name, err)
		}

		files = append(files, *file)
		names.Presenters = append(names.Presenters, nameEntry{Const: data.TypeName + "Name", Name: p.Name})
	}

	file, err := g.render(namesTemplate, NamesFilename, names)
	if err != nil {
		return nil, fmt.Errorf("generating names: %w", err)
	}

	return append(files, *file), nil
}

func (g *Generator) packageName(f *mapping.File) string {
	if g.config.PackageName != "" {
		return g.config.PackageName
	}

	if f.Package != "" {
		return f.Package
	}

	return mapping.DefaultPackage
}

// render executes tmpl and formats the result.
func (g *Generator) render(tmpl *template.Template, filename string, data any) (*GeneratedFile, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		// Best-effort: the sidecar only helps debugging.
		if g.config.OutputDir != "" {
			_ = writeDebugUnformatted(g.config.OutputDir, filename, buf.Bytes())
		}

		return &GeneratedFile{
			Filename: filename,
			Content:  buf.Bytes(),
		}, fmt.Errorf("formatting code: %w (unformatted code returned)", err)
	}

	return &GeneratedFile{
		Filename: filename,
		Content:  formatted,
	}, nil
}

func filename(presenterName string) string {
	return match.SnakeName(presenterName) + ".go"
}

var presenterTemplate = template.Must(template.New("presenter").Parse(`// Code generated by presenter-gen. DO NOT EDIT.

package {{.PackageName}}

import (
{{range .Imports}}	{{if .Alias}}{{.Alias}} {{end}}"{{.Path}}"
{{end}})

// {{.TypeName}} is the typed form of the {{.Name}} presenter.
{{- range .Description}}
// {{.}}
{{- end}}
type {{.TypeName}} struct {
	*presenter.Instance
}

// {{.Constructor}} binds subjects to the {{.Name}} presenter of cat.
func {{.Constructor}}(cat *presenter.Catalog{{range .Params}}, {{.Name}} {{.Type}}{{end}}) *{{.TypeName}} {
	return &{{.TypeName}}{Instance: cat.MustLookup({{.NameConst}}).New({{range $i, $p := .Params}}{{if $i}}, {{end}}{{$p.Name}}{{end}})}
}
{{range .Accessors}}
// {{.Method}} returns the "{{.Field}}" field{{if .Note}}, {{.Note}}{{end}}.
func (p *{{$.TypeName}}) {{.Method}}() (any, error) {
	return p.Value("{{.Field}}")
}
{{end}}`))

var namesTemplate = template.Must(template.New("names").Parse(`// Code generated by presenter-gen. DO NOT EDIT.

package {{.PackageName}}

// Presenter names as declared.
const (
{{range .Presenters}}	{{.Const}} = "{{.Name}}"
{{end}})

// Names lists every presenter in declaration order.
var Names = []string{
{{range .Presenters}}	{{.Const}},
{{end}}}
`))
