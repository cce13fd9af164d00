package gen

import (
	"fmt"
	"go/token"
	"maps"
	"slices"
	"strings"
	"unicode"

	"presenter-generator/internal/mapping"
	"presenter-generator/internal/match"
)

// templateData holds all data needed for a presenter file.
type templateData struct {
	PackageName string
	Filename    string
	Imports     []importSpec
	Name        string
	TypeName    string
	NameConst   string
	Constructor string
	Description []string
	Params      []paramData
	Accessors   []accessorData
}

// paramData is one constructor parameter, bound to a slot.
type paramData struct {
	Slot string
	Name string
	Type string
}

// accessorData is one generated field accessor.
type accessorData struct {
	Field  string
	Method string
	Note   string
}

// namesData holds the data of the names file.
type namesData struct {
	PackageName string
	Presenters  []nameEntry
}

type nameEntry struct {
	Const string
	Name  string
}

// instanceMethods are promoted from *presenter.Instance and may not be
// shadowed by accessors.
var instanceMethods = map[string]bool{
	"Instance":    true,
	"Type":        true,
	"Is":          true,
	"Subject":     true,
	"Slot":        true,
	"Value":       true,
	"RespondsTo":  true,
	"Send":        true,
	"ToMap":       true,
	"ToJSON":      true,
	"MarshalJSON": true,
	"MarshalYAML": true,
}

// buildTemplateData constructs the template data of one presenter.
func (g *Generator) buildTemplateData(f *mapping.File, p *mapping.Presenter, pkg string) (*templateData, error) {
	typeName := match.ExportedName(p.Name)
	if !token.IsIdentifier(typeName) {
		return nil, fmt.Errorf("presenter name %q is not a Go identifier", p.Name)
	}

	data := &templateData{
		PackageName: pkg,
		Filename:    filename(p.Name),
		Name:        p.Name,
		TypeName:    typeName,
		NameConst:   typeName + "Name",
		Constructor: "New" + typeName,
	}

	if g.config.GenerateComments && p.Description != "" {
		data.Description = strings.Split(strings.TrimSpace(p.Description), "\n")
	}

	imports := map[string]importSpec{RuntimeImport: {Path: RuntimeImport}}

	data.Params = g.buildParams(f, p, imports)

	accessors, err := buildAccessors(f, p)
	if err != nil {
		return nil, err
	}

	data.Accessors = accessors

	for _, path := range slices.Sorted(maps.Keys(imports)) {
		data.Imports = append(data.Imports, imports[path])
	}

	return data, nil
}

// buildParams returns one parameter per slot, typed from subject_types when
// the type graph knows them.
func (g *Generator) buildParams(f *mapping.File, p *mapping.Presenter, imports map[string]importSpec) []paramData {
	types := f.SubjectTypes(p)
	slots := f.Slots(p)

	params := make([]paramData, 0, len(slots))
	used := map[string]bool{"cat": true}

	for _, slot := range slots {
		name := paramName(slot)
		for used[name] {
			name += "Subject"
		}

		used[name] = true

		params = append(params, paramData{
			Slot: slot,
			Name: name,
			Type: g.subjectType(types[slot], imports),
		})
	}

	return params
}

func buildAccessors(f *mapping.File, p *mapping.Presenter) ([]accessorData, error) {
	specs := f.FieldSpecs(p)

	accessors := make([]accessorData, 0, len(specs))
	owners := make(map[string]string, len(specs))

	for _, spec := range specs {
		method := match.ExportedName(spec.Name)
		if instanceMethods[method] {
			method += "Field"
		}

		if !token.IsIdentifier(method) {
			return nil, fmt.Errorf("field %q has no Go accessor name", spec.Name)
		}

		if other, dup := owners[method]; dup {
			return nil, fmt.Errorf("fields %q and %q both map to accessor %s", other, spec.Name, method)
		}

		owners[method] = spec.Name

		accessors = append(accessors, accessorData{
			Field:  spec.Name,
			Method: method,
			Note:   fieldNote(spec),
		})
	}

	return accessors, nil
}

func fieldNote(spec mapping.Field) string {
	switch {
	case spec.Presenter != "":
		return "presented by " + spec.Presenter
	case spec.Wrapped:
		return "read through a wrapper presenter"
	case spec.Serializable:
		return "computed by a hand-written method"
	default:
		return ""
	}
}

// paramName returns the lowerCamel spelling of a slot, avoiding keywords.
func paramName(slot string) string {
	exported := match.ExportedName(slot)
	if exported == "" {
		return "subject"
	}

	tokens := match.TokenizeIdent(slot)

	var name string
	if first := tokens[0]; strings.ToUpper(first) == exported[:len(first)] && len(first) > 1 {
		// leading initialism: "url_path" -> "urlPath"
		name = first + exported[len(first):]
	} else {
		runes := []rune(exported)
		runes[0] = unicode.ToLower(runes[0])
		name = string(runes)
	}

	if token.IsKeyword(name) || !token.IsIdentifier(name) {
		return name + "Subject"
	}

	return name
}
