package mapping

import (
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"presenter-generator/presenter"
)

const (
	// CurrentVersion is the schema version applied when a file omits it.
	CurrentVersion = "1"

	// DefaultPackage is the generated package name when a file omits it.
	DefaultPackage = "presenters"

	// DefaultSlot mirrors presenter.DefaultSlot for declarations without subjects.
	DefaultSlot = presenter.DefaultSlot
)

// LoadFile loads and parses a YAML declaration file from the given path.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read declaration file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a File.
func Parse(data []byte) (*File, error) {
	var f File

	err := yaml.Unmarshal(data, &f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse declaration YAML: %w", err)
	}

	applyDefaults(&f)

	return &f, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(f *File) {
	if f.Version == "" {
		f.Version = CurrentVersion
	}

	if f.Package == "" {
		f.Package = DefaultPackage
	}
}

// Marshal serializes a File to YAML.
func Marshal(f *File) ([]byte, error) {
	return yaml.Marshal(f)
}

// WriteFile writes a File to the given path.
func WriteFile(f *File, path string) error {
	data, err := Marshal(f)
	if err != nil {
		return fmt.Errorf("failed to marshal declarations: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write declaration file %s: %w", path, err)
	}

	return nil
}

// Lookup returns the presenter declared as name.
func (f *File) Lookup(name string) (*Presenter, bool) {
	for i := range f.Presenters {
		if f.Presenters[i].Name == name {
			return &f.Presenters[i], true
		}
	}

	return nil, false
}

// Names returns the declared presenter names in order.
func (f *File) Names() []string {
	names := make([]string, 0, len(f.Presenters))
	for i := range f.Presenters {
		names = append(names, f.Presenters[i].Name)
	}

	return names
}

// Slots returns the effective slot names of p: its own subjects, else the
// nearest ancestor's, else the default slot.
func (f *File) Slots(p *Presenter) []string {
	seen := make(map[string]bool)

	for cur := p; cur != nil && !seen[cur.Name]; {
		if !cur.Subjects.IsEmpty() {
			return slices.Clone(cur.Subjects)
		}

		seen[cur.Name] = true

		if cur.Extends == "" {
			break
		}

		cur, _ = f.Lookup(cur.Extends)
	}

	return []string{DefaultSlot}
}

// SuppressesPrefixes reports whether p, or any ancestor, suppresses
// container prefixes.
func (f *File) SuppressesPrefixes(p *Presenter) bool {
	seen := make(map[string]bool)

	for cur := p; cur != nil && !seen[cur.Name]; {
		if cur.SuppressPrefixes {
			return true
		}

		seen[cur.Name] = true

		if cur.Extends == "" {
			break
		}

		cur, _ = f.Lookup(cur.Extends)
	}

	return false
}

// Field describes one output field of a presenter.
type Field struct {
	// Name is the output name.
	Name string `yaml:"name" json:"name"`
	// DeclaredBy is the presenter whose declaration produced the field.
	DeclaredBy string `yaml:"declared_by" json:"declared_by"`
	// Presenter names the nested presenter, if any.
	Presenter string `yaml:"presenter,omitempty" json:"presenter,omitempty"`
	// Wrapped is true for fields read through a wrapper presenter.
	Wrapped bool `yaml:"wrapped,omitempty" json:"wrapped,omitempty"`
	// Serializable is true for fields backed by a hand-written method.
	Serializable bool `yaml:"serializable,omitempty" json:"serializable,omitempty"`
}

// Fields returns the output field names p serializes, in registry order.
func (f *File) Fields(p *Presenter) []string {
	specs := f.FieldSpecs(p)

	names := make([]string, len(specs))
	for i := range specs {
		names[i] = specs[i].Name
	}

	return names
}

// FieldSpecs returns the output fields of p in registry order: inherited
// fields first, then serializable names, then exposed attributes. A
// redeclared name keeps its first position and takes the latest settings.
func (f *File) FieldSpecs(p *Presenter) []Field {
	var chain []*Presenter

	seen := make(map[string]bool)

	for cur := p; cur != nil && !seen[cur.Name]; {
		chain = append(chain, cur)
		seen[cur.Name] = true

		if cur.Extends == "" {
			break
		}

		cur, _ = f.Lookup(cur.Extends)
	}

	var fields []Field

	index := make(map[string]int)
	set := func(field Field) {
		if i, ok := index[field.Name]; ok {
			fields[i] = field
			return
		}

		index[field.Name] = len(fields)
		fields = append(fields, field)
	}

	for i := len(chain) - 1; i >= 0; i-- {
		cur := chain[i]

		for _, name := range cur.Serializable {
			set(Field{Name: name, DeclaredBy: cur.Name, Serializable: true})
		}

		suppress := f.SuppressesPrefixes(cur)
		for j := range cur.Expose {
			e := &cur.Expose[j]

			for _, name := range outputNames(e, suppress) {
				set(Field{Name: name, DeclaredBy: cur.Name, Presenter: e.Presenter, Wrapped: e.Wrapper != nil})
			}
		}
	}

	return fields
}

// SubjectTypes merges subject_types along the extends chain, nearest first.
func (f *File) SubjectTypes(p *Presenter) map[string]string {
	out := make(map[string]string)
	seen := make(map[string]bool)

	for cur := p; cur != nil && !seen[cur.Name]; {
		for slot, ref := range cur.SubjectTypes {
			if _, ok := out[slot]; !ok {
				out[slot] = ref
			}
		}

		seen[cur.Name] = true

		if cur.Extends == "" {
			break
		}

		cur, _ = f.Lookup(cur.Extends)
	}

	return out
}
