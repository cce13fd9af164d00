package mapping

import (
	"slices"

	"presenter-generator/internal/common"
)

// File represents the root of a YAML presenter declaration file.
type File struct {
	// Version of the declaration schema (for future compatibility).
	Version string `yaml:"version,omitempty"`

	// Package is the Go package name used for generated accessors.
	Package string `yaml:"package,omitempty"`

	// Presenters are the declared presenter types, in declaration order.
	Presenters []Presenter `yaml:"presenters"`
}

// Presenter declares one presenter type.
type Presenter struct {
	// Name of the presenter type, unique within the file.
	Name string `yaml:"name"`

	// Extends names the parent presenter. The child inherits its slots,
	// flags, methods and registry.
	Extends string `yaml:"extends,omitempty"`

	// Subjects lists the slot names. Empty means the default "subject" slot
	// (or the parent's slots for a child).
	Subjects StringOrArray `yaml:"subjects,omitempty"`

	// SubjectTypes maps slot names to Go types ("blog.Post" or a full import
	// path). Only used for static checks and generated docs.
	SubjectTypes map[string]string `yaml:"subject_types,omitempty"`

	// SuppressPrefixes drops container prefixes from output names.
	SuppressPrefixes bool `yaml:"suppress_prefixes,omitempty"`

	// ExposeAll makes the presenter forward unknown names to its subject.
	ExposeAll bool `yaml:"expose_all,omitempty"`

	// Expose lists the attribute declarations in order.
	Expose []Expose `yaml:"expose,omitempty"`

	// Methods names hand-written methods bound from the method registry.
	Methods StringOrArray `yaml:"methods,omitempty"`

	// Serializable lists names that only appear in serialized output.
	Serializable StringOrArray `yaml:"serializable,omitempty"`

	// Delegate forwards method names to a registered provider.
	Delegate []Delegation `yaml:"delegate,omitempty"`

	// Description is copied into generated documentation.
	Description string `yaml:"description,omitempty"`
}

// Expose declares one or more attributes sharing the same options.
type Expose struct {
	// Attrs are the attribute names read from the container.
	Attrs StringOrArray `yaml:"attrs"`

	// With names the container: a slot or a member of the primary subject.
	With string `yaml:"with,omitempty"`

	// As renames a single attribute.
	As string `yaml:"as,omitempty"`

	// Prefix forces (true) or drops (false) the container prefix.
	Prefix *bool `yaml:"prefix,omitempty"`

	// Presenter decorates non-blank values with the named presenter.
	Presenter string `yaml:"presenter,omitempty"`

	// Wrapper reads the attributes through a presenter around the container.
	Wrapper *Wrapper `yaml:"wrapper,omitempty"`
}

// Wrapper selects the presenter wrapping a container. Either Presenter is
// fixed, or Switch names an attribute whose value picks one of Cases.
type Wrapper struct {
	Presenter string            `yaml:"presenter,omitempty"`
	Switch    string            `yaml:"switch,omitempty"`
	Cases     map[string]string `yaml:"cases,omitempty"`
	Default   string            `yaml:"default,omitempty"`
}

// Presenters returns every presenter name the wrapper may select, sorted.
func (w *Wrapper) Presenters() []string {
	var names []string

	if w.Presenter != "" {
		names = append(names, w.Presenter)
	}

	for _, name := range w.Cases {
		names = append(names, name)
	}

	if w.Default != "" {
		names = append(names, w.Default)
	}

	slices.Sort(names)

	return slices.Compact(names)
}

// Delegation forwards Methods to the provider registered as To.
type Delegation struct {
	To      string        `yaml:"to"`
	Methods StringOrArray `yaml:"methods"`
}

// StringOrArray represents a value that can be either a single string or an array of strings.
// YAML: "name" or ["name", "email"].
type StringOrArray []string

// IsEmpty returns true if the array is empty.
func (s StringOrArray) IsEmpty() bool {
	return common.IsEmpty(s)
}

// IsMultiple returns true if the array has more than one element.
func (s StringOrArray) IsMultiple() bool {
	return common.IsMultiple(s)
}

// Contains returns true if the array contains the given string.
func (s StringOrArray) Contains(str string) bool {
	return slices.Contains(s, str)
}
