package plan

import (
	"presenter-generator/internal/diagnostic"
	"presenter-generator/internal/mapping"
)

// Config controls how declarations are proposed.
type Config struct {
	// Suffix is appended to type names to name presenters.
	Suffix string
	// Package is the package name written into the proposed file.
	Package string
	// Follow plans presenters for struct types reached through fields.
	Follow bool
	// Methods exposes exported methods that take no arguments and return a
	// value.
	Methods bool
}

// DefaultConfig returns the default planner configuration.
func DefaultConfig() Config {
	return Config{
		Suffix:  "Presenter",
		Package: mapping.DefaultPackage,
		Follow:  true,
	}
}

// Plan is a proposed declaration file with the diagnostics gathered while
// building it.
type Plan struct {
	File        *mapping.File
	Diagnostics *diagnostic.Diagnostics
}
