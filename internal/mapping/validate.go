package mapping

import (
	"fmt"
	"strings"

	"presenter-generator/internal/diagnostic"
	"presenter-generator/internal/match"
)

// suggestionLimit caps "did you mean" candidates per diagnostic.
const suggestionLimit = 3

// Validate checks a declaration file structurally: names, references
// between presenters, and option combinations. It does not need the
// subject types; see CheckSubjects for that.
func Validate(f *File) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if f == nil {
		res.AddError("file_is_nil", "declaration file is nil", "", "")
		return res
	}

	if f.Version != CurrentVersion {
		res.AddError("unsupported_version", fmt.Sprintf("unsupported schema version %q", f.Version), "", "")
	}

	names := f.Names()
	seen := make(map[string]struct{}, len(names))

	for i := range f.Presenters {
		p := &f.Presenters[i]

		if strings.TrimSpace(p.Name) == "" {
			res.AddError("missing_presenter_name", fmt.Sprintf("presenter #%d has no name", i+1), "", "")
			continue
		}

		if _, dup := seen[p.Name]; dup {
			res.AddError("duplicate_presenter", fmt.Sprintf("presenter %q declared twice", p.Name), p.Name, "")
			continue
		}

		seen[p.Name] = struct{}{}

		validatePresenter(res, f, p, names)
	}

	if _, err := Order(f); err != nil {
		res.AddError("extends_cycle", err.Error(), "", "")
	}

	return res
}

func validatePresenter(res *diagnostic.Diagnostics, f *File, p *Presenter, names []string) {
	if p.Extends != "" {
		validateRef(res, p.Name, "", "unknown_parent", "parent", p.Extends, names)
	}

	validateSubjects(res, f, p)

	exposed := make(map[string]struct{})

	for i := range p.Expose {
		validateExpose(res, f, p, &p.Expose[i], exposed, names)
	}

	for _, name := range p.Serializable {
		if strings.TrimSpace(name) == "" {
			res.AddError("blank_attr", "serializable name is blank", p.Name, "")
		}
	}

	for _, m := range p.Methods {
		if strings.TrimSpace(m) == "" {
			res.AddError("blank_method", "method name is blank", p.Name, "")
		}
	}

	for _, d := range p.Delegate {
		if d.To == "" {
			res.AddError("missing_provider", "delegation without provider", p.Name, "")
		}

		if d.Methods.IsEmpty() {
			res.AddError("missing_delegated_methods", fmt.Sprintf("delegation to %q without methods", d.To), p.Name, "")
		}
	}
}

func validateSubjects(res *diagnostic.Diagnostics, f *File, p *Presenter) {
	seen := make(map[string]struct{})

	for _, s := range p.Subjects {
		if strings.TrimSpace(s) == "" {
			res.AddError("blank_subject", "subject name is blank", p.Name, "")
			continue
		}

		if _, dup := seen[s]; dup {
			res.AddError("duplicate_subject", fmt.Sprintf("subject %q declared twice", s), p.Name, "")
		}

		seen[s] = struct{}{}
	}

	slots := make(map[string]struct{})
	for _, s := range f.Slots(p) {
		slots[s] = struct{}{}
	}

	for slot := range p.SubjectTypes {
		if _, ok := slots[slot]; !ok {
			res.AddError("unknown_subject_slot",
				fmt.Sprintf("subject_types names slot %q which is not a subject", slot),
				p.Name, "", match.Suggest(slot, f.Slots(p), suggestionLimit)...)
		}
	}
}

func validateExpose(
	res *diagnostic.Diagnostics,
	f *File,
	p *Presenter,
	e *Expose,
	exposed map[string]struct{},
	names []string,
) {
	label := strings.Join(e.Attrs, ", ")

	if e.Attrs.IsEmpty() {
		res.AddError("missing_attrs", "expose without attrs", p.Name, "")
		return
	}

	for _, a := range e.Attrs {
		if strings.TrimSpace(a) == "" {
			res.AddError("blank_attr", "attribute name is blank", p.Name, label)
			return
		}
	}

	if e.As != "" && e.Attrs.IsMultiple() {
		res.AddError("alias_multiple_attrs", "as applies to a single attribute", p.Name, label)
	}

	if e.Presenter != "" {
		validateRef(res, p.Name, label, "unknown_presenter", "presenter", e.Presenter, names)
	}

	if e.Wrapper != nil {
		validateWrapper(res, p.Name, label, e, names)
	}

	for _, out := range outputNames(e, f.SuppressesPrefixes(p)) {
		if _, dup := exposed[out]; dup {
			res.AddWarning("attribute_overwritten",
				fmt.Sprintf("%q is exposed again and replaces the earlier declaration", out), p.Name, out)
		}

		exposed[out] = struct{}{}
	}
}

func validateWrapper(res *diagnostic.Diagnostics, presenterName, label string, e *Expose, names []string) {
	w := e.Wrapper

	if e.With == "" {
		res.AddError("wrapper_without_container", "wrapper requires with", presenterName, label)
	}

	if e.Presenter != "" {
		res.AddWarning("wrapper_with_presenter",
			"presenter decorates the value read through the wrapper", presenterName, label)
	}

	switch {
	case w.Presenter != "" && (w.Switch != "" || len(w.Cases) > 0):
		res.AddError("wrapper_conflict", "wrapper sets both presenter and switch", presenterName, label)
	case w.Presenter == "" && w.Switch == "" && w.Default == "":
		res.AddError("wrapper_empty", "wrapper selects no presenter", presenterName, label)
	case len(w.Cases) > 0 && w.Switch == "":
		res.AddError("wrapper_cases_without_switch", "wrapper cases need a switch attribute", presenterName, label)
	}

	for _, ref := range w.Presenters() {
		validateRef(res, presenterName, label, "unknown_presenter", "wrapper presenter", ref, names)
	}
}

func validateRef(res *diagnostic.Diagnostics, presenterName, attr, code, what, ref string, names []string) {
	for _, n := range names {
		if n == ref {
			return
		}
	}

	res.AddError(code, fmt.Sprintf("%s %q is not declared", what, ref), presenterName, attr,
		match.Suggest(ref, names, suggestionLimit)...)
}

// outputNames mirrors the presenter output-name rule for diagnostics.
func outputNames(e *Expose, suppress bool) []string {
	prefix := !suppress
	if e.Prefix != nil {
		prefix = *e.Prefix
	}

	out := make([]string, 0, len(e.Attrs))

	for _, a := range e.Attrs {
		field := a
		if e.As != "" {
			field = e.As
		}

		if prefix && e.With != "" {
			field = e.With + "_" + field
		}

		out = append(out, field)
	}

	return out
}
