package mapping

import (
	"fmt"
	"sort"

	"presenter-generator/internal/analyze"
	"presenter-generator/internal/diagnostic"
	"presenter-generator/internal/match"
)

// CheckSubjects checks exposed attributes against the Go types declared in
// subject_types. It reports unresolvable types as errors and unknown
// members as warnings, since subjects may still answer them at runtime
// (maps, interfaces, Messenger implementations). Attributes read through a
// wrapper or a hand-written container method are not checked.
func CheckSubjects(f *File, graph *analyze.TypeGraph) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if f == nil || graph == nil {
		res.AddError("graph_is_nil", "declaration file or type graph is nil", "", "")
		return res
	}

	for i := range f.Presenters {
		p := &f.Presenters[i]

		types := f.SubjectTypes(p)
		if len(types) == 0 {
			res.AddInfo("unchecked_presenter", "no subject_types declared", p.Name, "")
			continue
		}

		resolved := make(map[string]*analyze.TypeInfo, len(types))

		for _, slot := range sortedKeys(types) {
			ref := types[slot]

			t := graph.Resolve(ref)
			if t == nil {
				res.AddError("subject_type_not_found", fmt.Sprintf("type %q not found", ref), p.Name, slot)
				continue
			}

			resolved[slot] = t
		}

		c := &subjectChecker{res: res, file: f, p: p, slots: f.Slots(p), types: resolved}
		for j := range p.Expose {
			c.check(&p.Expose[j])
		}
	}

	return res
}

type subjectChecker struct {
	res   *diagnostic.Diagnostics
	file  *File
	p     *Presenter
	slots []string
	types map[string]*analyze.TypeInfo
}

func (c *subjectChecker) check(e *Expose) {
	if e.Wrapper != nil {
		return
	}

	container, label, ok := c.container(e.With)
	if !ok {
		return
	}

	if container.Opaque() {
		return
	}

	for _, attr := range e.Attrs {
		if _, found := container.Member(attr); found {
			continue
		}

		c.res.AddWarning("unknown_member",
			fmt.Sprintf("%s has no member %q", label, attr),
			c.p.Name, attr, suggestMembers(attr, container)...)
	}
}

// container returns the static type the attributes are read from, following
// the runtime rules: the primary slot, a named slot, or a member of the
// primary subject.
func (c *subjectChecker) container(with string) (*analyze.TypeInfo, string, bool) {
	primary := c.slots[0]

	if with == "" {
		t, ok := c.types[primary]
		return t, typeLabel(t, primary), ok
	}

	if c.hasMethod(with) {
		return nil, "", false
	}

	for _, s := range c.slots {
		if s == with {
			t, ok := c.types[s]
			return t, typeLabel(t, s), ok
		}
	}

	base, ok := c.types[primary]
	if !ok || base.Opaque() {
		return nil, "", false
	}

	m, found := base.Member(with)
	if !found {
		c.res.AddWarning("unknown_container",
			fmt.Sprintf("%s has no member %q", typeLabel(base, primary), with),
			c.p.Name, with, suggestMembers(with, base)...)

		return nil, "", false
	}

	if m.Type == nil {
		return nil, "", false
	}

	path := analyze.NewTypePath(typeLabel(base, primary)).Member(m)

	return m.Type, path.String(), true
}

func (c *subjectChecker) hasMethod(name string) bool {
	seen := make(map[string]bool)

	for cur := c.p; cur != nil && !seen[cur.Name]; {
		if cur.Methods.Contains(name) {
			return true
		}

		seen[cur.Name] = true
		cur, _ = c.file.Lookup(cur.Extends)
	}

	return false
}

func typeLabel(t *analyze.TypeInfo, fallback string) string {
	if t == nil {
		return fallback
	}

	return analyze.NewTypeStringer().TypeString(t)
}

// suggestMembers proposes members of t in declaration spelling.
func suggestMembers(name string, t *analyze.TypeInfo) []string {
	members := t.MemberNames()

	candidates := make([]string, len(members))
	for i, m := range members {
		candidates[i] = match.SnakeName(m)
	}

	return match.Suggest(name, candidates, suggestionLimit)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}
