package plan

import (
	"fmt"

	"presenter-generator/internal/analyze"
	"presenter-generator/internal/common"
	"presenter-generator/internal/diagnostic"
	"presenter-generator/internal/mapping"
	"presenter-generator/internal/match"
)

// Planner proposes declarations for types of a graph.
type Planner struct {
	graph  *analyze.TypeGraph
	config Config
}

// NewPlanner creates a new Planner.
func NewPlanner(graph *analyze.TypeGraph, config Config) *Planner {
	return &Planner{graph: graph, config: config}
}

// Suggest plans one presenter per root type and, when following, per struct
// type reachable from them. Roots are type references as accepted by
// analyze.TypeGraph.Resolve.
func (p *Planner) Suggest(refs ...string) (*Plan, error) {
	if p.graph == nil {
		return nil, fmt.Errorf("plan: type graph is nil")
	}

	diags := &diagnostic.Diagnostics{}

	s := &session{
		planner: p,
		diags:   diags,
		names:   make(map[analyze.TypeID]string),
	}

	for _, ref := range refs {
		t := p.graph.Resolve(ref)
		if t == nil {
			diags.AddError("type_not_found", fmt.Sprintf("type %q not found", ref), "", "")
			continue
		}

		if t.Kind != analyze.TypeKindStruct {
			diags.AddError("not_a_struct", fmt.Sprintf("type %s is a %s", t.ID, t.Kind), "", "")
			continue
		}

		s.enqueue(t)
	}

	if diags.HasErrors() {
		return &Plan{Diagnostics: diags}, diags.Error()
	}

	f := &mapping.File{Version: mapping.CurrentVersion, Package: p.config.Package}

	for len(s.queue) > 0 {
		t := s.queue[0]
		s.queue = s.queue[1:]

		f.Presenters = append(f.Presenters, s.presenter(t))
	}

	diags.Merge(*mapping.Validate(f))

	return &Plan{File: f, Diagnostics: diags}, diags.Error()
}

// session holds the state of one Suggest call.
type session struct {
	planner *Planner
	diags   *diagnostic.Diagnostics
	names   map[analyze.TypeID]string
	queue   []*analyze.TypeInfo
}

// enqueue plans t once and returns its presenter name.
func (s *session) enqueue(t *analyze.TypeInfo) string {
	if name, ok := s.names[t.ID]; ok {
		return name
	}

	name := t.ID.Name + s.planner.config.Suffix
	s.names[t.ID] = name
	s.queue = append(s.queue, t)

	return name
}

func (s *session) presenter(t *analyze.TypeInfo) mapping.Presenter {
	p := mapping.Presenter{
		Name: s.names[t.ID],
		SubjectTypes: map[string]string{
			mapping.DefaultSlot: common.PkgAlias(t.ID.PkgPath) + "." + t.ID.Name,
		},
	}

	var plain mapping.StringOrArray

	flush := func() {
		if len(plain) > 0 {
			p.Expose = append(p.Expose, mapping.Expose{Attrs: plain})
			plain = nil
		}
	}

	taken := make(map[string]bool)

	for _, f := range visibleFields(t) {
		attr := attrName(f)
		taken[match.NormalizeIdent(f.Name)] = true

		nested, ok := s.nestedPresenter(p.Name, attr, f.Type)
		if !ok {
			plain = append(plain, attr)
			continue
		}

		flush()
		p.Expose = append(p.Expose, mapping.Expose{Attrs: mapping.StringOrArray{attr}, Presenter: nested})
	}

	if s.planner.config.Methods {
		for i := range t.Methods {
			m := &t.Methods[i]
			if taken[match.NormalizeIdent(m.Name)] {
				continue
			}

			if m.Params > 0 || m.Result == nil {
				s.diags.AddInfo("method_skipped",
					fmt.Sprintf("%s takes arguments or returns no value", m.Name), p.Name, match.SnakeName(m.Name))

				continue
			}

			plain = append(plain, match.SnakeName(m.Name))
		}
	}

	flush()

	if len(p.Expose) == 0 {
		s.diags.AddWarning("nothing_to_expose", fmt.Sprintf("%s has no visible members", t.ID), p.Name, "")
	}

	return p
}

// nestedPresenter returns the presenter for a struct, or a sequence of
// structs, declared in the analyzed packages.
func (s *session) nestedPresenter(owner, attr string, t *analyze.TypeInfo) (string, bool) {
	t = t.Deref()
	if t != nil && (t.Kind == analyze.TypeKindSlice || t.Kind == analyze.TypeKindArray) {
		t = t.ElemType.Deref()
	}

	if t == nil || t.Kind != analyze.TypeKindStruct || !t.IsNamed() {
		return "", false
	}

	if _, ok := s.planner.graph.Packages[t.ID.PkgPath]; !ok {
		return "", false
	}

	if name, ok := s.names[t.ID]; ok {
		return name, true
	}

	if !s.planner.config.Follow {
		s.diags.AddInfo("not_followed",
			fmt.Sprintf("%s is exposed as is; plan it as a root to present it", t.ID), owner, attr)

		return "", false
	}

	return s.enqueue(t), true
}

// visibleFields returns exported fields in declaration order, with fields
// of embedded structs promoted in place. Fields tagged json:"-" are left
// out.
func visibleFields(t *analyze.TypeInfo) []*analyze.FieldInfo {
	var out []*analyze.FieldInfo

	seen := make(map[*analyze.TypeInfo]bool)

	var walk func(t *analyze.TypeInfo)
	walk = func(t *analyze.TypeInfo) {
		t = t.Deref()
		if t == nil || seen[t] {
			return
		}

		seen[t] = true

		for i := range t.Fields {
			f := &t.Fields[i]

			if f.Embedded {
				if inner := f.Type.Deref(); inner != nil && inner.Kind == analyze.TypeKindStruct {
					walk(inner)
					continue
				}
			}

			if !f.Exported || f.GetTag("json") == "-" {
				continue
			}

			out = append(out, f)
		}
	}

	walk(t)

	return out
}

// attrName is the name the runtime resolves f by: the presenter tag, the
// json tag, else the snake_case field name.
func attrName(f *analyze.FieldInfo) string {
	if name := f.TagName("presenter"); name != "" {
		return name
	}

	if name := f.TagName("json"); name != "" {
		return name
	}

	return match.SnakeName(f.Name)
}
