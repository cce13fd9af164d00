package analyze

import (
	"cmp"
	"slices"
	"strings"
)

// Resolve resolves a type reference like:
// - "blog.Post" (short)
// - "presenter-generator/examples/blog.Post" (full)
// - "Post" (name only)
// - any of the above prefixed with "*".
func (g *TypeGraph) Resolve(ref string) *TypeInfo {
	if g == nil {
		return nil
	}

	ref = strings.TrimPrefix(strings.TrimSpace(ref), "*")

	// Name-only: best-effort match by type name.
	if !strings.Contains(ref, ".") {
		if ref == "" {
			return nil
		}

		for _, id := range g.sortedIDs() {
			if id.Name == ref {
				return g.Types[id]
			}
		}

		return nil
	}

	lastDot := strings.LastIndex(ref, ".")
	pkgStr := ref[:lastDot]

	name := ref[lastDot+1:]
	if pkgStr == "" || name == "" {
		return nil
	}

	// 1) exact match (for fully qualified import path)
	if t := g.GetType(TypeID{PkgPath: pkgStr, Name: name}); t != nil {
		return t
	}

	// 2) suffix match (for short forms like "blog.Post")
	for _, id := range g.sortedIDs() {
		if id.Name != name {
			continue
		}

		if id.PkgPath == pkgStr || strings.HasSuffix(id.PkgPath, "/"+pkgStr) {
			return g.Types[id]
		}
	}

	return nil
}

func (g *TypeGraph) sortedIDs() []TypeID {
	ids := make([]TypeID, 0, len(g.Types))
	for id := range g.Types {
		ids = append(ids, id)
	}

	slices.SortFunc(ids, func(a, b TypeID) int {
		return cmp.Compare(a.String(), b.String())
	})

	return ids
}
