package gen

import (
	"presenter-generator/internal/analyze"
	"presenter-generator/internal/common"
)

// importSpec represents an import statement.
type importSpec struct {
	Alias string
	Path  string
}

// subjectType returns the parameter type of a slot declared as ref. Structs
// are taken by pointer, since their pointer method sets are what presenters
// read. Unknown references fall back to any.
func (g *Generator) subjectType(ref string, imports map[string]importSpec) string {
	if ref == "" || g.graph == nil {
		return common.InterfaceTypeStr
	}

	t := g.graph.Resolve(ref)
	if t == nil {
		return common.InterfaceTypeStr
	}

	s := g.typeRefString(t, imports)
	if t.Kind == analyze.TypeKindStruct {
		return "*" + s
	}

	return s
}

// getPkgName returns the package name for a given package path.
// It tries to look up the name from the type graph, falling back to the path base alias.
func (g *Generator) getPkgName(pkgPath string) string {
	if pkgPath == "" {
		return ""
	}

	if g.graph != nil {
		if pkgInfo, ok := g.graph.Packages[pkgPath]; ok {
			return pkgInfo.Name
		}
	}

	return common.PkgAlias(pkgPath)
}

// addImport adds an import to the imports map. The alias is only spelled
// out when the package name differs from the last path element.
func (g *Generator) addImport(imports map[string]importSpec, pkgPath string) {
	if pkgPath == "" {
		return
	}

	spec := importSpec{Path: pkgPath}
	if name := g.getPkgName(pkgPath); name != common.PkgAlias(pkgPath) {
		spec.Alias = name
	}

	imports[pkgPath] = spec
}

// typeRefString returns the string representation of a type for use in generated code.
func (g *Generator) typeRefString(t *analyze.TypeInfo, imports map[string]importSpec) string {
	if t == nil {
		return common.InterfaceTypeStr
	}

	if t.IsNamed() && t.ID.PkgPath != "" {
		if t.ID.PkgPath == g.config.PackagePath {
			return t.ID.Name
		}

		g.addImport(imports, t.ID.PkgPath)

		return g.getPkgName(t.ID.PkgPath) + "." + t.ID.Name
	}

	switch t.Kind {
	case analyze.TypeKindBasic:
		if t.GoType == nil {
			return t.ID.Name
		}

		return t.GoType.String()

	case analyze.TypeKindPointer:
		return "*" + g.typeRefString(t.ElemType, imports)

	case analyze.TypeKindSlice:
		return "[]" + g.typeRefString(t.ElemType, imports)

	case analyze.TypeKindMap:
		return "map[" + g.typeRefString(t.KeyType, imports) + "]" + g.typeRefString(t.ElemType, imports)

	default:
		return common.InterfaceTypeStr
	}
}
