package analyze

import (
	"go/types"
	"reflect"
	"sort"

	"presenter-generator/internal/common"
)

// TypeID uniquely identifies a type by its package path and name.
type TypeID struct {
	PkgPath string // e.g., "presenter-generator/examples/blog"
	Name    string // e.g., "Post"
}

// String returns a human-readable representation of the TypeID.
func (t TypeID) String() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return t.PkgPath + "." + t.Name
}

// TypeKind represents the kind of a type.
type TypeKind int

const (
	TypeKindUnknown   TypeKind = iota
	TypeKindBasic              // int, string, bool, etc.
	TypeKindStruct             // struct type
	TypeKindPointer            // pointer to another type
	TypeKindSlice              // slice of another type
	TypeKindArray              // array of another type
	TypeKindMap                // map type
	TypeKindInterface          // interface type
	TypeKindAlias              // type alias (named type wrapping another)
	TypeKindExternal           // external/opaque type (e.g., time.Time)
)

// String returns a human-readable representation of the TypeKind.
func (k TypeKind) String() string {
	switch k {
	case TypeKindBasic:
		return "basic"
	case TypeKindStruct:
		return "struct"
	case TypeKindPointer:
		return "pointer"
	case TypeKindSlice:
		return "slice"
	case TypeKindArray:
		return "array"
	case TypeKindMap:
		return "map"
	case TypeKindInterface:
		return "interface"
	case TypeKindAlias:
		return "alias"
	case TypeKindExternal:
		return "external"
	default:
		return common.UnknownStr
	}
}

// TypeInfo describes a Go type in the type graph.
type TypeInfo struct {
	ID         TypeID       // Unique identifier (empty for unnamed types like *T or []T)
	Kind       TypeKind     // Kind of type
	Underlying *TypeInfo    // For named types, the underlying type
	ElemType   *TypeInfo    // For pointers, slices, arrays and maps, the element type
	KeyType    *TypeInfo    // For maps, the key type
	Fields     []FieldInfo  // For structs, the list of fields
	Methods    []MethodInfo // Exported methods of the pointer method set
	GoType     types.Type   // The original go/types.Type
}

// IsNamed returns true if this type has a name (TypeID is set).
func (t *TypeInfo) IsNamed() bool {
	return t.ID.Name != ""
}

// Deref follows pointers and returns the pointed-to type.
func (t *TypeInfo) Deref() *TypeInfo {
	for t != nil && t.Kind == TypeKindPointer {
		t = t.ElemType
	}

	return t
}

// FieldInfo describes a struct field.
type FieldInfo struct {
	Name     string            // Go field name
	Exported bool              // Whether the field is exported
	Type     *TypeInfo         // Field type
	Tag      reflect.StructTag // Raw struct tag
	Embedded bool              // Whether the field is embedded (anonymous)
	Index    int               // Field index in the struct
}

// JSONName returns the JSON tag name if present, otherwise the field name.
func (f *FieldInfo) JSONName() string {
	if name := f.TagName("json"); name != "" {
		return name
	}

	return f.Name
}

// TagName returns the name part of the tag under key, or "".
func (f *FieldInfo) TagName(key string) string {
	tag := f.Tag.Get(key)
	if tag == "" || tag == "-" {
		return ""
	}

	for i := range len(tag) {
		if tag[i] == ',' {
			return tag[:i]
		}
	}

	return tag
}

// HasTag returns true if the field has the specified tag.
func (f *FieldInfo) HasTag(key string) bool {
	return f.Tag.Get(key) != ""
}

// GetTag returns the value of the specified tag.
func (f *FieldInfo) GetTag(key string) string {
	return f.Tag.Get(key)
}

// MethodInfo describes an exported method.
type MethodInfo struct {
	Name     string      // Go method name
	Params   int         // Parameter count, variadic counted once
	Variadic bool        // Whether the last parameter is variadic
	Result   *TypeInfo   // First result, nil for none
	Errors   bool        // Whether the last result is error
	Pointer  bool        // Whether the receiver is a pointer
	GoType   *types.Func // The original function object
}

// MemberNames returns every field and method name of t (after following
// pointers and aliases), sorted. Promoted fields of embedded structs are
// included.
func (t *TypeInfo) MemberNames() []string {
	seen := make(map[string]struct{})

	collectMembers(t, seen, make(map[*TypeInfo]bool))

	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}

	sort.Strings(names)

	return names
}

func collectMembers(t *TypeInfo, seen map[string]struct{}, visited map[*TypeInfo]bool) {
	t = t.Deref()
	if t == nil || visited[t] {
		return
	}

	visited[t] = true

	for _, m := range t.Methods {
		seen[m.Name] = struct{}{}
	}

	if t.Kind == TypeKindAlias {
		collectMembers(t.Underlying, seen, visited)
		return
	}

	for i := range t.Fields {
		f := &t.Fields[i]
		if f.Embedded {
			collectMembers(f.Type, seen, visited)
			continue
		}

		seen[f.Name] = struct{}{}
	}
}

// TypeGraph holds all analyzed types from loaded packages.
type TypeGraph struct {
	// Types maps TypeID to TypeInfo for all named types.
	Types map[TypeID]*TypeInfo
	// Packages maps package paths to their package info.
	Packages map[string]*PackageInfo
}

// NewTypeGraph creates a new empty TypeGraph.
func NewTypeGraph() *TypeGraph {
	return &TypeGraph{
		Types:    make(map[TypeID]*TypeInfo),
		Packages: make(map[string]*PackageInfo),
	}
}

// GetType returns the TypeInfo for a given TypeID, or nil if not found.
func (g *TypeGraph) GetType(id TypeID) *TypeInfo {
	return g.Types[id]
}

// PackageInfo holds information about a loaded package.
type PackageInfo struct {
	Path  string   // Import path
	Name  string   // Package name
	Types []TypeID // Named types defined in this package
}
