// Package analyze provides package loading and type graph extraction.
//
// It uses golang.org/x/tools/go/packages with go/types to build an
// in-memory model of the subject types presenters read from, so that
// declaration files can be checked before anything runs.
//
// Key types:
//   - TypeID: package import path + type name
//   - TypeInfo: describes kind (struct/basic/alias/pointer/slice/map/...)
//   - FieldInfo: describes field name, type, tags, and embedding
//   - MethodInfo: describes an exported method of the pointer method set
//   - Member: a field, method or map key resolved the way presenters do
package analyze
