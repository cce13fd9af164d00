// Package match relates presenter symbols to Go identifiers.
//
// Presenter declarations name attributes as snake_case symbols ("user_name",
// "created_at"), while Go subjects expose them as exported methods, struct
// fields or map keys ("UserName", "CreatedAt", "createdAt"). The package
// normalizes both sides into a common form and suggests close names when a
// reference cannot be resolved.
//
// Key functions:
//   - NormalizeIdent: folds an identifier for comparison
//   - SameIdent: reports whether two identifiers denote the same name
//   - ExportedName: turns a symbol into its exported Go spelling
//   - Suggest: ranks known names by edit distance for diagnostics
package match
