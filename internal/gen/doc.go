// Package gen generates typed Go wrappers for declared presenters.
//
// Generation uses text/template + go/format. For every presenter in a
// declaration file it writes one file holding:
//   - a struct embedding *presenter.Instance
//   - a constructor taking the slots in order, typed when the subject
//     types are known
//   - one accessor per serialized field
//
// A shared file lists the presenter names as constants.
package gen
