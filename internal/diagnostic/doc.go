// Package diagnostic provides structured errors, warnings and notes produced
// while checking presenter declaration files.
//
// Key capabilities:
//   - Declaration errors that block building a catalog
//   - Warnings for overwritten attributes and unchecked subjects
//   - "Did you mean" suggestions for misspelled presenter and member names
package diagnostic
