// Package plan proposes presenter declarations from Go types.
//
// Planning pipeline:
//  1. Analyze packages → type graph
//  2. Resolve the requested root types
//  3. For each struct type, breadth first:
//     - expose every visible field under its tag or snake_case name
//     - route struct (and slice of struct) fields through the presenter
//     planned for that type, queueing it when following is enabled
//     - optionally expose zero-argument methods
//  4. Validate the proposal and emit diagnostics for what was skipped
//
// The result is a mapping.File meant for review before it is committed.
package plan
