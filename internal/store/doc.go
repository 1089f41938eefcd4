// Package store provides SQLite-backed history of balance requests.
//
// Every CLI invocation and batch run writes one ir.Record per equation under
// its run ID. Records are append-only:
//   - UNIQUE(id, run_id) makes rewriting a record within a run idempotent
//   - seq is a logical clock; reads order by seq ASC, id ASC COLLATE BINARY
//   - coefficients are stored as canonical JSON arrays of decimal strings
//
// Record IDs are content addresses computed by ir.EquationID, so the same
// equation balanced in different runs shares an ID and can be compared by
// outcome hash.
package store
