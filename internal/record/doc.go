// Package record defines the core data model for the weekly attendance
// pipeline: consolidated per-student snapshots, aged ledger entries, and the
// merged result record that the pipeline stages enrich in sequence.
//
// Records use closed enumerations for trend and category labels so that
// exhaustiveness is checkable, and canonical snake_case column names so that
// every tabular surface (ledger, reports) agrees on field identity.
package record
