// Package engine implements the attendance pipeline stages: consolidating
// raw per-location rows into one snapshot per student, evaluating trend and
// threshold flags against the one- and two-weeks-back snapshots, merging the
// auxiliary demographic, probation, and medical-day datasets, and bucketing
// the final records.
//
// The pipeline is strictly sequential and single-writer: each stage mutates
// the shared ResultSet in a fixed order, so a given set of input tables
// always produces the same output.
package engine
