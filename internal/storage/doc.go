// Package storage persists assembled opportunity records to disk.
//
// Each record is written twice: as pretty-printed JSON of the pruned keyed
// mapping, and as a one-row CSV with the full fixed field order (absent
// fields left empty, lists joined with "|").
package storage
