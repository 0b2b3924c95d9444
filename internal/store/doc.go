// Package store provides the SQLite journal for quantix.
//
// The journal holds two kinds of records:
//   - Values: numbers and expression trees keyed by their content ID
//   - Runs: measurement runs and one measurement row per shot
//
// Values are written with ON CONFLICT DO NOTHING, so storing the same number
// or tree twice is a no-op. Runs are ordered by a logical seq assigned on
// insert, never by wall-clock time. Measurements are ordered by shot.
//
// FindRuns selects runs with a Filter compiled to a parameterized WHERE clause.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL
//   - busy_timeout=5000
//   - foreign_keys=ON: measurements must reference an existing run
package store
