// Package store provides SQLite-backed storage for conformance runs.
//
// The store is an append-only ledger with:
//   - Runs: one suite evaluated against one backend, with its summary
//   - Verdicts: the classified result of each operation in a run
//
// # Ordering
//
// Runs carry a logical seq assigned at insert time; listing and drift use
// seq, never the recorded wall time. Verdicts keep the order the runner
// produced them in.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
