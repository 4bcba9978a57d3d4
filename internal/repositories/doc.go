// Package repositories implements SQLite persistence for cached playlist
// snapshots.
//
// [SnapshotRepository] stores a playlist's flattened pages so a session can
// resume without refetching, and records every splice reorder committed to
// the remote service for later inspection. Pages are reconstructed on load
// from the stored page size; track positions are stored explicitly and
// trusted as the source of truth.
package repositories
