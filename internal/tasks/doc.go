// Package tasks orchestrates playlist mutations against the remote service
// with real-time progress reporting.
//
// # Core Operations
//
// The [CommitEngine] interface defines four operations:
//
//  1. [CommitEngine.CommitMove] : commit a drop
//     - Plans the splice calls the remote contract needs (one contiguous
//       source range per call, so a scattered selection becomes a sequence
//       of splices that compose to the same result)
//     - Applies the equivalent transform to the cached pages immediately, so
//       the UI reflects the change before the remote call resolves
//     - Commits each splice remotely; on failure the caller gets the
//       pre-mutation pages back untouched
//
//  2. [CommitEngine.CommitRemove] : remove tracks, optionally position-qualified
//
//  3. [CommitEngine.InsertAtMarkers] : one insert per stored marker, ascending,
//     using the marker store's batch index math and a rate limiter
//
//  4. [CommitEngine.FetchPages] : pull a playlist's full paginated track list
//
// # Progress Reporting
//
// All operations send [ProgressUpdate] values over a channel using select
// with default, so reporting never blocks execution.
//
// # Rollback
//
// Every local transform is pure, so rollback is a value swap: the engine
// snapshots the incoming pages and returns that snapshot when the remote
// commit fails. It never mutates its inputs.
package tasks
