// Package playlist implements pure transforms over paginated playlist
// snapshots, matching the remote service's splice mutation contract exactly.
//
// A cached playlist is a slice of [models.PlaylistPage] treated as one flat
// sequence. Transforms return new page slices and never modify their input,
// which keeps caller-side rollback a simple value swap. After any structural
// change every surviving track's Position is re-derived from its new index
// rather than patched incrementally, so positions cannot drift.
//
// [ApplyReorder] must stay byte-identical, for the same inputs, to what the
// remote splice endpoint produces; its output is what the UI shows while the
// remote call is in flight.
package playlist
