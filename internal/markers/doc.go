// Package markers maintains per-playlist insertion markers: saved "insert new
// items here" bookmarks at specific indices, independent of selection and of
// any active drag.
//
// Marker indices are the one place where index bookkeeping is incremental
// rather than re-derived: markers outlive the list mutations around them, so
// [Store.AdjustIndices] shifts them under unrelated inserts and removals,
// dropping any marker that would land below zero.
//
// The batch-insert index math ([ComputeInsertionPositions],
// [Store.ShiftAfterMultiInsert]) anticipates the remote append/insert
// endpoint's behavior when one batch inserts items at every marker.
package markers
