// Package models defines domain entities shared across the trackshift core.
//
// The package contains two categories of types:
//
// 1. Playlist data: [Track], [Playlist], and [PlaylistPage] mirror what the
// Spotify Web API returns. A playlist's tracks are cached as a sequence of
// pages treated as one logical flat list; Track.Position is always the 0-based
// index into that full list and is re-derived after every structural change.
//
// 2. View geometry: [RowGeometry] describes a rendered row in a virtualized
// scroll container and is the unit of input for drop-intent computation.
//
// Duplicate tracks (same ID at different positions) are legitimate and every
// consumer of these types must keep them distinguishable.
package models
