// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow for playlist editing:
//  1. [PlaylistListView] : Browse and select Spotify playlists
//  2. [TrackListView] : Select tracks, place insertion markers, grab and drop
//  3. [CommitView] : Monitor commit progress in real time
//  4. [ResultView] : Display the outcome of the last commit
//
// The [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Progress updates flow through a channel from the commit engine, providing
// non-blocking status reporting while splices land remotely.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, q) with
// contextual help displayed via charmbracelet/bubbles/help. In grab mode the
// cursor row is translated into synthetic row geometry so the drop position is
// resolved by the same intent calculation a pointer-driven front end would use.
package ui
