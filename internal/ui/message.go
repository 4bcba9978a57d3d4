package ui

import (
	"github.com/ashgrove/trackshift/internal/models"
	"github.com/ashgrove/trackshift/internal/tasks"
)

// playlistsFetchedMsg reports the result of loading the playlist catalog.
type playlistsFetchedMsg struct {
	playlists []models.Playlist
	err       error
}

// tracksFetchedMsg reports the result of paging through one playlist's tracks.
type tracksFetchedMsg struct {
	playlist models.Playlist
	pages    []models.PlaylistPage
	err      error
}

// progressUpdateMsg wraps one engine progress update for the Elm loop.
type progressUpdateMsg tasks.ProgressUpdate

// moveDoneMsg reports the outcome of a committed drop.
type moveDoneMsg struct {
	result *tasks.MoveResult
	err    error
}

// removeDoneMsg reports the outcome of a committed removal.
type removeDoneMsg struct {
	result *tasks.RemoveResult
	err    error
}
