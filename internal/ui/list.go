package ui

import (
	"fmt"

	"github.com/ashgrove/trackshift/internal/models"
	"github.com/charmbracelet/bubbles/list"
)

var (
	_ list.Item = playlistItem{}
	_ list.Item = trackItem{}
)

// playlistItem wraps [models.Playlist] to implement [list.Item].
type playlistItem struct {
	playlist models.Playlist
}

func (i playlistItem) FilterValue() string { return i.playlist.Name }
func (i playlistItem) Title() string       { return i.playlist.Name }
func (i playlistItem) Description() string {
	desc := fmt.Sprintf("%d tracks", i.playlist.TrackCount)
	if i.playlist.Description != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.playlist.Description)
	}
	return desc
}

// trackItem wraps [models.Track] to implement [list.Item], with selection and
// marker indicators folded into the rendered title.
type trackItem struct {
	track    models.Track
	selected bool
	marked   bool
}

func (i trackItem) FilterValue() string { return i.track.Name }

func (i trackItem) Title() string {
	prefix := "  "
	if i.selected {
		prefix = styles.ok.Render("✓ ")
	}
	if i.marked {
		prefix += styles.mark.Render("⚑ ")
	}
	return prefix + i.track.Name
}

func (i trackItem) Description() string {
	desc := i.track.Artists
	if i.track.Album != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.track.Album)
	}
	return desc
}
