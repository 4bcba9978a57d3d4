// package services defines interface Service for interacting with the remote
// ordered-list provider (Spotify)
package services

import (
	"context"

	"github.com/ashgrove/trackshift/internal/models"
	"github.com/ashgrove/trackshift/internal/playlist"
)

// Service defines the remote playlist provider the drag-and-drop core commits
// its mutations to.
type Service interface {
	// Authenticate performs OAuth or token authentication with the service.
	Authenticate(ctx context.Context, credentials map[string]string) error

	// GetPlaylists retrieves all playlists for the authenticated user.
	GetPlaylists(ctx context.Context) ([]models.Playlist, error)

	// GetPlaylist retrieves a specific playlist by ID.
	GetPlaylist(ctx context.Context, playlistID string) (*models.Playlist, error)

	// PlaylistTracks retrieves one page of a playlist's tracks. Track
	// positions are global (offset-based), not page-relative. The page's
	// SnapshotID may be empty; GetPlaylist is the authoritative source.
	PlaylistTracks(ctx context.Context, playlistID string, limit, offset int) (*models.PlaylistPage, error)

	// ReorderPlaylist commits a splice reorder: remove rangeLength tracks at
	// rangeStart and reinsert them before insertBefore, expressed in
	// pre-removal coordinates (insertBefore == length means append). One
	// contiguous source range per call. Returns the new snapshot id.
	ReorderPlaylist(ctx context.Context, playlistID string, rangeStart, insertBefore, rangeLength int, snapshotID string) (string, error)

	// RemovePlaylistTracks removes tracks by URI, each optionally qualified
	// by an explicit position set. Returns the new snapshot id.
	RemovePlaylistTracks(ctx context.Context, playlistID string, removals []playlist.Removal, snapshotID string) (string, error)

	// AddPlaylistTracks inserts tracks before the given position, or appends
	// when position is nil. Returns the new snapshot id.
	AddPlaylistTracks(ctx context.Context, playlistID string, uris []string, position *int) (string, error)

	// Name returns the name of the service (e.g., "Spotify")
	Name() string
}
