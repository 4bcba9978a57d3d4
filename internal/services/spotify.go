// Spotify API implementation of [Service]
//
// Spotify API response types based on https://developer.spotify.com/documentation/web-api/reference/
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/ashgrove/trackshift/internal/models"
	"github.com/ashgrove/trackshift/internal/playlist"
	"github.com/ashgrove/trackshift/internal/shared"
	"golang.org/x/oauth2"
)

const (
	spotifyAuthURL  = "https://accounts.spotify.com/authorize"
	spotifyTokenURL = "https://accounts.spotify.com/api/token"
	spotifyBaseURL  = "https://api.spotify.com/v1"
)

// SpotifyImage represents an image resource.
type SpotifyImage struct {
	URL    string `json:"url"`
	Height int    `json:"height"`
	Width  int    `json:"width"`
}

// SpotifyArtist represents a Spotify artist.
type SpotifyArtist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URI  string `json:"uri"`
}

// SpotifyAlbum represents a Spotify album.
type SpotifyAlbum struct {
	ID     string         `json:"id"`
	Name   string         `json:"name"`
	Images []SpotifyImage `json:"images"`
	URI    string         `json:"uri"`
}

// SpotifyTrack represents a Spotify track.
type SpotifyTrack struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Artists    []SpotifyArtist `json:"artists"`
	Album      SpotifyAlbum    `json:"album"`
	DurationMS int             `json:"duration_ms"`
	URI        string          `json:"uri"`
}

// SpotifyPlaylistTrack represents a track within a playlist context.
type SpotifyPlaylistTrack struct {
	AddedAt string       `json:"added_at"`
	Track   SpotifyTrack `json:"track"`
}

// SpotifyPaginatedTracks represents a paginated response of playlist tracks.
type SpotifyPaginatedTracks struct {
	Items    []SpotifyPlaylistTrack `json:"items"`
	Total    int                    `json:"total"`
	Limit    int                    `json:"limit"`
	Offset   int                    `json:"offset"`
	Next     *string                `json:"next"`
	Previous *string                `json:"previous"`
}

type simplePlaylistTrack struct {
	Total int `json:"total"`
}

// Owner represents a playlist owner.
type Owner struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

// SpotifySimplePlaylist represents a simplified playlist object (used in lists).
type SpotifySimplePlaylist struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Owner       Owner               `json:"owner"`
	Public      bool                `json:"public"`
	SnapshotID  string              `json:"snapshot_id"`
	Tracks      simplePlaylistTrack `json:"tracks"`
	URI         string              `json:"uri"`
}

// SpotifyPaginatedPlaylists represents a paginated response of playlists.
type SpotifyPaginatedPlaylists struct {
	Items    []SpotifySimplePlaylist `json:"items"`
	Total    int                     `json:"total"`
	Limit    int                     `json:"limit"`
	Offset   int                     `json:"offset"`
	Next     *string                 `json:"next"`
	Previous *string                 `json:"previous"`
}

// snapshotResponse is the body returned by every playlist mutation endpoint.
type snapshotResponse struct {
	SnapshotID string `json:"snapshot_id"`
}

// reorderRequest is the splice-reorder payload for PUT /playlists/{id}/tracks.
type reorderRequest struct {
	RangeStart   int    `json:"range_start"`
	InsertBefore int    `json:"insert_before"`
	RangeLength  int    `json:"range_length"`
	SnapshotID   string `json:"snapshot_id,omitempty"`
}

// removeRequest is the payload for DELETE /playlists/{id}/tracks.
type removeRequest struct {
	Tracks     []removeEntry `json:"tracks"`
	SnapshotID string        `json:"snapshot_id,omitempty"`
}

type removeEntry struct {
	URI       string `json:"uri"`
	Positions []int  `json:"positions,omitempty"`
}

// addRequest is the payload for POST /playlists/{id}/tracks.
type addRequest struct {
	URIs     []string `json:"uris"`
	Position *int     `json:"position,omitempty"`
}

// SpotifyService implements the [Service] interface for Spotify API interactions.
// Uses [oauth2] for authentication with automatic token refresh.
type SpotifyService struct {
	config     *oauth2.Config
	token      *oauth2.Token
	httpClient *http.Client
}

// NewSpotifyService creates a new Spotify service with the given OAuth2 credentials.
func NewSpotifyService(credentials map[string]string) (*SpotifyService, error) {
	clientID, ok := credentials["client_id"]
	if !ok || clientID == "" {
		return nil, fmt.Errorf("%w: missing client_id", shared.ErrMissingCredentials)
	}

	clientSecret, ok := credentials["client_secret"]
	if !ok || clientSecret == "" {
		return nil, fmt.Errorf("%w: missing client_secret", shared.ErrMissingCredentials)
	}

	redirectURI, ok := credentials["redirect_uri"]
	if !ok || redirectURI == "" {
		redirectURI = "http://localhost:3000/callback"
	}

	config := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURI,
		Scopes: []string{
			"user-read-private",
			"playlist-read-private",
			"playlist-read-collaborative",
			"playlist-modify-public",
			"playlist-modify-private",
		},
		Endpoint: oauth2.Endpoint{
			AuthURL:  spotifyAuthURL,
			TokenURL: spotifyTokenURL,
		},
	}

	return &SpotifyService{
		config:     config,
		httpClient: http.DefaultClient,
	}, nil
}

// Authenticate performs OAuth2 authentication with Spotify. Expects either an "access_token" or "auth_code" in credentials.
func (s *SpotifyService) Authenticate(ctx context.Context, credentials map[string]string) error {
	if accessToken, ok := credentials["access_token"]; ok && accessToken != "" {
		s.SetToken(ctx, &oauth2.Token{AccessToken: accessToken})
		return nil
	}

	if authCode, ok := credentials["auth_code"]; ok && authCode != "" {
		token, err := s.config.Exchange(ctx, authCode)
		if err != nil {
			return fmt.Errorf("%w: failed to exchange auth code: %v", shared.ErrAuthFailed, err)
		}
		s.SetToken(ctx, token)
		return nil
	}

	return fmt.Errorf("%w: missing access_token or auth_code", shared.ErrMissingCredentials)
}

// SetToken installs an OAuth token and rebuilds the HTTP client around it.
func (s *SpotifyService) SetToken(ctx context.Context, token *oauth2.Token) {
	s.token = token
	s.httpClient = s.config.Client(ctx, token)
}

// SetHTTPClient overrides the HTTP client, used by tests.
func (s *SpotifyService) SetHTTPClient(client *http.Client) {
	s.httpClient = client
	if s.token == nil {
		s.token = &oauth2.Token{AccessToken: "test"}
	}
}

func (s *SpotifyService) Name() string {
	return "Spotify"
}

// AuthURL returns the OAuth2 authorization URL for user login.
func (s *SpotifyService) AuthURL(state string) string {
	return s.config.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

// OAuthConfig exposes the underlying OAuth2 config for the callback server.
func (s *SpotifyService) OAuthConfig() *oauth2.Config {
	return s.config
}

// doRequest performs an authenticated HTTP request to the Spotify API.
func (s *SpotifyService) doRequest(ctx context.Context, method, endpoint string, body any, result any) error {
	if s.token == nil {
		return fmt.Errorf("%w: call Authenticate first", shared.ErrNotAuthenticated)
	}

	apiURL := spotifyBaseURL + endpoint

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, apiURL, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+s.token.AccessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: status %d", shared.ErrPlaylistNotFound, resp.StatusCode)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// GetPlaylists retrieves all playlists for the authenticated user.
func (s *SpotifyService) GetPlaylists(ctx context.Context) ([]models.Playlist, error) {
	var all []models.Playlist
	limit := 50
	offset := 0

	for {
		endpoint := fmt.Sprintf("/me/playlists?limit=%d&offset=%d", limit, offset)

		var response SpotifyPaginatedPlaylists
		if err := s.doRequest(ctx, "GET", endpoint, nil, &response); err != nil {
			return nil, err
		}

		for _, sp := range response.Items {
			all = append(all, models.Playlist{
				ID:          sp.ID,
				Name:        sp.Name,
				Description: sp.Description,
				TrackCount:  sp.Tracks.Total,
				SnapshotID:  sp.SnapshotID,
				Public:      sp.Public,
			})
		}

		if response.Next == nil {
			break
		}
		offset += limit
	}

	return all, nil
}

// GetPlaylist retrieves a specific playlist by ID.
func (s *SpotifyService) GetPlaylist(ctx context.Context, playlistID string) (*models.Playlist, error) {
	endpoint := fmt.Sprintf("/playlists/%s", playlistID)

	var sp SpotifySimplePlaylist
	if err := s.doRequest(ctx, "GET", endpoint, nil, &sp); err != nil {
		return nil, err
	}

	return &models.Playlist{
		ID:          sp.ID,
		Name:        sp.Name,
		Description: sp.Description,
		TrackCount:  sp.Tracks.Total,
		SnapshotID:  sp.SnapshotID,
		Public:      sp.Public,
	}, nil
}

// PlaylistTracks retrieves one page of a playlist's tracks.
//
// Positions are derived from the page offset, so they index into the full
// playlist regardless of which page a track arrived on. The tracks endpoint
// does not return a snapshot id, so the page's SnapshotID is left empty;
// callers that need it fetch the playlist once via [SpotifyService.GetPlaylist].
func (s *SpotifyService) PlaylistTracks(ctx context.Context, playlistID string, limit, offset int) (*models.PlaylistPage, error) {
	if limit <= 0 {
		limit = 100
	}
	if limit > 100 {
		limit = 100
	}

	endpoint := fmt.Sprintf("/playlists/%s/tracks?limit=%d&offset=%d", playlistID, limit, offset)

	var response SpotifyPaginatedTracks
	if err := s.doRequest(ctx, "GET", endpoint, nil, &response); err != nil {
		return nil, err
	}

	page := &models.PlaylistPage{
		Total:  response.Total,
		Tracks: make([]models.Track, 0, len(response.Items)),
	}
	if response.Next != nil {
		page.NextCursor = *response.Next
	}

	for i, item := range response.Items {
		names := make([]string, 0, len(item.Track.Artists))
		for _, a := range item.Track.Artists {
			names = append(names, a.Name)
		}

		page.Tracks = append(page.Tracks, models.Track{
			ID:         item.Track.ID,
			URI:        item.Track.URI,
			Name:       item.Track.Name,
			Artists:    strings.Join(names, ", "),
			Album:      item.Track.Album.Name,
			DurationMS: item.Track.DurationMS,
			Position:   offset + i,
		})
	}

	return page, nil
}

// ReorderPlaylist commits a splice reorder and returns the new snapshot id.
func (s *SpotifyService) ReorderPlaylist(ctx context.Context, playlistID string, rangeStart, insertBefore, rangeLength int, snapshotID string) (string, error) {
	endpoint := fmt.Sprintf("/playlists/%s/tracks", playlistID)

	body := reorderRequest{
		RangeStart:   rangeStart,
		InsertBefore: insertBefore,
		RangeLength:  rangeLength,
		SnapshotID:   snapshotID,
	}

	var response snapshotResponse
	if err := s.doRequest(ctx, "PUT", endpoint, body, &response); err != nil {
		return "", err
	}

	return response.SnapshotID, nil
}

// RemovePlaylistTracks removes tracks by URI with optional position sets and
// returns the new snapshot id.
func (s *SpotifyService) RemovePlaylistTracks(ctx context.Context, playlistID string, removals []playlist.Removal, snapshotID string) (string, error) {
	if len(removals) == 0 {
		return "", fmt.Errorf("%w: no tracks to remove", shared.ErrInvalidInput)
	}

	endpoint := fmt.Sprintf("/playlists/%s/tracks", playlistID)

	body := removeRequest{
		Tracks:     make([]removeEntry, 0, len(removals)),
		SnapshotID: snapshotID,
	}
	for _, r := range removals {
		body.Tracks = append(body.Tracks, removeEntry{URI: r.URI, Positions: r.Positions})
	}

	var response snapshotResponse
	if err := s.doRequest(ctx, "DELETE", endpoint, body, &response); err != nil {
		return "", err
	}

	return response.SnapshotID, nil
}

// AddPlaylistTracks inserts tracks before the given position (nil appends)
// and returns the new snapshot id.
func (s *SpotifyService) AddPlaylistTracks(ctx context.Context, playlistID string, uris []string, position *int) (string, error) {
	if len(uris) == 0 {
		return "", fmt.Errorf("%w: no tracks to add", shared.ErrInvalidInput)
	}

	endpoint := fmt.Sprintf("/playlists/%s/tracks", playlistID)

	body := addRequest{URIs: uris, Position: position}

	var response snapshotResponse
	if err := s.doRequest(ctx, "POST", endpoint, body, &response); err != nil {
		return "", err
	}

	return response.SnapshotID, nil
}
