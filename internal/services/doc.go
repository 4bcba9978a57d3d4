// Package services defines the [Service] interface for the remote ordered-list
// provider and implements it for Spotify.
//
// # Service Interface
//
// The interface exposes exactly the remote contract the core is built
// against: paginated track reads, a splice-based reorder (remove a contiguous
// range, reinsert before a position in pre-removal coordinates), removal by
// URI optionally qualified by explicit position sets, and positional inserts.
//
// # Spotify Implementation
//
// [SpotifyService] uses OAuth2 for authentication with automatic token
// refresh via the [oauth2] client. Mutation calls carry the playlist's
// snapshot id so the server can detect concurrent edits; each successful
// mutation returns the new snapshot id, which callers must thread into their
// cached pages.
//
// # Error Handling
//
// Services use typed errors from the shared package:
//   - [shared.ErrNotAuthenticated] : Authenticate() not called
//   - [shared.ErrAPIRequest] : HTTP request failed
//   - [shared.ErrPlaylistNotFound] : playlist ID not found
package services
