// Package server provides the loopback HTTP listener for the Spotify OAuth2
// authorization-code flow.
//
// When the user runs the auth command, a temporary server starts on the
// configured localhost port, serves exactly one callback (validating the
// state parameter and exchanging the code for tokens), delivers the result
// over a channel, and shuts down. Repeat callbacks are rejected to prevent
// replay.
package server
