package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ashgrove/trackshift/internal/server"
	"github.com/ashgrove/trackshift/internal/services"
	"github.com/ashgrove/trackshift/internal/shared"
	"github.com/urfave/cli/v3"
	"golang.org/x/oauth2"
)

// tokenPath returns the location of the persisted OAuth token.
func tokenPath() string {
	return filepath.Join(os.Getenv("HOME"), ".trackshift", "token.json")
}

// saveToken persists the OAuth token for later sessions.
func saveToken(token *oauth2.Token) error {
	path := tokenPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}

	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("failed to marshal token: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}
	return nil
}

// loadToken reads a previously persisted OAuth token, or nil when absent.
func loadToken() *oauth2.Token {
	data, err := os.ReadFile(tokenPath())
	if err != nil {
		return nil
	}

	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil
	}
	return &token
}

// AuthLogin runs the OAuth2 authorization-code flow against Spotify, or
// installs a caller-supplied access token directly.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	if r.spotify == nil {
		return fmt.Errorf("%w: Spotify service not initialized, check credentials in config", shared.ErrServiceUnavailable)
	}

	if token := cmd.String("token"); token != "" {
		if err := r.spotify.Authenticate(ctx, map[string]string{"access_token": token}); err != nil {
			return err
		}
		if err := saveToken(&oauth2.Token{AccessToken: token}); err != nil {
			r.logger.Warnf("failed to persist token: %v", err)
		}
		return r.writePlain("✓ Access token installed\n")
	}

	svc, ok := r.spotify.(*services.SpotifyService)
	if !ok {
		return fmt.Errorf("%w: OAuth flow requires the Spotify service", shared.ErrServiceUnavailable)
	}

	state := shared.GenerateID()
	handler := server.NewOAuthHandler(svc.OAuthConfig(), state)
	callback := server.NewCallbackServer(r.config.Server.Host, r.config.Server.Port, handler)

	r.writePlain("Open this URL in your browser to authorize:\n\n%s\n\n", svc.AuthURL(state))
	r.logger.Infof("waiting for OAuth callback on %s:%d", r.config.Server.Host, r.config.Server.Port)

	result, err := callback.Wait(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
	}
	if result.Error() != nil {
		return fmt.Errorf("%w: %v", shared.ErrAuthFailed, result.Error())
	}

	svc.SetToken(ctx, result.Token)
	if err := saveToken(result.Token); err != nil {
		r.logger.Warnf("failed to persist token: %v", err)
	} else {
		r.logger.Infof("token saved to %s", tokenPath())
	}

	return r.writePlain("✓ Authentication successful\n")
}

// AuthStatus checks whether a usable token exists by hitting the API.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	if r.spotify == nil {
		return fmt.Errorf("%w: Spotify service not initialized", shared.ErrServiceUnavailable)
	}

	if _, err := r.spotify.GetPlaylists(ctx); err != nil {
		r.writePlain("Authentication: ✗ Not authenticated\n")
		return fmt.Errorf("%w: %v", shared.ErrNotAuthenticated, err)
	}

	return r.writePlain("Authentication: ✓ Authenticated\n")
}
