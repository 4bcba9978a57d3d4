package main

import (
	"context"
	"fmt"

	"github.com/ashgrove/trackshift/internal/playlist"
	"github.com/ashgrove/trackshift/internal/shared"
	"github.com/urfave/cli/v3"
)

// PlaylistsList prints the authenticated user's playlists.
func (r *Runner) PlaylistsList(ctx context.Context, cmd *cli.Command) error {
	if r.spotify == nil {
		return fmt.Errorf("%w: Spotify service not initialized", shared.ErrServiceUnavailable)
	}

	playlists, err := r.spotify.GetPlaylists(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch playlists: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(playlists, cmd.Bool("pretty"))
	}

	r.writePlain("Found %d playlist(s)\n\n", len(playlists))
	for _, pl := range playlists {
		r.writePlain("  %-24s %4d tracks  %s\n", pl.ID, pl.TrackCount, pl.Name)
	}
	return nil
}

// PlaylistTracks fetches a playlist's full paginated track list and caches it.
func (r *Runner) PlaylistTracks(ctx context.Context, cmd *cli.Command) error {
	if r.spotify == nil {
		return fmt.Errorf("%w: Spotify service not initialized", shared.ErrServiceUnavailable)
	}

	if err := r.openDatabase(); err != nil {
		r.logger.Warnf("running without cache: %v", err)
	}

	pageSize := int(cmd.Int("page-size"))
	if pageSize <= 0 {
		pageSize = r.config.DragDrop.PageSize
	}

	progress, wait := r.logProgress()
	pages, err := r.requireEngine().FetchPages(ctx, progress, cmd.String("id"), pageSize)
	close(progress)
	wait()
	if err != nil {
		return fmt.Errorf("failed to fetch tracks: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(pages, cmd.Bool("pretty"))
	}

	flat := playlist.Flatten(pages)
	r.writePlain("Fetched %d track(s) across %d page(s)\n\n", len(flat), len(pages))
	for _, t := range flat {
		r.writePlain("  %3d  %s — %s\n", t.Position, t.Name, t.Artists)
	}
	return nil
}
