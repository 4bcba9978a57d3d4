package main

import (
	"context"
	"fmt"

	"github.com/ashgrove/trackshift/internal/playlist"
	"github.com/urfave/cli/v3"
)

// CacheShow prints the cached snapshot for a playlist.
func (r *Runner) CacheShow(ctx context.Context, cmd *cli.Command) error {
	if err := r.openDatabase(); err != nil {
		return err
	}

	playlistID := cmd.String("id")
	pages, err := r.repo.Load(playlistID)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(pages, cmd.Bool("pretty"))
	}

	flat := playlist.Flatten(pages)
	r.writePlain("Cached snapshot for %s: %d track(s), snapshot %s\n\n", playlistID, len(flat), snapshotOf(pages))
	for _, t := range flat {
		r.writePlain("  %3d  %s — %s\n", t.Position, t.Name, t.Artists)
	}
	return nil
}

// CacheSplices prints the recorded reorder history for a playlist.
func (r *Runner) CacheSplices(ctx context.Context, cmd *cli.Command) error {
	if err := r.openDatabase(); err != nil {
		return err
	}

	playlistID := cmd.String("id")
	splices, err := r.repo.Splices(playlistID)
	if err != nil {
		return err
	}

	if len(splices) == 0 {
		return r.writePlain("No recorded splices for %s\n", playlistID)
	}

	r.writePlain("Recorded splices for %s:\n\n", playlistID)
	for _, s := range splices {
		r.writePlain("  %s  range_start=%d insert_before=%d range_length=%d\n",
			s.AppliedAt.Format("2006-01-02 15:04:05"), s.RangeStart, s.InsertBefore, s.RangeLength)
	}
	return nil
}

// CacheDelete removes a playlist's cached snapshot.
func (r *Runner) CacheDelete(ctx context.Context, cmd *cli.Command) error {
	if err := r.openDatabase(); err != nil {
		return err
	}

	playlistID := cmd.String("id")
	if err := r.repo.Delete(playlistID); err != nil {
		return fmt.Errorf("failed to delete cached snapshot: %w", err)
	}

	r.logger.Infof("deleted cached snapshot for %s", playlistID)
	return r.writePlain("✓ Cache cleared for %s\n", playlistID)
}
