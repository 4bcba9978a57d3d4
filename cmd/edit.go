package main

import (
	"context"
	"fmt"

	"github.com/ashgrove/trackshift/internal/models"
	"github.com/ashgrove/trackshift/internal/playlist"
	"github.com/ashgrove/trackshift/internal/shared"
	"github.com/ashgrove/trackshift/internal/tasks"
	"github.com/urfave/cli/v3"
)

// loadPages returns the playlist's pages, from the cache when requested and
// available, otherwise by refetching.
func (r *Runner) loadPages(ctx context.Context, playlistID string, cached bool) ([]models.PlaylistPage, error) {
	if cached && r.repo != nil {
		pages, err := r.repo.Load(playlistID)
		if err == nil {
			r.logger.Infof("using cached snapshot (%d pages)", len(pages))
			return pages, nil
		}
		r.logger.Warnf("cache miss, refetching: %v", err)
	}

	progress, wait := r.logProgress()
	pages, err := r.requireEngine().FetchPages(ctx, progress, playlistID, r.config.DragDrop.PageSize)
	close(progress)
	wait()
	return pages, err
}

// Move commits a reorder: the tracks at the given positions are removed and
// reinserted as one block before insert-before, which is expressed in current
// (pre-removal) coordinates exactly as a drop computation produces it.
func (r *Runner) Move(ctx context.Context, cmd *cli.Command) error {
	if r.spotify == nil {
		return fmt.Errorf("%w: Spotify service not initialized", shared.ErrServiceUnavailable)
	}

	positions, err := parsePositions(cmd.String("positions"))
	if err != nil {
		return err
	}
	if len(positions) == 0 {
		return fmt.Errorf("%w: no positions given", shared.ErrInvalidInput)
	}

	if err := r.openDatabase(); err != nil {
		r.logger.Warnf("running without cache: %v", err)
	}

	playlistID := cmd.String("id")
	pages, err := r.loadPages(ctx, playlistID, cmd.Bool("cached"))
	if err != nil {
		return fmt.Errorf("failed to load playlist: %w", err)
	}

	req := tasks.MoveRequest{
		PlaylistID:   playlistID,
		Pages:        pages,
		Positions:    positions,
		InsertBefore: int(cmd.Int("insert-before")),
		SnapshotID:   snapshotOf(pages),
	}

	progress, wait := r.logProgress()
	result, err := r.requireEngine().CommitMove(ctx, progress, req)
	close(progress)
	wait()
	if err != nil {
		if result != nil && result.RolledBack {
			r.writePlain("✗ Commit failed, local state restored\n")
		}
		return err
	}

	r.writePlain("✓ Moved %d track(s) via %d splice call(s)\n", len(positions), len(result.Splices))
	for i, s := range result.Splices {
		r.writePlain("  [%d] range_start=%d insert_before=%d range_length=%d\n", i+1, s.RangeStart, s.InsertBefore, s.RangeLength)
	}
	r.writePlain("Snapshot: %s\n", result.SnapshotID)
	return nil
}

// Remove commits a removal of tracks by URI, optionally qualified to specific
// positions. An explicit empty position set removes nothing.
func (r *Runner) Remove(ctx context.Context, cmd *cli.Command) error {
	if r.spotify == nil {
		return fmt.Errorf("%w: Spotify service not initialized", shared.ErrServiceUnavailable)
	}

	uri := cmd.String("uri")
	if uri == "" {
		return fmt.Errorf("%w: --uri is required", shared.ErrInvalidInput)
	}

	positions, err := parsePositions(cmd.String("positions"))
	if err != nil {
		return err
	}

	if err := r.openDatabase(); err != nil {
		r.logger.Warnf("running without cache: %v", err)
	}

	playlistID := cmd.String("id")
	pages, err := r.loadPages(ctx, playlistID, cmd.Bool("cached"))
	if err != nil {
		return fmt.Errorf("failed to load playlist: %w", err)
	}

	req := tasks.RemoveRequest{
		PlaylistID: playlistID,
		Pages:      pages,
		SnapshotID: snapshotOf(pages),
	}
	if len(positions) > 0 {
		req.Qualified = []playlist.Removal{{URI: uri, Positions: positions}}
	} else {
		req.URIs = []string{uri}
	}

	progress, wait := r.logProgress()
	result, err := r.requireEngine().CommitRemove(ctx, progress, req)
	close(progress)
	wait()
	if err != nil {
		if result != nil && result.RolledBack {
			r.writePlain("✗ Commit failed, local state restored\n")
		}
		return err
	}

	before := len(playlist.Flatten(pages))
	after := len(playlist.Flatten(result.Pages))
	r.writePlain("✓ Removed %d track(s)\n", before-after)
	r.writePlain("Snapshot: %s\n", result.SnapshotID)
	return nil
}

// Insert marks the given positions and inserts the track once at each marker
// in a single batch.
func (r *Runner) Insert(ctx context.Context, cmd *cli.Command) error {
	if r.spotify == nil {
		return fmt.Errorf("%w: Spotify service not initialized", shared.ErrServiceUnavailable)
	}

	positions, err := parsePositions(cmd.String("at"))
	if err != nil {
		return err
	}
	if len(positions) == 0 {
		return fmt.Errorf("%w: no marker positions given", shared.ErrInvalidInput)
	}

	playlistID := cmd.String("id")
	for _, pos := range positions {
		r.markers.Mark(playlistID, pos)
	}

	progress, wait := r.logProgress()
	err = r.requireEngine().InsertAtMarkers(ctx, progress, playlistID, cmd.String("uri"))
	close(progress)
	wait()
	if err != nil {
		return err
	}

	return r.writePlain("✓ Inserted at %d position(s)\n", len(positions))
}

// snapshotOf returns the snapshot id carried by the first page.
func snapshotOf(pages []models.PlaylistPage) string {
	if len(pages) > 0 {
		return pages[0].SnapshotID
	}
	return ""
}
