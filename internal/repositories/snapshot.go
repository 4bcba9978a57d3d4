package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/ashgrove/trackshift/internal/models"
	"github.com/ashgrove/trackshift/internal/playlist"
	"github.com/ashgrove/trackshift/internal/shared"
)

// Splice is one recorded reorder commit.
type Splice struct {
	ID           string
	PlaylistID   string
	RangeStart   int
	InsertBefore int
	RangeLength  int
	AppliedAt    time.Time
}

// SnapshotRepository persists playlist snapshots and their splice history.
type SnapshotRepository struct {
	db *sql.DB
}

// NewSnapshotRepository creates a new SnapshotRepository with the given database connection
func NewSnapshotRepository(db *sql.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// Save stores the playlist's pages, replacing any previously cached snapshot.
// The whole write happens in one transaction so a reader never sees a
// half-replaced snapshot.
func (r *SnapshotRepository) Save(playlistID string, pages []models.PlaylistPage) error {
	if len(pages) == 0 {
		return fmt.Errorf("%w: no pages to save", shared.ErrInvalidInput)
	}

	flat := playlist.Flatten(pages)
	pageSize := len(pages[0].Tracks)
	if pageSize == 0 {
		pageSize = 1
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now()

	var snapID string
	err = tx.QueryRow("SELECT id FROM snapshots WHERE playlist_id = ?", playlistID).Scan(&snapID)
	switch err {
	case sql.ErrNoRows:
		snapID = shared.GenerateID()
		_, err = tx.Exec(`
			INSERT INTO snapshots (id, playlist_id, snapshot_id, total, page_size, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, snapID, playlistID, pages[0].SnapshotID, len(flat), pageSize, now, now)
		if err != nil {
			return fmt.Errorf("failed to insert snapshot: %w", err)
		}
	case nil:
		_, err = tx.Exec(`
			UPDATE snapshots SET snapshot_id = ?, total = ?, page_size = ?, updated_at = ?
			WHERE id = ?
		`, pages[0].SnapshotID, len(flat), pageSize, now, snapID)
		if err != nil {
			return fmt.Errorf("failed to update snapshot: %w", err)
		}
		if _, err := tx.Exec("DELETE FROM snapshot_tracks WHERE snapshot_id = ?", snapID); err != nil {
			return fmt.Errorf("failed to clear snapshot tracks: %w", err)
		}
	default:
		return fmt.Errorf("failed to look up snapshot: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO snapshot_tracks (snapshot_id, position, track_id, uri, name, artists, album, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare track insert: %w", err)
	}
	defer stmt.Close()

	for _, t := range flat {
		if _, err := stmt.Exec(snapID, t.Position, t.ID, t.URI, t.Name, t.Artists, t.Album, t.DurationMS); err != nil {
			return fmt.Errorf("failed to insert track at position %d: %w", t.Position, err)
		}
	}

	return tx.Commit()
}

// Load reconstructs the cached pages for a playlist, or returns
// [shared.ErrPlaylistNotFound] when nothing is cached.
func (r *SnapshotRepository) Load(playlistID string) ([]models.PlaylistPage, error) {
	var (
		snapID     string
		snapshotID string
		total      int
		pageSize   int
	)

	err := r.db.QueryRow(`
		SELECT id, snapshot_id, total, page_size FROM snapshots WHERE playlist_id = ?
	`, playlistID).Scan(&snapID, &snapshotID, &total, &pageSize)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: no cached snapshot for %s", shared.ErrPlaylistNotFound, playlistID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	rows, err := r.db.Query(`
		SELECT position, track_id, uri, name, artists, album, duration_ms
		FROM snapshot_tracks WHERE snapshot_id = ? ORDER BY position ASC
	`, snapID)
	if err != nil {
		return nil, fmt.Errorf("failed to query tracks: %w", err)
	}
	defer rows.Close()

	var flat []models.Track
	for rows.Next() {
		var (
			t     models.Track
			album sql.NullString
		)
		if err := rows.Scan(&t.Position, &t.ID, &t.URI, &t.Name, &t.Artists, &album, &t.DurationMS); err != nil {
			return nil, fmt.Errorf("failed to scan track: %w", err)
		}
		t.Album = album.String
		flat = append(flat, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	var pages []models.PlaylistPage
	for start := 0; start < len(flat); start += pageSize {
		end := start + pageSize
		if end > len(flat) {
			end = len(flat)
		}
		pages = append(pages, models.PlaylistPage{
			Tracks:     flat[start:end],
			SnapshotID: snapshotID,
			Total:      total,
		})
	}
	if len(pages) == 0 {
		pages = append(pages, models.PlaylistPage{SnapshotID: snapshotID, Total: total})
	}

	return pages, nil
}

// Delete removes a playlist's cached snapshot and tracks.
func (r *SnapshotRepository) Delete(playlistID string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var snapID string
	err = tx.QueryRow("SELECT id FROM snapshots WHERE playlist_id = ?", playlistID).Scan(&snapID)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to look up snapshot: %w", err)
	}

	if _, err := tx.Exec("DELETE FROM snapshot_tracks WHERE snapshot_id = ?", snapID); err != nil {
		return fmt.Errorf("failed to delete tracks: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM snapshots WHERE id = ?", snapID); err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}

	return tx.Commit()
}

// RecordSplice logs one committed reorder for a playlist.
func (r *SnapshotRepository) RecordSplice(playlistID string, rangeStart, insertBefore, rangeLength int) error {
	_, err := r.db.Exec(`
		INSERT INTO splices (id, playlist_id, range_start, insert_before, range_length, applied_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, shared.GenerateID(), playlistID, rangeStart, insertBefore, rangeLength, time.Now())
	if err != nil {
		return fmt.Errorf("failed to record splice: %w", err)
	}
	return nil
}

// Splices returns a playlist's recorded reorders, oldest first.
func (r *SnapshotRepository) Splices(playlistID string) ([]Splice, error) {
	rows, err := r.db.Query(`
		SELECT id, playlist_id, range_start, insert_before, range_length, applied_at
		FROM splices WHERE playlist_id = ? ORDER BY applied_at ASC
	`, playlistID)
	if err != nil {
		return nil, fmt.Errorf("failed to query splices: %w", err)
	}
	defer rows.Close()

	var splices []Splice
	for rows.Next() {
		var s Splice
		if err := rows.Scan(&s.ID, &s.PlaylistID, &s.RangeStart, &s.InsertBefore, &s.RangeLength, &s.AppliedAt); err != nil {
			return nil, fmt.Errorf("failed to scan splice: %w", err)
		}
		splices = append(splices, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return splices, nil
}
