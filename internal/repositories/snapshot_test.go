package repositories

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/ashgrove/trackshift/internal/models"
	"github.com/ashgrove/trackshift/internal/shared"
	tu "github.com/ashgrove/trackshift/internal/testing"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}
	return db
}

func TestSnapshotRepository(t *testing.T) {
	t.Run("Save and Load round-trip", func(t *testing.T) {
		repo := NewSnapshotRepository(newTestDB(t))

		tracks := tu.NewTracks(5)
		pages := tu.NewPages(tracks, 2, 5, "snap-1")

		if err := repo.Save("pl1", pages); err != nil {
			t.Fatalf("save failed: %v", err)
		}

		loaded, err := repo.Load("pl1")
		if err != nil {
			t.Fatalf("load failed: %v", err)
		}

		if len(loaded) != 3 {
			t.Fatalf("expected 3 pages of size 2, got %d", len(loaded))
		}
		sizes := []int{2, 2, 1}
		for i, p := range loaded {
			if len(p.Tracks) != sizes[i] {
				t.Errorf("page %d: expected %d tracks, got %d", i, sizes[i], len(p.Tracks))
			}
			if p.SnapshotID != "snap-1" {
				t.Errorf("page %d: expected snapshot snap-1, got %s", i, p.SnapshotID)
			}
			if p.Total != 5 {
				t.Errorf("page %d: expected total 5, got %d", i, p.Total)
			}
		}

		for i, track := range loaded[0].Tracks {
			if track.ID != tracks[i].ID || track.Position != i {
				t.Errorf("track %d: expected %s at %d, got %s at %d",
					i, tracks[i].ID, i, track.ID, track.Position)
			}
		}
	})

	t.Run("Save replaces the previous snapshot", func(t *testing.T) {
		repo := NewSnapshotRepository(newTestDB(t))

		if err := repo.Save("pl1", tu.NewPages(tu.NewTracks(5), 5, 5, "snap-1")); err != nil {
			t.Fatalf("first save failed: %v", err)
		}
		if err := repo.Save("pl1", tu.NewPages(tu.NewTracks(3), 3, 3, "snap-2")); err != nil {
			t.Fatalf("second save failed: %v", err)
		}

		loaded, err := repo.Load("pl1")
		if err != nil {
			t.Fatalf("load failed: %v", err)
		}

		flat := 0
		for _, p := range loaded {
			flat += len(p.Tracks)
		}
		if flat != 3 {
			t.Errorf("expected 3 tracks after replacement, got %d", flat)
		}
		if loaded[0].SnapshotID != "snap-2" {
			t.Errorf("expected snapshot snap-2, got %s", loaded[0].SnapshotID)
		}
	})

	t.Run("Save rejects empty pages", func(t *testing.T) {
		repo := NewSnapshotRepository(newTestDB(t))

		err := repo.Save("pl1", nil)
		if !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("Load of an uncached playlist", func(t *testing.T) {
		repo := NewSnapshotRepository(newTestDB(t))

		_, err := repo.Load("missing")
		if !errors.Is(err, shared.ErrPlaylistNotFound) {
			t.Errorf("expected ErrPlaylistNotFound, got %v", err)
		}
	})

	t.Run("snapshots are isolated per playlist", func(t *testing.T) {
		repo := NewSnapshotRepository(newTestDB(t))

		if err := repo.Save("pl1", tu.NewPages(tu.NewTracks(2), 2, 2, "snap-a")); err != nil {
			t.Fatalf("save pl1 failed: %v", err)
		}
		if err := repo.Save("pl2", tu.NewPages(tu.NewTracks(4), 4, 4, "snap-b")); err != nil {
			t.Fatalf("save pl2 failed: %v", err)
		}

		a, err := repo.Load("pl1")
		if err != nil {
			t.Fatalf("load pl1 failed: %v", err)
		}
		b, err := repo.Load("pl2")
		if err != nil {
			t.Fatalf("load pl2 failed: %v", err)
		}

		if a[0].SnapshotID != "snap-a" || b[0].SnapshotID != "snap-b" {
			t.Errorf("snapshots crossed: %s / %s", a[0].SnapshotID, b[0].SnapshotID)
		}
	})

	t.Run("Delete removes the snapshot", func(t *testing.T) {
		repo := NewSnapshotRepository(newTestDB(t))

		if err := repo.Save("pl1", tu.NewPages(tu.NewTracks(2), 2, 2, "snap-1")); err != nil {
			t.Fatalf("save failed: %v", err)
		}
		if err := repo.Delete("pl1"); err != nil {
			t.Fatalf("delete failed: %v", err)
		}

		if _, err := repo.Load("pl1"); !errors.Is(err, shared.ErrPlaylistNotFound) {
			t.Errorf("expected ErrPlaylistNotFound after delete, got %v", err)
		}
	})

	t.Run("Delete of an uncached playlist is a no-op", func(t *testing.T) {
		repo := NewSnapshotRepository(newTestDB(t))

		if err := repo.Delete("missing"); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("nullable album column survives the round-trip", func(t *testing.T) {
		repo := NewSnapshotRepository(newTestDB(t))

		pages := []models.PlaylistPage{{
			Tracks: []models.Track{
				{ID: "t0", URI: "spotify:track:t0", Name: "No Album", Position: 0},
			},
			SnapshotID: "snap-1",
			Total:      1,
		}}
		if err := repo.Save("pl1", pages); err != nil {
			t.Fatalf("save failed: %v", err)
		}

		loaded, err := repo.Load("pl1")
		if err != nil {
			t.Fatalf("load failed: %v", err)
		}
		if loaded[0].Tracks[0].Album != "" {
			t.Errorf("expected empty album, got %q", loaded[0].Tracks[0].Album)
		}
	})
}

func TestSpliceHistory(t *testing.T) {
	t.Run("RecordSplice and Splices preserve order", func(t *testing.T) {
		repo := NewSnapshotRepository(newTestDB(t))

		if err := repo.RecordSplice("pl1", 4, 9, 3); err != nil {
			t.Fatalf("record failed: %v", err)
		}
		if err := repo.RecordSplice("pl1", 1, 5, 1); err != nil {
			t.Fatalf("record failed: %v", err)
		}

		splices, err := repo.Splices("pl1")
		if err != nil {
			t.Fatalf("splices failed: %v", err)
		}

		if len(splices) != 2 {
			t.Fatalf("expected 2 splices, got %d", len(splices))
		}
		first := splices[0]
		if first.RangeStart != 4 || first.InsertBefore != 9 || first.RangeLength != 3 {
			t.Errorf("unexpected first splice %+v", first)
		}
		if first.ID == "" || first.AppliedAt.IsZero() {
			t.Errorf("expected id and timestamp, got %+v", first)
		}
	})

	t.Run("splice history is isolated per playlist", func(t *testing.T) {
		repo := NewSnapshotRepository(newTestDB(t))

		if err := repo.RecordSplice("pl1", 0, 1, 1); err != nil {
			t.Fatalf("record failed: %v", err)
		}

		splices, err := repo.Splices("pl2")
		if err != nil {
			t.Fatalf("splices failed: %v", err)
		}
		if len(splices) != 0 {
			t.Errorf("expected no splices for pl2, got %d", len(splices))
		}
	})
}
