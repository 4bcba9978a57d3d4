package playlist

import "github.com/ashgrove/trackshift/internal/models"

// Removal is one position-qualified removal entry: remove the tracks whose
// URI matches and whose position is in Positions, leaving other occurrences
// of the same URI untouched.
//
// An entry with an empty position set removes nothing for that URI. It does
// not fall back to removing all occurrences; URI-only removal is requested by
// passing no qualified entries at all. This asymmetry is a deliberate policy,
// kept because callers rely on a qualified request never touching more than
// the positions it names.
type Removal struct {
	URI       string
	Positions []int
}

// Flatten returns the tracks of all pages as one sequence.
func Flatten(pages []models.PlaylistPage) []models.Track {
	total := 0
	for _, p := range pages {
		total += len(p.Tracks)
	}

	flat := make([]models.Track, 0, total)
	for _, p := range pages {
		flat = append(flat, p.Tracks...)
	}
	return flat
}

// ApplyReorder removes rangeLength tracks starting at rangeStart from the
// flattened sequence and reinserts them before insertBefore, where
// insertBefore is expressed in original, pre-removal coordinates: when the
// removed run sits before the insertion point, the point shifts left by the
// run's length. Out-of-range indices clamp to append semantics.
//
// The result is redistributed across pages preserving each page's original
// size, with every track's Position re-derived from its new index.
func ApplyReorder(pages []models.PlaylistPage, rangeStart, insertBefore, rangeLength int) []models.PlaylistPage {
	flat := Flatten(pages)
	n := len(flat)

	rangeStart = clamp(rangeStart, 0, n)
	rangeLength = clamp(rangeLength, 0, n-rangeStart)
	insertBefore = clamp(insertBefore, 0, n)

	removed := make([]models.Track, rangeLength)
	copy(removed, flat[rangeStart:rangeStart+rangeLength])

	rest := make([]models.Track, 0, n-rangeLength)
	rest = append(rest, flat[:rangeStart]...)
	rest = append(rest, flat[rangeStart+rangeLength:]...)

	// insertBefore is pre-removal; removing the run ahead of it shifts it left.
	insertAt := insertBefore
	if insertBefore > rangeStart {
		insertAt = insertBefore - rangeLength
	}
	insertAt = clamp(insertAt, 0, len(rest))

	result := make([]models.Track, 0, n)
	result = append(result, rest[:insertAt]...)
	result = append(result, removed...)
	result = append(result, rest[insertAt:]...)

	return redistribute(pages, reindex(result))
}

// ApplyRemove removes tracks from the flattened sequence in one of two modes.
//
// Position-qualified: when qualified entries are supplied, exactly the
// (URI, position) pairs they name are removed; see [Removal] for the
// empty-position policy. URI-only: with no qualified entries, every track
// whose URI appears in uris is removed, all occurrences.
//
// Surviving tracks are re-indexed contiguously from 0 and redistributed
// across pages preserving original page sizes.
func ApplyRemove(pages []models.PlaylistPage, uris []string, qualified []Removal) []models.PlaylistPage {
	flat := Flatten(pages)

	var keep func(t models.Track, pos int) bool
	if len(qualified) > 0 {
		drop := make(map[string]map[int]struct{}, len(qualified))
		for _, q := range qualified {
			positions := drop[q.URI]
			if positions == nil {
				positions = make(map[int]struct{}, len(q.Positions))
				drop[q.URI] = positions
			}
			for _, p := range q.Positions {
				positions[p] = struct{}{}
			}
		}
		keep = func(t models.Track, pos int) bool {
			positions, ok := drop[t.URI]
			if !ok {
				return true
			}
			_, hit := positions[pos]
			return !hit
		}
	} else {
		drop := make(map[string]struct{}, len(uris))
		for _, uri := range uris {
			drop[uri] = struct{}{}
		}
		keep = func(t models.Track, pos int) bool {
			_, hit := drop[t.URI]
			return !hit
		}
	}

	result := make([]models.Track, 0, len(flat))
	for i, t := range flat {
		if keep(t, i) {
			result = append(result, t)
		}
	}

	return redistribute(pages, reindex(result))
}

// reindex re-derives every track's Position from its index in the sequence.
func reindex(tracks []models.Track) []models.Track {
	for i := range tracks {
		tracks[i].Position = i
	}
	return tracks
}

// redistribute lays a flat sequence back out over the original page shapes.
// Each page keeps its original capacity; when the sequence shrank, trailing
// pages come up short. Page metadata carries over with Total updated.
func redistribute(pages []models.PlaylistPage, flat []models.Track) []models.PlaylistPage {
	result := make([]models.PlaylistPage, 0, len(pages))
	offset := 0

	for _, p := range pages {
		size := len(p.Tracks)
		if size > len(flat)-offset {
			size = len(flat) - offset
		}

		tracks := make([]models.Track, size)
		copy(tracks, flat[offset:offset+size])
		offset += size

		result = append(result, models.PlaylistPage{
			Tracks:     tracks,
			SnapshotID: p.SnapshotID,
			Total:      len(flat),
			NextCursor: p.NextCursor,
		})
	}

	return result
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
