package dragdrop

import (
	"github.com/ashgrove/trackshift/internal/models"
	"github.com/ashgrove/trackshift/internal/selection"
)

// ComputeAdjustedTargetIndex reconciles a visual target index with the splice
// contract's coordinate space for a same-list move: every dragged track
// currently sitting strictly before the target shifts the landing point left
// by one once removed.
//
// The playlist mutator performs this same subtraction internally, so callers
// committing a reorder must hand the mutator the raw target index. Adjusting
// here and again in the mutator double-subtracts.
//
// Cross-list drops are returned unchanged; nothing is removed from the target
// list before insertion.
func ComputeAdjustedTargetIndex(targetIndex int, dragTracks []DragTrack, ordered []models.Track, sourceListID, targetListID string) int {
	if sourceListID != targetListID {
		return targetIndex
	}

	count := 0
	for _, dt := range dragTracks {
		if currentPosition(dt, ordered) < targetIndex {
			count++
		}
	}
	return targetIndex - count
}

// currentPosition resolves a drag track's present position in the ordered
// list, falling back to the position recorded at drag start if the track is
// no longer found (it may have been filtered out mid-drag).
func currentPosition(dt DragTrack, ordered []models.Track) int {
	key := selection.NewKey(dt.Track)
	for _, t := range ordered {
		if selection.NewKey(t) == key {
			return t.Position
		}
	}
	return dt.Track.Position
}

// CalculateEffectiveTargetIndex returns the adjusted index when adjustment is
// called for, and the target index untouched otherwise.
func CalculateEffectiveTargetIndex(targetIndex int, shouldAdjust bool, adjust func() int) int {
	if shouldAdjust {
		return adjust()
	}
	return targetIndex
}
