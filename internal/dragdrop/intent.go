package dragdrop

import (
	"sort"

	"github.com/ashgrove/trackshift/internal/models"
)

// IntentInput carries everything needed to turn a pointer position over a
// virtualized, filtered view into an insertion point.
type IntentInput struct {
	PointerY     float64 // pointer Y in viewport coordinates
	ContainerTop float64 // top of the scroll container in viewport coordinates
	ScrollTop    float64 // current scroll offset of the container
	HeaderOffset float64 // height of any header rendered above row 0
	RowHeight    float64 // nominal rendered row height

	// Rows are the currently-rendered virtual row geometries. Only rendered
	// rows exist; the calculator never assumes the full list has geometry.
	Rows []models.RowGeometry

	// Visible is the currently displayed (filtered) track list.
	Visible []models.Track

	// DraggedPositions is the set of global positions held by the active drag.
	DraggedPositions map[int]struct{}

	// DragCount is the number of items being dragged.
	DragCount int
}

// Intent is a computed landing point, in both coordinate spaces.
type Intent struct {
	// FilteredIndex is the insertion index into the displayed list;
	// len(Visible) means append.
	FilteredIndex int

	// InsertBeforeGlobal is the corresponding position in the full, unfiltered
	// ordering. Never equal to a position the drag currently holds.
	InsertBeforeGlobal int
}

// PositionSet collects the global positions of the given drag tracks.
func PositionSet(tracks []DragTrack) map[int]struct{} {
	set := make(map[int]struct{}, len(tracks))
	for _, dt := range tracks {
		set[dt.Track.Position] = struct{}{}
	}
	return set
}

// ComputeDropIntent maps a pointer position to an insertion point.
//
// The pointer is first translated into content coordinates, then shifted up by
// half a row so the decision boundary sits between rows, and further shifted by
// the overlay offset: a multi-item drag preview is taller and centered further
// from the pointer, so without (dragCount-1)*rowHeight/2 of compensation a
// multi-selection drag would target one row lower than intended.
//
// The insertion index in the filtered view is the index of the first rendered
// row whose midpoint lies below the adjusted pointer; if none does, the drop
// appends. The global position is the position of the first visible track at
// or after that index that is not itself being dragged, which both follows the
// active filter and skips over mid-selection holes left by the drag. If every
// remaining visible track is being dragged, the drop lands after the last
// visible track.
func ComputeDropIntent(in IntentInput) Intent {
	if len(in.Visible) == 0 {
		return Intent{FilteredIndex: 0, InsertBeforeGlobal: 0}
	}

	relativeY := in.PointerY - in.ContainerTop + in.ScrollTop - in.HeaderOffset
	overlayOffset := float64(in.DragCount-1) * in.RowHeight / 2
	adjustedY := relativeY - in.RowHeight/2 - overlayOffset

	rows := make([]models.RowGeometry, len(in.Rows))
	copy(rows, in.Rows)
	sort.Slice(rows, func(i, j int) bool { return rows[i].Index < rows[j].Index })

	index := len(in.Visible)
	for _, row := range rows {
		if row.Start+row.Size/2 > adjustedY {
			index = row.Index
			break
		}
	}
	if index > len(in.Visible) {
		index = len(in.Visible)
	}

	return Intent{
		FilteredIndex:      index,
		InsertBeforeGlobal: globalInsertPosition(in.Visible, in.DraggedPositions, index),
	}
}

// globalInsertPosition maps a filtered insertion index to a position in the
// full ordering, skipping tracks held by the drag.
func globalInsertPosition(visible []models.Track, dragged map[int]struct{}, index int) int {
	last := visible[len(visible)-1]
	if index >= len(visible) {
		return last.Position + 1
	}

	for i := index; i < len(visible); i++ {
		if _, held := dragged[visible[i].Position]; !held {
			return visible[i].Position
		}
	}

	return last.Position + 1
}
