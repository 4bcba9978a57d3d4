package dragdrop

import (
	"testing"

	"github.com/ashgrove/trackshift/internal/models"
)

func makeRows(n int, rowHeight float64) []models.RowGeometry {
	rows := make([]models.RowGeometry, n)
	for i := range rows {
		rows[i] = models.RowGeometry{Index: i, Start: float64(i) * rowHeight, Size: rowHeight}
	}
	return rows
}

func TestComputeDropIntent(t *testing.T) {
	const rowHeight = 40.0
	visible := makeTracks(5)
	rows := makeRows(5, rowHeight)

	base := IntentInput{
		RowHeight:        rowHeight,
		Rows:             rows,
		Visible:          visible,
		DraggedPositions: map[int]struct{}{},
		DragCount:        1,
	}

	t.Run("empty list drops at zero", func(t *testing.T) {
		got := ComputeDropIntent(IntentInput{DragCount: 1, RowHeight: rowHeight})
		if got.FilteredIndex != 0 || got.InsertBeforeGlobal != 0 {
			t.Errorf("expected {0 0}, got %+v", got)
		}
	})

	t.Run("pointer over a row midpoint targets that row", func(t *testing.T) {
		in := base
		in.PointerY = 100 // adjusted to 80, row 2 midpoint (100) is the first below
		got := ComputeDropIntent(in)

		if got.FilteredIndex != 2 {
			t.Errorf("expected filtered index 2, got %d", got.FilteredIndex)
		}
		if got.InsertBeforeGlobal != 2 {
			t.Errorf("expected global position 2, got %d", got.InsertBeforeGlobal)
		}
	})

	t.Run("scroll and header offsets shift into content space", func(t *testing.T) {
		in := base
		in.ContainerTop = 50
		in.HeaderOffset = 30
		in.ScrollTop = 80
		// relativeY = 100 - 50 + 80 - 30 = 100, same as the unscrolled case
		in.PointerY = 100
		got := ComputeDropIntent(in)

		if got.FilteredIndex != 2 {
			t.Errorf("expected filtered index 2, got %d", got.FilteredIndex)
		}
	})

	t.Run("overlay offset compensates multi-item previews", func(t *testing.T) {
		single := base
		single.PointerY = 100

		multi := base
		multi.PointerY = 100
		multi.DragCount = 3

		gotSingle := ComputeDropIntent(single)
		gotMulti := ComputeDropIntent(multi)

		// (dragCount-1)*rowHeight/2 = 40 lifts the decision point one row up.
		if gotMulti.FilteredIndex != gotSingle.FilteredIndex-1 {
			t.Errorf("expected multi drag to target one row higher: single=%d multi=%d",
				gotSingle.FilteredIndex, gotMulti.FilteredIndex)
		}
	})

	t.Run("pointer below all rows appends", func(t *testing.T) {
		in := base
		in.PointerY = 1000
		got := ComputeDropIntent(in)

		if got.FilteredIndex != len(visible) {
			t.Errorf("expected append index %d, got %d", len(visible), got.FilteredIndex)
		}
		if got.InsertBeforeGlobal != visible[len(visible)-1].Position+1 {
			t.Errorf("expected global append position %d, got %d",
				visible[len(visible)-1].Position+1, got.InsertBeforeGlobal)
		}
	})

	t.Run("dragged positions are skipped in the global mapping", func(t *testing.T) {
		in := base
		in.PointerY = 100 // filtered index 2
		in.DraggedPositions = map[int]struct{}{2: {}, 3: {}}
		in.DragCount = 2

		got := ComputeDropIntent(in)
		if _, held := in.DraggedPositions[got.InsertBeforeGlobal]; held {
			t.Errorf("global position %d is held by the drag", got.InsertBeforeGlobal)
		}
	})

	t.Run("never returns a dragged position", func(t *testing.T) {
		in := base
		in.DraggedPositions = map[int]struct{}{1: {}, 2: {}, 3: {}}
		in.DragCount = 3

		for y := 0.0; y <= 300; y += 10 {
			in.PointerY = y
			got := ComputeDropIntent(in)
			if _, held := in.DraggedPositions[got.InsertBeforeGlobal]; held {
				t.Fatalf("pointerY=%v: global position %d is held by the drag", y, got.InsertBeforeGlobal)
			}
		}
	})

	t.Run("all remaining visible tracks dragged falls past the end", func(t *testing.T) {
		in := base
		in.PointerY = 140 // overlay lifts by 40, adjusted 80, filtered index 2
		in.DraggedPositions = map[int]struct{}{2: {}, 3: {}, 4: {}}
		in.DragCount = 3

		got := ComputeDropIntent(in)
		if got.InsertBeforeGlobal != visible[len(visible)-1].Position+1 {
			t.Errorf("expected position after last visible track, got %d", got.InsertBeforeGlobal)
		}
	})

	t.Run("intent index is monotonic in pointer position", func(t *testing.T) {
		in := base
		last := -1
		for y := 0.0; y <= 400; y += 5 {
			in.PointerY = y
			got := ComputeDropIntent(in)
			if got.FilteredIndex < last {
				t.Fatalf("index regressed from %d to %d at pointerY=%v", last, got.FilteredIndex, y)
			}
			last = got.FilteredIndex
		}
	})

	t.Run("row geometry order does not matter", func(t *testing.T) {
		in := base
		in.PointerY = 100
		in.Rows = []models.RowGeometry{rows[3], rows[0], rows[4], rows[2], rows[1]}

		got := ComputeDropIntent(in)
		if got.FilteredIndex != 2 {
			t.Errorf("expected filtered index 2 with shuffled rows, got %d", got.FilteredIndex)
		}
	})
}

func TestPositionSet(t *testing.T) {
	tracks := makeTracks(5)
	drag := []DragTrack{
		{Track: tracks[1], Index: 1},
		{Track: tracks[4], Index: 4},
	}

	set := PositionSet(drag)
	if len(set) != 2 {
		t.Fatalf("expected 2 positions, got %d", len(set))
	}
	for _, want := range []int{1, 4} {
		if _, ok := set[want]; !ok {
			t.Errorf("expected position %d in set", want)
		}
	}
}
