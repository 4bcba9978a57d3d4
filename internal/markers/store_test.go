package markers

import (
	"testing"
	"time"
)

func indices(markers []Marker) []int {
	out := make([]int, len(markers))
	for i, m := range markers {
		out[i] = m.Index
	}
	return out
}

func assertIndices(t *testing.T, got []Marker, want []int) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d markers, got %v", len(want), indices(got))
	}
	for i := range want {
		if got[i].Index != want[i] {
			t.Fatalf("expected indices %v, got %v", want, indices(got))
		}
	}
}

func TestStore(t *testing.T) {
	t.Run("Mark keeps markers sorted and unique", func(t *testing.T) {
		s := NewStore()
		s.Mark("pl1", 7)
		s.Mark("pl1", 2)
		s.Mark("pl1", 7)

		assertIndices(t, s.List("pl1"), []int{2, 7})
	})

	t.Run("Mark rejects negative indices", func(t *testing.T) {
		s := NewStore()
		s.Mark("pl1", -1)

		if len(s.List("pl1")) != 0 {
			t.Error("expected no markers")
		}
	})

	t.Run("Mark assigns unique ids", func(t *testing.T) {
		s := NewStore()
		s.Mark("pl1", 0)
		s.Mark("pl1", 1)

		list := s.List("pl1")
		if list[0].ID == "" || list[0].ID == list[1].ID {
			t.Error("expected distinct non-empty marker ids")
		}
	})

	t.Run("Unmark removes only the given index", func(t *testing.T) {
		s := NewStore()
		s.Mark("pl1", 2)
		s.Mark("pl1", 5)
		s.Unmark("pl1", 2)

		assertIndices(t, s.List("pl1"), []int{5})
	})

	t.Run("Toggle flips membership", func(t *testing.T) {
		s := NewStore()
		s.Toggle("pl1", 3)
		if !s.HasMarkerAt("pl1", 3) {
			t.Error("expected marker after first toggle")
		}
		s.Toggle("pl1", 3)
		if s.HasMarkerAt("pl1", 3) {
			t.Error("expected no marker after second toggle")
		}
	})

	t.Run("lists are isolated per playlist", func(t *testing.T) {
		s := NewStore()
		s.Mark("pl1", 1)
		s.Mark("pl2", 9)

		assertIndices(t, s.List("pl1"), []int{1})
		assertIndices(t, s.List("pl2"), []int{9})

		s.ClearList("pl1")
		if s.HasMarkerAt("pl1", 1) {
			t.Error("expected pl1 cleared")
		}
		if !s.HasMarkerAt("pl2", 9) {
			t.Error("expected pl2 untouched")
		}
	})

	t.Run("HasActive and ClearAll", func(t *testing.T) {
		s := NewStore()
		if s.HasActive() {
			t.Error("expected no active markers")
		}
		s.Mark("pl1", 0)
		if !s.HasActive() {
			t.Error("expected active markers")
		}
		s.ClearAll()
		if s.HasActive() {
			t.Error("expected no active markers after ClearAll")
		}
	})

	t.Run("List returns a copy", func(t *testing.T) {
		s := NewStore()
		s.Mark("pl1", 1)

		list := s.List("pl1")
		list[0].Index = 99

		assertIndices(t, s.List("pl1"), []int{1})
	})
}

func TestAdjustIndices(t *testing.T) {
	t.Run("shifts markers at or after the change index", func(t *testing.T) {
		s := NewStore()
		s.Mark("pl1", 1)
		s.Mark("pl1", 4)
		s.Mark("pl1", 7)

		s.AdjustIndices("pl1", 4, 2)
		assertIndices(t, s.List("pl1"), []int{1, 6, 9})
	})

	t.Run("drops markers shifted negative", func(t *testing.T) {
		s := NewStore()
		s.Mark("pl1", 0)
		s.Mark("pl1", 3)

		s.AdjustIndices("pl1", 0, -2)
		assertIndices(t, s.List("pl1"), []int{1})
	})
}

func TestShiftAfterMultiInsert(t *testing.T) {
	s := NewStore()
	s.Mark("pl1", 1)
	s.Mark("pl1", 3)
	s.Mark("pl1", 8)

	s.ShiftAfterMultiInsert("pl1")

	// Marker i shifts by i+1: one insert landed at it and one at each
	// earlier marker.
	assertIndices(t, s.List("pl1"), []int{2, 5, 11})
}

func TestComputeInsertionPositions(t *testing.T) {
	t.Run("single-item inserts", func(t *testing.T) {
		markers := []Marker{
			{Index: 1, CreatedAt: time.Now()},
			{Index: 3, CreatedAt: time.Now()},
			{Index: 8, CreatedAt: time.Now()},
		}

		got := ComputeInsertionPositions(markers, 1)
		want := []int{1, 4, 10}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("expected %v, got %v", want, got)
			}
		}
	})

	t.Run("multi-item inserts scale the shift", func(t *testing.T) {
		markers := []Marker{{Index: 2}, {Index: 5}}

		got := ComputeInsertionPositions(markers, 3)
		want := []int{2, 8}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("expected %v, got %v", want, got)
			}
		}
	})

	t.Run("unsorted input is ordered by original index", func(t *testing.T) {
		markers := []Marker{{Index: 8}, {Index: 1}, {Index: 3}}

		got := ComputeInsertionPositions(markers, 1)
		want := []int{1, 4, 10}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("expected %v, got %v", want, got)
			}
		}
	})

	t.Run("positions are strictly increasing", func(t *testing.T) {
		markers := []Marker{{Index: 0}, {Index: 0}, {Index: 1}, {Index: 5}}

		got := ComputeInsertionPositions(markers, 2)
		for i := 1; i < len(got); i++ {
			if got[i] <= got[i-1] {
				t.Fatalf("positions not increasing: %v", got)
			}
		}
	})

	t.Run("empty markers yield no positions", func(t *testing.T) {
		if got := ComputeInsertionPositions(nil, 1); len(got) != 0 {
			t.Errorf("expected empty, got %v", got)
		}
	})
}

func TestPositions(t *testing.T) {
	s := NewStore()
	s.Mark("pl1", 1)
	s.Mark("pl1", 3)

	got := s.Positions("pl1", 1)
	want := []int{1, 4}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}
