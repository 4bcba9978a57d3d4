package markers

import (
	"sort"
	"sync"
	"time"

	"github.com/ashgrove/trackshift/internal/shared"
)

// Marker is a saved insertion point within one playlist.
type Marker struct {
	ID        string    `json:"id"`
	Index     int       `json:"index"`
	CreatedAt time.Time `json:"created_at"`
}

// Store holds insertion markers per playlist, sorted by index.
//
// Every mutation replaces the affected list wholesale under the lock, so
// readers never observe a partially-updated list.
type Store struct {
	mu    sync.RWMutex
	lists map[string][]Marker
}

// NewStore creates an empty marker store.
func NewStore() *Store {
	return &Store{lists: make(map[string][]Marker)}
}

// Mark adds a marker at the given index. Adding where a marker already exists
// is a no-op, as is a negative index: markers never hold one.
func (s *Store) Mark(listID string, index int) {
	if index < 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.lists[listID]
	for _, m := range current {
		if m.Index == index {
			return
		}
	}

	next := make([]Marker, 0, len(current)+1)
	next = append(next, current...)
	next = append(next, Marker{
		ID:        shared.GenerateID(),
		Index:     index,
		CreatedAt: time.Now(),
	})
	sort.Slice(next, func(i, j int) bool { return next[i].Index < next[j].Index })

	s.lists[listID] = next
}

// Unmark removes the marker at the given index, if present.
func (s *Store) Unmark(listID string, index int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.lists[listID]
	next := make([]Marker, 0, len(current))
	for _, m := range current {
		if m.Index != index {
			next = append(next, m)
		}
	}

	if len(next) == 0 {
		delete(s.lists, listID)
		return
	}
	s.lists[listID] = next
}

// Toggle adds a marker at the index if absent, removes it if present.
func (s *Store) Toggle(listID string, index int) {
	if s.HasMarkerAt(listID, index) {
		s.Unmark(listID, index)
		return
	}
	s.Mark(listID, index)
}

// ClearList removes all markers for one playlist.
func (s *Store) ClearList(listID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.lists, listID)
}

// ClearAll removes every marker.
func (s *Store) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lists = make(map[string][]Marker)
}

// HasActive reports whether any playlist has markers.
func (s *Store) HasActive() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, markers := range s.lists {
		if len(markers) > 0 {
			return true
		}
	}
	return false
}

// HasMarkerAt reports whether a marker exists at the index.
func (s *Store) HasMarkerAt(listID string, index int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.lists[listID] {
		if m.Index == index {
			return true
		}
	}
	return false
}

// List returns a copy of the playlist's markers, sorted by index.
func (s *Store) List(listID string) []Marker {
	s.mu.RLock()
	defer s.mu.RUnlock()

	current := s.lists[listID]
	out := make([]Marker, len(current))
	copy(out, current)
	return out
}

// AdjustIndices shifts every marker at or after changeIndex by delta, for
// structural edits unrelated to the markers themselves. Markers whose
// resulting index would be negative are dropped.
func (s *Store) AdjustIndices(listID string, changeIndex, delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.lists[listID]
	next := make([]Marker, 0, len(current))
	for _, m := range current {
		if m.Index >= changeIndex {
			m.Index += delta
		}
		if m.Index < 0 {
			continue
		}
		next = append(next, m)
	}
	sort.Slice(next, func(i, j int) bool { return next[i].Index < next[j].Index })

	if len(next) == 0 {
		delete(s.lists, listID)
		return
	}
	s.lists[listID] = next
}

// ShiftAfterMultiInsert permanently shifts marker i's stored index by i+1,
// reflecting one single-item insert performed at each marker in ascending
// order: each insert pushes every later marker (and the marker's own slot)
// one further down.
func (s *Store) ShiftAfterMultiInsert(listID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.lists[listID]
	next := make([]Marker, len(current))
	copy(next, current)
	sort.Slice(next, func(i, j int) bool { return next[i].Index < next[j].Index })
	for i := range next {
		next[i].Index += i + 1
	}

	s.lists[listID] = next
}

// Positions returns the effective insertion positions for a batch insert of
// itemsPerInsert items at each of the playlist's markers, ascending. See
// [ComputeInsertionPositions].
func (s *Store) Positions(listID string, itemsPerInsert int) []int {
	return ComputeInsertionPositions(s.List(listID), itemsPerInsert)
}

// ComputeInsertionPositions computes, for a single batch that inserts
// itemsPerInsert items at every marker simultaneously, each marker's
// effective position after the cumulative shift from every earlier marker's
// insertion: effective[i] = original[i] + itemsPerInsert*i for markers
// ascending by original index.
func ComputeInsertionPositions(markers []Marker, itemsPerInsert int) []int {
	sorted := make([]Marker, len(markers))
	copy(sorted, markers)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Index < sorted[j].Index })

	positions := make([]int, len(sorted))
	for i, m := range sorted {
		positions[i] = m.Index + itemsPerInsert*i
	}
	return positions
}
