package selection

import (
	"sort"

	"github.com/ashgrove/trackshift/internal/models"
)

// State is an immutable selection snapshot.
//
// The zero value is an empty selection. Every operation returns a new State;
// the receiver is never modified.
type State struct {
	selected map[Key]struct{}
	anchor   *Key
}

// clone copies the selected set so reducers never alias the receiver's map.
func (s State) clone() State {
	selected := make(map[Key]struct{}, len(s.selected))
	for k := range s.selected {
		selected[k] = struct{}{}
	}
	next := State{selected: selected}
	if s.anchor != nil {
		anchor := *s.anchor
		next.anchor = &anchor
	}
	return next
}

// Has reports whether the key is selected.
func (s State) Has(k Key) bool {
	_, ok := s.selected[k]
	return ok
}

// Count returns the number of selected keys.
func (s State) Count() int {
	return len(s.selected)
}

// Anchor returns the last-selected key, which anchors range selection.
func (s State) Anchor() (Key, bool) {
	if s.anchor == nil {
		return Key{}, false
	}
	return *s.anchor, true
}

// Keys returns the selected keys sorted by position, then ID.
func (s State) Keys() []Key {
	keys := make([]Key, 0, len(s.selected))
	for k := range s.selected {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Position != keys[j].Position {
			return keys[i].Position < keys[j].Position
		}
		return keys[i].ID < keys[j].ID
	})
	return keys
}

// Toggle flips membership of the key and re-anchors to it when it becomes
// selected. Removing the anchored key clears the anchor.
func (s State) Toggle(k Key) State {
	next := s.clone()
	if _, ok := next.selected[k]; ok {
		delete(next.selected, k)
		if next.anchor != nil && *next.anchor == k {
			next.anchor = nil
		}
		return next
	}
	next.selected[k] = struct{}{}
	next.anchor = &k
	return next
}

// SelectSingle replaces the selection with exactly the given key.
func (s State) SelectSingle(k Key) State {
	return State{
		selected: map[Key]struct{}{k: {}},
		anchor:   &k,
	}
}

// SelectRange replaces the selection with the closed interval between anchor
// and target in document order, walking the ordered, duplicate-aware list in
// either direction, and re-anchors to the target.
//
// If either endpoint is not present in the list the target alone is selected.
func (s State) SelectRange(ordered []models.Track, anchor, target Key) State {
	anchorIdx, targetIdx := -1, -1
	for i, t := range ordered {
		k := NewKey(t)
		if k == anchor {
			anchorIdx = i
		}
		if k == target {
			targetIdx = i
		}
	}

	if anchorIdx < 0 || targetIdx < 0 {
		return s.SelectSingle(target)
	}

	lo, hi := anchorIdx, targetIdx
	if lo > hi {
		lo, hi = hi, lo
	}

	selected := make(map[Key]struct{}, hi-lo+1)
	for i := lo; i <= hi; i++ {
		selected[NewKey(ordered[i])] = struct{}{}
	}

	return State{selected: selected, anchor: &target}
}

// AddMany adds the given keys to the selection without re-anchoring.
func (s State) AddMany(keys []Key) State {
	next := s.clone()
	for _, k := range keys {
		next.selected[k] = struct{}{}
	}
	return next
}

// RemoveMany removes the given keys from the selection. The anchor is cleared
// if it is among the removed keys.
func (s State) RemoveMany(keys []Key) State {
	next := s.clone()
	for _, k := range keys {
		delete(next.selected, k)
		if next.anchor != nil && *next.anchor == k {
			next.anchor = nil
		}
	}
	return next
}

// Clear returns an empty selection.
func (s State) Clear() State {
	return State{}
}
