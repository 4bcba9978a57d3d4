package selection

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ashgrove/trackshift/internal/models"
)

// keySeparator joins track ID and position in the string form of a [Key].
const keySeparator = "::"

// Key identifies one occurrence of a track within a playlist.
//
// Track IDs are not unique within a playlist (duplicates are legitimate), so
// the position is part of the identity.
type Key struct {
	ID       string
	Position int
}

// NewKey derives the selection key for a track occurrence.
func NewKey(t models.Track) Key {
	return Key{ID: t.ID, Position: t.Position}
}

// String renders the key as "<id>::<position>".
func (k Key) String() string {
	return fmt.Sprintf("%s%s%d", k.ID, keySeparator, k.Position)
}

// ParseKey is the exact inverse of [Key.String].
//
// Returns false for malformed input: missing separator, empty ID, or a
// non-numeric position suffix. It never panics. The separator is matched from
// the right so an ID containing "::" still round-trips.
func ParseKey(s string) (Key, bool) {
	idx := strings.LastIndex(s, keySeparator)
	if idx < 0 {
		return Key{}, false
	}

	id := s[:idx]
	if id == "" {
		return Key{}, false
	}

	position, err := strconv.Atoi(s[idx+len(keySeparator):])
	if err != nil {
		return Key{}, false
	}

	return Key{ID: id, Position: position}, true
}
