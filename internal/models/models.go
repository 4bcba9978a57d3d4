package models

// Track represents a single playlist entry.
//
// Position is the 0-based index within the full playlist, not within any page
// or filtered view. It is not unique: the same track may legitimately appear
// at several positions.
type Track struct {
	ID         string `json:"id"`
	URI        string `json:"uri"`
	Name       string `json:"name"`
	Artists    string `json:"artists"`
	Album      string `json:"album,omitempty"`
	DurationMS int    `json:"duration_ms"`
	Position   int    `json:"position"`
}

// Playlist represents playlist metadata.
type Playlist struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	TrackCount  int    `json:"track_count"`
	SnapshotID  string `json:"snapshot_id"`
	Public      bool   `json:"public"`
}

// PlaylistPage is one fetched page of a playlist's tracks.
//
// An entire playlist is cached as an ordered slice of pages; mutations treat
// the slice as one flat sequence and preserve each page's original size.
type PlaylistPage struct {
	Tracks     []Track `json:"tracks"`
	SnapshotID string  `json:"snapshot_id"`
	Total      int     `json:"total"`
	NextCursor string  `json:"next_cursor,omitempty"`
}

// RowGeometry describes a currently-rendered row in a virtualized scroll
// container: its index in the displayed (filtered) list, its offset from the
// top of the scrollable content, and its height.
type RowGeometry struct {
	Index int
	Start float64
	Size  float64
}
