package dragdrop

import (
	"github.com/ashgrove/trackshift/internal/models"
	"github.com/ashgrove/trackshift/internal/selection"
)

// DropMode determines what a cross-list drop does with the source tracks.
type DropMode int

const (
	ModeMove DropMode = iota
	ModeCopy
)

func (m DropMode) String() string {
	switch m {
	case ModeMove:
		return "move"
	case ModeCopy:
		return "copy"
	default:
		return ""
	}
}

// Invert returns the opposite mode.
func (m DropMode) Invert() DropMode {
	if m == ModeMove {
		return ModeCopy
	}
	return ModeMove
}

// Recognized descriptor types for drag sources and drop targets.
const (
	SourceTypeTrack       = "track"
	SourceTypeLastfmTrack = "lastfm-track"

	TargetTypeTrack  = "track"
	TargetTypePanel  = "panel"
	TargetTypePlayer = "player"
)

// SourceDescriptor identifies what is being dragged.
type SourceDescriptor struct {
	Type   string
	ListID string
}

// TargetDescriptor identifies what the drag is currently over.
type TargetDescriptor struct {
	Type    string
	ListID  string
	PanelID string
}

// DropContext carries gesture-level facts the descriptors do not.
type DropContext struct {
	// HasTarget is false when the pointer is not over any drop surface at all.
	HasTarget bool
}

// DragTrack pairs a track with its index in the ordered list at drag start.
type DragTrack struct {
	Track models.Track
	Index int
}

// DetermineDragTracks resolves which tracks a grab moves.
//
// If the grabbed track's key is part of the current selection, the whole
// selection drags, in ascending list order with their indices. Otherwise only
// the grabbed track drags.
func DetermineDragTracks(grabbed models.Track, grabbedIndex int, sel selection.State, ordered []models.Track) []DragTrack {
	if !sel.Has(selection.NewKey(grabbed)) {
		return []DragTrack{{Track: grabbed, Index: grabbedIndex}}
	}

	var tracks []DragTrack
	for i, t := range ordered {
		if sel.Has(selection.NewKey(t)) {
			tracks = append(tracks, DragTrack{Track: t, Index: i})
		}
	}
	return tracks
}

// DetermineEffectiveMode resolves the mode a drop executes under.
//
// A drop within the same list and target is always a move: it is a reorder,
// not a relocation, whatever the configured mode says. Otherwise the
// configured mode applies, and a held modifier key inverts it only where the
// drop surface allows inversion.
func DetermineEffectiveMode(sameListSameTarget bool, configured DropMode, modifierPressed, modifierAllowed bool) DropMode {
	if sameListSameTarget {
		return ModeMove
	}
	if modifierPressed && modifierAllowed {
		return configured.Invert()
	}
	return configured
}

// ValidateDropOperation checks a drop gesture and returns a descriptive
// blocking reason, or "" when the drop is allowed. Callers must treat any
// non-empty result as "drop blocked"; nothing here is an error condition.
func ValidateDropOperation(src *SourceDescriptor, dst *TargetDescriptor, ctx DropContext) string {
	if !ctx.HasTarget {
		return "No drop target"
	}
	if src == nil {
		return "Missing source data"
	}
	if src.Type != SourceTypeTrack && src.Type != SourceTypeLastfmTrack {
		return "Invalid source type"
	}
	if dst == nil {
		return "Missing target data"
	}
	if dst.Type != TargetTypeTrack && dst.Type != TargetTypePanel && dst.Type != TargetTypePlayer {
		return "Invalid target type"
	}
	return ""
}

// IsBrowsePanelDrop reports whether the drop landed on a non-list browse
// surface: a panel identifier with no destination list.
func IsBrowsePanelDrop(destListID, panelID string) bool {
	return panelID != "" && destListID == ""
}

// ShouldAdjustTargetIndex reports whether the visual target index needs
// reconciling before the splice is sent: always for multi-item drags, and
// whenever no continuously-computed pointer position exists (the target came
// from a discrete click instead).
func ShouldAdjustTargetIndex(computedPosition *int, dragCount int) bool {
	return dragCount > 1 || computedPosition == nil
}
