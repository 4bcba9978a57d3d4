package tasks

import "fmt"

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	Planning Phase = iota
	ApplyLocal
	CommitRemote
	Rollback
	InsertMarkers
	FetchTracks
)

func (p Phase) String() string {
	switch p {
	case Planning:
		return "planning"
	case ApplyLocal:
		return "apply_local"
	case CommitRemote:
		return "commit_remote"
	case Rollback:
		return "rollback"
	case InsertMarkers:
		return "insert_markers"
	case FetchTracks:
		return "fetch_tracks"
	default:
		return ""
	}
}

func planSplicesUpdate(count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Planning,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Planned %d splice call(s)", count),
	}
}

func applyLocalUpdate() ProgressUpdate {
	return ProgressUpdate{
		Phase:   ApplyLocal,
		Step:    1,
		Total:   1,
		Message: "Applying change to cached pages...",
	}
}

func commitRemoteUpdate(step, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   CommitRemote,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Committing to Spotify...", step, total),
	}
}

func rollbackUpdate(err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Rollback,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Remote commit failed, restoring local state: %v", err),
	}
}

func insertMarkerUpdate(step, total, position int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   InsertMarkers,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Inserting at position %d...", step, total, position),
	}
}

func fetchTracksUpdate(fetched, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchTracks,
		Step:    fetched,
		Total:   total,
		Message: fmt.Sprintf("Fetched %d/%d tracks...", fetched, total),
	}
}
