// package tasks implements playlist mutation orchestration.
//
// The core abstraction is CommitEngine, which turns a resolved drop into the
// splice calls the remote contract accepts, keeps the local page cache in
// lockstep, and restores it when the remote rejects the change. Operations
// emit progress updates via channels for non-blocking status reporting to
// CLI/UI layers.
package tasks

import (
	"context"
	"fmt"
	"sort"

	"github.com/ashgrove/trackshift/internal/models"
	"github.com/ashgrove/trackshift/internal/playlist"
	"github.com/ashgrove/trackshift/internal/services"
	"github.com/ashgrove/trackshift/internal/shared"
	"golang.org/x/time/rate"
)

// Splice is one planned remote reorder call, in the coordinates current at
// the time the call executes.
type Splice struct {
	RangeStart   int
	InsertBefore int
	RangeLength  int
}

// MoveRequest describes a drop to commit.
type MoveRequest struct {
	PlaylistID string
	Pages      []models.PlaylistPage
	// Positions are the dragged tracks' global positions. They need not be
	// contiguous; scattered runs become sequential splices.
	Positions []int
	// InsertBefore is the RAW drop position in pre-removal coordinates, as
	// produced by drop-intent computation. The engine and the remote contract
	// both perform the removal adjustment; pre-adjusting double-subtracts.
	InsertBefore int
	SnapshotID   string
}

// MoveResult contains the outcome of a commit.
type MoveResult struct {
	Pages      []models.PlaylistPage // pages after the commit (or the originals on rollback)
	Splices    []Splice              // remote calls that were planned
	SnapshotID string                // snapshot id after the last successful call
	RolledBack bool
}

// RemoveRequest describes a track removal to commit.
type RemoveRequest struct {
	PlaylistID string
	Pages      []models.PlaylistPage
	URIs       []string
	Qualified  []playlist.Removal
	SnapshotID string
}

// RemoveResult contains the outcome of a removal.
type RemoveResult struct {
	Pages      []models.PlaylistPage
	SnapshotID string
	RolledBack bool
}

// SpliceRecorder persists committed splices; satisfied by
// repositories.SnapshotRepository.
type SpliceRecorder interface {
	Save(playlistID string, pages []models.PlaylistPage) error
	RecordSplice(playlistID string, rangeStart, insertBefore, rangeLength int) error
}

// MarkerSource supplies insertion positions for marker batch inserts;
// satisfied by markers.Store.
type MarkerSource interface {
	Positions(listID string, itemsPerInsert int) []int
	ShiftAfterMultiInsert(listID string)
}

// CommitEngine defines mutation operations against the remote playlist service.
type CommitEngine interface {
	// CommitMove applies a drop optimistically and commits it remotely.
	CommitMove(ctx context.Context, progress chan<- ProgressUpdate, req MoveRequest) (*MoveResult, error)

	// CommitRemove removes tracks optimistically and commits remotely.
	CommitRemove(ctx context.Context, progress chan<- ProgressUpdate, req RemoveRequest) (*RemoveResult, error)

	// InsertAtMarkers performs one single-item insert at every stored marker
	// in ascending order, then shifts the stored markers accordingly.
	InsertAtMarkers(ctx context.Context, progress chan<- ProgressUpdate, playlistID, uri string) error

	// FetchPages retrieves a playlist's complete paginated track list.
	FetchPages(ctx context.Context, progress chan<- ProgressUpdate, playlistID string, pageSize int) ([]models.PlaylistPage, error)
}

// DropEngine implements [CommitEngine].
type DropEngine struct {
	service  services.Service
	recorder SpliceRecorder
	markers  MarkerSource
	limiter  *rate.Limiter
}

// NewDropEngine creates a DropEngine. The recorder may be nil (no
// persistence); the limiter defaults to 5 requests/second.
func NewDropEngine(svc services.Service, recorder SpliceRecorder, markers MarkerSource, limiter *rate.Limiter) *DropEngine {
	if limiter == nil {
		limiter = rate.NewLimiter(rate.Limit(5), 1)
	}
	return &DropEngine{service: svc, recorder: recorder, markers: markers, limiter: limiter}
}

// sendProgress sends a progress update through the channel without blocking.
func (e *DropEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// PlanSplices decomposes a drop into the sequence of contiguous-range splice
// calls the remote contract requires, each in the coordinates current when it
// runs.
//
// Runs of dragged positions are moved in ascending order, each inserted
// before the same anchor track (the track originally at insertBefore); runs
// placed earlier end up ahead of later ones, composing to "remove all dragged
// tracks, reinsert as one block". Positions are tracked through each
// intermediate splice so later calls use live coordinates.
func PlanSplices(length int, positions []int, insertBefore int) []Splice {
	if len(positions) == 0 || length == 0 {
		return nil
	}

	dragged := append([]int(nil), positions...)
	sort.Ints(dragged)

	// work holds original flat indices; -1 marks the append anchor.
	work := make([]int, length)
	for i := range work {
		work[i] = i
	}

	anchor := insertBefore
	if anchor > length {
		anchor = length
	}

	var splices []Splice
	for start := 0; start < len(dragged); {
		end := start + 1
		for end < len(dragged) && dragged[end] == dragged[end-1]+1 {
			end++
		}
		run := dragged[start:end]

		rangeStart := indexOf(work, run[0])
		rangeLength := len(run)

		before := len(work)
		if anchor < length {
			before = indexOf(work, anchor)
		}

		splices = append(splices, Splice{
			RangeStart:   rangeStart,
			InsertBefore: before,
			RangeLength:  rangeLength,
		})

		work = spliceInts(work, rangeStart, before, rangeLength)
		start = end
	}

	return splices
}

// CommitMove applies the drop to the cached pages immediately and then
// commits the planned splices to the remote service. The raw insertBefore is
// handed straight to the mutator; the removal adjustment happens exactly once,
// inside the splice semantics.
func (e *DropEngine) CommitMove(ctx context.Context, progress chan<- ProgressUpdate, req MoveRequest) (*MoveResult, error) {
	if e.service == nil {
		return nil, fmt.Errorf("%w: service not initialized", shared.ErrServiceUnavailable)
	}
	if len(req.Positions) == 0 {
		return nil, fmt.Errorf("%w: no tracks to move", shared.ErrInvalidInput)
	}

	flat := playlist.Flatten(req.Pages)
	splices := PlanSplices(len(flat), req.Positions, req.InsertBefore)
	e.sendProgress(progress, planSplicesUpdate(len(splices)))

	e.sendProgress(progress, applyLocalUpdate())
	pages := req.Pages
	for _, s := range splices {
		pages = playlist.ApplyReorder(pages, s.RangeStart, s.InsertBefore, s.RangeLength)
	}

	result := &MoveResult{Pages: pages, Splices: splices, SnapshotID: req.SnapshotID}

	for i, s := range splices {
		e.sendProgress(progress, commitRemoteUpdate(i+1, len(splices)))

		if err := e.limiter.Wait(ctx); err != nil {
			return e.rollbackMove(progress, result, req, err)
		}

		snapshotID, err := e.service.ReorderPlaylist(ctx, req.PlaylistID, s.RangeStart, s.InsertBefore, s.RangeLength, result.SnapshotID)
		if err != nil {
			return e.rollbackMove(progress, result, req, err)
		}
		result.SnapshotID = snapshotID

		if e.recorder != nil {
			if err := e.recorder.RecordSplice(req.PlaylistID, s.RangeStart, s.InsertBefore, s.RangeLength); err != nil {
				return result, fmt.Errorf("commit succeeded but recording failed: %w", err)
			}
		}
	}

	if e.recorder != nil && len(result.Pages) > 0 {
		if err := e.recorder.Save(req.PlaylistID, result.Pages); err != nil {
			return result, fmt.Errorf("commit succeeded but caching failed: %w", err)
		}
	}

	return result, nil
}

// rollbackMove restores the caller's pre-mutation pages. The local transform
// was pure, so restoration is a value swap; the remote side may need a
// refetch if some of several splices already landed.
func (e *DropEngine) rollbackMove(progress chan<- ProgressUpdate, result *MoveResult, req MoveRequest, cause error) (*MoveResult, error) {
	e.sendProgress(progress, rollbackUpdate(cause))
	result.Pages = req.Pages
	result.RolledBack = true
	return result, fmt.Errorf("%w: reorder failed: %v", shared.ErrAPIRequest, cause)
}

// CommitRemove removes tracks optimistically and commits the removal remotely.
func (e *DropEngine) CommitRemove(ctx context.Context, progress chan<- ProgressUpdate, req RemoveRequest) (*RemoveResult, error) {
	if e.service == nil {
		return nil, fmt.Errorf("%w: service not initialized", shared.ErrServiceUnavailable)
	}
	if len(req.URIs) == 0 && len(req.Qualified) == 0 {
		return nil, fmt.Errorf("%w: nothing to remove", shared.ErrInvalidInput)
	}

	e.sendProgress(progress, applyLocalUpdate())
	pages := playlist.ApplyRemove(req.Pages, req.URIs, req.Qualified)

	removals := req.Qualified
	if len(removals) == 0 {
		for _, uri := range req.URIs {
			removals = append(removals, playlist.Removal{URI: uri})
		}
	}

	e.sendProgress(progress, commitRemoteUpdate(1, 1))
	if err := e.limiter.Wait(ctx); err != nil {
		e.sendProgress(progress, rollbackUpdate(err))
		return &RemoveResult{Pages: req.Pages, SnapshotID: req.SnapshotID, RolledBack: true},
			fmt.Errorf("%w: removal failed: %v", shared.ErrAPIRequest, err)
	}

	snapshotID, err := e.service.RemovePlaylistTracks(ctx, req.PlaylistID, removals, req.SnapshotID)
	if err != nil {
		e.sendProgress(progress, rollbackUpdate(err))
		return &RemoveResult{Pages: req.Pages, SnapshotID: req.SnapshotID, RolledBack: true},
			fmt.Errorf("%w: removal failed: %v", shared.ErrAPIRequest, err)
	}

	result := &RemoveResult{Pages: pages, SnapshotID: snapshotID}

	if e.recorder != nil && len(pages) > 0 {
		if err := e.recorder.Save(req.PlaylistID, pages); err != nil {
			return result, fmt.Errorf("removal succeeded but caching failed: %w", err)
		}
	}

	return result, nil
}

// InsertAtMarkers performs one single-item insert at every stored marker in
// ascending order. Each effective position accounts for the shift from the
// inserts before it; afterwards the stored markers are shifted to keep
// pointing at the same gaps.
func (e *DropEngine) InsertAtMarkers(ctx context.Context, progress chan<- ProgressUpdate, playlistID, uri string) error {
	if e.service == nil {
		return fmt.Errorf("%w: service not initialized", shared.ErrServiceUnavailable)
	}
	if e.markers == nil {
		return fmt.Errorf("%w: no marker store configured", shared.ErrServiceUnavailable)
	}

	positions := e.markers.Positions(playlistID, 1)
	if len(positions) == 0 {
		return fmt.Errorf("%w: no markers for playlist %s", shared.ErrInvalidInput, playlistID)
	}

	for i, pos := range positions {
		e.sendProgress(progress, insertMarkerUpdate(i+1, len(positions), pos))

		if err := e.limiter.Wait(ctx); err != nil {
			return err
		}

		position := pos
		if _, err := e.service.AddPlaylistTracks(ctx, playlistID, []string{uri}, &position); err != nil {
			return fmt.Errorf("%w: insert at position %d failed: %v", shared.ErrAPIRequest, pos, err)
		}
	}

	e.markers.ShiftAfterMultiInsert(playlistID)
	return nil
}

// FetchPages retrieves a playlist's complete track list page by page. The
// snapshot id is fetched once up front and stamped on every page, so a full
// fetch costs one playlist lookup plus one request per page.
func (e *DropEngine) FetchPages(ctx context.Context, progress chan<- ProgressUpdate, playlistID string, pageSize int) ([]models.PlaylistPage, error) {
	if e.service == nil {
		return nil, fmt.Errorf("%w: service not initialized", shared.ErrServiceUnavailable)
	}
	if pageSize <= 0 {
		pageSize = 100
	}

	if err := e.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	pl, err := e.service.GetPlaylist(ctx, playlistID)
	if err != nil {
		return nil, err
	}

	var pages []models.PlaylistPage
	offset := 0
	for {
		if err := e.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		page, err := e.service.PlaylistTracks(ctx, playlistID, pageSize, offset)
		if err != nil {
			return nil, err
		}
		page.SnapshotID = pl.SnapshotID
		pages = append(pages, *page)
		offset += len(page.Tracks)

		e.sendProgress(progress, fetchTracksUpdate(offset, page.Total))

		if page.NextCursor == "" || len(page.Tracks) == 0 || offset >= page.Total {
			break
		}
	}

	if e.recorder != nil && len(pages) > 0 {
		if err := e.recorder.Save(playlistID, pages); err != nil {
			return pages, fmt.Errorf("fetch succeeded but caching failed: %w", err)
		}
	}

	return pages, nil
}

// indexOf returns the index of v in s, or len(s) when absent.
func indexOf(s []int, v int) int {
	for i, x := range s {
		if x == v {
			return i
		}
	}
	return len(s)
}

// spliceInts applies the splice contract to a slice of ints: remove
// rangeLength at rangeStart, reinsert before insertBefore expressed in
// pre-removal coordinates.
func spliceInts(s []int, rangeStart, insertBefore, rangeLength int) []int {
	removed := append([]int(nil), s[rangeStart:rangeStart+rangeLength]...)
	rest := append(append([]int(nil), s[:rangeStart]...), s[rangeStart+rangeLength:]...)

	insertAt := insertBefore
	if insertBefore > rangeStart {
		insertAt = insertBefore - rangeLength
	}
	if insertAt > len(rest) {
		insertAt = len(rest)
	}

	out := append(append(append([]int(nil), rest[:insertAt]...), removed...), rest[insertAt:]...)
	return out
}
