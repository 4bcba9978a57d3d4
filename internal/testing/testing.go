// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"testing"

	"github.com/ashgrove/trackshift/internal/models"
	"github.com/ashgrove/trackshift/internal/playlist"
)

// MockService is a configurable test double for services.Service. Zero-value
// methods succeed with empty results; set the function fields to script
// behavior and inspect the call records afterwards.
type MockService struct {
	PlaylistsFn func(ctx context.Context) ([]models.Playlist, error)
	PlaylistFn  func(ctx context.Context, playlistID string) (*models.Playlist, error)
	PageFn      func(ctx context.Context, playlistID string, limit, offset int) (*models.PlaylistPage, error)
	ReorderFn   func(ctx context.Context, playlistID string, rangeStart, insertBefore, rangeLength int, snapshotID string) (string, error)
	RemoveFn    func(ctx context.Context, playlistID string, removals []playlist.Removal, snapshotID string) (string, error)
	AddFn       func(ctx context.Context, playlistID string, uris []string, position *int) (string, error)

	ReorderCalls []ReorderCall
	RemoveCalls  []RemoveCall
	AddCalls     []AddCall
}

// ReorderCall records one ReorderPlaylist invocation.
type ReorderCall struct {
	PlaylistID   string
	RangeStart   int
	InsertBefore int
	RangeLength  int
	SnapshotID   string
}

// RemoveCall records one RemovePlaylistTracks invocation.
type RemoveCall struct {
	PlaylistID string
	Removals   []playlist.Removal
	SnapshotID string
}

// AddCall records one AddPlaylistTracks invocation.
type AddCall struct {
	PlaylistID string
	URIs       []string
	Position   *int
}

func (m *MockService) Authenticate(ctx context.Context, credentials map[string]string) error {
	return nil
}

func (m *MockService) GetPlaylists(ctx context.Context) ([]models.Playlist, error) {
	if m.PlaylistsFn != nil {
		return m.PlaylistsFn(ctx)
	}
	return []models.Playlist{}, nil
}

func (m *MockService) GetPlaylist(ctx context.Context, playlistID string) (*models.Playlist, error) {
	if m.PlaylistFn != nil {
		return m.PlaylistFn(ctx, playlistID)
	}
	return &models.Playlist{ID: playlistID}, nil
}

func (m *MockService) PlaylistTracks(ctx context.Context, playlistID string, limit, offset int) (*models.PlaylistPage, error) {
	if m.PageFn != nil {
		return m.PageFn(ctx, playlistID, limit, offset)
	}
	return &models.PlaylistPage{}, nil
}

func (m *MockService) ReorderPlaylist(ctx context.Context, playlistID string, rangeStart, insertBefore, rangeLength int, snapshotID string) (string, error) {
	m.ReorderCalls = append(m.ReorderCalls, ReorderCall{
		PlaylistID:   playlistID,
		RangeStart:   rangeStart,
		InsertBefore: insertBefore,
		RangeLength:  rangeLength,
		SnapshotID:   snapshotID,
	})
	if m.ReorderFn != nil {
		return m.ReorderFn(ctx, playlistID, rangeStart, insertBefore, rangeLength, snapshotID)
	}
	return fmt.Sprintf("snapshot-%d", len(m.ReorderCalls)), nil
}

func (m *MockService) RemovePlaylistTracks(ctx context.Context, playlistID string, removals []playlist.Removal, snapshotID string) (string, error) {
	m.RemoveCalls = append(m.RemoveCalls, RemoveCall{
		PlaylistID: playlistID,
		Removals:   removals,
		SnapshotID: snapshotID,
	})
	if m.RemoveFn != nil {
		return m.RemoveFn(ctx, playlistID, removals, snapshotID)
	}
	return "snapshot-after-remove", nil
}

func (m *MockService) AddPlaylistTracks(ctx context.Context, playlistID string, uris []string, position *int) (string, error) {
	var pos *int
	if position != nil {
		p := *position
		pos = &p
	}
	m.AddCalls = append(m.AddCalls, AddCall{PlaylistID: playlistID, URIs: uris, Position: pos})
	if m.AddFn != nil {
		return m.AddFn(ctx, playlistID, uris, position)
	}
	return "snapshot-after-add", nil
}

func (m *MockService) Name() string { return "mock" }

// NewTracks builds n sequential tracks with positions 0..n-1 and ids "t0".."tn-1".
func NewTracks(n int) []models.Track {
	tracks := make([]models.Track, n)
	for i := range tracks {
		tracks[i] = models.Track{
			ID:       fmt.Sprintf("t%d", i),
			URI:      fmt.Sprintf("spotify:track:t%d", i),
			Name:     fmt.Sprintf("Track %d", i),
			Position: i,
		}
	}
	return tracks
}

// NewPages splits tracks into pages of pageSize, positions preserved.
func NewPages(tracks []models.Track, pageSize, total int, snapshotID string) []models.PlaylistPage {
	var pages []models.PlaylistPage
	for start := 0; start < len(tracks); start += pageSize {
		end := start + pageSize
		if end > len(tracks) {
			end = len(tracks)
		}
		page := models.PlaylistPage{
			Tracks:     append([]models.Track(nil), tracks[start:end]...),
			SnapshotID: snapshotID,
			Total:      total,
		}
		pages = append(pages, page)
	}
	return pages
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// SequenceRoundTripper returns scripted responses in order, then errors.
type SequenceRoundTripper struct {
	responses []*http.Response
	calls     int
}

func NewSequenceRoundTripper(responses ...*http.Response) *SequenceRoundTripper {
	return &SequenceRoundTripper{responses: responses}
}

func (s *SequenceRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	if s.calls >= len(s.responses) {
		return nil, errors.New("no scripted response left")
	}
	resp := s.responses[s.calls]
	s.calls++
	return resp, nil
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
