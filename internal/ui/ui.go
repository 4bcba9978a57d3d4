package ui

import (
	"context"
	"fmt"
	"sort"

	"github.com/ashgrove/trackshift/internal/dragdrop"
	"github.com/ashgrove/trackshift/internal/markers"
	"github.com/ashgrove/trackshift/internal/models"
	"github.com/ashgrove/trackshift/internal/playlist"
	"github.com/ashgrove/trackshift/internal/selection"
	"github.com/ashgrove/trackshift/internal/services"
	"github.com/ashgrove/trackshift/internal/tasks"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	PlaylistListView ViewState = iota
	TrackListView
	CommitView
	ResultView
)

// commitKind distinguishes which engine operation is in flight.
type commitKind int

const (
	commitNone commitKind = iota
	commitMove
	commitRemove
)

// Model represents the TUI application state.
type Model struct {
	ctx       context.Context
	view      ViewState
	service   services.Service
	engine    tasks.CommitEngine
	selection *selection.Store
	markers   *markers.Store
	rowHeight float64
	pageSize  int

	width  int
	height int

	playlistList list.Model
	playlists    []models.Playlist
	trackList    list.Model
	current      *models.Playlist
	pages        []models.PlaylistPage
	tracks       []models.Track

	grabbing   bool
	grabbed    []dragdrop.DragTrack
	pointerRow int
	intent     dragdrop.Intent

	inFlight     commitKind
	progressChan chan tasks.ProgressUpdate
	progress     tasks.ProgressUpdate
	moveResult   *tasks.MoveResult
	removeResult *tasks.RemoveResult
	err          error
	status       string
	help         help.Model
	keys         keyMap
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, svc services.Service, engine tasks.CommitEngine, marks *markers.Store, rowHeight float64, pageSize int) *Model {
	if rowHeight <= 0 {
		rowHeight = 1
	}
	if pageSize <= 0 {
		pageSize = 100
	}
	return &Model{
		ctx:       ctx,
		view:      PlaylistListView,
		service:   svc,
		engine:    engine,
		selection: selection.NewStore(),
		markers:   marks,
		rowHeight: rowHeight,
		pageSize:  pageSize,
		help:      help.New(),
		keys:      newKeyMap(),
	}
}

// Init initializes the TUI by fetching the playlist catalog.
func (m *Model) Init() tea.Cmd {
	return m.fetchPlaylists()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.playlistList.Width() == 0 {
			m.playlistList.SetSize(msg.Width-4, msg.Height-8)
		}
		if m.trackList.Width() == 0 {
			m.trackList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case PlaylistListView:
			return m.handlePlaylistListKeys(msg)
		case TrackListView:
			if m.grabbing {
				return m.handleGrabKeys(msg)
			}
			return m.handleTrackListKeys(msg)
		case ResultView:
			return m.handleResultKeys(msg)
		}

	case playlistsFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.playlists = msg.playlists
		items := make([]list.Item, len(msg.playlists))
		for i, pl := range msg.playlists {
			items[i] = playlistItem{playlist: pl}
		}
		m.playlistList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.playlistList.Title = "Spotify Playlists"
		m.playlistList.SetSize(m.width-4, m.height-8)
		return m, nil

	case tracksFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.view = PlaylistListView
			return m, nil
		}
		pl := msg.playlist
		m.current = &pl
		m.pages = msg.pages
		m.tracks = playlist.Flatten(msg.pages)
		m.selection.Set(selection.State{})
		m.trackList = list.New(m.buildTrackItems(), list.NewDefaultDelegate(), 0, 0)
		m.trackList.Title = fmt.Sprintf("Tracks in '%s'", pl.Name)
		m.trackList.SetSize(m.width-4, m.height-8)
		m.view = TrackListView
		return m, nil

	case progressUpdateMsg:
		m.progress = tasks.ProgressUpdate(msg)
		return m, m.waitForProgress()

	case moveDoneMsg:
		return m.finishMove(msg)

	case removeDoneMsg:
		return m.finishRemove(msg)
	}

	return m.updateLists(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil && m.view != ResultView {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case PlaylistListView:
		return m.renderPlaylistList()
	case TrackListView:
		if m.grabbing {
			return m.renderGrab()
		}
		return m.renderTrackList()
	case CommitView:
		return m.renderCommit()
	case ResultView:
		return m.renderResult()
	default:
		return ""
	}
}

func (m *Model) handlePlaylistListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.enter):
		selected := m.playlistList.SelectedItem()
		if selected != nil {
			if pl, ok := selected.(playlistItem); ok {
				return m, m.fetchTracks(pl.playlist)
			}
		}
	}

	var cmd tea.Cmd
	m.playlistList, cmd = m.playlistList.Update(msg)
	return m, cmd
}

func (m *Model) handleTrackListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.back):
		m.view = PlaylistListView
		m.status = ""
		return m, nil

	case key.Matches(msg, m.keys.toggle):
		if t, ok := m.cursorTrack(); ok {
			m.selection.Update(func(s selection.State) selection.State {
				return s.Toggle(selection.NewKey(t))
			})
			m.refreshTrackItems()
		}
		return m, nil

	case key.Matches(msg, m.keys.ranged):
		if t, ok := m.cursorTrack(); ok {
			target := selection.NewKey(t)
			m.selection.Update(func(s selection.State) selection.State {
				anchor, has := s.Anchor()
				if !has {
					return s.SelectSingle(target)
				}
				return s.SelectRange(m.tracks, anchor, target)
			})
			m.refreshTrackItems()
		}
		return m, nil

	case key.Matches(msg, m.keys.clear):
		m.selection.Set(selection.State{})
		m.refreshTrackItems()
		return m, nil

	case key.Matches(msg, m.keys.marker):
		if m.current != nil {
			m.markers.Toggle(m.current.ID, m.trackList.Index())
			m.refreshTrackItems()
		}
		return m, nil

	case key.Matches(msg, m.keys.grab):
		if t, ok := m.cursorTrack(); ok {
			m.grabbed = dragdrop.DetermineDragTracks(t, m.trackList.Index(), m.selection.Get(), m.tracks)
			m.grabbing = true
			m.pointerRow = m.trackList.Index()
			m.intent = m.dropIntent()
		}
		return m, nil

	case key.Matches(msg, m.keys.remove):
		if m.selection.Get().Count() > 0 {
			return m, m.startRemove()
		}
		m.status = "Nothing selected"
		return m, nil
	}

	var cmd tea.Cmd
	m.trackList, cmd = m.trackList.Update(msg)
	return m, cmd
}

// handleGrabKeys drives the insertion point while tracks are grabbed. Cursor
// movement is translated into synthetic pointer geometry so the landing point
// comes out of the shared drop-intent calculation.
func (m *Model) handleGrabKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.back):
		m.grabbing = false
		m.grabbed = nil
		return m, nil

	case key.Matches(msg, m.keys.up):
		if m.pointerRow > 0 {
			m.pointerRow--
			m.intent = m.dropIntent()
		}
		return m, nil

	case key.Matches(msg, m.keys.down):
		if m.pointerRow < len(m.tracks) {
			m.pointerRow++
			m.intent = m.dropIntent()
		}
		return m, nil

	case key.Matches(msg, m.keys.enter):
		return m, m.startMove()
	}

	return m, nil
}

func (m *Model) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.restart):
		m.view = TrackListView
		m.moveResult = nil
		m.removeResult = nil
		m.err = nil
		return m, nil
	}
	return m, nil
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case PlaylistListView:
		m.playlistList, cmd = m.playlistList.Update(msg)
	case TrackListView:
		m.trackList, cmd = m.trackList.Update(msg)
	}
	return m, cmd
}

// cursorTrack returns the track under the list cursor.
func (m *Model) cursorTrack() (models.Track, bool) {
	idx := m.trackList.Index()
	if idx < 0 || idx >= len(m.tracks) {
		return models.Track{}, false
	}
	return m.tracks[idx], true
}

// dropIntent translates the grab cursor into pointer geometry and resolves the
// insertion point. The pointer sits at the midpoint of the cursor row plus the
// overlay offset, so the computed filtered index equals the cursor row.
func (m *Model) dropIntent() dragdrop.Intent {
	rows := make([]models.RowGeometry, len(m.tracks))
	for i := range m.tracks {
		rows[i] = models.RowGeometry{Index: i, Start: float64(i) * m.rowHeight, Size: m.rowHeight}
	}

	overlay := float64(len(m.grabbed)-1) * m.rowHeight / 2
	return dragdrop.ComputeDropIntent(dragdrop.IntentInput{
		PointerY:         float64(m.pointerRow)*m.rowHeight + m.rowHeight/2 + overlay,
		RowHeight:        m.rowHeight,
		Rows:             rows,
		Visible:          m.tracks,
		DraggedPositions: dragdrop.PositionSet(m.grabbed),
		DragCount:        len(m.grabbed),
	})
}

func (m *Model) buildTrackItems() []list.Item {
	sel := m.selection.Get()
	items := make([]list.Item, len(m.tracks))
	for i, t := range m.tracks {
		marked := false
		if m.current != nil {
			marked = m.markers.HasMarkerAt(m.current.ID, i)
		}
		items[i] = trackItem{
			track:    t,
			selected: sel.Has(selection.NewKey(t)),
			marked:   marked,
		}
	}
	return items
}

func (m *Model) refreshTrackItems() {
	m.trackList.SetItems(m.buildTrackItems())
}

func (m *Model) fetchPlaylists() tea.Cmd {
	return func() tea.Msg {
		playlists, err := m.service.GetPlaylists(m.ctx)
		return playlistsFetchedMsg{playlists: playlists, err: err}
	}
}

func (m *Model) fetchTracks(pl models.Playlist) tea.Cmd {
	return func() tea.Msg {
		pages, err := m.engine.FetchPages(m.ctx, nil, pl.ID, m.pageSize)
		return tracksFetchedMsg{playlist: pl, pages: pages, err: err}
	}
}

// startMove commits the grabbed tracks at the computed insertion point. The
// raw insert-before position goes to the engine untouched; the splice
// semantics perform the removal adjustment exactly once.
func (m *Model) startMove() tea.Cmd {
	positions := make([]int, len(m.grabbed))
	for i, dt := range m.grabbed {
		positions[i] = dt.Track.Position
	}

	req := tasks.MoveRequest{
		PlaylistID:   m.current.ID,
		Pages:        m.pages,
		Positions:    positions,
		InsertBefore: m.intent.InsertBeforeGlobal,
		SnapshotID:   m.snapshotID(),
	}

	m.inFlight = commitMove
	m.view = CommitView
	m.progressChan = make(chan tasks.ProgressUpdate, 50)

	go func() {
		result, err := m.engine.CommitMove(m.ctx, m.progressChan, req)
		m.moveResult = result
		m.err = err
		close(m.progressChan)
	}()

	return m.waitForProgress()
}

// startRemove commits a position-qualified removal of the selected tracks.
func (m *Model) startRemove() tea.Cmd {
	removals := m.qualifiedRemovals()
	if len(removals) == 0 {
		m.status = "Nothing selected"
		return nil
	}

	req := tasks.RemoveRequest{
		PlaylistID: m.current.ID,
		Pages:      m.pages,
		Qualified:  removals,
		SnapshotID: m.snapshotID(),
	}

	m.inFlight = commitRemove
	m.view = CommitView
	m.progressChan = make(chan tasks.ProgressUpdate, 50)

	go func() {
		result, err := m.engine.CommitRemove(m.ctx, m.progressChan, req)
		m.removeResult = result
		m.err = err
		close(m.progressChan)
	}()

	return m.waitForProgress()
}

// qualifiedRemovals groups the selected keys into URI plus position entries.
func (m *Model) qualifiedRemovals() []playlist.Removal {
	byURI := make(map[string][]int)
	var order []string
	for _, k := range m.selection.Get().Keys() {
		if k.Position < 0 || k.Position >= len(m.tracks) {
			continue
		}
		uri := m.tracks[k.Position].URI
		if _, seen := byURI[uri]; !seen {
			order = append(order, uri)
		}
		byURI[uri] = append(byURI[uri], k.Position)
	}

	removals := make([]playlist.Removal, 0, len(order))
	for _, uri := range order {
		removals = append(removals, playlist.Removal{URI: uri, Positions: byURI[uri]})
	}
	return removals
}

func (m *Model) snapshotID() string {
	if len(m.pages) > 0 {
		return m.pages[0].SnapshotID
	}
	if m.current != nil {
		return m.current.SnapshotID
	}
	return ""
}

func (m *Model) waitForProgress() tea.Cmd {
	return func() tea.Msg {
		if m.progressChan == nil {
			return m.doneMsg()
		}

		update, ok := <-m.progressChan
		if !ok {
			return m.doneMsg()
		}
		return progressUpdateMsg(update)
	}
}

func (m *Model) doneMsg() tea.Msg {
	if m.inFlight == commitRemove {
		return removeDoneMsg{result: m.removeResult, err: m.err}
	}
	return moveDoneMsg{result: m.moveResult, err: m.err}
}

func (m *Model) finishMove(msg moveDoneMsg) (tea.Model, tea.Cmd) {
	m.inFlight = commitNone
	m.progressChan = nil
	m.grabbing = false
	m.grabbed = nil
	m.moveResult = msg.result
	m.err = msg.err

	if msg.err == nil && msg.result != nil {
		m.pages = msg.result.Pages
		m.tracks = playlist.Flatten(m.pages)
		m.selection.Set(selection.State{})
		m.refreshTrackItems()
		m.status = fmt.Sprintf("Moved %d splice(s)", len(msg.result.Splices))
	}

	m.view = ResultView
	return m, nil
}

func (m *Model) finishRemove(msg removeDoneMsg) (tea.Model, tea.Cmd) {
	m.inFlight = commitNone
	m.progressChan = nil
	m.removeResult = msg.result
	m.err = msg.err

	if msg.err == nil && msg.result != nil {
		removed := m.removedPositions()
		m.pages = msg.result.Pages
		m.tracks = playlist.Flatten(m.pages)
		m.selection.Set(selection.State{})

		// Markers after each removed slot slide up by one; walk removals from
		// the bottom so earlier adjustments do not skew later ones.
		if m.current != nil {
			sort.Sort(sort.Reverse(sort.IntSlice(removed)))
			for _, pos := range removed {
				m.markers.AdjustIndices(m.current.ID, pos+1, -1)
			}
		}

		m.refreshTrackItems()
		m.status = fmt.Sprintf("Removed %d track(s)", len(removed))
	}

	m.view = ResultView
	return m, nil
}

// removedPositions captures the selection's positions before it is cleared.
func (m *Model) removedPositions() []int {
	keys := m.selection.Get().Keys()
	positions := make([]int, 0, len(keys))
	for _, k := range keys {
		positions = append(positions, k.Position)
	}
	return positions
}

func (m *Model) renderPlaylistList() string {
	helpKeys := []key.Binding{m.keys.enter, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.playlistList.View(), helpView)
}

func (m *Model) renderTrackList() string {
	helpKeys := []key.Binding{m.keys.toggle, m.keys.ranged, m.keys.grab, m.keys.marker, m.keys.remove, m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	view := fmt.Sprintf("%s\n\n%s", m.trackList.View(), helpView)
	if m.status != "" {
		view = fmt.Sprintf("%s\n%s", view, styles.help.Render(m.status))
	}
	return view
}

// renderGrab draws a window of the track list with the insertion line at the
// computed filtered index.
func (m *Model) renderGrab() string {
	title := styles.title.Render(fmt.Sprintf("Moving %d track(s)", len(m.grabbed)))

	window := m.height - 10
	if window < 5 {
		window = 5
	}
	start := m.intent.FilteredIndex - window/2
	if start < 0 {
		start = 0
	}
	end := start + window
	if end > len(m.tracks) {
		end = len(m.tracks)
	}

	dragged := dragdrop.PositionSet(m.grabbed)
	var body string
	for i := start; i <= end; i++ {
		if i == m.intent.FilteredIndex {
			body += styles.drop.Render("──── insert here ────") + "\n"
		}
		if i == end {
			break
		}
		line := "  " + m.tracks[i].Name
		if _, held := dragged[m.tracks[i].Position]; held {
			line = styles.warn.Render("◌ " + m.tracks[i].Name)
		}
		body += line + "\n"
	}

	dropKey := key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "drop"))
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.up, m.keys.down, dropKey, m.keys.back, m.keys.quit})

	return fmt.Sprintf("%s\n%s\n%s", title, body, helpView)
}

func (m *Model) renderCommit() string {
	title := styles.title.Render("Committing Changes")

	var phase string
	switch m.progress.Phase {
	case tasks.Planning:
		phase = m.progress.Message
	case tasks.ApplyLocal:
		phase = "Applying changes locally..."
	case tasks.CommitRemote:
		phase = fmt.Sprintf("Committing to Spotify (%d/%d)", m.progress.Step, m.progress.Total)
	case tasks.Rollback:
		phase = styles.warn.Render("Rolling back local changes...")
	default:
		phase = "Processing..."
	}

	return fmt.Sprintf("%s\n\n%s\n%s", title, phase, m.progress.Message)
}

func (m *Model) renderResult() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Commit failed: %v\n\nPress r to go back, q to quit", m.err))
	}

	title := styles.ok.Render("✓ Commit Complete")
	info := ""
	switch {
	case m.moveResult != nil:
		info = fmt.Sprintf("\nSplices committed: %d\nSnapshot: %s\n", len(m.moveResult.Splices), m.moveResult.SnapshotID)
	case m.removeResult != nil:
		info = fmt.Sprintf("\nSnapshot: %s\n", m.removeResult.SnapshotID)
	}

	helpView := m.help.ShortHelpView([]key.Binding{m.keys.restart, m.keys.quit})
	return fmt.Sprintf("%s\n%s\n%s", title, info, helpView)
}
