package ui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/perch/internal/catalog"
	"github.com/five82/perch/internal/prefs"
	"github.com/five82/perch/internal/state"
)

// View represents the current active view.
type View int

const (
	ViewCatalog View = iota
	ViewSearch
	ViewFavorites
	ViewComparison
	ViewHistory
	ViewLogs
)

var viewOrder = []View{ViewCatalog, ViewSearch, ViewFavorites, ViewComparison, ViewHistory, ViewLogs}

func (v View) String() string {
	switch v {
	case ViewSearch:
		return "Search"
	case ViewFavorites:
		return "Favorites"
	case ViewComparison:
		return "Compare"
	case ViewHistory:
		return "History"
	case ViewLogs:
		return "Logs"
	default:
		return "Catalog"
	}
}

// Controller performs catalog operations. Their results reach the UI through
// the state store, so the UI only needs errors and the opened peripheral.
type Controller interface {
	Refresh(ctx context.Context) error
	LoadCategories(ctx context.Context) error
	ToggleFavorite(ctx context.Context, id string) error
	Open(ctx context.Context, id string) (catalog.Peripheral, bool, error)
	DeleteHistory(ctx context.Context, id string) error
	ClearHistory(ctx context.Context) error
}

// Options configures the UI.
type Options struct {
	Context    context.Context
	Store      *state.Store
	Controller Controller
	Prefs      prefs.Prefs
	PrefsPath  string
	LogPath    string
	APIURL     string
	// Tick drives log following and the relative sync time. Zero uses 2s.
	Tick time.Duration
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	store     *state.Store
	ctrl      Controller
	keys      keyMap
	prefs     prefs.Prefs
	prefsPath string
	logPath   string
	apiURL    string
	tick      time.Duration

	updates     <-chan struct{}
	unsubscribe func()

	// UI state
	theme       Theme
	currentView View
	width       int
	height      int
	ready       bool
	focusedPane int // 0 = list, 1 = detail
	cursors     map[View]int

	// Data state
	snapshot state.Snapshot

	// Detail state
	detailViewport viewport.Model
	opened         *catalog.Peripheral

	// Search state
	searchInput  textinput.Model
	searchActive bool

	// Log state
	logViewport viewport.Model
	logState    logState

	// Overlays
	showHelp bool
	modal    Modal

	// notice is a transient UI-side message (prefs save failures and the like).
	notice string
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	tick := opts.Tick
	if tick == 0 {
		tick = 2 * time.Second
	}

	userPrefs := opts.Prefs
	if userPrefs.Theme == "" {
		userPrefs = prefs.Defaults()
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	ti := textinput.New()
	ti.Placeholder = "name, brand or description"
	ti.Prompt = ""
	ti.CharLimit = 80

	m := Model{
		ctx:         ctx,
		store:       opts.Store,
		ctrl:        opts.Controller,
		keys:        DefaultKeyMap(),
		prefs:       userPrefs,
		prefsPath:   prefsPath,
		logPath:     opts.LogPath,
		apiURL:      opts.APIURL,
		tick:        tick,
		theme:       GetTheme(userPrefs.Theme),
		currentView: ViewCatalog,
		cursors:     make(map[View]int),
		searchInput: ti,
		logState:    logState{follow: true},
	}
	if m.store != nil {
		m.updates, m.unsubscribe = m.store.Subscribe()
		m.snapshot = m.store.Snapshot()
		m.searchInput.SetValue(m.snapshot.Criteria.Search)
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(m.tick)}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store), waitForUpdateCmd(m.store, m.updates))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.initDetailViewport()
			m.initLogViewport()
		}
		m.ready = true
		m.updateDetailViewport()
		m.updateLogViewport()
		return m, nil

	case snapshotMsg:
		m.applySnapshot(state.Snapshot(msg))
		return m, nil

	case updatedMsg:
		m.applySnapshot(state.Snapshot(msg))
		return m, waitForUpdateCmd(m.store, m.updates)

	case dispatchMsg:
		if m.store != nil {
			m.applySnapshot(m.store.Dispatch(msg.event))
		}
		return m, nil

	case openedMsg:
		return m.handleOpened(msg)

	case actionMsg:
		// Failures are dispatched to the store by the controller.
		return m, nil

	case tickMsg:
		return m.handleTick()

	case logLinesMsg:
		m.handleLogLines(msg)
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.modal != nil {
		return m.modal.View(m.theme, m.width, m.height)
	}
	return m.renderMain()
}

// applySnapshot stores snap and keeps cursors and panes valid.
func (m *Model) applySnapshot(snap state.Snapshot) {
	m.snapshot = snap
	for _, v := range viewOrder {
		m.clampCursor(v)
	}
	if m.opened != nil {
		if p, ok := snap.Lookup(m.opened.ID); ok {
			m.opened = &p
		}
	}
	m.updateDetailViewport()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	if m.modal != nil {
		next, cmd, closed := m.modal.Update(msg, m.keys)
		if closed {
			m.modal = nil
		} else {
			m.modal = next
		}
		return m, cmd
	}

	if m.searchActive {
		return m.handleSearchInput(msg)
	}

	if cmd, handled := m.handleGlobalKey(msg); handled {
		return m, cmd
	}

	switch m.currentView {
	case ViewComparison:
		return m.handleComparisonKey(msg)
	case ViewLogs:
		return m.handleLogsKey(msg)
	default:
		return m.handleListKey(msg)
	}
}

// switchView changes the active view and resets pane focus.
func (m *Model) switchView(v View) tea.Cmd {
	m.currentView = v
	m.focusedPane = 0
	m.opened = nil
	m.updateDetailViewport()
	if v == ViewLogs {
		return m.refreshLogs()
	}
	return nil
}

// cycleView moves forward (or backward) through viewOrder.
func (m *Model) cycleView(step int) tea.Cmd {
	idx := 0
	for i, v := range viewOrder {
		if v == m.currentView {
			idx = i
			break
		}
	}
	n := len(viewOrder)
	return m.switchView(viewOrder[((idx+step)%n+n)%n])
}

// handleTick refreshes logs when following and schedules the next tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{tickCmd(m.tick)}
	if m.currentView == ViewLogs && m.logState.follow {
		if cmd := m.refreshLogs(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, tea.Batch(cmds...)
}

// savePrefs persists theme and category and records a notice on failure.
func (m *Model) savePrefs() {
	m.prefs.Theme = m.theme.Name
	m.prefs.Category = ""
	if c := m.snapshot.Criteria.Category; c.Set {
		m.prefs.Category = c.Value
	}
	if m.prefsPath == "" {
		return
	}
	if err := prefs.Save(m.prefsPath, m.prefs); err != nil {
		m.notice = "prefs not saved: " + err.Error()
		return
	}
	m.notice = ""
}

// renderMain renders header, command bar and the active view.
func (m Model) renderMain() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")
	b.WriteString(m.renderContent())
	return b.String()
}

// renderContent renders the main content area for the current view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewSearch:
		return m.renderSearch()
	case ViewFavorites:
		return m.renderFavorites()
	case ViewComparison:
		return m.renderComparison()
	case ViewHistory:
		return m.renderHistory()
	case ViewLogs:
		return m.renderLogs()
	default:
		return m.renderCatalog()
	}
}

// contentHeight is the height left under the header and command bar.
func (m Model) contentHeight() int {
	return max(m.height-2, 3)
}

// Messages

type tickMsg time.Time

// snapshotMsg carries a one-off snapshot read.
type snapshotMsg state.Snapshot

// updatedMsg carries the snapshot read after a store notification.
type updatedMsg state.Snapshot

// dispatchMsg asks Update to apply an event to the store.
type dispatchMsg struct {
	event state.Event
}

type openedMsg struct {
	peripheral catalog.Peripheral
	found      bool
	err        error
}

type actionMsg struct {
	err error
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

// waitForUpdateCmd blocks until the store changes. It yields nil once the
// subscription is closed.
func waitForUpdateCmd(store *state.Store, updates <-chan struct{}) tea.Cmd {
	if store == nil || updates == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-updates; !ok {
			return nil
		}
		return updatedMsg(store.Snapshot())
	}
}

func dispatchCmd(ev state.Event) tea.Cmd {
	return func() tea.Msg {
		return dispatchMsg{event: ev}
	}
}

// actionCmd runs a controller call off the UI goroutine.
func (m Model) actionCmd(fn func(ctx context.Context, c Controller) error) tea.Cmd {
	if m.ctrl == nil {
		return nil
	}
	ctx, ctrl := m.ctx, m.ctrl
	return func() tea.Msg {
		return actionMsg{err: fn(ctx, ctrl)}
	}
}

func (m Model) openCmd(id string) tea.Cmd {
	if m.ctrl == nil {
		return nil
	}
	ctx, ctrl := m.ctx, m.ctrl
	return func() tea.Msg {
		p, found, err := ctrl.Open(ctx, id)
		return openedMsg{peripheral: p, found: found, err: err}
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	if m.unsubscribe != nil {
		defer m.unsubscribe()
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && m.ctx.Err() != nil {
		return nil
	}
	return err
}
