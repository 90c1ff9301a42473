package ui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/five82/atlas/internal/api"
	"github.com/five82/atlas/internal/config"
	"github.com/five82/atlas/internal/logtail"
	"github.com/five82/atlas/internal/prefs"
	"github.com/five82/atlas/internal/profile"
	"github.com/five82/atlas/internal/saved"
	"github.com/five82/atlas/internal/state"
	"github.com/five82/atlas/internal/viewcount"
)

// View represents the current active view.
type View int

const (
	ViewCatalog View = iota
	ViewDetail
	ViewSaved
	ViewLogs
)

func (v View) String() string {
	switch v {
	case ViewDetail:
		return "Detail"
	case ViewSaved:
		return "Saved"
	case ViewLogs:
		return "Logs"
	default:
		return "Countries"
	}
}

// Options configures the UI.
type Options struct {
	Context   context.Context
	Client    api.Backend
	Store     *state.Store
	Config    *config.Config
	Logger    *zap.Logger
	PollTick  time.Duration
	ThemeName string
	Prefs     prefs.Prefs
	PrefsPath string
	// Country opens the detail view of this code on start.
	Country string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	store     *state.Store
	config    *config.Config
	logger    *zap.Logger
	prefs     prefs.Prefs
	prefsPath string
	pollTick  time.Duration

	// Per-session collaborators; pointers so value copies of Model share them.
	views      *viewcount.Counter
	saveAction *saved.Action
	savedStore *saved.Store
	form       *profile.Form

	// UI state
	keys        keyMap
	theme       Theme
	currentView View
	width       int
	height      int
	ready       bool

	// Data state
	snapshot    state.Snapshot
	lastUpdated time.Time

	// Catalog state
	selectedRow int

	// Detail state
	detailCode  string
	detailVisit int // bumped on every open so late save replies can be matched
	saveNote    string

	// Saved page state
	savedSnap   saved.Snapshot
	savedBusy   bool
	savedScroll int
	formInputs  [4]textinput.Model
	formFocus   int // -1 when the card list has focus
	formErr     error

	// Log state
	logViewport viewport.Model
	logEntries  []logtail.Entry

	// Help overlay
	showHelp bool
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	pollTick := opts.PollTick
	if pollTick == 0 {
		pollTick = DefaultUIInterval
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = opts.Prefs.Theme
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	m := Model{
		ctx:         ctx,
		store:       opts.Store,
		config:      opts.Config,
		logger:      logger,
		prefs:       opts.Prefs,
		prefsPath:   prefsPath,
		pollTick:    pollTick,
		views:       viewcount.New(opts.Client, logger.Named("viewcount")),
		keys:        DefaultKeyMap(),
		theme:       GetTheme(themeName),
		currentView: ViewCatalog,
		formFocus:   -1,
		formInputs:  newFormInputs(),
	}
	if opts.Client != nil {
		m.saveAction = saved.NewAction(opts.Client, logger.Named("saved"))
		m.savedStore = saved.NewStore(opts.Client, logger.Named("saved"))
		m.form = profile.NewForm(opts.Client, logger.Named("profile"))
	}
	if code := strings.TrimSpace(opts.Country); code != "" {
		m.currentView = ViewDetail
		m.detailCode = code
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnterAltScreen,
		tickCmd(m.pollTick),
	}
	// Fetch snapshot immediately on start
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
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
			m.initLogViewport()
		}
		m.ready = true
		m.resizeLogViewport()
		return m, nil

	case tickMsg:
		return m.handleTick()

	case snapshotMsg:
		wasLoaded := m.snapshot.Loaded
		m.snapshot = state.Snapshot(msg)
		m.lastUpdated = time.Now()
		m.clampSelection()
		// A saved list read before the catalog landed is checked once it does.
		if !wasLoaded && m.snapshot.Loaded && m.savedSnap.Loaded {
			m.reconcileSaved().Log(m.logger.Named("saved"))
		}
		// A detail record opened before the catalog landed starts its visit now.
		if m.currentView == ViewDetail {
			return m, m.startVisit()
		}
		return m, nil

	case viewCountMsg:
		// Settle drops responses for a country the user already left.
		m.views.Settle(msg.ticket, msg.result)
		return m, nil

	case saveDoneMsg:
		if msg.outcome.Err == nil {
			// The note belongs to the record it was saved from; a reply that
			// lands after the user moved on only invalidates the cache.
			if m.currentView == ViewDetail && msg.visit == m.detailVisit {
				m.saveNote = msg.outcome.Message
			}
			if m.savedStore != nil {
				m.savedStore.Invalidate()
				m.savedSnap = m.savedStore.Snapshot()
			}
		}
		return m, nil

	case savedRefreshMsg:
		m.savedBusy = false
		m.savedSnap = saved.Snapshot(msg)
		if m.snapshot.Loaded {
			m.reconcileSaved().Log(m.logger.Named("saved"))
		}
		return m, nil

	case profileSentMsg:
		if m.savedStore != nil {
			m.savedStore.Invalidate()
			m.savedSnap = m.savedStore.Snapshot()
		}
		return m, nil

	case logEntriesMsg:
		m.logEntries = []logtail.Entry(msg)
		m.updateLogViewport()
		return m, nil

	case logErrorMsg:
		// Log read errors are handled silently
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	// Show help overlay if active
	if m.showHelp {
		return m.renderHelp()
	}

	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Handle help overlay
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	// The profile form captures typing before any global binding.
	if m.currentView == ViewSaved && m.formFocus >= 0 {
		return m.handleFormKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.prefs.Theme = m.theme.Name
		if m.prefsPath != "" {
			_ = prefs.Save(m.prefsPath, m.prefs)
		}
		return m, nil

	case key.Matches(msg, m.keys.ViewCatalog):
		return m.switchView(ViewCatalog)

	case key.Matches(msg, m.keys.ViewSaved):
		return m.switchView(ViewSaved)

	case key.Matches(msg, m.keys.ViewLogs):
		return m.switchView(ViewLogs)

	case key.Matches(msg, m.keys.Back):
		if m.currentView != ViewCatalog {
			return m.switchView(ViewCatalog)
		}
		return m, nil
	}

	// View-specific keys
	switch m.currentView {
	case ViewCatalog:
		return m.handleCatalogKey(msg)
	case ViewDetail:
		return m.handleDetailKey(msg)
	case ViewSaved:
		return m.handleSavedKey(msg)
	case ViewLogs:
		return m.handleLogsKey(msg)
	}

	return m, nil
}

// switchView moves to next, running the leave and mount hooks of each view.
func (m Model) switchView(next View) (tea.Model, tea.Cmd) {
	if m.currentView == next {
		return m, nil
	}
	if m.currentView == ViewDetail {
		m.views.Leave()
		m.detailCode = ""
		m.saveNote = ""
	}
	if m.currentView == ViewSaved {
		m.blurForm()
	}
	m.currentView = next

	var cmd tea.Cmd
	switch next {
	case ViewSaved:
		cmd = m.refreshSaved()
	case ViewLogs:
		cmd = m.refreshLogs()
	}
	return m, cmd
}

// openDetail shows the detail record for code.
func (m Model) openDetail(code string) (tea.Model, tea.Cmd) {
	m.currentView = ViewDetail
	m.detailCode = code
	m.detailVisit++
	m.saveNote = ""
	return m, m.startVisit()
}

// startVisit begins a view-count visit for the detail record, once it resolves.
func (m Model) startVisit() tea.Cmd {
	c, found := m.detailCountry()
	if !found {
		return nil
	}
	ticket, ok := m.views.Show(c.Key(), c.CommonName())
	if !ok {
		return nil
	}
	return fetchViewCountCmd(m.ctx, m.views, ticket)
}

// handleTick processes the refresh tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// Pick up the catalog once the loader lands.
	if m.store != nil && !m.snapshot.Loaded {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}

	if m.currentView == ViewLogs {
		if cmd := m.refreshLogs(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	// Schedule next tick
	cmds = append(cmds, tickCmd(m.pollTick))

	return m, tea.Batch(cmds...)
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder

	// Header line 1: logo + catalog status
	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	// Header line 2: command bar
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")

	// Main content
	b.WriteString(m.renderContent())

	return b.String()
}

// renderContent renders the main content area based on current view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewCatalog:
		return m.renderCatalog()
	case ViewDetail:
		return m.renderDetail()
	case ViewSaved:
		return m.renderSaved()
	case ViewLogs:
		return m.renderLogs()
	default:
		return ""
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	return err
}
