// Package tui provides the terminal calendar browser for homedash.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/javiermolinar/homedash/internal/config"
	"github.com/javiermolinar/homedash/internal/dateutil"
	"github.com/javiermolinar/homedash/internal/event"
	"github.com/javiermolinar/homedash/internal/layout"
	"github.com/javiermolinar/homedash/internal/tui/commands"
	"github.com/javiermolinar/homedash/internal/tui/theme"
)

// Model is the main TUI model.
type Model struct {
	// Dependencies
	repo   event.Repository
	config *config.Config
	logger *zap.Logger
	now    func() time.Time

	// Theme and styles
	theme  *theme.Theme
	styles *Styles

	// Navigation
	mode     layout.ViewMode
	selected time.Time // selected day, local midnight

	// Loaded events and the [from, to) range they cover
	events   []event.CalendarEvent
	from, to time.Time
	loading  bool

	// Search
	searching bool
	search    textinput.Model
	query     string

	// Terminal dimensions
	width  int
	height int

	// Messages
	statusMsg  string    // Temporary status/error message
	statusTime time.Time // When to clear message

	// Error state
	err error
}

// ModelOption configures optional model behavior.
type ModelOption func(*Model)

// WithLogger sets the logger used for load errors and key handling.
func WithLogger(logger *zap.Logger) ModelOption {
	return func(m *Model) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithClock sets the function that defines "now" and "today".
func WithClock(now func() time.Time) ModelOption {
	return func(m *Model) {
		if now != nil {
			m.now = now
		}
	}
}

// WithMode sets the initial view mode.
func WithMode(mode layout.ViewMode) ModelOption {
	return func(m *Model) {
		m.mode = mode
	}
}

// New creates a new TUI model.
func New(repo event.Repository, cfg *config.Config, opts ...ModelOption) Model {
	if cfg == nil {
		cfg = config.Default()
	}

	t, err := theme.Load(cfg.UI.Theme)
	if err != nil {
		t, _ = theme.Load(theme.DefaultName)
	}
	styles := NewStyles(t)

	search := textinput.New()
	search.Placeholder = "search events"
	search.Prompt = "/ "
	search.CharLimit = 128
	search.PromptStyle = styles.SearchPromptStyle

	m := Model{
		repo:    repo,
		config:  cfg,
		logger:  zap.NewNop(),
		now:     time.Now,
		theme:   t,
		styles:  styles,
		mode:    layout.ViewMonth,
		search:  search,
		loading: true,
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.selected = dateutil.TruncateToDay(m.now())

	return m
}

// Init loads the events of the initial view.
func (m Model) Init() tea.Cmd {
	from, to := m.visibleRange()
	return commands.LoadRange(m.repo, from, to)
}

// visibleRange is the window of events the current view needs.
func (m Model) visibleRange() (from, to time.Time) {
	return layout.VisibleRange(m.selected, m.mode, m.config.WeekStart(), m.config.Calendar.AgendaDays)
}

// ensureLoaded returns a load command when the current view needs events
// outside the loaded range.
func (m *Model) ensureLoaded() tea.Cmd {
	from, to := m.visibleRange()
	if !m.loading && !from.Before(m.from) && !to.After(m.to) {
		return nil
	}
	return m.reload()
}

// reload fetches the current view's events from the cache.
func (m *Model) reload() tea.Cmd {
	from, to := m.visibleRange()
	m.loading = true
	return commands.LoadRange(m.repo, from, to)
}

// visibleEvents returns the loaded events matching the active search.
func (m Model) visibleEvents() []event.CalendarEvent {
	return layout.FilterEvents(m.events, m.query)
}

// Run starts the TUI.
func Run(repo event.Repository, cfg *config.Config, logger *zap.Logger) error {
	p := tea.NewProgram(New(repo, cfg, WithLogger(logger)), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
