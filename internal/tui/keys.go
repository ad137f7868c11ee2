package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/javiermolinar/homedash/internal/dateutil"
	"github.com/javiermolinar/homedash/internal/layout"
	"github.com/javiermolinar/homedash/internal/render"
	"github.com/javiermolinar/homedash/internal/tui/commands"
)

// modeKeys maps the view switching keys to their modes.
var modeKeys = map[string]layout.ViewMode{
	"m": layout.ViewMonth,
	"w": layout.ViewWeek,
	"d": layout.ViewDay,
	"a": layout.ViewAgenda,
}

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.logger.Debug("key", zap.String("key", msg.String()), zap.Bool("searching", m.searching))

	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.searching {
		return m.handleSearchKeys(msg)
	}
	return m.handleNormalKeys(msg)
}

// handleNormalKeys handles keys while browsing.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if mode, ok := modeKeys[key]; ok {
		m.mode = mode
		return m, m.ensureLoaded()
	}

	switch key {
	case "q":
		return m, tea.Quit

	// Navigation
	case "h", "left":
		m.selected = layout.Navigate(m.selected, -1, m.mode)
	case "l", "right":
		m.selected = layout.Navigate(m.selected, 1, m.mode)
	case "k", "up":
		m.selected = dateutil.AddDays(m.selected, -1)
	case "j", "down":
		m.selected = dateutil.AddDays(m.selected, 1)
	case "t":
		m.selected = dateutil.TruncateToDay(m.now())

	// Search
	case "/":
		m.searching = true
		m.search.SetValue(m.query)
		m.search.CursorEnd()
		return m, tea.Batch(m.search.Focus(), textinput.Blink)
	case "esc":
		m.query = ""
		m.statusMsg = ""
		return m, nil

	case "y":
		return m, commands.CopyToClipboard(m.agendaText())
	case "r":
		return m, m.reload()

	default:
		return m, nil
	}
	return m, m.ensureLoaded()
}

// handleSearchKeys edits the search query. The filter applies as you type;
// enter keeps it and esc clears it.
func (m Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searching = false
		m.search.Blur()
		m.query = strings.TrimSpace(m.search.Value())
		return m, nil
	case "esc":
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		m.query = ""
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.query = strings.TrimSpace(m.search.Value())
	return m, cmd
}

// agendaText renders the visible range as a plain agenda.
func (m Model) agendaText() string {
	from, to := m.visibleRange()
	groups := layout.Agenda(m.visibleEvents(), from, dateutil.AddDays(to, -1))
	return render.AgendaText(groups, m.now())
}
