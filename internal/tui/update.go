package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/javiermolinar/homedash/internal/tui/commands"
)

const (
	statusDuration = 3 * time.Second
	errorDuration  = 5 * time.Second
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.search.Width = max(msg.Width-4, 10)
		return m, nil

	case commands.EventsLoadedMsg:
		// A response that no longer covers the view is superseded by a
		// load issued after the last navigation.
		from, to := m.visibleRange()
		if from.Before(msg.From) || to.After(msg.To) {
			return m, nil
		}
		m.events = msg.Events
		m.from, m.to = msg.From, msg.To
		m.loading = false
		m.err = nil
		m.logger.Debug("events loaded",
			zap.Time("from", msg.From),
			zap.Time("to", msg.To),
			zap.Int("events", len(msg.Events)),
		)
		return m, nil

	case commands.ErrMsg:
		m.err = msg.Err
		m.loading = false
		m.logger.Error("tui command failed", zap.Error(msg.Err))
		m.statusMsg = fmt.Sprintf("Error: %v", msg.Err)
		m.statusTime = m.now().Add(errorDuration)
		return m, clearStatusAfter(errorDuration)

	case commands.StatusMsgCmd:
		m.statusMsg = msg.Msg
		m.statusTime = m.now().Add(statusDuration)
		return m, clearStatusAfter(statusDuration)

	case commands.ClearStatusMsg:
		if !m.now().Before(m.statusTime) {
			m.statusMsg = ""
			m.err = nil
		}
		return m, nil
	}

	// Cursor blink and other input messages while searching
	if m.searching {
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}

	return m, nil
}

func clearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return commands.ClearStatusMsg{}
	})
}
