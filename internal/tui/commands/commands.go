// Package commands provides TUI command constructors and message types.
package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/homedash/internal/event"
)

// EventsLoadedMsg is sent when the events of a date range are loaded.
type EventsLoadedMsg struct {
	From   time.Time
	To     time.Time
	Events []event.CalendarEvent
}

// ErrMsg is sent when an error occurs.
type ErrMsg struct {
	Err error
}

// StatusMsgCmd is sent for temporary status messages.
type StatusMsgCmd struct {
	Msg string
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// writeClipboard is swapped out in tests.
var writeClipboard = clipboard.WriteAll

// LoadRange loads the cached events overlapping [from, to).
func LoadRange(repo event.Repository, from, to time.Time) tea.Cmd {
	return func() tea.Msg {
		if repo == nil {
			return ErrMsg{Err: fmt.Errorf("loading events: no event cache")}
		}
		events, err := repo.ListEventsInRange(context.Background(), from, to)
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("loading events: %w", err)}
		}
		return EventsLoadedMsg{From: from, To: to, Events: events}
	}
}

// CopyToClipboard copies text to the system clipboard.
func CopyToClipboard(text string) tea.Cmd {
	return func() tea.Msg {
		if text == "" {
			return StatusMsgCmd{Msg: "Nothing to copy"}
		}
		if err := writeClipboard(text); err != nil {
			return ErrMsg{Err: fmt.Errorf("copying to clipboard: %w", err)}
		}
		return StatusMsgCmd{Msg: "Copied agenda to clipboard"}
	}
}
