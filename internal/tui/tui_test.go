package tui

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/javiermolinar/homedash/internal/config"
	"github.com/javiermolinar/homedash/internal/event"
	"github.com/javiermolinar/homedash/internal/layout"
	"github.com/javiermolinar/homedash/internal/tui/commands"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

// fakeRepo serves a fixed event list and records the ranges it was asked for.
type fakeRepo struct {
	events []event.CalendarEvent
	err    error
	ranges [][2]time.Time
}

func (f *fakeRepo) UpsertEvents(ctx context.Context, events []event.CalendarEvent) error {
	return errors.New("not implemented")
}

func (f *fakeRepo) GetEvent(ctx context.Context, id string) (*event.CalendarEvent, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeRepo) DeleteEvent(ctx context.Context, id string) error {
	return errors.New("not implemented")
}

func (f *fakeRepo) ListEventsInRange(ctx context.Context, from, to time.Time) ([]event.CalendarEvent, error) {
	f.ranges = append(f.ranges, [2]time.Time{from, to})
	if f.err != nil {
		return nil, f.err
	}
	var out []event.CalendarEvent
	for _, e := range f.events {
		start, end, ok := e.Span()
		if !ok {
			continue
		}
		if start.Before(to) && (end.After(from) || (end.Equal(start) && !start.Before(from))) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListAllEvents(ctx context.Context) ([]event.CalendarEvent, error) {
	return f.events, nil
}

func (f *fakeRepo) Close() error {
	return nil
}

func at(y int, mo time.Month, d, h, mi int) time.Time {
	return time.Date(y, mo, d, h, mi, 0, 0, time.Local)
}

// fixedNow is Monday, June 3 2024 at noon.
func fixedNow() time.Time {
	return at(2024, 6, 3, 12, 0)
}

func sampleEvents() []event.CalendarEvent {
	standup := event.NewTimed("standup", "Standup", at(2024, 6, 3, 9, 0), at(2024, 6, 3, 9, 30))
	dentist := event.NewTimed("dentist", "Dentist", at(2024, 6, 4, 11, 0), at(2024, 6, 4, 12, 0))
	dentist.Location = "Clinic"
	review := event.NewTimed("review", "Design review", at(2024, 6, 3, 9, 15), at(2024, 6, 3, 10, 0))
	review.Status = event.StatusTentative
	trip := event.NewAllDay("trip", "Beach trip", at(2024, 6, 7, 0, 0), at(2024, 6, 9, 0, 0))
	july := event.NewTimed("july", "Summer party", at(2024, 7, 20, 18, 0), at(2024, 7, 20, 22, 0))
	return []event.CalendarEvent{standup, review, dentist, trip, july}
}

// newTestModel builds a model on a fake repo and runs its initial load.
func newTestModel(t *testing.T, opts ...ModelOption) (Model, *fakeRepo) {
	t.Helper()
	repo := &fakeRepo{events: sampleEvents()}
	cfg := config.Default()
	cfg.Calendar.WeekStart = "monday"
	cfg.Calendar.AgendaDays = 7

	m := New(repo, cfg, append([]ModelOption{WithClock(fixedNow)}, opts...)...)
	m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	m = update(t, m, m.Init()())
	return m, repo
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	updated, _ := m.Update(msg)
	model, ok := updated.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", updated)
	}
	return model
}

// press sends a key and runs any load command it returns.
func press(t *testing.T, m Model, key string) Model {
	t.Helper()
	var msg tea.KeyMsg
	switch key {
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "left":
		msg = tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		msg = tea.KeyMsg{Type: tea.KeyRight}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}

	updated, cmd := m.Update(msg)
	m = updated.(Model)
	// Search keys return cursor blink commands, which sleep.
	if cmd == nil || m.searching || key == "/" {
		return m
	}
	if loaded, ok := cmd().(commands.EventsLoadedMsg); ok {
		m = update(t, m, loaded)
	}
	return m
}

func TestNew_Defaults(t *testing.T) {
	m := New(&fakeRepo{}, nil, WithClock(fixedNow))

	if m.mode != layout.ViewMonth {
		t.Errorf("mode = %s, want month", m.mode)
	}
	if !m.selected.Equal(at(2024, 6, 3, 0, 0)) {
		t.Errorf("selected = %v, want June 3 midnight", m.selected)
	}
	if !m.loading {
		t.Error("model should start loading")
	}
	if m.theme == nil || m.theme.Name != "mocha" {
		t.Errorf("theme = %+v, want mocha", m.theme)
	}
}

func TestInit_LoadsVisibleMonth(t *testing.T) {
	m, repo := newTestModel(t)

	if m.loading {
		t.Error("loading should be cleared after the first load")
	}
	if len(repo.ranges) != 1 {
		t.Fatalf("expected one load, got %d", len(repo.ranges))
	}
	// June 2024 padded to Monday-start weeks: May 27 through June 30.
	if got := repo.ranges[0]; !got[0].Equal(at(2024, 5, 27, 0, 0)) || !got[1].Equal(at(2024, 7, 1, 0, 0)) {
		t.Errorf("loaded [%v, %v)", got[0], got[1])
	}
	if len(m.events) != 4 {
		t.Errorf("expected 4 June events, got %d", len(m.events))
	}
}

func TestKeys_Navigation(t *testing.T) {
	tests := []struct {
		name string
		keys []string
		mode layout.ViewMode
		want time.Time
	}{
		{"next month", []string{"l"}, layout.ViewMonth, at(2024, 7, 3, 0, 0)},
		{"previous month arrow", []string{"left"}, layout.ViewMonth, at(2024, 5, 3, 0, 0)},
		{"next week", []string{"w", "l"}, layout.ViewWeek, at(2024, 6, 10, 0, 0)},
		{"next day", []string{"d", "right"}, layout.ViewDay, at(2024, 6, 4, 0, 0)},
		{"j moves a day", []string{"j", "j"}, layout.ViewMonth, at(2024, 6, 5, 0, 0)},
		{"k moves back", []string{"k"}, layout.ViewMonth, at(2024, 6, 2, 0, 0)},
		{"today resets", []string{"l", "l", "t"}, layout.ViewMonth, at(2024, 6, 3, 0, 0)},
		{"agenda mode", []string{"a"}, layout.ViewAgenda, at(2024, 6, 3, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newTestModel(t)
			for _, k := range tt.keys {
				m = press(t, m, k)
			}
			if m.mode != tt.mode {
				t.Errorf("mode = %s, want %s", m.mode, tt.mode)
			}
			if !m.selected.Equal(tt.want) {
				t.Errorf("selected = %s, want %s", m.selected.Format(time.DateOnly), tt.want.Format(time.DateOnly))
			}
			if m.loading {
				t.Error("view should be loaded")
			}
		})
	}
}

func TestKeys_ReloadOnlyOutsideLoadedRange(t *testing.T) {
	m, repo := newTestModel(t)

	m = press(t, m, "j")
	m = press(t, m, "w")
	if len(repo.ranges) != 1 {
		t.Errorf("moving inside the loaded month should not reload, got %d loads", len(repo.ranges))
	}

	m = press(t, m, "l")
	m = press(t, m, "l")
	m = press(t, m, "l")
	m = press(t, m, "l")
	if len(repo.ranges) != 2 {
		t.Errorf("leaving the loaded month should reload once, got %d loads", len(repo.ranges))
	}
	if !m.selected.Equal(at(2024, 7, 2, 0, 0)) {
		t.Errorf("selected = %s", m.selected.Format(time.DateOnly))
	}

	press(t, m, "r")
	if len(repo.ranges) != 3 {
		t.Errorf("r should force a reload, got %d loads", len(repo.ranges))
	}
}

func TestUpdate_IgnoresSupersededLoad(t *testing.T) {
	m, _ := newTestModel(t)
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("l")})
	m = updated.(Model)

	// The June response arrives after the user moved to July.
	m = update(t, m, commands.EventsLoadedMsg{From: at(2024, 5, 27, 0, 0), To: at(2024, 7, 1, 0, 0)})
	if !m.loading {
		t.Error("a stale response must not mark the July view as loaded")
	}
}

func TestKeys_Search(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(t, m, "/")
	if !m.searching {
		t.Fatal("/ should start searching")
	}
	for _, r := range "dent" {
		m = press(t, m, string(r))
	}
	if m.query != "dent" {
		t.Errorf("query = %q, want live filter %q", m.query, "dent")
	}
	m = press(t, m, "enter")
	if m.searching {
		t.Error("enter should close the search bar")
	}
	if got := m.visibleEvents(); len(got) != 1 || got[0].ID != "dentist" {
		t.Errorf("visible events = %v", got)
	}
	if !strings.Contains(m.View(), `filter "dent": 1 of 4 events`) {
		t.Errorf("filter line missing:\n%s", m.View())
	}

	m = press(t, m, "esc")
	if m.query != "" || len(m.visibleEvents()) != 4 {
		t.Errorf("esc should clear the filter, query = %q", m.query)
	}
}

func TestKeys_SearchEscCancels(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, "/")
	m = press(t, m, "x")
	m = press(t, m, "esc")
	if m.searching || m.query != "" {
		t.Errorf("searching = %v, query = %q", m.searching, m.query)
	}
}

func TestKeys_Quit(t *testing.T) {
	m, _ := newTestModel(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+c should quit")
	}
}

func TestAgendaText_FollowsVisibleRange(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, "w")

	text := m.agendaText()
	for _, want := range []string{"Mon Jun 3, 2024 (Today)", "09:00-09:30  Standup", "11:00-12:00  Dentist @ Clinic", "Beach trip"} {
		if !strings.Contains(text, want) {
			t.Errorf("missing %q in:\n%s", want, text)
		}
	}
	if strings.Contains(text, "Summer party") {
		t.Error("events outside the week should not be copied")
	}
}

func TestUpdate_ErrorAndStatus(t *testing.T) {
	m, _ := newTestModel(t)

	m = update(t, m, commands.ErrMsg{Err: errors.New("disk on fire")})
	if m.err == nil || !strings.Contains(m.View(), "Error: disk on fire") {
		t.Errorf("error not shown:\n%s", m.View())
	}

	m = update(t, m, commands.StatusMsgCmd{Msg: "Copied agenda to clipboard"})
	if !strings.Contains(m.View(), "Copied agenda to clipboard") {
		t.Errorf("status not shown:\n%s", m.View())
	}

	// The clock has not advanced, so the message is still due.
	m = update(t, m, commands.ClearStatusMsg{})
	if m.statusMsg == "" {
		t.Error("status cleared before its time")
	}

	later := fixedNow().Add(time.Minute)
	m.now = func() time.Time { return later }
	m = update(t, m, commands.ClearStatusMsg{})
	if m.statusMsg != "" || m.err != nil {
		t.Errorf("status = %q, err = %v after expiry", m.statusMsg, m.err)
	}
}

func TestInit_LoadError(t *testing.T) {
	repo := &fakeRepo{err: errors.New("locked")}
	m := New(repo, config.Default(), WithClock(fixedNow))
	m = update(t, m, m.Init()())
	if m.loading || m.err == nil {
		t.Errorf("loading = %v, err = %v", m.loading, m.err)
	}
}
