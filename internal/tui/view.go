package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/javiermolinar/homedash/internal/dateutil"
	"github.com/javiermolinar/homedash/internal/layout"
	"github.com/javiermolinar/homedash/internal/render"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	minBodyHeight = 3
)

var helpKeys = [][2]string{
	{"h/l", "prev/next"},
	{"j/k", "day"},
	{"t", "today"},
	{"m/w/d/a", "view"},
	{"/", "search"},
	{"y", "copy"},
	{"r", "reload"},
	{"q", "quit"},
}

// View renders the TUI.
func (m Model) View() string {
	width, height := m.size()

	header := m.renderHeader(width)
	footer := m.renderFooter(width)
	bodyHeight := max(height-lipgloss.Height(header)-lipgloss.Height(footer), minBodyHeight)
	body := m.renderBody(width, bodyHeight)

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (m Model) size() (width, height int) {
	width, height = m.width, m.height
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}
	return width, height
}

func (m Model) renderHeader(width int) string {
	parts := []string{m.styles.TitleStyle.Render("homedash")}
	for _, mode := range layout.ViewModes() {
		style := m.styles.TabStyle
		if mode == m.mode {
			style = m.styles.TabActiveStyle
		}
		parts = append(parts, style.Render(string(mode)))
	}
	bar := lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	return m.styles.HeaderBarStyle.Width(width).Render(ansi.Truncate(bar, width, ""))
}

// renderBody draws the current view with the shared renderers and clips it
// to the space between header and footer.
func (m Model) renderBody(width, height int) string {
	if m.loading && m.events == nil {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, "Loading...")
	}

	opts := render.Options{
		Width:     width,
		WeekStart: m.config.WeekStart(),
		Now:       m.now,
		Style:     calendarStyler{styles: m.styles},
	}
	events := m.visibleEvents()
	selected := m.selected

	var b strings.Builder
	switch m.mode {
	case layout.ViewWeek:
		opts.Pack = m.config.WeekPackOptions()
		render.Week(&b, m.selected, events, &selected, opts)
	case layout.ViewDay:
		opts.Pack = m.config.DayPackOptions()
		render.Day(&b, m.selected, events, opts)
	case layout.ViewAgenda:
		from, to := m.visibleRange()
		fmt.Fprintf(&b, "\n  %s\n\n", m.styles.DayHeaderStyle.Render(layout.ViewTitle(m.selected, m.mode, opts.WeekStart)))
		render.Agenda(&b, layout.Agenda(events, from, dateutil.AddDays(to, -1)), opts)
	default:
		render.Month(&b, m.selected, events, &selected, opts)
	}

	lines := strings.Split(strings.TrimRight(b.String(), "\n"), "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderFooter(width int) string {
	var rows []string

	switch {
	case m.searching:
		rows = append(rows, m.search.View())
	case m.query != "":
		n := len(m.visibleEvents())
		rows = append(rows, m.styles.FilterStyle.Render(fmt.Sprintf("filter %q: %d of %d events (esc to clear)", m.query, n, len(m.events))))
	}

	rows = append(rows, m.selectionLine())

	switch {
	case m.err != nil && m.statusMsg != "":
		rows = append(rows, m.styles.ErrorStyle.Render(m.statusMsg))
	case m.statusMsg != "":
		rows = append(rows, m.styles.StatusStyle.Render(m.statusMsg))
	default:
		rows = append(rows, m.helpLine())
	}

	for i, r := range rows {
		rows[i] = ansi.Truncate(r, width, "…")
	}
	return strings.Join(rows, "\n")
}

// selectionLine describes the selected day and how busy it is.
func (m Model) selectionLine() string {
	n := len(layout.EventsOnDay(m.selected, m.visibleEvents()))
	label := fmt.Sprintf("%s · %s · %s",
		m.selected.Format("Mon Jan 2, 2006"),
		render.RelativeDay(m.selected, m.now()),
		pluralEvents(n),
	)
	if dateutil.SameDay(m.selected, m.now()) {
		return m.styles.TodayStyle.Render(label)
	}
	return m.styles.DayHeaderStyle.Render(label)
}

func (m Model) helpLine() string {
	parts := make([]string, 0, len(helpKeys))
	for _, k := range helpKeys {
		parts = append(parts, m.styles.KeyStyle.Render(k[0])+" "+m.styles.FooterStyle.Render(k[1]))
	}
	return strings.Join(parts, m.styles.FooterStyle.Render("  "))
}

func pluralEvents(n int) string {
	if n == 1 {
		return "1 event"
	}
	return fmt.Sprintf("%d events", n)
}
