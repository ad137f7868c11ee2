package layout

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/javiermolinar/homedash/internal/event"
)

// FilterEvents keeps the events whose summary, description or location
// contains query, ignoring case. Matching uses Unicode case folding, so
// "ÉCOLE" finds "école". An empty or whitespace-only query returns events
// unchanged.
func FilterEvents(events []event.CalendarEvent, query string) []event.CalendarEvent {
	query = strings.TrimSpace(query)
	if query == "" {
		return events
	}

	fold := cases.Fold()
	needle := fold.String(query)

	out := make([]event.CalendarEvent, 0)
	for _, e := range events {
		for _, field := range []string{e.Summary, e.Description, e.Location} {
			if field != "" && strings.Contains(fold.String(field), needle) {
				out = append(out, e)
				break
			}
		}
	}
	return out
}
