package source

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	ics "github.com/emersion/go-ical"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/javiermolinar/homedash/internal/dateutil"
	"github.com/javiermolinar/homedash/internal/event"
)

// icsDateLayout is the basic-format DATE value used by DTSTART;VALUE=DATE.
const icsDateLayout = "20060102"

// ICSFile reads VEVENTs from an iCalendar file.
type ICSFile struct {
	path   string
	logger *zap.Logger
}

// NewICSFile returns a source reading path on every Fetch.
func NewICSFile(path string, opts ...Option) *ICSFile {
	o := buildOptions(opts)
	return &ICSFile{path: path, logger: o.logger.With(zap.String("source", path))}
}

// Name implements Source.
func (f *ICSFile) Name() string {
	return "ics:" + f.path
}

// Fetch parses the file and returns the events overlapping [from, to).
// Zero bounds disable filtering on that side.
func (f *ICSFile) Fetch(ctx context.Context, from, to time.Time) ([]event.CalendarEvent, error) {
	file, err := os.Open(f.path)
	if err != nil {
		return nil, fmt.Errorf("opening calendar file: %w", err)
	}
	defer func() { _ = file.Close() }()

	events, err := ParseICS(file, f.path, f.logger)
	if err != nil {
		return nil, err
	}
	return filterWindow(events, from, to), nil
}

// ParseICS decodes every VEVENT in r. Recurring masters and events with an
// unreadable DTSTART are logged and skipped. Events without a UID get a
// stable ID derived from namespace, start and summary so re-importing the
// same file updates rather than duplicates.
func ParseICS(r io.Reader, namespace string, logger *zap.Logger) ([]event.CalendarEvent, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	cal, err := ical.ParseCalendar(r)
	if err != nil {
		return nil, fmt.Errorf("parsing calendar: %w", err)
	}

	events := make([]event.CalendarEvent, 0, len(cal.Events()))
	for _, ve := range cal.Events() {
		if p := ve.GetProperty(ical.ComponentPropertyRrule); p != nil && p.Value != "" {
			logger.Debug("skipping recurring event", zap.String("uid", propValue(ve, ical.ComponentPropertyUniqueId)))
			continue
		}

		e, err := fromVEvent(ve)
		if err != nil {
			logger.Warn("skipping event", zap.String("uid", propValue(ve, ical.ComponentPropertyUniqueId)), zap.Error(err))
			continue
		}
		if e.ID == "" {
			e.ID = uuid.NewSHA1(uuid.NameSpaceURL, []byte(namespace+"|"+e.Start.Date+e.Start.DateTime+"|"+e.Summary)).String()
		}
		events = append(events, e)
	}

	logger.Debug("parsed calendar", zap.Int("events", len(events)))
	return events, nil
}

func fromVEvent(ve *ical.VEvent) (event.CalendarEvent, error) {
	e := event.CalendarEvent{
		ID:          propValue(ve, ical.ComponentPropertyUniqueId),
		Summary:     propValue(ve, ical.ComponentPropertySummary),
		Description: propValue(ve, ical.ComponentPropertyDescription),
		Location:    propValue(ve, ical.ComponentPropertyLocation),
		HTMLLink:    propValue(ve, ical.ComponentPropertyUrl),
	}

	e.Status, _ = event.ParseStatus(propValue(ve, ical.ComponentPropertyStatus))

	start := ve.GetProperty(ical.ComponentPropertyDtStart)
	if start == nil || start.Value == "" {
		return event.CalendarEvent{}, event.ErrMissingStart
	}

	if isDateValue(start) {
		d, err := time.ParseInLocation(icsDateLayout, strings.TrimSpace(start.Value), time.Local)
		if err != nil {
			return event.CalendarEvent{}, fmt.Errorf("DTSTART: %w", err)
		}
		e.Start = event.EventTime{Date: dateutil.DateKey(d)}

		if end := ve.GetProperty(ical.ComponentPropertyDtEnd); end != nil && end.Value != "" {
			if d, err := time.ParseInLocation(icsDateLayout, strings.TrimSpace(end.Value), time.Local); err == nil {
				e.End = event.EventTime{Date: dateutil.DateKey(d)}
			}
		} else if dur, ok := icsDuration(ve); ok && dur >= 24*time.Hour {
			e.End = event.EventTime{Date: dateutil.DateKey(dateutil.AddDays(d, int(dur/(24*time.Hour))))}
		}
		return e, nil
	}

	startAt, err := ve.GetStartAt()
	if err != nil {
		return event.CalendarEvent{}, fmt.Errorf("DTSTART: %w", err)
	}
	e.Start = event.EventTime{DateTime: startAt.Format(time.RFC3339), TimeZone: tzid(start)}

	if end := ve.GetProperty(ical.ComponentPropertyDtEnd); end != nil && end.Value != "" {
		if endAt, err := ve.GetEndAt(); err == nil {
			e.End = event.EventTime{DateTime: endAt.Format(time.RFC3339), TimeZone: tzid(end)}
		}
	} else if dur, ok := icsDuration(ve); ok {
		e.End = event.EventTime{DateTime: startAt.Add(dur).Format(time.RFC3339), TimeZone: e.Start.TimeZone}
	}

	return e, nil
}

// isDateValue reports whether a DTSTART/DTEND carries a DATE rather than a
// DATE-TIME, either via VALUE=DATE or by its 8-digit shape.
func isDateValue(p *ical.IANAProperty) bool {
	if vs, ok := p.ICalParameters["VALUE"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
		return true
	}
	return !strings.Contains(p.Value, "T")
}

// icsDuration reads a VEVENT's DURATION ("PT1H30M", "P2D"). GetEndAt only
// looks at DTEND.
func icsDuration(ve *ical.VEvent) (time.Duration, bool) {
	v := strings.TrimSpace(propValue(ve, ical.ComponentPropertyDuration))
	if v == "" {
		return 0, false
	}
	p := ics.NewProp(ics.PropDuration)
	p.Value = v
	d, err := p.Duration()
	if err != nil || d < 0 {
		return 0, false
	}
	return d, true
}

func tzid(p *ical.IANAProperty) string {
	if tzs, ok := p.ICalParameters["TZID"]; ok && len(tzs) > 0 {
		return tzs[0]
	}
	return ""
}

func propValue(ve *ical.VEvent, name ical.ComponentProperty) string {
	if p := ve.GetProperty(name); p != nil {
		return p.Value
	}
	return ""
}
