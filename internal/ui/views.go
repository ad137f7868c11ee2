package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/javiermolinar/homedash/internal/dateutil"
	"github.com/javiermolinar/homedash/internal/event"
	"github.com/javiermolinar/homedash/internal/layout"
	"github.com/javiermolinar/homedash/internal/render"
)

// viewOptions holds the flags shared by the month, week and day commands.
type viewOptions struct {
	date     string
	selected string
	query    string
	noColor  bool
	width    int
}

func (a *App) viewCmd(mode, short string) *cobra.Command {
	var opts viewOptions

	cmd := &cobra.Command{
		Use:   mode,
		Short: short,
		Long: fmt.Sprintf(`Render the %s containing --date from the local event cache.

Dates accept YYYY-MM-DD or keywords such as "today", "tomorrow",
"next-week" and weekday names. Run 'homedash sync' first to refresh
the cache.`, mode),
		Example: fmt.Sprintf(`  homedash %[1]s
  homedash %[1]s --date=2025-01-15
  homedash %[1]s --date=next-week --query=school`, mode),
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			viewMode, err := layout.ParseViewMode(mode)
			if err != nil {
				return err
			}
			return a.runView(context.Background(), viewMode, opts)
		},
	}

	cmd.Flags().StringVar(&opts.date, "date", "", "Reference date (defaults to today)")
	cmd.Flags().StringVar(&opts.selected, "select", "", "Highlight this date")
	cmd.Flags().StringVarP(&opts.query, "query", "q", "", "Only show events matching this text")
	cmd.Flags().BoolVar(&opts.noColor, "no-color", false, "Disable color output")
	cmd.Flags().IntVar(&opts.width, "width", 0, "Output width (defaults to the terminal width)")
	return cmd
}

func (a *App) runView(ctx context.Context, mode layout.ViewMode, opts viewOptions) error {
	if opts.noColor {
		render.DisableColor()
	}
	if err := a.ensureRepo(); err != nil {
		return err
	}

	now := time.Now()
	ref, err := dateutil.ParseRelativeDate(opts.date, now)
	if err != nil {
		return fmt.Errorf("parsing --date: %w", err)
	}

	var selected *time.Time
	if opts.selected != "" {
		sel, err := dateutil.ParseRelativeDate(opts.selected, now)
		if err != nil {
			return fmt.Errorf("parsing --select: %w", err)
		}
		selected = &sel
	}

	from, to := layout.VisibleRange(ref, mode, a.config.WeekStart(), a.config.Calendar.AgendaDays)
	events, err := a.repo.ListEventsInRange(ctx, from, to)
	if err != nil {
		return fmt.Errorf("listing events: %w", err)
	}
	events = layout.FilterEvents(events, opts.query)
	a.logger.Debug("rendering view",
		zap.String("mode", string(mode)),
		zap.Time("from", from),
		zap.Time("to", to),
		zap.Int("events", len(events)),
	)

	ropts := a.renderOptions(opts.width)
	switch mode {
	case layout.ViewMonth:
		render.Month(a.out, ref, events, selected, ropts)
	case layout.ViewWeek:
		ropts.Pack = a.config.WeekPackOptions()
		render.Week(a.out, ref, events, selected, ropts)
	default:
		ropts.Pack = a.config.DayPackOptions()
		render.Day(a.out, ref, events, ropts)
	}
	return nil
}

func (a *App) renderOptions(width int) render.Options {
	return render.Options{
		Width:     width,
		WeekStart: a.config.WeekStart(),
	}
}

// loadAgenda returns the cached events between reference and horizon,
// grouped by date.
func (a *App) loadAgenda(ctx context.Context, reference, horizon time.Time, query string) (map[string][]event.CalendarEvent, error) {
	from := dateutil.TruncateToDay(reference)
	to := dateutil.AddDays(dateutil.TruncateToDay(horizon), 1)
	events, err := a.repo.ListEventsInRange(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	events = layout.FilterEvents(events, query)
	return layout.Agenda(events, reference, horizon), nil
}
