package ui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/javiermolinar/homedash/internal/dateutil"
	"github.com/javiermolinar/homedash/internal/source"
)

// Default sync window around today.
const (
	syncDaysBack  = 7
	syncDaysAhead = 90
)

func (a *App) syncCmd() *cobra.Command {
	var (
		from string
		to   string
	)

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Fetch events from the configured sources into the cache",
		Long: `Fetch events from Google Calendar and the configured .ics and event
files, then replace each source's cached events inside the window.

A source that fails keeps its previously cached events. Events loaded
with 'homedash import' are never removed by sync.`,
		Example: `  homedash sync
  homedash sync --from=2025-01-01 --to=2025-03-31`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			store, ok := a.repo.(source.Store)
			if !ok {
				return errors.New("event cache does not support sync")
			}

			start, end, err := syncWindow(from, to, time.Now())
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			sources, err := a.configuredSources(ctx)
			if err != nil {
				return err
			}

			fmt.Fprintf(a.out, "Syncing %s – %s\n", start.Format("Jan 2, 2006"), dateutil.AddDays(end, -1).Format("Jan 2, 2006"))
			results, syncErr := source.Sync(ctx, store, sources, start, end, a.logger)
			for _, r := range results {
				if r.Err != nil {
					fmt.Fprintf(a.out, "  ✗ %s: %v\n", r.Source, r.Err)
					continue
				}
				fmt.Fprintf(a.out, "  ✓ %s: %s events (%s replaced)\n",
					r.Source, humanize.Comma(int64(r.Fetched)), humanize.Comma(r.Removed))
			}
			if syncErr != nil {
				return fmt.Errorf("sync incomplete: %w", syncErr)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "First day to sync (YYYY-MM-DD, defaults to a week ago)")
	cmd.Flags().StringVar(&to, "to", "", "Last day to sync (YYYY-MM-DD, defaults to 90 days ahead)")
	return cmd
}

// syncWindow resolves the --from/--to flags into a [start, end) window.
// The --to day is included.
func syncWindow(from, to string, now time.Time) (start, end time.Time, err error) {
	today := dateutil.TruncateToDay(now)
	start = dateutil.AddDays(today, -syncDaysBack)
	last := dateutil.AddDays(today, syncDaysAhead)

	if from != "" {
		if start, err = dateutil.ParseDate(from); err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("parsing --from: %w", err)
		}
	}
	if to != "" {
		if last, err = dateutil.ParseDate(to); err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("parsing --to: %w", err)
		}
	}
	if last.Before(start) {
		return time.Time{}, time.Time{}, dateutil.ErrEndDateBeforeStart
	}
	return start, dateutil.AddDays(last, 1), nil
}

// configuredSources builds the sources named in the config file.
func (a *App) configuredSources(ctx context.Context) ([]source.Source, error) {
	var sources []source.Source
	opt := source.WithLogger(a.logger)

	if a.config.HasGoogle() {
		g, err := source.NewGoogleSource(ctx, a.config.Google.CredentialsFile, a.config.Google.CalendarIDs, opt)
		if err != nil {
			return nil, err
		}
		sources = append(sources, g)
	}
	for _, path := range a.config.Sources.ICSFiles {
		sources = append(sources, source.NewICSFile(path, opt))
	}
	for _, path := range a.config.Sources.EventFiles {
		sources = append(sources, source.NewEventFile(path, opt))
	}
	return sources, nil
}
