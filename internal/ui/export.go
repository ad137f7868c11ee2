package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/homedash/internal/dateutil"
	"github.com/javiermolinar/homedash/internal/event"
	"github.com/javiermolinar/homedash/internal/source"
)

func (a *App) exportCmd() *cobra.Command {
	var (
		from string
		to   string
	)

	cmd := &cobra.Command{
		Use:   "export FILE",
		Short: "Export cached events as .ics, .json or .yaml",
		Long: `Write the cached events to FILE. The format follows the extension;
use "-" to write an iCalendar document to stdout.

Without --from, every cached event is exported.`,
		Example: `  homedash export family.ics
  homedash export - --from=2025-01-01 --to=2025-01-31
  homedash export backup.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			events, err := a.exportEvents(context.Background(), from, to)
			if err != nil {
				return err
			}

			if args[0] == "-" {
				_, err := source.WriteICS(a.out, events)
				return err
			}

			path, err := resolvePath(args[0])
			if err != nil {
				return err
			}
			n, err := writeEventsFile(path, events)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Exported %d events to %s\n", n, path)
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "First day to export (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "Last day to export (YYYY-MM-DD, defaults to --from)")
	return cmd
}

func (a *App) exportEvents(ctx context.Context, from, to string) ([]event.CalendarEvent, error) {
	if from == "" && to == "" {
		events, err := a.repo.ListAllEvents(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing events: %w", err)
		}
		return events, nil
	}
	if from == "" {
		return nil, fmt.Errorf("--to requires --from")
	}

	r, err := dateutil.NewDateRange(from, to)
	if err != nil {
		return nil, err
	}
	events, err := a.repo.ListEventsInRange(ctx, r.Start, dateutil.AddDays(r.End, 1))
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	return events, nil
}

// writeEventsFile writes events to path in the format of its extension and
// returns the number of events written.
func writeEventsFile(path string, events []event.CalendarEvent) (n int, err error) {
	ext := strings.ToLower(filepath.Ext(path))
	var format source.Format
	if ext != ".ics" {
		if format, err = source.FormatFromPath(path); err != nil {
			return 0, err
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("closing %s: %w", path, cerr)
		}
	}()

	return encodeEvents(f, format, events)
}

func encodeEvents(w io.Writer, format source.Format, events []event.CalendarEvent) (int, error) {
	if format == "" {
		return source.WriteICS(w, events)
	}
	if err := source.EncodeEvents(w, format, events); err != nil {
		return 0, fmt.Errorf("encoding events: %w", err)
	}
	return len(events), nil
}
