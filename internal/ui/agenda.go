package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/homedash/internal/dateutil"
	"github.com/javiermolinar/homedash/internal/render"
)

func (a *App) agendaCmd() *cobra.Command {
	var (
		date    string
		days    int
		query   string
		noColor bool
	)

	cmd := &cobra.Command{
		Use:   "agenda",
		Short: "List upcoming events grouped by day",
		Long: `List the cached events from --date through the next --days days,
grouped by date. All-day events come first within each day.

If --days is not given, the agenda_days setting is used.`,
		Example: `  homedash agenda
  homedash agenda --days=7
  homedash agenda --date=next-monday --query=dentist`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if noColor {
				render.DisableColor()
			}
			if err := a.ensureRepo(); err != nil {
				return err
			}
			if days <= 0 {
				days = a.config.Calendar.AgendaDays
			}

			reference, err := dateutil.ParseRelativeDate(date, time.Now())
			if err != nil {
				return fmt.Errorf("parsing --date: %w", err)
			}
			horizon := dateutil.AddDays(reference, days)

			groups, err := a.loadAgenda(context.Background(), reference, horizon, query)
			if err != nil {
				return err
			}

			fmt.Fprintf(a.out, "\n  %s – %s\n\n", reference.Format("Mon Jan 2"), horizon.Format("Mon Jan 2, 2006"))
			render.Agenda(a.out, groups, a.renderOptions(0))
			fmt.Fprintln(a.out)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "First day of the agenda (defaults to today)")
	cmd.Flags().IntVar(&days, "days", 0, "Number of days to show (defaults to agenda_days)")
	cmd.Flags().StringVarP(&query, "query", "q", "", "Only show events matching this text")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable color output")
	return cmd
}

func (a *App) searchCmd() *cobra.Command {
	var (
		past    int
		ahead   int
		noColor bool
	)

	cmd := &cobra.Command{
		Use:   "search QUERY",
		Short: "Search cached events by summary, description or location",
		Long: `Search the cached events around today. Matching ignores case and
accents are compared after Unicode case folding.`,
		Example: `  homedash search dentist
  homedash search "parents evening" --ahead=90`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if noColor {
				render.DisableColor()
			}
			if err := a.ensureRepo(); err != nil {
				return err
			}

			query := strings.Join(args, " ")
			today := dateutil.TruncateToDay(time.Now())
			groups, err := a.loadAgenda(context.Background(),
				dateutil.AddDays(today, -past), dateutil.AddDays(today, ahead), query)
			if err != nil {
				return err
			}

			n := render.Agenda(a.out, groups, a.renderOptions(0))
			if n > 0 {
				fmt.Fprintf(a.out, "\n%d matching events\n", n)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&past, "past", 30, "Days before today to search")
	cmd.Flags().IntVar(&ahead, "ahead", 365, "Days after today to search")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable color output")
	return cmd
}
