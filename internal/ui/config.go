package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/homedash/internal/config"
	"github.com/javiermolinar/homedash/internal/tui/theme"
)

func (a *App) configCmd() *cobra.Command {
	var show bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "View or edit configuration",
		Long: `Interactive configuration management.

If no config file exists, creates one with default values.
Otherwise, displays current config and allows editing.

Example:
  homedash config
  homedash config --show`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if show {
				printConfig(a.out, a.config)
				return nil
			}
			return runConfigInteractive(a.out, os.Stdin)
		},
	}

	cmd.Flags().BoolVar(&show, "show", false, "Print the effective configuration and exit")
	return cmd
}

func runConfigInteractive(out io.Writer, in io.Reader) error {
	configPath := config.DefaultConfigPath()
	fmt.Fprintf(out, "Config file: %s\n\n", configPath)

	// Load existing config or create defaults
	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	_, fileErr := os.Stat(configPath)
	if os.IsNotExist(fileErr) {
		fmt.Fprintln(out, "No config file found. Creating with default values...")
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Fprintf(out, "Created %s\n\n", configPath)
	}

	printConfig(out, cfg)

	reader := bufio.NewReader(in)
	if !promptYesNo(out, reader, "\nWould you like to edit the configuration?") {
		return nil
	}

	if err := editConfig(out, reader, cfg); err != nil {
		return err
	}

	if err := cfg.Save(); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Fprintln(out, "\nConfiguration saved!")
	return nil
}

// editConfig prompts for every setting, keeping the current value on empty input.
func editConfig(out io.Writer, reader *bufio.Reader, cfg *config.Config) error {
	cfg.Calendar.WeekStart = promptValue(out, reader, "Week start (sunday, monday, ...)", cfg.Calendar.WeekStart)
	cfg.Calendar.AgendaDays = promptInt(out, reader, "Agenda days", cfg.Calendar.AgendaDays)
	cfg.Google.CredentialsFile = promptValue(out, reader, "Google credentials file (empty to disable)", cfg.Google.CredentialsFile)
	cfg.Google.CalendarIDs = promptSlice(out, reader, "Google calendar IDs (comma-separated)", cfg.Google.CalendarIDs)
	cfg.Sources.ICSFiles = promptSlice(out, reader, "ICS files (comma-separated)", cfg.Sources.ICSFiles)
	cfg.Sources.EventFiles = promptSlice(out, reader, "JSON/YAML event files (comma-separated)", cfg.Sources.EventFiles)
	cfg.Storage.DBPath = promptValue(out, reader, "Database path", cfg.Storage.DBPath)
	cfg.UI.Theme = promptTheme(out, reader, cfg.UI.Theme)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func printConfig(out io.Writer, cfg *config.Config) {
	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintln(out, "──────────────────────")
	fmt.Fprintln(out, "[calendar]")
	fmt.Fprintf(out, "  week_start       = %s\n", cfg.Calendar.WeekStart)
	fmt.Fprintf(out, "  agenda_days      = %d\n", cfg.Calendar.AgendaDays)
	fmt.Fprintln(out, "\n[layout]")
	fmt.Fprintf(out, "  day_row_height   = %g\n", cfg.Layout.DayRowHeight)
	fmt.Fprintf(out, "  week_row_height  = %g\n", cfg.Layout.WeekRowHeight)
	fmt.Fprintf(out, "  min_event_height = %g\n", cfg.Layout.MinEventHeight)
	fmt.Fprintln(out, "\n[google]")
	if cfg.HasGoogle() {
		fmt.Fprintf(out, "  credentials_file = %s\n", cfg.Google.CredentialsFile)
		fmt.Fprintf(out, "  calendar_ids     = %s\n", strings.Join(cfg.Google.CalendarIDs, ", "))
	} else {
		fmt.Fprintln(out, "  (disabled)")
	}
	fmt.Fprintln(out, "\n[sources]")
	fmt.Fprintf(out, "  ics_files        = %s\n", strings.Join(cfg.Sources.ICSFiles, ", "))
	fmt.Fprintf(out, "  event_files      = %s\n", strings.Join(cfg.Sources.EventFiles, ", "))
	fmt.Fprintln(out, "\n[storage]")
	fmt.Fprintf(out, "  db_path          = %s\n", cfg.Storage.DBPath)
	fmt.Fprintln(out, "\n[ui]")
	fmt.Fprintf(out, "  theme            = %s\n", cfg.UI.Theme)
}

func promptYesNo(out io.Writer, reader *bufio.Reader, question string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", question)
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}

func promptValue(out io.Writer, reader *bufio.Reader, label, current string) string {
	if current == "" {
		fmt.Fprintf(out, "  %s: ", label)
	} else {
		fmt.Fprintf(out, "  %s [%s]: ", label, current)
	}
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return current
	}
	return input
}

func promptInt(out io.Writer, reader *bufio.Reader, label string, current int) int {
	for {
		value := promptValue(out, reader, label, strconv.Itoa(current))
		n, err := strconv.Atoi(value)
		if err == nil && n > 0 {
			return n
		}
		fmt.Fprintf(out, "  Invalid number %q\n", value)
	}
}

func promptSlice(out io.Writer, reader *bufio.Reader, label string, current []string) []string {
	fmt.Fprintf(out, "  %s [%s]: ", label, strings.Join(current, ", "))
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return current
	}
	parts := strings.Split(input, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

func promptTheme(out io.Writer, reader *bufio.Reader, current string) string {
	options := strings.Join(theme.Available(), ", ")
	label := fmt.Sprintf("UI theme (%s)", options)
	for {
		value := strings.ToLower(promptValue(out, reader, label, current))
		if theme.IsAvailable(value) {
			return value
		}
		fmt.Fprintf(out, "  Invalid theme %q. Available: %s\n", value, options)
	}
}
