package ui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/javiermolinar/homedash/internal/event"
	"github.com/javiermolinar/homedash/internal/source"
)

func (a *App) importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Import events from an .ics, .json or .yaml file",
		Long: `Import every event of a file into the local cache.

Imported events are kept until they are overwritten by an event with the
same ID; 'homedash sync' never removes them. Recurring events are skipped.

Example:
  homedash import ~/Downloads/school-holidays.ics`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			path, err := resolvePath(args[0])
			if err != nil {
				return err
			}

			info, err := os.Stat(path)
			if err != nil {
				if os.IsNotExist(err) {
					return fmt.Errorf("file does not exist: %s", path)
				}
				return fmt.Errorf("checking file: %w", err)
			}
			if info.IsDir() {
				return fmt.Errorf("path is a directory: %s", path)
			}

			count, err := importEvents(context.Background(), a.repo, path, source.WithLogger(a.logger))
			if err != nil {
				return err
			}

			fmt.Fprintf(a.out, "Imported %s events from %s\n", humanize.Comma(int64(count)), path)
			return nil
		},
	}

	return cmd
}

func importEvents(ctx context.Context, dest event.Repository, path string, opts ...source.Option) (int, error) {
	src, err := source.Open(path, opts...)
	if err != nil {
		return 0, err
	}

	// Zero bounds read the whole file.
	events, err := src.Fetch(ctx, time.Time{}, time.Time{})
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", path, err)
	}

	if err := dest.UpsertEvents(ctx, events); err != nil {
		return 0, fmt.Errorf("importing events: %w", err)
	}
	return len(events), nil
}

func resolvePath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("empty path")
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	return absPath, nil
}
