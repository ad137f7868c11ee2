package source

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/javiermolinar/homedash/internal/event"
)

// Store is the cache that Sync writes into.
type Store interface {
	ReplaceEvents(ctx context.Context, source string, from, to time.Time, events []event.CalendarEvent) (int64, error)
}

// SyncResult reports what one source contributed.
type SyncResult struct {
	Source  string
	Fetched int
	Removed int64
	Err     error
}

// Sync fetches every source for [from, to) and replaces that source's slice
// of the cache. A failing source leaves its cached rows untouched and does
// not stop the others; the joined errors are returned alongside the results.
func Sync(ctx context.Context, store Store, sources []Source, from, to time.Time, logger *zap.Logger) ([]SyncResult, error) {
	if len(sources) == 0 {
		return nil, ErrNoSources
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	results := make([]SyncResult, 0, len(sources))
	var errs []error
	for _, src := range sources {
		res := SyncResult{Source: src.Name()}
		started := time.Now()

		events, err := src.Fetch(ctx, from, to)
		if err == nil {
			res.Fetched = len(events)
			res.Removed, err = store.ReplaceEvents(ctx, src.Name(), from, to, events)
		}
		if err != nil {
			res.Err = err
			errs = append(errs, fmt.Errorf("%s: %w", src.Name(), err))
			logger.Error("sync failed", zap.String("source", src.Name()), zap.Error(err))
		} else {
			logger.Info("synced",
				zap.String("source", src.Name()),
				zap.Int("fetched", res.Fetched),
				zap.Int64("removed", res.Removed),
				zap.Duration("took", time.Since(started)),
			)
		}
		results = append(results, res)
	}

	return results, errors.Join(errs...)
}
