package dexcom

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jwulff/glucowise-go/internal/domain"
	"github.com/jwulff/glucowise-go/internal/storage"
)

// readingInterval is how often a Dexcom sensor records a value.
const readingInterval = 5 * time.Minute

// Fetcher fetches recent readings, newest first.
type Fetcher interface {
	FetchReadings(ctx context.Context, maxCount, minutes int) ([]Reading, error)
}

// Target stores imported readings and reports how many were new.
type Target interface {
	ImportReadings(ctx context.Context, userID, source string, readings []*domain.BloodReading) (int, error)
}

// StateStore persists import bookkeeping.
type StateStore interface {
	GetSyncState(ctx context.Context, source, userID string) (*domain.SyncState, error)
	SaveSyncState(ctx context.Context, state *domain.SyncState) error
}

// Importer copies a user's Dexcom readings into the store.
type Importer struct {
	fetcher Fetcher
	target  Target
	state   StateStore
	userID  string
	logger  *zap.Logger
	now     func() time.Time
}

// ImporterOption configures an Importer.
type ImporterOption func(*Importer)

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) ImporterOption {
	return func(im *Importer) {
		if logger != nil {
			im.logger = logger
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) ImporterOption {
	return func(im *Importer) { im.now = now }
}

// NewImporter creates an importer for userID.
func NewImporter(fetcher Fetcher, target Target, state StateStore, userID string, opts ...ImporterOption) *Importer {
	im := &Importer{
		fetcher: fetcher,
		target:  target,
		state:   state,
		userID:  userID,
		logger:  zap.NewNop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(im)
	}
	return im
}

// Sync imports the readings taken since the last successful run, at most a
// day back. Returns how many new readings were stored.
func (im *Importer) Sync(ctx context.Context) (int, error) {
	state, err := im.state.GetSyncState(ctx, domain.SourceDexcom, im.userID)
	if storage.IsNotFound(err) {
		state = domain.NewSyncState(domain.SourceDexcom, im.userID)
	} else if err != nil {
		return 0, fmt.Errorf("failed to get sync state: %w", err)
	}

	now := im.now()
	minutes, count := window(state.LastReadingAt, now)

	n, newest, err := im.run(ctx, count, minutes)
	if err != nil {
		state.RecordError(now, err.Error())
		if saveErr := im.state.SaveSyncState(ctx, state); saveErr != nil {
			im.logger.Warn("failed to save sync state", zap.Error(saveErr))
		}
		return 0, err
	}

	state.RecordSuccess(now, n, newest)
	if err := im.state.SaveSyncState(ctx, state); err != nil {
		return n, fmt.Errorf("failed to save sync state: %w", err)
	}
	return n, nil
}

func (im *Importer) run(ctx context.Context, count, minutes int) (int, time.Time, error) {
	raw, err := im.fetcher.FetchReadings(ctx, count, minutes)
	if err != nil {
		return 0, time.Time{}, err
	}

	var newest time.Time
	readings := make([]*domain.BloodReading, 0, len(raw))
	for _, r := range raw {
		br := r.ToBloodReading()
		if br.Date.IsZero() {
			continue
		}
		if br.Date.After(newest) {
			newest = br.Date
		}
		readings = append(readings, br)
	}

	n, err := im.target.ImportReadings(ctx, im.userID, domain.SourceDexcom, readings)
	if err != nil {
		return 0, time.Time{}, err
	}
	return n, newest, nil
}

// Poll syncs immediately and then every interval until ctx is cancelled.
// Failed runs are logged and retried on the next tick.
func (im *Importer) Poll(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		n, err := im.Sync(ctx)
		switch {
		case ctx.Err() != nil:
			return nil
		case err != nil:
			im.logger.Warn("dexcom sync failed", zap.String("user_id", im.userID), zap.Error(err))
		case n > 0:
			im.logger.Info("dexcom sync", zap.String("user_id", im.userID), zap.Int("imported", n))
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// window returns how many minutes back to ask for and the matching
// reading count.
func window(last, now time.Time) (minutes, count int) {
	minutes = MaxMinutes
	if !last.IsZero() {
		since := int(now.Sub(last)/time.Minute) + 1
		minutes = min(max(since, int(readingInterval/time.Minute)), MaxMinutes)
	}
	count = min(minutes/int(readingInterval/time.Minute)+1, MaxCount)
	return minutes, count
}
