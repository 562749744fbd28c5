package tracker

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jwulff/glucowise-go/internal/bloodsugar"
	"github.com/jwulff/glucowise-go/internal/domain"
)

// AddBloodReading validates and stores a reading. Readings dated in the
// future or with a non-positive value are rejected and nothing is stored.
// A zero date means now.
func (t *Tracker) AddBloodReading(ctx context.Context, r *domain.BloodReading) error {
	now := t.now()
	if r.Date.IsZero() {
		r.Date = now
	}
	if r.Date.After(now) {
		return ErrFutureReading
	}
	if r.Value <= 0 {
		return ErrInvalidReading
	}
	if _, err := t.requireUser(ctx, r.UserID); err != nil {
		return err
	}
	if r.ID == "" {
		r.ID = t.newID()
	}
	if r.Source == "" {
		r.Source = domain.SourceManual
	}
	r.Day = t.dayKey(r.Date)

	if err := domain.Validate(r); err != nil {
		return err
	}
	if err := t.store.SaveReading(ctx, r); err != nil {
		return fmt.Errorf("failed to save reading: %w", err)
	}

	t.logger.Debug("reading added",
		zap.String("user_id", r.UserID),
		zap.String("reading_id", r.ID),
		zap.String("day", r.Day),
		zap.Float64("value", r.Value))
	t.alertIfOutOfRange(r)
	return nil
}

// ImportReadings stores readings pulled from an external source. Readings
// already stored for the same timestamp, dated in the future or without a
// positive value are skipped. Returns the number stored.
func (t *Tracker) ImportReadings(ctx context.Context, userID, source string, readings []*domain.BloodReading) (int, error) {
	if _, err := t.requireUser(ctx, userID); err != nil {
		return 0, err
	}

	now := t.now()
	batch := make([]*domain.BloodReading, 0, len(readings))
	var newest *domain.BloodReading
	for _, r := range readings {
		if r.Value <= 0 || r.Date.IsZero() || r.Date.After(now) {
			continue
		}
		r.UserID = userID
		r.Source = source
		if r.ID == "" {
			r.ID = t.newID()
		}
		if r.Type == "" {
			r.Type = domain.ReadingSensor
		}
		r.Day = t.dayKey(r.Date)
		batch = append(batch, r)
		if newest == nil || r.Date.After(newest.Date) {
			newest = r
		}
	}

	n, err := t.store.StoreReadings(ctx, batch)
	if err != nil {
		return 0, fmt.Errorf("failed to import readings: %w", err)
	}

	t.logger.Info("readings imported",
		zap.String("user_id", userID),
		zap.String("source", source),
		zap.Int("received", len(readings)),
		zap.Int("stored", n))
	if n > 0 && newest != nil && !bloodsugar.IsStaleReading(newest.Date, now) {
		t.alertIfOutOfRange(newest)
	}
	return n, nil
}

// ReadingsFor returns the readings taken on day in time order.
func (t *Tracker) ReadingsFor(ctx context.Context, userID string, day time.Time) ([]*domain.BloodReading, error) {
	readings, err := t.store.GetReadings(ctx, userID, t.dayKey(day))
	if err != nil {
		return nil, fmt.Errorf("failed to get readings: %w", err)
	}
	sortByTime(readings)
	return readings, nil
}

// DeleteReading removes one of the user's readings.
func (t *Tracker) DeleteReading(ctx context.Context, userID, readingID string) error {
	if err := t.store.DeleteReading(ctx, userID, readingID); err != nil {
		return fmt.Errorf("failed to delete reading: %w", err)
	}
	return nil
}

// AverageFor returns the mean of the readings taken on day, or 0 if there
// are none.
func (t *Tracker) AverageFor(ctx context.Context, userID string, day time.Time) (float64, error) {
	avg, _, err := t.dayAverage(ctx, userID, day)
	return avg, err
}

// DifferenceBetweenBloodSugar returns the day average minus the previous
// day's average. ErrInsufficientReadings is returned if either day has no
// readings.
func (t *Tracker) DifferenceBetweenBloodSugar(ctx context.Context, userID string, day time.Time) (float64, error) {
	today, ok, err := t.dayAverage(ctx, userID, day)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, fmt.Errorf("%w: none on %s", ErrInsufficientReadings, t.dayKey(day))
	}

	prevKey, err := domain.ShiftDay(t.dayKey(day), -1)
	if err != nil {
		return 0, err
	}
	prev, err := t.store.GetReadings(ctx, userID, prevKey)
	if err != nil {
		return 0, fmt.Errorf("failed to get readings: %w", err)
	}
	yesterday, ok := bloodsugar.Average(values(prev))
	if !ok {
		return 0, fmt.Errorf("%w: none on %s", ErrInsufficientReadings, prevKey)
	}
	return today - yesterday, nil
}

// EstimateHbA1c estimates HbA1c from the readings of the last n calendar
// days ending today, where input holds n. Days without readings are left
// out of the average. A non-numeric or non-positive n is ErrInvalidInput.
func (t *Tracker) EstimateHbA1c(ctx context.Context, userID, input string) (float64, error) {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number of days", ErrInvalidInput, input)
	}
	avg, err := t.AverageGlucose(ctx, userID, n)
	if err != nil {
		return 0, err
	}
	return bloodsugar.EstimateHbA1c(avg), nil
}

// AverageGlucose averages the per-day means of the last n calendar days
// ending today. Days without readings are left out.
func (t *Tracker) AverageGlucose(ctx context.Context, userID string, n int) (float64, error) {
	if n <= 0 {
		return 0, fmt.Errorf("%w: days must be positive, got %d", ErrInvalidInput, n)
	}

	to := t.Today()
	from, err := domain.ShiftDay(to, -(n - 1))
	if err != nil {
		return 0, err
	}
	readings, err := t.store.GetReadingsBetween(ctx, userID, from, to)
	if err != nil {
		return 0, fmt.Errorf("failed to get readings: %w", err)
	}

	// Readings arrive ordered by day.
	var means, day []float64
	for i, r := range readings {
		day = append(day, r.Value)
		if i == len(readings)-1 || readings[i+1].Day != r.Day {
			mean, _ := bloodsugar.Average(day)
			means = append(means, mean)
			day = day[:0]
		}
	}

	avg, ok := bloodsugar.Average(means)
	if !ok {
		return 0, fmt.Errorf("%w: none in the last %d days", ErrInsufficientReadings, n)
	}
	return avg, nil
}

func (t *Tracker) dayAverage(ctx context.Context, userID string, day time.Time) (float64, bool, error) {
	readings, err := t.store.GetReadings(ctx, userID, t.dayKey(day))
	if err != nil {
		return 0, false, fmt.Errorf("failed to get readings: %w", err)
	}
	avg, ok := bloodsugar.Average(values(readings))
	return avg, ok, nil
}

func (t *Tracker) alertIfOutOfRange(r *domain.BloodReading) {
	if !bloodsugar.OutOfRange(r.Value) {
		return
	}
	status := bloodsugar.ClassifyRange(r.Value)
	t.alerts.Publish(r.UserID, domain.Alert{
		Kind:      domain.AlertReadingOutOfRange,
		Message:   fmt.Sprintf("Blood sugar is %s: %.0f mg/dL", status, r.Value),
		CreatedAt: t.now(),
		Data:      r,
	})
	t.logger.Info("out of range reading",
		zap.String("user_id", r.UserID),
		zap.String("reading_id", r.ID),
		zap.String("range", string(status)))
}

func values(readings []*domain.BloodReading) []float64 {
	vals := make([]float64, len(readings))
	for i, r := range readings {
		vals[i] = r.Value
	}
	return vals
}

func sortByTime(readings []*domain.BloodReading) {
	slices.SortStableFunc(readings, func(a, b *domain.BloodReading) int {
		return cmp.Compare(a.Date.UnixNano(), b.Date.UnixNano())
	})
}
