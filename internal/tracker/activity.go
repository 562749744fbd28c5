package tracker

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/jwulff/glucowise-go/internal/domain"
	"github.com/jwulff/glucowise-go/internal/storage"
)

// DaySteps is the step count of one day.
type DaySteps struct {
	Day   string `json:"day"`
	Steps int    `json:"steps"`
}

// Summary compares a day's activity and intake with the user's goals.
type Summary struct {
	Day               string  `json:"day"`
	Steps             int     `json:"steps"`
	StepGoal          int     `json:"step_goal"`
	StepProgress      float64 `json:"step_progress"`
	CaloriesConsumed  float64 `json:"calories_consumed"`
	CalorieGoal       float64 `json:"calorie_goal"`
	CaloriesRemaining float64 `json:"calories_remaining"`
	CaloriesBurned    float64 `json:"calories_burned"`
	ActivityGoal      float64 `json:"activity_goal"`
	WorkoutMinutes    int     `json:"workout_minutes"`
}

// AddActivity records the activity of a day, replacing any earlier record
// for the same day. A zero date means now.
func (t *Tracker) AddActivity(ctx context.Context, a *domain.ActivityProgress) error {
	if _, err := t.requireUser(ctx, a.UserID); err != nil {
		return err
	}
	if a.Date.IsZero() {
		a.Date = t.now()
	}
	a.Day = t.dayKey(a.Date)

	if err := domain.Validate(a); err != nil {
		return err
	}
	if err := t.store.SaveActivity(ctx, a); err != nil {
		return fmt.Errorf("failed to save activity: %w", err)
	}

	t.logger.Debug("activity recorded",
		zap.String("user_id", a.UserID),
		zap.String("day", a.Day),
		zap.Int("steps", a.TotalSteps))
	return nil
}

// ActivityFor returns the activity recorded on day.
func (t *Tracker) ActivityFor(ctx context.Context, userID string, day time.Time) (*domain.ActivityProgress, error) {
	a, err := t.store.GetActivity(ctx, userID, t.dayKey(day))
	if err != nil {
		return nil, fmt.Errorf("failed to get activity: %w", err)
	}
	return a, nil
}

// StepsTaken returns the steps recorded on day, 0 when nothing was recorded.
func (t *Tracker) StepsTaken(ctx context.Context, userID string, day time.Time) (int, error) {
	a, err := t.ActivityFor(ctx, userID, day)
	if storage.IsNotFound(err) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return a.TotalSteps, nil
}

// StepsHistory returns the steps of the n days ending at day, oldest first.
// Days without a record count as 0.
func (t *Tracker) StepsHistory(ctx context.Context, userID string, day time.Time, n int) ([]DaySteps, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: days must be positive, got %d", ErrInvalidInput, n)
	}
	days, err := domain.DayRange(t.dayKey(day), n)
	if err != nil {
		return nil, err
	}
	records, err := t.store.GetActivitiesBetween(ctx, userID, days[0], days[len(days)-1])
	if err != nil {
		return nil, fmt.Errorf("failed to get activity: %w", err)
	}

	steps := make(map[string]int, len(records))
	for _, a := range records {
		steps[a.Day] = a.TotalSteps
	}
	history := make([]DaySteps, len(days))
	for i, key := range days {
		history[i] = DaySteps{Day: key, Steps: steps[key]}
	}
	return history, nil
}

// DailySummary compares the activity and intake of day with the user's goals.
func (t *Tracker) DailySummary(ctx context.Context, userID string, day time.Time) (*Summary, error) {
	user, err := t.requireUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	consumed, err := t.CaloriesConsumed(ctx, userID, day)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		Day:              t.dayKey(day),
		StepGoal:         user.Goals.DailySteps,
		CaloriesConsumed: consumed,
		CalorieGoal:      user.Goals.DailyCalories,
		ActivityGoal:     user.Goals.DailyActivity,
	}
	summary.CaloriesRemaining = math.Max(summary.CalorieGoal-consumed, 0)

	a, err := t.ActivityFor(ctx, userID, day)
	switch {
	case err == nil:
		summary.Steps = a.TotalSteps
		summary.CaloriesBurned = a.CaloriesBurned
		summary.WorkoutMinutes = a.WorkoutMinutes
	case !storage.IsNotFound(err):
		return nil, err
	}
	if summary.StepGoal > 0 {
		summary.StepProgress = math.Min(float64(summary.Steps)/float64(summary.StepGoal), 1)
	}
	return summary, nil
}
