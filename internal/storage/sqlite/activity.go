package sqlite

import (
	"context"
	"database/sql"

	"github.com/jwulff/glucowise-go/internal/domain"
	"github.com/jwulff/glucowise-go/internal/storage"
)

// SaveActivity upserts the activity record of a user's day.
func (s *Store) SaveActivity(ctx context.Context, a *domain.ActivityProgress) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO activities (user_id, day, recorded_at, calories_burned, workout_minutes, total_steps)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id, day) DO UPDATE SET
			recorded_at = excluded.recorded_at,
			calories_burned = excluded.calories_burned,
			workout_minutes = excluded.workout_minutes,
			total_steps = excluded.total_steps
	`, a.UserID, a.Day, millis(a.Date), a.CaloriesBurned, a.WorkoutMinutes, a.TotalSteps)
	return err
}

// GetActivity retrieves the activity record of a user's day.
func (s *Store) GetActivity(ctx context.Context, userID, day string) (*domain.ActivityProgress, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT user_id, day, recorded_at, calories_burned, workout_minutes, total_steps
		FROM activities WHERE user_id = ? AND day = ?
	`, userID, day)

	a, err := scanActivity(row)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound{Resource: "activity", ID: day}
	}
	return a, err
}

// GetActivitiesBetween retrieves a user's activity records in [from, to], oldest first.
func (s *Store) GetActivitiesBetween(ctx context.Context, userID, from, to string) ([]*domain.ActivityProgress, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT user_id, day, recorded_at, calories_burned, workout_minutes, total_steps
		FROM activities WHERE user_id = ? AND day BETWEEN ? AND ?
		ORDER BY day
	`, userID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var activities []*domain.ActivityProgress
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		activities = append(activities, a)
	}
	return activities, rows.Err()
}

func scanActivity(sc scanner) (*domain.ActivityProgress, error) {
	var a domain.ActivityProgress
	var recordedAt int64
	if err := sc.Scan(&a.UserID, &a.Day, &recordedAt, &a.CaloriesBurned, &a.WorkoutMinutes, &a.TotalSteps); err != nil {
		return nil, err
	}
	a.Date = fromMillis(recordedAt)
	return &a, nil
}

// Reminder operations

// SaveReminder inserts or updates a reminder.
func (s *Store) SaveReminder(ctx context.Context, r *domain.Reminder) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO reminders (id, user_id, title, schedule, enabled, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			schedule = excluded.schedule,
			enabled = excluded.enabled
	`, r.ID, r.UserID, r.Title, r.Schedule, r.Enabled, millis(r.CreatedAt))
	return err
}

// GetReminder retrieves one of a user's reminders.
func (s *Store) GetReminder(ctx context.Context, userID, id string) (*domain.Reminder, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, title, schedule, enabled, created_at
		FROM reminders WHERE id = ? AND user_id = ?
	`, id, userID)

	r, err := scanReminder(row)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound{Resource: "reminder", ID: id}
	}
	return r, err
}

// GetReminders retrieves a user's reminders in creation order.
func (s *Store) GetReminders(ctx context.Context, userID string) ([]*domain.Reminder, error) {
	return s.queryReminders(ctx, `
		SELECT id, user_id, title, schedule, enabled, created_at
		FROM reminders WHERE user_id = ? ORDER BY seq
	`, userID)
}

// GetEnabledReminders retrieves the enabled reminders of every user.
func (s *Store) GetEnabledReminders(ctx context.Context) ([]*domain.Reminder, error) {
	return s.queryReminders(ctx, `
		SELECT id, user_id, title, schedule, enabled, created_at
		FROM reminders WHERE enabled = 1 ORDER BY seq
	`)
}

// DeleteReminder removes one of a user's reminders.
func (s *Store) DeleteReminder(ctx context.Context, userID, id string) error {
	return s.deleteOwned(ctx, "reminders", "reminder", userID, id)
}

func (s *Store) queryReminders(ctx context.Context, query string, args ...any) ([]*domain.Reminder, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reminders []*domain.Reminder
	for rows.Next() {
		r, err := scanReminder(rows)
		if err != nil {
			return nil, err
		}
		reminders = append(reminders, r)
	}
	return reminders, rows.Err()
}

func scanReminder(sc scanner) (*domain.Reminder, error) {
	var r domain.Reminder
	var createdAt int64
	if err := sc.Scan(&r.ID, &r.UserID, &r.Title, &r.Schedule, &r.Enabled, &createdAt); err != nil {
		return nil, err
	}
	r.CreatedAt = fromMillis(createdAt)
	return &r, nil
}

// Sync state operations

// GetSyncState retrieves the sync state of an import source for a user.
func (s *Store) GetSyncState(ctx context.Context, source, userID string) (*domain.SyncState, error) {
	var (
		lastRun, lastReading int64
		state                = domain.SyncState{Source: source, UserID: userID}
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT last_run, last_reading_at, imported, error_count, last_error
		FROM sync_state WHERE source = ? AND user_id = ?
	`, source, userID).Scan(&lastRun, &lastReading, &state.Imported, &state.ErrorCount, &state.LastError)

	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound{Resource: "sync_state", ID: source + "/" + userID}
	}
	if err != nil {
		return nil, err
	}

	state.LastRun = fromMillis(lastRun)
	state.LastReadingAt = fromMillis(lastReading)
	return &state, nil
}

// SaveSyncState saves a sync state.
func (s *Store) SaveSyncState(ctx context.Context, state *domain.SyncState) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO sync_state (source, user_id, last_run, last_reading_at, imported, error_count, last_error)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, state.Source, state.UserID, millis(state.LastRun), millis(state.LastReadingAt),
		state.Imported, state.ErrorCount, state.LastError)
	return err
}
