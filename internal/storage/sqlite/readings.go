package sqlite

import (
	"context"
	"fmt"

	"github.com/jwulff/glucowise-go/internal/domain"
	"github.com/jwulff/glucowise-go/internal/storage"
)

const readingColumns = "id, user_id, type, value, day, taken_at, source, trend"

// SaveReading stores a single reading. A reading ID owned by another user
// is a conflict.
func (s *Store) SaveReading(ctx context.Context, reading *domain.BloodReading) error {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO readings (`+readingColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			type = excluded.type,
			value = excluded.value,
			day = excluded.day,
			taken_at = excluded.taken_at,
			trend = excluded.trend
		WHERE readings.user_id = excluded.user_id
	`, reading.ID, reading.UserID, string(reading.Type), reading.Value, reading.Day,
		millis(reading.Date), sourceOf(reading), reading.Trend)
	if isUniqueViolation(err) {
		return storage.ErrConflict{Resource: "reading", Field: "timestamp"}
	}
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return storage.ErrConflict{Resource: "reading", Field: "id"}
	}
	return nil
}

// StoreReadings stores multiple readings in a single transaction.
// Sensor readings already stored for the same user and timestamp are
// skipped. Returns the number of readings actually inserted.
func (s *Store) StoreReadings(ctx context.Context, readings []*domain.BloodReading) (int, error) {
	if len(readings) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO readings (`+readingColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	inserted := 0
	for _, r := range readings {
		res, err := stmt.ExecContext(ctx, r.ID, r.UserID, string(r.Type), r.Value, r.Day,
			millis(r.Date), sourceOf(r), r.Trend)
		if err != nil {
			return 0, fmt.Errorf("failed to store reading: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, err
		}
		inserted += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return inserted, nil
}

// GetReadings retrieves a user's readings for one day in insertion order.
func (s *Store) GetReadings(ctx context.Context, userID, day string) ([]*domain.BloodReading, error) {
	return s.queryReadings(ctx, `
		SELECT `+readingColumns+` FROM readings
		WHERE user_id = ? AND day = ?
		ORDER BY seq
	`, userID, day)
}

// GetReadingsBetween retrieves a user's readings whose day lies in [from, to],
// ordered by day and then insertion order.
func (s *Store) GetReadingsBetween(ctx context.Context, userID, from, to string) ([]*domain.BloodReading, error) {
	return s.queryReadings(ctx, `
		SELECT `+readingColumns+` FROM readings
		WHERE user_id = ? AND day BETWEEN ? AND ?
		ORDER BY day, seq
	`, userID, from, to)
}

// DeleteReading removes one of a user's readings.
func (s *Store) DeleteReading(ctx context.Context, userID, id string) error {
	return s.deleteOwned(ctx, "readings", "reading", userID, id)
}

func (s *Store) queryReadings(ctx context.Context, query string, args ...any) ([]*domain.BloodReading, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var readings []*domain.BloodReading
	for rows.Next() {
		var (
			r       domain.BloodReading
			kind    string
			takenAt int64
		)
		if err := rows.Scan(&r.ID, &r.UserID, &kind, &r.Value, &r.Day, &takenAt, &r.Source, &r.Trend); err != nil {
			return nil, err
		}
		r.Type = domain.BloodReadingType(kind)
		r.Date = fromMillis(takenAt)
		readings = append(readings, &r)
	}
	return readings, rows.Err()
}

func sourceOf(r *domain.BloodReading) string {
	if r.Source == "" {
		return domain.SourceManual
	}
	return r.Source
}
