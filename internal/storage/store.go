// Package storage provides storage abstractions for health data.
package storage

import (
	"context"
	"errors"

	"github.com/jwulff/glucowise-go/internal/domain"
)

// Store is the interface for persistent storage.
// Day arguments are "yyyy-MM-dd" keys; ranges are inclusive.
type Store interface {
	// Users
	SaveUser(ctx context.Context, user *domain.User) error
	GetUser(ctx context.Context, id string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	GetUsers(ctx context.Context) ([]*domain.User, error)
	DeleteUser(ctx context.Context, id string) error

	// Meals
	SaveMeal(ctx context.Context, meal *domain.Meal) error
	GetMeals(ctx context.Context, userID, day string) ([]*domain.Meal, error)
	GetMealsBetween(ctx context.Context, userID, from, to string) ([]*domain.Meal, error)
	DeleteMeal(ctx context.Context, userID, id string) error

	// Blood readings
	SaveReading(ctx context.Context, reading *domain.BloodReading) error
	StoreReadings(ctx context.Context, readings []*domain.BloodReading) (int, error)
	GetReadings(ctx context.Context, userID, day string) ([]*domain.BloodReading, error)
	GetReadingsBetween(ctx context.Context, userID, from, to string) ([]*domain.BloodReading, error)
	DeleteReading(ctx context.Context, userID, id string) error

	// Activity
	SaveActivity(ctx context.Context, activity *domain.ActivityProgress) error
	GetActivity(ctx context.Context, userID, day string) (*domain.ActivityProgress, error)
	GetActivitiesBetween(ctx context.Context, userID, from, to string) ([]*domain.ActivityProgress, error)

	// Reminders
	SaveReminder(ctx context.Context, reminder *domain.Reminder) error
	GetReminder(ctx context.Context, userID, id string) (*domain.Reminder, error)
	GetReminders(ctx context.Context, userID string) ([]*domain.Reminder, error)
	GetEnabledReminders(ctx context.Context) ([]*domain.Reminder, error)
	DeleteReminder(ctx context.Context, userID, id string) error

	// Import bookkeeping
	GetSyncState(ctx context.Context, source, userID string) (*domain.SyncState, error)
	SaveSyncState(ctx context.Context, state *domain.SyncState) error

	// Lifecycle
	Close() error
}

// ErrNotFound is returned when a record is not found.
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e ErrNotFound) Error() string {
	return e.Resource + " not found: " + e.ID
}

// IsNotFound checks if an error is, or wraps, a not found error.
func IsNotFound(err error) bool {
	var nf ErrNotFound
	return errors.As(err, &nf)
}

// ErrConflict is returned when a write violates a uniqueness rule.
type ErrConflict struct {
	Resource string
	Field    string
}

func (e ErrConflict) Error() string {
	return e.Resource + " already exists with this " + e.Field
}

// IsConflict checks if an error is, or wraps, a conflict error.
func IsConflict(err error) bool {
	var c ErrConflict
	return errors.As(err, &c)
}
