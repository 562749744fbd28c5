package tracker

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jwulff/glucowise-go/internal/domain"
)

// AddReminder stores a new reminder. Schedules that cannot be parsed are
// kept but never fire.
func (t *Tracker) AddReminder(ctx context.Context, r *domain.Reminder) error {
	if _, err := t.requireUser(ctx, r.UserID); err != nil {
		return err
	}
	if r.ID == "" {
		r.ID = t.newID()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = t.now()
	}
	if err := domain.Validate(r); err != nil {
		return err
	}
	if err := t.store.SaveReminder(ctx, r); err != nil {
		return fmt.Errorf("failed to save reminder: %w", err)
	}

	t.logger.Debug("reminder added", zap.String("user_id", r.UserID), zap.String("schedule", r.Schedule))
	return nil
}

// Reminders lists the user's reminders.
func (t *Tracker) Reminders(ctx context.Context, userID string) ([]*domain.Reminder, error) {
	reminders, err := t.store.GetReminders(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get reminders: %w", err)
	}
	return reminders, nil
}

// UpdateReminder replaces the title, schedule and enabled flag of an
// existing reminder.
func (t *Tracker) UpdateReminder(ctx context.Context, r *domain.Reminder) error {
	existing, err := t.store.GetReminder(ctx, r.UserID, r.ID)
	if err != nil {
		return fmt.Errorf("failed to get reminder: %w", err)
	}
	r.CreatedAt = existing.CreatedAt

	if err := domain.Validate(r); err != nil {
		return err
	}
	if err := t.store.SaveReminder(ctx, r); err != nil {
		return fmt.Errorf("failed to save reminder: %w", err)
	}
	return nil
}

// DeleteReminder removes one of the user's reminders.
func (t *Tracker) DeleteReminder(ctx context.Context, userID, id string) error {
	if err := t.store.DeleteReminder(ctx, userID, id); err != nil {
		return fmt.Errorf("failed to delete reminder: %w", err)
	}
	return nil
}
