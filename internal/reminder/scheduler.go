package reminder

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jwulff/glucowise-go/internal/domain"
)

// Source lists the reminders that may fire.
type Source interface {
	GetEnabledReminders(ctx context.Context) ([]*domain.Reminder, error)
}

// Sink receives the alerts of fired reminders.
type Sink interface {
	Publish(userID string, alert domain.Alert)
}

// Scheduler checks reminders at the start of every minute and publishes
// an alert for each one that is due.
type Scheduler struct {
	source Source
	sink   Sink
	loc    *time.Location
	logger *zap.Logger
	now    func() time.Time
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithLocation sets the time zone schedules are evaluated in.
func WithLocation(loc *time.Location) Option {
	return func(s *Scheduler) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Scheduler) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) { s.now = now }
}

// NewScheduler creates a scheduler.
func NewScheduler(source Source, sink Sink, opts ...Option) *Scheduler {
	s := &Scheduler{
		source: source,
		sink:   sink,
		loc:    time.Local,
		logger: zap.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run ticks at the start of each minute until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) error {
	// Wait until the start of the next minute.
	now := s.now()
	wait := now.Truncate(time.Minute).Add(time.Minute).Sub(now)
	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return nil
	case <-timer.C:
	}

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		if _, err := s.Tick(ctx, s.now()); err != nil {
			s.logger.Warn("reminder tick failed", zap.Error(err))
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// Tick fires every reminder due in the minute containing t and returns how
// many fired. Reminders with unparseable schedules are skipped.
func (s *Scheduler) Tick(ctx context.Context, t time.Time) (int, error) {
	reminders, err := s.source.GetEnabledReminders(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get reminders: %w", err)
	}

	local := t.In(s.loc).Truncate(time.Minute)
	fired := 0
	for _, r := range reminders {
		sched, err := Parse(r.Schedule)
		if err != nil {
			s.logger.Debug("skipping reminder", zap.String("reminder_id", r.ID), zap.Error(err))
			continue
		}
		if !sched.Due(local) {
			continue
		}
		s.sink.Publish(r.UserID, domain.Alert{
			Kind:      domain.AlertReminderDue,
			Message:   r.Title,
			CreatedAt: local,
			Data:      r,
		})
		fired++
	}

	if fired > 0 {
		s.logger.Info("reminders fired", zap.Int("count", fired), zap.Time("minute", local))
	}
	return fired, nil
}
