// Package tracker manages a user's health data: meals, glucose readings,
// activity and reminders, and derives daily summaries from them.
package tracker

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jwulff/glucowise-go/internal/domain"
	"github.com/jwulff/glucowise-go/internal/storage"
)

// Errors returned by tracker operations.
var (
	ErrFutureReading        = errors.New("reading date is in the future")
	ErrInvalidReading       = errors.New("reading value must be positive")
	ErrInvalidInput         = errors.New("invalid input")
	ErrInsufficientReadings = errors.New("not enough readings")
	ErrEmailTaken           = errors.New("email is already registered")
	ErrInvalidCredentials   = errors.New("invalid email or password")
)

// AlertSink receives alerts addressed to a user.
type AlertSink interface {
	Publish(userID string, alert domain.Alert)
}

type nopSink struct{}

func (nopSink) Publish(string, domain.Alert) {}

// Tracker is the health-data manager. It is safe for concurrent use when
// the underlying store is.
type Tracker struct {
	store  storage.Store
	now    func() time.Time
	loc    *time.Location
	logger *zap.Logger
	alerts AlertSink
	newID  func() string
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// WithLocation sets the time zone used to bucket entries into days.
func WithLocation(loc *time.Location) Option {
	return func(t *Tracker) {
		if loc != nil {
			t.loc = loc
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(t *Tracker) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// WithAlerts sets where out-of-range alerts are published.
func WithAlerts(sink AlertSink) Option {
	return func(t *Tracker) {
		if sink != nil {
			t.alerts = sink
		}
	}
}

// New creates a Tracker backed by store.
func New(store storage.Store, opts ...Option) *Tracker {
	t := &Tracker{
		store:  store,
		now:    time.Now,
		loc:    time.Local,
		logger: zap.NewNop(),
		alerts: nopSink{},
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Location returns the time zone days are computed in.
func (t *Tracker) Location() *time.Location {
	return t.loc
}

// Now returns the current time in the tracker's time zone.
func (t *Tracker) Now() time.Time {
	return t.now().In(t.loc)
}

// Today returns the day key of the current time.
func (t *Tracker) Today() string {
	return t.dayKey(t.now())
}

func (t *Tracker) dayKey(ts time.Time) string {
	return domain.DayKey(ts, t.loc)
}
