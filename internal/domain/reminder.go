package domain

import "time"

// Reminder is a user-defined recurring nudge, e.g. "Every day at 7:00 am".
type Reminder struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title" validate:"required,max=120"`
	Schedule  string    `json:"schedule" validate:"required,max=120"`
	Enabled   bool      `json:"enabled"`
	CreatedAt time.Time `json:"created_at"`
}

// Alert kinds pushed to connected clients.
const (
	AlertReadingOutOfRange = "reading.out_of_range"
	AlertReminderDue       = "reminder.due"
)

// Alert is a notification addressed to a single user.
type Alert struct {
	Kind      string    `json:"kind"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
	Data      any       `json:"data,omitempty"`
}
