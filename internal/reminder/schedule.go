// Package reminder parses reminder schedules and fires due reminders.
package reminder

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ErrUnknownSchedule is returned for schedule strings that cannot be parsed.
var ErrUnknownSchedule = errors.New("unknown schedule")

const minutesPerDay = 24 * 60

var (
	everyPattern = regexp.MustCompile(`^every\s+(?:(\d+)\s+)?(minute|minutes|hour|hours)$`)
	dailyPattern = regexp.MustCompile(`^(?:(?:every day|daily)\s+at\s+)?(\d{1,2}):(\d{2})\s*(am|pm)?$`)
)

// Schedule is a parsed reminder schedule. Interval schedules fire when the
// minute of the day is a multiple of the interval; daily schedules fire once
// a day at a fixed minute.
type Schedule struct {
	interval int // minutes, 0 for daily schedules
	at       int // minute of the day for daily schedules
}

// Parse parses a schedule such as "Every hour", "Every 2 hours",
// "Every 15 minutes", "Every day at 7:00 am" or "18:30". Matching is
// case-insensitive.
func Parse(s string) (Schedule, error) {
	norm := strings.ToLower(strings.Join(strings.Fields(s), " "))

	if m := everyPattern.FindStringSubmatch(norm); m != nil {
		n := 1
		if m[1] != "" {
			var err error
			if n, err = strconv.Atoi(m[1]); err != nil || n <= 0 {
				return Schedule{}, fmt.Errorf("%w: %q", ErrUnknownSchedule, s)
			}
		}
		if strings.HasPrefix(m[2], "hour") {
			n *= 60
		}
		if n > minutesPerDay {
			return Schedule{}, fmt.Errorf("%w: interval longer than a day in %q", ErrUnknownSchedule, s)
		}
		return Schedule{interval: n}, nil
	}

	if m := dailyPattern.FindStringSubmatch(norm); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute, _ := strconv.Atoi(m[2])
		if minute > 59 {
			return Schedule{}, fmt.Errorf("%w: %q", ErrUnknownSchedule, s)
		}
		switch m[3] {
		case "":
			if hour > 23 {
				return Schedule{}, fmt.Errorf("%w: %q", ErrUnknownSchedule, s)
			}
		default:
			if hour < 1 || hour > 12 {
				return Schedule{}, fmt.Errorf("%w: %q", ErrUnknownSchedule, s)
			}
			hour %= 12
			if m[3] == "pm" {
				hour += 12
			}
		}
		return Schedule{at: hour*60 + minute}, nil
	}

	return Schedule{}, fmt.Errorf("%w: %q", ErrUnknownSchedule, s)
}

// Due reports whether the schedule fires during the minute containing t.
// t is interpreted in its own location.
func (s Schedule) Due(t time.Time) bool {
	minute := t.Hour()*60 + t.Minute()
	if s.interval > 0 {
		return minute%s.interval == 0
	}
	return minute == s.at
}

// Next returns the start of the first minute after t at which the
// schedule fires.
func (s Schedule) Next(t time.Time) time.Time {
	candidate := t.Truncate(time.Minute).Add(time.Minute)
	// Two days of minutes covers every schedule.
	for i := 0; i < 2*minutesPerDay; i++ {
		if s.Due(candidate) {
			return candidate
		}
		candidate = candidate.Add(time.Minute)
	}
	return time.Time{}
}

// String renders the schedule in its canonical form.
func (s Schedule) String() string {
	switch {
	case s.interval == 1:
		return "Every minute"
	case s.interval == 60:
		return "Every hour"
	case s.interval > 0 && s.interval%60 == 0:
		return fmt.Sprintf("Every %d hours", s.interval/60)
	case s.interval > 0:
		return fmt.Sprintf("Every %d minutes", s.interval)
	}
	hour, minute := s.at/60, s.at%60
	suffix := "am"
	if hour >= 12 {
		suffix = "pm"
	}
	if hour = hour % 12; hour == 0 {
		hour = 12
	}
	return fmt.Sprintf("Every day at %d:%02d %s", hour, minute, suffix)
}
