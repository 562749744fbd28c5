package domain

import (
	"fmt"
	"time"
)

// DayLayout is the calendar-day key format used to bucket entries.
const DayLayout = "2006-01-02"

// DayKey returns the calendar day of t in loc as a "yyyy-MM-dd" key.
func DayKey(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(DayLayout)
}

// ParseDay parses a day key and returns midnight of that day in loc.
func ParseDay(key string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(DayLayout, key, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid day %q: %w", key, err)
	}
	return t, nil
}

// ShiftDay moves a day key by n calendar days.
// Arithmetic runs in UTC so DST transitions never skip or repeat a day.
func ShiftDay(key string, n int) (string, error) {
	t, err := time.ParseInLocation(DayLayout, key, time.UTC)
	if err != nil {
		return "", fmt.Errorf("invalid day %q: %w", key, err)
	}
	return t.AddDate(0, 0, n).Format(DayLayout), nil
}

// DayRange returns the n day keys ending at (and including) last, oldest first.
func DayRange(last string, n int) ([]string, error) {
	if n <= 0 {
		return nil, nil
	}
	days := make([]string, n)
	for i := 0; i < n; i++ {
		key, err := ShiftDay(last, i-n+1)
		if err != nil {
			return nil, err
		}
		days[i] = key
	}
	return days, nil
}
