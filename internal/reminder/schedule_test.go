package reminder

import (
	"errors"
	"testing"
	"time"
)

func at(hour, minute int) time.Time {
	return time.Date(2024, 3, 10, hour, minute, 0, 0, time.UTC)
}

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Every hour", "Every hour"},
		{"every HOUR", "Every hour"},
		{"Every 2 hours", "Every 2 hours"},
		{"Every 15 minutes", "Every 15 minutes"},
		{"Every minute", "Every minute"},
		{"Every 90 minutes", "Every 90 minutes"},
		{"Every day at 7:00 am", "Every day at 7:00 am"},
		{"Every day at 12:30 am", "Every day at 12:30 am"},
		{"Every day at 12:05 pm", "Every day at 12:05 pm"},
		{"Every day at 9:45pm", "Every day at 9:45 pm"},
		{"daily at 6:15 AM", "Every day at 6:15 am"},
		{"18:30", "Every day at 6:30 pm"},
		{"  00:00 ", "Every day at 12:00 am"},
	}

	for _, tt := range tests {
		sched, err := Parse(tt.input)
		if err != nil {
			t.Errorf("Parse(%q) error: %v", tt.input, err)
			continue
		}
		if got := sched.String(); got != tt.want {
			t.Errorf("Parse(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestParseInvalid(t *testing.T) {
	inputs := []string{
		"",
		"Never",
		"Weekly",
		"Every 0 hours",
		"Every 25 hours",
		"Every day at 13:00 pm",
		"Every day at 0:30 am",
		"24:00",
		"7:60",
		"at noon",
	}

	for _, input := range inputs {
		if _, err := Parse(input); !errors.Is(err, ErrUnknownSchedule) {
			t.Errorf("Parse(%q) error = %v, want ErrUnknownSchedule", input, err)
		}
	}
}

func TestDue(t *testing.T) {
	tests := []struct {
		schedule string
		t        time.Time
		want     bool
	}{
		{"Every hour", at(9, 0), true},
		{"Every hour", at(9, 1), false},
		{"Every 2 hours", at(10, 0), true},
		{"Every 2 hours", at(11, 0), false},
		{"Every 15 minutes", at(11, 45), true},
		{"Every 15 minutes", at(11, 50), false},
		{"Every day at 7:00 am", at(7, 0), true},
		{"Every day at 7:00 am", at(19, 0), false},
		{"Every day at 7:00 pm", at(19, 0), true},
		{"18:30", at(18, 30), true},
	}

	for _, tt := range tests {
		sched, err := Parse(tt.schedule)
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", tt.schedule, err)
		}
		// Seconds within the minute do not matter.
		ts := tt.t.Add(42 * time.Second)
		if got := sched.Due(ts); got != tt.want {
			t.Errorf("%q.Due(%s) = %v, want %v", tt.schedule, ts.Format("15:04:05"), got, tt.want)
		}
	}
}

func TestNext(t *testing.T) {
	tests := []struct {
		schedule string
		from     time.Time
		want     time.Time
	}{
		{"Every hour", at(9, 0), at(10, 0)},
		{"Every hour", at(9, 59), at(10, 0)},
		{"Every 15 minutes", at(9, 1), at(9, 15)},
		{"Every day at 7:00 am", at(6, 30), at(7, 0)},
		{"Every day at 7:00 am", at(7, 0), at(7, 0).AddDate(0, 0, 1)},
	}

	for _, tt := range tests {
		sched, err := Parse(tt.schedule)
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", tt.schedule, err)
		}
		if got := sched.Next(tt.from); !got.Equal(tt.want) {
			t.Errorf("%q.Next(%s) = %s, want %s", tt.schedule, tt.from, got, tt.want)
		}
	}
}
