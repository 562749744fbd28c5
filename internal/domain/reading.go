package domain

import "time"

// BloodReadingType tags the context a reading was taken in.
type BloodReadingType string

const (
	ReadingFasting     BloodReadingType = "Fasting"
	ReadingPreMeal     BloodReadingType = "Pre-Meal"
	ReadingPostMeal    BloodReadingType = "Post-Meal"
	ReadingPreWorkout  BloodReadingType = "Pre-Workout"
	ReadingPostWorkout BloodReadingType = "Post-Workout"
	// ReadingSensor marks values imported from a continuous glucose monitor.
	ReadingSensor BloodReadingType = "Sensor"
)

// Valid reports whether t is a known reading type.
func (t BloodReadingType) Valid() bool {
	switch t {
	case ReadingFasting, ReadingPreMeal, ReadingPostMeal,
		ReadingPreWorkout, ReadingPostWorkout, ReadingSensor:
		return true
	}
	return false
}

// Reading sources.
const (
	SourceManual = "manual"
	SourceDexcom = "dexcom"
)

// BloodReading is a single blood glucose measurement.
type BloodReading struct {
	ID     string           `json:"id"`
	UserID string           `json:"user_id"`
	Type   BloodReadingType `json:"type" validate:"readingtype"`
	Value  float64          `json:"value" validate:"gt=0"` // mg/dL
	Date   time.Time        `json:"date" validate:"required"`
	Day    string           `json:"day"`
	Source string           `json:"source"`
	// Trend is the sensor's direction name, such as "FortyFiveUp".
	// Manual readings have none.
	Trend string `json:"trend,omitempty"`
}
