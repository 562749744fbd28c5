package domain

import "time"

// ActivityProgress is the activity total of one calendar day.
// There is at most one record per user per day.
type ActivityProgress struct {
	UserID         string    `json:"user_id"`
	Date           time.Time `json:"date" validate:"required"`
	Day            string    `json:"day"`
	CaloriesBurned float64   `json:"calories_burned" validate:"gte=0"`
	WorkoutMinutes int       `json:"workout_minutes" validate:"gte=0,lte=1440"`
	TotalSteps     int       `json:"total_steps" validate:"gte=0"`
}
