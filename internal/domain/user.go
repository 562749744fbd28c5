package domain

import "time"

// Gender of a user.
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

// Valid reports whether g is a known gender.
func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// ActivityLevel describes how active a user is day to day.
type ActivityLevel string

const (
	ActivitySedentary      ActivityLevel = "Sedentary"
	ActivityModerateActive ActivityLevel = "Moderately Active"
	ActivityActive         ActivityLevel = "Active"
	ActivityVeryActive     ActivityLevel = "Very Active"
)

// Valid reports whether l is a known activity level.
func (l ActivityLevel) Valid() bool {
	switch l {
	case ActivitySedentary, ActivityModerateActive, ActivityActive, ActivityVeryActive:
		return true
	}
	return false
}

// HealthGoals holds the targets a user works towards.
type HealthGoals struct {
	BloodSugar    float64 `json:"blood_sugar" validate:"gte=70,lte=200"`     // mg/dL
	BodyWeight    float64 `json:"body_weight" validate:"gte=30,lte=200"`     // kg
	DailyActivity float64 `json:"daily_activity" validate:"gte=100,lte=1000"` // kcal burned
	HbA1c         float64 `json:"hba1c" validate:"gte=0,lte=20"`             // percent
	DailySteps    int     `json:"daily_steps" validate:"gte=0"`
	DailyCalories float64 `json:"daily_calories" validate:"gte=0"` // kcal consumed
	DailyCarbs    float64 `json:"daily_carbs" validate:"gte=0"`    // grams
}

// DefaultGoals returns the goals a new user starts with.
func DefaultGoals() HealthGoals {
	return HealthGoals{
		BloodSugar:    100,
		BodyWeight:    70,
		DailyActivity: 300,
		HbA1c:         7,
		DailySteps:    10000,
		DailyCalories: 2000,
		DailyCarbs:    130,
	}
}

// User is a registered person tracking their health data.
type User struct {
	ID                string        `json:"id"`
	Name              string        `json:"name" validate:"required,person_name"`
	Email             string        `json:"email" validate:"required,email"`
	PasswordHash      string        `json:"-"`
	Age               int           `json:"age" validate:"gte=18,lte=130"`
	Gender            Gender        `json:"gender" validate:"gender"`
	WeightKg          float64       `json:"weight_kg" validate:"gte=30"`
	HeightCm          float64       `json:"height_cm" validate:"gte=100"`
	TargetBloodSugar  *float64      `json:"target_blood_sugar,omitempty" validate:"omitempty,gt=0"`
	CurrentBloodSugar *float64      `json:"current_blood_sugar,omitempty" validate:"omitempty,gt=0"`
	ActivityLevel     ActivityLevel `json:"activity_level" validate:"activitylevel"`
	Goals             HealthGoals   `json:"goals"`
	CreatedAt         time.Time     `json:"created_at"`
}
