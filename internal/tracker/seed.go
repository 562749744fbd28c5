package tracker

import (
	"context"
	"time"

	"github.com/jwulff/glucowise-go/internal/domain"
)

// DemoEmail is the email of the demo account created by SeedDemo.
const DemoEmail = "john.doe@example.com"

// DemoPassword is the password of the demo account.
const DemoPassword = "Passw0rd!"

// SeedDemo creates a demo user with a day of meals, readings and activity.
// Entries are dated today and never later than now.
func (t *Tracker) SeedDemo(ctx context.Context) (*domain.User, error) {
	target := 100.0
	user := &domain.User{
		Name:             "John Doe",
		Email:            DemoEmail,
		Age:              30,
		Gender:           domain.GenderMale,
		WeightKg:         75,
		HeightCm:         180,
		TargetBloodSugar: &target,
		ActivityLevel:    domain.ActivityModerateActive,
	}
	if err := t.Register(ctx, user, DemoPassword); err != nil {
		return nil, err
	}

	now := t.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, t.loc)
	at := func(hour int) time.Time {
		ts := midnight.Add(time.Duration(hour) * time.Hour)
		if ts.After(now) {
			return now
		}
		return ts
	}

	meals := []*domain.Meal{
		{
			UserID: user.ID,
			Type:   domain.MealBreakfast,
			Date:   at(8),
			FoodItems: []domain.FoodItem{
				{Name: "Apple", Quantity: 1, Calories: 95, Carbs: 25, Fats: 0.3, Proteins: 0.5, Fiber: 4.4, GIIndex: 36},
			},
		},
		{
			UserID: user.ID,
			Type:   domain.MealLunch,
			Date:   at(12),
			FoodItems: []domain.FoodItem{
				{Name: "Rice", Quantity: 1, Calories: 200, Carbs: 45, Fats: 0.4, Proteins: 4.3, Fiber: 0.6, GIIndex: 73},
			},
		},
	}
	for _, m := range meals {
		if err := t.AddMeal(ctx, m); err != nil {
			return nil, err
		}
	}

	readings := []*domain.BloodReading{
		{UserID: user.ID, Type: domain.ReadingFasting, Value: 90, Date: at(7)},
		{UserID: user.ID, Type: domain.ReadingPostMeal, Value: 125, Date: at(13)},
	}
	for _, r := range readings {
		if err := t.AddBloodReading(ctx, r); err != nil {
			return nil, err
		}
	}

	activity := &domain.ActivityProgress{
		UserID:         user.ID,
		Date:           now,
		CaloriesBurned: 300,
		WorkoutMinutes: 45,
		TotalSteps:     8000,
	}
	if err := t.AddActivity(ctx, activity); err != nil {
		return nil, err
	}
	return user, nil
}
