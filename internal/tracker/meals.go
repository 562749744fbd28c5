package tracker

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jwulff/glucowise-go/internal/domain"
	"github.com/jwulff/glucowise-go/internal/nutrition"
)

// AddMeal stores a meal under the day of its date. A zero date means now.
func (t *Tracker) AddMeal(ctx context.Context, meal *domain.Meal) error {
	if _, err := t.requireUser(ctx, meal.UserID); err != nil {
		return err
	}
	if meal.ID == "" {
		meal.ID = t.newID()
	}
	if meal.Date.IsZero() {
		meal.Date = t.now()
	}
	// Item IDs are always ours; client-supplied ones may collide with
	// items of other meals.
	for i := range meal.FoodItems {
		meal.FoodItems[i].ID = t.newID()
	}
	meal.Day = t.dayKey(meal.Date)

	if err := domain.Validate(meal); err != nil {
		return err
	}
	if err := t.store.SaveMeal(ctx, meal); err != nil {
		return fmt.Errorf("failed to save meal: %w", err)
	}

	t.logger.Debug("meal added",
		zap.String("user_id", meal.UserID),
		zap.String("day", meal.Day),
		zap.String("type", string(meal.Type)),
		zap.Int("items", len(meal.FoodItems)))
	return nil
}

// MealsFor returns the meals logged on day in insertion order.
func (t *Tracker) MealsFor(ctx context.Context, userID string, day time.Time) ([]*domain.Meal, error) {
	meals, err := t.store.GetMeals(ctx, userID, t.dayKey(day))
	if err != nil {
		return nil, fmt.Errorf("failed to get meals: %w", err)
	}
	return meals, nil
}

// DeleteMeal removes one of the user's meals.
func (t *Tracker) DeleteMeal(ctx context.Context, userID, mealID string) error {
	if err := t.store.DeleteMeal(ctx, userID, mealID); err != nil {
		return fmt.Errorf("failed to delete meal: %w", err)
	}
	return nil
}

// DailyNutrition rolls up every food item eaten on day.
func (t *Tracker) DailyNutrition(ctx context.Context, userID string, day time.Time) (nutrition.Totals, error) {
	meals, err := t.MealsFor(ctx, userID, day)
	if err != nil {
		return nutrition.Totals{}, err
	}
	return nutrition.DayTotals(meals), nil
}

// MealNutrition is the rollup of one meal.
type MealNutrition struct {
	MealID string           `json:"meal_id"`
	Type   domain.MealType  `json:"type"`
	Totals nutrition.Totals `json:"totals"`
}

// NutritionReport is the nutrition card of a day: the day totals, each
// meal's totals and the carb and GI levels as fractions of their limits.
type NutritionReport struct {
	Day       string           `json:"day"`
	Totals    nutrition.Totals `json:"totals"`
	Meals     []MealNutrition  `json:"meals"`
	CarbLevel float64          `json:"carb_level"`
	GILevel   float64          `json:"gi_level"`
}

// NutritionReport rolls up day per meal and against the user's carb goal.
func (t *Tracker) NutritionReport(ctx context.Context, userID string, day time.Time) (*NutritionReport, error) {
	user, err := t.requireUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	meals, err := t.MealsFor(ctx, userID, day)
	if err != nil {
		return nil, err
	}

	totals := nutrition.DayTotals(meals)
	report := &NutritionReport{
		Day:       t.dayKey(day),
		Totals:    totals,
		Meals:     make([]MealNutrition, len(meals)),
		CarbLevel: nutrition.CarbLevel(totals.Carbs, user.Goals.DailyCarbs),
		GILevel:   nutrition.GILevel(totals.AvgGI),
	}
	for i, meal := range meals {
		report.Meals[i] = MealNutrition{MealID: meal.ID, Type: meal.Type, Totals: nutrition.MealTotals(meal)}
	}
	return report, nil
}

// CaloriesConsumed returns the calories of every meal eaten on day.
func (t *Tracker) CaloriesConsumed(ctx context.Context, userID string, day time.Time) (float64, error) {
	totals, err := t.DailyNutrition(ctx, userID, day)
	if err != nil {
		return 0, err
	}
	return totals.Calories, nil
}
