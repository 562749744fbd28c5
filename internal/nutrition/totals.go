// Package nutrition rolls meals up into nutrient and glycemic totals.
package nutrition

import (
	"math"

	"github.com/jwulff/glucowise-go/internal/domain"
)

// Totals is the nutrient rollup of a set of food items.
type Totals struct {
	Calories     float64 `json:"calories"`
	Carbs        float64 `json:"carbs"`
	Fats         float64 `json:"fats"`
	Proteins     float64 `json:"proteins"`
	Fiber        float64 `json:"fiber"`
	AvgGI        float64 `json:"avg_gi"`
	GlycemicLoad float64 `json:"glycemic_load"`
	Items        int     `json:"items"`
}

// FromItems sums the nutrients of items. The average glycemic index is the
// plain mean over items (0 for none) and the glycemic load is avgGI*carbs/100.
func FromItems(items []domain.FoodItem) Totals {
	var t Totals
	var giSum float64
	for _, item := range items {
		t.Calories += item.Calories
		t.Carbs += item.Carbs
		t.Fats += item.Fats
		t.Proteins += item.Proteins
		t.Fiber += item.Fiber
		giSum += item.GIIndex
	}
	t.Items = len(items)
	if t.Items > 0 {
		t.AvgGI = giSum / float64(t.Items)
	}
	t.GlycemicLoad = GlycemicLoad(t.AvgGI, t.Carbs)
	return t
}

// MealTotals rolls up a single meal.
func MealTotals(meal *domain.Meal) Totals {
	return FromItems(meal.FoodItems)
}

// DayTotals rolls up every food item of every meal.
func DayTotals(meals []*domain.Meal) Totals {
	var items []domain.FoodItem
	for _, meal := range meals {
		items = append(items, meal.FoodItems...)
	}
	return FromItems(items)
}

// GlycemicLoad computes (gi * carbs) / 100.
func GlycemicLoad(gi, carbs float64) float64 {
	return gi * carbs / 100
}

// CarbLevel is total carbs as a fraction of the daily goal, capped at 1.
func CarbLevel(carbs, goal float64) float64 {
	if goal <= 0 {
		return 0
	}
	return math.Min(carbs/goal, 1)
}

// GILevel is the average glycemic index as a fraction of 100, capped at 1.
func GILevel(avgGI float64) float64 {
	return math.Min(math.Max(avgGI, 0)/100, 1)
}

// BurnMinutes estimates the minutes of walking needed to burn calories:
// five minutes per full ten kcal.
func BurnMinutes(calories float64) int {
	if calories <= 0 {
		return 0
	}
	return int(calories/10) * 5
}
