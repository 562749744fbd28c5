// Package recommend suggests the next meal from the day's glucose and
// nutrition totals.
package recommend

import (
	"github.com/jwulff/glucowise-go/internal/bloodsugar"
	"github.com/jwulff/glucowise-go/internal/domain"
	"github.com/jwulff/glucowise-go/internal/nutrition"
)

// HighGIThreshold is the day average glycemic index above which low-GI
// meals are suggested.
const HighGIThreshold = 55

// Category names the rule that produced a recommendation.
type Category string

const (
	CategoryLowCarb  Category = "low-carb"
	CategoryLowGI    Category = "low-gi"
	CategoryProtein  Category = "protein"
	CategoryBalanced Category = "balanced"
)

// Input is what the rules look at.
type Input struct {
	AvgGlucose float64 // day average in mg/dL
	HasGlucose bool    // false when the day has no readings
	Totals     nutrition.Totals
	CarbGoal   float64 // daily carbs in grams
	LastMeal   domain.MealType
}

// Recommendation is a suggested next meal.
type Recommendation struct {
	Category  Category          `json:"category"`
	Reason    string            `json:"reason"`
	MealType  domain.MealType   `json:"meal_type"`
	Name      string            `json:"name"`
	FoodItems []domain.FoodItem `json:"food_items"`
	Totals    nutrition.Totals  `json:"totals"`
	RecipeURL string            `json:"recipe_url"`
}

// Classify applies the rule chain and returns the matching category and
// the reason for it.
func Classify(in Input) (Category, string) {
	switch {
	case in.HasGlucose && in.AvgGlucose > bloodsugar.ThresholdHigh:
		return CategoryLowCarb, "average glucose today is above 180 mg/dL"
	case in.Totals.Items > 0 && in.Totals.AvgGI > HighGIThreshold:
		return CategoryLowGI, "today's meals have a high average glycemic index"
	case in.CarbGoal > 0 && in.Totals.Carbs > in.CarbGoal:
		return CategoryProtein, "carbohydrate intake is over today's goal"
	default:
		return CategoryBalanced, "glucose and carbohydrates are on track"
	}
}

// NextMealType returns the meal slot that follows last.
// An empty last means nothing was logged yet.
func NextMealType(last domain.MealType) domain.MealType {
	switch last {
	case "":
		return domain.MealBreakfast
	case domain.MealBreakfast:
		return domain.MealLunch
	case domain.MealLunch:
		return domain.MealDinner
	default:
		return domain.MealSnacks
	}
}

// Recommend returns the suggestions for the next meal, best first.
func Recommend(in Input) []Recommendation {
	category, reason := Classify(in)
	mealType := NextMealType(in.LastMeal)

	dishes := catalog[category]
	recs := make([]Recommendation, 0, len(dishes))
	for _, d := range dishes {
		recs = append(recs, Recommendation{
			Category:  category,
			Reason:    reason,
			MealType:  mealType,
			Name:      d.name,
			FoodItems: d.items,
			Totals:    nutrition.FromItems(d.items),
			RecipeURL: d.recipeURL,
		})
	}
	return recs
}
