package domain

import (
	"errors"
	"time"
)

// ErrZeroQuantity is returned when a food item cannot be rescaled
// because its reference quantity is not positive.
var ErrZeroQuantity = errors.New("food item has no reference quantity")

// MealType is the slot of the day a meal belongs to.
type MealType string

const (
	MealBreakfast MealType = "Breakfast"
	MealLunch     MealType = "Lunch"
	MealDinner    MealType = "Dinner"
	MealSnacks    MealType = "Snacks"
)

// MealTypes lists meal slots in the order they happen during a day.
var MealTypes = []MealType{MealBreakfast, MealLunch, MealDinner, MealSnacks}

// Valid reports whether t is a known meal type.
func (t MealType) Valid() bool {
	for _, mt := range MealTypes {
		if t == mt {
			return true
		}
	}
	return false
}

// FoodItem is a portion of food with its macro-nutrients.
// Nutrient values refer to Quantity of the food.
type FoodItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name" validate:"required"`
	Quantity float64 `json:"quantity" validate:"gt=0"`
	Calories float64 `json:"calories" validate:"gte=0"`
	Carbs    float64 `json:"carbs" validate:"gte=0"`
	Fats     float64 `json:"fats" validate:"gte=0"`
	Proteins float64 `json:"proteins" validate:"gte=0"`
	Fiber    float64 `json:"fiber" validate:"gte=0"`
	GIIndex  float64 `json:"gi_index" validate:"gte=0,lte=100"`
}

// AdjustedNutrients returns the item rescaled to quantity q.
// Every nutrient scales by q/Quantity; the glycemic index is unchanged.
func (f FoodItem) AdjustedNutrients(q float64) (FoodItem, error) {
	if f.Quantity <= 0 {
		return FoodItem{}, ErrZeroQuantity
	}
	factor := q / f.Quantity
	adjusted := f
	adjusted.Quantity = q
	adjusted.Calories = f.Calories * factor
	adjusted.Carbs = f.Carbs * factor
	adjusted.Fats = f.Fats * factor
	adjusted.Proteins = f.Proteins * factor
	adjusted.Fiber = f.Fiber * factor
	return adjusted, nil
}

// Meal is a logged eating occasion.
type Meal struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	Type      MealType   `json:"type" validate:"mealtype"`
	FoodItems []FoodItem `json:"food_items" validate:"required,min=1,dive"`
	Date      time.Time  `json:"date" validate:"required"`
	Day       string     `json:"day"`
	RecipeURL string     `json:"recipe_url,omitempty" validate:"omitempty,url"`
}
