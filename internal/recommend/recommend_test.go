package recommend

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwulff/glucowise-go/internal/domain"
	"github.com/jwulff/glucowise-go/internal/nutrition"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		in       Input
		expected Category
	}{
		{
			name:     "high glucose wins over everything",
			in:       Input{AvgGlucose: 190, HasGlucose: true, Totals: nutrition.Totals{AvgGI: 80, Carbs: 300, Items: 3}, CarbGoal: 130},
			expected: CategoryLowCarb,
		},
		{
			name:     "glucose at the threshold is not high",
			in:       Input{AvgGlucose: 180, HasGlucose: true, Totals: nutrition.Totals{AvgGI: 40, Carbs: 20, Items: 1}, CarbGoal: 130},
			expected: CategoryBalanced,
		},
		{
			name:     "high GI",
			in:       Input{AvgGlucose: 110, HasGlucose: true, Totals: nutrition.Totals{AvgGI: 61, Carbs: 50, Items: 2}, CarbGoal: 130},
			expected: CategoryLowGI,
		},
		{
			name:     "too many carbs",
			in:       Input{AvgGlucose: 110, HasGlucose: true, Totals: nutrition.Totals{AvgGI: 50, Carbs: 150, Items: 4}, CarbGoal: 130},
			expected: CategoryProtein,
		},
		{
			name:     "no readings, no meals",
			in:       Input{CarbGoal: 130},
			expected: CategoryBalanced,
		},
		{
			name:     "glucose ignored when the day has no readings",
			in:       Input{AvgGlucose: 250, Totals: nutrition.Totals{AvgGI: 30, Carbs: 10, Items: 1}, CarbGoal: 130},
			expected: CategoryBalanced,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			category, reason := Classify(tt.in)
			assert.Equal(t, tt.expected, category)
			assert.NotEmpty(t, reason)
		})
	}
}

func TestNextMealType(t *testing.T) {
	tests := []struct {
		last     domain.MealType
		expected domain.MealType
	}{
		{"", domain.MealBreakfast},
		{domain.MealBreakfast, domain.MealLunch},
		{domain.MealLunch, domain.MealDinner},
		{domain.MealDinner, domain.MealSnacks},
		{domain.MealSnacks, domain.MealSnacks},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, NextMealType(tt.last), "after %q", tt.last)
	}
}

func TestRecommend(t *testing.T) {
	recs := Recommend(Input{AvgGlucose: 200, HasGlucose: true, LastMeal: domain.MealLunch, CarbGoal: 130})
	require.NotEmpty(t, recs)

	for _, rec := range recs {
		assert.Equal(t, CategoryLowCarb, rec.Category)
		assert.Equal(t, domain.MealDinner, rec.MealType)
		assert.NotEmpty(t, rec.FoodItems)
		assert.NotEmpty(t, rec.RecipeURL)
		assert.Equal(t, len(rec.FoodItems), rec.Totals.Items)
		assert.NoError(t, domain.Validate(rec.FoodItems[0]))
	}
}

func TestCatalogCoversEveryCategory(t *testing.T) {
	for _, c := range []Category{CategoryLowCarb, CategoryLowGI, CategoryProtein, CategoryBalanced} {
		dishes := catalog[c]
		require.NotEmpty(t, dishes, c)
		for _, d := range dishes {
			totals := nutrition.FromItems(d.items)
			if c == CategoryLowCarb {
				assert.Less(t, totals.Carbs, 15.0, d.name)
			}
			if c == CategoryLowGI {
				assert.LessOrEqual(t, totals.AvgGI, float64(HighGIThreshold), d.name)
			}
		}
	}
}

func TestTipsFor(t *testing.T) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		tips := TipsFor(d)
		assert.Len(t, tips, 3, d.String())
	}

	assert.Equal(t, "Monday Motivation", TipsFor(time.Monday)[0].Title)
	assert.Equal(t, "Stay Hydrated", TipsFor(time.Weekday(9))[0].Title)

	// Callers get their own copy.
	tips := TipsFor(time.Friday)
	tips[0].Title = "changed"
	assert.Equal(t, "Weekend Prep", TipsFor(time.Friday)[0].Title)
}
