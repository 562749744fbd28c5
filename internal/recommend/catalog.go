package recommend

import "github.com/jwulff/glucowise-go/internal/domain"

type dish struct {
	name      string
	recipeURL string
	items     []domain.FoodItem
}

func food(name string, qty, kcal, carbs, fats, proteins, fiber, gi float64) domain.FoodItem {
	return domain.FoodItem{
		Name:     name,
		Quantity: qty,
		Calories: kcal,
		Carbs:    carbs,
		Fats:     fats,
		Proteins: proteins,
		Fiber:    fiber,
		GIIndex:  gi,
	}
}

var catalog = map[Category][]dish{
	CategoryLowCarb: {
		{
			name:      "Grilled chicken salad",
			recipeURL: "https://www.diabetesfoodhub.org/recipes/grilled-chicken-salad",
			items: []domain.FoodItem{
				food("Grilled chicken breast", 120, 198, 0, 4.3, 37, 0, 0),
				food("Mixed greens", 80, 17, 3, 0.2, 1.5, 1.8, 15),
				food("Olive oil dressing", 15, 120, 0.5, 13.5, 0, 0, 0),
			},
		},
		{
			name:      "Salmon with steamed broccoli",
			recipeURL: "https://www.diabetesfoodhub.org/recipes/baked-salmon-broccoli",
			items: []domain.FoodItem{
				food("Baked salmon", 120, 245, 0, 14, 27, 0, 0),
				food("Steamed broccoli", 150, 52, 10, 0.6, 3.6, 5, 15),
			},
		},
	},
	CategoryLowGI: {
		{
			name:      "Lentil vegetable soup",
			recipeURL: "https://www.diabetesfoodhub.org/recipes/lentil-vegetable-soup",
			items: []domain.FoodItem{
				food("Cooked lentils", 150, 174, 30, 0.6, 13.5, 12, 32),
				food("Carrot and celery", 100, 30, 7, 0.2, 0.8, 2.4, 35),
			},
		},
		{
			name:      "Greek yogurt with berries",
			recipeURL: "https://www.diabetesfoodhub.org/recipes/yogurt-berry-parfait",
			items: []domain.FoodItem{
				food("Plain Greek yogurt", 170, 100, 6, 0.7, 17, 0, 11),
				food("Mixed berries", 75, 36, 9, 0.2, 0.6, 2.5, 40),
			},
		},
	},
	CategoryProtein: {
		{
			name:      "Vegetable omelette",
			recipeURL: "https://www.diabetesfoodhub.org/recipes/vegetable-omelet",
			items: []domain.FoodItem{
				food("Eggs", 100, 143, 0.7, 9.5, 12.6, 0, 0),
				food("Spinach and peppers", 80, 20, 4, 0.3, 1.5, 1.6, 15),
			},
		},
		{
			name:      "Tofu stir-fry",
			recipeURL: "https://www.diabetesfoodhub.org/recipes/tofu-vegetable-stir-fry",
			items: []domain.FoodItem{
				food("Firm tofu", 150, 216, 4, 13, 24, 3, 15),
				food("Stir-fried vegetables", 120, 60, 10, 2, 2.5, 3.5, 20),
			},
		},
	},
	CategoryBalanced: {
		{
			name:      "Quinoa bowl with chickpeas",
			recipeURL: "https://www.diabetesfoodhub.org/recipes/quinoa-chickpea-bowl",
			items: []domain.FoodItem{
				food("Cooked quinoa", 140, 168, 30, 2.7, 6.2, 3.9, 53),
				food("Chickpeas", 80, 131, 22, 2.1, 7.1, 6.1, 28),
				food("Cucumber and tomato", 100, 18, 3.9, 0.2, 0.9, 1.2, 15),
			},
		},
		{
			name:      "Whole wheat turkey wrap",
			recipeURL: "https://www.diabetesfoodhub.org/recipes/turkey-wrap",
			items: []domain.FoodItem{
				food("Whole wheat tortilla", 45, 130, 22, 3, 4, 3, 45),
				food("Sliced turkey", 60, 65, 1, 1, 13, 0, 0),
				food("Lettuce and tomato", 60, 10, 2, 0.1, 0.6, 0.8, 15),
			},
		},
	},
}
