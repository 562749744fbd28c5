package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jwulff/glucowise-go/internal/domain"
	"github.com/jwulff/glucowise-go/internal/storage"
)

// SaveMeal inserts or replaces a meal together with its food items.
// Food items keep their slice order. Items without an ID get one derived
// from the meal ID and their position. A meal ID owned by another user is
// a conflict and leaves that meal untouched.
func (s *Store) SaveMeal(ctx context.Context, meal *domain.Meal) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			INSERT INTO meals (id, user_id, type, day, eaten_at, recipe_url)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				type = excluded.type,
				day = excluded.day,
				eaten_at = excluded.eaten_at,
				recipe_url = excluded.recipe_url
			WHERE meals.user_id = excluded.user_id
		`, meal.ID, meal.UserID, string(meal.Type), meal.Day, millis(meal.Date), meal.RecipeURL)
		if err != nil {
			return fmt.Errorf("failed to save meal: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return storage.ErrConflict{Resource: "meal", Field: "id"}
		}

		if _, err := tx.ExecContext(ctx, "DELETE FROM food_items WHERE meal_id = ?", meal.ID); err != nil {
			return fmt.Errorf("failed to clear food items: %w", err)
		}

		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO food_items (id, meal_id, position, name, quantity, calories, carbs, fats, proteins, fiber, gi_index)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for i := range meal.FoodItems {
			item := &meal.FoodItems[i]
			if item.ID == "" {
				item.ID = fmt.Sprintf("%s/%d", meal.ID, i)
			}
			_, err := stmt.ExecContext(ctx, item.ID, meal.ID, i, item.Name, item.Quantity,
				item.Calories, item.Carbs, item.Fats, item.Proteins, item.Fiber, item.GIIndex)
			if err != nil {
				return fmt.Errorf("failed to save food item %q: %w", item.Name, err)
			}
		}
		return nil
	})
}

// GetMeals retrieves a user's meals for one day in insertion order.
func (s *Store) GetMeals(ctx context.Context, userID, day string) ([]*domain.Meal, error) {
	return s.GetMealsBetween(ctx, userID, day, day)
}

// GetMealsBetween retrieves a user's meals whose day lies in [from, to],
// ordered by day and then insertion order.
func (s *Store) GetMealsBetween(ctx context.Context, userID, from, to string) ([]*domain.Meal, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT m.id, m.user_id, m.type, m.day, m.eaten_at, m.recipe_url,
			f.id, f.name, f.quantity, f.calories, f.carbs, f.fats, f.proteins, f.fiber, f.gi_index
		FROM meals m
		LEFT JOIN food_items f ON f.meal_id = m.id
		WHERE m.user_id = ? AND m.day BETWEEN ? AND ?
		ORDER BY m.day, m.seq, f.position
	`, userID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var meals []*domain.Meal
	var current *domain.Meal
	for rows.Next() {
		var (
			meal     domain.Meal
			mealType string
			eatenAt  int64
			itemID   sql.NullString
			name     sql.NullString
			nums     [7]sql.NullFloat64
		)
		err := rows.Scan(&meal.ID, &meal.UserID, &mealType, &meal.Day, &eatenAt, &meal.RecipeURL,
			&itemID, &name, &nums[0], &nums[1], &nums[2], &nums[3], &nums[4], &nums[5], &nums[6])
		if err != nil {
			return nil, err
		}

		if current == nil || current.ID != meal.ID {
			meal.Type = domain.MealType(mealType)
			meal.Date = fromMillis(eatenAt)
			current = &meal
			meals = append(meals, current)
		}
		if itemID.Valid {
			current.FoodItems = append(current.FoodItems, domain.FoodItem{
				ID:       itemID.String,
				Name:     name.String,
				Quantity: nums[0].Float64,
				Calories: nums[1].Float64,
				Carbs:    nums[2].Float64,
				Fats:     nums[3].Float64,
				Proteins: nums[4].Float64,
				Fiber:    nums[5].Float64,
				GIIndex:  nums[6].Float64,
			})
		}
	}
	return meals, rows.Err()
}

// DeleteMeal removes one of a user's meals.
func (s *Store) DeleteMeal(ctx context.Context, userID, id string) error {
	return s.deleteOwned(ctx, "meals", "meal", userID, id)
}
