package sqlite

import (
	"context"
	"database/sql"

	"github.com/jwulff/glucowise-go/internal/domain"
	"github.com/jwulff/glucowise-go/internal/storage"
)

const userColumns = `id, name, email, password_hash, age, gender, weight_kg, height_cm,
	target_blood_sugar, current_blood_sugar, activity_level,
	goal_blood_sugar, goal_body_weight, goal_daily_activity, goal_hba1c,
	goal_daily_steps, goal_daily_calories, goal_daily_carbs, created_at`

// SaveUser inserts or updates a user. A second user with the same
// email (case-insensitive) yields storage.ErrConflict.
func (s *Store) SaveUser(ctx context.Context, user *domain.User) error {
	g := user.Goals
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			email = excluded.email,
			password_hash = excluded.password_hash,
			age = excluded.age,
			gender = excluded.gender,
			weight_kg = excluded.weight_kg,
			height_cm = excluded.height_cm,
			target_blood_sugar = excluded.target_blood_sugar,
			current_blood_sugar = excluded.current_blood_sugar,
			activity_level = excluded.activity_level,
			goal_blood_sugar = excluded.goal_blood_sugar,
			goal_body_weight = excluded.goal_body_weight,
			goal_daily_activity = excluded.goal_daily_activity,
			goal_hba1c = excluded.goal_hba1c,
			goal_daily_steps = excluded.goal_daily_steps,
			goal_daily_calories = excluded.goal_daily_calories,
			goal_daily_carbs = excluded.goal_daily_carbs
	`, user.ID, user.Name, user.Email, user.PasswordHash, user.Age, string(user.Gender),
		user.WeightKg, user.HeightCm, nullFloat(user.TargetBloodSugar), nullFloat(user.CurrentBloodSugar),
		string(user.ActivityLevel), g.BloodSugar, g.BodyWeight, g.DailyActivity, g.HbA1c,
		g.DailySteps, g.DailyCalories, g.DailyCarbs, millis(user.CreatedAt))
	if isUniqueViolation(err) {
		return storage.ErrConflict{Resource: "user", Field: "email"}
	}
	return err
}

// GetUser retrieves a user by ID.
func (s *Store) GetUser(ctx context.Context, id string) (*domain.User, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE id = ?", id)
	user, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound{Resource: "user", ID: id}
	}
	return user, err
}

// GetUserByEmail retrieves a user by email, ignoring case.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE email = ?", email)
	user, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound{Resource: "user", ID: email}
	}
	return user, err
}

// GetUsers retrieves all users in creation order.
func (s *Store) GetUsers(ctx context.Context) ([]*domain.User, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+userColumns+" FROM users ORDER BY created_at, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// DeleteUser removes a user and everything recorded for them.
func (s *Store) DeleteUser(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM users WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return storage.ErrNotFound{Resource: "user", ID: id}
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(sc scanner) (*domain.User, error) {
	var (
		user            domain.User
		gender, level   string
		target, current sql.NullFloat64
		createdAt       int64
	)
	err := sc.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Age, &gender,
		&user.WeightKg, &user.HeightCm, &target, &current, &level,
		&user.Goals.BloodSugar, &user.Goals.BodyWeight, &user.Goals.DailyActivity, &user.Goals.HbA1c,
		&user.Goals.DailySteps, &user.Goals.DailyCalories, &user.Goals.DailyCarbs, &createdAt)
	if err != nil {
		return nil, err
	}
	user.Gender = domain.Gender(gender)
	user.ActivityLevel = domain.ActivityLevel(level)
	if target.Valid {
		user.TargetBloodSugar = &target.Float64
	}
	if current.Valid {
		user.CurrentBloodSugar = &current.Float64
	}
	user.CreatedAt = fromMillis(createdAt)
	return &user, nil
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}
