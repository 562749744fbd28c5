package sqlite

// schema contains the database schema DDL.
// Timestamps are Unix milliseconds; day columns hold "yyyy-MM-dd" keys.
const schema = `
-- Users
CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    email TEXT NOT NULL UNIQUE COLLATE NOCASE,
    password_hash TEXT NOT NULL DEFAULT '',
    age INTEGER NOT NULL,
    gender TEXT NOT NULL,
    weight_kg REAL NOT NULL,
    height_cm REAL NOT NULL,
    target_blood_sugar REAL,
    current_blood_sugar REAL,
    activity_level TEXT NOT NULL,
    goal_blood_sugar REAL NOT NULL DEFAULT 100,
    goal_body_weight REAL NOT NULL DEFAULT 70,
    goal_daily_activity REAL NOT NULL DEFAULT 300,
    goal_hba1c REAL NOT NULL DEFAULT 7,
    goal_daily_steps INTEGER NOT NULL DEFAULT 10000,
    goal_daily_calories REAL NOT NULL DEFAULT 2000,
    goal_daily_carbs REAL NOT NULL DEFAULT 130,
    created_at INTEGER NOT NULL
);

-- Meals and their food items
CREATE TABLE IF NOT EXISTS meals (
    seq INTEGER PRIMARY KEY AUTOINCREMENT,
    id TEXT NOT NULL UNIQUE,
    user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    type TEXT NOT NULL,
    day TEXT NOT NULL,
    eaten_at INTEGER NOT NULL,
    recipe_url TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_meals_user_day ON meals(user_id, day);

CREATE TABLE IF NOT EXISTS food_items (
    id TEXT PRIMARY KEY,
    meal_id TEXT NOT NULL REFERENCES meals(id) ON DELETE CASCADE,
    position INTEGER NOT NULL,
    name TEXT NOT NULL,
    quantity REAL NOT NULL,
    calories REAL NOT NULL,
    carbs REAL NOT NULL,
    fats REAL NOT NULL,
    proteins REAL NOT NULL,
    fiber REAL NOT NULL,
    gi_index REAL NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_food_items_meal ON food_items(meal_id, position);

-- Blood glucose readings
CREATE TABLE IF NOT EXISTS readings (
    seq INTEGER PRIMARY KEY AUTOINCREMENT,
    id TEXT NOT NULL UNIQUE,
    user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    type TEXT NOT NULL,
    value REAL NOT NULL,
    day TEXT NOT NULL,
    taken_at INTEGER NOT NULL,
    source TEXT NOT NULL DEFAULT 'manual',
    trend TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_readings_user_day ON readings(user_id, day, taken_at);
CREATE UNIQUE INDEX IF NOT EXISTS idx_readings_sensor_time
    ON readings(user_id, taken_at) WHERE source = 'dexcom';

-- Daily activity, one row per user and day
CREATE TABLE IF NOT EXISTS activities (
    user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    day TEXT NOT NULL,
    recorded_at INTEGER NOT NULL,
    calories_burned REAL NOT NULL,
    workout_minutes INTEGER NOT NULL,
    total_steps INTEGER NOT NULL,
    PRIMARY KEY (user_id, day)
);

-- Reminders
CREATE TABLE IF NOT EXISTS reminders (
    seq INTEGER PRIMARY KEY AUTOINCREMENT,
    id TEXT NOT NULL UNIQUE,
    user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    title TEXT NOT NULL,
    schedule TEXT NOT NULL,
    enabled INTEGER NOT NULL DEFAULT 1,
    created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_reminders_user ON reminders(user_id);

-- Import bookkeeping
CREATE TABLE IF NOT EXISTS sync_state (
    source TEXT NOT NULL,
    user_id TEXT NOT NULL,
    last_run INTEGER NOT NULL DEFAULT 0,
    last_reading_at INTEGER NOT NULL DEFAULT 0,
    imported INTEGER NOT NULL DEFAULT 0,
    error_count INTEGER NOT NULL DEFAULT 0,
    last_error TEXT NOT NULL DEFAULT '',
    PRIMARY KEY (source, user_id)
);
`
