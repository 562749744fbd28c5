package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwulff/glucowise-go/internal/auth"
	"github.com/jwulff/glucowise-go/internal/domain"
	"github.com/jwulff/glucowise-go/internal/nutritionix"
	"github.com/jwulff/glucowise-go/internal/realtime"
	"github.com/jwulff/glucowise-go/internal/storage"
	"github.com/jwulff/glucowise-go/internal/storage/sqlite"
	"github.com/jwulff/glucowise-go/internal/tracker"
)

// now is the fixed tracker clock: Sunday 2024-03-10 15:00 UTC.
var now = time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeFoods struct {
	food *nutritionix.Food
}

func (f *fakeFoods) Search(_ context.Context, query string) ([]nutritionix.Suggestion, error) {
	return []nutritionix.Suggestion{{Name: query, ServingUnit: "cup", ServingQty: 1}}, nil
}

func (f *fakeFoods) Lookup(_ context.Context, query string) (*nutritionix.Food, error) {
	if f.food == nil || !strings.EqualFold(query, f.food.Name) {
		return nil, nutritionix.ErrNoFood
	}
	return f.food, nil
}

type testEnv struct {
	handler http.Handler
	hub     *realtime.Hub
}

func newTestEnv(t *testing.T, opts ...Option) *testEnv {
	t.Helper()
	store, err := sqlite.NewMemoryStore()
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	hub := realtime.NewHub(nil)
	tr := tracker.New(store,
		tracker.WithClock(func() time.Time { return now }),
		tracker.WithLocation(time.UTC),
		tracker.WithAlerts(hub),
	)
	issuer := auth.NewIssuer("test-secret", time.Hour)
	opts = append([]Option{WithHub(hub)}, opts...)
	return &testEnv{handler: New(tr, issuer, opts...).Handler(), hub: hub}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func registerBody(email string) map[string]any {
	return map[string]any{
		"name":           "Jane Doe",
		"email":          email,
		"password":       "Passw0rd!",
		"age":            34,
		"gender":         "Female",
		"weight_kg":      62,
		"height_cm":      168,
		"activity_level": "Active",
	}
}

// register creates an account and returns its token and user ID.
func (e *testEnv) register(t *testing.T, email string) (string, string) {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/auth/register", "", registerBody(email))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp tokenResponse
	decode(t, rec, &resp)
	require.NotEmpty(t, resp.Token)
	return resp.Token, resp.User.ID
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out), rec.Body.String())
}

func errorOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	decode(t, rec, &body)
	return body.Error
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)
	token, userID := env.register(t, "jane@example.com")

	rec := env.do(t, http.MethodGet, "/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var me domain.User
	decode(t, rec, &me)
	assert.Equal(t, userID, me.ID)
	assert.Equal(t, domain.DefaultGoals(), me.Goals)
	assert.NotContains(t, rec.Body.String(), "password")

	rec = env.do(t, http.MethodPost, "/auth/login", "", map[string]string{
		"email": "JANE@example.com", "password": "Passw0rd!",
	})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodPost, "/auth/login", "", map[string]string{
		"email": "jane@example.com", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRegisterErrors(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "jane@example.com")

	tests := []struct {
		name   string
		mutate func(map[string]any)
		status int
	}{
		{"duplicate email", func(map[string]any) {}, http.StatusConflict},
		{"weak password", func(b map[string]any) {
			b["email"] = "other@example.com"
			b["password"] = "abc"
		}, http.StatusBadRequest},
		{"missing password", func(b map[string]any) {
			b["email"] = "other@example.com"
			delete(b, "password")
		}, http.StatusBadRequest},
		{"underage", func(b map[string]any) {
			b["email"] = "other@example.com"
			b["age"] = 12
		}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := registerBody("jane@example.com")
			tt.mutate(body)
			rec := env.do(t, http.MethodPost, "/auth/register", "", body)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
		})
	}
}

func TestRequireAuth(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name   string
		header string
	}{
		{"missing", ""},
		{"not bearer", "Basic abc"},
		{"garbage token", "Bearer abc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			env.handler.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.NotEmpty(t, errorOf(t, rec))
		})
	}
}

func TestUpdateMeKeepsOmittedFields(t *testing.T) {
	env := newTestEnv(t)
	token, userID := env.register(t, "jane@example.com")

	rec := env.do(t, http.MethodPut, "/me", token, map[string]any{"id": "hijack", "weight_kg": 64.5})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var me domain.User
	decode(t, rec, &me)
	assert.Equal(t, userID, me.ID)
	assert.Equal(t, 64.5, me.WeightKg)
	assert.Equal(t, "Jane Doe", me.Name)
}

func TestChangePassword(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.register(t, "jane@example.com")

	rec := env.do(t, http.MethodPut, "/me/password", token, map[string]string{
		"old_password": "nope", "new_password": "N3w!pass",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, http.MethodPut, "/me/password", token, map[string]string{
		"old_password": "Passw0rd!", "new_password": "N3w!pass",
	})
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.do(t, http.MethodPost, "/auth/login", "", map[string]string{
		"email": "jane@example.com", "password": "N3w!pass",
	})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestChangePasswordRejectsWeakPassword(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.register(t, "jane@example.com")

	rec := env.do(t, http.MethodPut, "/me/password", token, map[string]string{
		"old_password": "Passw0rd!", "new_password": "password",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, errorOf(t, rec), "'password' tag")
}

func mealBody(mealType string, at time.Time) map[string]any {
	return map[string]any{
		"type": mealType,
		"date": at,
		"food_items": []map[string]any{
			{"name": "Apple", "quantity": 1, "calories": 95, "carbs": 25, "fats": 0.3, "proteins": 0.5, "fiber": 4, "gi_index": 40},
			{"name": "Rice", "quantity": 1, "calories": 200, "carbs": 45, "fats": 0.4, "proteins": 4, "fiber": 0.6, "gi_index": 70},
		},
	}
}

func TestMealsAndNutrition(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.register(t, "jane@example.com")

	rec := env.do(t, http.MethodPost, "/meals", token, mealBody("Breakfast", now.Add(-6*time.Hour)))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var meal domain.Meal
	decode(t, rec, &meal)
	assert.NotEmpty(t, meal.ID)
	assert.Equal(t, "2024-03-10", meal.Day)

	rec = env.do(t, http.MethodGet, "/meals", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var meals []domain.Meal
	decode(t, rec, &meals)
	require.Len(t, meals, 1)
	assert.Len(t, meals[0].FoodItems, 2)

	rec = env.do(t, http.MethodGet, "/meals?date=2024-03-09", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())

	rec = env.do(t, http.MethodGet, "/nutrition?date=2024-03-10", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var nutrition struct {
		Day    string `json:"day"`
		Totals struct {
			Calories float64 `json:"calories"`
			Carbs    float64 `json:"carbs"`
			AvgGI    float64 `json:"avg_gi"`
			Items    int     `json:"items"`
		} `json:"totals"`
		Meals     []json.RawMessage `json:"meals"`
		CarbLevel float64           `json:"carb_level"`
		GILevel   float64           `json:"gi_level"`
	}
	decode(t, rec, &nutrition)
	assert.Equal(t, "2024-03-10", nutrition.Day)
	assert.InDelta(t, 295, nutrition.Totals.Calories, 1e-9)
	assert.InDelta(t, 70, nutrition.Totals.Carbs, 1e-9)
	assert.InDelta(t, 55, nutrition.Totals.AvgGI, 1e-9)
	assert.Equal(t, 2, nutrition.Totals.Items)
	assert.Len(t, nutrition.Meals, 1)
	assert.InDelta(t, 70.0/130, nutrition.CarbLevel, 1e-9)
	assert.InDelta(t, 0.55, nutrition.GILevel, 1e-9)

	rec = env.do(t, http.MethodGet, "/meals?date=10-03-2024", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMealValidation(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.register(t, "jane@example.com")

	body := mealBody("Brunch", now)
	rec := env.do(t, http.MethodPost, "/meals", token, body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	body = mealBody("Lunch", now)
	body["food_items"] = []any{}
	rec = env.do(t, http.MethodPost, "/meals", token, body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRepostMealGetsFreshIDs(t *testing.T) {
	env := newTestEnv(t)
	jane, _ := env.register(t, "jane@example.com")
	john, _ := env.register(t, "john@example.com")

	body := mealBody("Lunch", now)
	body["food_items"].([]map[string]any)[0]["id"] = "fixed-item"
	rec := env.do(t, http.MethodPost, "/meals", jane, body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var first domain.Meal
	decode(t, rec, &first)
	assert.NotEqual(t, "fixed-item", first.FoodItems[0].ID)

	// The stored meal posted back as-is is a new meal.
	rec = env.do(t, http.MethodPost, "/meals", jane, first)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var second domain.Meal
	decode(t, rec, &second)
	assert.NotEqual(t, first.ID, second.ID)
	assert.NotEqual(t, first.FoodItems[0].ID, second.FoodItems[0].ID)

	rec = env.do(t, http.MethodPost, "/meals", john, first)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = env.do(t, http.MethodGet, "/meals", jane, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var meals []domain.Meal
	decode(t, rec, &meals)
	assert.Len(t, meals, 2)
}

func TestDeleteMealIsOwnerScoped(t *testing.T) {
	env := newTestEnv(t)
	jane, _ := env.register(t, "jane@example.com")
	john, _ := env.register(t, "john@example.com")

	rec := env.do(t, http.MethodPost, "/meals", jane, mealBody("Lunch", now))
	require.Equal(t, http.StatusCreated, rec.Code)
	var meal domain.Meal
	decode(t, rec, &meal)

	rec = env.do(t, http.MethodDelete, "/meals/"+meal.ID, john, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodDelete, "/meals/"+meal.ID, jane, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func addReading(t *testing.T, env *testEnv, token string, value float64, at time.Time) {
	t.Helper()
	rec := env.do(t, http.MethodPost, "/readings", token, map[string]any{
		"type": "Fasting", "value": value, "date": at,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func TestReadings(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.register(t, "jane@example.com")

	addReading(t, env, token, 100, now.Add(-24*time.Hour))
	addReading(t, env, token, 125, now.Add(-2*time.Hour))
	addReading(t, env, token, 90, now.Add(-5*time.Hour))

	rec := env.do(t, http.MethodGet, "/readings", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var readings []domain.BloodReading
	decode(t, rec, &readings)
	require.Len(t, readings, 2)
	assert.Equal(t, 90.0, readings[0].Value)
	assert.Equal(t, domain.SourceManual, readings[0].Source)

	rec = env.do(t, http.MethodGet, "/difference", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var diff struct {
		Difference float64 `json:"difference"`
	}
	decode(t, rec, &diff)
	assert.InDelta(t, 7.5, diff.Difference, 1e-9)

	rec = env.do(t, http.MethodGet, "/insights", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var in tracker.Insights
	decode(t, rec, &in)
	assert.Equal(t, 2, in.Count)
	require.NotNil(t, in.Latest)
	assert.Equal(t, 125.0, in.Latest.Value)
}

func TestReadingErrors(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.register(t, "jane@example.com")

	tests := []struct {
		name string
		body map[string]any
	}{
		{"future", map[string]any{"type": "Fasting", "value": 100, "date": now.Add(time.Hour)}},
		{"zero value", map[string]any{"type": "Fasting", "value": 0, "date": now}},
		{"unknown type", map[string]any{"type": "Bedtime", "value": 100, "date": now}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, http.MethodPost, "/readings", token, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		})
	}

	rec := env.do(t, http.MethodGet, "/difference", token, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestChart(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.register(t, "jane@example.com")

	rec := env.do(t, http.MethodGet, "/chart", token, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	addReading(t, env, token, 120, now.Add(-3*time.Hour))
	rec = env.do(t, http.MethodGet, "/chart", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "text/plain"))
	assert.Contains(t, rec.Body.String(), "o")
}

func TestHbA1c(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.register(t, "jane@example.com")

	rec := env.do(t, http.MethodGet, "/hba1c?days=7", token, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	addReading(t, env, token, 154.2, now.Add(-time.Hour))

	rec = env.do(t, http.MethodGet, "/hba1c?days=7", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		HbA1c float64 `json:"hba1c"`
	}
	decode(t, rec, &resp)
	assert.InDelta(t, 7.0, resp.HbA1c, 1e-6)

	rec = env.do(t, http.MethodGet, "/hba1c?days=week", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGlucoseAverages(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.register(t, "jane@example.com")
	addReading(t, env, token, 154.2, now.Add(-time.Hour))

	rec := env.do(t, http.MethodGet, "/glucose/averages", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var avgs []Average
	decode(t, rec, &avgs)
	require.Len(t, avgs, 4)
	assert.Equal(t, 7, avgs[0].Days)
	require.NotNil(t, avgs[0].Average)
	assert.InDelta(t, 154.2, *avgs[0].Average, 1e-9)
	assert.InDelta(t, 7.0, *avgs[0].HbA1c, 1e-6)

	rec = env.do(t, http.MethodGet, "/glucose/averages?days=3,x", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGlucoseAveragesEmptyWindow(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.register(t, "jane@example.com")

	rec := env.do(t, http.MethodGet, "/glucose/averages?days=7", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"days":7,"average":null,"hba1c":null}]`, rec.Body.String())
}

func TestActivityAndSummary(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.register(t, "jane@example.com")

	rec := env.do(t, http.MethodGet, "/activity", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodPost, "/activity", token, map[string]any{
		"date": now, "calories_burned": 300, "workout_minutes": 45, "total_steps": 8000,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = env.do(t, http.MethodGet, "/activity", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodPost, "/meals", token, mealBody("Lunch", now))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.do(t, http.MethodGet, "/summary", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var summary tracker.Summary
	decode(t, rec, &summary)
	assert.Equal(t, 8000, summary.Steps)
	assert.InDelta(t, 0.8, summary.StepProgress, 1e-9)
	assert.InDelta(t, 1705, summary.CaloriesRemaining, 1e-9)

	rec = env.do(t, http.MethodGet, "/steps?days=3", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var steps []tracker.DaySteps
	decode(t, rec, &steps)
	assert.Equal(t, []tracker.DaySteps{
		{Day: "2024-03-08", Steps: 0},
		{Day: "2024-03-09", Steps: 0},
		{Day: "2024-03-10", Steps: 8000},
	}, steps)

	rec = env.do(t, http.MethodGet, "/steps?days=0", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRecommendationsAndTips(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.register(t, "jane@example.com")
	addReading(t, env, token, 220, now.Add(-time.Hour))

	rec := env.do(t, http.MethodGet, "/recommendations", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var recs []struct {
		Category string `json:"category"`
	}
	decode(t, rec, &recs)
	require.NotEmpty(t, recs)
	assert.Equal(t, "low-carb", recs[0].Category)

	rec = env.do(t, http.MethodGet, "/tips?date=2024-03-11", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var tips []json.RawMessage
	decode(t, rec, &tips)
	assert.Len(t, tips, 3)
}

func TestReminders(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.register(t, "jane@example.com")

	rec := env.do(t, http.MethodPost, "/reminders", token, map[string]any{
		"title": "Check glucose", "schedule": "every day at 7:00 am",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created struct {
		ID          string `json:"id"`
		Enabled     bool   `json:"enabled"`
		Valid       bool       `json:"valid"`
		Description string     `json:"description"`
		NextDue     *time.Time `json:"next_due"`
	}
	decode(t, rec, &created)
	assert.True(t, created.Enabled)
	assert.True(t, created.Valid)
	assert.Equal(t, "Every day at 7:00 am", created.Description)
	require.NotNil(t, created.NextDue)
	assert.True(t, created.NextDue.Equal(time.Date(2024, 3, 11, 7, 0, 0, 0, time.UTC)), created.NextDue.String())

	rec = env.do(t, http.MethodPut, "/reminders/"+created.ID, token, map[string]any{
		"title": "Check glucose", "schedule": "whenever", "enabled": false,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = env.do(t, http.MethodGet, "/reminders", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `false`, string(field(t, rec, 0, "valid")))
	assert.JSONEq(t, `false`, string(field(t, rec, 0, "enabled")))
	assert.Nil(t, field(t, rec, 0, "next_due"))

	rec = env.do(t, http.MethodPut, "/reminders/missing", token, map[string]any{
		"title": "x", "schedule": "every hour",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodDelete, "/reminders/"+created.ID, token, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.do(t, http.MethodPost, "/reminders", token, map[string]any{"title": "", "schedule": "every hour"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// field returns key of the i-th object of a JSON array body.
func field(t *testing.T, rec *httptest.ResponseRecorder, i int, key string) json.RawMessage {
	t.Helper()
	var items []map[string]json.RawMessage
	decode(t, rec, &items)
	require.Greater(t, len(items), i)
	return items[i][key]
}

func TestFoods(t *testing.T) {
	foods := &fakeFoods{food: &nutritionix.Food{
		Name:          "apple",
		ServingQty:    1,
		ServingUnit:   "medium",
		ServingWeight: 182,
		Calories:      95,
		Carbs:         25,
		AltMeasures:   []nutritionix.AltMeasure{{Measure: "cup, sliced", ServingWeight: 109, Qty: 1}},
	}}
	env := newTestEnv(t, WithFoods(foods))
	token, _ := env.register(t, "jane@example.com")

	rec := env.do(t, http.MethodGet, "/foods/search?q=apple", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/foods/search", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodGet, "/foods/lookup?q=apple&qty=2", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var portion FoodPortion
	decode(t, rec, &portion)
	assert.Equal(t, []string{"medium", "cup, sliced"}, portion.Measures)
	assert.InDelta(t, 190, portion.Item.Calories, 1e-9)
	assert.Equal(t, float64(nutritionix.PlaceholderGI), portion.Item.GIIndex)
	assert.InDelta(t, 25, portion.GlycemicLoad, 1e-9)

	rec = env.do(t, http.MethodGet, "/foods/lookup?q=pear", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodGet, "/foods/lookup?q=apple&qty=-1", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFoodsNotConfigured(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.register(t, "jane@example.com")

	rec := env.do(t, http.MethodGet, "/foods/search?q=apple", token, nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestAlertsWebsocket(t *testing.T) {
	env := newTestEnv(t)
	token, userID := env.register(t, "jane@example.com")

	server := httptest.NewServer(env.handler)
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/alerts?token=" + token
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()
	require.Eventually(t, func() bool { return env.hub.Count(userID) == 1 }, 2*time.Second, 10*time.Millisecond)

	addReading(t, env, token, 250, now.Add(-time.Minute))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var alert domain.Alert
	require.NoError(t, conn.ReadJSON(&alert))
	assert.Equal(t, domain.AlertReadingOutOfRange, alert.Kind)
}

func TestAlertsWebsocketRejectsBadToken(t *testing.T) {
	env := newTestEnv(t)
	server := httptest.NewServer(env.handler)
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/alerts?token=bogus"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{domain.ErrValidation, http.StatusBadRequest},
		{tracker.ErrFutureReading, http.StatusBadRequest},
		{tracker.ErrInvalidCredentials, http.StatusUnauthorized},
		{auth.ErrTokenExpired, http.StatusUnauthorized},
		{nutritionix.ErrNoFood, http.StatusNotFound},
		{tracker.ErrEmailTaken, http.StatusConflict},
		{storage.ErrConflict{Resource: "meal", Field: "id"}, http.StatusConflict},
		{domain.ErrZeroQuantity, http.StatusBadRequest},
		{tracker.ErrInsufficientReadings, http.StatusUnprocessableEntity},
		{context.Canceled, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := statusFor(tt.err); got != tt.status {
			t.Errorf("statusFor(%v) = %d, want %d", tt.err, got, tt.status)
		}
	}
}
