package tracker

import (
	"context"
	"errors"
	"time"

	"github.com/jwulff/glucowise-go/internal/bloodsugar"
	"github.com/jwulff/glucowise-go/internal/domain"
	"github.com/jwulff/glucowise-go/internal/nutrition"
	"github.com/jwulff/glucowise-go/internal/recommend"
	"github.com/jwulff/glucowise-go/internal/render"
)

// ReadingInsight is a reading with its classification.
type ReadingInsight struct {
	*domain.BloodReading
	Status bloodsugar.Status      `json:"status"`
	Range  bloodsugar.RangeStatus `json:"range"`
	Mmol   float64                `json:"mmol"`
	// Arrow is set for sensor readings that carry a trend.
	Arrow string `json:"arrow,omitempty"`
}

// Insights describes a day of readings.
type Insights struct {
	Day string `json:"day"`
	// Latest is nil when the day has no readings.
	Latest  *ReadingInsight `json:"latest"`
	Average float64         `json:"average"`
	// SinceYesterday is nil unless both days have readings.
	SinceYesterday *float64         `json:"since_yesterday"`
	Count          int              `json:"count"`
	Readings       []ReadingInsight `json:"readings"`
}

// Insights returns the readings of day with their status, the day average
// and the change since the previous day.
func (t *Tracker) Insights(ctx context.Context, userID string, day time.Time) (*Insights, error) {
	readings, err := t.ReadingsFor(ctx, userID, day)
	if err != nil {
		return nil, err
	}

	in := &Insights{
		Day:      t.dayKey(day),
		Count:    len(readings),
		Readings: make([]ReadingInsight, len(readings)),
	}
	for i, r := range readings {
		in.Readings[i] = describeReading(r)
	}
	if len(readings) > 0 {
		in.Latest = &in.Readings[len(readings)-1]
		in.Average, _ = bloodsugar.Average(values(readings))
	}

	diff, err := t.DifferenceBetweenBloodSugar(ctx, userID, day)
	switch {
	case err == nil:
		in.SinceYesterday = &diff
	case !errors.Is(err, ErrInsufficientReadings):
		return nil, err
	}
	return in, nil
}

// RecommendedMeals suggests the next meal from the glucose and nutrition
// totals of day.
func (t *Tracker) RecommendedMeals(ctx context.Context, userID string, day time.Time) ([]recommend.Recommendation, error) {
	user, err := t.requireUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	meals, err := t.MealsFor(ctx, userID, day)
	if err != nil {
		return nil, err
	}
	avg, hasGlucose, err := t.dayAverage(ctx, userID, day)
	if err != nil {
		return nil, err
	}

	in := recommend.Input{
		AvgGlucose: avg,
		HasGlucose: hasGlucose,
		CarbGoal:   user.Goals.DailyCarbs,
	}
	in.Totals = nutrition.DayTotals(meals)
	if len(meals) > 0 {
		in.LastMeal = meals[len(meals)-1].Type
	}
	return recommend.Recommend(in), nil
}

// Chart draws the readings of day as a text chart, "" when there are none.
func (t *Tracker) Chart(ctx context.Context, userID string, day time.Time) (string, error) {
	readings, err := t.ReadingsFor(ctx, userID, day)
	if err != nil {
		return "", err
	}
	return render.RenderChart(render.PointsFromReadings(readings), render.DayChartConfig(day, t.loc)), nil
}

// Tips returns the tips for the weekday of day.
func (t *Tracker) Tips(day time.Time) []recommend.Tip {
	return recommend.TipsFor(day.In(t.loc).Weekday())
}

func describeReading(r *domain.BloodReading) ReadingInsight {
	in := ReadingInsight{
		BloodReading: r,
		Status:       bloodsugar.ClassifyStatus(r.Value),
		Range:        bloodsugar.ClassifyRange(r.Value),
		Mmol:         bloodsugar.MgdlToMmol(r.Value),
	}
	if r.Trend != "" {
		in.Arrow = bloodsugar.MapTrendArrow(r.Trend)
	}
	return in
}
