package recommend

import "time"

// Tip is a short daily wellness suggestion.
type Tip struct {
	Icon    string `json:"icon"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

var weekdayTips = map[time.Weekday][]Tip{
	time.Sunday: {
		{"sun.max.fill", "Sunday Wellness", "Start your week with a morning walk and healthy breakfast."},
		{"heart.fill", "Stress Management", "Practice mindfulness and meditation to reduce stress levels."},
		{"leaf.fill", "Meal Planning", "Plan your meals for the week ahead to maintain healthy eating habits."},
	},
	time.Monday: {
		{"figure.run", "Monday Motivation", "Start your week with 30 minutes of exercise to boost energy levels."},
		{"drop.fill", "Hydration Focus", "Keep a water bottle with you and aim to drink 8 glasses today."},
		{"chart.line.uptrend.xyaxis", "Track Progress", "Record your blood sugar levels and note any patterns."},
	},
	time.Tuesday: {
		{"fork.knife", "Healthy Eating", "Focus on portion control and balanced meals today."},
		{"pills.fill", "Medication Check", "Review your medication schedule and ensure you're on track."},
		{"figure.walk", "Active Lifestyle", "Take short walks during breaks to maintain activity levels."},
	},
	time.Wednesday: {
		{"moon.fill", "Sleep Quality", "Ensure 7-8 hours of quality sleep for better blood sugar control."},
		{"heart.text.square.fill", "Heart Health", "Monitor blood pressure and maintain heart-healthy habits."},
		{"brain.head.profile", "Mental Wellness", "Practice positive thinking and stress management techniques."},
	},
	time.Thursday: {
		{"leaf.circle.fill", "Nutrition Focus", "Include more fiber-rich foods in your meals today."},
		{"figure.run.circle.fill", "Exercise Variety", "Try a new form of exercise to keep your routine interesting."},
		{"hand.raised.fill", "Support System", "Connect with family or friends for emotional support."},
	},
	time.Friday: {
		{"star.fill", "Weekend Prep", "Plan healthy activities for the weekend to stay on track."},
		{"checkmark.circle.fill", "Goal Review", "Review your weekly health goals and celebrate progress."},
		{"sunrise.fill", "Morning Routine", "Establish a consistent morning routine for better control."},
	},
	time.Saturday: {
		{"house.fill", "Home Health", "Prepare healthy meals at home to control ingredients."},
		{"figure.walk.motion", "Weekend Activity", "Engage in outdoor activities for physical and mental health."},
		{"book.fill", "Health Education", "Learn about new diabetes management techniques."},
	},
}

var fallbackTips = []Tip{
	{"drop.fill", "Stay Hydrated", "Drink plenty of water throughout the day."},
	{"figure.run", "Regular Exercise", "Aim for at least 30 minutes of moderate exercise."},
	{"leaf.fill", "Balanced Diet", "Include a mix of proteins, healthy fats, and complex carbohydrates."},
}

// TipsFor returns the tips shown on the given weekday.
func TipsFor(day time.Weekday) []Tip {
	tips, ok := weekdayTips[day]
	if !ok {
		tips = fallbackTips
	}
	out := make([]Tip, len(tips))
	copy(out, tips)
	return out
}
