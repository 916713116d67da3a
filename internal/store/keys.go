package store

import "time"

// Key names inside a user scope. Per-user namespacing is carried by
// the storage scope, not by key suffixes.
const (
	keyProfile         = "healthData"
	keyScore           = "healthScore"
	keyAnalysis        = "healthAnalysis"
	keyAchievements    = "achievements"
	keyRecommendations = "recommendations"
	keyReminders       = "reminders"
	keyCustomGoals     = "customGoals"
	keyWeeklyData      = "weeklyData"
	keyLastHealthCheck = "lastHealthCheck"
	keyOnboarding      = "onboarding"

	// Global-scope keys (not namespaced under a user id).
	keyUsers            = "users"
	keySessions         = "sessions"
	keyLastHealthUpdate = "lastHealthUpdate"
	keyDailyGoal        = "dailyGoal"
	keyDailyGoalDate    = "dailyGoalDate"
)

// onboardingComplete is the sentinel value marking a finished onboarding.
const onboardingComplete = "completed"

// DateKeyLayout matches the date-string format existing records were
// persisted with, so old and new entries keep joining on the same keys.
const DateKeyLayout = "Mon Jan 02 2006"

func DateKey(t time.Time) string {
	return t.Format(DateKeyLayout)
}

// WeekStart returns the date key of the most recent Monday. Sundays
// belong to the week that started six days earlier. This is the join
// key for daily entries and must not change.
func WeekStart(t time.Time) string {
	offset := (int(t.Weekday()) + 6) % 7 // Monday=0 .. Sunday=6
	monday := t.AddDate(0, 0, -offset)
	return DateKey(monday)
}
