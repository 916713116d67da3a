package service

import (
	"context"
	"fmt"
	"time"

	"github.com/JoelCyril/Pulso.ai/internal"
	"github.com/JoelCyril/Pulso.ai/internal/score"
	"github.com/JoelCyril/Pulso.ai/internal/store"
)

var ErrNoProfile = internal.NewAppError(409, "onboarding not completed")

type DailyUpdateRequest struct {
	SleepHours      float64 `json:"sleepHours" validate:"gte=0,lte=24"`
	ExerciseMinutes float64 `json:"exerciseMinutes" validate:"gte=0"`
	ScreenTimeHours float64 `json:"screenTimeHours" validate:"gte=0,lte=24"`
	StressLevel     float64 `json:"stressLevel" validate:"gte=1,lte=10"`
	WaterLiters     float64 `json:"waterLiters" validate:"gte=0"`
}

func ValidateDailyUpdate(req *DailyUpdateRequest) error {
	return validate.Struct(req)
}

// SubmitDailyUpdate records one day's metrics: the entry goes into the
// weekly map under its week-start key, the lifestyle fields of the
// profile are overwritten, and the score is recomputed from the updated
// profile. The freshness markers are only moved when the entry is for
// today, so backfilling a past date never suppresses today's check-in.
func SubmitDailyUpdate(ctx context.Context, st *store.ProfileStore, userID string, date time.Time, req *DailyUpdateRequest) (int, error) {
	profile, ok := st.Profile(ctx, userID)
	if !ok {
		return 0, ErrNoProfile
	}

	entry := internal.DailyEntry{
		SleepHours:      req.SleepHours,
		ExerciseMinutes: req.ExerciseMinutes,
		ScreenTimeHours: req.ScreenTimeHours,
		StressLevel:     req.StressLevel,
		WaterLiters:     req.WaterLiters,
	}
	if err := st.SaveDailyEntry(ctx, userID, date, entry); err != nil {
		return 0, err
	}

	profile.SleepHours = req.SleepHours
	profile.ExerciseMinutes = req.ExerciseMinutes
	profile.ScreenTimeHours = req.ScreenTimeHours
	profile.StressLevel = req.StressLevel
	profile.WaterLiters = req.WaterLiters
	if err := st.SaveProfile(ctx, userID, profile); err != nil {
		return 0, err
	}

	newScore := score.Calculate(profile)
	if err := st.SaveScore(ctx, userID, newScore); err != nil {
		return 0, err
	}

	if store.DateKey(date) == store.DateKey(time.Now()) {
		today := store.DateKey(time.Now())
		if err := st.SetLastHealthUpdate(ctx, today); err != nil {
			return 0, err
		}
		if err := st.SetLastHealthCheck(ctx, userID, today); err != nil {
			return 0, err
		}
	}

	return newScore, nil
}

// NeedsDailyUpdate reports whether today's check-in is still pending.
func NeedsDailyUpdate(ctx context.Context, st *store.ProfileStore) bool {
	return st.LastHealthUpdate(ctx) != store.DateKey(time.Now())
}

// Dashboard bundles everything the dashboard page renders in one read.
type Dashboard struct {
	Profile         internal.HealthProfile  `json:"profile"`
	Score           int                     `json:"score"`
	Analysis        *internal.HealthAnalysis `json:"analysis,omitempty"`
	Achievements    []internal.Achievement  `json:"achievements"`
	Recommendations []internal.Recommendation `json:"recommendations"`
	CustomGoals     []internal.CustomGoal   `json:"customGoals"`
	Reminders       []internal.Reminder     `json:"reminders"`
	DailyGoal       internal.DailyGoal      `json:"dailyGoal"`
	NeedsUpdate     bool                    `json:"needsUpdate"`
}

// LoadDashboard assembles the dashboard view. The score is recomputed
// from the current profile on every read rather than trusted from the
// cache, and the achievement/recommendation lists are seeded with their
// defaults on first load.
func LoadDashboard(ctx context.Context, st *store.ProfileStore, userID string) (*Dashboard, error) {
	profile, ok := st.Profile(ctx, userID)
	if !ok {
		return nil, ErrNoProfile
	}

	currentScore := score.Calculate(profile)
	if cached, ok := st.Score(ctx, userID); !ok || cached != currentScore {
		if err := st.SaveScore(ctx, userID, currentScore); err != nil {
			return nil, err
		}
	}

	achievements, recommendations, err := st.EnsureDashboardDefaults(ctx, userID)
	if err != nil {
		return nil, err
	}

	dash := &Dashboard{
		Profile:         profile,
		Score:           currentScore,
		Achievements:    achievements,
		Recommendations: recommendations,
		CustomGoals:     st.CustomGoals(ctx, userID),
		Reminders:       st.Reminders(ctx, userID),
		NeedsUpdate:     NeedsDailyUpdate(ctx, st),
	}
	if analysis, ok := st.Analysis(ctx, userID); ok {
		dash.Analysis = &analysis
	}

	goal, err := DailyGoalFor(ctx, st, profile, time.Now())
	if err != nil {
		return nil, err
	}
	dash.DailyGoal = goal

	return dash, nil
}

// DailyGoalFor returns the day's wellness challenge. The goal rotates
// by day of year over a fixed table and is cached so repeated reads on
// the same day stay stable. Progress for the metric-linked goals is
// computed from the profile at selection time.
func DailyGoalFor(ctx context.Context, st *store.ProfileStore, profile internal.HealthProfile, now time.Time) (internal.DailyGoal, error) {
	today := store.DateKey(now)
	if cached, day := st.DailyGoal(ctx); day == today && cached.Title != "" {
		return cached, nil
	}

	goals := dailyGoalTable(profile)
	goal := goals[now.YearDay()%len(goals)]
	if goal.Progress > 100 {
		goal.Progress = 100
	}
	if err := st.SaveDailyGoal(ctx, goal, today); err != nil {
		return internal.DailyGoal{}, err
	}
	return goal, nil
}

func dailyGoalTable(p internal.HealthProfile) []internal.DailyGoal {
	sleepProgress := 0.0
	if p.SleepHours > 0 {
		sleepProgress = p.SleepHours / 8 * 100
	}
	exerciseProgress := 0.0
	if p.ExerciseMinutes > 0 {
		exerciseProgress = p.ExerciseMinutes / 30 * 100
	}
	screenProgress := 100.0
	if p.ScreenTimeHours > 0 {
		screenProgress = 100 - (p.ScreenTimeHours-4)/4*100
		if screenProgress < 0 {
			screenProgress = 0
		}
	}

	return []internal.DailyGoal{
		{
			Title:       "Walk 10,000 Steps",
			Description: "Get moving and reach your daily step goal",
			Target:      "10,000 steps",
			Current:     "0 steps",
		},
		{
			Title:       "Drink 8 Glasses of Water",
			Description: "Stay hydrated throughout the day",
			Target:      "8 glasses",
			Current:     "0 glasses",
		},
		{
			Title:       "Sleep 8 Hours Tonight",
			Description: "Prepare for quality rest tonight",
			Progress:    sleepProgress,
			Target:      "8 hours",
			Current:     fmt.Sprintf("%g hours", p.SleepHours),
		},
		{
			Title:       "30 Minutes of Exercise",
			Description: "Complete your daily workout",
			Progress:    exerciseProgress,
			Target:      "30 minutes",
			Current:     fmt.Sprintf("%g minutes", p.ExerciseMinutes),
		},
		{
			Title:       "Limit Screen Time to 4 Hours",
			Description: "Reduce digital eye strain",
			Progress:    screenProgress,
			Target:      "4 hours max",
			Current:     fmt.Sprintf("%g hours", p.ScreenTimeHours),
		},
	}
}
