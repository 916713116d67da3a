package store

import (
	"context"

	"github.com/JoelCyril/Pulso.ai/internal"
)

// DefaultAchievements is the fixed seed set written on first dashboard load.
func DefaultAchievements() []internal.Achievement {
	return []internal.Achievement{
		{ID: "1", Title: "Early Bird", Description: "Sleep before 11 PM for 7 days", Icon: "moon"},
		{ID: "2", Title: "Active Lifestyle", Description: "Exercise 30+ minutes daily for a week", Icon: "activity"},
		{ID: "3", Title: "Screen Detox", Description: "Keep screen time under 4 hours for 5 days", Icon: "monitor"},
		{ID: "4", Title: "Wellness Warrior", Description: "Maintain health score above 80 for 30 days", Icon: "heart"},
		{ID: "5", Title: "Consistency King", Description: "Log health data for 14 days straight", Icon: "trophy"},
	}
}

func DefaultRecommendations() []internal.Recommendation {
	return []internal.Recommendation{
		{
			ID:          "1",
			Title:       "Improve Sleep Quality",
			Description: "Aim for 7-8 hours of sleep per night. Create a bedtime routine and avoid screens 1 hour before bed.",
			Priority:    "high",
			Category:    "Sleep",
		},
		{
			ID:          "2",
			Title:       "Increase Physical Activity",
			Description: "Try to get at least 30 minutes of moderate exercise daily. Start with walks and gradually increase intensity.",
			Priority:    "high",
			Category:    "Exercise",
		},
		{
			ID:          "3",
			Title:       "Reduce Screen Time",
			Description: "Limit screen time to 6 hours or less per day. Take regular breaks using the 20-20-20 rule.",
			Priority:    "medium",
			Category:    "Lifestyle",
		},
	}
}

// EnsureDashboardDefaults seeds the achievement and recommendation lists
// the first time a user's dashboard is read. Existing lists are left alone.
func (s *ProfileStore) EnsureDashboardDefaults(ctx context.Context, userID string) ([]internal.Achievement, []internal.Recommendation, error) {
	achievements := s.Achievements(ctx, userID)
	if len(achievements) == 0 {
		achievements = DefaultAchievements()
		if err := s.SaveAchievements(ctx, userID, achievements); err != nil {
			return nil, nil, err
		}
	}

	recommendations := s.Recommendations(ctx, userID)
	if len(recommendations) == 0 {
		recommendations = DefaultRecommendations()
		if err := s.SaveRecommendations(ctx, userID, recommendations); err != nil {
			return nil, nil, err
		}
	}

	return achievements, recommendations, nil
}
