package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/JoelCyril/Pulso.ai/internal"
	"github.com/JoelCyril/Pulso.ai/internal/ai"
	"github.com/JoelCyril/Pulso.ai/internal/store"
)

// ReminderScheduler registers a saved reminder with the dispatcher.
type ReminderScheduler interface {
	Schedule(userID string, r internal.Reminder)
}

// Assistant is the dashboard chatbot: command intents are handled
// locally and everything else goes to the AI collaborator, degrading to
// a deterministic profile-derived reply on failure.
type Assistant struct {
	store     *store.ProfileStore
	ai        *ai.Client
	scheduler ReminderScheduler
	logger    internal.Logger
}

func NewAssistant(st *store.ProfileStore, client *ai.Client, scheduler ReminderScheduler, logger internal.Logger) *Assistant {
	return &Assistant{store: st, ai: client, scheduler: scheduler, logger: logger}
}

// HandleMessage processes one user message and returns the bot reply.
func (a *Assistant) HandleMessage(ctx context.Context, userID, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", &ValidationError{Reason: "a message is required"}
	}

	switch Classify(text) {
	case IntentReminder:
		reminder := ParseReminderCommand(text)
		if err := a.store.AppendReminder(ctx, userID, *reminder); err != nil {
			return "", err
		}
		if a.scheduler != nil {
			a.scheduler.Schedule(userID, *reminder)
		}
		return fmt.Sprintf("OK! I've set a reminder for you: %q at %s.", reminder.Message, reminder.Time), nil

	case IntentGoal:
		goal := ParseGoalCommand(text)
		if err := a.store.AppendCustomGoal(ctx, userID, *goal); err != nil {
			return "", err
		}
		return fmt.Sprintf("Done! I've added a new goal for you: %q. You can track it in your dashboard.", goal.Title), nil

	case IntentAchievement:
		achievement := NewAchievement(ParseAchievementTitle(text))
		if err := a.store.AppendAchievement(ctx, userID, achievement); err != nil {
			return "", err
		}
		return fmt.Sprintf("Amazing work! I've unlocked the %q achievement for you.", achievement.Title), nil
	}

	profile, _ := a.store.Profile(ctx, userID)
	healthScore, _ := a.store.Score(ctx, userID)

	reply, err := a.chatCompletion(ctx, profile, healthScore, text)
	if err != nil {
		return fallbackReply(profile, healthScore, text), nil
	}
	return reply, nil
}

func (a *Assistant) chatCompletion(ctx context.Context, profile internal.HealthProfile, healthScore int, text string) (string, error) {
	name := profile.Name
	if name == "" {
		name = "User"
	}
	profileJSON, _ := json.Marshal(profile)

	system := fmt.Sprintf(`You are an authoritative and direct Health Analyst named Pulso AI.
User Name: %s.
User Health Score: %d/100.
User Profile Data: %s.

Rules:
- Be absolute and direct.
- NO disclaimers, NO "consult a doctor" hedging.
- Use the user's data to give specific, actionable advice.
- If they ask about their score or how to improve, be specific about their metrics (sleep, stress, etc.).`,
		name, healthScore, profileJSON)

	return a.ai.Complete(ctx, ai.Request{
		Messages: []ai.Message{
			{Role: "system", Content: system},
			{Role: "user", Content: text},
		},
		Temperature: 0.7,
		MaxTokens:   500,
		Timeout:     15 * time.Second,
	})
}

// fallbackReply answers deterministically from the profile when the AI
// collaborator is unreachable.
func fallbackReply(profile internal.HealthProfile, healthScore int, text string) string {
	lower := strings.ToLower(text)
	if strings.Contains(lower, "score") {
		return fmt.Sprintf("Your health score is exactly %d/100. Let's optimize it.", healthScore)
	}
	if strings.Contains(lower, "sleep") {
		return fmt.Sprintf("You're currently hitting %gh. To peak your performance, you need 8.5h consistently.", profile.SleepHours)
	}
	focus := "activity"
	if profile.StressLevel > 5 {
		focus = "stress"
	}
	return fmt.Sprintf("That's a direct health concern. Based on your current habits, I recommend aggressive optimization of your %s levels immediately.", focus)
}
