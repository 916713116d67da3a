package chat

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/JoelCyril/Pulso.ai/internal"
)

// Intent tags what a free-text assistant message is asking for.
// Classification order is fixed: reminder, then goal, then achievement.
type Intent int

const (
	IntentNone Intent = iota
	IntentReminder
	IntentGoal
	IntentAchievement
)

// Classify returns the command intent of a message. A message only
// carries an intent when the matching parser actually succeeds, so
// "what are my goals?" still reaches the conversational path.
func Classify(text string) Intent {
	lower := strings.ToLower(text)
	if strings.Contains(lower, "remind me") {
		if r := ParseReminderCommand(text); r != nil {
			return IntentReminder
		}
	}
	if strings.Contains(lower, "goal") {
		if g := ParseGoalCommand(text); g != nil {
			return IntentGoal
		}
	}
	if strings.Contains(lower, "achievement") {
		if t := ParseAchievementTitle(text); t != "" {
			return IntentAchievement
		}
	}
	return IntentNone
}

// Reminder patterns, tried in priority order: explicit time, explicit
// hourly interval, bare action (daily at the current time).
var (
	reminderAtTime     = regexp.MustCompile(`(?i)remind\s+me\s+to\s+(.+?)\s+at\s+(\d{1,2}(?::\d{2})?\s*(?:am|pm)?)`)
	reminderEveryHours = regexp.MustCompile(`(?i)remind\s+me\s+to\s+(.+?)\s+every\s+(\d+)\s+hours?`)
	reminderSimple     = regexp.MustCompile(`(?i)remind\s+me\s+to\s+(.+)`)
)

func ParseReminderCommand(text string) *internal.Reminder {
	if m := reminderAtTime.FindStringSubmatch(text); m != nil {
		return &internal.Reminder{
			ID:        "reminder_" + uuid.NewString(),
			Message:   strings.TrimSpace(m[1]),
			Time:      parseClockTime(m[2]),
			Frequency: "daily",
			Active:    true,
			CreatedAt: time.Now(),
		}
	}

	if m := reminderEveryHours.FindStringSubmatch(text); m != nil {
		interval, _ := strconv.Atoi(m[2])
		return &internal.Reminder{
			ID:        "reminder_" + uuid.NewString(),
			Message:   strings.TrimSpace(m[1]),
			Time:      time.Now().Format("15:04"),
			Frequency: "hourly",
			Interval:  interval,
			Active:    true,
			CreatedAt: time.Now(),
		}
	}

	if m := reminderSimple.FindStringSubmatch(text); m != nil {
		return &internal.Reminder{
			ID:        "reminder_" + uuid.NewString(),
			Message:   strings.TrimSpace(m[1]),
			Time:      time.Now().Format("15:04"),
			Frequency: "daily",
			Active:    true,
			CreatedAt: time.Now(),
		}
	}

	return nil
}

var (
	goalCreate = regexp.MustCompile(`(?i)create\s+(?:a\s+)?goal\s+to\s+(.+)`)
	goalAdd    = regexp.MustCompile(`(?i)add\s+goal:?\s+(.+)`)
)

func ParseGoalCommand(text string) *internal.CustomGoal {
	var description string
	if m := goalCreate.FindStringSubmatch(text); m != nil {
		description = strings.TrimSpace(m[1])
	} else if m := goalAdd.FindStringSubmatch(text); m != nil {
		description = strings.TrimSpace(m[1])
	}
	if description == "" {
		return nil
	}

	return &internal.CustomGoal{
		ID:          "goal_" + uuid.NewString(),
		Title:       capitalize(description),
		Description: description,
		Target:      "Complete",
		Current:     "In Progress",
		Progress:    0,
		CreatedAt:   time.Now(),
	}
}

var achievementFiller = regexp.MustCompile(`(?i)\b(for|to|of)\b`)

// ParseAchievementTitle extracts the title following the word
// "achievement", stripped of filler words.
func ParseAchievementTitle(text string) string {
	lower := strings.ToLower(text)
	idx := strings.Index(lower, "achievement")
	if idx < 0 {
		return ""
	}
	title := text[idx+len("achievement"):]
	title = achievementFiller.ReplaceAllString(title, "")
	title = strings.TrimSpace(title)
	if title == "" {
		return ""
	}
	return capitalize(title)
}

// NewAchievement builds the unlocked achievement a chat command creates.
// Unlocking is unconditional; nothing checks the title against real
// progress.
func NewAchievement(title string) internal.Achievement {
	return internal.Achievement{
		ID:          "custom_" + uuid.NewString(),
		Title:       title,
		Description: fmt.Sprintf("Unlocked: %s", time.Now().Format("1/2/2006")),
		Icon:        "trophy",
		Unlocked:    true,
		Progress:    100,
	}
}

var clockDigits = regexp.MustCompile(`\d+`)

// parseClockTime normalizes "7pm", "7:30 am", "19:30" to 24h "HH:MM".
func parseClockTime(raw string) string {
	lower := strings.ToLower(raw)
	isPM := strings.Contains(lower, "pm")
	isAM := strings.Contains(lower, "am")

	numbers := clockDigits.FindAllString(raw, -1)
	if len(numbers) == 0 {
		return "12:00"
	}

	hours, _ := strconv.Atoi(numbers[0])
	minutes := 0
	if len(numbers) > 1 {
		minutes, _ = strconv.Atoi(numbers[1])
	}

	if isPM && hours < 12 {
		hours += 12
	}
	if isAM && hours == 12 {
		hours = 0
	}

	return fmt.Sprintf("%02d:%02d", hours, minutes)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
