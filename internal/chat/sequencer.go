package chat

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/JoelCyril/Pulso.ai/internal"
	"github.com/JoelCyril/Pulso.ai/internal/ai"
)

// ErrFlowComplete is returned for answers submitted after the terminal step.
var ErrFlowComplete = errors.New("chat: onboarding flow already complete")

// ValidationError is a user-visible rejection of an answer. The flow
// does not advance and nothing is written.
type ValidationError struct{ Reason string }

func (e *ValidationError) Error() string { return e.Reason }

// Sequencer drives the onboarding question flow: a fixed ordered list
// of acquisition steps writing field-by-field into an in-progress
// profile. Messages are append-only and strictly alternate bot/user,
// starting and ending with a bot turn. The mutex serializes answers so
// a second submission waits for the in-flight one; step i's field write
// always completes before the prompt for step i+1 is produced.
type Sequencer struct {
	mu       sync.Mutex
	steps    []Step
	index    int
	profile  internal.HealthProfile
	messages []internal.ChatMessage
	ai       *ai.Client
	logger   internal.Logger
}

func NewSequencer(client *ai.Client, logger internal.Logger) *Sequencer {
	s := &Sequencer{
		steps:  Steps(),
		ai:     client,
		logger: logger,
		profile: internal.HealthProfile{
			Age: 25, HeightCm: 170, WeightKg: 70,
			SleepHours: 7, ScreenTimeHours: 4, ExerciseMinutes: 30,
			StressLevel: 5, WaterLiters: 2,
		},
	}
	s.append(internal.SenderBot, Greeting)
	return s
}

func (s *Sequencer) append(sender internal.Sender, text string) internal.ChatMessage {
	msg := internal.ChatMessage{
		ID:        uuid.NewString(),
		Sender:    sender,
		Text:      text,
		Timestamp: time.Now(),
	}
	s.messages = append(s.messages, msg)
	return msg
}

func (s *Sequencer) Messages() []internal.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]internal.ChatMessage, len(s.messages))
	copy(out, s.messages)
	return out
}

func (s *Sequencer) Profile() internal.HealthProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile
}

func (s *Sequencer) Current() Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.steps[s.index]
}

// Done reports whether the flow has reached its terminal step.
func (s *Sequencer) Done() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.steps[s.index].Kind == InputCompletion
}

// Answer processes one answer for the current step: records the user
// turn, writes the field, advances, and produces the next bot prompt
// (AI-generated with a canned fallback). The returned message is the
// new bot turn.
func (s *Sequencer) Answer(ctx context.Context, input string) (internal.ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	step := s.steps[s.index]
	if step.Kind == InputCompletion {
		return internal.ChatMessage{}, ErrFlowComplete
	}

	input = strings.TrimSpace(input)
	if input == "" {
		return internal.ChatMessage{}, &ValidationError{Reason: "an answer is required"}
	}

	display := input
	if step.Kind == InputSlider {
		display = input + step.Suffix
	}

	// The field write is atomic: either a parsed/extracted value or the
	// raw input lands, never neither.
	switch step.Field {
	case "intro":
		name, ok := extractNameFast(input)
		if !ok {
			name = extractViaAI(ctx, s.ai, "name", input)
		}
		s.profile.Name = name
	case "age":
		raw, ok := extractAgeFast(input)
		if !ok {
			raw = extractViaAI(ctx, s.ai, "age", input)
		}
		age, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			age, err = strconv.Atoi(input)
		}
		if err != nil {
			age = 25
		}
		s.profile.Age = age
	case "gender":
		var matched string
		for _, opt := range step.Options {
			if strings.EqualFold(opt, input) {
				matched = opt
				break
			}
		}
		if matched == "" {
			return internal.ChatMessage{}, &ValidationError{
				Reason: fmt.Sprintf("please choose one of: %s", strings.Join(step.Options, ", ")),
			}
		}
		display = matched
		s.profile.Gender = matched
	default:
		value, err := strconv.ParseFloat(input, 64)
		if err != nil {
			return internal.ChatMessage{}, &ValidationError{Reason: "please enter a number"}
		}
		s.setMetric(step.Field, value)
	}

	s.append(internal.SenderUser, display)
	s.index++

	next := s.steps[s.index]
	prompt := s.nextPrompt(ctx, next)
	return s.append(internal.SenderBot, prompt), nil
}

func (s *Sequencer) setMetric(field string, value float64) {
	switch field {
	case "heightCm":
		s.profile.HeightCm = value
	case "weightKg":
		s.profile.WeightKg = value
	case "alcoholDrinks":
		s.profile.AlcoholDrinks = value
	case "sleepHours":
		s.profile.SleepHours = value
	case "screenTimeHours":
		s.profile.ScreenTimeHours = value
	case "exerciseMinutes":
		s.profile.ExerciseMinutes = value
	case "stressLevel":
		s.profile.StressLevel = value
	}
}

// nextPrompt asks the AI collaborator for a conversational question and
// falls back to the step's canned prompt on any failure.
func (s *Sequencer) nextPrompt(ctx context.Context, step Step) string {
	name := s.profile.Name
	if name == "" {
		name = "friend"
	}

	prompt := fmt.Sprintf(`You are Pulso AI, a friendly and empathetic health assistant.
The user's name is %q.

Generate a short, conversational question to ask the user for their: %s.

Context:
- If asking for age, be polite.
- If asking for sleep, mention recovery.
- If asking for stress, be supportive.

Rules:
- Keep it punchy and short.
- Be direct.
- Do NOT include quotation marks.
- Ask ONLY for the specific field requested.`, name, step.Field)

	content, err := s.ai.Complete(ctx, ai.Request{
		Messages: []ai.Message{
			{Role: "system", Content: "You are Pulso AI, a direct and conversational health assistant. No formalities, just ask what is needed next."},
			{Role: "user", Content: prompt},
		},
		Temperature: 0.7,
		MaxTokens:   60,
		Timeout:     8 * time.Second,
	})
	if err != nil {
		if !errors.Is(err, ai.ErrNoAPIKey) {
			s.logger.Warnf("chat: question generation failed for %s, using fallback", step.Field)
		}
		return s.fallbackPrompt(step, name)
	}
	return strings.TrimSpace(strings.ReplaceAll(content, `"`, ""))
}

func (s *Sequencer) fallbackPrompt(step Step, name string) string {
	if step.Field == "age" {
		return fmt.Sprintf("Nice to meet you, %s. To customize your plan, how old are you?", name)
	}
	if step.Fallback != "" {
		return step.Fallback
	}
	return step.Question
}
