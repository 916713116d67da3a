package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/JoelCyril/Pulso.ai/internal"
	"github.com/JoelCyril/Pulso.ai/internal/ai"
	"github.com/JoelCyril/Pulso.ai/internal/backend"
	"github.com/JoelCyril/Pulso.ai/internal/chat"
	"github.com/JoelCyril/Pulso.ai/internal/score"
	"github.com/JoelCyril/Pulso.ai/internal/store"
)

var (
	ErrNoOnboarding      = internal.NewAppError(404, "no onboarding session in progress")
	ErrOnboardingPending = internal.NewAppError(409, "onboarding questions still remaining")
)

// OnboardingManager holds one in-memory sequencer per user while the
// onboarding conversation is running. Nothing is persisted until
// Complete; abandoning the flow loses the answers.
type OnboardingManager struct {
	mu       sync.Mutex
	sessions map[string]*chat.Sequencer

	st      *store.ProfileStore
	ai      *ai.Client
	backend *backend.Client
	logger  internal.Logger
}

func NewOnboardingManager(st *store.ProfileStore, aiClient *ai.Client, backendClient *backend.Client, logger internal.Logger) *OnboardingManager {
	return &OnboardingManager{
		sessions: make(map[string]*chat.Sequencer),
		st:       st,
		ai:       aiClient,
		backend:  backendClient,
		logger:   logger,
	}
}

// Start creates the user's sequencer, or returns the existing one so a
// reconnecting client resumes mid-conversation.
func (m *OnboardingManager) Start(userID string) []internal.ChatMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	seq, ok := m.sessions[userID]
	if !ok {
		seq = chat.NewSequencer(m.ai, m.logger)
		m.sessions[userID] = seq
	}
	return seq.Messages()
}

func (m *OnboardingManager) sequencer(userID string) (*chat.Sequencer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	seq, ok := m.sessions[userID]
	if !ok {
		return nil, ErrNoOnboarding
	}
	return seq, nil
}

// Answer feeds one user response to the user's sequencer and returns
// the bot's reply plus whether the conversation has finished.
func (m *OnboardingManager) Answer(ctx context.Context, userID, input string) (internal.ChatMessage, bool, error) {
	seq, err := m.sequencer(userID)
	if err != nil {
		return internal.ChatMessage{}, false, err
	}
	reply, err := seq.Answer(ctx, input)
	if err != nil {
		return internal.ChatMessage{}, false, err
	}
	return reply, seq.Done(), nil
}

func (m *OnboardingManager) Messages(userID string) ([]internal.ChatMessage, error) {
	seq, err := m.sequencer(userID)
	if err != nil {
		return nil, err
	}
	return seq.Messages(), nil
}

// Complete persists the collected profile, marks onboarding done, runs
// the full analysis pipeline and caches its result. The in-memory
// session is discarded afterwards.
func (m *OnboardingManager) Complete(ctx context.Context, userID string) (*internal.HealthAnalysis, error) {
	seq, err := m.sequencer(userID)
	if err != nil {
		return nil, err
	}
	if !seq.Done() {
		return nil, ErrOnboardingPending
	}

	profile := seq.Profile()
	if err := m.st.SaveProfile(ctx, userID, profile); err != nil {
		return nil, err
	}
	if err := m.st.MarkOnboarded(ctx, userID); err != nil {
		return nil, err
	}

	analysis := m.Analyze(ctx, profile)
	if err := m.st.SaveAnalysis(ctx, userID, analysis); err != nil {
		return nil, err
	}
	if err := m.st.SaveScore(ctx, userID, analysis.Score); err != nil {
		return nil, err
	}

	m.mu.Lock()
	delete(m.sessions, userID)
	m.mu.Unlock()

	return &analysis, nil
}

// Analyze computes the full health analysis for a profile. The score
// always comes from the local engine first, then the ML service may
// replace it; the narrative parts come from the AI with the static
// fallback covering every failure. A dead backend or AI never fails
// the call.
func (m *OnboardingManager) Analyze(ctx context.Context, profile internal.HealthProfile) internal.HealthAnalysis {
	healthScore := score.Calculate(profile)
	isMLBased := false

	prediction, err := m.backend.PredictScore(ctx, backend.PredictScoreRequest{
		Age:        profile.Age,
		Sleep:      profile.SleepHours,
		ScreenTime: profile.ScreenTimeHours,
		Exercise:   profile.ExerciseMinutes,
		Stress:     profile.StressLevel,
	})
	if err != nil {
		m.logger.Warnf("onboarding: score prediction unavailable: %v", err)
	} else {
		healthScore = clampScore(int(prediction.PredictedScore))
		isMLBased = prediction.IsMLBased
	}

	whoContext := m.whoContext(ctx, profile, healthScore)

	analysis, err := m.aiAnalysis(ctx, profile, healthScore, whoContext)
	if err != nil {
		m.logger.Warnf("onboarding: ai analysis unavailable, using fallback: %v", err)
		analysis = score.FallbackAnalysis(profile, healthScore)
	}
	analysis.Score = healthScore
	analysis.IsMLBased = isMLBased
	if analysis.BMI == 0 {
		analysis.BMI = score.BMI(profile.WeightKg, profile.HeightCm)
	}
	return analysis
}

// whoContext fetches HALE figures for the user's country to enrich the
// analysis prompt. Best effort; an empty string means no context.
func (m *OnboardingManager) whoContext(ctx context.Context, profile internal.HealthProfile, healthScore int) string {
	country := profile.Nationality
	if country == "" {
		country = "Global"
	}
	coach, err := m.backend.WHOCoach(ctx, backend.WHOCoachRequest{
		CountryCode: country,
		HealthScore: healthScore,
		Age:         profile.Age,
		Gender:      profile.Gender,
		Exercise:    profile.ExerciseMinutes,
		Sleep:       profile.SleepHours,
	})
	if err != nil {
		m.logger.Warnf("onboarding: who context unavailable: %v", err)
		return ""
	}
	return fmt.Sprintf("WHO data for %s: healthy life expectancy at birth %.1f years (global average %.1f). %s %s",
		coach.Country, coach.HALEAtBirth, coach.HALEGlobal, coach.HALEComparison, coach.Summary)
}

func (m *OnboardingManager) aiAnalysis(ctx context.Context, profile internal.HealthProfile, healthScore int, whoContext string) (internal.HealthAnalysis, error) {
	profileJSON, err := json.Marshal(profile)
	if err != nil {
		return internal.HealthAnalysis{}, err
	}

	var prompt strings.Builder
	prompt.WriteString("Analyze this health profile and respond with a JSON object containing ")
	prompt.WriteString(`"lifeExpectancy" (number), "bmi" (number), "summary" (string, 2-3 sentences), `)
	prompt.WriteString(`"risks" (array of strings), "comparison" (object with "sleep", "activity", "overall" strings) `)
	prompt.WriteString(`and "insights" (array of 3 short actionable strings).` + "\n\n")
	prompt.WriteString("Profile: " + string(profileJSON) + "\n")
	prompt.WriteString(fmt.Sprintf("Health score: %d/100\n", healthScore))
	if whoContext != "" {
		prompt.WriteString(whoContext + "\n")
	}

	content, err := m.ai.Complete(ctx, ai.Request{
		Messages: []ai.Message{
			{Role: "system", Content: "You are a health analyst. Respond only with valid JSON."},
			{Role: "user", Content: prompt.String()},
		},
		Temperature: 0.3,
		MaxTokens:   500,
		JSONMode:    true,
		Timeout:     12 * time.Second,
	})
	if err != nil {
		return internal.HealthAnalysis{}, err
	}

	var analysis internal.HealthAnalysis
	if err := json.Unmarshal([]byte(content), &analysis); err != nil {
		return internal.HealthAnalysis{}, fmt.Errorf("onboarding: unparseable analysis: %w", err)
	}
	return analysis, nil
}

func clampScore(s int) int {
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}
