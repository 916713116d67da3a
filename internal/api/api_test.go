package api

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JoelCyril/Pulso.ai/internal"
	"github.com/JoelCyril/Pulso.ai/internal/ai"
	"github.com/JoelCyril/Pulso.ai/internal/backend"
	"github.com/JoelCyril/Pulso.ai/internal/chat"
	"github.com/JoelCyril/Pulso.ai/internal/service"
	"github.com/JoelCyril/Pulso.ai/internal/storage"
	"github.com/JoelCyril/Pulso.ai/internal/store"
)

func setupRouter(t *testing.T) (*gin.Engine, *store.ProfileStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := internal.NewNopLogger()
	kv, err := storage.NewFileStorage(filepath.Join(t.TempDir(), "data.json"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = kv.Close() })

	profiles := store.New(kv, logger)
	aiClient := ai.NewClient("", "test-model", logger)
	healthAPI := backend.NewClient("http://127.0.0.1:1", logger)

	app := &Application{
		Log:       logger,
		Profiles:  profiles,
		Flows:     service.NewOnboardingManager(profiles, aiClient, healthAPI, logger),
		Bot:       chat.NewAssistant(profiles, aiClient, nil, logger),
		HealthAPI: healthAPI,
	}
	return NewRouter(app), profiles
}

type envelope struct {
	Data  json.RawMessage    `json:"data"`
	Meta  map[string]any     `json:"meta"`
	Error *internal.AppError `json:"error"`
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w, env
}

func signUp(t *testing.T, r *gin.Engine, email string) string {
	t.Helper()
	w, env := doJSON(t, r, "POST", "/auth/signup", "", `{"email":"`+email+`","password":"secret"}`)
	require.Equal(t, 200, w.Code)
	token, _ := env.Meta["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestAuthRequired(t *testing.T) {
	r, _ := setupRouter(t)

	w, env := doJSON(t, r, "GET", "/dashboard", "", "")
	assert.Equal(t, 401, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, 401, env.Error.Code)
}

func TestSignUpDuplicateRejected(t *testing.T) {
	r, _ := setupRouter(t)
	signUp(t, r, "ana@example.com")

	w, env := doJSON(t, r, "POST", "/auth/signup", "", `{"email":"ana@example.com","password":"other"}`)
	assert.Equal(t, 409, w.Code)
	require.NotNil(t, env.Error)
}

func TestSignUpValidation(t *testing.T) {
	r, _ := setupRouter(t)

	w, _ := doJSON(t, r, "POST", "/auth/signup", "", `{"email":"not-an-email","password":"x"}`)
	assert.Equal(t, 400, w.Code)

	w, _ = doJSON(t, r, "POST", "/auth/signup", "", `{"email":"a@b.com"}`)
	assert.Equal(t, 400, w.Code)
}

func TestSignInFlow(t *testing.T) {
	r, _ := setupRouter(t)
	signUp(t, r, "ana@example.com")

	w, env := doJSON(t, r, "POST", "/auth/signin", "", `{"email":"ana@example.com","password":"secret"}`)
	assert.Equal(t, 200, w.Code)
	assert.NotEmpty(t, env.Meta["token"])
	assert.Equal(t, false, env.Meta["onboarded"])

	w, _ = doJSON(t, r, "POST", "/auth/signin", "", `{"email":"ana@example.com","password":"wrong"}`)
	assert.Equal(t, 401, w.Code)
}

func TestDashboardBeforeOnboarding(t *testing.T) {
	r, _ := setupRouter(t)
	token := signUp(t, r, "ana@example.com")

	w, env := doJSON(t, r, "GET", "/dashboard", token, "")
	assert.Equal(t, 409, w.Code)
	require.NotNil(t, env.Error)
}

func completeOnboarding(t *testing.T, r *gin.Engine, token string) {
	t.Helper()
	w, _ := doJSON(t, r, "POST", "/onboarding/start", token, "")
	require.Equal(t, 200, w.Code)

	answers := []string{"I'm Alex", "30", "Male", "175", "70", "2", "8", "4", "45", "3"}
	var done bool
	for _, answer := range answers {
		w, env := doJSON(t, r, "POST", "/onboarding/answer", token, `{"message":"`+answer+`"}`)
		require.Equal(t, 200, w.Code)
		done, _ = env.Meta["done"].(bool)
	}
	require.True(t, done)

	w, _ = doJSON(t, r, "POST", "/onboarding/complete", token, "")
	require.Equal(t, 200, w.Code)
}

func TestOnboardingAndDashboard(t *testing.T) {
	r, profiles := setupRouter(t)
	token := signUp(t, r, "ana@example.com")
	completeOnboarding(t, r, token)

	w, env := doJSON(t, r, "GET", "/dashboard", token, "")
	require.Equal(t, 200, w.Code)

	var dash service.Dashboard
	require.NoError(t, json.Unmarshal(env.Data, &dash))
	assert.Equal(t, "Alex", dash.Profile.Name)
	assert.Len(t, dash.Achievements, 5)
	assert.Len(t, dash.Recommendations, 3)
	assert.GreaterOrEqual(t, dash.Score, 0)
	assert.LessOrEqual(t, dash.Score, 100)

	users := profiles.Users(context.Background())
	require.Len(t, users, 1)
	assert.True(t, profiles.Onboarded(context.Background(), users[0].ID))
}

func TestOnboardingInvalidAnswer(t *testing.T) {
	r, _ := setupRouter(t)
	token := signUp(t, r, "ana@example.com")

	w, _ := doJSON(t, r, "POST", "/onboarding/start", token, "")
	require.Equal(t, 200, w.Code)

	// First step accepts anything non-empty; push to the gender step.
	for _, answer := range []string{"Alex", "30"} {
		w, _ := doJSON(t, r, "POST", "/onboarding/answer", token, `{"message":"`+answer+`"}`)
		require.Equal(t, 200, w.Code)
	}

	w, _ = doJSON(t, r, "POST", "/onboarding/answer", token, `{"message":"maybe"}`)
	assert.Equal(t, 400, w.Code)
}

func TestDailyUpdateFlow(t *testing.T) {
	r, _ := setupRouter(t)
	token := signUp(t, r, "ana@example.com")
	completeOnboarding(t, r, token)

	w, env := doJSON(t, r, "GET", "/daily/status", token, "")
	require.Equal(t, 200, w.Code)
	assert.Equal(t, true, env.Meta["needsUpdate"])

	body := `{"sleepHours":8,"exerciseMinutes":60,"screenTimeHours":2,"stressLevel":2,"waterLiters":2}`
	w, env = doJSON(t, r, "POST", "/daily", token, body)
	require.Equal(t, 200, w.Code)

	var data map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, 100.0, data["score"])

	w, env = doJSON(t, r, "GET", "/daily/status", token, "")
	require.Equal(t, 200, w.Code)
	assert.Equal(t, false, env.Meta["needsUpdate"])

	// Out-of-range metrics are rejected.
	w, _ = doJSON(t, r, "POST", "/daily", token, `{"sleepHours":40,"stressLevel":5}`)
	assert.Equal(t, 400, w.Code)
}

func TestChatReminderCommand(t *testing.T) {
	r, _ := setupRouter(t)
	token := signUp(t, r, "ana@example.com")

	w, env := doJSON(t, r, "POST", "/chat", token, `{"message":"remind me to drink water at 3pm"}`)
	require.Equal(t, 200, w.Code)

	var data map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Contains(t, data["reply"], "drink water")

	w, env = doJSON(t, r, "GET", "/reminders", token, "")
	require.Equal(t, 200, w.Code)
	var reminders []internal.Reminder
	require.NoError(t, json.Unmarshal(env.Data, &reminders))
	require.Len(t, reminders, 1)
	assert.Equal(t, "15:00", reminders[0].Time)
}

func TestRequestIDHeader(t *testing.T) {
	r, _ := setupRouter(t)

	req := httptest.NewRequest("POST", "/auth/signup", strings.NewReader(`{"email":"a@b.com","password":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", "trace-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "trace-123", w.Header().Get("X-Request-ID"))
}
