package chat

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JoelCyril/Pulso.ai/internal"
	"github.com/JoelCyril/Pulso.ai/internal/ai"
	"github.com/JoelCyril/Pulso.ai/internal/storage"
	"github.com/JoelCyril/Pulso.ai/internal/store"
)

type recordingScheduler struct {
	calls []internal.Reminder
}

func (r *recordingScheduler) Schedule(userID string, reminder internal.Reminder) {
	r.calls = append(r.calls, reminder)
}

func newAssistantFixture(t *testing.T, client *ai.Client) (*Assistant, *store.ProfileStore, *recordingScheduler) {
	t.Helper()
	kv, err := storage.NewFileStorage(filepath.Join(t.TempDir(), "data.json"), internal.NewNopLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = kv.Close() })

	st := store.New(kv, internal.NewNopLogger())
	sched := &recordingScheduler{}
	return NewAssistant(st, client, sched, internal.NewNopLogger()), st, sched
}

func TestAssistantReminderCommand(t *testing.T) {
	a, st, sched := newAssistantFixture(t, offlineAI())
	ctx := context.Background()

	reply, err := a.HandleMessage(ctx, "u1", "remind me to drink water at 3pm")
	require.NoError(t, err)
	assert.Contains(t, reply, "drink water")
	assert.Contains(t, reply, "15:00")

	reminders := st.Reminders(ctx, "u1")
	require.Len(t, reminders, 1)
	assert.Equal(t, "drink water", reminders[0].Message)

	require.Len(t, sched.calls, 1)
	assert.Equal(t, reminders[0].ID, sched.calls[0].ID)
}

func TestAssistantGoalCommand(t *testing.T) {
	a, st, _ := newAssistantFixture(t, offlineAI())
	ctx := context.Background()

	reply, err := a.HandleMessage(ctx, "u1", "create a goal to run every morning")
	require.NoError(t, err)
	assert.Contains(t, reply, "Run every morning")

	goals := st.CustomGoals(ctx, "u1")
	require.Len(t, goals, 1)
	assert.Equal(t, "Run every morning", goals[0].Title)
}

func TestAssistantAchievementCommand(t *testing.T) {
	a, st, _ := newAssistantFixture(t, offlineAI())
	ctx := context.Background()

	reply, err := a.HandleMessage(ctx, "u1", "give me an achievement for meal prepping")
	require.NoError(t, err)
	assert.Contains(t, reply, "Meal prepping")

	achievements := st.Achievements(ctx, "u1")
	require.Len(t, achievements, 1)
	assert.True(t, achievements[0].Unlocked)
}

func TestAssistantConversationalFallback(t *testing.T) {
	a, st, _ := newAssistantFixture(t, offlineAI())
	ctx := context.Background()

	require.NoError(t, st.SaveScore(ctx, "u1", 72))

	reply, err := a.HandleMessage(ctx, "u1", "what's my score?")
	require.NoError(t, err)
	assert.Contains(t, reply, "72/100")
}

func TestAssistantConversationalStubbedAI(t *testing.T) {
	a, _, _ := newAssistantFixture(t, stubAI(t, "Sleep more, scroll less."))

	reply, err := a.HandleMessage(context.Background(), "u1", "any advice?")
	require.NoError(t, err)
	assert.Equal(t, "Sleep more, scroll less.", reply)
}

func TestAssistantRejectsEmptyMessage(t *testing.T) {
	a, _, _ := newAssistantFixture(t, offlineAI())

	_, err := a.HandleMessage(context.Background(), "u1", "  ")
	var vErr *ValidationError
	assert.ErrorAs(t, err, &vErr)
}

func TestAssistantStressFallbackFocus(t *testing.T) {
	a, st, _ := newAssistantFixture(t, offlineAI())
	ctx := context.Background()

	require.NoError(t, st.SaveProfile(ctx, "u1", internal.HealthProfile{StressLevel: 8}))
	reply, err := a.HandleMessage(ctx, "u1", "help me out here")
	require.NoError(t, err)
	assert.Contains(t, reply, "stress")
}
