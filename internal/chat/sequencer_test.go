package chat

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JoelCyril/Pulso.ai/internal"
	"github.com/JoelCyril/Pulso.ai/internal/ai"
)

// offlineAI has no API key, so every completion short-circuits and the
// sequencer always uses its canned fallbacks.
func offlineAI() *ai.Client {
	return ai.NewClient("", "test-model", internal.NewNopLogger())
}

func stubAI(t *testing.T, reply string) *ai.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"` + reply + `"}}]}`))
	}))
	t.Cleanup(srv.Close)

	client := ai.NewClient("test-key", "test-model", internal.NewNopLogger())
	client.Endpoint = srv.URL
	return client
}

func brokenAI(t *testing.T) *ai.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	client := ai.NewClient("test-key", "test-model", internal.NewNopLogger())
	client.Endpoint = srv.URL
	return client
}

var flowAnswers = []string{
	"I'm Alex", "30", "Male", "175", "70", "2", "8", "4", "45", "3",
}

func TestSequencerFullFlow(t *testing.T) {
	s := NewSequencer(offlineAI(), internal.NewNopLogger())
	ctx := context.Background()

	require.Len(t, s.Messages(), 1)
	assert.Equal(t, internal.SenderBot, s.Messages()[0].Sender)

	for _, answer := range flowAnswers {
		_, err := s.Answer(ctx, answer)
		require.NoError(t, err)
	}

	assert.True(t, s.Done())

	p := s.Profile()
	assert.Equal(t, "Alex", p.Name)
	assert.Equal(t, 30, p.Age)
	assert.Equal(t, "Male", p.Gender)
	assert.Equal(t, 175.0, p.HeightCm)
	assert.Equal(t, 70.0, p.WeightKg)
	assert.Equal(t, 2.0, p.AlcoholDrinks)
	assert.Equal(t, 8.0, p.SleepHours)
	assert.Equal(t, 4.0, p.ScreenTimeHours)
	assert.Equal(t, 45.0, p.ExerciseMinutes)
	assert.Equal(t, 3.0, p.StressLevel)
}

func TestSequencerMessagesAlternate(t *testing.T) {
	s := NewSequencer(offlineAI(), internal.NewNopLogger())
	ctx := context.Background()

	for _, answer := range flowAnswers {
		_, err := s.Answer(ctx, answer)
		require.NoError(t, err)
	}

	messages := s.Messages()
	// N answers produce N user turns and N+1 bot turns.
	require.Len(t, messages, 2*len(flowAnswers)+1)
	for i, msg := range messages {
		if i%2 == 0 {
			assert.Equal(t, internal.SenderBot, msg.Sender, "message %d", i)
		} else {
			assert.Equal(t, internal.SenderUser, msg.Sender, "message %d", i)
		}
	}
	assert.Equal(t, internal.SenderBot, messages[len(messages)-1].Sender)
}

func TestSequencerRejectsAfterCompletion(t *testing.T) {
	s := NewSequencer(offlineAI(), internal.NewNopLogger())
	ctx := context.Background()

	for _, answer := range flowAnswers {
		_, err := s.Answer(ctx, answer)
		require.NoError(t, err)
	}

	before := len(s.Messages())
	_, err := s.Answer(ctx, "one more thing")
	assert.ErrorIs(t, err, ErrFlowComplete)
	assert.Len(t, s.Messages(), before)
}

func TestSequencerValidation(t *testing.T) {
	s := NewSequencer(offlineAI(), internal.NewNopLogger())
	ctx := context.Background()

	// Empty answers never advance.
	_, err := s.Answer(ctx, "   ")
	var vErr *ValidationError
	assert.ErrorAs(t, err, &vErr)
	assert.Len(t, s.Messages(), 1)

	_, err = s.Answer(ctx, "Alex")
	require.NoError(t, err)
	_, err = s.Answer(ctx, "30")
	require.NoError(t, err)

	// Gender must be one of the offered options.
	_, err = s.Answer(ctx, "yes please")
	assert.ErrorAs(t, err, &vErr)
	assert.Equal(t, "gender", s.Current().Field)

	// Option matching is case-insensitive and normalizes the display.
	msg, err := s.Answer(ctx, "male")
	require.NoError(t, err)
	assert.NotEmpty(t, msg.Text)
	assert.Equal(t, "Male", s.Profile().Gender)

	// Sliders require numbers.
	_, err = s.Answer(ctx, "pretty tall")
	assert.ErrorAs(t, err, &vErr)
	assert.Equal(t, "heightCm", s.Current().Field)
}

func TestSequencerDefaultsPreseeded(t *testing.T) {
	s := NewSequencer(offlineAI(), internal.NewNopLogger())

	p := s.Profile()
	assert.Equal(t, 25, p.Age)
	assert.Equal(t, 170.0, p.HeightCm)
	assert.Equal(t, 7.0, p.SleepHours)
	assert.Equal(t, 2.0, p.WaterLiters)
}

func TestSequencerAgeFallsBackTo25(t *testing.T) {
	s := NewSequencer(offlineAI(), internal.NewNopLogger())
	ctx := context.Background()

	_, err := s.Answer(ctx, "Alex")
	require.NoError(t, err)
	// No digits anywhere and the AI is offline, so the default holds.
	_, err = s.Answer(ctx, "none of your business")
	require.NoError(t, err)

	assert.Equal(t, 25, s.Profile().Age)
}

func TestSequencerUsesAIGeneratedPrompt(t *testing.T) {
	s := NewSequencer(stubAI(t, "And how young are you, Alex?"), internal.NewNopLogger())

	msg, err := s.Answer(context.Background(), "I'm Alex")
	require.NoError(t, err)
	assert.Equal(t, "And how young are you, Alex?", msg.Text)
}

func TestSequencerFallsBackWhenAIUnavailable(t *testing.T) {
	s := NewSequencer(brokenAI(t), internal.NewNopLogger())

	msg, err := s.Answer(context.Background(), "I'm Alex")
	require.NoError(t, err)
	// The personalized age fallback replaces the failed generation.
	assert.Contains(t, msg.Text, "Alex")
	assert.Contains(t, msg.Text, "how old are you")
}

func TestSequencerSliderDisplayCarriesUnit(t *testing.T) {
	s := NewSequencer(offlineAI(), internal.NewNopLogger())
	ctx := context.Background()

	for _, answer := range []string{"Alex", "30", "Male"} {
		_, err := s.Answer(ctx, answer)
		require.NoError(t, err)
	}
	_, err := s.Answer(ctx, "175")
	require.NoError(t, err)

	messages := s.Messages()
	assert.Equal(t, "175 cm", messages[len(messages)-2].Text)
}
