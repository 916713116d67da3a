package reminders

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JoelCyril/Pulso.ai/internal"
	"github.com/JoelCyril/Pulso.ai/internal/storage"
	"github.com/JoelCyril/Pulso.ai/internal/store"
)

func newDispatcher(t *testing.T) (*Dispatcher, *store.ProfileStore) {
	t.Helper()
	logger := internal.NewNopLogger()
	kv, err := storage.NewFileStorage(filepath.Join(t.TempDir(), "data.json"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = kv.Close() })

	st := store.New(kv, logger)
	d, err := NewDispatcher(st, &LogNotifier{Logger: logger}, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Stop() })
	return d, st
}

func TestSplitClock(t *testing.T) {
	h, m, ok := splitClock("07:30")
	assert.True(t, ok)
	assert.Equal(t, 7, h)
	assert.Equal(t, 30, m)

	for _, bad := range []string{"", "7", "25:00", "12:60", "ab:cd"} {
		_, _, ok := splitClock(bad)
		assert.False(t, ok, "clock: %q", bad)
	}
}

func TestNextOccurrenceIsInTheFuture(t *testing.T) {
	target := nextOccurrence(8, 30)
	assert.True(t, target.After(time.Now()))
	assert.Equal(t, 8, target.Hour())
	assert.Equal(t, 30, target.Minute())
}

func TestScheduleRegistersJobs(t *testing.T) {
	d, _ := newDispatcher(t)

	d.Schedule("u1", internal.Reminder{ID: "r1", Time: "08:00", Frequency: "daily", Active: true})
	d.Schedule("u1", internal.Reminder{ID: "r2", Time: "09:00", Frequency: "hourly", Interval: 2, Active: true})
	d.Schedule("u1", internal.Reminder{ID: "r3", Time: "10:00", Frequency: "once", Active: true})
	assert.Len(t, d.scheduler.Jobs(), 3)

	// Malformed times are skipped, not scheduled.
	d.Schedule("u1", internal.Reminder{ID: "r4", Time: "soonish", Frequency: "daily", Active: true})
	assert.Len(t, d.scheduler.Jobs(), 3)
}

func TestStartBootstrapsActiveReminders(t *testing.T) {
	d, st := newDispatcher(t)
	ctx := context.Background()

	require.NoError(t, st.SaveUsers(ctx, []internal.User{{ID: "u1", Email: "a@b.com"}}))
	require.NoError(t, st.AppendReminder(ctx, "u1", internal.Reminder{ID: "r1", Time: "08:00", Frequency: "daily", Active: true}))
	require.NoError(t, st.AppendReminder(ctx, "u1", internal.Reminder{ID: "r2", Time: "09:00", Frequency: "daily", Active: false}))

	d.Start(ctx)
	assert.Len(t, d.scheduler.Jobs(), 1)
}
