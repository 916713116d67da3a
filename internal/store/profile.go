package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/JoelCyril/Pulso.ai/internal"
	"github.com/JoelCyril/Pulso.ai/internal/storage"
)

// ProfileStore is the typed layer over the KV engine. It owns the key
// namespace and the documented defaults: a key that is absent or holds
// malformed JSON yields the default value, never an error. Writes are
// unconditional overwrites; list appends and the weekly map are
// read-modify-write with last-write-wins semantics.
type ProfileStore struct {
	kv     storage.KV
	logger internal.Logger
}

func New(kv storage.KV, logger internal.Logger) *ProfileStore {
	return &ProfileStore{kv: kv, logger: logger}
}

// load decodes scope/key into dst. Returns false when the key is absent
// or the stored value fails to parse; dst is left untouched in that case.
func (s *ProfileStore) load(ctx context.Context, scope, key string, dst interface{}) bool {
	raw, err := s.kv.Load(ctx, scope, key)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logger.Errorf("store: load %s/%s: %v", scope, key, err)
		}
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		s.logger.Warnf("store: malformed value at %s/%s, using default: %v", scope, key, err)
		return false
	}
	return true
}

func (s *ProfileStore) save(ctx context.Context, scope, key string, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.kv.Save(ctx, scope, key, raw)
}

// ---------- users & sessions (global scope) ---------------------------------

func (s *ProfileStore) Users(ctx context.Context) []internal.User {
	users := []internal.User{}
	s.load(ctx, storage.GlobalScope, keyUsers, &users)
	return users
}

func (s *ProfileStore) SaveUsers(ctx context.Context, users []internal.User) error {
	return s.save(ctx, storage.GlobalScope, keyUsers, users)
}

func (s *ProfileStore) Sessions(ctx context.Context) map[string]internal.Session {
	sessions := map[string]internal.Session{}
	s.load(ctx, storage.GlobalScope, keySessions, &sessions)
	return sessions
}

func (s *ProfileStore) SaveSessions(ctx context.Context, sessions map[string]internal.Session) error {
	return s.save(ctx, storage.GlobalScope, keySessions, sessions)
}

// ---------- profile & score -------------------------------------------------

func (s *ProfileStore) Profile(ctx context.Context, userID string) (internal.HealthProfile, bool) {
	var p internal.HealthProfile
	ok := s.load(ctx, userID, keyProfile, &p)
	return p, ok
}

func (s *ProfileStore) SaveProfile(ctx context.Context, userID string, p internal.HealthProfile) error {
	return s.save(ctx, userID, keyProfile, p)
}

func (s *ProfileStore) Score(ctx context.Context, userID string) (int, bool) {
	var score int
	ok := s.load(ctx, userID, keyScore, &score)
	return score, ok
}

func (s *ProfileStore) SaveScore(ctx context.Context, userID string, score int) error {
	return s.save(ctx, userID, keyScore, score)
}

func (s *ProfileStore) Analysis(ctx context.Context, userID string) (internal.HealthAnalysis, bool) {
	var a internal.HealthAnalysis
	ok := s.load(ctx, userID, keyAnalysis, &a)
	return a, ok
}

func (s *ProfileStore) SaveAnalysis(ctx context.Context, userID string, a internal.HealthAnalysis) error {
	return s.save(ctx, userID, keyAnalysis, a)
}

// ---------- dashboard lists -------------------------------------------------

func (s *ProfileStore) Achievements(ctx context.Context, userID string) []internal.Achievement {
	list := []internal.Achievement{}
	s.load(ctx, userID, keyAchievements, &list)
	return list
}

func (s *ProfileStore) SaveAchievements(ctx context.Context, userID string, list []internal.Achievement) error {
	return s.save(ctx, userID, keyAchievements, list)
}

func (s *ProfileStore) AppendAchievement(ctx context.Context, userID string, a internal.Achievement) error {
	list := s.Achievements(ctx, userID)
	return s.SaveAchievements(ctx, userID, append(list, a))
}

func (s *ProfileStore) Recommendations(ctx context.Context, userID string) []internal.Recommendation {
	list := []internal.Recommendation{}
	s.load(ctx, userID, keyRecommendations, &list)
	return list
}

func (s *ProfileStore) SaveRecommendations(ctx context.Context, userID string, list []internal.Recommendation) error {
	return s.save(ctx, userID, keyRecommendations, list)
}

func (s *ProfileStore) Reminders(ctx context.Context, userID string) []internal.Reminder {
	list := []internal.Reminder{}
	s.load(ctx, userID, keyReminders, &list)
	return list
}

func (s *ProfileStore) AppendReminder(ctx context.Context, userID string, r internal.Reminder) error {
	list := s.Reminders(ctx, userID)
	return s.save(ctx, userID, keyReminders, append(list, r))
}

func (s *ProfileStore) CustomGoals(ctx context.Context, userID string) []internal.CustomGoal {
	list := []internal.CustomGoal{}
	s.load(ctx, userID, keyCustomGoals, &list)
	return list
}

func (s *ProfileStore) AppendCustomGoal(ctx context.Context, userID string, g internal.CustomGoal) error {
	list := s.CustomGoals(ctx, userID)
	return s.save(ctx, userID, keyCustomGoals, append(list, g))
}

// ---------- weekly daily-entry map ------------------------------------------

func (s *ProfileStore) WeeklyData(ctx context.Context, userID string) internal.WeeklyData {
	data := internal.WeeklyData{}
	s.load(ctx, userID, keyWeeklyData, &data)
	return data
}

// SaveDailyEntry writes one day's entry under its week-start key.
// The same date overwrites the previous entry for that date.
func (s *ProfileStore) SaveDailyEntry(ctx context.Context, userID string, date time.Time, entry internal.DailyEntry) error {
	weekly := s.WeeklyData(ctx, userID)
	week := WeekStart(date)
	if weekly[week] == nil {
		weekly[week] = map[string]internal.DailyEntry{}
	}
	entry.Date = DateKey(date)
	weekly[week][entry.Date] = entry
	return s.save(ctx, userID, keyWeeklyData, weekly)
}

// ---------- markers ---------------------------------------------------------

func (s *ProfileStore) LastHealthUpdate(ctx context.Context) string {
	var day string
	s.load(ctx, storage.GlobalScope, keyLastHealthUpdate, &day)
	return day
}

func (s *ProfileStore) SetLastHealthUpdate(ctx context.Context, day string) error {
	return s.save(ctx, storage.GlobalScope, keyLastHealthUpdate, day)
}

func (s *ProfileStore) LastHealthCheck(ctx context.Context, userID string) string {
	var day string
	s.load(ctx, userID, keyLastHealthCheck, &day)
	return day
}

func (s *ProfileStore) SetLastHealthCheck(ctx context.Context, userID, day string) error {
	return s.save(ctx, userID, keyLastHealthCheck, day)
}

func (s *ProfileStore) Onboarded(ctx context.Context, userID string) bool {
	var sentinel string
	s.load(ctx, userID, keyOnboarding, &sentinel)
	return sentinel == onboardingComplete
}

func (s *ProfileStore) MarkOnboarded(ctx context.Context, userID string) error {
	return s.save(ctx, userID, keyOnboarding, onboardingComplete)
}

// ---------- daily goal cache ------------------------------------------------

func (s *ProfileStore) DailyGoal(ctx context.Context) (internal.DailyGoal, string) {
	var g internal.DailyGoal
	var day string
	s.load(ctx, storage.GlobalScope, keyDailyGoal, &g)
	s.load(ctx, storage.GlobalScope, keyDailyGoalDate, &day)
	return g, day
}

func (s *ProfileStore) SaveDailyGoal(ctx context.Context, g internal.DailyGoal, day string) error {
	if err := s.save(ctx, storage.GlobalScope, keyDailyGoal, g); err != nil {
		return err
	}
	return s.save(ctx, storage.GlobalScope, keyDailyGoalDate, day)
}
