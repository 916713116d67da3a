// Package reminders delivers chat-created reminders on schedule.
// Firing goes through the Notifier so callers decide the delivery
// surface.
package reminders

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/JoelCyril/Pulso.ai/internal"
	"github.com/JoelCyril/Pulso.ai/internal/store"
)

type Notifier interface {
	Notify(userID string, r internal.Reminder)
}

// LogNotifier writes deliveries to the application log.
type LogNotifier struct {
	Logger internal.Logger
}

func (n *LogNotifier) Notify(userID string, r internal.Reminder) {
	n.Logger.Infof("reminder for user %s: %s", userID, r.Message)
}

// Dispatcher schedules one gocron job per active reminder. Reminders
// are append-only, so jobs are only ever added.
type Dispatcher struct {
	scheduler gocron.Scheduler
	store     *store.ProfileStore
	notifier  Notifier
	logger    internal.Logger
}

func NewDispatcher(st *store.ProfileStore, notifier Notifier, logger internal.Logger) (*Dispatcher, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}
	return &Dispatcher{scheduler: scheduler, store: st, notifier: notifier, logger: logger}, nil
}

// Start registers every persisted active reminder and runs the scheduler.
func (d *Dispatcher) Start(ctx context.Context) {
	for _, user := range d.store.Users(ctx) {
		for _, r := range d.store.Reminders(ctx, user.ID) {
			if r.Active {
				d.Schedule(user.ID, r)
			}
		}
	}
	d.scheduler.Start()
}

func (d *Dispatcher) Stop() error {
	return d.scheduler.Shutdown()
}

// Schedule registers a single reminder. Daily reminders fire at their
// HH:MM, hourly ones every interval hours, once reminders at the next
// occurrence of their HH:MM.
func (d *Dispatcher) Schedule(userID string, r internal.Reminder) {
	hours, minutes, ok := splitClock(r.Time)
	if !ok {
		d.logger.Warnf("reminders: skipping %s with bad time %q", r.ID, r.Time)
		return
	}

	task := gocron.NewTask(func() {
		d.notifier.Notify(userID, r)
	})

	var definition gocron.JobDefinition
	switch r.Frequency {
	case "hourly":
		interval := r.Interval
		if interval <= 0 {
			interval = 1
		}
		definition = gocron.DurationJob(time.Duration(interval) * time.Hour)
	case "once":
		definition = gocron.OneTimeJob(gocron.OneTimeJobStartDateTime(nextOccurrence(hours, minutes)))
	default: // daily
		definition = gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(uint(hours), uint(minutes), 0)))
	}

	if _, err := d.scheduler.NewJob(definition, task); err != nil {
		d.logger.Errorf("reminders: failed to schedule %s: %v", r.ID, err)
	}
}

func splitClock(clock string) (int, int, bool) {
	parts := strings.SplitN(clock, ":", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 || hours > 23 {
		return 0, 0, false
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, 0, false
	}
	return hours, minutes, true
}

// nextOccurrence picks today's HH:MM, or tomorrow's when it has passed.
func nextOccurrence(hours, minutes int) time.Time {
	now := time.Now()
	target := time.Date(now.Year(), now.Month(), now.Day(), hours, minutes, 0, 0, now.Location())
	if !target.After(now) {
		target = target.AddDate(0, 0, 1)
	}
	return target
}
