package services

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/josephcavalcante/projeto-todolist/domain"
	"github.com/josephcavalcante/projeto-todolist/usecase"
)

// EventLister is the slice of the event repository the reminder needs.
type EventLister interface {
	ListByDate(ctx context.Context, date time.Time) ([]domain.Event, error)
}

// ReminderConfig controls how frequently today's events are announced.
type ReminderConfig struct {
	Interval time.Duration
}

// Reminder periodically publishes a notification for every calendar event
// scheduled on the current date, so listeners can surface "happening today"
// hints without polling the store themselves.
type Reminder struct {
	events   EventLister
	notifier usecase.Notifier
	logger   *zap.Logger
	cron     *cron.Cron
	cfg      ReminderConfig
}

func NewReminder(events EventLister, notifier usecase.Notifier, logger *zap.Logger, cfg ReminderConfig) *Reminder {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	r := &Reminder{
		events:   events,
		notifier: notifier,
		logger:   logger,
		cfg:      cfg,
		cron:     cron.New(cron.WithSeconds()),
	}

	schedule := fmt.Sprintf("@every %ds", int(cfg.Interval.Seconds()))
	_, _ = r.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Interval)
		defer cancel()
		r.Announce(ctx, time.Now())
	})

	return r
}

// Start launches the cron scheduler.
func (r *Reminder) Start() {
	if r == nil || r.cron == nil {
		return
	}
	r.cron.Start()
	r.logger.Info("event reminder started")
}

// Stop gracefully stops the scheduler.
func (r *Reminder) Stop(ctx context.Context) {
	if r == nil || r.cron == nil {
		return
	}
	stopCtx := r.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
	r.logger.Info("event reminder stopped")
}

// Announce publishes one notification per event on the given date.
func (r *Reminder) Announce(ctx context.Context, date time.Time) {
	if r.events == nil || r.notifier == nil {
		return
	}
	events, err := r.events.ListByDate(ctx, date)
	if err != nil {
		r.logger.Error("reminder event lookup failed", zap.Error(err))
		return
	}
	for _, event := range events {
		r.notifier.Publish(usecase.Notification{
			Kind:  usecase.EventToday,
			Title: event.Title,
			At:    time.Now(),
		})
	}
}
