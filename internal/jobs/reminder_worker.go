// Package jobs runs the background delivery loop for daily journaling
// reminders. Due reminders are polled from the database, so any number of
// API replicas can host the worker without extra infrastructure.
package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/daybook-app/daybook_backend/internal/core/domain"
	"github.com/daybook-app/daybook_backend/internal/platform/push"
)

// ReminderStore is the slice of reminder persistence the worker needs.
type ReminderStore interface {
	DueReminders(ctx context.Context, now time.Time, limit int) ([]domain.Reminder, error)
	MarkLastSent(ctx context.Context, reminderID string, at time.Time) error
	SetNextRun(ctx context.Context, reminderID string, nextRunAt *time.Time) error
}

// TokenSource resolves the device tokens a user's notification goes to.
type TokenSource interface {
	TokensForUser(ctx context.Context, userID, provider string) ([]string, error)
}

// JobLogger records the outcome of each delivery attempt.
type JobLogger interface {
	InsertJobLog(ctx context.Context, log domain.JobLog) error
}

// Ports bundles every external effect a reminder delivery performs. Tests
// substitute doubles for individual ports without faking the whole worker.
type Ports struct {
	Reminders ReminderStore
	Tokens    TokenSource
	Push      push.Sender
	JobLogs   JobLogger
	// Now is the clock; nil means time.Now.
	Now func() time.Time
}

const reminderJobType = "reminder_push"

// ReminderWorker polls for due reminders and delivers them.
type ReminderWorker struct {
	ports        Ports
	pollInterval time.Duration
	batchSize    int
	logger       *slog.Logger
}

// NewReminderWorker creates a worker; Run starts it.
func NewReminderWorker(ports Ports, pollInterval time.Duration, batchSize int, logger *slog.Logger) *ReminderWorker {
	if ports.Now == nil {
		ports.Now = time.Now
	}
	return &ReminderWorker{
		ports:        ports,
		pollInterval: pollInterval,
		batchSize:    batchSize,
		logger:       logger,
	}
}

// Run polls until the context is cancelled. It returns the context error so
// callers can run it under an errgroup.
func (w *ReminderWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.logger.Info("Reminder worker started",
		slog.Duration("poll_interval", w.pollInterval),
		slog.Int("batch_size", w.batchSize),
	)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Reminder worker stopping")
			return ctx.Err()
		case <-ticker.C:
			w.Tick(ctx)
		}
	}
}

// Tick processes one batch of due reminders.
func (w *ReminderWorker) Tick(ctx context.Context) {
	now := w.ports.Now().UTC()
	due, err := w.ports.Reminders.DueReminders(ctx, now, w.batchSize)
	if err != nil {
		w.logger.Error("Failed to fetch due reminders", slog.String("error", err.Error()))
		return
	}
	for _, reminder := range due {
		w.processReminder(ctx, reminder, now)
	}
}

// processReminder delivers one reminder and reschedules it. The reminder is
// rescheduled even when delivery fails; a broken push setup must not pile
// up overdue rows.
func (w *ReminderWorker) processReminder(ctx context.Context, reminder domain.Reminder, now time.Time) {
	logger := w.logger.With(
		slog.String("reminder_id", reminder.ReminderID),
		slog.String("user_id", reminder.UserID),
	)

	sendErr := w.deliver(ctx, reminder)
	if sendErr != nil {
		logger.Error("Reminder delivery failed", slog.String("error", sendErr.Error()))
		errMsg := sendErr.Error()
		w.logOutcome(ctx, reminder.UserID, domain.JobFailed, &errMsg)
	} else {
		if err := w.ports.Reminders.MarkLastSent(ctx, reminder.ReminderID, now); err != nil {
			logger.Error("Failed to mark reminder sent", slog.String("error", err.Error()))
		}
		w.logOutcome(ctx, reminder.UserID, domain.JobSuccess, nil)
		logger.Info("Reminder delivered")
	}

	next := domain.NextRun(reminder.Hour, reminder.Minute, reminder.Timezone, now)
	if err := w.ports.Reminders.SetNextRun(ctx, reminder.ReminderID, &next); err != nil {
		logger.Error("Failed to reschedule reminder", slog.String("error", err.Error()))
	}
}

func (w *ReminderWorker) deliver(ctx context.Context, reminder domain.Reminder) error {
	tokens, err := w.ports.Tokens.TokensForUser(ctx, reminder.UserID, domain.PushProviderOneSignal)
	if err != nil {
		return err
	}
	if len(tokens) == 0 {
		// Nothing registered; treated as a successful no-op delivery.
		return nil
	}
	return w.ports.Push.SendToTokens(ctx, tokens, "Daybook", "Time to write today's journal entry")
}

func (w *ReminderWorker) logOutcome(ctx context.Context, userID string, status domain.JobStatus, errMsg *string) {
	entry := domain.JobLog{
		UserID:  &userID,
		JobType: reminderJobType,
		Status:  status,
		Error:   errMsg,
	}
	if err := w.ports.JobLogs.InsertJobLog(ctx, entry); err != nil {
		w.logger.Error("Failed to write job log", slog.String("error", err.Error()))
	}
}
