package repositories

import (
	"context"
	"time"

	"github.com/daybook-app/daybook_backend/internal/core/domain"
)

// ReminderRepositoryFacade defines persistence operations for reminders.
type ReminderRepositoryFacade interface {
	// UpsertReminder inserts or fully updates a reminder row.
	UpsertReminder(ctx context.Context, reminder domain.Reminder) (*domain.Reminder, error)

	// ListReminders retrieves a user's reminders newest-first.
	ListReminders(ctx context.Context, userID string) ([]domain.Reminder, error)

	// FindReminderByID retrieves a reminder regardless of owner; callers
	// enforce ownership.
	FindReminderByID(ctx context.Context, reminderID string) (*domain.Reminder, error)

	// DisableReminder disables an owned reminder and clears next_run_at,
	// reporting whether a row was updated.
	DisableReminder(ctx context.Context, reminderID, userID string) (bool, error)

	// DueReminders retrieves enabled reminders whose next_run_at is at or
	// before now, oldest first, capped at limit.
	DueReminders(ctx context.Context, now time.Time, limit int) ([]domain.Reminder, error)

	// MarkLastSent stamps last_sent_at after a successful delivery.
	MarkLastSent(ctx context.Context, reminderID string, at time.Time) error

	// SetNextRun stores the next firing instant (nil disarms the reminder).
	SetNextRun(ctx context.Context, reminderID string, nextRunAt *time.Time) error
}
