package services

import (
	"context"

	"github.com/daybook-app/daybook_backend/internal/core/domain"
	"github.com/daybook-app/daybook_backend/internal/dto"
)

// ReminderSvcFacade defines operations over daily journaling reminders.
type ReminderSvcFacade interface {
	// UpsertReminder creates or reschedules the user's daily reminder and
	// computes its next firing instant.
	UpsertReminder(ctx context.Context, userID string, req dto.UpsertReminderRequest) (*domain.Reminder, error)

	// ListReminders retrieves the user's reminders.
	ListReminders(ctx context.Context, userID string) ([]domain.Reminder, error)

	// DisableReminder turns a reminder off without deleting it.
	DisableReminder(ctx context.Context, userID string, reminderID string) error
}

// NotificationSvcFacade defines operations over device push tokens.
type NotificationSvcFacade interface {
	// RegisterToken stores a device push token for the user.
	RegisterToken(ctx context.Context, userID string, req dto.RegisterTokenRequest) (*domain.NotificationToken, error)

	// SendPush delivers an immediate notification to the user's registered
	// devices. Returns apperrors.ErrNotFound when none are registered.
	SendPush(ctx context.Context, userID string, req dto.SendPushRequest) error
}
