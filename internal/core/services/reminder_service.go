package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/daybook-app/daybook_backend/internal/apperrors"
	"github.com/daybook-app/daybook_backend/internal/core/domain"
	portsrepo "github.com/daybook-app/daybook_backend/internal/core/ports/repositories"
	portssvc "github.com/daybook-app/daybook_backend/internal/core/ports/services"
	"github.com/daybook-app/daybook_backend/internal/dto"
	"github.com/daybook-app/daybook_backend/internal/middleware"
	"github.com/daybook-app/daybook_backend/internal/platform/push"
)

// ReminderTypeDailyJournal is the only reminder type currently scheduled.
const ReminderTypeDailyJournal = "daily_journal"

// reminderService provides daily reminder scheduling.
type reminderService struct {
	reminderRepo portsrepo.ReminderRepositoryFacade
}

// NewReminderService creates a new ReminderService.
func NewReminderService(reminderRepo portsrepo.ReminderRepositoryFacade) portssvc.ReminderSvcFacade {
	return &reminderService{
		reminderRepo: reminderRepo,
	}
}

// Ensure reminderService implements the portssvc.ReminderSvcFacade interface
var _ portssvc.ReminderSvcFacade = (*reminderService)(nil)

// UpsertReminder creates or reschedules the user's daily reminder. The next
// firing instant is today at hour:minute in the reminder's timezone, pushed
// to tomorrow when that moment has already passed.
func (s *reminderService) UpsertReminder(ctx context.Context, userID string, req dto.UpsertReminderRequest) (*domain.Reminder, error) {
	if _, err := time.LoadLocation(req.Timezone); err != nil {
		return nil, apperrors.NewBadRequestError("unknown timezone " + req.Timezone)
	}

	enabled := true
	if req.Enabled != nil {
		enabled = *req.Enabled
	}

	reminder := domain.Reminder{
		ReminderID: uuid.NewString(),
		UserID:     userID,
		Type:       ReminderTypeDailyJournal,
		Timezone:   req.Timezone,
		Hour:       req.Hour,
		Minute:     req.Minute,
		Enabled:    enabled,
		CreatedAt:  time.Now().UTC(),
	}
	if enabled {
		next := domain.NextRun(req.Hour, req.Minute, req.Timezone, time.Now())
		reminder.NextRunAt = &next
	}

	saved, err := s.reminderRepo.UpsertReminder(ctx, reminder)
	if err != nil {
		return nil, err
	}
	middleware.GetLoggerFromCtx(ctx).Info("Reminder scheduled",
		"reminder_id", saved.ReminderID,
		"next_run_at", saved.NextRunAt,
	)
	return saved, nil
}

// ListReminders retrieves the user's reminders.
func (s *reminderService) ListReminders(ctx context.Context, userID string) ([]domain.Reminder, error) {
	return s.reminderRepo.ListReminders(ctx, userID)
}

// DisableReminder turns a reminder off without deleting it.
func (s *reminderService) DisableReminder(ctx context.Context, userID string, reminderID string) error {
	disabled, err := s.reminderRepo.DisableReminder(ctx, reminderID, userID)
	if err != nil {
		return err
	}
	if !disabled {
		return apperrors.ErrNotFound
	}
	return nil
}

// notificationService stores device push tokens and sends instant pushes.
type notificationService struct {
	tokenRepo portsrepo.NotificationTokenRepositoryFacade
	sender    push.Sender
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(tokenRepo portsrepo.NotificationTokenRepositoryFacade, sender push.Sender) portssvc.NotificationSvcFacade {
	return &notificationService{
		tokenRepo: tokenRepo,
		sender:    sender,
	}
}

// Ensure notificationService implements the portssvc.NotificationSvcFacade interface
var _ portssvc.NotificationSvcFacade = (*notificationService)(nil)

// RegisterToken stores a device push token for the user. An existing
// (provider, token) pair is reassigned to the caller.
func (s *notificationService) RegisterToken(ctx context.Context, userID string, req dto.RegisterTokenRequest) (*domain.NotificationToken, error) {
	return s.tokenRepo.UpsertToken(ctx, domain.NotificationToken{
		TokenID:   uuid.NewString(),
		UserID:    userID,
		Provider:  req.Provider,
		Token:     req.Token,
		Platform:  req.Platform,
		UpdatedAt: time.Now().UTC(),
	})
}

// SendPush delivers a one-off notification to every device the user has
// registered with the push provider.
func (s *notificationService) SendPush(ctx context.Context, userID string, req dto.SendPushRequest) error {
	tokens, err := s.tokenRepo.TokensForUser(ctx, userID, domain.PushProviderOneSignal)
	if err != nil {
		return err
	}
	if len(tokens) == 0 {
		return apperrors.NewNotFoundError("no registered devices")
	}
	title := req.Title
	if title == "" {
		title = "Daybook"
	}
	return s.sender.SendToTokens(ctx, tokens, title, req.Message)
}
