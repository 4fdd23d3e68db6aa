package mapping

import (
	"github.com/daybook-app/daybook_backend/internal/core/domain"
	"github.com/daybook-app/daybook_backend/internal/models"
)

// ToDomainReminder converts a reminder row to its domain representation.
func ToDomainReminder(m models.Reminder) domain.Reminder {
	return domain.Reminder{
		ReminderID: m.ReminderID,
		UserID:     m.UserID,
		Type:       m.Type,
		Timezone:   m.Timezone,
		Hour:       m.Hour,
		Minute:     m.Minute,
		Enabled:    m.Enabled,
		NextRunAt:  m.NextRunAt,
		LastSentAt: m.LastSentAt,
		CreatedAt:  m.CreatedAt,
	}
}

// ToDomainReminderSlice converts a slice of reminder rows.
func ToDomainReminderSlice(ms []models.Reminder) []domain.Reminder {
	out := make([]domain.Reminder, len(ms))
	for i, m := range ms {
		out[i] = ToDomainReminder(m)
	}
	return out
}

// ToDomainNotificationToken converts a notification token row.
func ToDomainNotificationToken(m models.NotificationToken) domain.NotificationToken {
	return domain.NotificationToken{
		TokenID:   m.TokenID,
		UserID:    m.UserID,
		Provider:  m.Provider,
		Token:     m.Token,
		Platform:  m.Platform,
		UpdatedAt: m.UpdatedAt,
	}
}
