package dto

import (
	"time"

	"github.com/daybook-app/daybook_backend/internal/core/domain"
)

// UpsertReminderRequest schedules (or reschedules) the user's daily
// journaling reminder. Hour and minute are wall-clock values in the
// given IANA timezone.
type UpsertReminderRequest struct {
	Hour     int    `json:"hour" binding:"min=0,max=23"`
	Minute   int    `json:"minute" binding:"min=0,max=59"`
	Timezone string `json:"timezone" binding:"required"`
	Enabled  *bool  `json:"enabled"`
}

// ReminderResponse is the wire form of a reminder.
type ReminderResponse struct {
	ID         string     `json:"id"`
	Hour       int        `json:"hour"`
	Minute     int        `json:"minute"`
	Timezone   string     `json:"timezone"`
	Enabled    bool       `json:"enabled"`
	NextRunAt  *time.Time `json:"nextRunAt,omitempty"`
	LastSentAt *time.Time `json:"lastSentAt,omitempty"`
}

// ToReminderResponse converts a domain reminder to its wire form.
func ToReminderResponse(r domain.Reminder) ReminderResponse {
	return ReminderResponse{
		ID:         r.ReminderID,
		Hour:       r.Hour,
		Minute:     r.Minute,
		Timezone:   r.Timezone,
		Enabled:    r.Enabled,
		NextRunAt:  r.NextRunAt,
		LastSentAt: r.LastSentAt,
	}
}
