package models

import "time"

// Reminder mirrors one row of the reminders table.
type Reminder struct {
	ReminderID string     `db:"reminder_id"`
	UserID     string     `db:"user_id"`
	Type       string     `db:"type"`
	Timezone   string     `db:"timezone"`
	Hour       int        `db:"hour"`
	Minute     int        `db:"minute"`
	Enabled    bool       `db:"enabled"`
	NextRunAt  *time.Time `db:"next_run_at"`
	LastSentAt *time.Time `db:"last_sent_at"`
	CreatedAt  time.Time  `db:"created_at"`
}

// NotificationToken mirrors one row of the notification_tokens table.
type NotificationToken struct {
	TokenID   string    `db:"token_id"`
	UserID    string    `db:"user_id"`
	Provider  string    `db:"provider"`
	Token     string    `db:"token"`
	Platform  string    `db:"platform"`
	UpdatedAt time.Time `db:"updated_at"`
}
