package domain

import "time"

// Reminder schedules a recurring daily push notification for a user at a
// local wall-clock time in the reminder's timezone.
type Reminder struct {
	ReminderID string     `json:"id"`
	UserID     string     `json:"userId"`
	Type       string     `json:"type"`
	Timezone   string     `json:"timezone"`
	Hour       int        `json:"hour"`
	Minute     int        `json:"minute"`
	Enabled    bool       `json:"enabled"`
	NextRunAt  *time.Time `json:"nextRunAt"`
	LastSentAt *time.Time `json:"lastSentAt"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// NextRun computes the next firing instant for a daily reminder: today at
// hour:minute in the given zone, pushed to tomorrow when that moment is not
// strictly in the future. An unknown timezone falls back to UTC.
func NextRun(hour, minute int, timezone string, from time.Time) time.Time {
	loc, err := time.LoadLocation(timezone)
	if err != nil || timezone == "" {
		loc = time.UTC
	}
	now := from.In(loc)
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, loc)
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next.UTC()
}
